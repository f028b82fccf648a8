package terminal

import (
	"context"
	"fmt"
	"io"
	"os"

	"page_automation/application/elements"
	"page_automation/application/inspector"
	"page_automation/application/pages"
	"page_automation/domain/interfaces"
	"page_automation/infrastructure/browser"
	"page_automation/infrastructure/config"
	"page_automation/infrastructure/storage"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// driverCloser is a driver holding a browser session that must be released
type driverCloser interface {
	interfaces.Driver
	io.Closer
}

type TerminalInterface struct {
	cfg    config.Config
	logger *logrus.Logger
	out    io.Writer

	// newDriver is replaced in tests
	newDriver func(config.Config, *logrus.Logger) (driverCloser, error)
}

func NewTerminalInterface(out io.Writer) *TerminalInterface {
	// Setup logger
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return &TerminalInterface{
		cfg:       config.NewConfig(),
		logger:    logger,
		out:       out,
		newDriver: openDriver,
	}
}

// NewRootCommand creates the root cobra command
func (t *TerminalInterface) NewRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "page_automation",
		Short: "Check declarative page definitions against a live browser",
		Long: `page_automation builds page objects from a YAML definitions file and
checks that their elements can be found in the browser.

Configuration is read from PAGES_* environment variables and an optional
.env file; flags override both.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var files []string
			if envFile != "" {
				files = append(files, envFile)
			}
			cfg, err := config.Load(files...)
			if err != nil {
				return err
			}
			t.cfg = mergeFlags(cmd, cfg, t.cfg)
			if err := t.cfg.Validate(); err != nil {
				return err
			}

			t.logger.SetLevel(t.cfg.Level())
			elements.SetLogger(t.logger)
			elements.SetPollInterval(t.cfg.PollInterval)
			elements.SetLinkSettleDelay(t.cfg.LinkSettleDelay)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", "", "path of a .env file to load")
	root.PersistentFlags().StringVar((*string)(&t.cfg.Driver), "driver", string(t.cfg.Driver), "browser backend: selenium, playwright or document")
	root.PersistentFlags().StringVar(&t.cfg.LogLevel, "log-level", t.cfg.LogLevel, "log level")
	root.PersistentFlags().BoolVar(&t.cfg.Headless, "headless", t.cfg.Headless, "run the browser without a window")
	root.PersistentFlags().StringVar(&t.cfg.WebDriverURL, "webdriver-url", t.cfg.WebDriverURL, "remote WebDriver endpoint, a local chromedriver is started when empty")

	root.AddCommand(t.newCheckCommand())
	return root
}

func (t *TerminalInterface) newCheckCommand() *cobra.Command {
	var (
		navigate bool
		wait     bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Resolve every defined element and report the missing ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []inspector.Option
			if navigate {
				opts = append(opts, inspector.WithNavigation())
			}
			if wait {
				opts = append(opts, inspector.WithVisibilityWait())
			}
			return t.Check(cmd.Context(), opts...)
		},
	}

	cmd.Flags().StringVar(&t.cfg.Definitions, "definitions", t.cfg.Definitions, "page definitions file")
	cmd.Flags().StringVar(&t.cfg.ReportPath, "report", t.cfg.ReportPath, "write the reports as JSON to this file")
	cmd.Flags().IntVar(&t.cfg.DefaultWait, "wait", t.cfg.DefaultWait, "default visibility wait in seconds")
	cmd.Flags().BoolVar(&navigate, "navigate", true, "load each page's url before checking it")
	cmd.Flags().BoolVar(&wait, "wait-visible", false, "wait up to each element's timeout for it to become visible")
	return cmd
}

// Check loads the definitions, builds the site and checks every page.
// It returns inspector.ErrMissingRequired when a required element is missing.
func (t *TerminalInterface) Check(ctx context.Context, opts ...inspector.Option) error {
	if ctx == nil {
		ctx = context.Background()
	}

	defs, err := storage.NewDefinitionFile(t.cfg.Definitions, t.logger).LoadPages()
	if err != nil {
		return err
	}
	for i := range defs {
		if defs[i].DefaultWait == 0 {
			defs[i].DefaultWait = t.cfg.DefaultWait
		}
	}

	driver, err := t.newDriver(t.cfg, t.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize browser: %w", err)
	}
	defer func() {
		if err := driver.Close(); err != nil {
			t.logger.Warnf("Failed to close browser: %v", err)
		}
	}()

	site, err := pages.BuildSite(defs, driver, t.logger)
	if err != nil {
		return err
	}

	reports, err := inspector.NewInspector(t.logger, opts...).CheckSite(ctx, site)
	PrintReports(t.out, reports)
	if err != nil {
		return err
	}

	if t.cfg.ReportPath != "" {
		if err := storage.NewReportFile(t.cfg.ReportPath).SaveReports(reports); err != nil {
			return fmt.Errorf("failed to save reports: %w", err)
		}
		t.logger.WithField("path", t.cfg.ReportPath).Info("reports saved")
	}

	return inspector.Missing(reports)
}

// mergeFlags applies the flags the user set over the environment configuration
func mergeFlags(cmd *cobra.Command, env, flags config.Config) config.Config {
	merged := env
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("driver") {
		merged.Driver = flags.Driver
	}
	if changed("log-level") {
		merged.LogLevel = flags.LogLevel
	}
	if changed("headless") {
		merged.Headless = flags.Headless
	}
	if changed("webdriver-url") {
		merged.WebDriverURL = flags.WebDriverURL
	}
	if changed("definitions") {
		merged.Definitions = flags.Definitions
	}
	if changed("report") {
		merged.ReportPath = flags.ReportPath
	}
	if changed("wait") {
		merged.DefaultWait = flags.DefaultWait
	}
	return merged
}

func openDriver(cfg config.Config, logger *logrus.Logger) (driverCloser, error) {
	switch cfg.Driver {
	case config.DriverPlaywright:
		return browser.NewPlaywrightDriver(browser.PlaywrightOptions{
			Headless:      cfg.Headless,
			ActionTimeout: float64(cfg.ActionTimeout.Milliseconds()),
			StatePath:     cfg.PlaywrightStatePath,
		}, logger)
	case config.DriverDocument:
		return browser.NewDocumentDriver(logger), nil
	}
	return browser.NewSeleniumDriver(browser.SeleniumOptions{
		RemoteURL:        cfg.WebDriverURL,
		ChromeDriverPath: cfg.ChromeDriverPath,
		Port:             cfg.ChromeDriverPort,
		ChromeBinary:     cfg.ChromeBinary,
		Headless:         cfg.Headless,
	}, logger)
}
