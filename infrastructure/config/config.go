package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mstoykov/envconfig"
	"github.com/sirupsen/logrus"
)

// DriverKind selects the browser backend the pages run against
type DriverKind string

const (
	DriverSelenium   DriverKind = "selenium"
	DriverPlaywright DriverKind = "playwright"
	DriverDocument   DriverKind = "document"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the runtime configuration, read from PAGES_* variables
type Config struct {
	Driver      DriverKind `envconfig:"PAGES_DRIVER"`
	Definitions string     `envconfig:"PAGES_DEFINITIONS"`
	ReportPath  string     `envconfig:"PAGES_REPORT"`
	LogLevel    string     `envconfig:"PAGES_LOG_LEVEL"`

	WebDriverURL     string `envconfig:"PAGES_WEBDRIVER_URL"`
	ChromeDriverPath string `envconfig:"PAGES_CHROMEDRIVER_PATH"`
	ChromeDriverPort int    `envconfig:"PAGES_CHROMEDRIVER_PORT"`
	ChromeBinary     string `envconfig:"PAGES_CHROME_BINARY"`
	Headless         bool   `envconfig:"PAGES_HEADLESS"`

	PlaywrightStatePath string        `envconfig:"PAGES_PLAYWRIGHT_STATE"`
	ActionTimeout       time.Duration `envconfig:"PAGES_ACTION_TIMEOUT"`

	DefaultWait     int           `envconfig:"PAGES_DEFAULT_WAIT"`
	PollInterval    time.Duration `envconfig:"PAGES_POLL_INTERVAL"`
	LinkSettleDelay time.Duration `envconfig:"PAGES_LINK_SETTLE_DELAY"`
}

// NewConfig returns the defaults applied before the environment is read
func NewConfig() Config {
	return Config{
		Driver:           DriverSelenium,
		Definitions:      "pages.yaml",
		LogLevel:         "info",
		ChromeDriverPort: 9515,
		Headless:         true,
		ActionTimeout:    30 * time.Second,
		DefaultWait:      10,
		PollInterval:     500 * time.Millisecond,
		LinkSettleDelay:  2 * time.Second,
	}
}

// Load reads an optional .env file and decodes the environment over the defaults
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		// .env file is optional
		logrus.Debugf("no .env file loaded: %v", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup decodes configuration values supplied by lookup over the defaults
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := NewConfig()
	if err := envconfig.Process("", &cfg, lookup); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.Driver = DriverKind(strings.ToLower(string(cfg.Driver)))
	return cfg, cfg.Validate()
}

// Validate checks the values the environment cannot type-check
func (c Config) Validate() error {
	switch c.Driver {
	case DriverSelenium, DriverPlaywright, DriverDocument:
	default:
		return fmt.Errorf("%w: unknown driver %q, expected selenium, playwright or document", ErrInvalidConfig, c.Driver)
	}
	if c.DefaultWait < 0 {
		return fmt.Errorf("%w: default wait must not be negative, got %d", ErrInvalidConfig, c.DefaultWait)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive, got %s", ErrInvalidConfig, c.PollInterval)
	}
	if c.LinkSettleDelay < 0 {
		return fmt.Errorf("%w: link settle delay must not be negative, got %s", ErrInvalidConfig, c.LinkSettleDelay)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Level is the parsed log level, info when unparseable
func (c Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
