package browser

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"page_automation/domain/entities"
	"page_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

// SeleniumOptions configures a WebDriver session
type SeleniumOptions struct {
	// RemoteURL connects to a running WebDriver endpoint; when empty a local chromedriver is started
	RemoteURL        string
	ChromeDriverPath string
	Port             int
	ChromeBinary     string
	Headless         bool
}

// SeleniumDriver drives a browser through the WebDriver protocol
type SeleniumDriver struct {
	wd      selenium.WebDriver
	service *selenium.Service
	logger  *logrus.Logger
}

var seleniumBy = map[entities.LookUp]string{
	entities.ByClassName:       selenium.ByClassName,
	entities.ByCSSSelector:     selenium.ByCSSSelector,
	entities.ByID:              selenium.ByID,
	entities.ByLinkText:        selenium.ByLinkText,
	entities.ByName:            selenium.ByName,
	entities.ByPartialLinkText: selenium.ByPartialLinkText,
	entities.ByTagName:         selenium.ByTagName,
	entities.ByXPath:           selenium.ByXPATH,
}

// findChromeDriver - finds ChromeDriver executable path
func findChromeDriver(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured, nil
		}
	}

	commonPaths := []string{
		"/usr/local/bin/chromedriver",
		"/usr/bin/chromedriver",
		"/opt/homebrew/bin/chromedriver",
		filepath.Join(os.Getenv("HOME"), "bin", "chromedriver"),
	}
	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("chromedriver"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("chromedriver not found, install it or set PAGES_CHROMEDRIVER_PATH")
}

// findChromeBinary - finds a Chrome/Chromium executable, empty when the driver should decide
func findChromeBinary(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

// NewSeleniumDriver - starts (or connects to) a WebDriver session
func NewSeleniumDriver(opts SeleniumOptions, logger *logrus.Logger) (*SeleniumDriver, error) {
	caps := selenium.Capabilities{"browserName": "chrome"}
	chromeCaps := chrome.Capabilities{
		Args: []string{
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	}
	if opts.Headless {
		chromeCaps.Args = append(chromeCaps.Args, "--headless=new")
	}
	if binary := findChromeBinary(opts.ChromeBinary); binary != "" {
		logger.Infof("Using Chrome binary at: %s", binary)
		chromeCaps.Path = binary
	}
	caps.AddChrome(chromeCaps)

	remoteURL := opts.RemoteURL
	var service *selenium.Service
	if remoteURL == "" {
		driverPath, err := findChromeDriver(opts.ChromeDriverPath)
		if err != nil {
			return nil, fmt.Errorf("failed to find chromedriver: %w", err)
		}
		logger.Infof("Using ChromeDriver at: %s", driverPath)

		port := opts.Port
		if port == 0 {
			port = 9515
		}
		service, err = selenium.NewChromeDriverService(driverPath, port)
		if err != nil {
			return nil, fmt.Errorf("failed to start chromedriver: %w", err)
		}
		remoteURL = fmt.Sprintf("http://localhost:%d/wd/hub", port)
	}

	wd, err := selenium.NewRemote(caps, remoteURL)
	if err != nil {
		if service != nil {
			_ = service.Stop()
		}
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, fmt.Errorf("failed to create webdriver: Chrome browser not found, set PAGES_CHROME_BINARY: %w", err)
		}
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}

	return &SeleniumDriver{wd: wd, service: service, logger: logger}, nil
}

// Navigate - navigates browser to specified URL
func (s *SeleniumDriver) Navigate(url string) error {
	s.logger.Infof("Navigating to: %s", url)
	return translateSeleniumError(s.wd.Get(url))
}

func (s *SeleniumDriver) FindNode(lookup entities.LookUp, locator string) (interfaces.Node, error) {
	by, err := seleniumStrategy(lookup)
	if err != nil {
		return nil, err
	}
	element, err := s.wd.FindElement(by, locator)
	if err != nil {
		return nil, translateSeleniumError(err)
	}
	return &seleniumNode{el: element}, nil
}

func (s *SeleniumDriver) FindNodes(lookup entities.LookUp, locator string) ([]interfaces.Node, error) {
	by, err := seleniumStrategy(lookup)
	if err != nil {
		return nil, err
	}
	elements, err := s.wd.FindElements(by, locator)
	if err != nil {
		return nil, translateSeleniumError(err)
	}
	return wrapSeleniumElements(elements), nil
}

func (s *SeleniumDriver) CurrentWindowHandle() (string, error) {
	handle, err := s.wd.CurrentWindowHandle()
	return handle, translateSeleniumError(err)
}

func (s *SeleniumDriver) WindowHandles() ([]string, error) {
	handles, err := s.wd.WindowHandles()
	return handles, translateSeleniumError(err)
}

func (s *SeleniumDriver) SwitchToWindow(handle string) error {
	s.logger.Debugf("Switching to window: %s", handle)
	return translateSeleniumError(s.wd.SwitchWindow(handle))
}

// Close - quits the session and stops ChromeDriver service
func (s *SeleniumDriver) Close() error {
	var errs []error
	if s.wd != nil {
		errs = append(errs, s.wd.Quit())
	}
	if s.service != nil {
		errs = append(errs, s.service.Stop())
	}
	return errors.Join(errs...)
}

func seleniumStrategy(lookup entities.LookUp) (string, error) {
	by, ok := seleniumBy[lookup]
	if !ok {
		return "", fmt.Errorf("unsupported lookup strategy: %s", lookup)
	}
	return by, nil
}

// translateSeleniumError maps WebDriver error codes onto the driver signals
func translateSeleniumError(err error) error {
	if err == nil {
		return nil
	}
	var wdErr *selenium.Error
	if !errors.As(err, &wdErr) {
		return err
	}
	switch wdErr.Err {
	case "no such element":
		return fmt.Errorf("%w: %s", interfaces.ErrNoSuchElement, wdErr.Message)
	case "stale element reference":
		return fmt.Errorf("%w: %s", interfaces.ErrStaleElement, wdErr.Message)
	case "element not visible", "element not interactable":
		return fmt.Errorf("%w: %s", interfaces.ErrElementNotVisible, wdErr.Message)
	}
	return err
}

func wrapSeleniumElements(elements []selenium.WebElement) []interfaces.Node {
	nodes := make([]interfaces.Node, 0, len(elements))
	for _, el := range elements {
		nodes = append(nodes, &seleniumNode{el: el})
	}
	return nodes
}

// seleniumNode adapts a WebElement to interfaces.Node
type seleniumNode struct {
	el selenium.WebElement
}

func (n *seleniumNode) Clear() error { return translateSeleniumError(n.el.Clear()) }

func (n *seleniumNode) Click() error { return translateSeleniumError(n.el.Click()) }

func (n *seleniumNode) Submit() error { return translateSeleniumError(n.el.Submit()) }

func (n *seleniumNode) SendKeys(keys string) error {
	return translateSeleniumError(n.el.SendKeys(keys))
}

func (n *seleniumNode) Attribute(name string) (string, error) {
	value, err := n.el.GetAttribute(name)
	switch {
	case err == nil:
		return value, nil
	case err.Error() == "nil return value":
		// attribute not present
		return "", nil
	}
	return "", translateSeleniumError(err)
}

func (n *seleniumNode) TagName() (string, error) {
	tag, err := n.el.TagName()
	return tag, translateSeleniumError(err)
}

func (n *seleniumNode) Text() (string, error) {
	text, err := n.el.Text()
	return text, translateSeleniumError(err)
}

func (n *seleniumNode) IsEnabled() (bool, error) {
	enabled, err := n.el.IsEnabled()
	return enabled, translateSeleniumError(err)
}

func (n *seleniumNode) IsSelected() (bool, error) {
	selected, err := n.el.IsSelected()
	return selected, translateSeleniumError(err)
}

func (n *seleniumNode) IsDisplayed() (bool, error) {
	displayed, err := n.el.IsDisplayed()
	return displayed, translateSeleniumError(err)
}

func (n *seleniumNode) CSSValue(property string) (string, error) {
	value, err := n.el.CSSProperty(property)
	return value, translateSeleniumError(err)
}

func (n *seleniumNode) Location() (entities.Point, error) {
	p, err := n.el.Location()
	if err != nil {
		return entities.Point{}, translateSeleniumError(err)
	}
	return entities.Point{X: p.X, Y: p.Y}, nil
}

func (n *seleniumNode) Size() (entities.Size, error) {
	s, err := n.el.Size()
	if err != nil {
		return entities.Size{}, translateSeleniumError(err)
	}
	return entities.Size{Width: s.Width, Height: s.Height}, nil
}

func (n *seleniumNode) FindNode(lookup entities.LookUp, locator string) (interfaces.Node, error) {
	by, err := seleniumStrategy(lookup)
	if err != nil {
		return nil, err
	}
	element, err := n.el.FindElement(by, locator)
	if err != nil {
		return nil, translateSeleniumError(err)
	}
	return &seleniumNode{el: element}, nil
}

func (n *seleniumNode) FindNodes(lookup entities.LookUp, locator string) ([]interfaces.Node, error) {
	by, err := seleniumStrategy(lookup)
	if err != nil {
		return nil, err
	}
	elements, err := n.el.FindElements(by, locator)
	if err != nil {
		return nil, translateSeleniumError(err)
	}
	return wrapSeleniumElements(elements), nil
}
