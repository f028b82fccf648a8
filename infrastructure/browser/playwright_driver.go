package browser

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"page_automation/domain/entities"
	"page_automation/domain/interfaces"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// PlaywrightOptions configures a Playwright driven Chromium session
type PlaywrightOptions struct {
	Headless bool
	// ActionTimeout bounds every Playwright action, in milliseconds
	ActionTimeout float64
	// StatePath, when set, loads and saves cookies and local storage between runs
	StatePath string
}

// PlaywrightDriver drives Chromium through Playwright. Every tab is a window
// whose handle is assigned when the tab opens.
type PlaywrightDriver struct {
	pw        *playwright.Playwright
	browser   playwright.Browser
	context   playwright.BrowserContext
	statePath string
	logger    *logrus.Logger

	pagesMutex sync.Mutex
	page       playwright.Page
	handles    map[playwright.Page]string
	pages      map[string]playwright.Page
	nextHandle int
}

// NewPlaywrightDriver - launches Chromium and opens the first window
func NewPlaywrightDriver(opts PlaywrightOptions, logger *logrus.Logger) (*PlaywrightDriver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	contextOptions := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
		JavaScriptEnabled: playwright.Bool(true),
		IgnoreHttpsErrors: playwright.Bool(true),
	}

	if opts.StatePath != "" {
		if data, err := os.ReadFile(opts.StatePath); err == nil {
			var storageState playwright.StorageState
			if err := json.Unmarshal(data, &storageState); err == nil {
				contextOptions.StorageState = storageState.ToOptionalStorageState()
			} else {
				logger.Warnf("Ignoring unreadable browser state %s: %v", opts.StatePath, err)
			}
		}
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args: []string{
			"--disable-popup-blocking",
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := browser.NewContext(contextOptions)
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}
	if opts.ActionTimeout > 0 {
		context.SetDefaultTimeout(opts.ActionTimeout)
	}

	d := &PlaywrightDriver{
		pw:        pw,
		browser:   browser,
		context:   context,
		statePath: opts.StatePath,
		logger:    logger,
		handles:   make(map[playwright.Page]string),
		pages:     make(map[string]playwright.Page),
	}

	context.OnPage(func(newPage playwright.Page) {
		handle := d.track(newPage)
		logger.Debugf("Window opened: %s", handle)
	})

	page, err := context.NewPage()
	if err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	d.track(page)

	d.pagesMutex.Lock()
	d.page = page
	d.pagesMutex.Unlock()

	return d, nil
}

// track assigns a window handle to p once
func (d *PlaywrightDriver) track(p playwright.Page) string {
	d.pagesMutex.Lock()
	defer d.pagesMutex.Unlock()

	if handle, ok := d.handles[p]; ok {
		return handle
	}
	d.nextHandle++
	handle := fmt.Sprintf("window-%d", d.nextHandle)
	d.handles[p] = handle
	d.pages[handle] = p

	p.OnDialog(func(dialog playwright.Dialog) {
		_ = dialog.Accept()
	})
	p.OnClose(func(closedPage playwright.Page) {
		d.pagesMutex.Lock()
		defer d.pagesMutex.Unlock()
		delete(d.pages, d.handles[closedPage])
		delete(d.handles, closedPage)
		if d.page == closedPage {
			d.page = nil
			for _, remaining := range d.pages {
				d.page = remaining
				break
			}
		}
	})
	return handle
}

func (d *PlaywrightDriver) current() (playwright.Page, error) {
	d.pagesMutex.Lock()
	defer d.pagesMutex.Unlock()
	if d.page == nil {
		return nil, errors.New("no open window")
	}
	return d.page, nil
}

// Navigate - navigates the focused window to the specified URL
func (d *PlaywrightDriver) Navigate(url string) error {
	page, err := d.current()
	if err != nil {
		return err
	}
	d.logger.Infof("Navigating to: %s", url)
	_, err = page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return err
}

func (d *PlaywrightDriver) FindNode(lookup entities.LookUp, locator string) (interfaces.Node, error) {
	page, err := d.current()
	if err != nil {
		return nil, err
	}
	selector, err := playwrightSelector(lookup, locator)
	if err != nil {
		return nil, err
	}
	el, err := page.QuerySelector(selector)
	if err != nil {
		return nil, translatePlaywrightError(err)
	}
	if el == nil {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrNoSuchElement, selector)
	}
	return &playwrightNode{el: el}, nil
}

func (d *PlaywrightDriver) FindNodes(lookup entities.LookUp, locator string) ([]interfaces.Node, error) {
	page, err := d.current()
	if err != nil {
		return nil, err
	}
	selector, err := playwrightSelector(lookup, locator)
	if err != nil {
		return nil, err
	}
	els, err := page.QuerySelectorAll(selector)
	if err != nil {
		return nil, translatePlaywrightError(err)
	}
	return wrapElementHandles(els), nil
}

func (d *PlaywrightDriver) CurrentWindowHandle() (string, error) {
	page, err := d.current()
	if err != nil {
		return "", err
	}
	d.pagesMutex.Lock()
	defer d.pagesMutex.Unlock()
	return d.handles[page], nil
}

// WindowHandles returns the handles of all open windows in the order they opened
func (d *PlaywrightDriver) WindowHandles() ([]string, error) {
	handles := make([]string, 0)
	for _, p := range d.context.Pages() {
		handles = append(handles, d.track(p))
	}
	return handles, nil
}

func (d *PlaywrightDriver) SwitchToWindow(handle string) error {
	d.pagesMutex.Lock()
	page, ok := d.pages[handle]
	if ok {
		d.page = page
	}
	d.pagesMutex.Unlock()

	if !ok {
		return fmt.Errorf("no such window: %s", handle)
	}
	d.logger.Debugf("Switching to window: %s", handle)
	return page.BringToFront()
}

// SaveState - saves browser state to persistent storage
func (d *PlaywrightDriver) SaveState() error {
	if d.context == nil || d.statePath == "" {
		return nil
	}
	if _, err := d.context.StorageState(d.statePath); err != nil {
		if isClosedError(err) {
			return nil
		}
		return fmt.Errorf("failed to save browser state: %w", err)
	}
	return nil
}

// Close - saves state, then closes the context, the browser and Playwright
func (d *PlaywrightDriver) Close() error {
	var errs []error
	if err := d.SaveState(); err != nil {
		errs = append(errs, err)
	}
	if d.context != nil {
		if err := d.context.Close(); err != nil && !isClosedError(err) {
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
		d.context = nil
	}
	if d.browser != nil {
		if err := d.browser.Close(); err != nil && !isClosedError(err) {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
		d.browser = nil
	}
	if d.pw != nil {
		if err := d.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
		d.pw = nil
	}
	return errors.Join(errs...)
}

func isClosedError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "closed") || strings.Contains(msg, "target closed")
}

// playwrightSelector converts a lookup strategy into a Playwright selector
func playwrightSelector(lookup entities.LookUp, locator string) (string, error) {
	switch lookup {
	case entities.ByXPath:
		return "xpath=" + locator, nil
	case entities.ByCSSSelector:
		return "css=" + locator, nil
	case entities.ByID:
		return "id=" + locator, nil
	case entities.ByName:
		return fmt.Sprintf("css=[name=%q]", locator), nil
	case entities.ByClassName:
		return "css=." + locator, nil
	case entities.ByTagName:
		return "css=" + locator, nil
	case entities.ByLinkText:
		return fmt.Sprintf("xpath=.//a[normalize-space(.)=%s]", xpathLiteral(locator)), nil
	case entities.ByPartialLinkText:
		return fmt.Sprintf("xpath=.//a[contains(., %s)]", xpathLiteral(locator)), nil
	}
	return "", fmt.Errorf("unsupported lookup strategy: %s", lookup)
}

// xpathLiteral quotes s as an XPath string literal
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	return "concat('" + strings.Join(parts, `', "'", '`) + "')"
}

func translatePlaywrightError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not attached to the DOM"), strings.Contains(msg, "detached"):
		return fmt.Errorf("%w: %w", interfaces.ErrStaleElement, err)
	case strings.Contains(msg, "not visible"):
		return fmt.Errorf("%w: %w", interfaces.ErrElementNotVisible, err)
	case errors.Is(err, playwright.ErrTimeout):
		// actions wait for actionability; running out of time means the node never became usable
		return fmt.Errorf("%w: %w", interfaces.ErrElementNotVisible, err)
	}
	return err
}

func wrapElementHandles(els []playwright.ElementHandle) []interfaces.Node {
	nodes := make([]interfaces.Node, 0, len(els))
	for _, el := range els {
		nodes = append(nodes, &playwrightNode{el: el})
	}
	return nodes
}

// playwrightNode adapts an ElementHandle to interfaces.Node
type playwrightNode struct {
	el playwright.ElementHandle
}

func (n *playwrightNode) evaluate(expression string, arg ...interface{}) (interface{}, error) {
	v, err := n.el.Evaluate(expression, arg...)
	return v, translatePlaywrightError(err)
}

func (n *playwrightNode) Clear() error { return translatePlaywrightError(n.el.Fill("")) }

func (n *playwrightNode) Click() error { return translatePlaywrightError(n.el.Click()) }

func (n *playwrightNode) Submit() error {
	_, err := n.evaluate(`el => { const f = el.form || el.closest('form'); if (f) f.requestSubmit(); }`)
	return err
}

func (n *playwrightNode) SendKeys(keys string) error {
	return translatePlaywrightError(n.el.Type(keys))
}

func (n *playwrightNode) Attribute(name string) (string, error) {
	value, err := n.el.GetAttribute(name)
	return value, translatePlaywrightError(err)
}

func (n *playwrightNode) TagName() (string, error) {
	v, err := n.evaluate(`el => el.tagName.toLowerCase()`)
	if err != nil {
		return "", err
	}
	tag, _ := v.(string)
	return tag, nil
}

func (n *playwrightNode) Text() (string, error) {
	text, err := n.el.InnerText()
	return text, translatePlaywrightError(err)
}

func (n *playwrightNode) IsEnabled() (bool, error) {
	enabled, err := n.el.IsEnabled()
	return enabled, translatePlaywrightError(err)
}

func (n *playwrightNode) IsSelected() (bool, error) {
	v, err := n.evaluate(`el => !!(el.checked || el.selected)`)
	if err != nil {
		return false, err
	}
	selected, _ := v.(bool)
	return selected, nil
}

func (n *playwrightNode) IsDisplayed() (bool, error) {
	visible, err := n.el.IsVisible()
	return visible, translatePlaywrightError(err)
}

func (n *playwrightNode) CSSValue(property string) (string, error) {
	v, err := n.evaluate(`(el, p) => getComputedStyle(el).getPropertyValue(p)`, property)
	if err != nil {
		return "", err
	}
	value, _ := v.(string)
	return value, nil
}

func (n *playwrightNode) Location() (entities.Point, error) {
	box, err := n.el.BoundingBox()
	if err != nil {
		return entities.Point{}, translatePlaywrightError(err)
	}
	if box == nil {
		return entities.Point{}, fmt.Errorf("%w: element has no bounding box", interfaces.ErrElementNotVisible)
	}
	return entities.Point{X: int(box.X), Y: int(box.Y)}, nil
}

func (n *playwrightNode) Size() (entities.Size, error) {
	box, err := n.el.BoundingBox()
	if err != nil {
		return entities.Size{}, translatePlaywrightError(err)
	}
	if box == nil {
		return entities.Size{}, fmt.Errorf("%w: element has no bounding box", interfaces.ErrElementNotVisible)
	}
	return entities.Size{Width: int(box.Width), Height: int(box.Height)}, nil
}

func (n *playwrightNode) FindNode(lookup entities.LookUp, locator string) (interfaces.Node, error) {
	selector, err := playwrightSelector(lookup, locator)
	if err != nil {
		return nil, err
	}
	el, err := n.el.QuerySelector(selector)
	if err != nil {
		return nil, translatePlaywrightError(err)
	}
	if el == nil {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrNoSuchElement, selector)
	}
	return &playwrightNode{el: el}, nil
}

func (n *playwrightNode) FindNodes(lookup entities.LookUp, locator string) ([]interfaces.Node, error) {
	selector, err := playwrightSelector(lookup, locator)
	if err != nil {
		return nil, err
	}
	els, err := n.el.QuerySelectorAll(selector)
	if err != nil {
		return nil, translatePlaywrightError(err)
	}
	return wrapElementHandles(els), nil
}
