package browser

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"page_automation/domain/entities"
	"page_automation/domain/interfaces"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// DocumentDriver is a browserless driver over parsed HTML documents. It has
// no script engine and no layout: visibility comes from hidden attributes and
// inline styles, and Location/Size are always zero. Clicking toggles
// checkboxes, radio buttons and options, and follows anchors.
type DocumentDriver struct {
	mu      sync.Mutex
	logger  *logrus.Logger
	client  *http.Client
	windows map[string]*docWindow
	order   []string
	current string
	next    int
}

type docWindow struct {
	handle     string
	location   *url.URL
	root       *html.Node
	generation int
}

// NewDocumentDriver creates a driver with one empty window
func NewDocumentDriver(logger *logrus.Logger) *DocumentDriver {
	d := &DocumentDriver{
		logger:  logger,
		client:  &http.Client{Timeout: 30 * time.Second},
		windows: make(map[string]*docWindow),
	}
	w := d.openWindow()
	d.current = w.handle
	return d
}

func (d *DocumentDriver) openWindow() *docWindow {
	d.next++
	w := &docWindow{handle: fmt.Sprintf("document-%d", d.next)}
	w.root, _ = html.Parse(strings.NewReader("<html><head></head><body></body></html>"))
	d.windows[w.handle] = w
	d.order = append(d.order, w.handle)
	return w
}

// LoadHTML replaces the focused window's document. Nodes found before the
// reload report ErrStaleElement.
func (d *DocumentDriver) LoadHTML(content string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load(d.windows[d.current], nil, strings.NewReader(content))
}

func (d *DocumentDriver) load(w *docWindow, location *url.URL, r io.Reader) error {
	root, err := html.Parse(r)
	if err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}
	w.root = root
	w.location = location
	w.generation++
	return nil
}

// Navigate loads an http(s) URL, a file:// URL or a local path into the focused window
func (d *DocumentDriver) Navigate(rawURL string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.navigate(d.windows[d.current], rawURL)
}

func (d *DocumentDriver) navigate(w *docWindow, rawURL string) error {
	location, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if w.location != nil {
		location = w.location.ResolveReference(location)
	}

	d.logger.Infof("Loading document: %s", location)

	switch location.Scheme {
	case "http", "https":
		resp, err := d.client.Get(location.String())
		if err != nil {
			return fmt.Errorf("failed to fetch %s: %w", location, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("failed to fetch %s: %s", location, resp.Status)
		}
		return d.load(w, location, resp.Body)
	case "file", "":
		data, err := os.ReadFile(location.Path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", location.Path, err)
		}
		return d.load(w, location, bytes.NewReader(data))
	}
	return fmt.Errorf("unsupported url scheme %q", location.Scheme)
}

func (d *DocumentDriver) FindNode(lookup entities.LookUp, locator string) (interfaces.Node, error) {
	d.mu.Lock()
	w := d.windows[d.current]
	d.mu.Unlock()

	nodes, err := query(w.root, lookup, locator)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s %s", interfaces.ErrNoSuchElement, lookup, locator)
	}
	return d.wrap(w, nodes[0]), nil
}

func (d *DocumentDriver) FindNodes(lookup entities.LookUp, locator string) ([]interfaces.Node, error) {
	d.mu.Lock()
	w := d.windows[d.current]
	d.mu.Unlock()

	nodes, err := query(w.root, lookup, locator)
	if err != nil {
		return nil, err
	}
	return d.wrapAll(w, nodes), nil
}

func (d *DocumentDriver) CurrentWindowHandle() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current, nil
}

func (d *DocumentDriver) WindowHandles() ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.order...), nil
}

func (d *DocumentDriver) SwitchToWindow(handle string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.windows[handle]; !ok {
		return fmt.Errorf("no such window: %s", handle)
	}
	d.current = handle
	return nil
}

func (d *DocumentDriver) wrap(w *docWindow, n *html.Node) *documentNode {
	return &documentNode{driver: d, window: w, generation: w.generation, node: n}
}

func (d *DocumentDriver) wrapAll(w *docWindow, nodes []*html.Node) []interfaces.Node {
	wrapped := make([]interfaces.Node, 0, len(nodes))
	for _, n := range nodes {
		wrapped = append(wrapped, d.wrap(w, n))
	}
	return wrapped
}

// query finds the element nodes under root matching the lookup
func query(root *html.Node, lookup entities.LookUp, locator string) ([]*html.Node, error) {
	switch lookup {
	case entities.ByXPath:
		nodes, err := htmlquery.QueryAll(root, locator)
		if err != nil {
			return nil, fmt.Errorf("invalid xpath %q: %w", locator, err)
		}
		return elementsOnly(nodes), nil
	case entities.ByLinkText:
		return query(root, entities.ByXPath, fmt.Sprintf(".//a[normalize-space(.)=%s]", xpathLiteral(locator)))
	case entities.ByPartialLinkText:
		return query(root, entities.ByXPath, fmt.Sprintf(".//a[contains(., %s)]", xpathLiteral(locator)))
	}

	var selector string
	switch lookup {
	case entities.ByCSSSelector, entities.ByTagName:
		selector = locator
	case entities.ByID:
		selector = fmt.Sprintf("[id=%q]", locator)
	case entities.ByName:
		selector = fmt.Sprintf("[name=%q]", locator)
	case entities.ByClassName:
		selector = "." + locator
	default:
		return nil, fmt.Errorf("unsupported lookup strategy: %s", lookup)
	}

	// goquery matches nothing for a selector it cannot compile
	return goquery.NewDocumentFromNode(root).Find(selector).Nodes, nil
}

func elementsOnly(nodes []*html.Node) []*html.Node {
	out := nodes[:0]
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			out = append(out, n)
		}
	}
	return out
}

// documentNode is a node of a DocumentDriver window
type documentNode struct {
	driver     *DocumentDriver
	window     *docWindow
	generation int
	node       *html.Node
}

// live fails with ErrStaleElement once the window reloaded or the node was detached
func (n *documentNode) live() error {
	n.driver.mu.Lock()
	defer n.driver.mu.Unlock()
	if n.window.generation != n.generation {
		return fmt.Errorf("%w: document was reloaded", interfaces.ErrStaleElement)
	}
	for p := n.node; p != nil; p = p.Parent {
		if p == n.window.root {
			return nil
		}
	}
	return fmt.Errorf("%w: node is no longer attached", interfaces.ErrStaleElement)
}

func (n *documentNode) Clear() error {
	if err := n.live(); err != nil {
		return err
	}
	if err := n.editable(); err != nil {
		return err
	}
	setValue(n.node, "")
	return nil
}

func (n *documentNode) SendKeys(keys string) error {
	if err := n.live(); err != nil {
		return err
	}
	if err := n.editable(); err != nil {
		return err
	}
	setValue(n.node, value(n.node)+keys)
	return nil
}

func (n *documentNode) editable() error {
	if !displayed(n.node) {
		return fmt.Errorf("%w: <%s> is hidden", interfaces.ErrElementNotVisible, n.node.Data)
	}
	if hasAttr(n.node, "disabled") {
		return fmt.Errorf("element <%s> is disabled", n.node.Data)
	}
	return nil
}

func (n *documentNode) Click() error {
	if err := n.live(); err != nil {
		return err
	}
	if !displayed(n.node) {
		return fmt.Errorf("%w: <%s> is hidden", interfaces.ErrElementNotVisible, n.node.Data)
	}
	if hasAttr(n.node, "disabled") {
		return nil
	}

	switch n.node.Data {
	case "input":
		switch strings.ToLower(attr(n.node, "type")) {
		case "checkbox":
			toggleAttr(n.node, "checked")
		case "radio":
			n.chooseRadio()
		}
	case "option":
		n.chooseOption()
	case "a":
		return n.follow()
	}
	return nil
}

func (n *documentNode) chooseRadio() {
	name := attr(n.node, "name")
	if name != "" {
		for _, other := range htmlquery.Find(n.window.root, fmt.Sprintf("//input[@type='radio' and @name=%s]", xpathLiteral(name))) {
			removeAttr(other, "checked")
		}
	}
	setAttr(n.node, "checked", "checked")
}

func (n *documentNode) chooseOption() {
	var sel *html.Node
	for p := n.node.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "select" {
			sel = p
			break
		}
	}
	if sel != nil && hasAttr(sel, "multiple") {
		toggleAttr(n.node, "selected")
		return
	}
	if sel != nil {
		for _, option := range htmlquery.Find(sel, ".//option") {
			removeAttr(option, "selected")
		}
	}
	setAttr(n.node, "selected", "selected")
}

// follow loads an anchor's target, in a new window when target="_blank"
func (n *documentNode) follow() error {
	href := attr(n.node, "href")
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
		return nil
	}

	d := n.driver
	d.mu.Lock()
	defer d.mu.Unlock()

	w := n.window
	if attr(n.node, "target") == "_blank" {
		opened := d.openWindow()
		opened.location = w.location
		w = opened
	}
	if err := d.navigate(w, href); err != nil {
		d.logger.Warnf("Could not follow link %s: %v", href, err)
	}
	return nil
}

func (n *documentNode) Submit() error {
	if err := n.live(); err != nil {
		return err
	}
	n.driver.logger.Debugf("Submit on <%s> has no effect without a script engine", n.node.Data)
	return nil
}

func (n *documentNode) Attribute(name string) (string, error) {
	if err := n.live(); err != nil {
		return "", err
	}
	switch name {
	case "checked", "selected", "disabled", "multiple", "readonly", "required", "hidden":
		if hasAttr(n.node, name) {
			return "true", nil
		}
		return "", nil
	case "value":
		return value(n.node), nil
	}
	return attr(n.node, name), nil
}

func (n *documentNode) TagName() (string, error) {
	if err := n.live(); err != nil {
		return "", err
	}
	return n.node.Data, nil
}

func (n *documentNode) Text() (string, error) {
	if err := n.live(); err != nil {
		return "", err
	}
	if !displayed(n.node) {
		return "", nil
	}
	return strings.Join(strings.Fields(htmlquery.InnerText(n.node)), " "), nil
}

func (n *documentNode) IsEnabled() (bool, error) {
	if err := n.live(); err != nil {
		return false, err
	}
	return !hasAttr(n.node, "disabled"), nil
}

func (n *documentNode) IsSelected() (bool, error) {
	if err := n.live(); err != nil {
		return false, err
	}
	return hasAttr(n.node, "checked") || hasAttr(n.node, "selected"), nil
}

func (n *documentNode) IsDisplayed() (bool, error) {
	if err := n.live(); err != nil {
		return false, err
	}
	return displayed(n.node), nil
}

func (n *documentNode) CSSValue(property string) (string, error) {
	if err := n.live(); err != nil {
		return "", err
	}
	return inlineStyle(n.node)[strings.ToLower(property)], nil
}

func (n *documentNode) Location() (entities.Point, error) {
	return entities.Point{}, n.live()
}

func (n *documentNode) Size() (entities.Size, error) {
	return entities.Size{}, n.live()
}

func (n *documentNode) FindNode(lookup entities.LookUp, locator string) (interfaces.Node, error) {
	if err := n.live(); err != nil {
		return nil, err
	}
	nodes, err := query(n.node, lookup, locator)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s %s", interfaces.ErrNoSuchElement, lookup, locator)
	}
	return n.driver.wrap(n.window, nodes[0]), nil
}

func (n *documentNode) FindNodes(lookup entities.LookUp, locator string) ([]interfaces.Node, error) {
	if err := n.live(); err != nil {
		return nil, err
	}
	nodes, err := query(n.node, lookup, locator)
	if err != nil {
		return nil, err
	}
	return n.driver.wrapAll(n.window, nodes), nil
}

// displayed reports whether neither n nor an ancestor is hidden
func displayed(n *html.Node) bool {
	if n.Data == "input" && strings.EqualFold(attr(n, "type"), "hidden") {
		return false
	}
	for p := n; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		if hasAttr(p, "hidden") {
			return false
		}
		style := inlineStyle(p)
		if style["display"] == "none" || style["visibility"] == "hidden" {
			return false
		}
	}
	return true
}

func inlineStyle(n *html.Node) map[string]string {
	style := make(map[string]string)
	for _, decl := range strings.Split(attr(n, "style"), ";") {
		property, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		style[strings.ToLower(strings.TrimSpace(property))] = strings.TrimSpace(value)
	}
	return style
}

func value(n *html.Node) string {
	if n.Data == "textarea" {
		return htmlquery.InnerText(n)
	}
	return attr(n, "value")
}

func setValue(n *html.Node, v string) {
	if n.Data == "textarea" {
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			n.RemoveChild(c)
			c = next
		}
		n.AppendChild(&html.Node{Type: html.TextNode, Data: v})
		return
	}
	setAttr(n, "value", v)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}

func toggleAttr(n *html.Node, key string) {
	if hasAttr(n, key) {
		removeAttr(n, key)
		return
	}
	setAttr(n, key, key)
}

var _ interfaces.Driver = (*DocumentDriver)(nil)

// Close releases idle http connections
func (d *DocumentDriver) Close() error {
	d.client.CloseIdleConnections()
	return nil
}
