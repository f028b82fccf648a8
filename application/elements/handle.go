package elements

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"page_automation/domain/entities"
	"page_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

var (
	settleMu    sync.RWMutex
	settleDelay = 2 * time.Second
)

// SetLinkSettleDelay sets how long GoToLink pauses after clicking, so a new page or window can appear
func SetLinkSettleDelay(d time.Duration) {
	settleMu.Lock()
	defer settleMu.Unlock()
	settleDelay = d
}

func linkSettleDelay() time.Duration {
	settleMu.RLock()
	defer settleMu.RUnlock()
	return settleDelay
}

// Handle is a lazily resolved reference to an element on a page.
//
// A handle never caches the node it resolves to: the browser may invalidate
// node references between any two calls (navigation, refresh, re-render), so
// every operation looks the element up again through the page's driver.
//
// The driver is not safe for concurrent use, so neither is resolution. The
// mutex only protects configuration fields against accidental concurrent
// reads and writes.
type Handle struct {
	page    interfaces.Page
	kind    Kind
	lookup  entities.LookUp
	locator string
	label   string
	labeled bool
	link    interfaces.Page

	mu            sync.Mutex
	localizations []string
	identifiers   []string
	isTemplate    bool
	required      bool
	timeout       int
	multiples     string
	parent        *Handle
}

// NewHandle creates an unlabelled generic element. It panics if page is nil.
func NewHandle(page interfaces.Page, lookup entities.LookUp, locator string) *Handle {
	return newHandle(KindElement, page, lookup, locator, "", false, nil)
}

func newHandle(kind Kind, page interfaces.Page, lookup entities.LookUp, locator, label string, labeled bool, link interfaces.Page) *Handle {
	if page == nil {
		panic("elements: handle requires a page")
	}
	if !lookup.Valid() {
		panic(fmt.Sprintf("elements: invalid lookup strategy %d", int(lookup)))
	}
	return &Handle{
		page:    page,
		kind:    kind,
		lookup:  lookup,
		locator: locator,
		label:   label,
		labeled: labeled,
		link:    link,
	}
}

// Core returns h itself; controls embedding a handle inherit it
func (h *Handle) Core() *Handle { return h }

func (h *Handle) Kind() Kind { return h.kind }

func (h *Handle) Page() interfaces.Page { return h.page }

func (h *Handle) LookUp() entities.LookUp { return h.lookup }

func (h *Handle) HasLabel() bool { return h.labeled }

// Label returns the label set through the builder
func (h *Handle) Label() (string, error) {
	if !h.labeled {
		return "", fmt.Errorf("%w: the label for this element was not set through its builder", entities.ErrLabelNotSet)
	}
	return h.label, nil
}

func (h *Handle) HasLink() bool { return h.link != nil }

func (h *Handle) Link() interfaces.Page { return h.link }

func (h *Handle) SetRequired() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.required = true
}

func (h *Handle) IsRequired() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.required
}

// SetRelativeToParent makes this handle's locator relative to parent's
// effective locator. It panics when parent is h or is already relative to h.
func (h *Handle) SetRelativeToParent(parent *Handle) {
	if parent == h {
		panic("elements: a handle cannot be relative to itself")
	}
	for p := parent; p != nil; p = p.RelativeParent() {
		if p == h {
			panic("elements: relative parents form a cycle")
		}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.parent = parent
}

func (h *Handle) IsRelativeToParent() bool {
	return h.RelativeParent() != nil
}

func (h *Handle) RelativeParent() *Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.parent
}

// AddLocalization registers an alias under which the element may be found
func (h *Handle) AddLocalization(localization string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !slices.Contains(h.localizations, localization) {
		h.localizations = append(h.localizations, localization)
	}
}

// Localizations returns a copy of the aliases, including the label
func (h *Handle) Localizations() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	all := make([]string, 0, len(h.localizations)+1)
	all = append(all, h.localizations...)
	if h.labeled && !slices.Contains(all, h.label) {
		all = append(all, h.label)
	}
	return all
}

func (h *Handle) HasLocalizations() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.localizations) > 0
}

// IsLocalization reports whether name is one of the element's aliases or its label
func (h *Handle) IsLocalization(name string) bool {
	return slices.Contains(h.Localizations(), name)
}

func (h *Handle) SetIsTemplate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.isTemplate = true
}

func (h *Handle) IsTemplate() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.isTemplate
}

// SetTemplateIdentifier replaces the identifiers with a single one
func (h *Handle) SetTemplateIdentifier(identifier string) {
	h.SetTemplateIdentifiers(identifier)
}

// SetTemplateIdentifiers replaces the identifiers substituted into the locator template
func (h *Handle) SetTemplateIdentifiers(identifiers ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.identifiers = TrimIdentifiers(identifiers)
}

// TemplateIdentifiers returns a copy of the identifiers. A template without
// identifiers of its own adopts those of a template relative parent, once.
func (h *Handle) TemplateIdentifiers() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.isTemplate && len(h.identifiers) == 0 && h.parent != nil && h.parent.IsTemplate() {
		h.identifiers = TrimIdentifiers(h.parent.TemplateIdentifiers())
	}
	return slices.Clone(h.identifiers)
}

// SetTimeout sets the default visibility wait in seconds
func (h *Handle) SetTimeout(seconds int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.timeout = seconds
}

func (h *Handle) Timeout() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.timeout
}

func (h *Handle) SetMultiplesLocator(locator string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.multiples = locator
}

func (h *Handle) MultiplesLocator() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.multiples
}

func (h *Handle) HasMultiples() bool {
	return h.MultiplesLocator() != ""
}

// Locator returns the effective locator: the relative parent's effective
// locator followed by this handle's locator, with identifiers substituted
// when the handle is a template.
func (h *Handle) Locator() (string, error) {
	var prefix string
	if parent := h.RelativeParent(); parent != nil {
		p, err := parent.Locator()
		if err != nil {
			return "", err
		}
		prefix = p
	}

	if !h.IsTemplate() {
		return JoinLocators(prefix, h.locator), nil
	}

	own, err := FormatLocator(h.locator, h.TemplateIdentifiers())
	if err != nil {
		return "", err
	}
	return JoinLocators(prefix, own), nil
}

// String describes the handle for diagnostics
func (h *Handle) String() string {
	locator, err := h.Locator()
	if err != nil {
		locator = h.locator
	}

	h.mu.Lock()
	hasLocalizations := len(h.localizations) > 0
	relative := h.parent != nil
	template := h.isTemplate
	h.mu.Unlock()

	return fmt.Sprintf("Parent Page : %T Element : %s LookUp : %s Locator : %s HasLocalizations : %t HasLabel : %t IsRelativeToParent : %t IsTemplate : %t",
		h.page, h.kind, h.lookup, locator, hasLocalizations, h.labeled, relative, template)
}

func (h *Handle) fields() logrus.Fields {
	return logrus.Fields{
		"element": h.kind.String(),
		"lookup":  h.lookup.String(),
		"label":   h.label,
	}
}

func (h *Handle) checkTemplate() error {
	if h.IsTemplate() && len(h.TemplateIdentifiers()) == 0 {
		return fmt.Errorf("%w: an identifier must be set with SetTemplateIdentifier for any element behaving as a template -> %s",
			entities.ErrTemplateMisuse, h)
	}
	return nil
}

// resolve looks the element up through the driver. A missing element yields a
// NullElement rather than an error, so predicates can answer false.
func (h *Handle) resolve() (interfaces.Node, error) {
	if err := h.checkTemplate(); err != nil {
		return nil, err
	}

	locator, err := h.Locator()
	if err != nil {
		return nil, err
	}

	node, err := h.page.Driver().FindNode(h.lookup, locator)
	switch {
	case err == nil && node != nil:
		return node, nil
	case err == nil, errors.Is(err, interfaces.ErrNoSuchElement):
		log().WithFields(h.fields()).WithField("locator", locator).Debug("element not found")
		return newNullElement(h), nil
	}
	return nil, h.automationFailure(err)
}

func (h *Handle) automationFailure(err error) error {
	return fmt.Errorf("%w for -> %s : %w", entities.ErrAutomationFailure, h, err)
}

// wrap converts a node error into an automation failure. Errors from the
// absent element already carry the descriptor and are returned as is.
func (h *Handle) wrap(err error) error {
	if err == nil || errors.Is(err, entities.ErrNotFound) {
		return err
	}
	return h.automationFailure(err)
}

// Wrap attributes an error from a node obtained through h to h
func (h *Handle) Wrap(err error) error {
	return h.wrap(err)
}

func call[T any](h *Handle, op func(interfaces.Node) (T, error)) (T, error) {
	var zero T
	node, err := h.resolve()
	if err != nil {
		return zero, err
	}
	v, err := op(node)
	if err != nil {
		return zero, h.wrap(err)
	}
	return v, nil
}

func (h *Handle) do(op func(interfaces.Node) error) error {
	node, err := h.resolve()
	if err != nil {
		return err
	}
	return h.wrap(op(node))
}

// Node resolves the handle; a missing element is returned as a *NullElement
func (h *Handle) Node() (interfaces.Node, error) {
	return h.resolve()
}

// Nodes resolves every node matching the handle's locator
func (h *Handle) Nodes() ([]interfaces.Node, error) {
	if err := h.checkTemplate(); err != nil {
		return nil, err
	}
	locator, err := h.Locator()
	if err != nil {
		return nil, err
	}
	nodes, err := h.page.Driver().FindNodes(h.lookup, locator)
	if err != nil {
		return nil, h.automationFailure(err)
	}
	return nodes, nil
}

// IsValid reports whether the handle resolves to a real node
func (h *Handle) IsValid() bool {
	node, err := h.resolve()
	if err != nil {
		log().WithFields(h.fields()).WithError(err).Debug("element could not be resolved")
		return false
	}
	return !isAbsent(node)
}

func (h *Handle) Clear() error { return h.do(interfaces.Node.Clear) }

func (h *Handle) Click() error { return h.do(interfaces.Node.Click) }

func (h *Handle) Submit() error { return h.do(interfaces.Node.Submit) }

func (h *Handle) SendKeys(keys string) error {
	return h.do(func(n interfaces.Node) error { return n.SendKeys(keys) })
}

func (h *Handle) Type(keys string) error { return h.SendKeys(keys) }

func (h *Handle) Attribute(name string) (string, error) {
	return call(h, func(n interfaces.Node) (string, error) { return n.Attribute(name) })
}

func (h *Handle) TagName() (string, error) { return call(h, interfaces.Node.TagName) }

func (h *Handle) Text() (string, error) { return call(h, interfaces.Node.Text) }

func (h *Handle) IsSelected() (bool, error) { return call(h, interfaces.Node.IsSelected) }

func (h *Handle) IsDisplayed() (bool, error) { return call(h, interfaces.Node.IsDisplayed) }

func (h *Handle) CSSValue(property string) (string, error) {
	return call(h, func(n interfaces.Node) (string, error) { return n.CSSValue(property) })
}

func (h *Handle) Location() (entities.Point, error) { return call(h, interfaces.Node.Location) }

func (h *Handle) Size() (entities.Size, error) { return call(h, interfaces.Node.Size) }

func (h *Handle) FindNode(lookup entities.LookUp, locator string) (interfaces.Node, error) {
	return call(h, func(n interfaces.Node) (interfaces.Node, error) { return n.FindNode(lookup, locator) })
}

func (h *Handle) FindNodes(lookup entities.LookUp, locator string) ([]interfaces.Node, error) {
	return call(h, func(n interfaces.Node) ([]interfaces.Node, error) { return n.FindNodes(lookup, locator) })
}

// IsEnabled treats a missing element as not enabled, and so does a hidden one
func (h *Handle) IsEnabled() (bool, error) {
	node, err := h.resolve()
	if err != nil {
		return false, err
	}

	enabled, err := node.IsEnabled()
	switch {
	case err == nil:
		return enabled, nil
	case errors.Is(err, entities.ErrNotFound):
		return h.IsValid(), nil
	case errors.Is(err, interfaces.ErrElementNotVisible):
		return false, nil
	}
	return false, h.automationFailure(err)
}

// Pause sleeps unconditionally. It is a settle-time heuristic and reports nothing.
func (h *Handle) Pause(d time.Duration) *Handle {
	time.Sleep(d)
	return h
}

// WaitUntilVisible blocks until the handle resolves to a displayed node
func (h *Handle) WaitUntilVisible(seconds int) error {
	_, err := NewWaiter(h, time.Duration(seconds)*time.Second, WithHook(pageHook(h.page))).Wait()
	return err
}

func (h *Handle) WhenVisible() Interactions {
	return &Visible{handle: h, seconds: h.Timeout()}
}

func (h *Handle) WhenVisibleWithin(seconds int) Interactions {
	return &Visible{handle: h, seconds: seconds}
}

// GoToLink clicks the handle and returns the page it links to.
//
// When the linked page opens in a new window, that window is identified by
// comparing window handles before and after the click: the first handle that
// is not the original window is taken. This assumes only one new window
// appears and that it appears within the settle delay.
func (h *Handle) GoToLink() (interfaces.Page, error) {
	if !h.kind.Linkable() {
		return nil, fmt.Errorf("%w: the %s object does not support links", entities.ErrLinkUnsupported, h.kind)
	}
	if h.link == nil {
		return nil, fmt.Errorf("%w: the link for this element was not set through its builder -> %s", entities.ErrLinkNotConfigured, h)
	}

	driver := h.page.Driver()
	origin, err := driver.CurrentWindowHandle()
	if err != nil {
		return nil, h.automationFailure(err)
	}

	if err := h.Click(); err != nil {
		return nil, err
	}
	h.Pause(linkSettleDelay())

	window, ok := h.link.(interfaces.NewWindowPage)
	if !ok {
		return h.link, nil
	}

	handles, err := driver.WindowHandles()
	if err != nil {
		return nil, h.automationFailure(err)
	}
	for _, handle := range handles {
		if handle == origin {
			continue
		}
		window.SetWindowHandle(handle)
		log().WithFields(h.fields()).WithField("window", handle).Debug("linked page opened in new window")
		return h.link, nil
	}

	log().WithFields(h.fields()).Warn("no new window appeared after following link")
	return h.link, nil
}

// GoToLinkAs follows the element's link and returns the linked page as T
func GoToLinkAs[T interfaces.Page](e Element) (T, error) {
	var zero T
	page, err := e.GoToLink()
	if err != nil {
		return zero, err
	}
	typed, ok := page.(T)
	if !ok {
		return zero, fmt.Errorf("linked page %T is not a %s", page, typeName[T]())
	}
	return typed, nil
}

func pageHook(page interfaces.Page) func() error {
	if hooker, ok := page.(interfaces.WaitHooker); ok {
		return hooker.WaitHook()
	}
	return nil
}
