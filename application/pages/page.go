// Package pages provides the page objects that own element registries:
// top-level pages, pages nested under a parent, and pages that open in a
// window of their own.
package pages

import (
	"errors"
	"fmt"
	"strings"

	"page_automation/application/elements"
	"page_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const pathDelimiter = "->"

var ErrNoURL = errors.New("page has no url")

// Registered is a page that owns a registry of controls
type Registered interface {
	interfaces.Page
	Elements() *elements.Registry
}

// Page is a titled page backed by a driver
type Page struct {
	title       string
	url         string
	driver      interfaces.Driver
	defaultWait int
	hook        func() error
	logger      *logrus.Logger
	elements    *elements.Registry
}

type Option func(*Page)

func WithURL(url string) Option {
	return func(p *Page) { p.url = url }
}

// WithDefaultWait sets the visibility timeout, in seconds, given to controls built for the page
func WithDefaultWait(seconds int) Option {
	return func(p *Page) { p.defaultWait = seconds }
}

// WithWaitHook runs hook on every visibility poll of the page's controls
func WithWaitHook(hook func() error) Option {
	return func(p *Page) { p.hook = hook }
}

// NewPage - creates a page with an empty registry
func NewPage(title string, driver interfaces.Driver, logger *logrus.Logger, opts ...Option) *Page {
	p := &Page{
		title:    title,
		driver:   driver,
		logger:   logger,
		elements: elements.NewRegistry(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Page) Driver() interfaces.Driver { return p.driver }

func (p *Page) DefaultWaitSeconds() int { return p.defaultWait }

func (p *Page) Title() string { return p.title }

func (p *Page) URL() string { return p.url }

func (p *Page) WaitHook() func() error { return p.hook }

func (p *Page) Elements() *elements.Registry { return p.elements }

// Register - adds controls to the page's registry under their labels or localizations
func (p *Page) Register(controls ...elements.Control) error {
	for _, c := range controls {
		if err := p.elements.Put(c); err != nil {
			return err
		}
	}
	return nil
}

// RegisterAs - adds a control under an explicit key
func (p *Page) RegisterAs(key string, c elements.Control) error {
	return p.elements.PutAs(key, c)
}

// Find - looks up a registered control, optionally filling its template identifiers
func (p *Page) Find(label string, identifiers ...string) (elements.Control, error) {
	return p.elements.Find(label, identifiers...)
}

// GoTo - navigates the driver to the page's url
func (p *Page) GoTo() error {
	if p.url == "" {
		return fmt.Errorf("%w: %s", ErrNoURL, p.title)
	}

	p.logger.WithFields(logrus.Fields{"page": p.title, "url": p.url}).Info("navigating")
	if err := p.driver.Navigate(p.url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", p.title, err)
	}
	return nil
}

func (p *Page) String() string {
	return "Location : " + Path(p)
}

// FindAs looks up a registered control of type T
func FindAs[T elements.Control](page Registered, label string, identifiers ...string) (T, error) {
	return elements.FindAs[T](page.Elements(), label, identifiers...)
}

// Path is the breadcrumb of page titles from the outermost parent down to page
func Path(page interfaces.Page) string {
	var titles []string
	for page != nil {
		titles = append(titles, page.Title())
		child, ok := page.(interfaces.ParentPage)
		if !ok {
			break
		}
		page = child.ParentPage()
	}

	for i, j := 0, len(titles)-1; i < j; i, j = i+1, j-1 {
		titles[i], titles[j] = titles[j], titles[i]
	}
	return strings.Join(titles, pathDelimiter)
}
