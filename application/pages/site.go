package pages

import (
	"errors"
	"fmt"
	"strings"

	"page_automation/application/elements"
	"page_automation/domain/entities"
	"page_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownPage    = errors.New("unknown page")
	ErrInvalidElement = errors.New("invalid element definition")
)

// Site is the set of pages built from definitions, in definition order
type Site struct {
	order []string
	pages map[string]Registered
}

func (s *Site) Pages() []Registered {
	pages := make([]Registered, 0, len(s.order))
	for _, title := range s.order {
		pages = append(pages, s.pages[title])
	}
	return pages
}

func (s *Site) Page(title string) (Registered, error) {
	page, ok := s.pages[title]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPage, title)
	}
	return page, nil
}

// BuildSite - creates every defined page, then builds and registers their controls.
// Parents are created before their children; links may point at any page.
func BuildSite(defs []entities.PageDefinition, driver interfaces.Driver, logger *logrus.Logger) (*Site, error) {
	site := &Site{pages: make(map[string]Registered, len(defs))}
	for _, def := range defs {
		site.order = append(site.order, def.Title)
	}

	pending := defs
	for len(pending) > 0 {
		var next []entities.PageDefinition
		for _, def := range pending {
			page, ready, err := site.newPage(def, driver, logger)
			if err != nil {
				return nil, err
			}
			if !ready {
				next = append(next, def)
				continue
			}
			site.pages[def.Title] = page
		}
		if len(next) == len(pending) {
			return nil, fmt.Errorf("%w: cannot resolve parents of %s", ErrUnknownPage, titles(next))
		}
		pending = next
	}

	for _, def := range defs {
		if err := site.populate(def); err != nil {
			return nil, err
		}
	}

	logger.WithField("pages", len(site.pages)).Debug("site built")
	return site, nil
}

func (s *Site) newPage(def entities.PageDefinition, driver interfaces.Driver, logger *logrus.Logger) (Registered, bool, error) {
	var opts []Option
	if def.URL != "" {
		opts = append(opts, WithURL(def.URL))
	}
	if def.DefaultWait > 0 {
		opts = append(opts, WithDefaultWait(def.DefaultWait))
	}

	if def.Parent == "" {
		if def.NewWindow {
			return nil, false, fmt.Errorf("%w: page %s opens in a new window but has no parent", ErrUnknownPage, def.Title)
		}
		return NewPage(def.Title, driver, logger, opts...), true, nil
	}

	parent, ok := s.pages[def.Parent]
	if !ok {
		return nil, false, nil
	}
	if def.NewWindow {
		return NewReportWindow(parent, def.Title, logger, opts...), true, nil
	}
	return NewSubPage(parent, def.Title, logger, opts...), true, nil
}

func (s *Site) populate(def entities.PageDefinition) error {
	page := s.pages[def.Title]
	keyed := make(map[string]elements.Control)

	for _, el := range def.Elements {
		var link interfaces.Page
		if el.LinksTo != "" {
			linked, err := s.Page(el.LinksTo)
			if err != nil {
				return err
			}
			link = linked
		}

		c, err := newControl(page, el, link)
		if err != nil {
			return fmt.Errorf("page %s: %w", def.Title, err)
		}
		if len(el.Identifiers) > 0 {
			c.Core().SetTemplateIdentifiers(el.Identifiers...)
		}

		if err := register(page.Elements(), el, c); err != nil {
			return fmt.Errorf("page %s: %w", def.Title, err)
		}

		for _, key := range append([]string{el.Key, el.Label}, el.Localizations...) {
			if key != "" {
				keyed[key] = c
			}
		}
	}

	for _, el := range def.Elements {
		if el.RelativeTo == "" {
			continue
		}
		parent, ok := keyed[el.RelativeTo]
		if !ok {
			return fmt.Errorf("%w: page %s has no element %q to be relative to", ErrInvalidElement, def.Title, el.RelativeTo)
		}
		child := keyed[elementKey(el)]
		if child.Core() == parent.Core() {
			return fmt.Errorf("%w: element %q of page %s is relative to itself", ErrInvalidElement, elementKey(el), def.Title)
		}
		if relativeCycle(child.Core(), parent.Core()) {
			return fmt.Errorf("%w: element %q of page %s is relative to %q, which is relative to it", ErrInvalidElement, elementKey(el), def.Title, el.RelativeTo)
		}
		child.Core().SetRelativeToParent(parent.Core())
	}
	return nil
}

// register stores c under its label and localizations, and under key when one is given
func register(registry *elements.Registry, el entities.ElementDefinition, c elements.Control) error {
	if el.Key == "" {
		return registry.Put(c)
	}
	if el.Label != "" || len(el.Localizations) > 0 {
		if err := registry.Put(c); err != nil {
			return err
		}
	}
	return registry.PutAs(el.Key, c)
}

// relativeCycle reports whether making child relative to parent closes a loop
func relativeCycle(child, parent *elements.Handle) bool {
	for p := parent; p != nil; p = p.RelativeParent() {
		if p == child {
			return true
		}
	}
	return false
}

func elementKey(el entities.ElementDefinition) string {
	switch {
	case el.Key != "":
		return el.Key
	case el.Label != "":
		return el.Label
	case len(el.Localizations) > 0:
		return el.Localizations[0]
	}
	return ""
}

func titles(defs []entities.PageDefinition) string {
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Title)
	}
	return strings.Join(names, ", ")
}
