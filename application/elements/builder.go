package elements

import (
	"fmt"

	"page_automation/domain/entities"
	"page_automation/domain/interfaces"
)

// Builder configures and constructs a control. The construct function wraps
// the core handle into the concrete control type; configuration is applied
// to the handle after construction.
type Builder[T Control] struct {
	page          interfaces.Page
	kind          Kind
	lookup        entities.LookUp
	locator       string
	label         string
	labeled       bool
	link          interfaces.Page
	localizations []string
	isTemplate    bool
	required      bool
	wait          int
	multiples     string
	construct     func(*Handle) T
}

func NewBuilder[T Control](page interfaces.Page, kind Kind, lookup entities.LookUp, locator string, construct func(*Handle) T) *Builder[T] {
	return &Builder[T]{
		page:      page,
		kind:      kind,
		lookup:    lookup,
		locator:   locator,
		construct: construct,
	}
}

// NewElementBuilder builds generic elements
func NewElementBuilder(page interfaces.Page, lookup entities.LookUp, locator string) *Builder[*Handle] {
	return NewBuilder(page, KindElement, lookup, locator, func(h *Handle) *Handle { return h })
}

func (b *Builder[T]) Label(label string) *Builder[T] {
	b.label = label
	b.labeled = true
	return b
}

// AddLocalization adds an alias. A localized element is always a template
// whose identifier is the alias it was found under.
func (b *Builder[T]) AddLocalization(localization string) *Builder[T] {
	b.localizations = append(b.localizations, localization)
	return b
}

func (b *Builder[T]) IsTemplate() *Builder[T] {
	b.isTemplate = true
	return b
}

func (b *Builder[T]) Required() *Builder[T] {
	b.required = true
	return b
}

// DefaultWaitInterval sets the visibility timeout in seconds, overriding the page's default
func (b *Builder[T]) DefaultWaitInterval(seconds int) *Builder[T] {
	b.wait = seconds
	return b
}

func (b *Builder[T]) HasMultiples(locator string) *Builder[T] {
	b.multiples = locator
	return b
}

func (b *Builder[T]) LinksTo(page interfaces.Page) *Builder[T] {
	b.link = page
	return b
}

func (b *Builder[T]) Build() T {
	h := newHandle(b.kind, b.page, b.lookup, b.locator, b.label, b.labeled, b.link)
	c := b.construct(h)

	if len(b.localizations) > 0 {
		h.SetIsTemplate()
		for _, localization := range b.localizations {
			h.AddLocalization(localization)
		}
	}
	if b.isTemplate {
		h.SetIsTemplate()
	}
	if b.required {
		h.SetRequired()
	}
	if b.multiples != "" {
		h.SetMultiplesLocator(b.multiples)
	}

	switch {
	case b.wait > 0:
		h.SetTimeout(b.wait)
	case b.page.DefaultWaitSeconds() > 0:
		h.SetTimeout(b.page.DefaultWaitSeconds())
	}

	return c
}

func (b *Builder[T]) String() string {
	title := ""
	if b.page != nil {
		title = b.page.Title()
	}
	return fmt.Sprintf("Parent : %s Element : %s LookUp : %s Locator : %s", title, b.kind, b.lookup, b.locator)
}
