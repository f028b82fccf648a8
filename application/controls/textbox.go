// Package controls provides the concrete control families built on element handles.
//
// Every family offers three builder constructors: one taking an explicit lookup
// and locator, one splicing an identifier into the family's default XPath
// template, and, where the family has one, a default without an identifier.
package controls

import (
	"fmt"

	"page_automation/application/elements"
	"page_automation/domain/entities"
	"page_automation/domain/interfaces"
)

const textBoxTemplate = "/input[@type='text' %s]"

// TextBox is a single line text input. It cannot link to other pages.
type TextBox struct {
	*elements.Handle
}

func newTextBox(h *elements.Handle) *TextBox { return &TextBox{h} }

func NewTextBox(page interfaces.Page, lookup entities.LookUp, locator string) *elements.Builder[*TextBox] {
	return elements.NewBuilder(page, elements.KindTextBox, lookup, locator, newTextBox)
}

// NewTextBoxIdentified narrows the default template with an XPath predicate, e.g. "@id='user'"
func NewTextBoxIdentified(page interfaces.Page, identifier string) *elements.Builder[*TextBox] {
	return NewTextBox(page, entities.ByXPath, fmt.Sprintf(textBoxTemplate, "and "+identifier))
}

func NewDefaultTextBox(page interfaces.Page) *elements.Builder[*TextBox] {
	return NewTextBox(page, entities.ByXPath, fmt.Sprintf(textBoxTemplate, ""))
}

// SetText replaces the current value
func (t *TextBox) SetText(text string) error {
	if err := t.Clear(); err != nil {
		return err
	}
	return t.SendKeys(text)
}

// Value returns the value attribute
func (t *TextBox) Value() (string, error) {
	return t.Attribute("value")
}
