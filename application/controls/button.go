package controls

import (
	"fmt"

	"page_automation/application/elements"
	"page_automation/domain/entities"
	"page_automation/domain/interfaces"
)

// ButtonType selects the input type a button template matches
type ButtonType int

const (
	StandardButton ButtonType = iota
	SubmitButton
)

const (
	standardButtonTemplate = "//input[@type='button' %s]"
	submitButtonTemplate   = "//input[@type='submit' %s]"
)

func (b ButtonType) template() string {
	if b == SubmitButton {
		return submitButtonTemplate
	}
	return standardButtonTemplate
}

type Button struct {
	*elements.Handle
}

func newButton(h *elements.Handle) *Button { return &Button{h} }

func NewButton(page interfaces.Page, lookup entities.LookUp, locator string) *elements.Builder[*Button] {
	return elements.NewBuilder(page, elements.KindButton, lookup, locator, newButton)
}

func NewButtonIdentified(page interfaces.Page, kind ButtonType, identifier string) *elements.Builder[*Button] {
	return NewButton(page, entities.ByXPath, fmt.Sprintf(kind.template(), "and "+identifier))
}

func NewDefaultButton(page interfaces.Page, kind ButtonType) *elements.Builder[*Button] {
	return NewButton(page, entities.ByXPath, fmt.Sprintf(kind.template(), ""))
}
