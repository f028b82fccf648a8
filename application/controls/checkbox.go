package controls

import (
	"fmt"

	"page_automation/application/elements"
	"page_automation/domain/entities"
	"page_automation/domain/interfaces"
)

const (
	checkBoxTemplate    = "/input[@type='checkbox' %s]"
	radioButtonTemplate = "/input[@type='radio' %s]"
)

type CheckBox struct {
	*elements.Handle
}

func newCheckBox(h *elements.Handle) *CheckBox { return &CheckBox{h} }

func NewCheckBox(page interfaces.Page, lookup entities.LookUp, locator string) *elements.Builder[*CheckBox] {
	return elements.NewBuilder(page, elements.KindCheckBox, lookup, locator, newCheckBox)
}

func NewCheckBoxIdentified(page interfaces.Page, identifier string) *elements.Builder[*CheckBox] {
	return NewCheckBox(page, entities.ByXPath, fmt.Sprintf(checkBoxTemplate, "and "+identifier))
}

func NewDefaultCheckBox(page interfaces.Page) *elements.Builder[*CheckBox] {
	return NewCheckBox(page, entities.ByXPath, fmt.Sprintf(checkBoxTemplate, ""))
}

// SetChecked clicks the box only when its state differs from checked
func (c *CheckBox) SetChecked(checked bool) error {
	return toggle(c.Handle, checked)
}

type RadioButton struct {
	*elements.Handle
}

func newRadioButton(h *elements.Handle) *RadioButton { return &RadioButton{h} }

func NewRadioButton(page interfaces.Page, lookup entities.LookUp, locator string) *elements.Builder[*RadioButton] {
	return elements.NewBuilder(page, elements.KindRadioButton, lookup, locator, newRadioButton)
}

func NewRadioButtonIdentified(page interfaces.Page, identifier string) *elements.Builder[*RadioButton] {
	return NewRadioButton(page, entities.ByXPath, fmt.Sprintf(radioButtonTemplate, "and "+identifier))
}

func NewDefaultRadioButton(page interfaces.Page) *elements.Builder[*RadioButton] {
	return NewRadioButton(page, entities.ByXPath, fmt.Sprintf(radioButtonTemplate, ""))
}

// Choose selects the radio button unless it already is
func (r *RadioButton) Choose() error {
	return toggle(r.Handle, true)
}

func toggle(h *elements.Handle, want bool) error {
	selected, err := h.IsSelected()
	if err != nil {
		return err
	}
	if selected == want {
		return nil
	}
	return h.Click()
}
