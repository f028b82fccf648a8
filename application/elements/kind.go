package elements

import "fmt"

// Kind tags the control family an element belongs to
type Kind int

const (
	KindElement Kind = iota
	KindTextBox
	KindButton
	KindCheckBox
	KindRadioButton
	KindLabel
	KindDropdown
	KindImage
	KindGridCell
	KindDatePicker
)

var kindNames = [...]string{
	KindElement:     "Element",
	KindTextBox:     "TextBox",
	KindButton:      "Button",
	KindCheckBox:    "CheckBox",
	KindRadioButton: "RadioButton",
	KindLabel:       "Label",
	KindDropdown:    "Dropdown",
	KindImage:       "Image",
	KindGridCell:    "GridCell",
	KindDatePicker:  "YearMonthDayPicker",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Linkable reports whether controls of this kind may navigate to another page
func (k Kind) Linkable() bool {
	switch k {
	case KindTextBox, KindCheckBox, KindRadioButton, KindDatePicker:
		return false
	}
	return true
}
