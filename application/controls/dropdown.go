package controls

import (
	"fmt"
	"strings"

	"page_automation/application/elements"
	"page_automation/domain/entities"
	"page_automation/domain/interfaces"
)

const (
	dropdownTemplate           = "/select"
	identifiedDropdownTemplate = "/select[contains(.,'%s')]"
)

// Dropdown is a select element. Selection helpers operate on its option
// children, resolved afresh on every call.
type Dropdown struct {
	*elements.Handle
}

func newDropdown(h *elements.Handle) *Dropdown { return &Dropdown{h} }

func NewDropdown(page interfaces.Page, lookup entities.LookUp, locator string) *elements.Builder[*Dropdown] {
	return elements.NewBuilder(page, elements.KindDropdown, lookup, locator, newDropdown)
}

func NewDropdownIdentified(page interfaces.Page, identifier string) *elements.Builder[*Dropdown] {
	return NewDropdown(page, entities.ByXPath, fmt.Sprintf(identifiedDropdownTemplate, identifier))
}

func NewDefaultDropdown(page interfaces.Page) *elements.Builder[*Dropdown] {
	return NewDropdown(page, entities.ByXPath, dropdownTemplate)
}

// IsMultiple reports whether the select accepts several selected options
func (d *Dropdown) IsMultiple() (bool, error) {
	multiple, err := d.Attribute("multiple")
	if err != nil {
		return false, err
	}
	return multiple != "" && multiple != "false", nil
}

func (d *Dropdown) Options() ([]interfaces.Node, error) {
	return d.FindNodes(entities.ByTagName, "option")
}

func (d *Dropdown) AllSelectedOptions() ([]interfaces.Node, error) {
	options, err := d.Options()
	if err != nil {
		return nil, err
	}
	var selected []interfaces.Node
	for _, option := range options {
		ok, err := option.IsSelected()
		if err != nil {
			return nil, d.Wrap(err)
		}
		if ok {
			selected = append(selected, option)
		}
	}
	return selected, nil
}

func (d *Dropdown) FirstSelectedOption() (interfaces.Node, error) {
	selected, err := d.AllSelectedOptions()
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: no options are selected -> %s", entities.ErrNotFound, d)
	}
	return selected[0], nil
}

func (d *Dropdown) SelectByVisibleText(text string) error {
	return d.choose(true, "text", text, func(i int, option interfaces.Node) (bool, error) {
		return hasText(option, text)
	})
}

func (d *Dropdown) SelectByIndex(index int) error {
	return d.choose(true, "index", fmt.Sprint(index), func(i int, _ interfaces.Node) (bool, error) {
		return i == index, nil
	})
}

func (d *Dropdown) SelectByValue(value string) error {
	return d.choose(true, "value", value, func(i int, option interfaces.Node) (bool, error) {
		return hasValue(option, value)
	})
}

// DeselectAll clears every selected option of a multi-select
func (d *Dropdown) DeselectAll() error {
	if err := d.requireMultiple(); err != nil {
		return err
	}
	selected, err := d.AllSelectedOptions()
	if err != nil {
		return err
	}
	for _, option := range selected {
		if err := option.Click(); err != nil {
			return d.Wrap(err)
		}
	}
	return nil
}

func (d *Dropdown) DeselectByVisibleText(text string) error {
	return d.choose(false, "text", text, func(i int, option interfaces.Node) (bool, error) {
		return hasText(option, text)
	})
}

func (d *Dropdown) DeselectByIndex(index int) error {
	return d.choose(false, "index", fmt.Sprint(index), func(i int, _ interfaces.Node) (bool, error) {
		return i == index, nil
	})
}

func (d *Dropdown) DeselectByValue(value string) error {
	return d.choose(false, "value", value, func(i int, option interfaces.Node) (bool, error) {
		return hasValue(option, value)
	})
}

func (d *Dropdown) requireMultiple() error {
	multiple, err := d.IsMultiple()
	if err != nil {
		return err
	}
	if !multiple {
		return fmt.Errorf("%w for -> %s : you may only deselect options of a multi-select",
			entities.ErrAutomationFailure, d)
	}
	return nil
}

// choose clicks every matching option whose selection state differs from want.
// A single-select stops at the first match.
func (d *Dropdown) choose(want bool, by, criteria string, match func(int, interfaces.Node) (bool, error)) error {
	multiple, err := d.IsMultiple()
	if err != nil {
		return err
	}
	if !want && !multiple {
		return d.requireMultiple()
	}

	options, err := d.Options()
	if err != nil {
		return err
	}

	matched := false
	for i, option := range options {
		ok, err := match(i, option)
		if err != nil {
			return d.Wrap(err)
		}
		if !ok {
			continue
		}
		matched = true
		if err := setSelected(option, want); err != nil {
			return d.Wrap(err)
		}
		if !multiple {
			break
		}
	}

	if !matched {
		return fmt.Errorf("%w: cannot locate option with %s : %s -> %s", entities.ErrNotFound, by, criteria, d)
	}
	return nil
}

func setSelected(option interfaces.Node, want bool) error {
	selected, err := option.IsSelected()
	if err != nil {
		return err
	}
	if selected == want {
		return nil
	}
	return option.Click()
}

func hasText(option interfaces.Node, text string) (bool, error) {
	got, err := option.Text()
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(got) == strings.TrimSpace(text), nil
}

func hasValue(option interfaces.Node, value string) (bool, error) {
	got, err := option.Attribute("value")
	if err != nil {
		return false, err
	}
	return got == value, nil
}
