package pages

import (
	"fmt"
	"strings"

	"page_automation/application/controls"
	"page_automation/application/elements"
	"page_automation/domain/entities"
	"page_automation/domain/interfaces"
)

// newControl builds the control an element definition describes. An explicit
// locator wins over an identifier; without either, the family's default
// template is used where it has one.
func newControl(page interfaces.Page, def entities.ElementDefinition, link interfaces.Page) (elements.Control, error) {
	lookup := entities.ByXPath
	if def.LookUp != "" {
		parsed, err := entities.ParseLookUp(def.LookUp)
		if err != nil {
			return nil, fmt.Errorf("%w: element %q : %w", ErrInvalidElement, elementKey(def), err)
		}
		lookup = parsed
	}

	explicit := def.Locator != ""
	identified := def.Identifier != nil
	var identifier string
	if identified {
		identifier = *def.Identifier
	}

	needsLocator := func() (elements.Control, error) {
		return nil, fmt.Errorf("%w: element %q of kind %s needs a locator or an identifier",
			ErrInvalidElement, elementKey(def), def.Kind)
	}

	switch strings.ToLower(def.Kind) {
	case "element":
		if !explicit {
			return nil, fmt.Errorf("%w: element %q needs a locator", ErrInvalidElement, elementKey(def))
		}
		return configure(elements.NewElementBuilder(page, lookup, def.Locator), def, link), nil

	case "textbox", "text":
		switch {
		case explicit:
			return configure(controls.NewTextBox(page, lookup, def.Locator), def, link), nil
		case identified:
			return configure(controls.NewTextBoxIdentified(page, identifier), def, link), nil
		}
		return configure(controls.NewDefaultTextBox(page), def, link), nil

	case "button", "submit":
		kind := controls.StandardButton
		if strings.EqualFold(def.Kind, "submit") {
			kind = controls.SubmitButton
		}
		switch {
		case explicit:
			return configure(controls.NewButton(page, lookup, def.Locator), def, link), nil
		case identified:
			return configure(controls.NewButtonIdentified(page, kind, identifier), def, link), nil
		}
		return configure(controls.NewDefaultButton(page, kind), def, link), nil

	case "checkbox":
		switch {
		case explicit:
			return configure(controls.NewCheckBox(page, lookup, def.Locator), def, link), nil
		case identified:
			return configure(controls.NewCheckBoxIdentified(page, identifier), def, link), nil
		}
		return configure(controls.NewDefaultCheckBox(page), def, link), nil

	case "radio", "radiobutton":
		switch {
		case explicit:
			return configure(controls.NewRadioButton(page, lookup, def.Locator), def, link), nil
		case identified:
			return configure(controls.NewRadioButtonIdentified(page, identifier), def, link), nil
		}
		return configure(controls.NewDefaultRadioButton(page), def, link), nil

	case "dropdown", "select":
		switch {
		case explicit:
			return configure(controls.NewDropdown(page, lookup, def.Locator), def, link), nil
		case identified:
			return configure(controls.NewDropdownIdentified(page, identifier), def, link), nil
		}
		return configure(controls.NewDefaultDropdown(page), def, link), nil

	case "label", "link":
		switch {
		case explicit:
			return configure(controls.NewLabel(page, lookup, def.Locator), def, link), nil
		case identified:
			return configure(controls.NewLabelIdentified(page, identifier), def, link), nil
		}
		return needsLocator()

	case "gridcell", "cell":
		switch {
		case explicit:
			return configure(controls.NewGridCell(page, lookup, def.Locator), def, link), nil
		case identified:
			return configure(controls.NewGridCellIdentified(page, identifier), def, link), nil
		}
		return needsLocator()

	case "image", "inputimage":
		kind := controls.StandardImage
		if strings.EqualFold(def.Kind, "inputimage") {
			kind = controls.InputImage
		}
		switch {
		case explicit:
			return configure(controls.NewImage(page, lookup, def.Locator), def, link), nil
		case identified:
			return configure(controls.NewImageIdentified(page, kind, identifier), def, link), nil
		}
		return needsLocator()

	case "date", "datepicker":
		if explicit {
			return configure(controls.NewYearMonthDayPickerAt(page, def.Locator), def, link), nil
		}
		return configure(controls.NewYearMonthDayPicker(page), def, link), nil
	}

	return nil, fmt.Errorf("%w: element %q has unknown kind %q", ErrInvalidElement, elementKey(def), def.Kind)
}

func configure[T elements.Control](b *elements.Builder[T], def entities.ElementDefinition, link interfaces.Page) elements.Control {
	if def.Label != "" {
		b.Label(def.Label)
	}
	for _, localization := range def.Localizations {
		b.AddLocalization(localization)
	}
	if def.Template {
		b.IsTemplate()
	}
	if def.Required {
		b.Required()
	}
	if def.Wait > 0 {
		b.DefaultWaitInterval(def.Wait)
	}
	if def.Multiples != "" {
		b.HasMultiples(def.Multiples)
	}
	if link != nil {
		b.LinksTo(link)
	}
	return b.Build()
}
