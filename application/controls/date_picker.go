package controls

import (
	"fmt"

	"page_automation/application/elements"
	"page_automation/domain/entities"
	"page_automation/domain/interfaces"
)

const (
	// the cell that wraps the picker's fields, relative to a label cell
	datePickerRoot = "/following-sibling::td"

	monthField = "/select[@id='_monthField']"
	dayField   = "/select[@id='_dayField']"
	yearField  = "/input[@id='_yearField']"
)

// YearMonthDayPicker is a composite of a month and day dropdown and a year
// text box, all located relative to the picker's own locator.
type YearMonthDayPicker struct {
	*elements.Handle

	month *Dropdown
	day   *Dropdown
	year  *TextBox
}

// NewYearMonthDayPicker builds a picker rooted in the cell following its parent's locator
func NewYearMonthDayPicker(page interfaces.Page) *elements.Builder[*YearMonthDayPicker] {
	return NewYearMonthDayPickerAt(page, datePickerRoot)
}

func NewYearMonthDayPickerAt(page interfaces.Page, root string) *elements.Builder[*YearMonthDayPicker] {
	return elements.NewBuilder(page, elements.KindDatePicker, entities.ByXPath, root,
		func(h *elements.Handle) *YearMonthDayPicker {
			p := &YearMonthDayPicker{
				Handle: h,
				month:  NewDropdown(page, entities.ByXPath, monthField).Build(),
				day:    NewDropdown(page, entities.ByXPath, dayField).Build(),
				year:   NewTextBox(page, entities.ByXPath, yearField).Build(),
			}
			p.month.SetRelativeToParent(h)
			p.day.SetRelativeToParent(h)
			p.year.SetRelativeToParent(h)
			return p
		})
}

func (p *YearMonthDayPicker) Month() *Dropdown { return p.month }

func (p *YearMonthDayPicker) Day() *Dropdown { return p.day }

func (p *YearMonthDayPicker) Year() *TextBox { return p.year }

// SetDate selects month and day by value and types the year
func (p *YearMonthDayPicker) SetDate(year, month, day int) error {
	if err := p.month.SelectByValue(fmt.Sprint(month)); err != nil {
		return err
	}
	if err := p.day.SelectByValue(fmt.Sprint(day)); err != nil {
		return err
	}
	return p.year.SetText(fmt.Sprint(year))
}
