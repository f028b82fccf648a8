package controls

import (
	"fmt"

	"page_automation/application/elements"
	"page_automation/domain/entities"
	"page_automation/domain/interfaces"
)

const (
	labelTemplate      = "//a[contains(.,'%s')]"
	gridCellTemplate   = "/td[contains(.,'%s')]"
	imageTemplate      = "/img[contains(.,'%s')]"
	inputImageTemplate = "/input[@type='image' and contains(.,'%s')]"
)

// Label is an anchor located by its visible text
type Label struct {
	*elements.Handle
}

func newLabel(h *elements.Handle) *Label { return &Label{h} }

func NewLabel(page interfaces.Page, lookup entities.LookUp, locator string) *elements.Builder[*Label] {
	return elements.NewBuilder(page, elements.KindLabel, lookup, locator, newLabel)
}

func NewLabelIdentified(page interfaces.Page, text string) *elements.Builder[*Label] {
	return NewLabel(page, entities.ByXPath, fmt.Sprintf(labelTemplate, text))
}

// GridCell is a table cell located by its content
type GridCell struct {
	*elements.Handle
}

func newGridCell(h *elements.Handle) *GridCell { return &GridCell{h} }

func NewGridCell(page interfaces.Page, lookup entities.LookUp, locator string) *elements.Builder[*GridCell] {
	return elements.NewBuilder(page, elements.KindGridCell, lookup, locator, newGridCell)
}

func NewGridCellIdentified(page interfaces.Page, content string) *elements.Builder[*GridCell] {
	return NewGridCell(page, entities.ByXPath, fmt.Sprintf(gridCellTemplate, content))
}

// ImageType selects between img elements and image inputs
type ImageType int

const (
	StandardImage ImageType = iota
	InputImage
)

type Image struct {
	*elements.Handle
}

func newImage(h *elements.Handle) *Image { return &Image{h} }

func NewImage(page interfaces.Page, lookup entities.LookUp, locator string) *elements.Builder[*Image] {
	return elements.NewBuilder(page, elements.KindImage, lookup, locator, newImage)
}

func NewImageIdentified(page interfaces.Page, kind ImageType, identifier string) *elements.Builder[*Image] {
	template := imageTemplate
	if kind == InputImage {
		template = inputImageTemplate
	}
	return NewImage(page, entities.ByXPath, fmt.Sprintf(template, identifier))
}

// Source returns the src attribute
func (i *Image) Source() (string, error) {
	return i.Attribute("src")
}
