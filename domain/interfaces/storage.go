package interfaces

import "page_automation/domain/entities"

// DefinitionStore loads declarative page definitions
type DefinitionStore interface {
	// LoadPages returns every page definition known to the store
	LoadPages() ([]entities.PageDefinition, error)
}

// ReportStore persists the outcome of a page check
type ReportStore interface {
	SaveReports(reports []entities.PageReport) error
}
