package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"page_automation/domain/entities"
	"page_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var ErrInvalidDefinitions = errors.New("invalid page definitions")

type definitionsFile struct {
	Pages []entities.PageDefinition `yaml:"pages"`
}

type definitionFile struct {
	path   string
	logger *logrus.Logger
}

// NewDefinitionFile - creates a store reading page definitions from a YAML file
func NewDefinitionFile(path string, logger *logrus.Logger) interfaces.DefinitionStore {
	return &definitionFile{path: path, logger: logger}
}

// LoadPages - reads and validates every page definition in the file
func (s *definitionFile) LoadPages() ([]entities.PageDefinition, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions %s: %w", s.path, err)
	}

	pages, err := ParseDefinitions(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	s.logger.WithFields(logrus.Fields{"path": s.path, "pages": len(pages)}).Debug("page definitions loaded")
	return pages, nil
}

// ParseDefinitions decodes a definitions document. Unknown fields are rejected.
func ParseDefinitions(data []byte) ([]entities.PageDefinition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file definitionsFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinitions, err)
	}
	if err := validate(file.Pages); err != nil {
		return nil, err
	}
	return file.Pages, nil
}

func validate(pages []entities.PageDefinition) error {
	titles := make(map[string]bool, len(pages))
	for i, page := range pages {
		if page.Title == "" {
			return fmt.Errorf("%w: page #%d has no title", ErrInvalidDefinitions, i+1)
		}
		if titles[page.Title] {
			return fmt.Errorf("%w: duplicate page title %q", ErrInvalidDefinitions, page.Title)
		}
		titles[page.Title] = true
	}

	for _, page := range pages {
		if page.Parent != "" && !titles[page.Parent] {
			return fmt.Errorf("%w: page %q has unknown parent %q", ErrInvalidDefinitions, page.Title, page.Parent)
		}

		keys := make(map[string]bool)
		for _, element := range page.Elements {
			keys[element.Key] = true
			keys[element.Label] = true
			for _, l := range element.Localizations {
				keys[l] = true
			}
		}

		for _, element := range page.Elements {
			if element.RelativeTo != "" && !keys[element.RelativeTo] {
				return fmt.Errorf("%w: element %q of page %q is relative to unknown element %q",
					ErrInvalidDefinitions, element.Label, page.Title, element.RelativeTo)
			}
			if element.Kind == "" {
				return fmt.Errorf("%w: element %q of page %q has no kind", ErrInvalidDefinitions, element.Label, page.Title)
			}
			if element.Label == "" && element.Key == "" && len(element.Localizations) == 0 {
				return fmt.Errorf("%w: an element of page %q has neither label nor key", ErrInvalidDefinitions, page.Title)
			}
			if element.LinksTo != "" && !titles[element.LinksTo] {
				return fmt.Errorf("%w: element %q of page %q links to unknown page %q",
					ErrInvalidDefinitions, element.Label, page.Title, element.LinksTo)
			}
		}
	}
	return nil
}

type reportFile struct {
	path string
}

// NewReportFile - creates a store writing check reports as JSON
func NewReportFile(path string) interfaces.ReportStore {
	return &reportFile{path: path}
}

// SaveReports - saves page reports to file
func (s *reportFile) SaveReports(reports []entities.PageReport) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
