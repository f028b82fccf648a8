package inspector

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"page_automation/application/elements"
	"page_automation/application/pages"
	"page_automation/domain/entities"
	"page_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
)

var ErrMissingRequired = errors.New("required elements are missing")

// Inspector checks registered elements against the live page and reports
// which of them resolve and are displayed.
type Inspector struct {
	logger   *logrus.Logger
	navigate bool
	wait     bool
}

type Option func(*Inspector)

// WithNavigation makes CheckSite visit each page before checking it:
// pages with a url are loaded, report windows with a known handle are focused.
func WithNavigation() Option {
	return func(i *Inspector) { i.navigate = true }
}

// WithVisibilityWait waits up to each element's timeout before checking it
func WithVisibilityWait() Option {
	return func(i *Inspector) { i.wait = true }
}

// NewInspector - creates new page inspector
func NewInspector(logger *logrus.Logger, opts ...Option) *Inspector {
	i := &Inspector{logger: logger}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// CheckSite - checks every page of the site in order
func (i *Inspector) CheckSite(ctx context.Context, site *pages.Site) ([]entities.PageReport, error) {
	var reports []entities.PageReport
	for _, page := range site.Pages() {
		if i.navigate {
			if err := i.visit(page); err != nil {
				return reports, err
			}
		}

		report, err := i.CheckPage(ctx, page)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

type navigable interface {
	GoTo() error
	URL() string
}

func (i *Inspector) visit(page pages.Registered) error {
	switch p := page.(type) {
	case *pages.ReportWindow:
		if !p.HasWindowHandle() {
			i.logger.WithField("page", p.Title()).Info("report window not opened, checking in the current window")
			return nil
		}
		return p.SwitchToWindow()
	case navigable:
		if p.URL() == "" {
			return nil
		}
		return p.GoTo()
	}
	return nil
}

// CheckPage - resolves every registry key of the page. Each alias of a
// localized element is checked separately, since each yields its own locator.
func (i *Inspector) CheckPage(ctx context.Context, page pages.Registered) (entities.PageReport, error) {
	report := entities.PageReport{
		Title: page.Title(),
		Path:  pages.Path(page),
	}

	registry := page.Elements()
	keys := registry.Keys()
	i.logger.WithFields(logrus.Fields{"page": report.Path, "elements": len(keys)}).Info("Checking page")

	for _, key := range keys {
		select {
		case <-ctx.Done():
			return report, fmt.Errorf("check canceled: %w", ctx.Err())
		default:
		}

		report.Elements = append(report.Elements, i.checkElement(registry, key))
	}

	if missing := report.MissingRequired(); len(missing) > 0 {
		i.logger.WithFields(logrus.Fields{"page": report.Path, "missing": len(missing)}).Warn("required elements missing")
	}
	return report, nil
}

func (i *Inspector) checkElement(registry *elements.Registry, key string) entities.ElementReport {
	result := entities.ElementReport{Key: key}

	c, err := registry.Find(key)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	h := c.Core()
	result.Kind = h.Kind().String()
	result.LookUp = h.LookUp().String()
	result.Required = h.IsRequired()
	if locator, err := c.Locator(); err == nil {
		result.Locator = locator
	}

	if i.wait && h.Timeout() > 0 {
		if err := c.WaitUntilVisible(h.Timeout()); err != nil {
			i.logger.WithField("element", key).Debugf("not visible within %ds: %v", h.Timeout(), err)
		}
	}

	node, err := c.Node()
	switch {
	case err != nil:
		result.Error = err.Error()
		return result
	case !isPresent(node):
		result.Error = "element not found on the page"
		return result
	}
	result.Valid = true

	displayed, err := node.IsDisplayed()
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Displayed = displayed

	i.logger.WithFields(logrus.Fields{
		"element":   key,
		"displayed": displayed,
	}).Debug("element checked")
	return result
}

func isPresent(node interfaces.Node) bool {
	if node == nil {
		return false
	}
	_, absent := node.(*elements.NullElement)
	return !absent
}

// Missing collects the missing required elements of all reports as ErrMissingRequired
func Missing(reports []entities.PageReport) error {
	var names []string
	for _, report := range reports {
		for _, element := range report.MissingRequired() {
			names = append(names, report.Path+" : "+element.Key)
		}
	}
	if len(names) == 0 {
		return nil
	}
	slices.Sort(names)
	return fmt.Errorf("%w: %v", ErrMissingRequired, names)
}
