package terminal

import (
	"fmt"
	"io"

	"page_automation/domain/entities"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// PrintReports writes one line per checked element, grouped by page, and a summary
func PrintReports(w io.Writer, reports []entities.PageReport) {
	var total, found, missing int

	for _, report := range reports {
		fmt.Fprintf(w, "%s\n", bold(report.Path))
		for _, e := range report.Elements {
			total++
			if e.Valid {
				found++
			}
			if e.Required && !e.Valid {
				missing++
			}
			fmt.Fprintf(w, "  %s %s %s\n", status(e), e.Key, gray(describe(e)))
		}
		fmt.Fprintln(w)
	}

	summary := fmt.Sprintf("%d pages, %d elements, %d found, %d required missing", len(reports), total, found, missing)
	if missing > 0 {
		fmt.Fprintln(w, red(summary))
		return
	}
	fmt.Fprintln(w, green(summary))
}

func status(e entities.ElementReport) string {
	switch {
	case e.Valid && e.Displayed:
		return green("[ok]     ")
	case e.Valid:
		return yellow("[hidden] ")
	case e.Required:
		return red("[missing]")
	}
	return yellow("[absent] ")
}

func describe(e entities.ElementReport) string {
	s := fmt.Sprintf("(%s %s %s)", e.Kind, e.LookUp, e.Locator)
	if e.Error != "" {
		s += " " + e.Error
	}
	return s
}
