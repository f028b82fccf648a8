package pages

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"page_automation/application/controls"
	"page_automation/application/elements"
	"page_automation/domain/entities"
	"page_automation/infrastructure/browser"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const homeHTML = `<html><body>
<table><tr><td>Birth Date</td><td>
  <select id="_monthField"><option value="1">Jan</option><option value="2">Feb</option></select>
  <select id="_dayField"><option value="1">1</option><option value="2">2</option></select>
  <input id="_yearField" type="text">
</td></tr></table>
<input type="text" id="user">
<a href="/report" target="_blank">Open report</a>
<a href="/settings">Settings</a>
</body></html>`

const reportHTML = `<html><body><h1 id="heading">Quarterly</h1></body></html>`

const settingsHTML = `<html><body><input type="checkbox" id="notify"></body></html>`

func newSiteServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	serve := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(body))
		}
	}
	mux.Handle("/home", serve(homeHTML))
	mux.Handle("/report", serve(reportHTML))
	mux.Handle("/settings", serve(settingsHTML))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func ptr(s string) *string { return &s }

func siteDefinitions(base string) []entities.PageDefinition {
	return []entities.PageDefinition{
		{
			Title:     "Report",
			Parent:    "Home",
			NewWindow: true,
			Elements: []entities.ElementDefinition{
				{Kind: "element", Label: "Heading", LookUp: "ById", Locator: "heading"},
			},
		},
		{
			Title:       "Home",
			URL:         base + "/home",
			DefaultWait: 1,
			Elements: []entities.ElementDefinition{
				{Kind: "gridcell", Label: "Birth Date Cell", Template: true, Locator: "//td[contains(.,'%s')]", Identifiers: []string{"Birth Date"}},
				{Kind: "date", Label: "Birth Date", RelativeTo: "Birth Date Cell"},
				{Kind: "textbox", Key: "Username", Label: "User", Locator: "//input[@type='text' and @id='user']", Required: true},
				{Kind: "label", Label: "Open report", Identifier: ptr("Open report"), LinksTo: "Report"},
				{Kind: "label", Label: "Settings", LookUp: "ByLinkText", Locator: "Settings", LinksTo: "Settings"},
				{Kind: "button", Label: "Missing", Identifier: ptr("@id='nope'")},
			},
		},
		{
			Title:  "Settings",
			Parent: "Home",
			Elements: []entities.ElementDefinition{
				{Kind: "checkbox", Label: "Notify", LookUp: "ById", Locator: "notify"},
			},
		},
	}
}

func TestBuildSite(t *testing.T) {
	t.Parallel()

	srv := newSiteServer(t)
	logger, _ := test.NewNullLogger()
	driver := browser.NewDocumentDriver(logger)

	site, err := BuildSite(siteDefinitions(srv.URL), driver, logger)
	require.NoError(t, err)

	var order []string
	for _, page := range site.Pages() {
		order = append(order, page.Title())
	}
	assert.Equal(t, []string{"Report", "Home", "Settings"}, order)

	home, err := site.Page("Home")
	require.NoError(t, err)
	require.NoError(t, home.(*Page).GoTo())

	t.Run("elements are typed and configured", func(t *testing.T) {
		user, err := FindAs[*controls.TextBox](home, "Username")
		require.NoError(t, err)
		assert.True(t, user.IsRequired())
		assert.Equal(t, 1, user.Timeout())
		assert.True(t, user.IsValid())

		same, err := home.Elements().Find("User")
		require.NoError(t, err)
		assert.Same(t, user.Core(), same.Core())

		missing, err := home.Elements().Find("Missing")
		require.NoError(t, err)
		assert.False(t, missing.IsValid())
	})

	t.Run("relative date picker", func(t *testing.T) {
		picker, err := FindAs[*controls.YearMonthDayPicker](home, "Birth Date")
		require.NoError(t, err)
		locator, err := picker.Month().Locator()
		require.NoError(t, err)
		assert.Equal(t, "//td[contains(.,'Birth Date')]/following-sibling::td/select[@id='_monthField']", locator)
		require.NoError(t, picker.SetDate(2001, 2, 1))
	})

	t.Run("links", func(t *testing.T) {
		link, err := home.Elements().Find("Open report")
		require.NoError(t, err)

		report, err := elements.GoToLinkAs[*ReportWindow](link)
		require.NoError(t, err)
		require.True(t, report.HasWindowHandle())
		require.NoError(t, report.SwitchToWindow())

		heading, err := report.Find("Heading")
		require.NoError(t, err)
		text, err := heading.Text()
		require.NoError(t, err)
		assert.Equal(t, "Quarterly", text)
		assert.Equal(t, "Home->Report", Path(report))
	})
}

func TestBuildSiteErrors(t *testing.T) {
	t.Parallel()

	logger, _ := test.NewNullLogger()
	driver := browser.NewDocumentDriver(logger)

	tests := []struct {
		name string
		defs []entities.PageDefinition
		err  error
	}{
		{
			name: "parent cycle",
			defs: []entities.PageDefinition{{Title: "A", Parent: "B"}, {Title: "B", Parent: "A"}},
			err:  ErrUnknownPage,
		},
		{
			name: "new window without parent",
			defs: []entities.PageDefinition{{Title: "A", NewWindow: true}},
			err:  ErrUnknownPage,
		},
		{
			name: "unknown link",
			defs: []entities.PageDefinition{{Title: "A", Elements: []entities.ElementDefinition{
				{Kind: "label", Label: "X", Identifier: ptr("X"), LinksTo: "B"},
			}}},
			err: ErrUnknownPage,
		},
		{
			name: "unknown kind",
			defs: []entities.PageDefinition{{Title: "A", Elements: []entities.ElementDefinition{
				{Kind: "slider", Label: "X", Locator: "//x"},
			}}},
			err: ErrInvalidElement,
		},
		{
			name: "label without locator",
			defs: []entities.PageDefinition{{Title: "A", Elements: []entities.ElementDefinition{
				{Kind: "label", Label: "X"},
			}}},
			err: ErrInvalidElement,
		},
		{
			name: "bad lookup",
			defs: []entities.PageDefinition{{Title: "A", Elements: []entities.ElementDefinition{
				{Kind: "element", Label: "X", LookUp: "ByTelepathy", Locator: "x"},
			}}},
			err: ErrInvalidElement,
		},
		{
			name: "relative to unknown element",
			defs: []entities.PageDefinition{{Title: "A", Elements: []entities.ElementDefinition{
				{Kind: "textbox", Label: "X", RelativeTo: "Y"},
			}}},
			err: ErrInvalidElement,
		},
		{
			name: "relative to itself",
			defs: []entities.PageDefinition{{Title: "A", Elements: []entities.ElementDefinition{
				{Kind: "textbox", Label: "X", RelativeTo: "X"},
			}}},
			err: ErrInvalidElement,
		},
		{
			name: "relative cycle",
			defs: []entities.PageDefinition{{Title: "A", Elements: []entities.ElementDefinition{
				{Kind: "element", Label: "X", LookUp: "ByXpath", Locator: "//x", RelativeTo: "Y"},
				{Kind: "element", Label: "Y", LookUp: "ByXpath", Locator: "//y", RelativeTo: "X"},
			}}},
			err: ErrInvalidElement,
		},
		{
			name: "longer relative cycle through keys",
			defs: []entities.PageDefinition{{Title: "A", Elements: []entities.ElementDefinition{
				{Kind: "element", Key: "x", Label: "X", LookUp: "ByXpath", Locator: "//x", RelativeTo: "z"},
				{Kind: "element", Key: "y", Label: "Y", LookUp: "ByXpath", Locator: "//y", RelativeTo: "x"},
				{Kind: "element", Key: "z", Label: "Z", LookUp: "ByXpath", Locator: "//z", RelativeTo: "y"},
			}}},
			err: ErrInvalidElement,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildSite(tc.defs, driver, logger)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
