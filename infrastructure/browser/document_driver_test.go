package browser

import (
	"os"
	"path/filepath"
	"testing"

	"page_automation/domain/entities"
	"page_automation/domain/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginPage = `<html><body>
<form id="login">
  <input type="text" id="user" name="user" value="">
  <input type="text" id="hidden-field" style="display: none">
  <input type="password" id="pass" name="pass">
  <input type="checkbox" id="remember">
  <input type="radio" name="lang" value="en" checked>
  <input type="radio" name="lang" value="fr">
  <select id="country">
    <option value="ca" selected>Canada</option>
    <option value="fr">France</option>
  </select>
  <textarea id="notes">old</textarea>
  <input type="submit" value="Sign in" disabled>
</form>
<div hidden><span id="secret">shh</span></div>
<a href="#top" class="nav first">Top</a>
<a href="report.html" target="_blank">Open report</a>
</body></html>`

func newTestDocument(t *testing.T) *DocumentDriver {
	t.Helper()
	logger, _ := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	d := NewDocumentDriver(logger)
	require.NoError(t, d.LoadHTML(loginPage))
	return d
}

func TestDocumentDriverFind(t *testing.T) {
	t.Parallel()

	d := newTestDocument(t)

	tests := []struct {
		name    string
		lookup  entities.LookUp
		locator string
		tag     string
	}{
		{"xpath", entities.ByXPath, "//input[@type='text' and @id='user']", "input"},
		{"css", entities.ByCSSSelector, "form#login select", "select"},
		{"id", entities.ByID, "notes", "textarea"},
		{"name", entities.ByName, "pass", "input"},
		{"class", entities.ByClassName, "nav", "a"},
		{"tag", entities.ByTagName, "textarea", "textarea"},
		{"link text", entities.ByLinkText, "Top", "a"},
		{"partial link text", entities.ByPartialLinkText, "report", "a"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			node, err := d.FindNode(tc.lookup, tc.locator)
			require.NoError(t, err)
			tag, err := node.TagName()
			require.NoError(t, err)
			assert.Equal(t, tc.tag, tag)
		})
	}

	t.Run("no match", func(t *testing.T) {
		_, err := d.FindNode(entities.ByID, "nope")
		assert.ErrorIs(t, err, interfaces.ErrNoSuchElement)

		nodes, err := d.FindNodes(entities.ByID, "nope")
		require.NoError(t, err)
		assert.Empty(t, nodes)
	})

	t.Run("invalid xpath", func(t *testing.T) {
		_, err := d.FindNode(entities.ByXPath, "//input[")
		require.Error(t, err)
		assert.NotErrorIs(t, err, interfaces.ErrNoSuchElement)
	})

	t.Run("relative find", func(t *testing.T) {
		form, err := d.FindNode(entities.ByID, "login")
		require.NoError(t, err)
		options, err := form.FindNodes(entities.ByTagName, "option")
		require.NoError(t, err)
		assert.Len(t, options, 2)
	})
}

func TestDocumentDriverInteractions(t *testing.T) {
	t.Parallel()

	t.Run("typing and clearing", func(t *testing.T) {
		t.Parallel()
		d := newTestDocument(t)
		user, err := d.FindNode(entities.ByID, "user")
		require.NoError(t, err)

		require.NoError(t, user.SendKeys("ada"))
		require.NoError(t, user.SendKeys("@example"))
		v, err := user.Attribute("value")
		require.NoError(t, err)
		assert.Equal(t, "ada@example", v)

		require.NoError(t, user.Clear())
		v, err = user.Attribute("value")
		require.NoError(t, err)
		assert.Empty(t, v)

		notes, err := d.FindNode(entities.ByID, "notes")
		require.NoError(t, err)
		require.NoError(t, notes.SendKeys(" new"))
		v, err = notes.Attribute("value")
		require.NoError(t, err)
		assert.Equal(t, "old new", v)
	})

	t.Run("hidden nodes", func(t *testing.T) {
		t.Parallel()
		d := newTestDocument(t)
		hidden, err := d.FindNode(entities.ByID, "hidden-field")
		require.NoError(t, err)
		displayed, err := hidden.IsDisplayed()
		require.NoError(t, err)
		assert.False(t, displayed)
		assert.ErrorIs(t, hidden.SendKeys("x"), interfaces.ErrElementNotVisible)

		secret, err := d.FindNode(entities.ByID, "secret")
		require.NoError(t, err)
		displayed, err = secret.IsDisplayed()
		require.NoError(t, err)
		assert.False(t, displayed)

		display, err := hidden.CSSValue("display")
		require.NoError(t, err)
		assert.Equal(t, "none", display)
	})

	t.Run("checkbox radio and option clicks", func(t *testing.T) {
		t.Parallel()
		d := newTestDocument(t)

		remember, err := d.FindNode(entities.ByID, "remember")
		require.NoError(t, err)
		require.NoError(t, remember.Click())
		selected, err := remember.IsSelected()
		require.NoError(t, err)
		assert.True(t, selected)

		fr, err := d.FindNode(entities.ByXPath, "//input[@name='lang' and @value='fr']")
		require.NoError(t, err)
		require.NoError(t, fr.Click())
		en, err := d.FindNode(entities.ByXPath, "//input[@name='lang' and @value='en']")
		require.NoError(t, err)
		selected, err = en.IsSelected()
		require.NoError(t, err)
		assert.False(t, selected)

		france, err := d.FindNode(entities.ByXPath, "//option[@value='fr']")
		require.NoError(t, err)
		require.NoError(t, france.Click())
		canada, err := d.FindNode(entities.ByXPath, "//option[@value='ca']")
		require.NoError(t, err)
		selected, err = canada.IsSelected()
		require.NoError(t, err)
		assert.False(t, selected)
	})

	t.Run("disabled state", func(t *testing.T) {
		t.Parallel()
		d := newTestDocument(t)
		submit, err := d.FindNode(entities.ByXPath, "//input[@type='submit']")
		require.NoError(t, err)
		enabled, err := submit.IsEnabled()
		require.NoError(t, err)
		assert.False(t, enabled)
		disabled, err := submit.Attribute("disabled")
		require.NoError(t, err)
		assert.Equal(t, "true", disabled)
	})

	t.Run("reload makes nodes stale", func(t *testing.T) {
		t.Parallel()
		d := newTestDocument(t)
		user, err := d.FindNode(entities.ByID, "user")
		require.NoError(t, err)

		require.NoError(t, d.LoadHTML(loginPage))
		_, err = user.IsDisplayed()
		assert.ErrorIs(t, err, interfaces.ErrStaleElement)
	})
}

func TestDocumentDriverWindows(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(loginPage), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.html"), []byte(`<html><body><h1 id="title">Report</h1></body></html>`), 0o644))

	logger, _ := test.NewNullLogger()
	d := NewDocumentDriver(logger)
	require.NoError(t, d.Navigate("file://"+filepath.Join(dir, "index.html")))

	origin, err := d.CurrentWindowHandle()
	require.NoError(t, err)

	link, err := d.FindNode(entities.ByLinkText, "Open report")
	require.NoError(t, err)
	require.NoError(t, link.Click())

	handles, err := d.WindowHandles()
	require.NoError(t, err)
	require.Len(t, handles, 2)
	assert.Equal(t, origin, handles[0])

	require.NoError(t, d.SwitchToWindow(handles[1]))
	title, err := d.FindNode(entities.ByID, "title")
	require.NoError(t, err)
	text, err := title.Text()
	require.NoError(t, err)
	assert.Equal(t, "Report", text)

	assert.Error(t, d.SwitchToWindow("missing"))
}
