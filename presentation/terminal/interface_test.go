package terminal

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"page_automation/application/inspector"
	"page_automation/infrastructure/browser"
	"page_automation/infrastructure/config"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const checkHTML = `<html><body>
<input type="text" id="user">
<input type="submit" id="go" value="Go">
</body></html>`

func writeFixture(t *testing.T, required string) (definitions, report string) {
	t.Helper()
	dir := t.TempDir()
	page := filepath.Join(dir, "login.html")
	require.NoError(t, os.WriteFile(page, []byte(checkHTML), 0o644))

	definitions = filepath.Join(dir, "pages.yaml")
	doc := `pages:
  - title: Login
    url: file://` + page + `
    elements:
      - kind: textbox
        label: User
        lookup: ById
        locator: user
        required: true
      - kind: submit
        label: Go
        lookup: ById
        locator: ` + required + `
        required: true
`
	require.NoError(t, os.WriteFile(definitions, []byte(doc), 0o644))
	return definitions, filepath.Join(dir, "out", "report.json")
}

func newTestTerminal(t *testing.T) (*TerminalInterface, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true

	out := &bytes.Buffer{}
	term := NewTerminalInterface(out)
	logger, _ := test.NewNullLogger()
	term.logger = logger
	term.newDriver = func(_ config.Config, logger *logrus.Logger) (driverCloser, error) {
		return browser.NewDocumentDriver(logger), nil
	}
	return term, out
}

func TestCheckCommand(t *testing.T) {
	t.Run("all required elements present", func(t *testing.T) {
		definitions, report := writeFixture(t, "go")
		term, out := newTestTerminal(t)

		root := term.NewRootCommand()
		root.SetArgs([]string{"check", "--definitions", definitions, "--report", report, "--driver", "document"})
		require.NoError(t, root.Execute())

		assert.Contains(t, out.String(), "Login")
		assert.Contains(t, out.String(), "[ok]")
		assert.Contains(t, out.String(), "1 pages, 2 elements, 2 found, 0 required missing")
		assert.FileExists(t, report)
	})

	t.Run("missing required element fails", func(t *testing.T) {
		definitions, _ := writeFixture(t, "nope")
		term, out := newTestTerminal(t)

		root := term.NewRootCommand()
		root.SetArgs([]string{"check", "--definitions", definitions, "--driver", "document"})
		err := root.Execute()
		assert.ErrorIs(t, err, inspector.ErrMissingRequired)
		assert.Contains(t, out.String(), "[missing]")
		assert.True(t, strings.HasSuffix(strings.TrimSpace(out.String()), "1 required missing"))
	})

	t.Run("invalid driver", func(t *testing.T) {
		definitions, _ := writeFixture(t, "go")
		term, _ := newTestTerminal(t)

		root := term.NewRootCommand()
		root.SetArgs([]string{"check", "--definitions", definitions, "--driver", "lynx"})
		assert.ErrorIs(t, root.Execute(), config.ErrInvalidConfig)
	})

	t.Run("missing definitions file", func(t *testing.T) {
		term, _ := newTestTerminal(t)

		root := term.NewRootCommand()
		root.SetArgs([]string{"check", "--definitions", filepath.Join(t.TempDir(), "none.yaml"), "--driver", "document"})
		assert.ErrorIs(t, root.Execute(), os.ErrNotExist)
	})
}
