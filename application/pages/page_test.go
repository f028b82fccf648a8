package pages

import (
	"errors"
	"os"
	"testing"

	"page_automation/application/controls"
	"page_automation/application/elements"
	"page_automation/domain/entities"
	"page_automation/internal/testutil"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	elements.SetLinkSettleDelay(0)
	os.Exit(m.Run())
}

func TestPagePath(t *testing.T) {
	t.Parallel()

	logger, _ := test.NewNullLogger()
	driver := &testutil.MockDriver{}

	home := NewPage("Home", driver, logger)
	settings := NewSubPage(home, "Settings", logger)
	report := NewReportWindow(settings, "Audit", logger)

	assert.Equal(t, "Home", Path(home))
	assert.Equal(t, "Home->Settings", Path(settings))
	assert.Equal(t, "Home->Settings->Audit", Path(report))
	assert.Equal(t, "Location : Home->Settings->Audit", report.String())
	assert.Equal(t, "Location : Home", home.String())
}

func TestPageGoTo(t *testing.T) {
	t.Parallel()

	logger, _ := test.NewNullLogger()

	t.Run("navigates to the url", func(t *testing.T) {
		t.Parallel()
		driver := &testutil.MockDriver{}
		driver.On("Navigate", "https://example.test/login").Return(nil).Once()

		page := NewPage("Login", driver, logger, WithURL("https://example.test/login"))
		require.NoError(t, page.GoTo())
		driver.AssertExpectations(t)
	})

	t.Run("driver failure", func(t *testing.T) {
		t.Parallel()
		driver := &testutil.MockDriver{}
		boom := errors.New("connection refused")
		driver.On("Navigate", mock.Anything).Return(boom)

		page := NewPage("Login", driver, logger, WithURL("https://example.test/login"))
		assert.ErrorIs(t, page.GoTo(), boom)
	})

	t.Run("no url", func(t *testing.T) {
		t.Parallel()
		driver := &testutil.MockDriver{}
		page := NewPage("Login", driver, logger)
		assert.ErrorIs(t, page.GoTo(), ErrNoURL)
		driver.AssertNotCalled(t, "Navigate", mock.Anything)
	})
}

func TestSubPageInherits(t *testing.T) {
	t.Parallel()

	logger, _ := test.NewNullLogger()
	driver := &testutil.MockDriver{}
	calls := 0
	parent := NewPage("Home", driver, logger, WithDefaultWait(7), WithWaitHook(func() error {
		calls++
		return nil
	}))

	child := NewSubPage(parent, "Child", logger)
	assert.Same(t, driver, child.Driver())
	assert.Equal(t, 7, child.DefaultWaitSeconds())
	require.NotNil(t, child.WaitHook())
	require.NoError(t, child.WaitHook()())
	assert.Equal(t, 1, calls)
	assert.Same(t, parent, child.ParentPage())

	override := NewSubPage(parent, "Override", logger, WithDefaultWait(2))
	assert.Equal(t, 2, override.DefaultWaitSeconds())
}

func TestPageRegistry(t *testing.T) {
	t.Parallel()

	logger, _ := test.NewNullLogger()
	page := NewPage("Login", &testutil.MockDriver{}, logger, WithDefaultWait(4))

	user := controls.NewTextBoxIdentified(page, "@id='user'").Label("User").Build()
	status := controls.NewLabel(page, entities.ByXPath, "//a[contains(.,'%s')]").
		AddLocalization("Active").AddLocalization("Actif").Build()

	require.NoError(t, page.Register(user, status))
	require.NoError(t, page.RegisterAs("Username", user))
	assert.Equal(t, 4, page.Elements().Size())
	assert.Equal(t, 4, user.Timeout())

	found, err := page.Find("User")
	require.NoError(t, err)
	assert.Same(t, user.Core(), found.Core())

	box, err := FindAs[*controls.TextBox](page, "Username")
	require.NoError(t, err)
	assert.Same(t, user, box)

	_, err = FindAs[*controls.Button](page, "User")
	assert.ErrorIs(t, err, entities.ErrNotFound)

	label, err := page.Find("Actif")
	require.NoError(t, err)
	locator, err := label.Locator()
	require.NoError(t, err)
	assert.Equal(t, "//a[contains(.,'Actif')]", locator)

	unlabeled := controls.NewDefaultTextBox(page).Build()
	assert.ErrorIs(t, page.Register(unlabeled), entities.ErrLabelNotSet)
}

func TestReportWindow(t *testing.T) {
	t.Parallel()

	logger, _ := test.NewNullLogger()
	driver := &testutil.MockDriver{}
	report := NewReportWindow(NewPage("Home", driver, logger), "Report", logger)

	assert.False(t, report.HasWindowHandle())
	assert.ErrorIs(t, report.SwitchToWindow(), ErrNoWindowHandle)

	driver.On("SwitchToWindow", "w2").Return(nil).Once()
	report.SetWindowHandle("w2")
	assert.True(t, report.HasWindowHandle())
	assert.Equal(t, "w2", report.WindowHandle())
	require.NoError(t, report.SwitchToWindow())
	driver.AssertExpectations(t)
}
