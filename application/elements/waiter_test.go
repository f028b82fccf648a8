package elements

import (
	"errors"
	"testing"
	"time"

	"page_automation/domain/entities"
	"page_automation/domain/interfaces"
	"page_automation/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaiter(t *testing.T) {
	t.Parallel()

	t.Run("times out when never displayed", func(t *testing.T) {
		t.Parallel()
		driver, page := newTestPage()
		node := new(testutil.MockNode)
		driver.On("FindNode", entities.ByID, "hidden").Return(node, nil)
		node.On("IsDisplayed").Return(false, nil)

		h := NewHandle(page, entities.ByID, "hidden")
		start := time.Now()
		_, err := NewWaiter(h, time.Second, WithPollInterval(50*time.Millisecond)).Wait()
		elapsed := time.Since(start)

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrTimeout)
		var timeoutErr *entities.TimeoutError
		require.True(t, errors.As(err, &timeoutErr))
		assert.Equal(t, time.Second, timeoutErr.Timeout)
		assert.GreaterOrEqual(t, elapsed, time.Second)
		assert.Less(t, elapsed, 2*time.Second)
	})

	t.Run("absent element is polled until the deadline", func(t *testing.T) {
		t.Parallel()
		driver, page := newTestPage()
		driver.On("FindNode", entities.ByID, "late").Return(nil, interfaces.ErrNoSuchElement)

		h := NewHandle(page, entities.ByID, "late")
		_, err := NewWaiter(h, 200*time.Millisecond, WithPollInterval(20*time.Millisecond)).Wait()
		assert.ErrorIs(t, err, entities.ErrTimeout)
		assert.Greater(t, len(driver.Calls), 1)
	})

	t.Run("returns once displayed", func(t *testing.T) {
		t.Parallel()
		driver, page := newTestPage()
		node := new(testutil.MockNode)
		driver.On("FindNode", entities.ByID, "slow").Return(node, nil)
		node.On("IsDisplayed").Return(false, nil).Twice()
		node.On("IsDisplayed").Return(true, nil)

		h := NewHandle(page, entities.ByID, "slow")
		got, err := NewWaiter(h, time.Second, WithPollInterval(10*time.Millisecond)).Wait()
		require.NoError(t, err)
		assert.Same(t, node, got)
	})

	t.Run("stale element is retried", func(t *testing.T) {
		t.Parallel()
		driver, page := newTestPage()
		node := new(testutil.MockNode)
		driver.On("FindNode", entities.ByID, "stale").Return(node, nil)
		node.On("IsDisplayed").Return(false, interfaces.ErrStaleElement).Once()
		node.On("IsDisplayed").Return(true, nil)

		h := NewHandle(page, entities.ByID, "stale")
		_, err := NewWaiter(h, time.Second, WithPollInterval(10*time.Millisecond)).Wait()
		require.NoError(t, err)
	})

	t.Run("other display errors end the wait", func(t *testing.T) {
		t.Parallel()
		driver, page := newTestPage()
		node := new(testutil.MockNode)
		driver.On("FindNode", entities.ByID, "bad").Return(node, nil)
		node.On("IsDisplayed").Return(false, errors.New("session gone"))

		h := NewHandle(page, entities.ByID, "bad")
		_, err := NewWaiter(h, time.Second).Wait()
		assert.ErrorIs(t, err, entities.ErrAutomationFailure)
	})

	t.Run("template misuse propagates", func(t *testing.T) {
		t.Parallel()
		_, page := newTestPage()
		h := NewHandle(page, entities.ByXPath, "//a[text()='%s']")
		h.SetIsTemplate()

		_, err := NewWaiter(h, time.Second).Wait()
		assert.ErrorIs(t, err, entities.ErrTemplateMisuse)
	})

	t.Run("hook runs on every check", func(t *testing.T) {
		t.Parallel()
		driver := new(testutil.MockDriver)
		page := &testutil.HookedPage{FakePage: testutil.NewFakePage(driver)}
		node := new(testutil.MockNode)
		driver.On("FindNode", entities.ByID, "x").Return(node, nil)
		node.On("IsDisplayed").Return(false, nil).Once()
		node.On("IsDisplayed").Return(true, nil)

		h := NewHandle(page, entities.ByID, "x")
		_, err := NewWaiter(h, time.Second, WithPollInterval(10*time.Millisecond), WithHook(page.WaitHook())).Wait()
		require.NoError(t, err)
		assert.Equal(t, 2, page.Calls)
	})

	t.Run("hook error ends the wait", func(t *testing.T) {
		t.Parallel()
		driver := new(testutil.MockDriver)
		hookErr := errors.New("alert present")
		page := &testutil.HookedPage{FakePage: testutil.NewFakePage(driver), Err: hookErr}
		node := new(testutil.MockNode)
		driver.On("FindNode", entities.ByID, "x").Return(node, nil)

		h := NewHandle(page, entities.ByID, "x")
		err := h.WaitUntilVisible(5)
		assert.ErrorIs(t, err, hookErr)
		node.AssertNotCalled(t, "IsDisplayed")
	})
}

func TestWhenVisible(t *testing.T) {
	t.Parallel()

	t.Run("operation runs after the wait", func(t *testing.T) {
		t.Parallel()
		driver, page := newTestPage()
		node := new(testutil.MockNode)
		driver.On("FindNode", entities.ByID, "go").Return(node, nil)
		node.On("IsDisplayed").Return(true, nil)
		node.On("Click").Return(nil).Once()

		h := NewHandle(page, entities.ByID, "go")
		require.NoError(t, h.WhenVisibleWithin(1).Click())
		node.AssertExpectations(t)
	})

	t.Run("timeout becomes an automation failure", func(t *testing.T) {
		t.Parallel()
		driver, page := newTestPage()
		node := new(testutil.MockNode)
		driver.On("FindNode", entities.ByID, "never").Return(node, nil)
		node.On("IsDisplayed").Return(false, nil)

		h := NewHandle(page, entities.ByID, "never")
		_, err := h.WhenVisibleWithin(0).Text()
		assert.ErrorIs(t, err, entities.ErrAutomationFailure)
		assert.ErrorIs(t, err, entities.ErrTimeout)
		node.AssertNotCalled(t, "Text")
	})

	t.Run("uses the handle timeout", func(t *testing.T) {
		t.Parallel()
		driver, page := newTestPage()
		page.Wait = 7
		h := NewElementBuilder(page, entities.ByID, "x").Build()

		v, ok := h.WhenVisible().(*Visible)
		require.True(t, ok)
		assert.Equal(t, 7, v.seconds)
		driver.AssertNotCalled(t, "FindNode")
	})
}
