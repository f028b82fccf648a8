package elements

import (
	"errors"
	"sync"
	"time"

	"page_automation/domain/entities"
	"page_automation/domain/interfaces"
)

var (
	pollMu       sync.RWMutex
	pollInterval = 500 * time.Millisecond
)

// SetPollInterval sets the default interval between visibility checks
func SetPollInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	pollMu.Lock()
	defer pollMu.Unlock()
	pollInterval = d
}

func defaultPollInterval() time.Duration {
	pollMu.RLock()
	defer pollMu.RUnlock()
	return pollInterval
}

// Waiter polls a handle until it resolves to a displayed node
type Waiter struct {
	handle   *Handle
	timeout  time.Duration
	interval time.Duration
	hook     func() error
}

type WaiterOption func(*Waiter)

// WithPollInterval overrides the interval between checks
func WithPollInterval(d time.Duration) WaiterOption {
	return func(w *Waiter) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithHook runs fn on every check after the element has been resolved.
// An error from fn ends the wait with that error.
func WithHook(fn func() error) WaiterOption {
	return func(w *Waiter) {
		w.hook = fn
	}
}

func NewWaiter(handle *Handle, timeout time.Duration, opts ...WaiterOption) *Waiter {
	w := &Waiter{
		handle:   handle,
		timeout:  timeout,
		interval: defaultPollInterval(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Wait checks at least once. An absent element is not an error and is
// checked again until the deadline, after which a *entities.TimeoutError is
// returned. Resolution errors other than absence end the wait immediately.
func (w *Waiter) Wait() (interfaces.Node, error) {
	deadline := time.Now().Add(w.timeout)
	for {
		node, visible, err := w.check()
		if err != nil {
			return nil, err
		}
		if visible {
			return node, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, &entities.TimeoutError{Timeout: w.timeout}
		}
		time.Sleep(min(w.interval, remaining))
	}
}

func (w *Waiter) check() (interfaces.Node, bool, error) {
	node, err := w.handle.resolve()
	if err != nil {
		return nil, false, err
	}

	if w.hook != nil {
		if err := w.hook(); err != nil {
			return nil, false, err
		}
	}

	if isAbsent(node) {
		return nil, false, nil
	}

	displayed, err := node.IsDisplayed()
	switch {
	case err == nil:
		return node, displayed, nil
	case errors.Is(err, interfaces.ErrStaleElement):
		log().WithFields(w.handle.fields()).Warn("stale element during visibility wait, retrying")
		return nil, false, nil
	}
	return nil, false, w.handle.automationFailure(err)
}

// Visible is the wait-first view of a handle. Each operation waits for the
// handle to be displayed, then performs the operation on a fresh resolution.
type Visible struct {
	handle  *Handle
	seconds int
}

func (v *Visible) wait() error {
	err := v.handle.WaitUntilVisible(v.seconds)
	if err != nil && errors.Is(err, entities.ErrTimeout) {
		return v.handle.automationFailure(err)
	}
	return err
}

func visibly[T any](v *Visible, op func() (T, error)) (T, error) {
	if err := v.wait(); err != nil {
		var zero T
		return zero, err
	}
	return op()
}

func (v *Visible) then(op func() error) error {
	if err := v.wait(); err != nil {
		return err
	}
	return op()
}

func (v *Visible) Clear() error { return v.then(v.handle.Clear) }

func (v *Visible) Click() error { return v.then(v.handle.Click) }

func (v *Visible) Submit() error { return v.then(v.handle.Submit) }

func (v *Visible) SendKeys(keys string) error {
	return v.then(func() error { return v.handle.SendKeys(keys) })
}

func (v *Visible) Type(keys string) error { return v.SendKeys(keys) }

func (v *Visible) Attribute(name string) (string, error) {
	return visibly(v, func() (string, error) { return v.handle.Attribute(name) })
}

func (v *Visible) TagName() (string, error) { return visibly(v, v.handle.TagName) }

func (v *Visible) Text() (string, error) { return visibly(v, v.handle.Text) }

func (v *Visible) IsEnabled() (bool, error) { return visibly(v, v.handle.IsEnabled) }

func (v *Visible) IsSelected() (bool, error) { return visibly(v, v.handle.IsSelected) }

func (v *Visible) IsDisplayed() (bool, error) { return visibly(v, v.handle.IsDisplayed) }

func (v *Visible) CSSValue(property string) (string, error) {
	return visibly(v, func() (string, error) { return v.handle.CSSValue(property) })
}

func (v *Visible) Location() (entities.Point, error) { return visibly(v, v.handle.Location) }

func (v *Visible) Size() (entities.Size, error) { return visibly(v, v.handle.Size) }

func (v *Visible) FindNode(lookup entities.LookUp, locator string) (interfaces.Node, error) {
	return visibly(v, func() (interfaces.Node, error) { return v.handle.FindNode(lookup, locator) })
}

func (v *Visible) FindNodes(lookup entities.LookUp, locator string) ([]interfaces.Node, error) {
	return visibly(v, func() ([]interfaces.Node, error) { return v.handle.FindNodes(lookup, locator) })
}
