package interfaces

import (
	"errors"

	"page_automation/domain/entities"
)

var (
	// ErrNoSuchElement is reported by a Driver when nothing matches a locator
	ErrNoSuchElement = errors.New("no such element")

	// ErrStaleElement is reported by a Node whose underlying reference was invalidated
	ErrStaleElement = errors.New("stale element reference")

	// ErrElementNotVisible is reported by a Node that cannot be interacted with because it is hidden
	ErrElementNotVisible = errors.New("element not visible")
)

// Driver defines the boundary to an externally driven browser session.
// Implementations are not expected to be safe for concurrent use.
type Driver interface {
	// Navigate loads url in the focused window
	Navigate(url string) error

	// FindNode finds the first node matching locator, or returns ErrNoSuchElement
	FindNode(lookup entities.LookUp, locator string) (Node, error)

	// FindNodes finds every node matching locator; no match is an empty slice
	FindNodes(lookup entities.LookUp, locator string) ([]Node, error)

	// CurrentWindowHandle returns the handle of the focused window
	CurrentWindowHandle() (string, error)

	// WindowHandles returns the handles of all open windows
	WindowHandles() ([]string, error)

	// SwitchToWindow focuses the window with the given handle
	SwitchToWindow(handle string) error
}

// Node is a live reference to a single node in the browser session
type Node interface {
	Clear() error
	Click() error
	Attribute(name string) (string, error)
	TagName() (string, error)
	Text() (string, error)
	IsEnabled() (bool, error)
	IsSelected() (bool, error)
	SendKeys(keys string) error
	Submit() error
	IsDisplayed() (bool, error)
	CSSValue(property string) (string, error)
	Location() (entities.Point, error)
	Size() (entities.Size, error)

	// FindNode finds the first descendant matching locator, or returns ErrNoSuchElement
	FindNode(lookup entities.LookUp, locator string) (Node, error)

	// FindNodes finds every descendant matching locator
	FindNodes(lookup entities.LookUp, locator string) ([]Node, error)
}
