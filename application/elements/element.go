package elements

import (
	"fmt"

	"page_automation/domain/interfaces"
)

// Interactions is the per-call surface shared by handles, their wait-first
// views and the absent element. Every call resolves the element afresh.
type Interactions interface {
	interfaces.Node

	// Type is an alias of SendKeys
	Type(keys string) error
}

// Element is the capability surface of a page element
type Element interface {
	Interactions
	fmt.Stringer

	// IsValid reports whether the element currently resolves to a node. It never fails.
	IsValid() bool

	// WhenVisible returns a view whose operations first wait for the element
	// to be displayed, using the element's own timeout
	WhenVisible() Interactions

	// WhenVisibleWithin is WhenVisible with an explicit timeout in seconds
	WhenVisibleWithin(seconds int) Interactions

	// WaitUntilVisible blocks until the element is displayed or the timeout elapses
	WaitUntilVisible(seconds int) error

	// Node resolves the element to a live node
	Node() (interfaces.Node, error)

	// Nodes resolves every node matching the element's locator
	Nodes() ([]interfaces.Node, error)

	Locator() (string, error)
	Label() (string, error)

	// GoToLink clicks the element and returns the page it links to
	GoToLink() (interfaces.Page, error)
}

// Control is an element that can be registered: it exposes its core handle and family
type Control interface {
	Element
	Core() *Handle
	Kind() Kind
}

var (
	_ Control      = (*Handle)(nil)
	_ Element      = (*NullElement)(nil)
	_ Interactions = (*Visible)(nil)
)

func isAbsent(node interfaces.Node) bool {
	if node == nil {
		return true
	}
	_, absent := node.(*NullElement)
	return absent
}
