package elements

import (
	"fmt"

	"page_automation/domain/entities"
	"page_automation/domain/interfaces"
)

const nonExistentElement = "Non-existent Element."

// NullElement stands in for an element the driver could not find. Every
// operation fails with ErrNotFound naming the handle that produced it, except
// IsValid and String.
type NullElement struct {
	caller *Handle
}

func newNullElement(caller *Handle) *NullElement {
	return &NullElement{caller: caller}
}

// Caller returns the handle whose resolution produced n
func (n *NullElement) Caller() *Handle { return n.caller }

func (n *NullElement) fail(op string) error {
	return fmt.Errorf("%w: attempt to call %s() on an element that cannot be found. %s", entities.ErrNotFound, op, n.caller)
}

func (n *NullElement) String() string { return nonExistentElement }

func (n *NullElement) IsValid() bool { return false }

func (n *NullElement) Clear() error { return n.fail("Clear") }

func (n *NullElement) Click() error { return n.fail("Click") }

func (n *NullElement) Submit() error { return n.fail("Submit") }

func (n *NullElement) SendKeys(string) error { return n.fail("SendKeys") }

func (n *NullElement) Type(string) error { return n.fail("Type") }

func (n *NullElement) Attribute(string) (string, error) { return "", n.fail("Attribute") }

func (n *NullElement) TagName() (string, error) { return "", n.fail("TagName") }

func (n *NullElement) Text() (string, error) { return "", n.fail("Text") }

func (n *NullElement) IsEnabled() (bool, error) { return false, n.fail("IsEnabled") }

func (n *NullElement) IsSelected() (bool, error) { return false, n.fail("IsSelected") }

func (n *NullElement) IsDisplayed() (bool, error) { return false, n.fail("IsDisplayed") }

func (n *NullElement) CSSValue(string) (string, error) { return "", n.fail("CSSValue") }

func (n *NullElement) Location() (entities.Point, error) { return entities.Point{}, n.fail("Location") }

func (n *NullElement) Size() (entities.Size, error) { return entities.Size{}, n.fail("Size") }

func (n *NullElement) FindNode(entities.LookUp, string) (interfaces.Node, error) {
	return nil, n.fail("FindNode")
}

func (n *NullElement) FindNodes(entities.LookUp, string) ([]interfaces.Node, error) {
	return nil, n.fail("FindNodes")
}

func (n *NullElement) Node() (interfaces.Node, error) { return nil, n.fail("Node") }

func (n *NullElement) Nodes() ([]interfaces.Node, error) { return nil, n.fail("Nodes") }

func (n *NullElement) Locator() (string, error) { return "", n.fail("Locator") }

func (n *NullElement) Label() (string, error) { return "", n.fail("Label") }

func (n *NullElement) GoToLink() (interfaces.Page, error) { return nil, n.fail("GoToLink") }

func (n *NullElement) WaitUntilVisible(int) error { return n.fail("WaitUntilVisible") }

func (n *NullElement) WhenVisible() Interactions { return nullVisible{n} }

func (n *NullElement) WhenVisibleWithin(int) Interactions { return nullVisible{n} }

// nullVisible is the wait-first view of an absent element
type nullVisible struct {
	n *NullElement
}

func (v nullVisible) Clear() error { return v.n.fail("ClearWhenVisible") }

func (v nullVisible) Click() error { return v.n.fail("ClickWhenVisible") }

func (v nullVisible) Submit() error { return v.n.fail("SubmitWhenVisible") }

func (v nullVisible) SendKeys(string) error { return v.n.fail("SendKeysWhenVisible") }

func (v nullVisible) Type(string) error { return v.n.fail("TypeWhenVisible") }

func (v nullVisible) Attribute(string) (string, error) { return "", v.n.fail("AttributeWhenVisible") }

func (v nullVisible) TagName() (string, error) { return "", v.n.fail("TagNameWhenVisible") }

func (v nullVisible) Text() (string, error) { return "", v.n.fail("TextWhenVisible") }

func (v nullVisible) IsEnabled() (bool, error) { return false, v.n.fail("IsEnabledWhenVisible") }

func (v nullVisible) IsSelected() (bool, error) { return false, v.n.fail("IsSelectedWhenVisible") }

func (v nullVisible) IsDisplayed() (bool, error) { return false, v.n.fail("IsDisplayedWhenVisible") }

func (v nullVisible) CSSValue(string) (string, error) { return "", v.n.fail("CSSValueWhenVisible") }

func (v nullVisible) Location() (entities.Point, error) {
	return entities.Point{}, v.n.fail("LocationWhenVisible")
}

func (v nullVisible) Size() (entities.Size, error) { return entities.Size{}, v.n.fail("SizeWhenVisible") }

func (v nullVisible) FindNode(entities.LookUp, string) (interfaces.Node, error) {
	return nil, v.n.fail("FindNodeWhenVisible")
}

func (v nullVisible) FindNodes(entities.LookUp, string) ([]interfaces.Node, error) {
	return nil, v.n.fail("FindNodesWhenVisible")
}
