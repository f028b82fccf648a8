package entities

import "fmt"

// LookUp represents the strategy a driver uses to locate a node
type LookUp int

const (
	ByClassName LookUp = iota
	ByCSSSelector
	ByID
	ByLinkText
	ByName
	ByPartialLinkText
	ByTagName
	ByXPath
)

var lookUpNames = map[LookUp]string{
	ByClassName:       "ByClassName",
	ByCSSSelector:     "ByCSSSelector",
	ByID:              "ById",
	ByLinkText:        "ByLinkText",
	ByName:            "ByName",
	ByPartialLinkText: "ByPartialLinkText",
	ByTagName:         "ByTagName",
	ByXPath:           "ByXpath",
}

// String returns the strategy name used in element descriptors
func (l LookUp) String() string {
	if name, ok := lookUpNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LookUp(%d)", int(l))
}

// Valid reports whether l is one of the known strategies
func (l LookUp) Valid() bool {
	_, ok := lookUpNames[l]
	return ok
}

// ParseLookUp maps a strategy name, as written in page definition files, to a LookUp.
// Both the descriptor names ("ByXpath") and the WebDriver names ("xpath") are accepted.
func ParseLookUp(name string) (LookUp, error) {
	switch name {
	case "ByClassName", "class name", "class":
		return ByClassName, nil
	case "ByCSSSelector", "ByCss", "css selector", "css":
		return ByCSSSelector, nil
	case "ById", "ByID", "id":
		return ByID, nil
	case "ByLinkText", "link text":
		return ByLinkText, nil
	case "ByName", "name":
		return ByName, nil
	case "ByPartialLinkText", "partial link text":
		return ByPartialLinkText, nil
	case "ByTagName", "tag name", "tag":
		return ByTagName, nil
	case "ByXpath", "ByXPath", "xpath":
		return ByXPath, nil
	}
	return 0, fmt.Errorf("unknown lookup strategy: %q", name)
}
