package entities

// Point is the position of a node's top-left corner on the page
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Size is the rendered width and height of a node
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// ElementReport is the outcome of checking one registered element against a live page
type ElementReport struct {
	Key       string `json:"key"`
	Kind      string `json:"kind"`
	LookUp    string `json:"lookup"`
	Locator   string `json:"locator"`
	Required  bool   `json:"required"`
	Valid     bool   `json:"valid"`
	Displayed bool   `json:"displayed"`
	Error     string `json:"error,omitempty"`
}

// PageReport collects element reports for a single page
type PageReport struct {
	Title    string          `json:"title"`
	Path     string          `json:"path"`
	Elements []ElementReport `json:"elements"`
}

// MissingRequired returns the reports of required elements that did not resolve
func (p PageReport) MissingRequired() []ElementReport {
	var missing []ElementReport
	for _, e := range p.Elements {
		if e.Required && !e.Valid {
			missing = append(missing, e)
		}
	}
	return missing
}
