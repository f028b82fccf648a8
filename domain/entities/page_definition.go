package entities

// PageDefinition declares a page and its elements, as read from a definitions file
type PageDefinition struct {
	Title       string              `yaml:"title"`
	URL         string              `yaml:"url,omitempty"`
	Parent      string              `yaml:"parent,omitempty"`     // title of the parent page
	NewWindow   bool                `yaml:"new_window,omitempty"` // page opens in its own window
	DefaultWait int                 `yaml:"default_wait,omitempty"`
	Elements    []ElementDefinition `yaml:"elements"`
}

// ElementDefinition declares a single element of a page
type ElementDefinition struct {
	Key           string   `yaml:"key,omitempty"` // explicit registry key, defaults to the label
	Kind          string   `yaml:"kind"`          // textbox, button, submit, checkbox, ...
	LookUp        string   `yaml:"lookup,omitempty"`
	Locator       string   `yaml:"locator,omitempty"`
	Identifier    *string  `yaml:"identifier,omitempty"` // family template identifier when no locator is given
	Label         string   `yaml:"label,omitempty"`
	Localizations []string `yaml:"localizations,omitempty"`
	Template      bool     `yaml:"template,omitempty"`
	Identifiers   []string `yaml:"identifiers,omitempty"` // identifiers used when checking a template
	Required      bool     `yaml:"required,omitempty"`
	Wait          int      `yaml:"wait,omitempty"`
	Multiples     string   `yaml:"multiples,omitempty"`
	LinksTo       string   `yaml:"links_to,omitempty"` // title of the linked page
	RelativeTo    string   `yaml:"relative_to,omitempty"`
}
