// Package common holds the syntax context shared by the document parsers
package common

// Syntax is the kind of abbreviation that belongs at a document offset
type Syntax int

const (
	// None means no abbreviation is expected, as inside a script
	None Syntax = iota
	// Markup abbreviations expand to elements
	Markup
	// Stylesheet abbreviations expand to properties
	Stylesheet
)

var syntaxNames = [...]string{
	None:       "none",
	Markup:     "markup",
	Stylesheet: "stylesheet",
}

func (s Syntax) String() string {
	if s >= 0 && int(s) < len(syntaxNames) {
		return syntaxNames[s]
	}
	return "none"
}

// MarshalText renders the syntax by name
func (s Syntax) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Context describes the document around an offset
type Context struct {
	Syntax Syntax `json:"syntax"`
	// Language is the embedded language at the offset, such as css inside a <style> tag
	Language string `json:"language"`
	// Value is set inside a property value, where stylesheet abbreviations
	// are parsed without a property name
	Value bool `json:"value,omitempty"`
	// Property is the declaration's property name when Value is set
	Property string `json:"property,omitempty"`
	// JSX marks markup written in JSX
	JSX bool `json:"jsx,omitempty"`
}
