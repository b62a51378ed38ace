package rollout

import "strings"

// Context carries the per-call rollout settings
type Context struct {
	// NumberingGlyph is the counter character, $ by default
	NumberingGlyph rune
	// OutputPlaceholder marks where pasted text goes, $# by default
	OutputPlaceholder string
	// MaxRepeat caps the total number of clones; 0 means no cap
	MaxRepeat int
	// InlineElements are the parents whose unnamed children become span
	// instead of div; nil means DefaultInlineElements
	InlineElements []string
}

// DefaultInlineElements lists the HTML inline elements
var DefaultInlineElements = []string{
	"a", "abbr", "acronym", "applet", "b", "basefont", "bdo",
	"big", "br", "button", "cite", "code", "del", "dfn", "em", "font", "i",
	"iframe", "img", "input", "ins", "kbd", "label", "map", "object", "q",
	"s", "samp", "select", "small", "span", "strike", "strong", "sub", "sup",
	"textarea", "tt", "u", "var",
}

// DefaultContext returns the conventional rollout settings
func DefaultContext() Context {
	return Context{
		NumberingGlyph:    '$',
		OutputPlaceholder: "$#",
		InlineElements:    DefaultInlineElements,
	}
}

func (c Context) withDefaults() Context {
	d := DefaultContext()
	if c.NumberingGlyph == 0 {
		c.NumberingGlyph = d.NumberingGlyph
	}
	if c.OutputPlaceholder == "" {
		c.OutputPlaceholder = d.OutputPlaceholder
	}
	if c.InlineElements == nil {
		c.InlineElements = d.InlineElements
	}
	return c
}

// PasteSpec is text to wrap with the abbreviation
type PasteSpec struct {
	Text string
}

// Lines returns the trimmed, non-empty lines of the pasted text
func (p *PasteSpec) Lines() []string {
	if p == nil {
		return nil
	}
	var lines []string
	for line := range strings.Lines(p.Text) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
