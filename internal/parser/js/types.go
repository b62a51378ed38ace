package js

// Segment represents a literal text segment from a template string,
// between ${...} expression boundaries
type Segment struct {
	// Content is the literal text of this segment
	Content string
	// StartByte and EndByte locate Content in the JS/TS source
	StartByte int
	EndByte   int
}

// Contains reports whether offset falls inside the segment or at its end
func (s Segment) Contains(offset int) bool {
	return offset >= s.StartByte && offset <= s.EndByte
}

// TemplateRegion represents a tagged template literal found in JS/TS source
type TemplateRegion struct {
	// Segments contains the literal text parts of the template, split at ${...} boundaries
	Segments []Segment
	// Tag is the template tag: css, html or svg
	Tag string
}
