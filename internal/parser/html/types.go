package html

// RegionType identifies the kind of embedded region found in HTML
type RegionType int

const (
	// UnknownRegion is the zero value, indicating an uninitialized region type
	UnknownRegion RegionType = iota
	// StyleTag represents CSS inside a <style> element
	StyleTag
	// StyleAttribute represents CSS inside a style="..." attribute
	StyleAttribute
	// ScriptTag represents code inside a <script> element
	ScriptTag
)

// Region is embedded content of an HTML document
type Region struct {
	Content string
	// StartByte and EndByte locate Content in the document
	StartByte int
	EndByte   int
	Type      RegionType
}

// Contains reports whether offset falls inside the region or at its end
func (r Region) Contains(offset int) bool {
	return offset >= r.StartByte && offset <= r.EndByte
}
