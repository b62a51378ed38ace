package css

// Declaration is a property: value pair found at an offset
type Declaration struct {
	Property string
	// ValueStart is the byte offset just after the colon
	ValueStart uint
	End        uint
}
