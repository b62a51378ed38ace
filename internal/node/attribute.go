package node

import (
	"strings"

	"bennypowers.dev/abbrex/internal/collections"
)

// ValueType records how an attribute value was written
type ValueType int

const (
	// RawValue is an unquoted value
	RawValue ValueType = iota
	// SingleQuoted is a value in '
	SingleQuoted
	// DoubleQuoted is a value in "
	DoubleQuoted
	// ExpressionValue is a value in { }
	ExpressionValue
)

var valueTypeNames = [...]string{
	RawValue:        "raw",
	SingleQuoted:    "singleQuote",
	DoubleQuoted:    "doubleQuote",
	ExpressionValue: "expression",
}

func (v ValueType) String() string {
	if v >= 0 && int(v) < len(valueTypeNames) {
		return valueTypeNames[v]
	}
	return "raw"
}

// Attribute is a name/value pair of an element
type Attribute struct {
	Name string
	// Value is nil for attributes written without a value
	Value     *string
	ValueType ValueType
	// Boolean marks attributes written with a trailing dot, like [disabled.]
	Boolean bool
	// Implied marks attributes written with a leading !, output only when they get a value
	Implied bool
}

// NewAttribute creates an attribute with a raw value
func NewAttribute(name, value string) Attribute {
	return Attribute{Name: name, Value: &value}
}

// HasValue reports whether the attribute carries a value
func (a Attribute) HasValue() bool {
	return a.Value != nil
}

// ValueString returns the value, or "" when absent
func (a Attribute) ValueString() string {
	if a.Value == nil {
		return ""
	}
	return *a.Value
}

// SetValue replaces the value
func (a *Attribute) SetValue(v string) {
	a.Value = &v
}

// Clone returns a copy that shares no memory with a
func (a Attribute) Clone() Attribute {
	c := a
	if a.Value != nil {
		v := *a.Value
		c.Value = &v
	}
	return c
}

// Attr returns the attribute called name
func (n *Node) Attr(name string) (*Attribute, bool) {
	for i := range n.Attributes {
		if n.Attributes[i].Name == name {
			return &n.Attributes[i], true
		}
	}
	return nil, false
}

// AttrValue returns the value of the attribute called name, or ""
func (n *Node) AttrValue(name string) string {
	if a, ok := n.Attr(name); ok {
		return a.ValueString()
	}
	return ""
}

// SetAttribute adds attr, merging with an existing attribute of the same name.
// Class values are concatenated; any other attribute is overwritten.
func (n *Node) SetAttribute(attr Attribute) {
	existing, ok := n.Attr(attr.Name)
	if !ok {
		n.Attributes = append(n.Attributes, attr)
		return
	}
	if attr.Name == "class" && existing.HasValue() && attr.HasValue() {
		existing.SetValue(mergeClasses(existing.ValueString(), attr.ValueString()))
		return
	}
	*existing = attr
}

// AddClass appends a class name, skipping names already present
func (n *Node) AddClass(name string) {
	if name == "" {
		return
	}
	n.SetAttribute(NewAttribute("class", name))
}

func mergeClasses(current, added string) string {
	seen := collections.NewSet(strings.Fields(current)...)
	out := current
	for _, cls := range strings.Fields(added) {
		if seen.Has(cls) {
			continue
		}
		seen.Add(cls)
		if out != "" {
			out += " "
		}
		out += cls
	}
	return out
}
