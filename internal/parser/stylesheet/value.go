package stylesheet

import (
	"strconv"
	"strings"

	"bennypowers.dev/abbrex/internal/token"
)

// Value is a single item of a stylesheet value
type Value interface {
	value()
	String() string
}

func (*Literal) value()      {}
func (*NumberValue) value()  {}
func (*ColorValue) value()   {}
func (*StringValue) value()  {}
func (*FunctionCall) value() {}
func (*Field) value()        {}

// Literal is a keyword such as a or solid
type Literal struct {
	Value string
}

// NumberValue is a number with an optional unit
type NumberValue struct {
	Value float64
	Unit  string
	// Raw is the number as written, used to tell 1 from 1.0
	Raw string
}

// IsFloat reports whether the number was written with a decimal point
func (n *NumberValue) IsFloat() bool {
	return strings.Contains(n.Raw, ".")
}

// ColorValue is an RGBA color written as #hex
type ColorValue struct {
	R, G, B uint8
	A       float64
	Raw     string
}

// StringValue is a quoted string
type StringValue struct {
	Value string
	Quote rune
}

// FunctionCall is name(arguments)
type FunctionCall struct {
	Name      string
	Arguments []CSSValue
}

// Field is a ${n:placeholder} tab stop inside a value
type Field struct {
	Index int
	Name  string
}

func (l *Literal) String() string { return l.Value }

func (n *NumberValue) String() string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64) + n.Unit
}

func (c *ColorValue) String() string { return c.Raw }

func (s *StringValue) String() string {
	return string(s.Quote) + s.Value + string(s.Quote)
}

func (f *FunctionCall) String() string {
	args := make([]string, len(f.Arguments))
	for i, a := range f.Arguments {
		args[i] = a.String()
	}
	return f.Name + "(" + strings.Join(args, ", ") + ")"
}

func (f *Field) String() string {
	return token.Token{Kind: token.Field, Index: f.Index, Value: f.Name}.String()
}

// CSSValue is a space-separated run of values, one fragment of a property value
type CSSValue struct {
	Value []Value
}

func (v CSSValue) String() string {
	parts := make([]string, len(v.Value))
	for i, item := range v.Value {
		parts[i] = item.String()
	}
	return strings.Join(parts, " ")
}

// Property is a parsed stylesheet abbreviation. An empty Name means the
// abbreviation only carried values.
type Property struct {
	Name      string
	Value     []CSSValue
	Important bool
}

// ValueString renders the comma-separated value list
func (p Property) ValueString() string {
	parts := make([]string, len(p.Value))
	for i, v := range p.Value {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

func (p Property) String() string {
	var b strings.Builder
	b.WriteString(p.Name)
	if p.Name != "" && len(p.Value) > 0 {
		b.WriteString(": ")
	}
	b.WriteString(p.ValueString())
	if p.Important {
		b.WriteString(" !important")
	}
	return b.String()
}

func valueFromToken(tok token.Token) Value {
	switch tok.Kind {
	case token.NumberValue:
		return &NumberValue{Value: tok.Number, Unit: tok.Unit, Raw: tok.Raw}
	case token.ColorValue:
		return &ColorValue{R: tok.Color.R, G: tok.Color.G, B: tok.Color.B, A: tok.Color.A, Raw: tok.Raw}
	case token.StringValue:
		return &StringValue{Value: tok.Value, Quote: tok.Quote}
	case token.Field:
		return &Field{Index: tok.Index, Name: tok.Value}
	default:
		return &Literal{Value: tok.Value}
	}
}
