package token

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the token variants
type Kind int

const (
	// Literal is an identifier, keyword or raw text run
	Literal Kind = iota
	// NumberValue is a number with an optional unit
	NumberValue
	// ColorValue is a #hex color with optional alpha
	ColorValue
	// StringValue is a quoted string
	StringValue
	// Bracket is one of ( ) [ ] { }
	Bracket
	// Operator is a grammar operator such as > + ^ * or !
	Operator
	// WhiteSpace is a run of spaces or tabs
	WhiteSpace
	// Field is a ${n:placeholder} tab stop or a ${name} variable
	Field
)

var kindNames = [...]string{
	Literal:     "Literal",
	NumberValue: "NumberValue",
	ColorValue:  "ColorValue",
	StringValue: "StringValue",
	Bracket:     "Bracket",
	Operator:    "Operator",
	WhiteSpace:  "WhiteSpace",
	Field:       "Field",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// OperatorType identifies an operator token
type OperatorType int

const (
	// NoOperator is the zero value for tokens that are not operators
	NoOperator OperatorType = iota
	// Child is the > operator
	Child
	// Sibling is the + operator
	Sibling
	// Climb is the ^ operator
	Climb
	// Repeat is the * operator
	Repeat
	// Class is the . shorthand
	Class
	// ID is the # shorthand
	ID
	// Close is the / self-closing marker
	Close
	// Equal separates an attribute name from its value
	Equal
	// Important is the ! marker in stylesheet values
	Important
	// ArgumentDelimiter is the , between values
	ArgumentDelimiter
	// PropertyDelimiter is the : between a property name and its value
	PropertyDelimiter
	// ValueDelimiter is the - between stylesheet values
	ValueDelimiter
)

var operatorSymbols = [...]string{
	NoOperator:        "",
	Child:             ">",
	Sibling:           "+",
	Climb:             "^",
	Repeat:            "*",
	Class:             ".",
	ID:                "#",
	Close:             "/",
	Equal:             "=",
	Important:         "!",
	ArgumentDelimiter: ",",
	PropertyDelimiter: ":",
	ValueDelimiter:    "-",
}

// Symbol returns the source character of the operator
func (o OperatorType) Symbol() string {
	if o >= 0 && int(o) < len(operatorSymbols) {
		return operatorSymbols[o]
	}
	return ""
}

// BracketContext is what a bracket opens or closes
type BracketContext int

const (
	// NoContext is the zero value for tokens that are not brackets
	NoContext BracketContext = iota
	// Group is ( )
	Group
	// Attribute is [ ]
	Attribute
	// Expression is { }
	Expression
)

// BracketFor returns the context and direction of a bracket character
func BracketFor(r rune) (ctx BracketContext, open bool, ok bool) {
	switch r {
	case '(':
		return Group, true, true
	case ')':
		return Group, false, true
	case '[':
		return Attribute, true, true
	case ']':
		return Attribute, false, true
	case '{':
		return Expression, true, true
	case '}':
		return Expression, false, true
	}
	return NoContext, false, false
}

// Symbol returns the bracket character for a context and direction
func (c BracketContext) Symbol(open bool) string {
	pairs := map[BracketContext][2]string{
		Group:      {"(", ")"},
		Attribute:  {"[", "]"},
		Expression: {"{", "}"},
	}
	pair, ok := pairs[c]
	if !ok {
		return ""
	}
	if open {
		return pair[0]
	}
	return pair[1]
}

// Color is an RGBA color, with channels in 0-255 and alpha in 0-1
type Color struct {
	R, G, B uint8
	A       float64
}

// Token is a lexeme of either abbreviation grammar. Start and End are
// half-open byte offsets into the source that produced it.
type Token struct {
	Kind  Kind
	Start int
	End   int

	// Value is the text of Literal and StringValue tokens and the name of Field tokens
	Value string

	// Number and Unit belong to NumberValue; Raw is the source text of numbers and colors
	Number float64
	Unit   string
	Raw    string

	Color Color

	// Quote is the delimiter of a StringValue
	Quote        rune
	Unterminated bool

	Open    bool
	Context BracketContext

	Operator OperatorType

	// Index is the tab stop of a Field, or -1 for a variable reference
	Index int
}

// Is reports whether t is an operator of type op
func (t Token) Is(op OperatorType) bool {
	return t.Kind == Operator && t.Operator == op
}

// IsBracket reports whether t is a bracket of ctx in the given direction
func (t Token) IsBracket(ctx BracketContext, open bool) bool {
	return t.Kind == Bracket && t.Context == ctx && t.Open == open
}

// IsVariable reports whether a Field token references a variable instead of a tab stop
func (t Token) IsVariable() bool {
	return t.Kind == Field && t.Index < 0
}

// String renders the token back to abbreviation syntax
func (t Token) String() string {
	switch t.Kind {
	case Literal:
		return t.Value
	case NumberValue:
		return strconv.FormatFloat(t.Number, 'f', -1, 64) + t.Unit
	case ColorValue:
		return t.Raw
	case StringValue:
		if t.Unterminated {
			return string(t.Quote) + t.Value
		}
		return string(t.Quote) + t.Value + string(t.Quote)
	case Bracket:
		return t.Context.Symbol(t.Open)
	case Operator:
		return t.Operator.Symbol()
	case WhiteSpace:
		return " "
	case Field:
		if t.IsVariable() {
			return "${" + t.Value + "}"
		}
		if t.Value != "" {
			return fmt.Sprintf("${%d:%s}", t.Index, t.Value)
		}
		return fmt.Sprintf("${%d}", t.Index)
	}
	return ""
}

// Debug returns a compact description of the token for diagnostics
func (t Token) Debug() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.String(), t.Start, t.End)
}

// Join renders a token slice back to source form
func Join(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.String())
	}
	return b.String()
}
