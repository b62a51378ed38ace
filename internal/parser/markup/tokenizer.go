package markup

import (
	"strconv"
	"strings"

	"bennypowers.dev/abbrex/internal/scanner"
	"bennypowers.dev/abbrex/internal/token"
)

// tokenizer splits a markup abbreviation into tokens. Bracket depth decides
// how each character is read: inside [ ] only = is an operator, inside { }
// everything except fields is text.
type tokenizer struct {
	s      *scanner.Scanner
	tokens []token.Token

	group      int
	attribute  int
	expression int
}

// Tokenize converts a markup abbreviation into a token stream
func Tokenize(source string) ([]token.Token, error) {
	t := &tokenizer{s: scanner.New(source)}
	for !t.s.EOF() {
		tok, err := t.next()
		if err != nil {
			return nil, err
		}
		t.tokens = append(t.tokens, tok)
	}
	return t.tokens, nil
}

func (t *tokenizer) next() (token.Token, error) {
	t.s.Mark()

	if t.expression > 0 || t.attribute > 0 {
		if tok, ok, err := t.field(); ok || err != nil {
			return tok, err
		}
	}

	switch {
	case t.expression > 0:
		if tok, ok := t.text(); ok {
			return tok, nil
		}
	case t.attribute > 0:
		if tok, ok := t.whiteSpace(); ok {
			return tok, nil
		}
		if tok, ok := t.quoted(); ok {
			return tok, nil
		}
		if t.s.Peek() == '=' {
			t.s.Next()
			return t.operator(token.Equal), nil
		}
		if tok, ok := t.attributeLiteral(); ok {
			return tok, nil
		}
	default:
		if tok, ok := t.whiteSpace(); ok {
			return tok, nil
		}
		if tok, ok := t.repeatCount(); ok {
			return tok, nil
		}
		if tok, ok := t.quoted(); ok {
			return tok, nil
		}
		if tok, ok := t.literal(); ok {
			return tok, nil
		}
		if op, ok := operators[t.s.Peek()]; ok {
			t.s.Next()
			return t.operator(op), nil
		}
	}

	return t.bracket()
}

var operators = map[rune]token.OperatorType{
	'>': token.Child,
	'+': token.Sibling,
	'^': token.Climb,
	'*': token.Repeat,
	'.': token.Class,
	'#': token.ID,
	'/': token.Close,
}

func (t *tokenizer) operator(op token.OperatorType) token.Token {
	return token.Token{
		Kind:     token.Operator,
		Operator: op,
		Start:    t.s.Start(),
		End:      t.s.Pos(),
	}
}

func (t *tokenizer) bracket() (token.Token, error) {
	r := t.s.Peek()
	ctx, open, ok := token.BracketFor(r)
	if !ok {
		return token.Token{}, t.s.Error("Unexpected character")
	}

	depth := t.depth(ctx)
	if open {
		*depth++
	} else {
		if *depth == 0 {
			return token.Token{}, scanner.NewScanError(scanner.ErrUnbalancedBracket, "Unexpected bracket", t.s.Pos(), t.s.Source())
		}
		*depth--
	}
	t.s.Next()

	return token.Token{
		Kind:    token.Bracket,
		Context: ctx,
		Open:    open,
		Start:   t.s.Start(),
		End:     t.s.Pos(),
	}, nil
}

func (t *tokenizer) depth(ctx token.BracketContext) *int {
	switch ctx {
	case token.Attribute:
		return &t.attribute
	case token.Expression:
		return &t.expression
	default:
		return &t.group
	}
}

func (t *tokenizer) whiteSpace() (token.Token, bool) {
	if !t.s.EatWhileFunc(scanner.IsWhiteSpace) {
		return token.Token{}, false
	}
	return token.Token{Kind: token.WhiteSpace, Start: t.s.Start(), End: t.s.Pos()}, true
}

// repeatCount reads the digits of a multiplier right after *
func (t *tokenizer) repeatCount() (token.Token, bool) {
	if len(t.tokens) == 0 || !t.tokens[len(t.tokens)-1].Is(token.Repeat) {
		return token.Token{}, false
	}
	if !t.s.EatWhileFunc(scanner.IsNumber) {
		return token.Token{}, false
	}
	raw := t.s.Current()
	n, _ := strconv.ParseFloat(raw, 64)
	return token.Token{
		Kind:   token.NumberValue,
		Number: n,
		Raw:    raw,
		Start:  t.s.Start(),
		End:    t.s.Pos(),
	}, true
}

// field reads ${n}, ${n:placeholder} or ${variable}
func (t *tokenizer) field() (token.Token, bool, error) {
	start := t.s.Pos()
	if !(t.s.Eat('$') && t.s.Eat('{')) {
		t.s.SetPos(start)
		return token.Token{}, false, nil
	}

	tok := token.Token{Kind: token.Field, Index: -1, Start: start}
	t.s.Mark()
	switch {
	case t.s.EatWhileFunc(scanner.IsNumber):
		tok.Index, _ = strconv.Atoi(t.s.Current())
		if t.s.Eat(':') {
			placeholder, err := t.placeholder()
			if err != nil {
				return token.Token{}, false, err
			}
			tok.Value = placeholder
		}
	case scanner.IsAlpha(t.s.Peek()):
		t.s.EatWhileFunc(isVariableName)
		tok.Value = t.s.Current()
	}

	if !t.s.Eat('}') {
		return token.Token{}, false, scanner.NewScanError(scanner.ErrUnterminatedField, "Expecting }", t.s.Pos(), t.s.Source())
	}
	tok.End = t.s.Pos()
	return tok, true, nil
}

// placeholder reads field placeholder text up to the unmatched }
func (t *tokenizer) placeholder() (string, error) {
	start := t.s.Pos()
	depth := 0
	for !t.s.EOF() {
		switch t.s.Peek() {
		case '\\':
			t.s.Next()
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return t.s.Substring(start, t.s.Pos()), nil
			}
			depth--
		}
		t.s.Next()
	}
	return "", scanner.NewScanError(scanner.ErrUnterminatedField, "Unable to find matching bracket", start, t.s.Source())
}

func isVariableName(r rune) bool {
	return scanner.IsAlphaNumeric(r) || r == '_' || r == '-'
}

// text reads the content of a { } block up to its unmatched closing brace or a field
func (t *tokenizer) text() (token.Token, bool) {
	var b strings.Builder
	depth := 0
loop:
	for !t.s.EOF() {
		r := t.s.Peek()
		switch {
		case r == '\\':
			t.escape(&b)
			continue
		case r == '$' && t.s.PeekAt(1) == '{':
			break loop
		case r == '{':
			depth++
		case r == '}':
			if depth == 0 {
				break loop
			}
			depth--
		}
		b.WriteRune(t.s.Next())
	}
	return t.literalToken(b.String())
}

// attributeLiteral reads an attribute name or unquoted value
func (t *tokenizer) attributeLiteral() (token.Token, bool) {
	var b strings.Builder
	for !t.s.EOF() {
		r := t.s.Peek()
		if r == '\\' {
			t.escape(&b)
			continue
		}
		if scanner.IsWhiteSpace(r) || scanner.IsQuote(r) || r == '=' || r == '[' || r == ']' || r == '{' || r == '}' {
			break
		}
		if r == '$' && t.s.PeekAt(1) == '{' {
			break
		}
		b.WriteRune(t.s.Next())
	}
	return t.literalToken(b.String())
}

// literal reads an element name, class or id
func (t *tokenizer) literal() (token.Token, bool) {
	var b strings.Builder
	for !t.s.EOF() {
		r := t.s.Peek()
		switch {
		case r == '\\':
			t.escape(&b)
		case isNameChar(r):
			b.WriteRune(t.s.Next())
		case r == '^' && inCounterModifier(b.String()):
			// $@^ numbers across the parent repeat
			b.WriteRune(t.s.Next())
		case r == '/' && t.s.Pos() > t.s.Start() && scanner.IsNumber(t.s.PeekAt(-1)) && scanner.IsNumber(t.s.PeekAt(1)):
			// fractions in class names, like col-1/2
			b.WriteRune(t.s.Next())
		default:
			return t.literalToken(b.String())
		}
	}
	return t.literalToken(b.String())
}

func (t *tokenizer) literalToken(value string) (token.Token, bool) {
	if t.s.Pos() == t.s.Start() {
		return token.Token{}, false
	}
	return token.Token{
		Kind:  token.Literal,
		Value: value,
		Start: t.s.Start(),
		End:   t.s.Pos(),
	}, true
}

// inCounterModifier reports whether s ends in an unescaped counter run
// followed by @ and any carets
func inCounterModifier(s string) bool {
	s = strings.TrimRight(s, "^")
	s, ok := strings.CutSuffix(s, "@")
	if !ok {
		return false
	}
	run := strings.TrimRight(s, "$")
	return len(run) < len(s) && !strings.HasSuffix(run, `\`)
}

func isNameChar(r rune) bool {
	switch r {
	case '_', '-', ':', '!', '@', '$', '%':
		return true
	}
	return scanner.IsAlphaNumeric(r) || scanner.IsUmlaut(r)
}

// escape consumes a backslash sequence. Escapes of syntax characters lose the
// backslash; any other escape is kept so rollout can tell an escaped counter
// glyph from a live one.
func (t *tokenizer) escape(b *strings.Builder) {
	t.s.Next()
	r := t.s.Next()
	if r == scanner.EOF {
		b.WriteByte('\\')
		return
	}
	if !strings.ContainsRune(`\{}[]()'">+^*.#/=`, r) {
		b.WriteByte('\\')
	}
	b.WriteRune(r)
}

// quoted reads a quoted string. A missing closing quote ends the string at
// the end of input.
func (t *tokenizer) quoted() (token.Token, bool) {
	quote := t.s.Peek()
	if !scanner.IsQuote(quote) {
		return token.Token{}, false
	}
	t.s.Next()

	var b strings.Builder
	tok := token.Token{Kind: token.StringValue, Quote: quote, Start: t.s.Start(), Unterminated: true}
	for !t.s.EOF() {
		r := t.s.Peek()
		if r == '\\' {
			t.escape(&b)
			continue
		}
		t.s.Next()
		if r == quote {
			tok.Unterminated = false
			break
		}
		b.WriteRune(r)
	}
	tok.Value = b.String()
	tok.End = t.s.Pos()
	return tok, true
}
