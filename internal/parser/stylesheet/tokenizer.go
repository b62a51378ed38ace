package stylesheet

import (
	"strconv"
	"strings"

	"bennypowers.dev/abbrex/internal/scanner"
	"bennypowers.dev/abbrex/internal/token"
)

type tokenizer struct {
	s        *scanner.Scanner
	tokens   []token.Token
	brackets int
	value    bool
}

// Tokenize converts a stylesheet abbreviation into a token stream.
// In value context, keywords may contain digits and dashes from the start.
func Tokenize(source string, valueContext bool) ([]token.Token, error) {
	t := &tokenizer{s: scanner.New(source), value: valueContext}

	for !t.s.EOF() {
		tok, err := t.next(t.brackets == 0 && !t.value)
		if err != nil {
			return nil, err
		}

		if tok.Kind == token.Bracket {
			if tok.Open {
				if t.brackets == 0 {
					t.mergeTrailing(tok)
				}
				t.brackets++
			} else {
				t.brackets--
				if t.brackets < 0 {
					return nil, scanner.NewScanError(scanner.ErrUnbalancedBracket, "Unexpected bracket", tok.Start, source)
				}
			}
		}

		t.tokens = append(t.tokens, tok)

		if consumesDashAfter(tok) && t.s.Peek() == '-' {
			t.s.Mark()
			t.s.Next()
			t.tokens = append(t.tokens, t.operator(token.ValueDelimiter))
		}
	}

	return t.tokens, nil
}

func (t *tokenizer) next(short bool) (token.Token, error) {
	t.s.Mark()

	tok, ok, err := t.field()
	if ok || err != nil {
		return tok, err
	}
	t.s.Mark()
	if tok, ok, err := t.color(); ok || err != nil {
		return tok, err
	}
	for _, produce := range []func() (token.Token, bool){
		func() (token.Token, bool) { return t.literal(short) },
		t.number,
		t.quoted,
		t.bracket,
		t.operatorToken,
		t.whiteSpace,
	} {
		t.s.Mark()
		if tok, ok := produce(); ok {
			return tok, nil
		}
	}
	return token.Token{}, t.s.Error("Unexpected character")
}

// consumesDashAfter reports whether a - following tok separates values
// instead of starting a negative number, as in p10-20
func consumesDashAfter(tok token.Token) bool {
	return tok.Kind == token.ColorValue || (tok.Kind == token.NumberValue && tok.Unit == "")
}

// mergeTrailing joins the adjacent literals and numbers in front of an
// opening bracket into a single function name, so scale3d( stays whole
func (t *tokenizer) mergeTrailing(open token.Token) {
	i := len(t.tokens)
	end := open.Start
	for i > 0 {
		prev := t.tokens[i-1]
		if (prev.Kind != token.Literal && prev.Kind != token.NumberValue) || prev.End != end {
			break
		}
		end = prev.Start
		i--
	}
	if i == len(t.tokens) {
		return
	}
	start := t.tokens[i].Start
	t.tokens = append(t.tokens[:i], token.Token{
		Kind:  token.Literal,
		Value: t.s.Substring(start, open.Start),
		Start: start,
		End:   open.Start,
	})
}

func (t *tokenizer) field() (token.Token, bool, error) {
	start := t.s.Pos()
	if !(t.s.Eat('$') && t.s.Eat('{')) {
		t.s.SetPos(start)
		return token.Token{}, false, nil
	}

	tok := token.Token{Kind: token.Field, Index: -1, Start: start}
	t.s.Mark()
	if t.s.EatWhileFunc(scanner.IsNumber) {
		tok.Index, _ = strconv.Atoi(t.s.Current())
		if t.s.Eat(':') {
			t.s.Mark()
			for !t.s.EOF() && t.s.Peek() != '}' {
				t.s.Next()
			}
			tok.Value = t.s.Current()
		}
	} else {
		t.s.EatWhileFunc(isKeyword)
		tok.Value = t.s.Current()
	}

	if !t.s.Eat('}') {
		return token.Token{}, false, scanner.NewScanError(scanner.ErrUnterminatedField, "Expecting }", t.s.Pos(), t.s.Source())
	}
	tok.End = t.s.Pos()
	return tok, true, nil
}

// literal reads a keyword or a $/@ preprocessor variable. Short literals
// stop at digits and dashes so p10-20 splits into a name and values.
func (t *tokenizer) literal(short bool) (token.Token, bool) {
	match := isKeyword
	if short {
		match = scanner.IsAlphaWord
	}

	switch {
	case t.s.EatFunc(isIdentPrefix):
		t.s.EatWhileFunc(isKeyword)
	case t.s.EatFunc(scanner.IsAlphaWord):
		t.s.EatWhileFunc(match)
	default:
		return token.Token{}, false
	}

	return token.Token{
		Kind:  token.Literal,
		Value: t.s.Current(),
		Start: t.s.Start(),
		End:   t.s.Pos(),
	}, true
}

func (t *tokenizer) number() (token.Token, bool) {
	start := t.s.Pos()
	t.s.Eat('-')
	afterSign := t.s.Pos()

	t.s.EatWhileFunc(scanner.IsNumber)
	if t.s.Peek() == '.' && scanner.IsNumber(t.s.PeekAt(1)) {
		t.s.Next()
		t.s.EatWhileFunc(scanner.IsNumber)
	}

	if t.s.Pos() == afterSign {
		t.s.SetPos(start)
		return token.Token{}, false
	}

	raw := t.s.Current()
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		t.s.SetPos(start)
		return token.Token{}, false
	}

	unitStart := t.s.Pos()
	if !t.s.Eat('%') {
		t.s.EatWhileFunc(scanner.IsAlphaWord)
	}

	return token.Token{
		Kind:   token.NumberValue,
		Number: value,
		Unit:   t.s.Substring(unitStart, t.s.Pos()),
		Raw:    raw,
		Start:  start,
		End:    t.s.Pos(),
	}, true
}

// color reads #hex with an optional .alpha suffix; #t is transparent.
// A dot must be followed by the alpha digits.
func (t *tokenizer) color() (token.Token, bool, error) {
	start := t.s.Pos()
	if !t.s.Eat('#') {
		return token.Token{}, false, nil
	}

	bodyStart := t.s.Pos()
	alpha := 1.0
	var body string
	if t.s.Eat('t') {
		body, alpha = "0", 0
	} else {
		t.s.EatWhileFunc(scanner.IsHex)
		body = t.s.Substring(bodyStart, t.s.Pos())
	}

	if t.s.Eat('.') {
		alphaStart := t.s.Pos()
		if !t.s.EatWhileFunc(scanner.IsNumber) {
			return token.Token{}, false, t.s.Error("Unexpected character for alpha value of color")
		}
		alpha, _ = strconv.ParseFloat("0."+t.s.Substring(alphaStart, t.s.Pos()), 64)
	}

	return token.Token{
		Kind:  token.ColorValue,
		Color: ExpandHex(body, alpha),
		Raw:   t.s.Substring(start, t.s.Pos()),
		Start: start,
		End:   t.s.Pos(),
	}, true, nil
}

// ExpandHex converts a shorthand hex body to a color:
// "" is black, "f" is ffffff, "fc" is fcfcfc, "fc0" is ffcc00, and longer
// bodies are repeated and cut to six digits.
func ExpandHex(body string, alpha float64) token.Color {
	var hex string
	switch len(body) {
	case 0:
		hex = "000000"
	case 1:
		hex = strings.Repeat(body, 6)
	case 2:
		hex = strings.Repeat(body, 3)
	case 3:
		hex = string([]byte{body[0], body[0], body[1], body[1], body[2], body[2]})
	default:
		hex = (body + body)[:6]
	}

	channel := func(i int) uint8 {
		v, _ := strconv.ParseUint(hex[i:i+2], 16, 8)
		return uint8(v)
	}
	return token.Color{R: channel(0), G: channel(2), B: channel(4), A: alpha}
}

// quoted reads a quoted string, ending at end of input when unterminated
func (t *tokenizer) quoted() (token.Token, bool) {
	quote := t.s.Peek()
	if !scanner.IsQuote(quote) {
		return token.Token{}, false
	}
	t.s.Next()

	tok := token.Token{Kind: token.StringValue, Quote: quote, Start: t.s.Start(), Unterminated: true}
	contentStart := t.s.Pos()
	contentEnd := contentStart
	for !t.s.EOF() {
		r := t.s.Next()
		if r == '\\' {
			t.s.Next()
			continue
		}
		if r == quote {
			tok.Unterminated = false
			break
		}
		contentEnd = t.s.Pos()
	}
	if tok.Unterminated {
		contentEnd = t.s.Pos()
	}
	tok.Value = t.s.Substring(contentStart, contentEnd)
	tok.End = t.s.Pos()
	return tok, true
}

func (t *tokenizer) bracket() (token.Token, bool) {
	r := t.s.Peek()
	if r != '(' && r != ')' {
		return token.Token{}, false
	}
	t.s.Next()
	return token.Token{
		Kind:    token.Bracket,
		Context: token.Group,
		Open:    r == '(',
		Start:   t.s.Start(),
		End:     t.s.Pos(),
	}, true
}

var operators = map[rune]token.OperatorType{
	'+': token.Sibling,
	'!': token.Important,
	',': token.ArgumentDelimiter,
	':': token.PropertyDelimiter,
	'-': token.ValueDelimiter,
}

func (t *tokenizer) operatorToken() (token.Token, bool) {
	op, ok := operators[t.s.Peek()]
	if !ok {
		return token.Token{}, false
	}
	t.s.Next()
	return t.operator(op), true
}

func (t *tokenizer) operator(op token.OperatorType) token.Token {
	return token.Token{
		Kind:     token.Operator,
		Operator: op,
		Start:    t.s.Start(),
		End:      t.s.Pos(),
	}
}

func (t *tokenizer) whiteSpace() (token.Token, bool) {
	if !t.s.EatWhileFunc(scanner.IsSpace) {
		return token.Token{}, false
	}
	return token.Token{Kind: token.WhiteSpace, Start: t.s.Start(), End: t.s.Pos()}, true
}

func isIdentPrefix(r rune) bool {
	return r == '@' || r == '$'
}

func isKeyword(r rune) bool {
	return scanner.IsAlphaNumeric(r) || r == '_' || r == '-'
}
