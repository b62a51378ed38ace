package stylesheet

import (
	"bennypowers.dev/abbrex/internal/parser"
	"bennypowers.dev/abbrex/internal/token"
)

// ParseOptions configures stylesheet parsing
type ParseOptions struct {
	// Value parses the abbreviation as a value, without a property name
	Value bool
}

type tokenScanner struct {
	tokens []token.Token
	pos    int
}

func (s *tokenScanner) readable() bool {
	return s.pos < len(s.tokens)
}

func (s *tokenScanner) peek() token.Token {
	return s.tokens[s.pos]
}

func (s *tokenScanner) consume(match func(token.Token) bool) bool {
	if s.readable() && match(s.peek()) {
		s.pos++
		return true
	}
	return false
}

func (s *tokenScanner) error(message string) error {
	if s.readable() {
		return parser.NewParseError(parser.ErrUnexpectedToken, message, s.peek().Start)
	}
	end := 0
	if len(s.tokens) > 0 {
		end = s.tokens[len(s.tokens)-1].End
	}
	return parser.NewParseError(parser.ErrUnexpectedToken, message, end)
}

// Parse tokenizes and parses a stylesheet abbreviation
func Parse(source string, opts ParseOptions) ([]Property, error) {
	tokens, err := Tokenize(source, opts.Value)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens, opts)
}

// ParseTokens groups stylesheet tokens into properties separated by +
func ParseTokens(tokens []token.Token, opts ParseOptions) ([]Property, error) {
	s := &tokenScanner{tokens: tokens}
	var result []Property

	for s.readable() {
		prop, ok, err := consumeProperty(s, opts)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, prop)
			continue
		}
		if !s.consume(isOperator(token.Sibling)) {
			return nil, s.error("Unexpected token")
		}
	}

	return result, nil
}

func consumeProperty(s *tokenScanner, opts ParseOptions) (Property, bool, error) {
	var prop Property
	hasName := false

	if tok := s.peek(); !opts.Value && tok.Kind == token.Literal && !isFunctionStart(s) {
		s.pos++
		prop.Name = tok.Value
		hasName = true
		s.consume(isValueDelimiter)
	}

	for s.readable() {
		if s.consume(isOperator(token.Important)) {
			prop.Important = true
			if s.readable() && !s.peek().Is(token.Sibling) {
				return Property{}, false, s.error("Unexpected token after !important")
			}
			continue
		}

		value, ok, err := consumeValue(s)
		if err != nil {
			return Property{}, false, err
		}
		if ok {
			prop.Value = append(prop.Value, value)
			continue
		}

		if !s.consume(isFragmentDelimiter) {
			break
		}
	}

	if hasName || len(prop.Value) > 0 || prop.Important {
		return prop, true, nil
	}
	return Property{}, false, nil
}

// consumeValue reads the space separated values up to the next comma
func consumeValue(s *tokenScanner) (CSSValue, bool, error) {
	var result CSSValue

	for s.readable() {
		tok := s.peek()
		switch {
		case isValue(tok):
			s.pos++
			if tok.Kind == token.Literal {
				args, ok, err := consumeArguments(s)
				if err != nil {
					return CSSValue{}, false, err
				}
				if ok {
					result.Value = append(result.Value, &FunctionCall{Name: tok.Value, Arguments: args})
					continue
				}
			}
			result.Value = append(result.Value, valueFromToken(tok))

		case isValueDelimiter(tok):
			s.pos++

		default:
			return result, len(result.Value) > 0, nil
		}
	}

	return result, len(result.Value) > 0, nil
}

func consumeArguments(s *tokenScanner) ([]CSSValue, bool, error) {
	if !s.readable() || !s.peek().IsBracket(token.Group, true) {
		return nil, false, nil
	}
	open := s.peek()
	s.pos++

	args := []CSSValue{}
	for {
		if !s.readable() {
			return nil, false, parser.NewParseError(parser.ErrUnbalancedBracket, "Unable to find matching )", open.Start)
		}
		if s.consume(isCloseBracket) {
			return args, true, nil
		}

		value, ok, err := consumeValue(s)
		if err != nil {
			return nil, false, err
		}
		if ok {
			args = append(args, value)
			continue
		}
		if !s.readable() || isCloseBracket(s.peek()) {
			continue
		}
		if !s.consume(isWhiteSpace) && !s.consume(isOperator(token.ArgumentDelimiter)) {
			return nil, false, s.error("Unexpected token")
		}
	}
}

// isFunctionStart reports whether the literal under the cursor opens a call
func isFunctionStart(s *tokenScanner) bool {
	next := s.pos + 1
	return next < len(s.tokens) && s.tokens[next].IsBracket(token.Group, true)
}

func isOperator(op token.OperatorType) func(token.Token) bool {
	return func(tok token.Token) bool { return tok.Is(op) }
}

func isCloseBracket(tok token.Token) bool {
	return tok.IsBracket(token.Group, false)
}

func isWhiteSpace(tok token.Token) bool {
	return tok.Kind == token.WhiteSpace
}

func isFragmentDelimiter(tok token.Token) bool {
	return tok.Is(token.ArgumentDelimiter)
}

func isValue(tok token.Token) bool {
	switch tok.Kind {
	case token.StringValue, token.ColorValue, token.NumberValue, token.Literal, token.Field:
		return true
	}
	return false
}

func isValueDelimiter(tok token.Token) bool {
	return isWhiteSpace(tok) || tok.Is(token.PropertyDelimiter) || tok.Is(token.ValueDelimiter)
}
