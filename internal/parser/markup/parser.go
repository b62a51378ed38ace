package markup

import (
	"regexp"
	"strings"

	"bennypowers.dev/abbrex/internal/log"
	"bennypowers.dev/abbrex/internal/node"
	"bennypowers.dev/abbrex/internal/parser"
	"bennypowers.dev/abbrex/internal/token"
)

// ParseOptions configures markup parsing
type ParseOptions struct {
	// Variables resolve ${name} references in text and attribute values
	Variables map[string]string
}

var namePattern = regexp.MustCompile(`^[\p{L}\p{N}_\-$:@!^]+\+?$`)

// iterationLimit bounds the parser loops. Every loop consumes a token or
// returns, so a correct grammar never reaches it.
var iterationLimit = func(tokens int) int { return tokens*4 + 16 }

type markupParser struct {
	tokens []token.Token
	pos    int
	tree   *node.Tree
	opts   ParseOptions

	iterations int
	limit      int
}

// Parse tokenizes and parses a markup abbreviation into an optimized tree
func Parse(source string, opts ParseOptions) (*node.Tree, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens, opts)
}

// ParseTokens builds an abbreviation tree from a markup token stream
func ParseTokens(tokens []token.Token, opts ParseOptions) (*node.Tree, error) {
	p := &markupParser{
		tokens: tokens,
		tree:   node.New(),
		opts:   opts,
		limit:  iterationLimit(len(tokens)),
	}

	if err := p.statements(p.tree.Root()); err != nil {
		return nil, err
	}
	if p.readable() {
		tok := p.peek()
		if tok.IsBracket(token.Group, false) {
			return nil, parser.NewParseError(parser.ErrUnbalancedBracket, "Unexpected )", tok.Start)
		}
		return nil, parser.NewParseError(parser.ErrUnexpectedToken, "Unexpected "+tok.Kind.String(), tok.Start)
	}

	p.tree.Optimize()
	log.Debug("Parsed markup abbreviation into %d nodes", p.tree.Len())
	return p.tree, nil
}

func (p *markupParser) readable() bool {
	return p.pos < len(p.tokens)
}

func (p *markupParser) peek() token.Token {
	if p.readable() {
		return p.tokens[p.pos]
	}
	return token.Token{Kind: -1}
}

// peekAt returns the token n positions ahead, with ok false past the end
func (p *markupParser) peekAt(n int) (token.Token, bool) {
	if i := p.pos + n; i < len(p.tokens) {
		return p.tokens[i], true
	}
	return token.Token{}, false
}

func (p *markupParser) advance() token.Token {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

func (p *markupParser) consume(op token.OperatorType) (token.Token, bool) {
	if p.readable() && p.peek().Is(op) {
		return p.advance(), true
	}
	return token.Token{}, false
}

func (p *markupParser) consumeBracket(ctx token.BracketContext, open bool) (token.Token, bool) {
	if p.readable() && p.peek().IsBracket(ctx, open) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// endOffset is the position reported for errors at the end of input
func (p *markupParser) endOffset() int {
	if len(p.tokens) == 0 {
		return 0
	}
	return p.tokens[len(p.tokens)-1].End
}

func (p *markupParser) guard() error {
	p.iterations++
	if p.iterations > p.limit {
		return parser.NewParseError(parser.ErrIterationLimit, "Endless loop while parsing abbreviation", p.offset())
	}
	return nil
}

func (p *markupParser) offset() int {
	if p.readable() {
		return p.peek().Start
	}
	return p.endOffset()
}

// statements parses a sequence of elements joined by > + and ^ into parent.
// Climbing never leaves parent, so ^ inside a group stops at the group.
func (p *markupParser) statements(parent node.ID) error {
	ctx := parent
	var stack []node.ID
	var pending *token.Token

	for p.readable() {
		if err := p.guard(); err != nil {
			return err
		}

		id, ok, err := p.elementOrGroup()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		p.tree.AppendChild(ctx, id)
		pending = nil

		if op, ok := p.consume(token.Child); ok {
			stack = append(stack, ctx)
			ctx = id
			pending = &op
		} else if op, ok := p.consume(token.Sibling); ok {
			pending = &op
		} else if op, ok := p.consume(token.Climb); ok {
			pending = &op
			for {
				if len(stack) > 0 {
					ctx = stack[len(stack)-1]
					stack = stack[:len(stack)-1]
				}
				if _, more := p.consume(token.Climb); !more {
					break
				}
			}
		}
	}

	if pending != nil {
		return parser.NewParseError(parser.ErrUnexpectedToken, "Expecting abbreviation after "+pending.Operator.Symbol(), pending.Start)
	}
	return nil
}

func (p *markupParser) elementOrGroup() (node.ID, bool, error) {
	if p.peek().IsBracket(token.Group, true) {
		id, err := p.group()
		return id, err == nil, err
	}
	return p.element()
}

func (p *markupParser) group() (node.ID, error) {
	open := p.advance()
	id := p.tree.Add(node.Node{Start: open.Start})

	if err := p.statements(id); err != nil {
		return node.None, err
	}

	closing, ok := p.consumeBracket(token.Group, false)
	if !ok {
		if p.readable() {
			tok := p.peek()
			return node.None, parser.NewParseError(parser.ErrUnexpectedToken, "Unexpected "+tok.Kind.String(), tok.Start)
		}
		return node.None, parser.NewParseError(parser.ErrUnbalancedBracket, "Unable to find matching )", open.Start)
	}

	n := p.tree.Node(id)
	n.End = closing.End
	if op, ok := p.consume(token.Repeat); ok {
		n.Repeat, n.End = p.repeat(op)
	}
	return id, nil
}

// repeat reads the optional count after a * operator
func (p *markupParser) repeat(op token.Token) (*node.Repeat, int) {
	if p.readable() && p.peek().Kind == token.NumberValue {
		count := p.advance()
		return &node.Repeat{Count: int(count.Number)}, count.End
	}
	return &node.Repeat{Implicit: true, Count: 1}, op.End
}

func (p *markupParser) element() (node.ID, bool, error) {
	if !p.readable() {
		return node.None, false, nil
	}

	start := p.peek()
	n := node.Node{Start: start.Start, End: start.Start}
	hasContent := false

	if start.Kind == token.Literal {
		name := p.advance()
		n.Name, n.End = name.Value, name.End
		hasContent = true
		if p.isExpando(name) {
			n.Name += "+"
			n.End = p.advance().End
		}
	}

loop:
	for p.readable() {
		if err := p.guard(); err != nil {
			return node.None, false, err
		}

		tok := p.peek()
		switch {
		case tok.Is(token.Repeat) && hasContent && n.Repeat == nil:
			p.advance()
			n.Repeat, n.End = p.repeat(tok)

		case tok.Is(token.ID), tok.Is(token.Class):
			p.advance()
			value, end := p.shorthand(tok)
			if tok.Is(token.ID) {
				if value != "" {
					n.SetAttribute(node.NewAttribute("id", value))
				}
			} else {
				n.AddClass(value)
			}
			n.End = end
			hasContent = true

		case tok.IsBracket(token.Attribute, true):
			end, err := p.attributeSet(&n)
			if err != nil {
				return node.None, false, err
			}
			n.End = end
			hasContent = true

		case tok.IsBracket(token.Expression, true) && n.Value == "":
			text, end, err := p.text()
			if err != nil {
				return node.None, false, err
			}
			n.Value, n.End = text, end
			hasContent = true

		case tok.Is(token.Close) && hasContent:
			n.SelfClosing = true
			n.End = p.advance().End
			break loop

		default:
			break loop
		}
	}

	if !hasContent {
		return node.None, false, nil
	}
	if n.Name != "" && !namePattern.MatchString(n.Name) {
		return node.None, false, parser.NewParseError(parser.ErrInvalidName, "Invalid abbreviation name "+n.Name, n.Start)
	}
	return p.tree.Add(n), true, nil
}

// isExpando reports whether the + after name ends the abbreviation or group,
// marking name+ as a reference to an externally resolved expansion
func (p *markupParser) isExpando(name token.Token) bool {
	plus, ok := p.peekAt(0)
	if !ok || !plus.Is(token.Sibling) || plus.Start != name.End {
		return false
	}
	after, ok := p.peekAt(1)
	return !ok || after.IsBracket(token.Group, false)
}

// shorthand reads the name after . or #
func (p *markupParser) shorthand(op token.Token) (string, int) {
	if p.readable() && p.peek().Kind == token.Literal && p.peek().Start == op.End {
		lit := p.advance()
		return lit.Value, lit.End
	}
	return "", op.End
}

// text reads a { } block into a string, expanding variables
func (p *markupParser) text() (string, int, error) {
	open := p.advance()
	var b strings.Builder
	for {
		if !p.readable() {
			return "", 0, parser.NewParseError(parser.ErrUnbalancedBrace, "Unable to find closing } for text", open.Start)
		}
		tok := p.advance()
		if tok.IsBracket(token.Expression, false) {
			return b.String(), tok.End, nil
		}
		b.WriteString(p.tokenText(tok))
	}
}

func (p *markupParser) tokenText(tok token.Token) string {
	switch {
	case tok.IsVariable():
		if v, ok := p.opts.Variables[tok.Value]; ok {
			return v
		}
		return tok.Value
	case tok.Kind == token.Literal, tok.Kind == token.StringValue:
		return tok.Value
	default:
		return tok.String()
	}
}

// attributeSet parses [ ... ] into n. Tokens that cannot start an attribute
// end the set; they are skipped up to the closing bracket.
func (p *markupParser) attributeSet(n *node.Node) (int, error) {
	open := p.advance()
	lenient := false

	for {
		if err := p.guard(); err != nil {
			return 0, err
		}
		p.skipWhiteSpace()
		if !p.readable() {
			if lenient {
				return p.endOffset(), nil
			}
			return 0, parser.NewParseError(parser.ErrUnbalancedBracket, "Unable to find closing ] for attributes", open.Start)
		}

		tok := p.peek()
		switch {
		case tok.IsBracket(token.Attribute, false):
			return p.advance().End, nil

		case tok.Kind == token.StringValue:
			p.advance()
			n.SetAttribute(quotedAttribute("", tok))
			lenient = tok.Unterminated

		case tok.Kind == token.Literal || tok.Kind == token.Field:
			attr, unterminated, err := p.attribute()
			if err != nil {
				return 0, err
			}
			n.SetAttribute(attr)
			lenient = unterminated

		default:
			log.Debug("Skipping unknown attribute syntax at %d", tok.Start)
			return p.skipAttributes(open)
		}
	}
}

func (p *markupParser) skipAttributes(open token.Token) (int, error) {
	depth := 0
	for p.readable() {
		tok := p.advance()
		switch {
		case tok.IsBracket(token.Attribute, true):
			depth++
		case tok.IsBracket(token.Attribute, false):
			if depth == 0 {
				return tok.End, nil
			}
			depth--
		}
	}
	return 0, parser.NewParseError(parser.ErrUnbalancedBracket, "Unable to find closing ] for attributes", open.Start)
}

func (p *markupParser) skipWhiteSpace() {
	for p.readable() && p.peek().Kind == token.WhiteSpace {
		p.advance()
	}
}

// attribute parses name, name=value, name="value" or name={value}
func (p *markupParser) attribute() (node.Attribute, bool, error) {
	name, _ := p.run()
	attr := node.Attribute{Name: name}
	if strings.HasPrefix(attr.Name, "!") {
		attr.Implied = true
		attr.Name = attr.Name[1:]
	}
	if len(attr.Name) > 1 && strings.HasSuffix(attr.Name, ".") {
		attr.Boolean = true
		attr.Name = attr.Name[:len(attr.Name)-1]
	}

	if _, ok := p.consume(token.Equal); !ok {
		return attr, false, nil
	}

	tok := p.peek()
	switch {
	case p.readable() && tok.Kind == token.StringValue:
		p.advance()
		quoted := quotedAttribute(attr.Name, tok)
		quoted.Implied, quoted.Boolean = attr.Implied, attr.Boolean
		return quoted, tok.Unterminated, nil

	case p.readable() && tok.IsBracket(token.Expression, true):
		text, _, err := p.text()
		if err != nil {
			return attr, false, err
		}
		attr.SetValue(text)
		attr.ValueType = node.ExpressionValue

	case p.readable() && (tok.Kind == token.Literal || tok.Kind == token.Field):
		value, _ := p.run()
		attr.SetValue(value)

	default:
		attr.SetValue("")
	}
	return attr, false, nil
}

// run joins adjacent literal and field tokens, like title=item${1}
func (p *markupParser) run() (string, int) {
	var b strings.Builder
	end := -1
	for p.readable() {
		tok := p.peek()
		if tok.Kind != token.Literal && tok.Kind != token.Field {
			break
		}
		if end >= 0 && tok.Start != end {
			break
		}
		b.WriteString(p.tokenText(p.advance()))
		end = tok.End
	}
	return b.String(), end
}

func quotedAttribute(name string, tok token.Token) node.Attribute {
	attr := node.Attribute{Name: name, ValueType: node.DoubleQuoted}
	if tok.Quote == '\'' {
		attr.ValueType = node.SingleQuoted
	}
	attr.SetValue(tok.Value)
	return attr
}
