package css

import (
	"fmt"
	"sync"

	"bennypowers.dev/abbrex/internal/parser/common"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// Parser finds the stylesheet context at an offset using tree-sitter
type Parser struct {
	parser *sitter.Parser
}

var cssLang = sitter.NewLanguage(tree_sitter_css.Language())

// parserPool is a pool of reusable CSS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(cssLang); err != nil {
			panic(fmt.Sprintf("failed to set CSS language: %v", err))
		}
		return &Parser{parser: parser}
	},
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// ClosePool closes all parsers in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// ContextAt reports what belongs at byte offset of a stylesheet: properties
// inside a declaration block, elements in a selector. After a declaration's
// colon the context is a value.
func (p *Parser) ContextAt(source string, offset int) common.Context {
	ctx := common.Context{Syntax: common.Markup, Language: "css"}

	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return ctx
	}
	defer tree.Close()

	pos := uint(min(max(offset, 0), len(sourceBytes)))
	node := tree.RootNode().DescendantForByteRange(pos, pos)

	for n := node; n != nil; n = n.Parent() {
		switch n.Kind() {
		case "declaration":
			ctx.Syntax = common.Stylesheet
			if decl, ok := declaration(n, sourceBytes); ok && pos >= decl.ValueStart {
				ctx.Value = true
				ctx.Property = decl.Property
			}
			return ctx
		case "block":
			ctx.Syntax = common.Stylesheet
			return ctx
		}
	}
	return ctx
}

// declaration reads the property name and colon of a declaration node
func declaration(node *sitter.Node, source []byte) (Declaration, bool) {
	var decl Declaration
	found := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "property_name":
			decl.Property = string(source[child.StartByte():child.EndByte()])
		case ":":
			decl.ValueStart = child.EndByte()
			found = true
		}
	}
	decl.End = node.EndByte()
	return decl, found && decl.Property != ""
}
