package js

import (
	"fmt"
	"sync"

	"bennypowers.dev/abbrex/internal/log"
	"bennypowers.dev/abbrex/internal/parser/common"
	"bennypowers.dev/abbrex/internal/parser/css"
	htmlparser "bennypowers.dev/abbrex/internal/parser/html"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// Parser finds tagged templates and JSX in JS/TS sources
type Parser struct {
	parser *sitter.Parser
	query  *sitter.Query
}

// templateTags maps template tag names to the document parser of their
// contents. svg templates are markup too.
var templateTags = map[string]string{
	"css":  "css",
	"html": "html",
	"svg":  "html",
}

// taggedTemplates matches tag`...` and, since the JS grammar reads
// TypeScript's tag<Type>`...` as comparisons, that form too.
const taggedTemplates = `[
	(call_expression
		function: (identifier) @tag
		arguments: (template_string) @template)
	(binary_expression
		left: (binary_expression
			left: (identifier) @tag)
		right: (template_string) @template)
]`

var jsLang = sitter.NewLanguage(tree_sitter_javascript.Language())

var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(jsLang); err != nil {
			panic(fmt.Sprintf("failed to set JS language: %v", err))
		}
		query, qerr := sitter.NewQuery(jsLang, taggedTemplates)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile tagged template query: %v", qerr))
		}
		return &Parser{parser: parser, query: query}
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

// Close releases the tree-sitter resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
	if p.query != nil {
		p.query.Close()
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

// ParseTemplates finds the css, html and svg tagged templates of source,
// split into literal segments at their ${...} substitutions
func (p *Parser) ParseTemplates(source string) []TemplateRegion {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	return p.templates(tree.RootNode(), sourceBytes)
}

func (p *Parser) templates(root *sitter.Node, src []byte) []TemplateRegion {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	names := p.query.CaptureNames()
	var regions []TemplateRegion
	matches := cursor.Matches(p.query, root, src)
	for match := matches.Next(); match != nil; match = matches.Next() {
		var region TemplateRegion
		for _, c := range match.Captures {
			switch names[c.Index] {
			case "tag":
				region.Tag = c.Node.Utf8Text(src)
			case "template":
				region.Segments = literalSegments(&c.Node, src)
			}
		}
		if _, ok := templateTags[region.Tag]; ok && len(region.Segments) > 0 {
			regions = append(regions, region)
		}
	}
	return regions
}

// literalSegments returns the string_fragment children of a template_string
func literalSegments(tmpl *sitter.Node, src []byte) []Segment {
	var segments []Segment
	for i := range tmpl.ChildCount() {
		child := tmpl.Child(i)
		if child == nil || child.Kind() != "string_fragment" {
			continue
		}
		segments = append(segments, Segment{
			Content:   child.Utf8Text(src),
			StartByte: int(child.StartByte()),
			EndByte:   int(child.EndByte()),
		})
	}
	return segments
}

// ContextAt reports what belongs at byte offset of a JS/TS source. Segments
// of css and html templates are delegated to their parsers, and text inside
// a JSX element is markup. Anything else is plain script.
func (p *Parser) ContextAt(source string, offset int) common.Context {
	none := common.Context{Syntax: common.None, Language: "javascript"}

	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return none
	}
	defer tree.Close()

	offset = min(max(offset, 0), len(sourceBytes))
	root := tree.RootNode()

	for _, tmpl := range p.templates(root, sourceBytes) {
		for _, seg := range tmpl.Segments {
			if !seg.Contains(offset) {
				continue
			}
			log.Debug("Offset %d is in a %s template", offset, tmpl.Tag)
			return segmentContext(tmpl.Tag, seg, offset)
		}
	}

	pos := uint(offset)
	for n := root.DescendantForByteRange(pos, pos); n != nil; n = n.Parent() {
		switch n.Kind() {
		case "jsx_element":
			return common.Context{Syntax: common.Markup, Language: "javascriptreact", JSX: true}
		case "jsx_opening_element", "jsx_closing_element", "jsx_self_closing_element", "jsx_expression":
			return none
		}
	}
	return none
}

func segmentContext(tag string, seg Segment, offset int) common.Context {
	local := offset - seg.StartByte
	if templateTags[tag] == "css" {
		cp := css.AcquireParser()
		defer css.ReleaseParser(cp)
		return cp.ContextAt(seg.Content, local)
	}
	hp := htmlparser.AcquireParser()
	defer htmlparser.ReleaseParser(hp)
	return hp.ContextAt(seg.Content, local)
}
