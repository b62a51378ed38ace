package html

import (
	"fmt"
	"sync"

	"bennypowers.dev/abbrex/internal/log"
	"bennypowers.dev/abbrex/internal/parser/common"
	"bennypowers.dev/abbrex/internal/parser/css"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
)

// Parser finds the embedded regions of HTML documents
type Parser struct {
	parser      *sitter.Parser
	styleQuery  *sitter.Query
	scriptQuery *sitter.Query
	attrQuery   *sitter.Query
}

var htmlLang = sitter.NewLanguage(tree_sitter_html.Language())

// parserPool is a pool of reusable HTML parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(htmlLang); err != nil {
			panic(fmt.Sprintf("failed to set HTML language: %v", err))
		}

		styleQuery, qerr := sitter.NewQuery(htmlLang, `(style_element (raw_text) @css)`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile style query: %v", qerr))
		}

		scriptQuery, qerr := sitter.NewQuery(htmlLang, `(script_element (raw_text) @js)`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile script query: %v", qerr))
		}

		attrQuery, qerr := sitter.NewQuery(htmlLang, `
			(attribute
				(attribute_name) @attr_name
				(quoted_attribute_value (attribute_value) @attr_value)
				(#eq? @attr_name "style"))
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile attribute query: %v", qerr))
		}

		return &Parser{
			parser:      parser,
			styleQuery:  styleQuery,
			scriptQuery: scriptQuery,
			attrQuery:   attrQuery,
		}
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
	for _, q := range []*sitter.Query{p.styleQuery, p.scriptQuery, p.attrQuery} {
		if q != nil {
			q.Close()
		}
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

// Regions finds <style> and <script> contents and style="..." values
func (p *Parser) Regions(source string) []Region {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	var regions []Region
	regions = p.collect(p.styleQuery, "css", StyleTag, root, sourceBytes, regions)
	regions = p.collect(p.scriptQuery, "js", ScriptTag, root, sourceBytes, regions)
	regions = p.collect(p.attrQuery, "attr_value", StyleAttribute, root, sourceBytes, regions)
	return regions
}

// collect appends the captures named capture of query as regions of kind
func (p *Parser) collect(query *sitter.Query, capture string, kind RegionType, root *sitter.Node, sourceBytes []byte, regions []Region) []Region {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	matches := cursor.Matches(query, root, sourceBytes)
	for match := matches.Next(); match != nil; match = matches.Next() {
		for _, c := range match.Captures {
			if query.CaptureNames()[c.Index] != capture {
				continue
			}
			node := c.Node
			regions = append(regions, Region{
				Content:   string(sourceBytes[node.StartByte():node.EndByte()]),
				StartByte: int(node.StartByte()),
				EndByte:   int(node.EndByte()),
				Type:      kind,
			})
		}
	}
	return regions
}

// ContextAt reports what belongs at byte offset of an HTML document.
// Styles are delegated to the CSS parser; a style attribute holds
// declarations, so it is always a stylesheet context.
func (p *Parser) ContextAt(source string, offset int) common.Context {
	offset = min(max(offset, 0), len(source))

	for _, r := range p.Regions(source) {
		if !r.Contains(offset) {
			continue
		}
		local := offset - r.StartByte

		switch r.Type {
		case StyleTag:
			log.Debug("Offset %d is in a style tag", offset)
			return cssContext(r.Content, local)

		case StyleAttribute:
			log.Debug("Offset %d is in a style attribute", offset)
			// Wrap in a dummy rule to make valid CSS
			ctx := cssContext("x{"+r.Content+"}", local+2)
			ctx.Syntax = common.Stylesheet
			return ctx

		case ScriptTag:
			return common.Context{Syntax: common.None, Language: "javascript"}
		}
	}

	return common.Context{Syntax: common.Markup, Language: "html"}
}

func cssContext(source string, offset int) common.Context {
	cp := css.AcquireParser()
	defer css.ReleaseParser(cp)
	return cp.ContextAt(source, offset)
}
