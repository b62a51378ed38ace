package parser

import (
	"bennypowers.dev/abbrex/internal/parser/common"
	"bennypowers.dev/abbrex/internal/parser/css"
	"bennypowers.dev/abbrex/internal/parser/html"
	"bennypowers.dev/abbrex/internal/parser/js"
)

// languages maps language IDs to the parser category they use.
// "css" → direct CSS, "html" → HTML parser, "js" → JS parser.
var languages = map[string]string{
	"css":             "css",
	"scss":            "css",
	"less":            "css",
	"html":            "html",
	"vue":             "html",
	"svelte":          "html",
	"javascript":      "js",
	"javascriptreact": "js",
	"typescript":      "js",
	"typescriptreact": "js",
}

// IsSupportedLanguage returns true if Detect understands the language
func IsSupportedLanguage(languageID string) bool {
	_, ok := languages[languageID]
	return ok
}

// Detect reports which abbreviation syntax belongs at byte offset of a
// document. The second result is false for unsupported languages.
func Detect(languageID, source string, offset int) (common.Context, bool) {
	switch languages[languageID] {
	case "css":
		p := css.AcquireParser()
		defer css.ReleaseParser(p)
		return p.ContextAt(source, offset), true

	case "html":
		p := html.AcquireParser()
		defer html.ReleaseParser(p)
		return p.ContextAt(source, offset), true

	case "js":
		p := js.AcquireParser()
		defer js.ReleaseParser(p)
		return p.ContextAt(source, offset), true

	default:
		return common.Context{}, false
	}
}

// ClosePools releases the pooled tree-sitter parsers
func ClosePools() {
	css.ClosePool()
	html.ClosePool()
	js.ClosePool()
}
