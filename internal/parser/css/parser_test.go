package css_test

import (
	"strings"
	"testing"

	"bennypowers.dev/abbrex/internal/parser/common"
	"bennypowers.dev/abbrex/internal/parser/css"
	"github.com/stretchr/testify/assert"
)

// cursor removes the | marker from source and returns its offset
func cursor(source string) (string, int) {
	i := strings.Index(source, "|")
	return strings.Replace(source, "|", "", 1), i
}

func TestContextAt(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   common.Context
	}{
		{
			name:   "selector",
			source: "|a { color: red; }",
			want:   common.Context{Syntax: common.Markup, Language: "css"},
		},
		{
			name:   "property name",
			source: "a { colo|r: red; }",
			want:   common.Context{Syntax: common.Stylesheet, Language: "css"},
		},
		{
			name:   "value",
			source: "a { color: r|ed; }",
			want:   common.Context{Syntax: common.Stylesheet, Language: "css", Value: true, Property: "color"},
		},
		{
			name:   "between declarations",
			source: "a {\n  color: red;\n  |\n}",
			want:   common.Context{Syntax: common.Stylesheet, Language: "css"},
		},
		{
			name:   "empty stylesheet",
			source: "|",
			want:   common.Context{Syntax: common.Markup, Language: "css"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, offset := cursor(tt.source)

			parser := css.AcquireParser()
			defer css.ReleaseParser(parser)

			assert.Equal(t, tt.want, parser.ContextAt(source, offset))
		})
	}
}

func TestContextAtClampsOffset(t *testing.T) {
	parser := css.AcquireParser()
	defer css.ReleaseParser(parser)

	assert.Equal(t, common.Markup, parser.ContextAt("a {}", -5).Syntax)
	assert.NotPanics(t, func() { parser.ContextAt("a {}", 99) })
}
