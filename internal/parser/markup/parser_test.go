package markup_test

import (
	"testing"

	"bennypowers.dev/abbrex/internal/node"
	"bennypowers.dev/abbrex/internal/parser"
	"bennypowers.dev/abbrex/internal/parser/markup"
	"bennypowers.dev/abbrex/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"child", "div>p*3", "<div><p*3></p></div>"},
		{"id and class", "ul#nav>li.item$*3", `<ul id="nav"><li*3 class="item$"></li></ul>`},
		{"sibling", "a+b+c", "<a></a><b></b><c></c>"},
		{"repeated group", "(a+b)*3", "(<a></a><b></b>)*3"},
		{"group is spliced", "div>(a+b)+c", "<div><a></a><b></b><c></c></div>"},
		{"climb", "a>b>c^d", "<a><b><c></c></b><d></d></a>"},
		{"climb clamps at root", "a>b^^^^c", "<a><b></b></a><c></c>"},
		{"climb clamps at group", "a>(b>c^^^d)+e", "<a><b><c></c></b><d></d><e></e></a>"},
		{"adjacent groups", "(a)(b)", "<a></a><b></b>"},
		{"implicit repeat", "ul>li*", "<ul><li*></li></ul>"},
		{"class merge", "div.a.b.a", `<div class="a b"></div>`},
		{"text", "p{Hello ${1:name}}", "<p>Hello ${1:name}</p>"},
		{"text only", "{hello}", "<?>hello</?>"},
		{"self closing", "br/+hr/", "<br /></br><hr /></hr>"},
		{"expando", "ul+", "<ul+></ul+>"},
		{"expando in group", "div>(ol+)", "<div><ol+></ol+></div>"},
		{"empty group", "a>()+b", "<a><b></b></a>"},
		{"escaped counter", `p{price\$5}`, `<p>price\$5</p>`},
		{"class only", ".box", `<? class="box"></?>`},
		{
			"attributes",
			`a[href="x" title='y' disabled. !required data-x=1]`,
			`<a href="x" title='y' disabled. !required data-x="1"></a>`,
		},
		{"default attribute", `a["x"]`, `<a "x"></a>`},
		{"expression attribute", "button[onclick={go(1)}]", "<button onclick={go(1)}></button>"},
		{"unterminated quote", `a[title="x`, `<a title="x"></a>`},
		{"unknown attribute syntax", "a[=x]>b", "<a><b></b></a>"},
		{"attribute with field", "a[title=item${1}]", `<a title="item${1}"></a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := markup.Parse(tt.input, markup.ParseOptions{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, tree.String())
		})
	}
}

func TestParseVariables(t *testing.T) {
	opts := markup.ParseOptions{Variables: map[string]string{"lang": "en"}}

	tree, err := markup.Parse("html[lang=${lang}]>{${charset}}", opts)
	require.NoError(t, err)
	assert.Equal(t, `<html lang="en"><?>charset</?></html>`, tree.String())
}

func TestParseSpans(t *testing.T) {
	tree, err := markup.Parse("ul#nav>li.item*3", markup.ParseOptions{})
	require.NoError(t, err)

	ul := tree.FirstChild(tree.Root())
	li := tree.FirstChild(ul)
	assert.Equal(t, 0, tree.Node(ul).Start)
	assert.Equal(t, 6, tree.Node(ul).End)
	assert.Equal(t, 7, tree.Node(li).Start)
	assert.Equal(t, 16, tree.Node(li).End)
}

func TestParseOptimizeIsFixedPoint(t *testing.T) {
	tree, err := markup.Parse("((a>((b)))+(c))>d", markup.ParseOptions{})
	require.NoError(t, err)

	once := tree.Compact()
	tree.Optimize()
	assert.True(t, once.Equal(tree.Compact()))
	assert.Equal(t, "<a><b></b></a><c></c><d></d>", once.String())
}

func TestParseIterationLimit(t *testing.T) {
	markup.SetIterationLimit(t, 2)

	_, err := markup.Parse("a+b+c+d", markup.ParseOptions{})
	require.ErrorIs(t, err, parser.ErrIterationLimit)
	_, ok := parser.Offset(err)
	assert.True(t, ok, "the error carries an offset")
}

func TestParseParentCounter(t *testing.T) {
	tree, err := markup.Parse("a$*2>b$@^*3/", markup.ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, "<a$*2><b$@^*3 /></b$@^></a$>", tree.String())

	tree, err = markup.Parse("a>b@^c", markup.ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, "<a><b@></b@></a><c></c>", tree.String(), "^ without a counter climbs")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
		pos   int
	}{
		{"trailing child operator", "div>", parser.ErrUnexpectedToken, 3},
		{"trailing climb", "a>b^", parser.ErrUnexpectedToken, 3},
		{"operator before group end", "(a>)", parser.ErrUnexpectedToken, 2},
		{"unclosed group", "(div", parser.ErrUnbalancedBracket, 0},
		{"unclosed attributes", "a[title=x", parser.ErrUnbalancedBracket, 1},
		{"unclosed text", "p{abc", parser.ErrUnbalancedBrace, 1},
		{"invalid name", "div%", parser.ErrInvalidName, 0},
		{"whitespace", "a b", parser.ErrUnexpectedToken, 1},
		{"leading operator", ">a", parser.ErrUnexpectedToken, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := markup.Parse(tt.input, markup.ParseOptions{})
			require.Error(t, err)
			assert.Nil(t, tree)
			assert.ErrorIs(t, err, tt.err)

			pos, ok := parser.Offset(err)
			require.True(t, ok)
			assert.Equal(t, tt.pos, pos)
		})
	}
}

func TestParseScanErrorsPassThrough(t *testing.T) {
	_, err := markup.Parse("div)", markup.ParseOptions{})
	assert.ErrorIs(t, err, scanner.ErrUnbalancedBracket)

	pos, ok := parser.Offset(err)
	require.True(t, ok)
	assert.Equal(t, 3, pos)
}

func TestParseNodeRepeat(t *testing.T) {
	tree, err := markup.Parse("li*5", markup.ParseOptions{})
	require.NoError(t, err)

	li := tree.Node(tree.FirstChild(tree.Root()))
	require.NotNil(t, li.Repeat)
	assert.Equal(t, node.Repeat{Count: 5}, *li.Repeat)
}
