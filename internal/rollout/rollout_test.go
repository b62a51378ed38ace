package rollout_test

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/abbrex/internal/parser/markup"
	"bennypowers.dev/abbrex/internal/rollout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "update golden files")

func expand(t *testing.T, abbr string, paste *rollout.PasteSpec, ctx rollout.Context) *rollout.ConcreteTree {
	t.Helper()
	tree, err := markup.Parse(abbr, markup.ParseOptions{})
	require.NoError(t, err)
	return rollout.Rollout(tree, paste, ctx)
}

func TestRollout(t *testing.T) {
	tests := []struct {
		name  string
		abbr  string
		paste string
		want  string
	}{
		{
			name: "counters in class",
			abbr: "ul#nav>li.item$*3",
			want: `<ul id="nav"><li@1 class="item1"></li><li@2 class="item2"></li><li@3 class="item3"></li></ul>`,
		},
		{
			name: "padded counters",
			abbr: "li.item$$$*3",
			want: `<li@1 class="item001"></li><li@2 class="item002"></li><li@3 class="item003"></li>`,
		},
		{
			name: "child repeat",
			abbr: "div>p*3",
			want: `<div><p@1></p><p@2></p><p@3></p></div>`,
		},
		{
			name: "repeated group",
			abbr: "(a+b)*3",
			want: `<a@1></a><b@1></b><a@2></a><b@2></b><a@3></a><b@3></b>`,
		},
		{
			name: "descending counter",
			abbr: "li.i$@-*3",
			want: `<li@1 class="i3"></li><li@2 class="i2"></li><li@3 class="i1"></li>`,
		},
		{
			name: "counter base",
			abbr: "li.i$@3*2",
			want: `<li@1 class="i3"></li><li@2 class="i4"></li>`,
		},
		{
			name: "padded descending counter with base",
			abbr: "li.i$$@-5*2",
			want: `<li@1 class="i06"></li><li@2 class="i05"></li>`,
		},
		{
			name: "descendants use the closest repeat",
			abbr: "ul*2>li.x$",
			want: `<ul@1><li class="x1"></li></ul><ul@2><li class="x2"></li></ul>`,
		},
		{
			name: "nested repeats number independently",
			abbr: "ul*2>li$*2",
			want: `<ul@1><li1@1></li1><li2@2></li2></ul><ul@2><li1@1></li1><li2@2></li2></ul>`,
		},
		{
			name: "no counters outside a repeat",
			abbr: "p.a$",
			want: `<p class="a$"></p>`,
		},
		{
			name: "escaped counter",
			abbr: `p{\$}*2`,
			want: `<p@1>$</p><p@2>$</p>`,
		},
		{
			name: "fields are renumbered per clone",
			abbr: "a{${1:x}${0}}*2",
			want: `<a@1>${1:x}${0}</a><a@2>${2:x}${0}</a>`,
		},
		{
			name:  "implicit repeat takes pasted lines",
			abbr:  "ul>li*",
			paste: "a\n\n  b  \n",
			want:  `<ul><li@1>a</li><li@2>b</li></ul>`,
		},
		{
			name:  "output placeholder",
			abbr:  "li*>a{$#}",
			paste: "one\ntwo",
			want:  `<li@1><a>one</a></li><li@2><a>two</a></li>`,
		},
		{
			name:  "pasted text is never numbered",
			abbr:  "li*",
			paste: "$5\n$6",
			want:  `<li@1>$5</li><li@2>$6</li>`,
		},
		{
			name:  "paste without implicit repeat",
			abbr:  "div>p",
			paste: "hello",
			want:  `<div><p>hello</p></div>`,
		},
		{
			name:  "last implicit repeat wins",
			abbr:  "a*+b*",
			paste: "1\n2",
			want:  `<a@1></a><b@1>1</b><b@2>2</b>`,
		},
		{
			name:  "only the first copy of an implicit repeat takes the lines",
			abbr:  "ul*2>li*",
			paste: "x\ny",
			want:  `<ul@1><li@1>x</li><li@2>y</li></ul><ul@2><li@1></li><li@2></li></ul>`,
		},
		{
			name:  "implicit repeat in a repeated group",
			abbr:  "(li*)*2",
			paste: "x\ny",
			want:  `<li@1>x</li><li@2>y</li><li@1></li><li@2></li>`,
		},
		{
			name: "counter continues across the parent repeat",
			abbr: "a$*2>b$@^*3/",
			want: `<a1@1><b1@1 /></b1><b2@2 /></b2><b3@3 /></b3></a1><a2@2><b4@1 /></b4><b5@2 /></b5><b6@3 /></b6></a2>`,
		},
		{
			name: "parent counter deeper than the repeats",
			abbr: "li.x$@^^*2",
			want: `<li@1 class="x1"></li><li@2 class="x2"></li>`,
		},
		{
			name: "implicit repeat without paste",
			abbr: "li*>{$#}",
			want: `<li@1></li>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var paste *rollout.PasteSpec
			if tt.paste != "" {
				paste = &rollout.PasteSpec{Text: tt.paste}
			}
			got := expand(t, tt.abbr, paste, rollout.DefaultContext())
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestRolloutGroupOrder(t *testing.T) {
	got := expand(t, "(a+b)*3", nil, rollout.DefaultContext())
	require.Len(t, got.Children, 6)

	var names []string
	for _, n := range got.Children {
		names = append(names, n.Name)
		require.NotNil(t, n.Repeat)
		assert.Equal(t, 3, n.Repeat.Count)
	}
	assert.Equal(t, []string{"a", "b", "a", "b", "a", "b"}, names)
}

func TestRolloutImplicitNames(t *testing.T) {
	tests := []struct {
		abbr string
		want string
	}{
		{"ul>.item", `<ul><li class="item"></li></ul>`},
		{"table>.r>.c", `<table><tr class="r"><td class="c"></td></tr></table>`},
		{"select>.o*2", `<select><option@1 class="o"></option><option@2 class="o"></option></select>`},
		{"em>.x", `<em><span class="x"></span></em>`},
		{"section>.x", `<section><div class="x"></div></section>`},
		{".x", `<div class="x"></div>`},
		{"ul>(.a+.b)", `<ul><li class="a"></li><li class="b"></li></ul>`},
		{"p>{text}", `<p>text</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.abbr, func(t *testing.T) {
			got := expand(t, tt.abbr, nil, rollout.DefaultContext())
			assert.Equal(t, tt.want, got.String())
		})
	}

	ctx := rollout.DefaultContext()
	ctx.InlineElements = []string{"section"}
	got := expand(t, "section>.x", nil, ctx)
	assert.Equal(t, `<section><span class="x"></span></section>`, got.String())
}

func TestRolloutMaxRepeat(t *testing.T) {
	ctx := rollout.DefaultContext()
	ctx.MaxRepeat = 3

	got := expand(t, "li*10", nil, ctx)
	assert.Equal(t, 3, got.Len())

	got = expand(t, "(a*5)+b*5", nil, ctx)
	assert.Equal(t, 4, got.Len(), "every repeat yields at least one clone")
}

func TestRolloutNumberingGlyph(t *testing.T) {
	ctx := rollout.DefaultContext()
	ctx.NumberingGlyph = '@'

	tree, err := markup.Parse("li.a$*2", markup.ParseOptions{})
	require.NoError(t, err)
	got := rollout.Rollout(tree, nil, ctx)
	assert.Equal(t, `<li@1 class="a$"></li><li@2 class="a$"></li>`, got.String())
}

func TestRolloutGolden(t *testing.T) {
	tests := []struct {
		name  string
		abbr  string
		paste string
	}{
		{name: "nav", abbr: "ul#nav>li.item$*2>a[href=#]{Item $}"},
		{name: "wrap-lines", abbr: "ul>li.row*>a", paste: "Home\nAbout"},
		{name: "form", abbr: "form>input[type=text name=q required.]+button/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var paste *rollout.PasteSpec
			if tt.paste != "" {
				paste = &rollout.PasteSpec{Text: tt.paste}
			}
			result := expand(t, tt.abbr, paste, rollout.DefaultContext())
			golden := filepath.Join("testdata", tt.name+".json")

			if *update {
				data, marshalErr := json.MarshalIndent(result, "", "  ")
				require.NoError(t, marshalErr)
				require.NoError(t, os.WriteFile(golden, append(data, '\n'), 0o644))
				return
			}

			data, err := os.ReadFile(golden)
			require.NoError(t, err)

			var expected rollout.ConcreteTree
			require.NoError(t, json.Unmarshal(data, &expected))
			assert.Equal(t, &expected, result)
		})
	}
}
