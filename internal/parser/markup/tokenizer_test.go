package markup_test

import (
	"testing"

	"bennypowers.dev/abbrex/internal/parser/markup"
	"bennypowers.dev/abbrex/internal/scanner"
	"bennypowers.dev/abbrex/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []token.Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind.String() + ":" + t.String()
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "operators and repeat",
			input: "ul>li.item$*3",
			want: []string{
				"Literal:ul", "Operator:>", "Literal:li", "Operator:.",
				"Literal:item$", "Operator:*", "NumberValue:3",
			},
		},
		{
			name:  "attributes",
			input: `a[title="x y" href=z]`,
			want: []string{
				"Literal:a", "Bracket:[", "Literal:title", "Operator:=", `StringValue:"x y"`,
				"WhiteSpace: ", "Literal:href", "Operator:=", "Literal:z", "Bracket:]",
			},
		},
		{
			name:  "text with nested braces and field",
			input: "p{a{b}c ${1:x}}",
			want: []string{
				"Literal:p", "Bracket:{", "Literal:a{b}c ", "Field:${1:x}", "Bracket:}",
			},
		},
		{
			name:  "operators are text inside braces",
			input: "{a>b+c}",
			want:  []string{"Bracket:{", "Literal:a>b+c", "Bracket:}"},
		},
		{
			name:  "group and climb",
			input: "(a+b)*2^c",
			want: []string{
				"Bracket:(", "Literal:a", "Operator:+", "Literal:b", "Bracket:)",
				"Operator:*", "NumberValue:2", "Operator:^", "Literal:c",
			},
		},
		{
			name:  "fraction class",
			input: "div.col-1/2/",
			want:  []string{"Literal:div", "Operator:.", "Literal:col-1/2", "Operator:/"},
		},
		{
			name:  "variable field in attribute",
			input: "html[lang=${lang}]",
			want: []string{
				"Literal:html", "Bracket:[", "Literal:lang", "Operator:=", "Field:${lang}", "Bracket:]",
			},
		},
		{
			name:  "umlauts and colons in names",
			input: "input:email+grün",
			want:  []string{"Literal:input:email", "Operator:+", "Literal:grün"},
		},
		{
			name:  "unterminated quote",
			input: `a[title="x`,
			want:  []string{"Literal:a", "Bracket:[", "Literal:title", "Operator:=", `StringValue:"x`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := markup.Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kinds(tokens))
		})
	}
}

func TestTokenizeOffsets(t *testing.T) {
	inputs := []string{
		"ul#nav>li.item$*3",
		`a[href="x" title='y']{text ${1}}+b`,
		"(div>p)*2^^span/",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			tokens, err := markup.Tokenize(input)
			require.NoError(t, err)
			require.NotEmpty(t, tokens)

			assert.Equal(t, 0, tokens[0].Start)
			assert.Equal(t, len(input), tokens[len(tokens)-1].End)
			for i, tok := range tokens {
				assert.Less(t, tok.Start, tok.End, "token %d is empty", i)
				if i > 0 {
					assert.Equal(t, tokens[i-1].End, tok.Start, "token %d is not contiguous", i)
				}
			}
		})
	}
}

func TestTokenizeEscapes(t *testing.T) {
	tokens, err := markup.Tokenize(`p{price\$5 \}}`)
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, `price\$5 }`, tokens[2].Value, "escaped counters keep their backslash")
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
		pos   int
	}{
		{"stray paren", "div)", scanner.ErrUnbalancedBracket, 3},
		{"stray bracket", "a]", scanner.ErrUnbalancedBracket, 1},
		{"unexpected character", "div=", scanner.ErrUnexpectedCharacter, 3},
		{"unterminated field", "p{${x", scanner.ErrUnterminatedField, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := markup.Tokenize(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)

			var scanErr *scanner.ScanError
			require.ErrorAs(t, err, &scanErr)
			assert.Equal(t, tt.pos, scanErr.Pos)
		})
	}
}
