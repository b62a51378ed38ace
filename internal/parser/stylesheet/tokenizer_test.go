package stylesheet_test

import (
	"testing"

	"bennypowers.dev/abbrex/internal/parser/stylesheet"
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
		value bool
		want  []string
	}{
		{
			name:  "negative numbers and value delimiter",
			input: "p-10-20",
			want:  []string{"Literal:p", "NumberValue:-10", "Operator:-", "NumberValue:20"},
		},
		{
			name:  "double dash keeps the sign",
			input: "p-10--20",
			want:  []string{"Literal:p", "NumberValue:-10", "Operator:-", "NumberValue:-20"},
		},
		{
			name:  "fractions without leading zero",
			input: "p.1.2.3",
			want:  []string{"Literal:p", "NumberValue:0.1", "NumberValue:0.2", "NumberValue:0.3"},
		},
		{
			name:  "short literals stop at digits",
			input: "m-a0-a",
			want: []string{
				"Literal:m", "Operator:-", "Literal:a", "NumberValue:0", "Operator:-", "Literal:a",
			},
		},
		{
			name:  "units",
			input: "w100p",
			want:  []string{"Literal:w", "NumberValue:100p"},
		},
		{
			name:  "percent",
			input: "h50%",
			want:  []string{"Literal:h", "NumberValue:50%"},
		},
		{
			name:  "colors",
			input: "c#a#b#c",
			want:  []string{"Literal:c", "ColorValue:#a", "ColorValue:#b", "ColorValue:#c"},
		},
		{
			name:  "dash after color",
			input: "bd#fc0-1",
			want:  []string{"Literal:bd", "ColorValue:#fc0", "Operator:-", "NumberValue:1"},
		},
		{
			name:  "important",
			input: "p10!",
			want:  []string{"Literal:p", "NumberValue:10", "Operator:!"},
		},
		{
			name:  "function name merges before bracket",
			input: "trf-scale3d(1)",
			want: []string{
				"Literal:trf", "Operator:-", "Literal:scale3d",
				"Bracket:(", "NumberValue:1", "Bracket:)",
			},
		},
		{
			name:  "full literals inside brackets",
			input: "lg(to-right, rgb(0,0,0))",
			want: []string{
				"Literal:lg", "Bracket:(", "Literal:to-right", "Operator:,", "WhiteSpace: ",
				"Literal:rgb", "Bracket:(", "NumberValue:0", "Operator:,", "NumberValue:0",
				"Operator:,", "NumberValue:0", "Bracket:)", "Bracket:)",
			},
		},
		{
			name:  "value context keeps keywords whole",
			input: "10px solid-ish red",
			value: true,
			want: []string{
				"NumberValue:10px", "WhiteSpace: ", "Literal:solid-ish", "WhiteSpace: ", "Literal:red",
			},
		},
		{
			name:  "strings",
			input: `ff"Arial",serif`,
			want:  []string{"Literal:ff", `StringValue:"Arial"`, "Operator:,", "Literal:serif"},
		},
		{
			name:  "preprocessor variables",
			input: "c$brand-color",
			want:  []string{"Literal:c", "Literal:$brand-color"},
		},
		{
			name:  "fields",
			input: "p${1:10}",
			want:  []string{"Literal:p", "Field:${1:10}"},
		},
		{
			name:  "sibling properties",
			input: "p10+m5",
			want:  []string{"Literal:p", "NumberValue:10", "Operator:+", "Literal:m", "NumberValue:5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := stylesheet.Tokenize(tt.input, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kinds(tokens))
		})
	}
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		str   string
	}{
		{"10", 10, "10"},
		{"-0.5", -0.5, "-0.5"},
		{".5", 0.5, "0.5"},
		{"1.25", 1.25, "1.25"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := stylesheet.Tokenize(tt.input, true)
			require.NoError(t, err)
			require.Len(t, tokens, 1)
			assert.Equal(t, token.NumberValue, tokens[0].Kind)
			assert.InDelta(t, tt.want, tokens[0].Number, 1e-9)
			assert.Equal(t, tt.input, tokens[0].Raw)
			assert.Equal(t, tt.str, tokens[0].String())
		})
	}
}

func TestTokenizeTrailingDot(t *testing.T) {
	tokens, err := stylesheet.Tokenize("10.", true)
	require.Error(t, err, "a bare dot is not part of the number")
	assert.ErrorIs(t, err, scanner.ErrUnexpectedCharacter)
	assert.Nil(t, tokens)
}

func TestTokenizeColors(t *testing.T) {
	tests := []struct {
		input string
		want  token.Color
	}{
		{"#abcdef", token.Color{R: 0xab, G: 0xcd, B: 0xef, A: 1}},
		{"#fc0", token.Color{R: 0xff, G: 0xcc, B: 0x00, A: 1}},
		{"#f", token.Color{R: 0xff, G: 0xff, B: 0xff, A: 1}},
		{"#e0", token.Color{R: 0xe0, G: 0xe0, B: 0xe0, A: 1}},
		{"#abcd", token.Color{R: 0xab, G: 0xcd, B: 0xab, A: 1}},
		{"#fc0.5", token.Color{R: 0xff, G: 0xcc, B: 0x00, A: 0.5}},
		{"#.99", token.Color{A: 0.99}},
		{"#t", token.Color{}},
		{"#", token.Color{A: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := stylesheet.Tokenize(tt.input, true)
			require.NoError(t, err)
			require.Len(t, tokens, 1)
			assert.Equal(t, token.ColorValue, tokens[0].Kind)
			assert.Equal(t, tt.want, tokens[0].Color)
			assert.Equal(t, tt.input, tokens[0].Raw)
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
		pos   int
	}{
		{"stray paren", "p)", scanner.ErrUnbalancedBracket, 1},
		{"unexpected character", "p~", scanner.ErrUnexpectedCharacter, 1},
		{"unterminated field", "p${1", scanner.ErrUnterminatedField, 4},
		{"color dot without alpha", "c#f.", scanner.ErrUnexpectedCharacter, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := stylesheet.Tokenize(tt.input, false)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)

			var scanErr *scanner.ScanError
			require.ErrorAs(t, err, &scanErr)
			assert.Equal(t, tt.pos, scanErr.Pos)
		})
	}
}
