package color_test

import (
	"testing"

	"bennypowers.dev/abbrex/internal/color"
	"bennypowers.dev/abbrex/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCSS(t *testing.T) {
	tests := []struct {
		name     string
		input    token.Color
		opts     color.Options
		expected string
	}{
		{"black", token.Color{A: 1}, color.Options{}, "#000000"},
		{"long hex", token.Color{R: 0xff, G: 0xcc, A: 1}, color.Options{}, "#ffcc00"},
		{"short hex", token.Color{R: 0xff, G: 0xcc, A: 1}, color.Options{ShortHex: true}, "#fc0"},
		{"short hex not possible", token.Color{R: 0x11, G: 0x22, B: 0x34, A: 1}, color.Options{ShortHex: true}, "#112234"},
		{"translucent", token.Color{R: 255, G: 204, A: 0.5}, color.Options{}, "rgba(255, 204, 0, 0.5)"},
		{"transparent", token.Color{}, color.Options{}, "transparent"},
		{"clear but colored", token.Color{R: 1}, color.Options{}, "rgba(1, 0, 0, 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, color.ToCSS(tt.input, tt.opts))
		})
	}
}

func TestToRGB(t *testing.T) {
	assert.Equal(t, "rgb(17, 34, 51)", color.ToRGB(token.Color{R: 17, G: 34, B: 51, A: 1}))
	assert.Equal(t, "rgba(17, 34, 51, 0.25)", color.ToRGB(token.Color{R: 17, G: 34, B: 51, A: 0.25}))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected token.Color
	}{
		{"hex", "#ff6b35", token.Color{R: 255, G: 107, B: 53, A: 1}},
		{"rgb", "rgb(255, 107, 53)", token.Color{R: 255, G: 107, B: 53, A: 1}},
		{"rgba", "rgba(0, 0, 255, 0.5)", token.Color{B: 255, A: 0.5}},
		{"named", "rebeccapurple", token.Color{R: 102, G: 51, B: 153, A: 1}},
		{"padded", "  white ", token.Color{R: 255, G: 255, B: 255, A: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := color.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected.R, got.R)
			assert.Equal(t, tt.expected.G, got.G)
			assert.Equal(t, tt.expected.B, got.B)
			assert.InDelta(t, tt.expected.A, got.A, 0.01)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		_, err := color.Parse("not-a-color")
		assert.ErrorIs(t, err, color.ErrInvalidColor)
	})
}
