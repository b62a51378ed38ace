package color

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"bennypowers.dev/abbrex/internal/token"
	"github.com/mazznoer/csscolorparser"
)

// ErrInvalidColor is returned when a color string cannot be parsed
var ErrInvalidColor = errors.New("invalid color")

// Options controls how colors are written out
type Options struct {
	// ShortHex writes #fc0 instead of #ffcc00 when every channel allows it
	ShortHex bool
}

// ToCSS converts a color to the shortest fitting CSS notation:
// hex when opaque, transparent when fully clear black, rgba otherwise
func ToCSS(c token.Color, opts Options) string {
	switch {
	case c.A >= 1:
		return ToHex(c, opts.ShortHex)
	case c.A == 0 && c.R == 0 && c.G == 0 && c.B == 0:
		return "transparent"
	default:
		return ToRGB(c)
	}
}

// ToHex converts a color to #rrggbb, or #rgb when short is set and possible.
// Alpha is ignored.
func ToHex(c token.Color, short bool) string {
	hex := fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
	if short && hex[0] == hex[1] && hex[2] == hex[3] && hex[4] == hex[5] {
		hex = string([]byte{hex[0], hex[2], hex[4]})
	}
	return "#" + hex
}

// ToRGB converts a color to rgb() or, when translucent, rgba()
func ToRGB(c token.Color) string {
	if c.A >= 1 {
		return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// Parse reads any CSS color (hex, rgb, hsl, named colors and so on)
func Parse(value string) (token.Color, error) {
	value = strings.TrimSpace(value)
	parsed, err := csscolorparser.Parse(value)
	if err != nil {
		return token.Color{}, fmt.Errorf("%w: %s", ErrInvalidColor, value)
	}
	return token.Color{
		R: channel(parsed.R),
		G: channel(parsed.G),
		B: channel(parsed.B),
		A: parsed.A,
	}, nil
}

// channel converts a 0-1 float channel to 0-255
func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
