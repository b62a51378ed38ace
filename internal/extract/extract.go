// Package extract finds the abbreviation to the left of the caret in a line
// of editor text, as in <span>.foo[title=bar|]</span> giving .foo[title=bar].
package extract

import (
	"slices"
	"strings"

	"bennypowers.dev/abbrex/internal/log"
)

// Options configures extraction
type Options struct {
	// LookAhead moves the caret past the closing brackets and quote an
	// editor usually inserts right after it
	LookAhead bool
	// Stylesheet disables [] and {} which are not part of stylesheet abbreviations
	Stylesheet bool
	// Prefix must precede the abbreviation, which is then taken from the
	// nearest occurrence of Prefix, as with < in JSX
	Prefix string
}

// DefaultOptions returns markup extraction with look ahead
func DefaultOptions() Options {
	return Options{LookAhead: true}
}

// Result is an extracted abbreviation
type Result struct {
	Abbreviation string `json:"abbreviation"`
	// Location is the byte offset of Abbreviation in the line
	Location int `json:"location"`
	// Start includes the prefix, if any
	Start int `json:"start"`
	End   int `json:"end"`
}

var closes = map[byte]byte{')': '(', ']': '[', '}': '{'}
var opens = map[byte]byte{'(': ')', '[': ']', '{': '}'}

const specialChars = "#.*:$-_!@%^+>/"

// Abbreviation extracts the abbreviation that ends at byte offset pos of
// line. A negative pos means the end of the line.
func Abbreviation(line string, pos int, opts Options) (Result, bool) {
	if pos < 0 || pos > len(line) {
		pos = len(line)
	}
	if opts.LookAhead {
		pos = pastAutoClosed(line, pos, opts)
	}

	start := startOffset(line, pos, opts.Prefix)
	if start < 0 {
		return Result{}, false
	}

	r := &reader{text: line, start: start, pos: pos}
	var stack []byte
	inside := func(c byte) bool { return slices.Contains(stack, c) }

scan:
	for !r.sol() {
		c := r.peek()

		if inside('}') {
			if c == '}' {
				stack = append(stack, c)
				r.pos--
				continue
			}
			if c != '{' {
				r.pos--
				continue
			}
		}

		switch {
		case isCloseBrace(c, opts):
			stack = append(stack, c)
		case isOpenBrace(c, opts):
			if len(stack) == 0 || stack[len(stack)-1] != opens[c] {
				break scan
			}
			stack = stack[:len(stack)-1]
		case inside(']') || inside('}'):
			// attribute sets and text keep every character
		case atHTMLTag(r) || !isAbbreviation(c):
			break scan
		}
		r.pos--
	}

	if len(stack) > 0 || r.pos == pos {
		return Result{}, false
	}

	abbr := strings.TrimLeft(line[r.pos:pos], "*+>^")
	if abbr == "" {
		return Result{}, false
	}
	res := Result{
		Abbreviation: abbr,
		Location:     pos - len(abbr),
		Start:        pos - len(abbr),
		End:          pos,
	}
	if opts.Prefix != "" {
		res.Start = start - len(opts.Prefix)
	}
	log.Debug("Extracted %q at %d", abbr, res.Location)
	return res, true
}

// pastAutoClosed returns the offset after a quote and closing brackets
// right after pos
func pastAutoClosed(line string, pos int, opts Options) int {
	if pos < len(line) && isQuote(line[pos]) {
		pos++
	}
	for pos < len(line) && isCloseBrace(line[pos], opts) {
		pos++
	}
	return pos
}

// startOffset returns the left limit of the search: just after the nearest
// prefix before pos, 0 without a prefix, or -1 when the prefix is missing
func startOffset(line string, pos int, prefix string) int {
	if prefix == "" {
		return 0
	}

	r := &reader{text: line, pos: pos}
	for !r.sol() {
		if r.eatPair(']', '[') || r.eatPair('}', '{') {
			continue
		}
		result := r.pos
		if r.eatSuffix(prefix) {
			return result
		}
		r.pos--
	}
	return -1
}

func isAbbreviation(c byte) bool {
	return isAlpha(c) || isDigit(c) || strings.IndexByte(specialChars, c) >= 0
}

func isOpenBrace(c byte, opts Options) bool {
	return c == '(' || (!opts.Stylesheet && (c == '[' || c == '{'))
}

func isCloseBrace(c byte, opts Options) bool {
	return c == ')' || (!opts.Stylesheet && (c == ']' || c == '}'))
}
