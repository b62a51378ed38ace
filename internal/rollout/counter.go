package rollout

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// scope is the innermost repeat a node is numbered by, linked to the
// repeats enclosing it
type scope struct {
	index  int
	count  int
	parent *scope
}

// ancestor returns the scope depth levels up, or the outermost one
func (sc scope) ancestor(depth int) scope {
	for ; depth > 0 && sc.parent != nil; depth-- {
		sc = *sc.parent
	}
	return sc
}

// number replaces counter runs in s. A run of k glyphs becomes the
// zero-padded clone index; @N sets the base and @- counts down. Each ^ in
// @^ continues the numbering across that many enclosing repeats, so
// a$*2>b$@^*3 numbers the b elements 1 to 6.
// Escaped glyphs, field openers and the output placeholder are kept.
func (r *roller) number(s string, sc scope) string {
	glyph := r.ctx.NumberingGlyph
	if !strings.ContainsRune(s, glyph) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] == '\\' && i+1 < len(s) {
			_, size := utf8.DecodeRuneInString(s[i+1:])
			b.WriteString(s[i : i+1+size])
			i += 1 + size
			continue
		}
		if strings.HasPrefix(s[i:], r.ctx.OutputPlaceholder) {
			b.WriteString(r.ctx.OutputPlaceholder)
			i += len(r.ctx.OutputPlaceholder)
			continue
		}

		c, size := utf8.DecodeRuneInString(s[i:])
		if c != glyph {
			b.WriteString(s[i : i+size])
			i += size
			continue
		}

		start := i
		width := 0
		for i < len(s) && strings.HasPrefix(s[i:], string(glyph)) {
			i += size
			width++
		}
		if glyph == '$' && i < len(s) && s[i] == '{' {
			b.WriteString(s[start:i])
			continue
		}

		base, reverse, depth := 1, false, 0
		if i < len(s) && s[i] == '@' {
			i++
			for i < len(s) && s[i] == '^' {
				depth++
				i++
			}
			if i < len(s) && s[i] == '-' {
				reverse = true
				i++
			}
			digits := i
			for i < len(s) && s[i] >= '0' && s[i] <= '9' {
				i++
			}
			if i > digits {
				base, _ = strconv.Atoi(s[digits:i])
			}
		}

		value := base + sc.index - 1
		if reverse {
			value = base + sc.count - sc.index
		}
		if depth > 0 && sc.parent != nil {
			value += sc.count * (sc.ancestor(depth).index - 1)
		}
		b.WriteString(pad(value, width))
	}
	return b.String()
}

func pad(value, width int) string {
	s := strconv.Itoa(value)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}

// escape protects pasted text from numbering and field renumbering
func (r *roller) escape(s string) string {
	s = strings.ReplaceAll(s, "$", `\$`)
	if r.ctx.NumberingGlyph != '$' {
		s = strings.ReplaceAll(s, string(r.ctx.NumberingGlyph), `\`+string(r.ctx.NumberingGlyph))
	}
	return s
}

// unescape drops the backslash in front of escaped glyphs
func (r *roller) unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	s = strings.ReplaceAll(s, `\$`, "$")
	if r.ctx.NumberingGlyph != '$' {
		s = strings.ReplaceAll(s, `\`+string(r.ctx.NumberingGlyph), string(r.ctx.NumberingGlyph))
	}
	return s
}
