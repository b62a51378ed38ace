package extract

// reader walks a line from right to left. Peek returns the byte just
// before pos, so pos is always the exclusive end of what remains.
type reader struct {
	text  string
	start int
	pos   int
}

func (r *reader) sol() bool {
	return r.pos <= r.start
}

func (r *reader) peek() byte {
	if r.sol() {
		return 0
	}
	return r.text[r.pos-1]
}

// previous consumes and returns the byte before pos
func (r *reader) previous() (byte, bool) {
	if r.sol() {
		return 0, false
	}
	r.pos--
	return r.text[r.pos], true
}

func (r *reader) eat(c byte) bool {
	if r.sol() || r.peek() != c {
		return false
	}
	r.pos--
	return true
}

func (r *reader) eatFunc(fn func(byte) bool) bool {
	if r.sol() || !fn(r.peek()) {
		return false
	}
	r.pos--
	return true
}

func (r *reader) eatWhile(fn func(byte) bool) bool {
	start := r.pos
	for r.eatFunc(fn) {
	}
	return r.pos < start
}

// eatQuoted consumes a quoted string ending at pos, skipping escaped quotes
func (r *reader) eatQuoted() bool {
	start := r.pos
	quote, ok := r.previous()
	if ok && isQuote(quote) {
		for !r.sol() {
			if c, _ := r.previous(); c == quote && r.peek() != '\\' {
				return true
			}
		}
	}
	r.pos = start
	return false
}

// eatPair consumes from close back to the nearest open
func (r *reader) eatPair(close, open byte) bool {
	start := r.pos
	if r.eat(close) {
		for !r.sol() {
			if r.eat(open) {
				return true
			}
			r.pos--
		}
	}
	r.pos = start
	return false
}

// eatSuffix consumes s if the text before pos ends with it
func (r *reader) eatSuffix(s string) bool {
	if s == "" || r.pos-len(s) < r.start || r.text[r.pos-len(s):r.pos] != s {
		return false
	}
	r.pos -= len(s)
	return true
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
