package extract

// atHTMLTag reports whether the text before the reader's position is the
// end of an HTML tag, as in <div class="a">. The position is left unchanged.
func atHTMLTag(r *reader) bool {
	start := r.pos
	defer func() { r.pos = start }()

	if !r.eat('>') {
		return false
	}
	r.eat('/')

	for !r.sol() {
		r.eatWhile(isSpace)

		if r.eatWhile(isIdent) {
			switch {
			case r.eat('/'):
				return r.eat('<')
			case r.eat('<'):
				return true
			case r.eatFunc(isSpace):
				continue
			case r.eat('='):
				if r.eatWhile(isIdent) {
					continue
				}
				return false
			case eatUnquotedAttribute(r):
				return true
			}
			return false
		}

		if eatQuotedAttribute(r) || eatUnquotedAttribute(r) {
			continue
		}
		return false
	}
	return false
}

func eatQuotedAttribute(r *reader) bool {
	start := r.pos
	if r.eatQuoted() && r.eat('=') && r.eatWhile(isIdent) {
		return true
	}
	r.pos = start
	return false
}

func eatUnquotedAttribute(r *reader) bool {
	start := r.pos
	var stack []byte
loop:
	for !r.sol() {
		c := r.peek()
		switch {
		case closes[c] != 0:
			stack = append(stack, c)
		case opens[c] != 0:
			if len(stack) == 0 || stack[len(stack)-1] != opens[c] {
				break loop
			}
			stack = stack[:len(stack)-1]
		case c == '=' || isSpace(c) || isQuote(c):
			break loop
		}
		r.pos--
	}

	if start != r.pos && r.eat('=') && r.eatWhile(isIdent) {
		return true
	}
	r.pos = start
	return false
}

func isIdent(c byte) bool {
	return c == ':' || c == '-' || isAlpha(c) || isDigit(c)
}
