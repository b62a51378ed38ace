package scanner

import "unicode"

// IsNumber reports whether r is an ASCII digit
func IsNumber(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsAlpha reports whether r is an ASCII letter
func IsAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// IsAlphaNumeric reports whether r is an ASCII letter or digit
func IsAlphaNumeric(r rune) bool {
	return IsAlpha(r) || IsNumber(r)
}

// IsAlphaWord reports whether r is a letter or underscore
func IsAlphaWord(r rune) bool {
	return r == '_' || IsAlpha(r)
}

// IsUmlaut reports whether r is a non-ASCII letter
func IsUmlaut(r rune) bool {
	return r > unicode.MaxASCII && unicode.IsLetter(r)
}

// IsHex reports whether r is a hexadecimal digit
func IsHex(r rune) bool {
	return IsNumber(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// IsSpace reports whether r is a space or a tab
func IsSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// IsWhiteSpace reports whether r is any whitespace, including line breaks
func IsWhiteSpace(r rune) bool {
	return IsSpace(r) || r == '\n' || r == '\r' || r == '\f'
}

// IsQuote reports whether r opens a quoted string
func IsQuote(r rune) bool {
	return r == '"' || r == '\''
}
