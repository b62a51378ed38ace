// Package position converts between byte offsets in Go strings and the
// UTF-16 columns editors use to address a line.
package position

import (
	"unicode/utf16"
	"unicode/utf8"
)

// unitLen is the number of UTF-16 code units r takes. Invalid bytes
// count as one unit.
func unitLen(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

// UTF16ToByteOffset returns the byte offset of UTF-16 column col in s.
// Columns past the end clamp to len(s); a column inside a surrogate pair
// clamps to the start of its rune.
func UTF16ToByteOffset(s string, col int) int {
	units := 0
	for i, r := range s {
		if units >= col {
			return i
		}
		n := unitLen(r)
		if units+n > col {
			return i
		}
		units += n
	}
	return len(s)
}

// ByteOffsetToUTF16 returns the UTF-16 column of byte offset off in s.
// An offset inside a multi-byte rune counts only the runes before it.
func ByteOffsetToUTF16(s string, off int) int {
	off = min(max(off, 0), len(s))
	units := 0
	for i := 0; i < off; {
		r, size := utf8.DecodeRuneInString(s[i:])
		if i+size > off {
			break
		}
		units += unitLen(r)
		i += size
	}
	return units
}

// StringLengthUTF16 returns the length of s in UTF-16 code units
func StringLengthUTF16(s string) int {
	units := 0
	for _, r := range s {
		units += unitLen(r)
	}
	return units
}
