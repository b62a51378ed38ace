package scanner

import (
	"unicode/utf8"
)

// EOF is returned by Peek and Next when the scanner is exhausted
const EOF rune = -1

// MatchFunc reports whether a rune belongs to a character class
type MatchFunc func(r rune) bool

// Scanner is a rune cursor over an abbreviation string.
// Positions are byte offsets into the source.
type Scanner struct {
	src   string
	pos   int
	start int
	end   int
}

// New creates a scanner over the whole of src
func New(src string) *Scanner {
	return &Scanner{src: src, end: len(src)}
}

// Limit returns a scanner restricted to src[start:end]. Offsets stay absolute.
func (s *Scanner) Limit(start, end int) *Scanner {
	if start < 0 {
		start = 0
	}
	if end > len(s.src) {
		end = len(s.src)
	}
	return &Scanner{src: s.src, pos: start, start: start, end: end}
}

// Source returns the full string being scanned
func (s *Scanner) Source() string {
	return s.src
}

// EOF reports whether the cursor reached the end of input
func (s *Scanner) EOF() bool {
	return s.pos >= s.end
}

// Peek returns the rune at the cursor without consuming it
func (s *Scanner) Peek() rune {
	if s.EOF() {
		return EOF
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:s.end])
	return r
}

// PeekAt returns the rune n bytes ahead of the cursor
func (s *Scanner) PeekAt(n int) rune {
	p := s.pos + n
	if p < 0 || p >= s.end {
		return EOF
	}
	r, _ := utf8.DecodeRuneInString(s.src[p:s.end])
	return r
}

// Next consumes and returns the rune at the cursor
func (s *Scanner) Next() rune {
	if s.EOF() {
		return EOF
	}
	r, size := utf8.DecodeRuneInString(s.src[s.pos:s.end])
	s.pos += size
	return r
}

// Eat consumes r if it is the next rune
func (s *Scanner) Eat(r rune) bool {
	if s.Peek() == r && r != EOF {
		s.Next()
		return true
	}
	return false
}

// EatFunc consumes the next rune if it matches fn
func (s *Scanner) EatFunc(fn MatchFunc) bool {
	r := s.Peek()
	if r != EOF && fn(r) {
		s.Next()
		return true
	}
	return false
}

// EatWhile consumes runes while they equal r and reports whether any were consumed
func (s *Scanner) EatWhile(r rune) bool {
	return s.EatWhileFunc(func(c rune) bool { return c == r })
}

// EatWhileFunc consumes runes while fn matches and reports whether any were consumed
func (s *Scanner) EatWhileFunc(fn MatchFunc) bool {
	start := s.pos
	for s.EatFunc(fn) {
	}
	return s.pos != start
}

// Backup moves the cursor back by one rune
func (s *Scanner) Backup() {
	if s.pos <= s.start {
		return
	}
	_, size := utf8.DecodeLastRuneInString(s.src[s.start:s.pos])
	s.pos -= size
}

// Mark records the cursor as the start of the current lexeme
func (s *Scanner) Mark() {
	s.start = s.pos
}

// Start returns the position recorded by the last Mark
func (s *Scanner) Start() int {
	return s.start
}

// Pos returns the cursor position
func (s *Scanner) Pos() int {
	return s.pos
}

// SetPos moves the cursor, clamped to the scanner bounds
func (s *Scanner) SetPos(pos int) {
	switch {
	case pos < 0:
		s.pos = 0
	case pos > s.end:
		s.pos = s.end
	default:
		s.pos = pos
	}
}

// Current returns the text between the last Mark and the cursor
func (s *Scanner) Current() string {
	return s.src[s.start:s.pos]
}

// Substring returns src[from:to], clamped to the scanner bounds
func (s *Scanner) Substring(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > s.end {
		to = s.end
	}
	if from >= to {
		return ""
	}
	return s.src[from:to]
}

// Error creates an unexpected-character error at the cursor
func (s *Scanner) Error(message string) *ScanError {
	return s.ErrorAt(message, s.pos)
}

// ErrorAt creates an unexpected-character error at pos
func (s *Scanner) ErrorAt(message string, pos int) *ScanError {
	return &ScanError{
		Err:     ErrUnexpectedCharacter,
		Message: message,
		Pos:     pos,
		Source:  s.src,
	}
}
