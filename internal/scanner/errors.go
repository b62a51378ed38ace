package scanner

import (
	"errors"
	"fmt"

	"bennypowers.dev/abbrex/internal/position"
)

// Sentinel errors for lexical failures
var (
	// ErrUnexpectedCharacter indicates no token producer matched the input
	ErrUnexpectedCharacter = errors.New("unexpected character")

	// ErrUnbalancedBracket indicates a closing bracket without a matching opener
	ErrUnbalancedBracket = errors.New("unbalanced bracket")

	// ErrUnterminatedField indicates a ${ field without its closing brace
	ErrUnterminatedField = errors.New("unterminated field")
)

// ScanError is a lexical error positioned at a byte offset of its source
type ScanError struct {
	Err     error
	Message string
	Pos     int
	Source  string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s at %d", e.Message, e.Pos+1)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// Offset returns the byte offset of the error
func (e *ScanError) Offset() int {
	return e.Pos
}

// Column16 returns the error offset in UTF-16 code units, as editors count columns
func (e *ScanError) Column16() int {
	return position.ByteOffsetToUTF16(e.Source, e.Pos)
}

// NewScanError creates a scan error of the given kind
func NewScanError(kind error, message string, pos int, source string) error {
	return &ScanError{
		Err:     kind,
		Message: message,
		Pos:     pos,
		Source:  source,
	}
}
