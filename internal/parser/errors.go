package parser

import (
	"errors"
	"fmt"
)

// Sentinel errors for error type checking
var (
	// ErrInvalidName indicates an element name outside the allowed character set
	ErrInvalidName = errors.New("invalid abbreviation name")

	// ErrUnbalancedBracket indicates a group or attribute set without its closing bracket
	ErrUnbalancedBracket = errors.New("unbalanced bracket")

	// ErrUnbalancedBrace indicates a text block without its closing brace
	ErrUnbalancedBrace = errors.New("unbalanced brace")

	// ErrIterationLimit indicates the parser stopped making progress
	ErrIterationLimit = errors.New("iteration limit exceeded")

	// ErrUnexpectedToken indicates a token the grammar does not allow at its position
	ErrUnexpectedToken = errors.New("unexpected token")
)

// ParseError is a grammatical error positioned at a byte offset of the abbreviation
type ParseError struct {
	Err     error
	Message string
	Pos     int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %d", e.Message, e.Pos+1)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a parse error of the given kind
func NewParseError(kind error, message string, pos int) error {
	return &ParseError{
		Err:     kind,
		Message: message,
		Pos:     pos,
	}
}

// Offset returns the byte offset carried by a scan or parse error
func Offset(err error) (int, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Pos, true
	}
	var located interface{ Offset() int }
	if errors.As(err, &located) {
		return located.Offset(), true
	}
	return 0, false
}
