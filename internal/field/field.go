// Package field finds and marks tab-stop fields such as $1, ${2} and
// ${3:placeholder} in expanded text.
package field

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"bennypowers.dev/abbrex/internal/scanner"
)

// Field is a tab stop found in a string. Location is the byte offset of
// the placeholder in the field-less string.
type Field struct {
	Index       int
	Placeholder string
	Location    int
}

// Length is the byte length of the placeholder
func (f Field) Length() int {
	return len(f.Placeholder)
}

// TokenFunc renders a field back into text
type TokenFunc func(index int, placeholder string) string

// String is a field-less string plus the fields removed from it
type String struct {
	Value  string
	Fields []Field
}

func (s String) String() string {
	return s.Value
}

// Mark renders the fields back into the string
func (s String) Mark(fn TokenFunc) string {
	return Mark(s.Value, s.Fields, fn)
}

// Parse strips fields from text, keeping their placeholders in place.
// Escaped dollars and malformed fields such as ${name} stay as written.
func Parse(text string) (String, error) {
	s := scanner.New(text)
	var fields []Field
	var clean strings.Builder
	offset := 0

	for !s.EOF() {
		pos := s.Pos()

		if s.Eat('\\') {
			s.Next()
			continue
		}

		f, ok, err := consumeField(s, clean.Len()+pos-offset)
		if err != nil {
			return String{}, err
		}
		if !ok {
			s.Next()
			continue
		}

		fields = append(fields, f)
		clean.WriteString(text[offset:pos])
		clean.WriteString(f.Placeholder)
		offset = s.Pos()
	}

	clean.WriteString(text[offset:])
	return String{Value: clean.String(), Fields: fields}, nil
}

// Mark wraps each field range of text with the token produced by fn,
// ${index:placeholder} when fn is nil. Fields sharing an end offset keep
// their slice order.
func Mark(text string, fields []Field, fn TokenFunc) string {
	if fn == nil {
		fn = CreateToken
	}

	type item struct {
		order int
		field Field
		end   int
	}
	ordered := make([]item, len(fields))
	for i, f := range fields {
		ordered[i] = item{order: i, field: f, end: f.Location + f.Length()}
	}
	slices.SortStableFunc(ordered, func(a, b item) int {
		return a.end - b.end
	})

	var b strings.Builder
	offset := 0
	for _, it := range ordered {
		start := min(max(it.field.Location, offset), len(text))
		end := min(it.end, len(text))
		b.WriteString(text[offset:start])
		b.WriteString(fn(it.field.Index, text[start:end]))
		offset = end
	}
	b.WriteString(text[offset:])
	return b.String()
}

// CreateToken renders ${index} or ${index:placeholder}
func CreateToken(index int, placeholder string) string {
	if placeholder != "" {
		return fmt.Sprintf("${%d:%s}", index, placeholder)
	}
	return fmt.Sprintf("${%d}", index)
}

func consumeField(s *scanner.Scanner, location int) (Field, bool, error) {
	start := s.Pos()
	if !s.Eat('$') {
		return Field{}, false, nil
	}

	if index, ok := consumeIndex(s); ok {
		return Field{Index: index, Location: location}, true, nil
	}

	if s.Eat('{') {
		if index, ok := consumeIndex(s); ok {
			var placeholder string
			if s.Eat(':') {
				var err error
				if placeholder, err = consumePlaceholder(s); err != nil {
					return Field{}, false, err
				}
			}
			if s.Eat('}') {
				return Field{Index: index, Placeholder: placeholder, Location: location}, true, nil
			}
		}
	}

	s.SetPos(start)
	return Field{}, false, nil
}

// consumePlaceholder reads up to the } that closes the field, allowing
// nested braces
func consumePlaceholder(s *scanner.Scanner) (string, error) {
	var stack []int
	s.Mark()

	for !s.EOF() {
		switch s.Peek() {
		case '{':
			stack = append(stack, s.Pos())
		case '}':
			if len(stack) == 0 {
				return s.Current(), nil
			}
			stack = stack[:len(stack)-1]
		}
		s.Next()
	}

	if len(stack) > 0 {
		pos := stack[len(stack)-1]
		return "", scanner.NewScanError(scanner.ErrUnterminatedField, "Unable to find matching } for curly brace", pos, s.Source())
	}
	return s.Current(), nil
}

func consumeIndex(s *scanner.Scanner) (int, bool) {
	s.Mark()
	if !s.EatWhileFunc(scanner.IsNumber) {
		return 0, false
	}
	index, err := strconv.Atoi(s.Current())
	return index, err == nil
}
