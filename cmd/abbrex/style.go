package main

import (
	"fmt"
	"io"
	"strings"

	"bennypowers.dev/abbrex/internal/parser"
	"bennypowers.dev/abbrex/internal/position"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorError = lipgloss.Color("#E74C3C")
	colorMuted = lipgloss.Color("#2C4A54")
	colorKind  = lipgloss.Color("#20B9B4")
)

// styles holds the output styles; they are plain when w is not a terminal
type styles struct {
	err   lipgloss.Style
	muted lipgloss.Style
	kind  lipgloss.Style
	bold  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	if !isTerminal(w) {
		plain := lipgloss.NewStyle()
		return styles{err: plain, muted: plain, kind: plain, bold: plain}
	}
	return styles{
		err:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
		muted: lipgloss.NewStyle().Foreground(colorMuted),
		kind:  lipgloss.NewStyle().Foreground(colorKind),
		bold:  lipgloss.NewStyle().Bold(true),
	}
}

// writeError prints err and, when it carries an offset, the abbreviation
// with a caret under the offending character
func writeError(w io.Writer, abbr string, err error) {
	s := newStyles(w)
	fmt.Fprintln(w, s.err.Render("error: ")+err.Error())

	offset, ok := parser.Offset(err)
	if !ok || offset > len(abbr) {
		return
	}
	col := position.StringLengthUTF16(abbr[:offset])
	fmt.Fprintln(w, "  "+abbr)
	fmt.Fprintln(w, "  "+strings.Repeat(" ", col)+s.err.Render("^"))
}

// reportedError is an error already shown to the user
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

// report writes err for abbr and marks it as shown
func report(w io.Writer, abbr string, err error) error {
	writeError(w, abbr, err)
	return reportedError{err}
}
