package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/width"

	"photon/pkg/source"
)

// PhotonError is the interface implemented by all photon errors.
type PhotonError interface {
	error
	Pos() Position
	Kind() string // "Syntax"
	// Message returns the error message without position info.
	Message() string
	Unwrap() error
}

// Causes attached to a SyntaxError. Match them with errors.Is.
var (
	// ErrUnexpectedToken: no token rule matches, or the parser found a token
	// of the wrong type.
	ErrUnexpectedToken = stderrors.New("unexpected token")
	// ErrUnexpectedEOF: the parser needed a token but the input ended.
	ErrUnexpectedEOF = stderrors.New("unexpected end of input")
	// ErrInvalidAssignmentTarget: the left side of an assignment is not an identifier.
	ErrInvalidAssignmentTarget = stderrors.New("invalid assignment target")
	// ErrInvalidNumber: a numeric lexeme could not be converted.
	ErrInvalidNumber = stderrors.New("invalid number")
	// ErrInvalidOperator: an operator or keyword lexeme is outside its vocabulary.
	ErrInvalidOperator = stderrors.New("invalid operator")
)

// SyntaxError represents an error during lexing or parsing.
type SyntaxError struct {
	Position
	Msg      string
	Lexeme   string // offending source text, if any
	Expected string // token type the grammar required, if any
	Cause    error
}

func (e *SyntaxError) Error() string {
	if !e.Position.IsValid() {
		return fmt.Sprintf("Syntax Error: %s", e.Msg)
	}
	return fmt.Sprintf("Syntax Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *SyntaxError) Pos() Position   { return e.Position }
func (e *SyntaxError) Kind() string    { return "Syntax" }
func (e *SyntaxError) Message() string { return e.Msg }
func (e *SyntaxError) Unwrap() error   { return e.Cause }
func (e *SyntaxError) CausedBy(cause error) *SyntaxError {
	e.Cause = cause
	return e
}

// NewSyntaxError builds a SyntaxError with a formatted message.
func NewSyntaxError(pos Position, format string, args ...any) *SyntaxError {
	return &SyntaxError{Position: pos, Msg: fmt.Sprintf(format, args...)}
}

// As extracts the PhotonError from an error chain.
func As(err error) (PhotonError, bool) {
	var pe PhotonError
	if stderrors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// Display writes errors to w in a user-friendly format: a header line, the
// offending source line and a caret under the reported column. src is used
// when an error carries no source file of its own.
func Display(w io.Writer, src string, errs ...PhotonError) {
	fallback := source.NewSourceFile("", "", src)

	for _, err := range errs {
		pos := err.Pos()
		kind := err.Kind()
		msg := err.Message()

		sf := fallback
		name := ""
		if pos.Source != nil {
			sf = pos.Source
			name = pos.Source.DisplayPath() + ":"
		}

		line, ok := sf.Line(pos.Line)
		if !ok {
			fmt.Fprintf(w, "%s%s Error: %s\n", name, kind, msg)
			continue
		}
		sourceLine := strings.TrimRight(line, "\t ")

		fmt.Fprintf(w, "%s%s Error at %d:%d: %s\n", name, kind, pos.Line, pos.Column, msg)
		fmt.Fprintf(w, "  %s\n", sourceLine)
		fmt.Fprintf(w, "  %s^\n", caretPadding(sourceLine, pos.Column))
		fmt.Fprintln(w)
	}
}

// caretPadding returns the blanks that put a caret under the 1-based rune
// column of line. Tabs are kept so terminals expand them the same way, and
// East Asian wide runes take two cells.
func caretPadding(line string, column int) string {
	var b strings.Builder
	col := 1
	for _, r := range line {
		if col >= column {
			break
		}
		switch {
		case r == '\t':
			b.WriteByte('\t')
		case isWide(r):
			b.WriteString("  ")
		default:
			b.WriteByte(' ')
		}
		col++
	}
	for ; col < column; col++ {
		b.WriteByte(' ')
	}
	return b.String()
}

func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}
