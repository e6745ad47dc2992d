package lexer

import (
	"fmt"
	"time"
	"unicode/utf8"

	"photon/pkg/errors"
	"photon/pkg/source"
)

// --- Debug Flag ---
const debugLexer = false

func debugPrint(format string, args ...interface{}) {
	if debugLexer {
		fmt.Printf("[Lexer Debug] "+format+"\n", args...)
	}
}

// --- End Debug Flag ---

// Span locates a token in the source. Line and Column are 1-based (Column
// counts runes); StartPos and EndPos are byte offsets, EndPos exclusive.
type Span struct {
	Line     int
	Column   int
	StartPos int
	EndPos   int
}

// Tokenizer lazily pulls tokens from a source string using the ordered token
// table. It makes a single left-to-right pass and never backtracks.
//
// A Tokenizer is not safe for concurrent use.
type Tokenizer struct {
	rules  []rule
	source *source.SourceFile

	input  []rune
	cursor int // rune index of the next unconsumed character

	// Position of the cursor, kept in step with advance.
	line    int
	column  int
	bytePos int

	last Span // span of the most recently returned token
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithMatchTimeout bounds the time a single table pattern may spend matching.
// Zero means no limit.
func WithMatchTimeout(d time.Duration) Option {
	return func(t *Tokenizer) {
		if d > 0 {
			t.rules = compileRules(d)
		}
	}
}

// WithSource attaches a source file used to name the input in diagnostics.
// Init still decides which text is scanned.
func WithSource(sf *source.SourceFile) Option {
	return func(t *Tokenizer) {
		t.source = sf
	}
}

// NewTokenizer creates a Tokenizer. Its input is the content of the source
// attached with WithSource, or empty.
func NewTokenizer(opts ...Option) *Tokenizer {
	t := &Tokenizer{rules: defaultRules}
	for _, opt := range opts {
		opt(t)
	}
	if t.source != nil {
		t.Init(t.source.Content)
	} else {
		t.Init("")
	}
	return t
}

// Init stores s and rewinds the cursor, discarding any earlier scanning state.
// It can be called any number of times to scan a new string. An attached
// source is kept when s is its content; otherwise it is replaced by a file of
// the same name holding s.
func (t *Tokenizer) Init(s string) {
	t.input = []rune(s)
	t.cursor = 0
	t.line = 1
	t.column = 1
	t.bytePos = 0
	t.last = Span{Line: 1, Column: 1}
	if t.source != nil && t.source.Content != s {
		t.source = source.NewSourceFile(t.source.Name, t.source.Path, s)
	}
}

// SetSource replaces the source file used for diagnostics and scans its content.
func (t *Tokenizer) SetSource(sf *source.SourceFile) {
	t.source = sf
	t.Init(sf.Content)
}

// Source returns the source file attached to the tokenizer, if any.
func (t *Tokenizer) Source() *source.SourceFile {
	return t.source
}

// HasMoreTokens reports whether unconsumed characters remain. Those characters
// may all be skippable, in which case NextToken still returns nil.
func (t *Tokenizer) HasMoreTokens() bool {
	return t.cursor < len(t.input)
}

// IsEOF reports whether the cursor sits exactly at the end of the input.
func (t *Tokenizer) IsEOF() bool {
	return t.cursor == len(t.input)
}

// LastSpan returns the location of the token most recently returned.
func (t *Tokenizer) LastSpan() Span {
	return t.last
}

// CursorSpan returns the zero-width location of the cursor.
func (t *Tokenizer) CursorSpan() Span {
	return Span{Line: t.line, Column: t.column, StartPos: t.bytePos, EndPos: t.bytePos}
}

// NextToken returns the next significant token, or nil once the input is
// exhausted. Whitespace and comments are consumed silently. When no table rule
// matches at the cursor it fails with an errors.ErrUnexpectedToken syntax error
// naming the offending character.
func (t *Tokenizer) NextToken() (*Token, error) {
	for t.HasMoreTokens() {
		matched := false

		for i := range t.rules {
			r := &t.rules[i]
			m, err := r.re.FindRunesMatchStartingAt(t.input, t.cursor)
			if err != nil {
				pos := t.CursorSpan()
				return nil, fmt.Errorf("lexer: matching %q at %d:%d: %w", r.pattern, pos.Line, pos.Column, err)
			}
			if m == nil || m.Length == 0 {
				continue
			}

			start := t.CursorSpan()
			value := string(t.input[t.cursor : t.cursor+m.Length])
			t.advance(m.Length)

			if r.tokenType == skip {
				debugPrint("skip %q at %d:%d", value, start.Line, start.Column)
				matched = true
				break
			}

			start.EndPos = t.bytePos
			t.last = start
			debugPrint("token %s %q at %d:%d", r.tokenType, value, start.Line, start.Column)
			return &Token{Type: r.tokenType, Value: value}, nil
		}

		if !matched {
			return nil, t.unexpectedCharacter()
		}
	}
	return nil, nil
}

// advance moves the cursor n runes forward, keeping line, column and byte
// offset in step.
func (t *Tokenizer) advance(n int) {
	for _, r := range t.input[t.cursor : t.cursor+n] {
		t.bytePos += utf8.RuneLen(r)
		if r == '\n' {
			t.line++
			t.column = 1
		} else {
			t.column++
		}
	}
	t.cursor += n
}

func (t *Tokenizer) unexpectedCharacter() *errors.SyntaxError {
	ch := string(t.input[t.cursor])
	pos := t.CursorSpan()
	err := errors.NewSyntaxError(errors.Position{
		Line:     pos.Line,
		Column:   pos.Column,
		StartPos: pos.StartPos,
		EndPos:   pos.StartPos + len(ch),
		Source:   t.source,
	}, "Unexpected token: %q", ch)
	err.Lexeme = ch
	return err.CausedBy(errors.ErrUnexpectedToken)
}

// Tokenize scans s to the end and returns all significant tokens.
func Tokenize(s string, opts ...Option) ([]Token, error) {
	t := NewTokenizer(opts...)
	t.Init(s)

	var tokens []Token
	for {
		tok, err := t.NextToken()
		if err != nil {
			return tokens, err
		}
		if tok == nil {
			return tokens, nil
		}
		tokens = append(tokens, *tok)
	}
}
