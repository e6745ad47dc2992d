package lexer

import (
	stderrors "errors"
	"testing"
	"time"

	"photon/pkg/errors"
	"photon/pkg/source"
)

func TestNextToken(t *testing.T) {
	input := `let five = 5;
const ten = 10.5;

// line comment
if (five < ten) {
	five += 1;
} else {
	five = 'done';
}
/* block
   comment */
var ok = true;`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
		expectedLine    int
	}{
		{LET, "let", 1},
		{IDENTIFIER, "five", 1},
		{SIMPLE_ASSIGN, "=", 1},
		{NUMBER, "5", 1},
		{SEMICOLON, ";", 1},
		{CONST, "const", 2},
		{IDENTIFIER, "ten", 2},
		{SIMPLE_ASSIGN, "=", 2},
		{NUMBER, "10.5", 2},
		{SEMICOLON, ";", 2},
		{IF, "if", 5},
		{OPEN_PAREN, "(", 5},
		{IDENTIFIER, "five", 5},
		{RELATIONAL_OPERATOR, "<", 5},
		{IDENTIFIER, "ten", 5},
		{CLOSE_PAREN, ")", 5},
		{OPEN_CURLY_BRACKET, "{", 5},
		{IDENTIFIER, "five", 6},
		{COMPLEX_ASSIGN, "+=", 6},
		{NUMBER, "1", 6},
		{SEMICOLON, ";", 6},
		{CLOSE_CURLY_BRACKET, "}", 7},
		{ELSE, "else", 7},
		{OPEN_CURLY_BRACKET, "{", 7},
		{IDENTIFIER, "five", 8},
		{SIMPLE_ASSIGN, "=", 8},
		{STRING, "'done'", 8},
		{SEMICOLON, ";", 8},
		{CLOSE_CURLY_BRACKET, "}", 9},
		{VAR, "var", 12},
		{IDENTIFIER, "ok", 12},
		{SIMPLE_ASSIGN, "=", 12},
		{BOOLEAN, "true", 12},
		{SEMICOLON, ";", 12},
	}

	tz := NewTokenizer()
	tz.Init(input)

	for i, tt := range tests {
		tok, err := tz.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if tok == nil {
			t.Fatalf("tests[%d] - got end of input, expected=%q", i, tt.expectedLiteral)
		}

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal: %q)",
				i, tt.expectedType, tok.Type, tok.Value)
		}

		if tok.Value != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q (type: %q)",
				i, tt.expectedLiteral, tok.Value, tok.Type)
		}

		if span := tz.LastSpan(); span.Line != tt.expectedLine {
			t.Errorf("tests[%d] - line wrong. expected=%d, got=%d (literal: %q)",
				i, tt.expectedLine, span.Line, tok.Value)
		}
	}

	tok, err := tz.NextToken()
	if tok != nil || err != nil {
		t.Fatalf("expected end of input, got token=%v err=%v", tok, err)
	}
}

func TestFirstToken(t *testing.T) {
	tests := []struct {
		input           string
		expectedType    TokenType
		expectedLiteral string
	}{
		// Assignment operators
		{"= 23", SIMPLE_ASSIGN, "="},
		{"+= 23", COMPLEX_ASSIGN, "+="},
		{"-= 23", COMPLEX_ASSIGN, "-="},
		{"*= 23", COMPLEX_ASSIGN, "*="},
		{"/= 23", COMPLEX_ASSIGN, "/="},

		// Booleans
		{"true : false", BOOLEAN, "true"},
		{"false : true", BOOLEAN, "false"},
		{"true;", BOOLEAN, "true"},
		{"true", BOOLEAN, "true"},

		// Comments
		{"\n  // comment\n  42\n", NUMBER, "42"},
		{"\n  /**\n   * comment\n   */\n  42\n", NUMBER, "42"},

		// Equality operators
		{"== true", EQUALITY_OPERATOR, "=="},
		{"!= true", EQUALITY_OPERATOR, "!="},
		{"=== true", STRICT_EQUALITY_OPERATOR, "==="},
		{"!== true", STRICT_EQUALITY_OPERATOR, "!=="},

		// Identifiers
		{"x, y;", IDENTIFIER, "x"},
		{"age = 2;", IDENTIFIER, "age"},
		{"firstName=2;", IDENTIFIER, "firstName"},
		{"constant", IDENTIFIER, "constant"},
		{"iffy", IDENTIFIER, "iffy"},

		// Keywords
		{"const x = 2", CONST, "const"},
		{"else {}", ELSE, "else"},
		{"if (x) {}", IF, "if"},
		{"let x", LET, "let"},
		{"null;", NULL, "null"},
		{"var x", VAR, "var"},

		// Math operators
		{"+ 42", ADDITIVE_OPERATOR, "+"},
		{"- 42", ADDITIVE_OPERATOR, "-"},
		{"* 42", MULTIPLICATIVE_OPERATOR, "*"},
		{"/ 42", MULTIPLICATIVE_OPERATOR, "/"},
		{"-5", ADDITIVE_OPERATOR, "-"},

		// Numbers
		{"42 + 3", NUMBER, "42"},
		{"3.14 + 3", NUMBER, "3.14"},
		{"42)", NUMBER, "42"},
		{"42;", NUMBER, "42"},
		{"42", NUMBER, "42"},

		// Relational operators
		{"< 10", RELATIONAL_OPERATOR, "<"},
		{"<= 10", RELATIONAL_OPERATOR, "<="},
		{"> 10", RELATIONAL_OPERATOR, ">"},
		{">=10", RELATIONAL_OPERATOR, ">="},

		// Strings
		{"'Hello' as string", STRING, "'Hello'"},
		{`"Hello" as string`, STRING, `"Hello"`},
		{`"true" as boolean`, STRING, `"true"`},
		{`''`, STRING, `''`},
		{`"it's"`, STRING, `"it's"`},

		// Symbols
		{";", SEMICOLON, ";"},
		{"{ const", OPEN_CURLY_BRACKET, "{"},
		{"}", CLOSE_CURLY_BRACKET, "}"},
		{"(", OPEN_PAREN, "("},
		{")", CLOSE_PAREN, ")"},
		{",", COMMA, ","},

		// Whitespace
		{"    true", BOOLEAN, "true"},
		{"\ntrue", BOOLEAN, "true"},
		{"\ttrue", BOOLEAN, "true"},
	}

	tz := NewTokenizer()
	for i, tt := range tests {
		tz.Init(tt.input)
		tok, err := tz.NextToken()
		if err != nil {
			t.Errorf("tests[%d] %q - unexpected error: %v", i, tt.input, err)
			continue
		}
		if tok == nil {
			t.Errorf("tests[%d] %q - got end of input", i, tt.input)
			continue
		}
		if tok.Type != tt.expectedType {
			t.Errorf("tests[%d] %q - tokentype wrong. expected=%q, got=%q (literal: %q)",
				i, tt.input, tt.expectedType, tok.Type, tok.Value)
		}
		if tok.Value != tt.expectedLiteral {
			t.Errorf("tests[%d] %q - literal wrong. expected=%q, got=%q",
				i, tt.input, tt.expectedLiteral, tok.Value)
		}
	}
}

// Numbers and booleans only end at whitespace, ';', ')' (numbers) or the end
// of input. Anything else falls through to the identifier rule.
func TestLiteralBoundaries(t *testing.T) {
	tests := []struct {
		input    string
		expected []Token
	}{
		{"1a", []Token{{IDENTIFIER, "1a"}}},
		{"trueBlood", []Token{{IDENTIFIER, "trueBlood"}}},
		{"true)", []Token{{IDENTIFIER, "true"}, {CLOSE_PAREN, ")"}}},
		{"1,2", []Token{{IDENTIFIER, "1"}, {COMMA, ","}, {NUMBER, "2"}}},
		{"1+2", []Token{{IDENTIFIER, "1"}, {ADDITIVE_OPERATOR, "+"}, {NUMBER, "2"}}},
		{"(3.5)", []Token{{OPEN_PAREN, "("}, {NUMBER, "3.5"}, {CLOSE_PAREN, ")"}}},
		{"x-1", []Token{{IDENTIFIER, "x"}, {ADDITIVE_OPERATOR, "-"}, {NUMBER, "1"}}},
	}

	for i, tt := range tests {
		got, err := Tokenize(tt.input)
		if err != nil {
			t.Errorf("tests[%d] %q - unexpected error: %v", i, tt.input, err)
			continue
		}
		if len(got) != len(tt.expected) {
			t.Errorf("tests[%d] %q - wrong token count. expected=%v, got=%v", i, tt.input, tt.expected, got)
			continue
		}
		for j := range got {
			if got[j] != tt.expected[j] {
				t.Errorf("tests[%d] %q - token %d wrong. expected=%v, got=%v", i, tt.input, j, tt.expected[j], got[j])
			}
		}
	}
}

func TestNextTokenUnexpectedCharacter(t *testing.T) {
	tests := []struct {
		input   string
		message string
		line    int
		column  int
	}{
		{"!", `Unexpected token: "!"`, 1, 1},
		{"x = 1;\n  @", `Unexpected token: "@"`, 2, 3},
		{"é", `Unexpected token: "é"`, 1, 1},
		{"caféBar = 1;", `Unexpected token: "é"`, 1, 4},
		{"let ifé;", `Unexpected token: "é"`, 1, 7},
	}

	for i, tt := range tests {
		_, err := Tokenize(tt.input)
		if err == nil {
			t.Fatalf("tests[%d] - expected error for %q", i, tt.input)
		}
		if !stderrors.Is(err, errors.ErrUnexpectedToken) {
			t.Errorf("tests[%d] - expected ErrUnexpectedToken, got %v", i, err)
		}

		var se *errors.SyntaxError
		if !stderrors.As(err, &se) {
			t.Fatalf("tests[%d] - expected *errors.SyntaxError, got %T", i, err)
		}
		if se.Msg != tt.message {
			t.Errorf("tests[%d] - message wrong. expected=%q, got=%q", i, tt.message, se.Msg)
		}
		if se.Line != tt.line || se.Column != tt.column {
			t.Errorf("tests[%d] - position wrong. expected=%d:%d, got=%d:%d",
				i, tt.line, tt.column, se.Line, se.Column)
		}
	}
}

func TestNonASCIILetterEndsWord(t *testing.T) {
	tests := []struct {
		input    string
		expected []Token
	}{
		{"caféBar", []Token{{IDENTIFIER, "caf"}}},
		{"x = naïve;", []Token{{IDENTIFIER, "x"}, {SIMPLE_ASSIGN, "="}, {IDENTIFIER, "na"}}},
		{"ifé", []Token{{IF, "if"}}},
		{"1é", []Token{{IDENTIFIER, "1"}}},
	}

	for i, tt := range tests {
		got, err := Tokenize(tt.input)
		if !stderrors.Is(err, errors.ErrUnexpectedToken) {
			t.Errorf("tests[%d] %q - expected ErrUnexpectedToken, got %v", i, tt.input, err)
		}
		if len(got) != len(tt.expected) {
			t.Errorf("tests[%d] %q - wrong tokens. expected=%v, got=%v", i, tt.input, tt.expected, got)
			continue
		}
		for j := range got {
			if got[j] != tt.expected[j] {
				t.Errorf("tests[%d] %q - token %d wrong. expected=%v, got=%v", i, tt.input, j, tt.expected[j], got[j])
			}
		}
	}
}

func TestNextTokenEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   \n\t", "// only a comment", "/* a */ /* b */"} {
		tz := NewTokenizer()
		tz.Init(input)
		tok, err := tz.NextToken()
		if tok != nil || err != nil {
			t.Errorf("%q - expected nil token and nil error, got token=%v err=%v", input, tok, err)
		}
		if !tz.IsEOF() {
			t.Errorf("%q - expected IsEOF after draining", input)
		}
	}
}

func TestHasMoreTokensAndIsEOF(t *testing.T) {
	tz := NewTokenizer()

	tz.Init("42")
	if !tz.HasMoreTokens() {
		t.Errorf("HasMoreTokens() on %q = false, want true", "42")
	}
	if tz.IsEOF() {
		t.Errorf("IsEOF() on %q = true, want false", "42")
	}

	if _, err := tz.NextToken(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tz.HasMoreTokens() {
		t.Errorf("HasMoreTokens() after last token = true, want false")
	}
	if !tz.IsEOF() {
		t.Errorf("IsEOF() after last token = false, want true")
	}

	tz.Init("")
	if tz.HasMoreTokens() {
		t.Errorf("HasMoreTokens() on empty input = true, want false")
	}
	if !tz.IsEOF() {
		t.Errorf("IsEOF() on empty input = false, want true")
	}
}

func TestInitResetsState(t *testing.T) {
	tz := NewTokenizer()
	tz.Init("a b c")
	if _, err := tz.NextToken(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tz.Init("x")
	tok, err := tz.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok == nil || tok.Value != "x" {
		t.Fatalf("expected token x after Init, got %v", tok)
	}
	if span := tz.LastSpan(); span != (Span{Line: 1, Column: 1, StartPos: 0, EndPos: 1}) {
		t.Errorf("span wrong after Init: %+v", span)
	}
}

func TestSpans(t *testing.T) {
	tz := NewTokenizer()
	tz.Init("x = 'ü';\n  y")

	// Columns count runes, positions count bytes.
	expected := []Span{
		{Line: 1, Column: 1, StartPos: 0, EndPos: 1},
		{Line: 1, Column: 3, StartPos: 2, EndPos: 3},
		{Line: 1, Column: 5, StartPos: 4, EndPos: 8},
		{Line: 1, Column: 8, StartPos: 8, EndPos: 9},
		{Line: 2, Column: 3, StartPos: 12, EndPos: 13},
	}

	for i, want := range expected {
		tok, err := tz.NextToken()
		if err != nil || tok == nil {
			t.Fatalf("tests[%d] - expected token, got %v, %v", i, tok, err)
		}
		if got := tz.LastSpan(); got != want {
			t.Errorf("tests[%d] - span of %q wrong. expected=%+v, got=%+v", i, tok.Value, want, got)
		}
	}

	if got, want := tz.CursorSpan(), (Span{Line: 2, Column: 4, StartPos: 13, EndPos: 13}); got != want {
		t.Errorf("cursor span wrong. expected=%+v, got=%+v", want, got)
	}
}

func TestWithSource(t *testing.T) {
	sf := source.FromFile("testdata/prog.ph", "x = #;")
	tz := NewTokenizer(WithSource(sf))
	tz.Init(sf.Content)

	_, err := tz.NextToken()
	for err == nil {
		_, err = tz.NextToken()
	}

	var se *errors.SyntaxError
	if !stderrors.As(err, &se) {
		t.Fatalf("expected *errors.SyntaxError, got %v", err)
	}
	if se.Source != sf {
		t.Errorf("error source wrong. expected=%p, got=%p", sf, se.Source)
	}

	tz.Init("other")
	if tz.Source() == sf || tz.Source().Content != "other" || tz.Source().Path != sf.Path {
		t.Errorf("Init with new text should attach a fresh source named like the old one, got %+v", tz.Source())
	}
}

func TestSourceKeptUntilInputChanges(t *testing.T) {
	sf := source.FromFile("testdata/prog.ph", "let x;")

	tz := NewTokenizer(WithSource(sf))
	if tz.Source() != sf {
		t.Fatalf("NewTokenizer replaced the attached source")
	}
	tok, err := tz.NextToken()
	if err != nil || tok == nil || tok.Type != LET {
		t.Fatalf("NewTokenizer should scan the attached source, got %v, %v", tok, err)
	}

	other := source.NewExprSource("@")
	tz.SetSource(other)
	if tz.Source() != other {
		t.Fatalf("SetSource did not attach the new source")
	}
	_, err = tz.NextToken()
	var se *errors.SyntaxError
	if !stderrors.As(err, &se) {
		t.Fatalf("expected *errors.SyntaxError, got %v", err)
	}
	if se.Source != other || se.Line != 1 || se.Column != 1 {
		t.Errorf("error should point into the new source, got %+v", se.Position)
	}
}

func TestWithMatchTimeout(t *testing.T) {
	tokens, err := Tokenize("let x = 1;", WithMatchTimeout(time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 5 {
		t.Fatalf("expected 5 tokens, got %d: %v", len(tokens), tokens)
	}
	if defaultRules[0].re.MatchTimeout == time.Second {
		t.Errorf("WithMatchTimeout must not change the shared table")
	}
}

func TestTokenTypeHelpers(t *testing.T) {
	for _, tt := range TokenTypes() {
		if !tt.Valid() {
			t.Errorf("TokenType %q should be valid", tt)
		}
	}
	if TokenType("UNKNOWN").Valid() {
		t.Errorf("TokenType UNKNOWN should not be valid")
	}
	if !(Token{Type: NUMBER, Value: "1"}).Valid() {
		t.Errorf("NUMBER token should be valid")
	}

	tests := []struct {
		tt                           TokenType
		assignment, literal, varKind bool
		keyword                      bool
	}{
		{SIMPLE_ASSIGN, true, false, false, false},
		{COMPLEX_ASSIGN, true, false, false, false},
		{BOOLEAN, false, true, false, false},
		{NUMBER, false, true, false, false},
		{STRING, false, true, false, false},
		{LET, false, false, true, true},
		{CONST, false, false, true, true},
		{VAR, false, false, true, true},
		{IF, false, false, false, true},
		{NULL, false, false, false, true},
		{IDENTIFIER, false, false, false, false},
	}
	for _, tt := range tests {
		if got := IsAssignmentOperatorTokenType(tt.tt); got != tt.assignment {
			t.Errorf("IsAssignmentOperatorTokenType(%s) = %v, want %v", tt.tt, got, tt.assignment)
		}
		if got := IsLiteralTokenType(tt.tt); got != tt.literal {
			t.Errorf("IsLiteralTokenType(%s) = %v, want %v", tt.tt, got, tt.literal)
		}
		if got := IsVariableTokenType(tt.tt); got != tt.varKind {
			t.Errorf("IsVariableTokenType(%s) = %v, want %v", tt.tt, got, tt.varKind)
		}
		if got := IsKeywordTokenType(tt.tt); got != tt.keyword {
			t.Errorf("IsKeywordTokenType(%s) = %v, want %v", tt.tt, got, tt.keyword)
		}
	}
}
