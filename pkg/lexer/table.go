package lexer

import (
	"time"

	"github.com/dlclark/regexp2"
)

// skip marks table entries whose matches are consumed without producing a token.
const skip TokenType = ""

// rule pairs a pattern with the token type it produces. Patterns are written
// without an anchor; compileRules anchors them at the cursor with \G.
type rule struct {
	pattern   string
	tokenType TokenType
	re        *regexp2.Regexp
}

// tokenTable lists the token rules in match order. The first rule that matches at the cursor
// wins, so the order below is part of the language:
//   - three-character equality before two-character equality before '='
//   - compound assignment before the single-character arithmetic operators
//   - keywords, booleans and numbers before identifiers
//
// The BOOLEAN and NUMBER lookaheads only admit the contexts the grammar has
// (whitespace, ';', ')' for numbers, end of input). New syntax that can
// follow a literal directly needs a matching boundary here.
var tokenTable = []rule{
	// Whitespace
	{pattern: `\s+`, tokenType: skip},

	// Comments
	{pattern: `//.*`, tokenType: skip},
	{pattern: `/\*[\s\S]*?\*/`, tokenType: skip},

	// Symbols, delimiters
	{pattern: `;`, tokenType: SEMICOLON},
	{pattern: `\{`, tokenType: OPEN_CURLY_BRACKET},
	{pattern: `\}`, tokenType: CLOSE_CURLY_BRACKET},
	{pattern: `\(`, tokenType: OPEN_PAREN},
	{pattern: `\)`, tokenType: CLOSE_PAREN},
	{pattern: `,`, tokenType: COMMA},

	// Equality operators
	{pattern: `[=!]==`, tokenType: STRICT_EQUALITY_OPERATOR},
	{pattern: `[=!]=`, tokenType: EQUALITY_OPERATOR},

	// Assignment operators
	{pattern: `=`, tokenType: SIMPLE_ASSIGN},
	{pattern: `[*/+\-]=`, tokenType: COMPLEX_ASSIGN},

	// Math operators
	{pattern: `[+\-]`, tokenType: ADDITIVE_OPERATOR},
	{pattern: `[*/]`, tokenType: MULTIPLICATIVE_OPERATOR},

	// Relational operators
	{pattern: `[<>]=?`, tokenType: RELATIONAL_OPERATOR},

	// Keywords
	{pattern: word(`const`), tokenType: CONST},
	{pattern: word(`else`), tokenType: ELSE},
	{pattern: word(`if`), tokenType: IF},
	{pattern: word(`let`), tokenType: LET},
	{pattern: word(`null`), tokenType: NULL},
	{pattern: word(`var`), tokenType: VAR},

	// Booleans
	{pattern: `(false|true)(?=\s|;|$)`, tokenType: BOOLEAN},

	// Numbers
	{pattern: `(-?\d+(?:\.\d+)?)(?=\s|\)|;|$)`, tokenType: NUMBER},

	// Strings
	{pattern: `'[^']*'`, tokenType: STRING},
	{pattern: `"[^"]*"`, tokenType: STRING},

	// Identifiers
	{pattern: word(`\w+`), tokenType: IDENTIFIER},
}

// word anchors p between ASCII word boundaries. regexp2's \b counts every
// Unicode letter as a word character, even in ECMAScript mode, so é would glue
// onto the identifier in front of it.
func word(p string) string {
	return `(?<!\w)` + p + `(?!\w)`
}

// defaultRules is the compiled table shared by tokenizers without a match
// timeout. regexp2.Regexp values are safe for concurrent use.
var defaultRules = compileRules(0)

// compileRules compiles the token table. ECMAScript mode keeps \w and \d
// ASCII-based as in JavaScript. A zero timeout disables the limit.
func compileRules(timeout time.Duration) []rule {
	rules := make([]rule, len(tokenTable))
	for i, r := range tokenTable {
		re := regexp2.MustCompile(`\G(?:`+r.pattern+`)`, regexp2.ECMAScript)
		if timeout > 0 {
			re.MatchTimeout = timeout
		}
		rules[i] = rule{pattern: r.pattern, tokenType: r.tokenType, re: re}
	}
	return rules
}
