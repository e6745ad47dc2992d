package lexer

import "fmt"

// TokenType represents the type of a token.
type TokenType string

// Token is a classified lexeme. Two tokens are equal when both their type and
// their value are equal; positions are tracked by the Tokenizer, not here.
type Token struct {
	Type  TokenType
	Value string // The matched source text, string quotes included
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Type, t.Value)
}

// --- Token Types ---
const (
	IDENTIFIER TokenType = "IDENTIFIER"

	// Assignment
	SIMPLE_ASSIGN  TokenType = "SIMPLE_ASSIGN"  // =
	COMPLEX_ASSIGN TokenType = "COMPLEX_ASSIGN" // += -= *= /=

	// Keywords
	CONST TokenType = "CONST"
	ELSE  TokenType = "ELSE"
	IF    TokenType = "IF"
	LET   TokenType = "LET"
	NULL  TokenType = "NULL"
	VAR   TokenType = "VAR"

	// Literals
	BOOLEAN TokenType = "BOOLEAN"
	NUMBER  TokenType = "NUMBER"
	STRING  TokenType = "STRING"

	// Operators
	ADDITIVE_OPERATOR        TokenType = "ADDITIVE_OPERATOR"        // + -
	EQUALITY_OPERATOR        TokenType = "EQUALITY_OPERATOR"        // == !=
	MULTIPLICATIVE_OPERATOR  TokenType = "MULTIPLICATIVE_OPERATOR"  // * /
	RELATIONAL_OPERATOR      TokenType = "RELATIONAL_OPERATOR"      // < <= > >=
	STRICT_EQUALITY_OPERATOR TokenType = "STRICT_EQUALITY_OPERATOR" // === !==

	// Symbols
	CLOSE_CURLY_BRACKET TokenType = "CLOSE_CURLY_BRACKET"
	CLOSE_PAREN         TokenType = "CLOSE_PAREN"
	COMMA               TokenType = "COMMA"
	OPEN_CURLY_BRACKET  TokenType = "OPEN_CURLY_BRACKET"
	OPEN_PAREN          TokenType = "OPEN_PAREN"
	SEMICOLON           TokenType = "SEMICOLON"
)

var (
	assignmentTokenTypes = []TokenType{COMPLEX_ASSIGN, SIMPLE_ASSIGN}
	keywordTokenTypes    = []TokenType{CONST, ELSE, IF, LET, NULL, VAR}
	literalTokenTypes    = []TokenType{BOOLEAN, NUMBER, STRING}
	operatorTokenTypes   = []TokenType{
		ADDITIVE_OPERATOR,
		EQUALITY_OPERATOR,
		MULTIPLICATIVE_OPERATOR,
		RELATIONAL_OPERATOR,
		STRICT_EQUALITY_OPERATOR,
	}
	symbolTokenTypes = []TokenType{
		CLOSE_CURLY_BRACKET,
		CLOSE_PAREN,
		COMMA,
		OPEN_CURLY_BRACKET,
		OPEN_PAREN,
		SEMICOLON,
	}
	variableTokenTypes = []TokenType{CONST, LET, VAR}
)

// TokenTypes lists every token type in declaration-group order.
func TokenTypes() []TokenType {
	all := []TokenType{IDENTIFIER}
	for _, group := range [][]TokenType{
		assignmentTokenTypes,
		keywordTokenTypes,
		literalTokenTypes,
		operatorTokenTypes,
		symbolTokenTypes,
	} {
		all = append(all, group...)
	}
	return all
}
