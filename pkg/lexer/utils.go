package lexer

import "slices"

var knownTokenTypes = func() map[TokenType]bool {
	m := make(map[TokenType]bool)
	for _, t := range TokenTypes() {
		m[t] = true
	}
	return m
}()

// Valid reports whether t is one of the declared token types.
func (t TokenType) Valid() bool {
	return knownTokenTypes[t]
}

// Valid reports whether tok has a known type. The value is not inspected
// beyond that; an empty value is still a well-formed token.
func (tok Token) Valid() bool {
	return tok.Type.Valid()
}

// IsAssignmentOperatorTokenType checks for SIMPLE_ASSIGN or COMPLEX_ASSIGN.
func IsAssignmentOperatorTokenType(t TokenType) bool {
	return slices.Contains(assignmentTokenTypes, t)
}

// IsLiteralTokenType checks for BOOLEAN, NUMBER or STRING.
func IsLiteralTokenType(t TokenType) bool {
	return slices.Contains(literalTokenTypes, t)
}

// IsVariableTokenType checks for the CONST, LET and VAR keywords.
func IsVariableTokenType(t TokenType) bool {
	return slices.Contains(variableTokenTypes, t)
}

// IsKeywordTokenType checks for any reserved keyword token.
func IsKeywordTokenType(t TokenType) bool {
	return slices.Contains(keywordTokenTypes, t)
}
