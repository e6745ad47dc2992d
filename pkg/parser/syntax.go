package parser

import "slices"

// AssignmentOperator is one of "=", "+=", "-=", "*=", "/=".
type AssignmentOperator string

// BinaryOperator is an additive, multiplicative or relational operator.
type BinaryOperator string

// VariableKind is the keyword that introduced a VariableStatement.
type VariableKind string

const (
	Assign         AssignmentOperator = "="
	AddAssign      AssignmentOperator = "+="
	SubtractAssign AssignmentOperator = "-="
	MultiplyAssign AssignmentOperator = "*="
	DivideAssign   AssignmentOperator = "/="
)

const (
	Add          BinaryOperator = "+"
	Subtract     BinaryOperator = "-"
	Multiply     BinaryOperator = "*"
	Divide       BinaryOperator = "/"
	Less         BinaryOperator = "<"
	LessEqual    BinaryOperator = "<="
	Greater      BinaryOperator = ">"
	GreaterEqual BinaryOperator = ">="
)

const (
	Const VariableKind = "const"
	Let   VariableKind = "let"
	Var   VariableKind = "var"
)

var (
	assignmentOperators     = []AssignmentOperator{Assign, AddAssign, SubtractAssign, MultiplyAssign, DivideAssign}
	additiveOperators       = []BinaryOperator{Add, Subtract}
	multiplicativeOperators = []BinaryOperator{Multiply, Divide}
	relationalOperators     = []BinaryOperator{Less, LessEqual, Greater, GreaterEqual}
	variableKinds           = []VariableKind{Const, Let, Var}
)

// IsAssignmentOperator checks for "=", "+=", "-=", "*=" or "/=".
func IsAssignmentOperator(s string) bool {
	return slices.Contains(assignmentOperators, AssignmentOperator(s))
}

// IsAdditiveOperator checks for "+" or "-".
func IsAdditiveOperator(s string) bool {
	return slices.Contains(additiveOperators, BinaryOperator(s))
}

// IsMultiplicativeOperator checks for "*" or "/".
func IsMultiplicativeOperator(s string) bool {
	return slices.Contains(multiplicativeOperators, BinaryOperator(s))
}

// IsRelationalOperator checks for "<", "<=", ">" or ">=".
func IsRelationalOperator(s string) bool {
	return slices.Contains(relationalOperators, BinaryOperator(s))
}

// IsBinaryOperator checks for any additive, multiplicative or relational operator.
func IsBinaryOperator(s string) bool {
	return IsAdditiveOperator(s) || IsMultiplicativeOperator(s) || IsRelationalOperator(s)
}

// IsVariableKeyword checks for "const", "let" or "var".
func IsVariableKeyword(s string) bool {
	return slices.Contains(variableKinds, VariableKind(s))
}

// precedence ranks binary operators for the emitter; higher binds tighter.
// The parser itself encodes the same order through its call nesting.
func (op BinaryOperator) precedence() int {
	switch {
	case slices.Contains(multiplicativeOperators, op):
		return precMultiplicative
	case slices.Contains(additiveOperators, op):
		return precAdditive
	case slices.Contains(relationalOperators, op):
		return precRelational
	}
	return precAssignment
}

const (
	precAssignment = iota
	precRelational
	precAdditive
	precMultiplicative
	precPrimary
)
