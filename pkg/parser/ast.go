package parser

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// NodeType is the tag naming an AST node variant. It is fixed by the Go type
// of the node and appears as the "type" member of the JSON encoding.
type NodeType string

const (
	ProgramNode              NodeType = "Program"
	BlockStatementNode       NodeType = "BlockStatement"
	EmptyStatementNode       NodeType = "EmptyStatement"
	ExpressionStatementNode  NodeType = "ExpressionStatement"
	IfStatementNode          NodeType = "IfStatement"
	VariableStatementNode    NodeType = "VariableStatement"
	VariableDeclarationNode  NodeType = "VariableDeclaration"
	IdentifierNode           NodeType = "Identifier"
	AssignmentExpressionNode NodeType = "AssignmentExpression"
	BinaryExpressionNode     NodeType = "BinaryExpression"
	BooleanLiteralNode       NodeType = "BooleanLiteral"
	NumericLiteralNode       NodeType = "NumericLiteral"
	StringLiteralNode        NodeType = "StringLiteral"
)

// --- Interfaces ---

// Node is implemented by every AST node. The set of implementations is closed:
// only this package can add variants.
type Node interface {
	Type() NodeType
	String() string // compact source form, for debugging
	node()
}

// Statement represents a statement node in the AST.
type Statement interface {
	Node
	statementNode()
}

// Expression represents an expression node in the AST.
type Expression interface {
	Node
	expressionNode()
}

// Literal is an expression produced directly from a literal token.
type Literal interface {
	Expression
	literalNode()
}

// --- Program Node ---

// Program is the root node of the AST.
type Program struct {
	Body []Statement `json:"body"`
}

func NewProgram(body []Statement) *Program {
	if body == nil {
		body = []Statement{}
	}
	return &Program{Body: body}
}

func (p *Program) node()          {}
func (p *Program) Type() NodeType { return ProgramNode }
func (p *Program) String() string { return joinStatements(p.Body, " ") }

// --- Statement Nodes ---

// BlockStatement is a braced statement list.
// { <Body> }
type BlockStatement struct {
	Body []Statement `json:"body"`
}

func NewBlockStatement(body []Statement) *BlockStatement {
	if body == nil {
		body = []Statement{}
	}
	return &BlockStatement{Body: body}
}

func (bs *BlockStatement) node()           {}
func (bs *BlockStatement) statementNode()  {}
func (bs *BlockStatement) Type() NodeType  { return BlockStatementNode }
func (bs *BlockStatement) String() string {
	if len(bs.Body) == 0 {
		return "{}"
	}
	return "{ " + joinStatements(bs.Body, " ") + " }"
}

// EmptyStatement is a lone ';'.
type EmptyStatement struct{}

func NewEmptyStatement() *EmptyStatement { return &EmptyStatement{} }

func (es *EmptyStatement) node()          {}
func (es *EmptyStatement) statementNode() {}
func (es *EmptyStatement) Type() NodeType { return EmptyStatementNode }
func (es *EmptyStatement) String() string { return ";" }

// ExpressionStatement represents a statement consisting of a single expression.
// <Expression>;
type ExpressionStatement struct {
	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expression Expression) *ExpressionStatement {
	return &ExpressionStatement{Expression: expression}
}

func (es *ExpressionStatement) node()          {}
func (es *ExpressionStatement) statementNode() {}
func (es *ExpressionStatement) Type() NodeType { return ExpressionStatementNode }
func (es *ExpressionStatement) String() string { return es.Expression.String() + ";" }

// IfStatement represents if/else. Alternate is nil when there is no else branch.
// if (<Test>) <Consequent> else <Alternate>
type IfStatement struct {
	Test       Expression `json:"test"`
	Consequent Statement  `json:"consequent"`
	Alternate  Statement  `json:"alternate"`
}

func NewIfStatement(test Expression, consequent, alternate Statement) *IfStatement {
	return &IfStatement{Test: test, Consequent: consequent, Alternate: alternate}
}

func (is *IfStatement) node()          {}
func (is *IfStatement) statementNode() {}
func (is *IfStatement) Type() NodeType { return IfStatementNode }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(is.Test.String())
	out.WriteString(") ")
	out.WriteString(is.Consequent.String())
	if is.Alternate != nil {
		out.WriteString(" else ")
		out.WriteString(is.Alternate.String())
	}
	return out.String()
}

// VariableStatement declares one or more variables.
// <Kind> <Declarations>;
type VariableStatement struct {
	Kind         VariableKind           `json:"kind"`
	Declarations []*VariableDeclaration `json:"declarations"`
}

func NewVariableStatement(kind VariableKind, declarations []*VariableDeclaration) *VariableStatement {
	return &VariableStatement{Kind: kind, Declarations: declarations}
}

func (vs *VariableStatement) node()          {}
func (vs *VariableStatement) statementNode() {}
func (vs *VariableStatement) Type() NodeType { return VariableStatementNode }
func (vs *VariableStatement) String() string {
	decls := make([]string, len(vs.Declarations))
	for i, d := range vs.Declarations {
		decls[i] = d.String()
	}
	return string(vs.Kind) + " " + strings.Join(decls, ", ") + ";"
}

// VariableDeclaration is one declarator of a VariableStatement. Init is nil
// when no initializer is given.
// <ID> = <Init>
type VariableDeclaration struct {
	ID   *Identifier `json:"id"`
	Init Expression  `json:"init"`
}

func NewVariableDeclaration(id *Identifier, init Expression) *VariableDeclaration {
	return &VariableDeclaration{ID: id, Init: init}
}

func (vd *VariableDeclaration) node()          {}
func (vd *VariableDeclaration) Type() NodeType { return VariableDeclarationNode }
func (vd *VariableDeclaration) String() string {
	if vd.Init == nil {
		return vd.ID.String()
	}
	return vd.ID.String() + " = " + vd.Init.String()
}

// --- Expression Nodes ---

// Identifier represents an identifier in the source code.
type Identifier struct {
	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier { return &Identifier{Name: name} }

func (i *Identifier) node()           {}
func (i *Identifier) expressionNode() {}
func (i *Identifier) Type() NodeType  { return IdentifierNode }
func (i *Identifier) String() string  { return i.Name }

// AssignmentExpression assigns to an identifier. The grammar only admits
// identifiers as targets, hence the concrete Left type.
// <Left> <Operator> <Right>
type AssignmentExpression struct {
	Operator AssignmentOperator `json:"operator"`
	Left     *Identifier        `json:"left"`
	Right    Expression         `json:"right"`
}

func NewAssignmentExpression(operator AssignmentOperator, left *Identifier, right Expression) *AssignmentExpression {
	return &AssignmentExpression{Operator: operator, Left: left, Right: right}
}

func (ae *AssignmentExpression) node()           {}
func (ae *AssignmentExpression) expressionNode() {}
func (ae *AssignmentExpression) Type() NodeType  { return AssignmentExpressionNode }
func (ae *AssignmentExpression) String() string {
	return "(" + ae.Left.String() + " " + string(ae.Operator) + " " + ae.Right.String() + ")"
}

// BinaryExpression is an arithmetic or relational operation.
// <Left> <Operator> <Right>
type BinaryExpression struct {
	Operator BinaryOperator `json:"operator"`
	Left     Expression     `json:"left"`
	Right    Expression     `json:"right"`
}

func NewBinaryExpression(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return &BinaryExpression{Operator: operator, Left: left, Right: right}
}

func (be *BinaryExpression) node()           {}
func (be *BinaryExpression) expressionNode() {}
func (be *BinaryExpression) Type() NodeType  { return BinaryExpressionNode }
func (be *BinaryExpression) String() string {
	return "(" + be.Left.String() + " " + string(be.Operator) + " " + be.Right.String() + ")"
}

// BooleanLiteral represents `true` or `false`.
type BooleanLiteral struct {
	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral { return &BooleanLiteral{Value: value} }

func (bl *BooleanLiteral) node()           {}
func (bl *BooleanLiteral) expressionNode() {}
func (bl *BooleanLiteral) literalNode()    {}
func (bl *BooleanLiteral) Type() NodeType  { return BooleanLiteralNode }
func (bl *BooleanLiteral) String() string  { return strconv.FormatBool(bl.Value) }

// NumericLiteral holds a finite number. Build it with NewNumericLiteral to get
// lexeme validation.
type NumericLiteral struct {
	Value float64 `json:"value"`
}

// NewNumericLiteral converts a numeric lexeme. It fails with an
// errors.ErrInvalidNumber syntax error when the lexeme is not number-shaped.
func NewNumericLiteral(lexeme string) (*NumericLiteral, error) {
	v, err := ToNumber(lexeme)
	if err != nil {
		return nil, err
	}
	return &NumericLiteral{Value: v}, nil
}

func (nl *NumericLiteral) node()           {}
func (nl *NumericLiteral) expressionNode() {}
func (nl *NumericLiteral) literalNode()    {}
func (nl *NumericLiteral) Type() NodeType  { return NumericLiteralNode }
func (nl *NumericLiteral) String() string  { return formatNumber(nl.Value) }

// StringLiteral holds the text between the quotes of a string token.
type StringLiteral struct {
	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral { return &StringLiteral{Value: value} }

func (sl *StringLiteral) node()           {}
func (sl *StringLiteral) expressionNode() {}
func (sl *StringLiteral) literalNode()    {}
func (sl *StringLiteral) Type() NodeType  { return StringLiteralNode }
func (sl *StringLiteral) String() string  { return quoteString(sl.Value) }

// --- JSON ---
//
// Every node encodes as {"type": <tag>, <fields>}. The alias types drop the
// MarshalJSON method so the embedded struct encodes its fields normally.

func (p *Program) MarshalJSON() ([]byte, error) {
	type alias Program
	return encodeJSON(struct {
		Type NodeType `json:"type"`
		*alias
	}{p.Type(), (*alias)(p)})
}

func (bs *BlockStatement) MarshalJSON() ([]byte, error) {
	type alias BlockStatement
	return encodeJSON(struct {
		Type NodeType `json:"type"`
		*alias
	}{bs.Type(), (*alias)(bs)})
}

func (es *EmptyStatement) MarshalJSON() ([]byte, error) {
	return encodeJSON(struct {
		Type NodeType `json:"type"`
	}{es.Type()})
}

func (es *ExpressionStatement) MarshalJSON() ([]byte, error) {
	type alias ExpressionStatement
	return encodeJSON(struct {
		Type NodeType `json:"type"`
		*alias
	}{es.Type(), (*alias)(es)})
}

func (is *IfStatement) MarshalJSON() ([]byte, error) {
	type alias IfStatement
	return encodeJSON(struct {
		Type NodeType `json:"type"`
		*alias
	}{is.Type(), (*alias)(is)})
}

func (vs *VariableStatement) MarshalJSON() ([]byte, error) {
	type alias VariableStatement
	return encodeJSON(struct {
		Type NodeType `json:"type"`
		*alias
	}{vs.Type(), (*alias)(vs)})
}

func (vd *VariableDeclaration) MarshalJSON() ([]byte, error) {
	type alias VariableDeclaration
	return encodeJSON(struct {
		Type NodeType `json:"type"`
		*alias
	}{vd.Type(), (*alias)(vd)})
}

func (i *Identifier) MarshalJSON() ([]byte, error) {
	type alias Identifier
	return encodeJSON(struct {
		Type NodeType `json:"type"`
		*alias
	}{i.Type(), (*alias)(i)})
}

func (ae *AssignmentExpression) MarshalJSON() ([]byte, error) {
	type alias AssignmentExpression
	return encodeJSON(struct {
		Type NodeType `json:"type"`
		*alias
	}{ae.Type(), (*alias)(ae)})
}

func (be *BinaryExpression) MarshalJSON() ([]byte, error) {
	type alias BinaryExpression
	return encodeJSON(struct {
		Type NodeType `json:"type"`
		*alias
	}{be.Type(), (*alias)(be)})
}

func (bl *BooleanLiteral) MarshalJSON() ([]byte, error) {
	type alias BooleanLiteral
	return encodeJSON(struct {
		Type NodeType `json:"type"`
		*alias
	}{bl.Type(), (*alias)(bl)})
}

func (nl *NumericLiteral) MarshalJSON() ([]byte, error) {
	type alias NumericLiteral
	return encodeJSON(struct {
		Type NodeType `json:"type"`
		*alias
	}{nl.Type(), (*alias)(nl)})
}

func (sl *StringLiteral) MarshalJSON() ([]byte, error) {
	type alias StringLiteral
	return encodeJSON(struct {
		Type NodeType `json:"type"`
		*alias
	}{sl.Type(), (*alias)(sl)})
}

// --- Helpers ---

// encodeJSON marshals v without HTML escaping, so operators such as <= stay
// readable. json.Marshal would escape them, and an enclosing encoder keeps
// whatever a nested MarshalJSON returns.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func joinStatements(stmts []Statement, sep string) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = s.String()
	}
	return strings.Join(parts, sep)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// quoteString wraps s in single quotes, or in double quotes when s contains a
// single quote. String tokens have no escapes, so a value holding both quote
// characters has no source form; it is rendered with double quotes anyway.
func quoteString(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	return `"` + s + `"`
}
