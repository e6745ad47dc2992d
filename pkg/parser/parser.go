package parser

import (
	stderrors "errors"
	"fmt"

	"photon/pkg/errors"
	"photon/pkg/lexer"
	"photon/pkg/source"
)

// --- Debug Flag ---
const debugParser = false

func debugPrint(format string, args ...interface{}) {
	if debugParser {
		fmt.Printf("[Parser Debug] "+format+"\n", args...)
	}
}

// --- End Debug Flag ---

// noStop is passed to statementList when only the end of input ends the list.
const noStop lexer.TokenType = ""

// Parser builds an AST by predictive recursive descent with a single token of
// lookahead. Operator precedence follows from which production each method
// descends into for its operands:
//
//	assignment < relational < additive < multiplicative < primary
//
// A Parser may be reused for several Parse calls but is not safe for
// concurrent use.
type Parser struct {
	tokenizer *lexer.Tokenizer

	lookahead     *lexer.Token // nil once the input is exhausted
	lookaheadSpan lexer.Span
}

// New creates a Parser. Options are passed to its tokenizer.
func New(opts ...lexer.Option) *Parser {
	return &Parser{tokenizer: lexer.NewTokenizer(opts...)}
}

// Parse turns program text into a Program. The first syntax error aborts the
// parse; no partial tree is returned.
func Parse(text string) (*Program, error) {
	return New().Parse(text)
}

// ParseSource parses the content of sf and reports errors against it.
func ParseSource(sf *source.SourceFile, opts ...lexer.Option) (*Program, error) {
	return New(opts...).ParseSource(sf)
}

// Parse resets the tokenizer to text and parses a Program.
func (p *Parser) Parse(text string) (*Program, error) {
	p.tokenizer.Init(text)
	return p.start()
}

// ParseSource resets the tokenizer to sf and parses a Program. Syntax errors
// carry sf in their position.
func (p *Parser) ParseSource(sf *source.SourceFile) (*Program, error) {
	p.tokenizer.SetSource(sf)
	return p.start()
}

// start primes the lookahead from a freshly reset tokenizer.
func (p *Parser) start() (*Program, error) {
	p.lookahead = nil
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.program()
}

// --- Statement Parsing ---

// Program
//
//	: StatementList
//	;
func (p *Parser) program() (*Program, error) {
	body, err := p.statementList(noStop)
	if err != nil {
		return nil, err
	}
	return NewProgram(body), nil
}

// StatementList
//
//	: Statement
//	| StatementList Statement
//	;
//
// At least one statement is parsed. The list ends at the end of input or in
// front of a stop token, which is left for the caller.
func (p *Parser) statementList(stop lexer.TokenType) ([]Statement, error) {
	first, err := p.statement()
	if err != nil {
		return nil, err
	}
	list := []Statement{first}

	for p.lookahead != nil && p.lookahead.Type != stop {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		list = append(list, stmt)
	}
	return list, nil
}

// Statement
//
//	: EmptyStatement
//	| IfStatement
//	| BlockStatement
//	| VariableStatement
//	| ExpressionStatement
//	;
func (p *Parser) statement() (Statement, error) {
	debugPrint("statement: lookahead=%v", p.lookahead)
	if p.lookahead == nil {
		return p.expressionStatement()
	}

	switch p.lookahead.Type {
	case lexer.SEMICOLON:
		return p.emptyStatement()
	case lexer.IF:
		return p.ifStatement()
	case lexer.OPEN_CURLY_BRACKET:
		return p.blockStatement()
	case lexer.CONST, lexer.LET, lexer.VAR:
		return p.variableStatement()
	default:
		return p.expressionStatement()
	}
}

// EmptyStatement
//
//	: SEMICOLON
//	;
func (p *Parser) emptyStatement() (*EmptyStatement, error) {
	if _, err := p.eat(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return NewEmptyStatement(), nil
}

// BlockStatement
//
//	: OPEN_CURLY_BRACKET OptStatementList CLOSE_CURLY_BRACKET
//	;
func (p *Parser) blockStatement() (*BlockStatement, error) {
	if _, err := p.eat(lexer.OPEN_CURLY_BRACKET); err != nil {
		return nil, err
	}

	var body []Statement
	if p.lookahead != nil && p.lookahead.Type != lexer.CLOSE_CURLY_BRACKET {
		var err error
		body, err = p.statementList(lexer.CLOSE_CURLY_BRACKET)
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.eat(lexer.CLOSE_CURLY_BRACKET); err != nil {
		return nil, err
	}
	return NewBlockStatement(body), nil
}

// IfStatement
//
//	: IF OPEN_PAREN Expression CLOSE_PAREN Statement
//	| IF OPEN_PAREN Expression CLOSE_PAREN Statement ELSE Statement
//	;
//
// The consequent is parsed to completion, including any else of its own,
// before this level looks for an else. A dangling else therefore belongs to
// the innermost if.
func (p *Parser) ifStatement() (*IfStatement, error) {
	if _, err := p.eat(lexer.IF); err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.OPEN_PAREN); err != nil {
		return nil, err
	}
	test, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.CLOSE_PAREN); err != nil {
		return nil, err
	}

	consequent, err := p.statement()
	if err != nil {
		return nil, err
	}

	var alternate Statement
	if p.lookaheadIs(lexer.ELSE) {
		if _, err := p.eat(lexer.ELSE); err != nil {
			return nil, err
		}
		if alternate, err = p.statement(); err != nil {
			return nil, err
		}
	}

	return NewIfStatement(test, consequent, alternate), nil
}

// VariableStatement
//
//	: (CONST | LET | VAR) VariableDeclarationList SEMICOLON
//	;
func (p *Parser) variableStatement() (*VariableStatement, error) {
	keyword, span := *p.lookahead, p.lookaheadSpan

	if !lexer.IsVariableTokenType(keyword.Type) || !IsVariableKeyword(keyword.Value) {
		return nil, p.errorAt(span, keyword.Value, "", errors.ErrInvalidOperator,
			"Unexpected variable production: expected a variable keyword, but got %s instead", keyword.Value)
	}
	if _, err := p.eat(keyword.Type); err != nil {
		return nil, err
	}

	declarations, err := p.variableDeclarationList()
	if err != nil {
		return nil, err
	}

	if _, err := p.eat(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return NewVariableStatement(VariableKind(keyword.Value), declarations), nil
}

// VariableDeclarationList
//
//	: VariableDeclaration
//	| VariableDeclarationList COMMA VariableDeclaration
//	;
func (p *Parser) variableDeclarationList() ([]*VariableDeclaration, error) {
	var declarations []*VariableDeclaration
	for {
		decl, err := p.variableDeclaration()
		if err != nil {
			return nil, err
		}
		declarations = append(declarations, decl)

		if !p.lookaheadIs(lexer.COMMA) {
			return declarations, nil
		}
		if _, err := p.eat(lexer.COMMA); err != nil {
			return nil, err
		}
	}
}

// VariableDeclaration
//
//	: Identifier OptVariableInitializer
//	;
func (p *Parser) variableDeclaration() (*VariableDeclaration, error) {
	id, err := p.identifier()
	if err != nil {
		return nil, err
	}

	var init Expression
	if !p.lookaheadIs(lexer.SEMICOLON) && !p.lookaheadIs(lexer.COMMA) {
		if init, err = p.variableInitializer(); err != nil {
			return nil, err
		}
	}
	return NewVariableDeclaration(id, init), nil
}

// VariableInitializer
//
//	: SIMPLE_ASSIGN AssignmentExpression
//	;
func (p *Parser) variableInitializer() (Expression, error) {
	if _, err := p.eat(lexer.SIMPLE_ASSIGN); err != nil {
		return nil, err
	}
	return p.assignmentExpression()
}

// ExpressionStatement
//
//	: Expression SEMICOLON
//	;
func (p *Parser) expressionStatement() (*ExpressionStatement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return NewExpressionStatement(expr), nil
}

// --- Expression Parsing ---

// Expression
//
//	: AssignmentExpression
//	;
func (p *Parser) expression() (Expression, error) {
	return p.assignmentExpression()
}

// AssignmentExpression
//
//	: RelationalExpression
//	| LeftHandSideExpression AssignmentOperator AssignmentExpression
//	;
//
// The left side is parsed as a relational expression first and only
// reinterpreted as a target once an assignment operator shows up. The right
// side recurses into this production, which makes assignment right-associative.
func (p *Parser) assignmentExpression() (Expression, error) {
	left, err := p.relationalExpression()
	if err != nil {
		return nil, err
	}

	if p.lookahead == nil || !lexer.IsAssignmentOperatorTokenType(p.lookahead.Type) {
		return left, nil
	}

	target, ok := left.(*Identifier)
	if !ok {
		return nil, p.errorAt(p.lookaheadSpan, p.lookahead.Value, "", errors.ErrInvalidAssignmentTarget,
			"Invalid left-hand side in assignment expression")
	}

	operator, err := p.assignmentOperator()
	if err != nil {
		return nil, err
	}
	right, err := p.assignmentExpression()
	if err != nil {
		return nil, err
	}
	return NewAssignmentExpression(operator, target, right), nil
}

// AssignmentOperator
//
//	: SIMPLE_ASSIGN
//	| COMPLEX_ASSIGN
//	;
func (p *Parser) assignmentOperator() (AssignmentOperator, error) {
	expected := lexer.COMPLEX_ASSIGN
	if p.lookaheadIs(lexer.SIMPLE_ASSIGN) {
		expected = lexer.SIMPLE_ASSIGN
	}

	span := p.lookaheadSpan
	tok, err := p.eat(expected)
	if err != nil {
		return "", err
	}
	if !IsAssignmentOperator(tok.Value) {
		return "", p.errorAt(span, tok.Value, "", errors.ErrInvalidOperator,
			"Unexpected operator: %q is not an assignment operator", tok.Value)
	}
	return AssignmentOperator(tok.Value), nil
}

// RelationalExpression
//
//	: AdditiveExpression
//	| RelationalExpression RELATIONAL_OPERATOR AdditiveExpression
//	;
func (p *Parser) relationalExpression() (Expression, error) {
	return p.binaryExpression(lexer.RELATIONAL_OPERATOR, p.additiveExpression)
}

// AdditiveExpression
//
//	: MultiplicativeExpression
//	| AdditiveExpression ADDITIVE_OPERATOR MultiplicativeExpression
//	;
func (p *Parser) additiveExpression() (Expression, error) {
	return p.binaryExpression(lexer.ADDITIVE_OPERATOR, p.multiplicativeExpression)
}

// MultiplicativeExpression
//
//	: PrimaryExpression
//	| MultiplicativeExpression MULTIPLICATIVE_OPERATOR PrimaryExpression
//	;
func (p *Parser) multiplicativeExpression() (Expression, error) {
	return p.binaryExpression(lexer.MULTIPLICATIVE_OPERATOR, p.primaryExpression)
}

// binaryExpression parses a left-associative chain of operand (operator
// operand)*, folding each new operand onto the tree built so far:
// 1 - 2 + 3 becomes ((1 - 2) + 3).
func (p *Parser) binaryExpression(operatorType lexer.TokenType, operand func() (Expression, error)) (Expression, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for p.lookaheadIs(operatorType) {
		span := p.lookaheadSpan
		tok, err := p.eat(operatorType)
		if err != nil {
			return nil, err
		}
		if !IsBinaryOperator(tok.Value) {
			return nil, p.errorAt(span, tok.Value, "", errors.ErrInvalidOperator,
				"Unexpected operator: %q is not a valid binary operator", tok.Value)
		}

		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = NewBinaryExpression(BinaryOperator(tok.Value), left, right)
	}
	return left, nil
}

// PrimaryExpression
//
//	: Literal
//	| ParenthesizedExpression
//	| LeftHandSideExpression
//	;
func (p *Parser) primaryExpression() (Expression, error) {
	if p.lookahead != nil && lexer.IsLiteralTokenType(p.lookahead.Type) {
		return p.literal()
	}
	if p.lookaheadIs(lexer.OPEN_PAREN) {
		return p.parenthesizedExpression()
	}
	return p.leftHandSideExpression()
}

// ParenthesizedExpression
//
//	: OPEN_PAREN Expression CLOSE_PAREN
//	;
func (p *Parser) parenthesizedExpression() (Expression, error) {
	if _, err := p.eat(lexer.OPEN_PAREN); err != nil {
		return nil, err
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(lexer.CLOSE_PAREN); err != nil {
		return nil, err
	}
	return expr, nil
}

// LeftHandSideExpression
//
//	: Identifier
//	;
func (p *Parser) leftHandSideExpression() (Expression, error) {
	return p.identifier()
}

// Identifier
//
//	: IDENTIFIER
//	;
func (p *Parser) identifier() (*Identifier, error) {
	tok, err := p.eat(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	return NewIdentifier(tok.Value), nil
}

// Literal
//
//	: BooleanLiteral
//	| NumericLiteral
//	| StringLiteral
//	;
func (p *Parser) literal() (Literal, error) {
	switch p.lookahead.Type {
	case lexer.BOOLEAN:
		return p.booleanLiteral()
	case lexer.NUMBER:
		return p.numericLiteral()
	case lexer.STRING:
		return p.stringLiteral()
	}
	return nil, p.errorAt(p.lookaheadSpan, p.lookahead.Value, "", errors.ErrUnexpectedToken,
		"Literal: unexpected literal production")
}

// BooleanLiteral
//
//	: BOOLEAN
//	;
func (p *Parser) booleanLiteral() (*BooleanLiteral, error) {
	tok, err := p.eat(lexer.BOOLEAN)
	if err != nil {
		return nil, err
	}
	return NewBooleanLiteral(tok.Value == "true"), nil
}

// NumericLiteral
//
//	: NUMBER
//	;
func (p *Parser) numericLiteral() (*NumericLiteral, error) {
	span := p.lookaheadSpan
	tok, err := p.eat(lexer.NUMBER)
	if err != nil {
		return nil, err
	}

	lit, err := NewNumericLiteral(tok.Value)
	if err != nil {
		var se *errors.SyntaxError
		if stderrors.As(err, &se) {
			return nil, p.errorAt(span, tok.Value, "", se.Cause, "%s", se.Msg)
		}
		return nil, err
	}
	return lit, nil
}

// StringLiteral
//
//	: STRING
//	;
//
// The token keeps its quotes; they are dropped here.
func (p *Parser) stringLiteral() (*StringLiteral, error) {
	tok, err := p.eat(lexer.STRING)
	if err != nil {
		return nil, err
	}
	return NewStringLiteral(tok.Value[1 : len(tok.Value)-1]), nil
}

// --- Helper Methods ---

func (p *Parser) lookaheadIs(t lexer.TokenType) bool {
	return p.lookahead != nil && p.lookahead.Type == t
}

// eat consumes the lookahead if it has the expected type and pulls the next
// token from the tokenizer. It is the only place the lookahead changes after
// priming.
func (p *Parser) eat(expected lexer.TokenType) (lexer.Token, error) {
	tok := p.lookahead

	if tok == nil {
		return lexer.Token{}, p.errorAt(p.tokenizer.CursorSpan(), "", expected, errors.ErrUnexpectedEOF,
			"Unexpected end of input, expected: %q", string(expected))
	}

	if tok.Type != expected {
		return lexer.Token{}, p.errorAt(p.lookaheadSpan, tok.Value, expected, errors.ErrUnexpectedToken,
			"Unexpected token: %q, expected: %q", tok.Value, string(expected))
	}

	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return *tok, nil
}

// advance replaces the lookahead with the next token from the tokenizer.
func (p *Parser) advance() error {
	next, err := p.tokenizer.NextToken()
	if err != nil {
		return err
	}
	p.lookahead = next
	p.lookaheadSpan = p.tokenizer.LastSpan()
	debugPrint("advance: lookahead=%v", next)
	return nil
}

// --- Error Handling ---

func (p *Parser) errorAt(span lexer.Span, lexeme string, expected lexer.TokenType, cause error, format string, args ...any) *errors.SyntaxError {
	err := errors.NewSyntaxError(errors.Position{
		Line:     span.Line,
		Column:   span.Column,
		StartPos: span.StartPos,
		EndPos:   span.EndPos,
		Source:   p.tokenizer.Source(),
	}, format, args...)
	err.Lexeme = lexeme
	err.Expected = string(expected)
	return err.CausedBy(cause)
}
