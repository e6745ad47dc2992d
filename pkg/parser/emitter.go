package parser

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"math"
	"strings"
)

// ErrNoSourceForm is returned by Emit for trees that no input text parses to.
var ErrNoSourceForm = stderrors.New("node has no source form")

// Emitter turns an AST back into source text. Statements go one per line,
// nested bodies are indented two spaces, and expressions get only the
// parentheses their precedence needs.
type Emitter struct {
	indentLevel int
	buffer      bytes.Buffer
	err         error

	// Number and boolean tokens only end in front of one of a few characters
	// (or the end of input). follow holds that set while such a token is the
	// last thing written. glue is set when the last thing written is an
	// identifier that would lex as such a token unless the next character
	// falls outside the set.
	follow string
	glue   bool
}

const (
	numberFollow  = " \t\n;)"
	booleanFollow = " \t\n;"
)

// NewEmitter creates a new source emitter
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Emit renders program with a fresh Emitter.
func Emit(program *Program) (string, error) {
	return NewEmitter().Emit(program)
}

// Emit converts a program AST to source code. Parsing the result yields a tree
// equal to program. Trees the parser cannot produce may fail with
// ErrNoSourceForm.
func (e *Emitter) Emit(program *Program) (string, error) {
	e.buffer.Reset()
	e.indentLevel = 0
	e.err = nil
	e.follow, e.glue = "", false

	for _, stmt := range program.Body {
		e.emitStatement(stmt)
	}
	if e.glue {
		e.fail("program ends in a literal-like identifier")
	}

	if e.err != nil {
		return "", e.err
	}
	return e.buffer.String(), nil
}

// Helper methods

func (e *Emitter) indent() {
	e.indentLevel++
}

func (e *Emitter) dedent() {
	if e.indentLevel > 0 {
		e.indentLevel--
	}
}

func (e *Emitter) writeIndent() {
	for i := 0; i < e.indentLevel; i++ {
		e.buffer.WriteString("  ")
	}
}

func (e *Emitter) writeLine(format string, args ...interface{}) {
	e.writeIndent()
	fmt.Fprintf(&e.buffer, format, args...)
	e.buffer.WriteString("\n")
}

func (e *Emitter) write(format string, args ...interface{}) {
	s := fmt.Sprintf(format, args...)

	if e.follow != "" && s != "" {
		if e.glue {
			s = strings.TrimLeft(s, " ")
			if s == "" {
				return
			}
			if strings.IndexByte(e.follow, s[0]) >= 0 {
				e.fail("identifier cannot be followed by %q", s[0])
			}
		} else if strings.IndexByte(e.follow, s[0]) < 0 {
			s = " " + s
		}
		e.follow, e.glue = "", false
	}

	e.buffer.WriteString(s)
}

func (e *Emitter) fail(format string, args ...interface{}) {
	if e.err == nil {
		e.err = fmt.Errorf("emit: "+format+": %w", append(args, ErrNoSourceForm)...)
	}
}

// AST emitter methods

func (e *Emitter) emitStatement(stmt Statement) {
	switch s := stmt.(type) {
	case *EmptyStatement:
		e.writeLine(";")
	case *ExpressionStatement:
		e.writeIndent()
		e.emitExpression(s.Expression, precAssignment)
		e.write(";\n")
	case *VariableStatement:
		e.emitVariableStatement(s)
	case *BlockStatement:
		e.writeIndent()
		e.emitBlock(s)
		e.write("\n")
	case *IfStatement:
		e.writeIndent()
		if e.emitIf(s) {
			e.write("\n")
		}
	default:
		e.fail("unsupported statement type %T", s)
	}
}

func (e *Emitter) emitVariableStatement(stmt *VariableStatement) {
	if len(stmt.Declarations) == 0 {
		e.fail("%s statement without declarations", stmt.Kind)
		return
	}

	e.writeIndent()
	e.write("%s ", stmt.Kind)
	for i, d := range stmt.Declarations {
		if i > 0 {
			e.write(", ")
		}
		e.emitExpression(d.ID, precPrimary)
		if d.Init != nil {
			e.write(" = ")
			e.emitExpression(d.Init, precAssignment)
		}
	}
	e.write(";\n")
}

// emitBlock writes a braced block starting at the current position and leaves
// the line open after the closing brace.
func (e *Emitter) emitBlock(block *BlockStatement) {
	if len(block.Body) == 0 {
		e.write("{}")
		return
	}

	e.write("{\n")
	e.indent()
	for _, s := range block.Body {
		e.emitStatement(s)
	}
	e.dedent()
	e.writeIndent()
	e.write("}")
}

// emitIf writes an if statement, chaining `else if` on one line. It reports
// whether the last line is still open.
func (e *Emitter) emitIf(stmt *IfStatement) bool {
	// The parser attaches an else to the innermost if, so an else-less if as
	// consequent would capture this statement's else on reparse.
	if stmt.Alternate != nil && endsWithOpenIf(stmt.Consequent) {
		e.fail("if statement with else cannot have an else-less if as consequent")
		return false
	}

	e.write("if (")
	e.emitExpression(stmt.Test, precAssignment)
	e.write(")")
	open := e.emitBody(stmt.Consequent)

	if stmt.Alternate == nil {
		return open
	}

	if open {
		e.write(" else")
	} else {
		e.writeIndent()
		e.write("else")
	}

	if alt, ok := stmt.Alternate.(*IfStatement); ok {
		e.write(" ")
		return e.emitIf(alt)
	}
	return e.emitBody(stmt.Alternate)
}

// emitBody writes the statement after `if (...)` or `else`. Blocks stay on the
// same line; anything else goes on its own indented line.
func (e *Emitter) emitBody(stmt Statement) bool {
	if block, ok := stmt.(*BlockStatement); ok {
		e.write(" ")
		e.emitBlock(block)
		return true
	}

	e.write("\n")
	e.indent()
	e.emitStatement(stmt)
	e.dedent()
	return false
}

func endsWithOpenIf(stmt Statement) bool {
	s, ok := stmt.(*IfStatement)
	if !ok {
		return false
	}
	if s.Alternate == nil {
		return true
	}
	return endsWithOpenIf(s.Alternate)
}

// emitExpression writes expr, parenthesized when it binds looser than minPrec.
func (e *Emitter) emitExpression(expr Expression, minPrec int) {
	prec := expressionPrecedence(expr)
	if prec < minPrec {
		e.write("(")
		defer e.write(")")
	}

	switch ex := expr.(type) {
	case *Identifier:
		e.write("%s", ex.Name)
		switch {
		case ex.Name == "true" || ex.Name == "false":
			e.follow, e.glue = booleanFollow, true
		case allDigits(ex.Name):
			e.follow, e.glue = numberFollow, true
		}
	case *BooleanLiteral:
		e.write("%t", ex.Value)
		e.follow = booleanFollow
	case *NumericLiteral:
		e.emitNumber(ex.Value)
	case *StringLiteral:
		if strings.Contains(ex.Value, "'") && strings.Contains(ex.Value, `"`) {
			e.fail("string %q holds both quote characters", ex.Value)
			return
		}
		e.write("%s", quoteString(ex.Value))
	case *AssignmentExpression:
		e.emitExpression(ex.Left, precPrimary)
		e.write(" %s ", ex.Operator)
		e.emitExpression(ex.Right, precAssignment)
	case *BinaryExpression:
		// Left-associative: an equal-precedence right operand needs parentheses.
		e.emitExpression(ex.Left, prec)
		e.write(" %s ", ex.Operator)
		e.emitExpression(ex.Right, prec+1)
	default:
		e.fail("unsupported expression type %T", ex)
	}
}

func (e *Emitter) emitNumber(v float64) {
	// Number tokens are unsigned; a leading '-' lexes as an operator.
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Signbit(v) {
		e.fail("number %v", v)
		return
	}
	e.write("%s", formatNumber(v))
	e.follow = numberFollow
}

func expressionPrecedence(expr Expression) int {
	switch ex := expr.(type) {
	case *AssignmentExpression:
		return precAssignment
	case *BinaryExpression:
		return ex.Operator.precedence()
	}
	return precPrimary
}
