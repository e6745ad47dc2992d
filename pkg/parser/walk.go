package parser

import "fmt"

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children
// of node with the visitor w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order: It starts by calling
// v.Visit(node); node must not be nil. If the visitor w returned by
// v.Visit(node) is not nil, Walk is invoked recursively with visitor
// w for each of the non-nil children of node, followed by a call of
// w.Visit(nil). Children are visited in field order.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		walkStatements(v, n.Body)

	case *BlockStatement:
		walkStatements(v, n.Body)

	case *EmptyStatement:
		// nothing to do

	case *ExpressionStatement:
		Walk(v, n.Expression)

	case *IfStatement:
		Walk(v, n.Test)
		Walk(v, n.Consequent)
		if n.Alternate != nil {
			Walk(v, n.Alternate)
		}

	case *VariableStatement:
		for _, d := range n.Declarations {
			Walk(v, d)
		}

	case *VariableDeclaration:
		Walk(v, n.ID)
		if n.Init != nil {
			Walk(v, n.Init)
		}

	case *AssignmentExpression:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *BinaryExpression:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *Identifier, *BooleanLiteral, *NumericLiteral, *StringLiteral:
		// leaves

	default:
		panic(fmt.Sprintf("parser.Walk: unexpected node type %T", n))
	}

	v.Visit(nil)
}

func walkStatements(v Visitor, list []Statement) {
	for _, s := range list {
		Walk(v, s)
	}
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses an AST in depth-first order: It starts by calling
// f(node); node must not be nil. If f returns true, Inspect invokes f
// recursively for each of the non-nil children of node, followed by a
// call of f(nil).
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}
