package ast

import (
	"fmt"
	"strings"
)

// Printer is a visitor that renders an expression tree as a fully
// parenthesized Lisp-style string, e.g. `(* (- 123) (group 45.67))`.
// It exists purely as a development aid (see the CLI's --print-ast
// flag) and participates in no evaluation semantics.
type Printer struct {
	buf strings.Builder
}

// Print renders expr and returns the resulting string.
func (p *Printer) Print(expr Expr) string {
	p.buf.Reset()
	expr.Accept(p)
	return p.buf.String()
}

// VisitAssignExpr renders `(= name value)`.
func (p *Printer) VisitAssignExpr(e *AssignExpr) (interface{}, error) {
	p.parenthesize("= "+e.Name.Lexeme, e.Value)
	return nil, nil
}

// VisitBinaryExpr renders `(op left right)`.
func (p *Printer) VisitBinaryExpr(e *BinaryExpr) (interface{}, error) {
	p.parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	return nil, nil
}

// VisitCallExpr renders `(call callee args...)`.
func (p *Printer) VisitCallExpr(e *CallExpr) (interface{}, error) {
	args := append([]Expr{e.Callee}, e.Args...)
	p.parenthesize("call", args...)
	return nil, nil
}

// VisitGroupingExpr renders `(group inner)`.
func (p *Printer) VisitGroupingExpr(e *GroupingExpr) (interface{}, error) {
	p.parenthesize("group", e.Expression)
	return nil, nil
}

// VisitLiteralExpr renders the literal's Go value directly.
func (p *Printer) VisitLiteralExpr(e *LiteralExpr) (interface{}, error) {
	if e.Value == nil {
		p.buf.WriteString("nil")
	} else {
		fmt.Fprintf(&p.buf, "%v", e.Value)
	}
	return nil, nil
}

// VisitLogicalExpr renders `(op left right)`.
func (p *Printer) VisitLogicalExpr(e *LogicalExpr) (interface{}, error) {
	p.parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	return nil, nil
}

// VisitUnaryExpr renders `(op right)`.
func (p *Printer) VisitUnaryExpr(e *UnaryExpr) (interface{}, error) {
	p.parenthesize(e.Operator.Lexeme, e.Right)
	return nil, nil
}

// VisitVariableExpr renders the bare identifier name.
func (p *Printer) VisitVariableExpr(e *VariableExpr) (interface{}, error) {
	p.buf.WriteString(e.Name.Lexeme)
	return nil, nil
}

func (p *Printer) parenthesize(name string, exprs ...Expr) {
	p.buf.WriteByte('(')
	p.buf.WriteString(name)
	for _, e := range exprs {
		p.buf.WriteByte(' ')
		e.Accept(p)
	}
	p.buf.WriteByte(')')
}
