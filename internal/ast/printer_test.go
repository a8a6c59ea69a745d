package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glox-lang/glox/internal/ast"
	"github.com/glox-lang/glox/internal/token"
)

func TestPrinterParenthesizesNestedExpression(t *testing.T) {
	// -123 * (45.67)
	expr := &ast.BinaryExpr{
		Left: &ast.UnaryExpr{
			Operator: token.New(token.Minus, "-", nil, 1),
			Right:    &ast.LiteralExpr{Value: 123.0},
		},
		Operator: token.New(token.Star, "*", nil, 1),
		Right:    &ast.GroupingExpr{Expression: &ast.LiteralExpr{Value: 45.67}},
	}

	p := &ast.Printer{}
	assert.Equal(t, "(* (- 123) (group 45.67))", p.Print(expr))
}

func TestPrinterRendersNilLiteralAndVariables(t *testing.T) {
	p := &ast.Printer{}
	assert.Equal(t, "nil", p.Print(&ast.LiteralExpr{Value: nil}))

	assign := &ast.AssignExpr{
		Name:  token.New(token.Identifier, "x", nil, 1),
		Value: &ast.VariableExpr{Name: token.New(token.Identifier, "y", nil, 1)},
	}
	assert.Equal(t, "(= x y)", p.Print(assign))
}

func TestPrinterRendersCalls(t *testing.T) {
	p := &ast.Printer{}
	call := &ast.CallExpr{
		Callee: &ast.VariableExpr{Name: token.New(token.Identifier, "f", nil, 1)},
		Paren:  token.New(token.RightParen, ")", nil, 1),
		Args:   []ast.Expr{&ast.LiteralExpr{Value: 1.0}},
	}
	assert.Equal(t, "(call f 1)", p.Print(call))
}
