// Package interp implements the tree-walking evaluator: it walks the
// statement list produced by the parser, mutating a stack of lexical
// environments and invoking callables.
package interp

import (
	"fmt"
	"io"
	"strconv"

	"github.com/glox-lang/glox/internal/ast"
	"github.com/glox-lang/glox/internal/report"
	"github.com/glox-lang/glox/internal/token"
)

// Interpreter holds the global environment (where built-ins live and
// where top-level declarations go) and the environment currently in
// scope. A single Interpreter is reused across successive Interpret
// calls so the REPL preserves global bindings between lines.
type Interpreter struct {
	globals  *Environment
	current  *Environment
	out      io.Writer
	reporter *report.Reporter
}

// New returns an Interpreter with its built-ins seeded into a fresh
// global environment. print statements write to out.
func New(out io.Writer, reporter *report.Reporter) *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", clockFn{})
	return &Interpreter{globals: globals, current: globals, out: out, reporter: reporter}
}

// Interpret executes each statement in order. Execution stops at the
// first RuntimeError, which is reported and does not propagate further.
// A return signal reaching the top level ends execution silently; any
// other error is a programmer bug and panics.
func (in *Interpreter) Interpret(statements []ast.Stmt) {
	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			switch err := err.(type) {
			case *report.RuntimeError:
				in.reporter.Runtime(err)
				return
			case *returnSignal:
				// A top-level `return` outside any function call has
				// nowhere to deliver its value; treat it as the end of
				// the program rather than letting it escape as a bug.
				return
			default:
				panic(err)
			}
		}
	}
}

func (in *Interpreter) execute(stmt ast.Stmt) error {
	return stmt.Accept(in)
}

func (in *Interpreter) evaluate(expr ast.Expr) (interface{}, error) {
	return expr.Accept(in)
}

// -- statements --

func (in *Interpreter) VisitExpressionStmt(s *ast.ExpressionStmt) error {
	_, err := in.evaluate(s.Expression)
	return err
}

func (in *Interpreter) VisitPrintStmt(s *ast.PrintStmt) error {
	value, err := in.evaluate(s.Expression)
	if err != nil {
		return err
	}
	fmt.Fprintln(in.out, in.stringify(value))
	return nil
}

func (in *Interpreter) VisitLetStmt(s *ast.LetStmt) error {
	var value interface{}
	if s.Initializer != nil {
		v, err := in.evaluate(s.Initializer)
		if err != nil {
			return err
		}
		value = v
	}
	in.current.Define(s.Name.Lexeme, value)
	return nil
}

func (in *Interpreter) VisitBlockStmt(s *ast.BlockStmt) error {
	return in.executeBlock(s.Statements, NewEnvironment(in.current))
}

// executeBlock runs statements in env, restoring the previous current
// environment on the way out whether execution completes normally,
// unwinds via a returnSignal, or aborts with a RuntimeError.
func (in *Interpreter) executeBlock(statements []ast.Stmt, env *Environment) error {
	previous := in.current
	in.current = env
	defer func() { in.current = previous }()

	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) VisitIfStmt(s *ast.IfStmt) error {
	condition, err := in.evaluate(s.Condition)
	if err != nil {
		return err
	}
	if isTruthy(condition) {
		return in.execute(s.Then)
	} else if s.ElseBranch != nil {
		return in.execute(s.ElseBranch)
	}
	return nil
}

func (in *Interpreter) VisitWhileStmt(s *ast.WhileStmt) error {
	for {
		condition, err := in.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if !isTruthy(condition) {
			return nil
		}
		if err := in.execute(s.Body); err != nil {
			return err
		}
	}
}

func (in *Interpreter) VisitFunctionStmt(s *ast.FunctionStmt) error {
	fn := newFunction(s, in.current)
	in.current.Define(s.Name.Lexeme, fn)
	return nil
}

func (in *Interpreter) VisitReturnStmt(s *ast.ReturnStmt) error {
	var value interface{}
	if s.Value != nil {
		v, err := in.evaluate(s.Value)
		if err != nil {
			return err
		}
		value = v
	}
	return &returnSignal{value: value}
}

// -- expressions --

func (in *Interpreter) VisitLiteralExpr(e *ast.LiteralExpr) (interface{}, error) {
	return e.Value, nil
}

func (in *Interpreter) VisitGroupingExpr(e *ast.GroupingExpr) (interface{}, error) {
	return in.evaluate(e.Expression)
}

func (in *Interpreter) VisitVariableExpr(e *ast.VariableExpr) (interface{}, error) {
	return in.current.Get(e.Name)
}

func (in *Interpreter) VisitAssignExpr(e *ast.AssignExpr) (interface{}, error) {
	value, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if err := in.current.Assign(e.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (in *Interpreter) VisitLogicalExpr(e *ast.LogicalExpr) (interface{}, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator.Type == token.Or {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}
	return in.evaluate(e.Right)
}

func (in *Interpreter) VisitUnaryExpr(e *ast.UnaryExpr) (interface{}, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Type {
	case token.Bang:
		return !isTruthy(right), nil
	case token.Minus:
		num, ok := right.(float64)
		if !ok {
			return nil, report.NewRuntimeError(e.Operator, "Operand must be a number.")
		}
		return -num, nil
	}
	panic("unreachable unary operator " + e.Operator.Type.String())
}

func (in *Interpreter) VisitBinaryExpr(e *ast.BinaryExpr) (interface{}, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.Plus:
		return in.evaluatePlus(e.Operator, left, right)
	case token.Minus, token.Slash, token.Star:
		leftNum, rightNum, ok := bothNumbers(left, right)
		if !ok {
			return nil, report.NewRuntimeError(e.Operator, "Operands must be numbers.")
		}
		switch e.Operator.Type {
		case token.Minus:
			return leftNum - rightNum, nil
		case token.Slash:
			if rightNum == 0.0 {
				return nil, report.NewRuntimeError(e.Operator, "Division by zero.")
			}
			return leftNum / rightNum, nil
		case token.Star:
			return leftNum * rightNum, nil
		}
	case token.Greater, token.GreaterEqual, token.Less, token.LessEqual:
		leftNum, rightNum, ok := bothNumbers(left, right)
		if !ok {
			return nil, report.NewRuntimeError(e.Operator, "Operands must be numbers.")
		}
		switch e.Operator.Type {
		case token.Greater:
			return leftNum > rightNum, nil
		case token.GreaterEqual:
			return leftNum >= rightNum, nil
		case token.Less:
			return leftNum < rightNum, nil
		case token.LessEqual:
			return leftNum <= rightNum, nil
		}
	case token.EqualEqual:
		return isEqual(left, right), nil
	case token.BangEqual:
		return !isEqual(left, right), nil
	}
	panic("unreachable binary operator " + e.Operator.Type.String())
}

// evaluatePlus implements the overloaded `+` operator: number+number is
// addition, string+string is concatenation, and a number paired with a
// string stringifies the number and concatenates.
func (in *Interpreter) evaluatePlus(op token.Token, left, right interface{}) (interface{}, error) {
	leftNum, leftIsNum := left.(float64)
	rightNum, rightIsNum := right.(float64)
	leftStr, leftIsStr := left.(string)
	rightStr, rightIsStr := right.(string)

	switch {
	case leftIsNum && rightIsNum:
		return leftNum + rightNum, nil
	case leftIsStr && rightIsStr:
		return leftStr + rightStr, nil
	case leftIsStr && rightIsNum:
		return leftStr + in.stringify(rightNum), nil
	case leftIsNum && rightIsStr:
		return in.stringify(leftNum) + rightStr, nil
	default:
		return nil, report.NewRuntimeError(op, "Operands must be two numbers or two strings.")
	}
}

func (in *Interpreter) VisitCallExpr(e *ast.CallExpr) (interface{}, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]interface{}, len(e.Args))
	for i, argExpr := range e.Args {
		arg, err := in.evaluate(argExpr)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, report.NewRuntimeError(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, report.NewRuntimeError(e.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}
	return callable.Call(in, args)
}

// -- shared value semantics --

func bothNumbers(left, right interface{}) (float64, float64, bool) {
	leftNum, leftOk := left.(float64)
	rightNum, rightOk := right.(float64)
	return leftNum, rightNum, leftOk && rightOk
}

// isTruthy implements the truthiness rule: false and nil are falsy,
// everything else is truthy.
func isTruthy(val interface{}) bool {
	if val == nil {
		return false
	}
	if b, ok := val.(bool); ok {
		return b
	}
	return true
}

// isEqual implements `==`/`!=`: nil equals only nil, and every other
// combination falls back to Go's == semantics, which compares numbers,
// strings, and booleans by value and user functions by pointer
// identity.
func isEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

// stringify renders a runtime value for print: numbers drop a trailing
// ".0" when integral, nil prints as "nil", booleans print as
// "true"/"false".
func (in *Interpreter) stringify(val interface{}) string {
	if val == nil {
		return "nil"
	}
	if num, ok := val.(float64); ok {
		text := strconv.FormatFloat(num, 'f', -1, 64)
		return text
	}
	if s, ok := val.(string); ok {
		return s
	}
	if stringer, ok := val.(fmt.Stringer); ok {
		return stringer.String()
	}
	return fmt.Sprintf("%v", val)
}
