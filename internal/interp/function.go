package interp

import "github.com/glox-lang/glox/internal/ast"

// function is a user-defined function value: the declaration's AST node
// plus the environment in effect when the function was declared (its
// closure). Two calls to a function that declares and returns an inner
// function each get their own closure environment, so each returned
// function's captured state is independent.
type function struct {
	declaration *ast.FunctionStmt
	closure     *Environment
}

func newFunction(declaration *ast.FunctionStmt, closure *Environment) *function {
	return &function{declaration: declaration, closure: closure}
}

// Arity returns the number of parameters the function declares.
func (f *function) Arity() int {
	return len(f.declaration.Params)
}

// Call binds args to the function's parameters in a fresh environment
// chained off the closure (not the caller's environment), then executes
// the body as a block in that environment. A return statement's payload
// becomes the call's result; falling off the end of the body yields nil.
func (f *function) Call(in *Interpreter, args []interface{}) (interface{}, error) {
	callEnv := NewEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		callEnv.Define(param.Lexeme, args[i])
	}

	err := in.executeBlock(f.declaration.Body, callEnv)
	if ret, ok := err.(*returnSignal); ok {
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	return nil, nil
}

func (f *function) String() string {
	return "<fn " + f.declaration.Name.Lexeme + ">"
}

// returnSignal is the non-local control transfer raised by a return
// statement. It implements error so it can flow through the ordinary
// execute()/evaluate() (value, error) channels, but it is unwrapped and
// consumed at the nearest enclosing function call boundary rather than
// reported: it is not an error and must never reach the CLI's error
// reporter.
type returnSignal struct {
	value interface{}
}

func (r *returnSignal) Error() string {
	return "uncaught return signal (internal interpreter bug)"
}
