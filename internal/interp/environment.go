package interp

import (
	"github.com/glox-lang/glox/internal/report"
	"github.com/glox-lang/glox/internal/token"
)

// Environment is a mapping from identifier strings to runtime values
// plus an optional parent pointer, forming the lexical scope chain.
// A closure holds a strong reference to the Environment active when
// its function was declared; ordinary Go
// garbage collection reclaims an Environment once nothing (no live
// closure, no active call frame) still points to it, including across
// the reference cycles a closure that stores itself creates.
type Environment struct {
	enclosing *Environment
	values    map[string]interface{}
}

// NewEnvironment returns a child scope of enclosing, or a fresh global
// scope when enclosing is nil.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{enclosing: enclosing, values: make(map[string]interface{})}
}

// Define unconditionally binds name to val in this scope. Redefining an
// existing name in the same scope silently overwrites it.
func (e *Environment) Define(name string, val interface{}) {
	e.values[name] = val
}

// Get searches this scope then the parent chain for name, returning a
// RuntimeError if it's never bound.
func (e *Environment) Get(name token.Token) (interface{}, error) {
	if val, ok := e.values[name.Lexeme]; ok {
		return val, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, report.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// Assign searches this scope then the parent chain for name, overwriting
// the innermost occurrence. It returns a RuntimeError if name is never
// bound anywhere in the chain.
func (e *Environment) Assign(name token.Token, val interface{}) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = val
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, val)
	}
	return report.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}
