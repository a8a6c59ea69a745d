package interp

// Callable is the capability set shared by native built-ins and
// user-defined functions.
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []interface{}) (interface{}, error)
	String() string
}
