// Package report implements the shared error-reporting sink used across
// the scan, parse, and interpret passes: it tracks the hadError/
// hadRuntimeError flags and renders byte-exact diagnostic lines.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/glox-lang/glox/internal/token"
)

// Reporter collects scan/parse errors and runtime errors for one run of
// the interpreter, and exposes the two sticky flags the CLI uses to
// choose an exit code.
type Reporter struct {
	out io.Writer

	hadError        bool
	hadRuntimeError bool

	bold *color.Color
	red  *color.Color
}

// New returns a Reporter that writes diagnostics to w. Color is always
// disabled when w is not a terminal, so piped and redirected output
// carries no ANSI escapes. When w is a terminal, the color package's
// global setting decides, which turns color off when NO_COLOR is set or
// stdout is not a terminal.
func New(w io.Writer) *Reporter {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	if f, ok := w.(*os.File); !ok || !isTerminal(f) {
		bold.DisableColor()
		red.DisableColor()
	}
	return &Reporter{out: w, bold: bold, red: red}
}

// HadError reports whether any scan or parse error has occurred since
// the last Reset.
func (r *Reporter) HadError() bool { return r.hadError }

// HadRuntimeError reports whether a runtime error aborted the last
// interpret pass.
func (r *Reporter) HadRuntimeError() bool { return r.hadRuntimeError }

// Reset clears both sticky flags. The REPL calls this between lines so
// that one bad line doesn't poison subsequent ones.
func (r *Reporter) Reset() {
	r.hadError = false
	r.hadRuntimeError = false
}

// Error reports a scan or parse error with no specific token context.
func (r *Reporter) Error(line int, message string) {
	r.report(line, "", message)
}

// ErrorAt reports a scan or parse error located at tok: " at end" for
// EOF, " at '{lexeme}'" otherwise.
func (r *Reporter) ErrorAt(tok token.Token, message string) {
	if tok.Type == token.EOF {
		r.report(tok.Line, " at end", message)
	} else {
		r.report(tok.Line, " at '"+tok.Lexeme+"'", message)
	}
}

func (r *Reporter) report(line int, where, message string) {
	r.bold.Fprintf(r.out, "[line %d] Error%s: %s\n", line, where, message)
	r.hadError = true
}

// RuntimeError is a Go error carrying the token whose evaluation or
// execution triggered a runtime failure, for line reporting.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// NewRuntimeError constructs a RuntimeError located at tok.
func NewRuntimeError(tok token.Token, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// Runtime reports a RuntimeError as "{message}\n[line N]".
func (r *Reporter) Runtime(err *RuntimeError) {
	fmt.Fprintf(r.out, "%s\n", err.Message)
	r.red.Fprintf(r.out, "[line %d]\n", err.Token.Line)
	r.hadRuntimeError = true
}

func isTerminal(f *os.File) bool {
	return isattyTerminal(f.Fd())
}
