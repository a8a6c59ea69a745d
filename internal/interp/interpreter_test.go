package interp_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glox-lang/glox/internal/interp"
	"github.com/glox-lang/glox/internal/parser"
	"github.com/glox-lang/glox/internal/report"
	"github.com/glox-lang/glox/internal/scanner"
)

// runProgram scans, parses, and interprets source, returning the
// captured stdout and stderr.
func runProgram(t *testing.T, source string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	reporter := report.New(&errBuf)

	toks := scanner.New(source, reporter).ScanTokens()
	stmts := parser.New(toks, reporter).Parse()
	require.False(t, reporter.HadError(), "unexpected parse error: %s", errBuf.String())

	interp.New(&outBuf, reporter).Interpret(stmts)
	return outBuf.String(), errBuf.String()
}

func TestArithmeticPrecedence(t *testing.T) {
	out, _ := runProgram(t, "print 1 + 2 * 3;")
	assert.Equal(t, "7\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, _ := runProgram(t, `let a = "hi"; print a + " " + "there";`)
	assert.Equal(t, "hi there\n", out)
}

func TestRecursiveFactorial(t *testing.T) {
	out, _ := runProgram(t, `
		function fact(n) {
			if (n <= 1) return 1;
			return n * fact(n - 1);
		}
		print fact(5);
	`)
	assert.Equal(t, "120\n", out)
}

func TestClosureCountersAreIndependent(t *testing.T) {
	out, _ := runProgram(t, `
		function mk() {
			let c = 0;
			function i() {
				c = c + 1;
				return c;
			}
			return i;
		}
		let k = mk();
		print k();
		print k();
		print k();
	`)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestTwoClosuresFromSameFactoryAreIndependent(t *testing.T) {
	out, _ := runProgram(t, `
		function mk() {
			let c = 0;
			function i() { c = c + 1; return c; }
			return i;
		}
		let k1 = mk();
		let k2 = mk();
		print k1();
		print k1();
		print k2();
	`)
	assert.Equal(t, "1\n2\n1\n", out)
}

func TestForLoopPrintsRange(t *testing.T) {
	out, _ := runProgram(t, "for (let i = 0; i < 3; i = i + 1) print i;")
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestForAndWhileEquivalence(t *testing.T) {
	forOut, _ := runProgram(t, "for (let i = 0; i < 3; i = i + 1) print i;")
	whileOut, _ := runProgram(t, `
		let i = 0;
		while (i < 3) {
			print i;
			i = i + 1;
		}
	`)
	assert.Equal(t, forOut, whileOut)
}

func TestDivisionByZeroReportsRuntimeErrorAndProducesNoStdout(t *testing.T) {
	out, errOut := runProgram(t, "print 1/0;")
	assert.Equal(t, "", out)
	assert.Contains(t, errOut, "Division by zero.")
	assert.Contains(t, errOut, "[line 1]")
}

func TestNumberFormattingStripsTrailingZero(t *testing.T) {
	out, _ := runProgram(t, "print 3.0; print 3.5;")
	assert.Equal(t, "3\n3.5\n", out)
}

func TestNilPrintsAsNilAndBooleansPrintAsWords(t *testing.T) {
	out, _ := runProgram(t, "print nil; print true; print false;")
	assert.Equal(t, "nil\ntrue\nfalse\n", out)
}

func TestTruthinessDoubleBangIsTrueExceptForNilAndFalse(t *testing.T) {
	out, _ := runProgram(t, `print !!nil; print !!false; print !!0; print !!""; print !!1;`)
	assert.Equal(t, "false\nfalse\ntrue\ntrue\ntrue\n", out)
}

func TestShortCircuitOrReturnsTruthyLeftOperand(t *testing.T) {
	out, _ := runProgram(t, `print 1 or 2;`)
	assert.Equal(t, "1\n", out)
}

func TestShortCircuitAndReturnsFalsyLeftOperand(t *testing.T) {
	out, _ := runProgram(t, `print false and 2;`)
	assert.Equal(t, "false\n", out)
}

func TestScopeShadowingDoesNotLeakOutOfBlock(t *testing.T) {
	out, _ := runProgram(t, `
		let x = "outer";
		{
			let x = "inner";
			print x;
		}
		print x;
	`)
	assert.Equal(t, "inner\nouter\n", out)
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, errOut := runProgram(t, "print missing;")
	assert.True(t, strings.Contains(errOut, "Undefined variable 'missing'."))
	assert.Contains(t, errOut, "[line 1]")
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	_, errOut := runProgram(t, `let x = 1; x();`)
	assert.Contains(t, errOut, "Can only call functions and classes.")
}

func TestArityMismatchIsRuntimeError(t *testing.T) {
	_, errOut := runProgram(t, `function f(a, b) { return a + b; } f(1);`)
	assert.Contains(t, errOut, "Expected 2 arguments but got 1.")
}

func TestPlusStringifiesNumberNextToString(t *testing.T) {
	out, _ := runProgram(t, `print "n=" + 4; print 4 + "!";`)
	assert.Equal(t, "n=4\n4!\n", out)
}

func TestPlusOfStringAndBooleanIsRuntimeError(t *testing.T) {
	_, errOut := runProgram(t, `print "x" + true;`)
	assert.Contains(t, errOut, "Operands must be two numbers or two strings.")
}

func TestArithmeticOnNonNumbersIsRuntimeError(t *testing.T) {
	_, errOut := runProgram(t, `print "a" * 2;`)
	assert.Contains(t, errOut, "Operands must be numbers.")
}

func TestComparisonOfMixedTypesIsRuntimeError(t *testing.T) {
	_, errOut := runProgram(t, `print 1 < "two";`)
	assert.Contains(t, errOut, "Operands must be numbers.")
}

func TestUnaryMinusOnNonNumberIsRuntimeError(t *testing.T) {
	_, errOut := runProgram(t, `print -"oops";`)
	assert.Contains(t, errOut, "Operand must be a number.")
}

func TestEqualityAcrossTypes(t *testing.T) {
	out, _ := runProgram(t, `print nil == nil; print nil == 0; print 1 == 1; print "a" == "a"; print 1 == "1";`)
	assert.Equal(t, "true\nfalse\ntrue\ntrue\nfalse\n", out)
}

func TestClockReturnsANumber(t *testing.T) {
	_, errOut := runProgram(t, `let t = clock(); print t > 0;`)
	assert.Empty(t, errOut)
}

func TestRuntimeErrorAbortsRemainingStatements(t *testing.T) {
	out, _ := runProgram(t, `print "before"; print 1/0; print "after";`)
	assert.Equal(t, "before\n", out, "execution must stop at the first runtime error")
}

func TestFunctionWithoutReturnYieldsNil(t *testing.T) {
	out, _ := runProgram(t, `function noop() {} print noop();`)
	assert.Equal(t, "nil\n", out)
}
