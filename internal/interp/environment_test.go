package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glox-lang/glox/internal/token"
)

func identTok(name string) token.Token {
	return token.New(token.Identifier, name, nil, 1)
}

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("x", 1.0)

	val, err := env.Get(identTok("x"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, val)
}

func TestEnvironmentGetUndefinedReturnsRuntimeError(t *testing.T) {
	env := NewEnvironment(nil)
	_, err := env.Get(identTok("missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable 'missing'.")
}

func TestEnvironmentInnerShadowsOuterWithoutMutatingIt(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", "outer")
	inner := NewEnvironment(outer)
	inner.Define("x", "inner")

	innerVal, err := inner.Get(identTok("x"))
	require.NoError(t, err)
	assert.Equal(t, "inner", innerVal)

	outerVal, err := outer.Get(identTok("x"))
	require.NoError(t, err)
	assert.Equal(t, "outer", outerVal, "declaring x in the inner scope must not affect the outer binding")
}

func TestEnvironmentAssignWalksToEnclosingScope(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("x", 1.0)
	inner := NewEnvironment(outer)

	require.NoError(t, inner.Assign(identTok("x"), 2.0))

	val, err := outer.Get(identTok("x"))
	require.NoError(t, err)
	assert.Equal(t, 2.0, val)
}

func TestEnvironmentAssignUndefinedReturnsRuntimeError(t *testing.T) {
	env := NewEnvironment(nil)
	err := env.Assign(identTok("missing"), 1.0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable 'missing'.")
}
