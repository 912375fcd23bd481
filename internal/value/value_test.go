package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqualStructural(t *testing.T) {
	a := SExpr(Sym("f"), Int(1), Str("x"))
	b := SExpr(Sym("f"), Int(1), Str("x"))
	require.True(t, a.Equal(b))

	c := SExpr(Sym("f"), Int(2), Str("x"))
	require.False(t, a.Equal(c))
}

func TestFloatNaNEqualByBitPattern(t *testing.T) {
	// Open Question (b): bit-pattern equality means NaN == NaN is true.
	nan := Float(math.NaN())
	require.True(t, nan.Equal(nan))
}

func TestWildcardNeverAppearsAsFreeVar(t *testing.T) {
	pat := SExpr(Wildcard(), Var("x", SigilBound))
	fv := FreeVars(pat, nil)
	require.Equal(t, []string{"x"}, fv)
}

func TestSubstLeavesUnboundVariablesFree(t *testing.T) {
	env := NewEnv()
	env.Bind("x", Int(42))
	pat := SExpr(Sym("f"), Var("x", SigilBound), Var("y", SigilBound))
	out := Subst(pat, env)
	require.Equal(t, "(f 42 $y)", out.String())
}

func TestHeadSymbolArity(t *testing.T) {
	v := SExpr(Sym("g"), Int(1), Int(2))
	name, arity, ok := v.HeadSymbol()
	require.True(t, ok)
	require.Equal(t, "g", name)
	require.Equal(t, 2, arity)
}
