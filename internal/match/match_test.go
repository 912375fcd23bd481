package match

import (
	"testing"

	"github.com/f1r3fly-io/mettatron/internal/value"
	"github.com/stretchr/testify/require"
)

func TestMatchLiteralEquality(t *testing.T) {
	env, ok := Match(value.Int(1), value.Int(1), nil)
	require.True(t, ok)
	require.Equal(t, 0, env.Len())

	_, ok = Match(value.Int(1), value.Int(2), nil)
	require.False(t, ok)
}

func TestMatchWildcardNeverBinds(t *testing.T) {
	env, ok := Match(value.Wildcard(), value.SExpr(value.Sym("anything")), nil)
	require.True(t, ok)
	require.Equal(t, 0, env.Len())
}

func TestMatchRepeatedVariableEquality(t *testing.T) {
	pat := value.SExpr(value.Var("x", value.SigilBound), value.Var("x", value.SigilBound))
	_, ok := Match(pat, value.SExpr(value.Int(1), value.Int(1)), nil)
	require.True(t, ok)

	_, ok = Match(pat, value.SExpr(value.Int(1), value.Int(2)), nil)
	require.False(t, ok)
}

func TestMatchStructuralRecursion(t *testing.T) {
	pat := value.SExpr(value.Sym("f"), value.SExpr(value.Var("x", value.SigilBound), value.Sym("leaf")))
	cand := value.SExpr(value.Sym("f"), value.SExpr(value.Int(7), value.Sym("leaf")))
	env, ok := Match(pat, cand, nil)
	require.True(t, ok)
	v, ok := env.Lookup("x")
	require.True(t, ok)
	require.True(t, v.Equal(value.Int(7)))
}

func TestMatchErrorNeverMatches(t *testing.T) {
	_, ok := Match(value.Err("boom", value.NilVal()), value.Err("boom", value.NilVal()), nil)
	require.False(t, ok)
}

func TestWildcardIrrelevanceInvariant(t *testing.T) {
	// Replacing `_` with a freshly named variable that doesn't occur
	// elsewhere must yield the same match outcome.
	cand := value.SExpr(value.Sym("f"), value.Int(1), value.Int(2))
	withWild := value.SExpr(value.Sym("f"), value.Wildcard(), value.Var("y", value.SigilBound))
	withFresh := value.SExpr(value.Sym("f"), value.Var("fresh", value.SigilBound), value.Var("y", value.SigilBound))

	env1, ok1 := Match(withWild, cand, nil)
	env2, ok2 := Match(withFresh, cand, nil)
	require.Equal(t, ok1, ok2)
	require.True(t, ok1)
	y1, _ := env1.Lookup("y")
	y2, _ := env2.Lookup("y")
	require.True(t, y1.Equal(y2))
}

func TestUnifyOccursCheck(t *testing.T) {
	x := value.Var("x", value.SigilBound)
	structContainingX := value.SExpr(value.Sym("f"), x)
	_, ok := Unify(x, structContainingX, nil)
	require.False(t, ok)
}

func TestUnifyEquatesTwoFreeVariables(t *testing.T) {
	env, ok := Unify(value.Var("x", value.SigilBound), value.Var("y", value.SigilBound), nil)
	require.True(t, ok)
	require.Equal(t, 1, env.Len())
}
