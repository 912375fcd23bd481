package kb

import (
	"testing"

	"github.com/f1r3fly-io/mettatron/internal/value"
	"github.com/stretchr/testify/require"
)

func TestAddFactIdempotent(t *testing.T) {
	k := New(nil)
	fact := value.SExpr(value.Sym("leaf1"), value.Sym("leaf2"))
	once := k.AddFact(fact)
	twice := once.AddFact(fact)
	require.Equal(t, once.facts.all, twice.facts.all)
	require.True(t, twice.HasFact(fact))
}

func TestHeadKeyIndexOrderIsStable(t *testing.T) {
	k := New(nil)
	lhs := value.SExpr(value.Sym("f"), value.Var("x", value.SigilBound))
	k = k.AddRule(lhs, value.Int(1))
	k = k.AddRule(lhs, value.Int(2))
	k = k.AddRule(lhs, value.Int(3))

	rules := k.CandidatesFor("f", 1)
	require.Len(t, rules, 3)
	require.Equal(t, int64(1), rules[0].RHS.Int())
	require.Equal(t, int64(2), rules[1].RHS.Int())
	require.Equal(t, int64(3), rules[2].RHS.Int())
}

func TestWildcardBucketForNonSymbolHead(t *testing.T) {
	k := New(nil)
	lhs := value.SExpr(value.Var("op", value.SigilBound), value.Int(1))
	k = k.AddRule(lhs, value.Sym("matched"))

	require.Len(t, k.CandidatesFor("anything", 1), 1)
	require.Len(t, k.rules.wildcard, 1)
}

func TestCloneIsIndependent(t *testing.T) {
	base := New(nil)
	base = base.AddFact(value.Sym("base-fact"))

	clone := base.Clone()
	clone = clone.AddFact(value.Sym("clone-only"))

	require.True(t, base.HasFact(value.Sym("base-fact")))
	require.False(t, base.HasFact(value.Sym("clone-only")))
	require.True(t, clone.HasFact(value.Sym("clone-only")))
}

func TestQueryUnifiesNonGroundFacts(t *testing.T) {
	k := New(nil)
	k = k.AddFact(value.SExpr(value.Sym("leaf1"), value.Sym("leaf2")))
	k = k.AddFact(value.SExpr(value.Sym("leaf0"), value.Sym("leaf1")))

	pattern := value.SExpr(value.Var("x", value.SigilBound), value.Sym("leaf2"))
	matches := k.Query(pattern).All()
	require.Len(t, matches, 1)
	x, ok := matches[0].Env.Lookup("x")
	require.True(t, ok)
	require.Equal(t, "leaf1", x.Name())
}

func TestGetTypeDeduplicates(t *testing.T) {
	k := New(nil)
	expr := value.Sym("square")
	numType := value.SExpr(value.Sym("->"), value.Sym("Number"), value.Sym("Number"))
	k = k.AddType(expr, numType)
	k = k.AddType(expr, numType)

	types := k.GetType(expr)
	require.Len(t, types, 1)
}
