package driver

import (
	"context"
	"testing"

	"github.com/f1r3fly-io/mettatron/internal/value"
	"github.com/stretchr/testify/require"
)

func TestCompileInstallsRuleThenRunEvaluates(t *testing.T) {
	d := New(nil, 2)
	ctx := context.Background()

	x := value.Var("x", value.SigilBound)
	rule := value.SExpr(value.Sym("="),
		value.SExpr(value.Sym("double"), x),
		value.SExpr(value.Sym("+"), x, x))

	err := d.Compile(ctx, []value.Value{rule})
	require.NoError(t, err)

	results := d.Run(ctx, value.SExpr(value.Sym("!"),
		value.SExpr(value.Sym("double"), value.Int(21))))
	require.Len(t, results, 1)
	require.Equal(t, int64(42), results[0].Int())
}

func TestBangRequestsDoNotPolluteFacts(t *testing.T) {
	d := New(nil, 2)
	ctx := context.Background()

	d.Run(ctx, value.SExpr(value.Sym("!"),
		value.SExpr(value.Sym("+"), value.Int(1), value.Int(1))))

	snap := d.Snapshot()
	require.False(t, snap.HasFact(value.Int(2)))
}

func TestNonBangFormsAreAddedAsFacts(t *testing.T) {
	d := New(nil, 2)
	ctx := context.Background()

	fact := value.SExpr(value.Sym("leaf1"), value.Sym("leaf2"))
	d.Run(ctx, fact)

	snap := d.Snapshot()
	require.True(t, snap.HasFact(fact))
}

func TestCompileAccumulatesArityErrorsButKeepsGoing(t *testing.T) {
	d := New(nil, 2)
	ctx := context.Background()

	badRule := value.SExpr(value.Sym("="), value.Sym("only-one-arg"))
	goodFact := value.SExpr(value.Sym("leaf0"), value.Sym("leaf1"))

	err := d.Compile(ctx, []value.Value{badRule, goodFact})
	require.Error(t, err)

	snap := d.Snapshot()
	require.True(t, snap.HasFact(goodFact))
}

func TestRunConcurrentIsolatesSpeculativeFacts(t *testing.T) {
	d := New(nil, 4)
	ctx := context.Background()

	forms := []value.Value{
		value.SExpr(value.Sym("!"), value.SExpr(value.Sym("+"), value.Int(1), value.Int(2))),
		value.SExpr(value.Sym("!"), value.SExpr(value.Sym("+"), value.Int(10), value.Int(20))),
		value.SExpr(value.Sym("!"), value.SExpr(value.Sym("*"), value.Int(6), value.Int(7))),
	}
	results, err := d.RunConcurrent(ctx, forms)
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, int64(3), results[0][0].Int())
	require.Equal(t, int64(30), results[1][0].Int())
	require.Equal(t, int64(42), results[2][0].Int())

	snap := d.Snapshot()
	require.False(t, snap.HasFact(value.Int(3)))
}
