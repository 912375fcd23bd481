package builtin

import (
	"testing"

	"github.com/f1r3fly-io/mettatron/internal/value"
	"github.com/stretchr/testify/require"
)

func TestArithmeticIntegerStaysInteger(t *testing.T) {
	r, ok := Apply("+", []value.Value{value.Int(2), value.Int(3)})
	require.True(t, ok)
	require.Equal(t, value.KindInt, r.Kind())
	require.Equal(t, int64(5), r.Int())
}

func TestArithmeticWidensToFloat(t *testing.T) {
	r, ok := Apply("*", []value.Value{value.Int(2), value.Float(1.5)})
	require.True(t, ok)
	require.Equal(t, value.KindFloat, r.Kind())
	require.Equal(t, 3.0, r.Float())
}

func TestDivisionByZeroIsError(t *testing.T) {
	r, ok := Apply("/", []value.Value{value.Int(1), value.Int(0)})
	require.True(t, ok)
	require.True(t, r.IsError())
	require.Equal(t, "DivisionByZero", r.ErrMessage())
}

func TestComparisonIncompatibleKindsIsError(t *testing.T) {
	r, ok := Apply("<", []value.Value{value.Int(1), value.Str("x")})
	require.True(t, ok)
	require.True(t, r.IsError())
}

func TestEqualityIsStructural(t *testing.T) {
	a := value.SExpr(value.Sym("f"), value.Int(1))
	b := value.SExpr(value.Sym("f"), value.Int(1))
	r, ok := Apply("==", []value.Value{a, b})
	require.True(t, ok)
	require.True(t, r.Bool())
}

func TestUnknownHeadFallsThrough(t *testing.T) {
	_, ok := Apply("frobnicate", []value.Value{value.Int(1)})
	require.False(t, ok)
}
