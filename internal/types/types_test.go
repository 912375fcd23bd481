package types

import (
	"testing"

	"github.com/f1r3fly-io/mettatron/internal/kb"
	"github.com/f1r3fly-io/mettatron/internal/value"
	"github.com/stretchr/testify/require"
)

func TestGetTypeDefaultsToUniversal(t *testing.T) {
	k := kb.New(nil)
	ts := GetType(k, value.Sym("unannotated"))
	require.Len(t, ts, 1)
	require.True(t, ts[0].Equal(Universal()))
}

func TestCheckTypeEnforcementExample(t *testing.T) {
	k := kb.New(nil)
	arrow := value.SExpr(value.Sym("->"), value.Sym("Number"), value.Sym("Number"))
	k = k.AddType(value.Sym("square"), arrow)

	result, rejected := CheckApplication(k, "square", []value.Value{value.Str("hello")})
	require.True(t, rejected)
	require.True(t, result.IsError())
	require.Equal(t, "TypeMismatch", result.ErrMessage())
}

func TestCheckApplicationPassesForDeclaredNumberArg(t *testing.T) {
	k := kb.New(nil)
	arrow := value.SExpr(value.Sym("->"), value.Sym("Number"), value.Sym("Number"))
	k = k.AddType(value.Sym("square"), arrow)
	k = k.AddType(value.Int(1), value.Sym("Number"))

	_, rejected := CheckApplication(k, "square", []value.Value{value.Int(1)})
	require.False(t, rejected)
}
