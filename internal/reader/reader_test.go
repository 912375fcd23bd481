package reader

import (
	"testing"

	"github.com/f1r3fly-io/mettatron/internal/value"
	"github.com/stretchr/testify/require"
)

func TestReadsNestedSExpr(t *testing.T) {
	v, err := ReadOne(`(+ (a) (b))`)
	require.NoError(t, err)
	require.True(t, v.IsSExpr())
	require.Equal(t, 3, v.Len())
	require.Equal(t, "+", v.Items()[0].Name())
}

func TestReadsVariableSigils(t *testing.T) {
	forms, err := ReadAll(`$x &y 'z _`)
	require.NoError(t, err)
	require.Len(t, forms, 4)
	require.Equal(t, value.SigilBound, forms[0].Sigil())
	require.Equal(t, value.SigilShared, forms[1].Sigil())
	require.Equal(t, value.SigilQuoted, forms[2].Sigil())
	require.True(t, forms[3].IsWildcard())
}

func TestReadsLiteralsAndBangRequest(t *testing.T) {
	forms, err := ReadAll(`! (square "hello") 3 3.5 True `  + "`http://example.com`")
	require.NoError(t, err)
	require.Len(t, forms, 6)
	require.Equal(t, "!", forms[0].Name())
	require.Equal(t, value.KindString, forms[1].Items()[1].Kind())
	require.Equal(t, int64(3), forms[2].Int())
	require.Equal(t, 3.5, forms[3].Float())
}

func TestSkipsLineComments(t *testing.T) {
	forms, err := ReadAll("; a comment\n(foo 1)")
	require.NoError(t, err)
	require.Len(t, forms, 1)
}

func TestEmptyParensIsNil(t *testing.T) {
	v, err := ReadOne(`()`)
	require.NoError(t, err)
	require.Equal(t, value.KindNil, v.Kind())
}

func TestUnterminatedSExprIsError(t *testing.T) {
	_, err := ReadOne(`(foo 1`)
	require.Error(t, err)
}
