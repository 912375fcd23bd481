package kb

import (
	"strconv"
	"strings"

	"github.com/f1r3fly-io/mettatron/internal/value"
)

// canonicalKey produces a variant-tag style serialization of v: variables
// are renamed to positional de Bruijn tokens ("v<sigil>_0", "v<sigil>_1",
// ...) in first-occurrence order, so two alpha-equivalent expressions produce an
// identical key and therefore share trie storage.
func canonicalKey(v value.Value) string {
	var sb strings.Builder
	writeCanonical(&sb, v, make(map[string]int))
	return sb.String()
}

func writeCanonical(sb *strings.Builder, v value.Value, varNum map[string]int) {
	switch v.Kind() {
	case value.KindSymbol:
		sb.WriteString("s:")
		sb.WriteString(v.Name())
	case value.KindVariable:
		if v.IsWildcard() {
			sb.WriteString("w")
			return
		}
		num, ok := varNum[v.Name()]
		if !ok {
			num = len(varNum)
			varNum[v.Name()] = num
		}
		sb.WriteString("v")
		sb.WriteString(strconv.Itoa(int(v.Sigil())))
		sb.WriteString("_")
		sb.WriteString(strconv.Itoa(num))
	case value.KindInt:
		sb.WriteString("i:")
		sb.WriteString(strconv.FormatInt(v.Int(), 10))
	case value.KindFloat:
		sb.WriteString("f:")
		sb.WriteString(strconv.FormatFloat(v.Float(), 'b', -1, 64))
	case value.KindBool:
		if v.Bool() {
			sb.WriteString("b:1")
		} else {
			sb.WriteString("b:0")
		}
	case value.KindString:
		sb.WriteString("S:")
		sb.WriteString(strconv.Quote(v.Str()))
	case value.KindURI:
		sb.WriteString("U:")
		sb.WriteString(strconv.Quote(v.Str()))
	case value.KindNil:
		sb.WriteString("n")
	case value.KindSExpr:
		sb.WriteString("(")
		for i, it := range v.Items() {
			if i > 0 {
				sb.WriteString(",")
			}
			writeCanonical(sb, it, varNum)
		}
		sb.WriteString(")")
	case value.KindError:
		sb.WriteString("e:")
		sb.WriteString(strconv.Quote(v.ErrMessage()))
		sb.WriteString(";")
		writeCanonical(sb, v.ErrDetail(), varNum)
	}
}

// groundKey is a cheaper key usable only for ground (variable-free) values,
// used by the has-fact prefix fast path. It is identical to canonicalKey for
// ground values (no variables means no renaming ambiguity) but is named
// separately so call sites document their groundness assumption.
func groundKey(v value.Value) string { return canonicalKey(v) }
