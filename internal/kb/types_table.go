package kb

import (
	"github.com/f1r3fly-io/mettatron/internal/value"
	"github.com/hashicorp/go-set/v3"
)

// typeTable holds declared type assertions installed by `(: expr type)`,
// keyed by the canonical encoding of expr. Like ruleIndex, it is immutable
// and copy-on-write at key granularity.
type typeTable struct {
	byExpr map[string][]value.Value
}

func newTypeTable() *typeTable {
	return &typeTable{byExpr: map[string][]value.Value{}}
}

func (tt *typeTable) addType(expr, t value.Value) *typeTable {
	key := canonicalKey(expr)
	next := &typeTable{byExpr: make(map[string][]value.Value, len(tt.byExpr))}
	for k, v := range tt.byExpr {
		next.byExpr[k] = v
	}
	old := tt.byExpr[key]
	grown := make([]value.Value, len(old)+1)
	copy(grown, old)
	grown[len(old)] = t
	next.byExpr[key] = grown
	return next
}

// typesFor returns the declared types for expr, deduplicated, in the order
// they were asserted. value.Value itself isn't comparable (it carries a
// slice field for SExpr items), so dedup keys off each type's canonical
// encoding in a go-set.Set[string] rather than off the values directly.
func (tt *typeTable) typesFor(expr value.Value) []value.Value {
	ts := tt.byExpr[canonicalKey(expr)]
	if len(ts) == 0 {
		return nil
	}
	seen := set.New[string](len(ts))
	out := make([]value.Value, 0, len(ts))
	for _, t := range ts {
		if seen.Insert(canonicalKey(t)) {
			out = append(out, t)
		}
	}
	return out
}
