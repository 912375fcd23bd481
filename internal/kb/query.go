package kb

import (
	"github.com/f1r3fly-io/mettatron/internal/match"
	"github.com/f1r3fly-io/mettatron/internal/value"
)

// matchFactAgainstPattern unifies pattern against a stored fact. Facts may
// themselves carry variables (non-ground expressions added via ADD-mode),
// so full unification -- not one-directional matching -- is required here:
// a query over non-ground facts needs the bidirectional unifier, not the
// plain matcher.
func matchFactAgainstPattern(pattern, fact value.Value) (*value.Env, bool) {
	return match.Unify(pattern, fact, nil)
}
