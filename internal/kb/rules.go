package kb

import "github.com/f1r3fly-io/mettatron/internal/value"

// Rule is the installed pair (LHS, RHS) from an `(= LHS RHS)` form. Rules are
// append-only; once installed none is ever removed or edited.
type Rule struct {
	LHS   value.Value
	RHS   value.Value
	Order int // insertion sequence number, for stable ordering diagnostics
}

type headKey struct {
	head  string
	arity int
}

// headKeyFor extracts the (head-symbol, arity) key for a rule LHS. A bare
// symbol LHS (e.g. installed via `(= f 1)`) is treated as a nullary
// application, the same key a zero-argument SExpr `(f)` would use, so that
// the reducer's leaf case -- a symbol with no rule matching it as a nullary
// application -- can look it up uniformly.
func headKeyFor(lhs value.Value) (string, int, bool) {
	if lhs.IsSymbol() {
		return lhs.Name(), 0, true
	}
	return lhs.HeadSymbol()
}

// ruleIndex is the head-key rule index plus wildcard bucket: an
// O(1)-candidate-lookup structure keyed on (symbol, arity) rather than a
// byte-serialized pattern, since rule dispatch only ever needs to narrow
// down to "rules whose head is this symbol at this arity", not a full
// prefix trie over LHS shapes. It is immutable: addRule returns a new
// ruleIndex sharing every bucket except the one that grew, so KB.Clone()
// stays O(1) and only a subsequent mutation pays a small, single-bucket
// copy cost.
type ruleIndex struct {
	byHead   map[headKey][]*Rule
	wildcard []*Rule
	next     int
}

func newRuleIndex() *ruleIndex {
	return &ruleIndex{byHead: map[headKey][]*Rule{}}
}

// addRule installs r, choosing the head-key bucket when LHS has a head key
// (an SExpr with a symbol head, or a bare symbol; see headKeyFor), or the
// wildcard bucket otherwise -- the permissive choice
// for a non-symbol-head LHS: it's always installable, never an install
// error, just checked against every application the wildcard bucket sees.
func (ri *ruleIndex) addRule(lhs, rhs value.Value) *ruleIndex {
	r := &Rule{LHS: lhs, RHS: rhs, Order: ri.next}
	next := &ruleIndex{byHead: make(map[headKey][]*Rule, len(ri.byHead)), next: ri.next + 1}
	for k, v := range ri.byHead {
		next.byHead[k] = v
	}
	if name, arity, ok := headKeyFor(lhs); ok {
		k := headKey{name, arity}
		old := next.byHead[k]
		grown := make([]*Rule, len(old)+1)
		copy(grown, old)
		grown[len(old)] = r
		next.byHead[k] = grown
		next.wildcard = ri.wildcard
	} else {
		grown := make([]*Rule, len(ri.wildcard)+1)
		copy(grown, ri.wildcard)
		grown[len(ri.wildcard)] = r
		next.wildcard = grown
	}
	return next
}

// candidatesFor returns the rules registered for (head, arity), in stable
// insertion order, followed by the wildcard bucket (also in insertion
// order).
func (ri *ruleIndex) candidatesFor(head string, arity int) []*Rule {
	direct := ri.byHead[headKey{head, arity}]
	if len(ri.wildcard) == 0 {
		return direct
	}
	out := make([]*Rule, 0, len(direct)+len(ri.wildcard))
	out = append(out, direct...)
	out = append(out, ri.wildcard...)
	return out
}
