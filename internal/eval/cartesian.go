package eval

import "github.com/f1r3fly-io/mettatron/internal/value"

// cartesian returns every combination formed by choosing one element from
// each list, with the leftmost list varying slowest and the rightmost
// varying fastest -- ordinary nested-loop order. `(+ (a) (b))` with a() ∈
// {1,2} and b() ∈ {10,20} must yield [11, 21, 12, 22], i.e. a held fixed
// while b varies in the inner loop.
func cartesian(lists [][]value.Value) [][]value.Value {
	if len(lists) == 0 {
		return [][]value.Value{{}}
	}
	rest := cartesian(lists[1:])
	out := make([][]value.Value, 0, len(lists[0])*len(rest))
	for _, v := range lists[0] {
		for _, r := range rest {
			combo := make([]value.Value, 0, len(r)+1)
			combo = append(combo, v)
			combo = append(combo, r...)
			out = append(out, combo)
		}
	}
	return out
}
