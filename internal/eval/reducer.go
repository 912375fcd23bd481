// Copyright (c) 2014, Kevin Walsh. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package eval implements MeTTaTron's nondeterministic reducer: special-form
// dispatch, Cartesian-product applicative reduction, grounded-operation
// dispatch, and rule application. Each combination of reduced operator and
// arguments is tried in a fixed order -- grounded built-in first, then rule
// application, then an unresolved-construction fallback -- mirroring a
// "primitive predicate gets first refusal before the database" dispatch
// discipline.
package eval

import (
	"context"

	"github.com/f1r3fly-io/mettatron/internal/builtin"
	"github.com/f1r3fly-io/mettatron/internal/kb"
	"github.com/f1r3fly-io/mettatron/internal/match"
	"github.com/f1r3fly-io/mettatron/internal/types"
	"github.com/f1r3fly-io/mettatron/internal/value"
	"github.com/hashicorp/go-hclog"
)

// Reducer drives one reduction. It is stateless (no fields required by the
// algorithm itself) except for the logger, so a single Reducer may be
// shared across concurrently-reducing goroutines.
type Reducer struct {
	log hclog.Logger
}

// New returns a Reducer. log may be nil (a null logger is used).
func New(log hclog.Logger) *Reducer {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Reducer{log: log.Named("reducer")}
}

// cancelled polls ctx for cooperative cancellation at each recursive entry.
// On cancellation, the reduction unwinds producing a single
// Error result; the KB is not rolled back (facts already appended remain,
// an accepted consequence of append-only KB semantics).
func cancelled(ctx context.Context) (value.Value, bool) {
	select {
	case <-ctx.Done():
		return value.Err("Cancelled", value.NilVal()), true
	default:
		return value.Value{}, false
	}
}

// Reduce rewrites e under k, returning every alternative result and the KB
// as mutated by the reduction (rule/fact/type installs from nested `=`/`:`
// forms, and any unresolved-construction facts appended along the way).
func (r *Reducer) Reduce(ctx context.Context, k *kb.KB, e value.Value) ([]value.Value, *kb.KB) {
	if errv, yes := cancelled(ctx); yes {
		return []value.Value{errv}, k
	}

	switch e.Kind() {
	case value.KindError:
		// Error short-circuit: an Error reduces to itself.
		return []value.Value{e}, k
	case value.KindVariable:
		// Free variable: variables are values in their own right.
		return []value.Value{e}, k
	case value.KindSExpr:
		return r.reduceSExpr(ctx, k, e)
	default:
		// Literal leaf, or a bare symbol -- the latter may still be a
		// nullary rule application. Rule LHS for `(= (f) RHS)` is stored as
		// the 1-item SExpr `(f)`, not the bare symbol, so whole must be
		// reconstructed as an SExpr before matching against it.
		// A symbol that no candidate rule matches stays a leaf.
		if e.IsSymbol() {
			whole := value.SExpr(e)
			for _, rule := range k.CandidatesFor(e.Name(), 0) {
				if _, ok := match.Match(nullaryLHS(rule.LHS), whole, nil); ok {
					return r.applyCombination(ctx, k, e.Name(), 0, nil, whole)
				}
			}
		}
		return []value.Value{e}, k
	}
}

// nullaryLHS wraps a bare-symbol rule LHS (installed via `(= f RHS)`) as the
// 1-item SExpr `(f)`, the nullary application it is indexed under.
func nullaryLHS(lhs value.Value) value.Value {
	if lhs.IsSymbol() {
		return value.SExpr(lhs)
	}
	return lhs
}

func (r *Reducer) reduceSExpr(ctx context.Context, k *kb.KB, e value.Value) ([]value.Value, *kb.KB) {
	items := e.Items()
	if len(items) == 0 {
		// Empty SExpr `()` behaves like Nil: a leaf with no rule attached.
		return []value.Value{e}, k
	}

	if head, ok := e.Head(); ok && head.IsSymbol() {
		if form, isForm := specialForms[head.Name()]; isForm {
			return form(ctx, r, k, items[1:])
		}
		if len(items) == 1 {
			// Nullary application `(f)`: reducing the bare head would already
			// apply f's nullary rules, so the application is made directly
			// instead of applying them again to their own results.
			return r.applyCombination(ctx, k, head.Name(), 0, nil, e)
		}
	}

	return r.reduceApplicative(ctx, k, items)
}

// reduceApplicative reduces op and each argument, forms the Cartesian
// product of their result lists, and for every combination tries a
// grounded built-in, then rule application, then falls back to an
// unresolved construction.
func (r *Reducer) reduceApplicative(ctx context.Context, k *kb.KB, items []value.Value) ([]value.Value, *kb.KB) {
	lists := make([][]value.Value, len(items))
	cur := k
	for i, sub := range items {
		if errv, yes := cancelled(ctx); yes {
			return []value.Value{errv}, cur
		}
		results, next := r.Reduce(ctx, cur, sub)
		lists[i] = results
		cur = next
	}

	combos := cartesian(lists)
	var out []value.Value
	for _, combo := range combos {
		opVal := combo[0]
		args := combo[1:]

		// Error short-circuit per combination: if the operator or any
		// argument is (only) an Error, the whole combination contributes
		// that Error and nothing else.
		if opVal.IsError() {
			out = append(out, opVal)
			continue
		}
		errored := false
		for _, a := range args {
			if a.IsError() {
				out = append(out, a)
				errored = true
				break
			}
		}
		if errored {
			continue
		}

		whole := value.SExpr(combo...)
		var key string
		if opVal.IsSymbol() {
			key = opVal.Name()
		}
		results, next := r.applyCombination(ctx, cur, key, len(args), args, whole)
		cur = next
		out = append(out, results...)
	}
	return out, cur
}

// applyCombination handles one fully-reduced application `(key args...)`
// (or a bare nullary symbol, when args is nil and whole is the 1-item SExpr
// `(key)`):
// grounded built-in first, then type enforcement, then rule application,
// then the unresolved-construction fallback.
func (r *Reducer) applyCombination(ctx context.Context, k *kb.KB, key string, arity int, args []value.Value, whole value.Value) ([]value.Value, *kb.KB) {
	if key != "" {
		if result, applied := builtin.Apply(key, args); applied {
			return []value.Value{result}, k
		}
		if types.EnforcementEnabled() {
			if errv, rejected := types.CheckApplication(k, key, args); rejected {
				return []value.Value{errv}, k
			}
		}
	}

	candidates := k.CandidatesFor(key, arity)
	if len(candidates) > 0 {
		var results []value.Value
		cur := k
		matchedAny := false
		for _, rule := range candidates {
			if errv, yes := cancelled(ctx); yes {
				return []value.Value{errv}, cur
			}
			env, ok := match.Match(nullaryLHS(rule.LHS), whole, nil)
			if !ok {
				continue
			}
			matchedAny = true
			instantiated := value.Subst(rule.RHS, env)
			sub, next := r.Reduce(ctx, cur, instantiated)
			cur = next
			results = append(results, sub...)
		}
		if matchedAny {
			return results, cur
		}
	}

	// Unapplied construction: no built-in applied, no rule matched. This is
	// not an error -- the expression is its own value, and is appended to
	// the fact trie (top-level-append behavior).
	next := k.AddFact(whole)
	return []value.Value{whole}, next
}
