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

// Package match implements MeTTaTron's pattern matcher and unifier: one-
// directional Match for testing a candidate against a pattern, and
// bidirectional Unify for equating two possibly-variable-bearing terms.
// Value is a closed sum (no open term-kind extension point), so both
// algorithms collapse into a single recursive switch over Kind rather than
// needing double dispatch through an interface.
package match

import "github.com/f1r3fly-io/mettatron/internal/value"

// Match attempts to match pattern against candidate, threading bindings
// through env left-to-right. It returns the extended
// environment and true on success, or (nil, false) on failure. env may be
// nil, in which case a fresh environment is used.
func Match(pattern, candidate value.Value, env *value.Env) (*value.Env, bool) {
	if env == nil {
		env = value.NewEnv()
	}
	return matchInto(pattern, candidate, env)
}

func matchInto(p, c value.Value, env *value.Env) (*value.Env, bool) {
	// Errors never match -- they propagate, they do not unify.
	if p.IsError() || c.IsError() {
		return nil, false
	}

	if p.IsVariable() {
		if p.IsWildcard() {
			return env, true
		}
		if bound, ok := env.Lookup(p.Name()); ok {
			return matchInto(bound, c, env)
		}
		return env.Bind(p.Name(), c), true
	}

	if p.Kind() != c.Kind() {
		// A pattern variable is already handled above; any other cross-kind
		// pair fails, including matching against an unbound candidate
		// variable (candidate variables are opaque data here -- use Unify
		// for the bidirectional case).
		return nil, false
	}

	switch p.Kind() {
	case value.KindSExpr:
		pi, ci := p.Items(), c.Items()
		if len(pi) != len(ci) {
			return nil, false
		}
		for i := range pi {
			var ok bool
			env, ok = matchInto(pi[i], ci[i], env)
			if !ok {
				return nil, false
			}
		}
		return env, true
	default:
		if p.Equal(c) {
			return env, true
		}
		return nil, false
	}
}

// Unify extends Match to the case where both sides may contain variables
// (used for rule-vs-rule queries and for query(pattern) over non-ground
// facts). Two free variables occurring on opposite sides
// become equated: the first is bound to the second, which becomes their
// shared representative. The occurs check rejects a variable unifying with a structure
// that contains it.
func Unify(a, b value.Value, env *value.Env) (*value.Env, bool) {
	if env == nil {
		env = value.NewEnv()
	}
	return unify(a, b, env)
}

func unify(a, b value.Value, env *value.Env) (*value.Env, bool) {
	if a.IsError() || b.IsError() {
		return nil, false
	}
	a = resolve(a, env)
	b = resolve(b, env)

	aVar := a.IsVariable() && !a.IsWildcard()
	bVar := b.IsVariable() && !b.IsWildcard()

	switch {
	case a.IsWildcard() || b.IsWildcard():
		return env, true
	case aVar && bVar:
		if a.Name() == b.Name() && a.Sigil() == b.Sigil() {
			return env, true
		}
		return env.Bind(a.Name(), b), true
	case aVar:
		if occurs(a.Name(), b, env) {
			return nil, false
		}
		return env.Bind(a.Name(), b), true
	case bVar:
		if occurs(b.Name(), a, env) {
			return nil, false
		}
		return env.Bind(b.Name(), a), true
	case a.Kind() != b.Kind():
		return nil, false
	case a.Kind() == value.KindSExpr:
		ai, bi := a.Items(), b.Items()
		if len(ai) != len(bi) {
			return nil, false
		}
		for i := range ai {
			var ok bool
			env, ok = unify(ai[i], bi[i], env)
			if !ok {
				return nil, false
			}
		}
		return env, true
	default:
		if a.Equal(b) {
			return env, true
		}
		return nil, false
	}
}

// resolve follows variable bindings to a fixed point.
func resolve(v value.Value, env *value.Env) value.Value {
	for v.IsVariable() && !v.IsWildcard() {
		bound, ok := env.Lookup(v.Name())
		if !ok {
			return v
		}
		v = bound
	}
	return v
}

// occurs reports whether name occurs free within v (after resolving
// bindings), used by the occurs check during unification.
func occurs(name string, v value.Value, env *value.Env) bool {
	v = resolve(v, env)
	if v.IsVariable() && !v.IsWildcard() {
		return v.Name() == name
	}
	if v.IsSExpr() {
		for _, it := range v.Items() {
			if occurs(name, it, env) {
				return true
			}
		}
	}
	return false
}
