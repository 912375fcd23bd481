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

// Package kb implements MeTTaTron's knowledge base: the fact trie, the
// head-key rule index, the type table, and the interned symbol table.
// Storage is structurally shared and copy-on-write, so KB.Clone is cheap
// and a clone's first mutation pays only for the branch it touches.
package kb

import (
	"github.com/f1r3fly-io/mettatron/internal/value"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// KB is one evaluator's knowledge base handle. Handles returned by Clone
// share underlying storage until one of them mutates, at which point only
// the mutated branch is copied.
type KB struct {
	id      uuid.UUID
	facts   *factTrie
	rules   *ruleIndex
	types   *typeTable
	symbols *interner // shared across every clone of one lineage; never cloned itself
	log     hclog.Logger
}

// New returns an empty KB. log may be nil, in which case a null logger is
// used -- library callers that don't care about diagnostics pay nothing.
func New(log hclog.Logger) *KB {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &KB{
		id:      uuid.New(),
		facts:   newFactTrie(),
		rules:   newRuleIndex(),
		types:   newTypeTable(),
		symbols: newInterner(),
		log:     log.Named("kb"),
	}
}

// ID returns this handle's identifier, used only for log correlation -- it
// is not part of the KB's equality or content.
func (k *KB) ID() uuid.UUID { return k.id }

// Clone returns an independent KB handle that shares storage with k via
// reference counting (ordinary Go references plus GC, see trie.go); a
// subsequent mutation on either handle copies only the branch it touches.
func (k *KB) Clone() *KB {
	clone := *k
	clone.id = uuid.New()
	k.log.Trace("cloned knowledge base", "parent", k.id, "child", clone.id)
	return &clone
}

// AddFact appends v to the fact trie. Idempotent: adding the same value
// twice leaves the KB structurally unchanged.
func (k *KB) AddFact(v value.Value) *KB {
	key := canonicalKey(v)
	if k.facts.has(key) {
		return k
	}
	next := *k
	next.facts = k.facts.insert(key, v)
	k.log.Trace("fact added", "kb", k.id, "fact", v.String())
	return &next
}

// AddRule appends the rule (lhs ⇒ rhs) to the rule set, updating the
// head-key index or wildcard bucket.
func (k *KB) AddRule(lhs, rhs value.Value) *KB {
	next := *k
	next.rules = k.rules.addRule(lhs, rhs)
	if name, arity, ok := headKeyFor(lhs); ok {
		k.symbols.Intern(name)
		k.log.Trace("rule added", "kb", k.id, "head", name, "arity", arity)
	} else {
		k.log.Trace("rule added to wildcard bucket", "kb", k.id, "lhs", lhs.String())
	}
	return &next
}

// AddType appends a type assertion for expr.
func (k *KB) AddType(expr, t value.Value) *KB {
	next := *k
	next.types = k.types.addType(expr, t)
	return &next
}

// CandidatesFor returns the rules registered for (head, arity), head-key
// matches first, then the wildcard bucket, in stable insertion order.
func (k *KB) CandidatesFor(head string, arity int) []*Rule {
	return k.rules.candidatesFor(head, arity)
}

// HasFact is the O(prefix-length) ground-fact membership test for ground v;
// for non-ground v it falls back to a matching query.
func (k *KB) HasFact(v value.Value) bool {
	if len(value.FreeVars(v, nil)) == 0 {
		if k.facts.has(groundKey(v)) {
			return true
		}
		// Prefix descent can miss ground facts whose canonical encoding
		// diverges only because of an upstream re-encoding round trip
		// fall back to a linear structural check.
		for _, f := range k.facts.all {
			if f.Equal(v) {
				return true
			}
		}
		return false
	}
	it := k.Query(v)
	_, ok := it.Next()
	return ok
}

// Match is one (fact, bindings) pair returned by Query.
type Match struct {
	Fact value.Value
	Env  *value.Env
}

// matchIterator is the lazy iterator returned by Query.
type matchIterator struct {
	pattern value.Value
	facts   []value.Value
	pos     int
}

// Next advances the iterator, returning the next (fact, bindings) pair that
// unifies with the pattern, or (_, false) when exhausted.
func (it *matchIterator) Next() (Match, bool) {
	for it.pos < len(it.facts) {
		f := it.facts[it.pos]
		it.pos++
		env, ok := matchFactAgainstPattern(it.pattern, f)
		if ok {
			return Match{Fact: f, Env: env}, true
		}
	}
	return Match{}, false
}

// All drains the iterator into a slice, for callers (e.g. the `match`
// special form) that want every result rather than streaming.
func (it *matchIterator) All() []Match {
	var out []Match
	for {
		m, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, m)
	}
}

// Query returns a lazy iterator of (matched-fact, bindings) pairs for
// pattern. A ground pattern descends the trie in O(pattern-depth) rather
// than scanning every fact; a pattern containing variables falls back to
// the linear unification scan, since the trie is keyed on exact canonical
// encoding and can't be indexed by a partially-bound shape.
func (k *KB) Query(pattern value.Value) *matchIterator {
	if len(value.FreeVars(pattern, nil)) == 0 {
		if fact, ok := k.facts.get(canonicalKey(pattern)); ok {
			return &matchIterator{pattern: pattern, facts: []value.Value{fact}}
		}
		// Prefix descent can miss ground facts whose canonical encoding
		// diverges only because of an upstream re-encoding round trip --
		// fall back to the linear scan rather than reporting no match.
		return &matchIterator{pattern: pattern, facts: k.facts.all}
	}
	return &matchIterator{pattern: pattern, facts: k.facts.all}
}

// GetType returns all declared types for expr (deduplicated); callers that
// also want inferred function types should consult package types instead,
// which layers that inference on top of this.
func (k *KB) GetType(expr value.Value) []value.Value {
	return k.types.typesFor(expr)
}

// KnownSymbol reports whether name has ever been interned (used as a rule
// head) in this KB's lineage.
func (k *KB) KnownSymbol(name string) bool { return k.symbols.Known(name) }

// Logger returns the KB's named logger, for components that extend it
// (driver, reducer) and want a child logger in the same hierarchy.
func (k *KB) Logger() hclog.Logger { return k.log }
