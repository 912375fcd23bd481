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

// Package types implements MeTTaTron's gradual, runtime-optional type
// system, layered on top of package kb's TypeTable.
package types

import (
	"github.com/f1r3fly-io/mettatron/internal/kb"
	"github.com/f1r3fly-io/mettatron/internal/value"
)

// Universal is the universal type, returned when an expression has no
// declared or inferable type -- absence of annotation never implies
// failure.
func Universal() value.Value { return value.Sym("%Any") }

// isArrow reports whether t has the `(-> A1 A2 ... R)` function-type shape.
func isArrow(t value.Value) bool {
	h, ok := t.Head()
	return ok && h.IsSymbol() && h.Name() == "->"
}

// intrinsicType returns the type literal values carry by virtue of their
// Kind alone, independent of any declared assertion. Without it, enforcement
// mode could never reject a literal of the wrong kind -- a bare, undeclared
// value would always read back as the universal type and trivially pass any
// check. This lets enforcement mode reject, say, a string argument passed
// where a declared function type expects a number, with no per-literal `:`
// declaration in play.
func intrinsicType(v value.Value) (value.Value, bool) {
	switch v.Kind() {
	case value.KindInt, value.KindFloat:
		return value.Sym("Number"), true
	case value.KindString:
		return value.Sym("String"), true
	case value.KindURI:
		return value.Sym("URI"), true
	case value.KindBool:
		return value.Sym("Bool"), true
	default:
		return value.Value{}, false
	}
}

// GetType answers get-type(expr): explicit assertions on expr, explicit
// assertions on head(expr) generalized into a function type when expr is an
// application, the intrinsic type of a literal, and the universal type when
// nothing else applies.
func GetType(k *kb.KB, expr value.Value) []value.Value {
	if direct := k.GetType(expr); len(direct) > 0 {
		return direct
	}
	if head, _, ok := expr.HeadSymbol(); ok {
		headTypes := k.GetType(value.Sym(head))
		if len(headTypes) > 0 {
			return headTypes
		}
	}
	if t, ok := intrinsicType(expr); ok {
		return []value.Value{t}
	}
	return []value.Value{Universal()}
}

// CheckType answers check-type(expr, T): true iff GetType(expr) contains a
// value structurally equal to T or equal to the universal type.
func CheckType(k *kb.KB, expr, t value.Value) bool {
	for _, candidate := range GetType(k, expr) {
		if candidate.Equal(t) || candidate.Equal(Universal()) {
			return true
		}
	}
	return false
}

// ArgType extracts the declared type of the i'th argument (0-indexed) from
// a `(-> A1 A2 ... R)` function type, used by enforcement mode. ok is false
// if t isn't an arrow type or i is out of range.
func ArgType(t value.Value, i int) (value.Value, bool) {
	if !isArrow(t) {
		return value.Value{}, false
	}
	items := t.Items()
	// items[0] is "->", items[1:len-1] are argument types, items[len-1] is
	// the result type.
	args := items[1 : len(items)-1]
	if i < 0 || i >= len(args) {
		return value.Value{}, false
	}
	return args[i], true
}

// CheckApplication enforces, when enabled, that each argument's inferred
// type matches the head's declared argument type. It returns a TypeMismatch Error describing the first
// offending argument, or (Value{}, false) when every argument checks out
// (or the head has no arrow type to check against).
func CheckApplication(k *kb.KB, head string, args []value.Value) (value.Value, bool) {
	headTypes := k.GetType(value.Sym(head))
	for _, ft := range headTypes {
		if !isArrow(ft) {
			continue
		}
		for i, arg := range args {
			argType, ok := ArgType(ft, i)
			if !ok {
				continue
			}
			if !CheckType(k, arg, argType) {
				detail := value.SExpr(value.Sym(head), value.Int(int64(i+1)), arg, argType)
				return value.Err("TypeMismatch", detail), true
			}
		}
	}
	return value.Value{}, false
}
