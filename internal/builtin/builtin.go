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

// Package builtin implements MeTTaTron's grounded/built-in operations:
// arithmetic and comparison. Each gets first refusal on a head symbol
// before rule lookup is ever consulted for it, the same "grounded
// implementation runs before the database" dispatch order a custom
// equality predicate would need. Arithmetic's widening and error policy
// have no analog in an uninterpreted term language, so they're defined
// here from scratch.
package builtin

import "github.com/f1r3fly-io/mettatron/internal/value"

// Op is a grounded operation: given already-reduced argument values, it
// returns a result and true, or false when it doesn't apply. Every operator
// in Table applies to any arguments (a wrong argument count or kind yields
// an Error value), so rules installed for these heads are never reached.
type Op func(args []value.Value) (value.Value, bool)

// Table is the flat dispatch table, keyed by head symbol. It is consulted
// before rule lookup for the same head.
var Table = map[string]Op{
	"+":  arith(add),
	"-":  arith(sub),
	"*":  arith(mul),
	"/":  div,
	"<":  compare(func(c int) bool { return c < 0 }),
	"<=": compare(func(c int) bool { return c <= 0 }),
	">":  compare(func(c int) bool { return c > 0 }),
	">=": compare(func(c int) bool { return c >= 0 }),
	"==": equalOp,
	"!=": notEqualOp,
}

func isNumber(v value.Value) bool {
	return v.Kind() == value.KindInt || v.Kind() == value.KindFloat
}

func asFloat(v value.Value) float64 {
	if v.Kind() == value.KindInt {
		return float64(v.Int())
	}
	return v.Float()
}

// arith wraps a two-operand integer/float combinator with the shared arity
// and type checks for +, -, *. Integer-integer stays integer; any float
// operand widens to float. Wrapping on int64 overflow is Go's native
// behavior and is the chosen overflow policy here.
func arith(f func(a, b value.Value) value.Value) Op {
	return func(args []value.Value) (value.Value, bool) {
		if len(args) != 2 {
			return value.Err("ArityMismatch", value.Int(int64(len(args)))), true
		}
		if !isNumber(args[0]) || !isNumber(args[1]) {
			return value.Err("TypeMismatch", value.SExpr(args[0], args[1])), true
		}
		return f(args[0], args[1]), true
	}
}

func add(a, b value.Value) value.Value {
	if a.Kind() == value.KindInt && b.Kind() == value.KindInt {
		return value.Int(a.Int() + b.Int())
	}
	return value.Float(asFloat(a) + asFloat(b))
}

func sub(a, b value.Value) value.Value {
	if a.Kind() == value.KindInt && b.Kind() == value.KindInt {
		return value.Int(a.Int() - b.Int())
	}
	return value.Float(asFloat(a) - asFloat(b))
}

func mul(a, b value.Value) value.Value {
	if a.Kind() == value.KindInt && b.Kind() == value.KindInt {
		return value.Int(a.Int() * b.Int())
	}
	return value.Float(asFloat(a) * asFloat(b))
}

// div produces DivisionByZero on a zero divisor of either kind, else widens
// like the other arithmetic ops.
func div(args []value.Value) (value.Value, bool) {
	if len(args) != 2 {
		return value.Err("ArityMismatch", value.Int(int64(len(args)))), true
	}
	a, b := args[0], args[1]
	if !isNumber(a) || !isNumber(b) {
		return value.Err("TypeMismatch", value.SExpr(a, b)), true
	}
	if b.Kind() == value.KindInt && b.Int() == 0 {
		return value.Err("DivisionByZero", a), true
	}
	if b.Kind() == value.KindFloat && b.Float() == 0 {
		return value.Err("DivisionByZero", a), true
	}
	if a.Kind() == value.KindInt && b.Kind() == value.KindInt {
		return value.Int(a.Int() / b.Int()), true
	}
	return value.Float(asFloat(a) / asFloat(b)), true
}

// numCompare returns -1, 0, 1 for ordered numeric args, or a non-nil error
// signal when the kinds are incomparable.
func numCompare(a, b value.Value) (int, *value.Value) {
	if !isNumber(a) || !isNumber(b) {
		e := value.Err("TypeMismatch", value.SExpr(a, b))
		return 0, &e
	}
	fa, fb := asFloat(a), asFloat(b)
	switch {
	case fa < fb:
		return -1, nil
	case fa > fb:
		return 1, nil
	default:
		return 0, nil
	}
}

// compare wraps <, <=, >, >=: comparisons between incompatible kinds
// produce Error, not false.
func compare(pred func(c int) bool) Op {
	return func(args []value.Value) (value.Value, bool) {
		if len(args) != 2 {
			return value.Err("ArityMismatch", value.Int(int64(len(args)))), true
		}
		c, errv := numCompare(args[0], args[1])
		if errv != nil {
			return *errv, true
		}
		return value.Bool(pred(c)), true
	}
}

// equalOp implements structural ==, the sole way to compare composite
// values. Unlike the ordering operators it is defined for every kind
// pair, not just numbers.
func equalOp(args []value.Value) (value.Value, bool) {
	if len(args) != 2 {
		return value.Err("ArityMismatch", value.Int(int64(len(args)))), true
	}
	return value.Bool(args[0].Equal(args[1])), true
}

func notEqualOp(args []value.Value) (value.Value, bool) {
	if len(args) != 2 {
		return value.Err("ArityMismatch", value.Int(int64(len(args)))), true
	}
	return value.Bool(!args[0].Equal(args[1])), true
}

// Apply looks up head in the table and, if present, applies it to args.
// ok is false when head names no grounded operation at all (the reducer
// should then try rule lookup); ok is true whenever the table recognized
// head, even if the result is an Error.
func Apply(head string, args []value.Value) (value.Value, bool) {
	op, present := Table[head]
	if !present {
		return value.Value{}, false
	}
	return op(args)
}
