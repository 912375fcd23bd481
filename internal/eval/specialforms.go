package eval

import (
	"context"

	"github.com/f1r3fly-io/mettatron/internal/kb"
	"github.com/f1r3fly-io/mettatron/internal/types"
	"github.com/f1r3fly-io/mettatron/internal/value"
)

// specialForm is a head dispatched before uniform applicative reduction; it
// receives the application's un-evaluated arguments and chooses its own
// evaluation strategy.
type specialForm func(ctx context.Context, r *Reducer, k *kb.KB, args []value.Value) ([]value.Value, *kb.KB)

// specialForms is the reserved, case-sensitive dispatch table. A Go map
// keyed on the head symbol gives O(1) lookup, already avoiding the linear
// string-comparison chain a hand-rolled dispatch would need.
var specialForms = map[string]specialForm{
	"=":         formEqualityRule,
	":":         formTypeAssertion,
	":<":        formSubtypeAssertion,
	"quote":     formQuote,
	"eval":      formEval,
	"if":        formIf,
	"error":     formError,
	"catch":     formCatch,
	"is-error":  formIsError,
	"get-type":  formGetType,
	"check-type": formCheckType,
	"match":     formMatch,
}

func formEqualityRule(_ context.Context, _ *Reducer, k *kb.KB, args []value.Value) ([]value.Value, *kb.KB) {
	if len(args) != 2 {
		return []value.Value{value.Errf("ArityMismatch: (= LHS RHS) takes 2 arguments, got %d", len(args))}, k
	}
	return nil, k.AddRule(args[0], args[1])
}

func formTypeAssertion(_ context.Context, _ *Reducer, k *kb.KB, args []value.Value) ([]value.Value, *kb.KB) {
	if len(args) != 2 {
		return []value.Value{value.Errf("ArityMismatch: (: EXPR TYPE) takes 2 arguments, got %d", len(args))}, k
	}
	return nil, k.AddType(args[0], args[1])
}

// formSubtypeAssertion implements `(:< Sub Super)` as a declarative subtype
// fact -- recorded for introspection via `match`, not folded into
// get-type/check-type's type lookup -- rather than silently aliasing `:`
// and losing the distinction a separate reserved symbol implies exists.
// See DESIGN.md.
func formSubtypeAssertion(_ context.Context, _ *Reducer, k *kb.KB, args []value.Value) ([]value.Value, *kb.KB) {
	if len(args) != 2 {
		return []value.Value{value.Errf("ArityMismatch: (:< Sub Super) takes 2 arguments, got %d", len(args))}, k
	}
	fact := value.SExpr(value.Sym(":<"), args[0], args[1])
	return nil, k.AddFact(fact)
}

func formQuote(_ context.Context, _ *Reducer, k *kb.KB, args []value.Value) ([]value.Value, *kb.KB) {
	if len(args) != 1 {
		return []value.Value{value.Errf("ArityMismatch: (quote E) takes 1 argument, got %d", len(args))}, k
	}
	return []value.Value{args[0]}, k
}

func formEval(ctx context.Context, r *Reducer, k *kb.KB, args []value.Value) ([]value.Value, *kb.KB) {
	if len(args) != 1 {
		return []value.Value{value.Errf("ArityMismatch: (eval E) takes 1 argument, got %d", len(args))}, k
	}
	// E is reduced, and each of its results is reduced again, so that
	// `(eval (quote E))` reduces exactly as E does.
	results, cur := r.Reduce(ctx, k, args[0])
	var out []value.Value
	for _, res := range results {
		sub, next := r.Reduce(ctx, cur, res)
		cur = next
		out = append(out, sub...)
	}
	return out, cur
}

func formIf(ctx context.Context, r *Reducer, k *kb.KB, args []value.Value) ([]value.Value, *kb.KB) {
	if len(args) != 3 {
		return []value.Value{value.Errf("ArityMismatch: (if C T F) takes 3 arguments, got %d", len(args))}, k
	}
	cond, thenE, elseE := args[0], args[1], args[2]
	condResults, cur := r.Reduce(ctx, k, cond)

	var out []value.Value
	for _, c := range condResults {
		switch {
		case c.IsError():
			out = append(out, c)
		case c.Kind() == value.KindBool && c.Bool():
			results, next := r.Reduce(ctx, cur, thenE)
			cur = next
			out = append(out, results...)
		case c.Kind() == value.KindBool && !c.Bool():
			results, next := r.Reduce(ctx, cur, elseE)
			cur = next
			out = append(out, results...)
		default:
			out = append(out, value.Err("TypeMismatch", c))
		}
	}
	return out, cur
}

// formError constructs a reified error without deep-evaluating its
// operands: each operand is reduced once and only its first alternative
// used, rather than fanning out across the Cartesian product the way a
// normal applicative argument would.
func formError(ctx context.Context, r *Reducer, k *kb.KB, args []value.Value) ([]value.Value, *kb.KB) {
	if len(args) != 2 {
		return []value.Value{value.Errf("ArityMismatch: (error MSG DETAIL) takes 2 arguments, got %d", len(args))}, k
	}
	msgResults, cur := r.Reduce(ctx, k, args[0])
	msg := args[0]
	if len(msgResults) > 0 {
		msg = msgResults[0]
	}
	detailResults, cur2 := r.Reduce(ctx, cur, args[1])
	detail := args[1]
	if len(detailResults) > 0 {
		detail = detailResults[0]
	}
	message := msg.Str()
	if msg.Kind() != value.KindString {
		message = msg.String()
	}
	return []value.Value{value.Err(message, detail)}, cur2
}

func formCatch(ctx context.Context, r *Reducer, k *kb.KB, args []value.Value) ([]value.Value, *kb.KB) {
	if len(args) != 2 {
		return []value.Value{value.Errf("ArityMismatch: (catch E DEFAULT) takes 2 arguments, got %d", len(args))}, k
	}
	results, cur := r.Reduce(ctx, k, args[0])
	for _, res := range results {
		if res.IsError() {
			return r.Reduce(ctx, cur, args[1])
		}
	}
	return results, cur
}

func formIsError(ctx context.Context, r *Reducer, k *kb.KB, args []value.Value) ([]value.Value, *kb.KB) {
	if len(args) != 1 {
		return []value.Value{value.Errf("ArityMismatch: (is-error E) takes 1 argument, got %d", len(args))}, k
	}
	results, cur := r.Reduce(ctx, k, args[0])
	out := make([]value.Value, len(results))
	for i, res := range results {
		out[i] = value.Bool(res.IsError())
	}
	return out, cur
}

func formGetType(ctx context.Context, r *Reducer, k *kb.KB, args []value.Value) ([]value.Value, *kb.KB) {
	if len(args) != 1 {
		return []value.Value{value.Errf("ArityMismatch: (get-type EXPR) takes 1 argument, got %d", len(args))}, k
	}
	results, cur := r.Reduce(ctx, k, args[0])
	var out []value.Value
	for _, res := range results {
		out = append(out, types.GetType(cur, res)...)
	}
	return out, cur
}

func formCheckType(ctx context.Context, r *Reducer, k *kb.KB, args []value.Value) ([]value.Value, *kb.KB) {
	if len(args) != 2 {
		return []value.Value{value.Errf("ArityMismatch: (check-type EXPR TYPE) takes 2 arguments, got %d", len(args))}, k
	}
	exprResults, cur := r.Reduce(ctx, k, args[0])
	typeResults, cur2 := r.Reduce(ctx, cur, args[1])
	typeVal := args[1]
	if len(typeResults) > 0 {
		typeVal = typeResults[0]
	}
	out := make([]value.Value, len(exprResults))
	for i, e := range exprResults {
		out[i] = value.Bool(types.CheckType(cur2, e, typeVal))
	}
	return out, cur2
}

// formMatch implements `(match SPACE PATTERN TEMPLATE)`. Only the current
// KB's own fact store ("&self") is supported as a space; other named spaces
// are an embedding-layer concept out of scope for this core. "&self" is
// accepted both as a symbol and as the shared variable `&self` that package
// reader produces for it.
func formMatch(ctx context.Context, r *Reducer, k *kb.KB, args []value.Value) ([]value.Value, *kb.KB) {
	if len(args) != 3 {
		return []value.Value{value.Errf("ArityMismatch: (match SPACE PATTERN TEMPLATE) takes 3 arguments, got %d", len(args))}, k
	}
	space, pattern, template := args[0], args[1], args[2]
	isSelf := (space.IsSymbol() && space.Name() == "&self") ||
		(space.IsVariable() && space.Sigil() == value.SigilShared && space.Name() == "self")
	if !isSelf {
		return []value.Value{value.Errf("TypeMismatch: unknown space %s", space.String())}, k
	}

	matches := k.Query(pattern).All()
	var out []value.Value
	cur := k
	for _, m := range matches {
		instantiated := value.Subst(template, m.Env)
		results, next := r.Reduce(ctx, cur, instantiated)
		cur = next
		out = append(out, results...)
	}
	return out, cur
}
