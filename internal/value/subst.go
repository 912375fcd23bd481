package value

// Subst instantiates v by replacing every bound variable with its value from
// env. Variables absent from env are left as free variables in the result.
// Wildcards are never substituted (they never bind, so they should never
// appear on a rule RHS; if one does, it is left untouched).
func Subst(v Value, env *Env) Value {
	switch v.kind {
	case KindVariable:
		if v.sigil == SigilWild {
			return v
		}
		if bound, ok := env.Lookup(v.name); ok {
			return bound
		}
		return v
	case KindSExpr:
		items := make([]Value, len(v.items))
		changed := false
		for i, it := range v.items {
			s := Subst(it, env)
			items[i] = s
			if !changed && !s.Equal(it) {
				changed = true
			}
		}
		if !changed {
			return v
		}
		return Value{kind: KindSExpr, items: items}
	case KindError:
		return Err(v.name, Subst(v.ErrDetail(), env))
	default:
		return v
	}
}

// FreeVars appends every distinct bound/shared/quoted variable name occurring
// in v (wildcards excluded) to out, preserving first-occurrence order.
func FreeVars(v Value, out []string) []string {
	switch v.kind {
	case KindVariable:
		if v.sigil == SigilWild {
			return out
		}
		for _, n := range out {
			if n == v.name {
				return out
			}
		}
		return append(out, v.name)
	case KindSExpr:
		for _, it := range v.items {
			out = FreeVars(it, out)
		}
		return out
	case KindError:
		return FreeVars(v.ErrDetail(), out)
	default:
		return out
	}
}
