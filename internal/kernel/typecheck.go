package kernel

import "github.com/mm0kernel/verifier/internal/term"

// varSet is a small string set, used throughout for free-variable and
// dependency bookkeeping.
type varSet map[string]bool

func unionSet(sets ...varSet) varSet {
	out := make(varSet)
	for _, s := range sets {
		for k := range s {
			out[k] = true
		}
	}
	return out
}

func singleton(name string) varSet { return varSet{name: true} }

// typecheck implements C3: assign a sort to an expression, and compute
// its boundness and free-variable set.
func typecheck(st *State, ctx *Context, e term.Expr) (sort string, isBound bool, free varSet, err error) {
	switch v := e.(type) {
	case *term.Var:
		b, ok := ctx.lookup(v.Name)
		if !ok {
			return "", false, nil, errf("TYP005", "undeclared variable %q", v.Name)
		}
		return term.BinderSort(b), term.BinderIsBound(b), singleton(v.Name), nil

	case *term.App:
		decl, ok := st.Terms[v.Term]
		if !ok {
			return "", false, nil, errf("TYP001", "unknown term %q", v.Term)
		}
		if len(v.Args) != len(decl.Args) {
			return "", false, nil, errf("TYP002", "term %q: expected %d arguments, got %d", v.Term, len(decl.Args), len(v.Args))
		}
		free = make(varSet)
		for i, argExpr := range v.Args {
			argBinder := decl.Args[i]
			s, bnd, f, err := typecheck(st, ctx, argExpr)
			if err != nil {
				return "", false, nil, err
			}
			if s != term.BinderSort(argBinder) {
				return "", false, nil, errf("TYP003", "term %q argument %d: expected sort %q, got %q", v.Term, i, term.BinderSort(argBinder), s)
			}
			if term.BinderIsBound(argBinder) && !bnd {
				return "", false, nil, errf("TYP004", "term %q argument %d: expected a bound variable in BV slot", v.Term, i)
			}
			free = unionSet(free, f)
		}
		return decl.Ret.Sort, false, free, nil

	default:
		return "", false, nil, errf("INT001", "unknown expression variant")
	}
}

// depCheck is the dependency-tracking typecheck used only by C4 (spec
// §4.4): it returns the sort and the set of bound variables in ctx that
// the expression may mention once fully unfolded.
func depCheck(st *State, ctx *Context, e term.Expr) (sort string, deps varSet, err error) {
	switch v := e.(type) {
	case *term.Var:
		b, ok := ctx.lookup(v.Name)
		if !ok {
			return "", nil, errf("TYP005", "undeclared variable %q", v.Name)
		}
		switch bv := b.(type) {
		case *term.Bound:
			return bv.Sort, singleton(v.Name), nil
		case *term.Regular:
			return bv.Type.Sort, depSetOf(bv.Type.Deps), nil
		}
		return "", nil, errf("INT001", "unknown binder variant")

	case *term.App:
		decl, ok := st.Terms[v.Term]
		if !ok {
			return "", nil, errf("TYP001", "unknown term %q", v.Term)
		}
		if len(v.Args) != len(decl.Args) {
			return "", nil, errf("TYP002", "term %q: expected %d arguments, got %d", v.Term, len(decl.Args), len(v.Args))
		}
		// parallelMap translates the callee's own Bound-parameter names to
		// the concrete variable names supplied at those positions in this call.
		parallelMap := make(map[string]string)
		result := make(varSet)
		for i, argExpr := range v.Args {
			argBinder := decl.Args[i]
			s, d, err := depCheck(st, ctx, argExpr)
			if err != nil {
				return "", nil, err
			}
			if s != term.BinderSort(argBinder) {
				return "", nil, errf("TYP003", "term %q argument %d: expected sort %q, got %q", v.Term, i, term.BinderSort(argBinder), s)
			}
			switch ab := argBinder.(type) {
			case *term.Bound:
				vv, ok := argExpr.(*term.Var)
				if !ok {
					return "", nil, errf("TYP004", "term %q argument %d: expected a bound variable in BV slot", v.Term, i)
				}
				parallelMap[ab.VarName] = vv.Name
			case *term.Regular:
				allowed := make(varSet)
				for _, dep := range ab.Type.Deps {
					if mapped, ok := parallelMap[dep]; ok {
						allowed[mapped] = true
					}
				}
				for dv := range d {
					if !allowed[dv] {
						result[dv] = true
					}
				}
			}
		}
		for _, dep := range decl.Ret.Deps {
			if mapped, ok := parallelMap[dep]; ok {
				result[mapped] = true
			}
		}
		return decl.Ret.Sort, result, nil

	default:
		return "", nil, errf("INT001", "unknown expression variant")
	}
}

func depSetOf(names []string) varSet {
	out := make(varSet)
	for _, n := range names {
		out[n] = true
	}
	return out
}
