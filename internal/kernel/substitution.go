package kernel

import "github.com/mm0kernel/verifier/internal/term"

// substExpr replaces every Var named in m with its mapped expression.
// Names not present in m are left untouched (they are dummies or params
// that do not appear in this particular substitution's domain).
func substExpr(e term.Expr, m map[string]term.Expr) term.Expr {
	switch v := e.(type) {
	case *term.Var:
		if repl, ok := m[v.Name]; ok {
			return repl
		}
		return v
	case *term.App:
		args := make([]term.Expr, len(v.Args))
		for i, a := range v.Args {
			args[i] = substExpr(a, m)
		}
		return &term.App{Term: v.Term, Args: args}
	default:
		panic("kernel: unknown expression variant in substExpr")
	}
}

type argKind int

const (
	boundArg argKind = iota
	regularArg
)

type argRecord struct {
	kind      argKind
	paramName string  // Bound args only: the callee's own binder name
	concrete  string  // Bound args only: the variable name substituted in
	free      varSet  // all args: the substituted expression's free variables
}

// verifyArgs implements the substitution-construction half of C5 (spec
// §4.5): it folds over params/es left to right, typechecking each
// argument and enforcing the disjoint-variable side conditions, and
// returns the parameter-name -> argument-expression substitution.
//
// The length check below is the only arity check for theorem
// applications (PThm in verifyProof) and definition unfoldings (CUnfold
// in verifyConv): neither caller compares the argument count with the
// callee's binders before calling verifyArgs.
func verifyArgs(st *State, ctx *Context, params []term.Binder, es []term.Expr) (map[string]term.Expr, error) {
	if len(params) != len(es) {
		return nil, errf("TYP002", "expected %d arguments, got %d", len(params), len(es))
	}

	subst := make(map[string]term.Expr, len(params))
	var history []argRecord

	for i, param := range params {
		e := es[i]
		sort, isBound, free, err := typecheck(st, ctx, e)
		if err != nil {
			return nil, err
		}
		if sort != term.BinderSort(param) {
			return nil, errf("TYP003", "argument %d: expected sort %q, got %q", i, term.BinderSort(param), sort)
		}

		switch p := param.(type) {
		case *term.Bound:
			if !isBound {
				return nil, errf("TYP004", "argument %d: expected a bound variable in BV slot", i)
			}
			v, ok := e.(*term.Var)
			if !ok {
				return nil, errf("TYP004", "argument %d: expected a bound variable in BV slot", i)
			}
			for _, h := range history {
				if h.kind == regularArg && h.free[v.Name] {
					return nil, errf("DV002", "variable %q would be captured by an earlier regular argument", v.Name)
				}
			}
			history = append(history, argRecord{kind: boundArg, paramName: p.VarName, concrete: v.Name, free: free})

		case *term.Regular:
			allowed := depSetOf(p.Type.Deps)
			for _, h := range history {
				if h.kind == boundArg && !allowed[h.paramName] && free[h.concrete] {
					return nil, errf("DV001", "disjoint variable violation: %q occurs free in an argument not declared to depend on it", h.concrete)
				}
			}
			history = append(history, argRecord{kind: regularArg, free: free})
		}

		subst[term.BinderName(param)] = e
	}

	return subst, nil
}
