package kernel

import "github.com/mm0kernel/verifier/internal/term"

// verifyConv implements C6: decide definitional equality between two
// expressions via reflexivity, symmetry, congruence and unfolding (spec
// §4.6). It returns the two sides, the shared sort, and whether both
// sides are bound-variable references.
func verifyConv(st *State, ctx *Context, c term.Conv) (lhs, rhs term.Expr, sort string, isBound bool, err error) {
	switch cv := c.(type) {
	case *term.CVar:
		b, ok := ctx.lookup(cv.Name)
		if !ok {
			return nil, nil, "", false, errf("TYP005", "undeclared variable %q", cv.Name)
		}
		v := &term.Var{Name: cv.Name}
		return v, v, term.BinderSort(b), term.BinderIsBound(b), nil

	case *term.CApp:
		decl, ok := st.Terms[cv.Term]
		if !ok {
			return nil, nil, "", false, errf("TYP001", "unknown term %q", cv.Term)
		}
		if len(cv.Args) != len(decl.Args) {
			return nil, nil, "", false, errf("TYP002", "term %q: expected %d arguments, got %d", cv.Term, len(decl.Args), len(cv.Args))
		}
		ls := make([]term.Expr, len(cv.Args))
		rs := make([]term.Expr, len(cv.Args))
		for i, sub := range cv.Args {
			l, r, s, b, err := verifyConv(st, ctx, sub)
			if err != nil {
				return nil, nil, "", false, err
			}
			if s != term.BinderSort(decl.Args[i]) {
				return nil, nil, "", false, errf("TYP003", "term %q argument %d: expected sort %q, got %q", cv.Term, i, term.BinderSort(decl.Args[i]), s)
			}
			if term.BinderIsBound(decl.Args[i]) && !b {
				return nil, nil, "", false, errf("TYP004", "term %q argument %d: expected a bound variable in BV slot", cv.Term, i)
			}
			ls[i], rs[i] = l, r
		}
		return &term.App{Term: cv.Term, Args: ls}, &term.App{Term: cv.Term, Args: rs}, decl.Ret.Sort, false, nil

	case *term.CSym:
		l, r, s, b, err := verifyConv(st, ctx, cv.Conv)
		if err != nil {
			return nil, nil, "", false, err
		}
		return r, l, s, b, nil

	case *term.CUnfold:
		decl, ok := st.Terms[cv.Term]
		if !ok {
			return nil, nil, "", false, errf("TYP001", "unknown term %q", cv.Term)
		}
		if !decl.IsDef() {
			return nil, nil, "", false, errf("TYP003", "term %q is not a definition and cannot be unfolded", cv.Term)
		}
		if len(cv.Dummies) != len(decl.Def.Dummies) {
			return nil, nil, "", false, errf("TYP002", "term %q: expected %d dummy variables, got %d", cv.Term, len(decl.Def.Dummies), len(cv.Dummies))
		}
		subst, err := verifyArgs(st, ctx, decl.Args, cv.Args)
		if err != nil {
			return nil, nil, "", false, err
		}
		for i, dm := range decl.Def.Dummies {
			subst[dm.VarName] = &term.Var{Name: cv.Dummies[i]}
		}
		l, r, s, b, err := verifyConv(st, ctx, cv.Conv)
		if err != nil {
			return nil, nil, "", false, err
		}
		expected := substExpr(decl.Def.Body, subst)
		if !term.Equal(l, expected) {
			return nil, nil, "", false, errf("PRF002", "unfolding %q: left side does not match substituted definition body", cv.Term)
		}
		return &term.App{Term: cv.Term, Args: cv.Args}, r, s, b, nil

	default:
		return nil, nil, "", false, errf("INT001", "unknown conversion variant")
	}
}
