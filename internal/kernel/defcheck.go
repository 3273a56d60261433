package kernel

import "github.com/mm0kernel/verifier/internal/term"

// checkDef implements C4: validate a def body against its declared
// signature and dummy variables.
func checkDef(st *State, args []term.Binder, ret term.DepType, dummies []term.Bound, body term.Expr) error {
	ctx, err := buildContext(st, args, nil)
	if err != nil {
		return err
	}

	for _, d := range ret.Deps {
		b, ok := ctx.lookup(d)
		if !ok || !term.BinderIsBound(b) {
			return errf("SCP002", "return dependency %q is not a bound argument", d)
		}
	}

	retSort, ok := st.Sorts[ret.Sort]
	if !ok {
		return errf("SRT001", "unknown sort %q", ret.Sort)
	}
	if retSort.Pure {
		return errf("SRT003", "term returns pure sort %q", ret.Sort)
	}

	for _, dm := range dummies {
		sort, ok := st.Sorts[dm.Sort]
		if !ok {
			return errf("SRT001", "unknown sort %q", dm.Sort)
		}
		if sort.Strict {
			return errf("SRT002", "cannot bind dummy %q at strict sort %q", dm.VarName, dm.Sort)
		}
		if sort.Free {
			return errf("PRF005", "cannot introduce dummy %q at free sort %q", dm.VarName, dm.Sort)
		}
		if ctx.has(dm.VarName) {
			return errf("SCP001", "duplicate variable %q", dm.VarName)
		}
		ctx.insert(&term.Bound{VarName: dm.VarName, Sort: dm.Sort})
	}

	sort, free, err := depCheck(st, ctx, body)
	if err != nil {
		return err
	}
	if sort != ret.Sort {
		return errf("TYP003", "def body: expected sort %q, got %q", ret.Sort, sort)
	}
	allowed := depSetOf(ret.Deps)
	for v := range free {
		if !allowed[v] {
			return errf("SCP002", "def body depends on bound variable %q not listed in return dependencies", v)
		}
	}
	return nil
}
