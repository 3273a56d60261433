package kernel

import (
	"github.com/mm0kernel/verifier/internal/term"
)

// buildContext implements C2: iterate binders in order, enforcing
// shadowing, sort-strictness and dependency-scope rules, extending start
// (which may be nil for an empty starting context).
func buildContext(st *State, binders []term.Binder, start *Context) (*Context, error) {
	ctx := newContext()
	if start != nil {
		ctx = start.Clone()
	}
	for _, b := range binders {
		name := term.BinderName(b)
		if ctx.has(name) {
			return nil, errf("SCP001", "duplicate variable %q", name)
		}
		switch v := b.(type) {
		case *term.Bound:
			sort, ok := st.Sorts[v.Sort]
			if !ok {
				return nil, errf("SRT001", "unknown sort %q", v.Sort)
			}
			if sort.Strict {
				return nil, errf("SRT002", "cannot bind variable %q at strict sort %q", name, v.Sort)
			}
			ctx.insert(v)
		case *term.Regular:
			if _, ok := st.Sorts[v.Type.Sort]; !ok {
				return nil, errf("SRT001", "unknown sort %q", v.Type.Sort)
			}
			for _, d := range v.Type.Deps {
				bd, ok := ctx.lookup(d)
				if !ok || !term.BinderIsBound(bd) {
					return nil, errf("SCP002", "unbound dependency %q in declaration of %q", d, name)
				}
			}
			ctx.insert(v)
		default:
			return nil, errf("INT001", "unknown binder variant")
		}
	}
	return ctx, nil
}
