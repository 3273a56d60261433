package kernel

import "github.com/mm0kernel/verifier/internal/term"

// addDummies extends ctx in place with dummy variables, enforcing the
// same strict/free sort restrictions C4 applies (spec §8: "Dummy
// variable at a free or strict sort: rejected", applied uniformly to
// both def and theorem dummies).
func addDummies(st *State, ctx *Context, dummies []term.Bound) error {
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
	return nil
}

// checkHypsAndConcl builds the context for args and demands every
// hypothesis and the conclusion typecheck at a provable sort (spec
// §4.5 steps 1-2). It is shared by axiom insertion (no proof obligation)
// and theorem checking.
func checkHypsAndConcl(st *State, args []term.Binder, hyps []term.Hyp, concl term.Expr) (*Context, error) {
	ctx, err := buildContext(st, args, nil)
	if err != nil {
		return nil, err
	}
	for _, h := range hyps {
		sort, _, _, err := typecheck(st, ctx, h.Expr)
		if err != nil {
			return nil, err
		}
		if !st.Sorts[sort].Provable {
			return nil, errf("SRT004", "hypothesis %q: sort %q is not provable", h.Name, sort)
		}
	}
	sort, _, _, err := typecheck(st, ctx, concl)
	if err != nil {
		return nil, err
	}
	if !st.Sorts[sort].Provable {
		return nil, errf("SRT004", "conclusion: sort %q is not provable", sort)
	}
	return ctx, nil
}

// checkTheorem implements C5's entry point: validate a theorem's
// hypotheses/conclusion are well-sorted, then verify the supplied proof
// term against them.
func checkTheorem(st *State, args []term.Binder, hyps []term.Hyp, concl term.Expr, dummies []term.Bound, proof term.Proof) (term.Expr, error) {
	ctx, err := checkHypsAndConcl(st, args, hyps, concl)
	if err != nil {
		return nil, err
	}

	if err := addDummies(st, ctx, dummies); err != nil {
		return nil, err
	}

	heap := make(map[string]term.Expr, len(hyps))
	for _, h := range hyps {
		heap[h.Name] = h.Expr
	}

	result, err := verifyProof(st, ctx, heap, proof)
	if err != nil {
		return nil, err
	}
	if !term.Equal(result, concl) {
		return nil, errf("PRF004", "declared conclusion does not match verified result")
	}
	return result, nil
}

// verifyProof implements C5's proof-term interpreter (spec §4.5 table).
func verifyProof(st *State, ctx *Context, heap map[string]term.Expr, p term.Proof) (term.Expr, error) {
	switch pv := p.(type) {
	case *term.PHyp:
		e, ok := heap[pv.Name]
		if !ok {
			return nil, errf("SCP004", "no subproof named %q on the heap", pv.Name)
		}
		return e, nil

	case *term.PThm:
		thmDecl, ok := st.Thms[pv.Thm]
		if !ok {
			return nil, errf("TYP001", "unknown theorem %q", pv.Thm)
		}
		subst, err := verifyArgs(st, ctx, thmDecl.Args, pv.Args)
		if err != nil {
			return nil, err
		}
		if len(pv.Subs) != len(thmDecl.Hyps) {
			return nil, errf("PRF001", "theorem %q: expected %d hypothesis subproofs, got %d", pv.Thm, len(thmDecl.Hyps), len(pv.Subs))
		}
		for i, sub := range pv.Subs {
			got, err := verifyProof(st, ctx, heap, sub)
			if err != nil {
				return nil, err
			}
			want := substExpr(thmDecl.Hyps[i].Expr, subst)
			if !term.Equal(want, got) {
				return nil, errf("PRF001", "theorem %q: hypothesis %d proves the wrong statement", pv.Thm, i)
			}
		}
		return substExpr(thmDecl.Concl, subst), nil

	case *term.PConv:
		l, r, _, _, err := verifyConv(st, ctx, pv.Conv)
		if err != nil {
			return nil, err
		}
		got, err := verifyProof(st, ctx, heap, pv.Proof)
		if err != nil {
			return nil, err
		}
		if !term.Equal(l, pv.Target) || !term.Equal(r, got) {
			return nil, errf("PRF002", "conversion endpoints do not match target/subproof")
		}
		return pv.Target, nil

	case *term.PLet:
		e1, err := verifyProof(st, ctx, heap, pv.Value)
		if err != nil {
			return nil, err
		}
		if _, exists := heap[pv.Name]; exists {
			return nil, errf("SCP003", "heap name %q already bound", pv.Name)
		}
		newHeap := make(map[string]term.Expr, len(heap)+1)
		for k, v := range heap {
			newHeap[k] = v
		}
		newHeap[pv.Name] = e1
		return verifyProof(st, ctx, newHeap, pv.Body)

	case *term.PSorry:
		return nil, errf("PRF003", "incomplete proof (sorry)")

	default:
		return nil, errf("INT001", "unknown proof variant")
	}
}
