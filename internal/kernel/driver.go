// Package kernel implements the proof verifier kernel: C2 through C8 of
// the component design, wired together by the driver (C7). It is the
// trust boundary described in spec.md §1 — callers supply an
// Environment, a Script, and an input byte buffer, and get back either
// accepted output bytes or a list of diagnostics.
package kernel

import (
	kerrors "github.com/mm0kernel/verifier/internal/errors"
	"github.com/mm0kernel/verifier/internal/term"
)

// Result is what a successful (possibly diagnostic-bearing) run produces.
type Result struct {
	Outputs     [][]byte
	Diagnostics []*kerrors.Report
	Stats       Stats
}

// Ok reports whether the run is a clean accept: no diagnostics at all
// (spec §6: "success iff Ok and no diagnostics were accumulated").
func (r *Result) Ok() bool { return len(r.Diagnostics) == 0 }

// Run walks the script and environment in lockstep (C7) and returns the
// accumulated result, or a non-nil error for a fatal shape failure that
// aborts the whole run.
func Run(env Environment, script Script, input []byte) (*Result, error) {
	st := NewState(env)
	var diags []*kerrors.Report

	for _, stmt := range script.Stmts {
		err := dispatch(st, stmt, input)
		if err == nil {
			continue
		}
		rep, ok := kerrors.As(err)
		if !ok {
			rep = kerrors.New("INT001", err.Error())
		}
		if kerrors.IsFatal(rep.Code) {
			return nil, err
		}
		diags = append(diags, rep)
	}

	if st.remaining() {
		return nil, errf("SHP002", "not all theorems have been proven")
	}

	return &Result{Outputs: st.Output, Diagnostics: diags, Stats: st.Stats(len(diags))}, nil
}

// dispatch matches one script statement against the next environment
// spec and runs the appropriate checker (spec §4.7 table).
func dispatch(st *State, stmt Stmt, input []byte) error {
	switch s := stmt.(type) {
	case *StepSort:
		sp := st.popSpec()
		if sp == nil {
			return errf("SHP003", "nothing more to prove")
		}
		ss, ok := sp.(*SSort)
		if !ok || ss.Name != s.Name {
			return errf("SHP001", "incorrect step 'sort %s'", s.Name)
		}
		return withContext(s.Name, insertSort(st, ss))

	case *StepTerm:
		sp := st.popSpec()
		if sp == nil {
			return errf("SHP003", "nothing more to prove")
		}
		d, ok := sp.(*SDecl)
		if !ok || d.Kind != DTerm || d.Name != s.Name {
			return errf("SHP001", "incorrect step 'term %s'", s.Name)
		}
		return withContext(s.Name, insertOpaqueTerm(st, d))

	case *StepAxiom:
		sp := st.popSpec()
		if sp == nil {
			return errf("SHP003", "nothing more to prove")
		}
		d, ok := sp.(*SDecl)
		if !ok || d.Kind != DAxiom || d.Name != s.Name {
			return errf("SHP001", "incorrect step 'axiom %s'", s.Name)
		}
		return withContext(s.Name, insertAxiom(st, d))

	case *StmtDef:
		if s.Strict {
			sp := st.popSpec()
			if sp == nil {
				return errf("SHP003", "nothing more to prove")
			}
			d, ok := sp.(*SDecl)
			if !ok || d.Kind != DDef || d.Name != s.Name {
				return errf("SHP001", "incorrect step 'def %s'", s.Name)
			}
		}
		return withContext(s.Name, insertDef(st, s))

	case *StmtThm:
		if s.Strict {
			sp := st.popSpec()
			if sp == nil {
				return errf("SHP003", "nothing more to prove")
			}
			d, ok := sp.(*SDecl)
			if !ok || d.Kind != DThm || d.Name != s.Name {
				return errf("SHP001", "incorrect step 'theorem %s'", s.Name)
			}
		}
		return withContext(s.Name, insertThm(st, s))

	case *StepInout:
		sp := st.popSpec()
		if sp == nil {
			return errf("SHP003", "nothing more to prove")
		}
		io, ok := sp.(*SInout)
		if !ok || io.Dir != s.Dir {
			return errf("SHP001", "incorrect step 'inout'")
		}
		return withContext("inout", runInout(st, s, input))

	default:
		return errf("INT001", "unknown statement variant")
	}
}

func insertSort(st *State, ss *SSort) error {
	if _, dup := st.Sorts[ss.Name]; dup {
		return errf("SCP001", "duplicate sort %q", ss.Name)
	}
	sortVal := ss.Sort
	sortVal.Name = ss.Name
	st.Sorts[ss.Name] = &sortVal
	return nil
}

func insertOpaqueTerm(st *State, d *SDecl) error {
	ctx, err := buildContext(st, d.Args, nil)
	if err != nil {
		return err
	}
	for _, dep := range d.Ret.Deps {
		b, ok := ctx.lookup(dep)
		if !ok || !term.BinderIsBound(b) {
			return errf("SCP002", "return dependency %q is not a bound argument", dep)
		}
	}
	if _, ok := st.Sorts[d.Ret.Sort]; !ok {
		return errf("SRT001", "unknown sort %q", d.Ret.Sort)
	}
	if _, dup := st.Terms[d.Name]; dup {
		return errf("SCP001", "duplicate term %q", d.Name)
	}
	st.Terms[d.Name] = &term.TermDecl{Name: d.Name, Args: d.Args, Ret: d.Ret}
	return nil
}

func insertAxiom(st *State, d *SDecl) error {
	if _, err := checkHypsAndConcl(st, d.Args, d.Hyps, d.Concl); err != nil {
		return err
	}
	if _, dup := st.Thms[d.Name]; dup {
		return errf("SCP001", "duplicate theorem %q", d.Name)
	}
	st.Thms[d.Name] = &term.ThmDecl{Name: d.Name, Args: d.Args, Hyps: d.Hyps, Concl: d.Concl}
	return nil
}

func insertDef(st *State, s *StmtDef) error {
	if err := checkDef(st, s.Args, s.Ret, s.Dummies, s.Body); err != nil {
		return err
	}
	if _, dup := st.Terms[s.Name]; dup {
		return errf("SCP001", "duplicate term %q", s.Name)
	}
	st.Terms[s.Name] = &term.TermDecl{
		Name: s.Name,
		Args: s.Args,
		Ret:  s.Ret,
		Def:  &term.TermDef{Dummies: s.Dummies, Body: s.Body},
	}
	return nil
}

func insertThm(st *State, s *StmtThm) error {
	if _, err := checkTheorem(st, s.Args, s.Hyps, s.Concl, s.Dummies, s.Proof); err != nil {
		return err
	}
	if _, dup := st.Thms[s.Name]; dup {
		return errf("SCP001", "duplicate theorem %q", s.Name)
	}
	st.Thms[s.Name] = &term.ThmDecl{Name: s.Name, Args: s.Args, Hyps: s.Hyps, Concl: s.Concl}
	return nil
}

func runInout(st *State, s *StepInout, input []byte) error {
	if s.Dir {
		bytes, err := VerifyOutputString(st, s.Expr)
		if err != nil {
			return err
		}
		st.Output = append(st.Output, bytes)
		return nil
	}
	return VerifyInputString(st, s.Expr, input)
}
