package kernel

import (
	"testing"

	kerrors "github.com/mm0kernel/verifier/internal/errors"
	"github.com/mm0kernel/verifier/internal/term"
)

func boundArgs(sort string, names ...string) []term.Binder {
	out := make([]term.Binder, len(names))
	for i, n := range names {
		out[i] = &term.Bound{VarName: n, Sort: sort}
	}
	return out
}

func var_(name string) term.Expr { return &term.Var{Name: name} }

func TestRunAcceptsSortTermAndAxiom(t *testing.T) {
	env := Environment{Specs: []Spec{
		&SSort{Name: "wff", Sort: term.Sort{Name: "wff"}},
		&SSort{Name: "|-", Sort: term.Sort{Name: "|-", Provable: true}},
		&SDecl{Name: "wi", Kind: DTerm, Args: boundArgs("wff", "ph", "ps"), Ret: term.DepType{Sort: "|-", Deps: []string{"ph", "ps"}}},
		&SDecl{Name: "ax-1", Kind: DAxiom, Args: boundArgs("wff", "ph", "ps"), Concl: &term.App{Term: "wi", Args: []term.Expr{var_("ph"), var_("ps")}}},
	}}
	script := Script{Stmts: []Stmt{
		&StepSort{Name: "wff"},
		&StepSort{Name: "|-"},
		&StepTerm{Name: "wi"},
		&StepAxiom{Name: "ax-1"},
	}}

	result, err := Run(env, script, nil)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if !result.Ok() {
		t.Fatalf("expected clean accept, got diagnostics: %v", result.Diagnostics)
	}
	if result.Stats.Sorts != 2 || result.Stats.Terms != 1 || result.Stats.Theorems != 1 {
		t.Errorf("unexpected stats: %+v", result.Stats)
	}
}

func TestRunRejectsMismatchedStep(t *testing.T) {
	env := Environment{Specs: []Spec{
		&SSort{Name: "wff", Sort: term.Sort{Name: "wff"}},
	}}
	script := Script{Stmts: []Stmt{
		&StepTerm{Name: "wff"},
	}}

	_, err := Run(env, script, nil)
	if err == nil {
		t.Fatalf("expected a fatal shape error")
	}
	if got := err.Error(); got != "incorrect step 'term wff'" {
		t.Errorf("unexpected error message: %q", got)
	}
}

func TestRunNonStrictTheoremBypassesEnvironmentQueue(t *testing.T) {
	env := Environment{Specs: []Spec{
		&SSort{Name: "wff", Sort: term.Sort{Name: "wff"}},
		&SSort{Name: "|-", Sort: term.Sort{Name: "|-", Provable: true}},
		&SDecl{Name: "wi", Kind: DTerm, Args: boundArgs("wff", "ph", "ps"), Ret: term.DepType{Sort: "|-", Deps: []string{"ph", "ps"}}},
		&SDecl{Name: "ax-1", Kind: DAxiom, Args: boundArgs("wff", "ph", "ps"), Concl: &term.App{Term: "wi", Args: []term.Expr{var_("ph"), var_("ps")}}},
	}}
	script := Script{Stmts: []Stmt{
		&StepSort{Name: "wff"},
		&StepSort{Name: "|-"},
		&StepTerm{Name: "wi"},
		&StepAxiom{Name: "ax-1"},
		&StmtThm{
			Name:  "thm1",
			Args:  boundArgs("wff", "a", "b"),
			Concl: &term.App{Term: "wi", Args: []term.Expr{var_("a"), var_("b")}},
			Proof: &term.PThm{Thm: "ax-1", Args: []term.Expr{var_("a"), var_("b")}},
			Strict: false,
		},
	}}

	result, err := Run(env, script, nil)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if !result.Ok() {
		t.Fatalf("expected clean accept, got diagnostics: %v", result.Diagnostics)
	}
	if result.Stats.Theorems != 2 {
		t.Errorf("expected 2 theorems recorded, got %d", result.Stats.Theorems)
	}
}

func TestRunAccumulatesNonFatalDiagnostics(t *testing.T) {
	env := Environment{Specs: []Spec{
		&SSort{Name: "wff", Sort: term.Sort{Name: "wff"}},
		&SSort{Name: "wff", Sort: term.Sort{Name: "wff"}},
	}}
	script := Script{Stmts: []Stmt{
		&StepSort{Name: "wff"},
		&StepSort{Name: "wff"},
	}}

	result, err := Run(env, script, nil)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if result.Ok() {
		t.Fatalf("expected a duplicate-sort diagnostic, got clean accept")
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Code != "SCP001" {
		t.Errorf("unexpected diagnostics: %v", result.Diagnostics)
	}
}

func TestVerifyOutputStringEmitsBytes(t *testing.T) {
	st := NewState(Environment{})
	nib := func(name string) term.Expr { return &term.App{Term: name} }
	ch := func(hi, lo term.Expr) term.Expr { return &term.App{Term: "ch", Args: []term.Expr{hi, lo}} }
	s0 := &term.App{Term: "s0"}
	sadd := func(a, b term.Expr) term.Expr { return &term.App{Term: "sadd", Args: []term.Expr{a, b}} }
	s1 := func(b term.Expr) term.Expr { return &term.App{Term: "s1", Args: []term.Expr{b}} }

	expr := sadd(s1(ch(nib("xa"), nib("xb"))), s0)
	got, err := VerifyOutputString(st, expr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != 0xAB {
		t.Errorf("expected [0xAB], got %x", got)
	}
}

func TestVerifyInputStringDetectsMismatch(t *testing.T) {
	st := NewState(Environment{})
	nib := func(name string) term.Expr { return &term.App{Term: name} }
	ch := func(hi, lo term.Expr) term.Expr { return &term.App{Term: "ch", Args: []term.Expr{hi, lo}} }

	err := VerifyInputString(st, ch(nib("xa"), nib("xc")), []byte{0xAB})
	if err == nil {
		t.Fatalf("expected an input mismatch error")
	}
	rep, ok := kerrors.As(err)
	if !ok || rep.Code != "IO001" {
		t.Errorf("expected IO001, got %v", err)
	}
}
