package term

import "testing"

func TestEqualVar(t *testing.T) {
	a := &Var{Name: "x"}
	b := &Var{Name: "x"}
	c := &Var{Name: "y"}
	if !Equal(a, b) {
		t.Errorf("expected equal vars to compare equal")
	}
	if Equal(a, c) {
		t.Errorf("expected distinct vars to compare unequal")
	}
}

func TestEqualAppRecursesOverArgs(t *testing.T) {
	wffNot := func(e Expr) Expr { return &App{Term: "wn", Args: []Expr{e}} }
	a := wffNot(&Var{Name: "p"})
	b := wffNot(&Var{Name: "p"})
	c := wffNot(&Var{Name: "q"})

	if !Equal(a, b) {
		t.Errorf("expected structurally identical apps to compare equal")
	}
	if Equal(a, c) {
		t.Errorf("expected apps with different args to compare unequal")
	}
}

func TestEqualDifferentHeadOrArity(t *testing.T) {
	a := &App{Term: "wi", Args: []Expr{&Var{Name: "p"}, &Var{Name: "q"}}}
	b := &App{Term: "wi", Args: []Expr{&Var{Name: "p"}}}
	c := &App{Term: "wo", Args: []Expr{&Var{Name: "p"}, &Var{Name: "q"}}}

	if Equal(a, b) {
		t.Errorf("expected arity mismatch to compare unequal")
	}
	if Equal(a, c) {
		t.Errorf("expected head mismatch to compare unequal")
	}
}

func TestBinderAccessors(t *testing.T) {
	bound := &Bound{VarName: "ph", Sort: "wff"}
	reg := &Regular{VarName: "h", Type: DepType{Sort: "|-", Deps: []string{"ph"}}}

	if BinderName(bound) != "ph" || BinderSort(bound) != "wff" || !BinderIsBound(bound) {
		t.Errorf("unexpected accessor results for bound binder")
	}
	if BinderName(reg) != "h" || BinderSort(reg) != "|-" || BinderIsBound(reg) {
		t.Errorf("unexpected accessor results for regular binder")
	}
}

func TestTermDeclIsDef(t *testing.T) {
	opaque := &TermDecl{Name: "wff"}
	def := &TermDecl{Name: "wn", Def: &TermDef{Body: &Var{Name: "p"}}}

	if opaque.IsDef() {
		t.Errorf("expected opaque term to report IsDef() == false")
	}
	if !def.IsDef() {
		t.Errorf("expected definition to report IsDef() == true")
	}
}
