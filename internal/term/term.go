// Package term defines the kernel's term algebra: sorts, binders,
// expressions, proof terms and conversion terms. It holds no logic beyond
// value construction, structural expression equality (Equal) and the
// small accessor set other components need (spec §4.1) — typechecking, definition/proof checking and conversion
// checking live in package kernel.
package term

import "fmt"

// Sort is a named carrier type with four independent attributes (spec §3).
type Sort struct {
	Name     string
	Pure     bool // no term may return this sort
	Strict   bool // no variable may be bound at this sort
	Provable bool // may appear as a theorem conclusion/hypothesis
	Free     bool // no dummy variable may be introduced at this sort
}

// DepType is a sort paired with the bound-variable dependency list a
// Regular binder (or a term's return type) is declared over.
type DepType struct {
	Sort string
	Deps []string
}

// Binder is the closed, two-variant union of bound and regular binders.
type Binder interface {
	binder()
}

// Bound is a first-class bound variable.
type Bound struct {
	VarName string
	Sort    string
}

func (*Bound) binder() {}

// Regular is an open term variable that may mention already-declared
// bound variables listed in Type.Deps.
type Regular struct {
	VarName string
	Type    DepType
}

func (*Regular) binder() {}

// BinderName returns the variable name of any binder.
func BinderName(b Binder) string {
	switch v := b.(type) {
	case *Bound:
		return v.VarName
	case *Regular:
		return v.VarName
	default:
		panic(fmt.Sprintf("term: unknown binder variant %T", b))
	}
}

// BinderSort returns the declared sort name of any binder.
func BinderSort(b Binder) string {
	switch v := b.(type) {
	case *Bound:
		return v.Sort
	case *Regular:
		return v.Type.Sort
	default:
		panic(fmt.Sprintf("term: unknown binder variant %T", b))
	}
}

// BinderIsBound reports whether b is a Bound binder.
func BinderIsBound(b Binder) bool {
	_, ok := b.(*Bound)
	return ok
}

// Expr is the closed, two-variant expression union.
type Expr interface {
	expr()
}

// Var references a variable visible in the current context.
type Var struct {
	Name string
}

func (*Var) expr() {}

// App applies a declared term to argument expressions.
type App struct {
	Term string
	Args []Expr
}

func (*App) expr() {}

// Equal decides structural equality between two expressions. It is the
// workhorse comparison invoked throughout proof and conversion checking
// (spec §9: "structural expression equality ... frequently invoked").
func Equal(a, b Expr) bool {
	switch av := a.(type) {
	case *Var:
		bv, ok := b.(*Var)
		return ok && av.Name == bv.Name
	case *App:
		bv, ok := b.(*App)
		if !ok || av.Term != bv.Term || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !Equal(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("term: unknown expr variant %T", a))
	}
}

// TermDef is the optional body of a term declaration.
type TermDef struct {
	Dummies []Bound
	Body    Expr
}

// TermDecl is a declared term constructor, optionally backed by a
// definition. Absence of Def marks it opaque.
type TermDecl struct {
	Name    string
	Args    []Binder
	Ret     DepType
	Def     *TermDef
}

// IsDef reports whether this term is a definition (has a body).
func (t *TermDecl) IsDef() bool { return t.Def != nil }

// Hyp is a named hypothesis. Hypotheses are named because a theorem's
// proof references them by name on the proof heap (PHyp); the name is
// local to the declaration, not part of the public calling convention
// (theorem application substitutes hypothesis subproofs positionally).
type Hyp struct {
	Name string
	Expr Expr
}

// ThmDecl is a declared theorem (or axiom, when verified without a proof
// obligation by the driver).
type ThmDecl struct {
	Name  string
	Args  []Binder
	Hyps  []Hyp
	Concl Expr
}

// Proof is the closed proof-term union (spec §3).
type Proof interface {
	proof()
}

// PHyp references a named subproof on the local heap.
type PHyp struct{ Name string }

func (*PHyp) proof() {}

// PThm applies a theorem with an explicit substitution and hypothesis subproofs.
type PThm struct {
	Thm  string
	Args []Expr
	Subs []Proof
}

func (*PThm) proof() {}

// PConv rewrites the conclusion of a subproof across a conversion witness.
type PConv struct {
	Target Expr
	Conv   Conv
	Proof  Proof
}

func (*PConv) proof() {}

// PLet binds a subproof on the heap for use by the continuation.
type PLet struct {
	Name  string
	Value Proof
	Body  Proof
}

func (*PLet) proof() {}

// PSorry is an incomplete-proof placeholder, rejected unconditionally.
type PSorry struct{}

func (*PSorry) proof() {}

// Conv is the closed conversion-term union (spec §3/§4.6).
type Conv interface {
	conv()
}

// CVar is reflexivity at a context variable.
type CVar struct{ Name string }

func (*CVar) conv() {}

// CApp is congruence: converting each argument of the same head term.
type CApp struct {
	Term string
	Args []Conv
}

func (*CApp) conv() {}

// CSym swaps the two sides of a conversion.
type CSym struct{ Conv Conv }

func (*CSym) conv() {}

// CUnfold expands a definition at the head position.
type CUnfold struct {
	Term    string
	Args    []Expr
	Dummies []string // fresh bound-variable names for the definition's dummies
	Conv    Conv
}

func (*CUnfold) conv() {}
