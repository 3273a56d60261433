package kernel

import "github.com/mm0kernel/verifier/internal/term"

// Spec is one item of the environment's ordered declaration stream
// (spec §6: "an ordered list of specifications").
type Spec interface {
	spec()
}

// SSort declares a sort.
type SSort struct {
	Name string
	Sort term.Sort
}

func (*SSort) spec() {}

// DeclKind distinguishes the four declaration shapes a SDecl may carry.
type DeclKind int

const (
	DTerm DeclKind = iota
	DAxiom
	DDef
	DThm
)

// SDecl declares an opaque term, an axiom, a definition, or a theorem.
type SDecl struct {
	Name    string
	Kind    DeclKind
	Args    []term.Binder
	Ret     term.DepType // terms/defs
	Dummies []term.Bound // defs
	Body    term.Expr    // defs
	Hyps    []term.Hyp   // axioms/theorems
	Concl   term.Expr    // axioms/theorems
}

// SInout declares an input/output-string verification point.
type SInout struct {
	Dir  bool // true = output, false = input
	Expr term.Expr
}

func (*SInout) spec() {}
func (*SDecl) spec()  {}

// Environment is the immutable, ordered declaration stream consumed by
// the driver, which walks Specs positionally. It carries no name-indexed
// lookup tables; lookups by name go through State's Sorts/Terms/Thms
// tables, which the driver fills as each declaration is accepted.
type Environment struct {
	Specs []Spec
}

// Stmt is one step of the proof script (spec §3, §4.7).
type Stmt interface {
	stmt()
}

// StepSort matches an SSort.
type StepSort struct{ Name string }

func (*StepSort) stmt() {}

// StepTerm matches an SDecl{Kind: DTerm}.
type StepTerm struct{ Name string }

func (*StepTerm) stmt() {}

// StepAxiom matches an SDecl{Kind: DAxiom}.
type StepAxiom struct{ Name string }

func (*StepAxiom) stmt() {}

// StmtDef carries a full definition to check. When Strict is true it must
// also consume a matching SDecl{Kind: DDef} from the environment queue;
// when false, the environment spec for this definition is skipped
// entirely and the body is trusted without being cross-checked against a
// declared counterpart (spec §9 Open Question — implemented verbatim).
type StmtDef struct {
	Name    string
	Args    []term.Binder
	Ret     term.DepType
	Dummies []term.Bound
	Body    term.Expr
	Strict  bool
}

func (*StmtDef) stmt() {}

// StmtThm carries a full theorem (with proof) to check. Strict has the
// same meaning as for StmtDef, matched against SThm-shaped environment
// entries (here: SDecl{Kind: DThm}).
type StmtThm struct {
	Name    string
	Args    []term.Binder
	Hyps    []term.Hyp
	Concl   term.Expr
	Dummies []term.Bound
	Proof   term.Proof
	Strict  bool
}

func (*StmtThm) stmt() {}

// StepInout runs the string I/O interpreter in input or output mode.
type StepInout struct {
	Dir  bool
	Expr term.Expr
}

func (*StepInout) stmt() {}

// Script is the immutable, ordered sequence of verification steps.
type Script struct {
	Stmts []Stmt
}
