package specfmt

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mm0kernel/verifier/internal/kernel"
	"github.com/mm0kernel/verifier/internal/term"
)

// specYAML decodes one Environment spec item, tagged by "type".
type specYAML struct {
	Type string `yaml:"type"`
	Name string `yaml:"name"`

	// sort
	Pure     bool `yaml:"pure"`
	Strict   bool `yaml:"strict"`
	Provable bool `yaml:"provable"`
	Free     bool `yaml:"free"`

	// term/axiom/def/thm
	Args    []binderYAML `yaml:"args"`
	Ret     *depTypeYAML `yaml:"ret"`
	Dummies []boundYAML  `yaml:"dummies"`
	Body    *exprYAML    `yaml:"body"`
	Hyps    []hyYAML     `yaml:"hyps"`
	Concl   *exprYAML    `yaml:"concl"`

	// inout
	Dir  string    `yaml:"dir"`
	Expr *exprYAML `yaml:"expr"`
}

func (s *specYAML) toSpec() (kernel.Spec, error) {
	name := normalizeName(s.Name)
	switch s.Type {
	case "sort":
		return &kernel.SSort{Name: name, Sort: term.Sort{Name: name, Pure: s.Pure, Strict: s.Strict, Provable: s.Provable, Free: s.Free}}, nil
	case "term":
		return &kernel.SDecl{Name: name, Kind: kernel.DTerm, Args: convertBinders(s.Args), Ret: s.Ret.toDepType()}, nil
	case "axiom":
		return &kernel.SDecl{Name: name, Kind: kernel.DAxiom, Args: convertBinders(s.Args), Hyps: convertHyps(s.Hyps), Concl: exprOrNil(s.Concl)}, nil
	case "def":
		return &kernel.SDecl{Name: name, Kind: kernel.DDef, Args: convertBinders(s.Args), Ret: s.Ret.toDepType(), Dummies: convertDummies(s.Dummies), Body: exprOrNil(s.Body)}, nil
	case "thm":
		return &kernel.SDecl{Name: name, Kind: kernel.DThm, Args: convertBinders(s.Args), Hyps: convertHyps(s.Hyps), Concl: exprOrNil(s.Concl)}, nil
	case "inout":
		return &kernel.SInout{Dir: s.Dir == "output", Expr: exprOrNil(s.Expr)}, nil
	default:
		return nil, fmt.Errorf("specfmt: unknown spec type %q", s.Type)
	}
}

func exprOrNil(e *exprYAML) term.Expr {
	if e == nil {
		return nil
	}
	return e.E
}

// stmtYAML decodes one proof-script statement, tagged by "type".
type stmtYAML struct {
	Type    string       `yaml:"type"`
	Name    string       `yaml:"name"`
	Args    []binderYAML `yaml:"args"`
	Ret     *depTypeYAML `yaml:"ret"`
	Dummies []boundYAML  `yaml:"dummies"`
	Body    *exprYAML    `yaml:"body"`
	Hyps    []hyYAML     `yaml:"hyps"`
	Concl   *exprYAML    `yaml:"concl"`
	Proof   *proofYAML   `yaml:"proof"`
	Strict  bool         `yaml:"strict"`
	Dir     string       `yaml:"dir"`
	Expr    *exprYAML    `yaml:"expr"`
}

func (s *stmtYAML) toStmt() (kernel.Stmt, error) {
	name := normalizeName(s.Name)
	switch s.Type {
	case "sort":
		return &kernel.StepSort{Name: name}, nil
	case "term":
		return &kernel.StepTerm{Name: name}, nil
	case "axiom":
		return &kernel.StepAxiom{Name: name}, nil
	case "def":
		return &kernel.StmtDef{
			Name: name, Args: convertBinders(s.Args), Ret: s.Ret.toDepType(),
			Dummies: convertDummies(s.Dummies), Body: exprOrNil(s.Body), Strict: s.Strict,
		}, nil
	case "thm":
		var p term.Proof
		if s.Proof != nil {
			p = s.Proof.P
		}
		return &kernel.StmtThm{
			Name: name, Args: convertBinders(s.Args), Hyps: convertHyps(s.Hyps),
			Concl: exprOrNil(s.Concl), Dummies: convertDummies(s.Dummies), Proof: p, Strict: s.Strict,
		}, nil
	case "inout":
		return &kernel.StepInout{Dir: s.Dir == "output", Expr: exprOrNil(s.Expr)}, nil
	default:
		return nil, fmt.Errorf("specfmt: unknown stmt type %q", s.Type)
	}
}

type envDoc struct {
	Specs []specYAML `yaml:"specs"`
}

type scriptDoc struct {
	Script []stmtYAML `yaml:"script"`
}

// LoadEnvironment reads and decodes an Environment from a YAML file.
func LoadEnvironment(path string) (kernel.Environment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return kernel.Environment{}, fmt.Errorf("specfmt: reading environment: %w", err)
	}
	var doc envDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return kernel.Environment{}, fmt.Errorf("specfmt: parsing environment: %w", err)
	}
	specs := make([]kernel.Spec, len(doc.Specs))
	for i := range doc.Specs {
		sp, err := doc.Specs[i].toSpec()
		if err != nil {
			return kernel.Environment{}, fmt.Errorf("specfmt: spec %d: %w", i, err)
		}
		specs[i] = sp
	}
	return kernel.Environment{Specs: specs}, nil
}

// LoadScript reads and decodes a proof Script from a YAML file.
func LoadScript(path string) (kernel.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return kernel.Script{}, fmt.Errorf("specfmt: reading script: %w", err)
	}
	var doc scriptDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return kernel.Script{}, fmt.Errorf("specfmt: parsing script: %w", err)
	}
	stmts := make([]kernel.Stmt, len(doc.Script))
	for i := range doc.Script {
		st, err := doc.Script[i].toStmt()
		if err != nil {
			return kernel.Script{}, fmt.Errorf("specfmt: stmt %d: %w", i, err)
		}
		stmts[i] = st
	}
	return kernel.Script{Stmts: stmts}, nil
}

// LoadInput reads the raw input byte buffer used for string-IO verification.
func LoadInput(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("specfmt: reading input buffer: %w", err)
	}
	return data, nil
}
