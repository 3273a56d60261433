// Package specfmt loads an Environment and a Script from YAML documents.
// The surface-syntax parser and elaborator that would normally produce
// these structures are explicit external collaborators (spec.md §1); this
// package is the thinnest possible stand-in so the kernel has a runnable
// entry point, grounded in the teacher's internal/eval_harness/spec.go
// YAML-loading pattern.
package specfmt

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/mm0kernel/verifier/internal/term"
)

// normalizeName applies NFC normalization to identifiers at the loader
// boundary, mirroring the NFC half of internal/lexer/normalize.go's
// handling of source text (no BOM stripping is done here), so two differently-encoded but visually identical names
// are never treated as distinct bindings.
func normalizeName(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// exprYAML decodes an Expr that may appear either as a bare scalar (a
// Var reference) or as a mapping {term, args} (an App).
type exprYAML struct {
	E term.Expr
}

func (y *exprYAML) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}
		y.E = &term.Var{Name: normalizeName(name)}
		return nil
	case yaml.MappingNode:
		var m struct {
			Term string      `yaml:"term"`
			Args []exprYAML `yaml:"args"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		args := make([]term.Expr, len(m.Args))
		for i, a := range m.Args {
			args[i] = a.E
		}
		y.E = &term.App{Term: normalizeName(m.Term), Args: args}
		return nil
	default:
		return fmt.Errorf("specfmt: invalid expr node (line %d)", node.Line)
	}
}

type hyYAML struct {
	Name string    `yaml:"name"`
	Expr exprYAML `yaml:"expr"`
}

func convertHyps(hs []hyYAML) []term.Hyp {
	out := make([]term.Hyp, len(hs))
	for i, h := range hs {
		out[i] = term.Hyp{Name: normalizeName(h.Name), Expr: h.Expr.E}
	}
	return out
}

type depTypeYAML struct {
	Sort string   `yaml:"sort"`
	Deps []string `yaml:"deps"`
}

func (d *depTypeYAML) toDepType() term.DepType {
	if d == nil {
		return term.DepType{}
	}
	deps := make([]string, len(d.Deps))
	for i, n := range d.Deps {
		deps[i] = normalizeName(n)
	}
	return term.DepType{Sort: normalizeName(d.Sort), Deps: deps}
}

type binderYAML struct {
	Name  string   `yaml:"name"`
	Bound bool     `yaml:"bound"`
	Sort  string   `yaml:"sort"`
	Deps  []string `yaml:"deps"`
}

func convertBinders(bs []binderYAML) []term.Binder {
	out := make([]term.Binder, len(bs))
	for i, b := range bs {
		if b.Bound {
			out[i] = &term.Bound{VarName: normalizeName(b.Name), Sort: normalizeName(b.Sort)}
			continue
		}
		deps := make([]string, len(b.Deps))
		for j, n := range b.Deps {
			deps[j] = normalizeName(n)
		}
		out[i] = &term.Regular{VarName: normalizeName(b.Name), Type: term.DepType{Sort: normalizeName(b.Sort), Deps: deps}}
	}
	return out
}

type boundYAML struct {
	Name string `yaml:"name"`
	Sort string `yaml:"sort"`
}

func convertDummies(ds []boundYAML) []term.Bound {
	out := make([]term.Bound, len(ds))
	for i, d := range ds {
		out[i] = term.Bound{VarName: normalizeName(d.Name), Sort: normalizeName(d.Sort)}
	}
	return out
}
