package specfmt

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mm0kernel/verifier/internal/term"
)

// convYAML decodes a Conv term, tagged by its "kind" field (var/app/sym/unfold).
type convYAML struct {
	C term.Conv
}

func (y *convYAML) UnmarshalYAML(node *yaml.Node) error {
	var kindOnly struct {
		Kind string `yaml:"kind"`
	}
	if err := node.Decode(&kindOnly); err != nil {
		return err
	}
	switch kindOnly.Kind {
	case "var":
		var raw struct {
			Name string `yaml:"name"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		y.C = &term.CVar{Name: normalizeName(raw.Name)}

	case "app":
		var raw struct {
			Term string     `yaml:"term"`
			Args []convYAML `yaml:"args"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		args := make([]term.Conv, len(raw.Args))
		for i, a := range raw.Args {
			args[i] = a.C
		}
		y.C = &term.CApp{Term: normalizeName(raw.Term), Args: args}

	case "sym":
		var raw struct {
			Conv convYAML `yaml:"conv"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		y.C = &term.CSym{Conv: raw.Conv.C}

	case "unfold":
		var raw struct {
			Term    string     `yaml:"term"`
			Args    []exprYAML `yaml:"args"`
			Dummies []string   `yaml:"dummies"`
			Conv    convYAML   `yaml:"conv"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		dummies := make([]string, len(raw.Dummies))
		for i, d := range raw.Dummies {
			dummies[i] = normalizeName(d)
		}
		args := make([]term.Expr, len(raw.Args))
		for i, a := range raw.Args {
			args[i] = a.E
		}
		y.C = &term.CUnfold{Term: normalizeName(raw.Term), Args: args, Dummies: dummies, Conv: raw.Conv.C}

	default:
		return fmt.Errorf("specfmt: unknown conv kind %q (line %d)", kindOnly.Kind, node.Line)
	}
	return nil
}

// proofYAML decodes a Proof term. Sorry is the bare scalar "sorry";
// everything else is a mapping tagged by "kind".
type proofYAML struct {
	P term.Proof
}

func (y *proofYAML) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		if s != "sorry" {
			return fmt.Errorf("specfmt: invalid bare proof scalar %q (line %d)", s, node.Line)
		}
		y.P = &term.PSorry{}
		return nil
	}

	var kindOnly struct {
		Kind string `yaml:"kind"`
	}
	if err := node.Decode(&kindOnly); err != nil {
		return err
	}
	switch kindOnly.Kind {
	case "hyp":
		var raw struct {
			Name string `yaml:"name"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		y.P = &term.PHyp{Name: normalizeName(raw.Name)}

	case "thm":
		var raw struct {
			Thm  string      `yaml:"thm"`
			Args []exprYAML  `yaml:"args"`
			Subs []proofYAML `yaml:"subs"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		args := make([]term.Expr, len(raw.Args))
		for i, a := range raw.Args {
			args[i] = a.E
		}
		subs := make([]term.Proof, len(raw.Subs))
		for i, s := range raw.Subs {
			subs[i] = s.P
		}
		y.P = &term.PThm{Thm: normalizeName(raw.Thm), Args: args, Subs: subs}

	case "conv":
		var raw struct {
			Target exprYAML  `yaml:"target"`
			Conv   convYAML  `yaml:"conv"`
			Proof  proofYAML `yaml:"proof"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		y.P = &term.PConv{Target: raw.Target.E, Conv: raw.Conv.C, Proof: raw.Proof.P}

	case "let":
		var raw struct {
			Name  string    `yaml:"name"`
			Value proofYAML `yaml:"value"`
			Body  proofYAML `yaml:"body"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		y.P = &term.PLet{Name: normalizeName(raw.Name), Value: raw.Value.P, Body: raw.Body.P}

	default:
		return fmt.Errorf("specfmt: unknown proof kind %q (line %d)", kindOnly.Kind, node.Line)
	}
	return nil
}
