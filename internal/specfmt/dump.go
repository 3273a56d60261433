package specfmt

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mm0kernel/verifier/internal/kernel"
	"github.com/mm0kernel/verifier/internal/term"
)

// exprToYAML renders an Expr back into the scalar-or-mapping shape
// exprYAML parses, for round-tripping a loaded environment back to YAML
// (the inspect command's :dump).
func exprToYAML(e term.Expr) interface{} {
	switch v := e.(type) {
	case *term.Var:
		return v.Name
	case *term.App:
		args := make([]interface{}, len(v.Args))
		for i, a := range v.Args {
			args[i] = exprToYAML(a)
		}
		return map[string]interface{}{"term": v.Term, "args": args}
	default:
		return nil
	}
}

func binderToYAML(b term.Binder) map[string]interface{} {
	switch v := b.(type) {
	case *term.Bound:
		return map[string]interface{}{"name": v.VarName, "bound": true, "sort": v.Sort}
	case *term.Regular:
		return map[string]interface{}{"name": v.VarName, "sort": v.Type.Sort, "deps": v.Type.Deps}
	default:
		return nil
	}
}

// DumpEnvironment renders an Environment back to YAML, in the same
// schema LoadEnvironment consumes.
func DumpEnvironment(env kernel.Environment) (string, error) {
	var specs []map[string]interface{}
	for _, sp := range env.Specs {
		switch s := sp.(type) {
		case *kernel.SSort:
			specs = append(specs, map[string]interface{}{
				"type": "sort", "name": s.Name,
				"pure": s.Sort.Pure, "strict": s.Sort.Strict, "provable": s.Sort.Provable, "free": s.Sort.Free,
			})
		case *kernel.SDecl:
			m := map[string]interface{}{"name": s.Name}
			args := make([]map[string]interface{}, len(s.Args))
			for i, a := range s.Args {
				args[i] = binderToYAML(a)
			}
			m["args"] = args
			switch s.Kind {
			case kernel.DTerm:
				m["type"] = "term"
				m["ret"] = map[string]interface{}{"sort": s.Ret.Sort, "deps": s.Ret.Deps}
			case kernel.DAxiom:
				m["type"] = "axiom"
				m["hyps"] = hypsToYAML(s.Hyps)
				m["concl"] = exprToYAML(s.Concl)
			case kernel.DDef:
				m["type"] = "def"
				m["ret"] = map[string]interface{}{"sort": s.Ret.Sort, "deps": s.Ret.Deps}
				m["dummies"] = dummiesToYAML(s.Dummies)
				m["body"] = exprToYAML(s.Body)
			case kernel.DThm:
				m["type"] = "thm"
				m["hyps"] = hypsToYAML(s.Hyps)
				m["concl"] = exprToYAML(s.Concl)
			}
			specs = append(specs, m)
		case *kernel.SInout:
			dir := "input"
			if s.Dir {
				dir = "output"
			}
			specs = append(specs, map[string]interface{}{"type": "inout", "dir": dir, "expr": exprToYAML(s.Expr)})
		default:
			return "", fmt.Errorf("specfmt: unknown spec variant %T", sp)
		}
	}
	out, err := yaml.Marshal(map[string]interface{}{"specs": specs})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func hypsToYAML(hs []term.Hyp) []map[string]interface{} {
	out := make([]map[string]interface{}, len(hs))
	for i, h := range hs {
		out[i] = map[string]interface{}{"name": h.Name, "expr": exprToYAML(h.Expr)}
	}
	return out
}

func dummiesToYAML(ds []term.Bound) []map[string]interface{} {
	out := make([]map[string]interface{}, len(ds))
	for i, d := range ds {
		out[i] = map[string]interface{}{"name": d.VarName, "sort": d.Sort}
	}
	return out
}
