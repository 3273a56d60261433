package kernel

import (
	"fmt"

	"github.com/mm0kernel/verifier/internal/term"
)

// hexName maps x0..xf to their nibble value.
var hexName = func() map[string]int {
	m := make(map[string]int, 16)
	digits := "0123456789abcdef"
	for i, d := range digits {
		m[fmt.Sprintf("x%c", d)] = i
	}
	return m
}()

// groundEnv substitutes the caller's env into each argument expression so
// the callee's new frame is fully grounded — every name it can reference
// is bound directly to a value-shaped expression. Because C4 guarantees
// a definition's body mentions only its own parameters, this lets the
// reducer use a single replace-the-whole-frame map in place of the
// spec's described environment stack: each unfold's frame is complete
// and self-contained, so "consult the top frame" (spec §4.8) and
// "consult the only frame" coincide.
func groundEnv(params []term.Binder, es []term.Expr, outer map[string]term.Expr) map[string]term.Expr {
	next := make(map[string]term.Expr, len(params))
	for i, p := range params {
		next[term.BinderName(p)] = substExpr(es[i], outer)
	}
	return next
}

// resolveHead unfolds a dummy-free definition, returning the unfolded body
// and its grounded environment; callers match the fixed byte-string
// signature before calling it. ok is false, with a non-nil err, when t is
// not an unfoldable definition.
func resolveHead(st *State, t string, es []term.Expr, env map[string]term.Expr) (body term.Expr, next map[string]term.Expr, ok bool, err error) {
	decl, found := st.Terms[t]
	if !found {
		return nil, nil, false, errf("TYP001", "unknown term %q", t)
	}
	if !decl.IsDef() {
		return nil, nil, false, errf("IO003", "term %q not supported in IO expression", t)
	}
	if len(decl.Def.Dummies) != 0 {
		return nil, nil, false, errf("IO004", "definition %q has dummy variables and cannot appear in an IO expression", t)
	}
	return decl.Def.Body, groundEnv(decl.Args, es, env), true, nil
}

// cursor is the half-byte position into the input buffer (spec §4.8).
type cursor struct {
	byteIdx int
	half    bool // true: high nibble of byteIdx already consumed
}

func (c cursor) atEnd(buf []byte) bool { return c.byteIdx >= len(buf) && !c.half }

// nextNibble consumes and returns one nibble, high-first then low.
func nextNibble(buf []byte, c cursor) (nibble int, next cursor, err error) {
	if c.byteIdx >= len(buf) {
		return 0, c, errf("IO002", "unexpected end of input")
	}
	if !c.half {
		return int(buf[c.byteIdx] >> 4), cursor{byteIdx: c.byteIdx, half: true}, nil
	}
	return int(buf[c.byteIdx] & 0xF), cursor{byteIdx: c.byteIdx + 1, half: false}, nil
}

// reduceInput implements input-mode reduction (spec §4.8).
func reduceInput(st *State, env map[string]term.Expr, buf []byte, c cursor, e term.Expr) (cursor, error) {
	switch v := e.(type) {
	case *term.Var:
		val, ok := env[v.Name]
		if !ok {
			return c, errf("TYP005", "undeclared variable %q in IO expression", v.Name)
		}
		return reduceInput(st, env, buf, c, val)

	case *term.App:
		if i, ok := hexName[v.Term]; ok {
			nib, next, err := nextNibble(buf, c)
			if err != nil {
				return c, err
			}
			if nib != i {
				return c, mismatchErr(buf, c)
			}
			return next, nil
		}
		switch v.Term {
		case "s0":
			return c, nil
		case "s1":
			return reduceInput(st, env, buf, c, v.Args[0])
		case "sadd":
			c1, err := reduceInput(st, env, buf, c, v.Args[0])
			if err != nil {
				return c, err
			}
			return reduceInput(st, env, buf, c1, v.Args[1])
		case "ch":
			c1, err := reduceInput(st, env, buf, c, v.Args[0])
			if err != nil {
				return c, err
			}
			return reduceInput(st, env, buf, c1, v.Args[1])
		default:
			body, next, _, err := resolveHead(st, v.Term, v.Args, env)
			if err != nil {
				return c, err
			}
			return reduceInput(st, next, buf, c, body)
		}

	default:
		return c, errf("INT001", "unknown expression variant")
	}
}

func mismatchErr(buf []byte, c cursor) error {
	return errf("IO001", "input mismatch at char %d: rest = %q", c.byteIdx, string(buf[c.byteIdx:]))
}

// VerifyInputString runs C8 in input mode: e must reduce across the
// entire buffer with no mismatch and no leftover bytes.
func VerifyInputString(st *State, e term.Expr, buf []byte) error {
	final, err := reduceInput(st, map[string]term.Expr{}, buf, cursor{}, e)
	if err != nil {
		return err
	}
	if !final.atEnd(buf) {
		return errf("IO002", "input not fully consumed: %d byte(s) remaining", len(buf)-final.byteIdx)
	}
	return nil
}

// ioValue is either an opaque byte buffer or a single hex nibble
// (spec §4.8 output mode).
type ioValue struct {
	isHex bool
	hex   int
	bytes []byte
}

// reduceOutput implements output-mode reduction (spec §4.8).
func reduceOutput(st *State, env map[string]term.Expr, e term.Expr) (ioValue, error) {
	switch v := e.(type) {
	case *term.Var:
		val, ok := env[v.Name]
		if !ok {
			return ioValue{}, errf("TYP005", "undeclared variable %q in IO expression", v.Name)
		}
		return reduceOutput(st, env, val)

	case *term.App:
		if i, ok := hexName[v.Term]; ok {
			return ioValue{isHex: true, hex: i}, nil
		}
		switch v.Term {
		case "s0":
			return ioValue{bytes: []byte{}}, nil
		case "s1":
			return reduceOutput(st, env, v.Args[0])
		case "ch":
			h1, err := reduceOutput(st, env, v.Args[0])
			if err != nil {
				return ioValue{}, err
			}
			h2, err := reduceOutput(st, env, v.Args[1])
			if err != nil {
				return ioValue{}, err
			}
			if !h1.isHex || !h2.isHex {
				return ioValue{}, errf("INT001", "ch applied to a non-nibble value (impossible with a sound axiom set)")
			}
			return ioValue{bytes: []byte{byte(h1.hex<<4 | h2.hex)}}, nil
		case "sadd":
			b1, err := reduceOutput(st, env, v.Args[0])
			if err != nil {
				return ioValue{}, err
			}
			b2, err := reduceOutput(st, env, v.Args[1])
			if err != nil {
				return ioValue{}, err
			}
			if b1.isHex || b2.isHex {
				return ioValue{}, errf("INT001", "sadd applied to a bare nibble (impossible with a sound axiom set)")
			}
			return ioValue{bytes: append(append([]byte{}, b1.bytes...), b2.bytes...)}, nil
		default:
			body, next, _, err := resolveHead(st, v.Term, v.Args, env)
			if err != nil {
				return ioValue{}, err
			}
			return reduceOutput(st, next, body)
		}

	default:
		return ioValue{}, errf("INT001", "unknown expression variant")
	}
}

// VerifyOutputString runs C8 in output mode and returns the emitted bytes.
func VerifyOutputString(st *State, e term.Expr) ([]byte, error) {
	v, err := reduceOutput(st, map[string]term.Expr{}, e)
	if err != nil {
		return nil, err
	}
	if v.isHex {
		return nil, errf("INT001", "output reduction yielded a bare nibble (impossible with a sound axiom set)")
	}
	return v.bytes, nil
}
