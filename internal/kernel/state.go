package kernel

import (
	"fmt"

	kerrors "github.com/mm0kernel/verifier/internal/errors"
	"github.com/mm0kernel/verifier/internal/term"
)

// State is the driver's single mutable aggregate: the sort/term/theorem
// tables, the remaining-spec cursor, and the emitted output queue (spec
// §3 "Verifier state"). It is extended monotonically; nothing is ever
// removed from the tables.
type State struct {
	Sorts  map[string]*term.Sort
	Terms  map[string]*term.TermDecl
	Thms   map[string]*term.ThmDecl
	specs  []Spec
	cursor int
	Output [][]byte
}

// NewState constructs an empty verifier state positioned at the start of
// the given environment's spec stream.
func NewState(env Environment) *State {
	return &State{
		Sorts: make(map[string]*term.Sort),
		Terms: make(map[string]*term.TermDecl),
		Thms:  make(map[string]*term.ThmDecl),
		specs: env.Specs,
	}
}

// peekSpec returns the next unconsumed environment spec, or nil if the
// queue is exhausted.
func (s *State) peekSpec() Spec {
	if s.cursor >= len(s.specs) {
		return nil
	}
	return s.specs[s.cursor]
}

// popSpec consumes and returns the next environment spec.
func (s *State) popSpec() Spec {
	sp := s.peekSpec()
	s.cursor++
	return sp
}

// remaining reports whether any environment spec remains unconsumed.
func (s *State) remaining() bool {
	return s.cursor < len(s.specs)
}

// Stats summarizes the accepted state for reporting (SPEC_FULL addition).
type Stats struct {
	Sorts        int
	Terms        int
	Theorems     int
	OutputBytes  int
	Diagnostics  int
}

// Stats computes a snapshot summary of the current state.
func (s *State) Stats(diagnostics int) Stats {
	n := 0
	for _, o := range s.Output {
		n += len(o)
	}
	return Stats{Sorts: len(s.Sorts), Terms: len(s.Terms), Theorems: len(s.Thms), OutputBytes: n, Diagnostics: diagnostics}
}

// Context maps a variable name to the binder that introduced it, built
// fresh for every declaration by C2.
type Context struct {
	order []string
	index map[string]term.Binder
}

// newContext returns an empty context. buildContext clones its starting
// context instead when it is given one.
func newContext() *Context {
	return &Context{index: make(map[string]term.Binder)}
}

// Clone produces an independent copy so extending one context (e.g. with
// dummy variables) never mutates another owner's view of it.
func (c *Context) Clone() *Context {
	cp := &Context{
		order: append([]string(nil), c.order...),
		index: make(map[string]term.Binder, len(c.index)),
	}
	for k, v := range c.index {
		cp.index[k] = v
	}
	return cp
}

func (c *Context) has(name string) bool {
	_, ok := c.index[name]
	return ok
}

func (c *Context) lookup(name string) (term.Binder, bool) {
	b, ok := c.index[name]
	return b, ok
}

func (c *Context) insert(b term.Binder) {
	name := term.BinderName(b)
	c.order = append(c.order, name)
	c.index[name] = b
}

// boundNames returns every Bound variable name declared so far, in order.
func (c *Context) boundNames() []string {
	var out []string
	for _, n := range c.order {
		if term.BinderIsBound(c.index[n]) {
			out = append(out, n)
		}
	}
	return out
}

func errf(code, format string, args ...interface{}) error {
	return kerrors.Wrap(kerrors.New(code, fmt.Sprintf(format, args...)))
}

// withContext attaches a declaration-name context frame to err, mirroring
// the driver's per-declaration withContext idiom (spec §6). Non-Report
// errors are wrapped as internal errors first so context is never lost.
func withContext(name string, err error) error {
	if err == nil {
		return nil
	}
	rep, ok := kerrors.As(err)
	if !ok {
		rep = kerrors.New("INT001", err.Error())
	}
	return kerrors.Wrap(rep.WithContext(name))
}
