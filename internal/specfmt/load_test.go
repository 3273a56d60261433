package specfmt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/mm0kernel/verifier/internal/kernel"
	"github.com/mm0kernel/verifier/internal/term"
)

const envYAML = `
specs:
  - type: sort
    name: wff
  - type: sort
    name: "|-"
    provable: true
  - type: term
    name: wi
    args:
      - {name: ph, bound: true, sort: wff}
      - {name: ps, bound: true, sort: wff}
    ret: {sort: "|-", deps: [ph, ps]}
  - type: axiom
    name: ax-1
    args:
      - {name: ph, bound: true, sort: wff}
      - {name: ps, bound: true, sort: wff}
    hyps: []
    concl: {term: wi, args: [ph, ps]}
`

const scriptYAML = `
script:
  - type: sort
    name: wff
  - type: sort
    name: "|-"
  - type: term
    name: wi
  - type: axiom
    name: ax-1
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadEnvironmentDecodesSortTermAndAxiomSpecs(t *testing.T) {
	path := writeTemp(t, "env.yaml", envYAML)
	env, err := LoadEnvironment(path)
	require.NoError(t, err)
	require.Len(t, env.Specs, 4)

	sort, ok := env.Specs[0].(*kernel.SSort)
	require.True(t, ok)
	require.Equal(t, "wff", sort.Name)

	decl, ok := env.Specs[2].(*kernel.SDecl)
	require.True(t, ok)
	require.Equal(t, kernel.DTerm, decl.Kind)

	wantArgs := []term.Binder{
		&term.Bound{VarName: "ph", Sort: "wff"},
		&term.Bound{VarName: "ps", Sort: "wff"},
	}
	if diff := cmp.Diff(wantArgs, decl.Args); diff != "" {
		t.Errorf("decoded args mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, term.DepType{Sort: "|-", Deps: []string{"ph", "ps"}}, decl.Ret)

	axiom, ok := env.Specs[3].(*kernel.SDecl)
	require.True(t, ok)
	require.Equal(t, kernel.DAxiom, axiom.Kind)
	require.True(t, term.Equal(axiom.Concl, &term.App{Term: "wi", Args: []term.Expr{&term.Var{Name: "ph"}, &term.Var{Name: "ps"}}}))
}

func TestLoadScriptDecodesSteps(t *testing.T) {
	path := writeTemp(t, "script.yaml", scriptYAML)
	script, err := LoadScript(path)
	require.NoError(t, err)
	require.Len(t, script.Stmts, 4)
	require.IsType(t, &kernel.StepSort{}, script.Stmts[0])
	require.IsType(t, &kernel.StepTerm{}, script.Stmts[2])
	require.IsType(t, &kernel.StepAxiom{}, script.Stmts[3])
}

func TestLoadEnvironmentThenVerifySucceeds(t *testing.T) {
	envPath := writeTemp(t, "env.yaml", envYAML)
	scriptPath := writeTemp(t, "script.yaml", scriptYAML)

	env, err := LoadEnvironment(envPath)
	require.NoError(t, err)
	script, err := LoadScript(scriptPath)
	require.NoError(t, err)

	result, err := kernel.Run(env, script, nil)
	require.NoError(t, err)
	require.True(t, result.Ok(), "diagnostics: %v", result.Diagnostics)
	require.Equal(t, 2, result.Stats.Sorts)
	require.Equal(t, 1, result.Stats.Terms)
	require.Equal(t, 1, result.Stats.Theorems)
}

func TestDumpEnvironmentRoundTripsThroughLoad(t *testing.T) {
	envPath := writeTemp(t, "env.yaml", envYAML)
	env, err := LoadEnvironment(envPath)
	require.NoError(t, err)

	dumped, err := DumpEnvironment(env)
	require.NoError(t, err)

	reloadedPath := writeTemp(t, "env2.yaml", dumped)
	reloaded, err := LoadEnvironment(reloadedPath)
	require.NoError(t, err)
	require.Len(t, reloaded.Specs, len(env.Specs))
}

func TestLoadInputReturnsNilForEmptyPath(t *testing.T) {
	data, err := LoadInput("")
	require.NoError(t, err)
	require.Nil(t, data)
}
