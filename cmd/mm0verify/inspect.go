package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/mm0kernel/verifier/internal/kernel"
	"github.com/mm0kernel/verifier/internal/specfmt"
)

// dim mirrors internal/repl/repl.go's faint color for secondary text.
var dim = color.New(color.Faint).SprintFunc()

// inspector holds the loaded inputs and the most recent verification
// result so REPL commands can re-run or report on it without reloading
// from disk each time.
type inspector struct {
	envPath, scriptPath, inputPath string
	env                            kernel.Environment
	script                         kernel.Script
	input                          []byte
	result                         *kernel.Result
}

func runInspect(envPath, scriptPath, inputPath string) {
	env, script, input, err := loadAll(envPath, scriptPath, inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	insp := &inspector{envPath: envPath, scriptPath: scriptPath, inputPath: inputPath, env: env, script: script, input: input}
	insp.verify()
	insp.start(os.Stdout)
}

func (insp *inspector) verify() {
	result, err := kernel.Run(insp.env, insp.script, insp.input)
	if err != nil {
		insp.result = nil
		fmt.Printf("%s %v\n", red("fatal:"), err)
		return
	}
	insp.result = result
}

// start mirrors internal/repl/repl.go's liner-driven command loop: a
// persistent history file, multi-line-free single-command prompt, and
// colon-prefixed commands dispatched by prefix.
func (insp *inspector) start(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	historyFile := filepath.Join(os.TempDir(), ".mm0verify_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintf(out, "%s %s\n", bold("mm0verify inspect"), bold("dev"))
	fmt.Fprintln(out, dim("Type :help for commands, :quit to exit"))
	fmt.Fprintln(out)

	commands := []string{":help", ":quit", ":stats", ":diagnostics", ":sorts", ":terms", ":theorems", ":output", ":dump", ":reload"}
	line.SetCompleter(func(text string) (c []string) {
		for _, cmd := range commands {
			if strings.HasPrefix(cmd, text) {
				c = append(c, cmd)
			}
		}
		return
	})

	for {
		input, err := line.Prompt("mm0> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, ":q") {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}
		insp.handleCommand(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func (insp *inspector) handleCommand(cmd string, out io.Writer) {
	switch {
	case strings.HasPrefix(cmd, ":help"):
		fmt.Fprintln(out, "Commands:")
		fmt.Fprintln(out, "  :stats        Show sort/term/theorem/output counts")
		fmt.Fprintln(out, "  :diagnostics  List accumulated diagnostics")
		fmt.Fprintln(out, "  :sorts        List declared sort names")
		fmt.Fprintln(out, "  :terms        List declared term/def names")
		fmt.Fprintln(out, "  :theorems     List declared theorem names")
		fmt.Fprintln(out, "  :output       Show emitted output-string bytes")
		fmt.Fprintln(out, "  :dump         Dump the loaded environment back to YAML")
		fmt.Fprintln(out, "  :reload       Reload inputs from disk and re-verify")
		fmt.Fprintln(out, "  :quit         Exit")

	case strings.HasPrefix(cmd, ":stats"):
		if insp.result == nil {
			fmt.Fprintln(out, yellow("no result (last run was fatal)"))
			return
		}
		s := insp.result.Stats
		fmt.Fprintf(out, "sorts=%d terms=%d theorems=%d output_bytes=%d diagnostics=%d\n",
			s.Sorts, s.Terms, s.Theorems, s.OutputBytes, s.Diagnostics)

	case strings.HasPrefix(cmd, ":diagnostics"):
		if insp.result == nil || len(insp.result.Diagnostics) == 0 {
			fmt.Fprintln(out, green("none"))
			return
		}
		for _, d := range insp.result.Diagnostics {
			fmt.Fprintf(out, "%s %s\n", red(d.Code), d.String())
		}

	case strings.HasPrefix(cmd, ":sorts"):
		for _, sp := range insp.env.Specs {
			if s, ok := sp.(*kernel.SSort); ok {
				fmt.Fprintln(out, s.Name)
			}
		}

	case strings.HasPrefix(cmd, ":terms"):
		for _, sp := range insp.env.Specs {
			if d, ok := sp.(*kernel.SDecl); ok && (d.Kind == kernel.DTerm || d.Kind == kernel.DDef) {
				fmt.Fprintln(out, d.Name)
			}
		}

	case strings.HasPrefix(cmd, ":theorems"):
		for _, sp := range insp.env.Specs {
			if d, ok := sp.(*kernel.SDecl); ok && (d.Kind == kernel.DAxiom || d.Kind == kernel.DThm) {
				fmt.Fprintln(out, d.Name)
			}
		}

	case strings.HasPrefix(cmd, ":output"):
		if insp.result == nil {
			fmt.Fprintln(out, yellow("no result"))
			return
		}
		for i, o := range insp.result.Outputs {
			fmt.Fprintf(out, "[%d] % x\n", i, o)
		}

	case strings.HasPrefix(cmd, ":dump"):
		text, err := specfmt.DumpEnvironment(insp.env)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			return
		}
		fmt.Fprint(out, text)

	case strings.HasPrefix(cmd, ":reload"):
		env, script, input, err := loadAll(insp.envPath, insp.scriptPath, insp.inputPath)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			return
		}
		insp.env, insp.script, insp.input = env, script, input
		insp.verify()
		fmt.Fprintln(out, green("reloaded"))

	default:
		fmt.Fprintf(out, "%s: unknown command %q (try :help)\n", red("Error"), cmd)
	}
}
