// Command mm0verify drives the proof verifier kernel from the command
// line. It is ambient CLI plumbing around internal/kernel; the kernel
// itself never touches flag parsing, file I/O, or color output.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/mm0kernel/verifier/internal/kernel"
	"github.com/mm0kernel/verifier/internal/specfmt"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		helpFlag    = flag.Bool("help", false, "Show help")
		jsonFlag    = flag.Bool("json", false, "Emit diagnostics as JSON")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("%s %s\n", bold("mm0verify"), bold("dev"))
		return
	}
	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	switch flag.Arg(0) {
	case "verify":
		if flag.NArg() < 3 {
			fmt.Fprintf(os.Stderr, "%s: usage: mm0verify verify <env.yaml> <script.yaml> [input-file]\n", red("Error"))
			os.Exit(1)
		}
		inputPath := ""
		if flag.NArg() >= 4 {
			inputPath = flag.Arg(3)
		}
		runVerify(flag.Arg(1), flag.Arg(2), inputPath, *jsonFlag)

	case "inspect":
		if flag.NArg() < 3 {
			fmt.Fprintf(os.Stderr, "%s: usage: mm0verify inspect <env.yaml> <script.yaml> [input-file]\n", red("Error"))
			os.Exit(1)
		}
		inputPath := ""
		if flag.NArg() >= 4 {
			inputPath = flag.Arg(3)
		}
		runInspect(flag.Arg(1), flag.Arg(2), inputPath)

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), flag.Arg(0))
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(bold("mm0verify - Metamath-Zero proof verifier kernel"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  mm0verify <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s <env> <script> [input]   Verify a script against an environment\n", cyan("verify"))
	fmt.Printf("  %s <env> <script> [input]   Verify, then browse the result interactively\n", cyan("inspect"))
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --version   Print version information")
	fmt.Println("  --help      Show this help message")
	fmt.Println("  --json      Emit diagnostics as JSON")
}

func loadAll(envPath, scriptPath, inputPath string) (kernel.Environment, kernel.Script, []byte, error) {
	env, err := specfmt.LoadEnvironment(envPath)
	if err != nil {
		return kernel.Environment{}, kernel.Script{}, nil, err
	}
	script, err := specfmt.LoadScript(scriptPath)
	if err != nil {
		return kernel.Environment{}, kernel.Script{}, nil, err
	}
	input, err := specfmt.LoadInput(inputPath)
	if err != nil {
		return kernel.Environment{}, kernel.Script{}, nil, err
	}
	return env, script, input, nil
}

func runVerify(envPath, scriptPath, inputPath string, asJSON bool) {
	env, script, input, err := loadAll(envPath, scriptPath, inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	result, err := kernel.Run(env, script, input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Fatal"), err)
		os.Exit(1)
	}

	if asJSON {
		for _, d := range result.Diagnostics {
			j, _ := d.ToJSON(false)
			fmt.Println(j)
		}
	} else {
		for _, d := range result.Diagnostics {
			fmt.Printf("%s %s\n", red("error:"), d.String())
		}
	}

	if result.Ok() {
		fmt.Printf("%s accepted %d sort(s), %d term(s), %d theorem(s); emitted %d byte(s)\n",
			green("✓"), result.Stats.Sorts, result.Stats.Terms, result.Stats.Theorems, result.Stats.OutputBytes)
		return
	}

	fmt.Printf("%s %d diagnostic(s)\n", yellow("✗"), len(result.Diagnostics))
	os.Exit(1)
}
