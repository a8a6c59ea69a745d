// Command glox is a tree-walking interpreter for a small dynamically
// typed scripting language. Invoked with no arguments it starts a REPL;
// with one argument it runs that file as a script; with more it prints
// a usage message.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/glox-lang/glox/internal/ast"
	"github.com/glox-lang/glox/internal/config"
	"github.com/glox-lang/glox/internal/interp"
	"github.com/glox-lang/glox/internal/parser"
	"github.com/glox-lang/glox/internal/report"
	"github.com/glox-lang/glox/internal/scanner"
)

const usage = "Usage: glox [script]"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run performs the CLI's argument triage and returns the process exit
// code: 0 on success, 64 on usage error, 65 if any scan/parse error
// occurred, 70 if a runtime error occurred.
func run(args []string, stdout, stderr io.Writer) int {
	flagArgs, printAST, configPath := parseFlags(args)

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Can't read config file: %v\n", err)
		return 64
	}

	switch len(flagArgs) {
	case 0:
		runPrompt(stdout, stderr, cfg, printAST)
		return 0
	case 1:
		return runFile(flagArgs[0], stdout, stderr, printAST)
	default:
		fmt.Fprintln(stderr, usage)
		return 64
	}
}

// parseFlags splits out the --config and --print-ast flags from the
// positional arguments the exit-code triage counts. It is deliberately
// not a general flag parser: only these two long-form flags are
// recognized, and everything else is positional.
func parseFlags(args []string) (positional []string, printAST bool, configPath string) {
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--print-ast":
			printAST = true
		case args[i] == "--config" && i+1 < len(args):
			i++
			configPath = args[i]
		default:
			positional = append(positional, args[i])
		}
	}
	return positional, printAST, configPath
}

func loadConfig(explicitPath string) (config.Config, error) {
	if explicitPath != "" {
		return config.Load(explicitPath)
	}
	return config.Load(config.DefaultFileName)
}

func runFile(path string, stdout, stderr io.Writer, printAST bool) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "Can't open file at '%s'.\n", path)
		return 64
	}

	reporter := report.New(stderr)
	interpreter := interp.New(stdout, reporter)
	runSource(string(source), interpreter, reporter, printAST, stdout)

	if reporter.HadError() {
		return 65
	}
	if reporter.HadRuntimeError() {
		return 70
	}
	return 0
}

func runPrompt(stdout, stderr io.Writer, cfg config.Config, printAST bool) {
	out := stdout
	if f, ok := stdout.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out = colorable.NewColorable(f)
	}
	reporter := report.New(stderr)
	interpreter := interp.New(out, reporter)

	fmt.Fprintln(out, "glox REPL (Ctrl-D to exit)")

	rl, err := newLineReader(cfg)
	if err != nil {
		// Fall back to a plain line scanner (e.g. stdin isn't a tty).
		runPromptPlain(out, stderr, cfg, interpreter, reporter, printAST)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil { // io.EOF
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		runSource(line, interpreter, reporter, printAST, out)
		reporter.Reset()
	}
}

func runPromptPlain(out io.Writer, stderr io.Writer, cfg config.Config, interpreter *interp.Interpreter, reporter *report.Reporter, printAST bool) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(out, cfg.Prompt)
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		runSource(line, interpreter, reporter, printAST, out)
		reporter.Reset()
	}
}

func newLineReader(cfg config.Config) (*readline.Instance, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}
	return readline.NewEx(&readline.Config{
		Prompt:          promptText(cfg),
		HistoryFile:     expandHome(cfg.HistoryFile),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
}

func promptText(cfg config.Config) string {
	if cfg.Color == "never" {
		return cfg.Prompt
	}
	bold := color.New(color.Bold, color.FgCyan)
	if cfg.Color == "always" {
		bold.EnableColor()
	}
	if cfg.Color != "always" && !isatty.IsTerminal(os.Stdout.Fd()) {
		return cfg.Prompt
	}
	return bold.Sprint(cfg.Prompt)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}

// runSource scans, parses, and (if parsing succeeded) interprets one
// chunk of source text using the shared interpreter and reporter.
func runSource(source string, interpreter *interp.Interpreter, reporter *report.Reporter, printAST bool, out io.Writer) {
	sc := scanner.New(source, reporter)
	tokens := sc.ScanTokens()

	p := parser.New(tokens, reporter)
	statements := p.Parse()

	if reporter.HadError() {
		return
	}

	if printAST {
		printer := &ast.Printer{}
		for _, stmt := range statements {
			if exprStmt, ok := stmt.(*ast.ExpressionStmt); ok {
				fmt.Fprintln(out, printer.Print(exprStmt.Expression))
			}
		}
	}

	interpreter.Interpret(statements)
}
