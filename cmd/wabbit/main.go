/*
File    : wabbit/cmd/wabbit/main.go
*/

// Command wabbit is the driver binary around the Wabbit core library.
// It is intentionally thin: the lexer, parser, checker, interpreter,
// compiler, and VM it calls into are the specified, tested surface;
// this file is the "external collaborator" spec.md describes — file
// I/O, flag parsing, and the choice between interpreting and compiling
// are not themselves specified.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/wabbitlang/wabbit/ast"
	"github.com/wabbitlang/wabbit/check"
	"github.com/wabbitlang/wabbit/compile"
	"github.com/wabbitlang/wabbit/interp"
	"github.com/wabbitlang/wabbit/parser"
	"github.com/wabbitlang/wabbit/repl"
	"github.com/wabbitlang/wabbit/vm"
)

var (
	version = "v1.0.0"
	prompt  = "wabbit> "
	line    = "----------------------------------------------------------------"
	banner  = `
 █     ▄▄▄▄▄▄▄    ▄▄▄▄▄▄▄▄   ▄▄▄▄▄   ▄▄▄▄▄▄▄▄  ▄▄▄▄▄▄▄▄▄
 █     █  ▄  █    █   ▄   █  █   ▀█  █  ▄  █   █   ▄   █
 █     █ █ █ █    █  █ █  █  █▄▄▄▄▀  █ █ █ █   █  █ █  █
 █  █  █ █ █ █    █  █▄█  █  █  ▀█▄  █ █ █ █   █  █▄█  █
 ▀█▄█▀  █▄▄▄█▀    █▄▄▄▄▄▄▄▀  ▀▄▄▄▄▀  █▄▄▄█▀    █▄▄▄▄▄▄▄▀
`
)

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

// options are the flags a file-mode invocation accepts, applied in
// order: dumpAST or dumpVM short-circuit into a debug dump instead of
// running the program; useVM picks the compiled path over interp.
type options struct {
	useVM   bool
	dumpAST bool
	dumpVM  bool
}

func main() {
	if len(os.Args) > 1 {
		var opts options
		var path string
		for _, arg := range os.Args[1:] {
			switch arg {
			case "--help", "-h":
				showHelp()
				return
			case "--version", "-v":
				cyanColor.Printf("wabbit %s\n", version)
				return
			case "--vm":
				opts.useVM = true
			case "--ast":
				opts.dumpAST = true
			case "--dump-vm":
				opts.dumpVM = true
			default:
				path = arg
			}
		}
		if path == "" {
			redColor.Fprintln(os.Stderr, "usage: wabbit [--vm] [--ast] [--dump-vm] <path-to-file>")
			os.Exit(1)
		}
		runFile(path, opts)
		return
	}

	repler := repl.New(banner, version, line, prompt)
	repler.Start(os.Stdout)
}

func showHelp() {
	cyanColor.Println("wabbit - a small interpreted/compiled language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  wabbit                    Start the interactive REPL")
	yellowColor.Println("  wabbit <path>             Interpret a wabbit source file")
	yellowColor.Println("  wabbit --vm <path>        Compile and run a file on the stack VM")
	yellowColor.Println("  wabbit --ast <path>       Print the parsed, pretty-printed tree")
	yellowColor.Println("  wabbit --dump-vm <path>   Print the lowered stack-VM instructions")
	yellowColor.Println("  wabbit --help             Show this message")
	yellowColor.Println("  wabbit --version          Show version information")
}

// runFile reads source from path and either dumps a debug view of it
// (--ast, --dump-vm) or runs it, interpreting or compiling to the
// stack VM depending on opts.useVM. Exit codes: 0 success, 1 a
// diagnostic was reported (file, parse, check, or runtime error) per
// spec §6.
func runFile(path string, opts options) {
	defer func() {
		if rec := recover(); rec != nil {
			redColor.Fprintf(os.Stderr, "[runtime error] %v\n", rec)
			os.Exit(1)
		}
	}()

	src, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[file error] %v\n", err)
		os.Exit(1)
	}

	prog, err := parser.Parse(string(src))
	if err != nil {
		redColor.Fprintf(os.Stderr, "[parse error] %v\n", err)
		os.Exit(1)
	}

	if opts.dumpAST {
		fmt.Print(ast.Print(prog))
	}

	diags := check.Check(prog)
	if len(diags) > 0 {
		for _, d := range diags {
			redColor.Fprintf(os.Stderr, "[type error] %v\n", d)
		}
		os.Exit(1)
	}

	if opts.dumpVM {
		dumpVMCode(prog)
	}
	if opts.dumpAST || opts.dumpVM {
		return
	}

	if opts.useVM {
		runOnVM(prog)
		return
	}

	in := interp.New()
	in.Out = os.Stdout
	if err := in.Run(prog); err != nil {
		redColor.Fprintf(os.Stderr, "[runtime error] %v\n", err)
		os.Exit(1)
	}
}

func dumpVMCode(prog *ast.Program) {
	for _, instr := range compile.Compile(prog) {
		fmt.Println(instr.String())
	}
}

func runOnVM(prog *ast.Program) {
	code := compile.Compile(prog)
	machine := vm.New(code)
	machine.Out = os.Stdout
	if err := machine.Run(); err != nil {
		redColor.Fprintf(os.Stderr, "[vm error] %v\n", err)
		os.Exit(1)
	}
}
