/*
File    : wabbit/repl/repl.go
Package : repl
*/

// Package repl implements an interactive Read-Eval-Print Loop over the
// Wabbit pipeline (lex → parse → check → interpret), generalized from
// the teacher's Repl (colored banner, chzyer/readline line editing,
// persistent evaluation state across lines).
//
// The stack VM is not wired into the REPL: an interactive session
// evaluates each line immediately through package interp, the same way
// the teacher's REPL drives its tree-walking Evaluator directly rather
// than compiling every line to bytecode first.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/wabbitlang/wabbit/ast"
	"github.com/wabbitlang/wabbit/check"
	"github.com/wabbitlang/wabbit/interp"
	"github.com/wabbitlang/wabbit/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the cosmetic configuration of an interactive session.
type Repl struct {
	Banner  string
	Version string
	Line    string
	Prompt  string
}

// New creates a Repl with the given banner, version string, separator
// line, and prompt.
func New(banner, version, line, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Line: line, Prompt: prompt}
}

// PrintBannerInfo writes the startup banner to w.
func (r *Repl) PrintBannerInfo(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", r.Line)
	greenColor.Fprintf(w, "%s\n", r.Banner)
	blueColor.Fprintf(w, "%s\n", r.Line)
	yellowColor.Fprintln(w, "wabbit "+r.Version)
	blueColor.Fprintf(w, "%s\n", r.Line)
	cyanColor.Fprintln(w, "Type a statement and press enter; type .exit to quit.")
	blueColor.Fprintf(w, "%s\n", r.Line)
}

// session accumulates the statements seen so far, so later lines can
// reference names bound by earlier ones, and a persistent interpreter
// whose environment carries those bindings forward.
type session struct {
	history []ast.Stmt
	in      *interp.Interp
}

// Start runs the REPL loop against stdin-style readline input, writing
// results and diagnostics to w. It returns when the user exits or the
// input stream closes.
func (r *Repl) Start(w io.Writer) {
	r.PrintBannerInfo(w)

	rl, err := readline.NewEx(&readline.Config{Prompt: r.Prompt})
	if err != nil {
		fmt.Fprintf(w, "readline: %v\n", err)
		return
	}
	defer rl.Close()

	sess := &session{in: interp.New()}
	sess.in.Out = w

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(w, "Good bye!")
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			fmt.Fprintln(w, "Good bye!")
			return
		}
		rl.SaveHistory(line)
		sess.evalLine(w, line)
	}
}

// evalLine parses, checks, and interprets one line, rolling back the
// session's history if the line doesn't check cleanly so a mistake
// doesn't poison later lines (spec §7: diagnostics are reported, not
// fatal to the surrounding process, outside of file-mode execution).
func (s *session) evalLine(w io.Writer, line string) {
	defer func() {
		if rec := recover(); rec != nil {
			redColor.Fprintf(w, "[runtime error] %v\n", rec)
		}
	}()

	prog, err := parser.Parse(line)
	if err != nil {
		redColor.Fprintf(w, "%v\n", err)
		return
	}

	candidate := append(append([]ast.Stmt{}, s.history...), prog.Stmts...)
	diags := check.Check(&ast.Program{Stmts: candidate})
	if len(diags) > 0 {
		for _, d := range diags {
			redColor.Fprintf(w, "%v\n", d)
		}
		return
	}
	s.history = candidate

	if len(prog.Stmts) == 0 {
		return
	}

	// A trailing bare expression statement is echoed (yellow, matching
	// the teacher's executeWithRecovery), the same courtesy a PRINT
	// would give explicitly — everything before it only runs for its
	// side effects.
	toRun := prog.Stmts
	exprStmt, isBareExpr := prog.Stmts[len(prog.Stmts)-1].(*ast.ExprStmt)
	if isBareExpr {
		toRun = prog.Stmts[:len(prog.Stmts)-1]
	}

	if err := s.in.Run(&ast.Program{Stmts: toRun}); err != nil {
		redColor.Fprintf(w, "%v\n", err)
		return
	}
	if isBareExpr {
		v, err := s.in.EvalExpr(exprStmt.X)
		if err != nil {
			redColor.Fprintf(w, "%v\n", err)
			return
		}
		yellowColor.Fprintf(w, "%s\n", v.String())
	}
}
