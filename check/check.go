/*
File    : wabbit/check/check.go
Package : check
*/

// Package check implements the Wabbit type checker: a single tree walk
// that assigns an ast.Type to every expression and accumulates
// diagnostics, without evaluating anything (spec §4.4). Its Env chain is
// declaration-only: bindings carry a declared type and kind but never a
// runtime value.
package check

import (
	"fmt"

	"github.com/wabbitlang/wabbit/ast"
)

// Diagnostic is one accumulated type error, reported with its source
// line the way the parser reports syntax errors (spec §7).
type Diagnostic struct {
	Line int
	Msg  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Msg)
}

// funcSig records a declared function's parameter and return types so
// Call expressions can be checked without re-walking the FuncDef.
type funcSig struct {
	params []ast.Type
	ret    ast.Type
}

// scope is one link of the checker's declaration-only binding chain.
type scope struct {
	vars   map[string]varInfo
	parent *scope
}

type varInfo struct {
	typ   ast.Type
	isConst bool
}

func newScope(parent *scope) *scope {
	return &scope{vars: make(map[string]varInfo), parent: parent}
}

func (s *scope) define(name string, typ ast.Type, isConst bool) {
	s.vars[name] = varInfo{typ: typ, isConst: isConst}
}

func (s *scope) lookup(name string) (varInfo, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return varInfo{}, false
}

// Checker holds the accumulating state of one check pass.
type Checker struct {
	diags     []Diagnostic
	funcs     map[string]funcSig
	whileDepth int
	funcRet   []ast.Type // stack of enclosing function return types; empty means top level
}

// Check type-checks prog, returning the collected diagnostics. The
// program is safe to evaluate only if the returned slice is empty
// (spec §4.4: "the check returns failure if any were reported").
func Check(prog *ast.Program) []Diagnostic {
	c := &Checker{funcs: make(map[string]funcSig)}
	top := newScope(nil)

	// Function signatures are visible throughout the whole program
	// (forward references and recursion), so they're collected first.
	for _, s := range prog.Stmts {
		if fn, ok := s.(*ast.FuncDef); ok {
			if _, dup := c.funcs[fn.Name]; dup {
				c.errorf(fn.Line, "function %q is already declared", fn.Name)
				continue
			}
			params := make([]ast.Type, len(fn.Params))
			for i, p := range fn.Params {
				params[i] = p.Type
			}
			c.funcs[fn.Name] = funcSig{params: params, ret: fn.ReturnType}
		}
	}

	for _, s := range prog.Stmts {
		c.checkStmt(s, top)
	}
	return c.diags
}

func (c *Checker) errorf(line int, format string, args ...any) {
	c.diags = append(c.diags, Diagnostic{Line: line, Msg: fmt.Sprintf(format, args...)})
}
