/*
File    : wabbit/env/env.go
Package : env
*/

// Package env implements the interpreter's lexical scope chain: a chain
// of binding tables linked to a parent, generalized from the teacher's
// scope.Scope (LookUp walks the chain outward, Define only ever touches
// the current link, Assign rewrites the link where a name was
// originally bound). The type checker keeps its own declaration-only
// scope chain and does not use this package.
//
// Unlike scope.Scope, a binding here also records its Kind (var, const,
// param, or func), so IsConst can answer whether it was introduced with
// const. Bindings hold a runtime value only, not a declared ast.Type.
package env

import "github.com/wabbitlang/wabbit/object"

// Kind distinguishes how a name entered the environment.
type Kind int

const (
	VarBinding Kind = iota
	ConstBinding
	ParamBinding
	FuncBinding
)

// binding is one entry in an Env's table.
type binding struct {
	value object.Value
	kind  Kind
}

// Env is one link of the lexical scope chain. The zero Env is not
// usable; construct with New or NewChild.
type Env struct {
	table  map[string]*binding
	Parent *Env
}

// New creates a root environment with no parent — the global scope.
func New() *Env {
	return &Env{table: make(map[string]*binding)}
}

// NewChild creates a nested environment whose lookups fall through to
// parent when a name isn't found locally.
func NewChild(parent *Env) *Env {
	return &Env{table: make(map[string]*binding), Parent: parent}
}

// Define introduces a new binding in this environment only. It does not
// check for redeclaration: defining a name already bound in this same
// environment replaces the earlier binding. The checker does not
// reject a duplicate var or const declaration either.
func (e *Env) Define(name string, v object.Value, k Kind) {
	e.table[name] = &binding{value: v, kind: k}
}

// LookUp searches this environment and its ancestors for name,
// implementing object.Environment.
func (e *Env) LookUp(name string) (object.Value, bool) {
	for cur := e; cur != nil; cur = cur.Parent {
		if b, ok := cur.table[name]; ok {
			return b.value, true
		}
	}
	return nil, false
}

// Assign rewrites the value of an existing binding wherever it lives in
// the chain, returning false if name is unbound anywhere.
func (e *Env) Assign(name string, v object.Value) bool {
	for cur := e; cur != nil; cur = cur.Parent {
		if b, ok := cur.table[name]; ok {
			b.value = v
			return true
		}
	}
	return false
}

// IsConst reports whether name was introduced with const, searching the
// whole chain. Assigning to a const binding is a checker-time error
// (spec §4.4).
func (e *Env) IsConst(name string) bool {
	for cur := e; cur != nil; cur = cur.Parent {
		if b, ok := cur.table[name]; ok {
			return b.kind == ConstBinding
		}
	}
	return false
}

// KindOf reports how name was bound, searching the whole chain.
func (e *Env) KindOf(name string) (Kind, bool) {
	for cur := e; cur != nil; cur = cur.Parent {
		if b, ok := cur.table[name]; ok {
			return b.kind, true
		}
	}
	return 0, false
}
