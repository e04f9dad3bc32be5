/*
File    : wabbit/object/object.go
Package : object
*/

// Package object defines the interpreter's runtime value representation:
// the four Wabbit scalar types and the function value produced by a
// top-level FuncDef. The virtual machine does not use it; it keeps raw
// int64 and float64 values on its own stacks.
//
// This narrows the teacher's GoMixObject hierarchy (which also carried
// strings, arrays, maps, sets, structs, and control-signal objects) down
// to Wabbit's scalar-only value domain (spec §3, Non-goals: no strings
// beyond single-char literals, no heap-allocated values).
package object

import (
	"fmt"
	"strconv"

	"github.com/wabbitlang/wabbit/ast"
)

// Kind identifies the runtime type of a Value, mirroring ast.Type plus
// Func for callable values.
type Kind string

const (
	IntKind   Kind = "int"
	FloatKind Kind = "float"
	BoolKind  Kind = "bool"
	CharKind  Kind = "char"
	FuncKind  Kind = "func"
)

// Value is any runtime Wabbit value. It is implemented by a closed set
// of types, so consumers are expected to type-switch exhaustively.
type Value interface {
	Kind() Kind
	String() string
}

// Int is a 64-bit signed integer value.
type Int int64

func (Int) Kind() Kind       { return IntKind }
func (v Int) String() string { return fmt.Sprintf("%d", int64(v)) }

// Float is a 64-bit floating-point value.
type Float float64

func (Float) Kind() Kind { return FloatKind }

// String renders the float in a locale-independent, round-trippable
// decimal form (spec §6), not Go's default %v/%g shorthand.
func (v Float) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() Kind       { return BoolKind }
func (v Bool) String() string { return fmt.Sprintf("%t", bool(v)) }

// Char is a single byte, Wabbit's only character unit (spec §3: no
// strings beyond single-char literals).
type Char byte

func (Char) Kind() Kind       { return CharKind }
func (v Char) String() string { return string([]byte{byte(v)}) }

// ZeroValue returns the default value a var declaration without an
// initializer takes on, indexed by its declared type (spec §4.4).
func ZeroValue(t ast.Type) Value {
	switch t {
	case ast.Int:
		return Int(0)
	case ast.Float:
		return Float(0)
	case ast.Bool:
		return Bool(false)
	case ast.Char:
		return Char(0)
	default:
		panic(fmt.Sprintf("object: no zero value for type %q", t))
	}
}

// TypeOf reports the ast.Type corresponding to a runtime Value's Kind.
func TypeOf(v Value) ast.Type {
	switch v.Kind() {
	case IntKind:
		return ast.Int
	case FloatKind:
		return ast.Float
	case BoolKind:
		return ast.Bool
	case CharKind:
		return ast.Char
	default:
		panic(fmt.Sprintf("object: value of kind %q has no ast.Type", v.Kind()))
	}
}

// Function is a callable value: a top-level FuncDef closed over its
// definition-site environment. Definition-site, not call-site, because
// Wabbit functions are only ever declared at module scope (spec §4.5).
type Function struct {
	Def *ast.FuncDef
	Env Environment
}

func (*Function) Kind() Kind       { return FuncKind }
func (f *Function) String() string { return fmt.Sprintf("func(%s)", f.Def.Name) }

// Environment is the narrow slice of env.Env that object.Function needs,
// kept here to avoid an import cycle between object and env (env.Env
// stores object.Value bindings, so env cannot import object's Function
// back into itself through a concrete type).
type Environment interface {
	LookUp(name string) (Value, bool)
}
