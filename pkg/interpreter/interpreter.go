// Package interpreter tree-walks a parsed ast.Node against an environment
// of bound values, delegating non-macro function and method calls to a
// Registry.
package interpreter

import (
	"fmt"

	"github.com/perbu/celeval/pkg/ast"
	"github.com/perbu/celeval/pkg/cel"
)

// Registry is the capability the interpreter calls through for global
// functions and receiver-dispatched methods. It is satisfied structurally
// by pkg/functions.Standard; the interpreter never imports that package,
// keeping the core free of its standard-library dependency.
type Registry interface {
	CallFunction(name string, args []cel.Value) (cel.Value, error)
	CallMethod(receiver cel.Value, name string, args []cel.Value) (cel.Value, error)
}

// Env binds identifier names to values. The interpreter mutates it only to
// scope comprehension/macro iteration variables, always restoring prior
// bindings before returning control to the caller.
type Env map[string]cel.Value

// Interpreter evaluates AST nodes against an Env using registry for
// non-macro calls.
type Interpreter struct {
	registry Registry
}

// New returns an Interpreter that dispatches function and method calls to
// registry.
func New(registry Registry) *Interpreter {
	return &Interpreter{registry: registry}
}

// Eval evaluates n against env. env is mutated transiently for macro and
// comprehension scoping but is bitwise equal to its input once Eval
// returns, whether it returns successfully or with an error.
func (it *Interpreter) Eval(n ast.Node, env Env) (cel.Value, error) {
	return it.eval(n, env)
}

func (it *Interpreter) eval(n ast.Node, env Env) (cel.Value, error) {
	switch e := n.(type) {
	case *ast.Literal:
		return literalValue(e)
	case *ast.Identifier:
		v, ok := env[e.Name]
		if !ok {
			return cel.Value{}, fmt.Errorf("undefined variable %q", e.Name)
		}
		return v, nil
	case *ast.Select:
		return it.evalSelect(e, env)
	case *ast.Index:
		return it.evalIndex(e, env)
	case *ast.Call:
		return it.evalCall(e, env)
	case *ast.ListExpr:
		return it.evalListExpr(e, env)
	case *ast.MapExpr:
		return it.evalMapExpr(e, env)
	case *ast.Struct:
		return it.evalStruct(e, env)
	case *ast.Unary:
		return it.evalUnary(e, env)
	case *ast.Binary:
		return it.evalBinary(e, env)
	case *ast.Conditional:
		return it.evalConditional(e, env)
	case *ast.Comprehension:
		return it.evalComprehension(e, env)
	default:
		return cel.Value{}, fmt.Errorf("unsupported AST node %T", n)
	}
}

func literalValue(e *ast.Literal) (cel.Value, error) {
	switch e.Kind {
	case ast.LiteralNull:
		return cel.Null(), nil
	case ast.LiteralBool:
		return cel.Bool(e.Value.(bool)), nil
	case ast.LiteralInt:
		return cel.Int(e.Value.(int64)), nil
	case ast.LiteralUint:
		return cel.Uint(e.Value.(uint64)), nil
	case ast.LiteralDouble:
		return cel.Double(e.Value.(float64)), nil
	case ast.LiteralString:
		return cel.String(e.Value.(string)), nil
	case ast.LiteralBytes:
		return cel.Bytes(e.Value.([]byte)), nil
	default:
		return cel.Value{}, fmt.Errorf("unknown literal kind %v", e.Kind)
	}
}

func (it *Interpreter) evalSelect(e *ast.Select, env Env) (cel.Value, error) {
	if e.Operand == nil {
		v, ok := env[e.Field]
		if e.IsTest {
			return cel.Bool(ok), nil
		}
		if !ok {
			return cel.Value{}, fmt.Errorf("undefined variable %q", e.Field)
		}
		return v, nil
	}

	target, err := it.eval(e.Operand, env)
	if err != nil {
		return cel.Value{}, err
	}
	if target.IsNull() {
		if e.IsTest {
			return cel.Bool(false), nil
		}
		return cel.Value{}, fmt.Errorf("cannot select field %q from null", e.Field)
	}
	m, ok := target.AsMap()
	if !ok {
		if e.IsTest {
			return cel.Value{}, fmt.Errorf("has() requires a map target, got %s", target.TypeName())
		}
		return cel.Value{}, fmt.Errorf("cannot select field %q from %s", e.Field, target.TypeName())
	}
	v, present := m.Get(cel.String(e.Field))
	if e.IsTest {
		return cel.Bool(present), nil
	}
	if !present {
		return cel.Value{}, fmt.Errorf("no such key: %q", e.Field)
	}
	return v, nil
}

func (it *Interpreter) evalIndex(e *ast.Index, env Env) (cel.Value, error) {
	operand, err := it.eval(e.Operand, env)
	if err != nil {
		return cel.Value{}, err
	}
	if operand.IsNull() {
		return cel.Value{}, fmt.Errorf("cannot index null")
	}
	idx, err := it.eval(e.Index, env)
	if err != nil {
		return cel.Value{}, err
	}

	if list, ok := operand.AsList(); ok {
		i, ok := asIndex(idx)
		if !ok {
			return cel.Value{}, fmt.Errorf("list index must be an integer, got %s", idx.TypeName())
		}
		if i < 0 || i >= int64(len(list)) {
			return cel.Value{}, fmt.Errorf("index out of range: %d", i)
		}
		return list[i], nil
	}
	if s, ok := operand.AsString(); ok {
		runes := []rune(s)
		i, ok := asIndex(idx)
		if !ok {
			return cel.Value{}, fmt.Errorf("string index must be an integer, got %s", idx.TypeName())
		}
		if i < 0 || i >= int64(len(runes)) {
			return cel.Value{}, fmt.Errorf("index out of range: %d", i)
		}
		return cel.String(string(runes[i])), nil
	}
	if m, ok := operand.AsMap(); ok {
		v, present := m.Get(idx)
		if !present {
			return cel.Value{}, fmt.Errorf("key not found: %s", idx.CanonicalString())
		}
		return v, nil
	}
	return cel.Value{}, fmt.Errorf("cannot index %s", operand.TypeName())
}

func asIndex(v cel.Value) (int64, bool) {
	if i, ok := v.AsInt(); ok {
		return i, true
	}
	if u, ok := v.AsUint(); ok {
		return int64(u), true
	}
	return 0, false
}

func (it *Interpreter) evalListExpr(e *ast.ListExpr, env Env) (cel.Value, error) {
	vals := make([]cel.Value, len(e.Elements))
	for i, el := range e.Elements {
		v, err := it.eval(el, env)
		if err != nil {
			return cel.Value{}, err
		}
		vals[i] = v
	}
	return cel.List(vals), nil
}

func (it *Interpreter) evalMapExpr(e *ast.MapExpr, env Env) (cel.Value, error) {
	m := cel.NewMapping()
	for _, ent := range e.Entries {
		k, err := it.eval(ent.Key, env)
		if err != nil {
			return cel.Value{}, err
		}
		v, err := it.eval(ent.Value, env)
		if err != nil {
			return cel.Value{}, err
		}
		m.Set(k, v)
	}
	return cel.Map(m), nil
}

// evalStruct builds a Struct literal the same way as a MapExpr keyed by
// field name: this core has no host-provided struct-type registry (that
// would live in the out-of-scope façade), so TypeName is carried on the
// AST node but not otherwise enforced at evaluation time.
func (it *Interpreter) evalStruct(e *ast.Struct, env Env) (cel.Value, error) {
	m := cel.NewMapping()
	for _, f := range e.Fields {
		v, err := it.eval(f.Value, env)
		if err != nil {
			return cel.Value{}, err
		}
		m.Set(cel.String(f.Name), v)
	}
	return cel.Map(m), nil
}
