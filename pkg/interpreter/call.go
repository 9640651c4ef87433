package interpreter

import (
	"fmt"

	"github.com/perbu/celeval/pkg/ast"
	"github.com/perbu/celeval/pkg/cel"
)

func (it *Interpreter) evalCall(e *ast.Call, env Env) (cel.Value, error) {
	if e.IsMacro {
		return it.evalMacro(e, env)
	}

	// has(x.field) is the single-argument presence-test form; has(m, "k")
	// falls through to the registry's two-argument global function.
	if e.Function == "has" && e.Target == nil && len(e.Args) == 1 {
		present, err := it.evalPresenceTest(e.Args[0], env)
		if err != nil {
			return cel.Value{}, err
		}
		return cel.Bool(present), nil
	}

	args := make([]cel.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := it.eval(a, env)
		if err != nil {
			return cel.Value{}, err
		}
		args[i] = v
	}

	if e.Target == nil {
		return it.registry.CallFunction(e.Function, args)
	}
	recv, err := it.eval(e.Target, env)
	if err != nil {
		return cel.Value{}, err
	}
	return it.registry.CallMethod(recv, e.Function, args)
}

// evalPresenceTest backs has(x.field): it never raises for a missing
// field or a null target, yielding false instead.
func (it *Interpreter) evalPresenceTest(n ast.Node, env Env) (bool, error) {
	switch e := n.(type) {
	case *ast.Select:
		synthetic := &ast.Select{Position: e.Position, Operand: e.Operand, Field: e.Field, IsTest: true}
		v, err := it.evalSelect(synthetic, env)
		if err != nil {
			return false, err
		}
		b, _ := v.AsBool()
		return b, nil
	case *ast.Index:
		target, err := it.eval(e.Operand, env)
		if err != nil {
			return false, err
		}
		if target.IsNull() {
			return false, nil
		}
		key, err := it.eval(e.Index, env)
		if err != nil {
			return false, err
		}
		m, ok := target.AsMap()
		if !ok {
			return false, fmt.Errorf("has() requires a map target, got %s", target.TypeName())
		}
		_, present := m.Get(key)
		return present, nil
	default:
		return false, fmt.Errorf("has() requires a field selection or index expression")
	}
}

var macroSequenceRequirement = "macro %q requires a list target, got %s"

// evalMacro implements map/filter/all/exists/existsOne. All five share
// identical iteration-variable scoping (save the prior binding, if any,
// and restore it via defer on every exit path including errors) but
// differ in fold shape and short-circuit behavior, so each gets its own
// direct loop rather than going through the generic Comprehension fold.
func (it *Interpreter) evalMacro(e *ast.Call, env Env) (cel.Value, error) {
	if e.Target == nil {
		return cel.Value{}, fmt.Errorf("macro %q requires a target", e.Function)
	}
	target, err := it.eval(e.Target, env)
	if err != nil {
		return cel.Value{}, err
	}
	if target.IsNull() {
		return cel.Value{}, fmt.Errorf("macro %q requires a non-null target", e.Function)
	}
	seq, ok := target.AsList()
	if !ok {
		return cel.Value{}, fmt.Errorf(macroSequenceRequirement, e.Function, target.TypeName())
	}
	if len(e.Args) != 2 {
		return cel.Value{}, fmt.Errorf("macro %q requires exactly two arguments", e.Function)
	}
	iterIdent, ok := e.Args[0].(*ast.Identifier)
	if !ok {
		return cel.Value{}, fmt.Errorf("macro %q: first argument must be an identifier", e.Function)
	}
	iterVar := iterIdent.Name
	body := e.Args[1]

	prev, hadPrev := env[iterVar]
	defer func() {
		if hadPrev {
			env[iterVar] = prev
		} else {
			delete(env, iterVar)
		}
	}()

	switch e.Function {
	case "map":
		out := make([]cel.Value, 0, len(seq))
		for _, elem := range seq {
			env[iterVar] = elem
			v, err := it.eval(body, env)
			if err != nil {
				return cel.Value{}, err
			}
			out = append(out, v)
		}
		return cel.List(out), nil

	case "filter":
		out := make([]cel.Value, 0, len(seq))
		for _, elem := range seq {
			env[iterVar] = elem
			v, err := it.eval(body, env)
			if err != nil {
				return cel.Value{}, err
			}
			if b, ok := v.AsBool(); ok && b {
				out = append(out, elem)
			}
		}
		return cel.List(out), nil

	case "all":
		for _, elem := range seq {
			env[iterVar] = elem
			v, err := it.eval(body, env)
			if err != nil {
				return cel.Value{}, err
			}
			if b, ok := v.AsBool(); !ok || !b {
				return cel.Bool(false), nil
			}
		}
		return cel.Bool(true), nil

	case "exists":
		for _, elem := range seq {
			env[iterVar] = elem
			v, err := it.eval(body, env)
			if err != nil {
				return cel.Value{}, err
			}
			if b, ok := v.AsBool(); ok && b {
				return cel.Bool(true), nil
			}
		}
		return cel.Bool(false), nil

	case "existsOne":
		count := 0
		for _, elem := range seq {
			env[iterVar] = elem
			v, err := it.eval(body, env)
			if err != nil {
				return cel.Value{}, err
			}
			if b, ok := v.AsBool(); ok && b {
				count++
				if count > 1 {
					return cel.Bool(false), nil
				}
			}
		}
		return cel.Bool(count == 1), nil

	default:
		return cel.Value{}, fmt.Errorf("unknown macro %q", e.Function)
	}
}

// evalComprehension evaluates a bare Comprehension node: the generalized
// fold that the five built-in macros desugar to conceptually, exposed
// directly for callers (or future macros) that construct one explicitly.
// Unlike the built-in macros it performs no short-circuit: every element
// is visited in order.
func (it *Interpreter) evalComprehension(e *ast.Comprehension, env Env) (cel.Value, error) {
	rangeVal, err := it.eval(e.Range, env)
	if err != nil {
		return cel.Value{}, err
	}
	seq, ok := rangeVal.AsList()
	if !ok {
		return cel.Value{}, fmt.Errorf("comprehension range must be a list, got %s", rangeVal.TypeName())
	}

	prevIter, hadIter := env[e.IterVar]
	prevAccum, hadAccum := env[e.AccumVar]
	defer func() {
		if hadIter {
			env[e.IterVar] = prevIter
		} else {
			delete(env, e.IterVar)
		}
		if hadAccum {
			env[e.AccumVar] = prevAccum
		} else {
			delete(env, e.AccumVar)
		}
	}()

	initVal, err := it.eval(e.Init, env)
	if err != nil {
		return cel.Value{}, err
	}
	env[e.AccumVar] = initVal

	for _, elem := range seq {
		env[e.IterVar] = elem
		cond, err := it.eval(e.Condition, env)
		if err != nil {
			return cel.Value{}, err
		}
		if !cond.Truthy() {
			continue
		}
		step, err := it.eval(e.Step, env)
		if err != nil {
			return cel.Value{}, err
		}
		env[e.AccumVar] = step
	}

	return it.eval(e.Result, env)
}
