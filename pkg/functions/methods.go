package functions

import (
	"strings"

	"github.com/perbu/celeval/pkg/cel"
)

func (s *Standard) registerMethods() {
	s.methods["contains"] = methodContains
	s.methods["startsWith"] = methodStartsWith
	s.methods["endsWith"] = methodEndsWith
	s.methods["toLowerCase"] = methodToLowerCase
	s.methods["toUpperCase"] = methodToUpperCase
	s.methods["trim"] = methodTrim
	s.methods["replace"] = methodReplace
	s.methods["split"] = methodSplit
	s.methods["size"] = methodSize
}

// methodContains supports both string substring containment and sequence
// membership, matching the `in` operator's list semantics.
func methodContains(receiver cel.Value, args []cel.Value) (cel.Value, error) {
	if err := requireArity(args, 1, "contains"); err != nil {
		return cel.Value{}, err
	}
	if str, ok := receiver.AsString(); ok {
		sub, ok := args[0].AsString()
		if !ok {
			return cel.Value{}, &DispatchError{Message: "contains: argument must be a string"}
		}
		return cel.Bool(strings.Contains(str, sub)), nil
	}
	if list, ok := receiver.AsList(); ok {
		for _, e := range list {
			if cel.Equal(e, args[0]) {
				return cel.Bool(true), nil
			}
		}
		return cel.Bool(false), nil
	}
	return cel.Value{}, &DispatchError{Message: "contains: unsupported receiver type " + receiver.TypeName()}
}

func stringMethod1(name string, fn func(s, arg string) bool) MethodFunc {
	return func(receiver cel.Value, args []cel.Value) (cel.Value, error) {
		if err := requireArity(args, 1, name); err != nil {
			return cel.Value{}, err
		}
		str, ok := receiver.AsString()
		if !ok {
			return cel.Value{}, &DispatchError{Message: name + ": receiver must be a string, got " + receiver.TypeName()}
		}
		arg, ok := args[0].AsString()
		if !ok {
			return cel.Value{}, &DispatchError{Message: name + ": argument must be a string"}
		}
		return cel.Bool(fn(str, arg)), nil
	}
}

var methodStartsWith = stringMethod1("startsWith", strings.HasPrefix)
var methodEndsWith = stringMethod1("endsWith", strings.HasSuffix)

func stringTransform0(name string, fn func(string) string) MethodFunc {
	return func(receiver cel.Value, args []cel.Value) (cel.Value, error) {
		if err := requireArity(args, 0, name); err != nil {
			return cel.Value{}, err
		}
		str, ok := receiver.AsString()
		if !ok {
			return cel.Value{}, &DispatchError{Message: name + ": receiver must be a string, got " + receiver.TypeName()}
		}
		return cel.String(fn(str)), nil
	}
}

var methodToLowerCase = stringTransform0("toLowerCase", strings.ToLower)
var methodToUpperCase = stringTransform0("toUpperCase", strings.ToUpper)
var methodTrim = stringTransform0("trim", strings.TrimSpace)

func methodReplace(receiver cel.Value, args []cel.Value) (cel.Value, error) {
	if err := requireArity(args, 2, "replace"); err != nil {
		return cel.Value{}, err
	}
	str, ok := receiver.AsString()
	if !ok {
		return cel.Value{}, &DispatchError{Message: "replace: receiver must be a string, got " + receiver.TypeName()}
	}
	old, ok := args[0].AsString()
	if !ok {
		return cel.Value{}, &DispatchError{Message: "replace: first argument must be a string"}
	}
	repl, ok := args[1].AsString()
	if !ok {
		return cel.Value{}, &DispatchError{Message: "replace: second argument must be a string"}
	}
	return cel.String(strings.ReplaceAll(str, old, repl)), nil
}

// methodSplit takes a literal separator, not a pattern: it is not regex
// matches.
func methodSplit(receiver cel.Value, args []cel.Value) (cel.Value, error) {
	if err := requireArity(args, 1, "split"); err != nil {
		return cel.Value{}, err
	}
	str, ok := receiver.AsString()
	if !ok {
		return cel.Value{}, &DispatchError{Message: "split: receiver must be a string, got " + receiver.TypeName()}
	}
	sep, ok := args[0].AsString()
	if !ok {
		return cel.Value{}, &DispatchError{Message: "split: argument must be a string"}
	}
	parts := strings.Split(str, sep)
	out := make([]cel.Value, len(parts))
	for i, p := range parts {
		out[i] = cel.String(p)
	}
	return cel.List(out), nil
}

func methodSize(receiver cel.Value, args []cel.Value) (cel.Value, error) {
	all := make([]cel.Value, 0, len(args)+1)
	all = append(all, receiver)
	all = append(all, args...)
	return fnSize(all)
}
