// Package functions implements the standard global-function and
// receiver-method dispatch tables the interpreter calls through for every
// non-macro Call node.
package functions

import (
	"strconv"

	"github.com/perbu/celeval/pkg/cel"
)

// GlobalFunc implements a zero-receiver call like size(x) or max(a, b, c).
type GlobalFunc func(args []cel.Value) (cel.Value, error)

// MethodFunc implements a receiver-dispatched call like x.contains(y).
type MethodFunc func(receiver cel.Value, args []cel.Value) (cel.Value, error)

// Standard is the minimum standard library required by spec section 4.5.
// It is logically immutable once built by NewStandard; Register/
// RegisterMethod exist for host programs that extend it before first use,
// not for runtime mutation during evaluation.
type Standard struct {
	globals map[string]GlobalFunc
	methods map[string]MethodFunc
}

// NewStandard returns a Standard registry pre-populated with every
// function and method named in spec section 4.5.
func NewStandard() *Standard {
	s := &Standard{
		globals: make(map[string]GlobalFunc),
		methods: make(map[string]MethodFunc),
	}
	s.registerGlobals()
	s.registerMethods()
	return s
}

// Register adds or overrides a global function.
func (s *Standard) Register(name string, fn GlobalFunc) {
	s.globals[name] = fn
}

// RegisterMethod adds or overrides a receiver-dispatched method.
func (s *Standard) RegisterMethod(name string, fn MethodFunc) {
	s.methods[name] = fn
}

// CallFunction implements interpreter.Registry.
func (s *Standard) CallFunction(name string, args []cel.Value) (cel.Value, error) {
	fn, ok := s.globals[name]
	if !ok {
		return cel.Value{}, unknownFunctionError(name)
	}
	return fn(args)
}

// CallMethod implements interpreter.Registry.
func (s *Standard) CallMethod(receiver cel.Value, name string, args []cel.Value) (cel.Value, error) {
	fn, ok := s.methods[name]
	if !ok {
		return cel.Value{}, unknownMethodError(name)
	}
	return fn(receiver, args)
}

func unknownFunctionError(name string) error {
	return &DispatchError{Message: "unknown function: " + name}
}

func unknownMethodError(name string) error {
	return &DispatchError{Message: "unknown method: " + name}
}

// DispatchError is raised for unknown-function/method and bad-argument
// evaluation errors, per spec section 7's error category list.
type DispatchError struct {
	Message string
}

func (e *DispatchError) Error() string { return e.Message }

func requireArity(args []cel.Value, n int, name string) error {
	if len(args) != n {
		return &DispatchError{Message: arityMessage(name, n, len(args))}
	}
	return nil
}

func arityMessage(name string, want, got int) string {
	if want == 1 {
		return name + ": expected 1 argument, got " + strconv.Itoa(got)
	}
	return name + ": expected " + strconv.Itoa(want) + " arguments, got " + strconv.Itoa(got)
}
