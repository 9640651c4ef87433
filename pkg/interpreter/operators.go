package interpreter

import (
	"fmt"
	"strings"

	"github.com/perbu/celeval/pkg/ast"
	"github.com/perbu/celeval/pkg/cel"
)

func (it *Interpreter) evalUnary(e *ast.Unary, env Env) (cel.Value, error) {
	operand, err := it.eval(e.Operand, env)
	if err != nil {
		return cel.Value{}, err
	}
	switch e.Op {
	case ast.OpNot:
		b, ok := operand.AsBool()
		if !ok {
			return cel.Value{}, fmt.Errorf("! requires a boolean operand, got %s", operand.TypeName())
		}
		return cel.Bool(!b), nil
	case ast.OpNegate:
		return cel.Negate(operand)
	default:
		return cel.Value{}, fmt.Errorf("unknown unary operator %v", e.Op)
	}
}

// isTrue is the strict boolean-true test spec section 4.4 phrases AND, OR,
// and the conditional in terms of — deliberately stricter than Value.Truthy,
// which also accepts non-empty strings/lists/numbers. A non-boolean operand
// here is simply not true, not an error.
func isTrue(v cel.Value) bool {
	b, ok := v.AsBool()
	return ok && b
}

func (it *Interpreter) evalConditional(e *ast.Conditional, env Env) (cel.Value, error) {
	cond, err := it.eval(e.Condition, env)
	if err != nil {
		return cel.Value{}, err
	}
	if isTrue(cond) {
		return it.eval(e.Then, env)
	}
	return it.eval(e.Else, env)
}

func (it *Interpreter) evalBinary(e *ast.Binary, env Env) (cel.Value, error) {
	switch e.Op {
	case ast.OpAnd:
		left, err := it.eval(e.Left, env)
		if err != nil {
			return cel.Value{}, err
		}
		if !isTrue(left) {
			return cel.Bool(false), nil
		}
		right, err := it.eval(e.Right, env)
		if err != nil {
			return cel.Value{}, err
		}
		return cel.Bool(isTrue(right)), nil
	case ast.OpOr:
		left, err := it.eval(e.Left, env)
		if err != nil {
			return cel.Value{}, err
		}
		if isTrue(left) {
			return cel.Bool(true), nil
		}
		right, err := it.eval(e.Right, env)
		if err != nil {
			return cel.Value{}, err
		}
		return cel.Bool(isTrue(right)), nil
	}

	left, err := it.eval(e.Left, env)
	if err != nil {
		return cel.Value{}, err
	}
	right, err := it.eval(e.Right, env)
	if err != nil {
		return cel.Value{}, err
	}

	switch e.Op {
	case ast.OpAdd:
		return evalAdd(left, right)
	case ast.OpSub:
		return cel.NumSub(left, right)
	case ast.OpMul:
		return evalMul(left, right)
	case ast.OpDiv:
		return cel.NumDiv(left, right)
	case ast.OpMod:
		return cel.NumMod(left, right)
	case ast.OpEq:
		return cel.Bool(cel.Equal(left, right)), nil
	case ast.OpNe:
		return cel.Bool(!cel.Equal(left, right)), nil
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		c, err := cel.Compare(left, right)
		if err != nil {
			return cel.Value{}, err
		}
		return cel.Bool(satisfies(e.Op, c)), nil
	case ast.OpIn:
		return evalIn(left, right)
	default:
		return cel.Value{}, fmt.Errorf("unknown binary operator %v", e.Op)
	}
}

func satisfies(op ast.BinaryOp, c int) bool {
	switch op {
	case ast.OpLt:
		return c < 0
	case ast.OpLe:
		return c <= 0
	case ast.OpGt:
		return c > 0
	case ast.OpGe:
		return c >= 0
	default:
		return false
	}
}

// evalAdd implements the `+` overload table: string concatenation (using
// the other operand's canonical form when it isn't itself a string),
// sequence concatenation, and numeric addition.
func evalAdd(left, right cel.Value) (cel.Value, error) {
	if left.Kind() == cel.KindString || right.Kind() == cel.KindString {
		ls, lok := left.AsString()
		rs, rok := right.AsString()
		if !lok {
			ls = left.CanonicalString()
		}
		if !rok {
			rs = right.CanonicalString()
		}
		return cel.String(ls + rs), nil
	}
	if left.Kind() == cel.KindList && right.Kind() == cel.KindList {
		l, _ := left.AsList()
		r, _ := right.AsList()
		out := make([]cel.Value, 0, len(l)+len(r))
		out = append(out, l...)
		out = append(out, r...)
		return cel.List(out), nil
	}
	if left.IsNumeric() && right.IsNumeric() {
		return cel.NumAdd(left, right)
	}
	return cel.Value{}, fmt.Errorf("+ not defined for %s and %s", left.TypeName(), right.TypeName())
}

// evalMul implements number*number, string*integer repetition, and
// sequence*integer repetition.
func evalMul(left, right cel.Value) (cel.Value, error) {
	if left.IsNumeric() && right.IsNumeric() {
		return cel.NumMul(left, right)
	}
	if left.Kind() == cel.KindString {
		n, ok := asRepeatCount(right)
		if !ok {
			return cel.Value{}, fmt.Errorf("string repetition requires an integer count, got %s", right.TypeName())
		}
		if n < 0 {
			return cel.Value{}, fmt.Errorf("repetition count must be non-negative, got %d", n)
		}
		s, _ := left.AsString()
		return cel.String(strings.Repeat(s, int(n))), nil
	}
	if left.Kind() == cel.KindList {
		n, ok := asRepeatCount(right)
		if !ok {
			return cel.Value{}, fmt.Errorf("sequence repetition requires an integer count, got %s", right.TypeName())
		}
		if n < 0 {
			return cel.Value{}, fmt.Errorf("repetition count must be non-negative, got %d", n)
		}
		l, _ := left.AsList()
		out := make([]cel.Value, 0, len(l)*int(n))
		for i := int64(0); i < n; i++ {
			out = append(out, l...)
		}
		return cel.List(out), nil
	}
	return cel.Value{}, fmt.Errorf("* not defined for %s and %s", left.TypeName(), right.TypeName())
}

func asRepeatCount(v cel.Value) (int64, bool) {
	if i, ok := v.AsInt(); ok {
		return i, true
	}
	if u, ok := v.AsUint(); ok {
		return int64(u), true
	}
	return 0, false
}

// evalIn implements `in`: sequence membership by deep equality, mapping key
// lookup, or string substring containment.
func evalIn(left, right cel.Value) (cel.Value, error) {
	switch right.Kind() {
	case cel.KindList:
		l, _ := right.AsList()
		for _, e := range l {
			if cel.Equal(left, e) {
				return cel.Bool(true), nil
			}
		}
		return cel.Bool(false), nil
	case cel.KindMap:
		m, _ := right.AsMap()
		_, ok := m.Get(left)
		return cel.Bool(ok), nil
	case cel.KindString:
		ls, ok := left.AsString()
		if !ok {
			return cel.Value{}, fmt.Errorf("in: left operand must be a string when right is a string, got %s", left.TypeName())
		}
		rs, _ := right.AsString()
		return cel.Bool(strings.Contains(rs, ls)), nil
	default:
		return cel.Value{}, fmt.Errorf("in: right operand must be a sequence, mapping, or string, got %s", right.TypeName())
	}
}
