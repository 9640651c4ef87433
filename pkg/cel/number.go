package cel

import "fmt"

// Integer overflow policy: wrap (native Go int64/uint64 two's-complement
// semantics on +, -, * — see DESIGN.md open question 1). No saturation or
// overflow checks are performed.

func isDouble(v Value) bool { return v.kind == KindDouble }

func toDouble(v Value) float64 {
	switch v.kind {
	case KindInt:
		return float64(v.i)
	case KindUint:
		return float64(v.u)
	case KindDouble:
		return v.d
	default:
		return 0
	}
}

func toInt64(v Value) (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindUint:
		return int64(v.u), true
	default:
		return 0, false
	}
}

// NumAdd implements number + number with int/uint/double promotion: if
// either operand is a double, both promote to double.
func NumAdd(a, b Value) (Value, error) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return Value{}, fmt.Errorf("+ requires numeric operands, got %s and %s", a.TypeName(), b.TypeName())
	}
	if isDouble(a) || isDouble(b) {
		return Double(toDouble(a) + toDouble(b)), nil
	}
	if a.kind == KindUint && b.kind == KindUint {
		return Uint(a.u + b.u), nil
	}
	ai, _ := toInt64(a)
	bi, _ := toInt64(b)
	return Int(ai + bi), nil
}

// NumSub implements number - number with the same promotion rule as NumAdd.
func NumSub(a, b Value) (Value, error) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return Value{}, fmt.Errorf("- requires numeric operands, got %s and %s", a.TypeName(), b.TypeName())
	}
	if isDouble(a) || isDouble(b) {
		return Double(toDouble(a) - toDouble(b)), nil
	}
	if a.kind == KindUint && b.kind == KindUint {
		return Uint(a.u - b.u), nil
	}
	ai, _ := toInt64(a)
	bi, _ := toInt64(b)
	return Int(ai - bi), nil
}

// NumMul implements number * number with the same promotion rule as NumAdd.
func NumMul(a, b Value) (Value, error) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return Value{}, fmt.Errorf("* requires numeric operands, got %s and %s", a.TypeName(), b.TypeName())
	}
	if isDouble(a) || isDouble(b) {
		return Double(toDouble(a) * toDouble(b)), nil
	}
	if a.kind == KindUint && b.kind == KindUint {
		return Uint(a.u * b.u), nil
	}
	ai, _ := toInt64(a)
	bi, _ := toInt64(b)
	return Int(ai * bi), nil
}

// NumDiv always produces a double; integer operands widen.
func NumDiv(a, b Value) (Value, error) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return Value{}, fmt.Errorf("/ requires numeric operands, got %s and %s", a.TypeName(), b.TypeName())
	}
	denom := toDouble(b)
	if denom == 0 {
		return Value{}, fmt.Errorf("division by zero")
	}
	return Double(toDouble(a) / denom), nil
}

// NumMod requires integer (int or uint) operands; sign follows the
// dividend, matching Go's native % semantics.
func NumMod(a, b Value) (Value, error) {
	if a.kind == KindUint && b.kind == KindUint {
		if b.u == 0 {
			return Value{}, fmt.Errorf("modulo by zero")
		}
		return Uint(a.u % b.u), nil
	}
	ai, aok := toInt64(a)
	bi, bok := toInt64(b)
	if !aok || !bok {
		return Value{}, fmt.Errorf("%% requires integer operands, got %s and %s", a.TypeName(), b.TypeName())
	}
	if bi == 0 {
		return Value{}, fmt.Errorf("modulo by zero")
	}
	return Int(ai % bi), nil
}

// Negate implements unary '-': integer produces integer, double produces
// double. uint is deliberately excluded (negating an unsigned value has
// no home in this lattice).
func Negate(v Value) (Value, error) {
	switch v.kind {
	case KindInt:
		return Int(-v.i), nil
	case KindDouble:
		return Double(-v.d), nil
	default:
		return Value{}, fmt.Errorf("- requires a numeric operand, got %s", v.TypeName())
	}
}
