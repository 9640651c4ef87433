package cel

import "bytes"

// Equal implements deep equality: null equals only null, numeric equality
// coerces across int/uint/double, sequences/mappings compare structurally,
// and cross-type comparisons (other than within the numeric family) are
// false rather than an error.
func Equal(a, b Value) bool {
	if a.kind == KindNull || b.kind == KindNull {
		return a.kind == KindNull && b.kind == KindNull
	}
	if a.IsNumeric() && b.IsNumeric() {
		return numEqual(a, b)
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.s == b.s
	case KindBytes:
		return bytes.Equal(a.by, b.by)
	case KindList:
		return listEqual(a.list, b.list)
	case KindMap:
		return mapEqual(a.m, b.m)
	case KindInstant:
		return a.t.Equal(b.t)
	case KindDuration:
		return a.dur == b.dur
	default:
		return false
	}
}

func numEqual(a, b Value) bool {
	if isDouble(a) || isDouble(b) {
		return toDouble(a) == toDouble(b)
	}
	if a.kind == KindInt && b.kind == KindInt {
		return a.i == b.i
	}
	if a.kind == KindUint && b.kind == KindUint {
		return a.u == b.u
	}
	if a.kind == KindInt {
		return a.i >= 0 && uint64(a.i) == b.u
	}
	return b.i >= 0 && a.u == uint64(b.i)
}

func listEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func mapEqual(a, b *Mapping) bool {
	if a.Len() != b.Len() {
		return false
	}
	ok := true
	a.Range(func(k, v Value) bool {
		bv, present := b.Get(k)
		if !present || !Equal(v, bv) {
			ok = false
			return false
		}
		return true
	})
	return ok
}
