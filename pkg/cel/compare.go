package cel

import (
	"fmt"
	"strings"
)

// Compare orders a against b for <, <=, >, >=. It is defined on number
// pairs (by floating-point value), string pairs (lexicographic by code
// unit), boolean pairs (false < true), sequence pairs (element-wise
// lexicographic; a shorter sequence precedes a longer one it prefixes),
// and instant/duration pairs. Any other combination errors: cross-type
// ordering is not defined, unlike cross-type equality which is simply
// false.
func Compare(a, b Value) (int, error) {
	switch {
	case a.IsNumeric() && b.IsNumeric():
		x, y := toDouble(a), toDouble(b)
		switch {
		case x < y:
			return -1, nil
		case x > y:
			return 1, nil
		default:
			return 0, nil
		}
	case a.kind == KindString && b.kind == KindString:
		return strings.Compare(a.s, b.s), nil
	case a.kind == KindBool && b.kind == KindBool:
		return boolCompare(a.b, b.b), nil
	case a.kind == KindList && b.kind == KindList:
		return compareLists(a.list, b.list)
	case a.kind == KindInstant && b.kind == KindInstant:
		switch {
		case a.t.Before(b.t):
			return -1, nil
		case a.t.After(b.t):
			return 1, nil
		default:
			return 0, nil
		}
	case a.kind == KindDuration && b.kind == KindDuration:
		switch {
		case a.dur < b.dur:
			return -1, nil
		case a.dur > b.dur:
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, fmt.Errorf("cannot order %s and %s", a.TypeName(), b.TypeName())
	}
}

func boolCompare(a, b bool) int {
	ai, bi := 0, 0
	if a {
		ai = 1
	}
	if b {
		bi = 1
	}
	return ai - bi
}

func compareLists(a, b []Value) (int, error) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		c, err := Compare(a[i], b[i])
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	switch {
	case len(a) < len(b):
		return -1, nil
	case len(a) > len(b):
		return 1, nil
	default:
		return 0, nil
	}
}
