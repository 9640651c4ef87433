package cel

import (
	"strconv"
	"strings"
	"time"
)

// CanonicalString renders v the way the `string()` builtin and the
// non-string operand of a `+` string concatenation do: null renders as
// "null", numbers in their natural base-10 form, and composite values as
// a bracketed/braced list of their elements' own canonical forms.
func (v Value) CanonicalString() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindUint:
		return strconv.FormatUint(v.u, 10)
	case KindDouble:
		return strconv.FormatFloat(v.d, 'g', -1, 64)
	case KindString:
		return v.s
	case KindBytes:
		return string(v.by)
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.CanonicalString()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		var parts []string
		v.m.Range(func(k, val Value) bool {
			parts = append(parts, k.CanonicalString()+": "+val.CanonicalString())
			return true
		})
		return "{" + strings.Join(parts, ", ") + "}"
	case KindInstant:
		return v.t.Format(time.RFC3339Nano)
	case KindDuration:
		return v.dur.String()
	default:
		return ""
	}
}
