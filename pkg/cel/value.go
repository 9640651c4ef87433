// Package cel implements the dynamically typed value lattice evaluated
// expressions produce: null, bool, int, uint, double, string, bytes,
// list, map, instant, and duration.
package cel

import (
	"fmt"
	"time"
)

// Kind tags the variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUint
	KindDouble
	KindString
	KindBytes
	KindList
	KindMap
	KindInstant
	KindDuration
)

var kindNames = map[Kind]string{
	KindNull: "null", KindBool: "bool", KindInt: "int", KindUint: "uint",
	KindDouble: "double", KindString: "string", KindBytes: "bytes",
	KindList: "list", KindMap: "map", KindInstant: "timestamp", KindDuration: "duration",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is the tagged union every expression evaluates to. The zero Value
// is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	u    uint64
	d    float64
	s    string
	by   []byte
	list []Value
	m    *Mapping
	t    time.Time
	dur  time.Duration
}

func Null() Value               { return Value{kind: KindNull} }
func Bool(b bool) Value         { return Value{kind: KindBool, b: b} }
func Int(i int64) Value         { return Value{kind: KindInt, i: i} }
func Uint(u uint64) Value       { return Value{kind: KindUint, u: u} }
func Double(d float64) Value    { return Value{kind: KindDouble, d: d} }
func String(s string) Value     { return Value{kind: KindString, s: s} }
func Bytes(b []byte) Value      { return Value{kind: KindBytes, by: b} }
func List(vs []Value) Value     { return Value{kind: KindList, list: vs} }
func Map(m *Mapping) Value      { return Value{kind: KindMap, m: m} }
func Instant(t time.Time) Value { return Value{kind: KindInstant, t: t} }
func Dur(d time.Duration) Value { return Value{kind: KindDuration, dur: d} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsBool() (bool, bool)             { return v.b, v.kind == KindBool }
func (v Value) AsInt() (int64, bool)             { return v.i, v.kind == KindInt }
func (v Value) AsUint() (uint64, bool)           { return v.u, v.kind == KindUint }
func (v Value) AsDouble() (float64, bool)        { return v.d, v.kind == KindDouble }
func (v Value) AsString() (string, bool)         { return v.s, v.kind == KindString }
func (v Value) AsBytes() ([]byte, bool)          { return v.by, v.kind == KindBytes }
func (v Value) AsList() ([]Value, bool)          { return v.list, v.kind == KindList }
func (v Value) AsMap() (*Mapping, bool)          { return v.m, v.kind == KindMap }
func (v Value) AsInstant() (time.Time, bool)     { return v.t, v.kind == KindInstant }
func (v Value) AsDuration() (time.Duration, bool) { return v.dur, v.kind == KindDuration }

// IsNumeric reports whether v belongs to the int/uint/double family.
func (v Value) IsNumeric() bool {
	return v.kind == KindInt || v.kind == KindUint || v.kind == KindDouble
}

// IsSequence reports whether v is a list or a string. Macros and
// comprehensions iterate lists only, not strings.
func (v Value) IsSequence() bool {
	return v.kind == KindList || v.kind == KindString
}

// Truthy implements CEL's `bool()` coercion table: non-zero numbers,
// non-empty strings/sequences/mappings, and booleans themselves.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindUint:
		return v.u != 0
	case KindDouble:
		return v.d != 0
	case KindString:
		return v.s != ""
	case KindBytes:
		return len(v.by) > 0
	case KindList:
		return len(v.list) > 0
	case KindMap:
		return v.m != nil && v.m.Len() > 0
	default:
		return false
	}
}

// TypeName is the lowercase tag reported by the `type` builtin. The
// minimum table in the spec lists {null,bool,int,double,string,list,map,
// unknown}; uint folds into "int" there (see DESIGN.md open question 2),
// and bytes/instant/duration extend the table for this lattice's extra
// variants rather than falling back to "unknown".
func (v Value) TypeName() string {
	switch v.kind {
	case KindUint:
		return "int"
	default:
		return v.kind.String()
	}
}
