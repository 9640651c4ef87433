package cel

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Mapping is CEL's map value: string keys dominate but any value-shaped
// key is accepted, per spec section 3. Insertion order is preserved (via
// the backing ordered map) so string() rendering and iteration are
// deterministic, even though key order is irrelevant to equality.
type Mapping struct {
	om *orderedmap.OrderedMap[string, mapEntry]
}

type mapEntry struct {
	key   Value
	value Value
}

// NewMapping returns an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{om: orderedmap.New[string, mapEntry]()}
}

// Set binds key to value, preserving the position of an existing key or
// appending a new one at the end.
func (m *Mapping) Set(key, value Value) {
	m.om.Set(hashKey(key), mapEntry{key: key, value: value})
}

// Get looks up key using deep equality semantics (numeric keys compare
// across int/uint/double just like `==` does).
func (m *Mapping) Get(key Value) (Value, bool) {
	e, ok := m.om.Get(hashKey(key))
	if !ok {
		return Value{}, false
	}
	return e.value, true
}

// Delete removes key if present.
func (m *Mapping) Delete(key Value) {
	m.om.Delete(hashKey(key))
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return m.om.Len()
}

// Range visits entries in insertion order, stopping early if fn returns
// false.
func (m *Mapping) Range(fn func(key, value Value) bool) {
	if m == nil {
		return
	}
	for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Value.key, pair.Value.value) {
			return
		}
	}
}

// hashKey canonicalizes a Value into a string suitable as the backing
// ordered map's key, collapsing int/uint/double onto the same bucket
// when they represent the same number so key lookup matches `==`.
func hashKey(v Value) string {
	switch v.kind {
	case KindNull:
		return "n:"
	case KindBool:
		if v.b {
			return "b:1"
		}
		return "b:0"
	case KindInt:
		return fmt.Sprintf("i:%d", v.i)
	case KindUint:
		return fmt.Sprintf("i:%d", v.u)
	case KindDouble:
		if v.d == float64(int64(v.d)) {
			return fmt.Sprintf("i:%d", int64(v.d))
		}
		return fmt.Sprintf("d:%v", v.d)
	case KindString:
		return "s:" + v.s
	case KindBytes:
		return "y:" + string(v.by)
	default:
		return fmt.Sprintf("?:%v", v)
	}
}
