package cel

import "testing"

func TestEqualNumericCoercion(t *testing.T) {
	cases := []struct {
		a, b Value
		want bool
	}{
		{Int(3), Uint(3), true},
		{Int(3), Double(3.0), true},
		{Uint(3), Double(3.0), true},
		{Int(-1), Uint(1), false},
		{Int(3), Int(4), false},
		{Null(), Null(), true},
		{Null(), Int(0), false},
		{String("a"), Int(0), false},
	}
	for _, c := range cases {
		if got := Equal(c.a, c.b); got != c.want {
			t.Errorf("Equal(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestEqualityLawViaCompare(t *testing.T) {
	// For all x, y of the same numeric family, x == y iff x <= y && y <= x.
	pairs := [][2]Value{{Int(5), Int(5)}, {Int(5), Double(5)}, {Uint(2), Int(3)}}
	for _, p := range pairs {
		eq := Equal(p[0], p[1])
		c1, err1 := Compare(p[0], p[1])
		c2, err2 := Compare(p[1], p[0])
		if err1 != nil || err2 != nil {
			t.Fatalf("unexpected ordering error: %v / %v", err1, err2)
		}
		leq := c1 <= 0 && c2 <= 0
		if eq != leq {
			t.Errorf("equality law violated for %v, %v: eq=%v, <=&&>== %v", p[0], p[1], eq, leq)
		}
	}
}

func TestListEquality(t *testing.T) {
	a := List([]Value{Int(1), Int(2)})
	b := List([]Value{Int(1), Int(2)})
	c := List([]Value{Int(1), Int(2), Int(3)})
	if !Equal(a, b) {
		t.Errorf("expected equal lists")
	}
	if Equal(a, c) {
		t.Errorf("expected unequal lists of different length")
	}
}

func TestListOrdering(t *testing.T) {
	short := List([]Value{Int(1), Int(2)})
	long := List([]Value{Int(1), Int(2), Int(3)})
	c, err := Compare(short, long)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c >= 0 {
		t.Errorf("expected short sequence to precede its longer extension")
	}
}

func TestMapEquality(t *testing.T) {
	m1 := NewMapping()
	m1.Set(String("a"), Int(1))
	m2 := NewMapping()
	m2.Set(String("a"), Int(1))
	if !Equal(Map(m1), Map(m2)) {
		t.Errorf("expected equal maps")
	}
}

func TestMapKeyBoolDoesNotAliasInt(t *testing.T) {
	m := NewMapping()
	m.Set(Int(1), String("a"))
	if _, ok := m.Get(Bool(true)); ok {
		t.Errorf("Bool(true) must not alias Int(1) as a map key")
	}
	m.Set(Bool(true), String("b"))
	if got, _ := m.Get(Int(1)); got.s != "a" {
		t.Errorf("Int(1) lookup returned %v, want the entry set under Int(1)", got)
	}
	if got, _ := m.Get(Bool(true)); got.s != "b" {
		t.Errorf("Bool(true) lookup returned %v, want the entry set under Bool(true)", got)
	}
	if m.Len() != 2 {
		t.Errorf("m.Len() = %d, want 2 distinct entries", m.Len())
	}
}

func TestCrossTypeOrderingErrors(t *testing.T) {
	_, err := Compare(String("x"), Int(1))
	if err == nil {
		t.Errorf("expected an error ordering string against int")
	}
}

func TestArithmeticOverflowWraps(t *testing.T) {
	max := Int(9223372036854775807)
	v, err := NumAdd(max, Int(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := v.AsInt()
	if got != -9223372036854775808 {
		t.Errorf("got %d, want wraparound to math.MinInt64", got)
	}
}

func TestDivisionAlwaysProducesDouble(t *testing.T) {
	v, err := NumDiv(Int(15), Int(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != KindDouble {
		t.Fatalf("got kind %s, want double", v.Kind())
	}
	got, _ := v.AsDouble()
	if got != 5.0 {
		t.Errorf("got %v, want 5.0", got)
	}
}

func TestDivisionByZeroErrors(t *testing.T) {
	if _, err := NumDiv(Int(1), Int(0)); err == nil {
		t.Errorf("expected division by zero error")
	}
}

func TestModSignFollowsDividend(t *testing.T) {
	v, err := NumMod(Int(-7), Int(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := v.AsInt()
	if got != -1 {
		t.Errorf("got %d, want -1", got)
	}
}

func TestTruthy(t *testing.T) {
	if String("").Truthy() {
		t.Errorf("empty string should not be truthy")
	}
	if !String("x").Truthy() {
		t.Errorf("non-empty string should be truthy")
	}
	if Int(0).Truthy() {
		t.Errorf("zero should not be truthy")
	}
}

func TestDoubleNegationInvariant(t *testing.T) {
	n := Int(42)
	neg, err := Negate(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	negneg, err := Negate(neg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := negneg.AsInt()
	if got != 42 {
		t.Errorf("got %d, want 42", got)
	}
}
