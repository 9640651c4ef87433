package functions

import (
	"testing"
	"time"

	"github.com/perbu/celeval/pkg/cel"
)

func mustCall(t *testing.T, s *Standard, name string, args ...cel.Value) cel.Value {
	t.Helper()
	v, err := s.CallFunction(name, args)
	if err != nil {
		t.Fatalf("%s(%v): unexpected error: %v", name, args, err)
	}
	return v
}

func TestSize(t *testing.T) {
	s := NewStandard()
	if v := mustCall(t, s, "size", cel.String("hello")); mustInt(t, v) != 5 {
		t.Errorf("size(\"hello\") = %v", v)
	}
	list := cel.List([]cel.Value{cel.Int(1), cel.Int(2), cel.Int(3)})
	if v := mustCall(t, s, "size", list); mustInt(t, v) != 3 {
		t.Errorf("size(list) = %v", v)
	}
	if v := mustCall(t, s, "size", cel.Null()); mustInt(t, v) != 0 {
		t.Errorf("size(null) = %v", v)
	}
}

func mustInt(t *testing.T, v cel.Value) int64 {
	t.Helper()
	i, ok := v.AsInt()
	if !ok {
		t.Fatalf("expected int value, got %s", v.TypeName())
	}
	return i
}

func TestIntConversions(t *testing.T) {
	s := NewStandard()
	if v := mustCall(t, s, "int", cel.Double(4.9)); mustInt(t, v) != 4 {
		t.Errorf("int(4.9) = %v, want 4 (truncate toward zero)", v)
	}
	if v := mustCall(t, s, "int", cel.String("42")); mustInt(t, v) != 42 {
		t.Errorf("int(\"42\") = %v", v)
	}
	if v := mustCall(t, s, "int", cel.Bool(true)); mustInt(t, v) != 1 {
		t.Errorf("int(true) = %v", v)
	}
}

func TestUintRejectsNegative(t *testing.T) {
	s := NewStandard()
	if _, err := s.CallFunction("uint", []cel.Value{cel.Int(-1)}); err == nil {
		t.Errorf("expected uint(-1) to error")
	}
	v := mustCall(t, s, "uint", cel.Int(7))
	u, ok := v.AsUint()
	if !ok || u != 7 {
		t.Errorf("uint(7) = %v", v)
	}
}

func TestTypeBuiltin(t *testing.T) {
	s := NewStandard()
	if v := mustCall(t, s, "type", cel.Int(1)); str(t, v) != "int" {
		t.Errorf("type(1) = %v", v)
	}
	if v := mustCall(t, s, "type", cel.Uint(1)); str(t, v) != "int" {
		t.Errorf("type(uint(1)) = %v, want int (uint folds into int)", v)
	}
}

func str(t *testing.T, v cel.Value) string {
	t.Helper()
	s, ok := v.AsString()
	if !ok {
		t.Fatalf("expected string value, got %s", v.TypeName())
	}
	return s
}

func TestHasTwoArgGlobal(t *testing.T) {
	s := NewStandard()
	m := cel.NewMapping()
	m.Set(cel.String("a"), cel.Int(1))
	if v := mustCall(t, s, "has", cel.Map(m), cel.String("a")); !mustBool(t, v) {
		t.Errorf("has(m, \"a\") should be true")
	}
	if v := mustCall(t, s, "has", cel.Map(m), cel.String("missing")); mustBool(t, v) {
		t.Errorf("has(m, \"missing\") should be false")
	}
	if v := mustCall(t, s, "has", cel.Int(1), cel.String("a")); mustBool(t, v) {
		t.Errorf("has on a non-map should be false, not an error")
	}
}

func mustBool(t *testing.T, v cel.Value) bool {
	t.Helper()
	b, ok := v.AsBool()
	if !ok {
		t.Fatalf("expected bool value, got %s", v.TypeName())
	}
	return b
}

func TestMatchesIsFindNotFullMatch(t *testing.T) {
	s := NewStandard()
	v := mustCall(t, s, "matches", cel.String("hello world"), cel.String("wor"))
	if !mustBool(t, v) {
		t.Errorf("matches should find a substring match, not require a full match")
	}
}

func TestDurationParsing(t *testing.T) {
	s := NewStandard()
	v := mustCall(t, s, "duration", cel.String("90m"))
	d, ok := v.AsDuration()
	if !ok || d != 90*time.Minute {
		t.Errorf("duration(\"90m\") = %v", v)
	}
}

func TestTimestampFromMillis(t *testing.T) {
	s := NewStandard()
	v := mustCall(t, s, "timestamp", cel.Int(0))
	ts, ok := v.AsInstant()
	if !ok || !ts.Equal(time.UnixMilli(0)) {
		t.Errorf("timestamp(0) = %v", v)
	}
}

func TestGetMonthIsZeroBased(t *testing.T) {
	s := NewStandard()
	jan := cel.Instant(time.Date(2026, time.January, 15, 0, 0, 0, 0, time.Local))
	v := mustCall(t, s, "getMonth", jan)
	if mustInt(t, v) != 0 {
		t.Errorf("getMonth(January) = %v, want 0", v)
	}
}

func TestMaxMin(t *testing.T) {
	s := NewStandard()
	v := mustCall(t, s, "max", cel.Int(3), cel.Int(9), cel.Int(1))
	if mustInt(t, v) != 9 {
		t.Errorf("max(3,9,1) = %v", v)
	}
	v = mustCall(t, s, "min", cel.Int(3), cel.Int(9), cel.Int(1))
	if mustInt(t, v) != 1 {
		t.Errorf("min(3,9,1) = %v", v)
	}
}

func TestUnknownFunctionErrors(t *testing.T) {
	s := NewStandard()
	if _, err := s.CallFunction("nope", nil); err == nil {
		t.Errorf("expected an error for an unknown function")
	}
}

func TestStringMethods(t *testing.T) {
	s := NewStandard()
	recv := cel.String("Hello, World")
	if v := mustCallMethod(t, s, recv, "toLowerCase"); str(t, v) != "hello, world" {
		t.Errorf("toLowerCase = %v", v)
	}
	if v := mustCallMethod(t, s, recv, "startsWith", cel.String("Hello")); !mustBool(t, v) {
		t.Errorf("startsWith should be true")
	}
	if v := mustCallMethod(t, s, recv, "endsWith", cel.String("World")); !mustBool(t, v) {
		t.Errorf("endsWith should be true")
	}
	if v := mustCallMethod(t, s, cel.String("  pad  "), "trim"); str(t, v) != "pad" {
		t.Errorf("trim = %q", v)
	}
	if v := mustCallMethod(t, s, recv, "replace", cel.String("World"), cel.String("Go")); str(t, v) != "Hello, Go" {
		t.Errorf("replace = %v", v)
	}
}

func TestSplitUsesLiteralSeparator(t *testing.T) {
	s := NewStandard()
	v := mustCallMethod(t, s, cel.String("a.b.c"), "split", cel.String("."))
	list, ok := v.AsList()
	if !ok || len(list) != 3 {
		t.Fatalf("split(\"a.b.c\", \".\") = %v", v)
	}
}

func TestContainsOnListUsesDeepEquality(t *testing.T) {
	s := NewStandard()
	list := cel.List([]cel.Value{cel.Int(1), cel.Int(2)})
	v := mustCallMethod(t, s, list, "contains", cel.Int(2))
	if !mustBool(t, v) {
		t.Errorf("contains(2) should be true")
	}
}

func mustCallMethod(t *testing.T, s *Standard, recv cel.Value, name string, args ...cel.Value) cel.Value {
	t.Helper()
	v, err := s.CallMethod(recv, name, args)
	if err != nil {
		t.Fatalf("%v.%s(%v): unexpected error: %v", recv, name, args, err)
	}
	return v
}
