package formatter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/perbu/celeval/pkg/cel"
	"github.com/perbu/celeval/pkg/events"
)

func TestFormatResultSuccess(t *testing.T) {
	out := FormatResult("1 + 1", cel.Int(2), nil, false)
	if !strings.Contains(out, "1 + 1 = 2") {
		t.Errorf("got %q", out)
	}
}

func TestFormatResultError(t *testing.T) {
	out := FormatResult("1 / 0", cel.Value{}, errors.New("division by zero"), false)
	if !strings.Contains(out, "ERROR") || !strings.Contains(out, "division by zero") {
		t.Errorf("got %q", out)
	}
}

func TestFormatResultColorWrapsInAnsiCodes(t *testing.T) {
	out := FormatResult("1 + 1", cel.Int(2), nil, true)
	if !strings.Contains(out, ColorGreen) || !strings.Contains(out, ColorReset) {
		t.Errorf("expected ANSI color codes in %q", out)
	}
}

func TestFormatTraceEvents(t *testing.T) {
	cases := []struct {
		evt  any
		want string
	}{
		{events.CompileStarted{Source: "x"}, "compiling"},
		{events.CompileFinished{Source: "x"}, "compiled"},
		{events.EvalStarted{Source: "x"}, "evaluating"},
		{events.EvalFinished{Source: "x", Duration: time.Millisecond}, "evaluated"},
		{events.EvalFinished{Source: "x", Err: errors.New("boom")}, "eval failed"},
	}
	for _, c := range cases {
		out := FormatTrace(c.evt, false)
		if !strings.Contains(out, c.want) {
			t.Errorf("FormatTrace(%#v) = %q, want substring %q", c.evt, out, c.want)
		}
	}
}
