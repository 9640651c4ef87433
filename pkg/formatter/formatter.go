// Package formatter renders evaluation results and compile/eval trace
// events for cmd/celeval, the same role pkg/formatter plays for VCL test
// output in the teacher: ANSI color when stdout is a terminal, plain
// text otherwise.
package formatter

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/perbu/celeval/pkg/cel"
	"github.com/perbu/celeval/pkg/events"
)

// ANSI color codes.
const (
	ColorReset  = "\033[0m"
	ColorGreen  = "\033[32m"
	ColorGray   = "\033[90m"
	ColorRed    = "\033[31m"
	ColorYellow = "\033[33m"
	ColorBold   = "\033[1m"
)

// ShouldUseColor reports whether stdout is a terminal; redirected or
// piped output falls back to plain text.
func ShouldUseColor() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// FormatResult renders the outcome of evaluating one expression: its
// canonical value on success, or a one-line error message on failure.
func FormatResult(expr string, v cel.Value, err error, useColor bool) string {
	var b strings.Builder
	if err != nil {
		if useColor {
			fmt.Fprintf(&b, "%s%sERROR:%s %s: %s\n", ColorBold, ColorRed, ColorReset, expr, err)
		} else {
			fmt.Fprintf(&b, "ERROR: %s: %s\n", expr, err)
		}
		return b.String()
	}
	if useColor {
		fmt.Fprintf(&b, "%s%s%s = %s%s%s\n", ColorBold, expr, ColorReset, ColorGreen, v.CanonicalString(), ColorReset)
	} else {
		fmt.Fprintf(&b, "%s = %s\n", expr, v.CanonicalString())
	}
	return b.String()
}

// FormatTrace renders one pkg/events lifecycle event as a single trace
// line, used by -v.
func FormatTrace(evt any, useColor bool) string {
	var msg string
	switch e := evt.(type) {
	case events.CompileStarted:
		msg = fmt.Sprintf("compiling %q", e.Source)
	case events.CompileFinished:
		if e.Err != nil {
			msg = fmt.Sprintf("compile failed: %v", e.Err)
		} else {
			msg = "compiled"
		}
	case events.EvalStarted:
		msg = fmt.Sprintf("evaluating %q", e.Source)
	case events.EvalFinished:
		if e.Err != nil {
			msg = fmt.Sprintf("eval failed after %s: %v", e.Duration, e.Err)
		} else {
			msg = fmt.Sprintf("evaluated in %s", e.Duration)
		}
	default:
		msg = fmt.Sprintf("%v", evt)
	}
	if useColor {
		return fmt.Sprintf("%strace:%s %s\n", ColorGray, ColorReset, msg)
	}
	return fmt.Sprintf("trace: %s\n", msg)
}
