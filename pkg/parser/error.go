package parser

import (
	"fmt"
	"strings"
)

// SyntaxError is an unrecoverable lexical or grammatical error located at a
// source position. Parsing stops at the first one; there is no panic-mode
// recovery in this grammar.
type SyntaxError struct {
	Message string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// Detail renders the error with the offending source line and a caret
// pointing at the column, for CLI-friendly diagnostics.
func (e *SyntaxError) Detail(source string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error at %d:%d: %s\n", e.Line, e.Column, e.Message)

	lines := strings.Split(source, "\n")
	idx := e.Line - 1
	if idx < 0 || idx >= len(lines) {
		return b.String()
	}
	fmt.Fprintf(&b, "%4d | %s\n", e.Line, lines[idx])
	col := e.Column
	if col < 1 {
		col = 1
	}
	b.WriteString(strings.Repeat(" ", 7+col-1))
	b.WriteString("^\n")
	return b.String()
}
