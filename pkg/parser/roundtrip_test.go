package parser_test

import (
	"testing"

	"github.com/perbu/celeval/pkg/ast"
	"github.com/perbu/celeval/pkg/parser"
)

// TestParsePrintInvariant checks spec.md section 8's
// parse(print(N)) shape-equivalence invariant: printing N, parsing the
// result, and printing that again must reach a fixed point.
func TestParsePrintInvariant(t *testing.T) {
	sources := []string{
		`2 + 3 * 4`,
		`a.b.c`,
		`nums.filter(n, n % 2 == 0).map(n, n * 10)`,
		`cond ? [1, 2] : {"a": 1}`,
		`-x + !y`,
		`a[0].b("c", 1)`,
		`pkg.Type{field: 1}`,
		`"\101\040\102"`,
	}
	for _, src := range sources {
		n1, err := parser.Parse(src)
		if err != nil {
			t.Fatalf("parse(%q): %v", src, err)
		}
		printed1 := ast.Print(n1)

		n2, err := parser.Parse(printed1)
		if err != nil {
			t.Fatalf("parse(print(parse(%q))) = parse(%q): %v", src, printed1, err)
		}
		printed2 := ast.Print(n2)

		if printed1 != printed2 {
			t.Errorf("not a fixed point for %q:\n  print(parse(src))        = %s\n  print(parse(print(...))) = %s",
				src, printed1, printed2)
		}
	}
}
