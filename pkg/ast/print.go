package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders n as re-parseable, fully-parenthesized CEL source. It
// exists to make the `parse(print(n))` shape-equivalence invariant
// testable: Print never needs to guess precedence because every binary
// and conditional expression is wrapped in parentheses.
func Print(n Node) string {
	var b strings.Builder
	print1(&b, n)
	return b.String()
}

func print1(b *strings.Builder, n Node) {
	switch e := n.(type) {
	case *Literal:
		printLiteral(b, e)
	case *Identifier:
		b.WriteString(e.Name)
	case *Select:
		if e.Operand != nil {
			print1(b, e.Operand)
			b.WriteByte('.')
		}
		b.WriteString(e.Field)
	case *Call:
		if e.Target != nil {
			print1(b, e.Target)
			b.WriteByte('.')
		}
		b.WriteString(e.Function)
		b.WriteByte('(')
		for i, a := range e.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			print1(b, a)
		}
		b.WriteByte(')')
	case *ListExpr:
		b.WriteByte('[')
		for i, el := range e.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			print1(b, el)
		}
		b.WriteByte(']')
	case *MapExpr:
		b.WriteByte('{')
		for i, ent := range e.Entries {
			if i > 0 {
				b.WriteString(", ")
			}
			print1(b, ent.Key)
			b.WriteString(": ")
			print1(b, ent.Value)
		}
		b.WriteByte('}')
	case *Struct:
		if e.TypeName != "" {
			b.WriteString(e.TypeName)
		}
		b.WriteByte('{')
		for i, f := range e.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			print1(b, f.Value)
		}
		b.WriteByte('}')
	case *Unary:
		switch e.Op {
		case OpNot:
			b.WriteByte('!')
		case OpNegate:
			b.WriteByte('-')
		}
		b.WriteByte('(')
		print1(b, e.Operand)
		b.WriteByte(')')
	case *Binary:
		b.WriteByte('(')
		print1(b, e.Left)
		fmt.Fprintf(b, " %s ", e.Op)
		print1(b, e.Right)
		b.WriteByte(')')
	case *Conditional:
		b.WriteByte('(')
		print1(b, e.Condition)
		b.WriteString(" ? ")
		print1(b, e.Then)
		b.WriteString(" : ")
		print1(b, e.Else)
		b.WriteByte(')')
	case *Index:
		print1(b, e.Operand)
		b.WriteByte('[')
		print1(b, e.Index)
		b.WriteByte(']')
	case *Comprehension:
		// Not CEL surface syntax (the parser never produces a
		// Comprehension); rendered as a __comprehension__(...)
		// pseudo-call listing the node's fields in order.
		fmt.Fprintf(b, "__comprehension__(%s, ", e.IterVar)
		print1(b, e.Range)
		b.WriteString(", ")
		b.WriteString(e.AccumVar)
		b.WriteString(", ")
		print1(b, e.Init)
		b.WriteString(", ")
		print1(b, e.Condition)
		b.WriteString(", ")
		print1(b, e.Step)
		b.WriteString(", ")
		print1(b, e.Result)
		b.WriteByte(')')
	default:
		b.WriteString("<?>")
	}
}

func printLiteral(b *strings.Builder, lit *Literal) {
	switch lit.Kind {
	case LiteralNull:
		b.WriteString("null")
	case LiteralBool:
		b.WriteString(strconv.FormatBool(lit.Value.(bool)))
	case LiteralInt:
		b.WriteString(strconv.FormatInt(lit.Value.(int64), 10))
	case LiteralUint:
		b.WriteString(strconv.FormatUint(lit.Value.(uint64), 10))
		b.WriteByte('u')
	case LiteralDouble:
		s := strconv.FormatFloat(lit.Value.(float64), 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0" // keep integral doubles from re-parsing as int literals
		}
		b.WriteString(s)
	case LiteralString:
		b.WriteString(strconv.Quote(lit.Value.(string)))
	case LiteralBytes:
		b.WriteByte('b')
		b.WriteString(strconv.Quote(string(lit.Value.([]byte))))
	}
}
