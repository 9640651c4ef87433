package lexer

import "testing"

func collect(t *testing.T, input string) []Token {
	t.Helper()
	l := New(input)
	var toks []Token
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		toks = append(toks, tok)
		if tok.Type == EOF {
			break
		}
	}
	return toks
}

func TestOperatorsAndPunctuation(t *testing.T) {
	input := `+ - * / % == != < <= > >= && || ! ( ) [ ] { } . , : ?`
	want := []TokenType{
		PLUS, MINUS, STAR, SLASH, PERCENT,
		EQ, NE, LT, LE, GT, GE, AND, OR, NOT,
		LPAREN, RPAREN, LBRACKET, RBRACKET, LBRACE, RBRACE,
		DOT, COMMA, COLON, QUESTION, EOF,
	}
	toks := collect(t, input)
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, tt)
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := collect(t, "null true false in foo _bar baz2")
	want := []TokenType{NULL, TRUE, FALSE, IN, IDENT, IDENT, IDENT, EOF}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, tt)
		}
	}
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		input string
		typ   TokenType
		text  string
	}{
		{"123", INT, "123"},
		{"0x7B", INT, "0x7B"},
		{"123u", UINT, "123u"},
		{"0x7Bu", UINT, "0x7Bu"},
		{"1.5", DOUBLE, "1.5"},
		{"1e10", DOUBLE, "1e10"},
		{"1.5e-3", DOUBLE, "1.5e-3"},
		{"1e", INT, "1"}, // trailing 'e' with no digits is not an exponent
	}
	for _, c := range cases {
		toks := collect(t, c.input)
		if toks[0].Type != c.typ || toks[0].Text != c.text {
			t.Errorf("%q: got %s(%q), want %s(%q)", c.input, toks[0].Type, toks[0].Text, c.typ, c.text)
		}
	}
}

func TestStringLiterals(t *testing.T) {
	cases := []struct {
		input string
		typ   TokenType
		text  string
	}{
		{`"hello"`, STRING, `"hello"`},
		{`'hello'`, STRING, `'hello'`},
		{`"""multi
line"""`, STRING, "\"\"\"multi\nline\"\"\""},
		{`r"raw\n"`, STRING, `r"raw\n"`},
		{`R'raw'`, STRING, `R'raw'`},
		{`b"bytes"`, BYTES, `b"bytes"`},
		{`B'bytes'`, BYTES, `B'bytes'`},
		{`rb"rawbytes"`, BYTES, `rb"rawbytes"`},
		{`br"rawbytes"`, BYTES, `br"rawbytes"`},
	}
	for _, c := range cases {
		toks := collect(t, c.input)
		if toks[0].Type != c.typ || toks[0].Text != c.text {
			t.Errorf("%q: got %s(%q), want %s(%q)", c.input, toks[0].Type, toks[0].Text, c.typ, c.text)
		}
	}
}

func TestPrefixLetterIsNotMistakenForStringPrefix(t *testing.T) {
	toks := collect(t, "raw bar rb_ident")
	for i, tok := range toks[:3] {
		if tok.Type != IDENT {
			t.Errorf("token %d: got %s, want IDENT", i, tok.Type)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"unterminated`)
	_, err := l.Next()
	if err == nil {
		t.Fatalf("expected an error for unterminated string")
	}
}

func TestPositions(t *testing.T) {
	toks := collect(t, "a\nb")
	if toks[0].Line != 1 || toks[0].Column != 1 {
		t.Errorf("token 0: got %d:%d, want 1:1", toks[0].Line, toks[0].Column)
	}
	if toks[1].Line != 2 || toks[1].Column != 1 {
		t.Errorf("token 1: got %d:%d, want 2:1", toks[1].Line, toks[1].Column)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("a + b")
	first, err := l.Peek(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Type != IDENT || first.Text != "a" {
		t.Fatalf("got %v, want IDENT(a)", first)
	}
	second, err := l.Peek(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Type != PLUS {
		t.Fatalf("got %v, want PLUS", second)
	}
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Type != IDENT || tok.Text != "a" {
		t.Fatalf("Next after Peek returned %v, want IDENT(a)", tok)
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("a $ b")
	if _, err := l.Next(); err != nil {
		t.Fatalf("unexpected error on first token: %v", err)
	}
	_, err := l.Next()
	if err == nil {
		t.Fatalf("expected an error for '$'")
	}
}
