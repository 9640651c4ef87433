package parser

import (
	"strconv"
	"strings"
)

// decodeLexeme splits a STRING/BYTES token's raw text into its prefix
// ("", "r", "R", "b", "B", "rb", "br", ...) and decoded content, applying
// escape decoding unless the prefix marks the literal raw.
func decodeLexeme(text string) (content string, raw bool, err error) {
	i := 0
	for i < len(text) && isPrefixByte(text[i]) {
		i++
		if i > 2 {
			break
		}
	}
	prefix := text[:i]
	raw = strings.ContainsAny(prefix, "rR")
	rest := text[i:]

	quote := rest[0]
	triple := len(rest) >= 6 && rest[1] == quote && rest[2] == quote
	var inner string
	if triple {
		inner = rest[3 : len(rest)-3]
	} else {
		inner = rest[1 : len(rest)-1]
	}

	if raw {
		return inner, true, nil
	}
	decoded, err := decodeEscapes(inner)
	return decoded, false, err
}

func isPrefixByte(b byte) bool {
	return b == 'r' || b == 'R' || b == 'b' || b == 'B'
}

// decodeEscapes implements the escape table of spec section 4.2. Unknown
// `\X` sequences degrade gracefully: the backslash is kept literally and
// scanning resumes at X.
func decodeEscapes(s string) (string, error) {
	var b strings.Builder
	i := 0
	for i < len(s) {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			i++
			continue
		}
		next := s[i+1]
		switch next {
		case '\\', '"', '\'', '`', '?':
			b.WriteByte(next)
			i += 2
		case 'a':
			b.WriteByte(0x07)
			i += 2
		case 'b':
			b.WriteByte(0x08)
			i += 2
		case 'f':
			b.WriteByte(0x0C)
			i += 2
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'v':
			b.WriteByte(0x0B)
			i += 2
		case 'x', 'X':
			if i+3 < len(s) && isHexByte(s[i+2]) && isHexByte(s[i+3]) {
				v, _ := strconv.ParseUint(s[i+2:i+4], 16, 8)
				b.WriteByte(byte(v))
				i += 4
			} else {
				b.WriteByte('\\')
				i++
			}
		case 'u':
			if i+5 < len(s) && allHexBytes(s[i+2:i+6]) {
				v, _ := strconv.ParseUint(s[i+2:i+6], 16, 32)
				b.WriteRune(rune(v))
				i += 6
			} else {
				b.WriteByte('\\')
				i++
			}
		case 'U':
			if i+9 < len(s) && allHexBytes(s[i+2:i+10]) {
				v, _ := strconv.ParseUint(s[i+2:i+10], 16, 32)
				b.WriteRune(rune(v))
				i += 10
			} else {
				b.WriteByte('\\')
				i++
			}
		default:
			if next >= '0' && next <= '3' && i+3 < len(s) && isOctalByte(s[i+2]) && isOctalByte(s[i+3]) {
				v, _ := strconv.ParseUint(s[i+1:i+4], 8, 8)
				b.WriteByte(byte(v))
				i += 4
			} else {
				b.WriteByte('\\')
				i++
			}
		}
	}
	return b.String(), nil
}

func isHexByte(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func allHexBytes(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isHexByte(s[i]) {
			return false
		}
	}
	return true
}

func isOctalByte(b byte) bool {
	return b >= '0' && b <= '7'
}
