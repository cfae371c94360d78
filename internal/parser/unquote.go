package parser

import (
	"unicode/utf16"
	"unicode/utf8"
)

// hasSurrogateEscape reports whether lit contains a \uD800-\uDFFF escape.
func hasSurrogateEscape(lit []byte) bool {
	for i := 0; i+2 < len(lit); i++ {
		if lit[i] != '\\' {
			continue
		}
		if lit[i+1] == 'u' && (lit[i+2] == 'd' || lit[i+2] == 'D') && i+3 < len(lit) {
			switch lit[i+3] {
			case '8', '9', 'a', 'b', 'c', 'd', 'e', 'f', 'A', 'B', 'C', 'D', 'E', 'F':
				return true
			}
		}
		i++ // skip the escaped character
	}
	return false
}

// unquote decodes the JSON string literal lit. Paired surrogate escapes become
// one rune; an unpaired surrogate is kept as its three-byte generalized UTF-8
// encoding (0xED 0xA0-0xBF ..), which formatter.Quote writes back as \uXXXX.
// Invalid UTF-8 outside escapes becomes U+FFFD, as with encoding/json.
func unquote(lit []byte) (string, bool) {
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
		return "", false
	}
	lit = lit[1 : len(lit)-1]

	buf := make([]byte, 0, len(lit))
	for i := 0; i < len(lit); {
		c := lit[i]
		if c != '\\' {
			r, size := utf8.DecodeRune(lit[i:])
			if r == utf8.RuneError && size == 1 {
				buf = utf8.AppendRune(buf, utf8.RuneError)
			} else {
				buf = append(buf, lit[i:i+size]...)
			}
			i += size
			continue
		}
		if i+1 >= len(lit) {
			return "", false
		}
		switch lit[i+1] {
		case '"', '\\', '/':
			buf = append(buf, lit[i+1])
		case 'b':
			buf = append(buf, '\b')
		case 'f':
			buf = append(buf, '\f')
		case 'n':
			buf = append(buf, '\n')
		case 'r':
			buf = append(buf, '\r')
		case 't':
			buf = append(buf, '\t')
		case 'u':
			r, ok := hex4(lit[i+2:])
			if !ok {
				return "", false
			}
			i += 6
			if !utf16.IsSurrogate(r) {
				buf = utf8.AppendRune(buf, r)
				continue
			}
			if r < 0xDC00 && i+1 < len(lit) && lit[i] == '\\' && lit[i+1] == 'u' {
				if low, ok := hex4(lit[i+2:]); ok {
					if pair := utf16.DecodeRune(r, low); pair != utf8.RuneError {
						buf = utf8.AppendRune(buf, pair)
						i += 6
						continue
					}
				}
			}
			buf = append(buf, 0xE0|byte(r>>12), 0x80|byte(r>>6)&0x3F, 0x80|byte(r)&0x3F)
			continue
		default:
			return "", false
		}
		i += 2
	}
	return string(buf), true
}

func hex4(b []byte) (rune, bool) {
	if len(b) < 4 {
		return 0, false
	}
	var r rune
	for _, c := range b[:4] {
		switch {
		case '0' <= c && c <= '9':
			c -= '0'
		case 'a' <= c && c <= 'f':
			c = c - 'a' + 10
		case 'A' <= c && c <= 'F':
			c = c - 'A' + 10
		default:
			return 0, false
		}
		r = r<<4 | rune(c)
	}
	return r, true
}
