package formatter

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mcncl/jsonconst/internal/models"
)

const hexDigits = "0123456789abcdef"

// Formatter renders parsed JSON values as compact JSON text, the same text
// JavaScript's JSON.stringify produces for the parsed value.
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format returns the compact JSON text of value. Object keys keep their order.
func (f *Formatter) Format(value models.JSONValue) (string, error) {
	var sb strings.Builder
	if err := f.write(&sb, value); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (f *Formatter) write(sb *strings.Builder, value models.JSONValue) error {
	switch v := value.(type) {
	case nil:
		sb.WriteString("null")
	case bool:
		sb.WriteString(strconv.FormatBool(v))
	case string:
		sb.WriteString(Quote(v))
	case json.Number:
		sb.WriteString(FormatNumber(v))
	case models.JSONArray:
		sb.WriteByte('[')
		for i, elem := range v {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := f.write(sb, elem); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
	case *models.JSONObject:
		sb.WriteByte('{')
		for i, key := range v.Keys() {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(Quote(key))
			sb.WriteByte(':')
			elem, _ := v.Get(key)
			if err := f.write(sb, elem); err != nil {
				return err
			}
		}
		sb.WriteByte('}')
	default:
		return fmt.Errorf("unsupported JSON value of type %T", value)
	}
	return nil
}

// FormatNumber renders n in ECMAScript shortest form. Numbers outside the
// float64 range render as null.
func FormatNumber(n json.Number) string {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil && !math.IsInf(f, 0) {
		// json.Number from the decoder is always well formed.
		return string(n)
	}
	if math.IsInf(f, 0) {
		return "null"
	}
	if f == 0 {
		return "0"
	}
	// encoding/json formats float64 the way ES6 Number#toString does.
	b, err := json.Marshal(f)
	if err != nil {
		return string(n)
	}
	return string(b)
}

// Quote returns s as a JSON string literal. Only quote, backslash and control
// characters are escaped, plus unpaired surrogates, which the parser stores in
// their three-byte generalized UTF-8 form and which come out as \udxxx.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 && isSurrogateBytes(s[i:]) {
			sb.WriteString(`\u`)
			sb.WriteByte('d')
			sb.WriteByte(hexDigits[s[i+1]>>2&0xF])
			sb.WriteByte(hexDigits[(s[i+1]&0x3)<<2|s[i+2]>>4&0x3])
			sb.WriteByte(hexDigits[s[i+2]&0xF])
			i += 3
			continue
		}
		i += size
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				sb.WriteString(`\u00`)
				sb.WriteByte(hexDigits[r>>4])
				sb.WriteByte(hexDigits[r&0xF])
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// isSurrogateBytes reports whether s starts with the generalized UTF-8
// encoding of a code point in U+D800..U+DFFF.
func isSurrogateBytes(s string) bool {
	return len(s) >= 3 && s[0] == 0xED && s[1] >= 0xA0 && s[1] <= 0xBF && s[2]&0xC0 == 0x80
}

// String coerces value to text the way JavaScript's String() does.
func String(value models.JSONValue) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	case json.Number:
		n := FormatNumber(v)
		if n == "null" {
			if strings.HasPrefix(string(v), "-") {
				return "-Infinity"
			}
			return "Infinity"
		}
		return n
	case models.JSONArray:
		parts := make([]string, len(v))
		for i, elem := range v {
			if elem != nil {
				parts[i] = String(elem)
			}
		}
		return strings.Join(parts, ",")
	case *models.JSONObject:
		return "[object Object]"
	default:
		return fmt.Sprint(v)
	}
}
