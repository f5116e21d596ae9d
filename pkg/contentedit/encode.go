package contentedit

import (
	"bytes"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/tidwall/pretty"
)

// rawOptions formats raw-mode text: two-space indent, keys kept in order.
var rawOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// Marshal encodes v as compact JSON.
func Marshal(v Value) []byte {
	return appendValue(nil, v)
}

// MarshalIndent encodes v as the pretty-printed text shown in raw mode.
func MarshalIndent(v Value) []byte {
	out := pretty.PrettyOptions(Marshal(v), rawOptions)
	return bytes.TrimRight(out, "\n")
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return Marshal(v), nil
}

// UnmarshalJSON implements json.Unmarshaler, keeping object key order.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func appendValue(buf []byte, v Value) []byte {
	switch v.kind {
	case KindNull:
		return append(buf, "null"...)
	case KindBool:
		if v.b {
			return append(buf, "true"...)
		}
		return append(buf, "false"...)
	case KindNumber:
		return appendNumber(buf, v.n)
	case KindString:
		return appendString(buf, v.s)
	case KindArray:
		buf = append(buf, '[')
		for i, item := range v.items {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendValue(buf, item)
		}
		return append(buf, ']')
	case KindObject:
		buf = append(buf, '{')
		for i, m := range v.members {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendString(buf, m.Key)
			buf = append(buf, ':')
			buf = appendValue(buf, m.Value)
		}
		return append(buf, '}')
	}
	return append(buf, "null"...)
}

// appendNumber formats n the way JSON serializers in browsers do: shortest
// round-trip digits, exponent form only for very small or very large values.
func appendNumber(buf []byte, n float64) []byte {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return append(buf, "null"...)
	}
	if n == 0 {
		n = 0 // drop the sign of -0
	}
	format := byte('f')
	if abs := math.Abs(n); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	start := len(buf)
	buf = strconv.AppendFloat(buf, n, format, -1, 64)
	if format == 'e' {
		// 1e-07 -> 1e-7
		num := buf[start:]
		if l := len(num); l >= 4 && num[l-4] == 'e' && num[l-3] == '-' && num[l-2] == '0' {
			num[l-2] = num[l-1]
			buf = buf[:len(buf)-1]
		}
	}
	return buf
}

const hex = "0123456789abcdef"

func appendString(buf []byte, s string) []byte {
	buf = append(buf, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"' || c == '\\':
				buf = append(buf, '\\', c)
			case c == '\n':
				buf = append(buf, '\\', 'n')
			case c == '\r':
				buf = append(buf, '\\', 'r')
			case c == '\t':
				buf = append(buf, '\\', 't')
			case c == '\b':
				buf = append(buf, '\\', 'b')
			case c == '\f':
				buf = append(buf, '\\', 'f')
			case c < 0x20:
				buf = append(buf, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xf])
			default:
				buf = append(buf, c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf = append(buf, "\ufffd"...)
		} else {
			buf = append(buf, s[i:i+size]...)
		}
		i += size
	}
	return append(buf, '"')
}
