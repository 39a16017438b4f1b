// Package quote renders Candid text and blob literals.
package quote

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// Text returns s as a double-quoted Candid text literal. Control characters
// are written as \u{..}; bytes that are not valid UTF-8 as \XX.
func Text(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			writeHexByte(&b, s[i])
			i++
			continue
		}
		writeRune(&b, r)
		i += size
	}
	b.WriteByte('"')
	return b.String()
}

// Blob returns data as a double-quoted literal with every byte hex-escaped.
func Blob(data []byte) string {
	var b strings.Builder
	b.Grow(len(data)*3 + 2)
	b.WriteByte('"')
	for _, c := range data {
		writeHexByte(&b, c)
	}
	b.WriteByte('"')
	return b.String()
}

func writeRune(b *strings.Builder, r rune) {
	switch r {
	case '"':
		b.WriteString(`\"`)
	case '\\':
		b.WriteString(`\\`)
	case '\n':
		b.WriteString(`\n`)
	case '\r':
		b.WriteString(`\r`)
	case '\t':
		b.WriteString(`\t`)
	default:
		if r < 0x20 || r == 0x7f {
			b.WriteString(`\u{`)
			b.WriteString(strconv.FormatInt(int64(r), 16))
			b.WriteByte('}')
			return
		}
		b.WriteRune(r)
	}
}

func writeHexByte(b *strings.Builder, c byte) {
	b.WriteByte('\\')
	b.WriteByte(hexDigits[c>>4])
	b.WriteByte(hexDigits[c&0x0f])
}
