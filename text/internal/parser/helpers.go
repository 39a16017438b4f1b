package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// decodeText resolves the escapes of a text literal body. The result may be
// arbitrary bytes; callers that need text check it is valid UTF-8.
func decodeText(s string) ([]byte, error) {
	result := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			result = append(result, c)
			continue
		}
		if i+1 >= len(s) {
			return nil, fmt.Errorf("dangling escape at end of literal")
		}

		// Unicode escape: \u{XXXX}
		if s[i+1] == 'u' && i+2 < len(s) && s[i+2] == '{' {
			end := strings.IndexByte(s[i+3:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unterminated unicode escape")
			}
			digits := strings.ReplaceAll(s[i+3:i+3+end], "_", "")
			cp, err := strconv.ParseUint(digits, 16, 32)
			if err != nil || digits == "" {
				return nil, fmt.Errorf("invalid unicode escape \\u{%s}", s[i+3:i+3+end])
			}
			r := rune(cp)
			if !utf8.ValidRune(r) {
				return nil, fmt.Errorf("invalid unicode scalar value %#x", cp)
			}
			result = utf8.AppendRune(result, r)
			i += 3 + end
			continue
		}

		// Hex escape: \XX
		if i+2 < len(s) && isHexDigit(s[i+1]) && isHexDigit(s[i+2]) {
			result = append(result, hexValue(s[i+1])<<4|hexValue(s[i+2]))
			i += 2
			continue
		}

		switch s[i+1] {
		case 'n':
			result = append(result, '\n')
		case 't':
			result = append(result, '\t')
		case 'r':
			result = append(result, '\r')
		case '\\':
			result = append(result, '\\')
		case '"':
			result = append(result, '"')
		case '\'':
			result = append(result, '\'')
		default:
			return nil, fmt.Errorf("unknown escape \\%c", s[i+1])
		}
		i++
	}
	return result, nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// isFloatLiteral reports whether a number token needs a float type.
func isFloatLiteral(lit string) bool {
	s := strings.TrimLeft(lit, "+-")
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return false
	}
	return strings.ContainsAny(s, ".eE")
}

// floatName maps the nan/inf identifiers to a literal strconv accepts.
// Text NaN has no sign or payload: every spelling is the default NaN.
func floatName(s string) (string, bool) {
	switch s {
	case "nan", "+nan", "-nan":
		return "nan", true
	case "inf", "+inf":
		return "inf", true
	case "-inf":
		return "-inf", true
	}
	return "", false
}

// parseFieldID parses a numeric field label.
func parseFieldID(s string) (uint32, bool) {
	s = strings.ReplaceAll(s, "_", "")
	if s == "" || s[0] < '0' || s[0] > '9' {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}
