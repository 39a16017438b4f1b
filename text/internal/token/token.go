package token

import (
	"unicode"
	"unicode/utf8"
)

type Type int

const (
	LParen Type = iota
	RParen
	LBrace
	RBrace
	Semi
	Comma
	Colon
	Equals
	Dot
	Arrow
	Ident
	String
	Number
	Illegal
)

func (t Type) String() string {
	switch t {
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case Semi:
		return "';'"
	case Comma:
		return "','"
	case Colon:
		return "':'"
	case Equals:
		return "'='"
	case Dot:
		return "'.'"
	case Arrow:
		return "'->'"
	case Ident:
		return "identifier"
	case String:
		return "text"
	case Number:
		return "number"
	case Illegal:
		return "illegal token"
	}
	return "unknown"
}

// Token is a lexeme. String tokens hold the raw contents between the quotes,
// escapes undecoded.
type Token struct {
	Value string
	Type  Type
	Line  int
	Col   int
}

var punct = map[rune]Type{
	'(': LParen,
	')': RParen,
	'{': LBrace,
	'}': RBrace,
	';': Semi,
	',': Comma,
	':': Colon,
	'=': Equals,
	'.': Dot,
}

// Tokenize splits Candid text into tokens, skipping whitespace and // and
// /* */ comments. Malformed input yields an Illegal token, which ends the
// token stream. Input that is not valid UTF-8 yields a single Illegal token
// at the first invalid byte.
func Tokenize(input string) []Token {
	if !utf8.ValidString(input) {
		return []Token{invalidUTF8(input)}
	}

	var tokens []Token
	line, lineStart := 1, 0
	runes := []rune(input)

	emit := func(value string, typ Type, start int) {
		tokens = append(tokens, Token{value, typ, line, start - lineStart + 1})
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\n' {
			line++
			lineStart = i + 1
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}

		// Line comment
		if r == '/' && i+1 < len(runes) && runes[i+1] == '/' {
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			i--
			continue
		}

		// Block comment, nestable
		if r == '/' && i+1 < len(runes) && runes[i+1] == '*' {
			start := i
			depth := 1
			i += 2
			for i < len(runes) && depth > 0 {
				switch {
				case runes[i] == '/' && i+1 < len(runes) && runes[i+1] == '*':
					depth++
					i++
				case runes[i] == '*' && i+1 < len(runes) && runes[i+1] == '/':
					depth--
					i++
				case runes[i] == '\n':
					line++
					lineStart = i + 1
				}
				i++
			}
			if depth > 0 {
				emit("unterminated comment", Illegal, start)
				return tokens
			}
			i--
			continue
		}

		if r == '-' && i+1 < len(runes) && runes[i+1] == '>' {
			emit("->", Arrow, i)
			i++
			continue
		}

		if typ, ok := punct[r]; ok {
			emit(string(r), typ, i)
			continue
		}

		// String literal
		if r == '"' {
			start := i
			i++
			for i < len(runes) && runes[i] != '"' && runes[i] != '\n' {
				if runes[i] == '\\' {
					i++
				}
				i++
			}
			if i >= len(runes) || runes[i] != '"' {
				emit("unterminated text literal", Illegal, start)
				return tokens
			}
			emit(string(runes[start+1:i]), String, start)
			continue
		}

		// Number, optionally signed, or signed inf/nan
		if r == '-' || r == '+' || unicode.IsDigit(r) {
			start := i
			if r == '-' || r == '+' {
				if word := wordAt(runes, i+1); word == "inf" || word == "nan" {
					emit(string(r)+word, Ident, start)
					i += len(word)
					continue
				}
				i++
				if i >= len(runes) || !unicode.IsDigit(runes[i]) {
					emit(string(r), Illegal, start)
					return tokens
				}
			}
			hex := i+1 < len(runes) && runes[i] == '0' && (runes[i+1] == 'x' || runes[i+1] == 'X')
			if hex {
				i += 2
			}
		scan:
			for i < len(runes) {
				c := runes[i]
				switch {
				case unicode.IsDigit(c) || c == '_':
				case hex && isHexLetter(c):
				case !hex && c == '.' && i+1 < len(runes) && unicode.IsDigit(runes[i+1]):
				case !hex && (c == 'e' || c == 'E'):
				case !hex && (c == '-' || c == '+') && (runes[i-1] == 'e' || runes[i-1] == 'E'):
				default:
					break scan
				}
				i++
			}
			emit(string(runes[start:i]), Number, start)
			i--
			continue
		}

		// Identifier or keyword
		if unicode.IsLetter(r) || r == '_' {
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			emit(string(runes[start:i]), Ident, start)
			i--
			continue
		}

		emit(string(r), Illegal, i)
		return tokens
	}

	return tokens
}

func wordAt(runes []rune, i int) string {
	j := i
	for j < len(runes) && unicode.IsLetter(runes[j]) {
		j++
	}
	return string(runes[i:j])
}

func isHexLetter(c rune) bool {
	return (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func invalidUTF8(input string) Token {
	line, col := 1, 1
	for i := 0; i < len(input); {
		r, size := utf8.DecodeRuneInString(input[i:])
		if r == utf8.RuneError && size == 1 {
			break
		}
		if r == '\n' {
			line, col = line+1, 1
		} else {
			col++
		}
		i += size
	}
	return Token{"invalid UTF-8 in source text", Illegal, line, col}
}
