// Package highlight colors Candid text for terminals.
package highlight

import (
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
	"golang.org/x/term"

	"github.com/wippyai/candid/internal/config"
)

// Candid is a chroma lexer for Candid values, types and service files.
var Candid = lexers.Register(chroma.MustNewLexer(
	&chroma.Config{
		Name:      "Candid",
		Aliases:   []string{"candid", "did"},
		Filenames: []string{"*.did"},
		MimeTypes: []string{"text/x-candid"},
	},
	candidRules,
))

func candidRules() chroma.Rules {
	return chroma.Rules{
		"root": {
			{Pattern: `\s+`, Type: chroma.Text},
			{Pattern: `//[^\n]*`, Type: chroma.CommentSingle},
			{Pattern: `/\*`, Type: chroma.CommentMultiline, Mutator: chroma.Push("comment")},
			{Pattern: `"`, Type: chroma.LiteralString, Mutator: chroma.Push("string")},
			{Pattern: chroma.Words(`\b`, `\b`, "type", "import", "service", "func", "query", "oneway", "composite_query"), Type: chroma.Keyword},
			{Pattern: chroma.Words(`\b`, `\b`,
				"opt", "vec", "record", "variant", "blob", "principal", "null", "bool", "text",
				"nat", "nat8", "nat16", "nat32", "nat64", "int", "int8", "int16", "int32", "int64",
				"float32", "float64", "reserved", "empty"), Type: chroma.KeywordType},
			{Pattern: chroma.Words(`\b`, `\b`, "true", "false"), Type: chroma.KeywordConstant},
			{Pattern: `[+-]?(nan|inf)\b`, Type: chroma.LiteralNumberFloat},
			{Pattern: `[+-]?0x[0-9a-fA-F_]+`, Type: chroma.LiteralNumberHex},
			{Pattern: `[+-]?[0-9][0-9_]*(\.[0-9_]*([eE][+-]?[0-9_]+)?|[eE][+-]?[0-9_]+)`, Type: chroma.LiteralNumberFloat},
			{Pattern: `[+-]?[0-9][0-9_]*`, Type: chroma.LiteralNumberInteger},
			{Pattern: `->|=|:`, Type: chroma.Operator},
			{Pattern: `[{}();,.]`, Type: chroma.Punctuation},
			{Pattern: `[A-Za-z_][A-Za-z0-9_]*`, Type: chroma.Name},
		},
		"comment": {
			{Pattern: `[^*/]+`, Type: chroma.CommentMultiline},
			{Pattern: `/\*`, Type: chroma.CommentMultiline, Mutator: chroma.Push()},
			{Pattern: `\*/`, Type: chroma.CommentMultiline, Mutator: chroma.Pop(1)},
			{Pattern: `[*/]`, Type: chroma.CommentMultiline},
		},
		"string": {
			{Pattern: `\\(u\{[0-9a-fA-F_]+\}|[0-9a-fA-F]{2}|.)`, Type: chroma.LiteralStringEscape},
			{Pattern: `[^"\\]+`, Type: chroma.LiteralString},
			{Pattern: `"`, Type: chroma.LiteralString, Mutator: chroma.Pop(1)},
		},
	}
}

// Style is the chroma style used for highlighted output.
const Style = "monokai"

// Highlight writes code colored for a 256-color terminal.
func Highlight(w io.Writer, code string) error {
	return quick.Highlight(w, code, "candid", "terminal256", Style)
}

// String returns code colored for a terminal, or code unchanged when it
// cannot be highlighted.
func String(code string) string {
	var b strings.Builder
	if err := Highlight(&b, code); err != nil {
		return code
	}
	return b.String()
}

// Enabled reports whether output to f should be colored under the given
// color mode. In auto mode color is used for terminals unless NO_COLOR is
// set.
func Enabled(mode string, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" || f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
