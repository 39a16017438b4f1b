package text

import (
	"github.com/wippyai/candid/text/internal/parser"
	"github.com/wippyai/candid/types"
	"github.com/wippyai/candid/value"
)

// Printer lays out values; its zero value uses the default width.
type Printer = value.Printer

// ParseValue parses a single value. The input may be wrapped in one pair of
// parentheses and may carry a type ascription, as in "128 : nat64".
func ParseValue(s string) (value.Value, error) {
	return parser.New(s).ParseValue()
}

// ParseArgs parses an argument list "(v1, v2, ...)". A trailing comma is
// allowed; a lone value without parentheses is a list of one.
func ParseArgs(s string) (value.Args, error) {
	return parser.New(s).ParseArgs()
}

// ParseType parses a Candid type such as "vec record { nat; text }".
// Names that are not keywords parse as type references.
func ParseType(s string) (*types.Type, error) {
	return parser.New(s).ParseType()
}

// ParseTypes parses a parenthesized type list such as "(nat, opt text)".
func ParseTypes(s string) ([]*types.Type, error) {
	return parser.New(s).ParseTypes()
}

// Print renders v in canonical text form. Print never fails.
//
// Text cannot carry the sign or payload of a NaN: all NaNs print as nan and
// parse back as the default NaN.
func Print(v value.Value) string {
	return value.DefaultPrinter.Value(v)
}

// PrintArgs renders an argument list in tuple form.
func PrintArgs(a value.Args) string {
	return value.DefaultPrinter.Args(a)
}

// PrintTypes renders a type list in tuple form.
func PrintTypes(ts []*types.Type) string {
	return types.TupleString(ts)
}
