package candid

import (
	"github.com/wippyai/candid/text"
	"github.com/wippyai/candid/types"
	"github.com/wippyai/candid/value"
	"github.com/wippyai/candid/wire"
)

// Parse parses a Candid argument list such as `(1, "a")`.
func Parse(s string) (value.Args, error) {
	return text.ParseArgs(s)
}

// ParseTypes parses a parenthesized list of Candid types.
func ParseTypes(s string) ([]*types.Type, error) {
	return text.ParseTypes(s)
}

// Print returns the canonical text of an argument list.
func Print(args value.Args) string {
	return text.PrintArgs(args)
}

// Encode serializes args with their inferred types.
func Encode(args value.Args) ([]byte, error) {
	return wire.Encode(args)
}

// EncodeWithTypes serializes args with declared types.
func EncodeWithTypes(args value.Args, ts []*types.Type) ([]byte, error) {
	return wire.EncodeWithTypes(args, ts)
}

// Decode deserializes a message. Record fields and variant cases carry
// numeric labels.
func Decode(data []byte) (value.Args, error) {
	return wire.Decode(data)
}

// DecodeWithTypes deserializes a message and names its labels after ts.
func DecodeWithTypes(data []byte, ts []*types.Type) (value.Args, error) {
	return wire.DecodeWithTypes(data, ts)
}

// EncodeText parses an argument list and serializes it. Untyped numbers
// are encoded as int.
func EncodeText(s string) ([]byte, error) {
	args, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return Encode(args)
}

// DecodeText deserializes a message and prints it canonically.
func DecodeText(data []byte) (string, error) {
	args, err := Decode(data)
	if err != nil {
		return "", err
	}
	return Print(args), nil
}
