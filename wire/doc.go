// Package wire implements the Candid binary format.
//
// A message is the magic "DIDL", a table of constructed types, the types of
// the arguments and then the argument values:
//
//	44 49 44 4C          magic
//	00                   no table entries
//	03 7E 68 75          three arguments: bool, principal, int32
//	01                   true
//	01 01 04             principal 2vxsx-fae
//	F4 FF FF FF          -12
//
// Encode infers argument types from the values; EncodeWithTypes annotates the
// values with declared types first, which is how untyped number literals get
// a width. Structurally equal table entries are shared.
//
// Decode checks the input strictly: bad magic, truncation, out of range type
// references, unsorted field ids, records that contain themselves, LEB128
// overflow, invalid bools, invalid UTF-8, unknown variant cases, oversized
// principals, nesting beyond MaxDepth and trailing bytes all fail with a
// malformed wire data error. Decoded record and variant labels are bare field
// ids; DecodeWithTypes restores names from declared types.
package wire
