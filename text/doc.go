// Package text reads and writes the Candid textual value format.
//
// Values:
//
//	128 : nat64
//	vec { true; principal "2vxsx-fae"; 12345 }
//	record { name = "alice"; 123 = opt blob "\00\ff" }
//	variant { ok = func "aaaaa-aa".greet }
//
// Argument lists wrap values in a tuple, "(1 : nat8, "x",)", and types use
// the interface description syntax, "record { a : nat; b : opt text }".
//
// Untyped integer literals stay untyped Number values until a type
// ascription or a declared type gives them a width. Fractional literals,
// nan and inf are float64 unless ascribed.
//
// Comments (// to end of line and nestable /* */) are ignored. Syntax errors
// carry the line and column of the offending token.
//
// Print is the inverse of ParseValue: ParseValue(Print(v)) equals v for every
// value, and printing is idempotent.
package text
