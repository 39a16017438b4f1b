// Package value implements the Candid value model.
//
// A Value is a closed tagged union: exactly one of null, bool, text, an
// untyped number literal, float32/64, opt, vec, record, variant, principal,
// service, func, none, nat/int, nat8..64, int8..64 or reserved. Values are
// built with one constructor per variant and read back with the matching
// As accessor, which fails with a type mismatch on any other variant:
//
//	v, _ := value.Record(
//		value.NamedField("name", value.Text("alice")),
//		value.NamedField("age", value.Nat8(30)),
//	)
//	m, _ := v.AsRecord()
//	age, _ := m["age"].AsNat8()
//
// Args is the ordered list of values exchanged on the wire.
//
// Record and variant labels carry a 32-bit id (types.IDHash of the name, or
// the number itself). Equality and wire layout depend on ids only; the
// insertion order of record fields is kept for display.
//
// Type infers a value's Candid type and Annotate coerces a value to a declared
// type, which is how untyped number literals get their width. String and
// Printer render the canonical text form parsed by package text.
package value
