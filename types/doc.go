// Package types models Candid types.
//
// A Type is a tree of constructors (opt, vec, record, variant, func, service)
// over primitive kinds. Record fields and variant cases carry a Label whose
// 32-bit id is either the field hash of its name (IDHash) or a literal number;
// fields are kept sorted by id, which is also their wire order.
//
// Types are produced by value inference (value.Value.Type), by the text parser
// (text.ParseType) and by the wire decoder, and consumed by value.Annotate and
// the wire encoder.
package types
