package value

import (
	"math/big"
	"slices"

	"github.com/wippyai/candid/errors"
	"github.com/wippyai/candid/numeric"
	"github.com/wippyai/candid/principal"
	"github.com/wippyai/candid/types"
)

// Value is a single Candid value. The zero Value is null.
//
// Values are immutable: constructors copy the slices and big integers they
// are given, and accessors return copies.
type Value struct {
	data any
	kind Kind
}

// Field is a labelled member of a record or the active case of a variant.
type Field struct {
	Value Value
	Label types.Label
}

// NamedField returns a field labelled by name.
func NamedField(name string, v Value) Field {
	return Field{Label: types.Named(name), Value: v}
}

// IDField returns a field labelled by a numeric id.
func IDField(id uint32, v Value) Field {
	return Field{Label: types.ID(id), Value: v}
}

type variantData struct {
	field Field
	index uint64
}

type funcData struct {
	method string
	ref    principal.Principal
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a bool value.
func Bool(b bool) Value { return Value{kind: KindBool, data: b} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, data: s} }

// Number returns an untyped integer literal. Its width is resolved later by
// Annotate or by the wire encoder; on its own it encodes as int.
func Number(lit string) (Value, error) {
	if _, err := numeric.ParseInt(lit); err != nil {
		return Value{}, err
	}
	return Value{kind: KindNumber, data: numeric.Normalize(lit)}, nil
}

// Float32 returns a float32 value.
func Float32(f float32) Value { return Value{kind: KindFloat32, data: f} }

// Float64 returns a float64 value.
func Float64(f float64) Value { return Value{kind: KindFloat64, data: f} }

// Opt returns a present optional.
func Opt(v Value) Value { return Value{kind: KindOpt, data: v} }

// None returns the absent optional.
func None() Value { return Value{kind: KindNone} }

// Reserved returns the reserved value.
func Reserved() Value { return Value{kind: KindReserved} }

// Vec returns a vector of the given elements.
func Vec(elems ...Value) Value {
	return Value{kind: KindVec, data: slices.Clone(elems)}
}

// Blob returns a vec nat8 holding data.
func Blob(data []byte) Value {
	elems := make([]Value, len(data))
	for i, b := range data {
		elems[i] = Nat8(b)
	}
	return Value{kind: KindVec, data: elems}
}

// Record returns a record of the given fields, kept in the order given.
// Two fields whose labels share an id are rejected.
func Record(fields ...Field) (Value, error) {
	seen := make(map[uint32]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.Label.ID()]; dup {
			return Value{}, errors.New(errors.PhaseConstruct, errors.KindInvalidArgument).
				Path(f.Label.Text()).
				Detail("duplicate record field %s (id %d)", f.Label, f.Label.ID()).
				Build()
		}
		seen[f.Label.ID()] = struct{}{}
	}
	return Value{kind: KindRecord, data: slices.Clone(fields)}, nil
}

// RecordFromMap returns a record from a map. Fields are ordered by key;
// decimal keys become numeric ids.
func RecordFromMap(m map[string]Value) (Value, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	fields := make([]Field, len(keys))
	for i, k := range keys {
		fields[i] = Field{Label: types.ParseLabel(k), Value: m[k]}
	}
	return Record(fields...)
}

// Tuple returns a record whose fields are positional.
func Tuple(elems ...Value) Value {
	fields := make([]Field, len(elems))
	for i, v := range elems {
		fields[i] = Field{Label: types.Unnamed(uint32(i)), Value: v}
	}
	return Value{kind: KindRecord, data: fields}
}

// Variant returns a variant whose active case is label. The index is the
// position of the case in its variant type; it is a hint only, the label is
// authoritative.
func Variant(label string, v Value, index uint64) (Value, error) {
	if label == "" {
		return Value{}, errors.InvalidArgument(errors.PhaseConstruct, "variant label must not be empty")
	}
	return VariantField(Field{Label: types.ParseLabel(label), Value: v}, index)
}

// VariantField is Variant with an explicit label.
func VariantField(f Field, index uint64) (Value, error) {
	if f.Label.Kind() == types.LabelNamed && f.Label.Name() == "" {
		return Value{}, errors.InvalidArgument(errors.PhaseConstruct, "variant label must not be empty")
	}
	return Value{kind: KindVariant, data: variantData{field: f, index: index}}, nil
}

// Principal returns a principal value.
func Principal(p principal.Principal) Value {
	return Value{kind: KindPrincipal, data: p}
}

// Service returns a service reference.
func Service(p principal.Principal) Value {
	return Value{kind: KindService, data: p}
}

// Func returns a reference to a method of a service.
func Func(p principal.Principal, method string) (Value, error) {
	if method == "" {
		return Value{}, errors.InvalidArgument(errors.PhaseConstruct, "func method must not be empty")
	}
	return Value{kind: KindFunc, data: funcData{ref: p, method: method}}, nil
}

// Nat returns an arbitrary-precision natural. Negative values fail.
func Nat(x *big.Int) (Value, error) {
	if x == nil {
		return Value{}, errors.InvalidArgument(errors.PhaseConstruct, "nat must not be nil")
	}
	if x.Sign() < 0 {
		return Value{}, errors.New(errors.PhaseConstruct, errors.KindInvalidArgument).
			Value(x.String()).
			Want("nat").
			Detail("negative value %s", x).
			Build()
	}
	return Value{kind: KindNat, data: new(big.Int).Set(x)}, nil
}

// NatFromUint64 returns a nat.
func NatFromUint64(n uint64) Value {
	return Value{kind: KindNat, data: new(big.Int).SetUint64(n)}
}

// Int returns an arbitrary-precision integer.
func Int(x *big.Int) Value {
	if x == nil {
		x = new(big.Int)
	}
	return Value{kind: KindInt, data: new(big.Int).Set(x)}
}

// IntFromInt64 returns an int.
func IntFromInt64(n int64) Value {
	return Value{kind: KindInt, data: big.NewInt(n)}
}

func Nat8(n uint8) Value   { return Value{kind: KindNat8, data: n} }
func Nat16(n uint16) Value { return Value{kind: KindNat16, data: n} }
func Nat32(n uint32) Value { return Value{kind: KindNat32, data: n} }
func Nat64(n uint64) Value { return Value{kind: KindNat64, data: n} }
func Int8(n int8) Value    { return Value{kind: KindInt8, data: n} }
func Int16(n int16) Value  { return Value{kind: KindInt16, data: n} }
func Int32(n int32) Value  { return Value{kind: KindInt32, data: n} }
func Int64(n int64) Value  { return Value{kind: KindInt64, data: n} }

// FromLiteral converts a numeric literal to the number variant of kind k,
// with range and sign checks.
func FromLiteral(lit string, k types.Kind) (Value, error) {
	switch k {
	case types.KindNat:
		x, err := numeric.ParseNat(lit)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindNat, data: x}, nil
	case types.KindInt:
		x, err := numeric.ParseInt(lit)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindInt, data: x}, nil
	case types.KindNat8, types.KindNat16, types.KindNat32, types.KindNat64:
		n, err := numeric.ParseUint(lit, k.Bits())
		if err != nil {
			return Value{}, err
		}
		return fixedUint(k, n), nil
	case types.KindInt8, types.KindInt16, types.KindInt32, types.KindInt64:
		n, err := numeric.ParseSint(lit, k.Bits())
		if err != nil {
			return Value{}, err
		}
		return fixedSint(k, n), nil
	case types.KindFloat32:
		f, err := numeric.ParseFloat(lit, 32)
		if err != nil {
			return Value{}, err
		}
		return Float32(float32(f)), nil
	case types.KindFloat64:
		f, err := numeric.ParseFloat(lit, 64)
		if err != nil {
			return Value{}, err
		}
		return Float64(f), nil
	}
	return Value{}, errors.New(errors.PhaseNumeric, errors.KindTypeMismatch).
		Want("number type").
		Got(k.String()).
		Detail("literal %s cannot have type %s", lit, k).
		Build()
}

func fixedUint(k types.Kind, n uint64) Value {
	switch k {
	case types.KindNat8:
		return Nat8(uint8(n))
	case types.KindNat16:
		return Nat16(uint16(n))
	case types.KindNat32:
		return Nat32(uint32(n))
	}
	return Nat64(n)
}

func fixedSint(k types.Kind, n int64) Value {
	switch k {
	case types.KindInt8:
		return Int8(int8(n))
	case types.KindInt16:
		return Int16(int16(n))
	case types.KindInt32:
		return Int32(int32(n))
	}
	return Int64(n)
}

// Kind returns the active variant.
func (v Value) Kind() Kind { return v.kind }

// ValueType returns the Candid type keyword of the active variant, e.g.
// "nat64", "record" or "principal". An untyped Number reports "int" and None
// reports "opt".
func (v Value) ValueType() string { return v.kind.typeName() }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsNone reports whether v is the absent optional.
func (v Value) IsNone() bool { return v.kind == KindNone }

// IsReserved reports whether v is the reserved value.
func (v Value) IsReserved() bool { return v.kind == KindReserved }

// String returns the canonical Candid text of v.
func (v Value) String() string {
	return DefaultPrinter.Value(v)
}
