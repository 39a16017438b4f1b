package value

import (
	"math/big"
	"slices"

	"github.com/wippyai/candid/errors"
	"github.com/wippyai/candid/principal"
	"github.com/wippyai/candid/types"
)

func (v Value) mismatch(want Kind) error {
	return errors.TypeMismatch(errors.PhaseAccess, nil, want.String(), v.kind.String())
}

// AsBool returns the payload of a bool.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, v.mismatch(KindBool)
	}
	return v.data.(bool), nil
}

// AsText returns the payload of a text value.
func (v Value) AsText() (string, error) {
	if v.kind != KindText {
		return "", v.mismatch(KindText)
	}
	return v.data.(string), nil
}

// AsNumber returns the literal of an untyped number.
func (v Value) AsNumber() (string, error) {
	if v.kind != KindNumber {
		return "", v.mismatch(KindNumber)
	}
	return v.data.(string), nil
}

func (v Value) AsFloat32() (float32, error) {
	if v.kind != KindFloat32 {
		return 0, v.mismatch(KindFloat32)
	}
	return v.data.(float32), nil
}

func (v Value) AsFloat64() (float64, error) {
	if v.kind != KindFloat64 {
		return 0, v.mismatch(KindFloat64)
	}
	return v.data.(float64), nil
}

// AsOpt unwraps an optional. It reports false for None and fails for any
// non-optional variant.
func (v Value) AsOpt() (Value, bool, error) {
	switch v.kind {
	case KindOpt:
		return v.data.(Value), true, nil
	case KindNone:
		return Value{}, false, nil
	}
	return Value{}, false, v.mismatch(KindOpt)
}

// AsVec returns a copy of the elements of a vector.
func (v Value) AsVec() ([]Value, error) {
	if v.kind != KindVec {
		return nil, v.mismatch(KindVec)
	}
	return slices.Clone(v.data.([]Value)), nil
}

// AsBlob returns the bytes of a vec nat8.
func (v Value) AsBlob() ([]byte, error) {
	if v.kind != KindVec {
		return nil, v.mismatch(KindVec)
	}
	elems := v.data.([]Value)
	out := make([]byte, len(elems))
	for i, e := range elems {
		if e.kind != KindNat8 {
			return nil, errors.TypeMismatch(errors.PhaseAccess, []string{itoa(i)}, "nat8", e.kind.String())
		}
		out[i] = e.data.(uint8)
	}
	return out, nil
}

// AsRecord returns the fields of a record keyed by label text: the name for
// named fields and the decimal id otherwise.
func (v Value) AsRecord() (map[string]Value, error) {
	if v.kind != KindRecord {
		return nil, v.mismatch(KindRecord)
	}
	fields := v.data.([]Field)
	out := make(map[string]Value, len(fields))
	for _, f := range fields {
		out[f.Label.Text()] = f.Value
	}
	return out, nil
}

// AsFields returns the fields of a record in insertion order.
func (v Value) AsFields() ([]Field, error) {
	if v.kind != KindRecord {
		return nil, v.mismatch(KindRecord)
	}
	return slices.Clone(v.data.([]Field)), nil
}

// Field looks up a record field by name or decimal id. Names match fields
// of decoded records too, whose labels are bare ids.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != KindRecord {
		return Value{}, false
	}
	id := types.ParseLabel(name).ID()
	for _, f := range v.data.([]Field) {
		if f.Label.ID() == id {
			return f.Value, true
		}
	}
	return Value{}, false
}

// AsVariant returns the label text and payload of a variant.
func (v Value) AsVariant() (string, Value, error) {
	if v.kind != KindVariant {
		return "", Value{}, v.mismatch(KindVariant)
	}
	d := v.data.(variantData)
	return d.field.Label.Text(), d.field.Value, nil
}

// AsVariantField returns the active case of a variant and its index hint.
func (v Value) AsVariantField() (Field, uint64, error) {
	if v.kind != KindVariant {
		return Field{}, 0, v.mismatch(KindVariant)
	}
	d := v.data.(variantData)
	return d.field, d.index, nil
}

func (v Value) AsPrincipal() (principal.Principal, error) {
	if v.kind != KindPrincipal {
		return principal.Principal{}, v.mismatch(KindPrincipal)
	}
	return v.data.(principal.Principal), nil
}

func (v Value) AsService() (principal.Principal, error) {
	if v.kind != KindService {
		return principal.Principal{}, v.mismatch(KindService)
	}
	return v.data.(principal.Principal), nil
}

// AsFunc returns the service and method of a func reference.
func (v Value) AsFunc() (principal.Principal, string, error) {
	if v.kind != KindFunc {
		return principal.Principal{}, "", v.mismatch(KindFunc)
	}
	d := v.data.(funcData)
	return d.ref, d.method, nil
}

// AsNat returns a copy of the payload of a nat.
func (v Value) AsNat() (*big.Int, error) {
	if v.kind != KindNat {
		return nil, v.mismatch(KindNat)
	}
	return new(big.Int).Set(v.data.(*big.Int)), nil
}

// AsInt returns a copy of the payload of an int.
func (v Value) AsInt() (*big.Int, error) {
	if v.kind != KindInt {
		return nil, v.mismatch(KindInt)
	}
	return new(big.Int).Set(v.data.(*big.Int)), nil
}

func (v Value) AsNat8() (uint8, error) {
	if v.kind != KindNat8 {
		return 0, v.mismatch(KindNat8)
	}
	return v.data.(uint8), nil
}

func (v Value) AsNat16() (uint16, error) {
	if v.kind != KindNat16 {
		return 0, v.mismatch(KindNat16)
	}
	return v.data.(uint16), nil
}

func (v Value) AsNat32() (uint32, error) {
	if v.kind != KindNat32 {
		return 0, v.mismatch(KindNat32)
	}
	return v.data.(uint32), nil
}

func (v Value) AsNat64() (uint64, error) {
	if v.kind != KindNat64 {
		return 0, v.mismatch(KindNat64)
	}
	return v.data.(uint64), nil
}

func (v Value) AsInt8() (int8, error) {
	if v.kind != KindInt8 {
		return 0, v.mismatch(KindInt8)
	}
	return v.data.(int8), nil
}

func (v Value) AsInt16() (int16, error) {
	if v.kind != KindInt16 {
		return 0, v.mismatch(KindInt16)
	}
	return v.data.(int16), nil
}

func (v Value) AsInt32() (int32, error) {
	if v.kind != KindInt32 {
		return 0, v.mismatch(KindInt32)
	}
	return v.data.(int32), nil
}

func (v Value) AsInt64() (int64, error) {
	if v.kind != KindInt64 {
		return 0, v.mismatch(KindInt64)
	}
	return v.data.(int64), nil
}
