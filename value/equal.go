package value

import (
	"math"
	"math/big"
)

// Equal reports structural equality: the variants must match, then their
// payloads. Opt(x) never equals x, numbers of different widths are never
// equal, floats compare by bit pattern, record field order is ignored and a
// variant's index hint is not compared.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull, KindNone, KindReserved:
		return true
	case KindFloat32:
		return math.Float32bits(v.data.(float32)) == math.Float32bits(o.data.(float32))
	case KindFloat64:
		return math.Float64bits(v.data.(float64)) == math.Float64bits(o.data.(float64))
	case KindNat, KindInt:
		return v.data.(*big.Int).Cmp(o.data.(*big.Int)) == 0
	case KindOpt:
		return v.data.(Value).Equal(o.data.(Value))
	case KindVec:
		a, b := v.data.([]Value), o.data.([]Value)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case KindRecord:
		return fieldsEqual(v.data.([]Field), o.data.([]Field))
	case KindVariant:
		a, b := v.data.(variantData), o.data.(variantData)
		return a.field.Label.Equal(b.field.Label) && a.field.Value.Equal(b.field.Value)
	default:
		// bool, text, number, fixed-width ints, principal, service, func
		return v.data == o.data
	}
}

func fieldsEqual(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}
	for _, fa := range a {
		found := false
		for _, fb := range b {
			if fa.Label.Equal(fb.Label) {
				if !fa.Value.Equal(fb.Value) {
					return false
				}
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
