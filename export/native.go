package export

import (
	"math/big"

	"github.com/wippyai/candid/numeric"
	"github.com/wippyai/candid/types"
	"github.com/wippyai/candid/value"
)

// Native projects v onto plain Go data that general purpose encoders
// understand:
//
//	null, reserved, none      nil
//	opt x                     Native(x)
//	bool, text                bool, string
//	fixed-width integers      int64 or uint64
//	nat, int, untyped number  int64 or uint64 when they fit, decimal string otherwise
//	float32, float64          float32, float64
//	blob                      []byte
//	vec                       []any
//	tuple                     []any
//	record                    map[string]any keyed by label text
//	variant                   map[string]any with the single active case
//	principal, service        textual principal
//	func                      map[string]any{"principal": ..., "method": ...}
//
// The projection loses type information: Native(Opt(Null())) and
// Native(None()) are both nil.
func Native(v value.Value) any {
	switch v.Kind() {
	case value.KindNull, value.KindNone, value.KindReserved:
		return nil
	case value.KindBool:
		b, _ := v.AsBool()
		return b
	case value.KindText:
		s, _ := v.AsText()
		return s
	case value.KindNumber:
		lit, _ := v.AsNumber()
		x, err := numeric.ParseInt(lit)
		if err != nil {
			return lit
		}
		return bigNative(x)
	case value.KindNat:
		x, _ := v.AsNat()
		return bigNative(x)
	case value.KindInt:
		x, _ := v.AsInt()
		return bigNative(x)
	case value.KindNat8:
		n, _ := v.AsNat8()
		return uint64(n)
	case value.KindNat16:
		n, _ := v.AsNat16()
		return uint64(n)
	case value.KindNat32:
		n, _ := v.AsNat32()
		return uint64(n)
	case value.KindNat64:
		n, _ := v.AsNat64()
		return n
	case value.KindInt8:
		n, _ := v.AsInt8()
		return int64(n)
	case value.KindInt16:
		n, _ := v.AsInt16()
		return int64(n)
	case value.KindInt32:
		n, _ := v.AsInt32()
		return int64(n)
	case value.KindInt64:
		n, _ := v.AsInt64()
		return n
	case value.KindFloat32:
		f, _ := v.AsFloat32()
		return f
	case value.KindFloat64:
		f, _ := v.AsFloat64()
		return f
	case value.KindOpt:
		inner, _, _ := v.AsOpt()
		return Native(inner)

	case value.KindVec:
		elems, _ := v.AsVec()
		if len(elems) > 0 {
			if b, err := v.AsBlob(); err == nil {
				return b
			}
		}
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = Native(e)
		}
		return out

	case value.KindRecord:
		fields, _ := v.AsFields()
		if isTuple(fields) {
			out := make([]any, len(fields))
			for i, f := range fields {
				out[i] = Native(f.Value)
			}
			return out
		}
		out := make(map[string]any, len(fields))
		for _, f := range fields {
			out[f.Label.Text()] = Native(f.Value)
		}
		return out

	case value.KindVariant:
		label, payload, _ := v.AsVariant()
		return map[string]any{label: Native(payload)}

	case value.KindPrincipal:
		p, _ := v.AsPrincipal()
		return p.String()
	case value.KindService:
		p, _ := v.AsService()
		return p.String()
	case value.KindFunc:
		p, method, _ := v.AsFunc()
		return map[string]any{"principal": p.String(), "method": method}
	}
	return nil
}

// NativeArgs projects every argument with Native.
func NativeArgs(args value.Args) []any {
	vals := args.Values()
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = Native(v)
	}
	return out
}

func bigNative(x *big.Int) any {
	switch {
	case x.IsInt64():
		return x.Int64()
	case x.IsUint64():
		return x.Uint64()
	}
	return x.String()
}

// isTuple reports whether fields are positional and numbered from zero.
func isTuple(fields []value.Field) bool {
	if len(fields) == 0 {
		return false
	}
	for i, f := range fields {
		if f.Label.Kind() != types.LabelUnnamed || f.Label.ID() != uint32(i) {
			return false
		}
	}
	return true
}
