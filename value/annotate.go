package value

import (
	"math"
	"math/big"
	"strconv"

	"github.com/wippyai/candid/errors"
	"github.com/wippyai/candid/types"
)

// Annotate coerces v to the declared type t. It is the context that resolves
// untyped numbers:
//
//   - Number takes the width of t, with range and sign checks
//   - null or None against opt T gives None
//   - float64 against float32 narrows, nat against int widens
//   - anything against reserved gives Reserved
//   - opt, vec, record and variant are annotated recursively; record fields
//     missing from v are allowed when their type is opt, null or reserved
//
// Other combinations fail with a type mismatch.
func Annotate(v Value, t *types.Type) (Value, error) {
	return annotate(v, t, nil)
}

func annotate(v Value, t *types.Type, path []string) (Value, error) {
	if t == nil {
		return Value{}, errors.InvalidArgument(errors.PhaseAnnotate, "nil type")
	}

	switch t.Kind {
	case types.KindReserved:
		return Reserved(), nil

	case types.KindEmpty:
		return Value{}, annotateMismatch(v, t, path)

	case types.KindVar:
		return Value{}, errors.New(errors.PhaseAnnotate, errors.KindUnsupported).
			Path(path...).Detail("unresolved type reference %s", t.Ref).Build()

	case types.KindOpt:
		switch v.kind {
		case KindNone, KindNull:
			return None(), nil
		case KindOpt:
			inner, err := annotate(v.data.(Value), t.Elem, path)
			if err != nil {
				return Value{}, err
			}
			return Opt(inner), nil
		}

	case types.KindVec:
		if v.kind == KindVec {
			elems := v.data.([]Value)
			out := make([]Value, len(elems))
			for i, e := range elems {
				a, err := annotate(e, t.Elem, sub(path, itoa(i)))
				if err != nil {
					return Value{}, err
				}
				out[i] = a
			}
			return Value{kind: KindVec, data: out}, nil
		}

	case types.KindRecord:
		if v.kind == KindRecord {
			return annotateRecord(v.data.([]Field), t, path)
		}

	case types.KindVariant:
		if v.kind == KindVariant {
			d := v.data.(variantData)
			tf, idx, ok := t.Lookup(d.field.Label.ID())
			if !ok {
				return Value{}, errors.New(errors.PhaseAnnotate, errors.KindTypeMismatch).
					Path(path...).Want(t.String()).Got(v.kind.String()).
					Detail("variant case %s is not declared", d.field.Label).Build()
			}
			payload, err := annotate(d.field.Value, tf.Type, sub(path, d.field.Label.Text()))
			if err != nil {
				return Value{}, err
			}
			return Value{kind: KindVariant, data: variantData{
				field: Field{Label: d.field.Label, Value: payload},
				index: uint64(idx),
			}}, nil
		}

	case types.KindFloat32:
		switch v.kind {
		case KindFloat32:
			return v, nil
		case KindFloat64:
			f := v.data.(float64)
			if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
				return Value{}, errors.Overflow(errors.PhaseAnnotate, path, f, "float32")
			}
			return Float32(float32(f)), nil
		case KindNumber:
			return fromNumber(v, t.Kind, path)
		}

	case types.KindInt:
		switch v.kind {
		case KindInt:
			return v, nil
		case KindNat:
			return Value{kind: KindInt, data: new(big.Int).Set(v.data.(*big.Int))}, nil
		case KindNumber:
			return fromNumber(v, t.Kind, path)
		}

	case types.KindService:
		if v.kind == KindService {
			return v, nil
		}

	case types.KindFunc:
		if v.kind == KindFunc {
			return v, nil
		}

	default:
		if k, ok := primitiveKinds[v.kind]; ok && k == t.Kind && v.kind != KindNumber {
			return v, nil
		}
		if v.kind == KindNumber && t.Kind.IsNumeric() {
			return fromNumber(v, t.Kind, path)
		}
	}

	return Value{}, annotateMismatch(v, t, path)
}

func annotateRecord(fields []Field, t *types.Type, path []string) (Value, error) {
	byID := make(map[uint32]Field, len(fields))
	for _, f := range fields {
		if _, _, ok := t.Lookup(f.Label.ID()); !ok {
			return Value{}, errors.New(errors.PhaseAnnotate, errors.KindTypeMismatch).
				Path(path...).Want(t.String()).Got("record").
				Detail("field %s is not declared", f.Label).Build()
		}
		byID[f.Label.ID()] = f
	}

	out := make([]Field, 0, len(t.Fields))
	for _, tf := range t.Fields {
		f, ok := byID[tf.Label.ID()]
		if !ok {
			switch tf.Type.Kind {
			case types.KindOpt:
				out = append(out, Field{Label: tf.Label, Value: None()})
			case types.KindNull:
				out = append(out, Field{Label: tf.Label, Value: Null()})
			case types.KindReserved:
				out = append(out, Field{Label: tf.Label, Value: Reserved()})
			default:
				return Value{}, errors.New(errors.PhaseAnnotate, errors.KindTypeMismatch).
					Path(path...).Want(t.String()).Got("record").
					Detail("missing field %s", tf.Label).Build()
			}
			continue
		}
		a, err := annotate(f.Value, tf.Type, sub(path, f.Label.Text()))
		if err != nil {
			return Value{}, err
		}
		out = append(out, Field{Label: f.Label, Value: a})
	}
	return Value{kind: KindRecord, data: out}, nil
}

func fromNumber(v Value, k types.Kind, path []string) (Value, error) {
	out, err := FromLiteral(v.data.(string), k)
	if err != nil {
		return Value{}, errors.WithPath(err, path)
	}
	return out, nil
}

func annotateMismatch(v Value, t *types.Type, path []string) error {
	return errors.TypeMismatch(errors.PhaseAnnotate, path, t.String(), v.kind.String())
}

// sub returns path extended by elem without sharing path's backing array.
func sub(path []string, elem string) []string {
	return append(path[:len(path):len(path)], elem)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
