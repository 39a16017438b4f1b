package value

import (
	"github.com/wippyai/candid/errors"
	"github.com/wippyai/candid/types"
)

var primitiveKinds = map[Kind]types.Kind{
	KindNull:      types.KindNull,
	KindBool:      types.KindBool,
	KindText:      types.KindText,
	KindNumber:    types.KindInt,
	KindFloat32:   types.KindFloat32,
	KindFloat64:   types.KindFloat64,
	KindPrincipal: types.KindPrincipal,
	KindNat:       types.KindNat,
	KindInt:       types.KindInt,
	KindNat8:      types.KindNat8,
	KindNat16:     types.KindNat16,
	KindNat32:     types.KindNat32,
	KindNat64:     types.KindNat64,
	KindInt8:      types.KindInt8,
	KindInt16:     types.KindInt16,
	KindInt32:     types.KindInt32,
	KindInt64:     types.KindInt64,
	KindReserved:  types.KindReserved,
}

// Type infers the Candid type of v. An untyped Number is int, None is
// opt empty, an empty vec is vec empty and the element type of a vec is the
// unification of its elements' types. Vectors whose elements do not unify
// fail with a type mismatch.
func (v Value) Type() (*types.Type, error) {
	return v.infer(nil)
}

func (v Value) infer(path []string) (*types.Type, error) {
	if k, ok := primitiveKinds[v.kind]; ok {
		return types.Prim(k), nil
	}

	switch v.kind {
	case KindNone:
		return types.Opt(types.Prim(types.KindEmpty)), nil

	case KindOpt:
		elem, err := v.data.(Value).infer(path)
		if err != nil {
			return nil, err
		}
		return types.Opt(elem), nil

	case KindVec:
		elem := types.Prim(types.KindEmpty)
		for i, e := range v.data.([]Value) {
			t, err := e.infer(sub(path, itoa(i)))
			if err != nil {
				return nil, err
			}
			u, err := types.Unify(elem, t)
			if err != nil {
				return nil, errors.WithPath(err, sub(path, itoa(i)))
			}
			elem = u
		}
		return types.Vec(elem), nil

	case KindRecord:
		fields := v.data.([]Field)
		tf := make([]types.Field, len(fields))
		for i, f := range fields {
			t, err := f.Value.infer(sub(path, f.Label.Text()))
			if err != nil {
				return nil, err
			}
			tf[i] = types.Field{Label: f.Label, Type: t}
		}
		return types.Record(tf...)

	case KindVariant:
		d := v.data.(variantData)
		t, err := d.field.Value.infer(sub(path, d.field.Label.Text()))
		if err != nil {
			return nil, err
		}
		return types.Variant(types.Field{Label: d.field.Label, Type: t})

	case KindService:
		return types.Service()

	case KindFunc:
		return types.Func(nil, nil), nil
	}

	return nil, errors.Unsupported(errors.PhaseAnnotate, "cannot infer type of "+v.kind.String())
}
