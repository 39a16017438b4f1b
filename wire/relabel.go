package wire

import (
	"github.com/wippyai/candid/types"
	"github.com/wippyai/candid/value"
)

// Relabel replaces the numeric labels of decoded records and variants with
// the labels declared in t, wherever their ids match. Parts of v that do not
// line up with t are returned unchanged.
func Relabel(v value.Value, t *types.Type) value.Value {
	if t == nil {
		return v
	}

	switch t.Kind {
	case types.KindOpt:
		inner, present, err := v.AsOpt()
		if err != nil || !present {
			return v
		}
		return value.Opt(Relabel(inner, t.Elem))

	case types.KindVec:
		if t.IsBlob() {
			return v
		}
		elems, err := v.AsVec()
		if err != nil {
			return v
		}
		for i := range elems {
			elems[i] = Relabel(elems[i], t.Elem)
		}
		return value.Vec(elems...)

	case types.KindRecord:
		fields, err := v.AsFields()
		if err != nil {
			return v
		}
		for i, f := range fields {
			fields[i] = relabelField(f, t)
		}
		out, err := value.Record(fields...)
		if err != nil {
			return v
		}
		return out

	case types.KindVariant:
		f, idx, err := v.AsVariantField()
		if err != nil {
			return v
		}
		out, err := value.VariantField(relabelField(f, t), idx)
		if err != nil {
			return v
		}
		return out
	}
	return v
}

func relabelField(f value.Field, t *types.Type) value.Field {
	tf, _, ok := t.Lookup(f.Label.ID())
	if !ok {
		return f
	}
	label := f.Label
	if tf.Label.Kind() != types.LabelID {
		label = tf.Label
	}
	return value.Field{Label: label, Value: Relabel(f.Value, tf.Type)}
}
