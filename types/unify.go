package types

import (
	"github.com/wippyai/candid/errors"
)

// Unify returns the least type that both a and b conform to. It is used to
// infer the element type of a vec from its elements:
//
//   - empty unifies with anything
//   - null unifies with any opt
//   - opt and vec unify their element types
//   - records unify field-wise and must have the same field ids
//   - variants take the union of their cases
//
// Anything else must be equal.
func Unify(a, b *Type) (*Type, error) {
	if a.Equal(b) {
		return a, nil
	}
	switch {
	case a.Kind == KindEmpty:
		return b, nil
	case b.Kind == KindEmpty:
		return a, nil
	case a.Kind == KindNull && b.Kind == KindOpt:
		return b, nil
	case a.Kind == KindOpt && b.Kind == KindNull:
		return a, nil
	case a.Kind != b.Kind:
		return nil, mismatch(a, b)
	}

	switch a.Kind {
	case KindOpt, KindVec:
		elem, err := Unify(a.Elem, b.Elem)
		if err != nil {
			return nil, err
		}
		return &Type{Kind: a.Kind, Elem: elem}, nil

	case KindRecord:
		if len(a.Fields) != len(b.Fields) {
			return nil, mismatch(a, b)
		}
		fields := make([]Field, len(a.Fields))
		for i, fa := range a.Fields {
			fb := b.Fields[i]
			if fa.Label.id != fb.Label.id {
				return nil, mismatch(a, b)
			}
			t, err := Unify(fa.Type, fb.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = Field{Label: fa.Label, Type: t}
		}
		return &Type{Kind: KindRecord, Fields: fields}, nil

	case KindVariant:
		fields := make([]Field, 0, len(a.Fields)+len(b.Fields))
		i, j := 0, 0
		for i < len(a.Fields) || j < len(b.Fields) {
			switch {
			case j == len(b.Fields) || (i < len(a.Fields) && a.Fields[i].Label.id < b.Fields[j].Label.id):
				fields = append(fields, a.Fields[i])
				i++
			case i == len(a.Fields) || b.Fields[j].Label.id < a.Fields[i].Label.id:
				fields = append(fields, b.Fields[j])
				j++
			default:
				t, err := Unify(a.Fields[i].Type, b.Fields[j].Type)
				if err != nil {
					return nil, err
				}
				fields = append(fields, Field{Label: a.Fields[i].Label, Type: t})
				i++
				j++
			}
		}
		return &Type{Kind: KindVariant, Fields: fields}, nil
	}

	return nil, mismatch(a, b)
}

func mismatch(a, b *Type) error {
	return errors.New(errors.PhaseAnnotate, errors.KindTypeMismatch).
		Want(a.String()).
		Got(b.String()).
		Detail("types do not unify").
		Build()
}
