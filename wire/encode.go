package wire

import (
	"math"
	"strconv"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wippyai/candid/errors"
	"github.com/wippyai/candid/types"
	"github.com/wippyai/candid/value"
	"github.com/wippyai/candid/wire/internal/binary"
)

// Magic starts every Candid message.
var Magic = []byte{'D', 'I', 'D', 'L'}

// MaxDepth bounds the nesting of decoded values.
const MaxDepth = 512

// Encode serializes args using the types inferred from the values. Untyped
// numbers are encoded as int. Values whose type cannot be inferred, such as
// vectors with mixed element types, fail with a type mismatch.
func Encode(args value.Args) ([]byte, error) {
	ts, err := args.Types()
	if err != nil {
		return nil, err
	}
	return EncodeWithTypes(args, ts)
}

// EncodeWithTypes annotates args with the declared types and serializes
// them with those types.
func EncodeWithTypes(args value.Args, ts []*types.Type) ([]byte, error) {
	annotated, err := args.Annotate(ts)
	if err != nil {
		return nil, err
	}

	tt := newTypeTable()
	refs := make([]int64, len(ts))
	for i, t := range ts {
		if refs[i], err = tt.ref(t); err != nil {
			return nil, err
		}
	}

	w := binary.NewWriter()
	w.WriteBytes(Magic)
	w.WriteUleb(uint64(len(tt.entries)))
	for _, e := range tt.entries {
		w.WriteBytes(e)
	}
	w.WriteUleb(uint64(len(refs)))
	for _, r := range refs {
		w.WriteSleb(r)
	}

	enc := &encoder{w: w}
	for i, v := range annotated.Values() {
		if err := enc.value(v, ts[i], []string{"arg" + strconv.Itoa(i)}); err != nil {
			return nil, err
		}
	}

	Logger().Debug("encoded message",
		zap.Int("args", len(refs)),
		zap.Int("table", len(tt.entries)),
		zap.Int("bytes", w.Len()))
	return w.Bytes(), nil
}

// typeTable collects constructed types, sharing structurally equal entries.
type typeTable struct {
	index   map[string]int64
	entries [][]byte
}

func newTypeTable() *typeTable {
	return &typeTable{index: make(map[string]int64)}
}

// ref returns the wire reference of t: a negative opcode for primitives or
// a table index, adding entries as needed.
func (tt *typeTable) ref(t *types.Type) (int64, error) {
	if t == nil {
		return 0, errors.InvalidArgument(errors.PhaseEncode, "nil type")
	}
	if t.Kind.IsPrimitive() {
		return t.Kind.Opcode(), nil
	}

	e := binary.NewWriter()
	e.WriteSleb(t.Kind.Opcode())

	switch t.Kind {
	case types.KindOpt, types.KindVec:
		r, err := tt.ref(t.Elem)
		if err != nil {
			return 0, err
		}
		e.WriteSleb(r)

	case types.KindRecord, types.KindVariant:
		e.WriteUleb(uint64(len(t.Fields)))
		for _, f := range t.Fields {
			r, err := tt.ref(f.Type)
			if err != nil {
				return 0, err
			}
			e.WriteUleb(uint64(f.Label.ID()))
			e.WriteSleb(r)
		}

	case types.KindFunc:
		if err := tt.writeFunc(e, t.Func); err != nil {
			return 0, err
		}

	case types.KindService:
		e.WriteUleb(uint64(len(t.Methods)))
		for _, m := range t.Methods {
			if m.Type == nil || m.Type.Kind != types.KindFunc {
				return 0, errors.New(errors.PhaseEncode, errors.KindUnsupported).
					Detail("method %s of a service must have a func type", m.Name).Build()
			}
			r, err := tt.ref(m.Type)
			if err != nil {
				return 0, err
			}
			e.WriteBlob([]byte(m.Name))
			e.WriteSleb(r)
		}

	case types.KindVar:
		return 0, errors.New(errors.PhaseEncode, errors.KindUnsupported).
			Detail("cannot encode unresolved type reference %s", t.Ref).Build()
	}

	key := string(e.Bytes())
	if i, ok := tt.index[key]; ok {
		return i, nil
	}
	i := int64(len(tt.entries))
	tt.entries = append(tt.entries, e.Bytes())
	tt.index[key] = i
	return i, nil
}

func (tt *typeTable) writeFunc(e *binary.Writer, f *types.FuncType) error {
	if f == nil {
		f = &types.FuncType{}
	}
	for _, list := range [][]*types.Type{f.Args, f.Results} {
		refs := make([]int64, len(list))
		for i, t := range list {
			r, err := tt.ref(t)
			if err != nil {
				return err
			}
			refs[i] = r
		}
		e.WriteUleb(uint64(len(refs)))
		for _, r := range refs {
			e.WriteSleb(r)
		}
	}
	e.WriteUleb(uint64(len(f.Modes)))
	for _, m := range f.Modes {
		e.Byte(m.Byte())
	}
	return nil
}

type encoder struct {
	w *binary.Writer
}

// value writes v, which has already been annotated with t.
func (enc *encoder) value(v value.Value, t *types.Type, path []string) error {
	w := enc.w

	switch t.Kind {
	case types.KindNull:
		if !v.IsNull() {
			return mismatch(v, t, path)
		}
	case types.KindReserved:
	case types.KindEmpty:
		return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(path...).Want("empty").Got(v.ValueType()).
			Detail("type empty has no values").Build()

	case types.KindBool:
		b, err := v.AsBool()
		if err != nil {
			return mismatch(v, t, path)
		}
		if b {
			w.Byte(1)
		} else {
			w.Byte(0)
		}

	case types.KindNat:
		n, err := v.AsNat()
		if err != nil {
			return mismatch(v, t, path)
		}
		w.WriteBigNat(n)
	case types.KindInt:
		n, err := v.AsInt()
		if err != nil {
			return mismatch(v, t, path)
		}
		w.WriteBigInt(n)

	case types.KindNat8:
		n, err := v.AsNat8()
		if err != nil {
			return mismatch(v, t, path)
		}
		w.Byte(n)
	case types.KindNat16:
		n, err := v.AsNat16()
		if err != nil {
			return mismatch(v, t, path)
		}
		w.WriteU16LE(n)
	case types.KindNat32:
		n, err := v.AsNat32()
		if err != nil {
			return mismatch(v, t, path)
		}
		w.WriteU32LE(n)
	case types.KindNat64:
		n, err := v.AsNat64()
		if err != nil {
			return mismatch(v, t, path)
		}
		w.WriteU64LE(n)
	case types.KindInt8:
		n, err := v.AsInt8()
		if err != nil {
			return mismatch(v, t, path)
		}
		w.Byte(uint8(n))
	case types.KindInt16:
		n, err := v.AsInt16()
		if err != nil {
			return mismatch(v, t, path)
		}
		w.WriteU16LE(uint16(n))
	case types.KindInt32:
		n, err := v.AsInt32()
		if err != nil {
			return mismatch(v, t, path)
		}
		w.WriteU32LE(uint32(n))
	case types.KindInt64:
		n, err := v.AsInt64()
		if err != nil {
			return mismatch(v, t, path)
		}
		w.WriteU64LE(uint64(n))

	case types.KindFloat32:
		f, err := v.AsFloat32()
		if err != nil {
			return mismatch(v, t, path)
		}
		w.WriteU32LE(math.Float32bits(f))
	case types.KindFloat64:
		f, err := v.AsFloat64()
		if err != nil {
			return mismatch(v, t, path)
		}
		w.WriteU64LE(math.Float64bits(f))

	case types.KindText:
		s, err := v.AsText()
		if err != nil {
			return mismatch(v, t, path)
		}
		if !utf8.ValidString(s) {
			return errors.New(errors.PhaseEncode, errors.KindInvalidArgument).
				Path(path...).Detail("text is not valid UTF-8").Build()
		}
		w.WriteBlob([]byte(s))

	case types.KindPrincipal:
		p, err := v.AsPrincipal()
		if err != nil {
			return mismatch(v, t, path)
		}
		w.Byte(1)
		w.WriteBlob(p.Bytes())

	case types.KindOpt:
		inner, present, err := v.AsOpt()
		if err != nil {
			return mismatch(v, t, path)
		}
		if !present {
			w.Byte(0)
			return nil
		}
		w.Byte(1)
		return enc.value(inner, t.Elem, path)

	case types.KindVec:
		if t.IsBlob() {
			if b, err := v.AsBlob(); err == nil {
				w.WriteBlob(b)
				return nil
			}
		}
		elems, err := v.AsVec()
		if err != nil {
			return mismatch(v, t, path)
		}
		w.WriteUleb(uint64(len(elems)))
		for i, e := range elems {
			if err := enc.value(e, t.Elem, sub(path, strconv.Itoa(i))); err != nil {
				return err
			}
		}

	case types.KindRecord:
		fields, err := v.AsFields()
		if err != nil {
			return mismatch(v, t, path)
		}
		byID := make(map[uint32]value.Value, len(fields))
		for _, f := range fields {
			byID[f.Label.ID()] = f.Value
		}
		for _, tf := range t.Fields {
			fv, ok := byID[tf.Label.ID()]
			if !ok {
				return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
					Path(path...).Want(t.String()).Got(v.ValueType()).
					Detail("missing field %s", tf.Label).Build()
			}
			if err := enc.value(fv, tf.Type, sub(path, tf.Label.Text())); err != nil {
				return err
			}
		}

	case types.KindVariant:
		f, _, err := v.AsVariantField()
		if err != nil {
			return mismatch(v, t, path)
		}
		tf, idx, ok := t.Lookup(f.Label.ID())
		if !ok {
			return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
				Path(path...).Want(t.String()).Got(v.ValueType()).
				Detail("variant case %s is not declared", f.Label).Build()
		}
		w.WriteUleb(uint64(idx))
		return enc.value(f.Value, tf.Type, sub(path, f.Label.Text()))

	case types.KindFunc:
		p, method, err := v.AsFunc()
		if err != nil {
			return mismatch(v, t, path)
		}
		w.Byte(1)
		w.Byte(1)
		w.WriteBlob(p.Bytes())
		w.WriteBlob([]byte(method))

	case types.KindService:
		p, err := v.AsService()
		if err != nil {
			return mismatch(v, t, path)
		}
		w.Byte(1)
		w.WriteBlob(p.Bytes())

	default:
		return errors.Unsupported(errors.PhaseEncode, "type "+t.String())
	}
	return nil
}

func mismatch(v value.Value, t *types.Type, path []string) error {
	return errors.TypeMismatch(errors.PhaseEncode, path, t.String(), v.ValueType())
}

func sub(path []string, elem string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, elem)
}
