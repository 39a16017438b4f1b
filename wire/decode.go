package wire

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wippyai/candid/errors"
	"github.com/wippyai/candid/leb128"
	"github.com/wippyai/candid/principal"
	"github.com/wippyai/candid/types"
	"github.com/wippyai/candid/value"
	"github.com/wippyai/candid/wire/internal/binary"
)

// MaxZeroSizedElems caps the length of decoded vectors whose elements take
// no bytes on the wire, such as vec null.
const MaxZeroSizedElems = 1 << 20

// The number of values one message may decode to is bounded by
// QuotaBase + QuotaPerByte*len(data). Every decoded value counts, including
// the elements of zero-sized vectors.
const (
	QuotaBase    = MaxZeroSizedElems + 1<<10
	QuotaPerByte = 16
)

// Message is a decoded message with its argument types.
type Message struct {
	// Env holds the table entries that refer to themselves, keyed by the
	// names used for them in Types.
	Env   map[string]*types.Type
	Args  value.Args
	Types []*types.Type
}

// Decode parses a Candid message.
func Decode(data []byte) (value.Args, error) {
	m, err := DecodeMessage(data)
	if err != nil {
		return value.Args{}, err
	}
	return m.Args, nil
}

// DecodeWithTypes decodes a message and names record fields and variant
// cases after the declared types, which the wire only carries as ids.
// Arguments beyond the declared types are returned unchanged.
func DecodeWithTypes(data []byte, ts []*types.Type) (value.Args, error) {
	m, err := DecodeMessage(data)
	if err != nil {
		return value.Args{}, err
	}
	return m.Relabel(ts), nil
}

// Relabel returns the message arguments with labels named after ts, as
// Relabel does for a single value. Arguments beyond ts are unchanged.
func (m *Message) Relabel(ts []*types.Type) value.Args {
	vals := m.Args.Values()
	for i := range vals {
		if i < len(ts) {
			vals[i] = Relabel(vals[i], ts[i])
		}
	}
	return value.NewArgs(vals...)
}

// DecodeMessage parses a Candid message and returns the argument types
// along with the values.
func DecodeMessage(data []byte) (*Message, error) {
	d := &decoder{r: binary.NewReader(data), limit: QuotaBase + QuotaPerByte*len(data)}
	d.quota = d.limit

	magic, err := d.r.ReadBytes(len(Magic))
	if err != nil || !bytes.Equal(magic, Magic) {
		return nil, errors.Malformed(nil, "missing DIDL magic header")
	}

	if err := d.readTable(); err != nil {
		return nil, err
	}

	argc, err := d.r.ReadUleb32()
	if err != nil {
		return nil, d.fail(nil, err)
	}
	if int(argc) > d.r.Remaining() {
		return nil, d.malformed(nil, "%d argument types declared, %d bytes left", argc, d.r.Remaining())
	}
	refs := make([]int64, argc)
	for i := range refs {
		if refs[i], err = d.readRef(); err != nil {
			return nil, err
		}
	}
	Logger().Debug("decoding message", zap.Uint32("args", argc), zap.Int("table", len(d.table)))

	vals := make([]value.Value, argc)
	for i, ref := range refs {
		if vals[i], err = d.value(ref, []string{"arg" + strconv.Itoa(i)}); err != nil {
			return nil, err
		}
	}
	if n := d.r.Remaining(); n > 0 {
		return nil, d.malformed(nil, "%d trailing bytes", n)
	}

	b := &typeBuilder{table: d.table, env: make(map[string]*types.Type)}
	ts := make([]*types.Type, len(refs))
	for i, ref := range refs {
		ts[i] = b.typeOf(ref)
	}
	return &Message{Args: value.NewArgs(vals...), Types: ts, Env: b.env}, nil
}

type rawField struct {
	ref int64
	id  uint32
}

type rawMethod struct {
	name string
	ref  int64
}

// entry is a type table entry with its references still unresolved.
type entry struct {
	fields  []rawField
	methods []rawMethod
	args    []int64
	results []int64
	modes   []types.FuncMode
	elem    int64
	kind    types.Kind
}

type decoder struct {
	r     *binary.Reader
	table []entry
	depth int
	// quota is the number of values left to decode out of limit.
	quota int
	limit int
}

func (d *decoder) readTable() error {
	n, err := d.r.ReadUleb32()
	if err != nil {
		return d.fail(nil, err)
	}
	if int(n) > d.r.Remaining() {
		return d.malformed(nil, "%d table entries declared, %d bytes left", n, d.r.Remaining())
	}

	d.table = make([]entry, n)
	for i := range d.table {
		if err := d.readEntry(&d.table[i], i); err != nil {
			return err
		}
	}

	for i, e := range d.table {
		for _, ref := range e.refs() {
			if ref >= int64(len(d.table)) {
				return d.malformed(nil, "table entry %d refers to entry %d of %d", i, ref, len(d.table))
			}
		}
		for _, m := range e.methods {
			if m.ref < 0 || d.table[m.ref].kind != types.KindFunc {
				return d.malformed(nil, "method %s of table entry %d is not a func type", m.name, i)
			}
		}
	}
	return d.checkRecordCycles()
}

func (d *decoder) readEntry(e *entry, i int) error {
	section := []string{"table" + strconv.Itoa(i)}

	op, err := d.r.ReadSleb64()
	if err != nil {
		return d.fail(section, err)
	}
	k, ok := types.KindFromOpcode(op)
	if !ok || k.IsPrimitive() {
		return d.malformed(section, "opcode %d is not a type constructor", op)
	}
	e.kind = k

	switch k {
	case types.KindOpt, types.KindVec:
		e.elem, err = d.readRef()
		return err

	case types.KindRecord, types.KindVariant:
		count, err := d.readCount(section)
		if err != nil {
			return err
		}
		e.fields = make([]rawField, count)
		for j := range e.fields {
			id, err := d.r.ReadUleb32()
			if err != nil {
				return d.fail(section, err)
			}
			if j > 0 && id <= e.fields[j-1].id {
				return d.malformed(section, "field id %d is out of order or duplicated", id)
			}
			ref, err := d.readRef()
			if err != nil {
				return err
			}
			e.fields[j] = rawField{id: id, ref: ref}
		}

	case types.KindFunc:
		if e.args, err = d.readRefs(section); err != nil {
			return err
		}
		if e.results, err = d.readRefs(section); err != nil {
			return err
		}
		count, err := d.readCount(section)
		if err != nil {
			return err
		}
		e.modes = make([]types.FuncMode, count)
		for j := range e.modes {
			b, err := d.r.ReadByte()
			if err != nil {
				return d.fail(section, err)
			}
			m, ok := types.ModeFromByte(b)
			if !ok {
				return d.malformed(section, "unknown func annotation %d", b)
			}
			e.modes[j] = m
		}

	case types.KindService:
		count, err := d.readCount(section)
		if err != nil {
			return err
		}
		e.methods = make([]rawMethod, count)
		for j := range e.methods {
			name, err := d.r.ReadBlob()
			if err != nil {
				return d.fail(section, err)
			}
			if !utf8.Valid(name) {
				return d.malformed(section, "method name is not valid UTF-8")
			}
			if j > 0 && string(name) <= e.methods[j-1].name {
				return d.malformed(section, "method %q is out of order or duplicated", name)
			}
			ref, err := d.readRef()
			if err != nil {
				return err
			}
			e.methods[j] = rawMethod{name: string(name), ref: ref}
		}
	}
	return nil
}

// readRef reads a type reference: a primitive opcode or a table index.
// Indexes are range checked once the whole table is read.
func (d *decoder) readRef() (int64, error) {
	ref, err := d.r.ReadSleb64()
	if err != nil {
		return 0, d.fail(nil, err)
	}
	if ref < 0 {
		if k, ok := types.KindFromOpcode(ref); !ok || !k.IsPrimitive() {
			return 0, d.malformed(nil, "invalid type reference %d", ref)
		}
	} else if d.table != nil && ref >= int64(len(d.table)) {
		return 0, d.malformed(nil, "type reference %d beyond table of %d entries", ref, len(d.table))
	}
	return ref, nil
}

func (d *decoder) readRefs(path []string) ([]int64, error) {
	count, err := d.readCount(path)
	if err != nil {
		return nil, err
	}
	refs := make([]int64, count)
	for i := range refs {
		if refs[i], err = d.readRef(); err != nil {
			return nil, err
		}
	}
	return refs, nil
}

// readCount reads a length that must not exceed the remaining input.
func (d *decoder) readCount(path []string) (int, error) {
	n, err := d.r.ReadUleb32()
	if err != nil {
		return 0, d.fail(path, err)
	}
	if int(n) > d.r.Remaining() {
		return 0, d.malformed(path, "count %d exceeds the %d bytes left", n, d.r.Remaining())
	}
	return int(n), nil
}

func (e *entry) refs() []int64 {
	var out []int64
	if e.kind == types.KindOpt || e.kind == types.KindVec {
		out = append(out, e.elem)
	}
	for _, f := range e.fields {
		out = append(out, f.ref)
	}
	out = append(out, e.args...)
	out = append(out, e.results...)
	for _, m := range e.methods {
		out = append(out, m.ref)
	}
	return out
}

// checkRecordCycles rejects records that contain themselves through record
// fields only, which no finite value can inhabit.
func (d *decoder) checkRecordCycles() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(d.table))

	var visit func(i int) error
	visit = func(i int) error {
		state[i] = visiting
		for _, f := range d.table[i].fields {
			if f.ref < 0 || d.table[f.ref].kind != types.KindRecord {
				continue
			}
			switch state[f.ref] {
			case visiting:
				return d.malformed(nil, "record type %d contains itself", f.ref)
			case unvisited:
				if err := visit(int(f.ref)); err != nil {
					return err
				}
			}
		}
		state[i] = done
		return nil
	}

	for i, e := range d.table {
		if e.kind == types.KindRecord && state[i] == unvisited {
			if err := visit(i); err != nil {
				return err
			}
		}
	}
	return nil
}

// zeroSized reports whether values of ref take no bytes on the wire.
func (d *decoder) zeroSized(ref int64) bool {
	if ref < 0 {
		return ref == types.KindNull.Opcode() || ref == types.KindReserved.Opcode()
	}
	e := &d.table[ref]
	if e.kind != types.KindRecord {
		return false
	}
	for _, f := range e.fields {
		if !d.zeroSized(f.ref) {
			return false
		}
	}
	return true
}

func (d *decoder) value(ref int64, path []string) (value.Value, error) {
	d.depth++
	defer func() { d.depth-- }()
	if d.depth > MaxDepth {
		return value.Value{}, d.malformed(path, "nesting deeper than %d levels", MaxDepth)
	}
	if err := d.charge(path, 1); err != nil {
		return value.Value{}, err
	}

	if ref < 0 {
		k, _ := types.KindFromOpcode(ref)
		return d.primitive(k, path)
	}

	e := &d.table[ref]
	switch e.kind {
	case types.KindOpt:
		tag, err := d.r.ReadByte()
		if err != nil {
			return value.Value{}, d.fail(path, err)
		}
		switch tag {
		case 0:
			return value.None(), nil
		case 1:
			inner, err := d.value(e.elem, path)
			if err != nil {
				return value.Value{}, err
			}
			return value.Opt(inner), nil
		}
		return value.Value{}, d.malformed(path, "invalid opt tag %d", tag)

	case types.KindVec:
		n, err := d.r.ReadUleb64()
		if err != nil {
			return value.Value{}, d.fail(path, err)
		}
		if d.zeroSized(e.elem) {
			if n > MaxZeroSizedElems {
				return value.Value{}, d.malformed(path, "vector of %d zero-sized elements", n)
			}
		} else if n > uint64(d.r.Remaining()) {
			return value.Value{}, d.malformed(path, "vector of %d elements with %d bytes left", n, d.r.Remaining())
		}
		if e.elem == types.KindNat8.Opcode() {
			raw, err := d.r.ReadBytes(int(n))
			if err != nil {
				return value.Value{}, d.fail(path, err)
			}
			return value.Blob(raw), nil
		}
		if n > uint64(d.quota) {
			return value.Value{}, d.quotaExceeded(path)
		}
		elems := make([]value.Value, n)
		for i := range elems {
			if elems[i], err = d.value(e.elem, sub(path, strconv.Itoa(i))); err != nil {
				return value.Value{}, err
			}
		}
		return value.Vec(elems...), nil

	case types.KindRecord:
		fields := make([]value.Field, len(e.fields))
		for i, f := range e.fields {
			v, err := d.value(f.ref, sub(path, strconv.FormatUint(uint64(f.id), 10)))
			if err != nil {
				return value.Value{}, err
			}
			fields[i] = value.IDField(f.id, v)
		}
		return value.Record(fields...)

	case types.KindVariant:
		idx, err := d.r.ReadUleb64()
		if err != nil {
			return value.Value{}, d.fail(path, err)
		}
		if idx >= uint64(len(e.fields)) {
			return value.Value{}, d.malformed(path, "variant index %d has no case among %d", idx, len(e.fields))
		}
		f := e.fields[idx]
		payload, err := d.value(f.ref, sub(path, strconv.FormatUint(uint64(f.id), 10)))
		if err != nil {
			return value.Value{}, err
		}
		return value.VariantField(value.IDField(f.id, payload), idx)

	case types.KindFunc:
		if err := d.expectTag(path, "func"); err != nil {
			return value.Value{}, err
		}
		p, err := d.principal(path)
		if err != nil {
			return value.Value{}, err
		}
		method, err := d.text(path)
		if err != nil {
			return value.Value{}, err
		}
		fn, err := value.Func(p, method)
		if err != nil {
			return value.Value{}, d.malformed(path, "func reference without a method name")
		}
		return fn, nil

	case types.KindService:
		p, err := d.principal(path)
		if err != nil {
			return value.Value{}, err
		}
		return value.Service(p), nil
	}

	return value.Value{}, d.malformed(path, "unexpected table entry kind %s", e.kind)
}

// charge takes n values from the decoding quota.
func (d *decoder) charge(path []string, n int) error {
	if n > d.quota {
		return d.quotaExceeded(path)
	}
	d.quota -= n
	return nil
}

func (d *decoder) quotaExceeded(path []string) error {
	return d.malformed(path, "decoding quota of %d values exceeded", d.limit)
}

func (d *decoder) primitive(k types.Kind, path []string) (value.Value, error) {
	r := d.r
	switch k {
	case types.KindNull:
		return value.Null(), nil
	case types.KindReserved:
		return value.Reserved(), nil
	case types.KindEmpty:
		return value.Value{}, d.malformed(path, "type empty has no values")

	case types.KindBool:
		b, err := r.ReadByte()
		if err != nil {
			return value.Value{}, d.fail(path, err)
		}
		if b > 1 {
			return value.Value{}, d.malformed(path, "invalid bool byte %#x", b)
		}
		return value.Bool(b == 1), nil

	case types.KindNat:
		n, err := r.ReadBigNat()
		if err != nil {
			return value.Value{}, d.fail(path, err)
		}
		return value.Nat(n)
	case types.KindInt:
		n, err := r.ReadBigInt()
		if err != nil {
			return value.Value{}, d.fail(path, err)
		}
		return value.Int(n), nil

	case types.KindNat8, types.KindInt8:
		b, err := r.ReadByte()
		if err != nil {
			return value.Value{}, d.fail(path, err)
		}
		if k == types.KindInt8 {
			return value.Int8(int8(b)), nil
		}
		return value.Nat8(b), nil
	case types.KindNat16, types.KindInt16:
		n, err := r.ReadU16LE()
		if err != nil {
			return value.Value{}, d.fail(path, err)
		}
		if k == types.KindInt16 {
			return value.Int16(int16(n)), nil
		}
		return value.Nat16(n), nil
	case types.KindNat32, types.KindInt32, types.KindFloat32:
		n, err := r.ReadU32LE()
		if err != nil {
			return value.Value{}, d.fail(path, err)
		}
		switch k {
		case types.KindInt32:
			return value.Int32(int32(n)), nil
		case types.KindFloat32:
			return value.Float32(math.Float32frombits(n)), nil
		}
		return value.Nat32(n), nil
	case types.KindNat64, types.KindInt64, types.KindFloat64:
		n, err := r.ReadU64LE()
		if err != nil {
			return value.Value{}, d.fail(path, err)
		}
		switch k {
		case types.KindInt64:
			return value.Int64(int64(n)), nil
		case types.KindFloat64:
			return value.Float64(math.Float64frombits(n)), nil
		}
		return value.Nat64(n), nil

	case types.KindText:
		s, err := d.text(path)
		if err != nil {
			return value.Value{}, err
		}
		return value.Text(s), nil

	case types.KindPrincipal:
		p, err := d.principal(path)
		if err != nil {
			return value.Value{}, err
		}
		return value.Principal(p), nil
	}
	return value.Value{}, d.malformed(path, "unexpected primitive %s", k)
}

func (d *decoder) text(path []string) (string, error) {
	b, err := d.r.ReadBlob()
	if err != nil {
		return "", d.fail(path, err)
	}
	if !utf8.Valid(b) {
		return "", d.malformed(path, "text is not valid UTF-8")
	}
	return string(b), nil
}

// principal reads a transparent principal reference: 0x01, length, bytes.
func (d *decoder) principal(path []string) (principal.Principal, error) {
	if err := d.expectTag(path, "principal"); err != nil {
		return principal.Principal{}, err
	}
	n, err := d.r.ReadUleb64()
	if err != nil {
		return principal.Principal{}, d.fail(path, err)
	}
	if n > principal.MaxLength {
		return principal.Principal{}, d.malformed(path, "principal of %d bytes exceeds %d", n, principal.MaxLength)
	}
	raw, err := d.r.ReadBytes(int(n))
	if err != nil {
		return principal.Principal{}, d.fail(path, err)
	}
	return principal.FromBytes(raw)
}

func (d *decoder) expectTag(path []string, what string) error {
	tag, err := d.r.ReadByte()
	if err != nil {
		return d.fail(path, err)
	}
	if tag != 1 {
		if tag == 0 {
			return d.malformed(path, "opaque %s references are not supported", what)
		}
		return d.malformed(path, "invalid %s tag %d", what, tag)
	}
	return nil
}

func (d *decoder) malformed(path []string, format string, args ...any) error {
	return errors.Malformed(path, fmt.Sprintf("at byte %d: ", d.r.Position())+fmt.Sprintf(format, args...))
}

// fail converts a reader error into a malformed data error.
func (d *decoder) fail(path []string, err error) error {
	msg := err.Error()
	switch {
	case stderrors.Is(err, io.EOF), stderrors.Is(err, io.ErrUnexpectedEOF):
		short, ok := strings.CutPrefix(msg, io.ErrUnexpectedEOF.Error()+": ")
		msg = "unexpected end of input"
		if ok {
			msg += ", " + short
		}
	case stderrors.Is(err, leb128.ErrOverflow):
		msg = "LEB128 value overflows its width"
	}
	return errors.New(errors.PhaseDecode, errors.KindMalformed).
		Path(path...).
		Detail("at byte %d: %s", d.r.Position(), msg).
		Cause(err).
		Build()
}

// typeBuilder turns table entries into types. A reference back to an entry
// that is still being built becomes a named type variable, resolved in env.
type typeBuilder struct {
	env      map[string]*types.Type
	built    map[int64]*types.Type
	building map[int64]bool
	table    []entry
}

func (b *typeBuilder) typeOf(ref int64) *types.Type {
	if ref < 0 {
		k, _ := types.KindFromOpcode(ref)
		return types.Prim(k)
	}
	if b.built == nil {
		b.built = make(map[int64]*types.Type)
		b.building = make(map[int64]bool)
	}
	if t, ok := b.built[ref]; ok {
		return t
	}
	name := "table" + strconv.FormatInt(ref, 10)
	if b.building[ref] {
		b.env[name] = nil
		return types.Var(name)
	}

	b.building[ref] = true
	e := &b.table[ref]
	t := &types.Type{Kind: e.kind}
	switch e.kind {
	case types.KindOpt, types.KindVec:
		t.Elem = b.typeOf(e.elem)
	case types.KindRecord, types.KindVariant:
		t.Fields = make([]types.Field, len(e.fields))
		for i, f := range e.fields {
			t.Fields[i] = types.Field{Label: types.ID(f.id), Type: b.typeOf(f.ref)}
		}
	case types.KindFunc:
		ft := &types.FuncType{Modes: e.modes}
		for _, r := range e.args {
			ft.Args = append(ft.Args, b.typeOf(r))
		}
		for _, r := range e.results {
			ft.Results = append(ft.Results, b.typeOf(r))
		}
		t.Func = ft
	case types.KindService:
		t.Methods = make([]types.Method, len(e.methods))
		for i, m := range e.methods {
			t.Methods[i] = types.Method{Name: m.name, Type: b.typeOf(m.ref)}
		}
	}
	delete(b.building, ref)
	b.built[ref] = t
	if _, recursive := b.env[name]; recursive {
		b.env[name] = t
	}
	return t
}
