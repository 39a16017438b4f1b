package types

import (
	"fmt"
	"slices"
	"strings"

	"github.com/wippyai/candid/errors"
	"github.com/wippyai/candid/internal/quote"
)

// Type is a Candid type. Values are treated as immutable once built; use the
// constructors, which keep record and variant fields sorted by id.
type Type struct {
	Elem    *Type     // opt, vec
	Func    *FuncType // func
	Ref     string    // var
	Fields  []Field   // record, variant
	Methods []Method  // service
	Kind    Kind
}

// Field is a labelled record field or variant case.
type Field struct {
	Type  *Type
	Label Label
}

// Method is a named service entry. Its type is a func or a var.
type Method struct {
	Type *Type
	Name string
}

// FuncMode is a function annotation.
type FuncMode uint8

const (
	ModeQuery FuncMode = iota
	ModeOneway
	ModeCompositeQuery
)

var modeNames = [...]string{
	ModeQuery:          "query",
	ModeOneway:         "oneway",
	ModeCompositeQuery: "composite_query",
}

// wire encoding of each mode
var modeBytes = [...]byte{
	ModeQuery:          1,
	ModeOneway:         2,
	ModeCompositeQuery: 3,
}

func (m FuncMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// Byte returns the wire annotation byte.
func (m FuncMode) Byte() byte {
	if int(m) < len(modeBytes) {
		return modeBytes[m]
	}
	return 0
}

// LookupMode maps an annotation keyword to its mode.
func LookupMode(name string) (FuncMode, bool) {
	for i, n := range modeNames {
		if n == name {
			return FuncMode(i), true
		}
	}
	return 0, false
}

// ModeFromByte maps a wire annotation byte to its mode.
func ModeFromByte(b byte) (FuncMode, bool) {
	for i, c := range modeBytes {
		if c == b {
			return FuncMode(i), true
		}
	}
	return 0, false
}

// FuncType is the signature of a func type.
type FuncType struct {
	Args    []*Type
	Results []*Type
	Modes   []FuncMode
}

// Prim returns a primitive type. k must be primitive.
func Prim(k Kind) *Type {
	return &Type{Kind: k}
}

// Opt returns opt t.
func Opt(t *Type) *Type {
	return &Type{Kind: KindOpt, Elem: t}
}

// Vec returns vec t.
func Vec(t *Type) *Type {
	return &Type{Kind: KindVec, Elem: t}
}

// Blob returns vec nat8.
func Blob() *Type {
	return Vec(Prim(KindNat8))
}

// Var returns a named reference.
func Var(name string) *Type {
	return &Type{Kind: KindVar, Ref: name}
}

// Record builds a record type. Fields are sorted by id; duplicate ids fail.
func Record(fields ...Field) (*Type, error) {
	sorted, err := sortFields("record", fields)
	if err != nil {
		return nil, err
	}
	return &Type{Kind: KindRecord, Fields: sorted}, nil
}

// Tuple builds a record with positional fields.
func Tuple(ts ...*Type) *Type {
	fields := make([]Field, len(ts))
	for i, t := range ts {
		fields[i] = Field{Label: Unnamed(uint32(i)), Type: t}
	}
	return &Type{Kind: KindRecord, Fields: fields}
}

// Variant builds a variant type. Cases are sorted by id; duplicate ids fail.
func Variant(fields ...Field) (*Type, error) {
	sorted, err := sortFields("variant", fields)
	if err != nil {
		return nil, err
	}
	return &Type{Kind: KindVariant, Fields: sorted}, nil
}

// Func builds a func type.
func Func(args, results []*Type, modes ...FuncMode) *Type {
	return &Type{Kind: KindFunc, Func: &FuncType{
		Args:    slices.Clone(args),
		Results: slices.Clone(results),
		Modes:   slices.Clone(modes),
	}}
}

// Service builds a service type. Methods are sorted by name; duplicates fail.
func Service(methods ...Method) (*Type, error) {
	sorted := slices.Clone(methods)
	slices.SortStableFunc(sorted, func(a, b Method) int { return strings.Compare(a.Name, b.Name) })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Name == sorted[i-1].Name {
			return nil, errors.New(errors.PhaseConstruct, errors.KindInvalidArgument).
				Detail("duplicate service method %q", sorted[i].Name).Build()
		}
	}
	return &Type{Kind: KindService, Methods: sorted}, nil
}

func sortFields(what string, fields []Field) ([]Field, error) {
	sorted := slices.Clone(fields)
	slices.SortStableFunc(sorted, func(a, b Field) int {
		switch {
		case a.Label.id < b.Label.id:
			return -1
		case a.Label.id > b.Label.id:
			return 1
		}
		return 0
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Label.id == sorted[i-1].Label.id {
			return nil, errors.New(errors.PhaseConstruct, errors.KindInvalidArgument).
				Detail("duplicate %s field %s (id %d)", what, sorted[i].Label, sorted[i].Label.id).Build()
		}
	}
	return sorted, nil
}

// Name returns the head keyword of the type, or the reference name of a var.
func (t *Type) Name() string {
	if t == nil {
		return "<nil>"
	}
	if t.Kind == KindVar {
		return t.Ref
	}
	return t.Kind.String()
}

// IsBlob reports whether t is vec nat8.
func (t *Type) IsBlob() bool {
	return t != nil && t.Kind == KindVec && t.Elem != nil && t.Elem.Kind == KindNat8
}

// IsTuple reports whether t is a non-empty record whose labels are 0..n-1.
func (t *Type) IsTuple() bool {
	if t == nil || t.Kind != KindRecord || len(t.Fields) == 0 {
		return false
	}
	for i, f := range t.Fields {
		if f.Label.id != uint32(i) {
			return false
		}
	}
	return true
}

// Lookup finds a record field or variant case by id and returns its index.
func (t *Type) Lookup(id uint32) (Field, int, bool) {
	i, ok := slices.BinarySearchFunc(t.Fields, id, func(f Field, id uint32) int {
		switch {
		case f.Label.id < id:
			return -1
		case f.Label.id > id:
			return 1
		}
		return 0
	})
	if !ok {
		return Field{}, -1, false
	}
	return t.Fields[i], i, true
}

// Method returns the service method with the given name.
func (t *Type) Method(name string) (Method, bool) {
	for _, m := range t.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// Equal reports structural equality.
func (t *Type) Equal(o *Type) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil || t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindOpt, KindVec:
		return t.Elem.Equal(o.Elem)
	case KindRecord, KindVariant:
		return slices.EqualFunc(t.Fields, o.Fields, func(a, b Field) bool {
			return a.Label.id == b.Label.id && a.Type.Equal(b.Type)
		})
	case KindFunc:
		return t.Func.equal(o.Func)
	case KindService:
		return slices.EqualFunc(t.Methods, o.Methods, func(a, b Method) bool {
			return a.Name == b.Name && a.Type.Equal(b.Type)
		})
	case KindVar:
		return t.Ref == o.Ref
	default:
		return true
	}
}

func (f *FuncType) equal(o *FuncType) bool {
	if f == nil || o == nil {
		return f == o
	}
	eq := func(a, b *Type) bool { return a.Equal(b) }
	return slices.EqualFunc(f.Args, o.Args, eq) &&
		slices.EqualFunc(f.Results, o.Results, eq) &&
		slices.Equal(f.Modes, o.Modes)
}

// String renders the type in Candid syntax.
func (t *Type) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Type) write(b *strings.Builder) {
	if t == nil {
		b.WriteString("<nil>")
		return
	}
	switch t.Kind {
	case KindOpt, KindVec:
		b.WriteString(t.Kind.String())
		b.WriteByte(' ')
		t.Elem.write(b)
	case KindRecord, KindVariant:
		t.writeFields(b)
	case KindFunc:
		b.WriteString("func ")
		t.Func.write(b)
	case KindService:
		b.WriteString("service {")
		for i, m := range t.Methods {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteByte(' ')
			b.WriteString(MethodName(m.Name))
			b.WriteString(" : ")
			if m.Type != nil && m.Type.Kind == KindFunc {
				m.Type.Func.write(b)
			} else {
				m.Type.write(b)
			}
		}
		if len(t.Methods) > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('}')
	case KindVar:
		b.WriteString(t.Ref)
	default:
		b.WriteString(t.Kind.String())
	}
}

func (t *Type) writeFields(b *strings.Builder) {
	b.WriteString(t.Kind.String())
	if len(t.Fields) == 0 {
		b.WriteString(" {}")
		return
	}
	tuple := t.IsTuple()
	b.WriteString(" { ")
	for i, f := range t.Fields {
		if i > 0 {
			b.WriteString("; ")
		}
		switch {
		case tuple:
			f.Type.write(b)
		case t.Kind == KindVariant && f.Type != nil && f.Type.Kind == KindNull:
			b.WriteString(f.Label.String())
		default:
			b.WriteString(f.Label.String())
			b.WriteString(" : ")
			f.Type.write(b)
		}
	}
	b.WriteString(" }")
}

func (f *FuncType) write(b *strings.Builder) {
	if f == nil {
		b.WriteString("() -> ()")
		return
	}
	writeTuple(b, f.Args)
	b.WriteString(" -> ")
	writeTuple(b, f.Results)
	for _, m := range f.Modes {
		b.WriteByte(' ')
		b.WriteString(m.String())
	}
}

func writeTuple(b *strings.Builder, ts []*Type) {
	b.WriteByte('(')
	for i, t := range ts {
		if i > 0 {
			b.WriteString(", ")
		}
		t.write(b)
	}
	b.WriteByte(')')
}

// MethodName renders a service method name, quoting it when it is not an
// identifier.
func MethodName(name string) string {
	if IsIdentifier(name) {
		return name
	}
	return quote.Text(name)
}

// TupleString renders a list of types as "(t1, t2)".
func TupleString(ts []*Type) string {
	var b strings.Builder
	writeTuple(&b, ts)
	return b.String()
}

// GoString helps when types show up in test failures.
func (t *Type) GoString() string {
	return fmt.Sprintf("types.Type(%s)", t)
}
