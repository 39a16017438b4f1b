package value

import (
	"math"
	"math/big"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wippyai/candid/internal/quote"
	"github.com/wippyai/candid/principal"
	"github.com/wippyai/candid/types"
)

// DefaultWidth is the line width used by DefaultPrinter.
const DefaultWidth = 80

// DefaultPrinter renders values for String.
var DefaultPrinter = Printer{Width: DefaultWidth}

// Printer renders values as canonical Candid text. Composite values are
// written on one line when they fit Width columns and broken one field per
// line otherwise. Every NaN prints as nan, so the sign and payload bits of a
// NaN survive the wire format but not text.
type Printer struct {
	Width  int
	Indent string // defaults to two spaces
}

// Value renders v.
func (p Printer) Value(v Value) string {
	var b strings.Builder
	p.write(&b, v, 0, 0)
	return b.String()
}

// Args renders an argument list in tuple form. Non-empty lists end with a
// trailing comma.
func (p Printer) Args(a Args) string {
	if len(a.values) == 0 {
		return "()"
	}

	flat := make([]string, len(a.values))
	total := 1
	for i, v := range a.values {
		flat[i] = flatString(v)
		total += utf8.RuneCountInString(flat[i]) + 2
	}
	if total <= p.width() {
		return "(" + strings.Join(flat, ", ") + ",)"
	}

	var b strings.Builder
	b.WriteString("(\n")
	for _, v := range a.values {
		b.WriteString(p.indent())
		p.write(&b, v, 1, len(p.indent()))
		b.WriteString(",\n")
	}
	b.WriteByte(')')
	return b.String()
}

func (p Printer) width() int {
	if p.Width <= 0 {
		return DefaultWidth
	}
	return p.Width
}

func (p Printer) indent() string {
	if p.Indent == "" {
		return "  "
	}
	return p.Indent
}

// write renders v starting at column col, nested depth levels deep.
func (p Printer) write(b *strings.Builder, v Value, depth, col int) {
	flat := flatString(v)
	if !breakable(v) || col+utf8.RuneCountInString(flat) <= p.width() {
		b.WriteString(flat)
		return
	}

	pad := strings.Repeat(p.indent(), depth+1)
	switch v.kind {
	case KindOpt:
		b.WriteString("opt ")
		p.write(b, v.data.(Value), depth, col+4)

	case KindVec:
		elems := v.data.([]Value)
		b.WriteString("vec {\n")
		for i, e := range elems {
			b.WriteString(pad)
			p.write(b, e, depth+1, len(pad))
			p.endItem(b, i, len(elems))
		}
		p.close(b, depth)

	case KindRecord:
		fields := v.data.([]Field)
		tuple := isTuple(fields)
		if tuple {
			fields = sortedByID(fields)
		}
		b.WriteString("record {\n")
		for i, f := range fields {
			b.WriteString(pad)
			if tuple {
				p.write(b, f.Value, depth+1, len(pad))
			} else {
				p.writeField(b, f, depth+1, len(pad))
			}
			p.endItem(b, i, len(fields))
		}
		p.close(b, depth)

	case KindVariant:
		d := v.data.(variantData)
		b.WriteString("variant {\n")
		b.WriteString(pad)
		p.writeField(b, d.field, depth+1, len(pad))
		b.WriteByte('\n')
		p.close(b, depth)
	}
}

func (p Printer) writeField(b *strings.Builder, f Field, depth, col int) {
	label := f.Label.String()
	b.WriteString(label)
	b.WriteString(" = ")
	p.write(b, f.Value, depth, col+utf8.RuneCountInString(label)+3)
}

func (p Printer) endItem(b *strings.Builder, i, n int) {
	if i < n-1 {
		b.WriteByte(';')
	}
	b.WriteByte('\n')
}

func (p Printer) close(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat(p.indent(), depth))
	b.WriteByte('}')
}

func breakable(v Value) bool {
	switch v.kind {
	case KindOpt:
		return breakable(v.data.(Value))
	case KindVec:
		elems := v.data.([]Value)
		return len(elems) > 0 && !isBlob(elems)
	case KindRecord:
		return len(v.data.([]Field)) > 0
	case KindVariant:
		return true
	}
	return false
}

// flatString renders v on a single line.
func flatString(v Value) string {
	var b strings.Builder
	writeFlat(&b, v)
	return b.String()
}

func writeFlat(b *strings.Builder, v Value) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindNone:
		b.WriteString("null : opt empty")
	case KindReserved:
		b.WriteString("null : reserved")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.data.(bool)))
	case KindText:
		b.WriteString(quote.Text(v.data.(string)))
	case KindNumber:
		b.WriteString(v.data.(string))
	case KindFloat32:
		b.WriteString(formatFloat(float64(v.data.(float32)), 32))
		b.WriteString(" : float32")
	case KindFloat64:
		b.WriteString(formatFloat(v.data.(float64), 64))
		b.WriteString(" : float64")
	case KindNat, KindInt:
		b.WriteString(v.data.(*big.Int).String())
		b.WriteString(" : ")
		b.WriteString(v.kind.String())
	case KindNat8, KindNat16, KindNat32, KindNat64:
		b.WriteString(strconv.FormatUint(uintOf(v), 10))
		b.WriteString(" : ")
		b.WriteString(v.kind.String())
	case KindInt8, KindInt16, KindInt32, KindInt64:
		b.WriteString(strconv.FormatInt(intOf(v), 10))
		b.WriteString(" : ")
		b.WriteString(v.kind.String())
	case KindPrincipal:
		b.WriteString("principal ")
		b.WriteString(quote.Text(v.data.(principal.Principal).String()))
	case KindService:
		b.WriteString("service ")
		b.WriteString(quote.Text(v.data.(principal.Principal).String()))
	case KindFunc:
		d := v.data.(funcData)
		b.WriteString("func ")
		b.WriteString(quote.Text(d.ref.String()))
		b.WriteByte('.')
		b.WriteString(types.MethodName(d.method))
	case KindOpt:
		b.WriteString("opt ")
		writeFlat(b, v.data.(Value))
	case KindVec:
		writeFlatVec(b, v.data.([]Value))
	case KindRecord:
		writeFlatRecord(b, v.data.([]Field))
	case KindVariant:
		d := v.data.(variantData)
		b.WriteString("variant { ")
		if d.field.Value.kind == KindNull {
			b.WriteString(d.field.Label.String())
		} else {
			writeFlatField(b, d.field)
		}
		b.WriteString(" }")
	}
}

func writeFlatVec(b *strings.Builder, elems []Value) {
	if len(elems) == 0 {
		b.WriteString("vec {}")
		return
	}
	if isBlob(elems) {
		raw := make([]byte, len(elems))
		for i, e := range elems {
			raw[i] = e.data.(uint8)
		}
		b.WriteString("blob ")
		b.WriteString(quote.Blob(raw))
		return
	}
	b.WriteString("vec { ")
	for i, e := range elems {
		if i > 0 {
			b.WriteString("; ")
		}
		writeFlat(b, e)
	}
	b.WriteString(" }")
}

func writeFlatRecord(b *strings.Builder, fields []Field) {
	if len(fields) == 0 {
		b.WriteString("record {}")
		return
	}
	tuple := isTuple(fields)
	if tuple {
		fields = sortedByID(fields)
	}
	b.WriteString("record { ")
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		if tuple {
			writeFlat(b, f.Value)
		} else {
			writeFlatField(b, f)
		}
	}
	b.WriteString(" }")
}

func writeFlatField(b *strings.Builder, f Field) {
	b.WriteString(f.Label.String())
	b.WriteString(" = ")
	writeFlat(b, f.Value)
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}

func isBlob(elems []Value) bool {
	for _, e := range elems {
		if e.kind != KindNat8 {
			return false
		}
	}
	return len(elems) > 0
}

// isTuple reports whether the field ids are exactly 0..n-1.
func isTuple(fields []Field) bool {
	if len(fields) == 0 {
		return false
	}
	seen := make([]bool, len(fields))
	for _, f := range fields {
		id := f.Label.ID()
		if int64(id) >= int64(len(fields)) || seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}

func sortedByID(fields []Field) []Field {
	out := slices.Clone(fields)
	slices.SortFunc(out, func(a, b Field) int {
		return int(int64(a.Label.ID()) - int64(b.Label.ID()))
	})
	return out
}

func uintOf(v Value) uint64 {
	switch n := v.data.(type) {
	case uint8:
		return uint64(n)
	case uint16:
		return uint64(n)
	case uint32:
		return uint64(n)
	case uint64:
		return n
	}
	return 0
}

func intOf(v Value) int64 {
	switch n := v.data.(type) {
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	}
	return 0
}
