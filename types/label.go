package types

import (
	"strconv"

	"github.com/wippyai/candid/internal/quote"
)

// LabelKind distinguishes how a field label was written.
type LabelKind uint8

const (
	LabelNamed   LabelKind = iota // name = ...
	LabelID                       // 42 = ...
	LabelUnnamed                  // positional tuple field
)

// Label names a record field or variant case. Every label has a 32-bit id;
// identity and wire layout use the id alone.
type Label struct {
	name string
	id   uint32
	kind LabelKind
}

// Named returns a label for a textual field name.
func Named(name string) Label {
	return Label{name: name, id: IDHash(name), kind: LabelNamed}
}

// ID returns a label written as a number.
func ID(id uint32) Label {
	return Label{id: id, kind: LabelID}
}

// Unnamed returns the label of the i-th positional field.
func Unnamed(i uint32) Label {
	return Label{id: i, kind: LabelUnnamed}
}

// ParseLabel returns an id label for decimal text that fits 32 bits and a
// named label otherwise.
func ParseLabel(s string) Label {
	if s != "" && (s == "0" || s[0] != '0') {
		if n, err := strconv.ParseUint(s, 10, 32); err == nil {
			return ID(uint32(n))
		}
	}
	return Named(s)
}

// IDHash computes the Candid field hash of a name.
func IDHash(name string) uint32 {
	var h uint32
	for i := 0; i < len(name); i++ {
		h = h*223 + uint32(name[i])
	}
	return h
}

// ID returns the field id.
func (l Label) ID() uint32 { return l.id }

// Kind returns how the label was written.
func (l Label) Kind() LabelKind { return l.kind }

// Name returns the field name for named labels and "" otherwise.
func (l Label) Name() string { return l.name }

// Equal compares labels by id.
func (l Label) Equal(other Label) bool { return l.id == other.id }

// Text returns the name, or the decimal id for numeric labels.
func (l Label) Text() string {
	if l.kind == LabelNamed {
		return l.name
	}
	return strconv.FormatUint(uint64(l.id), 10)
}

// String renders the label as it appears in Candid text: bare when it is
// an identifier, quoted otherwise, numeric ids as numbers.
func (l Label) String() string {
	if l.kind != LabelNamed {
		return strconv.FormatUint(uint64(l.id), 10)
	}
	if IsIdentifier(l.name) {
		return l.name
	}
	return quote.Text(l.name)
}

var keywords = map[string]bool{
	"null": true, "bool": true, "nat": true, "int": true,
	"nat8": true, "nat16": true, "nat32": true, "nat64": true,
	"int8": true, "int16": true, "int32": true, "int64": true,
	"float32": true, "float64": true, "text": true, "reserved": true,
	"empty": true, "principal": true, "opt": true, "vec": true,
	"record": true, "variant": true, "func": true, "service": true,
	"blob": true, "type": true, "import": true, "true": true, "false": true,
	"query": true, "oneway": true, "composite_query": true,
}

// IsKeyword reports whether s is reserved by the Candid grammar.
func IsKeyword(s string) bool {
	return keywords[s]
}

// IsIdentifier reports whether s can be written as a bare label.
func IsIdentifier(s string) bool {
	if s == "" || keywords[s] {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
