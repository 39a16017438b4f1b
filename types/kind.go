package types

// Kind identifies a Candid type constructor.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNat
	KindInt
	KindNat8
	KindNat16
	KindNat32
	KindNat64
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindText
	KindReserved
	KindEmpty
	KindPrincipal
	KindOpt
	KindVec
	KindRecord
	KindVariant
	KindFunc
	KindService
	// KindVar is a named reference to a type defined elsewhere. It only
	// appears where a decoded type table is recursive.
	KindVar
)

var kindNames = [...]string{
	KindNull:      "null",
	KindBool:      "bool",
	KindNat:       "nat",
	KindInt:       "int",
	KindNat8:      "nat8",
	KindNat16:     "nat16",
	KindNat32:     "nat32",
	KindNat64:     "nat64",
	KindInt8:      "int8",
	KindInt16:     "int16",
	KindInt32:     "int32",
	KindInt64:     "int64",
	KindFloat32:   "float32",
	KindFloat64:   "float64",
	KindText:      "text",
	KindReserved:  "reserved",
	KindEmpty:     "empty",
	KindPrincipal: "principal",
	KindOpt:       "opt",
	KindVec:       "vec",
	KindRecord:    "record",
	KindVariant:   "variant",
	KindFunc:      "func",
	KindService:   "service",
	KindVar:       "var",
}

// wire opcodes, indexed by Kind
var kindOpcodes = [...]int64{
	KindNull:      -1,
	KindBool:      -2,
	KindNat:       -3,
	KindInt:       -4,
	KindNat8:      -5,
	KindNat16:     -6,
	KindNat32:     -7,
	KindNat64:     -8,
	KindInt8:      -9,
	KindInt16:     -10,
	KindInt32:     -11,
	KindInt64:     -12,
	KindFloat32:   -13,
	KindFloat64:   -14,
	KindText:      -15,
	KindReserved:  -16,
	KindEmpty:     -17,
	KindOpt:       -18,
	KindVec:       -19,
	KindRecord:    -20,
	KindVariant:   -21,
	KindFunc:      -22,
	KindService:   -23,
	KindPrincipal: -24,
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsPrimitive reports whether k takes no type arguments. Primitive types are
// written on the wire as their opcode and never enter the type table.
func (k Kind) IsPrimitive() bool {
	return k <= KindPrincipal
}

// IsNumeric reports whether k is an integer or float type.
func (k Kind) IsNumeric() bool {
	return k >= KindNat && k <= KindFloat64
}

// IsInteger reports whether k is nat, int or a fixed-width integer.
func (k Kind) IsInteger() bool {
	return k >= KindNat && k <= KindInt64
}

// IsUnsigned reports whether k is nat or natN.
func (k Kind) IsUnsigned() bool {
	return k == KindNat || (k >= KindNat8 && k <= KindNat64)
}

// Bits returns the width of fixed-width numeric kinds and 0 otherwise.
func (k Kind) Bits() uint {
	switch k {
	case KindNat8, KindInt8:
		return 8
	case KindNat16, KindInt16:
		return 16
	case KindNat32, KindInt32, KindFloat32:
		return 32
	case KindNat64, KindInt64, KindFloat64:
		return 64
	default:
		return 0
	}
}

// Opcode returns the signed wire opcode of k. KindVar has none and returns 0.
func (k Kind) Opcode() int64 {
	if int(k) < len(kindOpcodes) {
		return kindOpcodes[k]
	}
	return 0
}

// KindFromOpcode maps a wire opcode back to its kind.
func KindFromOpcode(op int64) (Kind, bool) {
	if op >= -24 && op <= -1 {
		for k, code := range kindOpcodes {
			if code == op {
				return Kind(k), true
			}
		}
	}
	return 0, false
}

// LookupPrimitive returns the primitive kind named by a Candid keyword.
func LookupPrimitive(name string) (Kind, bool) {
	for k := KindNull; k <= KindPrincipal; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return 0, false
}
