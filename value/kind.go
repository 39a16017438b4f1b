package value

// Kind identifies the active variant of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindText
	KindNumber
	KindFloat32
	KindFloat64
	KindOpt
	KindVec
	KindRecord
	KindVariant
	KindPrincipal
	KindService
	KindFunc
	KindNone
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
	KindReserved
)

var kindNames = [...]string{
	KindNull:      "null",
	KindBool:      "bool",
	KindText:      "text",
	KindNumber:    "number",
	KindFloat32:   "float32",
	KindFloat64:   "float64",
	KindOpt:       "opt",
	KindVec:       "vec",
	KindRecord:    "record",
	KindVariant:   "variant",
	KindPrincipal: "principal",
	KindService:   "service",
	KindFunc:      "func",
	KindNone:      "none",
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
	KindReserved:  "reserved",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// typeName is the Candid type keyword reported by ValueType.
func (k Kind) typeName() string {
	switch k {
	case KindNumber:
		return "int"
	case KindNone:
		return "opt"
	}
	return k.String()
}
