package wire

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/wippyai/candid/errors"
	"github.com/wippyai/candid/principal"
	"github.com/wippyai/candid/types"
	"github.com/wippyai/candid/value"
)

func unhex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func number(t *testing.T, lit string) value.Value {
	t.Helper()
	v, err := value.Number(lit)
	if err != nil {
		t.Fatalf("Number(%q): %v", lit, err)
	}
	return v
}

func record(t *testing.T, fields ...value.Field) value.Value {
	t.Helper()
	v, err := value.Record(fields...)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	return v
}

func variant(t *testing.T, label string, payload value.Value) value.Value {
	t.Helper()
	v, err := value.Variant(label, payload, 0)
	if err != nil {
		t.Fatalf("Variant: %v", err)
	}
	return v
}

func TestEncodeReferenceVector(t *testing.T) {
	args := value.NewArgs(
		value.Bool(true),
		value.Principal(principal.Anonymous()),
		value.Int32(-12),
	)
	got, err := Encode(args)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := unhex(t, "4449444C 00 03 7E 68 75 01 01 01 04 F4FFFFFF")
	if !bytes.Equal(got, want) {
		t.Errorf("Encode = % X, want % X", got, want)
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		args value.Args
		want string
	}{
		{"empty", value.NewArgs(), "4449444C 00 00"},
		{"null", value.NewArgs(value.Null()), "4449444C 00 01 7F"},
		{"untyped number is int", value.NewArgs(number(t, "5")), "4449444C 00 01 7C 05"},
		{"negative int", value.NewArgs(value.IntFromInt64(-1)), "4449444C 00 01 7C 7F"},
		{"nat leb128", value.NewArgs(value.NatFromUint64(624485)), "4449444C 00 01 7D E58E26"},
		{"nat16", value.NewArgs(value.Nat16(300)), "4449444C 00 01 7A 2C01"},
		{"int8", value.NewArgs(value.Int8(-1)), "4449444C 00 01 77 FF"},
		{"float64", value.NewArgs(value.Float64(1)), "4449444C 00 01 72 000000000000F03F"},
		{"text", value.NewArgs(value.Text("hi")), "4449444C 00 01 71 02 6869"},
		{"reserved", value.NewArgs(value.Reserved()), "4449444C 00 01 70"},
		{
			"record",
			value.NewArgs(record(t, value.NamedField("a", value.Nat8(1)))),
			"4449444C 01 6C 01 61 7B 01 00 01",
		},
		{
			"opt present",
			value.NewArgs(value.Opt(value.Bool(false))),
			"4449444C 01 6E 7E 01 00 01 00",
		},
		{
			"none is opt empty",
			value.NewArgs(value.None()),
			"4449444C 01 6E 6F 01 00 00",
		},
		{
			"shared blob entry",
			value.NewArgs(value.Blob([]byte{1, 2}), value.Blob([]byte{3})),
			"4449444C 01 6D 7B 02 00 00 02 0102 01 03",
		},
		{
			"variant",
			value.NewArgs(variant(t, "ok", value.Null())),
			"4449444C 01 6B 01 9CC201 7F 01 00 00",
		},
		{
			"service",
			value.NewArgs(value.Service(principal.Management())),
			"4449444C 01 69 00 01 00 01 00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.args)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			want := unhex(t, tt.want)
			if !bytes.Equal(got, want) {
				t.Errorf("Encode = % X, want % X", got, want)
			}
		})
	}
}

func TestEncodeWithTypes(t *testing.T) {
	tests := []struct {
		name string
		v    value.Value
		typ  *types.Type
		want string
	}{
		{"number as nat16", number(t, "300"), types.Prim(types.KindNat16), "4449444C 00 01 7A 2C01"},
		{"number as nat", number(t, "128"), types.Prim(types.KindNat), "4449444C 00 01 7D 8001"},
		{"number as int64", number(t, "-2"), types.Prim(types.KindInt64), "4449444C 00 01 74 FEFFFFFFFFFFFFFF"},
		{"null as opt", value.Null(), types.Opt(types.Prim(types.KindNat8)), "4449444C 01 6E 7B 01 00 00"},
		{"anything as reserved", value.Text("x"), types.Prim(types.KindReserved), "4449444C 00 01 70"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeWithTypes(value.NewArgs(tt.v), []*types.Type{tt.typ})
			if err != nil {
				t.Fatalf("EncodeWithTypes: %v", err)
			}
			want := unhex(t, tt.want)
			if !bytes.Equal(got, want) {
				t.Errorf("EncodeWithTypes = % X, want % X", got, want)
			}
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		args value.Args
		ts   []*types.Type
		kind errors.Kind
	}{
		{
			"overflow",
			value.NewArgs(number(t, "300")),
			[]*types.Type{types.Prim(types.KindNat8)},
			errors.KindOverflow,
		},
		{
			"negative into nat",
			value.NewArgs(number(t, "-1")),
			[]*types.Type{types.Prim(types.KindNat)},
			errors.KindSign,
		},
		{
			"wrong kind",
			value.NewArgs(value.Text("x")),
			[]*types.Type{types.Prim(types.KindBool)},
			errors.KindTypeMismatch,
		},
		{
			"arity",
			value.NewArgs(value.Bool(true)),
			nil,
			errors.KindTypeMismatch,
		},
		{
			"unresolved type name",
			value.NewArgs(value.Null()),
			[]*types.Type{types.Opt(types.Var("node"))},
			errors.KindUnsupported,
		},
		{
			"literal too large for int64",
			value.NewArgs(number(t, "99999999999999999999")),
			[]*types.Type{types.Prim(types.KindInt64)},
			errors.KindOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeWithTypes(tt.args, tt.ts)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsKind(err, tt.kind) {
				t.Errorf("error kind = %v, want %v (%v)", errors.KindOf(err), tt.kind, err)
			}
		})
	}
}

func TestEncodeMixedVecFails(t *testing.T) {
	_, err := Encode(value.NewArgs(value.Vec(value.Bool(true), value.Text("x"))))
	if !errors.IsKind(err, errors.KindTypeMismatch) {
		t.Fatalf("error = %v, want type mismatch", err)
	}
}
