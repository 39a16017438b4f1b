package value

import (
	"math"
	"math/big"
	"testing"

	"github.com/wippyai/candid/principal"
)

func TestPrintFlat(t *testing.T) {
	fn, _ := Func(principal.Anonymous(), "get_info")
	quoted, _ := Func(principal.Anonymous(), "my method")
	bigNat, _ := Nat(new(big.Int).Lsh(big.NewInt(1), 100))

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"nat64", Nat64(128), "128 : nat64"},
		{"int32", Int32(-12), "-12 : int32"},
		{"number", mustNumber(t, "1_000"), "1000"},
		{"big nat", bigNat, "1267650600228229401496703205376 : nat"},
		{"int", IntFromInt64(-3), "-3 : int"},
		{"float32", Float32(1.0), "1 : float32"},
		{"float64", Float64(0.1), "0.1 : float64"},
		{"nan", Float64(math.NaN()), "nan : float64"},
		{"neg inf", Float32(float32(math.Inf(-1))), "-inf : float32"},
		{"null", Null(), "null"},
		{"none", None(), "null : opt empty"},
		{"reserved", Reserved(), "null : reserved"},
		{"text", Text("a \"b\"\n"), `"a \"b\"\n"`},
		{"bool", Bool(false), "false"},
		{"opt", Opt(Nat8(1)), "opt 1 : nat8"},
		{"empty vec", Vec(), "vec {}"},
		{"vec", Vec(Bool(true), Bool(false)), "vec { true; false }"},
		{"blob", Blob([]byte{0xca, 0xfe}), `blob "\ca\fe"`},
		{"empty record", mustRecord(t), "record {}"},
		{"record", mustRecord(t, NamedField("b", Bool(true)), NamedField("a", Text("x"))), `record { b = true; a = "x" }`},
		{"quoted label", mustRecord(t, NamedField("two words", Null()), NamedField("vec", Null())), `record { "two words" = null; "vec" = null }`},
		{"id label", mustRecord(t, IDField(123, Null()), NamedField("x", Null())), "record { 123 = null; x = null }"},
		{"tuple", Tuple(Nat8(1), Text("x")), `record { 1 : nat8; "x" }`},
		{"tuple out of order", mustRecord(t, IDField(1, Bool(false)), IDField(0, Bool(true))), "record { true; false }"},
		{"variant", mustVariant(t, "ok", Nat8(1), 0), "variant { ok = 1 : nat8 }"},
		{"variant null", mustVariant(t, "none", Null(), 0), "variant { none }"},
		{"principal", Principal(principal.Anonymous()), `principal "2vxsx-fae"`},
		{"service", Service(principal.Management()), `service "aaaaa-aa"`},
		{"func", fn, `func "2vxsx-fae".get_info`},
		{"func quoted", quoted, `func "2vxsx-fae"."my method"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPrintBreaksLongValues(t *testing.T) {
	v := mustRecord(t,
		NamedField("name", Text("a fairly long piece of text")),
		NamedField("tags", Vec(Text("first"), Text("second"), Text("third"), Text("fourth"))),
		NamedField("owner", Principal(principal.Anonymous())),
	)

	want := `record {
  name = "a fairly long piece of text";
  tags = vec { "first"; "second"; "third"; "fourth" };
  owner = principal "2vxsx-fae"
}`
	if got := v.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}

	narrow := Printer{Width: 30}
	wantNarrow := `record {
  name = "a fairly long piece of text";
  tags = vec {
    "first";
    "second";
    "third";
    "fourth"
  };
  owner = principal "2vxsx-fae"
}`
	if got := narrow.Value(v); got != wantNarrow {
		t.Errorf("narrow =\n%s\nwant\n%s", got, wantNarrow)
	}
}

func TestPrintArgs(t *testing.T) {
	tests := []struct {
		name string
		args Args
		want string
	}{
		{"empty", NewArgs(), "()"},
		{"single", NewArgs(Bool(true)), "(true,)"},
		{"several", NewArgs(Bool(true), Principal(principal.Anonymous()), Int32(-12)),
			`(true, principal "2vxsx-fae", -12 : int32,)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.args.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
		})
	}

	long := NewArgs(Text("an argument long enough to push the whole tuple"), Text("past the configured width"))
	want := `(
  "an argument long enough to push the whole tuple",
  "past the configured width",
)`
	if got := long.String(); got != want {
		t.Errorf("long args =\n%s\nwant\n%s", got, want)
	}
}
