package text

import (
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/wippyai/candid/errors"
	"github.com/wippyai/candid/principal"
	"github.com/wippyai/candid/types"
	"github.com/wippyai/candid/value"
)

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

func TestParseValue(t *testing.T) {
	anon := principal.Anonymous()
	fn, _ := value.Func(principal.Management(), "greet")
	quotedFn, _ := value.Func(principal.Management(), "my method")

	tests := []struct {
		name  string
		input string
		want  value.Value
	}{
		{"ascribed nat64", "128: nat64", value.Nat64(128)},
		{"parenthesized", "(128 : nat64)", value.Nat64(128)},
		{"principal", `principal "2vxsx-fae"`, value.Principal(anon)},
		{"service", `service "aaaaa-aa"`, value.Service(principal.Management())},
		{"func", `func "aaaaa-aa".greet`, fn},
		{"func quoted method", `func "aaaaa-aa"."my method"`, quotedFn},
		{"mixed vec", `vec { true; principal "2vxsx-fae"; 12345 }`,
			value.Vec(value.Bool(true), value.Principal(anon), number(t, "12345"))},
		{"trailing separator", "vec { 1; 2; }", value.Vec(number(t, "1"), number(t, "2"))},
		{"empty vec", "vec {}", value.Vec()},
		{"bool", "false", value.Bool(false)},
		{"null", "null", value.Null()},
		{"none", "null : opt empty", value.None()},
		{"none from opt nat", "null : opt nat", value.None()},
		{"reserved", "null : reserved", value.Reserved()},
		{"opt", "opt 1 : nat8", value.Opt(value.Nat8(1))},
		{"opt ascribed outside", "(opt 5) : opt nat8", value.Opt(value.Nat8(5))},
		{"number", "1_000", number(t, "1000")},
		{"negative number", "-42", number(t, "-42")},
		{"hex nat8", "0x2a : nat8", value.Nat8(42)},
		{"int", "-3 : int", value.IntFromInt64(-3)},
		{"int8", "-128 : int8", value.Int8(-128)},
		{"nat64 max", "18446744073709551615 : nat64", value.Nat64(math.MaxUint64)},
		{"float", "1.5", value.Float64(1.5)},
		{"float exponent", "1e3", value.Float64(1000)},
		{"float32", "1.5 : float32", value.Float32(1.5)},
		{"integer float32", "1 : float32", value.Float32(1)},
		{"inf", "-inf : float32", value.Float32(float32(math.Inf(-1)))},
		{"text", `"hello"`, value.Text("hello")},
		{"text escapes", `"\u{1F600}\41\n\t\"\\"`, value.Text("\U0001F600A\n\t\"\\")},
		{"blob", `blob "\ff\00abc"`, value.Blob([]byte{0xff, 0x00, 'a', 'b', 'c'})},
		{"empty record", "record {}", record(t)},
		{"record", `record { a = 1 : nat8; "two words" = "x" }`,
			record(t, value.NamedField("a", value.Nat8(1)), value.NamedField("two words", value.Text("x")))},
		{"tuple", `record { 1 : nat8; "x" }`, value.Tuple(value.Nat8(1), value.Text("x"))},
		{"positional after id", "record { 5 = true; false }",
			record(t, value.IDField(5, value.Bool(true)), value.IDField(6, value.Bool(false)))},
		{"variant", "variant { ok = 1 : nat8 }", variant(t, "ok", value.Nat8(1))},
		{"variant without payload", "variant { none }", variant(t, "none", value.Null())},
		{"record annotation fills optional fields",
			"record { a = 1 } : record { a : nat8; b : opt text }",
			record(t, value.NamedField("a", value.Nat8(1)), value.NamedField("b", value.None()))},
		{"comments", "/* c /* nested */ */ vec { 1; // one\n 2 }", value.Vec(number(t, "1"), number(t, "2"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValue(tt.input)
			if err != nil {
				t.Fatalf("ParseValue(%q): %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseValue(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestPrintNaNDropsPayload(t *testing.T) {
	v := value.Float64(math.Float64frombits(0xfff8_0000_0000_0001))
	s := Print(v)
	if s != "nan : float64" {
		t.Fatalf("Print = %q, want nan : float64", s)
	}
	parsed, err := ParseValue(s)
	if err != nil {
		t.Fatal(err)
	}
	f, err := parsed.AsFloat64()
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(f) || math.Signbit(f) {
		t.Errorf("ParseValue(Print(-nan)) = %v with sign %v, want positive nan", f, math.Signbit(f))
	}
}

func TestParseNaN(t *testing.T) {
	for _, input := range []string{"nan", "-nan : float64", "+nan : float32"} {
		v, err := ParseValue(input)
		if err != nil {
			t.Fatalf("ParseValue(%q): %v", input, err)
		}
		var f float64
		switch v.Kind() {
		case value.KindFloat64:
			f, _ = v.AsFloat64()
		case value.KindFloat32:
			f32, _ := v.AsFloat32()
			f = float64(f32)
		default:
			t.Fatalf("ParseValue(%q) kind = %v", input, v.Kind())
		}
		if !math.IsNaN(f) {
			t.Errorf("ParseValue(%q) = %v, want NaN", input, f)
		}
	}
}

func TestParseRecordAccess(t *testing.T) {
	v, err := ParseValue(`record { Key01 = true; 123 = principal "2vxsx-fae"; Key03 = 12345 }`)
	if err != nil {
		t.Fatal(err)
	}
	m, err := v.AsRecord()
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != 3 {
		t.Fatalf("len = %d, want 3", len(m))
	}
	if b, err := m["Key01"].AsBool(); err != nil || !b {
		t.Errorf("Key01 = %v, %v", b, err)
	}
	if p, err := m["123"].AsPrincipal(); err != nil || !p.IsAnonymous() {
		t.Errorf("123 = %v, %v", p, err)
	}
	if n, err := m["Key03"].AsNumber(); err != nil || n != "12345" {
		t.Errorf("Key03 = %v, %v", n, err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  errors.Kind
		where string
	}{
		{"empty", "", errors.KindSyntax, "line 1, column 1"},
		{"missing value", "record { a = }", errors.KindSyntax, "line 1, column 14"},
		{"missing separator", "vec { 1 2 }", errors.KindSyntax, "line 1, column 9"},
		{"unterminated text", `"abc`, errors.KindSyntax, "line 1, column 1"},
		{"illegal character", "\n  @", errors.KindSyntax, "line 2, column 3"},
		{"invalid utf-8 source", "\"a\xff\"", errors.KindSyntax, "line 1, column 3"},
		{"tuple is not a value", "(1, 2)", errors.KindSyntax, "line 1, column 3"},
		{"trailing tokens", "true false", errors.KindSyntax, "line 1, column 6"},
		{"duplicate field", "record { a = 1; a = 2 }", errors.KindSyntax, "line 1, column 17"},
		{"keyword label", "record { true = 1 }", errors.KindSyntax, "line 1, column 10"},
		{"empty variant", "variant { }", errors.KindSyntax, "line 1, column 11"},
		{"bad principal", `principal "not-a-principal"`, errors.KindSyntax, "line 1, column 11"},
		{"bad escape", `"\q"`, errors.KindSyntax, "line 1, column 1"},
		{"invalid utf-8", `"\ff"`, errors.KindSyntax, "line 1, column 1"},
		{"unclosed vec", "vec { 1", errors.KindSyntax, "line 1, column 8"},
		{"unknown keyword", "bogus", errors.KindSyntax, "line 1, column 1"},
		{"overflow", "300 : nat8", errors.KindOverflow, ""},
		{"sign", "-1 : nat", errors.KindSign, ""},
		{"fraction for integer", "1.5 : nat", errors.KindInvalidArgument, ""},
		{"float overflow", "1e400", errors.KindOverflow, ""},
		{"type mismatch", "true : nat", errors.KindTypeMismatch, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseValue(tt.input)
			if err == nil {
				t.Fatalf("ParseValue(%q) succeeded", tt.input)
			}
			if !errors.IsKind(err, tt.kind) {
				t.Errorf("kind = %s, want %s (%v)", errors.KindOf(err), tt.kind, err)
			}
			if tt.where != "" && !strings.Contains(err.Error(), tt.where) {
				t.Errorf("error %q does not mention %q", err, tt.where)
			}
		})
	}
}

func TestParseNestingLimit(t *testing.T) {
	deep := strings.Repeat("opt ", 600) + "null"
	_, err := ParseValue(deep)
	if !errors.IsKind(err, errors.KindSyntax) {
		t.Fatalf("err = %v, want syntax error", err)
	}

	ok := strings.Repeat("opt ", 100) + "null"
	if _, err := ParseValue(ok); err != nil {
		t.Fatalf("ParseValue(100 opts): %v", err)
	}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  value.Args
	}{
		{"empty", "()", value.NewArgs()},
		{"single", "(true)", value.NewArgs(value.Bool(true))},
		{"trailing comma", "(true,)", value.NewArgs(value.Bool(true))},
		{"bare value", "42", value.NewArgs(number(t, "42"))},
		{"several", `(true, principal "2vxsx-fae", -12 : int32)`,
			value.NewArgs(value.Bool(true), value.Principal(principal.Anonymous()), value.Int32(-12))},
		{"nested parens", "((1 : nat8), 2)", value.NewArgs(value.Nat8(1), number(t, "2"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.input)
			if err != nil {
				t.Fatalf("ParseArgs(%q): %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseArgs(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"(1 2)", "(1,", "(,)", "() ()"} {
		if _, err := ParseArgs(bad); !errors.IsKind(err, errors.KindSyntax) {
			t.Errorf("ParseArgs(%q) err = %v, want syntax error", bad, err)
		}
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"nat", "nat"},
		{"principal", "principal"},
		{"opt vec nat8", "opt vec nat8"},
		{"blob", "vec nat8"},
		{"record {}", "record {}"},
		{"record { b : text; a : nat }", "record { a : nat; b : text }"},
		{"record { nat; text }", "record { nat; text }"},
		{"record { 0 : nat; 1 : text; }", "record { nat; text }"},
		{"record { \"two words\" : nat }", `record { "two words" : nat }`},
		{"variant { ok : nat; err : text }", "variant { ok : nat; err : text }"},
		{"variant { some : nat; none }", "variant { none; some : nat }"},
		{"func (nat, text) -> (opt text) query", "func (nat, text) -> (opt text) query"},
		{"func (name : text) -> () oneway", "func (text) -> () oneway"},
		{"service { put : (nat) -> (); get : () -> (nat) query }",
			"service { get : () -> (nat) query; put : (nat) -> () }"},
		{`service { "my method" : () -> () }`, `service { "my method" : () -> () }`},
		{"service { cb : callback }", "service { cb : callback }"},
		{"MyType", "MyType"},
		{"vec record { id : nat64; tags : vec text }", "vec record { id : nat64; tags : vec text }"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if err != nil {
				t.Fatalf("ParseType(%q): %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseType(%q) = %s, want %s", tt.input, got, tt.want)
			}
			again, err := ParseType(got.String())
			if err != nil {
				t.Fatalf("reparse %q: %v", got, err)
			}
			if !again.Equal(got) {
				t.Errorf("reparse %q = %s", got, again)
			}
		})
	}

	for _, bad := range []string{"", "vec", "true", "record { a : nat; a : text }", "func (nat)", "record { a : }"} {
		if _, err := ParseType(bad); !errors.IsKind(err, errors.KindSyntax) {
			t.Errorf("ParseType(%q) err = %v, want syntax error", bad, err)
		}
	}
}

func TestParseTypes(t *testing.T) {
	ts, err := ParseTypes("(nat, opt text,)")
	if err != nil {
		t.Fatal(err)
	}
	want := []*types.Type{types.Prim(types.KindNat), types.Opt(types.Prim(types.KindText))}
	if len(ts) != len(want) {
		t.Fatalf("len = %d, want %d", len(ts), len(want))
	}
	for i := range ts {
		if !ts[i].Equal(want[i]) {
			t.Errorf("type %d = %s, want %s", i, ts[i], want[i])
		}
	}
	if got := PrintTypes(ts); got != "(nat, opt text)" {
		t.Errorf("PrintTypes = %s", got)
	}

	empty, err := ParseTypes("()")
	if err != nil || len(empty) != 0 {
		t.Errorf("ParseTypes(()) = %v, %v", empty, err)
	}
}

func TestRoundTrip(t *testing.T) {
	fn, _ := value.Func(principal.Anonymous(), "query")
	bigNat, _ := value.Nat(new(big.Int).Lsh(big.NewInt(1), 100))

	values := []value.Value{
		value.Null(),
		value.None(),
		value.Reserved(),
		value.Bool(true),
		value.Text("line\nbreak \"quoted\" é"),
		number(t, "-0x2a"),
		value.Float32(0.1),
		value.Float64(1e21),
		value.Float64(math.Inf(1)),
		value.Float64(math.Copysign(0, -1)),
		value.Nat8(255),
		value.Nat16(65535),
		value.Nat32(1),
		value.Nat64(math.MaxUint64),
		value.Int8(-128),
		value.Int16(-1),
		value.Int32(math.MinInt32),
		value.Int64(math.MinInt64),
		bigNat,
		value.IntFromInt64(-99),
		value.Opt(value.Opt(value.None())),
		value.Opt(value.Null()),
		value.Vec(),
		value.Blob([]byte{0, 1, 0xfe}),
		value.Vec(value.Text("a"), value.Text("b")),
		record(t),
		record(t, value.NamedField("vec", value.Null()), value.IDField(7, value.Reserved())),
		value.Tuple(value.Bool(false), value.Tuple(value.Nat8(1), value.Text("x"))),
		variant(t, "err", record(t, value.NamedField("code", value.Nat32(404)))),
		variant(t, "none", value.Null()),
		value.Principal(principal.Anonymous()),
		value.Service(principal.Management()),
		fn,
		record(t,
			value.NamedField("name", value.Text("a fairly long piece of text")),
			value.NamedField("tags", value.Vec(value.Text("first"), value.Text("second"), value.Text("third"), value.Text("fourth"))),
			value.NamedField("nested", value.Vec(record(t, value.NamedField("deep", value.Opt(value.Text("enough text to wrap the line")))))),
		),
	}

	for _, v := range values {
		printed := Print(v)
		t.Run(printed, func(t *testing.T) {
			parsed, err := ParseValue(printed)
			if err != nil {
				t.Fatalf("ParseValue(%q): %v", printed, err)
			}
			if !parsed.Equal(v) {
				t.Errorf("round trip of %s gave %s", printed, parsed)
			}
			if again := Print(parsed); again != printed {
				t.Errorf("Print not idempotent:\n%s\n%s", printed, again)
			}
		})
	}
}

func TestArgsRoundTrip(t *testing.T) {
	args := value.NewArgs(value.Bool(true), value.Principal(principal.Anonymous()), value.Int32(-12))
	printed := PrintArgs(args)
	if printed != `(true, principal "2vxsx-fae", -12 : int32,)` {
		t.Errorf("PrintArgs = %s", printed)
	}
	parsed, err := ParseArgs(printed)
	if err != nil {
		t.Fatal(err)
	}
	if !parsed.Equal(args) {
		t.Errorf("round trip gave %s", parsed)
	}
	if PrintArgs(value.NewArgs()) != "()" {
		t.Errorf("empty args = %s", PrintArgs(value.NewArgs()))
	}
}

func TestPrinterWidth(t *testing.T) {
	v := value.Vec(value.Text("alpha"), value.Text("beta"))
	narrow := Printer{Width: 10}
	want := "vec {\n  \"alpha\";\n  \"beta\"\n}"
	if got := narrow.Value(v); got != want {
		t.Errorf("narrow = %q, want %q", got, want)
	}
	parsed, err := ParseValue(want)
	if err != nil || !parsed.Equal(v) {
		t.Errorf("ParseValue(multi-line) = %v, %v", parsed, err)
	}
}
