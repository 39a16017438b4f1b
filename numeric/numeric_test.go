package numeric

import (
	"math"
	"testing"

	"github.com/wippyai/candid/errors"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		lit  string
		want string
	}{
		{"0", "0"},
		{"12345", "12345"},
		{"-12", "-12"},
		{"+7", "7"},
		{"1_000_000", "1000000"},
		{"0x10", "16"},
		{"-0xff", "-255"},
		{"0xDEAD_BEEF", "3735928559"},
		{"340282366920938463463374607431768211456", "340282366920938463463374607431768211456"},
	}

	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			got, err := ParseInt(tt.lit)
			if err != nil {
				t.Fatalf("ParseInt(%q): %v", tt.lit, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseInt(%q) = %s, want %s", tt.lit, got, tt.want)
			}
		})
	}
}

func TestParseIntErrors(t *testing.T) {
	for _, lit := range []string{"", "-", "abc", "1.5", "1e3", "nan", "0x", "0xg1", "--5", "12a"} {
		t.Run(lit, func(t *testing.T) {
			_, err := ParseInt(lit)
			if !errors.IsKind(err, errors.KindInvalidArgument) {
				t.Errorf("ParseInt(%q) err = %v, want invalid_argument", lit, err)
			}
		})
	}
}

func TestParseUint(t *testing.T) {
	tests := []struct {
		lit  string
		bits uint
		want uint64
		kind errors.Kind
	}{
		{"255", 8, 255, ""},
		{"256", 8, 0, errors.KindOverflow},
		{"-1", 8, 0, errors.KindSign},
		{"65535", 16, 65535, ""},
		{"65536", 16, 0, errors.KindOverflow},
		{"4294967295", 32, 4294967295, ""},
		{"18446744073709551615", 64, math.MaxUint64, ""},
		{"18446744073709551616", 64, 0, errors.KindOverflow},
		{"1.0", 32, 0, errors.KindInvalidArgument},
		{"-0", 8, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			got, err := ParseUint(tt.lit, tt.bits)
			if tt.kind != "" {
				if !errors.IsKind(err, tt.kind) {
					t.Errorf("ParseUint(%q, %d) err = %v, want %s", tt.lit, tt.bits, err, tt.kind)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseUint(%q, %d): %v", tt.lit, tt.bits, err)
			}
			if got != tt.want {
				t.Errorf("ParseUint(%q, %d) = %d, want %d", tt.lit, tt.bits, got, tt.want)
			}
		})
	}
}

func TestParseSint(t *testing.T) {
	tests := []struct {
		lit  string
		bits uint
		want int64
		kind errors.Kind
	}{
		{"127", 8, 127, ""},
		{"-128", 8, -128, ""},
		{"128", 8, 0, errors.KindOverflow},
		{"-129", 8, 0, errors.KindOverflow},
		{"-32768", 16, -32768, ""},
		{"2147483647", 32, math.MaxInt32, ""},
		{"-2147483649", 32, 0, errors.KindOverflow},
		{"-9223372036854775808", 64, math.MinInt64, ""},
		{"9223372036854775808", 64, 0, errors.KindOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			got, err := ParseSint(tt.lit, tt.bits)
			if tt.kind != "" {
				if !errors.IsKind(err, tt.kind) {
					t.Errorf("ParseSint(%q, %d) err = %v, want %s", tt.lit, tt.bits, err, tt.kind)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSint(%q, %d): %v", tt.lit, tt.bits, err)
			}
			if got != tt.want {
				t.Errorf("ParseSint(%q, %d) = %d, want %d", tt.lit, tt.bits, got, tt.want)
			}
		})
	}
}

func TestParseNat(t *testing.T) {
	if _, err := ParseNat("-1"); !errors.IsKind(err, errors.KindSign) {
		t.Errorf("ParseNat(-1) err = %v, want sign_error", err)
	}
	x, err := ParseNat("99999999999999999999")
	if err != nil || x.String() != "99999999999999999999" {
		t.Errorf("ParseNat = %v, %v", x, err)
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		lit  string
		bits int
		want float64
	}{
		{"1.0", 64, 1.0},
		{"-2.5", 64, -2.5},
		{"1e3", 64, 1000},
		{"1_000.5", 64, 1000.5},
		{"42", 32, 42},
		{"0x10", 64, 16},
		{"inf", 64, math.Inf(1)},
		{"-inf", 32, math.Inf(-1)},
		{"1e-400", 64, 0},
	}

	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			got, err := ParseFloat(tt.lit, tt.bits)
			if err != nil {
				t.Fatalf("ParseFloat(%q): %v", tt.lit, err)
			}
			if got != tt.want {
				t.Errorf("ParseFloat(%q) = %v, want %v", tt.lit, got, tt.want)
			}
		})
	}

	nan, err := ParseFloat("nan", 64)
	if err != nil || !math.IsNaN(nan) {
		t.Errorf("ParseFloat(nan) = %v, %v", nan, err)
	}
	if _, err := ParseFloat("1e39", 32); !errors.IsKind(err, errors.KindOverflow) {
		t.Errorf("ParseFloat(1e39, 32) err = %v, want overflow", err)
	}
	if _, err := ParseFloat("1e309", 64); !errors.IsKind(err, errors.KindOverflow) {
		t.Errorf("ParseFloat(1e309, 64) err = %v, want overflow", err)
	}
	if _, err := ParseFloat("1.2.3", 64); !errors.IsKind(err, errors.KindInvalidArgument) {
		t.Errorf("ParseFloat(1.2.3) err = %v, want invalid_argument", err)
	}
}

func TestIsIntegral(t *testing.T) {
	for _, lit := range []string{"1", "-1", "1_000", "0xff", "+3"} {
		if !IsIntegral(lit) {
			t.Errorf("IsIntegral(%q) = false", lit)
		}
	}
	for _, lit := range []string{"1.0", "1e5", "nan", "", "-"} {
		if IsIntegral(lit) {
			t.Errorf("IsIntegral(%q) = true", lit)
		}
	}
}
