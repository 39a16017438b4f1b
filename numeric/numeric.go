// Package numeric parses Candid numeric literals and performs range-checked
// conversions to the fixed-width and arbitrary-precision number types.
//
// Literals are decimal or 0x-prefixed hexadecimal with an optional sign.
// Underscores may separate digit groups and are stripped before parsing.
// Float literals additionally accept a fraction, an exponent, nan and inf.
package numeric

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/wippyai/candid/errors"
)

// Normalize strips digit separators and a leading plus sign.
func Normalize(lit string) string {
	s := strings.ReplaceAll(lit, "_", "")
	return strings.TrimPrefix(s, "+")
}

// IsIntegral reports whether lit is written as an integer, i.e. has no
// fraction, exponent or special float name.
func IsIntegral(lit string) bool {
	return integral(strings.TrimPrefix(Normalize(lit), "-"))
}

// integral reports whether s is an unsigned decimal or hex digit string.
func integral(s string) bool {
	if hasHexPrefix(s) {
		s = s[2:]
		if s == "" {
			return false
		}
		for i := 0; i < len(s); i++ {
			c := s[i]
			if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
				return false
			}
		}
		return true
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseInt parses an integer literal of any size.
func ParseInt(lit string) (*big.Int, error) {
	s := Normalize(lit)
	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")

	if !integral(digits) {
		if _, err := strconv.ParseFloat(digits, 64); err == nil || isFloatName(digits) {
			return nil, errors.New(errors.PhaseNumeric, errors.KindInvalidArgument).
				Value(lit).Want("integer").Detail("%q is not an integer literal", lit).Build()
		}
		return nil, malformed(lit)
	}

	x := new(big.Int)
	var ok bool
	if hasHexPrefix(digits) {
		_, ok = x.SetString(digits[2:], 16)
	} else {
		_, ok = x.SetString(digits, 10)
	}
	if !ok {
		return nil, malformed(lit)
	}
	if neg {
		x.Neg(x)
	}
	return x, nil
}

// ParseNat parses a non-negative integer literal of any size.
func ParseNat(lit string) (*big.Int, error) {
	x, err := ParseInt(lit)
	if err != nil {
		return nil, err
	}
	if x.Sign() < 0 {
		return nil, errors.Sign(errors.PhaseNumeric, nil, lit, "nat")
	}
	return x, nil
}

// ParseUint parses lit into an unsigned integer of the given width.
func ParseUint(lit string, bits uint) (uint64, error) {
	x, err := ParseInt(lit)
	if err != nil {
		return 0, err
	}
	if err := CheckUint(x, bits); err != nil {
		return 0, err
	}
	return x.Uint64(), nil
}

// ParseSint parses lit into a signed integer of the given width.
func ParseSint(lit string, bits uint) (int64, error) {
	x, err := ParseInt(lit)
	if err != nil {
		return 0, err
	}
	if err := CheckSint(x, bits); err != nil {
		return 0, err
	}
	return x.Int64(), nil
}

// CheckUint verifies that x fits an unsigned integer of the given width.
// A width of 0 means nat, which only rejects negative values.
func CheckUint(x *big.Int, bits uint) error {
	target := widthName("nat", bits)
	if x.Sign() < 0 {
		return errors.Sign(errors.PhaseNumeric, nil, x.String(), target)
	}
	if bits > 0 && x.BitLen() > int(bits) {
		return errors.Overflow(errors.PhaseNumeric, nil, x.String(), target)
	}
	return nil
}

// CheckSint verifies that x fits a signed integer of the given width.
// A width of 0 means int and always succeeds.
func CheckSint(x *big.Int, bits uint) error {
	if bits == 0 {
		return nil
	}
	limit := new(big.Int).Lsh(big.NewInt(1), bits-1)
	low := new(big.Int).Neg(limit)
	high := limit.Sub(limit, big.NewInt(1))
	if x.Cmp(low) < 0 || x.Cmp(high) > 0 {
		return errors.Overflow(errors.PhaseNumeric, nil, x.String(), widthName("int", bits))
	}
	return nil
}

// ParseFloat parses lit as a float of the given width (32 or 64). Finite
// literals whose magnitude exceeds the width fail with an overflow error.
func ParseFloat(lit string, bits int) (float64, error) {
	s := Normalize(lit)
	target := widthName("float", uint(bits))

	if IsIntegral(s) && hasHexPrefix(strings.TrimPrefix(s, "-")) {
		x, err := ParseInt(s)
		if err != nil {
			return 0, err
		}
		f, _ := new(big.Float).SetInt(x).Float64()
		if bits == 32 && math.Abs(f) > math.MaxFloat32 {
			return 0, errors.Overflow(errors.PhaseNumeric, nil, lit, target)
		}
		return f, nil
	}

	f, err := strconv.ParseFloat(s, bits)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			if math.IsInf(f, 0) {
				return 0, errors.Overflow(errors.PhaseNumeric, nil, lit, target)
			}
			// underflow rounds toward zero
			return f, nil
		}
		return 0, malformed(lit)
	}
	return f, nil
}

func isFloatName(s string) bool {
	switch strings.ToLower(s) {
	case "nan", "inf", "infinity":
		return true
	}
	return false
}

func hasHexPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func widthName(base string, bits uint) string {
	if bits == 0 {
		return base
	}
	return fmt.Sprintf("%s%d", base, bits)
}

func malformed(lit string) error {
	return errors.New(errors.PhaseNumeric, errors.KindInvalidArgument).
		Value(lit).Detail("malformed numeric literal %q", lit).Build()
}
