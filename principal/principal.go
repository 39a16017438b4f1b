// Package principal implements Candid principals: opaque identifiers of at most
// 29 bytes with a checksummed, dash-grouped base32 text form.
package principal

import (
	"crypto/sha256"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"strings"

	"github.com/wippyai/candid/errors"
)

// MaxLength is the longest principal accepted, in bytes.
const MaxLength = 29

// Tag bytes appended to derived principal ids.
const (
	tagSelfAuthenticating byte = 0x02
	tagAnonymous          byte = 0x04
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Principal is an immutable byte string. The zero value is the management
// principal. Principals are comparable with ==.
type Principal struct {
	raw string
}

// Management returns the management principal (empty byte string).
func Management() Principal {
	return Principal{}
}

// Anonymous returns the anonymous principal, the single byte 0x04.
func Anonymous() Principal {
	return Principal{raw: string([]byte{tagAnonymous})}
}

// SelfAuthenticating derives the principal of a DER-encoded public key:
// SHA-224 of the key followed by the tag byte 0x02.
func SelfAuthenticating(publicKey []byte) Principal {
	sum := sha256.Sum224(publicKey)
	b := make([]byte, 0, len(sum)+1)
	b = append(b, sum[:]...)
	b = append(b, tagSelfAuthenticating)
	return Principal{raw: string(b)}
}

// FromBytes copies b into a principal.
func FromBytes(b []byte) (Principal, error) {
	if len(b) > MaxLength {
		return Principal{}, errors.New(errors.PhasePrincipal, errors.KindInvalidArgument).
			Value(len(b)).
			Detail("principal is %d bytes, at most %d allowed", len(b), MaxLength).
			Build()
	}
	return Principal{raw: string(b)}, nil
}

// MustFromBytes is FromBytes that panics on error. Intended for constants.
func MustFromBytes(b []byte) Principal {
	p, err := FromBytes(b)
	if err != nil {
		panic(err)
	}
	return p
}

// FromText parses the textual form. Input is case-insensitive but must
// otherwise be the exact canonical encoding, including dash placement.
func FromText(s string) (Principal, error) {
	lower := strings.ToLower(s)
	compact := strings.ReplaceAll(lower, "-", "")
	data, err := encoding.DecodeString(strings.ToUpper(compact))
	if err != nil {
		return Principal{}, errors.New(errors.PhasePrincipal, errors.KindInvalidArgument).
			Value(s).Cause(err).Detail("invalid principal text %q", s).Build()
	}
	if len(data) < 4 {
		return Principal{}, errors.New(errors.PhasePrincipal, errors.KindInvalidArgument).
			Value(s).Detail("principal text %q is too short", s).Build()
	}

	p, err := FromBytes(data[4:])
	if err != nil {
		return Principal{}, err
	}
	if want := binary.BigEndian.Uint32(data[:4]); crc32.ChecksumIEEE(data[4:]) != want {
		return Principal{}, errors.New(errors.PhasePrincipal, errors.KindInvalidArgument).
			Value(s).Detail("principal text %q has a bad checksum", s).Build()
	}
	if canonical := p.String(); canonical != lower {
		return Principal{}, errors.New(errors.PhasePrincipal, errors.KindInvalidArgument).
			Value(s).Detail("principal text %q is not canonical, expected %q", s, canonical).Build()
	}
	return p, nil
}

// MustFromText is FromText that panics on error. Intended for constants.
func MustFromText(s string) Principal {
	p, err := FromText(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Bytes returns a copy of the raw bytes.
func (p Principal) Bytes() []byte {
	return []byte(p.raw)
}

// Len returns the byte length.
func (p Principal) Len() int {
	return len(p.raw)
}

// IsAnonymous reports whether p is the anonymous principal.
func (p Principal) IsAnonymous() bool {
	return p.raw == string([]byte{tagAnonymous})
}

// IsManagement reports whether p is the management principal.
func (p Principal) IsManagement() bool {
	return p.raw == ""
}

// IsSelfAuthenticating reports whether p was derived from a public key.
func (p Principal) IsSelfAuthenticating() bool {
	return len(p.raw) == sha256.Size224+1 && p.raw[len(p.raw)-1] == tagSelfAuthenticating
}

// Equal reports byte-wise equality.
func (p Principal) Equal(other Principal) bool {
	return p.raw == other.raw
}

// Compare orders principals by their bytes.
func (p Principal) Compare(other Principal) int {
	return strings.Compare(p.raw, other.raw)
}

// String returns the canonical text form, e.g. "2vxsx-fae".
func (p Principal) String() string {
	buf := make([]byte, 4+len(p.raw))
	binary.BigEndian.PutUint32(buf, crc32.ChecksumIEEE([]byte(p.raw)))
	copy(buf[4:], p.raw)
	enc := strings.ToLower(encoding.EncodeToString(buf))

	var b strings.Builder
	b.Grow(len(enc) + len(enc)/5)
	for i := 0; i < len(enc); i += 5 {
		if i > 0 {
			b.WriteByte('-')
		}
		b.WriteString(enc[i:min(i+5, len(enc))])
	}
	return b.String()
}

// GoString shows the text form in %#v output.
func (p Principal) GoString() string {
	return fmt.Sprintf("principal.MustFromText(%q)", p.String())
}

// MarshalText implements encoding.TextMarshaler.
func (p Principal) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Principal) UnmarshalText(text []byte) error {
	parsed, err := FromText(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
