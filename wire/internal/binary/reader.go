package binary

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	"github.com/wippyai/candid/leb128"
)

// Reader reads Candid wire primitives from a byte slice, tracking the
// position for error messages.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes reads exactly n bytes. The result aliases the input.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, io.ErrUnexpectedEOF
	}
	b := r.data[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadUleb32 reads an unsigned LEB128 value that must fit 32 bits.
func (r *Reader) ReadUleb32() (uint32, error) {
	return leb128.ReadUint32(r)
}

// ReadUleb64 reads an unsigned LEB128 value that must fit 64 bits.
func (r *Reader) ReadUleb64() (uint64, error) {
	return leb128.ReadUint64(r)
}

// ReadSleb64 reads a signed LEB128 value that must fit 64 bits.
func (r *Reader) ReadSleb64() (int64, error) {
	return leb128.ReadInt64(r)
}

// ReadBigNat reads an unsigned LEB128 value of any width.
func (r *Reader) ReadBigNat() (*big.Int, error) {
	return leb128.ReadBigUint(r, 0)
}

// ReadBigInt reads a signed LEB128 value of any width.
func (r *Reader) ReadBigInt() (*big.Int, error) {
	return leb128.ReadBigInt(r, 0)
}

// ReadU16LE reads a little-endian uint16.
func (r *Reader) ReadU16LE() (uint16, error) {
	buf, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// ReadU32LE reads a little-endian uint32.
func (r *Reader) ReadU32LE() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// ReadU64LE reads a little-endian uint64.
func (r *Reader) ReadU64LE() (uint64, error) {
	buf, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

// ReadBlob reads a ULEB128 length followed by that many bytes. A length
// past the end of the input fails with io.ErrUnexpectedEOF.
func (r *Reader) ReadBlob() ([]byte, error) {
	n, err := r.ReadUleb64()
	if err != nil {
		return nil, err
	}
	if n > uint64(r.Remaining()) {
		return nil, fmt.Errorf("%w: %d bytes declared, %d left", io.ErrUnexpectedEOF, n, r.Remaining())
	}
	return r.ReadBytes(int(n))
}
