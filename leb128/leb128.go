// Package leb128 implements the LEB128 variable-length integer encodings used by
// the Candid wire format: unsigned (ULEB128) for lengths, indexes, hashes and nat,
// signed (SLEB128) for type opcodes and int.
package leb128

import (
	"bytes"
	"errors"
	"io"
	"math/big"
)

// ErrOverflow is returned when a LEB128 value exceeds the maximum bit width.
var ErrOverflow = errors.New("leb128: overflow")

// ReadUint32 reads an unsigned LEB128 value that must fit 32 bits
func ReadUint32(r io.ByteReader) (uint32, error) {
	v, err := readUnsigned(r, 32)
	return uint32(v), err
}

// ReadUint64 reads an unsigned LEB128 value that must fit 64 bits
func ReadUint64(r io.ByteReader) (uint64, error) {
	return readUnsigned(r, 64)
}

func readUnsigned(r io.ByteReader, bits uint) (uint64, error) {
	var result uint64
	var shift uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if shift >= bits {
			return 0, ErrOverflow
		}
		low := uint64(b & 0x7f)
		if bits-shift < 7 && low>>(bits-shift) != 0 {
			return 0, ErrOverflow
		}
		result |= low << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}

// ReadInt32 reads a signed LEB128 value that must fit 32 bits
func ReadInt32(r io.ByteReader) (int32, error) {
	v, err := readSigned(r, 32)
	return int32(v), err
}

// ReadInt64 reads a signed LEB128 value that must fit 64 bits
func ReadInt64(r io.ByteReader) (int64, error) {
	return readSigned(r, 64)
}

func readSigned(r io.ByteReader, bits uint) (int64, error) {
	x, err := ReadBigInt(r, int((bits+6)/7*7))
	if err != nil {
		return 0, err
	}
	if x.BitLen() >= int(bits) {
		// only the single most negative value has bitlen == bits
		min := new(big.Int).Lsh(big.NewInt(-1), bits-1)
		if x.Cmp(min) != 0 {
			return 0, ErrOverflow
		}
	}
	return x.Int64(), nil
}

// WriteUint64 writes an unsigned LEB128 value
func WriteUint64(w *bytes.Buffer, v uint64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.WriteByte(b)
		if v == 0 {
			break
		}
	}
}

// WriteInt64 writes a signed LEB128 value
func WriteInt64(w *bytes.Buffer, v int64) {
	more := true
	for more {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			more = false
		} else {
			b |= 0x80
		}
		w.WriteByte(b)
	}
}

// ReadBigUint reads an unsigned LEB128 value of any length. maxBits limits the
// accepted payload width; zero means unlimited.
func ReadBigUint(r io.ByteReader, maxBits int) (*big.Int, error) {
	le, _, _, err := readGroups(r, maxBits)
	if err != nil {
		return nil, err
	}
	result := fromLittleEndian(le)
	if maxBits > 0 && result.BitLen() > maxBits {
		return nil, ErrOverflow
	}
	return result, nil
}

// ReadBigInt reads a signed LEB128 value of any length. maxBits limits the
// number of payload bits read; zero means unlimited.
func ReadBigInt(r io.ByteReader, maxBits int) (*big.Int, error) {
	le, shift, last, err := readGroups(r, maxBits)
	if err != nil {
		return nil, err
	}
	result := fromLittleEndian(le)
	// Sign extend
	if last&0x40 != 0 {
		result.Sub(result, new(big.Int).Lsh(big.NewInt(1), shift))
	}
	return result, nil
}

// readGroups packs the 7-bit groups of a LEB128 value into little-endian
// bytes. It returns the number of payload bits and the final byte.
func readGroups(r io.ByteReader, maxBits int) (le []byte, shift uint, last byte, err error) {
	var acc uint
	var pending uint
	for {
		last, err = r.ReadByte()
		if err != nil {
			return nil, 0, 0, err
		}
		acc |= uint(last&0x7f) << pending
		pending += 7
		shift += 7
		for pending >= 8 {
			le = append(le, byte(acc))
			acc >>= 8
			pending -= 8
		}
		if last&0x80 == 0 {
			break
		}
		if maxBits > 0 && int(shift) >= maxBits {
			return nil, 0, 0, ErrOverflow
		}
	}
	if pending > 0 {
		le = append(le, byte(acc))
	}
	return le, shift, last, nil
}

func fromLittleEndian(le []byte) *big.Int {
	be := make([]byte, len(le))
	for i, b := range le {
		be[len(le)-1-i] = b
	}
	return new(big.Int).SetBytes(be)
}

// WriteBigUint writes a non-negative big integer as unsigned LEB128.
func WriteBigUint(w *bytes.Buffer, v *big.Int) {
	if v.IsUint64() {
		WriteUint64(w, v.Uint64())
		return
	}
	writeGroups(w, littleEndian(v), (v.BitLen()+6)/7)
}

// WriteBigInt writes a big integer as signed LEB128.
func WriteBigInt(w *bytes.Buffer, v *big.Int) {
	if v.IsInt64() {
		WriteInt64(w, v.Int64())
		return
	}
	if v.Sign() >= 0 {
		// one more bit for the sign
		writeGroups(w, littleEndian(v), (v.BitLen()+7)/7)
		return
	}
	// two's complement in exactly n groups: v + 2^(7n)
	mag := new(big.Int).Not(v)
	n := (mag.BitLen() + 7) / 7
	u := new(big.Int).Lsh(big.NewInt(1), uint(7*n))
	u.Add(u, v)
	writeGroups(w, littleEndian(u), n)
}

func littleEndian(v *big.Int) []byte {
	le := v.Bytes()
	for i, j := 0, len(le)-1; i < j; i, j = i+1, j-1 {
		le[i], le[j] = le[j], le[i]
	}
	return le
}

// writeGroups writes n 7-bit groups taken from little-endian bytes.
func writeGroups(w *bytes.Buffer, le []byte, n int) {
	for i := range n {
		bit := 7 * i
		idx, off := bit/8, uint(bit%8)
		var word uint16
		if idx < len(le) {
			word = uint16(le[idx])
		}
		if idx+1 < len(le) {
			word |= uint16(le[idx+1]) << 8
		}
		b := byte(word>>off) & 0x7f
		if i < n-1 {
			b |= 0x80
		}
		w.WriteByte(b)
	}
}

// EncodeUint64 encodes an unsigned LEB128 value to bytes.
func EncodeUint64(v uint64) []byte {
	var buf bytes.Buffer
	WriteUint64(&buf, v)
	return buf.Bytes()
}

// EncodeInt64 encodes a signed LEB128 value to bytes.
func EncodeInt64(v int64) []byte {
	var buf bytes.Buffer
	WriteInt64(&buf, v)
	return buf.Bytes()
}
