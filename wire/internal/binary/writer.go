package binary

import (
	"bytes"
	"encoding/binary"
	"math/big"

	"github.com/wippyai/candid/leb128"
)

// Writer accumulates Candid wire output.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{buf: &bytes.Buffer{}}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// WriteUleb writes an unsigned LEB128 value.
func (w *Writer) WriteUleb(v uint64) {
	leb128.WriteUint64(w.buf, v)
}

// WriteSleb writes a signed LEB128 value.
func (w *Writer) WriteSleb(v int64) {
	leb128.WriteInt64(w.buf, v)
}

// WriteBigNat writes a non-negative big integer as unsigned LEB128.
func (w *Writer) WriteBigNat(v *big.Int) {
	leb128.WriteBigUint(w.buf, v)
}

// WriteBigInt writes a big integer as signed LEB128.
func (w *Writer) WriteBigInt(v *big.Int) {
	leb128.WriteBigInt(w.buf, v)
}

// WriteU16LE writes a little-endian uint16.
func (w *Writer) WriteU16LE(v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	w.buf.Write(buf[:])
}

// WriteU32LE writes a little-endian uint32.
func (w *Writer) WriteU32LE(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.buf.Write(buf[:])
}

// WriteU64LE writes a little-endian uint64.
func (w *Writer) WriteU64LE(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	w.buf.Write(buf[:])
}

// WriteBlob writes a ULEB128 length followed by data.
func (w *Writer) WriteBlob(data []byte) {
	w.WriteUleb(uint64(len(data)))
	w.buf.Write(data)
}
