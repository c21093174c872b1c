package wire

import (
	"encoding/binary"
	"fmt"
	"math"
	"net/netip"

	"github.com/u-root/uio/uio"
)

// Writer appends big-endian values to a growable buffer.
type Writer struct {
	buf *uio.Lexer
}

// NewWriter returns a new empty writer.
func NewWriter() (w *Writer) {
	return &Writer{
		buf: uio.NewBigEndianBuffer(nil),
	}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() (n int) {
	return w.buf.Len()
}

// Data returns the bytes written so far.  The returned slice is valid until
// the next write.
func (w *Writer) Data() (b []byte) {
	return w.buf.Data()
}

// Uint8 appends a single byte.
func (w *Writer) Uint8(v uint8) {
	w.buf.Write8(v)
}

// Uint16 appends a big-endian 16-bit unsigned integer.
func (w *Writer) Uint16(v uint16) {
	w.buf.Write16(v)
}

// Uint24 appends the lower 24 bits of v in big-endian order.
func (w *Writer) Uint24(v uint32) {
	w.buf.WriteBytes([]byte{byte(v >> 16), byte(v >> 8), byte(v)})
}

// Uint32 appends a big-endian 32-bit unsigned integer.
func (w *Writer) Uint32(v uint32) {
	w.buf.Write32(v)
}

// Bytes appends b as is.
func (w *Writer) Bytes(b []byte) {
	w.buf.WriteBytes(b)
}

// Addr appends ip as 16 bytes.  ip must be a valid IPv6 address, IPv4 and
// IPv4-mapped forms are written in their 16-byte form.
func (w *Writer) Addr(ip netip.Addr) {
	a := ip.As16()
	w.buf.WriteBytes(a[:])
}

// LengthMark is the position of a reserved 16-bit length field.
type LengthMark int

// Reserve16 appends a zero 16-bit placeholder and returns its position for a
// later [Writer.Patch16].
func (w *Writer) Reserve16() (m LengthMark) {
	m = LengthMark(w.buf.Len())
	w.buf.Write16(0)

	return m
}

// Patch16 sets the placeholder at m to the number of bytes written after it.
// It returns an *OffsetError wrapping [ErrInvalidValue] if that number doesn't
// fit into 16 bits.
func (w *Writer) Patch16(m LengthMark) (err error) {
	start := int(m) + 2
	n := w.buf.Len() - start
	if n > math.MaxUint16 {
		return &OffsetError{
			Err:    fmt.Errorf("length %d exceeds %d: %w", n, math.MaxUint16, ErrInvalidValue),
			Offset: int(m),
		}
	}

	binary.BigEndian.PutUint16(w.buf.Data()[m:], uint16(n))

	return nil
}
