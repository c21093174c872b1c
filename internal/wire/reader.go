// Package wire contains bounds-checked big-endian cursors over DHCPv6 wire
// data.
package wire

import (
	"fmt"
	"net/netip"

	"github.com/u-root/uio/uio"
)

// IPv6Len is the length of an IPv6 address on the wire.
const IPv6Len = 16

// Reader is a read cursor over an immutable byte slice.  All methods fail with
// an *OffsetError wrapping [ErrTruncated] when fewer bytes remain than
// required, in which case the position is not advanced.
type Reader struct {
	// lex is the underlying big-endian lexer.  It is never allowed to fail,
	// since all reads are checked beforehand.
	lex *uio.Lexer

	// base is the absolute offset of the first byte of the view.
	base int

	// size is the total length of the view.
	size int
}

// NewReader returns a new reader over b.  b must not be modified while the
// reader or any of its sub-readers are in use.
func NewReader(b []byte) (r *Reader) {
	return newReader(b, 0)
}

// newReader returns a new reader over b which starts at the absolute offset
// base.
func newReader(b []byte, base int) (r *Reader) {
	return &Reader{
		lex:  uio.NewBigEndianBuffer(b),
		base: base,
		size: len(b),
	}
}

// Len returns the number of bytes remaining in the view.
func (r *Reader) Len() (n int) {
	return r.lex.Len()
}

// Offset returns the absolute offset of the next byte to read.
func (r *Reader) Offset() (off int) {
	return r.base + r.size - r.lex.Len()
}

// errorf returns an *OffsetError for the current position.
func (r *Reader) errorf(format string, args ...any) (err error) {
	return &OffsetError{
		Err:    fmt.Errorf(format, args...),
		Offset: r.Offset(),
	}
}

// need returns an error if fewer than n bytes remain.
func (r *Reader) need(n int) (err error) {
	if r.lex.Has(n) {
		return nil
	}

	return r.errorf("need %d bytes, have %d: %w", n, r.lex.Len(), ErrTruncated)
}

// Uint8 reads a single byte.
func (r *Reader) Uint8() (v uint8, err error) {
	if err = r.need(1); err != nil {
		return 0, err
	}

	return r.lex.Read8(), nil
}

// Uint16 reads a big-endian 16-bit unsigned integer.
func (r *Reader) Uint16() (v uint16, err error) {
	if err = r.need(2); err != nil {
		return 0, err
	}

	return r.lex.Read16(), nil
}

// Uint24 reads a big-endian 24-bit unsigned integer.
func (r *Reader) Uint24() (v uint32, err error) {
	if err = r.need(3); err != nil {
		return 0, err
	}

	b := r.lex.Consume(3)

	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}

// Uint32 reads a big-endian 32-bit unsigned integer.
func (r *Reader) Uint32() (v uint32, err error) {
	if err = r.need(4); err != nil {
		return 0, err
	}

	return r.lex.Read32(), nil
}

// Bytes returns a copy of the next n bytes.  It returns nil if n is zero.
func (r *Reader) Bytes(n int) (b []byte, err error) {
	if err = r.need(n); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, nil
	}

	b = make([]byte, n)
	r.lex.ReadBytes(b)

	return b, nil
}

// Rest returns a copy of all the remaining bytes.  It returns nil if there
// are none.
func (r *Reader) Rest() (b []byte) {
	// Can't fail, since exactly the remaining length is requested.
	b, _ = r.Bytes(r.lex.Len())

	return b
}

// Addr reads a 16-byte IPv6 address.
func (r *Reader) Addr() (ip netip.Addr, err error) {
	if err = r.need(IPv6Len); err != nil {
		return netip.Addr{}, err
	}

	var a [IPv6Len]byte
	r.lex.ReadBytes(a[:])

	return netip.AddrFrom16(a), nil
}

// Sub carves out the next n bytes as a separate reader without copying and
// advances r past them.  It fails with an *OffsetError wrapping
// [ErrLengthMismatch] if n exceeds the remaining length.
func (r *Reader) Sub(n int) (sub *Reader, err error) {
	if !r.lex.Has(n) {
		return nil, r.errorf("declared length %d exceeds remaining %d: %w", n, r.lex.Len(), ErrLengthMismatch)
	}

	off := r.Offset()

	return newReader(r.lex.Consume(n), off), nil
}

// Finish returns an *OffsetError wrapping [ErrLengthMismatch] if any bytes
// remain unread.
func (r *Reader) Finish() (err error) {
	if n := r.lex.Len(); n != 0 {
		return r.errorf("%d trailing bytes: %w", n, ErrLengthMismatch)
	}

	return nil
}
