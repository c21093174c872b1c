package wire

import (
	"fmt"

	"github.com/AdguardTeam/golibs/errors"
)

const (
	// ErrTruncated is returned when fewer bytes remain than a fixed-size field
	// requires.
	ErrTruncated errors.Error = "truncated"

	// ErrLengthMismatch is returned when a declared length exceeds the bytes
	// actually available or when a bounded window isn't consumed exactly.
	ErrLengthMismatch errors.Error = "length mismatch"

	// ErrInvalidValue is returned when a value violates a domain constraint.
	ErrInvalidValue errors.Error = "invalid value"
)

// OffsetError is an error that happened at a particular absolute position of
// the buffer being decoded.
type OffsetError struct {
	// Err is the underlying error.  It wraps one of the sentinel errors of
	// this package.
	Err error

	// Offset is the absolute offset from the beginning of the outermost
	// buffer.
	Offset int
}

// type check
var _ error = (*OffsetError)(nil)

// Error implements the error interface for *OffsetError.
func (err *OffsetError) Error() (msg string) {
	return fmt.Sprintf("at offset %d: %s", err.Offset, err.Err)
}

// type check
var _ errors.Wrapper = (*OffsetError)(nil)

// Unwrap implements the [errors.Wrapper] interface for *OffsetError.
func (err *OffsetError) Unwrap() (unwrapped error) {
	return err.Err
}
