// Package rfc1035 implements the uncompressed domain name encoding of RFC 1035
// Section 3.1, as required by the DHCPv6 options of RFC 3646.
package rfc1035

import (
	"fmt"
	"strings"

	"github.com/AdguardTeam/dhcp6wire/internal/wire"
	"github.com/AdguardTeam/golibs/errors"
)

const (
	// MaxLabelLen is the maximum length of a single label.
	MaxLabelLen = 63

	// MaxNameLen is the maximum length of a name in its wire form, including
	// the length octets and the terminating zero.
	MaxNameLen = 255
)

// pointerMask selects the two top bits of a length octet which are set in
// compression pointers.
const pointerMask = 0xC0

// WireLen returns the length of name in its wire form.  name is expected in
// the dotted form, with an optional trailing dot, the empty string and "."
// being the root.  It returns an error wrapping [wire.ErrInvalidValue] if name
// can't be encoded.
func WireLen(name string) (n int, err error) {
	labels, err := split(name)
	if err != nil {
		return 0, err
	}

	return wireLen(labels), nil
}

// wireLen returns the wire length of the name made of labels.
func wireLen(labels []string) (n int) {
	// The terminating zero.
	n = 1
	for _, l := range labels {
		n += 1 + len(l)
	}

	return n
}

// split validates name and splits it into labels.
func split(name string) (labels []string, err error) {
	defer func() { err = errors.Annotate(err, "domain name %q: %w", name) }()

	name = strings.TrimSuffix(name, ".")
	if name == "" {
		return nil, nil
	}

	labels = strings.Split(name, ".")
	for i, l := range labels {
		switch {
		case l == "":
			return nil, fmt.Errorf("label at index %d is empty: %w", i, wire.ErrInvalidValue)
		case len(l) > MaxLabelLen:
			return nil, fmt.Errorf(
				"label at index %d: length %d exceeds %d: %w",
				i,
				len(l),
				MaxLabelLen,
				wire.ErrInvalidValue,
			)
		}
	}

	if n := wireLen(labels); n > MaxNameLen {
		return nil, fmt.Errorf("wire length %d exceeds %d: %w", n, MaxNameLen, wire.ErrInvalidValue)
	}

	return labels, nil
}

// WriteName appends the wire form of name to w.
func WriteName(w *wire.Writer, name string) (err error) {
	labels, err := split(name)
	if err != nil {
		// Don't wrap the error since it's informative enough as is.
		return err
	}

	for _, l := range labels {
		w.Uint8(uint8(len(l)))
		w.Bytes([]byte(l))
	}

	w.Uint8(0)

	return nil
}

// WriteNames appends the wire forms of names to w one after another.
func WriteNames(w *wire.Writer, names []string) (err error) {
	for i, name := range names {
		err = WriteName(w, name)
		if err != nil {
			return fmt.Errorf("name at index %d: %w", i, err)
		}
	}

	return nil
}

// ReadName reads a single name from r and returns it in the dotted form
// without the trailing dot.  The root name is returned as an empty string.
func ReadName(r *wire.Reader) (name string, err error) {
	start := r.Offset()

	var labels []string
	n := 1
	for {
		off := r.Offset()

		var l uint8
		l, err = r.Uint8()
		if err != nil {
			return "", fmt.Errorf("reading label length: %w", err)
		}

		switch {
		case l == 0:
			return strings.Join(labels, "."), nil
		case l&pointerMask == pointerMask:
			return "", &wire.OffsetError{
				Err:    fmt.Errorf("compression pointer %#02x: %w", l, wire.ErrInvalidValue),
				Offset: off,
			}
		case l > MaxLabelLen:
			return "", &wire.OffsetError{
				Err:    fmt.Errorf("label length %d exceeds %d: %w", l, MaxLabelLen, wire.ErrInvalidValue),
				Offset: off,
			}
		}

		n += 1 + int(l)
		if n > MaxNameLen {
			return "", &wire.OffsetError{
				Err:    fmt.Errorf("name length exceeds %d: %w", MaxNameLen, wire.ErrInvalidValue),
				Offset: start,
			}
		}

		var b []byte
		b, err = r.Bytes(int(l))
		if err != nil {
			return "", fmt.Errorf("reading label: %w", err)
		}

		label := string(b)
		if strings.Contains(label, ".") {
			return "", &wire.OffsetError{
				Err:    fmt.Errorf("label %q contains a dot: %w", label, wire.ErrInvalidValue),
				Offset: off,
			}
		}

		labels = append(labels, label)
	}
}

// ReadNames reads names from r until it is exhausted.
func ReadNames(r *wire.Reader) (names []string, err error) {
	for r.Len() > 0 {
		var name string
		name, err = ReadName(r)
		if err != nil {
			return nil, fmt.Errorf("name at index %d: %w", len(names), err)
		}

		names = append(names, name)
	}

	return names, nil
}
