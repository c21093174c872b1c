// Package dhcpv6 implements the DHCPv6 message format of RFC 3315 together
// with the prefix delegation options of RFC 3633 and the DNS configuration
// options of RFC 3646.
//
// The package doesn't perform any network I/O and doesn't track any protocol
// state.  It only converts between the wire form and [Message] values.
package dhcpv6

import (
	"github.com/AdguardTeam/dhcp6wire/internal/wire"
)

// Error kinds returned by the decoding and encoding functions of this package.
// Use errors.Is to check for them.
const (
	// ErrTruncated is returned when fewer bytes remain than a fixed-size
	// field requires.
	ErrTruncated = wire.ErrTruncated

	// ErrLengthMismatch is returned when a declared option length exceeds the
	// available data or when the data of an option isn't consumed exactly.
	ErrLengthMismatch = wire.ErrLengthMismatch

	// ErrInvalidValue is returned when a value violates a constraint of the
	// protocol, for example a compression pointer in a domain name.
	ErrInvalidValue = wire.ErrInvalidValue
)

// Infinity is the lifetime and timer value meaning "forever" as defined by
// RFC 3315 Section 5.6.
const Infinity uint32 = 0xFFFF_FFFF
