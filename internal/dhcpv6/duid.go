package dhcpv6

import (
	"encoding/hex"
	"fmt"
	"net"

	"github.com/AdguardTeam/dhcp6wire/internal/wire"
	"github.com/AdguardTeam/golibs/errors"
)

// DUIDType is the type code of a DHCP Unique Identifier.
type DUIDType uint16

// DUID types defined by RFC 3315 Section 9.1.
const (
	DUIDTypeLLT DUIDType = 1
	DUIDTypeEN  DUIDType = 2
	DUIDTypeLL  DUIDType = 3
)

// DUID is a DHCP Unique Identifier as defined by RFC 3315 Section 9.  The set
// of implementations is closed, with [DUIDUnknown] standing for all the types
// this package doesn't interpret.
type DUID interface {
	fmt.Stringer

	// Type returns the type code of the DUID.
	Type() (t DUIDType)

	// marshal appends the wire form of the DUID, including the type code, to
	// w.
	marshal(w *wire.Writer) (err error)
}

// DUIDLLT is a DUID based on a link-layer address plus time.
type DUIDLLT struct {
	// LinkLayerAddr is the link-layer address of the interface.
	LinkLayerAddr []byte

	// Time is the time the DUID was generated at in seconds since midnight
	// of January 1st, 2000 UTC, modulo 2^32.
	Time uint32

	// HWType is the IANA hardware type of the interface.
	HWType uint16
}

// type check
var _ DUID = DUIDLLT{}

// Type implements the [DUID] interface for DUIDLLT.
func (DUIDLLT) Type() (t DUIDType) { return DUIDTypeLLT }

// String implements the [DUID] interface for DUIDLLT.
func (d DUIDLLT) String() (s string) {
	return fmt.Sprintf(
		"DUID-LLT{hwtype=%d time=%d lladdr=%s}",
		d.HWType,
		d.Time,
		net.HardwareAddr(d.LinkLayerAddr),
	)
}

// marshal implements the [DUID] interface for DUIDLLT.
func (d DUIDLLT) marshal(w *wire.Writer) (err error) {
	w.Uint16(uint16(DUIDTypeLLT))
	w.Uint16(d.HWType)
	w.Uint32(d.Time)
	w.Bytes(d.LinkLayerAddr)

	return nil
}

// DUIDEN is a DUID assigned by a vendor based on its enterprise number.
type DUIDEN struct {
	// Identifier is the vendor-assigned identifier.
	Identifier []byte

	// EnterpriseNumber is the vendor's private enterprise number maintained
	// by IANA.
	EnterpriseNumber uint32
}

// type check
var _ DUID = DUIDEN{}

// Type implements the [DUID] interface for DUIDEN.
func (DUIDEN) Type() (t DUIDType) { return DUIDTypeEN }

// String implements the [DUID] interface for DUIDEN.
func (d DUIDEN) String() (s string) {
	return fmt.Sprintf("DUID-EN{enterprise=%d id=%s}", d.EnterpriseNumber, hex.EncodeToString(d.Identifier))
}

// marshal implements the [DUID] interface for DUIDEN.
func (d DUIDEN) marshal(w *wire.Writer) (err error) {
	w.Uint16(uint16(DUIDTypeEN))
	w.Uint32(d.EnterpriseNumber)
	w.Bytes(d.Identifier)

	return nil
}

// DUIDLL is a DUID based on a link-layer address.
type DUIDLL struct {
	// LinkLayerAddr is the link-layer address of the interface.
	LinkLayerAddr []byte

	// HWType is the IANA hardware type of the interface.
	HWType uint16
}

// type check
var _ DUID = DUIDLL{}

// Type implements the [DUID] interface for DUIDLL.
func (DUIDLL) Type() (t DUIDType) { return DUIDTypeLL }

// String implements the [DUID] interface for DUIDLL.
func (d DUIDLL) String() (s string) {
	return fmt.Sprintf("DUID-LL{hwtype=%d lladdr=%s}", d.HWType, net.HardwareAddr(d.LinkLayerAddr))
}

// marshal implements the [DUID] interface for DUIDLL.
func (d DUIDLL) marshal(w *wire.Writer) (err error) {
	w.Uint16(uint16(DUIDTypeLL))
	w.Uint16(d.HWType)
	w.Bytes(d.LinkLayerAddr)

	return nil
}

// DUIDUnknown is a DUID of a type this package doesn't interpret.  Its payload
// is preserved as is.
type DUIDUnknown struct {
	// Payload is the DUID data following the type code.
	Payload []byte

	// TypeCode is the type code of the DUID.
	TypeCode DUIDType
}

// type check
var _ DUID = DUIDUnknown{}

// Type implements the [DUID] interface for DUIDUnknown.
func (d DUIDUnknown) Type() (t DUIDType) { return d.TypeCode }

// String implements the [DUID] interface for DUIDUnknown.
func (d DUIDUnknown) String() (s string) {
	return fmt.Sprintf("DUID(%d){%s}", d.TypeCode, hex.EncodeToString(d.Payload))
}

// marshal implements the [DUID] interface for DUIDUnknown.  The type code must
// not be one of the types this package interprets.
func (d DUIDUnknown) marshal(w *wire.Writer) (err error) {
	switch d.TypeCode {
	case DUIDTypeLLT, DUIDTypeEN, DUIDTypeLL:
		return fmt.Errorf("unknown duid with known type %d: %w", d.TypeCode, ErrInvalidValue)
	default:
		w.Uint16(uint16(d.TypeCode))
		w.Bytes(d.Payload)

		return nil
	}
}

// duidPrefixLen returns the length of the fixed fields following the type code
// of a DUID of type t.
func duidPrefixLen(t DUIDType) (n int) {
	switch t {
	case DUIDTypeLLT:
		// Hardware type and time.
		return 6
	case DUIDTypeEN:
		// Enterprise number.
		return 4
	case DUIDTypeLL:
		// Hardware type.
		return 2
	default:
		return 0
	}
}

// decodeDUID decodes a DUID occupying all of r.
func decodeDUID(r *wire.Reader) (d DUID, err error) {
	if r.Len() < 2 {
		return nil, &wire.OffsetError{
			Err:    fmt.Errorf("duid of %d bytes has no type code: %w", r.Len(), ErrInvalidValue),
			Offset: r.Offset(),
		}
	}

	// Can't fail, since the length is checked above.
	tc, _ := r.Uint16()
	t := DUIDType(tc)

	if need := duidPrefixLen(t); r.Len() < need {
		return nil, &wire.OffsetError{
			Err:    fmt.Errorf("duid type %d needs %d bytes, have %d: %w", t, need, r.Len(), ErrInvalidValue),
			Offset: r.Offset(),
		}
	}

	// The reads below can't fail, since the prefix length is checked above.
	switch t {
	case DUIDTypeLLT:
		llt := DUIDLLT{}
		llt.HWType, _ = r.Uint16()
		llt.Time, _ = r.Uint32()
		llt.LinkLayerAddr = r.Rest()

		return llt, nil
	case DUIDTypeEN:
		en := DUIDEN{}
		en.EnterpriseNumber, _ = r.Uint32()
		en.Identifier = r.Rest()

		return en, nil
	case DUIDTypeLL:
		ll := DUIDLL{}
		ll.HWType, _ = r.Uint16()
		ll.LinkLayerAddr = r.Rest()

		return ll, nil
	default:
		return DUIDUnknown{TypeCode: t, Payload: r.Rest()}, nil
	}
}

// ParseDUID decodes a DUID from its wire form b.  Unknown DUID types aren't an
// error and are returned as [DUIDUnknown].
func ParseDUID(b []byte) (d DUID, err error) {
	d, err = decodeDUID(wire.NewReader(b))

	return d, errors.Annotate(err, "parsing duid: %w")
}

// MarshalDUID returns the wire form of d.
func MarshalDUID(d DUID) (b []byte, err error) {
	if d == nil {
		return nil, fmt.Errorf("marshaling duid: nil duid: %w", ErrInvalidValue)
	}

	w := wire.NewWriter()
	err = d.marshal(w)
	if err != nil {
		return nil, fmt.Errorf("marshaling duid: %w", err)
	}

	return w.Data(), nil
}
