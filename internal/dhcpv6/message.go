package dhcpv6

import (
	"encoding"
	"fmt"

	"github.com/AdguardTeam/dhcp6wire/internal/wire"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/log"
)

// headerLen is the length of the message type and the transaction ID.
const headerLen = 4

// Message is a DHCPv6 client/server message, RFC 3315 Section 6.
type Message struct {
	// Options are the top-level options of the message in their wire order.
	Options

	// TransactionID is the 24-bit transaction ID.  Values greater than
	// [MaxTransactionID] can't be encoded.
	TransactionID TransactionID

	// Type is the message type.
	Type MessageType
}

// type check
var (
	_ encoding.BinaryMarshaler   = (*Message)(nil)
	_ encoding.BinaryUnmarshaler = (*Message)(nil)
	_ fmt.Stringer               = Message{}
)

// ParseMessage decodes a DHCPv6 message from b.  Unknown message types and
// unknown options aren't errors.  The returned message doesn't retain b.
func ParseMessage(b []byte) (m *Message, err error) {
	defer func() { err = errors.Annotate(err, "parsing dhcpv6 message: %w") }()

	r := wire.NewReader(b)
	if r.Len() < headerLen {
		return nil, &wire.OffsetError{
			Err:    fmt.Errorf("header needs %d bytes, have %d: %w", headerLen, r.Len(), ErrTruncated),
			Offset: 0,
		}
	}

	// Can't fail, since the header length is checked above.
	t, _ := r.Uint8()
	id, _ := r.Uint24()

	m = &Message{
		TransactionID: TransactionID(id),
		Type:          MessageType(t),
	}

	if !m.Type.IsKnown() {
		log.Debug("dhcpv6: decoding message of unknown type %d", t)
	}

	m.Options, err = decodeOptions(r, levelMessage)
	if err != nil {
		// Don't wrap the error since it's informative enough as is.
		return nil, err
	}

	return m, nil
}

// UnmarshalBinary implements the [encoding.BinaryUnmarshaler] interface for
// *Message.  m is only modified if b is decoded successfully.
func (m *Message) UnmarshalBinary(b []byte) (err error) {
	parsed, err := ParseMessage(b)
	if err != nil {
		return err
	}

	*m = *parsed

	return nil
}

// MarshalBinary implements the [encoding.BinaryMarshaler] interface for
// *Message.
func (m *Message) MarshalBinary() (b []byte, err error) {
	defer func() { err = errors.Annotate(err, "marshaling dhcpv6 message: %w") }()

	if m.TransactionID > MaxTransactionID {
		return nil, fmt.Errorf("transaction id %s: %w", m.TransactionID, ErrInvalidValue)
	}

	w := wire.NewWriter()
	w.Uint8(uint8(m.Type))
	w.Uint24(uint32(m.TransactionID))

	err = m.Options.marshal(w, levelMessage)
	if err != nil {
		// Don't wrap the error since it's informative enough as is.
		return nil, err
	}

	return w.Data(), nil
}

// String implements the [fmt.Stringer] interface for Message.
func (m Message) String() (s string) {
	return fmt.Sprintf("%s{xid=%s options=%s}", m.Type, m.TransactionID, m.Options)
}
