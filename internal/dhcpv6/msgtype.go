package dhcpv6

import "fmt"

// MessageType is the type of a DHCPv6 message.  Values not listed below are
// valid and are carried through unchanged.
type MessageType uint8

// Message types defined by RFC 3315 Section 5.3.
const (
	MessageTypeSolicit            MessageType = 1
	MessageTypeAdvertise          MessageType = 2
	MessageTypeRequest            MessageType = 3
	MessageTypeConfirm            MessageType = 4
	MessageTypeRenew              MessageType = 5
	MessageTypeRebind             MessageType = 6
	MessageTypeReply              MessageType = 7
	MessageTypeRelease            MessageType = 8
	MessageTypeDecline            MessageType = 9
	MessageTypeReconfigure        MessageType = 10
	MessageTypeInformationRequest MessageType = 11
	MessageTypeRelayForward       MessageType = 12
	MessageTypeRelayReply         MessageType = 13
)

// messageTypeNames are the names of the known message types as spelled in
// RFC 3315.
var messageTypeNames = map[MessageType]string{
	MessageTypeSolicit:            "SOLICIT",
	MessageTypeAdvertise:          "ADVERTISE",
	MessageTypeRequest:            "REQUEST",
	MessageTypeConfirm:            "CONFIRM",
	MessageTypeRenew:              "RENEW",
	MessageTypeRebind:             "REBIND",
	MessageTypeReply:              "REPLY",
	MessageTypeRelease:            "RELEASE",
	MessageTypeDecline:            "DECLINE",
	MessageTypeReconfigure:        "RECONFIGURE",
	MessageTypeInformationRequest: "INFORMATION-REQUEST",
	MessageTypeRelayForward:       "RELAY-FORW",
	MessageTypeRelayReply:         "RELAY-REPL",
}

// IsKnown returns true if t is one of the message types defined by RFC 3315.
func (t MessageType) IsKnown() (ok bool) {
	_, ok = messageTypeNames[t]

	return ok
}

// String implements the [fmt.Stringer] interface for MessageType.
func (t MessageType) String() (s string) {
	if s, ok := messageTypeNames[t]; ok {
		return s
	}

	return fmt.Sprintf("UNKNOWN(%d)", uint8(t))
}

// TransactionID is the 24-bit identifier correlating a request with its
// response.
type TransactionID uint32

// MaxTransactionID is the largest valid transaction ID.
const MaxTransactionID TransactionID = 1<<24 - 1

// String implements the [fmt.Stringer] interface for TransactionID.
func (id TransactionID) String() (s string) {
	return fmt.Sprintf("0x%06x", uint32(id))
}
