package dhcpv6

import (
	"encoding/hex"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/AdguardTeam/dhcp6wire/internal/rfc1035"
	"github.com/AdguardTeam/dhcp6wire/internal/wire"
)

// validateIPv6 returns an error if ip can't be encoded as an IPv6 address.
func validateIPv6(ip netip.Addr) (err error) {
	if !ip.IsValid() || ip.Is4() {
		return fmt.Errorf("address %s is not ipv6: %w", ip, ErrInvalidValue)
	} else if ip.Zone() != "" {
		return fmt.Errorf("address %s has a zone: %w", ip, ErrInvalidValue)
	}

	return nil
}

// ClientID is the Client Identifier option, RFC 3315 Section 22.2.
type ClientID struct {
	DUID DUID
}

// type check
var _ Option = ClientID{}

// Code implements the [Option] interface for ClientID.
func (ClientID) Code() (c OptionCode) { return OptionClientID }

// String implements the [Option] interface for ClientID.
func (o ClientID) String() (s string) { return fmt.Sprintf("CLIENTID{%v}", o.DUID) }

// marshalPayload implements the [Option] interface for ClientID.
func (o ClientID) marshalPayload(w *wire.Writer) (err error) {
	return marshalDUIDPayload(w, o.DUID)
}

// decodeClientID decodes the data of a Client Identifier option.
func decodeClientID(r *wire.Reader) (o Option, err error) {
	d, err := decodeDUID(r)
	if err != nil {
		return nil, err
	}

	return ClientID{DUID: d}, nil
}

// ServerID is the Server Identifier option, RFC 3315 Section 22.3.
type ServerID struct {
	DUID DUID
}

// type check
var _ Option = ServerID{}

// Code implements the [Option] interface for ServerID.
func (ServerID) Code() (c OptionCode) { return OptionServerID }

// String implements the [Option] interface for ServerID.
func (o ServerID) String() (s string) { return fmt.Sprintf("SERVERID{%v}", o.DUID) }

// marshalPayload implements the [Option] interface for ServerID.
func (o ServerID) marshalPayload(w *wire.Writer) (err error) {
	return marshalDUIDPayload(w, o.DUID)
}

// decodeServerID decodes the data of a Server Identifier option.
func decodeServerID(r *wire.Reader) (o Option, err error) {
	d, err := decodeDUID(r)
	if err != nil {
		return nil, err
	}

	return ServerID{DUID: d}, nil
}

// marshalDUIDPayload appends d to w or returns an error if d is nil.
func marshalDUIDPayload(w *wire.Writer, d DUID) (err error) {
	if d == nil {
		return fmt.Errorf("nil duid: %w", ErrInvalidValue)
	}

	return d.marshal(w)
}

// OptionRequest is the Option Request option, RFC 3315 Section 22.7.
type OptionRequest []OptionCode

// type check
var _ Option = OptionRequest(nil)

// Code implements the [Option] interface for OptionRequest.
func (OptionRequest) Code() (c OptionCode) { return OptionORO }

// String implements the [Option] interface for OptionRequest.
func (o OptionRequest) String() (s string) { return fmt.Sprintf("ORO%v", []OptionCode(o)) }

// marshalPayload implements the [Option] interface for OptionRequest.
func (o OptionRequest) marshalPayload(w *wire.Writer) (err error) {
	for _, c := range o {
		w.Uint16(uint16(c))
	}

	return nil
}

// decodeOptionRequest decodes the data of an Option Request option.
func decodeOptionRequest(r *wire.Reader) (o Option, err error) {
	if err = checkMultiple(r, 2); err != nil {
		return nil, err
	}

	var oro OptionRequest
	for r.Len() > 0 {
		// Can't fail, since the length is checked above.
		c, _ := r.Uint16()
		oro = append(oro, OptionCode(c))
	}

	return oro, nil
}

// checkMultiple returns an error if the remaining length of r isn't a multiple
// of the item size n.
func checkMultiple(r *wire.Reader, n int) (err error) {
	if l := r.Len(); l%n != 0 {
		return &wire.OffsetError{
			Err:    fmt.Errorf("length %d is not a multiple of %d: %w", l, n, ErrLengthMismatch),
			Offset: r.Offset(),
		}
	}

	return nil
}

// Preference is the Preference option, RFC 3315 Section 22.8.
type Preference uint8

// type check
var _ Option = Preference(0)

// Code implements the [Option] interface for Preference.
func (Preference) Code() (c OptionCode) { return OptionPreference }

// String implements the [Option] interface for Preference.
func (o Preference) String() (s string) { return fmt.Sprintf("PREFERENCE{%d}", uint8(o)) }

// marshalPayload implements the [Option] interface for Preference.
func (o Preference) marshalPayload(w *wire.Writer) (err error) {
	w.Uint8(uint8(o))

	return nil
}

// decodePreference decodes the data of a Preference option.
func decodePreference(r *wire.Reader) (o Option, err error) {
	v, err := r.Uint8()
	if err != nil {
		return nil, err
	}

	return Preference(v), r.Finish()
}

// ElapsedTime is the Elapsed Time option, RFC 3315 Section 22.9.  The value is
// in hundredths of a second.
type ElapsedTime uint16

// ElapsedTimeUnit is the unit of [ElapsedTime].
const ElapsedTimeUnit = 10 * time.Millisecond

// type check
var _ Option = ElapsedTime(0)

// Code implements the [Option] interface for ElapsedTime.
func (ElapsedTime) Code() (c OptionCode) { return OptionElapsedTime }

// String implements the [Option] interface for ElapsedTime.
func (o ElapsedTime) String() (s string) { return fmt.Sprintf("ELAPSED_TIME{%s}", o.Duration()) }

// Duration returns the elapsed time as a duration.
func (o ElapsedTime) Duration() (d time.Duration) {
	return time.Duration(o) * ElapsedTimeUnit
}

// marshalPayload implements the [Option] interface for ElapsedTime.
func (o ElapsedTime) marshalPayload(w *wire.Writer) (err error) {
	w.Uint16(uint16(o))

	return nil
}

// decodeElapsedTime decodes the data of an Elapsed Time option.
func decodeElapsedTime(r *wire.Reader) (o Option, err error) {
	v, err := r.Uint16()
	if err != nil {
		return nil, err
	}

	return ElapsedTime(v), r.Finish()
}

// Unicast is the Server Unicast option, RFC 3315 Section 22.12.
type Unicast struct {
	// Addr is the address the client may use to reach the server.
	Addr netip.Addr
}

// type check
var _ Option = Unicast{}

// Code implements the [Option] interface for Unicast.
func (Unicast) Code() (c OptionCode) { return OptionUnicast }

// String implements the [Option] interface for Unicast.
func (o Unicast) String() (s string) { return fmt.Sprintf("UNICAST{%s}", o.Addr) }

// marshalPayload implements the [Option] interface for Unicast.
func (o Unicast) marshalPayload(w *wire.Writer) (err error) {
	if err = validateIPv6(o.Addr); err != nil {
		return err
	}

	w.Addr(o.Addr)

	return nil
}

// decodeUnicast decodes the data of a Server Unicast option.
func decodeUnicast(r *wire.Reader) (o Option, err error) {
	ip, err := r.Addr()
	if err != nil {
		return nil, err
	}

	return Unicast{Addr: ip}, r.Finish()
}

// Status is the numeric code of a [StatusCode] option.  Values not listed
// below are valid and kept as is.
type Status uint16

// Status codes defined by RFC 3315 Section 24.4.
const (
	StatusSuccess      Status = 0
	StatusUnspecFail   Status = 1
	StatusNoAddrsAvail Status = 2
	StatusNoBinding    Status = 3
	StatusNotOnLink    Status = 4
	StatusUseMulticast Status = 5
)

// statusNames are the names of the status codes as spelled in the RFCs.
var statusNames = map[Status]string{
	StatusSuccess:      "Success",
	StatusUnspecFail:   "UnspecFail",
	StatusNoAddrsAvail: "NoAddrsAvail",
	StatusNoBinding:    "NoBinding",
	StatusNotOnLink:    "NotOnLink",
	StatusUseMulticast: "UseMulticast",
}

// String implements the [fmt.Stringer] interface for Status.
func (s Status) String() (str string) {
	if str, ok := statusNames[s]; ok {
		return str
	}

	return fmt.Sprintf("Status(%d)", uint16(s))
}

// StatusCode is the Status Code option, RFC 3315 Section 22.13.
type StatusCode struct {
	// Message is the UTF-8 encoded status message for the user.
	Message string

	// Status is the numeric status code.
	Status Status
}

// type check
var _ Option = StatusCode{}

// Code implements the [Option] interface for StatusCode.
func (StatusCode) Code() (c OptionCode) { return OptionStatusCode }

// String implements the [Option] interface for StatusCode.
func (o StatusCode) String() (s string) {
	return fmt.Sprintf("STATUS_CODE{%s %q}", o.Status, o.Message)
}

// marshalPayload implements the [Option] interface for StatusCode.
func (o StatusCode) marshalPayload(w *wire.Writer) (err error) {
	w.Uint16(uint16(o.Status))
	w.Bytes([]byte(o.Message))

	return nil
}

// decodeStatusCode decodes the data of a Status Code option.
func decodeStatusCode(r *wire.Reader) (o Option, err error) {
	st, err := r.Uint16()
	if err != nil {
		return nil, fmt.Errorf("reading status: %w", err)
	}

	return StatusCode{
		Message: string(r.Rest()),
		Status:  Status(st),
	}, nil
}

// RapidCommit is the Rapid Commit option, RFC 3315 Section 22.14.  It has no
// data.
type RapidCommit struct{}

// type check
var _ Option = RapidCommit{}

// Code implements the [Option] interface for RapidCommit.
func (RapidCommit) Code() (c OptionCode) { return OptionRapidCommit }

// String implements the [Option] interface for RapidCommit.
func (RapidCommit) String() (s string) { return "RAPID_COMMIT" }

// marshalPayload implements the [Option] interface for RapidCommit.
func (RapidCommit) marshalPayload(_ *wire.Writer) (err error) { return nil }

// decodeRapidCommit decodes the data of a Rapid Commit option.
func decodeRapidCommit(r *wire.Reader) (o Option, err error) {
	return RapidCommit{}, r.Finish()
}

// UserClass is the User Class option, RFC 3315 Section 22.15.
type UserClass struct {
	// Classes are the opaque user class data items.
	Classes [][]byte
}

// type check
var _ Option = UserClass{}

// Code implements the [Option] interface for UserClass.
func (UserClass) Code() (c OptionCode) { return OptionUserClass }

// String implements the [Option] interface for UserClass.
func (o UserClass) String() (s string) {
	return fmt.Sprintf("USER_CLASS{%s}", formatItems(o.Classes))
}

// marshalPayload implements the [Option] interface for UserClass.
func (o UserClass) marshalPayload(w *wire.Writer) (err error) {
	return marshalItems(w, o.Classes)
}

// decodeUserClass decodes the data of a User Class option.
func decodeUserClass(r *wire.Reader) (o Option, err error) {
	items, err := decodeItems(r)
	if err != nil {
		return nil, err
	}

	return UserClass{Classes: items}, nil
}

// VendorClass is the Vendor Class option, RFC 3315 Section 22.16.
type VendorClass struct {
	// Data are the opaque vendor class data items.
	Data [][]byte

	// EnterpriseNumber is the vendor's private enterprise number.
	EnterpriseNumber uint32
}

// type check
var _ Option = VendorClass{}

// Code implements the [Option] interface for VendorClass.
func (VendorClass) Code() (c OptionCode) { return OptionVendorClass }

// String implements the [Option] interface for VendorClass.
func (o VendorClass) String() (s string) {
	return fmt.Sprintf("VENDOR_CLASS{enterprise=%d data=%s}", o.EnterpriseNumber, formatItems(o.Data))
}

// marshalPayload implements the [Option] interface for VendorClass.
func (o VendorClass) marshalPayload(w *wire.Writer) (err error) {
	w.Uint32(o.EnterpriseNumber)

	return marshalItems(w, o.Data)
}

// decodeVendorClass decodes the data of a Vendor Class option.
func decodeVendorClass(r *wire.Reader) (o Option, err error) {
	vc := VendorClass{}
	vc.EnterpriseNumber, err = r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("reading enterprise number: %w", err)
	}

	vc.Data, err = decodeItems(r)
	if err != nil {
		return nil, err
	}

	return vc, nil
}

// marshalItems appends each item prefixed with its 16-bit length.
func marshalItems(w *wire.Writer, items [][]byte) (err error) {
	for i, item := range items {
		m := w.Reserve16()
		w.Bytes(item)
		if err = w.Patch16(m); err != nil {
			return fmt.Errorf("item at index %d: %w", i, err)
		}
	}

	return nil
}

// decodeItems decodes length-prefixed opaque items until r is exhausted.
func decodeItems(r *wire.Reader) (items [][]byte, err error) {
	for r.Len() > 0 {
		var l uint16
		l, err = r.Uint16()
		if err != nil {
			return nil, fmt.Errorf("item at index %d: reading length: %w", len(items), err)
		}

		var item *wire.Reader
		item, err = r.Sub(int(l))
		if err != nil {
			return nil, fmt.Errorf("item at index %d: %w", len(items), err)
		}

		items = append(items, item.Rest())
	}

	return items, nil
}

// formatItems returns a human-readable form of opaque items.
func formatItems(items [][]byte) (s string) {
	strs := make([]string, 0, len(items))
	for _, item := range items {
		strs = append(strs, hex.EncodeToString(item))
	}

	return "[" + strings.Join(strs, " ") + "]"
}

// VendorOpts is the Vendor-specific Information option, RFC 3315 Section
// 22.17.  The encapsulated vendor options are kept opaque, since their format
// is defined by the vendor.
type VendorOpts struct {
	// Data is the vendor option data.
	Data []byte

	// EnterpriseNumber is the vendor's private enterprise number.
	EnterpriseNumber uint32
}

// type check
var _ Option = VendorOpts{}

// Code implements the [Option] interface for VendorOpts.
func (VendorOpts) Code() (c OptionCode) { return OptionVendorOpts }

// String implements the [Option] interface for VendorOpts.
func (o VendorOpts) String() (s string) {
	return fmt.Sprintf("VENDOR_OPTS{enterprise=%d data=%s}", o.EnterpriseNumber, hex.EncodeToString(o.Data))
}

// marshalPayload implements the [Option] interface for VendorOpts.
func (o VendorOpts) marshalPayload(w *wire.Writer) (err error) {
	w.Uint32(o.EnterpriseNumber)
	w.Bytes(o.Data)

	return nil
}

// decodeVendorOpts decodes the data of a Vendor-specific Information option.
func decodeVendorOpts(r *wire.Reader) (o Option, err error) {
	num, err := r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("reading enterprise number: %w", err)
	}

	return VendorOpts{Data: r.Rest(), EnterpriseNumber: num}, nil
}

// InterfaceID is the Interface-Id option, RFC 3315 Section 22.18.
type InterfaceID []byte

// type check
var _ Option = InterfaceID(nil)

// Code implements the [Option] interface for InterfaceID.
func (InterfaceID) Code() (c OptionCode) { return OptionInterfaceID }

// String implements the [Option] interface for InterfaceID.
func (o InterfaceID) String() (s string) {
	return fmt.Sprintf("INTERFACE_ID{%s}", hex.EncodeToString(o))
}

// marshalPayload implements the [Option] interface for InterfaceID.
func (o InterfaceID) marshalPayload(w *wire.Writer) (err error) {
	w.Bytes(o)

	return nil
}

// decodeInterfaceID decodes the data of an Interface-Id option.
func decodeInterfaceID(r *wire.Reader) (o Option, err error) {
	return InterfaceID(r.Rest()), nil
}

// ReconfigureMessage is the Reconfigure Message option, RFC 3315 Section
// 22.19.
type ReconfigureMessage struct {
	// Type is the message type the client should respond with.
	Type MessageType
}

// type check
var _ Option = ReconfigureMessage{}

// Code implements the [Option] interface for ReconfigureMessage.
func (ReconfigureMessage) Code() (c OptionCode) { return OptionReconfMsg }

// String implements the [Option] interface for ReconfigureMessage.
func (o ReconfigureMessage) String() (s string) { return fmt.Sprintf("RECONF_MSG{%s}", o.Type) }

// marshalPayload implements the [Option] interface for ReconfigureMessage.
func (o ReconfigureMessage) marshalPayload(w *wire.Writer) (err error) {
	w.Uint8(uint8(o.Type))

	return nil
}

// decodeReconfigureMessage decodes the data of a Reconfigure Message option.
func decodeReconfigureMessage(r *wire.Reader) (o Option, err error) {
	t, err := r.Uint8()
	if err != nil {
		return nil, err
	}

	return ReconfigureMessage{Type: MessageType(t)}, r.Finish()
}

// ReconfigureAccept is the Reconfigure Accept option, RFC 3315 Section 22.20.
// It has no data.
type ReconfigureAccept struct{}

// type check
var _ Option = ReconfigureAccept{}

// Code implements the [Option] interface for ReconfigureAccept.
func (ReconfigureAccept) Code() (c OptionCode) { return OptionReconfAccept }

// String implements the [Option] interface for ReconfigureAccept.
func (ReconfigureAccept) String() (s string) { return "RECONF_ACCEPT" }

// marshalPayload implements the [Option] interface for ReconfigureAccept.
func (ReconfigureAccept) marshalPayload(_ *wire.Writer) (err error) { return nil }

// decodeReconfigureAccept decodes the data of a Reconfigure Accept option.
func decodeReconfigureAccept(r *wire.Reader) (o Option, err error) {
	return ReconfigureAccept{}, r.Finish()
}

// DNSServers is the DNS Recursive Name Server option, RFC 3646 Section 3.
type DNSServers []netip.Addr

// type check
var _ Option = DNSServers(nil)

// Code implements the [Option] interface for DNSServers.
func (DNSServers) Code() (c OptionCode) { return OptionDNSServers }

// String implements the [Option] interface for DNSServers.
func (o DNSServers) String() (s string) { return fmt.Sprintf("DNS_SERVERS%v", []netip.Addr(o)) }

// marshalPayload implements the [Option] interface for DNSServers.
func (o DNSServers) marshalPayload(w *wire.Writer) (err error) {
	for i, ip := range o {
		if err = validateIPv6(ip); err != nil {
			return fmt.Errorf("server at index %d: %w", i, err)
		}

		w.Addr(ip)
	}

	return nil
}

// decodeDNSServers decodes the data of a DNS Recursive Name Server option.
func decodeDNSServers(r *wire.Reader) (o Option, err error) {
	if err = checkMultiple(r, wire.IPv6Len); err != nil {
		return nil, err
	}

	var servers DNSServers
	for r.Len() > 0 {
		// Can't fail, since the length is checked above.
		ip, _ := r.Addr()
		servers = append(servers, ip)
	}

	return servers, nil
}

// DomainSearchList is the Domain Search List option, RFC 3646 Section 4.  The
// names are stored without the trailing dot.
type DomainSearchList []string

// type check
var _ Option = DomainSearchList(nil)

// Code implements the [Option] interface for DomainSearchList.
func (DomainSearchList) Code() (c OptionCode) { return OptionDomainList }

// String implements the [Option] interface for DomainSearchList.
func (o DomainSearchList) String() (s string) { return fmt.Sprintf("DOMAIN_LIST%q", []string(o)) }

// marshalPayload implements the [Option] interface for DomainSearchList.
func (o DomainSearchList) marshalPayload(w *wire.Writer) (err error) {
	return rfc1035.WriteNames(w, o)
}

// decodeDomainSearchList decodes the data of a Domain Search List option.
func decodeDomainSearchList(r *wire.Reader) (o Option, err error) {
	names, err := rfc1035.ReadNames(r)
	if err != nil {
		return nil, err
	}

	return DomainSearchList(names), nil
}

// UnknownOption is an option this package doesn't interpret.  Its data is
// preserved as is, so that decoding and encoding it again produces the same
// bytes.
type UnknownOption struct {
	// Data is the option data.
	Data []byte

	// Type is the option code.
	Type OptionCode
}

// type check
var _ Option = UnknownOption{}

// Code implements the [Option] interface for UnknownOption.
func (o UnknownOption) Code() (c OptionCode) { return o.Type }

// String implements the [Option] interface for UnknownOption.
func (o UnknownOption) String() (s string) {
	return fmt.Sprintf("%s{%s}", o.Type, hex.EncodeToString(o.Data))
}

// marshalPayload implements the [Option] interface for UnknownOption.  The code
// must not be one this package interprets.
func (o UnknownOption) marshalPayload(w *wire.Writer) (err error) {
	if _, ok := registry[o.Type]; ok {
		return fmt.Errorf("unknown option with known code %s: %w", o.Type, ErrInvalidValue)
	}

	w.Bytes(o.Data)

	return nil
}
