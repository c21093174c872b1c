package dhcpv6

import (
	"fmt"
	"strings"

	"github.com/AdguardTeam/dhcp6wire/internal/wire"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/log"
	"golang.org/x/exp/slices"
)

// OptionCode is the 16-bit code of a DHCPv6 option.
type OptionCode uint16

// Option codes defined by RFC 3315 Section 24.3, RFC 3646 and RFC 3633.
const (
	OptionClientID     OptionCode = 1
	OptionServerID     OptionCode = 2
	OptionIANA         OptionCode = 3
	OptionIATA         OptionCode = 4
	OptionIAAddr       OptionCode = 5
	OptionORO          OptionCode = 6
	OptionPreference   OptionCode = 7
	OptionElapsedTime  OptionCode = 8
	OptionRelayMsg     OptionCode = 9
	OptionAuth         OptionCode = 11
	OptionUnicast      OptionCode = 12
	OptionStatusCode   OptionCode = 13
	OptionRapidCommit  OptionCode = 14
	OptionUserClass    OptionCode = 15
	OptionVendorClass  OptionCode = 16
	OptionVendorOpts   OptionCode = 17
	OptionInterfaceID  OptionCode = 18
	OptionReconfMsg    OptionCode = 19
	OptionReconfAccept OptionCode = 20
	OptionDNSServers   OptionCode = 23
	OptionDomainList   OptionCode = 24
	OptionIAPD         OptionCode = 25
	OptionIAPrefix     OptionCode = 26
)

// optionCodeNames are the names of the option codes as spelled in the RFCs.
var optionCodeNames = map[OptionCode]string{
	OptionClientID:     "OPTION_CLIENTID",
	OptionServerID:     "OPTION_SERVERID",
	OptionIANA:         "OPTION_IA_NA",
	OptionIATA:         "OPTION_IA_TA",
	OptionIAAddr:       "OPTION_IAADDR",
	OptionORO:          "OPTION_ORO",
	OptionPreference:   "OPTION_PREFERENCE",
	OptionElapsedTime:  "OPTION_ELAPSED_TIME",
	OptionRelayMsg:     "OPTION_RELAY_MSG",
	OptionAuth:         "OPTION_AUTH",
	OptionUnicast:      "OPTION_UNICAST",
	OptionStatusCode:   "OPTION_STATUS_CODE",
	OptionRapidCommit:  "OPTION_RAPID_COMMIT",
	OptionUserClass:    "OPTION_USER_CLASS",
	OptionVendorClass:  "OPTION_VENDOR_CLASS",
	OptionVendorOpts:   "OPTION_VENDOR_OPTS",
	OptionInterfaceID:  "OPTION_INTERFACE_ID",
	OptionReconfMsg:    "OPTION_RECONF_MSG",
	OptionReconfAccept: "OPTION_RECONF_ACCEPT",
	OptionDNSServers:   "OPTION_DNS_SERVERS",
	OptionDomainList:   "OPTION_DOMAIN_LIST",
	OptionIAPD:         "OPTION_IA_PD",
	OptionIAPrefix:     "OPTION_IAPREFIX",
}

// String implements the [fmt.Stringer] interface for OptionCode.
func (c OptionCode) String() (s string) {
	if s, ok := optionCodeNames[c]; ok {
		return s
	}

	return fmt.Sprintf("OPTION(%d)", uint16(c))
}

// Option is a single DHCPv6 option.  The set of implementations is closed and
// consists of the types of this package, with [UnknownOption] standing for all
// the codes this package doesn't interpret.
type Option interface {
	fmt.Stringer

	// Code returns the code of the option.
	Code() (c OptionCode)

	// marshalPayload appends the option data, without the code and the
	// length, to w.
	marshalPayload(w *wire.Writer) (err error)
}

// Options is an ordered list of options.  The order is significant and is
// preserved by both decoding and encoding.
type Options []Option

// Get returns all the options with code c in their original order.
func (opts Options) Get(c OptionCode) (found Options) {
	for _, o := range opts {
		if o != nil && o.Code() == c {
			found = append(found, o)
		}
	}

	return found
}

// GetOne returns the first option with code c or nil if there is none.
func (opts Options) GetOne(c OptionCode) (o Option) {
	i := slices.IndexFunc(opts, func(o Option) (ok bool) { return o != nil && o.Code() == c })
	if i < 0 {
		return nil
	}

	return opts[i]
}

// Has returns true if opts contain an option with code c.
func (opts Options) Has(c OptionCode) (ok bool) {
	return opts.GetOne(c) != nil
}

// String implements the [fmt.Stringer] interface for Options.
func (opts Options) String() (s string) {
	b := &strings.Builder{}
	b.WriteByte('[')
	for i, o := range opts {
		if i > 0 {
			b.WriteString(", ")
		}

		if o == nil {
			b.WriteString("<nil>")

			continue
		}

		b.WriteString(o.String())
	}
	b.WriteByte(']')

	return b.String()
}

// EqualUnordered returns true if opts and other contain the same options
// regardless of their order, including the options nested in IA containers
// and addresses.  Options are compared by their wire form, so an option that
// can't be encoded isn't equal to anything.
func (opts Options) EqualUnordered(other Options) (ok bool) {
	if len(opts) != len(other) {
		return false
	}

	matched := make([]bool, len(other))
	for _, a := range opts {
		found := false
		for j, b := range other {
			if !matched[j] && optionsEqual(a, b) {
				matched[j], found = true, true

				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}

// optionsEqual returns true if a and b are equal, ignoring the order of their
// nested options.
func optionsEqual(a, b Option) (ok bool) {
	if a == nil || b == nil {
		return false
	}

	headA, nestedA := splitNested(a)
	headB, nestedB := splitNested(b)

	wireA, err := wireForm(headA)
	if err != nil {
		return false
	}

	wireB, err := wireForm(headB)
	if err != nil {
		return false
	}

	return string(wireA) == string(wireB) && nestedA.EqualUnordered(nestedB)
}

// splitNested returns o without its nested options and the nested options
// themselves.
func splitNested(o Option) (head Option, nested Options) {
	switch o := o.(type) {
	case IANA:
		nested, o.Options = o.Options, nil

		return o, nested
	case IATA:
		nested, o.Options = o.Options, nil

		return o, nested
	case IAPD:
		nested, o.Options = o.Options, nil

		return o, nested
	case IAAddr:
		nested, o.Options = o.Options, nil

		return o, nested
	case IAPrefix:
		nested, o.Options = o.Options, nil

		return o, nested
	default:
		return o, nil
	}
}

// wireForm returns the code, the length, and the data of o.
func wireForm(o Option) (b []byte, err error) {
	w := wire.NewWriter()
	w.Uint16(uint16(o.Code()))
	m := w.Reserve16()

	err = o.marshalPayload(w)
	if err != nil {
		return nil, err
	}

	err = w.Patch16(m)
	if err != nil {
		return nil, err
	}

	return w.Data(), nil
}

// level is the position of an option list in the message.  The protocol
// nests options at most three lists deep: the message, an IA container, and
// an IA Address or an IA Prefix.
type level uint8

// Option list levels.
const (
	levelMessage level = iota
	levelIA
	levelAddr
)

// String implements the [fmt.Stringer] interface for level.
func (l level) String() (s string) {
	switch l {
	case levelMessage:
		return "message"
	case levelIA:
		return "identity association"
	default:
		return "address"
	}
}

// checkLevel returns an error if an option with code c can't appear in an
// option list at level l.  IA containers are only allowed in the message and
// IA Address and IA Prefix options are only allowed in IA containers, which
// bounds the nesting depth.
func checkLevel(c OptionCode, l level) (err error) {
	switch c {
	case OptionIANA, OptionIATA, OptionIAPD:
		if l == levelMessage {
			return nil
		}
	case OptionIAAddr, OptionIAPrefix:
		if l == levelIA {
			return nil
		}
	default:
		return nil
	}

	return fmt.Errorf("%s not allowed in %s options: %w", c, l, ErrInvalidValue)
}

// decodeOptions decodes options from r until it's exhausted.  It is used both
// for the top level of a message and inside every container option, l being
// the level of the list.
func decodeOptions(r *wire.Reader, l level) (opts Options, err error) {
	for r.Len() > 0 {
		off := r.Offset()

		var o Option
		o, err = decodeOption(r, l)
		if err != nil {
			return nil, errors.Annotate(err, "option at index %d, offset %d: %w", len(opts), off)
		}

		opts = append(opts, o)
	}

	return opts, nil
}

// optionHeaderLen is the length of the option code and the option length.
const optionHeaderLen = 4

// decodeOption decodes a single option, including its code and length, from
// an option list at level l.
func decodeOption(r *wire.Reader, l level) (o Option, err error) {
	if n := r.Len(); n < optionHeaderLen {
		return nil, &wire.OffsetError{
			Err:    fmt.Errorf("%d trailing bytes can't hold an option header: %w", n, ErrLengthMismatch),
			Offset: r.Offset(),
		}
	}

	// Can't fail, since the header length is checked above.
	code, _ := r.Uint16()
	n, _ := r.Uint16()

	c := OptionCode(code)
	if err = checkLevel(c, l); err != nil {
		return nil, &wire.OffsetError{Err: err, Offset: r.Offset() - optionHeaderLen}
	}

	data, err := r.Sub(int(n))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c, err)
	}

	decode, ok := registry[c]
	if !ok {
		log.Debug("dhcpv6: preserving unknown option %d of %d bytes", code, n)

		return UnknownOption{Type: c, Data: data.Rest()}, nil
	}

	o, err = decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s of length %d: %w", c, n, err)
	}

	return o, nil
}

// marshal appends the wire form of all options to w, patching the length of
// each of them once its data is written.  l is the level of the list.
func (opts Options) marshal(w *wire.Writer, l level) (err error) {
	for i, o := range opts {
		if o == nil {
			return fmt.Errorf("option at index %d: nil option: %w", i, ErrInvalidValue)
		}

		err = marshalOption(w, o, l)
		if err != nil {
			return fmt.Errorf("option at index %d: %s: %w", i, o.Code(), err)
		}
	}

	return nil
}

// marshalOption appends the code, the length, and the data of o to w.
func marshalOption(w *wire.Writer, o Option, l level) (err error) {
	c := o.Code()
	if err = checkLevel(c, l); err != nil {
		return err
	}

	w.Uint16(uint16(c))
	m := w.Reserve16()

	err = o.marshalPayload(w)
	if err != nil {
		return err
	}

	return w.Patch16(m)
}
