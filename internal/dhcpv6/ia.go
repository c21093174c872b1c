package dhcpv6

import (
	"fmt"
	"net/netip"

	"github.com/AdguardTeam/dhcp6wire/internal/wire"
)

// IANA is the Identity Association for Non-temporary Addresses option, RFC
// 3315 Section 22.4.
type IANA struct {
	// Options are the options encapsulated in the IA_NA, typically [IAAddr]
	// and [StatusCode].
	Options Options

	// IAID is the unique identifier of the IA.
	IAID uint32

	// T1 is the time in seconds after which the client contacts the server
	// that provided the addresses to extend their lifetimes.
	T1 uint32

	// T2 is the time in seconds after which the client contacts any
	// available server to extend the lifetimes of the addresses.
	T2 uint32
}

// type check
var _ Option = IANA{}

// Code implements the [Option] interface for IANA.
func (IANA) Code() (c OptionCode) { return OptionIANA }

// String implements the [Option] interface for IANA.
func (o IANA) String() (s string) {
	return fmt.Sprintf("IA_NA{iaid=%d t1=%d t2=%d options=%s}", o.IAID, o.T1, o.T2, o.Options)
}

// marshalPayload implements the [Option] interface for IANA.
func (o IANA) marshalPayload(w *wire.Writer) (err error) {
	w.Uint32(o.IAID)
	w.Uint32(o.T1)
	w.Uint32(o.T2)

	return o.Options.marshal(w, levelIA)
}

// decodeIANA decodes the data of an IA_NA option.
func decodeIANA(r *wire.Reader) (o Option, err error) {
	ia := IANA{}
	ia.IAID, ia.T1, ia.T2, err = readIAHeader(r)
	if err != nil {
		return nil, err
	}

	ia.Options, err = decodeOptions(r, levelIA)
	if err != nil {
		return nil, err
	}

	return ia, nil
}

// IATA is the Identity Association for Temporary Addresses option, RFC 3315
// Section 22.5.
type IATA struct {
	// Options are the options encapsulated in the IA_TA.
	Options Options

	// IAID is the unique identifier of the IA.
	IAID uint32
}

// type check
var _ Option = IATA{}

// Code implements the [Option] interface for IATA.
func (IATA) Code() (c OptionCode) { return OptionIATA }

// String implements the [Option] interface for IATA.
func (o IATA) String() (s string) {
	return fmt.Sprintf("IA_TA{iaid=%d options=%s}", o.IAID, o.Options)
}

// marshalPayload implements the [Option] interface for IATA.
func (o IATA) marshalPayload(w *wire.Writer) (err error) {
	w.Uint32(o.IAID)

	return o.Options.marshal(w, levelIA)
}

// decodeIATA decodes the data of an IA_TA option.
func decodeIATA(r *wire.Reader) (o Option, err error) {
	ia := IATA{}
	ia.IAID, err = r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("reading iaid: %w", err)
	}

	ia.Options, err = decodeOptions(r, levelIA)
	if err != nil {
		return nil, err
	}

	return ia, nil
}

// IAPD is the Identity Association for Prefix Delegation option, RFC 3633
// Section 9.
type IAPD struct {
	// Options are the options encapsulated in the IA_PD, typically
	// [IAPrefix] and [StatusCode].
	Options Options

	// IAID is the unique identifier of the IA.
	IAID uint32

	// T1 is the time in seconds after which the requesting router contacts
	// the delegating router to extend the lifetimes of the prefixes.
	T1 uint32

	// T2 is the time in seconds after which the requesting router contacts
	// any available delegating router.
	T2 uint32
}

// type check
var _ Option = IAPD{}

// Code implements the [Option] interface for IAPD.
func (IAPD) Code() (c OptionCode) { return OptionIAPD }

// String implements the [Option] interface for IAPD.
func (o IAPD) String() (s string) {
	return fmt.Sprintf("IA_PD{iaid=%d t1=%d t2=%d options=%s}", o.IAID, o.T1, o.T2, o.Options)
}

// marshalPayload implements the [Option] interface for IAPD.
func (o IAPD) marshalPayload(w *wire.Writer) (err error) {
	w.Uint32(o.IAID)
	w.Uint32(o.T1)
	w.Uint32(o.T2)

	return o.Options.marshal(w, levelIA)
}

// decodeIAPD decodes the data of an IA_PD option.
func decodeIAPD(r *wire.Reader) (o Option, err error) {
	ia := IAPD{}
	ia.IAID, ia.T1, ia.T2, err = readIAHeader(r)
	if err != nil {
		return nil, err
	}

	ia.Options, err = decodeOptions(r, levelIA)
	if err != nil {
		return nil, err
	}

	return ia, nil
}

// readIAHeader reads the IAID and the timers shared by IA_NA and IA_PD.
func readIAHeader(r *wire.Reader) (iaid, t1, t2 uint32, err error) {
	if iaid, err = r.Uint32(); err != nil {
		return 0, 0, 0, fmt.Errorf("reading iaid: %w", err)
	} else if t1, err = r.Uint32(); err != nil {
		return 0, 0, 0, fmt.Errorf("reading t1: %w", err)
	} else if t2, err = r.Uint32(); err != nil {
		return 0, 0, 0, fmt.Errorf("reading t2: %w", err)
	}

	return iaid, t1, t2, nil
}

// IAAddr is the IA Address option, RFC 3315 Section 22.6.
type IAAddr struct {
	// Options are the options encapsulated in the address, typically
	// [StatusCode].
	Options Options

	// Addr is the IPv6 address.
	Addr netip.Addr

	// PreferredLifetime is the preferred lifetime of the address in seconds.
	PreferredLifetime uint32

	// ValidLifetime is the valid lifetime of the address in seconds.
	ValidLifetime uint32
}

// type check
var _ Option = IAAddr{}

// Code implements the [Option] interface for IAAddr.
func (IAAddr) Code() (c OptionCode) { return OptionIAAddr }

// String implements the [Option] interface for IAAddr.
func (o IAAddr) String() (s string) {
	return fmt.Sprintf(
		"IAADDR{addr=%s preferred=%d valid=%d options=%s}",
		o.Addr,
		o.PreferredLifetime,
		o.ValidLifetime,
		o.Options,
	)
}

// marshalPayload implements the [Option] interface for IAAddr.
func (o IAAddr) marshalPayload(w *wire.Writer) (err error) {
	if err = validateIPv6(o.Addr); err != nil {
		return err
	}

	w.Addr(o.Addr)
	w.Uint32(o.PreferredLifetime)
	w.Uint32(o.ValidLifetime)

	return o.Options.marshal(w, levelAddr)
}

// decodeIAAddr decodes the data of an IA Address option.
func decodeIAAddr(r *wire.Reader) (o Option, err error) {
	a := IAAddr{}
	if a.Addr, err = r.Addr(); err != nil {
		return nil, fmt.Errorf("reading address: %w", err)
	} else if a.PreferredLifetime, err = r.Uint32(); err != nil {
		return nil, fmt.Errorf("reading preferred lifetime: %w", err)
	} else if a.ValidLifetime, err = r.Uint32(); err != nil {
		return nil, fmt.Errorf("reading valid lifetime: %w", err)
	}

	a.Options, err = decodeOptions(r, levelAddr)
	if err != nil {
		return nil, err
	}

	return a, nil
}

// IAPrefix is the IA Prefix option, RFC 3633 Section 10.
type IAPrefix struct {
	// Options are the options encapsulated in the prefix.
	Options Options

	// Prefix is the delegated prefix.  Its address bits beyond the prefix
	// length are preserved as is.
	Prefix netip.Prefix

	// PreferredLifetime is the preferred lifetime of the prefix in seconds.
	PreferredLifetime uint32

	// ValidLifetime is the valid lifetime of the prefix in seconds.
	ValidLifetime uint32
}

// type check
var _ Option = IAPrefix{}

// Code implements the [Option] interface for IAPrefix.
func (IAPrefix) Code() (c OptionCode) { return OptionIAPrefix }

// String implements the [Option] interface for IAPrefix.
func (o IAPrefix) String() (s string) {
	return fmt.Sprintf(
		"IAPREFIX{prefix=%s preferred=%d valid=%d options=%s}",
		o.Prefix,
		o.PreferredLifetime,
		o.ValidLifetime,
		o.Options,
	)
}

// marshalPayload implements the [Option] interface for IAPrefix.
func (o IAPrefix) marshalPayload(w *wire.Writer) (err error) {
	if !o.Prefix.IsValid() {
		return fmt.Errorf("prefix %s: %w", o.Prefix, ErrInvalidValue)
	} else if err = validateIPv6(o.Prefix.Addr()); err != nil {
		return err
	}

	w.Uint32(o.PreferredLifetime)
	w.Uint32(o.ValidLifetime)
	w.Uint8(uint8(o.Prefix.Bits()))
	w.Addr(o.Prefix.Addr())

	return o.Options.marshal(w, levelAddr)
}

// decodeIAPrefix decodes the data of an IA Prefix option.
func decodeIAPrefix(r *wire.Reader) (o Option, err error) {
	p := IAPrefix{}
	if p.PreferredLifetime, err = r.Uint32(); err != nil {
		return nil, fmt.Errorf("reading preferred lifetime: %w", err)
	} else if p.ValidLifetime, err = r.Uint32(); err != nil {
		return nil, fmt.Errorf("reading valid lifetime: %w", err)
	}

	bitsOff := r.Offset()
	bits, err := r.Uint8()
	if err != nil {
		return nil, fmt.Errorf("reading prefix length: %w", err)
	}

	addr, err := r.Addr()
	if err != nil {
		return nil, fmt.Errorf("reading prefix: %w", err)
	}

	if bits > 128 {
		return nil, &wire.OffsetError{
			Err:    fmt.Errorf("prefix length %d exceeds 128: %w", bits, ErrInvalidValue),
			Offset: bitsOff,
		}
	}

	p.Prefix = netip.PrefixFrom(addr, int(bits))

	p.Options, err = decodeOptions(r, levelAddr)
	if err != nil {
		return nil, err
	}

	return p, nil
}
