package dhcpv6

import "github.com/AdguardTeam/dhcp6wire/internal/wire"

// optionDecoder decodes the data of a single option.  r is bounded to exactly
// the declared option length and the decoder must consume all of it.
type optionDecoder func(r *wire.Reader) (o Option, err error)

// registry maps the codes of the options this package interprets to their
// decoders.  The encoding half of each pair is the marshalPayload method of the
// corresponding type.  Codes absent from the registry are decoded into
// [UnknownOption].
//
// It is filled in init, since the container decoders refer back to it, and
// must not be modified afterwards.
var registry map[OptionCode]optionDecoder

func init() {
	registry = map[OptionCode]optionDecoder{
		OptionClientID:     decodeClientID,
		OptionServerID:     decodeServerID,
		OptionIANA:         decodeIANA,
		OptionIATA:         decodeIATA,
		OptionIAAddr:       decodeIAAddr,
		OptionORO:          decodeOptionRequest,
		OptionPreference:   decodePreference,
		OptionElapsedTime:  decodeElapsedTime,
		OptionUnicast:      decodeUnicast,
		OptionStatusCode:   decodeStatusCode,
		OptionRapidCommit:  decodeRapidCommit,
		OptionUserClass:    decodeUserClass,
		OptionVendorClass:  decodeVendorClass,
		OptionVendorOpts:   decodeVendorOpts,
		OptionInterfaceID:  decodeInterfaceID,
		OptionReconfMsg:    decodeReconfigureMessage,
		OptionReconfAccept: decodeReconfigureAccept,
		OptionDNSServers:   decodeDNSServers,
		OptionDomainList:   decodeDomainSearchList,
		OptionIAPD:         decodeIAPD,
		OptionIAPrefix:     decodeIAPrefix,
	}
}
