package dhcpv6_test

import (
	"net/netip"
	"testing"
	"time"

	"github.com/AdguardTeam/dhcp6wire/internal/dhcpv6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_lookup(t *testing.T) {
	first := dhcpv6.IAAddr{Addr: netip.MustParseAddr("2001:db8::1")}
	second := dhcpv6.IAAddr{Addr: netip.MustParseAddr("2001:db8::2")}

	opts := dhcpv6.Options{
		dhcpv6.ElapsedTime(1),
		nil,
		first,
		dhcpv6.RapidCommit{},
		second,
	}

	assert.Equal(t, dhcpv6.Options{first, second}, opts.Get(dhcpv6.OptionIAAddr))
	assert.Nil(t, opts.Get(dhcpv6.OptionDNSServers))

	assert.Equal(t, first, opts.GetOne(dhcpv6.OptionIAAddr))
	assert.Nil(t, opts.GetOne(dhcpv6.OptionClientID))

	assert.True(t, opts.Has(dhcpv6.OptionRapidCommit))
	assert.False(t, opts.Has(dhcpv6.OptionPreference))

	assert.Contains(t, opts.String(), "<nil>")
}

func TestParseMessage_items(t *testing.T) {
	data := mustHex(t, `
		01 00 00 01
		00 0f 00 09 00 01 61 00 00 00 02 62 63
		00 10 00 0a 00 00 01 37 00 04 6d 73 66 74`)

	m, err := dhcpv6.ParseMessage(data)
	require.NoError(t, err)

	assert.Equal(t, dhcpv6.Options{
		dhcpv6.UserClass{Classes: [][]byte{[]byte("a"), nil, []byte("bc")}},
		dhcpv6.VendorClass{Data: [][]byte{[]byte("msft")}, EnterpriseNumber: 311},
	}, m.Options)

	b, err := m.MarshalBinary()
	require.NoError(t, err)

	assert.Equal(t, data, b)
}

func TestParseMessage_itemErrors(t *testing.T) {
	testCases := []struct {
		wantErr error
		name    string
		data    string
	}{{
		wantErr: dhcpv6.ErrTruncated,
		name:    "user_class_short_length",
		data:    `01 00 00 01 00 0f 00 01 00`,
	}, {
		wantErr: dhcpv6.ErrLengthMismatch,
		name:    "user_class_long_item",
		data:    `01 00 00 01 00 0f 00 04 00 05 61 62`,
	}, {
		wantErr: dhcpv6.ErrTruncated,
		name:    "vendor_class_no_enterprise",
		data:    `01 00 00 01 00 10 00 02 00 00`,
	}, {
		wantErr: dhcpv6.ErrTruncated,
		name:    "vendor_opts_no_enterprise",
		data:    `01 00 00 01 00 11 00 03 00 00 01`,
	}, {
		wantErr: dhcpv6.ErrTruncated,
		name:    "status_code_empty",
		data:    `07 00 00 01 00 0d 00 00`,
	}, {
		wantErr: dhcpv6.ErrTruncated,
		name:    "unicast_short",
		data:    `07 00 00 01 00 0c 00 04 20 01 0d b8`,
	}, {
		wantErr: dhcpv6.ErrLengthMismatch,
		name:    "preference_long",
		data:    `02 00 00 01 00 07 00 02 ff ff`,
	}, {
		wantErr: dhcpv6.ErrLengthMismatch,
		name:    "reconfigure_accept_data",
		data:    `01 00 00 01 00 14 00 01 00`,
	}, {
		wantErr: dhcpv6.ErrTruncated,
		name:    "reconfigure_message_empty",
		data:    `0a 00 00 01 00 13 00 00`,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dhcpv6.ParseMessage(mustHex(t, tc.data))
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestOption_String(t *testing.T) {
	testCases := []struct {
		opt  dhcpv6.Option
		name string
		want string
	}{{
		opt:  dhcpv6.OptionRequest{dhcpv6.OptionDNSServers, 1000},
		name: "oro",
		want: "ORO[OPTION_DNS_SERVERS OPTION(1000)]",
	}, {
		opt:  dhcpv6.Preference(10),
		name: "preference",
		want: "PREFERENCE{10}",
	}, {
		opt:  dhcpv6.Unicast{Addr: netip.MustParseAddr("2001:db8::1")},
		name: "unicast",
		want: "UNICAST{2001:db8::1}",
	}, {
		opt:  dhcpv6.StatusCode{Status: 42},
		name: "status_unknown",
		want: `STATUS_CODE{Status(42) ""}`,
	}, {
		opt:  dhcpv6.InterfaceID{0xab, 0xcd},
		name: "interface_id",
		want: "INTERFACE_ID{abcd}",
	}, {
		opt:  dhcpv6.ReconfigureMessage{Type: dhcpv6.MessageTypeRenew},
		name: "reconf_msg",
		want: "RECONF_MSG{RENEW}",
	}, {
		opt:  dhcpv6.DNSServers{netip.MustParseAddr("2001:db8::53")},
		name: "dns_servers",
		want: "DNS_SERVERS[2001:db8::53]",
	}, {
		opt:  dhcpv6.DomainSearchList{"example.org"},
		name: "domain_list",
		want: `DOMAIN_LIST["example.org"]`,
	}, {
		opt:  dhcpv6.UserClass{Classes: [][]byte{{0x01}, {0x02, 0x03}}},
		name: "user_class",
		want: "USER_CLASS{[01 0203]}",
	}, {
		opt:  dhcpv6.ClientID{DUID: dhcpv6.DUIDEN{Identifier: []byte{0x01}, EnterpriseNumber: 1}},
		name: "client_id",
		want: "CLIENTID{DUID-EN{enterprise=1 id=01}}",
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.opt.String())
		})
	}
}

func TestElapsedTime_Duration(t *testing.T) {
	assert.Equal(t, time.Duration(0), dhcpv6.ElapsedTime(0).Duration())
	assert.Equal(t, 10*time.Millisecond, dhcpv6.ElapsedTime(1).Duration())
	assert.Equal(t, 655350*time.Millisecond, dhcpv6.ElapsedTime(0xffff).Duration())
}

func TestMessageType_String(t *testing.T) {
	assert.Equal(t, "INFORMATION-REQUEST", dhcpv6.MessageTypeInformationRequest.String())
	assert.Equal(t, "RELAY-REPL", dhcpv6.MessageTypeRelayReply.String())
	assert.Equal(t, "UNKNOWN(200)", dhcpv6.MessageType(200).String())

	assert.True(t, dhcpv6.MessageTypeSolicit.IsKnown())
	assert.False(t, dhcpv6.MessageType(0).IsKnown())
}

func TestOptions_EqualUnordered(t *testing.T) {
	addr1 := dhcpv6.IAAddr{Addr: netip.MustParseAddr("2001:db8::1"), ValidLifetime: 10}
	addr2 := dhcpv6.IAAddr{Addr: netip.MustParseAddr("2001:db8::2"), ValidLifetime: 10}

	opts := dhcpv6.Options{
		dhcpv6.ElapsedTime(0),
		dhcpv6.RapidCommit{},
		dhcpv6.IANA{Options: dhcpv6.Options{addr1, addr2}, IAID: 1},
		dhcpv6.ElapsedTime(0),
	}

	testCases := []struct {
		other dhcpv6.Options
		name  string
		want  bool
	}{{
		other: opts,
		name:  "same",
		want:  true,
	}, {
		other: dhcpv6.Options{
			dhcpv6.IANA{Options: dhcpv6.Options{addr2, addr1}, IAID: 1},
			dhcpv6.ElapsedTime(0),
			dhcpv6.ElapsedTime(0),
			dhcpv6.RapidCommit{},
		},
		name: "reordered",
		want: true,
	}, {
		other: dhcpv6.Options{
			dhcpv6.IANA{Options: dhcpv6.Options{addr1, addr2}, IAID: 1},
			dhcpv6.ElapsedTime(0),
			dhcpv6.RapidCommit{},
			dhcpv6.RapidCommit{},
		},
		name: "different_multiplicity",
		want: false,
	}, {
		other: dhcpv6.Options{
			dhcpv6.ElapsedTime(0),
			dhcpv6.RapidCommit{},
			dhcpv6.IANA{Options: dhcpv6.Options{addr1, addr1}, IAID: 1},
			dhcpv6.ElapsedTime(0),
		},
		name: "different_nested",
		want: false,
	}, {
		other: dhcpv6.Options{
			dhcpv6.ElapsedTime(0),
			dhcpv6.RapidCommit{},
			dhcpv6.IANA{Options: dhcpv6.Options{addr1, addr2}, IAID: 2},
			dhcpv6.ElapsedTime(0),
		},
		name: "different_header",
		want: false,
	}, {
		other: opts[:3],
		name:  "shorter",
		want:  false,
	}, {
		other: dhcpv6.Options{nil, dhcpv6.RapidCommit{}, opts[2], opts[3]},
		name:  "nil_option",
		want:  false,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, opts.EqualUnordered(tc.other))
			assert.Equal(t, tc.want, tc.other.EqualUnordered(opts))
		})
	}
}
