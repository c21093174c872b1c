package rfc1035_test

import (
	"strings"
	"testing"

	"github.com/AdguardTeam/dhcp6wire/internal/rfc1035"
	"github.com/AdguardTeam/dhcp6wire/internal/wire"
	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// longLabel is a label that is one byte longer than allowed.
var longLabel = strings.Repeat("a", rfc1035.MaxLabelLen+1)

func TestWriteName(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		wantErr error
		want    []byte
	}{{
		name:    "root",
		in:      "",
		wantErr: nil,
		want:    []byte{0},
	}, {
		name:    "root_dot",
		in:      ".",
		wantErr: nil,
		want:    []byte{0},
	}, {
		name:    "single",
		in:      "eng",
		wantErr: nil,
		want:    []byte{3, 'e', 'n', 'g', 0},
	}, {
		name:    "multiple",
		in:      "oxide.computer",
		wantErr: nil,
		want: []byte{
			5, 'o', 'x', 'i', 'd', 'e',
			8, 'c', 'o', 'm', 'p', 'u', 't', 'e', 'r',
			0,
		},
	}, {
		name:    "trailing_dot",
		in:      "eng.",
		wantErr: nil,
		want:    []byte{3, 'e', 'n', 'g', 0},
	}, {
		name:    "long_label",
		in:      longLabel + ".example.com",
		wantErr: wire.ErrInvalidValue,
		want:    nil,
	}, {
		name:    "empty_label",
		in:      "a..b",
		wantErr: wire.ErrInvalidValue,
		want:    nil,
	}, {
		name:    "long_name",
		in:      strings.Repeat(strings.Repeat("a", 63)+".", 4),
		wantErr: wire.ErrInvalidValue,
		want:    nil,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := wire.NewWriter()
			err := rfc1035.WriteName(w, tc.in)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, w.Data())
		})
	}
}

func TestWriteName_maxLen(t *testing.T) {
	// Three labels of 63 bytes and one of 61 bytes make exactly 255 bytes on
	// the wire.
	l63 := strings.Repeat("a", 63)
	name := strings.Join([]string{l63, l63, l63, strings.Repeat("b", 61)}, ".")

	n, err := rfc1035.WireLen(name)
	require.NoError(t, err)
	assert.Equal(t, rfc1035.MaxNameLen, n)

	_, err = rfc1035.WireLen(name + "b")
	assert.ErrorIs(t, err, wire.ErrInvalidValue)
}

func TestWriteName_dnsCompat(t *testing.T) {
	names := []string{
		"eng",
		"oxide.computer",
		"example.com",
		"a.b.c.d.e.f",
		"xn--d1acpjx3f.xn--p1ai",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			w := wire.NewWriter()
			require.NoError(t, rfc1035.WriteName(w, name))

			msg := make([]byte, rfc1035.MaxNameLen)
			off, err := dns.PackDomainName(dns.Fqdn(name), msg, 0, nil, false)
			require.NoError(t, err)

			assert.Equal(t, msg[:off], w.Data())
		})
	}
}

func TestReadName(t *testing.T) {
	testCases := []struct {
		wantErr error
		name    string
		want    string
		in      []byte
	}{{
		wantErr: nil,
		name:    "root",
		want:    "",
		in:      []byte{0},
	}, {
		wantErr: nil,
		name:    "simple",
		want:    "example.com",
		in:      []byte{7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0},
	}, {
		wantErr: wire.ErrInvalidValue,
		name:    "pointer",
		want:    "",
		in:      []byte{3, 'c', 'o', 'm', 0xC0, 0x0C},
	}, {
		wantErr: wire.ErrInvalidValue,
		name:    "long_label",
		want:    "",
		in:      append([]byte{64}, make([]byte, 65)...),
	}, {
		wantErr: wire.ErrInvalidValue,
		name:    "dot_in_label",
		want:    "",
		in:      []byte{3, 'a', '.', 'b', 0},
	}, {
		wantErr: wire.ErrTruncated,
		name:    "short_label",
		want:    "",
		in:      []byte{5, 'a', 'b'},
	}, {
		wantErr: wire.ErrTruncated,
		name:    "no_terminator",
		want:    "",
		in:      []byte{3, 'c', 'o', 'm'},
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := rfc1035.ReadName(wire.NewReader(tc.in))
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReadName_tooLong(t *testing.T) {
	w := wire.NewWriter()
	for i := 0; i < 5; i++ {
		w.Uint8(rfc1035.MaxLabelLen)
		w.Bytes(make([]byte, rfc1035.MaxLabelLen))
	}
	w.Uint8(0)

	_, err := rfc1035.ReadName(wire.NewReader(w.Data()))
	assert.ErrorIs(t, err, wire.ErrInvalidValue)
}

func TestNames_roundTrip(t *testing.T) {
	names := []string{"eng", "oxide.computer", "", "example.org"}

	w := wire.NewWriter()
	require.NoError(t, rfc1035.WriteNames(w, names))

	got, err := rfc1035.ReadNames(wire.NewReader(w.Data()))
	require.NoError(t, err)

	assert.Equal(t, names, got)
}

func TestReadNames_empty(t *testing.T) {
	got, err := rfc1035.ReadNames(wire.NewReader(nil))
	require.NoError(t, err)

	assert.Empty(t, got)
}
