// Package dhcpsvc contains the DHCPv6 server profile of AdGuard Home: its
// configuration and the assembly of the options the server sends to clients.
// It doesn't perform any network I/O.
package dhcpsvc

import (
	"net"
	"net/netip"
	"time"

	"github.com/AdguardTeam/dhcp6wire/internal/dhcpv6"
	"github.com/AdguardTeam/golibs/log"
	"golang.org/x/exp/slices"
)

// Lease is a DHCPv6 lease.
type Lease struct {
	// IP is the IP address leased to the client.
	IP netip.Addr

	// Expiry is the expiration time of the lease.
	Expiry time.Time

	// Hostname of the client.
	Hostname string

	// HWAddr is the physical hardware address (MAC address).
	HWAddr net.HardwareAddr

	// IsStatic defines if the lease is static.
	IsStatic bool
}

// IANA returns the lease as an IA_NA option with the identifier iaid.  The
// lifetimes of a dynamic lease count down to its expiry, measured from now,
// and static leases never expire.
func (l *Lease) IANA(iaid uint32, now time.Time) (ia dhcpv6.IANA) {
	addr := dhcpv6.IAAddr{
		Addr:              l.IP,
		PreferredLifetime: dhcpv6.Infinity,
		ValidLifetime:     dhcpv6.Infinity,
	}

	ia = dhcpv6.IANA{IAID: iaid}
	if !l.IsStatic {
		valid := lifetime(l.Expiry.Sub(now))
		addr.PreferredLifetime, addr.ValidLifetime = valid, valid

		// Renew at 0.5 and rebind at 0.8 of the lifetime as recommended by
		// RFC 3315 Section 22.4.
		ia.T1 = valid / 2
		ia.T2 = uint32(uint64(valid) * 4 / 5)
	}

	ia.Options = dhcpv6.Options{addr}

	return ia
}

// lifetime converts d into whole seconds, clamping it to the range of finite
// lifetimes.
func lifetime(d time.Duration) (sec uint32) {
	switch {
	case d <= 0:
		return 0
	case d >= maxLeaseDuration:
		return dhcpv6.Infinity - 1
	default:
		return uint32(d / time.Second)
	}
}

// hwTypeEthernet is the IANA hardware type of Ethernet.
const hwTypeEthernet uint16 = 1

// DUIDFromHWAddr returns a DUID-LL built from the Ethernet address hw.
func DUIDFromHWAddr(hw net.HardwareAddr) (d dhcpv6.DUID) {
	return dhcpv6.DUIDLL{
		LinkLayerAddr: slices.Clone(hw),
		HWType:        hwTypeEthernet,
	}
}

// ReplyOptions returns the options the server attaches to its response to
// req: the client's identifier, the server's identifier serverID, and the
// configured parameters.  The DNS options are only included if req requests
// them.  l is nil for the messages that don't assign addresses.  opts is nil
// if DHCPv6 isn't configured or is disabled on the interface.
func (conf *InterfaceConfig) ReplyOptions(
	req *dhcpv6.Message,
	serverID dhcpv6.DUID,
	l *Lease,
	iaid uint32,
	now time.Time,
) (opts dhcpv6.Options) {
	v6 := conf.DHCPv6
	if v6 == nil || !v6.Enabled {
		return nil
	}

	if cid := req.GetOne(dhcpv6.OptionClientID); cid != nil {
		opts = append(opts, cid)
	}

	opts = append(opts, dhcpv6.ServerID{DUID: serverID})

	if l != nil {
		opts = append(opts, l.IANA(iaid, now))
	}

	if v6.Preference != 0 && req.Type == dhcpv6.MessageTypeSolicit {
		opts = append(opts, dhcpv6.Preference(v6.Preference))
	}

	if v6.Unicast.IsValid() {
		opts = append(opts, dhcpv6.Unicast{Addr: v6.Unicast})
	}

	if v6.RapidCommit && req.Type == dhcpv6.MessageTypeSolicit && req.Has(dhcpv6.OptionRapidCommit) {
		opts = append(opts, dhcpv6.RapidCommit{})
	}

	requested := requestedOptions(req)
	if len(v6.DNSServers) > 0 && requested[dhcpv6.OptionDNSServers] {
		opts = append(opts, dhcpv6.DNSServers(slices.Clone(v6.DNSServers)))
	}

	if len(v6.SearchList) > 0 && requested[dhcpv6.OptionDomainList] {
		opts = append(opts, dhcpv6.DomainSearchList(slices.Clone(v6.SearchList)))
	}

	log.Debug("dhcpsvc: reply options for %s %s: %s", req.Type, req.TransactionID, opts)

	return opts
}

// requestedOptions returns the set of option codes requested by req.
func requestedOptions(req *dhcpv6.Message) (requested map[dhcpv6.OptionCode]bool) {
	requested = map[dhcpv6.OptionCode]bool{}
	for _, o := range req.Get(dhcpv6.OptionORO) {
		oro, ok := o.(dhcpv6.OptionRequest)
		if !ok {
			continue
		}

		for _, c := range oro {
			requested[c] = true
		}
	}

	return requested
}
