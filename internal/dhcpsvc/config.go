package dhcpsvc

import (
	"fmt"
	"math"
	"net/netip"
	"time"

	"github.com/AdguardTeam/dhcp6wire/internal/rfc1035"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/netutil"
	"github.com/AdguardTeam/golibs/timeutil"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Config is the configuration for the DHCPv6 service.
type Config struct {
	// Interfaces stores the interface-specific configurations of DHCPv6
	// server.
	Interfaces map[string]*InterfaceConfig `yaml:"interfaces"`

	// LocalDomainName is the top-level domain name to use for resolving DHCP
	// clients' hostnames.
	LocalDomainName string `yaml:"local_domain_name"`

	// Enabled is the state of the DHCPv6 service, whether it is enabled or
	// not.
	Enabled bool `yaml:"enabled"`
}

// Validate returns an error if c contains values that can't be sent to
// clients.  c is not modified.
func (c *Config) Validate() (err error) {
	defer func() { err = errors.Annotate(err, "dhcpsvc: validating config: %w") }()

	if c == nil {
		return errors.Error("nil config")
	} else if !c.Enabled {
		return nil
	}

	if c.LocalDomainName != "" {
		err = validateSearchDomain(c.LocalDomainName)
		if err != nil {
			return fmt.Errorf("local domain name: %w", err)
		}
	}

	names := maps.Keys(c.Interfaces)
	slices.Sort(names)

	for _, name := range names {
		err = c.Interfaces[name].validate()
		if err != nil {
			return fmt.Errorf("interface %q: %w", name, err)
		}
	}

	return nil
}

// maxLeaseDuration is the longest lease duration that can be expressed in the
// lifetime fields without meaning infinity.
const maxLeaseDuration = time.Duration(math.MaxUint32-1) * time.Second

// InterfaceConfig is the configuration of a single DHCPv6 interface.
type InterfaceConfig struct {
	// DHCPv6 is the configuration for handling IPv6.
	DHCPv6 *DHCPv6Config `yaml:"dhcpv6"`

	// LeaseDuration is the TTL of a DHCP lease.
	LeaseDuration timeutil.Duration `yaml:"lease_duration"`
}

// validate returns an error if conf is invalid.
func (conf *InterfaceConfig) validate() (err error) {
	switch {
	case conf == nil:
		return errors.Error("nil interface config")
	case conf.DHCPv6 == nil:
		return errors.Error("no dhcpv6 config")
	case conf.LeaseDuration.Duration <= 0:
		return fmt.Errorf("lease duration %s must be positive", conf.LeaseDuration.Duration)
	case conf.LeaseDuration.Duration > maxLeaseDuration:
		return fmt.Errorf("lease duration %s exceeds %s", conf.LeaseDuration.Duration, maxLeaseDuration)
	default:
		return conf.DHCPv6.validate()
	}
}

// DHCPv6Config is the interface-specific configuration for DHCPv6.
type DHCPv6Config struct {
	// RangeStart is the first address in the range to assign to DHCP clients.
	RangeStart netip.Addr `yaml:"range_start"`

	// Unicast is the address clients may send unicast messages to.  It's
	// not advertised if it's the zero address.
	Unicast netip.Addr `yaml:"unicast"`

	// DNSServers are the recursive DNS servers advertised to clients in the
	// given order.
	DNSServers []netip.Addr `yaml:"dns_servers"`

	// SearchList is the domain search list advertised to clients.
	SearchList []string `yaml:"search_list"`

	// Preference is the server preference sent in the advertisements.  255
	// makes clients pick this server immediately.
	Preference uint8 `yaml:"preference"`

	// RapidCommit defines whether the two-message exchange is allowed for
	// clients requesting it.
	RapidCommit bool `yaml:"rapid_commit"`

	// Enabled is the state of the DHCPv6 service, whether it is enabled or not
	// on the specific interface.
	Enabled bool `yaml:"enabled"`
}

// validate returns an error if conf is invalid.
func (conf *DHCPv6Config) validate() (err error) {
	if !conf.Enabled {
		return nil
	}

	if !isIPv6(conf.RangeStart) {
		return fmt.Errorf("range start %s is not ipv6", conf.RangeStart)
	} else if conf.Unicast.IsValid() && !isIPv6(conf.Unicast) {
		return fmt.Errorf("unicast address %s is not ipv6", conf.Unicast)
	}

	for i, ip := range conf.DNSServers {
		if !isIPv6(ip) {
			return fmt.Errorf("dns server at index %d: %s is not ipv6", i, ip)
		}
	}

	for i, name := range conf.SearchList {
		err = validateSearchDomain(name)
		if err != nil {
			return fmt.Errorf("search domain at index %d: %w", i, err)
		}
	}

	return nil
}

// isIPv6 returns true if ip is a valid IPv6 address that isn't an IPv4-mapped
// one.
func isIPv6(ip netip.Addr) (ok bool) {
	return ip.Is6() && !ip.Is4In6()
}

// validateSearchDomain returns an error if name isn't a valid domain name or
// doesn't fit the domain search list option.  Labels are checked by
// [netutil.ValidateDomainName], which accepts any printable ASCII in labels
// other than the top-level one, so name is only further limited by the RFC 1035
// wire format.
func validateSearchDomain(name string) (err error) {
	err = netutil.ValidateDomainName(name)
	if err != nil {
		// Don't wrap the error since it's informative enough as is.
		return err
	}

	_, err = rfc1035.WireLen(name)

	return err
}
