// Package addr provides IPv4 CIDR and range expansion, private-address
// classification, and numeric sorting of address lists.
package addr

import (
	"fmt"
	"net"
	"sort"

	"github.com/projectdiscovery/mapcidr"

	"github.com/dmarwick/go-netdiscover/pkg/netdiscover/scanerr"
)

// ExpandCIDR returns every address in the block in ascending order, including
// the network and broadcast addresses.
func ExpandCIDR(block string) ([]string, error) {
	ip, _, err := net.ParseCIDR(block)
	if err != nil {
		return nil, fmt.Errorf("%w: parse CIDR %q: %v", scanerr.ErrInvalidInput, block, err)
	}
	if ip.To4() == nil {
		return nil, fmt.Errorf("%w: %q is not an IPv4 CIDR", scanerr.ErrInvalidInput, block)
	}
	ips, err := mapcidr.IPAddresses(block)
	if err != nil {
		return nil, fmt.Errorf("%w: expand CIDR %q: %v", scanerr.ErrInvalidInput, block, err)
	}
	return ips, nil
}

// ExpandCIDRHosts returns the usable host addresses in the block, excluding
// network and broadcast. Blocks of two or fewer addresses (/31, /32) are
// point-to-point and returned unmodified.
func ExpandCIDRHosts(block string) ([]string, error) {
	ips, err := ExpandCIDR(block)
	if err != nil {
		return nil, err
	}
	if len(ips) <= 2 {
		return ips, nil
	}
	return ips[1 : len(ips)-1], nil
}

// ExpandRange returns the inclusive sequence of addresses between two
// dotted-quad endpoints.
func ExpandRange(start, end string) ([]string, error) {
	startIP := net.ParseIP(start)
	if startIP == nil || startIP.To4() == nil {
		return nil, fmt.Errorf("%w: start address %q", scanerr.ErrInvalidInput, start)
	}
	endIP := net.ParseIP(end)
	if endIP == nil || endIP.To4() == nil {
		return nil, fmt.Errorf("%w: end address %q", scanerr.ErrInvalidInput, end)
	}

	startU := ipToUint32(startIP)
	endU := ipToUint32(endIP)
	if endU < startU {
		return nil, fmt.Errorf("%w: %s precedes %s", scanerr.ErrInvalidRange, end, start)
	}

	out := make([]string, 0, endU-startU+1)
	for u := startU; ; u++ {
		out = append(out, uint32ToIP(u).String())
		if u == endU {
			break
		}
	}
	return out, nil
}

// IsPrivate reports whether the address is within RFC 1918 private space,
// loopback, or link-local. Unparseable addresses are not private.
func IsPrivate(address string) bool {
	ip := net.ParseIP(address)
	if ip == nil {
		return false
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return false
	}
	if ip4[0] == 10 || // 10.0.0.0/8
		(ip4[0] == 172 && ip4[1] >= 16 && ip4[1] <= 31) || // 172.16.0.0/12
		(ip4[0] == 192 && ip4[1] == 168) { // 192.168.0.0/16
		return true
	}
	return ip.IsLoopback() || ip.IsLinkLocalUnicast()
}

// SortNumeric sorts addresses by 32-bit numeric value, stably. Entries that do
// not parse as IPv4 are dropped; callers needing to preserve malformed input
// must filter beforehand.
func SortNumeric(addresses []string) []string {
	type parsed struct {
		value uint32
		text  string
	}
	keep := make([]parsed, 0, len(addresses))
	for _, a := range addresses {
		ip := net.ParseIP(a)
		if ip == nil || ip.To4() == nil {
			continue
		}
		keep = append(keep, parsed{value: ipToUint32(ip), text: a})
	}
	sort.SliceStable(keep, func(i, j int) bool {
		return keep[i].value < keep[j].value
	})
	out := make([]string, len(keep))
	for i, p := range keep {
		out[i] = p.text
	}
	return out
}

func ipToUint32(ip net.IP) uint32 {
	ip = ip.To4()
	return uint32(ip[0])<<24 | uint32(ip[1])<<16 | uint32(ip[2])<<8 | uint32(ip[3])
}

func uint32ToIP(u uint32) net.IP {
	return net.IPv4(byte(u>>24), byte(u>>16), byte(u>>8), byte(u))
}
