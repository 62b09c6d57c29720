package hostname

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const (
	// llmnrPort is the well-known LLMNR UDP port.
	llmnrPort = 5355
	// llmnrMulticast is the IPv4 LLMNR multicast group.
	llmnrMulticast = "224.0.0.252"
)

// queryLLMNR asks the network for a PTR record naming ip. The query goes to
// the multicast group first, then directly to the host; many stacks only
// answer one of the two. Returns "" when nobody answers.
func queryLLMNR(ctx context.Context, ip string, timeout time.Duration) string {
	target := net.ParseIP(ip)
	if target == nil {
		return ""
	}
	ip4 := target.To4()
	if ip4 == nil {
		return ""
	}

	// PTR name must be fully qualified for miekg/dns.
	reverseName := fmt.Sprintf("%d.%d.%d.%d.in-addr.arpa.", ip4[3], ip4[2], ip4[1], ip4[0])

	msg := new(dns.Msg)
	msg.SetQuestion(reverseName, dns.TypePTR)
	msg.RecursionDesired = false // LLMNR forbids recursion

	data, err := msg.Pack()
	if err != nil {
		return ""
	}

	dests := []*net.UDPAddr{
		{IP: net.ParseIP(llmnrMulticast), Port: llmnrPort},
		{IP: target, Port: llmnrPort},
	}
	for _, dest := range dests {
		if name := exchangeLLMNR(ctx, data, dest, target, timeout); name != "" {
			return name
		}
	}
	return ""
}

// exchangeLLMNR sends one packed query and waits for a PTR answer from the
// target host.
func exchangeLLMNR(ctx context.Context, query []byte, dest *net.UDPAddr, target net.IP, timeout time.Duration) string {
	conn, err := net.ListenPacket("udp4", ":0")
	if err != nil {
		return ""
	}
	defer conn.Close()

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	if _, err := conn.WriteTo(query, dest); err != nil {
		return ""
	}

	buf := make([]byte, 4096)
	for {
		n, from, err := conn.ReadFrom(buf)
		if err != nil {
			return ""
		}
		// Only the queried host may name itself.
		if udpAddr, ok := from.(*net.UDPAddr); !ok || !udpAddr.IP.Equal(target) {
			continue
		}
		if name := parsePTR(buf[:n]); name != "" {
			return name
		}
	}
}

// parsePTR extracts the first PTR answer from a packed response, with the
// trailing dot removed.
func parsePTR(data []byte) string {
	msg := new(dns.Msg)
	if err := msg.Unpack(data); err != nil {
		return ""
	}
	if !msg.Response {
		return ""
	}
	for _, rr := range msg.Answer {
		if ptr, ok := rr.(*dns.PTR); ok {
			return strings.TrimSuffix(ptr.Ptr, ".")
		}
	}
	return ""
}
