// Package arptable reads the system ARP table and probes hosts for their
// hardware address. The table is a cheap source of IP-to-MAC pairings for
// hosts that never answer a TCP probe.
package arptable

import (
	"regexp"
	"strings"

	"github.com/dmarwick/go-netdiscover/pkg/netdiscover/mac"
)

// entryLine matches one line of `arp -a` output, e.g.
// "router.lan (192.168.1.1) at aa:bb:cc:dd:ee:ff on en0 ifscope [ethernet]".
var entryLine = regexp.MustCompile(`^(\S+)\s+\((\d+\.\d+\.\d+\.\d+)\)\s+at\s+([0-9a-fA-F:]+)`)

// Entry is one row of the ARP table. Hostname is "?" when the resolver had
// no name for the address; MAC is in canonical colon form.
type Entry struct {
	Hostname string
	IP       string
	MAC      string
}

// Parse extracts entries from `arp -a` style output. Lines that do not
// match the expected shape, including "(incomplete)" entries, are skipped.
func Parse(output string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(output, "\n") {
		m := entryLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		entries = append(entries, Entry{
			Hostname: m[1],
			IP:       m[2],
			MAC:      mac.Normalize(m[3]),
		})
	}
	return entries
}
