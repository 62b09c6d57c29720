// Package netdiscover: discovery pipeline.
package netdiscover

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/dmarwick/go-netdiscover/pkg/netdiscover/addr"
	"github.com/dmarwick/go-netdiscover/pkg/netdiscover/arptable"
	"github.com/dmarwick/go-netdiscover/pkg/netdiscover/device"
	"github.com/dmarwick/go-netdiscover/pkg/netdiscover/hostname"
	"github.com/dmarwick/go-netdiscover/pkg/netdiscover/portscan"
	"github.com/dmarwick/go-netdiscover/pkg/netdiscover/ssdp"
	"github.com/dmarwick/go-netdiscover/pkg/netdiscover/vendor"
)

// Options configures an Engine. The zero value scans the common ports with
// default limits and every enrichment source enabled except ARP probing,
// which usually needs elevated privileges.
type Options struct {
	// Ports to probe per host; nil means portscan.CommonPorts.
	Ports []int
	// Timeout bounds each connection attempt.
	Timeout time.Duration
	// Concurrency caps simultaneous connection attempts across all hosts.
	Concurrency int64

	// VendorFile is an optional path to an IEEE OUI registry file. When
	// empty, a compiled-in registry is used instead.
	VendorFile string

	// WithARP enables active ARP probing for MAC addresses.
	WithARP bool
	// SkipHostnames disables reverse DNS and LLMNR resolution.
	SkipHostnames bool
	// SkipSSDP disables the UPnP multicast search.
	SkipSSDP bool
}

// Engine runs the full discovery pipeline: port scan, enrichment from ARP,
// name resolution and SSDP, then reconciliation into one record per device.
type Engine struct {
	opts     Options
	db       *vendor.DB
	scanner  *portscan.Scanner
	resolver *hostname.Resolver
	prober   *arptable.Prober
	upnp     *ssdp.Discovery
}

// New creates an Engine. Loading a vendor registry file fails with an error
// from the vendor package; everything else is validated lazily.
func New(opts Options) (*Engine, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}

	e := &Engine{
		opts:     opts,
		scanner:  portscan.NewScanner(),
		resolver: hostname.NewResolver(),
		prober:   arptable.NewProber(),
		upnp:     ssdp.NewDiscovery(),
	}
	e.scanner.Options.Ports = opts.Ports
	e.scanner.Options.Timeout = opts.Timeout
	e.scanner.Options.Concurrency = opts.Concurrency
	e.resolver.Timeout = opts.Timeout
	e.prober.Timeout = opts.Timeout

	if opts.VendorFile != "" {
		db, err := vendor.Load(opts.VendorFile)
		if err != nil {
			return nil, err
		}
		e.db = db
	}
	return e, nil
}

// DiscoverCIDR scans every usable host address in a CIDR block.
func (e *Engine) DiscoverCIDR(ctx context.Context, cidr string) ([]device.Record, error) {
	ips, err := addr.ExpandCIDRHosts(cidr)
	if err != nil {
		return nil, err
	}
	return e.Discover(ctx, ips), nil
}

// DiscoverRange scans every address from start to end inclusive.
func (e *Engine) DiscoverRange(ctx context.Context, start, end string) ([]device.Record, error) {
	ips, err := addr.ExpandRange(start, end)
	if err != nil {
		return nil, err
	}
	return e.Discover(ctx, ips), nil
}

// Discover runs the pipeline over an explicit address list and returns one
// reconciled record per responsive device, sorted by address.
func (e *Engine) Discover(ctx context.Context, ips []string) []device.Record {
	if len(ips) == 0 {
		return nil
	}
	debugLog(SourceEngine, "discovering %d addresses", len(ips))

	var observed []device.Record

	scanned := e.scanner.Scan(ctx, ips)
	debugLog(SourceTCP, "%d/%d hosts have open ports", len(scanned), len(ips))
	for _, r := range scanned {
		observed = append(observed, device.Record{
			FieldIP:        r.IP,
			FieldStatus:    r.Status,
			FieldOpenPorts: joinPorts(r.OpenPorts),
			FieldLatency:   strconv.FormatFloat(r.LatencyMs, 'f', 2, 64),
			FieldMethod:    string(SourceTCP),
		})
	}

	if e.opts.WithARP && arptable.IsSupported() {
		observed = append(observed, e.probeARP(ctx, ips)...)
	}

	live := liveAddresses(observed)

	if !e.opts.SkipHostnames {
		observed = append(observed, e.resolveNames(ctx, live)...)
	}
	if !e.opts.SkipSSDP {
		observed = append(observed, e.searchSSDP(ctx)...)
	}

	return device.Dedupe(observed)
}

// probeARP collects MAC addresses over ARP and tags each with its vendor.
func (e *Engine) probeARP(ctx context.Context, ips []string) []device.Record {
	var out []device.Record
	for _, r := range e.prober.ProbeMultiple(ctx, ips) {
		if r == nil || !r.Up {
			continue
		}
		rec := device.Record{
			FieldIP:     r.IP,
			FieldMAC:    r.MAC,
			FieldStatus: "up",
			FieldMethod: string(SourceARP),
		}
		if name := e.vendorName(r.MAC); name != "" {
			rec[FieldVendor] = name
		}
		out = append(out, rec)
	}
	debugLog(SourceARP, "%d hosts answered ARP", len(out))
	return out
}

// resolveNames attaches hostnames to addresses already known to be up.
func (e *Engine) resolveNames(ctx context.Context, ips []string) []device.Record {
	var out []device.Record
	for _, r := range e.resolver.ResolveMultiple(ctx, ips) {
		if r == nil || r.Hostname == "" {
			continue
		}
		out = append(out, device.Record{
			FieldIP:       r.IP,
			FieldHostname: r.Hostname,
			FieldMethod:   r.Source,
		})
	}
	debugLog(SourceDNS, "%d hostnames resolved", len(out))
	return out
}

// searchSSDP turns multicast announcements into device records. SSDP can
// surface devices outside the scanned range; Dedupe keeps them as separate
// entries.
func (e *Engine) searchSSDP(ctx context.Context) []device.Record {
	found, err := e.upnp.DiscoverAll(ctx)
	if err != nil && len(found) == 0 {
		return nil
	}
	var out []device.Record
	for _, r := range found {
		if r.IP == "" {
			continue
		}
		rec := device.Record{
			FieldIP:     r.IP,
			FieldStatus: "up",
			FieldMethod: string(SourceSSDP),
		}
		if r.Server != "" {
			rec["ssdp_server"] = r.Server
		}
		if r.Location != "" {
			rec["ssdp_location"] = r.Location
		}
		out = append(out, rec)
	}
	return out
}

// vendorName resolves a MAC to its manufacturer, preferring a loaded
// registry file over the compiled-in one.
func (e *Engine) vendorName(mac string) string {
	if e.db != nil {
		if name, ok := e.db.Lookup(mac); ok {
			return name
		}
	}
	return vendor.LookupEmbedded(mac)
}

// liveAddresses extracts the distinct addresses of records already marked
// up, preserving first-seen order.
func liveAddresses(records []device.Record) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		ip := r[FieldIP]
		if ip == "" {
			continue
		}
		if _, ok := seen[ip]; ok {
			continue
		}
		seen[ip] = struct{}{}
		out = append(out, ip)
	}
	return out
}

func joinPorts(ports []int) string {
	if len(ports) == 0 {
		return ""
	}
	parts := make([]string, len(ports))
	for i, p := range ports {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}
