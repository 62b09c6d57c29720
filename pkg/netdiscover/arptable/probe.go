//go:build linux || darwin || freebsd || netbsd || openbsd

package arptable

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/j-keck/arping"

	"github.com/dmarwick/go-netdiscover/pkg/netdiscover/mac"
)

const (
	// DefaultProbeTimeout bounds a single ARP request.
	DefaultProbeTimeout = 1 * time.Second

	// probeConcurrency caps in-flight requests; the OS rate-limits ARP.
	probeConcurrency = 32
)

var (
	// ErrNotSupported is returned on platforms without raw ARP access.
	ErrNotSupported = errors.New("ARP probing is not supported on this platform")
	// ErrInvalidIP is returned when the target does not parse as IPv4.
	ErrInvalidIP = errors.New("invalid IPv4 address")
)

// DebugLogger can be set to capture debug output from this package.
var DebugLogger func(format string, args ...interface{})

func debugLog(format string, args ...interface{}) {
	if DebugLogger != nil {
		DebugLogger(format, args...)
	}
}

// ProbeResult holds the outcome of one active ARP request.
type ProbeResult struct {
	IP       string
	MAC      string
	Up       bool
	Duration time.Duration
	Err      error
}

// Prober sends ARP requests directly instead of reading the cached table.
// Requires elevated privileges on most systems.
type Prober struct {
	Timeout time.Duration
}

// NewProber returns a Prober with default settings.
func NewProber() *Prober {
	return &Prober{Timeout: DefaultProbeTimeout}
}

// Probe sends one ARP request and reports the responding MAC address in
// canonical colon form.
func (p *Prober) Probe(ctx context.Context, ip string) (*ProbeResult, error) {
	result := &ProbeResult{IP: ip}

	parsed := net.ParseIP(ip)
	if parsed == nil || parsed.To4() == nil {
		result.Err = ErrInvalidIP
		return result, ErrInvalidIP
	}

	debugLog("ARP probe %s", ip)
	arping.SetTimeout(p.Timeout)

	type response struct {
		mac net.HardwareAddr
		dur time.Duration
		err error
	}
	respCh := make(chan response, 1)

	start := time.Now()
	go func() {
		hw, dur, err := arping.Ping(parsed)
		respCh <- response{mac: hw, dur: dur, err: err}
	}()

	select {
	case <-ctx.Done():
		result.Duration = time.Since(start)
		result.Err = ctx.Err()
		return result, ctx.Err()
	case resp := <-respCh:
		result.Duration = resp.dur
		if resp.err != nil {
			result.Err = resp.err
			debugLog("%s: no ARP reply: %v", ip, resp.err)
			return result, resp.err
		}
		result.MAC = mac.Normalize(resp.mac.String())
		result.Up = true
		debugLog("%s -> %s (%.2fms)", ip, result.MAC, float64(resp.dur.Microseconds())/1000)
		return result, nil
	}
}

// ProbeMultiple probes several addresses concurrently, returning results in
// input order. Concurrency is capped to avoid tripping OS rate limits.
func (p *Prober) ProbeMultiple(ctx context.Context, ips []string) []*ProbeResult {
	results := make([]*ProbeResult, len(ips))
	var wg sync.WaitGroup

	sem := make(chan struct{}, probeConcurrency)
	for i, ip := range ips {
		wg.Add(1)
		go func(idx int, target string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result, _ := p.Probe(ctx, target)
			results[idx] = result
		}(i, ip)
	}

	wg.Wait()
	return results
}

// IsSupported reports whether active ARP probing works on this platform.
func IsSupported() bool {
	return true
}
