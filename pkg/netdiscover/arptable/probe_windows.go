//go:build windows

package arptable

import (
	"context"
	"errors"
	"time"
)

const (
	// DefaultProbeTimeout bounds a single ARP request.
	DefaultProbeTimeout = 1 * time.Second
)

var (
	// ErrNotSupported is returned on platforms without raw ARP access.
	ErrNotSupported = errors.New("ARP probing is not supported on Windows")
	// ErrInvalidIP is returned when the target does not parse as IPv4.
	ErrInvalidIP = errors.New("invalid IPv4 address")
)

// DebugLogger can be set to capture debug output from this package.
var DebugLogger func(format string, args ...interface{})

// ProbeResult holds the outcome of one active ARP request.
type ProbeResult struct {
	IP       string
	MAC      string
	Up       bool
	Duration time.Duration
	Err      error
}

// Prober sends ARP requests directly instead of reading the cached table.
// On Windows this is a stub; every probe fails with ErrNotSupported.
type Prober struct {
	Timeout time.Duration
}

// NewProber returns a Prober with default settings.
func NewProber() *Prober {
	return &Prober{Timeout: DefaultProbeTimeout}
}

// Probe always returns ErrNotSupported on Windows.
func (p *Prober) Probe(ctx context.Context, ip string) (*ProbeResult, error) {
	return &ProbeResult{IP: ip, Err: ErrNotSupported}, ErrNotSupported
}

// ProbeMultiple returns an error result per address on Windows.
func (p *Prober) ProbeMultiple(ctx context.Context, ips []string) []*ProbeResult {
	results := make([]*ProbeResult, len(ips))
	for i, ip := range ips {
		results[i] = &ProbeResult{IP: ip, Err: ErrNotSupported}
	}
	return results
}

// IsSupported reports whether active ARP probing works on this platform.
func IsSupported() bool {
	return false
}
