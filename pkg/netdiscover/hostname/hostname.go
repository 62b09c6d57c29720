// Package hostname resolves IP addresses to names for discovered devices.
//
// Resolution cascades: a reverse DNS (PTR) lookup first, then an LLMNR
// query for hosts the local resolver has no record of. Home and lab
// networks rarely run a DNS server with reverse zones, so the LLMNR
// fallback is what names most Windows and systemd-resolved machines.
package hostname

import (
	"context"
	"net"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultTimeout is the per-address resolution budget.
	DefaultTimeout = 2 * time.Second
	// DefaultWorkers is the default number of concurrent lookups.
	DefaultWorkers = 64
)

// DebugLogger can be set to capture debug output from this package.
var DebugLogger func(format string, args ...interface{})

func debugLog(format string, args ...interface{}) {
	if DebugLogger != nil {
		DebugLogger(format, args...)
	}
}

// Result reports the resolution outcome for one address. Hostname is empty
// when neither source produced a name; that is not an error.
type Result struct {
	IP       string
	Hostname string
	Source   string // "dns" or "llmnr"
}

// Resolver resolves addresses via reverse DNS with an LLMNR fallback.
type Resolver struct {
	Timeout time.Duration
	Workers int

	// DisableLLMNR skips the multicast fallback. Useful on networks where
	// LLMNR is filtered or when only authoritative names are wanted.
	DisableLLMNR bool
}

// NewResolver returns a Resolver with default settings.
func NewResolver() *Resolver {
	return &Resolver{
		Timeout: DefaultTimeout,
		Workers: DefaultWorkers,
	}
}

// Resolve finds a name for one address. A host with no name yields an empty
// Hostname and a nil error.
func (r *Resolver) Resolve(ctx context.Context, ip string) (*Result, error) {
	res := &Result{IP: ip}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	lookupCtx, cancel := context.WithTimeout(ctx, timeout)
	names, err := (&net.Resolver{}).LookupAddr(lookupCtx, ip)
	cancel()
	if err == nil && len(names) > 0 {
		res.Hostname = strings.TrimSuffix(names[0], ".")
		res.Source = "dns"
		debugLog("%s -> %s (dns)", ip, res.Hostname)
		return res, nil
	}

	if !r.DisableLLMNR {
		if name := queryLLMNR(ctx, ip, timeout); name != "" {
			res.Hostname = name
			res.Source = "llmnr"
			debugLog("%s -> %s (llmnr)", ip, name)
			return res, nil
		}
	}

	debugLog("%s: no name", ip)
	return res, nil
}

// ResolveMultiple resolves several addresses concurrently, returning results
// in input order.
func (r *Resolver) ResolveMultiple(ctx context.Context, ips []string) []*Result {
	if len(ips) == 0 {
		return nil
	}

	workers := r.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]*Result, len(ips))
	jobs := make(chan int, len(ips))
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range jobs {
			results[idx], _ = r.Resolve(ctx, ips[idx])
		}
	}

	for i := 0; i < workers && i < len(ips); i++ {
		wg.Add(1)
		go worker()
	}

	for i := range ips {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return results
		}
	}
	close(jobs)
	wg.Wait()

	return results
}
