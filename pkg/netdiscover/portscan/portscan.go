// Package portscan provides bounded-concurrency TCP connect scanning. It
// requires no raw sockets or elevated privileges and therefore works across
// platforms.
//
// Ports of a single host are probed sequentially under one task; different
// hosts are probed concurrently. A single counting semaphore gates every
// connection attempt across the whole job, so the number of in-flight dials
// never exceeds the configured ceiling regardless of target-set size.
package portscan

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

const (
	// DefaultTimeout is the timeout per TCP dial attempt.
	DefaultTimeout = 800 * time.Millisecond
	// DefaultConcurrency is the default global admission ceiling.
	DefaultConcurrency = 256
)

// DebugLogger is a callback for debug logging.
// Set this to receive debug messages from scan operations.
var DebugLogger func(format string, args ...interface{})

func debugLog(format string, args ...interface{}) {
	if DebugLogger != nil {
		DebugLogger(format, args...)
	}
}

// Options configures a scan.
type Options struct {
	// Ports to probe on each host. Defaults to CommonPorts.
	Ports []int
	// Timeout per TCP dial attempt. A timed-out attempt is indistinguishable
	// from a refused connection.
	Timeout time.Duration
	// Concurrency bounds simultaneous in-flight dial attempts across the
	// entire job, not per host.
	Concurrency int64
}

// Result is the finding for one reachable host. Hosts with zero open ports do
// not produce a Result: absence means "not found reachable", not "scan
// failed".
type Result struct {
	IP string
	// OpenPorts holds the ports confirmed reachable, in the order they appear
	// in the configured port list.
	OpenPorts []int
	// LatencyMs is the minimum connect latency across the host's open ports.
	// It is a heuristic proxy for host round-trip time, not a precise RTT:
	// the fastest-responding service wins.
	LatencyMs float64
	Status    string
}

// Scanner performs TCP connect scans.
type Scanner struct {
	Options Options

	// dial is swappable for tests.
	dial func(ctx context.Context, network, address string) (net.Conn, error)
}

// NewScanner creates a scanner with default options.
func NewScanner() *Scanner {
	return &Scanner{
		Options: Options{
			Ports:       CommonPorts,
			Timeout:     DefaultTimeout,
			Concurrency: DefaultConcurrency,
		},
	}
}

// Scan probes every (host, port) pair and returns the hosts with at least one
// open port. There are no retries: a failed attempt is final for that pair
// within one invocation. Result order is unspecified.
func (s *Scanner) Scan(ctx context.Context, ips []string) []Result {
	opts := s.Options
	if len(opts.Ports) == 0 {
		opts.Ports = CommonPorts
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if len(ips) == 0 {
		return nil
	}

	dial := s.dial
	if dial == nil {
		d := net.Dialer{Timeout: opts.Timeout}
		dial = d.DialContext
	}

	debugLog("Scanning %d hosts x %d ports (ceiling %d)", len(ips), len(opts.Ports), opts.Concurrency)

	sem := semaphore.NewWeighted(opts.Concurrency)
	results := make(chan Result, len(ips))
	var wg sync.WaitGroup

	for _, ip := range ips {
		wg.Add(1)
		go func(ip string) {
			defer wg.Done()
			if r, ok := s.scanHost(ctx, ip, opts, sem, dial); ok {
				results <- r
			}
		}(ip)
	}

	wg.Wait()
	close(results)

	var up []Result
	for r := range results {
		up = append(up, r)
	}
	debugLog("Scan complete: %d/%d hosts up", len(up), len(ips))
	return up
}

// scanHost probes one host's ports in order. Each attempt is admitted only
// once a semaphore slot is free; the slot is released whether the dial
// succeeds, fails, or times out.
func (s *Scanner) scanHost(ctx context.Context, ip string, opts Options, sem *semaphore.Weighted, dial func(context.Context, string, string) (net.Conn, error)) (Result, bool) {
	var open []int
	minLatency := -1.0

	for _, port := range opts.Ports {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}

		start := time.Now()
		attemptCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
		conn, err := dial(attemptCtx, "tcp", fmt.Sprintf("%s:%d", ip, port))
		cancel()
		sem.Release(1)

		if err != nil {
			continue
		}
		conn.Close()

		latency := float64(time.Since(start).Microseconds()) / 1000.0
		open = append(open, port)
		if minLatency < 0 || latency < minLatency {
			minLatency = latency
		}
		debugLog("%s:%d open (%.2fms)", ip, port, latency)
	}

	if len(open) == 0 {
		return Result{}, false
	}
	return Result{
		IP:        ip,
		OpenPorts: open,
		LatencyMs: minLatency,
		Status:    "up",
	}, true
}

// PingSweep scans the hosts against the common-ports profile regardless of
// the configured port list. It is a reachability check, not a service
// inventory.
func (s *Scanner) PingSweep(ctx context.Context, ips []string) []Result {
	sweep := &Scanner{Options: s.Options, dial: s.dial}
	sweep.Options.Ports = CommonPorts
	return sweep.Scan(ctx, ips)
}
