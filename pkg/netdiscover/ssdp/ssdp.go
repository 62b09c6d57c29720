// Package ssdp finds UPnP devices through SSDP M-SEARCH. Smart TVs, media
// players, printers, NAS boxes and routers announce themselves this way,
// which surfaces devices that keep every TCP port closed.
//
// Built on github.com/koron/go-ssdp.
package ssdp

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	gossdp "github.com/koron/go-ssdp"
)

const (
	// DefaultTimeout is how long a search waits for responses.
	DefaultTimeout = 3 * time.Second
)

// Search targets. Any UPnP URN string works; these cover the common cases.
const (
	All             = gossdp.All        // every device and service
	RootDevice      = gossdp.RootDevice // UPnP root devices only
	MediaRenderer   = "urn:schemas-upnp-org:device:MediaRenderer:1"
	MediaServer     = "urn:schemas-upnp-org:device:MediaServer:1"
	InternetGateway = "urn:schemas-upnp-org:device:InternetGatewayDevice:1"
)

// DebugLogger can be set to capture debug output from this package.
var DebugLogger func(format string, args ...interface{})

func debugLog(format string, args ...interface{}) {
	if DebugLogger != nil {
		DebugLogger(format, args...)
	}
}

// Result is one announced device or service.
type Result struct {
	IP       string // taken from the Location URL host
	Location string // device description URL
	Server   string // Server header, often names the OS or firmware
	USN      string // unique service name
	ST       string // search target the device matched
	MaxAge   int    // cache lifetime in seconds
}

// Discovery performs SSDP searches.
type Discovery struct {
	Timeout    time.Duration
	Interfaces []net.Interface // nil means all interfaces
}

// NewDiscovery returns a Discovery with default settings.
func NewDiscovery() *Discovery {
	return &Discovery{Timeout: DefaultTimeout}
}

// Discover sends one M-SEARCH for the given target and collects responses
// until the timeout. An empty target searches for everything.
func (s *Discovery) Discover(ctx context.Context, searchTarget string) ([]*Result, error) {
	if searchTarget == "" {
		searchTarget = All
	}
	debugLog("SSDP search target=%s timeout=%v", searchTarget, s.Timeout)

	if len(s.Interfaces) > 0 {
		gossdp.Interfaces = s.Interfaces
		defer func() { gossdp.Interfaces = nil }()
	}

	waitSec := int(s.Timeout.Seconds())
	if waitSec < 1 {
		waitSec = 1
	}

	serviceCh := make(chan []gossdp.Service, 1)
	errCh := make(chan error, 1)
	go func() {
		services, err := gossdp.Search(searchTarget, waitSec, "")
		if err != nil {
			errCh <- err
			return
		}
		serviceCh <- services
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errCh:
		return nil, fmt.Errorf("ssdp search: %w", err)
	case services := <-serviceCh:
		results := convert(services)
		debugLog("SSDP search found %d devices", len(results))
		return results, nil
	}
}

// DiscoverAll runs searches for several common targets and merges the
// responses, deduplicated by USN. Individual search failures are skipped;
// SSDP is best effort.
func (s *Discovery) DiscoverAll(ctx context.Context) ([]*Result, error) {
	targets := []string{All, RootDevice, MediaRenderer}

	seen := make(map[string]bool)
	var results []*Result
	for _, st := range targets {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		found, err := s.Discover(ctx, st)
		if err != nil {
			continue
		}
		for _, r := range found {
			key := r.USN
			if key == "" {
				key = r.IP + r.Location
			}
			if !seen[key] {
				seen[key] = true
				results = append(results, r)
			}
		}
	}
	return results, nil
}

func convert(services []gossdp.Service) []*Result {
	results := make([]*Result, 0, len(services))
	for _, svc := range services {
		results = append(results, &Result{
			IP:       locationIP(svc.Location),
			Location: svc.Location,
			Server:   svc.Server,
			USN:      svc.USN,
			ST:       svc.Type,
			MaxAge:   svc.MaxAge(),
		})
	}
	return results
}

// locationIP pulls the host address out of a description URL like
// "http://192.168.1.1:8080/desc.xml". Returns "" when the host is a name
// rather than an address.
func locationIP(url string) string {
	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimPrefix(url, "https://")
	if idx := strings.Index(url, "/"); idx > 0 {
		url = url[:idx]
	}

	host, _, err := net.SplitHostPort(url)
	if err != nil {
		host = url
	}
	if net.ParseIP(host) != nil {
		return host
	}
	return ""
}
