// Package netdiscover maps out devices on a local IPv4 network. It combines
// TCP connect probing, the system ARP table, reverse DNS with an LLMNR
// fallback, SSDP announcements and MAC vendor lookup into a single device
// inventory, one record per address.
//
// The Engine type runs the full pipeline; each protocol also lives in its
// own subpackage for callers that want just one piece.
package netdiscover

import "time"

// Source identifies which mechanism produced a piece of device information.
type Source string

const (
	SourceTCP    Source = "tcp"
	SourceARP    Source = "arp"
	SourceDNS    Source = "dns"
	SourceLLMNR  Source = "llmnr"
	SourceSSDP   Source = "ssdp"
	SourceVendor Source = "vendor"

	// SourceEngine labels pipeline-level messages that belong to no single
	// discovery mechanism.
	SourceEngine Source = "engine"
)

// Record field names used across discovery sources.
const (
	FieldIP        = "ip"
	FieldMAC       = "mac"
	FieldHostname  = "hostname"
	FieldVendor    = "vendor"
	FieldStatus    = "status"
	FieldOpenPorts = "open_ports"
	FieldLatency   = "response_time_ms"
	FieldMethod    = "discovery_method"
)

// DefaultTimeout is used when no per-probe timeout is specified.
const DefaultTimeout = 2 * time.Second

// DefaultConcurrency is the default connection ceiling for scans.
const DefaultConcurrency = 256
