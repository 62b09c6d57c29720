// Package netdiscover: Debug logging support.
package netdiscover

import (
	"sync"

	"github.com/projectdiscovery/gologger"

	"github.com/dmarwick/go-netdiscover/pkg/netdiscover/arptable"
	"github.com/dmarwick/go-netdiscover/pkg/netdiscover/device"
	"github.com/dmarwick/go-netdiscover/pkg/netdiscover/hostname"
	"github.com/dmarwick/go-netdiscover/pkg/netdiscover/portscan"
	"github.com/dmarwick/go-netdiscover/pkg/netdiscover/records"
	"github.com/dmarwick/go-netdiscover/pkg/netdiscover/ssdp"
	"github.com/dmarwick/go-netdiscover/pkg/netdiscover/vendor"
)

// DebugLevel represents the verbosity level for debug logging.
type DebugLevel int

const (
	// DebugOff disables all debug logging.
	DebugOff DebugLevel = iota
	// DebugBasic logs high-level operations (start/complete/errors).
	DebugBasic
	// DebugVerbose logs per-host detail.
	DebugVerbose
)

// DebugLogger is a callback function for debug logging.
// The source parameter indicates which discovery mechanism generated the message.
type DebugLogger func(source Source, format string, args ...interface{})

var (
	debugLogger DebugLogger
	debugLevel  DebugLevel
	debugMu     sync.RWMutex
)

// SetDebugLogger sets a custom debug logger callback.
// Pass nil to disable debug logging.
func SetDebugLogger(logger DebugLogger) {
	debugMu.Lock()
	defer debugMu.Unlock()
	debugLogger = logger
}

// SetDebugLevel sets the debug verbosity level.
func SetDebugLevel(level DebugLevel) {
	debugMu.Lock()
	defer debugMu.Unlock()
	debugLevel = level
}

// GetDebugLevel returns the current debug level.
func GetDebugLevel() DebugLevel {
	debugMu.RLock()
	defer debugMu.RUnlock()
	return debugLevel
}

// UseGologger routes debug output through gologger at debug level, labelled
// with the originating source. Call SetDebugLevel to choose verbosity.
func UseGologger() {
	SetDebugLogger(func(source Source, format string, args ...interface{}) {
		gologger.Debug().Label(string(source)).Msgf(format, args...)
	})
}

func debugLog(source Source, format string, args ...interface{}) {
	debugMu.RLock()
	logger := debugLogger
	level := debugLevel
	debugMu.RUnlock()

	if logger != nil && level >= DebugBasic {
		logger(source, format, args...)
	}
}

func debugLogVerbose(source Source, format string, args ...interface{}) {
	debugMu.RLock()
	logger := debugLogger
	level := debugLevel
	debugMu.RUnlock()

	if logger != nil && level >= DebugVerbose {
		logger(source, format, args...)
	}
}

// init wires subpackage debug callbacks into this package's logger. Per-host
// chatter from the subpackages is verbose detail.
func init() {
	portscan.DebugLogger = func(format string, args ...interface{}) {
		debugLogVerbose(SourceTCP, format, args...)
	}
	arptable.DebugLogger = func(format string, args ...interface{}) {
		debugLogVerbose(SourceARP, format, args...)
	}
	hostname.DebugLogger = func(format string, args ...interface{}) {
		debugLogVerbose(SourceDNS, format, args...)
	}
	ssdp.DebugLogger = func(format string, args ...interface{}) {
		debugLog(SourceSSDP, format, args...)
	}
	vendor.DebugLogger = func(format string, args ...interface{}) {
		debugLog(SourceVendor, format, args...)
	}
	device.DebugLogger = func(format string, args ...interface{}) {
		debugLog(SourceEngine, format, args...)
	}
	records.DebugLogger = func(format string, args ...interface{}) {
		debugLog(SourceEngine, format, args...)
	}
}
