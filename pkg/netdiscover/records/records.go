// Package records reads pipe-delimited device inventory files.
//
// The first line names the fields, every following line holds one device.
// Rows shorter than the header simply leave the trailing fields unset, rows
// longer than the header have their extra values ignored.
package records

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dmarwick/go-netdiscover/pkg/netdiscover/device"
	"github.com/dmarwick/go-netdiscover/pkg/netdiscover/scanerr"
)

// DebugLogger can be set to capture debug output from this package.
var DebugLogger func(format string, args ...interface{})

func debugLog(format string, args ...interface{}) {
	if DebugLogger != nil {
		DebugLogger(format, args...)
	}
}

// ParseFile reads and parses a pipe-delimited inventory file.
func ParseFile(path string) ([]device.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", scanerr.ErrIO, path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", scanerr.ErrEncoding, path)
	}
	return Parse(string(data))
}

// Parse parses pipe-delimited inventory text. The first non-empty line is
// the header; blank lines elsewhere are skipped. An input with no header
// yields no records.
func Parse(text string) ([]device.Record, error) {
	var header []string
	var out []device.Record

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "|")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		if header == nil {
			header = fields
			continue
		}

		rec := make(device.Record, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(fields) {
				rec[name] = fields[i]
			}
		}
		out = append(out, rec)
	}

	debugLog("parsed %d records from %d header fields", len(out), len(header))
	return out, nil
}
