// Package scanerr defines the error taxonomy shared by the discovery core.
// All failures are scoped to a single call; conditions like unmatched vendor
// lookups, unreachable hosts, and unparsed text lines are modeled as absence
// rather than errors and never appear here.
package scanerr

import "errors"

var (
	// ErrInvalidInput is returned for malformed CIDR, IP, or range text.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidRange is returned when a range's end address precedes its start.
	ErrInvalidRange = errors.New("invalid range")
	// ErrIO is returned when a registry or record file cannot be read.
	ErrIO = errors.New("file unreadable")
	// ErrEncoding is returned when file content is not valid UTF-8 text.
	ErrEncoding = errors.New("invalid text encoding")
)
