// Package mac normalizes MAC address text into the canonical uppercase
// colon-delimited form and derives OUI vendor prefixes.
//
// Normalization never fails: input with fewer than six recoverable hex octets
// is returned uppercased but otherwise unchanged, so callers can distinguish
// a degraded value (not 17 characters) from a canonical one without handling
// errors.
package mac

import (
	"runtime"
	"strings"
	"sync"
)

// CanonicalLength is the length of a fully normalized MAC address string.
const CanonicalLength = 17

// OUILength is the length of the vendor prefix: the first three octet groups.
const OUILength = 8

// Normalize converts arbitrary MAC address text to XX:XX:XX:XX:XX:XX form.
func Normalize(m string) string {
	// Fast path: already colon-separated and the right length.
	if len(m) == CanonicalLength && m[2] == ':' {
		upper := strings.ToUpper(m)
		valid := true
		for i := 0; i < len(upper); i++ {
			if !isHexOrColon(upper[i]) {
				valid = false
				break
			}
		}
		if valid {
			return upper
		}
	}

	clean := make([]byte, 0, 12)
	for i := 0; i < len(m) && len(clean) < 12; i++ {
		if c, ok := upperHex(m[i]); ok {
			clean = append(clean, c)
		}
	}

	// Fewer than six octets recovered: degraded fallback, not an error.
	if len(clean) < 12 {
		return strings.ToUpper(m)
	}

	out := make([]byte, 0, CanonicalLength)
	for i := 0; i < 12; i += 2 {
		if i > 0 {
			out = append(out, ':')
		}
		out = append(out, clean[i], clean[i+1])
	}
	return string(out)
}

// ExtractOUI returns the vendor prefix ("XX:XX:XX") of the normalized form.
// If normalization degraded to something shorter, the normalized form is
// returned unchanged.
func ExtractOUI(m string) string {
	n := Normalize(m)
	if len(n) >= OUILength {
		return n[:OUILength]
	}
	return n
}

// NormalizeBatch normalizes every element. Elements are independent, so the
// work is spread across workers; output order matches input order.
func NormalizeBatch(macs []string) []string {
	if len(macs) == 0 {
		return nil
	}

	results := make([]string, len(macs))
	workers := runtime.NumCPU()
	if workers > len(macs) {
		workers = len(macs)
	}

	jobs := make(chan int, len(macs))
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range jobs {
			results[idx] = Normalize(macs[idx])
		}
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go worker()
	}

	for i := range macs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func isHexOrColon(c byte) bool {
	if c == ':' {
		return true
	}
	_, ok := upperHex(c)
	return ok
}

// upperHex returns the uppercase form of a hex digit, or false for any other
// byte.
func upperHex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c, true
	case c >= 'A' && c <= 'F':
		return c, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 'A', true
	default:
		return 0, false
	}
}
