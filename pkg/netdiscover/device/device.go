// Package device reconciles device records gathered from multiple discovery
// sources into one record per IP address.
//
// A record is a flat map of attribute names to string values. Records from a
// TCP scan, an ARP sweep and a reverse DNS pass typically describe the same
// host with different subsets of attributes filled in. Dedupe merges them so
// the final record carries the most complete view available.
package device

import (
	"runtime"
	"sync"

	mapsutil "github.com/projectdiscovery/utils/maps"

	"github.com/dmarwick/go-netdiscover/pkg/netdiscover/addr"
)

// DebugLogger can be set to capture debug output from this package.
var DebugLogger func(format string, args ...interface{})

func debugLog(format string, args ...interface{}) {
	if DebugLogger != nil {
		DebugLogger(format, args...)
	}
}

// Record is a single observation of a device. The "ip" attribute identifies
// the device; records without it are ignored by Dedupe.
type Record map[string]string

// Score counts the attributes carrying a non-empty value. A higher score
// means a more complete observation.
func (r Record) Score() int {
	n := 0
	for _, v := range r {
		if v != "" {
			n++
		}
	}
	return n
}

// clone returns a shallow copy so merging never mutates a caller's map.
func (r Record) clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// merge folds next into base. When next scores strictly higher it replaces
// base wholesale; otherwise next only fills attributes base is missing or
// holds empty. Returns the merged record.
func merge(base, next Record) Record {
	if next.Score() > base.Score() {
		return next.clone()
	}
	for k, v := range next {
		if v == "" {
			continue
		}
		if cur, ok := base[k]; !ok || cur == "" {
			base[k] = v
		}
	}
	return base
}

// Dedupe collapses records to one per IP address. Records missing the "ip"
// attribute, or holding it empty, are dropped. Within each IP the records
// are folded in input order: a strictly more complete record replaces the
// accumulated one, and any other record contributes only the attributes
// still missing. Results are sorted by numeric IP; records whose IP does
// not parse as IPv4 follow in their input order.
func Dedupe(records []Record) []Record {
	if len(records) == 0 {
		return nil
	}

	byIP := make(map[string][]Record)
	var ips []string
	for _, r := range records {
		ip := r["ip"]
		if ip == "" {
			continue
		}
		if _, seen := byIP[ip]; !seen {
			ips = append(ips, ip)
		}
		byIP[ip] = append(byIP[ip], r)
	}
	if len(ips) == 0 {
		return nil
	}
	debugLog("deduping %d records across %d addresses", len(records), len(ips))

	// Values are pointers: SyncLockMap requires a comparable value type.
	merged := mapsutil.NewSyncLockMap[string, *Record]()

	workers := runtime.NumCPU()
	if workers > len(ips) {
		workers = len(ips)
	}

	jobs := make(chan string, len(ips))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ip := range jobs {
				bucket := byIP[ip]
				acc := bucket[0].clone()
				for _, r := range bucket[1:] {
					acc = merge(acc, r)
				}
				_ = merged.Set(ip, &acc)
			}
		}()
	}
	for _, ip := range ips {
		jobs <- ip
	}
	close(jobs)
	wg.Wait()

	ordered := addr.SortNumeric(ips)
	// SortNumeric drops entries that are not IPv4; append those back in
	// their original order so no device is lost.
	if len(ordered) < len(ips) {
		kept := make(map[string]struct{}, len(ordered))
		for _, ip := range ordered {
			kept[ip] = struct{}{}
		}
		for _, ip := range ips {
			if _, ok := kept[ip]; !ok {
				ordered = append(ordered, ip)
			}
		}
	}

	out := make([]Record, 0, len(ordered))
	for _, ip := range ordered {
		if r, ok := merged.Get(ip); ok {
			out = append(out, *r)
		}
	}
	return out
}
