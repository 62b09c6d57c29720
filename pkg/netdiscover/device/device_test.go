// Package device tests for record reconciliation.
package device

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"
)

func TestDedupe_SingleRecord(t *testing.T) {
	in := []Record{{"ip": "192.168.1.10", "mac": "AA:BB:CC:DD:EE:FF"}}
	out := Dedupe(in)
	if len(out) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(out))
	}
	if !reflect.DeepEqual(out[0], in[0]) {
		t.Errorf("Expected record unchanged, got %v", out[0])
	}
}

func TestDedupe_HigherScoreReplaces(t *testing.T) {
	in := []Record{
		{"ip": "192.168.1.10", "status": "up"},
		{"ip": "192.168.1.10", "status": "up", "mac": "AA:BB:CC:DD:EE:FF", "vendor": "Acme"},
	}
	out := Dedupe(in)
	if len(out) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(out))
	}
	if out[0]["vendor"] != "Acme" || out[0]["mac"] != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("Expected richer record to win, got %v", out[0])
	}
}

func TestDedupe_FillMissing(t *testing.T) {
	in := []Record{
		{"ip": "192.168.1.10", "mac": "AA:BB:CC:DD:EE:FF", "status": "up"},
		{"ip": "192.168.1.10", "hostname": "printer.local", "mac": ""},
	}
	out := Dedupe(in)
	if len(out) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(out))
	}
	r := out[0]
	if r["mac"] != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("Existing value must not be overwritten by empty, got %q", r["mac"])
	}
	if r["hostname"] != "printer.local" {
		t.Errorf("Missing attribute must be filled, got %q", r["hostname"])
	}
	if r["status"] != "up" {
		t.Errorf("Unrelated attribute lost: %v", r)
	}
}

func TestDedupe_EqualScoreKeepsFirst(t *testing.T) {
	in := []Record{
		{"ip": "192.168.1.10", "hostname": "first"},
		{"ip": "192.168.1.10", "hostname": "second"},
	}
	out := Dedupe(in)
	if len(out) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(out))
	}
	if out[0]["hostname"] != "first" {
		t.Errorf("Equal score must keep the earlier value, got %q", out[0]["hostname"])
	}
}

func TestDedupe_DropsRecordsWithoutIP(t *testing.T) {
	in := []Record{
		{"mac": "AA:BB:CC:DD:EE:FF"},
		{"ip": "", "hostname": "ghost"},
		{"ip": "192.168.1.10"},
	}
	out := Dedupe(in)
	if len(out) != 1 || out[0]["ip"] != "192.168.1.10" {
		t.Errorf("Records without an ip must be dropped, got %v", out)
	}
}

func TestDedupe_Empty(t *testing.T) {
	if out := Dedupe(nil); out != nil {
		t.Errorf("Expected nil for empty input, got %v", out)
	}
	if out := Dedupe([]Record{{"mac": "AA:BB:CC:DD:EE:FF"}}); out != nil {
		t.Errorf("Expected nil when no record has an ip, got %v", out)
	}
}

func TestDedupe_SortedByNumericIP(t *testing.T) {
	in := []Record{
		{"ip": "192.168.1.100"},
		{"ip": "192.168.1.9"},
		{"ip": "10.0.0.1"},
	}
	out := Dedupe(in)
	want := []string{"10.0.0.1", "192.168.1.9", "192.168.1.100"}
	if len(out) != len(want) {
		t.Fatalf("Expected %d records, got %d", len(want), len(out))
	}
	for i, w := range want {
		if out[i]["ip"] != w {
			t.Errorf("Position %d: expected %s, got %s", i, w, out[i]["ip"])
		}
	}
}

func TestDedupe_InputNotMutated(t *testing.T) {
	rich := Record{"ip": "192.168.1.10", "mac": "AA:BB:CC:DD:EE:FF", "vendor": "Acme"}
	in := []Record{
		{"ip": "192.168.1.10", "status": "up"},
		rich,
		{"ip": "192.168.1.10", "hostname": "printer.local"},
	}
	Dedupe(in)
	if len(rich) != 3 {
		t.Errorf("Input record mutated during merge: %v", rich)
	}
}

// Merged content must not depend on which source produced a record first when
// the records carry disjoint attributes.
func TestDedupe_ContentOrderIndependent(t *testing.T) {
	base := []Record{
		{"ip": "192.168.1.10", "mac": "AA:BB:CC:DD:EE:FF"},
		{"ip": "192.168.1.10", "hostname": "printer.local"},
		{"ip": "192.168.1.10", "vendor": "Acme"},
		{"ip": "192.168.1.20", "status": "up"},
	}
	want := Dedupe(base)

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		shuffled := append([]Record(nil), base...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		got := Dedupe(shuffled)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("Trial %d: result depends on input order:\ngot  %v\nwant %v", trial, got, want)
		}
	}
}

func TestDedupe_ManyAddresses(t *testing.T) {
	var in []Record
	for i := 0; i < 300; i++ {
		ip := fmt.Sprintf("10.0.%d.%d", i/250, i%250+1)
		in = append(in, Record{"ip": ip, "status": "up"})
		in = append(in, Record{"ip": ip, "hostname": fmt.Sprintf("host-%d", i)})
	}
	out := Dedupe(in)
	if len(out) != 300 {
		t.Fatalf("Expected 300 records, got %d", len(out))
	}
	for _, r := range out {
		if r["status"] != "up" || r["hostname"] == "" {
			t.Fatalf("Incomplete merge: %v", r)
		}
	}
}

func TestDedupe_ResultsAreIndependentMaps(t *testing.T) {
	var in []Record
	for i := 0; i < 64; i++ {
		ip := fmt.Sprintf("10.1.0.%d", i+1)
		in = append(in, Record{"ip": ip, "status": "up"})
		in = append(in, Record{"ip": ip, "hostname": fmt.Sprintf("host-%d", i)})
	}
	out := Dedupe(in)
	if len(out) != 64 {
		t.Fatalf("Expected 64 records, got %d", len(out))
	}

	// Each merged record must be its own map; writing to one must not leak
	// into another or back into the inputs.
	out[0]["vendor"] = "mutated"
	for i := 1; i < len(out); i++ {
		if out[i]["vendor"] != "" {
			t.Fatalf("Record %d shares storage with record 0: %v", i, out[i])
		}
	}
	for _, r := range in {
		if r["vendor"] != "" {
			t.Fatalf("Input record shares storage with a result: %v", r)
		}
	}
}

func TestRecord_Score(t *testing.T) {
	tests := []struct {
		name string
		r    Record
		want int
	}{
		{"empty", Record{}, 0},
		{"all filled", Record{"ip": "1.2.3.4", "mac": "AA"}, 2},
		{"empty values ignored", Record{"ip": "1.2.3.4", "mac": "", "vendor": ""}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Score(); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

// Benchmark tests
func BenchmarkDedupe(b *testing.B) {
	var in []Record
	for i := 0; i < 256; i++ {
		ip := fmt.Sprintf("192.168.1.%d", i)
		in = append(in, Record{"ip": ip, "status": "up"})
		in = append(in, Record{"ip": ip, "mac": "AA:BB:CC:DD:EE:FF", "vendor": "Acme"})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Dedupe(in)
	}
}
