// Package mac tests for MAC canonicalization.
package mac

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Standard formats
		{"00:11:22:33:44:55", "00:11:22:33:44:55"},
		{"00-11-22-33-44-55", "00:11:22:33:44:55"},
		{"001122334455", "00:11:22:33:44:55"},
		{"00.11.22.33.44.55", "00:11:22:33:44:55"},

		// Mixed case
		{"aa:bb:cc:dd:ee:ff", "AA:BB:CC:DD:EE:FF"},
		{"aa-bb-cc-dd-ee-ff", "AA:BB:CC:DD:EE:FF"},
		{"Aa:Bb:Cc:Dd:Ee:Ff", "AA:BB:CC:DD:EE:FF"},
		{"AABBCCDDEEFF", "AA:BB:CC:DD:EE:FF"},

		// Excess input: only the first six octets are used
		{"00:11:22:33:44:55:66", "00:11:22:33:44:55"},
		{"001122334455667788", "00:11:22:33:44:55"},

		// Degraded fallback: fewer than six recoverable octets
		{"xyz", "XYZ"},
		{"", ""},
		{"00:11:22", "00:11:22"},
		{"not-a-mac", "NOT-A-MAC"},
		{"aabbcc", "AABBCC"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"aa-bb-cc-dd-ee-ff",
		"001122334455",
		"00:11:22:33:44:55",
		"xyz",
		"aabbcc",
		"",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once := Normalize(in)
			twice := Normalize(once)
			if once != twice {
				t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
			}
		})
	}
}

func TestNormalize_CanonicalLength(t *testing.T) {
	got := Normalize("aabbccddeeff")
	if len(got) != CanonicalLength {
		t.Errorf("Expected canonical form of %d chars, got %d (%q)", CanonicalLength, len(got), got)
	}
	if strings.Count(got, ":") != 5 {
		t.Errorf("Expected 5 colons in %q", got)
	}
}

func TestExtractOUI(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"AA:BB:CC:DD:EE:FF", "AA:BB:CC"},
		{"aa-bb-cc-dd-ee-ff", "AA:BB:CC"},
		{"001122334455", "00:11:22"},

		// Degraded input passes through unchanged
		{"xyz", "XYZ"},
		{"aabbcc", "AABBCC"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ExtractOUI(tt.input); got != tt.expected {
				t.Errorf("ExtractOUI(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeBatch(t *testing.T) {
	input := []string{
		"aa-bb-cc-dd-ee-ff",
		"001122334455",
		"xyz",
		"00:11:22:33:44:55",
	}
	expected := []string{
		"AA:BB:CC:DD:EE:FF",
		"00:11:22:33:44:55",
		"XYZ",
		"00:11:22:33:44:55",
	}

	got := NormalizeBatch(input)
	if len(got) != len(expected) {
		t.Fatalf("Expected %d results, got %d", len(expected), len(got))
	}
	for i, want := range expected {
		if got[i] != want {
			t.Errorf("got[%d] = %q, want %q (order must match input)", i, got[i], want)
		}
	}
}

func TestNormalizeBatch_Empty(t *testing.T) {
	if got := NormalizeBatch(nil); got != nil {
		t.Errorf("Expected nil for empty batch, got %v", got)
	}
}

func TestNormalizeBatch_Large(t *testing.T) {
	// Larger than any worker count so the jobs channel actually spreads work.
	input := make([]string, 1000)
	for i := range input {
		input[i] = "aa-bb-cc-dd-ee-ff"
	}
	got := NormalizeBatch(input)
	for i, g := range got {
		if g != "AA:BB:CC:DD:EE:FF" {
			t.Fatalf("got[%d] = %q", i, g)
		}
	}
}

// Benchmark tests
func BenchmarkNormalize_FastPath(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Normalize("00:11:22:33:44:55")
	}
}

func BenchmarkNormalize_Dashes(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Normalize("00-11-22-33-44-55")
	}
}

func BenchmarkNormalizeBatch(b *testing.B) {
	macs := make([]string, 256)
	for i := range macs {
		macs[i] = "aa-bb-cc-dd-ee-ff"
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = NormalizeBatch(macs)
	}
}
