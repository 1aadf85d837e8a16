package util

import "testing"

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if len(id) != 24 {
			t.Fatalf("unexpected id length: %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id: %q", id)
		}
		seen[id] = true
	}
}

func TestShortSuffixNonEmpty(t *testing.T) {
	if ShortSuffix() == "" {
		t.Fatalf("expected non-empty suffix")
	}
}
