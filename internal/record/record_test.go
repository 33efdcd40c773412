package record

import (
	"testing"
	"time"
)

func TestTimestampRoundTrips(t *testing.T) {
	ts := Timestamp()
	parsed, err := time.Parse(TimestampLayout, ts)
	if err != nil {
		t.Fatalf("timestamp %q does not parse: %v", ts, err)
	}
	if parsed.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", parsed.Location())
	}
}

func TestTimestampFixedWidth(t *testing.T) {
	// The dashboard merges activity feeds by string comparison, so every
	// timestamp must have the same width regardless of sub-second value.
	instants := []time.Time{
		time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		time.Date(2026, 1, 2, 3, 4, 5, 120000000, time.UTC),
		time.Date(2026, 1, 2, 3, 4, 5, 123456000, time.UTC),
	}
	want := len(instants[0].Format(TimestampLayout))
	for _, instant := range instants {
		got := instant.Format(TimestampLayout)
		if len(got) != want {
			t.Fatalf("timestamp %q has width %d, want %d", got, len(got), want)
		}
	}
}

func TestTimestampOrdering(t *testing.T) {
	earlier := time.Date(2026, 1, 2, 3, 4, 5, 900000000, time.UTC).Format(TimestampLayout)
	later := time.Date(2026, 1, 2, 3, 4, 6, 100000000, time.UTC).Format(TimestampLayout)
	if !(earlier < later) {
		t.Fatalf("expected %q < %q", earlier, later)
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if id == "" || seen[id] {
			t.Fatalf("duplicate or empty id %q", id)
		}
		seen[id] = true
	}
}

func TestGenerateSecret(t *testing.T) {
	a := GenerateSecret()
	b := GenerateSecret()
	if a == b {
		t.Fatalf("expected distinct secrets")
	}
	if len(a) != 43 {
		t.Fatalf("expected 43-char secret, got %d", len(a))
	}
	for _, r := range a {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			t.Fatalf("secret contains non-URL-safe rune %q", r)
		}
	}
}
