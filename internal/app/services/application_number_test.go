package services

import (
	"context"
	"testing"
	"time"
)

func TestApplicationNumberFormat(t *testing.T) {
	g := NewApplicationNumberGenerator("")
	g.now = func() time.Time { return time.Date(2025, 6, 14, 23, 30, 0, 0, time.FixedZone("IST", 19800)) }

	if got, want := g.Format(42), "APP20250614000042"; got != want {
		t.Errorf("Format(42) = %q, want %q", got, want)
	}
}

func TestApplicationNumberNextUsesSequence(t *testing.T) {
	store := newMemStore()
	g := NewApplicationNumberGenerator("ADM")
	g.now = func() time.Time { return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) }

	first, err := g.Next(context.Background(), memSequences{store})
	if err != nil {
		t.Fatalf("Next error = %v", err)
	}
	second, _ := g.Next(context.Background(), memSequences{store})

	if first != "ADM20250102000001" || second != "ADM20250102000002" {
		t.Errorf("Next = %q, %q", first, second)
	}
}
