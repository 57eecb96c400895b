package service

import (
	"testing"
	"time"
)

func TestCalculateDuration_FloorsToMinutes(t *testing.T) {
	entry := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	exit := entry.Add(95 * time.Minute)

	if got := CalculateDuration(&entry, &exit); got != 95 {
		t.Fatalf("expected 95 minutes, got %d", got)
	}

	// 95m30s still floors to 95.
	exit = entry.Add(95*time.Minute + 30*time.Second)
	if got := CalculateDuration(&entry, &exit); got != 95 {
		t.Fatalf("expected floor to 95 minutes, got %d", got)
	}
}

func TestCalculateDuration_MissingTimestamps(t *testing.T) {
	now := time.Now()
	if got := CalculateDuration(nil, &now); got != 0 {
		t.Fatalf("expected 0 for missing entry, got %d", got)
	}
	if got := CalculateDuration(&now, nil); got != 0 {
		t.Fatalf("expected 0 for missing exit, got %d", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0h 0m"},
		{59, "0h 59m"},
		{60, "1h 0m"},
		{95, "1h 35m"},
		{135, "2h 15m"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.minutes); got != c.want {
			t.Fatalf("minutes %d: expected %q, got %q", c.minutes, c.want, got)
		}
	}
}

func TestDurationFormatRoundTrip(t *testing.T) {
	entry := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	exit := entry.Add(5700000 * time.Millisecond) // 95 minutes

	minutes := CalculateDuration(&entry, &exit)
	if minutes != 95 {
		t.Fatalf("expected 95 minutes, got %d", minutes)
	}
	if got := FormatDuration(minutes); got != "1h 35m" {
		t.Fatalf("expected %q, got %q", "1h 35m", got)
	}
}
