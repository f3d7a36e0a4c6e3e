package state

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{-5 * time.Second, "0s"},
		{12 * time.Second, "12s"},
		{3*time.Minute + 12*time.Second, "3m 12s"},
		{5*time.Hour + 3*time.Minute + 30*time.Second, "5h 3m"},
		{2*24*time.Hour + 5*time.Hour + 59*time.Minute, "2d 5h"},
		{24 * time.Hour, "1d 0h"},
		{time.Hour, "1h 0m"},
		{time.Minute, "1m 0s"},
		{999 * time.Millisecond, "0s"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.in); got != c.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTotalDurationRunning(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tx := Timex{StartTime: At(start), UpdatedAt: At(start)}

	if got := TotalDuration(tx, start.Add(90*time.Second)); got != 90*time.Second {
		t.Fatalf("got %v, want 90s", got)
	}
}

func TestTotalDurationPaused(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tx := Timex{
		StartTime: At(start),
		UpdatedAt: At(start.Add(10 * time.Second)),
		Paused:    true,
	}

	// The pause moment freezes the duration regardless of now.
	for _, now := range []time.Time{start, start.Add(time.Minute), start.Add(400 * 24 * time.Hour)} {
		if got := TotalDuration(tx, now); got != 10*time.Second {
			t.Fatalf("at %v: got %v, want 10s", now, got)
		}
	}
}

func TestTotalDurationClampsNegative(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// Clock skew: now before startTime.
	tx := Timex{StartTime: At(start), UpdatedAt: At(start)}
	if got := TotalDuration(tx, start.Add(-time.Hour)); got != 0 {
		t.Fatalf("running: got %v, want 0", got)
	}

	// Paused with updatedAt before startTime.
	tx = Timex{StartTime: At(start), UpdatedAt: At(start.Add(-time.Hour)), Paused: true}
	if got := TotalDuration(tx, start); got != 0 {
		t.Fatalf("paused: got %v, want 0", got)
	}
}

func TestTurnDuration(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	end := At(start.Add(5 * time.Second))

	closed := Turn{StartTime: At(start), EndTime: &end}
	if got := TurnDuration(closed, start.Add(time.Hour)); got != 5*time.Second {
		t.Fatalf("closed: got %v, want 5s", got)
	}

	open := Turn{StartTime: At(start)}
	if got := TurnDuration(open, start.Add(7*time.Second)); got != 7*time.Second {
		t.Fatalf("open: got %v, want 7s", got)
	}
	if got := TurnDuration(open, start.Add(-time.Second)); got != 0 {
		t.Fatalf("skewed: got %v, want 0", got)
	}
}

func TestHasActiveTurn(t *testing.T) {
	start := At(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	end := start

	// No turns means implicitly active.
	if !HasActiveTurn(Timex{}) {
		t.Fatal("timex with no turns should count as active")
	}
	if !HasActiveTurn(Timex{Turns: []Turn{{ID: "a", StartTime: start}}}) {
		t.Fatal("open turn should count as active")
	}
	if HasActiveTurn(Timex{Turns: []Turn{{ID: "a", StartTime: start, EndTime: &end}}}) {
		t.Fatal("all-closed turns should not count as active")
	}
}

func TestActiveTurn(t *testing.T) {
	start := At(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	end := start

	if ActiveTurn(Timex{}) != nil {
		t.Fatal("no turns: expected nil")
	}

	tx := Timex{Turns: []Turn{
		{ID: "a", StartTime: start, EndTime: &end},
		{ID: "b", StartTime: start},
	}}
	got := ActiveTurn(tx)
	if got == nil || got.ID != "b" {
		t.Fatalf("expected open turn b, got %+v", got)
	}
}
