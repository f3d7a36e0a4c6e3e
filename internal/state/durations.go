package state

import (
	"fmt"
	"time"
)

// TotalDuration returns the wall-clock time a timex has been tracked for,
// independent of its turns. While paused the duration is frozen at the last
// update. Never negative.
func TotalDuration(t Timex, now time.Time) time.Duration {
	var d time.Duration
	if t.Paused {
		d = t.UpdatedAt.Sub(t.StartTime.Time)
	} else {
		d = now.Sub(t.StartTime.Time)
	}
	if d < 0 {
		return 0
	}
	return d
}

// TurnDuration returns the elapsed time of a single turn, using now as the
// end for a still-open turn. Never negative.
func TurnDuration(turn Turn, now time.Time) time.Duration {
	end := now
	if turn.EndTime != nil {
		end = turn.EndTime.Time
	}
	d := end.Sub(turn.StartTime.Time)
	if d < 0 {
		return 0
	}
	return d
}

// HasActiveTurn reports whether the timex is in a running interval. A timex
// with no turns at all is treated as implicitly active.
func HasActiveTurn(t Timex) bool {
	if len(t.Turns) == 0 {
		return true
	}
	for _, turn := range t.Turns {
		if turn.Open() {
			return true
		}
	}
	return false
}

// ActiveTurn returns the single open turn, or nil if there is none or the
// timex has no turns.
func ActiveTurn(t Timex) *Turn {
	for i := range t.Turns {
		if t.Turns[i].Open() {
			return &t.Turns[i]
		}
	}
	return nil
}

// FormatDuration renders the largest two non-zero units among days, hours,
// minutes and seconds. Negative input is clamped to zero.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	mins := secs / 60
	hours := mins / 60
	days := hours / 24

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours%24)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, mins%60)
	case mins > 0:
		return fmt.Sprintf("%dm %ds", mins, secs%60)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// FormatDate renders a calendar date for display.
func FormatDate(t time.Time) string {
	return t.Local().Format("Jan 2, 2006")
}

// FormatDateTime renders a date with time of day for display.
func FormatDateTime(t time.Time) string {
	return t.Local().Format("Jan 2, 2006 15:04")
}
