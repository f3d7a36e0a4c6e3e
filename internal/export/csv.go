package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"holong/internal/state"
)

// WriteTurnsCSV writes a flat log of every recorded turn, one row per turn,
// for use in spreadsheets. Open turns have an empty end column.
func WriteTurnsCSV(st state.AppState, path string, now time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Timex", "Section", "Label", "Start", "End", "Duration"}); err != nil {
		return err
	}

	for _, t := range st.Timexes {
		sectionName := t.SectionID
		if sec := st.Section(t.SectionID); sec != nil {
			sectionName = sec.Name
		}
		for _, turn := range t.Turns {
			endStr := ""
			if turn.EndTime != nil {
				endStr = turn.EndTime.Local().Format(time.RFC3339)
			}
			row := []string{
				t.Name,
				sectionName,
				turn.Label,
				turn.StartTime.Local().Format(time.RFC3339),
				endStr,
				state.FormatDuration(state.TurnDuration(turn, now)),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return w.Error()
}

// DefaultCSVPath returns a dated CSV export path in the user's home directory.
func DefaultCSVPath(now time.Time) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fmt.Sprintf("holong-turns-%s.csv", now.Format("2006-01-02"))), nil
}
