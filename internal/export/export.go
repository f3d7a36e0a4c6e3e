// Package export dumps and restores the whole application state as
// timestamped backup files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"holong/internal/state"
)

// DefaultPath returns a dated backup file path in the user's home directory.
func DefaultPath(now time.Time) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fmt.Sprintf("holong-backup-%s.json", now.Format("2006-01-02"))), nil
}

// WriteState dumps the full state to path, using the same schema as the
// persisted blob.
func WriteState(st state.AppState, path string) error {
	data, err := state.MarshalState(st)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

// ReadState parses a user-supplied backup file. The payload is migrated and
// validated; a structurally invalid file is rejected.
func ReadState(path string) (state.AppState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return state.AppState{}, fmt.Errorf("read import file: %w", err)
	}
	return state.UnmarshalState(data)
}
