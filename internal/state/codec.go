package state

import (
	"encoding/json"
	"fmt"
)

// SchemaVersion is the current version of the persisted blob layout.
// Version 0 (an envelope with no version field) predates note topics.
const SchemaVersion = 1

type envelope struct {
	Version int `json:"version"`
	AppState
}

// MarshalState encodes a state into the persisted blob layout, tagged with
// the current schema version.
func MarshalState(s AppState) ([]byte, error) {
	data, err := json.MarshalIndent(envelope{Version: SchemaVersion, AppState: s}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}

// UnmarshalState decodes a persisted blob, applies ordered migrations up to
// the current schema version, and validates the result.
func UnmarshalState(data []byte) (AppState, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return AppState{}, fmt.Errorf("decode state: %w", err)
	}
	st := env.AppState
	v := env.Version
	if v < 0 {
		v = 0
	}
	for ; v < SchemaVersion; v++ {
		migrations[v](&st)
	}
	if err := st.Validate(); err != nil {
		return AppState{}, fmt.Errorf("invalid state: %w", err)
	}
	return st, nil
}

// migrations[v] upgrades a decoded state from schema version v to v+1.
var migrations = [SchemaVersion]func(*AppState){
	migrateNoteTopics,
}

// migrateNoteTopics backfills the noteTopics list for timexes that predate
// it: a non-empty legacy notes field becomes a single "Legacy Notes" topic.
// The notes field itself is left untouched. Timexes that already carry
// noteTopics (even an empty list) are not altered.
func migrateNoteTopics(s *AppState) {
	for i := range s.Timexes {
		t := &s.Timexes[i]
		if t.NoteTopics != nil {
			continue
		}
		t.NoteTopics = []NoteTopic{}
		if t.Notes != "" {
			t.NoteTopics = append(t.NoteTopics, NoteTopic{
				ID:        newID(),
				Title:     "Legacy Notes",
				Content:   t.Notes,
				CreatedAt: t.CreatedAt,
				UpdatedAt: t.UpdatedAt,
			})
		}
	}
}
