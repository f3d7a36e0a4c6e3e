package state

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestStateRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	st := DefaultState(now)
	end := At(now.Add(5 * time.Second))
	st.Timexes = []Timex{{
		ID:        "t1",
		Name:      "Battery",
		SectionID: SectionDefault,
		StartTime: At(now),
		NoteTopics: []NoteTopic{
			{ID: "n1", Title: "Findings", Content: "ok", CreatedAt: At(now), UpdatedAt: At(now)},
		},
		Turns: []Turn{
			{ID: "c1", StartTime: At(now), EndTime: &end, Label: "first"},
			{ID: "c2", StartTime: end},
		},
		CreatedAt: At(now),
		UpdatedAt: At(now),
	}}
	st.UserPreferences.Name = "Ada"

	data, err := MarshalState(st)
	if err != nil {
		t.Fatal(err)
	}

	got, err := UnmarshalState(data)
	if err != nil {
		t.Fatal(err)
	}

	if len(got.Timexes) != 1 || got.Timexes[0].ID != "t1" {
		t.Fatalf("timexes lost: %+v", got.Timexes)
	}
	tx := got.Timexes[0]
	if !tx.StartTime.Equal(now) {
		t.Fatalf("startTime drifted: %v", tx.StartTime)
	}
	if len(tx.Turns) != 2 {
		t.Fatalf("turns lost: %+v", tx.Turns)
	}
	if tx.Turns[0].Open() || !tx.Turns[0].EndTime.Equal(end.Time) {
		t.Fatalf("closed turn mangled: %+v", tx.Turns[0])
	}
	if !tx.Turns[1].Open() {
		t.Fatalf("open turn should survive as open: %+v", tx.Turns[1])
	}
	if len(tx.NoteTopics) != 1 || tx.NoteTopics[0].Title != "Findings" {
		t.Fatalf("note topics lost: %+v", tx.NoteTopics)
	}
	if got.UserPreferences.Name != "Ada" {
		t.Fatalf("preferences lost: %+v", got.UserPreferences)
	}
}

func TestMarshalStateWritesVersion(t *testing.T) {
	data, err := MarshalState(DefaultState(time.Now()))
	if err != nil {
		t.Fatal(err)
	}

	var env struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatal(err)
	}
	if env.Version != SchemaVersion {
		t.Fatalf("version = %d, want %d", env.Version, SchemaVersion)
	}
}

func TestMillisZeroMarshalsAsZero(t *testing.T) {
	data, err := json.Marshal(Millis{})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "0" {
		t.Fatalf("zero Millis = %s, want 0", data)
	}

	var m Millis
	if err := json.Unmarshal([]byte("0"), &m); err != nil {
		t.Fatal(err)
	}
	if !m.IsZero() {
		t.Fatalf("expected zero time, got %v", m)
	}
}

// Version-0 blobs predate the noteTopics field and carry a single free-text
// notes string per timex.
const v0Blob = `{
  "timexes": [
    {
      "id": "t1",
      "name": "Battery",
      "sectionId": "default",
      "startTime": 1709294400000,
      "paused": false,
      "notes": "abc",
      "turns": [],
      "archived": false,
      "createdAt": 1709294400000,
      "updatedAt": 1709294400000
    },
    {
      "id": "t2",
      "name": "Plant",
      "sectionId": "default",
      "startTime": 1709294400000,
      "paused": false,
      "turns": [],
      "archived": false,
      "createdAt": 1709294400000,
      "updatedAt": 1709294400000
    }
  ],
  "sections": [
    {"id": "default", "name": "General", "createdAt": 1709294400000, "updatedAt": 1709294400000},
    {"id": "archived", "name": "Archived", "createdAt": 1709294400000, "updatedAt": 1709294400000}
  ],
  "userPreferences": {"name": "User", "theme": "system"}
}`

func TestMigrateV0Notes(t *testing.T) {
	st, err := UnmarshalState([]byte(v0Blob))
	if err != nil {
		t.Fatal(err)
	}

	withNotes := st.Timex("t1")
	if len(withNotes.NoteTopics) != 1 {
		t.Fatalf("expected 1 backfilled topic, got %d", len(withNotes.NoteTopics))
	}
	topic := withNotes.NoteTopics[0]
	if topic.Title != "Legacy Notes" || topic.Content != "abc" {
		t.Fatalf("unexpected topic: %+v", topic)
	}
	if topic.ID == "" {
		t.Fatal("backfilled topic needs an id")
	}
	if !topic.CreatedAt.Equal(withNotes.CreatedAt.Time) {
		t.Fatal("topic timestamps should come from the timex")
	}
	if withNotes.Notes != "abc" {
		t.Fatal("legacy notes field must be preserved")
	}

	// A timex without notes still gets an empty topics list.
	noNotes := st.Timex("t2")
	if noNotes.NoteTopics == nil || len(noNotes.NoteTopics) != 0 {
		t.Fatalf("expected empty topics, got %+v", noNotes.NoteTopics)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	st, err := UnmarshalState([]byte(v0Blob))
	if err != nil {
		t.Fatal(err)
	}

	// Re-encoding writes the current version; decoding again must not
	// duplicate the backfilled topic.
	data, err := MarshalState(st)
	if err != nil {
		t.Fatal(err)
	}
	again, err := UnmarshalState(data)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(again.Timex("t1").NoteTopics); got != 1 {
		t.Fatalf("expected 1 topic after second decode, got %d", got)
	}
}

func TestMigrateSkipsExistingTopics(t *testing.T) {
	// An unversioned blob whose timex already carries noteTopics is left
	// alone even though notes is set.
	blob := strings.Replace(v0Blob, `"notes": "abc",`, `"notes": "abc", "noteTopics": [],`, 1)

	st, err := UnmarshalState([]byte(blob))
	if err != nil {
		t.Fatal(err)
	}
	if got := len(st.Timex("t1").NoteTopics); got != 0 {
		t.Fatalf("expected topics untouched, got %d", got)
	}
}

func TestUnmarshalStateRejectsGarbage(t *testing.T) {
	if _, err := UnmarshalState([]byte("not json")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestUnmarshalStateRejectsInvalid(t *testing.T) {
	// Structurally valid JSON missing the reserved sections.
	bad := `{"version": 1, "timexes": [], "sections": [{"id": "x", "name": "X"}], "userPreferences": {"theme": "system"}}`
	if _, err := UnmarshalState([]byte(bad)); err == nil {
		t.Fatal("expected validation error")
	}
}
