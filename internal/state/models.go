package state

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Reserved section ids. Both sections always exist and cannot be renamed
// or deleted by the user.
const (
	SectionDefault  = "default"
	SectionArchived = "archived"
)

// Theme values accepted in user preferences.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Millis is an instant persisted as integer Unix milliseconds, matching the
// on-disk blob layout. The zero value marshals as 0.
type Millis struct {
	time.Time
}

// At truncates t to millisecond precision and wraps it.
func At(t time.Time) Millis {
	return Millis{t.Truncate(time.Millisecond)}
}

func (m Millis) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return []byte("0"), nil
	}
	return strconv.AppendInt(nil, m.UnixMilli(), 10), nil
}

func (m *Millis) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("parse millis: %w", err)
	}
	if v == 0 {
		m.Time = time.Time{}
		return nil
	}
	m.Time = time.UnixMilli(v).UTC()
	return nil
}

// Turn is one measured interval within a timex. EndTime is nil while the
// turn is still running; at most one turn per timex may be open.
type Turn struct {
	ID        string  `json:"id"`
	StartTime Millis  `json:"startTime"`
	EndTime   *Millis `json:"endTime"`
	Label     string  `json:"label,omitempty"`
}

// Open reports whether the turn has no recorded end time.
func (t Turn) Open() bool {
	return t.EndTime == nil
}

// NoteTopic is a titled free-text note owned by a timex.
type NoteTopic struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt Millis `json:"createdAt"`
	UpdatedAt Millis `json:"updatedAt"`
}

// Timex is a trackable entity whose elapsed duration is being measured.
type Timex struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SectionID   string `json:"sectionId"`
	StartTime   Millis `json:"startTime"`
	Paused      bool   `json:"paused"`
	// Notes is the legacy free-text field, superseded by NoteTopics. It is
	// kept as-is after migration.
	Notes      string      `json:"notes,omitempty"`
	NoteTopics []NoteTopic `json:"noteTopics"`
	Turns      []Turn      `json:"turns"`
	Archived   bool        `json:"archived"`
	CreatedAt  Millis      `json:"createdAt"`
	UpdatedAt  Millis      `json:"updatedAt"`
}

// Section is a named grouping for timexes.
type Section struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	CreatedAt Millis `json:"createdAt"`
	UpdatedAt Millis `json:"updatedAt"`
}

// Reserved reports whether the section is one of the two protected ids.
func (s Section) Reserved() bool {
	return s.ID == SectionDefault || s.ID == SectionArchived
}

type UserPreferences struct {
	Name        string `json:"name"`
	Theme       string `json:"theme"`
	ColorSchema string `json:"colorSchema,omitempty"`
}

// AppState is the aggregate root and the unit of persistence: it is loaded
// and saved wholesale.
type AppState struct {
	Timexes         []Timex         `json:"timexes"`
	Sections        []Section       `json:"sections"`
	UserPreferences UserPreferences `json:"userPreferences"`
}

func newID() string {
	return uuid.NewString()
}

// DefaultState returns the fixed initial state: the two reserved sections,
// no timexes, and default preferences.
func DefaultState(now time.Time) AppState {
	ts := At(now)
	return AppState{
		Timexes: []Timex{},
		Sections: []Section{
			{ID: SectionDefault, Name: "General", CreatedAt: ts, UpdatedAt: ts},
			{ID: SectionArchived, Name: "Archived", CreatedAt: ts, UpdatedAt: ts},
		},
		UserPreferences: UserPreferences{
			Name:  "User",
			Theme: ThemeSystem,
		},
	}
}

// Section returns the section with the given id, or nil.
func (s AppState) Section(id string) *Section {
	for i := range s.Sections {
		if s.Sections[i].ID == id {
			return &s.Sections[i]
		}
	}
	return nil
}

// Timex returns the timex with the given id, or nil.
func (s AppState) Timex(id string) *Timex {
	for i := range s.Timexes {
		if s.Timexes[i].ID == id {
			return &s.Timexes[i]
		}
	}
	return nil
}

// Clone returns a deep copy safe to hand to readers and observers.
func (s AppState) Clone() AppState {
	out := s
	out.Sections = append([]Section(nil), s.Sections...)
	out.Timexes = make([]Timex, len(s.Timexes))
	for i, t := range s.Timexes {
		out.Timexes[i] = t.Clone()
	}
	return out
}

// Clone returns a deep copy of the timex and its nested slices.
func (t Timex) Clone() Timex {
	out := t
	out.NoteTopics = append([]NoteTopic(nil), t.NoteTopics...)
	out.Turns = make([]Turn, len(t.Turns))
	for i, turn := range t.Turns {
		out.Turns[i] = turn
		if turn.EndTime != nil {
			end := *turn.EndTime
			out.Turns[i].EndTime = &end
		}
	}
	return out
}

func (t Turn) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.ID, validation.Required),
	)
}

func (n NoteTopic) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.ID, validation.Required),
		validation.Field(&n.Title, validation.Required),
	)
}

func (t Timex) Validate() error {
	if err := validation.ValidateStruct(&t,
		validation.Field(&t.ID, validation.Required),
		validation.Field(&t.Name, validation.Required),
		validation.Field(&t.SectionID, validation.Required),
		validation.Field(&t.Turns),
		validation.Field(&t.NoteTopics),
	); err != nil {
		return err
	}
	open := 0
	for _, turn := range t.Turns {
		if turn.Open() {
			open++
		}
	}
	if open > 1 {
		return fmt.Errorf("timex %q has %d open turns", t.ID, open)
	}
	return nil
}

func (s Section) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ID, validation.Required),
		validation.Field(&s.Name, validation.Required),
	)
}

func (p UserPreferences) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Theme, validation.Required,
			validation.In(ThemeLight, ThemeDark, ThemeSystem)),
	)
}

// Validate checks structural integrity: reserved sections present, every
// timex referencing a live section, at most one open turn per timex.
func (s AppState) Validate() error {
	if err := validation.ValidateStruct(&s,
		validation.Field(&s.Sections, validation.Required),
		validation.Field(&s.Timexes),
		validation.Field(&s.UserPreferences),
	); err != nil {
		return err
	}
	if s.Section(SectionDefault) == nil || s.Section(SectionArchived) == nil {
		return errors.New("reserved sections missing")
	}
	for _, t := range s.Timexes {
		if s.Section(t.SectionID) == nil {
			return fmt.Errorf("timex %q references unknown section %q", t.ID, t.SectionID)
		}
	}
	return nil
}
