package state

// Patch types model partial updates as typed field sets: a nil pointer
// leaves the field untouched. There is no dynamic merge, so unknown fields
// cannot sneak in.

type TimexPatch struct {
	Name        *string
	Description *string
	SectionID   *string
	Paused      *bool
	Notes       *string
}

func (p TimexPatch) apply(t *Timex) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.SectionID != nil {
		t.SectionID = *p.SectionID
	}
	if p.Paused != nil {
		t.Paused = *p.Paused
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
}

type SectionPatch struct {
	Name  *string
	Color *string
}

func (p SectionPatch) apply(s *Section) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Color != nil {
		s.Color = *p.Color
	}
}

type NoteTopicPatch struct {
	Title   *string
	Content *string
}

func (p NoteTopicPatch) apply(n *NoteTopic) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
}

type PreferencesPatch struct {
	Name        *string
	Theme       *string
	ColorSchema *string
}

func (p PreferencesPatch) apply(u *UserPreferences) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Theme != nil {
		u.Theme = *p.Theme
	}
	if p.ColorSchema != nil {
		u.ColorSchema = *p.ColorSchema
	}
}

// Ptr is a convenience for building patches.
func Ptr[T any](v T) *T {
	return &v
}
