package state

import "strings"

// CreateTimex appends a new timex. The section defaults to the first section
// when none is given; a non-empty sectionID must resolve to a live section.
func (s *Store) CreateTimex(name, description, sectionID string) (Timex, error) {
	var created Timex
	err := s.mutate(func(now Millis) error {
		if strings.TrimSpace(name) == "" {
			return ErrEmptyName
		}
		if sectionID == "" {
			sectionID = s.state.Sections[0].ID
		} else if s.state.Section(sectionID) == nil {
			return ErrNotFound
		}
		created = Timex{
			ID:          newID(),
			Name:        name,
			Description: description,
			SectionID:   sectionID,
			StartTime:   now,
			NoteTopics:  []NoteTopic{},
			Turns:       []Turn{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		s.state.Timexes = append(s.state.Timexes, created)
		return nil
	})
	return created, err
}

// UpdateTimex merges a patch into an existing timex and stamps it.
func (s *Store) UpdateTimex(id string, patch TimexPatch) error {
	return s.mutate(func(now Millis) error {
		t := s.state.Timex(id)
		if t == nil {
			return ErrNotFound
		}
		if patch.SectionID != nil && s.state.Section(*patch.SectionID) == nil {
			return ErrNotFound
		}
		patch.apply(t)
		t.UpdatedAt = now
		return nil
	})
}

// DeleteTimex removes a timex. Deleting an absent id is a successful no-op.
func (s *Store) DeleteTimex(id string) error {
	return s.mutate(func(Millis) error {
		for i := range s.state.Timexes {
			if s.state.Timexes[i].ID == id {
				s.state.Timexes = append(s.state.Timexes[:i], s.state.Timexes[i+1:]...)
				return nil
			}
		}
		return errNoChange
	})
}

// ArchiveTimex moves a timex to the archived section and forces it paused.
func (s *Store) ArchiveTimex(id string) error {
	return s.mutate(func(now Millis) error {
		t := s.state.Timex(id)
		if t == nil {
			return ErrNotFound
		}
		t.Archived = true
		t.Paused = true
		t.SectionID = SectionArchived
		t.UpdatedAt = now
		return nil
	})
}

// UnarchiveTimex returns a timex to the default section and resumes it.
func (s *Store) UnarchiveTimex(id string) error {
	return s.mutate(func(now Millis) error {
		t := s.state.Timex(id)
		if t == nil {
			return ErrNotFound
		}
		t.Archived = false
		t.Paused = false
		t.SectionID = s.state.Sections[0].ID
		t.UpdatedAt = now
		return nil
	})
}

// PauseTimex freezes duration accounting for a timex.
func (s *Store) PauseTimex(id string) error {
	return s.UpdateTimex(id, TimexPatch{Paused: Ptr(true)})
}

// ResumeTimex resumes duration accounting for a timex.
func (s *Store) ResumeTimex(id string) error {
	return s.UpdateTimex(id, TimexPatch{Paused: Ptr(false)})
}
