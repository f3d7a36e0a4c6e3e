package state

import "strings"

// AddSection appends a new section and returns it, so callers can reference
// the generated id immediately.
func (s *Store) AddSection(name, color string) (Section, error) {
	var created Section
	err := s.mutate(func(now Millis) error {
		if strings.TrimSpace(name) == "" {
			return ErrEmptyName
		}
		created = Section{
			ID:        newID(),
			Name:      name,
			Color:     color,
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.state.Sections = append(s.state.Sections, created)
		return nil
	})
	return created, err
}

// UpdateSection merges a patch into a user section. The reserved sections
// are rejected with ErrProtectedSection.
func (s *Store) UpdateSection(id string, patch SectionPatch) error {
	return s.mutate(func(now Millis) error {
		if id == SectionDefault || id == SectionArchived {
			return ErrProtectedSection
		}
		sec := s.state.Section(id)
		if sec == nil {
			return ErrNotFound
		}
		patch.apply(sec)
		sec.UpdatedAt = now
		return nil
	})
}

// DeleteSection removes a user section, reassigning its timexes to the
// default section first. Reserved sections are rejected; deleting an absent
// section is a successful no-op.
func (s *Store) DeleteSection(id string) error {
	return s.mutate(func(now Millis) error {
		if id == SectionDefault || id == SectionArchived {
			return ErrProtectedSection
		}
		idx := -1
		for i := range s.state.Sections {
			if s.state.Sections[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return errNoChange
		}
		for i := range s.state.Timexes {
			if s.state.Timexes[i].SectionID == id {
				s.state.Timexes[i].SectionID = SectionDefault
				s.state.Timexes[i].UpdatedAt = now
			}
		}
		s.state.Sections = append(s.state.Sections[:idx], s.state.Sections[idx+1:]...)
		return nil
	})
}
