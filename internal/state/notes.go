package state

// AddNoteTopic appends a titled note to a timex and stamps the parent.
func (s *Store) AddNoteTopic(timexID, title, content string) (NoteTopic, error) {
	var created NoteTopic
	err := s.mutate(func(now Millis) error {
		t := s.state.Timex(timexID)
		if t == nil {
			return ErrNotFound
		}
		created = NoteTopic{
			ID:        newID(),
			Title:     title,
			Content:   content,
			CreatedAt: now,
			UpdatedAt: now,
		}
		t.NoteTopics = append(t.NoteTopics, created)
		t.UpdatedAt = now
		return nil
	})
	return created, err
}

// UpdateNoteTopic merges a patch into a note topic, stamping both the topic
// and its owning timex.
func (s *Store) UpdateNoteTopic(timexID, topicID string, patch NoteTopicPatch) error {
	return s.mutate(func(now Millis) error {
		t := s.state.Timex(timexID)
		if t == nil {
			return ErrNotFound
		}
		for i := range t.NoteTopics {
			if t.NoteTopics[i].ID != topicID {
				continue
			}
			patch.apply(&t.NoteTopics[i])
			t.NoteTopics[i].UpdatedAt = now
			t.UpdatedAt = now
			return nil
		}
		return ErrNotFound
	})
}

// DeleteNoteTopic removes a note topic. Absent ids are a successful no-op.
func (s *Store) DeleteNoteTopic(timexID, topicID string) error {
	return s.mutate(func(now Millis) error {
		t := s.state.Timex(timexID)
		if t == nil {
			return errNoChange
		}
		for i := range t.NoteTopics {
			if t.NoteTopics[i].ID == topicID {
				t.NoteTopics = append(t.NoteTopics[:i], t.NoteTopics[i+1:]...)
				t.UpdatedAt = now
				return nil
			}
		}
		return errNoChange
	})
}
