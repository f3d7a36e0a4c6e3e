package state

// AddTurn starts a new turn on a timex. Any currently open turn is closed
// first, so at most one turn is ever open.
func (s *Store) AddTurn(timexID, label string) (Turn, error) {
	var created Turn
	err := s.mutate(func(now Millis) error {
		t := s.state.Timex(timexID)
		if t == nil {
			return ErrNotFound
		}
		for i := range t.Turns {
			if t.Turns[i].Open() {
				end := now
				t.Turns[i].EndTime = &end
			}
		}
		created = Turn{
			ID:        newID(),
			StartTime: now,
			Label:     label,
		}
		t.Turns = append(t.Turns, created)
		t.UpdatedAt = now
		return nil
	})
	return created, err
}

// EndTurn closes an open turn. Ending an already-closed turn is a no-op.
func (s *Store) EndTurn(timexID, turnID string) error {
	return s.mutate(func(now Millis) error {
		t := s.state.Timex(timexID)
		if t == nil {
			return ErrNotFound
		}
		for i := range t.Turns {
			if t.Turns[i].ID != turnID {
				continue
			}
			if !t.Turns[i].Open() {
				return errNoChange
			}
			end := now
			t.Turns[i].EndTime = &end
			t.UpdatedAt = now
			return nil
		}
		return ErrNotFound
	})
}
