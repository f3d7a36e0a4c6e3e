package state

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// UpdatePreferences merges a patch into the global user preferences.
func (s *Store) UpdatePreferences(patch PreferencesPatch) error {
	return s.mutate(func(Millis) error {
		if patch.Theme != nil {
			if err := validation.Validate(*patch.Theme,
				validation.Required,
				validation.In(ThemeLight, ThemeDark, ThemeSystem)); err != nil {
				return err
			}
		}
		patch.apply(&s.state.UserPreferences)
		return nil
	})
}

// Reset replaces the state with the fixed default. Preferences are carried
// over explicitly by the caller rather than read from the old state.
func (s *Store) Reset(prefs UserPreferences) {
	s.mutate(func(now Millis) error {
		next := DefaultState(now.Time)
		next.UserPreferences = prefs
		s.state = next
		return nil
	})
}

// ReplaceState swaps in an entirely new state, used by import. The payload
// is validated and rejected on structural invalidity; the current state is
// untouched on failure.
func (s *Store) ReplaceState(next AppState) error {
	return s.mutate(func(Millis) error {
		if err := next.Validate(); err != nil {
			return err
		}
		s.state = next.Clone()
		return nil
	})
}
