package state

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrProtectedSection = errors.New("protected section")
	ErrEmptyName        = errors.New("name required")
)

// errNoChange signals that a mutation turned out to be a no-op. It never
// escapes the package; callers see a nil error and no observers fire.
var errNoChange = errors.New("no change")
