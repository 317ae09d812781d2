// Package store persists tuned classifier threshold profiles on the
// filesystem. Recognition results themselves are never persisted; only the
// band sets produced by tuning runs, so a tuned recognizer can be rebuilt
// after a restart.
package store

// Store defines threshold-profile persistence.
//
// Error conventions:
//   - nil on success
//   - ErrNotFound (via errors.Is) when a profile does not exist
//   - wrapped descriptive errors for I/O and serialization failures
type Store interface {
	// SaveProfile atomically saves a profile under its name, overwriting
	// any previous version. Implementations use temp-file+rename so a
	// crash never leaves a torn profile behind.
	SaveProfile(p *Profile) error

	// LoadProfile retrieves a profile by name.
	LoadProfile(name string) (*Profile, error)

	// ListProfiles returns metadata for all stored profiles.
	ListProfiles() ([]ProfileInfo, error)

	// DeleteProfile removes a profile and its tuning trace.
	DeleteProfile(name string) error
}

// ErrNotFound is returned when a requested profile does not exist.
// Use errors.Is(err, ErrNotFound).
var ErrNotFound = &NotFoundError{}

// NotFoundError names the missing profile.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	if e.Name != "" {
		return "profile not found: " + e.Name
	}
	return "profile not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
