package staging

import "errors"

var (
	// ErrInvalidKey indicates an empty, absolute, or traversing key.
	ErrInvalidKey = errors.New("staging: invalid key")

	// ErrNotFound indicates the key has not been written to the area.
	ErrNotFound = errors.New("staging: key not found")

	// ErrReleased indicates the area was used after Release.
	ErrReleased = errors.New("staging: area released")

	// ErrUnavailable indicates the staging directory could not be created or written.
	ErrUnavailable = errors.New("staging: unavailable")
)
