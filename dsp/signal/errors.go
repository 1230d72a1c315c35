package signal

import "errors"

var (
	// ErrShape is returned when data length and shape disagree or an extent is invalid.
	ErrShape = errors.New("signal: invalid shape")

	// ErrIndex is returned for navigation indices or crop ranges outside the array bounds.
	ErrIndex = errors.New("signal: index out of range")
)
