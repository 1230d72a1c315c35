package mask

import "errors"

var (
	// ErrShapeMismatch is returned when the mask's relevant shape differs from
	// the target's navigation or signal shape.
	ErrShapeMismatch = errors.New("mask: shape mismatch")

	// ErrDimensionMismatch is returned when a navigation mask has signal axes,
	// or a signal mask has navigation axes.
	ErrDimensionMismatch = errors.New("mask: dimension mismatch")

	// ErrUnsupported is returned for mask values that expose no shape.
	ErrUnsupported = errors.New("mask: unsupported mask type")
)
