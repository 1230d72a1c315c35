package despike

import "errors"

var (
	// ErrNotSignal1D is returned when the container's spectra are not one-dimensional.
	ErrNotSignal1D = errors.New("despike: signal dimension must be 1")

	// ErrInvalidThreshold is returned for thresholds that are not finite and > 0.
	ErrInvalidThreshold = errors.New("despike: threshold must be finite and > 0")

	// ErrInvalidWidth is returned for spike widths < 1.
	ErrInvalidWidth = errors.New("despike: spike width must be >= 1")

	// ErrInvalidLocation is returned when a repair location lies outside the spectrum.
	ErrInvalidLocation = errors.New("despike: spike location out of range")

	// ErrWindowCoversSpectrum is returned when the repair window leaves no samples to interpolate from.
	ErrWindowCoversSpectrum = errors.New("despike: repair window covers the whole spectrum")

	// ErrNoSpikeSelected is returned by Apply when no spike has been found.
	ErrNoSpikeSelected = errors.New("despike: no spike selected")
)
