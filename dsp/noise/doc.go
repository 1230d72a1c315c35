// Package noise injects and estimates white Gaussian noise in spectra.
//
// [Inject] adds zero-mean noise of a given variance, drawing from a caller
// supplied random source so results are reproducible under a fixed seed.
// [EstimateVariance] recovers the variance of white noise from the upper half
// of a Hann-tapered periodogram, where smooth spectral backgrounds contribute
// little power.
package noise
