// Package despike finds and removes spikes from stacks of one-dimensional spectra.
//
// A spike is a sharp, localized outlier: a jump in the first difference of a
// spectrum larger than a threshold. Removal replaces a window around the spike
// with an interpolant fitted to the samples on either side, optionally adding
// Gaussian noise so the repaired region matches the texture of its surroundings.
//
// Two drivers share the same detection, repair and traversal code:
//
//   - [Session] is an interactive walker. [Session.Find] moves the container's
//     navigation index to the next position holding a spike, [Session.Apply]
//     repairs it and moves on.
//   - [Run] sweeps every unmasked navigation position, repairing every spike it
//     detects, and returns the [Remover] used.
//
// Navigation positions are visited in row-major order (last axis fastest) and
// wrap around cyclically. Navigation and signal masks exclude positions and
// samples from detection; see package mask for their validation rules.
package despike
