// Package interp provides the interpolants used to bridge a gap in a spectrum.
//
// Available kinds, from cheapest to smoothest:
//
//   - [KindNearest]: value of the nearest known sample
//   - [KindLinear]:  piecewise-linear through the known samples
//   - [KindSpline]:  least-squares spline of a chosen order over the known samples
//
// [Fit] builds a [Func] from known (x, y) samples; [Pad] reports how many
// known samples each side of a gap a kind wants.
package interp
