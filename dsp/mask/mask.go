// Package mask validates boolean navigation and signal masks against a target signal.
//
// A navigation mask holds one boolean per navigation position of the target; a
// signal mask holds one boolean per sample of a single spectrum. Both can be
// supplied either as a boolean signal, which carries its own navigation/signal
// split, or as a raw [Array]. True marks an excluded element.
package mask

import (
	"fmt"

	"github.com/cwbudde/algo-spectra/dsp/core"
)

// Layout is implemented by signals and boolean signals.
type Layout interface {
	NavigationShape() []int
	SignalShape() []int
}

// Input is a mask value. Elements are addressed in row-major order.
type Input interface {
	Len() int
	At(i int) bool
}

// Array is a raw boolean array with an explicit shape.
type Array struct {
	Shape []int
	Data  []bool
}

// NewArray returns an all-false Array of the given shape.
func NewArray(shape ...int) *Array {
	return &Array{Shape: append([]int(nil), shape...), Data: make([]bool, core.Product(shape))}
}

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.Data) }

// At reports the flat element i.
func (a *Array) At(i int) bool { return a.Data[i] }

// Set assigns the element at idx. Out-of-range indices are ignored.
func (a *Array) Set(v bool, idx ...int) {
	if off := core.Ravel(a.Shape, idx); off >= 0 {
		a.Data[off] = v
	}
}

// Transpose returns the array with its axis order reversed.
func (a *Array) Transpose() *Array {
	rank := len(a.Shape)
	shape := make([]int, rank)
	for d := range shape {
		shape[d] = a.Shape[rank-1-d]
	}
	out := &Array{Shape: shape, Data: make([]bool, len(a.Data))}
	rev := make([]int, rank)
	for i, v := range a.Data {
		idx := core.Unravel(a.Shape, i)
		for d := range idx {
			rev[d] = idx[rank-1-d]
		}
		out.Data[core.Ravel(shape, rev)] = v
	}
	return out
}

// Excluded reports whether flat element i of m is set. A nil mask excludes nothing.
func Excluded(m Input, i int) bool {
	return m != nil && m.At(i)
}

func describe(m Input) string {
	if m == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T(len=%d)", m, m.Len())
}
