package interp

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownKind is returned for interpolator kinds outside the known set.
	ErrUnknownKind = errors.New("interp: unknown interpolator kind")

	// ErrInvalidOrder is returned for spline orders outside [1, MaxSplineOrder].
	ErrInvalidOrder = errors.New("interp: invalid spline order")

	// ErrTooFewPoints is returned when the known samples cannot support the interpolant.
	ErrTooFewPoints = errors.New("interp: too few points")

	// ErrUnsorted is returned when abscissae are not strictly increasing.
	ErrUnsorted = errors.New("interp: abscissae must be strictly increasing")
)

// MaxSplineOrder is the highest supported spline order.
const MaxSplineOrder = 5

// Kind identifies an interpolation method.
type Kind int

const (
	KindLinear Kind = iota
	KindNearest
	KindSpline
)

var kindNames = map[Kind]string{
	KindLinear:  "linear",
	KindNearest: "nearest",
	KindSpline:  "spline",
}

// String returns the lower-case name of k.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind converts a case-insensitive name to a Kind.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Pad returns how many known samples each side of a gap kind k uses.
func Pad(k Kind, order int) int {
	if k == KindSpline && order > 1 {
		return order
	}
	return 1
}

// Func evaluates an interpolant.
type Func interface {
	At(x float64) float64
}

// Fit builds an interpolant of kind k through the known samples (xs, ys).
// order is used only by KindSpline.
func Fit(k Kind, order int, xs, ys []float64) (Func, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d abscissae for %d values", ErrTooFewPoints, len(xs), len(ys))
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrTooFewPoints)
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("%w: x[%d]=%v after %v", ErrUnsorted, i, xs[i], xs[i-1])
		}
	}

	switch k {
	case KindLinear:
		if len(xs) < 2 {
			return nil, fmt.Errorf("%w: linear needs 2, got %d", ErrTooFewPoints, len(xs))
		}
		return piecewiseLinear{xs: xs, ys: ys}, nil
	case KindNearest:
		return nearest{xs: xs, ys: ys}, nil
	case KindSpline:
		return newSmoothingSpline(order, xs, ys)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, k)
	}
}

type piecewiseLinear struct {
	xs, ys []float64
}

func (p piecewiseLinear) At(x float64) float64 {
	n := len(p.xs)
	i := sort.SearchFloat64s(p.xs, x)
	switch {
	case i <= 0:
		i = 1
	case i >= n:
		i = n - 1
	}
	x0, x1 := p.xs[i-1], p.xs[i]
	y0, y1 := p.ys[i-1], p.ys[i]
	return y0 + (x-x0)*(y1-y0)/(x1-x0)
}

type nearest struct {
	xs, ys []float64
}

func (p nearest) At(x float64) float64 {
	i := sort.SearchFloat64s(p.xs, x)
	if i >= len(p.xs) {
		return p.ys[len(p.ys)-1]
	}
	if i > 0 && x-p.xs[i-1] <= p.xs[i]-x {
		return p.ys[i-1]
	}
	return p.ys[i]
}
