package despike

import "math"

// Direction selects the scan order of navigation positions and samples.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Spike is a detected outlier.
type Spike struct {
	// Location is the sample on the far side of the triggering jump in scan direction.
	Location int
	// Jump is the absolute first difference that exceeded the threshold.
	Jump float64
}

// Detect scans the first difference of spectrum in direction dir and returns
// the first jump whose magnitude exceeds threshold. Differences touching a
// sample marked in exclude are ignored; exclude may be nil.
func Detect(spectrum []float64, threshold float64, exclude []bool, dir Direction) (Spike, bool) {
	n := len(spectrum)
	if n < 2 {
		return Spike{}, false
	}

	check := func(i int) (float64, bool) {
		if excluded(exclude, i) || excluded(exclude, i+1) {
			return 0, false
		}
		d := math.Abs(spectrum[i+1] - spectrum[i])
		return d, d > threshold
	}

	if dir == Backward {
		for i := n - 2; i >= 0; i-- {
			if d, ok := check(i); ok {
				return Spike{Location: i, Jump: d}, true
			}
		}
		return Spike{}, false
	}

	for i := 0; i < n-1; i++ {
		if d, ok := check(i); ok {
			return Spike{Location: i + 1, Jump: d}, true
		}
	}
	return Spike{}, false
}

func excluded(exclude []bool, i int) bool {
	return i < len(exclude) && exclude[i]
}
