package core

// EnsureBools returns a cleared bool slice of length n, reusing buf capacity if possible.
func EnsureBools(buf []bool, n int) []bool {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) < n {
		return make([]bool, n)
	}
	buf = buf[:n]
	for i := range buf {
		buf[i] = false
	}
	return buf
}

// Fill sets every element of buf to value.
func Fill(buf []float64, value float64) {
	for i := range buf {
		buf[i] = value
	}
}

// Product returns the number of elements described by shape.
// An empty shape describes a single element.
func Product(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// EqualShape reports whether a and b have the same length and extents.
func EqualShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
