package core

// Ravel converts a multi-index into a row-major flat offset.
// The last coordinate varies fastest. It returns -1 when idx does not fit shape.
func Ravel(shape, idx []int) int {
	if len(shape) != len(idx) {
		return -1
	}
	flat := 0
	for d, n := range shape {
		if idx[d] < 0 || idx[d] >= n {
			return -1
		}
		flat = flat*n + idx[d]
	}
	return flat
}

// Unravel converts a row-major flat offset back into a multi-index.
func Unravel(shape []int, flat int) []int {
	idx := make([]int, len(shape))
	for d := len(shape) - 1; d >= 0; d-- {
		n := shape[d]
		if n <= 0 {
			continue
		}
		idx[d] = flat % n
		flat /= n
	}
	return idx
}
