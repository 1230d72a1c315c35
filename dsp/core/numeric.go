package core

// ClampIndex limits i to the inclusive index range [lo, hi].
func ClampIndex(i, lo, hi int) int {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}
