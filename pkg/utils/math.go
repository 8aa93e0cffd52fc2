package utils

import "math"

// NormalizeL2 normalizes the slice in place to unit L2 norm and reports
// whether it did. If the norm is zero the slice is unchanged and false is
// returned so callers can substitute a fallback vector.
func NormalizeL2(x []float32) bool {
	var sum float32
	for _, v := range x {
		sum += v * v
	}
	if sum == 0 {
		return false
	}
	norm := float32(1.0 / math.Sqrt(float64(sum)))
	for i := range x {
		x[i] *= norm
	}
	return true
}

// L2Norm returns the L2 norm of a vector.
func L2Norm(x []float32) float64 {
	var sum float64
	for _, v := range x {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}
