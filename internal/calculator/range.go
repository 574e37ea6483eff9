package calculator

import "math"

// Range scans values for the lowest and highest, skipping NaN. n is the
// number of values seen; with n == 0 low and high are meaningless.
func Range(values []float64) (low, high float64, n int) {
	low = math.Inf(1)
	high = math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
		n++
	}
	return low, high, n
}
