package engine

import "golang.org/x/exp/constraints"

// Clamp restricts v to the inclusive range [low, high].
func Clamp[T constraints.Integer](v, low, high T) T {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// perMillisecond divides a count by elapsed milliseconds, treating a zero
// duration as one millisecond.
func perMillisecond[T constraints.Integer](count T, elapsedMs int64) float64 {
	if elapsedMs <= 0 {
		elapsedMs = 1
	}
	return float64(count) / float64(elapsedMs)
}
