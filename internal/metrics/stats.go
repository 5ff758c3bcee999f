// Package metrics holds the small statistics helpers behind a deck
// digest: confidence distribution facts and categorical counts.
package metrics

import "math"

// Mean computes the arithmetic mean of a float64 slice.
// Returns 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance computes the population variance of a float64 slice.
// Returns 0 for empty input.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return sumSq / float64(len(values))
}

// StdDev computes the population standard deviation.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// MinMax returns the smallest and largest values.
// Returns (0, 0) for empty input.
func MinMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Summary bundles the distribution facts a deck digest reports about
// its confidence values.
type Summary struct {
	Mean   float64
	Min    float64
	Max    float64
	StdDev float64
}

// Summarize computes a Summary over values.
func Summarize(values []float64) Summary {
	lo, hi := MinMax(values)
	return Summary{
		Mean:   Mean(values),
		Min:    lo,
		Max:    hi,
		StdDev: StdDev(values),
	}
}

// Tally counts occurrences of each key, skipping empty keys.
func Tally(keys []string) map[string]int {
	counts := make(map[string]int, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		counts[k]++
	}
	return counts
}
