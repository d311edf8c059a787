package engine

import "math"

// ClassicalPositiveProb returns the empirical fraction of samples strictly
// greater than zero. An empty slice yields 0.0 by definition, not an error.
// NaN samples are treated as 0.0, so they never count as positive and never
// poison the ratio.
func ClassicalPositiveProb(samples []float64) float64 {
	if len(samples) == 0 {
		return 0.0
	}
	positive := 0
	for _, v := range samples {
		if math.IsNaN(v) {
			continue
		}
		if v > 0 {
			positive++
		}
	}
	return float64(positive) / float64(len(samples))
}

// ClassicalMean returns the arithmetic mean of samples with NaN coerced to
// 0.0. An empty slice yields 0.0.
func ClassicalMean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0.0
	}
	var sum float64
	for _, v := range samples {
		if math.IsNaN(v) {
			continue
		}
		sum += v
	}
	return sum / float64(len(samples))
}
