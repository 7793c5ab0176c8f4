// Package stats implements the histogram-based entropy estimation used by
// the entropy feature extractor.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// probabilityFloor is added to each bin probability before the logarithm so
// empty bins never produce log(0).
const probabilityFloor = 1e-12

// Histogram counts samples into the given number of equal-width bins spanning
// [min, max]. A constant input collapses into the first bin.
func Histogram(data []float64, bins int) []float64 {
	counts := make([]float64, bins)
	if len(data) == 0 || bins < 1 {
		return counts
	}

	lo := floats.Min(data)
	hi := floats.Max(data)
	if hi == lo {
		counts[0] = float64(len(data))
		return counts
	}

	width := (hi - lo) / float64(bins)
	for _, v := range data {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1 // max sample lands in the last bin
		}
		counts[idx]++
	}
	return counts
}

// ShannonEntropy estimates the base-2 Shannon entropy of the amplitude
// distribution of data using an equal-width histogram.
func ShannonEntropy(data []float64, bins int) float64 {
	if len(data) == 0 || bins < 1 {
		return 0.0
	}

	counts := Histogram(data, bins)
	total := float64(len(data))

	entropy := 0.0
	for _, count := range counts {
		if count == 0 {
			continue
		}
		p := count / total
		entropy -= p * math.Log2(p+probabilityFloor)
	}
	return entropy
}

// NormalizedShannonEntropy rescales ShannonEntropy by the maximum entropy of
// a histogram with the given bin count, yielding a value in [0, 1].
func NormalizedShannonEntropy(data []float64, bins int) float64 {
	if bins < 2 {
		return 0.0
	}
	return ShannonEntropy(data, bins) / math.Log2(float64(bins))
}
