package common

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic statistical functions used across algorithms using gonum for robustness.
// Moments are population (biased) moments, matching the conventions of the
// numerical stack the pipeline's contracts were written against.

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Variance calculates the population variance of a slice using gonum
func Variance(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.PopVariance(data, nil)
}

// StandardDeviation calculates the population standard deviation
func StandardDeviation(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.PopStdDev(data, nil)
}

// Min returns the smallest element
func Min(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Min(data)
}

// Max returns the largest element
func Max(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Max(data)
}

// MaxAbs returns the largest absolute value
func MaxAbs(data []float64) float64 {
	peak := 0.0
	for _, v := range data {
		if abs := math.Abs(v); abs > peak {
			peak = abs
		}
	}
	return peak
}

// RMS calculates root mean square
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// Median returns the middle value, averaging the two central elements for
// even-length input.
func Median(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2.0
	}
	return sorted[mid]
}

// Percentile calculates the p-th percentile (p between 0 and 1)
func Percentile(data []float64, p float64) float64 {
	if len(data) == 0 || p < 0 || p > 1 {
		return 0.0
	}

	// Make a copy and sort
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}

// IQR returns the interquartile range (75th minus 25th percentile)
func IQR(data []float64) float64 {
	return Percentile(data, 0.75) - Percentile(data, 0.25)
}

// Skewness calculates the population (biased) third standardized moment.
// Constant input yields 0 rather than a division by zero.
func Skewness(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	mean := Mean(data)
	m2, m3 := 0.0, 0.0
	for _, v := range data {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
	}
	n := float64(len(data))
	m2 /= n
	m3 /= n

	if m2 == 0 {
		return 0.0
	}
	return m3 / math.Pow(m2, 1.5)
}

// Kurtosis calculates the population (biased) excess kurtosis.
// Constant input yields 0 rather than a division by zero.
func Kurtosis(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	mean := Mean(data)
	m2, m4 := 0.0, 0.0
	for _, v := range data {
		d := v - mean
		m2 += d * d
		m4 += d * d * d * d
	}
	n := float64(len(data))
	m2 /= n
	m4 /= n

	if m2 == 0 {
		return 0.0
	}
	return m4/(m2*m2) - 3.0
}

// Diff returns the first difference of the input (length n-1)
func Diff(data []float64) []float64 {
	if len(data) < 2 {
		return []float64{}
	}

	diff := make([]float64, len(data)-1)
	for i := 1; i < len(data); i++ {
		diff[i-1] = data[i] - data[i-1]
	}
	return diff
}

// SignChanges counts transitions between consecutive sample signs, where the
// sign of a sample is -1, 0 or +1. A touch of zero counts as a transition.
func SignChanges(data []float64) int {
	if len(data) < 2 {
		return 0
	}

	count := 0
	prev := sign(data[0])
	for _, v := range data[1:] {
		s := sign(v)
		if s != prev {
			count++
		}
		prev = s
	}
	return count
}

// SignBitChanges counts transitions of the sign bit between consecutive
// samples, treating zero as positive. Unlike SignChanges, a sample touching
// zero on its way nowhere does not count.
func SignBitChanges(data []float64) int {
	if len(data) < 2 {
		return 0
	}

	count := 0
	prev := math.Signbit(data[0])
	for _, v := range data[1:] {
		s := math.Signbit(v)
		if s != prev {
			count++
		}
		prev = s
	}
	return count
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// FindPeaks finds local maxima separated by at least minDistance samples.
// When two candidate peaks are closer than minDistance the higher one wins.
func FindPeaks(data []float64, minDistance int) []int {
	if len(data) < 3 {
		return []int{}
	}

	var peaks []int

	for i := 1; i < len(data)-1; i++ {
		if data[i] <= data[i-1] || data[i] <= data[i+1] {
			continue
		}

		validPeak := true
		for j := len(peaks) - 1; j >= 0; j-- {
			existing := peaks[j]
			if i-existing >= minDistance {
				break
			}
			if data[i] > data[existing] {
				peaks = append(peaks[:j], peaks[j+1:]...)
			} else {
				validPeak = false
				break
			}
		}

		if validPeak {
			peaks = append(peaks, i)
		}
	}

	return peaks
}

// Clamp constrains a value to a range
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
