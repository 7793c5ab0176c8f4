package spectral

import "math"

// Centroid calculates the magnitude-weighted mean frequency (spectral center
// of mass). A spectrum with no energy yields 0.
func (s Spectrum) Centroid() float64 {
	numerator := 0.0
	denominator := 0.0

	for i, mag := range s.Magnitude {
		numerator += s.Freqs[i] * mag
		denominator += mag
	}

	if denominator == 0 {
		return 0.0
	}
	return numerator / denominator
}

// Bandwidth calculates the magnitude-weighted spread of frequencies around
// the given centroid.
func (s Spectrum) Bandwidth(centroid float64) float64 {
	numerator := 0.0
	denominator := 0.0

	for i, mag := range s.Magnitude {
		dev := s.Freqs[i] - centroid
		numerator += dev * dev * mag
		denominator += mag
	}

	if denominator == 0 {
		return 0.0
	}
	return math.Sqrt(numerator / denominator)
}
