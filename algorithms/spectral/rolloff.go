package spectral

// Rolloff returns the frequency at which cumulative spectral energy first
// reaches the given fraction of total energy (typically 0.85). A spectrum
// with no energy yields 0.
func (s Spectrum) Rolloff(threshold float64) float64 {
	totalEnergy := s.TotalEnergy()
	if totalEnergy == 0 {
		return 0.0
	}

	targetEnergy := threshold * totalEnergy
	cumulativeEnergy := 0.0

	for i, mag := range s.Magnitude {
		cumulativeEnergy += mag * mag
		if cumulativeEnergy >= targetEnergy {
			return s.Freqs[i]
		}
	}

	return s.Freqs[len(s.Freqs)-1]
}
