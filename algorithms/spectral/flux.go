package spectral

// Flux sums the squared differences between adjacent bin magnitudes within
// this single spectrum. This bin-to-bin definition is deliberate; it is the
// quantity the downstream feature schema was calibrated against, not the
// frame-to-frame flux used in streaming analysis.
func (s Spectrum) Flux() float64 {
	sum := 0.0
	for i := 1; i < len(s.Magnitude); i++ {
		diff := s.Magnitude[i] - s.Magnitude[i-1]
		sum += diff * diff
	}
	return sum
}
