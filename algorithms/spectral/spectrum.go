// Package spectral computes magnitude spectra and the summary statistics the
// feature extractors are built on.
package spectral

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum holds the positive-frequency half of a full DFT: bin magnitudes
// and the frequency each bin maps to in Hz.
type Spectrum struct {
	Magnitude []float64
	Freqs     []float64
}

// Compute runs a full FFT over x and keeps the first n/2 bins. go-dsp handles
// all sizes, including non-power-of-2.
func Compute(x []float64, sampleRate float64) Spectrum {
	if len(x) < 2 {
		return Spectrum{Magnitude: []float64{}, Freqs: []float64{}}
	}

	coeffs := fft.FFTReal(x)

	n := len(x) / 2
	magnitude := make([]float64, n)
	freqs := make([]float64, n)
	for i := 0; i < n; i++ {
		magnitude[i] = cmplx.Abs(coeffs[i])
		freqs[i] = float64(i) * sampleRate / float64(len(x))
	}

	return Spectrum{Magnitude: magnitude, Freqs: freqs}
}

// TotalEnergy returns the summed squared magnitude over all bins.
func (s Spectrum) TotalEnergy() float64 {
	total := 0.0
	for _, mag := range s.Magnitude {
		total += mag * mag
	}
	return total
}

// Dominant returns the frequency of the strongest bin, or 0 for an empty
// spectrum.
func (s Spectrum) Dominant() float64 {
	if len(s.Magnitude) == 0 {
		return 0.0
	}

	best := 0
	for i, mag := range s.Magnitude {
		if mag > s.Magnitude[best] {
			best = i
		}
	}
	return s.Freqs[best]
}

// BandEnergy sums the squared magnitude of bins whose frequency lies in
// [low, high).
func (s Spectrum) BandEnergy(low, high float64) float64 {
	energy := 0.0
	for i, f := range s.Freqs {
		if f >= low && f < high {
			energy += s.Magnitude[i] * s.Magnitude[i]
		}
	}
	return energy
}
