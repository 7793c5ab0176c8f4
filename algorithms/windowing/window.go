// Package windowing generates the symmetric window functions used for
// spectral-analysis tapering of whole signals.
package windowing

import (
	"math"
)

// Hann returns a symmetric Hann window of the given size.
func Hann(size int) []float64 {
	return cosineWindow(size, func(phase float64) float64 {
		return 0.5 * (1.0 - math.Cos(phase))
	})
}

// Hamming returns a symmetric Hamming window of the given size.
func Hamming(size int) []float64 {
	return cosineWindow(size, func(phase float64) float64 {
		return 0.54 - 0.46*math.Cos(phase)
	})
}

// Blackman returns a symmetric Blackman window of the given size.
func Blackman(size int) []float64 {
	return cosineWindow(size, func(phase float64) float64 {
		return 0.42 - 0.5*math.Cos(phase) + 0.08*math.Cos(2*phase)
	})
}

// Kaiser returns a symmetric Kaiser window with shape parameter beta.
func Kaiser(size int, beta float64) []float64 {
	if size <= 0 {
		return []float64{}
	}
	if size == 1 {
		return []float64{1.0}
	}

	window := make([]float64, size)
	denom := besselI0(beta)
	half := float64(size-1) / 2.0
	for i := range window {
		ratio := (float64(i) - half) / half
		window[i] = besselI0(beta*math.Sqrt(1.0-ratio*ratio)) / denom
	}
	return window
}

func cosineWindow(size int, shape func(phase float64) float64) []float64 {
	if size <= 0 {
		return []float64{}
	}
	if size == 1 {
		return []float64{1.0}
	}

	window := make([]float64, size)
	for i := range window {
		window[i] = shape(2 * math.Pi * float64(i) / float64(size-1))
	}
	return window
}

// besselI0 evaluates the zeroth-order modified Bessel function of the first
// kind by its power series.
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0
	halfSq := x * x / 4.0
	for k := 1; k < 64; k++ {
		term *= halfSq / float64(k*k)
		sum += term
		if term < 1e-12*sum {
			break
		}
	}
	return sum
}
