package filters

import (
	"fmt"
	"math"
	"math/cmplx"
)

// BandType selects the Butterworth response shape.
type BandType int

const (
	Lowpass BandType = iota
	Highpass
	Bandpass
)

func (b BandType) String() string {
	switch b {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	default:
		return "unknown"
	}
}

// Coefficients holds a digital IIR transfer function in numerator/denominator
// form. A[0] is always 1.
type Coefficients struct {
	B []float64
	A []float64
}

// Butterworth designs a digital Butterworth filter of the given order via the
// analog prototype and the bilinear transform with frequency prewarping.
//
// Cutoffs are normalized by the Nyquist frequency and must lie strictly in
// (0, 1). Bandpass takes two cutoffs (low, high) and yields a transfer
// function of order 2*order; lowpass/highpass take one cutoff.
func Butterworth(order int, band BandType, cutoffs []float64) (Coefficients, error) {
	if order < 1 {
		return Coefficients{}, fmt.Errorf("filter order must be >= 1, got %d", order)
	}

	switch band {
	case Lowpass, Highpass:
		if len(cutoffs) != 1 {
			return Coefficients{}, fmt.Errorf("%s filter needs exactly one cutoff, got %d", band, len(cutoffs))
		}
	case Bandpass:
		if len(cutoffs) != 2 {
			return Coefficients{}, fmt.Errorf("bandpass filter needs exactly two cutoffs, got %d", len(cutoffs))
		}
		if cutoffs[0] >= cutoffs[1] {
			return Coefficients{}, fmt.Errorf("bandpass cutoffs must satisfy low < high, got (%g, %g)", cutoffs[0], cutoffs[1])
		}
	default:
		return Coefficients{}, fmt.Errorf("unknown band type %d", band)
	}

	for _, wn := range cutoffs {
		if wn <= 0 || wn >= 1 {
			return Coefficients{}, fmt.Errorf("normalized cutoff must be in (0, 1), got %g", wn)
		}
	}

	// Analog prototype: order poles on the unit circle, no finite zeros.
	poles := prototypePoles(order)
	var zeros []complex128
	gain := 1.0

	// Prewarp the band edges. The design uses an internal rate of fs=2 so
	// that normalized frequencies map directly through tan(pi*wn/2).
	const fs = 2.0
	warped := make([]float64, len(cutoffs))
	for i, wn := range cutoffs {
		warped[i] = 2 * fs * math.Tan(math.Pi*wn/2)
	}

	switch band {
	case Lowpass:
		zeros, poles, gain = lpToLp(zeros, poles, gain, warped[0])
	case Highpass:
		zeros, poles, gain = lpToHp(zeros, poles, gain, warped[0])
	case Bandpass:
		wo := math.Sqrt(warped[0] * warped[1])
		bw := warped[1] - warped[0]
		zeros, poles, gain = lpToBp(zeros, poles, gain, wo, bw)
	}

	zeros, poles, gain = bilinear(zeros, poles, gain, fs)

	b := polynomial(zeros)
	a := polynomial(poles)
	for i := range b {
		b[i] *= gain
	}

	// Normalize so a[0] == 1 exactly.
	a0 := a[0]
	for i := range a {
		a[i] /= a0
	}
	for i := range b {
		b[i] /= a0
	}

	return Coefficients{B: b, A: a}, nil
}

// prototypePoles returns the normalized analog Butterworth poles, evenly
// spaced on the left half of the unit circle.
func prototypePoles(order int) []complex128 {
	poles := make([]complex128, order)
	for k := 0; k < order; k++ {
		theta := math.Pi * float64(2*k+order+1) / float64(2*order)
		poles[k] = cmplx.Exp(complex(0, theta))
	}
	return poles
}

// lpToLp scales the prototype to the warped cutoff frequency wo.
func lpToLp(zeros, poles []complex128, gain, wo float64) ([]complex128, []complex128, float64) {
	outP := make([]complex128, len(poles))
	for i, p := range poles {
		outP[i] = p * complex(wo, 0)
	}
	degree := len(poles) - len(zeros)
	gain *= math.Pow(wo, float64(degree))
	return zeros, outP, gain
}

// lpToHp inverts the prototype around wo, adding zeros at the origin.
func lpToHp(zeros, poles []complex128, gain, wo float64) ([]complex128, []complex128, float64) {
	degree := len(poles) - len(zeros)

	outP := make([]complex128, len(poles))
	prodP := complex(1, 0)
	for i, p := range poles {
		outP[i] = complex(wo, 0) / p
		prodP *= -p
	}

	outZ := make([]complex128, 0, len(poles))
	prodZ := complex(1, 0)
	for _, z := range zeros {
		outZ = append(outZ, complex(wo, 0)/z)
		prodZ *= -z
	}
	for i := 0; i < degree; i++ {
		outZ = append(outZ, 0)
	}

	gain *= real(prodZ / prodP)
	return outZ, outP, gain
}

// lpToBp shifts the prototype to a band centered at wo with width bw,
// doubling the filter degree.
func lpToBp(zeros, poles []complex128, gain, wo, bw float64) ([]complex128, []complex128, float64) {
	degree := len(poles) - len(zeros)

	transform := func(roots []complex128) []complex128 {
		out := make([]complex128, 0, 2*len(roots))
		for _, r := range roots {
			scaled := r * complex(bw/2, 0)
			delta := cmplx.Sqrt(scaled*scaled - complex(wo*wo, 0))
			out = append(out, scaled+delta, scaled-delta)
		}
		return out
	}

	outP := transform(poles)
	outZ := transform(zeros)
	for i := 0; i < degree; i++ {
		outZ = append(outZ, 0)
	}

	gain *= math.Pow(bw, float64(degree))
	return outZ, outP, gain
}

// bilinear maps analog zeros/poles to the z-plane, filling the remaining
// zeros at z = -1.
func bilinear(zeros, poles []complex128, gain, fs float64) ([]complex128, []complex128, float64) {
	fs2 := complex(2*fs, 0)

	outZ := make([]complex128, 0, len(poles))
	numerator := complex(1, 0)
	for _, z := range zeros {
		outZ = append(outZ, (fs2+z)/(fs2-z))
		numerator *= fs2 - z
	}

	outP := make([]complex128, len(poles))
	denominator := complex(1, 0)
	for i, p := range poles {
		outP[i] = (fs2 + p) / (fs2 - p)
		denominator *= fs2 - p
	}

	for len(outZ) < len(outP) {
		outZ = append(outZ, -1)
	}

	gain *= real(numerator / denominator)
	return outZ, outP, gain
}

// polynomial expands (x - r0)(x - r1)... and returns the real coefficients,
// highest order first. Complex roots are assumed to come in conjugate pairs.
func polynomial(roots []complex128) []float64 {
	coeffs := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(coeffs)+1)
		for i, c := range coeffs {
			next[i] += c
			next[i+1] -= c * r
		}
		coeffs = next
	}

	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		out[i] = real(c)
	}
	return out
}
