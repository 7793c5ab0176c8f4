package filters

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FiltFilt applies the filter forward and then backward so the output has no
// phase shift relative to the input. The effective order experienced in the
// passband is double the design order.
//
// The input is extended at both ends by an odd reflection of 3*ntaps samples
// and each pass starts from steady-state initial conditions, which keeps
// startup transients out of the returned samples.
func FiltFilt(c Coefficients, x []float64) ([]float64, error) {
	b, a := padCoefficients(c)
	ntaps := len(a)

	edge := 3 * ntaps
	if len(x) <= edge {
		return nil, fmt.Errorf("input length %d must exceed padding length %d", len(x), edge)
	}

	zi, err := steadyState(b, a)
	if err != nil {
		return nil, err
	}

	ext := oddExtension(x, edge)

	// Forward pass.
	y := lfilter(b, a, ext, scaleState(zi, ext[0]))

	// Backward pass over the reversed forward output.
	reverse(y)
	y = lfilter(b, a, y, scaleState(zi, y[0]))
	reverse(y)

	return y[edge : len(y)-edge], nil
}

// padCoefficients returns b and a extended with zeros to equal length, with
// a[0] normalized to 1.
func padCoefficients(c Coefficients) (b, a []float64) {
	n := len(c.A)
	if len(c.B) > n {
		n = len(c.B)
	}

	b = make([]float64, n)
	a = make([]float64, n)
	copy(b, c.B)
	copy(a, c.A)

	a0 := a[0]
	for i := range a {
		a[i] /= a0
		b[i] /= a0
	}
	return b, a
}

// lfilter runs a direct form II transposed IIR filter over x with initial
// state zi (length len(a)-1).
func lfilter(b, a, x, zi []float64) []float64 {
	n := len(a) - 1
	z := make([]float64, n)
	copy(z, zi)

	y := make([]float64, len(x))
	for i, xv := range x {
		yv := b[0]*xv + z[0]
		for j := 0; j < n-1; j++ {
			z[j] = b[j+1]*xv + z[j+1] - a[j+1]*yv
		}
		z[n-1] = b[n]*xv - a[n]*yv
		y[i] = yv
	}
	return y
}

// steadyState computes the initial filter state whose step response is
// immediately in steady state, solving (I - C^T) zi = B where C is the
// companion matrix of the denominator.
func steadyState(b, a []float64) ([]float64, error) {
	n := len(a) - 1

	sys := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		sys.Set(i, 0, sys.At(i, 0)-(-a[i+1]))
		sys.Set(i, i, sys.At(i, i)+1)
		if i > 0 {
			sys.Set(i-1, i, sys.At(i-1, i)-1)
		}
	}

	rhs := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		rhs.SetVec(i, b[i+1]-a[i+1]*b[0])
	}

	var zi mat.VecDense
	if err := zi.SolveVec(sys, rhs); err != nil {
		return nil, fmt.Errorf("initial filter state is singular: %w", err)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = zi.AtVec(i)
	}
	return out, nil
}

// oddExtension reflects edge samples around the first and last points so the
// extended ends join the signal without a discontinuity.
func oddExtension(x []float64, edge int) []float64 {
	n := len(x)
	ext := make([]float64, 0, n+2*edge)

	for i := edge; i >= 1; i-- {
		ext = append(ext, 2*x[0]-x[i])
	}
	ext = append(ext, x...)
	for i := n - 2; i >= n-1-edge; i-- {
		ext = append(ext, 2*x[n-1]-x[i])
	}
	return ext
}

func scaleState(zi []float64, x0 float64) []float64 {
	out := make([]float64, len(zi))
	for i, v := range zi {
		out[i] = v * x0
	}
	return out
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
