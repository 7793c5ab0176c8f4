package filters

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(n int, freq, fs float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * freq * float64(i) / fs)
	}
	return x
}

func TestFiltFiltPreservesConstantThroughLowpass(t *testing.T) {
	c, err := Butterworth(4, Lowpass, []float64{0.3})
	require.NoError(t, err)

	x := make([]float64, 500)
	for i := range x {
		x[i] = 2.5
	}

	y, err := FiltFilt(c, x)
	require.NoError(t, err)
	require.Len(t, y, len(x))
	for _, v := range y {
		assert.InDelta(t, 2.5, v, 1e-6)
	}
}

func TestFiltFiltRemovesConstantThroughHighpass(t *testing.T) {
	c, err := Butterworth(4, Highpass, []float64{0.3})
	require.NoError(t, err)

	x := make([]float64, 500)
	for i := range x {
		x[i] = 1.0
	}

	y, err := FiltFilt(c, x)
	require.NoError(t, err)
	for _, v := range y {
		assert.InDelta(t, 0.0, v, 1e-6)
	}
}

func TestFiltFiltIsZeroPhase(t *testing.T) {
	// A slow sine through a generous lowpass must keep its peak position.
	fs := 500.0
	x := sine(2000, 2, fs)

	c, err := Butterworth(4, Lowpass, []float64{0.4})
	require.NoError(t, err)

	y, err := FiltFilt(c, x)
	require.NoError(t, err)

	peakIn, peakOut := 0, 0
	for i := range x {
		if x[i] > x[peakIn] {
			peakIn = i
		}
		if y[i] > y[peakOut] {
			peakOut = i
		}
	}
	assert.InDelta(t, float64(peakIn), float64(peakOut), 1.0)
}

func TestFiltFiltAttenuatesStopband(t *testing.T) {
	// 60 Hz through a 0.5-40 Hz bandpass at fs=500 should shrink hard.
	fs := 500.0
	nyquist := fs / 2
	x := sine(3000, 60, fs)

	c, err := Butterworth(4, Bandpass, []float64{0.5 / nyquist, 40 / nyquist})
	require.NoError(t, err)

	y, err := FiltFilt(c, x)
	require.NoError(t, err)

	var inPower, outPower float64
	for i := range x {
		inPower += x[i] * x[i]
		outPower += y[i] * y[i]
	}
	assert.Less(t, outPower, inPower/100)
}

func TestFiltFiltIsDeterministic(t *testing.T) {
	c, err := Butterworth(4, Lowpass, []float64{0.2})
	require.NoError(t, err)

	x := sine(600, 10, 500)
	first, err := FiltFilt(c, x)
	require.NoError(t, err)
	second, err := FiltFilt(c, x)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFiltFiltRejectsShortInput(t *testing.T) {
	c, err := Butterworth(4, Lowpass, []float64{0.2})
	require.NoError(t, err)

	// The odd extension needs more samples than 3x the filter length.
	_, err = FiltFilt(c, make([]float64, 10))
	assert.Error(t, err)
}
