package preprocess

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SapoSopa/Projeto-SSC/ecg"
)

func testSine(n int, freq, fs float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * freq * float64(i) / fs)
	}
	return x
}

func power(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return sum
}

func TestParseFilterKind(t *testing.T) {
	for name, want := range map[string]FilterKind{
		"bandpass": FilterBandpass,
		"lowpass":  FilterLowpass,
		"highpass": FilterHighpass,
	} {
		got, err := ParseFilterKind(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFilterKind("notch")
	assert.Error(t, err)

	var verr *ecg.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestApplyFilterPreservesShape(t *testing.T) {
	sig, err := ecg.FromChannels([][]float64{
		testSine(1000, 5, 500),
		testSine(1000, 30, 500),
	})
	require.NoError(t, err)

	out, err := ApplyFilter(sig, 500, FilterBandpass, []float64{0.5, 40}, 4)
	require.NoError(t, err)

	assert.Equal(t, sig.Samples(), out.Samples())
	assert.Equal(t, sig.Channels(), out.Channels())
}

func TestApplyFilterBandpassRemovesOutOfBandTone(t *testing.T) {
	inBand := testSine(3000, 10, 500)
	outOfBand := testSine(3000, 100, 500)
	mixed := make([]float64, len(inBand))
	for i := range mixed {
		mixed[i] = inBand[i] + outOfBand[i]
	}

	sig, err := ecg.FromVector(mixed)
	require.NoError(t, err)

	out, err := ApplyFilter(sig, 500, FilterBandpass, []float64{0.5, 40}, 4)
	require.NoError(t, err)

	filtered, err := out.Channel(0)
	require.NoError(t, err)

	// The 10 Hz component survives, the 100 Hz component is mostly gone,
	// so roughly half of the mixed power remains.
	assert.InDelta(t, power(inBand), power(filtered), 0.1*power(inBand))
}

func TestApplyFilterHighpassRemovesOffset(t *testing.T) {
	samples := testSine(2000, 20, 500)
	for i := range samples {
		samples[i] += 5
	}
	sig, err := ecg.FromVector(samples)
	require.NoError(t, err)

	out, err := ApplyFilter(sig, 500, FilterHighpass, []float64{0.5}, 4)
	require.NoError(t, err)

	filtered, err := out.Channel(0)
	require.NoError(t, err)

	mean := 0.0
	for _, v := range filtered {
		mean += v
	}
	mean /= float64(len(filtered))
	assert.InDelta(t, 0.0, mean, 0.05)
}

func TestApplyFilterValidation(t *testing.T) {
	sig := ecg.Empty(1000, 1)

	cases := []struct {
		name    string
		fs      float64
		kind    FilterKind
		cutoffs []float64
		order   int
	}{
		{"non-positive fs", 0, FilterLowpass, []float64{10}, 4},
		{"bandpass needs two", 500, FilterBandpass, []float64{10}, 4},
		{"lowpass needs one", 500, FilterLowpass, []float64{10, 20}, 4},
		{"inverted band", 500, FilterBandpass, []float64{40, 10}, 4},
		{"negative cutoff", 500, FilterLowpass, []float64{-5}, 4},
		{"zero order", 500, FilterLowpass, []float64{10}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ApplyFilter(sig, tc.fs, tc.kind, tc.cutoffs, tc.order)
			require.Error(t, err)

			var verr *ecg.ValidationError
			assert.True(t, errors.As(err, &verr))
		})
	}
}

func TestApplyFilterCutoffAboveNyquistFails(t *testing.T) {
	sig := ecg.Empty(1000, 1)

	// The warning is non-fatal but the design routine rejects a normalized
	// cutoff at or above 1.
	_, err := ApplyFilter(sig, 100, FilterLowpass, []float64{60}, 4)
	assert.Error(t, err)
}

func TestRemoveBaselineDrift(t *testing.T) {
	drift := make([]float64, 5000)
	for i := range drift {
		drift[i] = 3 + math.Sin(2*math.Pi*0.05*float64(i)/500)
	}
	sig, err := ecg.FromVector(drift)
	require.NoError(t, err)

	out, err := RemoveBaselineDrift(sig, 500, 0.5, 4)
	require.NoError(t, err)

	filtered, err := out.Channel(0)
	require.NoError(t, err)
	assert.Less(t, power(filtered), 0.05*power(drift))
}
