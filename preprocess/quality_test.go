package preprocess

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SapoSopa/Projeto-SSC/ecg"
)

func TestAssessQualityConstantChannel(t *testing.T) {
	sig, err := ecg.FromVector([]float64{3, 3, 3, 3})
	require.NoError(t, err)

	quality, err := AssessQuality(sig, 500)
	require.NoError(t, err)

	q, ok := quality["canal_0"]
	require.True(t, ok)

	// A constant channel is dead and reports zero SNR.
	assert.Equal(t, 0.0, q.SNR)
	assert.Equal(t, 3.0, q.MaxAmplitude)
	assert.Equal(t, 3.0, q.RMS)
	assert.Equal(t, 0.0, q.ZeroCrossings)
	// Every sample sits at the peak, so every sample counts as saturated.
	assert.Equal(t, 1.0, q.Saturation)
}

func TestAssessQualityZeroChannel(t *testing.T) {
	sig, err := ecg.FromVector(make([]float64, 100))
	require.NoError(t, err)

	quality, err := AssessQuality(sig, 500)
	require.NoError(t, err)

	q := quality["canal_0"]
	assert.Equal(t, 0.0, q.SNR)
	assert.Equal(t, 0.0, q.MaxAmplitude)
	assert.Equal(t, 0.0, q.Saturation)
	assert.Equal(t, 0.0, q.RMS)
}

func TestAssessQualityLinearRampReadsClean(t *testing.T) {
	// A ramp varies but has a constant first difference, the cleanest a
	// channel can read.
	sig, err := ecg.FromVector([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)

	quality, err := AssessQuality(sig, 500)
	require.NoError(t, err)

	assert.Equal(t, 100.0, quality["canal_0"].SNR)
}

func TestAssessQualityAlternatingSignal(t *testing.T) {
	sig, err := ecg.FromVector([]float64{1, -1, 1, -1, 1})
	require.NoError(t, err)

	quality, err := AssessQuality(sig, 500)
	require.NoError(t, err)

	q := quality["canal_0"]
	assert.Equal(t, 4.0, q.ZeroCrossings)
	assert.Equal(t, 1.0, q.MaxAmplitude)
	assert.Equal(t, 1.0, q.RMS)
	// std=1, std(diff)=... diff is ±2 alternating, its std is near 1,
	// so the SNR lands well below a clean signal's.
	assert.Less(t, q.SNR, 15.0)
	assert.False(t, math.IsNaN(q.SNR))
	assert.False(t, math.IsInf(q.SNR, 0))
}

func TestAssessQualitySmoothSignalHasHighSNR(t *testing.T) {
	samples := make([]float64, 1000)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * float64(i) / 500)
	}
	sig, err := ecg.FromVector(samples)
	require.NoError(t, err)

	quality, err := AssessQuality(sig, 500)
	require.NoError(t, err)

	assert.Greater(t, quality["canal_0"].SNR, 30.0)
}

func TestAssessQualitySaturationFraction(t *testing.T) {
	// Two of ten samples exceed 95% of the peak amplitude 10.
	sig, err := ecg.FromVector([]float64{10, -9.9, 1, 2, 3, 1, 2, 3, 1, 2})
	require.NoError(t, err)

	quality, err := AssessQuality(sig, 500)
	require.NoError(t, err)

	assert.InDelta(t, 0.2, quality["canal_0"].Saturation, 1e-12)
}

func TestAssessQualityPerChannelKeys(t *testing.T) {
	sig := ecg.Empty(10, 3)
	quality, err := AssessQuality(sig, 500)
	require.NoError(t, err)

	assert.Len(t, quality, 3)
	for _, key := range []string{"canal_0", "canal_1", "canal_2"} {
		assert.Contains(t, quality, key)
	}
}

func TestAssessQualityRejectsBadFS(t *testing.T) {
	sig := ecg.Empty(10, 1)
	_, err := AssessQuality(sig, 0)
	assert.Error(t, err)
}
