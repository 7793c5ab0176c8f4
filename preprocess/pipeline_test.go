package preprocess

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SapoSopa/Projeto-SSC/algorithms/common"
	"github.com/SapoSopa/Projeto-SSC/ecg"
)

// writeTestRecord creates a single-channel format-16 record holding the given
// physical samples with gain 1000 and returns its path without extension.
func writeTestRecord(t *testing.T, samples []float64, fs float64) string {
	t.Helper()
	dir := t.TempDir()

	header := fmt.Sprintf("rec 1 %g %d\nrec.dat 16 1000/mV 16 0 0 0 0 I\n", fs, len(samples))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rec.hea"), []byte(header), 0o644))

	raw := make([]byte, 2*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint16(raw[2*i:], uint16(int16(math.Round(v*1000))))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rec.dat"), raw, 0o644))

	return filepath.Join(dir, "rec")
}

func ecgWave(n int, fs float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		ti := float64(i) / fs
		x[i] = 0.8*math.Sin(2*math.Pi*8*ti) + 0.3*math.Sin(2*math.Pi*25*ti) + 0.5
	}
	return x
}

func TestPipelineRunDefaults(t *testing.T) {
	fs := 500.0
	path := writeTestRecord(t, ecgWave(5000, fs), fs)

	sig, md, err := NewPipeline(DefaultOptions()).Run(path)
	require.NoError(t, err)

	assert.Equal(t, 5000, sig.Samples())
	assert.Equal(t, 1, sig.Channels())
	assert.Equal(t, fs, md.FS)
	assert.Equal(t, []string{"I"}, md.SigNames)

	// After z-score normalization the channel has standard moments.
	ch, err := sig.Channel(0)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, common.Mean(ch), 1e-9)
	assert.InDelta(t, 1.0, common.StandardDeviation(ch), 1e-9)

	require.Contains(t, md.Quality, "canal_0")
	q := md.Quality["canal_0"]
	assert.False(t, math.IsNaN(q.SNR))
	assert.GreaterOrEqual(t, q.Saturation, 0.0)
	assert.LessOrEqual(t, q.Saturation, 1.0)
}

func TestPipelineRunMissingRecord(t *testing.T) {
	_, _, err := NewPipeline(DefaultOptions()).Run(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)

	var perr *ecg.PipelineError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "load", perr.Stage)

	var lerr *ecg.LoadError
	assert.True(t, errors.As(err, &lerr))
}

func TestPipelineDefaultBand(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 0.5, opts.BandLow)
	assert.Equal(t, 45.0, opts.BandHigh)
}

func TestPipelineShortSignalStillFiltered(t *testing.T) {
	fs := 500.0
	wave := ecgWave(50, fs)
	path := writeTestRecord(t, wave, fs)

	opts := DefaultOptions()
	opts.Normalize = false
	opts.AssessQuality = false

	sig, _, err := NewPipeline(opts).Run(path)
	require.NoError(t, err)
	require.Equal(t, 50, sig.Samples())

	// The short-signal warning is non-fatal and the filter stages still
	// run, so the output is not a passthrough of the loaded samples.
	raw, _, err := NewPipeline(Options{ShortSignalThreshold: 100}).Run(path)
	require.NoError(t, err)

	filtered, err := sig.Channel(0)
	require.NoError(t, err)
	loaded, err := raw.Channel(0)
	require.NoError(t, err)
	assert.NotEqual(t, loaded, filtered)
}

func TestPipelineTooShortSignalFailsInFilterStage(t *testing.T) {
	fs := 500.0
	path := writeTestRecord(t, ecgWave(20, fs), fs)

	// 20 samples survive the baseline highpass but not the bandpass's
	// longer edge extension.
	_, _, err := NewPipeline(DefaultOptions()).Run(path)
	require.Error(t, err)

	var perr *ecg.PipelineError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "bandpass", perr.Stage)
}

func TestPipelineStagesCanBeDisabled(t *testing.T) {
	fs := 500.0
	wave := ecgWave(2000, fs)
	path := writeTestRecord(t, wave, fs)

	opts := Options{ShortSignalThreshold: 100}
	sig, md, err := NewPipeline(opts).Run(path)
	require.NoError(t, err)

	// With everything disabled the signal passes through the loader only.
	ch, err := sig.Channel(0)
	require.NoError(t, err)
	assert.InDelta(t, wave[0], ch[0], 1e-3)
	assert.Empty(t, md.Quality)
}

func TestPipelineBandpassFailurePropagates(t *testing.T) {
	fs := 500.0
	path := writeTestRecord(t, ecgWave(2000, fs), fs)

	opts := DefaultOptions()
	opts.RemoveBaseline = false
	opts.BandLow = 40
	opts.BandHigh = 0.5 // inverted band

	_, _, err := NewPipeline(opts).Run(path)
	require.Error(t, err)

	var perr *ecg.PipelineError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "bandpass", perr.Stage)
}
