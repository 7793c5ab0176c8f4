// Package preprocess implements the signal-conditioning stages applied to a
// loaded record: digital filtering, normalization, windowing, outlier
// detection and quality assessment, plus the pipeline that orders them.
package preprocess

import (
	"github.com/rs/zerolog/log"

	"github.com/SapoSopa/Projeto-SSC/algorithms/filters"
	"github.com/SapoSopa/Projeto-SSC/ecg"
)

// FilterKind selects the filter response. Invalid names are rejected by
// ParseFilterKind before any signal is touched.
type FilterKind int

const (
	FilterBandpass FilterKind = iota
	FilterLowpass
	FilterHighpass
)

func (k FilterKind) String() string {
	switch k {
	case FilterBandpass:
		return "bandpass"
	case FilterLowpass:
		return "lowpass"
	case FilterHighpass:
		return "highpass"
	default:
		return "unknown"
	}
}

// ParseFilterKind maps a configuration string onto a FilterKind.
func ParseFilterKind(name string) (FilterKind, error) {
	switch name {
	case "bandpass":
		return FilterBandpass, nil
	case "lowpass":
		return FilterLowpass, nil
	case "highpass":
		return FilterHighpass, nil
	default:
		return 0, &ecg.ValidationError{Param: "filter", Value: name, Reason: "filter must be bandpass, lowpass or highpass"}
	}
}

// ApplyFilter runs a zero-phase Butterworth filter of the given kind over
// every channel independently, returning a fresh signal of the same shape.
//
// Bandpass takes exactly two cutoff frequencies in Hz with low < high;
// lowpass and highpass take exactly one. Cutoffs are normalized by the
// Nyquist frequency fs/2. A normalized cutoff at or above 1.0 is warned
// about but still handed to the design routine, which decides whether the
// request is representable.
func ApplyFilter(sig *ecg.Signal, fs float64, kind FilterKind, cutoffs []float64, order int) (*ecg.Signal, error) {
	if sig == nil {
		return nil, &ecg.ValidationError{Param: "signal", Value: nil, Reason: "signal is nil"}
	}
	if fs <= 0 {
		return nil, &ecg.ValidationError{Param: "fs", Value: fs, Reason: "sampling rate must be positive"}
	}
	if order < 1 {
		return nil, &ecg.ValidationError{Param: "order", Value: order, Reason: "filter order must be at least 1"}
	}

	var band filters.BandType
	switch kind {
	case FilterBandpass:
		band = filters.Bandpass
		if len(cutoffs) != 2 {
			return nil, &ecg.ValidationError{Param: "frequencies", Value: len(cutoffs), Reason: "bandpass filter needs two frequencies (low, high)"}
		}
		if cutoffs[0] >= cutoffs[1] {
			return nil, &ecg.ValidationError{Param: "frequencies", Value: cutoffs, Reason: "bandpass frequencies must satisfy low < high"}
		}
	case FilterLowpass, FilterHighpass:
		band = filters.Lowpass
		if kind == FilterHighpass {
			band = filters.Highpass
		}
		if len(cutoffs) != 1 {
			return nil, &ecg.ValidationError{Param: "frequencies", Value: len(cutoffs), Reason: kind.String() + " filter needs exactly one frequency"}
		}
	default:
		return nil, &ecg.ValidationError{Param: "filter", Value: int(kind), Reason: "unknown filter kind"}
	}

	nyquist := fs / 2
	normalized := make([]float64, len(cutoffs))
	for i, f := range cutoffs {
		if f <= 0 {
			return nil, &ecg.ValidationError{Param: "frequencies", Value: f, Reason: "cutoff frequency must be positive"}
		}
		normalized[i] = f / nyquist
		if normalized[i] >= 1.0 {
			log.Warn().
				Float64("cutoff_hz", f).
				Float64("nyquist_hz", nyquist).
				Msg("cutoff frequency at or above Nyquist")
		}
	}

	coeffs, err := filters.Butterworth(order, band, normalized)
	if err != nil {
		return nil, err
	}

	out := ecg.Empty(sig.Samples(), sig.Channels())
	for ch := 0; ch < sig.Channels(); ch++ {
		channel, err := sig.Channel(ch)
		if err != nil {
			return nil, err
		}
		filtered, err := filters.FiltFilt(coeffs, channel)
		if err != nil {
			return nil, err
		}
		if err := out.SetChannel(ch, filtered); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// RemoveBaselineDrift removes low-frequency baseline wander with a zero-phase
// highpass at the given cutoff (typically 0.5 Hz).
func RemoveBaselineDrift(sig *ecg.Signal, fs, cutoff float64, order int) (*ecg.Signal, error) {
	return ApplyFilter(sig, fs, FilterHighpass, []float64{cutoff}, order)
}
