package features

import (
	"github.com/rs/zerolog/log"

	"github.com/SapoSopa/Projeto-SSC/ecg"
)

// Options parameterizes feature extraction. The zero value is not useful;
// start from DefaultOptions.
type Options struct {
	// PeakMinDistance is the minimum sample separation between counted
	// peaks. It is a fixed design parameter, not scaled by sampling rate.
	PeakMinDistance int

	// RolloffThreshold is the cumulative energy fraction defining the
	// spectral rolloff frequency.
	RolloffThreshold float64

	// EntropyBins is the histogram bin count for the entropy features.
	EntropyBins int

	// DefaultFS is used when a record reports a non-positive sampling rate.
	DefaultFS float64

	// Bands are the frequency intervals reported as band energies.
	Bands []Band
}

// DefaultOptions returns the standard extraction parameters.
func DefaultOptions() Options {
	return Options{
		PeakMinDistance:  50,
		RolloffThreshold: 0.85,
		EntropyBins:      100,
		DefaultFS:        100,
		Bands:            DefaultBands(),
	}
}

// FeatureSet bundles the three extractor outputs for one channel.
type FeatureSet struct {
	Time      TimeDomainFeatures      `json:"time"`
	Frequency FrequencyDomainFeatures `json:"frequency"`
	Entropy   EntropyFeatures         `json:"entropy"`
}

// Map merges all features into one name-to-value mapping.
func (s FeatureSet) Map() map[string]float64 {
	merged := s.Time.Map()
	for name, v := range s.Frequency.Map() {
		merged[name] = v
	}
	for name, v := range s.Entropy.Map() {
		merged[name] = v
	}
	return merged
}

// Extractor computes feature sets from channels of a processed signal.
type Extractor struct {
	opts Options
}

// NewExtractor returns an extractor with the given options.
func NewExtractor(opts Options) *Extractor {
	if opts.Bands == nil {
		opts.Bands = DefaultBands()
	}
	return &Extractor{opts: opts}
}

// ExtractVector computes the full feature set of a single channel.
func (e *Extractor) ExtractVector(channel []float64, fs float64) (FeatureSet, error) {
	if len(channel) == 0 {
		return FeatureSet{}, &ecg.ValidationError{Param: "channel", Value: len(channel), Reason: "channel is empty"}
	}
	if fs <= 0 {
		fs = e.opts.DefaultFS
	}

	return FeatureSet{
		Time:      extractTimeDomain(channel, e.opts.PeakMinDistance),
		Frequency: extractFrequencyDomain(channel, fs, e.opts.RolloffThreshold, e.opts.Bands),
		Entropy:   extractEntropy(channel, e.opts.EntropyBins),
	}, nil
}

// ExtractChannel computes the feature set of one channel of a multi-channel
// signal.
func (e *Extractor) ExtractChannel(sig *ecg.Signal, channel int, fs float64) (FeatureSet, error) {
	if sig == nil {
		return FeatureSet{}, &ecg.ValidationError{Param: "signal", Value: nil, Reason: "signal is nil"}
	}
	samples, err := sig.Channel(channel)
	if err != nil {
		return FeatureSet{}, err
	}
	return e.ExtractVector(samples, fs)
}

// ExtractAll computes feature sets for the given channels, or for every
// channel when channels is nil. A failing channel is recorded as an empty
// feature map and the rest continue; failures never abort the batch.
func (e *Extractor) ExtractAll(sig *ecg.Signal, channels []int, fs float64) (map[int]map[string]float64, error) {
	if sig == nil {
		return nil, &ecg.ValidationError{Param: "signal", Value: nil, Reason: "signal is nil"}
	}

	if channels == nil {
		channels = make([]int, sig.Channels())
		for i := range channels {
			channels[i] = i
		}
	}

	results := make(map[int]map[string]float64, len(channels))
	for _, ch := range channels {
		set, err := e.ExtractChannel(sig, ch, fs)
		if err != nil {
			log.Warn().
				Int("channel", ch).
				Err(err).
				Msg("feature extraction failed for channel")
			results[ch] = map[string]float64{}
			continue
		}
		results[ch] = set.Map()
	}
	return results, nil
}
