package ecg

// Metadata describes a loaded record and accumulates pipeline results.
// It is created by the loader and enriched by each stage; it is never shared
// across concurrent pipelines.
type Metadata struct {
	FS          float64                   `json:"fs"`
	SigNames    []string                  `json:"sig_name"`
	NumSamples  int                       `json:"n_samples"`
	NumChannels int                       `json:"n_channels"`
	Quality     map[string]ChannelQuality `json:"qualidade,omitempty"`
}

// ChannelQuality holds the per-channel quality metrics computed by the
// quality assessor. All values are finite; Saturation is in [0, 1].
type ChannelQuality struct {
	SNR           float64 `json:"snr_estimado"`
	MaxAmplitude  float64 `json:"amplitude_maxima"`
	Saturation    float64 `json:"saturacao"`
	ZeroCrossings float64 `json:"zero_crossings"`
	RMS           float64 `json:"rms"`
}

// DurationSeconds returns the record duration implied by fs and n_samples.
func (m Metadata) DurationSeconds() float64 {
	if m.FS <= 0 {
		return 0
	}
	return float64(m.NumSamples) / m.FS
}
