package features

import (
	"github.com/SapoSopa/Projeto-SSC/algorithms/common"
	"github.com/SapoSopa/Projeto-SSC/algorithms/spectral"
)

// Band is a named frequency interval [Low, High) in Hz whose spectral energy
// is reported as one band_energy_<name> feature.
type Band struct {
	Name string
	Low  float64
	High float64
}

// DefaultBands covers the clinically interesting ECG frequency ranges:
// baseline wander, low-frequency waves, the QRS band and high-frequency
// content.
func DefaultBands() []Band {
	return []Band{
		{Name: "baseline", Low: 0, High: 0.5},
		{Name: "low", Low: 0.5, High: 4},
		{Name: "mid", Low: 4, High: 15},
		{Name: "high", Low: 15, High: 40},
	}
}

// FrequencyDomainFeatures holds the spectral descriptors of one channel.
type FrequencyDomainFeatures struct {
	SpectralCentroid  float64            `json:"spectral_centroid"`
	SpectralBandwidth float64            `json:"spectral_bandwidth"`
	SpectralRolloff   float64            `json:"spectral_rolloff"`
	SpectralFlux      float64            `json:"spectral_flux"`
	DominantFrequency float64            `json:"dominant_frequency"`
	FFTMean           float64            `json:"fft_mean"`
	FFTStd            float64            `json:"fft_std"`
	BandEnergy        map[string]float64 `json:"-"`
}

// Map returns the features as a name-to-value mapping for serialization, with
// band energies flattened as band_energy_<name>.
func (f FrequencyDomainFeatures) Map() map[string]float64 {
	m := map[string]float64{
		"spectral_centroid":  f.SpectralCentroid,
		"spectral_bandwidth": f.SpectralBandwidth,
		"spectral_rolloff":   f.SpectralRolloff,
		"spectral_flux":      f.SpectralFlux,
		"dominant_frequency": f.DominantFrequency,
		"fft_mean":           f.FFTMean,
		"fft_std":            f.FFTStd,
	}
	for name, energy := range f.BandEnergy {
		m["band_energy_"+name] = energy
	}
	return m
}

// extractFrequencyDomain computes the spectral descriptors of one channel. A
// channel with zero spectral energy yields an all-zero result rather than a
// division by zero.
func extractFrequencyDomain(channel []float64, fs, rolloffThreshold float64, bands []Band) FrequencyDomainFeatures {
	spectrum := spectral.Compute(channel, fs)

	bandEnergy := make(map[string]float64, len(bands))
	for _, band := range bands {
		bandEnergy[band.Name] = 0.0
	}

	if spectrum.TotalEnergy() == 0 {
		return FrequencyDomainFeatures{BandEnergy: bandEnergy}
	}

	centroid := spectrum.Centroid()
	for _, band := range bands {
		bandEnergy[band.Name] = spectrum.BandEnergy(band.Low, band.High)
	}

	return FrequencyDomainFeatures{
		SpectralCentroid:  centroid,
		SpectralBandwidth: spectrum.Bandwidth(centroid),
		SpectralRolloff:   spectrum.Rolloff(rolloffThreshold),
		SpectralFlux:      spectrum.Flux(),
		DominantFrequency: spectrum.Dominant(),
		FFTMean:           common.Mean(spectrum.Magnitude),
		FFTStd:            common.StandardDeviation(spectrum.Magnitude),
		BandEnergy:        bandEnergy,
	}
}
