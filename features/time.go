// Package features computes scalar descriptors (time-domain, frequency-domain
// and entropy) from single channels of a processed record, and serializes the
// per-channel results next to the record's other artifacts.
package features

import (
	"github.com/SapoSopa/Projeto-SSC/algorithms/common"
)

// TimeDomainFeatures holds the fixed set of time-domain descriptors of one
// channel.
type TimeDomainFeatures struct {
	Mean          float64 `json:"mean"`
	Std           float64 `json:"std"`
	Variance      float64 `json:"variance"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Range         float64 `json:"range"`
	RMS           float64 `json:"rms"`
	Skewness      float64 `json:"skewness"`
	Kurtosis      float64 `json:"kurtosis"`
	IQR           float64 `json:"iqr"`
	ZeroCrossings float64 `json:"zero_crossings"`
	NumPeaks      float64 `json:"num_peaks"`
}

// Map returns the features as a name-to-value mapping for serialization.
func (f TimeDomainFeatures) Map() map[string]float64 {
	return map[string]float64{
		"mean":           f.Mean,
		"std":            f.Std,
		"variance":       f.Variance,
		"min":            f.Min,
		"max":            f.Max,
		"range":          f.Range,
		"rms":            f.RMS,
		"skewness":       f.Skewness,
		"kurtosis":       f.Kurtosis,
		"iqr":            f.IQR,
		"zero_crossings": f.ZeroCrossings,
		"num_peaks":      f.NumPeaks,
	}
}

func extractTimeDomain(channel []float64, peakMinDistance int) TimeDomainFeatures {
	lo := common.Min(channel)
	hi := common.Max(channel)

	return TimeDomainFeatures{
		Mean:          common.Mean(channel),
		Std:           common.StandardDeviation(channel),
		Variance:      common.Variance(channel),
		Min:           lo,
		Max:           hi,
		Range:         hi - lo,
		RMS:           common.RMS(channel),
		Skewness:      common.Skewness(channel),
		Kurtosis:      common.Kurtosis(channel),
		IQR:           common.IQR(channel),
		ZeroCrossings: float64(common.SignBitChanges(channel)),
		NumPeaks:      float64(len(common.FindPeaks(channel, peakMinDistance))),
	}
}
