package features

import (
	"github.com/SapoSopa/Projeto-SSC/algorithms/stats"
)

// EntropyFeatures holds the amplitude-distribution entropy descriptors of one
// channel.
type EntropyFeatures struct {
	ShannonEntropy    float64 `json:"shannon_entropy"`
	NormalizedEntropy float64 `json:"normalized_entropy"`
}

// Map returns the features as a name-to-value mapping for serialization.
func (f EntropyFeatures) Map() map[string]float64 {
	return map[string]float64{
		"shannon_entropy":    f.ShannonEntropy,
		"normalized_entropy": f.NormalizedEntropy,
	}
}

func extractEntropy(channel []float64, bins int) EntropyFeatures {
	return EntropyFeatures{
		ShannonEntropy:    stats.ShannonEntropy(channel, bins),
		NormalizedEntropy: stats.NormalizedShannonEntropy(channel, bins),
	}
}
