package preprocess

import (
	"github.com/SapoSopa/Projeto-SSC/algorithms/common"
	"github.com/SapoSopa/Projeto-SSC/ecg"
)

// NormMethod selects the normalization scheme. Invalid names are rejected by
// ParseNormMethod before any signal is touched.
type NormMethod int

const (
	NormZScore NormMethod = iota
	NormMinMax
	NormRobust
)

func (m NormMethod) String() string {
	switch m {
	case NormZScore:
		return "zscore"
	case NormMinMax:
		return "minmax"
	case NormRobust:
		return "robust"
	default:
		return "unknown"
	}
}

// ParseNormMethod maps a configuration string onto a NormMethod.
func ParseNormMethod(name string) (NormMethod, error) {
	switch name {
	case "zscore":
		return NormZScore, nil
	case "minmax":
		return NormMinMax, nil
	case "robust":
		return NormRobust, nil
	default:
		return 0, &ecg.ValidationError{Param: "method", Value: name, Reason: "method must be zscore, minmax or robust"}
	}
}

// Normalize rescales every channel independently, returning a fresh signal of
// the same shape. Degenerate channels never divide by zero:
//
//   - zscore with zero deviation yields the centered channel (all zeros)
//   - minmax on a constant channel returns the channel unchanged
//   - robust with zero MAD yields the median-centered channel
func Normalize(sig *ecg.Signal, method NormMethod) (*ecg.Signal, error) {
	if sig == nil {
		return nil, &ecg.ValidationError{Param: "signal", Value: nil, Reason: "signal is nil"}
	}

	out := ecg.Empty(sig.Samples(), sig.Channels())
	for ch := 0; ch < sig.Channels(); ch++ {
		channel, err := sig.Channel(ch)
		if err != nil {
			return nil, err
		}

		var normalized []float64
		switch method {
		case NormZScore:
			normalized = zscoreNormalize(channel)
		case NormMinMax:
			normalized = minMaxNormalize(channel)
		case NormRobust:
			normalized = robustNormalize(channel)
		default:
			return nil, &ecg.ValidationError{Param: "method", Value: int(method), Reason: "unknown normalization method"}
		}

		if err := out.SetChannel(ch, normalized); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func zscoreNormalize(channel []float64) []float64 {
	mean := common.Mean(channel)
	std := common.StandardDeviation(channel)

	normalized := make([]float64, len(channel))
	if std == 0 {
		for i, v := range channel {
			normalized[i] = v - mean
		}
		return normalized
	}

	for i, v := range channel {
		normalized[i] = (v - mean) / std
	}
	return normalized
}

func minMaxNormalize(channel []float64) []float64 {
	lo := common.Min(channel)
	hi := common.Max(channel)

	normalized := make([]float64, len(channel))
	if hi == lo {
		copy(normalized, channel)
		return normalized
	}

	for i, v := range channel {
		normalized[i] = (v - lo) / (hi - lo)
	}
	return normalized
}

func robustNormalize(channel []float64) []float64 {
	median := common.Median(channel)

	deviations := make([]float64, len(channel))
	for i, v := range channel {
		deviations[i] = abs(v - median)
	}
	mad := common.Median(deviations)

	normalized := make([]float64, len(channel))
	if mad == 0 {
		for i, v := range channel {
			normalized[i] = v - median
		}
		return normalized
	}

	for i, v := range channel {
		normalized[i] = (v - median) / mad
	}
	return normalized
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
