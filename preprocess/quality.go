package preprocess

import (
	"fmt"
	"math"

	"github.com/SapoSopa/Projeto-SSC/algorithms/common"
	"github.com/SapoSopa/Projeto-SSC/ecg"
)

// saturationFraction of the channel peak above which a sample is counted as
// saturated.
const saturationFraction = 0.95

// AssessQuality computes per-channel quality indicators, keyed "canal_<i>".
//
// The SNR estimate treats the sample-to-sample difference as the noise floor:
// snr = 20*log10(std(x) / std(diff(x))). A constant (dead) channel reports
// 0 dB; a varying channel with a perfectly smooth first difference reports
// 100 dB.
func AssessQuality(sig *ecg.Signal, fs float64) (map[string]ecg.ChannelQuality, error) {
	if sig == nil {
		return nil, &ecg.ValidationError{Param: "signal", Value: nil, Reason: "signal is nil"}
	}
	if fs <= 0 {
		return nil, &ecg.ValidationError{Param: "fs", Value: fs, Reason: "sampling rate must be positive"}
	}

	quality := make(map[string]ecg.ChannelQuality, sig.Channels())
	for ch := 0; ch < sig.Channels(); ch++ {
		channel, err := sig.Channel(ch)
		if err != nil {
			return nil, err
		}
		quality[fmt.Sprintf("canal_%d", ch)] = assessChannel(channel)
	}
	return quality, nil
}

func assessChannel(channel []float64) ecg.ChannelQuality {
	std := common.StandardDeviation(channel)
	stdDiff := common.StandardDeviation(common.Diff(channel))

	var snr float64
	switch {
	case std == 0:
		snr = 0.0
	case stdDiff == 0:
		snr = 100.0
	default:
		snr = 20 * math.Log10(std/(stdDiff+1e-10))
	}

	peak := common.MaxAbs(channel)
	saturated := 0
	if peak > 0 {
		limit := saturationFraction * peak
		for _, v := range channel {
			if math.Abs(v) > limit {
				saturated++
			}
		}
	}

	return ecg.ChannelQuality{
		SNR:           snr,
		MaxAmplitude:  peak,
		Saturation:    float64(saturated) / float64(len(channel)),
		ZeroCrossings: float64(common.SignChanges(channel)),
		RMS:           common.RMS(channel),
	}
}
