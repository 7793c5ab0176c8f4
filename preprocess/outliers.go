package preprocess

import (
	"github.com/SapoSopa/Projeto-SSC/algorithms/common"
	"github.com/SapoSopa/Projeto-SSC/ecg"
)

// DetectOutliers flags samples whose z-score magnitude exceeds threshold,
// channel by channel. The result is indexed [channel][sample]. A channel
// with zero deviation has no outliers.
func DetectOutliers(sig *ecg.Signal, threshold float64) ([][]bool, error) {
	if sig == nil {
		return nil, &ecg.ValidationError{Param: "signal", Value: nil, Reason: "signal is nil"}
	}
	if threshold <= 0 {
		return nil, &ecg.ValidationError{Param: "threshold", Value: threshold, Reason: "threshold must be positive"}
	}

	mask := make([][]bool, sig.Channels())
	for ch := 0; ch < sig.Channels(); ch++ {
		channel, err := sig.Channel(ch)
		if err != nil {
			return nil, err
		}

		flags := make([]bool, len(channel))
		mean := common.Mean(channel)
		std := common.StandardDeviation(channel)
		if std > 0 {
			for i, v := range channel {
				flags[i] = abs(v-mean)/std > threshold
			}
		}
		mask[ch] = flags
	}
	return mask, nil
}
