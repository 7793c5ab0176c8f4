package classify

import (
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/SapoSopa/Projeto-SSC/ecg"
)

// defaultSeed makes splits reproducible across runs unless the caller picks
// another seed.
const defaultSeed = 42

// Split holds a train/test partition of a dataset.
type Split struct {
	XTrain [][]float64
	YTrain []int
	XTest  [][]float64
	YTest  []int
}

// TrainTestSplit shuffles the dataset with the given seed and holds out
// testFraction of it for evaluation. Both partitions are guaranteed
// non-empty.
func TrainTestSplit(x [][]float64, y []int, testFraction float64, seed int64) (Split, error) {
	if len(x) != len(y) {
		return Split{}, &ecg.ValidationError{Param: "y", Value: len(y), Reason: "label count does not match sample count"}
	}
	if testFraction <= 0 || testFraction >= 1 {
		return Split{}, &ecg.ValidationError{Param: "test_fraction", Value: testFraction, Reason: "test fraction must be in (0, 1)"}
	}

	testSize := int(float64(len(x)) * testFraction)
	if testSize < 1 || len(x)-testSize < 1 {
		return Split{}, &ecg.ValidationError{Param: "x", Value: len(x), Reason: "dataset too small to split"}
	}

	order := rand.New(rand.NewSource(seed)).Perm(len(x))

	split := Split{
		XTrain: make([][]float64, 0, len(x)-testSize),
		YTrain: make([]int, 0, len(x)-testSize),
		XTest:  make([][]float64, 0, testSize),
		YTest:  make([]int, 0, testSize),
	}
	for i, idx := range order {
		if i < testSize {
			split.XTest = append(split.XTest, x[idx])
			split.YTest = append(split.YTest, y[idx])
		} else {
			split.XTrain = append(split.XTrain, x[idx])
			split.YTrain = append(split.YTrain, y[idx])
		}
	}
	return split, nil
}

// CompareClassifiers trains every available algorithm on the split's training
// partition and evaluates it on the test partition. A failing algorithm is
// logged and left out of the result rather than aborting the comparison.
func CompareClassifiers(split Split) map[string]Metrics {
	kinds := []AlgorithmKind{AlgorithmKNN, AlgorithmNearestCentroid, AlgorithmNaiveBayes}

	results := make(map[string]Metrics, len(kinds))
	for _, kind := range kinds {
		clf, err := New(kind)
		if err != nil {
			log.Warn().Str("algorithm", kind.String()).Err(err).Msg("classifier construction failed")
			continue
		}
		if err := clf.Train(split.XTrain, split.YTrain); err != nil {
			log.Warn().Str("algorithm", kind.String()).Err(err).Msg("classifier training failed")
			continue
		}
		metrics, err := clf.Evaluate(split.XTest, split.YTest)
		if err != nil {
			log.Warn().Str("algorithm", kind.String()).Err(err).Msg("classifier evaluation failed")
			continue
		}
		results[kind.String()] = metrics
	}
	return results
}
