// Package classify trains and evaluates simple classification models on
// feature vectors. The models are intentionally small: the value is in a
// uniform train/predict/evaluate surface over interchangeable algorithms.
package classify

import (
	"math"
	"sort"

	"github.com/SapoSopa/Projeto-SSC/ecg"
)

// AlgorithmKind selects the classification algorithm.
type AlgorithmKind int

const (
	AlgorithmKNN AlgorithmKind = iota
	AlgorithmNearestCentroid
	AlgorithmNaiveBayes
)

func (k AlgorithmKind) String() string {
	switch k {
	case AlgorithmKNN:
		return "knn"
	case AlgorithmNearestCentroid:
		return "nearest_centroid"
	case AlgorithmNaiveBayes:
		return "naive_bayes"
	default:
		return "unknown"
	}
}

// ParseAlgorithmKind maps a configuration string onto an AlgorithmKind.
func ParseAlgorithmKind(name string) (AlgorithmKind, error) {
	switch name {
	case "knn":
		return AlgorithmKNN, nil
	case "nearest_centroid":
		return AlgorithmNearestCentroid, nil
	case "naive_bayes":
		return AlgorithmNaiveBayes, nil
	default:
		return 0, &ecg.ValidationError{Param: "algorithm", Value: name, Reason: "algorithm must be knn, nearest_centroid or naive_bayes"}
	}
}

// defaultNeighbors is the neighbor count used by the KNN model.
const defaultNeighbors = 5

type model interface {
	fit(x [][]float64, y []int)
	predict(sample []float64) int
}

// Classifier wraps one algorithm behind a train/predict/evaluate surface.
// Predict and Evaluate fail until Train has been called.
type Classifier struct {
	kind    AlgorithmKind
	model   model
	trained bool
}

// New returns an untrained classifier of the given kind.
func New(kind AlgorithmKind) (*Classifier, error) {
	var m model
	switch kind {
	case AlgorithmKNN:
		m = &knnModel{k: defaultNeighbors}
	case AlgorithmNearestCentroid:
		m = &centroidModel{}
	case AlgorithmNaiveBayes:
		m = &naiveBayesModel{}
	default:
		return nil, &ecg.ValidationError{Param: "algorithm", Value: int(kind), Reason: "unknown algorithm kind"}
	}
	return &Classifier{kind: kind, model: m}, nil
}

// Kind returns the classifier's algorithm.
func (c *Classifier) Kind() AlgorithmKind {
	return c.kind
}

// Train fits the model on the given samples and labels.
func (c *Classifier) Train(x [][]float64, y []int) error {
	if len(x) == 0 {
		return &ecg.ValidationError{Param: "x", Value: len(x), Reason: "training set is empty"}
	}
	if len(x) != len(y) {
		return &ecg.ValidationError{Param: "y", Value: len(y), Reason: "label count does not match sample count"}
	}
	width := len(x[0])
	if width == 0 {
		return &ecg.ValidationError{Param: "x", Value: 0, Reason: "samples have no features"}
	}
	for _, sample := range x {
		if len(sample) != width {
			return &ecg.ValidationError{Param: "x", Value: len(sample), Reason: "samples have inconsistent feature counts"}
		}
	}

	c.model.fit(x, y)
	c.trained = true
	return nil
}

// Predict labels each sample. The classifier must have been trained.
func (c *Classifier) Predict(x [][]float64) ([]int, error) {
	if !c.trained {
		return nil, &ecg.ValidationError{Param: "model", Value: c.kind.String(), Reason: "model has not been trained"}
	}

	labels := make([]int, len(x))
	for i, sample := range x {
		labels[i] = c.model.predict(sample)
	}
	return labels, nil
}

// Evaluate predicts labels for x and scores them against y.
func (c *Classifier) Evaluate(x [][]float64, y []int) (Metrics, error) {
	if len(x) != len(y) {
		return Metrics{}, &ecg.ValidationError{Param: "y", Value: len(y), Reason: "label count does not match sample count"}
	}

	predicted, err := c.Predict(x)
	if err != nil {
		return Metrics{}, err
	}
	return Score(y, predicted), nil
}

type knnModel struct {
	k int
	x [][]float64
	y []int
}

func (m *knnModel) fit(x [][]float64, y []int) {
	m.x = x
	m.y = y
}

func (m *knnModel) predict(sample []float64) int {
	type neighbor struct {
		dist  float64
		label int
	}

	neighbors := make([]neighbor, len(m.x))
	for i, train := range m.x {
		neighbors[i] = neighbor{dist: euclidean(sample, train), label: m.y[i]}
	}
	sort.Slice(neighbors, func(i, j int) bool { return neighbors[i].dist < neighbors[j].dist })

	k := m.k
	if k > len(neighbors) {
		k = len(neighbors)
	}

	votes := make(map[int]int, k)
	for _, n := range neighbors[:k] {
		votes[n.label]++
	}

	best, bestVotes := neighbors[0].label, 0
	for label, count := range votes {
		if count > bestVotes || (count == bestVotes && label < best) {
			best, bestVotes = label, count
		}
	}
	return best
}

type centroidModel struct {
	labels    []int
	centroids [][]float64
}

func (m *centroidModel) fit(x [][]float64, y []int) {
	sums := make(map[int][]float64)
	counts := make(map[int]int)
	for i, sample := range x {
		label := y[i]
		if sums[label] == nil {
			sums[label] = make([]float64, len(sample))
		}
		for j, v := range sample {
			sums[label][j] += v
		}
		counts[label]++
	}

	m.labels = sortedLabels(counts)
	m.centroids = make([][]float64, len(m.labels))
	for i, label := range m.labels {
		centroid := sums[label]
		for j := range centroid {
			centroid[j] /= float64(counts[label])
		}
		m.centroids[i] = centroid
	}
}

func (m *centroidModel) predict(sample []float64) int {
	best, bestDist := m.labels[0], math.Inf(1)
	for i, centroid := range m.centroids {
		if d := euclidean(sample, centroid); d < bestDist {
			best, bestDist = m.labels[i], d
		}
	}
	return best
}

// varianceFloor keeps the Gaussian likelihood finite for constant features.
const varianceFloor = 1e-9

type naiveBayesModel struct {
	labels    []int
	priors    []float64
	means     [][]float64
	variances [][]float64
}

func (m *naiveBayesModel) fit(x [][]float64, y []int) {
	counts := make(map[int]int)
	for _, label := range y {
		counts[label]++
	}
	m.labels = sortedLabels(counts)

	width := len(x[0])
	m.priors = make([]float64, len(m.labels))
	m.means = make([][]float64, len(m.labels))
	m.variances = make([][]float64, len(m.labels))

	index := make(map[int]int, len(m.labels))
	for i, label := range m.labels {
		index[label] = i
		m.priors[i] = float64(counts[label]) / float64(len(y))
		m.means[i] = make([]float64, width)
		m.variances[i] = make([]float64, width)
	}

	for i, sample := range x {
		ci := index[y[i]]
		for j, v := range sample {
			m.means[ci][j] += v
		}
	}
	for i, label := range m.labels {
		for j := range m.means[i] {
			m.means[i][j] /= float64(counts[label])
		}
	}

	for i, sample := range x {
		ci := index[y[i]]
		for j, v := range sample {
			d := v - m.means[ci][j]
			m.variances[ci][j] += d * d
		}
	}
	for i, label := range m.labels {
		for j := range m.variances[i] {
			m.variances[i][j] = m.variances[i][j]/float64(counts[label]) + varianceFloor
		}
	}
}

func (m *naiveBayesModel) predict(sample []float64) int {
	best, bestScore := m.labels[0], math.Inf(-1)
	for i, label := range m.labels {
		score := math.Log(m.priors[i])
		for j, v := range sample {
			variance := m.variances[i][j]
			d := v - m.means[i][j]
			score += -0.5*math.Log(2*math.Pi*variance) - d*d/(2*variance)
		}
		if score > bestScore {
			best, bestScore = label, score
		}
	}
	return best
}

func euclidean(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func sortedLabels(counts map[int]int) []int {
	labels := make([]int, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Ints(labels)
	return labels
}
