// Package ecg defines the core data model shared by the preprocessing and
// feature-extraction pipelines: the multi-channel Signal, its Metadata, and
// the error taxonomy used across stages.
package ecg

import (
	"gonum.org/v1/gonum/mat"
)

// Signal is a multi-channel waveform laid out as (samples, channels) in
// double precision. Transforms never mutate a Signal in place; each stage
// produces a fresh one.
type Signal struct {
	data *mat.Dense
}

// NewSignal wraps an existing dense matrix. The matrix must have at least
// one sample and one channel.
func NewSignal(data *mat.Dense) (*Signal, error) {
	if data == nil {
		return nil, &ValidationError{Param: "signal", Value: nil, Reason: "signal matrix is nil"}
	}
	rows, cols := data.Dims()
	if rows < 1 || cols < 1 {
		return nil, &ValidationError{Param: "signal", Value: [2]int{rows, cols}, Reason: "signal must have at least one sample and one channel"}
	}
	return &Signal{data: data}, nil
}

// FromVector treats a 1-D sample sequence as a single-channel signal.
func FromVector(samples []float64) (*Signal, error) {
	if len(samples) == 0 {
		return nil, &ValidationError{Param: "signal", Value: 0, Reason: "signal must have at least one sample"}
	}
	data := mat.NewDense(len(samples), 1, nil)
	data.SetCol(0, samples)
	return &Signal{data: data}, nil
}

// FromChannels builds a signal from equally sized channel slices.
func FromChannels(channels [][]float64) (*Signal, error) {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return nil, &ValidationError{Param: "signal", Value: len(channels), Reason: "signal must have at least one sample and one channel"}
	}
	n := len(channels[0])
	for i, ch := range channels {
		if len(ch) != n {
			return nil, &ValidationError{Param: "signal", Value: i, Reason: "all channels must have the same length"}
		}
	}
	data := mat.NewDense(n, len(channels), nil)
	for i, ch := range channels {
		data.SetCol(i, ch)
	}
	return &Signal{data: data}, nil
}

// Empty allocates a zeroed signal of the given shape, used by per-channel
// transforms to assemble their output.
func Empty(samples, channels int) *Signal {
	return &Signal{data: mat.NewDense(samples, channels, nil)}
}

// Samples returns the number of samples per channel.
func (s *Signal) Samples() int {
	rows, _ := s.data.Dims()
	return rows
}

// Channels returns the number of channels.
func (s *Signal) Channels() int {
	_, cols := s.data.Dims()
	return cols
}

// Channel returns a copy of channel i.
func (s *Signal) Channel(i int) ([]float64, error) {
	if i < 0 || i >= s.Channels() {
		return nil, &ValidationError{Param: "channel", Value: i, Reason: "channel index out of range"}
	}
	return mat.Col(nil, i, s.data), nil
}

// SetChannel overwrites channel i with the given samples.
func (s *Signal) SetChannel(i int, samples []float64) error {
	if i < 0 || i >= s.Channels() {
		return &ValidationError{Param: "channel", Value: i, Reason: "channel index out of range"}
	}
	if len(samples) != s.Samples() {
		return &ValidationError{Param: "channel", Value: len(samples), Reason: "channel length does not match signal length"}
	}
	s.data.SetCol(i, samples)
	return nil
}

// At returns the sample at (row, channel).
func (s *Signal) At(sample, channel int) float64 {
	return s.data.At(sample, channel)
}

// Matrix exposes the underlying dense matrix for persistence and numeric
// interop. Callers must not mutate it.
func (s *Signal) Matrix() *mat.Dense {
	return s.data
}

// Clone returns a deep copy.
func (s *Signal) Clone() *Signal {
	out := mat.NewDense(s.Samples(), s.Channels(), nil)
	out.Copy(s.data)
	return &Signal{data: out}
}
