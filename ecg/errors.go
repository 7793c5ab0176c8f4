package ecg

import "fmt"

// ValidationError reports a rejected parameter: invalid filter type or
// frequencies, unknown normalization method, non-positive fs or ecg_id,
// empty signal, malformed channel index.
type ValidationError struct {
	Param  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Param, e.Value, e.Reason)
}

// LoadError reports a record that could not be found or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load record %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// PipelineError wraps a failure of any preprocessing stage so callers see a
// single error taxonomy regardless of which stage failed. The original cause
// is preserved for errors.As/Is.
type PipelineError struct {
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("preprocessing stage %q failed: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }

// PersistenceError reports a failed artifact write or read.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure at %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
