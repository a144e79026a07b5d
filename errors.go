package lazymode

import (
	"errors"
	"fmt"
)

var (
	// ErrNotTrained is returned by Predict, Evaluate and Save on a model
	// that has not been trained yet.
	ErrNotTrained = errors.New("model must be trained first")

	// ErrInvalidTrainingData is returned by Train when the input/output
	// pairs are empty or of mismatched length. The previous trained state,
	// if any, is left untouched.
	ErrInvalidTrainingData = errors.New("invalid training data")
)

// ErrModelLoad indicates that a persisted model could not be loaded: the
// blob is missing, corrupt, or written by an incompatible version. A load
// failure never yields a partially initialized model.
//
// The underlying error can be accessed via errors.Unwrap.
type ErrModelLoad struct {
	Name  string
	cause error
}

func (e *ErrModelLoad) Error() string {
	return fmt.Sprintf("load model %q: %v", e.Name, e.cause)
}

func (e *ErrModelLoad) Unwrap() error { return e.cause }
