package relay

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the root of every build-phase error. Use errors.Is to
// detect it.
var ErrConfiguration = errors.New("relay: configuration error")

var (
	ErrNoSource         = fmt.Errorf("%w: no source set", ErrConfiguration)
	ErrSourceAlreadySet = fmt.Errorf("%w: source already set", ErrConfiguration)
	ErrFinalized        = fmt.Errorf("%w: chain already finalized", ErrConfiguration)
	ErrNilLink          = fmt.Errorf("%w: nil link", ErrConfiguration)
	ErrThreshold        = fmt.Errorf("%w: threshold must be at least 1", ErrConfiguration)
)

// TransformError wraps a failure returned by a stage transform.
type TransformError struct {
	Stage string
	// Inputs is the number of values the failed transform consumed
	Inputs int
	Err    error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("relay: stage %q: transform failed: %v", e.Stage, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// PanicError is produced when a scheduled delivery panics.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("relay: delivery panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func IsTransformError(err error) bool {
	var te *TransformError
	return errors.As(err, &te)
}

// GetErrors flattens an errors.Join result.
func GetErrors(err error) []error {
	if err == nil {
		return []error{}
	}

	e, ok := err.(interface{ Unwrap() []error })
	if ok {
		return e.Unwrap()
	}

	return []error{err}
}
