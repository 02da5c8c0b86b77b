package engine

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for basis computations.
var (
	// ErrUnsupportedAlgorithm indicates an algorithm that cannot run over the requested ring.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrRingOperation indicates an arithmetic operation the ring cannot perform.
	ErrRingOperation = errors.New("ring operation failed")

	// ErrCancelled indicates the computation was stopped before completion.
	ErrCancelled = errors.New("computation cancelled")
)

// UnsupportedAlgorithmError names the algorithm and ring that do not fit together.
type UnsupportedAlgorithmError struct {
	Algorithm string
	Ring      string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("algorithm %s is not supported over %s", e.Algorithm, e.Ring)
}

func (e *UnsupportedAlgorithmError) Unwrap() error {
	return ErrUnsupportedAlgorithm
}

// RingOperationError is a fatal arithmetic failure inside an engine.
type RingOperationError struct {
	Ring string
	Op   string
	Err  error
}

func (e *RingOperationError) Error() string {
	return fmt.Sprintf("ring operation %s over %s: %v", e.Op, e.Ring, e.Err)
}

func (e *RingOperationError) Unwrap() []error {
	return []error{ErrRingOperation, e.Err}
}

// CancelledError reports which engine stopped and why.
type CancelledError struct {
	Engine string
	Cause  error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("%s: computation cancelled: %v", e.Engine, e.Cause)
}

func (e *CancelledError) Unwrap() []error {
	return []error{ErrCancelled, e.Cause}
}

func newRingOperationError(ring fmt.Stringer, op string, err error) *RingOperationError {
	return &RingOperationError{Ring: ring.String(), Op: op, Err: err}
}

// checkCancelled converts a done context into a CancelledError.
func checkCancelled(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return &CancelledError{Engine: name, Cause: context.Cause(ctx)}
	}
	return nil
}

// asEngineError leaves engine errors untouched and wraps anything else as a
// ring failure.
func asEngineError(ring fmt.Stringer, op string, err error) error {
	var ce *CancelledError
	var re *RingOperationError
	if errors.As(err, &ce) || errors.As(err, &re) {
		return err
	}
	return newRingOperationError(ring, op, err)
}
