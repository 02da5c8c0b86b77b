package gb

import "github.com/utkarsh5026/groebner/internal/engine"

// Errors returned by the factory and by engines. Match them with errors.Is
// and errors.As.
var (
	ErrUnsupportedAlgorithm = engine.ErrUnsupportedAlgorithm
	ErrRingOperation        = engine.ErrRingOperation
	ErrCancelled            = engine.ErrCancelled
)

type (
	UnsupportedAlgorithmError = engine.UnsupportedAlgorithmError
	RingOperationError        = engine.RingOperationError
	CancelledError            = engine.CancelledError
)
