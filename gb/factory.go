package gb

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/utkarsh5026/groebner/internal/engine"
	"github.com/utkarsh5026/groebner/ring"
)

// Engine computes Gröbner bases over one coefficient ring. Engines are
// safe for concurrent use.
type Engine[C any] = engine.Engine[C]

// GetImplementation returns the sequential engine for r, or the engine
// requested with WithAlgorithm. Nothing is computed.
func GetImplementation[C any](r ring.Ring[C], opts ...Option) (Engine[C], error) {
	cfg := createConfig(opts...)
	e, err := implementation(r, cfg)
	if err != nil {
		return nil, err
	}
	cfg.logger.Debug("Selected engine", zap.Stringer("engine", e), zap.Stringer("ring", r))
	return e, nil
}

func implementation[C any](r ring.Ring[C], cfg *config) (Engine[C], error) {
	if cfg.algorithm != AlgoDefault {
		return byAlgorithm(r, cfg)
	}
	opts := cfg.engineOptions()
	caps := r.Capabilities()
	if caps.IsField {
		return engine.NewFieldSeq(r, opts), nil
	}
	switch caps.Category {
	case ring.CategoryPolynomial:
		return engine.NewPseudoRecSeq(r, opts), nil
	case ring.CategoryProduct:
		f, ok := r.(ring.Factored[C])
		if !ok {
			return nil, unsupported(AlgoDefault, r)
		}
		return engine.NewRegularSeq(f, opts), nil
	case ring.CategoryGeneric, ring.CategoryQuotient:
		return engine.NewPseudoSeq(r, opts), nil
	default:
		return nil, unsupported(AlgoDefault, r)
	}
}

// byAlgorithm resolves an explicit algorithm tag. The integral algorithms
// need a Euclidean ring that is not a field; the rational ones a field.
func byAlgorithm[C any](r ring.Ring[C], cfg *config) (Engine[C], error) {
	opts := cfg.engineOptions()
	caps := r.Capabilities()
	euclid, isEuclid := r.(ring.EuclideanRing[C])
	integral := isEuclid && !caps.IsField

	switch cfg.algorithm {
	case AlgoIGB:
		if integral {
			return engine.NewPseudoSeq(r, opts), nil
		}
	case AlgoEGB:
		if integral {
			return engine.NewESeq(euclid, opts), nil
		}
	case AlgoDGB:
		if integral {
			return engine.NewDSeq(euclid, opts), nil
		}
	case AlgoQGB:
		if caps.IsField {
			return engine.NewFieldSeq(r, opts), nil
		}
	case AlgoFFGB:
		if ff, ok := r.(ring.FractionField[C]); ok && caps.IsField {
			return engine.NewFractionFree(ff, opts), nil
		}
	}
	return nil, unsupported(cfg.algorithm, r)
}

// GetProxy returns an engine that races the sequential and the parallel
// engine for r. Without concurrency, for rings that have no parallel
// engine, or for algorithm tags with no parallel variant (egb, dgb,
// ffgb), it returns GetImplementation(r) instead. Tags are validated
// against r either way.
func GetProxy[C any](r ring.Ring[C], opts ...Option) (Engine[C], error) {
	cfg := createConfig(opts...)
	if cfg.exec.DisableConcurrency || !hasParallel(cfg.algorithm) {
		return GetImplementation(r, opts...)
	}
	if cfg.algorithm != AlgoDefault {
		if _, err := byAlgorithm(r, cfg); err != nil {
			return nil, err
		}
	}

	eo := cfg.engineOptions()
	caps := r.Capabilities()
	var p *Proxy[C]
	switch {
	case caps.IsField:
		p = NewProxy[C](engine.NewFieldSeq(r, eo), engine.NewFieldParallel(r, eo), cfg.logger)
	case caps.IsIntegralDomain && caps.CharacteristicZero():
		p = NewProxy[C](engine.NewPseudoSeq(r, eo), engine.NewPseudoParallel(r, eo), cfg.logger)
	default:
		return GetImplementation(r, opts...)
	}
	cfg.logger.Debug("Selected engine", zap.Stringer("engine", p), zap.Stringer("ring", r))
	return p, nil
}

// GetParallel returns the parallel engine for r. Only fields and integral
// domains of characteristic zero have one, and only the default, igb and
// qgb algorithms. Disabled concurrency makes every ring unsupported.
func GetParallel[C any](r ring.Ring[C], opts ...Option) (Engine[C], error) {
	cfg := createConfig(opts...)
	if cfg.exec.DisableConcurrency || !hasParallel(cfg.algorithm) {
		name := "parallel"
		if cfg.algorithm != AlgoDefault {
			name += " " + cfg.algorithm.String()
		}
		return nil, &UnsupportedAlgorithmError{Algorithm: name, Ring: r.String()}
	}
	if cfg.algorithm != AlgoDefault {
		if _, err := byAlgorithm(r, cfg); err != nil {
			return nil, err
		}
	}
	eo := cfg.engineOptions()
	caps := r.Capabilities()
	switch {
	case caps.IsField:
		return engine.NewFieldParallel(r, eo), nil
	case caps.IsIntegralDomain && caps.CharacteristicZero():
		return engine.NewPseudoParallel(r, eo), nil
	default:
		return nil, &UnsupportedAlgorithmError{Algorithm: "parallel", Ring: r.String()}
	}
}

// hasParallel reports whether a parallel engine computes what a selects.
func hasParallel(a Algorithm) bool {
	return a == AlgoDefault || a == AlgoIGB || a == AlgoQGB
}

func unsupported(a Algorithm, r fmt.Stringer) error {
	return &UnsupportedAlgorithmError{Algorithm: a.String(), Ring: r.String()}
}
