package gb

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/utkarsh5026/groebner/internal/cpu"
	"github.com/utkarsh5026/groebner/internal/engine"
	"github.com/utkarsh5026/groebner/internal/pairs"
)

// Option is a functional option for the factory.
type Option func(*config)

// ExecutionConfig controls how engines use the machine. The zero value
// enables concurrency with the default worker count.
type ExecutionConfig struct {
	// Workers is the parallel worker count. Zero or less means
	// max(available CPUs - 1, 2).
	Workers int `yaml:"workers"`

	// DisableConcurrency makes GetProxy return sequential engines only.
	DisableConcurrency bool `yaml:"disable_concurrency"`

	// PinWorkers locks each parallel worker to its own CPU.
	PinWorkers bool `yaml:"pin_workers"`

	// ProgressInterval throttles progress logs. Zero means two seconds.
	ProgressInterval time.Duration `yaml:"progress_interval"`
}

// Algorithm overrides the engine the factory picks for a ring.
type Algorithm int

const (
	// AlgoDefault lets the factory choose from the ring's capabilities.
	AlgoDefault Algorithm = iota

	// AlgoIGB is the integral pseudo-reduction basis over a Euclidean domain.
	AlgoIGB

	// AlgoEGB is the strong basis with e-reduction over a Euclidean domain.
	AlgoEGB

	// AlgoDGB is the strong basis with d-reduction over a Euclidean domain.
	AlgoDGB

	// AlgoQGB is the reduced basis over a field.
	AlgoQGB

	// AlgoFFGB is the fraction-free basis over a quotient field.
	AlgoFFGB
)

var algorithmNames = map[Algorithm]string{
	AlgoDefault: "default",
	AlgoIGB:     "igb",
	AlgoEGB:     "egb",
	AlgoDGB:     "dgb",
	AlgoQGB:     "qgb",
	AlgoFFGB:    "ffgb",
}

func (a Algorithm) String() string {
	if s, ok := algorithmNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// ParseAlgorithm maps a name such as "dgb" to its Algorithm. The empty
// string is AlgoDefault.
func ParseAlgorithm(s string) (Algorithm, error) {
	if s == "" {
		return AlgoDefault, nil
	}
	for a, name := range algorithmNames {
		if name == s {
			return a, nil
		}
	}
	return AlgoDefault, fmt.Errorf("unknown algorithm %q", s)
}

// PairStrategy orders critical pairs.
type PairStrategy = pairs.StrategyType

const (
	PairNormal = pairs.Normal
	PairSugar  = pairs.Sugar
	PairFIFO   = pairs.FIFO
)

// ParsePairStrategy maps "normal", "sugar" or "fifo" to a PairStrategy.
func ParsePairStrategy(s string) (PairStrategy, error) {
	return pairs.ParseStrategy(s)
}

type config struct {
	algorithm Algorithm
	strategy  PairStrategy
	exec      ExecutionConfig
	logger    *zap.Logger
}

// WithAlgorithm requests a specific algorithm. Combinations the ring
// cannot support fail with ErrUnsupportedAlgorithm.
func WithAlgorithm(a Algorithm) Option {
	return func(cfg *config) {
		cfg.algorithm = a
	}
}

// WithPairStrategy sets the critical-pair selection order.
func WithPairStrategy(s PairStrategy) Option {
	return func(cfg *config) {
		cfg.strategy = s
	}
}

// WithWorkerCount sets the number of parallel workers.
// If not specified, defaults to max(available CPUs - 1, 2).
func WithWorkerCount(count int) Option {
	return func(cfg *config) {
		if count > 0 {
			cfg.exec.Workers = count
		}
	}
}

// WithoutConcurrency disables parallel engines and proxies.
func WithoutConcurrency() Option {
	return func(cfg *config) {
		cfg.exec.DisableConcurrency = true
	}
}

// WithCPUPinning pins each parallel worker to one CPU. It only has an
// effect on Linux and Windows.
func WithCPUPinning() Option {
	return func(cfg *config) {
		cfg.exec.PinWorkers = true
	}
}

// WithLogger sets the logger engines write debug and progress output to.
func WithLogger(log *zap.Logger) Option {
	return func(cfg *config) {
		if log != nil {
			cfg.logger = log
		}
	}
}

// WithProgressInterval sets how often long computations log progress.
func WithProgressInterval(d time.Duration) Option {
	return func(cfg *config) {
		if d > 0 {
			cfg.exec.ProgressInterval = d
		}
	}
}

// WithExecutionConfig replaces the whole execution configuration.
func WithExecutionConfig(ec ExecutionConfig) Option {
	return func(cfg *config) {
		cfg.exec = ec
	}
}

// DefaultWorkers is the worker count used when none is configured.
func DefaultWorkers() int {
	return max(cpu.Available()-1, 2)
}

func createConfig(opts ...Option) *config {
	cfg := &config{
		algorithm: AlgoDefault,
		strategy:  PairNormal,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.exec.Workers <= 0 {
		cfg.exec.Workers = DefaultWorkers()
	}
	return cfg
}

func (cfg *config) engineOptions() engine.Options {
	return engine.Options{
		Strategy:         cfg.strategy,
		Workers:          cfg.exec.Workers,
		PinWorkers:       cfg.exec.PinWorkers,
		Logger:           cfg.logger,
		ProgressInterval: cfg.exec.ProgressInterval,
	}
}
