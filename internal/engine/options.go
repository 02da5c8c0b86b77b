package engine

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/utkarsh5026/groebner/internal/pairs"
)

const defaultProgressInterval = 2 * time.Second

// Options configures an engine.
type Options struct {
	// Strategy orders the critical pairs.
	Strategy pairs.StrategyType

	// Workers is the number of parallel workers. Sequential engines ignore it.
	Workers int

	// PinWorkers locks every parallel worker to its own CPU.
	PinWorkers bool

	// Logger receives debug and progress output. Nil disables logging.
	Logger *zap.Logger

	// ProgressInterval throttles progress logs; zero means two seconds.
	ProgressInterval time.Duration
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) workers() int {
	return max(o.Workers, 1)
}

// progress emits throttled info logs while a computation runs.
type progress struct {
	every rate.Sometimes
	log   *zap.Logger
}

func newProgress(o Options, log *zap.Logger) *progress {
	interval := o.ProgressInterval
	if interval <= 0 {
		interval = defaultProgressInterval
	}
	return &progress{every: rate.Sometimes{Interval: interval}, log: log}
}

// report logs the current basis and pair counts at most once per interval.
func (p *progress) report(basis, pending int) {
	p.every.Do(func() {
		p.log.Info("Basis progress", zap.Int("basis", basis), zap.Int("pairs", pending))
	})
}
