package benchmarks

import (
	"math/big"
	"testing"

	"github.com/utkarsh5026/groebner/gb"
	"github.com/utkarsh5026/groebner/poly"
	"github.com/utkarsh5026/groebner/ring"
)

// idealFixture is a named ideal used by the benchmarks.
type idealFixture struct {
	name  string
	order poly.Order
	vars  []string
	gens  []string
}

// engineConfig defines a benchmark configuration for an engine.
type engineConfig struct {
	name     string
	proxy    bool
	parallel bool
	opts     []gb.Option
}

func getFixtures() []idealFixture {
	return []idealFixture{
		{
			name:  "Cyclic4",
			order: poly.GRevLex,
			vars:  []string{"a", "b", "c", "d"},
			gens: []string{
				"a + b + c + d",
				"a*b + b*c + c*d + d*a",
				"a*b*c + b*c*d + c*d*a + d*a*b",
				"a*b*c*d - 1",
			},
		},
		{
			name:  "Katsura3",
			order: poly.GRevLex,
			vars:  []string{"x", "y", "z", "t"},
			gens: []string{
				"x + 2*y + 2*z + 2*t - 1",
				"x^2 + 2*y^2 + 2*z^2 + 2*t^2 - x",
				"2*x*y + 2*y*z + 2*z*t - y",
				"y^2 + 2*x*z + 2*y*t - z",
			},
		},
		{
			name:  "TwistedCubicLex",
			order: poly.Lex,
			vars:  []string{"t", "x", "y", "z"},
			gens:  []string{"x - t", "y - t^2", "z - t^3"},
		},
	}
}

// getAllEngines returns the engine configurations compared for one worker
// count and pair strategy.
func getAllEngines(workers int, strategy gb.PairStrategy) []engineConfig {
	return []engineConfig{
		{
			name: "Sequential",
			opts: []gb.Option{gb.WithPairStrategy(strategy)},
		},
		{
			name:     "Parallel",
			parallel: true,
			opts:     []gb.Option{gb.WithPairStrategy(strategy), gb.WithWorkerCount(workers)},
		},
		{
			name:     "ParallelPinned",
			parallel: true,
			opts:     []gb.Option{gb.WithPairStrategy(strategy), gb.WithWorkerCount(workers), gb.WithCPUPinning()},
		},
		{
			name:  "Proxy",
			proxy: true,
			opts:  []gb.Option{gb.WithPairStrategy(strategy), gb.WithWorkerCount(workers)},
		},
	}
}

func rationalIdeal(tb testing.TB, f idealFixture) []*poly.Polynomial[*big.Rat] {
	tb.Helper()
	r := poly.NewRing[*big.Rat](ring.Rationals{}, f.vars, f.order)
	gens, err := r.ParseAll(f.gens...)
	if err != nil {
		tb.Fatalf("parse %s: %v", f.name, err)
	}
	return gens
}

func integerIdeal(tb testing.TB, f idealFixture) []*poly.Polynomial[*big.Int] {
	tb.Helper()
	r := poly.NewRing[*big.Int](ring.Integers{}, f.vars, f.order)
	gens, err := r.ParseAll(f.gens...)
	if err != nil {
		tb.Fatalf("parse %s: %v", f.name, err)
	}
	return gens
}

func engineFor[C any](tb testing.TB, r ring.Ring[C], cfg engineConfig) gb.Engine[C] {
	tb.Helper()
	var (
		e   gb.Engine[C]
		err error
	)
	switch {
	case cfg.proxy:
		e, err = gb.GetProxy(r, cfg.opts...)
	case cfg.parallel:
		e, err = gb.GetParallel(r, cfg.opts...)
	default:
		e, err = gb.GetImplementation(r, cfg.opts...)
	}
	if err != nil {
		tb.Fatalf("%s: %v", cfg.name, err)
	}
	return e
}
