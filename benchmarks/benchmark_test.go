package benchmarks

import (
	"context"
	"fmt"
	"math/big"
	"runtime"
	"testing"

	"github.com/utkarsh5026/groebner/gb"
	"github.com/utkarsh5026/groebner/poly"
	"github.com/utkarsh5026/groebner/ring"
)

// =============================================================================
// Engine Benchmarks
// =============================================================================

// BenchmarkEngines_Rational compares the sequential, parallel and proxy
// engines over Q.
func BenchmarkEngines_Rational(b *testing.B) {
	q := ring.Ring[*big.Rat](ring.Rationals{})
	workers := max(runtime.NumCPU()-1, 2)

	for _, f := range getFixtures() {
		gens := rationalIdeal(b, f)
		for _, cfg := range getAllEngines(workers, gb.PairNormal) {
			e := engineFor(b, q, cfg)
			b.Run(fmt.Sprintf("%s/%s", f.name, cfg.name), func(b *testing.B) {
				runBasisBenchmark(b, e, gens)
			})
		}
	}
}

// BenchmarkEngines_Integer runs the pseudo-reduction engines over Z.
func BenchmarkEngines_Integer(b *testing.B) {
	z := ring.Ring[*big.Int](ring.Integers{})
	workers := max(runtime.NumCPU()-1, 2)

	for _, f := range getFixtures() {
		gens := integerIdeal(b, f)
		for _, cfg := range getAllEngines(workers, gb.PairNormal) {
			e := engineFor(b, z, cfg)
			b.Run(fmt.Sprintf("%s/%s", f.name, cfg.name), func(b *testing.B) {
				runBasisBenchmark(b, e, gens)
			})
		}
	}
}

// BenchmarkPairStrategies compares pair selection orders on one engine.
func BenchmarkPairStrategies(b *testing.B) {
	q := ring.Ring[*big.Rat](ring.Rationals{})
	strategies := []gb.PairStrategy{gb.PairNormal, gb.PairSugar, gb.PairFIFO}

	for _, f := range getFixtures() {
		gens := rationalIdeal(b, f)
		for _, s := range strategies {
			e := engineFor(b, q, engineConfig{name: s.String(), opts: []gb.Option{gb.WithPairStrategy(s)}})
			b.Run(fmt.Sprintf("%s/%s", f.name, s), func(b *testing.B) {
				runBasisBenchmark(b, e, gens)
			})
		}
	}
}

// BenchmarkWorkerScaling measures the parallel engine across worker counts.
func BenchmarkWorkerScaling(b *testing.B) {
	q := ring.Ring[*big.Rat](ring.Rationals{})
	gens := rationalIdeal(b, getFixtures()[0])

	for _, workers := range []int{1, 2, 4, 8} {
		e := engineFor(b, q, engineConfig{
			name:     "Parallel",
			parallel: true,
			opts:     []gb.Option{gb.WithWorkerCount(workers)},
		})
		b.Run(fmt.Sprintf("Workers_%d", workers), func(b *testing.B) {
			runBasisBenchmark(b, e, gens)
		})
	}
}

// BenchmarkAlgorithms compares the algorithm tags over their rings.
func BenchmarkAlgorithms(b *testing.B) {
	f := getFixtures()[1]

	b.Run("Rational", func(b *testing.B) {
		q := ring.Ring[*big.Rat](ring.Rationals{})
		gens := rationalIdeal(b, f)
		for _, algo := range []gb.Algorithm{gb.AlgoQGB, gb.AlgoFFGB} {
			e := engineFor(b, q, engineConfig{name: algo.String(), opts: []gb.Option{gb.WithAlgorithm(algo)}})
			b.Run(algo.String(), func(b *testing.B) {
				runBasisBenchmark(b, e, gens)
			})
		}
	})

	b.Run("Integer", func(b *testing.B) {
		z := ring.Ring[*big.Int](ring.Integers{})
		gens := integerIdeal(b, f)
		for _, algo := range []gb.Algorithm{gb.AlgoIGB, gb.AlgoDGB, gb.AlgoEGB} {
			e := engineFor(b, z, engineConfig{name: algo.String(), opts: []gb.Option{gb.WithAlgorithm(algo)}})
			b.Run(algo.String(), func(b *testing.B) {
				runBasisBenchmark(b, e, gens)
			})
		}
	})
}

func runBasisBenchmark[C any](b *testing.B, e gb.Engine[C], gens []*poly.Polynomial[C]) {
	b.Helper()
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		if _, err := e.ComputeBasis(ctx, gens); err != nil {
			b.Fatalf("%s: %v", e, err)
		}
	}
}
