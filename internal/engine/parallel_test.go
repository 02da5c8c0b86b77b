package engine

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/utkarsh5026/groebner/internal/pairs"
	"github.com/utkarsh5026/groebner/internal/reduction"
	"github.com/utkarsh5026/groebner/poly"
	"github.com/utkarsh5026/groebner/ring"
)

// panicReducer blows up on the first S-polynomial.
type panicReducer struct {
	reduction.Field[*big.Rat]
}

func (panicReducer) SPolynomial(a, b *poly.Polynomial[*big.Rat]) (*poly.Polynomial[*big.Rat], error) {
	panic("boom")
}

func TestFieldParallel_AgreesWithSequential(t *testing.T) {
	seq := NewFieldSeq[*big.Rat](ring.Rationals{}, Options{})

	for _, tc := range idealCases {
		t.Run(tc.name, func(t *testing.T) {
			r := ratRing(tc.order, tc.vars...)
			gens, err := r.ParseAll(tc.gens...)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			want := strs(mustCompute[*big.Rat](t, seq, gens))

			runStrategyTest(t, func(t *testing.T, s pairs.StrategyType) {
				for _, workers := range []int{1, 2, 4, 8} {
					e := NewFieldParallel[*big.Rat](ring.Rationals{}, Options{Strategy: s, Workers: workers})
					for range 3 {
						got := strs(mustCompute[*big.Rat](t, e, gens))
						if diff := cmp.Diff(want, got); diff != "" {
							t.Fatalf("%s: basis mismatch (-seq +par):\n%s", e, diff)
						}
					}
				}
			})
		})
	}
}

func TestPseudoParallel_Integers(t *testing.T) {
	seq := NewPseudoSeq[*big.Int](ring.Integers{}, Options{})
	par := NewPseudoParallel[*big.Int](ring.Integers{}, Options{Workers: 4})
	if par.String() != "pseudo-parallel(4)" {
		t.Errorf("unexpected name %s", par)
	}
	if par.Workers() != 4 {
		t.Errorf("expected 4 workers, got %d", par.Workers())
	}

	field := NewFieldSeq[*big.Rat](ring.Rationals{}, Options{})
	for _, tc := range idealCases {
		t.Run(tc.name, func(t *testing.T) {
			r := intRing(tc.order, tc.vars...)
			gens, err := r.ParseAll(tc.gens...)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			basis := mustCompute[*big.Int](t, par, gens)
			if ok, err := seq.IsGroebnerBasis(context.Background(), basis); err != nil || !ok {
				t.Errorf("expected a groebner basis, got %v (%v)", ok, err)
			}
			want := strs(mustCompute[*big.Rat](t, field, toRational(gens)))
			got := strs(mustCompute[*big.Rat](t, field, toRational(basis)))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("ideal mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFieldParallel_Edges(t *testing.T) {
	r := ratRing(poly.Lex, "x", "y")
	e := NewFieldParallel[*big.Rat](ring.Rationals{}, Options{Workers: 3})

	t.Run("unit ideal", func(t *testing.T) {
		got := mustCompute[*big.Rat](t, e, []*poly.Polynomial[*big.Rat]{r.MustParse("x*y - 1"), r.MustParse("y")})
		if diff := cmp.Diff([]string{"1"}, strs(got)); diff != "" {
			t.Errorf("basis mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := mustCompute[*big.Rat](t, e, nil); len(got) != 0 {
			t.Errorf("expected empty basis, got %v", strs(got))
		}
	})

	t.Run("single generator", func(t *testing.T) {
		got := mustCompute[*big.Rat](t, e, []*poly.Polynomial[*big.Rat]{r.MustParse("3*x^2 - 3")})
		if diff := cmp.Diff([]string{"x^2 - 1"}, strs(got)); diff != "" {
			t.Errorf("basis mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancelCause(context.Background())
		cause := errors.New("caller gave up")
		cancel(cause)
		_, err := e.ComputeBasis(ctx, []*poly.Polynomial[*big.Rat]{r.MustParse("x^2 + y^2 - 1"), r.MustParse("x - y")})
		if !errors.Is(err, ErrCancelled) || !errors.Is(err, cause) {
			t.Errorf("expected cancellation with cause, got %v", err)
		}
	})

	t.Run("deadline during run", func(t *testing.T) {
		r5 := ratRing(poly.Lex, "a", "b", "c", "d", "e")
		gens, err := r5.ParseAll(
			"a + b + c + d + e",
			"a*b + b*c + c*d + d*e + e*a",
			"a*b*c + b*c*d + c*d*e + d*e*a + e*a*b",
			"a*b*c*d + b*c*d*e + c*d*e*a + d*e*a*b + e*a*b*c",
			"a*b*c*d*e - 1",
		)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
		defer cancel()
		if _, err := e.ComputeBasis(ctx, gens); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected deadline error, got %v", err)
		}
	})

	t.Run("worker panic becomes an error", func(t *testing.T) {
		bad := &Parallel[*big.Rat]{
			core:    newCore("panicky", ring.Ring[*big.Rat](ring.Rationals{}), fieldKind, panicReducer{}, false, Options{}),
			workers: 2,
		}
		_, err := bad.ComputeBasis(context.Background(), []*poly.Polynomial[*big.Rat]{r.MustParse("x^2 - y"), r.MustParse("x*y - 1")})
		if err == nil || !strings.Contains(err.Error(), "panic: boom") {
			t.Errorf("expected recovered panic, got %v", err)
		}
	})
}

func TestRunState_Termination(t *testing.T) {
	t.Run("empty list with no active workers ends the run", func(t *testing.T) {
		s := newRunState()
		list := pairs.NewList[*big.Rat](pairs.Normal, true)
		if _, ok := next(context.Background(), s, list); ok {
			t.Fatal("expected no pair")
		}
		if !s.done {
			t.Error("expected run to be marked done")
		}
	})

	t.Run("idle worker waits for an active one", func(t *testing.T) {
		s := newRunState()
		list := pairs.NewList[*big.Rat](pairs.Normal, true)
		s.active = 1

		var wg sync.WaitGroup
		got := make(chan bool, 1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := next(context.Background(), s, list)
			got <- ok
		}()

		select {
		case <-got:
			t.Fatal("worker returned while another was active")
		case <-time.After(20 * time.Millisecond):
		}
		s.release()
		wg.Wait()
		if ok := <-got; ok {
			t.Error("expected termination after release")
		}
	})

	t.Run("cancellation wakes waiters", func(t *testing.T) {
		s := newRunState()
		list := pairs.NewList[*big.Rat](pairs.Normal, true)
		s.active = 1

		ctx, cancel := context.WithCancel(context.Background())
		stop := context.AfterFunc(ctx, s.wake)
		defer stop()

		got := make(chan bool, 1)
		go func() {
			_, ok := next(ctx, s, list)
			got <- ok
		}()
		cancel()
		select {
		case ok := <-got:
			if ok {
				t.Error("expected no pair after cancellation")
			}
		case <-time.After(time.Second):
			t.Fatal("waiter was not woken")
		}
	})
}

func TestFieldParallel_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := ratRing(poly.Lex, "x", "y")
	e := NewFieldParallel[*big.Rat](ring.Rationals{}, Options{Workers: 2, Logger: zap.New(core)})
	mustCompute[*big.Rat](t, e, []*poly.Polynomial[*big.Rat]{r.MustParse("x^2 + y^2 - 1"), r.MustParse("x - y")})

	if n := logs.FilterMessage("Starting parallel basis computation").Len(); n != 1 {
		t.Errorf("expected 1 start entry, got %d", n)
	}
	for _, entry := range logs.FilterMessage("Accepted polynomial").All() {
		if _, ok := entry.ContextMap()["worker"]; !ok {
			t.Errorf("accepted entry without worker field: %v", entry.ContextMap())
		}
	}
}
