package engine

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/utkarsh5026/groebner/internal/pairs"
	"github.com/utkarsh5026/groebner/poly"
	"github.com/utkarsh5026/groebner/ring"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// Test helpers

func ratRing(order poly.Order, vars ...string) *poly.Ring[*big.Rat] {
	return poly.NewRing[*big.Rat](ring.Rationals{}, vars, order)
}

func intRing(order poly.Order, vars ...string) *poly.Ring[*big.Int] {
	return poly.NewRing[*big.Int](ring.Integers{}, vars, order)
}

func strs[C any](ps []*poly.Polynomial[C]) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}

func mustCompute[C any](t *testing.T, e Engine[C], gens []*poly.Polynomial[C]) []*poly.Polynomial[C] {
	t.Helper()
	basis, err := e.ComputeBasis(context.Background(), gens)
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", e, err)
	}
	return basis
}

// toRational moves integer polynomials to Q so that pseudo bases can be
// compared through their reduced field basis.
func toRational(ps []*poly.Polynomial[*big.Int]) []*poly.Polynomial[*big.Rat] {
	if len(ps) == 0 {
		return nil
	}
	src := ps[0].Ring()
	q := ratRing(src.Order(), src.Vars()...)
	out := make([]*poly.Polynomial[*big.Rat], len(ps))
	for i, p := range ps {
		out[i] = poly.Convert(p, q, func(c *big.Int) *big.Rat { return new(big.Rat).SetInt(c) })
	}
	return out
}

// runStrategyTest runs fn once per pair strategy.
func runStrategyTest(t *testing.T, fn func(t *testing.T, s pairs.StrategyType)) {
	t.Helper()
	for _, s := range []pairs.StrategyType{pairs.Normal, pairs.Sugar, pairs.FIFO} {
		t.Run(s.String(), func(t *testing.T) { fn(t, s) })
	}
}

// idealCases are small ideals whose reduced bases are compared across engines.
var idealCases = []struct {
	name  string
	order poly.Order
	vars  []string
	gens  []string
}{
	{"circle and line", poly.Lex, []string{"x", "y"}, []string{"x^2 + y^2 - 1", "x - y"}},
	{"cyclic 3", poly.GRevLex, []string{"x", "y", "z"}, []string{"x + y + z", "x*y + y*z + z*x", "x*y*z - 1"}},
	{"twisted cubic", poly.GrLex, []string{"x", "y", "z"}, []string{"y - x^2", "z - x^3"}},
	{"katsura 2", poly.Lex, []string{"x", "y", "z"}, []string{"x + 2*y + 2*z - 1", "x^2 + 2*y^2 + 2*z^2 - x", "2*x*y + 2*y*z - y"}},
}

func TestFieldSeq_CircleAndLine(t *testing.T) {
	r := ratRing(poly.Lex, "x", "y")
	gens := []*poly.Polynomial[*big.Rat]{r.MustParse("x^2 + y^2 - 1"), r.MustParse("x - y")}
	e := NewFieldSeq[*big.Rat](ring.Rationals{}, Options{})

	basis := mustCompute[*big.Rat](t, e, gens)
	want := []string{"x - y", "y^2 - 1/2"}
	if diff := cmp.Diff(want, strs(basis)); diff != "" {
		t.Errorf("basis mismatch (-want +got):\n%s", diff)
	}

	t.Run("result is a groebner basis", func(t *testing.T) {
		ok, err := e.IsGroebnerBasis(context.Background(), basis)
		if err != nil || !ok {
			t.Errorf("expected true, got %v (%v)", ok, err)
		}
	})

	t.Run("generators are not", func(t *testing.T) {
		ok, err := e.IsGroebnerBasis(context.Background(), gens)
		if err != nil || ok {
			t.Errorf("expected false, got %v (%v)", ok, err)
		}
	})

	t.Run("generators reduce to zero", func(t *testing.T) {
		for _, g := range gens {
			nf, err := e.NormalForm(basis, g)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !nf.IsZero() {
				t.Errorf("expected %s to reduce to zero, got %s", g, nf)
			}
		}
	})
}

func TestFieldSeq_Properties(t *testing.T) {
	for _, tc := range idealCases {
		t.Run(tc.name, func(t *testing.T) {
			r := ratRing(tc.order, tc.vars...)
			gens, err := r.ParseAll(tc.gens...)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			e := NewFieldSeq[*big.Rat](ring.Rationals{}, Options{})
			basis := mustCompute[*big.Rat](t, e, gens)

			if ok, err := e.IsGroebnerBasis(context.Background(), basis); err != nil || !ok {
				t.Errorf("expected a groebner basis, got %v (%v)", ok, err)
			}
			again := mustCompute[*big.Rat](t, e, gens)
			if diff := cmp.Diff(strs(basis), strs(again)); diff != "" {
				t.Errorf("non-deterministic output (-first +second):\n%s", diff)
			}
			twice := mustCompute[*big.Rat](t, e, basis)
			if diff := cmp.Diff(strs(basis), strs(twice)); diff != "" {
				t.Errorf("not idempotent (-once +twice):\n%s", diff)
			}
		})
	}
}

func TestFieldSeq_Strategies(t *testing.T) {
	r := ratRing(poly.GRevLex, "x", "y", "z")
	gens, _ := r.ParseAll("x + y + z", "x*y + y*z + z*x", "x*y*z - 1")
	want := strs(mustCompute[*big.Rat](t, NewFieldSeq[*big.Rat](ring.Rationals{}, Options{}), gens))

	runStrategyTest(t, func(t *testing.T, s pairs.StrategyType) {
		for _, criteria := range []bool{true, false} {
			e := NewFieldSeq[*big.Rat](ring.Rationals{}, Options{Strategy: s})
			if !criteria {
				e = e.withoutCriteria()
			}
			got := strs(mustCompute[*big.Rat](t, e, gens))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("criteria=%v: basis mismatch (-want +got):\n%s", criteria, diff)
			}
		}
	})
}

func TestFieldSeq_Edges(t *testing.T) {
	r := ratRing(poly.Lex, "x", "y")
	e := NewFieldSeq[*big.Rat](ring.Rationals{}, Options{})

	t.Run("unit ideal", func(t *testing.T) {
		got := mustCompute[*big.Rat](t, e, []*poly.Polynomial[*big.Rat]{r.MustParse("x"), r.MustParse("x + 1")})
		if diff := cmp.Diff([]string{"1"}, strs(got)); diff != "" {
			t.Errorf("basis mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("zero generators are ignored", func(t *testing.T) {
		got := mustCompute[*big.Rat](t, e, []*poly.Polynomial[*big.Rat]{r.Zero(), r.MustParse("2*x")})
		if diff := cmp.Diff([]string{"x"}, strs(got)); diff != "" {
			t.Errorf("basis mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		got := mustCompute[*big.Rat](t, e, nil)
		if len(got) != 0 {
			t.Errorf("expected empty basis, got %v", strs(got))
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := e.ComputeBasis(ctx, []*poly.Polynomial[*big.Rat]{r.MustParse("x")})
		if !errors.Is(err, ErrCancelled) || !errors.Is(err, context.Canceled) {
			t.Errorf("expected cancellation, got %v", err)
		}
		var ce *CancelledError
		if !errors.As(err, &ce) || ce.Engine != "field-seq" {
			t.Errorf("expected CancelledError from field-seq, got %v", err)
		}
	})

	t.Run("non-field coefficients fail", func(t *testing.T) {
		z := intRing(poly.Lex, "x")
		bad := NewFieldSeq[*big.Int](ring.Integers{}, Options{})
		_, err := bad.ComputeBasis(context.Background(), []*poly.Polynomial[*big.Int]{z.MustParse("2*x")})
		if !errors.Is(err, ErrRingOperation) || !errors.Is(err, ring.ErrNotDivisible) {
			t.Errorf("expected ring operation error, got %v", err)
		}
	})
}

func TestPseudoSeq_Integers(t *testing.T) {
	r := intRing(poly.Lex, "x", "y")
	e := NewPseudoSeq[*big.Int](ring.Integers{}, Options{})

	t.Run("does not divide coefficients", func(t *testing.T) {
		gens := []*poly.Polynomial[*big.Int]{r.MustParse("2*x"), r.MustParse("3*y")}
		basis := mustCompute[*big.Int](t, e, gens)
		if diff := cmp.Diff([]string{"2*x", "3*y"}, strs(basis)); diff != "" {
			t.Errorf("basis mismatch (-want +got):\n%s", diff)
		}
		if ok, err := e.IsGroebnerBasis(context.Background(), basis); err != nil || !ok {
			t.Errorf("expected a groebner basis, got %v (%v)", ok, err)
		}
	})

	t.Run("drops only combinations with unit multiplier", func(t *testing.T) {
		gens := []*poly.Polynomial[*big.Int]{r.MustParse("x^2 + y^2 - 1"), r.MustParse("x - y")}
		basis := mustCompute[*big.Int](t, e, gens)
		if diff := cmp.Diff([]string{"x - y", "2*y^2 - 1"}, strs(basis)); diff != "" {
			t.Errorf("basis mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("leading coefficients are positive", func(t *testing.T) {
		basis := mustCompute[*big.Int](t, e, []*poly.Polynomial[*big.Int]{r.MustParse("-3*x + 1")})
		if diff := cmp.Diff([]string{"3*x - 1"}, strs(basis)); diff != "" {
			t.Errorf("basis mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("generates the same rational ideal", func(t *testing.T) {
		field := NewFieldSeq[*big.Rat](ring.Rationals{}, Options{})
		for _, tc := range idealCases {
			zr := intRing(tc.order, tc.vars...)
			gens, err := zr.ParseAll(tc.gens...)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			basis := mustCompute[*big.Int](t, e, gens)
			want := strs(mustCompute[*big.Rat](t, field, toRational(gens)))
			got := strs(mustCompute[*big.Rat](t, field, toRational(basis)))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("%s: ideal mismatch (-want +got):\n%s", tc.name, diff)
			}
		}
	})
}

func TestPseudoRecSeq(t *testing.T) {
	inner := intRing(poly.Lex, "a")
	outer := poly.NewRing[*poly.Polynomial[*big.Int]](inner, []string{"x"}, poly.Lex)
	e := NewPseudoRecSeq[*poly.Polynomial[*big.Int]](inner, Options{})

	gens, err := outer.ParseAll("a*x - 1", "x - a")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	basis := mustCompute[*poly.Polynomial[*big.Int]](t, e, gens)
	if diff := cmp.Diff([]string{"x - a", "(a^2 - 1)"}, strs(basis)); diff != "" {
		t.Errorf("basis mismatch (-want +got):\n%s", diff)
	}
	if e.String() != "pseudo-rec-seq" {
		t.Errorf("unexpected name %s", e)
	}
}

func TestStrongBases(t *testing.T) {
	r := intRing(poly.Lex, "x", "y")
	engines := []*Sequential[*big.Int]{
		NewDSeq[*big.Int](ring.Integers{}, Options{}),
		NewESeq[*big.Int](ring.Integers{}, Options{}),
	}

	for _, e := range engines {
		t.Run(e.String(), func(t *testing.T) {
			t.Run("gcd of leading coefficients", func(t *testing.T) {
				basis := mustCompute[*big.Int](t, e, []*poly.Polynomial[*big.Int]{r.MustParse("2*x"), r.MustParse("3*x")})
				if diff := cmp.Diff([]string{"x"}, strs(basis)); diff != "" {
					t.Errorf("basis mismatch (-want +got):\n%s", diff)
				}
			})

			t.Run("result is a strong basis", func(t *testing.T) {
				gens := []*poly.Polynomial[*big.Int]{r.MustParse("4*x*y + 1"), r.MustParse("6*y^2 - x")}
				basis := mustCompute[*big.Int](t, e, gens)
				ok, err := e.IsGroebnerBasis(context.Background(), basis)
				if err != nil || !ok {
					t.Errorf("expected a groebner basis, got %v (%v)", ok, err)
				}
				for _, g := range gens {
					nf, err := e.NormalForm(basis, g)
					if err != nil {
						t.Fatalf("unexpected error: %v", err)
					}
					if !nf.IsZero() {
						t.Errorf("expected %s to reduce to zero, got %s", g, nf)
					}
				}
			})
		})
	}
}

func TestFractionFree(t *testing.T) {
	field := NewFieldSeq[*big.Rat](ring.Rationals{}, Options{})
	ff := NewFractionFree[*big.Rat](ring.Rationals{}, Options{})

	for _, tc := range idealCases {
		t.Run(tc.name, func(t *testing.T) {
			r := ratRing(tc.order, tc.vars...)
			gens, err := r.ParseAll(tc.gens...)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			want := strs(mustCompute[*big.Rat](t, field, gens))
			got := strs(mustCompute[*big.Rat](t, ff, gens))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("basis mismatch (-field +fraction-free):\n%s", diff)
			}
		})
	}

	t.Run("fractions in generators", func(t *testing.T) {
		r := ratRing(poly.Lex, "x")
		got := mustCompute[*big.Rat](t, ff, []*poly.Polynomial[*big.Rat]{r.MustParse("1/2*x^2 - 1/3"), r.MustParse("3/4*x^3 - 1/2*x")})
		if diff := cmp.Diff([]string{"x^2 - 2/3"}, strs(got)); diff != "" {
			t.Errorf("basis mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestRegularSeq(t *testing.T) {
	t.Run("product of fields", func(t *testing.T) {
		prod := ring.NewProduct[*big.Int](ring.NewModular(5), ring.NewModular(7))
		r := poly.NewRing[ring.Tuple[*big.Int]](prod, []string{"x", "y"}, poly.Lex)
		gens, err := r.ParseAll("x^2 + y^2 - 1", "x - y")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		e := NewRegularSeq[ring.Tuple[*big.Int]](prod, Options{})
		if e.String() != "regular-field-seq" {
			t.Errorf("unexpected name %s", e)
		}
		basis := mustCompute[ring.Tuple[*big.Int]](t, e, gens)
		if len(basis) != 4 {
			t.Errorf("expected two elements per factor, got %v", strs(basis))
		}
		ok, err := e.IsGroebnerBasis(context.Background(), basis)
		if err != nil || !ok {
			t.Errorf("expected a groebner basis, got %v (%v)", ok, err)
		}
		for _, g := range gens {
			nf, err := e.NormalForm(basis, g)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !nf.IsZero() {
				t.Errorf("expected %s to reduce to zero, got %s", g, nf)
			}
		}
	})

	t.Run("factor with a unit ideal", func(t *testing.T) {
		prod := ring.NewProduct[*big.Int](ring.Integers{}, ring.NewModular(3))
		r := poly.NewRing[ring.Tuple[*big.Int]](prod, []string{"x"}, poly.Lex)
		e := NewRegularSeq[ring.Tuple[*big.Int]](prod, Options{})
		if e.String() != "regular-seq" {
			t.Errorf("unexpected name %s", e)
		}
		// 3x + 1 is 1 over Z/3.
		basis := mustCompute[ring.Tuple[*big.Int]](t, e, []*poly.Polynomial[ring.Tuple[*big.Int]]{r.MustParse("3*x + 1")})
		want := []string{"(3, 0)*x + (1, 0)", "(0, 1)"}
		if diff := cmp.Diff(want, strs(basis)); diff != "" {
			t.Errorf("basis mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSequential_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := ratRing(poly.Lex, "x", "y")
	e := NewFieldSeq[*big.Rat](ring.Rationals{}, Options{Logger: zap.New(core)})
	mustCompute[*big.Rat](t, e, []*poly.Polynomial[*big.Rat]{r.MustParse("x^2 + y^2 - 1"), r.MustParse("x - y")})

	accepted := logs.FilterMessage("Accepted polynomial").All()
	if len(accepted) != 1 {
		t.Fatalf("expected 1 accepted polynomial, got %d", len(accepted))
	}
	if got := accepted[0].ContextMap()["engine"]; got != "field-seq" {
		t.Errorf("expected engine field, got %v", got)
	}
	if !strings.Contains(accepted[0].ContextMap()["poly"].(string), "y^2") {
		t.Errorf("unexpected polynomial %v", accepted[0].ContextMap()["poly"])
	}
}
