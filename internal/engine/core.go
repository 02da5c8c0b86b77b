// Package engine implements the Gröbner basis algorithms: Buchberger's
// algorithm over fields and its pseudo-reduction, strong (d- and e-),
// regular ring and fraction-free variants, sequentially or with a pool of
// workers sharing one pair list.
package engine

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/utkarsh5026/groebner/internal/pairs"
	"github.com/utkarsh5026/groebner/internal/reduction"
	"github.com/utkarsh5026/groebner/poly"
	"github.com/utkarsh5026/groebner/ring"
)

// Engine computes Gröbner bases over one coefficient ring.
type Engine[C any] interface {
	ComputeBasis(ctx context.Context, gens []*poly.Polynomial[C]) ([]*poly.Polynomial[C], error)
	IsGroebnerBasis(ctx context.Context, basis []*poly.Polynomial[C]) (bool, error)
	NormalForm(basis []*poly.Polynomial[C], p *poly.Polynomial[C]) (*poly.Polynomial[C], error)
	String() string
}

// kind selects normalisation and minimisation rules.
type kind int

const (
	// fieldKind yields reduced monic bases.
	fieldKind kind = iota

	// pseudoKind keeps integral coefficients and the ideal over the ring.
	pseudoKind

	// strongKind yields minimal strong bases over Euclidean rings.
	strongKind
)

// core is the part of an engine that does not depend on scheduling.
type core[C any] struct {
	name     string
	coeff    ring.Ring[C]
	kind     kind
	reducer  reduction.Reducer[C]
	criteria bool
	opts     Options
	log      *zap.Logger
}

func newCore[C any](name string, coeff ring.Ring[C], k kind, red reduction.Reducer[C], criteria bool, opts Options) *core[C] {
	log := opts.logger().With(zap.String("engine", name))
	return &core[C]{
		name:     name,
		coeff:    coeff,
		kind:     k,
		reducer:  red,
		criteria: criteria,
		opts:     opts,
		log:      log,
	}
}

func (c *core[C]) String() string { return c.name }

// prepare drops zeros and normalises the generators. The boolean is true
// when a generator is a unit constant, making the ideal the whole ring.
func (c *core[C]) prepare(gens []*poly.Polynomial[C]) ([]*poly.Polynomial[C], bool, error) {
	out := make([]*poly.Polynomial[C], 0, len(gens))
	for _, g := range gens {
		if g.IsZero() {
			continue
		}
		n, err := c.normalize(g)
		if err != nil {
			return nil, false, asEngineError(c.coeff, "normalize", err)
		}
		if c.isUnit(n) {
			return nil, true, nil
		}
		out = append(out, n)
	}
	return out, false, nil
}

func (c *core[C]) isUnit(p *poly.Polynomial[C]) bool {
	return !p.IsZero() && p.IsConstant() && c.coeff.IsUnit(p.LeadingCoeff())
}

// unitBasis is the basis {1} of the whole ring.
func (c *core[C]) unitBasis(r *poly.Ring[C]) []*poly.Polynomial[C] {
	c.log.Debug("Ideal contains a unit")
	return []*poly.Polynomial[C]{r.One()}
}

// normalize makes field polynomials monic and gives other polynomials a
// positive leading coefficient when the ring is ordered.
func (c *core[C]) normalize(p *poly.Polynomial[C]) (*poly.Polynomial[C], error) {
	if p.IsZero() {
		return p, nil
	}
	if c.kind == fieldKind {
		return p.Monic()
	}
	if s, ok := c.coeff.(ring.Signed[C]); ok && s.Sign(p.LeadingCoeff()) < 0 {
		return p.Neg(), nil
	}
	return p, nil
}

// critical returns the polynomials a pair contributes: the S-polynomial,
// preceded by the G-polynomial for strong bases.
func (c *core[C]) critical(pair *pairs.Pair[C]) ([]*poly.Polynomial[C], error) {
	out := make([]*poly.Polynomial[C], 0, 2)
	if g, ok := c.reducer.(reduction.GReducer[C]); ok && c.kind == strongKind {
		gp, needed, err := g.GPolynomial(pair.Left, pair.Right)
		if err != nil {
			return nil, newRingOperationError(c.coeff, "g-polynomial", err)
		}
		if needed {
			out = append(out, gp)
		}
	}
	s, err := c.reducer.SPolynomial(pair.Left, pair.Right)
	if err != nil {
		return nil, newRingOperationError(c.coeff, "s-polynomial", err)
	}
	return append(out, s), nil
}

// NormalForm reduces p against basis with the engine's reducer.
func (c *core[C]) NormalForm(basis []*poly.Polynomial[C], p *poly.Polynomial[C]) (*poly.Polynomial[C], error) {
	nf, err := c.reducer.NormalForm(basis, p)
	if err != nil {
		return nil, newRingOperationError(c.coeff, "normal form", err)
	}
	return nf, nil
}

// IsGroebnerBasis checks that every critical polynomial of every pair
// reduces to zero.
func (c *core[C]) IsGroebnerBasis(ctx context.Context, basis []*poly.Polynomial[C]) (bool, error) {
	nonzero := slices.DeleteFunc(slices.Clone(basis), func(p *poly.Polynomial[C]) bool { return p.IsZero() })
	for j := range nonzero {
		for i := 0; i < j; i++ {
			if err := checkCancelled(ctx, c.name); err != nil {
				return false, err
			}
			crit, err := c.critical(&pairs.Pair[C]{I: i, J: j, Left: nonzero[i], Right: nonzero[j]})
			if err != nil {
				return false, err
			}
			for _, h := range crit {
				nf, err := c.NormalForm(nonzero, h)
				if err != nil {
					return false, err
				}
				if !nf.IsZero() {
					return false, nil
				}
			}
		}
	}
	return true, nil
}

// minimize turns a finished basis into the engine's canonical output.
// Field interreduction fans out over workers goroutines.
func (c *core[C]) minimize(ctx context.Context, basis []*poly.Polynomial[C], workers int) ([]*poly.Polynomial[C], error) {
	var (
		out []*poly.Polynomial[C]
		err error
	)
	switch c.kind {
	case fieldKind:
		out, err = c.minimizeField(ctx, basis, workers)
	case pseudoKind:
		out, err = c.minimizePseudo(ctx, basis)
	default:
		out = c.minimizeStrong(basis)
	}
	if err != nil {
		return nil, err
	}
	sortBasis(out)
	c.log.Debug("Minimized basis", zap.Int("before", len(basis)), zap.Int("after", len(out)))
	return out, nil
}

// dropDominated removes every element dominated by another one. Mutual
// domination is broken by index, so exactly one of a tied group survives.
func dropDominated[C any](basis []*poly.Polynomial[C], dominates func(h, g *poly.Polynomial[C]) bool) []*poly.Polynomial[C] {
	out := make([]*poly.Polynomial[C], 0, len(basis))
	for i, g := range basis {
		redundant := false
		for j, h := range basis {
			if i == j || !dominates(h, g) {
				continue
			}
			if !dominates(g, h) || j < i {
				redundant = true
				break
			}
		}
		if !redundant {
			out = append(out, g)
		}
	}
	return out
}

func (c *core[C]) minimizeField(ctx context.Context, basis []*poly.Polynomial[C], workers int) ([]*poly.Polynomial[C], error) {
	kept := dropDominated(basis, func(h, g *poly.Polynomial[C]) bool {
		return h.LeadingMonomial().Divides(g.LeadingMonomial())
	})

	reduced := make([]*poly.Polynomial[C], len(kept))
	reduceOne := func(i int) error {
		if err := checkCancelled(ctx, c.name); err != nil {
			return err
		}
		others := make([]*poly.Polynomial[C], 0, len(kept)-1)
		others = append(others, kept[:i]...)
		others = append(others, kept[i+1:]...)
		nf, err := c.NormalForm(others, kept[i])
		if err != nil {
			return err
		}
		if nf, err = nf.Monic(); err != nil {
			return newRingOperationError(c.coeff, "monic", err)
		}
		reduced[i] = nf
		return nil
	}

	if workers <= 1 {
		for i := range kept {
			if err := reduceOne(i); err != nil {
				return nil, err
			}
		}
		return reduced, nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range kept {
		g.Go(func() error { return reduceOne(i) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reduced, nil
}

// multiplierReducer is a reducer that reports its pseudo-division multiplier.
type multiplierReducer[C any] interface {
	NormalFormFactor(basis []*poly.Polynomial[C], p *poly.Polynomial[C]) (*poly.Polynomial[C], C, error)
}

// minimizePseudo drops, newest first, every element that reduces to zero
// modulo the others with a unit multiplier. Such an element is a
// combination of the others, so the ideal over the ring is unchanged.
func (c *core[C]) minimizePseudo(ctx context.Context, basis []*poly.Polynomial[C]) ([]*poly.Polynomial[C], error) {
	mr, ok := c.reducer.(multiplierReducer[C])
	kept := slices.Clone(basis)
	if !ok {
		return kept, nil
	}
	for i := len(kept) - 1; i >= 0; i-- {
		if err := checkCancelled(ctx, c.name); err != nil {
			return nil, err
		}
		others := make([]*poly.Polynomial[C], 0, len(kept)-1)
		others = append(others, kept[:i]...)
		others = append(others, kept[i+1:]...)
		if !reduction.IsTopReducible(others, kept[i]) {
			continue
		}
		nf, mult, err := mr.NormalFormFactor(others, kept[i])
		if err != nil {
			return nil, newRingOperationError(c.coeff, "pseudo normal form", err)
		}
		if nf.IsZero() && c.coeff.IsUnit(mult) {
			kept = others
		}
	}
	return kept, nil
}

// minimizeStrong keeps the elements whose leading term is not divisible,
// coefficient included, by another leading term.
func (c *core[C]) minimizeStrong(basis []*poly.Polynomial[C]) []*poly.Polynomial[C] {
	return dropDominated(basis, func(h, g *poly.Polynomial[C]) bool {
		if !h.LeadingMonomial().Divides(g.LeadingMonomial()) {
			return false
		}
		_, err := c.coeff.Divide(g.LeadingCoeff(), h.LeadingCoeff())
		return err == nil
	})
}

// sortBasis orders by descending leading monomial, then by rendering.
func sortBasis[C any](basis []*poly.Polynomial[C]) {
	slices.SortStableFunc(basis, func(a, b *poly.Polynomial[C]) int {
		if c := a.Ring().Order().Compare(b.LeadingMonomial(), a.LeadingMonomial()); c != 0 {
			return c
		}
		return strings.Compare(a.String(), b.String())
	})
}
