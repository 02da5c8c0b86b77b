package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/utkarsh5026/groebner/internal/reduction"
	"github.com/utkarsh5026/groebner/poly"
	"github.com/utkarsh5026/groebner/ring"
)

// FractionFree computes bases over a quotient field without fractions in
// intermediate results: generators are cleared of denominators, a pseudo
// basis is computed over the integral subring and the result is made monic
// and reduced over the field.
type FractionFree[C any] struct {
	*core[C]
	field    ring.FractionField[C]
	integral *Sequential[C]
}

var _ Engine[int] = (*FractionFree[int])(nil)

func NewFractionFree[C any](field ring.FractionField[C], opts Options) *FractionFree[C] {
	integral := NewPseudoSeq(ring.Ring[C](field.IntegralView()), opts).withoutCriteria()
	integral.name = "fraction-free-integral"
	return &FractionFree[C]{
		core:     newCore("fraction-free", ring.Ring[C](field), fieldKind, reduction.Field[C]{}, true, opts),
		field:    field,
		integral: integral,
	}
}

// clear multiplies p by the lcm of its coefficient denominators and moves
// it to the integral ring.
func (e *FractionFree[C]) clear(p *poly.Polynomial[C], integral *poly.Ring[C]) (*poly.Polynomial[C], error) {
	zr := e.field.IntegralView()
	l := zr.One()
	for _, t := range p.Terms() {
		var err error
		if l, err = ring.Lcm[C](zr, l, e.field.Denominator(t.Coeff)); err != nil {
			return nil, newRingOperationError(zr, "lcm", err)
		}
	}
	return p.Scale(l).In(integral), nil
}

func (e *FractionFree[C]) ComputeBasis(ctx context.Context, gens []*poly.Polynomial[C]) ([]*poly.Polynomial[C], error) {
	if err := checkCancelled(ctx, e.name); err != nil {
		return nil, err
	}
	if len(gens) == 0 {
		return []*poly.Polynomial[C]{}, nil
	}
	fr := gens[0].Ring()
	ir := fr.WithCoefficients(e.field.IntegralView())

	cleared := make([]*poly.Polynomial[C], 0, len(gens))
	for _, g := range gens {
		if g.IsZero() {
			continue
		}
		c, err := e.clear(g, ir)
		if err != nil {
			return nil, err
		}
		cleared = append(cleared, c)
	}

	basis, err := e.integral.ComputeBasis(ctx, cleared)
	if err != nil {
		return nil, err
	}
	e.log.Debug("Integral basis computed", zap.Int("size", len(basis)))

	monic := make([]*poly.Polynomial[C], 0, len(basis))
	for _, b := range basis {
		m, err := b.In(fr).Monic()
		if err != nil {
			return nil, newRingOperationError(e.field, "monic", err)
		}
		monic = append(monic, m)
	}
	return e.minimize(ctx, monic, 1)
}
