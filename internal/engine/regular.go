package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/utkarsh5026/groebner/poly"
	"github.com/utkarsh5026/groebner/ring"
)

// Regular computes bases over a direct product of rings. An ideal of
// (R1 x ... x Rn)[X] is the product of its projections to Rk[X], so each
// factor gets its own engine and the lifted results are joined.
type Regular[C any] struct {
	name    string
	product ring.Factored[C]
	inner   []Engine[C]
	log     *zap.Logger
}

var _ Engine[int] = (*Regular[int])(nil)

// NewRegularSeq builds one sequential engine per factor: the field engine
// for field factors, pseudo-reduction otherwise.
func NewRegularSeq[C any](product ring.Factored[C], opts Options) *Regular[C] {
	name := "regular-seq"
	if product.OnlyFields() {
		name = "regular-field-seq"
	}
	inner := make([]Engine[C], product.NumFactors())
	for k := range inner {
		view := product.Factor(k)
		if view.Capabilities().IsField {
			inner[k] = NewFieldSeq(view, opts)
		} else {
			inner[k] = NewPseudoSeq(view, opts)
		}
	}
	return &Regular[C]{
		name:    name,
		product: product,
		inner:   inner,
		log:     opts.logger().With(zap.String("engine", name)),
	}
}

func (e *Regular[C]) String() string { return e.name }

// project maps polynomials to factor k, dropping those that vanish there.
func (e *Regular[C]) project(k int, ps []*poly.Polynomial[C]) []*poly.Polynomial[C] {
	if len(ps) == 0 {
		return nil
	}
	vr := ps[0].Ring().WithCoefficients(e.product.Factor(k))
	out := make([]*poly.Polynomial[C], 0, len(ps))
	for _, p := range ps {
		q := p.Map(vr, func(c C) C { return e.product.Project(k, c) })
		if !q.IsZero() {
			out = append(out, q)
		}
	}
	return out
}

func (e *Regular[C]) ComputeBasis(ctx context.Context, gens []*poly.Polynomial[C]) ([]*poly.Polynomial[C], error) {
	if err := checkCancelled(ctx, e.name); err != nil {
		return nil, err
	}
	out := []*poly.Polynomial[C]{}
	if len(gens) == 0 {
		return out, nil
	}
	pr := gens[0].Ring()
	for k, inner := range e.inner {
		basis, err := inner.ComputeBasis(ctx, e.project(k, gens))
		if err != nil {
			return nil, fmt.Errorf("factor %d: %w", k, err)
		}
		e.log.Debug("Factor basis computed", zap.Int("factor", k), zap.Int("size", len(basis)))
		for _, b := range basis {
			out = append(out, b.In(pr))
		}
	}
	return out, nil
}

// NormalForm reduces every component separately and adds the results.
func (e *Regular[C]) NormalForm(basis []*poly.Polynomial[C], p *poly.Polynomial[C]) (*poly.Polynomial[C], error) {
	out := p.Ring().Zero()
	for k, inner := range e.inner {
		proj := e.project(k, []*poly.Polynomial[C]{p})
		if len(proj) == 0 {
			continue
		}
		nf, err := inner.NormalForm(e.project(k, basis), proj[0])
		if err != nil {
			return nil, fmt.Errorf("factor %d: %w", k, err)
		}
		out = out.Add(nf.In(p.Ring()))
	}
	return out, nil
}

func (e *Regular[C]) IsGroebnerBasis(ctx context.Context, basis []*poly.Polynomial[C]) (bool, error) {
	for k, inner := range e.inner {
		ok, err := inner.IsGroebnerBasis(ctx, e.project(k, basis))
		if err != nil {
			return false, fmt.Errorf("factor %d: %w", k, err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
