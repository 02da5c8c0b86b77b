package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/utkarsh5026/groebner/internal/pairs"
	"github.com/utkarsh5026/groebner/internal/reduction"
	"github.com/utkarsh5026/groebner/poly"
	"github.com/utkarsh5026/groebner/ring"
)

// Sequential runs Buchberger's algorithm on the calling goroutine.
type Sequential[C any] struct {
	*core[C]
}

var _ Engine[int] = (*Sequential[int])(nil)

// NewFieldSeq returns the engine for coefficient fields. Its output is the
// reduced Gröbner basis.
func NewFieldSeq[C any](coeff ring.Ring[C], opts Options) *Sequential[C] {
	return &Sequential[C]{newCore("field-seq", coeff, fieldKind, reduction.Field[C]{}, true, opts)}
}

// NewPseudoSeq returns the pseudo-reduction engine for integral domains and
// other rings without exact division.
func NewPseudoSeq[C any](coeff ring.Ring[C], opts Options) *Sequential[C] {
	return &Sequential[C]{newCore("pseudo-seq", coeff, pseudoKind, reduction.Pseudo[C]{}, true, opts)}
}

// NewPseudoRecSeq returns the pseudo-reduction engine for rings whose
// coefficients are themselves polynomials, such as a *poly.Ring.
func NewPseudoRecSeq[C any](coeff ring.Ring[C], opts Options) *Sequential[C] {
	return &Sequential[C]{newCore("pseudo-rec-seq", coeff, pseudoKind, reduction.Pseudo[C]{}, true, opts)}
}

// NewDSeq returns the d-GB engine over a Euclidean ring. It computes a
// minimal strong basis; the pair criteria do not hold for it.
func NewDSeq[C any](coeff ring.EuclideanRing[C], opts Options) *Sequential[C] {
	return &Sequential[C]{newCore("d-seq", ring.Ring[C](coeff), strongKind, reduction.NewD(coeff), false, opts)}
}

// NewESeq returns the e-GB engine over a Euclidean ring.
func NewESeq[C any](coeff ring.EuclideanRing[C], opts Options) *Sequential[C] {
	return &Sequential[C]{newCore("e-seq", ring.Ring[C](coeff), strongKind, reduction.NewE(coeff), false, opts)}
}

// withoutCriteria returns a copy of e with the pair criteria disabled.
func (e *Sequential[C]) withoutCriteria() *Sequential[C] {
	cp := *e.core
	cp.criteria = false
	return &Sequential[C]{&cp}
}

// ComputeBasis runs the pair loop until no pair is left and minimises the
// result. The context is checked before every pair.
func (e *Sequential[C]) ComputeBasis(ctx context.Context, gens []*poly.Polynomial[C]) ([]*poly.Polynomial[C], error) {
	if err := checkCancelled(ctx, e.name); err != nil {
		return nil, err
	}
	initial, unit, err := e.prepare(gens)
	if err != nil {
		return nil, err
	}
	if unit {
		return e.unitBasis(gens[0].Ring()), nil
	}
	if len(initial) == 0 {
		return []*poly.Polynomial[C]{}, nil
	}

	list := pairs.NewList[C](e.opts.Strategy, e.criteria)
	for _, g := range initial {
		list.Put(g)
	}
	e.log.Debug("Starting basis computation", zap.Int("generators", len(initial)), zap.Int("pairs", list.Size()))
	prog := newProgress(e.opts, e.log)

	for {
		if err := checkCancelled(ctx, e.name); err != nil {
			return nil, err
		}
		pair, ok := list.RemoveNext()
		if !ok {
			break
		}
		crit, err := e.critical(pair)
		if err != nil {
			return nil, err
		}
		for _, h := range crit {
			nf, err := e.NormalForm(list.Basis(), h)
			if err != nil {
				return nil, err
			}
			if nf.IsZero() {
				continue
			}
			if nf, err = e.normalize(nf); err != nil {
				return nil, asEngineError(e.coeff, "normalize", err)
			}
			if e.isUnit(nf) {
				return e.unitBasis(nf.Ring()), nil
			}
			idx := list.PutWithSugar(nf, max(pair.Sugar, nf.Degree()))
			e.log.Debug("Accepted polynomial", zap.Int("index", idx), zap.Stringer("poly", nf))
		}
		prog.report(list.Len(), list.Size())
	}

	stats := list.Stats()
	e.log.Debug("Pair loop finished",
		zap.Int("basis", list.Len()),
		zap.Int("pairs", stats.Generated),
		zap.Int("discarded", stats.Discarded))
	return e.minimize(ctx, list.Basis(), 1)
}
