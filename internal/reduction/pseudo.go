package reduction

import (
	"errors"

	"github.com/utkarsh5026/groebner/poly"
	"github.com/utkarsh5026/groebner/ring"
)

// Pseudo reduces over rings without exact division. When the leading
// coefficient b of the divisor does not divide the term coefficient a, the
// remainder is first multiplied by b/gcd(a, b), or by b when the ring has
// no gcd.
type Pseudo[C any] struct{}

// SPolynomial cross-multiplies by the leading coefficients, divided by
// their gcd when one is available.
func (Pseudo[C]) SPolynomial(a, b *poly.Polynomial[C]) (*poly.Polynomial[C], error) {
	cr := a.Ring().Coefficients()
	ma, mb := Cofactors(a, b)
	ca, cb, err := cancelling(cr, b.LeadingCoeff(), a.LeadingCoeff())
	if err != nil {
		return nil, opError("s-polynomial", cr, err)
	}
	return a.MulTerm(ca, ma).Sub(b.MulTerm(cb, mb)), nil
}

// cancelling returns (x/g, y/g) for g = gcd(x, y), or (x, y) without gcd.
func cancelling[C any](cr ring.Ring[C], x, y C) (C, C, error) {
	gr, ok := cr.(ring.GCDRing[C])
	if !ok {
		return x, y, nil
	}
	g := gr.GCD(x, y)
	if cr.IsZero(g) || cr.IsOne(g) {
		return x, y, nil
	}
	xg, err := cr.Divide(x, g)
	if err != nil {
		return x, y, err
	}
	yg, err := cr.Divide(y, g)
	if err != nil {
		return x, y, err
	}
	return xg, yg, nil
}

func (r Pseudo[C]) NormalForm(basis []*poly.Polynomial[C], p *poly.Polynomial[C]) (*poly.Polynomial[C], error) {
	nf, _, err := r.NormalFormFactor(basis, p)
	return nf, err
}

// NormalFormFactor returns nf and the multiplier m with m*p - nf in the
// ideal spanned by basis.
func (Pseudo[C]) NormalFormFactor(basis []*poly.Polynomial[C], p *poly.Polynomial[C]) (*poly.Polynomial[C], C, error) {
	cr := p.Ring().Coefficients()
	mult := cr.One()
	out := scratch[C]{r: p.Ring()}
	rem := p
	for !rem.IsZero() {
		t := rem.LeadingTerm()
		i := divisor(basis, t.Mon, 0)
		if i < 0 {
			out.add(t)
			rem = rem.Reductum()
			continue
		}
		g := basis[i]
		m := t.Mon.Div(g.LeadingMonomial())
		lc := g.LeadingCoeff()

		q, err := cr.Divide(t.Coeff, lc)
		if err == nil {
			rem = rem.Sub(g.MulTerm(q, m))
			continue
		}
		if !errors.Is(err, ring.ErrNotDivisible) {
			return nil, mult, opError("pseudo normal form", cr, err)
		}
		f, c, err := cancelling(cr, lc, t.Coeff)
		if err != nil {
			return nil, mult, opError("pseudo normal form", cr, err)
		}
		rem = rem.Scale(f).Sub(g.MulTerm(c, m))
		out.scale(f)
		mult = cr.Mul(mult, f)
	}
	return out.polynomial(), mult, nil
}
