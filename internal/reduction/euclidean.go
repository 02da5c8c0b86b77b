package reduction

import (
	"github.com/utkarsh5026/groebner/poly"
	"github.com/utkarsh5026/groebner/ring"
)

// euclid holds the S- and G-polynomial construction shared by D and E.
type euclid[C any] struct {
	r ring.EuclideanRing[C]
}

// SPolynomial returns (l/lc_a)*m_a*a - (l/lc_b)*m_b*b with l the lcm of the
// leading coefficients.
func (e euclid[C]) SPolynomial(a, b *poly.Polynomial[C]) (*poly.Polynomial[C], error) {
	ma, mb := Cofactors(a, b)
	ca, cb, err := cancelling[C](e.r, b.LeadingCoeff(), a.LeadingCoeff())
	if err != nil {
		return nil, opError("s-polynomial", e.r, err)
	}
	return a.MulTerm(ca, ma).Sub(b.MulTerm(cb, mb)), nil
}

func (e euclid[C]) GPolynomial(a, b *poly.Polynomial[C]) (*poly.Polynomial[C], bool, error) {
	la, lb := a.LeadingCoeff(), b.LeadingCoeff()
	if divides(e.r, la, lb) || divides(e.r, lb, la) {
		return nil, false, nil
	}
	_, u, v := e.r.ExtendedGCD(la, lb)
	ma, mb := Cofactors(a, b)
	return a.MulTerm(u, ma).Add(b.MulTerm(v, mb)), true, nil
}

func divides[C any](r ring.Ring[C], a, b C) bool {
	_, err := r.Divide(b, a)
	return err == nil
}

// D is d-reduction over a Euclidean ring: a term is reduced only when the
// divisor's leading coefficient divides its coefficient.
type D[C any] struct {
	euclid[C]
}

func NewD[C any](r ring.EuclideanRing[C]) D[C] { return D[C]{euclid[C]{r: r}} }

func (d D[C]) NormalForm(basis []*poly.Polynomial[C], p *poly.Polynomial[C]) (*poly.Polynomial[C], error) {
	out := scratch[C]{r: p.Ring()}
	rem := p
outer:
	for !rem.IsZero() {
		t := rem.LeadingTerm()
		for i := divisor(basis, t.Mon, 0); i >= 0; i = divisor(basis, t.Mon, i+1) {
			g := basis[i]
			q, err := d.r.Divide(t.Coeff, g.LeadingCoeff())
			if err != nil {
				continue
			}
			rem = rem.Sub(g.MulTerm(q, t.Mon.Div(g.LeadingMonomial())))
			continue outer
		}
		out.add(t)
		rem = rem.Reductum()
	}
	return out.polynomial(), nil
}

// E is e-reduction over a Euclidean ring: coefficients are replaced by
// their remainder modulo the divisor's leading coefficient.
type E[C any] struct {
	euclid[C]
}

func NewE[C any](r ring.EuclideanRing[C]) E[C] { return E[C]{euclid[C]{r: r}} }

func (e E[C]) NormalForm(basis []*poly.Polynomial[C], p *poly.Polynomial[C]) (*poly.Polynomial[C], error) {
	out := scratch[C]{r: p.Ring()}
	rem := p
outer:
	for !rem.IsZero() {
		t := rem.LeadingTerm()
		for i := divisor(basis, t.Mon, 0); i >= 0; i = divisor(basis, t.Mon, i+1) {
			g := basis[i]
			q, _, err := e.r.DivMod(t.Coeff, g.LeadingCoeff())
			if err != nil {
				return nil, opError("e-reduction", e.r, err)
			}
			if e.r.IsZero(q) {
				continue
			}
			rem = rem.Sub(g.MulTerm(q, t.Mon.Div(g.LeadingMonomial())))
			continue outer
		}
		out.add(t)
		rem = rem.Reductum()
	}
	return out.polynomial(), nil
}
