// Package reduction implements polynomial reduction against a basis.
//
// Four reducers cover the coefficient rings the engines support:
//
//   - Field: classic multivariate division, exact coefficient division
//   - Pseudo: scales the remainder by the smallest ring element that makes
//     each step exact, tracking the accumulated multiplier
//   - D: reduces a term only when the divisor's leading coefficient divides
//     it exactly (strong bases over PIDs)
//   - E: reduces coefficients to their Euclidean remainder
//
// All reducers pick the lowest-index basis element that applies, so results
// depend only on the basis order and the term order.
package reduction

import (
	"fmt"

	"github.com/utkarsh5026/groebner/poly"
)

// Reducer forms S-polynomials and normal forms.
type Reducer[C any] interface {
	SPolynomial(a, b *poly.Polynomial[C]) (*poly.Polynomial[C], error)
	NormalForm(basis []*poly.Polynomial[C], p *poly.Polynomial[C]) (*poly.Polynomial[C], error)
}

// GReducer is a Reducer that also forms G-polynomials, the gcd
// combinations needed for strong bases over Euclidean rings.
type GReducer[C any] interface {
	Reducer[C]

	// GPolynomial returns u*m_a*a + v*m_b*b where u, v are the Bezout
	// coefficients of the leading coefficients. The boolean is false when
	// one leading coefficient divides the other, in which case the
	// G-polynomial is top-reducible and not needed.
	GPolynomial(a, b *poly.Polynomial[C]) (*poly.Polynomial[C], bool, error)
}

// Cofactors returns lcm(lm(a), lm(b))/lm(a) and lcm/lm(b).
func Cofactors[C any](a, b *poly.Polynomial[C]) (poly.Monomial, poly.Monomial) {
	lcm := a.LeadingMonomial().Lcm(b.LeadingMonomial())
	return lcm.Div(a.LeadingMonomial()), lcm.Div(b.LeadingMonomial())
}

// divisor returns the lowest index whose leading monomial divides m, or -1.
func divisor[C any](basis []*poly.Polynomial[C], m poly.Monomial, from int) int {
	for i := from; i < len(basis); i++ {
		if g := basis[i]; !g.IsZero() && g.LeadingMonomial().Divides(m) {
			return i
		}
	}
	return -1
}

// IsTopReducible reports whether some basis element's leading monomial
// divides the leading monomial of p.
func IsTopReducible[C any](basis []*poly.Polynomial[C], p *poly.Polynomial[C]) bool {
	return !p.IsZero() && divisor(basis, p.LeadingMonomial(), 0) >= 0
}

// scratch collects irreducible terms. Terms arrive in descending order.
type scratch[C any] struct {
	r     *poly.Ring[C]
	terms []poly.Term[C]
}

func (s *scratch[C]) add(t poly.Term[C]) { s.terms = append(s.terms, t) }

func (s *scratch[C]) scale(c C) {
	cr := s.r.Coefficients()
	kept := s.terms[:0]
	for _, t := range s.terms {
		if v := cr.Mul(c, t.Coeff); !cr.IsZero(v) {
			kept = append(kept, poly.Term[C]{Coeff: v, Mon: t.Mon})
		}
	}
	s.terms = kept
}

func (s *scratch[C]) polynomial() *poly.Polynomial[C] { return s.r.FromTerms(s.terms) }

// opError annotates a ring failure with the operation that hit it.
func opError(op string, r fmt.Stringer, err error) error {
	return fmt.Errorf("%s in %s: %w", op, r, err)
}

// Field reduces over a field.
type Field[C any] struct{}

func (Field[C]) SPolynomial(a, b *poly.Polynomial[C]) (*poly.Polynomial[C], error) {
	cr := a.Ring().Coefficients()
	ma, mb := Cofactors(a, b)
	ia, err := cr.Divide(cr.One(), a.LeadingCoeff())
	if err != nil {
		return nil, opError("s-polynomial", cr, err)
	}
	ib, err := cr.Divide(cr.One(), b.LeadingCoeff())
	if err != nil {
		return nil, opError("s-polynomial", cr, err)
	}
	return a.MulTerm(ia, ma).Sub(b.MulTerm(ib, mb)), nil
}

func (Field[C]) NormalForm(basis []*poly.Polynomial[C], p *poly.Polynomial[C]) (*poly.Polynomial[C], error) {
	cr := p.Ring().Coefficients()
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
		c, err := cr.Divide(t.Coeff, g.LeadingCoeff())
		if err != nil {
			return nil, opError("normal form", cr, err)
		}
		rem = rem.Sub(g.MulTerm(c, t.Mon.Div(g.LeadingMonomial())))
	}
	return out.polynomial(), nil
}
