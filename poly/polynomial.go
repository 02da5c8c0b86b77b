package poly

import (
	"fmt"
	"strings"

	"github.com/utkarsh5026/groebner/ring"
)

// Term is a coefficient times a monomial.
type Term[C any] struct {
	Coeff C
	Mon   Monomial
}

// Polynomial is an immutable element of a polynomial ring. Terms are kept in
// strictly descending monomial order with no zero coefficients, so the zero
// polynomial has no terms.
type Polynomial[C any] struct {
	ring  *Ring[C]
	terms []Term[C]
}

// Ring returns the polynomial ring p belongs to.
func (p *Polynomial[C]) Ring() *Ring[C] { return p.ring }

func (p *Polynomial[C]) IsZero() bool { return len(p.terms) == 0 }

// Len returns the number of terms.
func (p *Polynomial[C]) Len() int { return len(p.terms) }

// Terms returns a copy of the terms in descending order.
func (p *Polynomial[C]) Terms() []Term[C] {
	return append([]Term[C](nil), p.terms...)
}

// LeadingTerm returns the largest term. It panics on the zero polynomial.
func (p *Polynomial[C]) LeadingTerm() Term[C] {
	if p.IsZero() {
		panic("poly: leading term of zero polynomial")
	}
	return p.terms[0]
}

func (p *Polynomial[C]) LeadingMonomial() Monomial { return p.LeadingTerm().Mon }
func (p *Polynomial[C]) LeadingCoeff() C           { return p.LeadingTerm().Coeff }

// Reductum returns p minus its leading term.
func (p *Polynomial[C]) Reductum() *Polynomial[C] {
	if p.IsZero() {
		return p
	}
	return &Polynomial[C]{ring: p.ring, terms: p.terms[1:]}
}

// IsConstant reports whether p is zero or has only a degree 0 term.
func (p *Polynomial[C]) IsConstant() bool {
	return p.IsZero() || (len(p.terms) == 1 && p.terms[0].Mon.IsOne())
}

// Degree returns the maximal total degree of a term, or -1 for zero.
func (p *Polynomial[C]) Degree() int {
	d := -1
	for _, t := range p.terms {
		d = max(d, t.Mon.Degree())
	}
	return d
}

func (p *Polynomial[C]) Add(q *Polynomial[C]) *Polynomial[C] {
	cr, ord := p.ring.coeff, p.ring.order
	out := make([]Term[C], 0, len(p.terms)+len(q.terms))
	i, j := 0, 0
	for i < len(p.terms) && j < len(q.terms) {
		a, b := p.terms[i], q.terms[j]
		switch ord.Compare(a.Mon, b.Mon) {
		case 1:
			out = append(out, a)
			i++
		case -1:
			out = append(out, b)
			j++
		default:
			if c := cr.Add(a.Coeff, b.Coeff); !cr.IsZero(c) {
				out = append(out, Term[C]{Coeff: c, Mon: a.Mon})
			}
			i++
			j++
		}
	}
	out = append(out, p.terms[i:]...)
	out = append(out, q.terms[j:]...)
	return &Polynomial[C]{ring: p.ring, terms: out}
}

func (p *Polynomial[C]) Neg() *Polynomial[C] {
	cr := p.ring.coeff
	out := make([]Term[C], len(p.terms))
	for i, t := range p.terms {
		out[i] = Term[C]{Coeff: cr.Neg(t.Coeff), Mon: t.Mon}
	}
	return &Polynomial[C]{ring: p.ring, terms: out}
}

func (p *Polynomial[C]) Sub(q *Polynomial[C]) *Polynomial[C] { return p.Add(q.Neg()) }

// MulTerm returns c*m*p. Monomial orders are multiplicative, so the term
// order is preserved; products that vanish in rings with zero divisors are
// dropped.
func (p *Polynomial[C]) MulTerm(c C, m Monomial) *Polynomial[C] {
	cr := p.ring.coeff
	if cr.IsZero(c) {
		return p.ring.Zero()
	}
	out := make([]Term[C], 0, len(p.terms))
	for _, t := range p.terms {
		if v := cr.Mul(c, t.Coeff); !cr.IsZero(v) {
			out = append(out, Term[C]{Coeff: v, Mon: t.Mon.Mul(m)})
		}
	}
	return &Polynomial[C]{ring: p.ring, terms: out}
}

// Scale returns c*p.
func (p *Polynomial[C]) Scale(c C) *Polynomial[C] {
	return p.MulTerm(c, One(len(p.ring.vars)))
}

func (p *Polynomial[C]) Mul(q *Polynomial[C]) *Polynomial[C] {
	out := p.ring.Zero()
	for _, t := range q.terms {
		out = out.Add(p.MulTerm(t.Coeff, t.Mon))
	}
	return out
}

// Monic divides p by its leading coefficient. The leading coefficient must be
// a unit; zero is returned unchanged.
func (p *Polynomial[C]) Monic() (*Polynomial[C], error) {
	if p.IsZero() {
		return p, nil
	}
	cr := p.ring.coeff
	lc := p.LeadingCoeff()
	if cr.IsOne(lc) {
		return p, nil
	}
	inv, err := cr.Divide(cr.One(), lc)
	if err != nil {
		return nil, fmt.Errorf("monic: leading coefficient %s: %w", cr.Format(lc), err)
	}
	return p.Scale(inv), nil
}

// Map applies f to every coefficient and reinterprets the result in target,
// which must have the same variables and order. Zero results are dropped.
func (p *Polynomial[C]) Map(target *Ring[C], f func(C) C) *Polynomial[C] {
	out := make([]Term[C], 0, len(p.terms))
	for _, t := range p.terms {
		if c := f(t.Coeff); !target.coeff.IsZero(c) {
			out = append(out, Term[C]{Coeff: c, Mon: t.Mon})
		}
	}
	return &Polynomial[C]{ring: target, terms: out}
}

// In reinterprets p as an element of target without touching coefficients.
func (p *Polynomial[C]) In(target *Ring[C]) *Polynomial[C] {
	return p.Map(target, func(c C) C { return c })
}

// Convert maps p into a ring with a different coefficient type. The target
// must have the same number of variables and the same order.
func Convert[C, D any](p *Polynomial[C], target *Ring[D], f func(C) D) *Polynomial[D] {
	out := make([]Term[D], 0, len(p.terms))
	for _, t := range p.terms {
		if c := f(t.Coeff); !target.coeff.IsZero(c) {
			out = append(out, Term[D]{Coeff: c, Mon: t.Mon})
		}
	}
	return &Polynomial[D]{ring: target, terms: out}
}

func (p *Polynomial[C]) Equal(q *Polynomial[C]) bool {
	if len(p.terms) != len(q.terms) {
		return false
	}
	cr := p.ring.coeff
	for i, t := range p.terms {
		u := q.terms[i]
		if !t.Mon.Equal(u.Mon) || !cr.Equal(t.Coeff, u.Coeff) {
			return false
		}
	}
	return true
}

func (p *Polynomial[C]) String() string {
	if p.IsZero() {
		return "0"
	}
	cr := p.ring.coeff
	var sb strings.Builder
	for i, t := range p.terms {
		neg, body := p.formatTerm(cr, t)
		switch {
		case i == 0 && neg:
			sb.WriteString("-")
		case i > 0 && neg:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		sb.WriteString(body)
	}
	return sb.String()
}

// formatTerm splits a term into its sign and the rendered magnitude.
func (p *Polynomial[C]) formatTerm(cr ring.Ring[C], t Term[C]) (bool, string) {
	mon := t.Mon.format(p.ring.vars)
	coeff := cr.Format(t.Coeff)
	neg := false
	if strings.HasPrefix(coeff, "-") && isAtom(coeff[1:]) {
		neg, coeff = true, coeff[1:]
	}
	if !isAtom(coeff) && !strings.HasPrefix(coeff, "(") {
		coeff = "(" + coeff + ")"
	}
	switch {
	case mon == "":
		return neg, coeff
	case coeff == "1":
		return neg, mon
	default:
		return neg, coeff + "*" + mon
	}
}

func isAtom(s string) bool {
	return s != "" && !strings.ContainsAny(s, " +-")
}
