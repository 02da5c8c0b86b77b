package poly

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/utkarsh5026/groebner/ring"
)

// Ring is a polynomial ring over a coefficient ring with named variables and
// a fixed monomial order. A *Ring[C] is itself a ring.Ring over its
// polynomials, so it can serve as the coefficient ring of another Ring.
type Ring[C any] struct {
	coeff ring.Ring[C]
	vars  []string
	order Order
}

var _ ring.Ring[*Polynomial[*big.Int]] = (*Ring[*big.Int])(nil)

// NewRing creates coeff[vars...] ordered by order. It panics on duplicate
// variable names.
func NewRing[C any](coeff ring.Ring[C], vars []string, order Order) *Ring[C] {
	seen := make(map[string]bool, len(vars))
	for _, v := range vars {
		if seen[v] {
			panic(fmt.Sprintf("poly: duplicate variable %q", v))
		}
		seen[v] = true
	}
	return &Ring[C]{coeff: coeff, vars: slices.Clone(vars), order: order}
}

func (r *Ring[C]) Coefficients() ring.Ring[C] { return r.coeff }
func (r *Ring[C]) Vars() []string            { return slices.Clone(r.vars) }
func (r *Ring[C]) NumVars() int              { return len(r.vars) }
func (r *Ring[C]) Order() Order              { return r.order }

// WithCoefficients returns the ring with the same variables and order over
// another coefficient ring of the same element type.
func (r *Ring[C]) WithCoefficients(coeff ring.Ring[C]) *Ring[C] {
	return &Ring[C]{coeff: coeff, vars: r.vars, order: r.order}
}

// Const returns the constant polynomial c.
func (r *Ring[C]) Const(c C) *Polynomial[C] {
	return r.Term(c, One(len(r.vars)))
}

// Var returns the i-th variable.
func (r *Ring[C]) Var(i int) *Polynomial[C] {
	m := One(len(r.vars))
	m[i] = 1
	return r.Term(r.coeff.One(), m)
}

// Term returns the single term c*m.
func (r *Ring[C]) Term(c C, m Monomial) *Polynomial[C] {
	if r.coeff.IsZero(c) {
		return r.Zero()
	}
	return &Polynomial[C]{ring: r, terms: []Term[C]{{Coeff: c, Mon: slices.Clone(m)}}}
}

// FromTerms sorts terms, combines equal monomials and drops zeros.
func (r *Ring[C]) FromTerms(terms []Term[C]) *Polynomial[C] {
	sorted := slices.Clone(terms)
	slices.SortStableFunc(sorted, func(a, b Term[C]) int { return r.order.Compare(b.Mon, a.Mon) })

	out := make([]Term[C], 0, len(sorted))
	for _, t := range sorted {
		if n := len(out); n > 0 && out[n-1].Mon.Equal(t.Mon) {
			out[n-1].Coeff = r.coeff.Add(out[n-1].Coeff, t.Coeff)
			continue
		}
		out = append(out, Term[C]{Coeff: t.Coeff, Mon: slices.Clone(t.Mon)})
	}
	kept := out[:0]
	for _, t := range out {
		if !r.coeff.IsZero(t.Coeff) {
			kept = append(kept, t)
		}
	}
	return &Polynomial[C]{ring: r, terms: kept}
}

func (r *Ring[C]) Zero() *Polynomial[C] { return &Polynomial[C]{ring: r} }
func (r *Ring[C]) One() *Polynomial[C]  { return r.Const(r.coeff.One()) }

func (r *Ring[C]) FromBigInt(n *big.Int) *Polynomial[C] {
	return r.Const(r.coeff.FromBigInt(n))
}

func (r *Ring[C]) Add(a, b *Polynomial[C]) *Polynomial[C] { return a.Add(b) }
func (r *Ring[C]) Sub(a, b *Polynomial[C]) *Polynomial[C] { return a.Sub(b) }
func (r *Ring[C]) Neg(a *Polynomial[C]) *Polynomial[C]    { return a.Neg() }
func (r *Ring[C]) Mul(a, b *Polynomial[C]) *Polynomial[C] { return a.Mul(b) }

// Divide performs exact multivariate division.
func (r *Ring[C]) Divide(a, b *Polynomial[C]) (*Polynomial[C], error) {
	if b.IsZero() {
		return nil, ring.ErrDivisionByZero
	}
	lt := b.LeadingTerm()
	q := r.Zero()
	rem := a
	for !rem.IsZero() {
		t := rem.LeadingTerm()
		if !lt.Mon.Divides(t.Mon) {
			return nil, fmt.Errorf("%w: %s by %s in %s", ring.ErrNotDivisible, a, b, r)
		}
		c, err := r.coeff.Divide(t.Coeff, lt.Coeff)
		if err != nil {
			return nil, fmt.Errorf("%w: %s by %s in %s", ring.ErrNotDivisible, a, b, r)
		}
		m := t.Mon.Div(lt.Mon)
		q = q.Add(r.Term(c, m))
		rem = rem.Sub(b.MulTerm(c, m))
	}
	return q, nil
}

func (r *Ring[C]) IsZero(a *Polynomial[C]) bool { return a.IsZero() }

func (r *Ring[C]) IsOne(a *Polynomial[C]) bool {
	return len(a.terms) == 1 && a.terms[0].Mon.IsOne() && r.coeff.IsOne(a.terms[0].Coeff)
}

func (r *Ring[C]) IsUnit(a *Polynomial[C]) bool {
	return len(a.terms) == 1 && a.terms[0].Mon.IsOne() && r.coeff.IsUnit(a.terms[0].Coeff)
}

func (r *Ring[C]) Equal(a, b *Polynomial[C]) bool { return a.Equal(b) }
func (r *Ring[C]) Format(a *Polynomial[C]) string { return a.String() }

func (r *Ring[C]) String() string {
	return fmt.Sprintf("%s[%s]", r.coeff, strings.Join(r.vars, ", "))
}

// Capabilities describes the ring of polynomials: never a field, a domain
// when the coefficients are, same characteristic.
func (r *Ring[C]) Capabilities() ring.Capabilities {
	cc := r.coeff.Capabilities()
	return ring.Capabilities{
		IsIntegralDomain: cc.IsIntegralDomain,
		Characteristic:   cc.Characteristic,
		Category:         ring.CategoryPolynomial,
	}
}

// Sign orders polynomials by the sign of their leading coefficient when the
// coefficient ring is ordered.
func (r *Ring[C]) Sign(a *Polynomial[C]) int {
	if a.IsZero() {
		return 0
	}
	if s, ok := r.coeff.(ring.Signed[C]); ok {
		return s.Sign(a.LeadingCoeff())
	}
	return 1
}
