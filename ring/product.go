package ring

import (
	"fmt"
	"math/big"
	"strings"
)

// Tuple is an element of a direct product ring. Tuples are treated as immutable.
type Tuple[C any] []C

// Product is the direct product R1 x ... x Rn of rings sharing an element type.
type Product[C any] struct {
	factors []Ring[C]
}

var _ Factored[Tuple[int]] = (*Product[int])(nil)

// NewProduct builds the product of the given factors. It panics without factors.
func NewProduct[C any](factors ...Ring[C]) *Product[C] {
	if len(factors) == 0 {
		panic("ring: product needs at least one factor")
	}
	return &Product[C]{factors: append([]Ring[C](nil), factors...)}
}

func (p *Product[C]) NumFactors() int { return len(p.factors) }

// Factor returns the k-th factor viewed as a ring over tuples.
func (p *Product[C]) Factor(k int) Ring[Tuple[C]] {
	v := &factorView[C]{p: p, k: k}
	if g, ok := p.factors[k].(GCDRing[C]); ok {
		return &gcdFactorView[C]{factorView: v, gcd: g}
	}
	return v
}

func (p *Product[C]) Project(k int, x Tuple[C]) Tuple[C] {
	t := p.zeros()
	t[k] = x[k]
	return t
}

func (p *Product[C]) OnlyFields() bool {
	for _, f := range p.factors {
		if !f.Capabilities().IsField {
			return false
		}
	}
	return true
}

func (p *Product[C]) zeros() Tuple[C] {
	t := make(Tuple[C], len(p.factors))
	for i, f := range p.factors {
		t[i] = f.Zero()
	}
	return t
}

func (p *Product[C]) each(fn func(i int, f Ring[C]) C) Tuple[C] {
	t := make(Tuple[C], len(p.factors))
	for i, f := range p.factors {
		t[i] = fn(i, f)
	}
	return t
}

func (p *Product[C]) all(fn func(i int, f Ring[C]) bool) bool {
	for i, f := range p.factors {
		if !fn(i, f) {
			return false
		}
	}
	return true
}

func (p *Product[C]) Zero() Tuple[C] { return p.zeros() }

func (p *Product[C]) One() Tuple[C] {
	return p.each(func(_ int, f Ring[C]) C { return f.One() })
}

func (p *Product[C]) FromBigInt(n *big.Int) Tuple[C] {
	return p.each(func(_ int, f Ring[C]) C { return f.FromBigInt(n) })
}

func (p *Product[C]) Add(a, b Tuple[C]) Tuple[C] {
	return p.each(func(i int, f Ring[C]) C { return f.Add(a[i], b[i]) })
}

func (p *Product[C]) Sub(a, b Tuple[C]) Tuple[C] {
	return p.each(func(i int, f Ring[C]) C { return f.Sub(a[i], b[i]) })
}

func (p *Product[C]) Neg(a Tuple[C]) Tuple[C] {
	return p.each(func(i int, f Ring[C]) C { return f.Neg(a[i]) })
}

func (p *Product[C]) Mul(a, b Tuple[C]) Tuple[C] {
	return p.each(func(i int, f Ring[C]) C { return f.Mul(a[i], b[i]) })
}

// Divide divides componentwise. A zero component of b only divides a zero
// component of a.
func (p *Product[C]) Divide(a, b Tuple[C]) (Tuple[C], error) {
	q := make(Tuple[C], len(p.factors))
	for i, f := range p.factors {
		c, err := divideComponent(f, a[i], b[i])
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		q[i] = c
	}
	return q, nil
}

func divideComponent[C any](f Ring[C], a, b C) (C, error) {
	if f.IsZero(b) {
		if f.IsZero(a) {
			return f.Zero(), nil
		}
		return f.Zero(), ErrNotDivisible
	}
	return f.Divide(a, b)
}

func (p *Product[C]) IsZero(a Tuple[C]) bool {
	return p.all(func(i int, f Ring[C]) bool { return f.IsZero(a[i]) })
}

func (p *Product[C]) IsOne(a Tuple[C]) bool {
	return p.all(func(i int, f Ring[C]) bool { return f.IsOne(a[i]) })
}

func (p *Product[C]) IsUnit(a Tuple[C]) bool {
	return p.all(func(i int, f Ring[C]) bool { return f.IsUnit(a[i]) })
}

func (p *Product[C]) Equal(a, b Tuple[C]) bool {
	return p.all(func(i int, f Ring[C]) bool { return f.Equal(a[i], b[i]) })
}

func (p *Product[C]) Format(a Tuple[C]) string {
	parts := make([]string, len(p.factors))
	for i, f := range p.factors {
		parts[i] = f.Format(a[i])
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (p *Product[C]) String() string {
	names := make([]string, len(p.factors))
	for i, f := range p.factors {
		names[i] = f.String()
	}
	return strings.Join(names, " x ")
}

// Capabilities of a product: a single factor keeps its own field/domain
// flags; more factors have zero divisors. The characteristic is the lcm of
// the factor characteristics, or 0 if any factor has characteristic 0.
func (p *Product[C]) Capabilities() Capabilities {
	caps := Capabilities{Category: CategoryProduct, Characteristic: big.NewInt(1)}
	if len(p.factors) == 1 {
		fc := p.factors[0].Capabilities()
		caps.IsField = fc.IsField
		caps.IsIntegralDomain = fc.IsIntegralDomain
	}
	for _, f := range p.factors {
		fc := f.Capabilities()
		if fc.CharacteristicZero() {
			caps.Characteristic = new(big.Int)
			break
		}
		g := new(big.Int).GCD(nil, nil, caps.Characteristic, fc.Characteristic)
		caps.Characteristic.Mul(caps.Characteristic, new(big.Int).Quo(fc.Characteristic, g))
	}
	return caps
}

// factorView is factor k of a product acting on whole tuples; components
// other than k are always zero in results.
type factorView[C any] struct {
	p *Product[C]
	k int
}

func (v *factorView[C]) ring() Ring[C] { return v.p.factors[v.k] }

func (v *factorView[C]) lift(c C) Tuple[C] {
	t := v.p.zeros()
	t[v.k] = c
	return t
}

func (v *factorView[C]) Zero() Tuple[C] { return v.p.zeros() }
func (v *factorView[C]) One() Tuple[C]  { return v.lift(v.ring().One()) }

func (v *factorView[C]) FromBigInt(n *big.Int) Tuple[C] { return v.lift(v.ring().FromBigInt(n)) }

func (v *factorView[C]) Add(a, b Tuple[C]) Tuple[C] { return v.lift(v.ring().Add(a[v.k], b[v.k])) }
func (v *factorView[C]) Sub(a, b Tuple[C]) Tuple[C] { return v.lift(v.ring().Sub(a[v.k], b[v.k])) }
func (v *factorView[C]) Neg(a Tuple[C]) Tuple[C]    { return v.lift(v.ring().Neg(a[v.k])) }
func (v *factorView[C]) Mul(a, b Tuple[C]) Tuple[C] { return v.lift(v.ring().Mul(a[v.k], b[v.k])) }

func (v *factorView[C]) Divide(a, b Tuple[C]) (Tuple[C], error) {
	if v.ring().IsZero(b[v.k]) {
		return nil, ErrDivisionByZero
	}
	q, err := v.ring().Divide(a[v.k], b[v.k])
	if err != nil {
		return nil, err
	}
	return v.lift(q), nil
}

func (v *factorView[C]) IsZero(a Tuple[C]) bool   { return v.ring().IsZero(a[v.k]) }
func (v *factorView[C]) IsOne(a Tuple[C]) bool    { return v.ring().IsOne(a[v.k]) }
func (v *factorView[C]) IsUnit(a Tuple[C]) bool   { return v.ring().IsUnit(a[v.k]) }
func (v *factorView[C]) Equal(a, b Tuple[C]) bool { return v.ring().Equal(a[v.k], b[v.k]) }
func (v *factorView[C]) Format(a Tuple[C]) string { return v.p.Format(a) }

func (v *factorView[C]) String() string {
	return fmt.Sprintf("%s[%d]", v.p, v.k)
}

func (v *factorView[C]) Capabilities() Capabilities { return v.ring().Capabilities() }

// gcdFactorView keeps GCDs available for factors that have them.
type gcdFactorView[C any] struct {
	*factorView[C]
	gcd GCDRing[C]
}

func (v *gcdFactorView[C]) GCD(a, b Tuple[C]) Tuple[C] {
	return v.lift(v.gcd.GCD(a[v.k], b[v.k]))
}
