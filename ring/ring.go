// Package ring describes coefficient rings for polynomial computations.
//
// A Ring[C] supplies arithmetic on elements of type C together with a
// Capabilities descriptor. The descriptor is what the Gröbner basis factory
// dispatches on; it is never inferred from element values.
//
// Optional behaviour is expressed through additional interfaces that a ring
// may implement:
//
//   - GCDRing: greatest common divisors (minimal pseudo-reduction multipliers)
//   - EuclideanRing: division with remainder and extended GCD (d-GB, e-GB)
//   - FractionField: a field with an integral subring view (fraction-free GB)
//   - Factored: a direct product of rings (regular ring GB)
package ring

import (
	"errors"
	"math/big"
)

var (
	// ErrDivisionByZero is returned when dividing by the zero element.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrNotDivisible is returned when an exact division has no solution in the ring.
	ErrNotDivisible = errors.New("element not divisible")
)

// Category is the structural kind of a coefficient ring.
type Category int

const (
	// CategoryGeneric covers plain coefficient rings such as Z, Q or Z/mZ.
	CategoryGeneric Category = iota

	// CategoryPolynomial marks rings whose elements are themselves polynomials.
	CategoryPolynomial

	// CategoryProduct marks direct products of rings.
	CategoryProduct

	// CategoryQuotient marks quotient fields of integral domains.
	CategoryQuotient
)

func (c Category) String() string {
	switch c {
	case CategoryGeneric:
		return "generic"
	case CategoryPolynomial:
		return "polynomial"
	case CategoryProduct:
		return "product"
	case CategoryQuotient:
		return "quotient"
	default:
		return "unknown"
	}
}

// Capabilities is the immutable capability descriptor of a ring.
type Capabilities struct {
	IsField          bool
	IsIntegralDomain bool
	// Characteristic is a fresh value owned by the caller; zero for characteristic 0.
	Characteristic *big.Int
	Category       Category
}

// CharacteristicZero reports whether the ring has characteristic 0.
func (c Capabilities) CharacteristicZero() bool {
	return c.Characteristic == nil || c.Characteristic.Sign() == 0
}

// Ring is a commutative ring with identity over elements of type C.
// Implementations never mutate their arguments.
type Ring[C any] interface {
	Zero() C
	One() C
	FromBigInt(n *big.Int) C

	Add(a, b C) C
	Sub(a, b C) C
	Neg(a C) C
	Mul(a, b C) C

	// Divide returns q with b*q == a, or an error wrapping ErrDivisionByZero
	// or ErrNotDivisible.
	Divide(a, b C) (C, error)

	IsZero(a C) bool
	IsOne(a C) bool
	IsUnit(a C) bool
	Equal(a, b C) bool

	Format(a C) string
	Capabilities() Capabilities
	String() string
}

// GCDRing is a ring with greatest common divisors.
type GCDRing[C any] interface {
	Ring[C]
	GCD(a, b C) C
}

// EuclideanRing is a GCD ring with division with remainder.
type EuclideanRing[C any] interface {
	GCDRing[C]

	// DivMod returns q, r with a = q*b + r and 0 <= r < |b|.
	DivMod(a, b C) (q, r C, err error)

	// ExtendedGCD returns g = gcd(a, b) and u, v with u*a + v*b = g.
	ExtendedGCD(a, b C) (g, u, v C)

	// Sign returns -1, 0 or +1.
	Sign(a C) int
}

// Signed is a ring with an ordering on elements, used to pick canonical
// associates (positive leading coefficients).
type Signed[C any] interface {
	Sign(a C) int
}

// FractionField is a field that knows its integral subring.
type FractionField[C any] interface {
	Ring[C]

	// IntegralView returns the subring of integral elements, represented with
	// the same element type.
	IntegralView() EuclideanRing[C]

	// Denominator returns the canonical denominator of a as an integral element.
	Denominator(a C) C
}

// Factored is a finite direct product of rings.
type Factored[C any] interface {
	Ring[C]
	NumFactors() int

	// Factor returns the k-th factor viewed as a ring over the product's
	// element type: only component k participates in arithmetic.
	Factor(k int) Ring[C]

	// Project keeps component k of x and zeroes the rest.
	Project(k int, x C) C

	OnlyFields() bool
}

// Lcm returns the least common multiple of a and b in a GCD ring.
func Lcm[C any](r GCDRing[C], a, b C) (C, error) {
	if r.IsZero(a) || r.IsZero(b) {
		return r.Zero(), nil
	}
	g := r.GCD(a, b)
	q, err := r.Divide(a, g)
	if err != nil {
		return r.Zero(), err
	}
	return r.Mul(q, b), nil
}

// Pow returns a^n for n >= 0.
func Pow[C any](r Ring[C], a C, n int) C {
	result := r.One()
	base := a
	for n > 0 {
		if n&1 == 1 {
			result = r.Mul(result, base)
		}
		base = r.Mul(base, base)
		n >>= 1
	}
	return result
}
