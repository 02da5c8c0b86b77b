package ring

import (
	"fmt"
	"math/big"
)

// Modular is the residue ring Z/mZ over *big.Int, elements kept in [0, m).
// It is a field exactly when m is prime.
type Modular struct {
	modulus *big.Int
	prime   bool
}

var _ Ring[*big.Int] = (*Modular)(nil)

// NewModular creates Z/mZ. It panics if m < 2.
func NewModular(m int64) *Modular {
	return NewModularBig(big.NewInt(m))
}

// NewModularBig creates Z/mZ for an arbitrary precision modulus. It panics if m < 2.
func NewModularBig(m *big.Int) *Modular {
	if m.Cmp(big.NewInt(2)) < 0 {
		panic(fmt.Sprintf("ring: modulus must be at least 2, got %s", m))
	}
	mod := new(big.Int).Set(m)
	return &Modular{
		modulus: mod,
		prime:   mod.ProbablyPrime(32),
	}
}

// Modulus returns a copy of m.
func (r *Modular) Modulus() *big.Int { return new(big.Int).Set(r.modulus) }

func (r *Modular) reduce(a *big.Int) *big.Int { return a.Mod(a, r.modulus) }

func (r *Modular) Zero() *big.Int { return new(big.Int) }
func (r *Modular) One() *big.Int  { return big.NewInt(1) }

func (r *Modular) FromBigInt(n *big.Int) *big.Int { return r.reduce(new(big.Int).Set(n)) }

func (r *Modular) Add(a, b *big.Int) *big.Int { return r.reduce(new(big.Int).Add(a, b)) }
func (r *Modular) Sub(a, b *big.Int) *big.Int { return r.reduce(new(big.Int).Sub(a, b)) }
func (r *Modular) Neg(a *big.Int) *big.Int    { return r.reduce(new(big.Int).Neg(a)) }
func (r *Modular) Mul(a, b *big.Int) *big.Int { return r.reduce(new(big.Int).Mul(a, b)) }

// Divide solves b*x = a (mod m). With g = gcd(b, m) a solution exists iff g
// divides a; the canonical one is returned.
func (r *Modular) Divide(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	g := new(big.Int).GCD(nil, nil, b, r.modulus)
	if new(big.Int).Mod(a, g).Sign() != 0 {
		return nil, fmt.Errorf("%w: %s by %s in %s", ErrNotDivisible, a, b, r)
	}
	m := new(big.Int).Quo(r.modulus, g)
	bg := new(big.Int).Quo(b, g)
	inv := new(big.Int).ModInverse(bg, m)
	if inv == nil {
		// m == 1 after reduction; every element divides.
		return new(big.Int), nil
	}
	x := new(big.Int).Mul(new(big.Int).Quo(a, g), inv)
	return x.Mod(x, m), nil
}

func (r *Modular) IsZero(a *big.Int) bool { return a.Sign() == 0 }
func (r *Modular) IsOne(a *big.Int) bool  { return a.IsInt64() && a.Int64() == 1 }

func (r *Modular) IsUnit(a *big.Int) bool {
	if a.Sign() == 0 {
		return false
	}
	g := new(big.Int).GCD(nil, nil, a, r.modulus)
	return g.IsInt64() && g.Int64() == 1
}

func (r *Modular) Equal(a, b *big.Int) bool { return a.Cmp(b) == 0 }
func (r *Modular) Format(a *big.Int) string { return a.String() }
func (r *Modular) String() string           { return "Z/" + r.modulus.String() }

func (r *Modular) Capabilities() Capabilities {
	return Capabilities{
		IsField:          r.prime,
		IsIntegralDomain: r.prime,
		Characteristic:   r.Modulus(),
		Category:         CategoryGeneric,
	}
}
