package ring

import (
	"fmt"
	"math/big"
)

// Integers is the ring Z over *big.Int.
type Integers struct{}

var _ EuclideanRing[*big.Int] = Integers{}

func (Integers) Zero() *big.Int { return new(big.Int) }
func (Integers) One() *big.Int  { return big.NewInt(1) }

func (Integers) FromBigInt(n *big.Int) *big.Int { return new(big.Int).Set(n) }

func (Integers) Add(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }
func (Integers) Sub(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) }
func (Integers) Neg(a *big.Int) *big.Int    { return new(big.Int).Neg(a) }
func (Integers) Mul(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }

func (Integers) Divide(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 {
		return nil, fmt.Errorf("%w: %s by %s in Z", ErrNotDivisible, a, b)
	}
	return q, nil
}

func (Integers) IsZero(a *big.Int) bool { return a.Sign() == 0 }
func (Integers) IsOne(a *big.Int) bool  { return a.IsInt64() && a.Int64() == 1 }

func (Integers) IsUnit(a *big.Int) bool {
	return a.IsInt64() && (a.Int64() == 1 || a.Int64() == -1)
}

func (Integers) Equal(a, b *big.Int) bool { return a.Cmp(b) == 0 }
func (Integers) Format(a *big.Int) string { return a.String() }
func (Integers) String() string           { return "Z" }

func (Integers) Capabilities() Capabilities {
	return Capabilities{
		IsIntegralDomain: true,
		Characteristic:   new(big.Int),
		Category:         CategoryGeneric,
	}
}

func (Integers) GCD(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, a, b)
}

func (Integers) DivMod(a, b *big.Int) (*big.Int, *big.Int, error) {
	if b.Sign() == 0 {
		return nil, nil, ErrDivisionByZero
	}
	q, m := new(big.Int).DivMod(a, b, new(big.Int))
	return q, m, nil
}

func (Integers) ExtendedGCD(a, b *big.Int) (*big.Int, *big.Int, *big.Int) {
	u, v := new(big.Int), new(big.Int)
	g := new(big.Int).GCD(u, v, a, b)
	return g, u, v
}

func (Integers) Sign(a *big.Int) int { return a.Sign() }
