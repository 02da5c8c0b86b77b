package ring

import (
	"fmt"
	"math/big"
)

// Rationals is the field Q over *big.Rat. It is the quotient field of Z and
// exposes the integers as an integral view for fraction-free computations.
type Rationals struct{}

var _ FractionField[*big.Rat] = Rationals{}

func (Rationals) Zero() *big.Rat { return new(big.Rat) }
func (Rationals) One() *big.Rat  { return big.NewRat(1, 1) }

func (Rationals) FromBigInt(n *big.Int) *big.Rat { return new(big.Rat).SetInt(n) }

func (Rationals) Add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func (Rationals) Sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }
func (Rationals) Neg(a *big.Rat) *big.Rat    { return new(big.Rat).Neg(a) }
func (Rationals) Mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }

func (Rationals) Divide(a, b *big.Rat) (*big.Rat, error) {
	if b.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	return new(big.Rat).Quo(a, b), nil
}

func (Rationals) IsZero(a *big.Rat) bool { return a.Sign() == 0 }

func (Rationals) IsOne(a *big.Rat) bool {
	return a.IsInt() && a.Num().IsInt64() && a.Num().Int64() == 1
}

func (Rationals) IsUnit(a *big.Rat) bool   { return a.Sign() != 0 }
func (Rationals) Equal(a, b *big.Rat) bool { return a.Cmp(b) == 0 }
func (Rationals) Format(a *big.Rat) string { return a.RatString() }
func (Rationals) String() string           { return "Q" }

func (Rationals) Capabilities() Capabilities {
	return Capabilities{
		IsField:          true,
		IsIntegralDomain: true,
		Characteristic:   new(big.Int),
		Category:         CategoryQuotient,
	}
}

func (Rationals) IntegralView() EuclideanRing[*big.Rat] { return ratIntegers{} }

func (Rationals) Denominator(a *big.Rat) *big.Rat {
	return new(big.Rat).SetInt(a.Denom())
}

// Sign lets formatting and normalisation treat Q as an ordered ring.
func (Rationals) Sign(a *big.Rat) int { return a.Sign() }

// ratIntegers is Z embedded in *big.Rat. Every operation assumes integral
// inputs and keeps results integral.
type ratIntegers struct{}

func (ratIntegers) Zero() *big.Rat { return new(big.Rat) }
func (ratIntegers) One() *big.Rat  { return big.NewRat(1, 1) }

func (ratIntegers) FromBigInt(n *big.Int) *big.Rat { return new(big.Rat).SetInt(n) }

func (ratIntegers) Add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func (ratIntegers) Sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }
func (ratIntegers) Neg(a *big.Rat) *big.Rat    { return new(big.Rat).Neg(a) }
func (ratIntegers) Mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }

func (ratIntegers) Divide(a, b *big.Rat) (*big.Rat, error) {
	if b.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	q := new(big.Rat).Quo(a, b)
	if !q.IsInt() {
		return nil, fmt.Errorf("%w: %s by %s in Z", ErrNotDivisible, a.RatString(), b.RatString())
	}
	return q, nil
}

func (ratIntegers) IsZero(a *big.Rat) bool { return a.Sign() == 0 }

func (ratIntegers) IsOne(a *big.Rat) bool {
	return a.IsInt() && a.Num().IsInt64() && a.Num().Int64() == 1
}

func (ratIntegers) IsUnit(a *big.Rat) bool {
	return a.IsInt() && a.Num().IsInt64() && (a.Num().Int64() == 1 || a.Num().Int64() == -1)
}

func (ratIntegers) Equal(a, b *big.Rat) bool { return a.Cmp(b) == 0 }
func (ratIntegers) Format(a *big.Rat) string { return a.RatString() }
func (ratIntegers) String() string           { return "Z(Q)" }

func (ratIntegers) Capabilities() Capabilities {
	return Capabilities{
		IsIntegralDomain: true,
		Characteristic:   new(big.Int),
		Category:         CategoryGeneric,
	}
}

func (ratIntegers) GCD(a, b *big.Rat) *big.Rat {
	return new(big.Rat).SetInt(new(big.Int).GCD(nil, nil, a.Num(), b.Num()))
}

func (ratIntegers) DivMod(a, b *big.Rat) (*big.Rat, *big.Rat, error) {
	if b.Sign() == 0 {
		return nil, nil, ErrDivisionByZero
	}
	q, m := new(big.Int).DivMod(a.Num(), b.Num(), new(big.Int))
	return new(big.Rat).SetInt(q), new(big.Rat).SetInt(m), nil
}

func (ratIntegers) ExtendedGCD(a, b *big.Rat) (*big.Rat, *big.Rat, *big.Rat) {
	u, v := new(big.Int), new(big.Int)
	g := new(big.Int).GCD(u, v, a.Num(), b.Num())
	return new(big.Rat).SetInt(g), new(big.Rat).SetInt(u), new(big.Rat).SetInt(v)
}

func (ratIntegers) Sign(a *big.Rat) int { return a.Sign() }
