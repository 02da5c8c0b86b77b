package poly

import (
	"strconv"
	"strings"
)

// Monomial is an exponent vector, one entry per ring variable.
// Monomials are values: no method modifies its receiver.
type Monomial []int

// One returns the monomial 1 in n variables.
func One(n int) Monomial { return make(Monomial, n) }

// Degree returns the total degree.
func (m Monomial) Degree() int {
	d := 0
	for _, e := range m {
		d += e
	}
	return d
}

// IsOne reports whether every exponent is zero.
func (m Monomial) IsOne() bool {
	for _, e := range m {
		if e != 0 {
			return false
		}
	}
	return true
}

// Divides reports whether m divides n.
func (m Monomial) Divides(n Monomial) bool {
	for i, e := range m {
		if e > n[i] {
			return false
		}
	}
	return true
}

// Coprime reports whether m and n share no variable.
func (m Monomial) Coprime(n Monomial) bool {
	for i, e := range m {
		if e > 0 && n[i] > 0 {
			return false
		}
	}
	return true
}

func (m Monomial) Mul(n Monomial) Monomial {
	out := make(Monomial, len(m))
	for i, e := range m {
		out[i] = e + n[i]
	}
	return out
}

// Div returns m/n. The caller guarantees that n divides m.
func (m Monomial) Div(n Monomial) Monomial {
	out := make(Monomial, len(m))
	for i, e := range m {
		out[i] = e - n[i]
	}
	return out
}

func (m Monomial) Lcm(n Monomial) Monomial {
	out := make(Monomial, len(m))
	for i, e := range m {
		out[i] = max(e, n[i])
	}
	return out
}

func (m Monomial) Equal(n Monomial) bool {
	if len(m) != len(n) {
		return false
	}
	for i, e := range m {
		if e != n[i] {
			return false
		}
	}
	return true
}

// format renders m with the given variable names, e.g. "x^2*y".
func (m Monomial) format(vars []string) string {
	var sb strings.Builder
	for i, e := range m {
		if e == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('*')
		}
		sb.WriteString(vars[i])
		if e > 1 {
			sb.WriteByte('^')
			sb.WriteString(strconv.Itoa(e))
		}
	}
	return sb.String()
}
