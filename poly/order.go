package poly

import (
	"fmt"
	"strings"
)

// Order is an admissible monomial order. Variables are ranked in the order
// the ring lists them, so the first variable is the largest.
type Order int

const (
	// Lex compares exponents left to right.
	Lex Order = iota

	// GrLex compares total degree first, then lexicographically.
	GrLex

	// GRevLex compares total degree first; ties go to the monomial with
	// the smaller exponent in the last differing variable.
	GRevLex
)

// Compare returns -1, 0 or +1 as a is smaller than, equal to or greater than b.
func (o Order) Compare(a, b Monomial) int {
	switch o {
	case GrLex:
		if c := cmpInt(a.Degree(), b.Degree()); c != 0 {
			return c
		}
		return lex(a, b)
	case GRevLex:
		if c := cmpInt(a.Degree(), b.Degree()); c != 0 {
			return c
		}
		for i := len(a) - 1; i >= 0; i-- {
			if a[i] != b[i] {
				return cmpInt(b[i], a[i])
			}
		}
		return 0
	default:
		return lex(a, b)
	}
}

func lex(a, b Monomial) int {
	for i := range a {
		if a[i] != b[i] {
			return cmpInt(a[i], b[i])
		}
	}
	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (o Order) String() string {
	switch o {
	case Lex:
		return "lex"
	case GrLex:
		return "grlex"
	case GRevLex:
		return "grevlex"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// ParseOrder maps "lex", "grlex" and "grevlex" (case-insensitive) to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lex":
		return Lex, nil
	case "grlex", "deglex":
		return GrLex, nil
	case "grevlex", "degrevlex":
		return GRevLex, nil
	default:
		return Lex, fmt.Errorf("unknown term order %q", s)
	}
}
