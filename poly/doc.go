// Package poly implements sparse multivariate polynomials over a ring.Ring.
//
// A Ring fixes the coefficient ring, the variable names and the monomial
// order; its polynomials are immutable and keep their terms sorted in
// descending order, so leading terms are O(1):
//
//	r := poly.NewRing[*big.Rat](ring.Rationals{}, []string{"x", "y"}, poly.Lex)
//	f := r.MustParse("x^2 + y^2 - 1")
//	g := r.MustParse("x - y")
//	fmt.Println(f.Sub(g.Mul(g))) // 2*x*y - 1
//
// Because *Ring[C] implements ring.Ring[*Polynomial[C]], polynomial rings
// nest: the coefficients of one ring may be polynomials of another.
package poly
