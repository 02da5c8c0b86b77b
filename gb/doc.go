// Package gb computes Gröbner bases of polynomial ideals.
//
// The factory picks an engine from the capabilities of the coefficient
// ring: reduced bases over fields, pseudo-reduction over integral domains
// and other rings, a recursive variant when the coefficients are
// polynomials themselves, and per-factor engines over product rings.
// GetProxy additionally races a sequential and a parallel engine and
// returns whichever finishes first.
//
// Example:
//
//	r := poly.NewRing[*big.Rat](ring.Rationals{}, []string{"x", "y"}, poly.Lex)
//	gens, _ := r.ParseAll("x^2 + y^2 - 1", "x - y")
//
//	e, err := gb.GetProxy[*big.Rat](ring.Rationals{}, gb.WithPairStrategy(gb.PairSugar))
//	if err != nil {
//		log.Fatal(err)
//	}
//	basis, err := e.ComputeBasis(ctx, gens) // [x - y, y^2 - 1/2]
package gb
