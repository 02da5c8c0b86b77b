package poly

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"unicode"
)

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("polynomial syntax error")

// MaxExponent bounds the exponents accepted by Parse.
const MaxExponent = 1 << 12

// Parse reads a polynomial such as "x^2 + 3/2*x*y - (y - 1)^2".
//
// Supported: integers and a/b fractions (mapped through FromBigInt and
// Divide), variables of r, + - * ^, parentheses and juxtaposition.
// Identifiers that are not variables of r are handed to the coefficient
// ring when it can parse them, which allows polynomial coefficients.
func (r *Ring[C]) Parse(s string) (*Polynomial[C], error) {
	p := &parser[C]{r: r, src: []rune(s)}
	out, err := p.expr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected %q", string(p.src[p.pos]))
	}
	return out, nil
}

// MustParse is like Parse but panics on error.
func (r *Ring[C]) MustParse(s string) *Polynomial[C] {
	p, err := r.Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseAll parses every string, stopping at the first error.
func (r *Ring[C]) ParseAll(ss ...string) ([]*Polynomial[C], error) {
	out := make([]*Polynomial[C], len(ss))
	for i, s := range ss {
		p, err := r.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("polynomial %d: %w", i, err)
		}
		out[i] = p
	}
	return out, nil
}

type parser[C any] struct {
	r   *Ring[C]
	src []rune
	pos int
}

func (p *parser[C]) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser[C]) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser[C]) peek() rune {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

// expr := [+|-] term {(+|-) term}
func (p *parser[C]) expr() (*Polynomial[C], error) {
	neg := false
	switch p.peek() {
	case '-':
		neg = true
		p.pos++
	case '+':
		p.pos++
	}
	acc, err := p.term()
	if err != nil {
		return nil, err
	}
	if neg {
		acc = acc.Neg()
	}
	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return acc, nil
		}
		p.pos++
		t, err := p.term()
		if err != nil {
			return nil, err
		}
		if op == '+' {
			acc = acc.Add(t)
		} else {
			acc = acc.Sub(t)
		}
	}
}

// term := factor {[*] factor}
func (p *parser[C]) term() (*Polynomial[C], error) {
	acc, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		c := p.peek()
		if c == '*' {
			p.pos++
		} else if !startsFactor(c) {
			return acc, nil
		}
		f, err := p.factor()
		if err != nil {
			return nil, err
		}
		acc = acc.Mul(f)
	}
}

func isDigit(c rune) bool { return '0' <= c && c <= '9' }

func startsFactor(c rune) bool {
	return c == '(' || isDigit(c) || unicode.IsLetter(c)
}

// factor := atom [^ integer]
func (p *parser[C]) factor() (*Polynomial[C], error) {
	base, err := p.atom()
	if err != nil {
		return nil, err
	}
	if p.peek() != '^' {
		return base, nil
	}
	p.pos++
	p.skipSpace()
	digits := p.digits()
	if digits == "" {
		return nil, p.errorf("exponent expected")
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil, p.errorf("exponent %s: %v", digits, err)
	}
	if n > MaxExponent {
		return nil, p.errorf("exponent %d exceeds %d", n, MaxExponent)
	}
	return pow(p.r.One(), base, n), nil
}

// pow returns acc*base^n by repeated squaring.
func pow[C any](acc, base *Polynomial[C], n int) *Polynomial[C] {
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			acc = acc.Mul(base)
		}
		if n > 1 {
			base = base.Mul(base)
		}
	}
	return acc
}

func (p *parser[C]) atom() (*Polynomial[C], error) {
	c := p.peek()
	switch {
	case c == '(':
		p.pos++
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, p.errorf("missing )")
		}
		p.pos++
		return inner, nil
	case isDigit(c):
		return p.number()
	case unicode.IsLetter(c):
		return p.identifier()
	case c == 0:
		return nil, p.errorf("unexpected end of input")
	default:
		return nil, p.errorf("unexpected %q", string(c))
	}
}

func (p *parser[C]) digits() string {
	start := p.pos
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

// number := integer [/ integer]
func (p *parser[C]) number() (*Polynomial[C], error) {
	cr := p.r.coeff
	num, ok := new(big.Int).SetString(p.digits(), 10)
	if !ok {
		return nil, p.errorf("malformed integer")
	}
	value := cr.FromBigInt(num)
	if p.peek() != '/' {
		return p.r.Const(value), nil
	}
	p.pos++
	p.skipSpace()
	ds := p.digits()
	if ds == "" {
		return nil, p.errorf("denominator expected")
	}
	den, ok := new(big.Int).SetString(ds, 10)
	if !ok {
		return nil, p.errorf("malformed denominator %q", ds)
	}
	q, err := cr.Divide(value, cr.FromBigInt(den))
	if err != nil {
		return nil, p.errorf("%s/%s in %s: %v", num, den, cr, err)
	}
	return p.r.Const(q), nil
}

func (p *parser[C]) identifier() (*Polynomial[C], error) {
	start := p.pos
	for p.pos < len(p.src) && (unicode.IsLetter(p.src[p.pos]) || isDigit(p.src[p.pos]) || p.src[p.pos] == '_') {
		p.pos++
	}
	name := string(p.src[start:p.pos])
	for i, v := range p.r.vars {
		if v == name {
			return p.r.Var(i), nil
		}
	}
	if cp, ok := p.r.coeff.(interface{ Parse(string) (C, error) }); ok {
		c, err := cp.Parse(name)
		if err == nil {
			return p.r.Const(c), nil
		}
	}
	p.pos = start
	return nil, p.errorf("unknown variable %q", name)
}
