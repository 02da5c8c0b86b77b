// Package pairs maintains the critical pairs of a growing polynomial basis.
//
// A List owns the basis: appending a polynomial pairs it with every earlier
// element, and RemoveNext hands out pairs one at a time in the order chosen
// by the StrategyType. All methods are safe for concurrent use; a single
// mutex guards the basis and the pair queue together, so an append and the
// pairs it creates become visible atomically.
package pairs

import (
	"container/heap"
	"fmt"
	"sync"

	"github.com/utkarsh5026/groebner/poly"
)

// StrategyType selects the order in which pairs are handed out.
type StrategyType int

const (
	// Normal picks the pair with the smallest lcm degree, oldest first.
	Normal StrategyType = iota

	// Sugar picks the pair with the smallest sugar degree, oldest first.
	Sugar

	// FIFO hands out pairs in creation order.
	FIFO
)

func (s StrategyType) String() string {
	switch s {
	case Normal:
		return "normal"
	case Sugar:
		return "sugar"
	case FIFO:
		return "fifo"
	default:
		return fmt.Sprintf("StrategyType(%d)", int(s))
	}
}

// ParseStrategy maps a strategy name to its StrategyType.
func ParseStrategy(s string) (StrategyType, error) {
	switch s {
	case "", "normal":
		return Normal, nil
	case "sugar":
		return Sugar, nil
	case "fifo":
		return FIFO, nil
	default:
		return Normal, fmt.Errorf("unknown pair strategy %q", s)
	}
}

// Pair is a critical pair (I, J) with I < J.
type Pair[C any] struct {
	I, J        int
	Left, Right *poly.Polynomial[C]

	// LCM is the lcm of the two leading monomials, Degree its total degree.
	LCM    poly.Monomial
	Degree int
	Sugar  int

	seq int64
}

// Stats counts pairs over the lifetime of a List.
type Stats struct {
	Generated int
	Discarded int
	Selected  int
}

// List is the pair set together with the basis it indexes.
type List[C any] struct {
	mu       sync.Mutex
	criteria bool

	basis []*poly.Polynomial[C]
	sugar []int
	queue *pairQueue[C]

	// pending holds every pair that was queued and not yet selected.
	pending map[[2]int]struct{}
	seq     int64
	stats   Stats
}

// NewList creates an empty pair list. With criteria enabled, pairs with
// coprime leading monomials are discarded at insertion and the chain
// criterion is checked at selection.
func NewList[C any](strategy StrategyType, criteria bool) *List[C] {
	return &List[C]{
		criteria: criteria,
		queue:    newPairQueue(lessFunc[C](strategy)),
		pending:  make(map[[2]int]struct{}),
	}
}

// Put appends p to the basis and pairs it with every earlier element.
// It returns the index of p, or -1 if p is zero.
func (l *List[C]) Put(p *poly.Polynomial[C]) int {
	if p.IsZero() {
		return -1
	}
	return l.PutWithSugar(p, p.Degree())
}

// PutWithSugar is Put with an explicit sugar degree for p.
func (l *List[C]) PutWithSugar(p *poly.Polynomial[C], sugar int) int {
	if p.IsZero() {
		return -1
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	j := len(l.basis)
	l.basis = append(l.basis, p)
	l.sugar = append(l.sugar, sugar)

	lmj := p.LeadingMonomial()
	for i := 0; i < j; i++ {
		lmi := l.basis[i].LeadingMonomial()
		l.stats.Generated++
		if l.criteria && lmi.Coprime(lmj) {
			l.stats.Discarded++
			continue
		}
		lcm := lmi.Lcm(lmj)
		deg := lcm.Degree()
		s := max(l.sugar[i]-lmi.Degree(), sugar-lmj.Degree()) + deg
		heap.Push(l.queue, &Pair[C]{
			I: i, J: j,
			Left: l.basis[i], Right: p,
			LCM: lcm, Degree: deg, Sugar: s,
			seq: l.seq,
		})
		l.seq++
		l.pending[[2]int{i, j}] = struct{}{}
	}
	return j
}

// RemoveNext pops the next pair that survives the chain criterion. The
// boolean is false when no pair is left.
func (l *List[C]) RemoveNext() (*Pair[C], bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for l.queue.Len() > 0 {
		p, ok := heap.Pop(l.queue).(*Pair[C])
		if !ok {
			panic("pairs.List.RemoveNext: invalid type assertion")
		}
		delete(l.pending, [2]int{p.I, p.J})
		if l.criteria && l.chainable(p) {
			l.stats.Discarded++
			continue
		}
		l.stats.Selected++
		return p, true
	}
	return nil, false
}

// chainable reports whether some other basis element k has a leading
// monomial dividing the pair's lcm while (i, k) and (j, k) are both
// already resolved.
func (l *List[C]) chainable(p *Pair[C]) bool {
	for k, g := range l.basis {
		if k == p.I || k == p.J {
			continue
		}
		if !g.LeadingMonomial().Divides(p.LCM) {
			continue
		}
		if l.isPending(p.I, k) || l.isPending(p.J, k) {
			continue
		}
		return true
	}
	return false
}

func (l *List[C]) isPending(a, b int) bool {
	if a > b {
		a, b = b, a
	}
	_, ok := l.pending[[2]int{a, b}]
	return ok
}

// Size returns the number of queued pairs.
func (l *List[C]) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.queue.Len()
}

// Len returns the number of basis elements.
func (l *List[C]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.basis)
}

// Basis returns a snapshot of the basis. The basis is append-only, so the
// snapshot stays valid while other goroutines keep appending.
func (l *List[C]) Basis() []*poly.Polynomial[C] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.basis[:len(l.basis):len(l.basis)]
}

func (l *List[C]) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}
