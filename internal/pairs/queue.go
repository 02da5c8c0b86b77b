package pairs

// LessFunc reports whether a should be selected before b.
type LessFunc[C any] func(a, b *Pair[C]) bool

// pairQueue is a min-heap of pairs ordered by a LessFunc.
// It implements heap.Interface and is not safe for concurrent use.
type pairQueue[C any] struct {
	items []*Pair[C]
	less  LessFunc[C]
}

func newPairQueue[C any](less LessFunc[C]) *pairQueue[C] {
	return &pairQueue[C]{less: less}
}

func (q *pairQueue[C]) Len() int           { return len(q.items) }
func (q *pairQueue[C]) Less(i, j int) bool { return q.less(q.items[i], q.items[j]) }
func (q *pairQueue[C]) Swap(i, j int)      { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *pairQueue[C]) Push(x any) {
	p, ok := x.(*Pair[C])
	if !ok {
		panic("pairQueue.Push: invalid type assertion")
	}
	q.items = append(q.items, p)
}

func (q *pairQueue[C]) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	return item
}

// lessFunc returns the selection order of a strategy. Every order ends in
// the creation sequence number, so selection is deterministic.
func lessFunc[C any](s StrategyType) LessFunc[C] {
	switch s {
	case Sugar:
		return func(a, b *Pair[C]) bool {
			if a.Sugar != b.Sugar {
				return a.Sugar < b.Sugar
			}
			if a.Degree != b.Degree {
				return a.Degree < b.Degree
			}
			return a.seq < b.seq
		}
	case FIFO:
		return func(a, b *Pair[C]) bool { return a.seq < b.seq }
	default:
		return func(a, b *Pair[C]) bool {
			if a.Degree != b.Degree {
				return a.Degree < b.Degree
			}
			return a.seq < b.seq
		}
	}
}
