package engine

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/utkarsh5026/groebner/internal/cpu"
	"github.com/utkarsh5026/groebner/internal/pairs"
	"github.com/utkarsh5026/groebner/internal/reduction"
	"github.com/utkarsh5026/groebner/poly"
	"github.com/utkarsh5026/groebner/ring"
)

// Parallel runs Buchberger's algorithm with a fixed number of workers that
// share one pair list. Reductions run outside any lock against a snapshot
// of the basis; appends and the pairs they create go through the list.
type Parallel[C any] struct {
	*core[C]
	workers int
}

var _ Engine[int] = (*Parallel[int])(nil)

// NewFieldParallel returns the parallel engine for coefficient fields.
func NewFieldParallel[C any](coeff ring.Ring[C], opts Options) *Parallel[C] {
	name := fmt.Sprintf("field-parallel(%d)", opts.workers())
	return &Parallel[C]{
		core:    newCore(name, coeff, fieldKind, reduction.Field[C]{}, true, opts),
		workers: opts.workers(),
	}
}

// NewPseudoParallel returns the parallel pseudo-reduction engine.
func NewPseudoParallel[C any](coeff ring.Ring[C], opts Options) *Parallel[C] {
	name := fmt.Sprintf("pseudo-parallel(%d)", opts.workers())
	return &Parallel[C]{
		core:    newCore(name, coeff, pseudoKind, reduction.Pseudo[C]{}, true, opts),
		workers: opts.workers(),
	}
}

// Workers returns the number of workers.
func (e *Parallel[C]) Workers() int { return e.workers }

// runState tracks termination. The run is over when the pair list is
// empty and no worker holds a pair: an active worker may still append
// polynomials and thereby create new pairs.
type runState struct {
	mu     sync.Mutex
	cond   *sync.Cond
	active int
	done   bool
	unit   bool
}

func newRunState() *runState {
	s := &runState{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// next blocks until a pair is available, the run is finished or ctx is done.
func next[C any](ctx context.Context, s *runState, list *pairs.List[C]) (*pairs.Pair[C], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if s.done || ctx.Err() != nil {
			return nil, false
		}
		if p, ok := list.RemoveNext(); ok {
			s.active++
			return p, true
		}
		if s.active == 0 {
			s.done = true
			s.cond.Broadcast()
			return nil, false
		}
		s.cond.Wait()
	}
}

// release marks a pair as finished and wakes idle workers, which may find
// new pairs or detect termination.
func (s *runState) release() {
	s.mu.Lock()
	s.active--
	s.cond.Broadcast()
	s.mu.Unlock()
}

// finishUnit stops the run because the ideal is the whole ring.
func (s *runState) finishUnit() {
	s.mu.Lock()
	s.unit = true
	s.done = true
	s.cond.Broadcast()
	s.mu.Unlock()
}

func (s *runState) wake() {
	s.mu.Lock()
	s.cond.Broadcast()
	s.mu.Unlock()
}

// ComputeBasis runs the workers to completion and minimises the result,
// interreducing with the same number of goroutines. The first worker
// error cancels the others and is returned.
func (e *Parallel[C]) ComputeBasis(ctx context.Context, gens []*poly.Polynomial[C]) ([]*poly.Polynomial[C], error) {
	if err := checkCancelled(ctx, e.name); err != nil {
		return nil, err
	}
	initial, unit, err := e.prepare(gens)
	if err != nil {
		return nil, err
	}
	if unit {
		return e.unitBasis(gens[0].Ring()), nil
	}
	if len(initial) == 0 {
		return []*poly.Polynomial[C]{}, nil
	}

	list := pairs.NewList[C](e.opts.Strategy, e.criteria)
	for _, g := range initial {
		list.Put(g)
	}
	e.log.Debug("Starting parallel basis computation",
		zap.Int("workers", e.workers),
		zap.Int("generators", len(initial)),
		zap.Int("pairs", list.Size()))

	state := newRunState()
	g, gctx := errgroup.WithContext(ctx)
	stop := context.AfterFunc(gctx, state.wake)
	defer stop()

	prog := newProgress(e.opts, e.log)
	for id := range e.workers {
		g.Go(func() error { return e.worker(gctx, id, list, state, prog) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := checkCancelled(ctx, e.name); err != nil {
		return nil, err
	}
	if state.unit {
		return e.unitBasis(initial[0].Ring()), nil
	}

	stats := list.Stats()
	e.log.Debug("Workers finished",
		zap.Int("basis", list.Len()),
		zap.Int("pairs", stats.Generated),
		zap.Int("discarded", stats.Discarded))
	return e.minimize(ctx, list.Basis(), e.workers)
}

// worker processes pairs until the run ends. Panics are returned as errors.
func (e *Parallel[C]) worker(ctx context.Context, id int, list *pairs.List[C], state *runState, prog *progress) (err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("worker %d panic: %v\nstack trace:\n%s", id, r, buf[:n])
		}
	}()
	if e.opts.PinWorkers {
		defer cpu.SetupWorkerAffinity(id)()
	}

	log := e.log.With(zap.Int("worker", id))
	for {
		pair, ok := next(ctx, state, list)
		if !ok {
			return checkCancelled(ctx, e.name)
		}
		done, err := e.process(pair, list, log)
		if err != nil {
			return err
		}
		if done {
			state.finishUnit()
			return nil
		}
		state.release()
		prog.report(list.Len(), list.Size())
	}
}

// process reduces the critical polynomials of one pair against a snapshot
// and appends the nonzero normal forms. It reports true when a unit was
// found.
func (e *Parallel[C]) process(pair *pairs.Pair[C], list *pairs.List[C], log *zap.Logger) (bool, error) {
	crit, err := e.critical(pair)
	if err != nil {
		return false, err
	}
	for _, h := range crit {
		nf, err := e.NormalForm(list.Basis(), h)
		if err != nil {
			return false, err
		}
		if nf.IsZero() {
			continue
		}
		if nf, err = e.normalize(nf); err != nil {
			return false, asEngineError(e.coeff, "normalize", err)
		}
		if e.isUnit(nf) {
			return true, nil
		}
		idx := list.PutWithSugar(nf, max(pair.Sugar, nf.Degree()))
		log.Debug("Accepted polynomial", zap.Int("index", idx), zap.Stringer("poly", nf))
	}
	return false, nil
}
