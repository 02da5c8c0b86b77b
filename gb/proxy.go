package gb

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/utkarsh5026/groebner/internal/types"
	"github.com/utkarsh5026/groebner/poly"
)

// errRaceDecided is the cancellation cause handed to the losing engine.
var errRaceDecided = errors.New("proxy: other engine finished first")

// errBothFailed marks a race without a winner.
var errBothFailed = errors.New("proxy: both engines failed")

// Proxy runs two engines on the same input and returns the first basis
// produced. Both engines must compute bases of the same ideal; the proxy
// only decides which one finishes first.
type Proxy[C any] struct {
	seq Engine[C]
	par Engine[C]
	log *zap.Logger
}

var _ Engine[int] = (*Proxy[int])(nil)

// NewProxy races seq against par. Verification and normal forms use seq.
func NewProxy[C any](seq, par Engine[C], log *zap.Logger) *Proxy[C] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Proxy[C]{seq: seq, par: par, log: log}
}

func (p *Proxy[C]) String() string {
	return fmt.Sprintf("proxy(%s, %s)", p.seq, p.par)
}

// ComputeBasis starts both engines. The first success cancels the other
// engine, whose result is discarded; ComputeBasis returns once both have
// stopped. It fails only if both engines fail, with the sequential error.
func (p *Proxy[C]) ComputeBasis(ctx context.Context, gens []*poly.Polynomial[C]) ([]*poly.Polynomial[C], error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	future := types.NewFuture[[]*poly.Polynomial[C], string]()
	engines := [2]Engine[C]{p.seq, p.par}
	var errs [2]error
	var wg sync.WaitGroup

	for i, e := range engines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			basis, err := e.ComputeBasis(ctx, gens)
			if err != nil {
				errs[i] = err
				p.log.Debug("Engine failed", zap.Stringer("engine", e), zap.Error(err))
				return
			}
			if future.Complete(types.Result[[]*poly.Polynomial[C], string]{Value: basis, Key: e.String()}) {
				cancel(errRaceDecided)
			}
		}()
	}

	stopped := make(chan struct{})
	go func() {
		wg.Wait()
		future.Complete(types.Result[[]*poly.Polynomial[C], string]{Error: errBothFailed})
		close(stopped)
	}()

	basis, winner, err := future.Get()
	<-stopped
	if err != nil {
		if errs[0] != nil {
			return nil, errs[0]
		}
		return nil, errs[1]
	}
	p.log.Debug("Race decided", zap.String("winner", winner), zap.Int("size", len(basis)))
	return basis, nil
}

// IsGroebnerBasis verifies with the sequential engine.
func (p *Proxy[C]) IsGroebnerBasis(ctx context.Context, basis []*poly.Polynomial[C]) (bool, error) {
	return p.seq.IsGroebnerBasis(ctx, basis)
}

func (p *Proxy[C]) NormalForm(basis []*poly.Polynomial[C], f *poly.Polynomial[C]) (*poly.Polynomial[C], error) {
	return p.seq.NormalForm(basis, f)
}
