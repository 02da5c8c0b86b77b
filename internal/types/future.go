// Package types holds small concurrency primitives shared by the engines
// and the proxy.
package types

import (
	"sync"
	"sync/atomic"
)

// Result is the outcome of an asynchronous computation. Key identifies the
// producer, for example the engine that won a race.
type Result[R, K any] struct {
	Value R
	Key   K
	Error error
}

// Future is a write-once result. Any number of goroutines may wait on it;
// only the first Complete is recorded.
type Future[R, K any] struct {
	result    chan Result[R, K]
	done      chan struct{}
	completed atomic.Bool
	once      sync.Once
	res       Result[R, K]
}

func NewFuture[R, K any]() *Future[R, K] {
	return &Future[R, K]{
		result: make(chan Result[R, K], 1),
		done:   make(chan struct{}),
	}
}

// Complete publishes r and reports whether it was the first result.
// Later calls are ignored.
func (f *Future[R, K]) Complete(r Result[R, K]) bool {
	if !f.completed.CompareAndSwap(false, true) {
		return false
	}
	f.result <- r
	return true
}

func (f *Future[R, K]) settle(r Result[R, K]) {
	f.once.Do(func() {
		f.res = r
		close(f.done)
	})
}

// Get blocks until the result is available. Any number of goroutines may
// call it.
func (f *Future[R, K]) Get() (R, K, error) {
	select {
	case r := <-f.result:
		f.settle(r)
	case <-f.done:
	}
	return f.res.Value, f.res.Key, f.res.Error
}
