package lifecycle

import (
	"context"
	"sync"
)

// Lifecycle tracks the background goroutines of a device so Stop can wait for them.
type Lifecycle struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(ctx context.Context) *Lifecycle {
	ctx, cancel := context.WithCancel(ctx)
	return &Lifecycle{ctx: ctx, cancel: cancel}
}

// Go runs fn in a goroutine counted by Stop.
func (lc *Lifecycle) Go(fn func()) {
	lc.wg.Add(1)
	go func() {
		defer lc.wg.Done()
		fn()
	}()
}

func (lc *Lifecycle) ShouldStop() bool {
	select {
	case <-lc.ctx.Done():
		return true
	default:
		return false
	}
}

func (lc *Lifecycle) Context() context.Context {
	return lc.ctx
}

func (lc *Lifecycle) Stop() {
	lc.cancel()
	lc.wg.Wait()
}
