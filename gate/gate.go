// Package gate provides a single-fire release signal.
//
// A Gate starts closed. Any number of goroutines may park on it with Wait;
// the first call to Open releases all of them, and every later Wait returns
// immediately. A Gate cannot be re-armed.
//
//	g := gate.New()
//	go func() {
//	    g.Wait() // suspended until released
//	    doWork()
//	}()
//	prepare()
//	g.Open()
package gate

import (
	"context"
	"sync"
	"time"
)

// Gate is a one-shot synchronization point with one opener and many waiters.
// The zero value is not usable; create gates with New.
type Gate struct {
	once sync.Once
	ch   chan struct{}
}

// New returns a closed gate.
func New() *Gate {
	return &Gate{ch: make(chan struct{})}
}

// Open releases every current and future waiter. Calling Open more than once
// is harmless.
func (g *Gate) Open() {
	g.once.Do(func() {
		close(g.ch)
	})
}

// Wait blocks until the gate is opened.
func (g *Gate) Wait() {
	<-g.ch
}

// WaitContext blocks until the gate is opened or ctx is done, in which case
// the context's error is returned.
func (g *Gate) WaitContext(ctx context.Context) error {
	select {
	case <-g.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitTimeout is WaitContext with a relative deadline.
func (g *Gate) WaitTimeout(d time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return g.WaitContext(ctx)
}

// Done returns a channel that is closed when the gate opens.
func (g *Gate) Done() <-chan struct{} {
	return g.ch
}

// IsOpen reports whether Open has been called.
func (g *Gate) IsOpen() bool {
	select {
	case <-g.ch:
		return true
	default:
		return false
	}
}
