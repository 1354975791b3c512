package fetch

import (
	"context"
	"sync"
)

// Ticket identifies one generation of work started through a Guard.
type Ticket uint64

// Guard keeps only the latest generation of work committable. Starting a new
// generation cancels the context of the previous one, so a late response from
// superseded parameters can never overwrite newer state.
type Guard struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func (g *Guard) Begin(ctx context.Context) (Ticket, context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel != nil {
		g.cancel()
	}
	g.gen++
	ctx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	return Ticket(g.gen), ctx
}

func (g *Guard) Current(t Ticket) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return uint64(t) == g.gen
}

// Commit runs fn only when t is still the latest generation. It holds the
// guard while fn runs, so a concurrent Begin cannot interleave with the commit.
func (g *Guard) Commit(t Ticket, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if uint64(t) != g.gen {
		return false
	}
	fn()
	return true
}

// Done releases the context of t once its work has settled. It is a no-op for
// superseded tickets.
func (g *Guard) Done(t Ticket) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if uint64(t) == g.gen && g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

// KeyedGuard holds an independent Guard per key, e.g. per chat. A key is
// forgotten once its latest generation is done.
type KeyedGuard[K comparable] struct {
	mu     sync.Mutex
	guards map[K]*Guard
}

// Begin starts a new generation for key, cancelling the previous one, and
// returns the guard the ticket belongs to. Commit and Done go through that
// guard so a ticket never matches a guard created after eviction.
func (k *KeyedGuard[K]) Begin(ctx context.Context, key K) (*Guard, Ticket, context.Context) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.guards == nil {
		k.guards = make(map[K]*Guard)
	}
	g, ok := k.guards[key]
	if !ok {
		g = &Guard{}
		k.guards[key] = g
	}
	t, ctx := g.Begin(ctx)
	return g, t, ctx
}

// Done settles t and drops key when t was its latest generation.
func (k *KeyedGuard[K]) Done(key K, g *Guard, t Ticket) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if g.Current(t) && k.guards[key] == g {
		delete(k.guards, key)
	}
	g.Done(t)
}

// Len reports how many keys have work in flight.
func (k *KeyedGuard[K]) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.guards)
}
