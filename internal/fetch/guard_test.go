package fetch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardLatestWins(t *testing.T) {
	var g Guard
	var state string

	first, firstCtx := g.Begin(context.Background())
	second, secondCtx := g.Begin(context.Background())

	assert.ErrorIs(t, firstCtx.Err(), context.Canceled)
	assert.NoError(t, secondCtx.Err())
	assert.False(t, g.Current(first))
	assert.True(t, g.Current(second))

	assert.True(t, g.Commit(second, func() { state = "round 6" }))
	assert.False(t, g.Commit(first, func() { state = "round 5" }))
	assert.Equal(t, "round 6", state)
}

func TestGuardDoneReleasesContext(t *testing.T) {
	var g Guard

	ticket, ctx := g.Begin(context.Background())
	g.Done(ticket)

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.True(t, g.Current(ticket))
}

func TestGuardDoneIgnoresStaleTicket(t *testing.T) {
	var g Guard

	stale, _ := g.Begin(context.Background())
	_, ctx := g.Begin(context.Background())
	g.Done(stale)

	assert.NoError(t, ctx.Err())
}

func TestKeyedGuardIsolatesKeys(t *testing.T) {
	var k KeyedGuard[int64]

	ga, a, actx := k.Begin(context.Background(), 1)
	gb, _, _ := k.Begin(context.Background(), 2)

	assert.NotSame(t, ga, gb)
	assert.True(t, ga.Current(a))
	assert.NoError(t, actx.Err())
	assert.Equal(t, 2, k.Len())
}

func TestKeyedGuardSupersedesWithinKey(t *testing.T) {
	var k KeyedGuard[int64]

	g1, first, firstCtx := k.Begin(context.Background(), 1)
	g2, second, _ := k.Begin(context.Background(), 1)

	assert.Same(t, g1, g2)
	assert.ErrorIs(t, firstCtx.Err(), context.Canceled)
	assert.False(t, g1.Commit(first, func() {}))
	assert.True(t, g2.Commit(second, func() {}))
}

func TestKeyedGuardEvictsSettledKeys(t *testing.T) {
	var k KeyedGuard[int64]

	stale, first, _ := k.Begin(context.Background(), 1)
	g, second, _ := k.Begin(context.Background(), 1)

	k.Done(1, stale, first)
	assert.Equal(t, 1, k.Len(), "a superseded ticket must not evict the key")

	k.Done(1, g, second)
	assert.Zero(t, k.Len())

	fresh, ticket, _ := k.Begin(context.Background(), 1)
	assert.NotSame(t, g, fresh)
	assert.False(t, g.Commit(first, func() {}), "tickets from an evicted guard stay stale")
	assert.True(t, fresh.Commit(ticket, func() {}))
}
