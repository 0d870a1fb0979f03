// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package panel

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/stackfind/internal/metrics"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestRegistry(t *testing.T, ttl time.Duration, max int) (*Registry, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	r := New(context.Background(), ttl, max, nil)
	r.now = clock.Now
	t.Cleanup(r.Stop)
	return r, clock
}

func TestOpenShowGet(t *testing.T) {
	r, _ := newTestRegistry(t, time.Minute, 10)

	p, err := r.Open(context.Background(), "01A", "npe")
	require.NoError(t, err)

	snap, ok := r.Get("01A")
	require.True(t, ok)
	assert.Equal(t, "npe", snap.Title)
	assert.Empty(t, snap.Doc)
	assert.Equal(t, 0, snap.Version)

	require.NoError(t, p.Show("<p>loading</p>"))
	require.NoError(t, p.Show("<p>done</p>"))

	snap, ok = r.Get("01A")
	require.True(t, ok)
	assert.Equal(t, "<p>done</p>", snap.Doc)
	assert.Equal(t, 2, snap.Version)
}

func TestGetMissing(t *testing.T) {
	r, _ := newTestRegistry(t, time.Minute, 10)
	_, ok := r.Get("nope")
	assert.False(t, ok)
}

func TestClose(t *testing.T) {
	r, _ := newTestRegistry(t, time.Minute, 10)
	p, err := r.Open(context.Background(), "01A", "q")
	require.NoError(t, err)

	assert.True(t, r.Close("01A"))
	assert.False(t, r.Close("01A"))

	_, ok := r.Get("01A")
	assert.False(t, ok)
	assert.ErrorIs(t, p.Show("late result"), ErrClosed)
}

func TestExpiry(t *testing.T) {
	r, clock := newTestRegistry(t, time.Minute, 10)
	p, err := r.Open(context.Background(), "01A", "q")
	require.NoError(t, err)

	clock.Advance(50 * time.Second)
	require.NoError(t, p.Show("doc"), "show refreshes the ttl")

	clock.Advance(50 * time.Second)
	_, ok := r.Get("01A")
	assert.True(t, ok)

	clock.Advance(61 * time.Second)
	_, ok = r.Get("01A")
	assert.False(t, ok)

	r.removeExpired()
	assert.Equal(t, 0, r.Len())
}

func TestGetRefreshesExpiry(t *testing.T) {
	r, clock := newTestRegistry(t, time.Minute, 10)
	p, err := r.Open(context.Background(), "01A", "q")
	require.NoError(t, err)
	require.NoError(t, p.Show("doc"))

	for i := 0; i < 5; i++ {
		clock.Advance(40 * time.Second)
		_, ok := r.Get("01A")
		require.True(t, ok, "poll %d", i)
	}

	clock.Advance(61 * time.Second)
	_, ok := r.Get("01A")
	assert.False(t, ok)
}

func TestEvictsOldestAtCapacity(t *testing.T) {
	r, clock := newTestRegistry(t, time.Hour, 3)
	for i := 0; i < 4; i++ {
		_, err := r.Open(context.Background(), fmt.Sprintf("p%d", i), "q")
		require.NoError(t, err)
		clock.Advance(time.Second)
	}

	assert.Equal(t, 3, r.Len())
	_, ok := r.Get("p0")
	assert.False(t, ok, "oldest evicted")
	for _, id := range []string{"p1", "p2", "p3"} {
		_, ok := r.Get(id)
		assert.True(t, ok, id)
	}
}

func TestOpenPanelsGauge(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	r := New(context.Background(), time.Minute, 10, m)
	defer r.Stop()

	_, _ = r.Open(context.Background(), "a", "q")
	_, _ = r.Open(context.Background(), "b", "q")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.OpenPanels))

	r.Close("a")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OpenPanels))
}

func TestStopIsIdempotent(t *testing.T) {
	r := New(context.Background(), time.Minute, 1, nil)
	r.Stop()
	assert.NotPanics(t, r.Stop)
}
