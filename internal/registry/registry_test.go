package registry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestRegistry_GetOrCreate(t *testing.T) {
	r := New[*int](time.Minute)

	builds := 0
	create := func() *int {
		builds++
		v := builds
		return &v
	}

	first, created := r.GetOrCreate("a", create)
	require.True(t, created)
	second, created := r.GetOrCreate("a", create)
	assert.False(t, created)
	assert.Same(t, first, second)
	assert.Equal(t, 1, builds)

	_, ok := r.Get("b")
	assert.False(t, ok)

	r.Delete("a")
	assert.Zero(t, r.Len())
}

func TestRegistry_Sweep(t *testing.T) {
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := New[string](10 * time.Minute)
	r.now = c.now

	r.GetOrCreate("idle", func() string { return "x" })
	r.GetOrCreate("active", func() string { return "y" })

	c.advance(8 * time.Minute)
	_, ok := r.Get("active")
	require.True(t, ok)

	c.advance(5 * time.Minute)
	assert.Equal(t, 1, r.Sweep())

	_, ok = r.Get("idle")
	assert.False(t, ok)
	_, ok = r.Get("active")
	assert.True(t, ok)
}

func TestRegistry_RunStopsOnCancel(t *testing.T) {
	r := New[string](time.Nanosecond)
	r.GetOrCreate("a", func() string { return "x" })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	<-done
}
