// Package registry keeps per-visitor in-memory state, dropping entries that have
// not been touched for an idle period.
package registry

import (
	"context"
	"sync"
	"time"
)

type entry[T any] struct {
	value    T
	lastSeen time.Time
}

type Registry[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]
	idleTTL time.Duration
	now     func() time.Time
}

func New[T any](idleTTL time.Duration) *Registry[T] {
	return &Registry[T]{
		entries: make(map[string]*entry[T]),
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// GetOrCreate returns the value for key, building it with create when absent.
// created reports whether this call built it.
func (r *Registry[T]) GetOrCreate(key string, create func() T) (value T, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[key]; ok {
		e.lastSeen = r.now()
		return e.value, false
	}

	e := &entry[T]{value: create(), lastSeen: r.now()}
	r.entries[key] = e
	return e.value, true
}

func (r *Registry[T]) Get(key string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	e.lastSeen = r.now()
	return e.value, true
}

func (r *Registry[T]) Delete(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
}

func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep drops entries idle for longer than the TTL and returns how many were dropped.
func (r *Registry[T]) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idleTTL)
	dropped := 0
	for key, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, key)
			dropped++
		}
	}
	return dropped
}

// Run sweeps every interval until ctx is done.
func (r *Registry[T]) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
