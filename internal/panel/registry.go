// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package panel holds the HTML panels opened through the serve bridge until
// the editor fetches or closes them. Panels expire after a TTL of
// inactivity (no Show or Get) and the registry is bounded; the oldest panel
// goes first.
package panel

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pdiddy/stackfind/internal/lookup"
	"github.com/pdiddy/stackfind/internal/metrics"
)

// ErrClosed is returned by Show once the panel was closed or evicted.
var ErrClosed = errors.New("panel closed")

// cleanupInterval is how often expired panels are swept.
var cleanupInterval = time.Minute

// Snapshot is a read-only copy of a panel.
type Snapshot struct {
	ID        string
	Title     string
	Doc       string
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type entry struct {
	Snapshot
	expiresAt time.Time
}

// Registry is an in-memory, TTL-bounded set of panels.
type Registry struct {
	mu       sync.RWMutex
	items    map[string]*entry
	ttl      time.Duration
	max      int
	metrics  *metrics.Metrics
	now      func() time.Time
	stopChan chan struct{}
	stopped  bool
}

// New starts a registry whose janitor stops when ctx is done or Stop is called.
func New(ctx context.Context, ttl time.Duration, max int, m *metrics.Metrics) *Registry {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if max <= 0 {
		max = 256
	}
	r := &Registry{
		items:    make(map[string]*entry),
		ttl:      ttl,
		max:      max,
		metrics:  m,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	go r.cleanup(ctx)
	return r
}

// Open creates an empty panel under id. It implements lookup.Display.
func (r *Registry) Open(_ context.Context, id, title string) (lookup.Panel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok && len(r.items) >= r.max {
		r.evictOldestLocked()
	}
	now := r.now()
	r.items[id] = &entry{
		Snapshot:  Snapshot{ID: id, Title: title, CreatedAt: now, UpdatedAt: now},
		expiresAt: now.Add(r.ttl),
	}
	r.metrics.SetOpenPanels(len(r.items))
	return &handle{registry: r, id: id}, nil
}

// Get returns the panel under id unless it is missing or expired. A
// successful Get counts as activity and pushes the expiry back.
func (r *Registry) Get(id string) (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]
	now := r.now()
	if !ok || now.After(e.expiresAt) {
		return Snapshot{}, false
	}
	e.expiresAt = now.Add(r.ttl)
	return e.Snapshot, true
}

// Close discards the panel under id and reports whether it existed.
func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[id]
	delete(r.items, id)
	r.metrics.SetOpenPanels(len(r.items))
	return ok
}

// Len returns the number of panels held, expired or not.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Stop ends the janitor goroutine.
func (r *Registry) Stop() {
	r.mu.Lock()
	if !r.stopped {
		r.stopped = true
		close(r.stopChan)
	}
	r.mu.Unlock()
}

func (r *Registry) show(id, doc string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]
	if !ok {
		return ErrClosed
	}
	now := r.now()
	e.Doc = doc
	e.Version++
	e.UpdatedAt = now
	e.expiresAt = now.Add(r.ttl)
	return nil
}

func (r *Registry) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, e := range r.items {
		if oldestID == "" || e.CreatedAt.Before(oldest) {
			oldestID, oldest = id, e.CreatedAt
		}
	}
	delete(r.items, oldestID)
}

func (r *Registry) cleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopChan:
			return
		case <-ticker.C:
			r.removeExpired()
		}
	}
}

func (r *Registry) removeExpired() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, e := range r.items {
		if now.After(e.expiresAt) {
			delete(r.items, id)
		}
	}
	r.metrics.SetOpenPanels(len(r.items))
}

type handle struct {
	registry *Registry
	id       string
}

func (h *handle) Show(doc string) error {
	return h.registry.show(h.id, doc)
}
