// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keys dispenses Stack Exchange API keys in round-robin order.
//
// A Pool is owned by whoever constructs it (the CLI process or the serve
// bridge) and lives as long as that owner. The cursor advances on every
// successful Next, before the caller knows whether the request it feeds
// will succeed, so rotation counts calls rather than successes.
package keys

import (
	"strings"
	"sync"

	"github.com/pdiddy/stackfind/internal/search"
)

// Pool is an ordered credential list with a rotation cursor.
type Pool struct {
	mu     sync.Mutex
	keys   []string
	cursor int
}

// NewPool returns a pool over keys in the given order. Entries that are
// blank after trimming are dropped.
func NewPool(keys []string) *Pool {
	clean := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			clean = append(clean, k)
		}
	}
	return &Pool{keys: clean}
}

// Next returns the key at the cursor and advances the cursor modulo the pool
// length. An empty pool returns search.ErrMissingCredential and leaves the
// cursor alone.
func (p *Pool) Next() (string, error) {
	_, key, err := p.NextIndexed()
	return key, err
}

// NextIndexed is Next plus the index of the dispensed key, for logging
// without exposing the key itself.
func (p *Pool) NextIndexed() (int, string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.keys) == 0 {
		return -1, "", search.ErrMissingCredential
	}
	idx := p.cursor
	p.cursor = (p.cursor + 1) % len(p.keys)
	return idx, p.keys[idx], nil
}

// Len returns the number of configured keys.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.keys)
}

// Cursor returns the index the next call to Next will dispense.
func (p *Pool) Cursor() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

// Reset rewinds the cursor to the first key.
func (p *Pool) Reset() {
	p.mu.Lock()
	p.cursor = 0
	p.mu.Unlock()
}

// Masked returns the keys with all but the last four characters hidden.
func (p *Pool) Masked() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, len(p.keys))
	for i, k := range p.keys {
		out[i] = Mask(k)
	}
	return out
}

// Mask hides all but the last four characters of key.
func Mask(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
