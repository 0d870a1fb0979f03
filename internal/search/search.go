// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search turns an editor selection into a Stack Overflow lookup:
// it validates the query, calls the Stack Exchange search API once, and
// classifies the outcome into a ResultPage or an *Error.
package search

import (
	"context"
	"strings"

	"github.com/pdiddy/stackfind/pkg/types"
)

// Searcher runs one lookup against a question source with the given key.
type Searcher interface {
	Search(ctx context.Context, query, key string) (types.ResultPage, error)
}

// ResolveQuery trims the raw selection. A selection that is empty after
// trimming yields ErrEmptySelection and must not reach the network.
func ResolveQuery(selection string) (string, error) {
	q := strings.TrimSpace(selection)
	if q == "" {
		return "", ErrEmptySelection
	}
	return q, nil
}
