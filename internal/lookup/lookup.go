// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lookup drives one "search highlighted text" invocation:
//
//	Idle → QueryExtracted → KeyResolved → Loading → {Rendered | ErrorRendered}
//
// A blank selection or an empty key pool ends the run in Aborted straight
// from Idle, before any panel is opened or any request is sent.
package lookup

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/pdiddy/stackfind/internal/keys"
	"github.com/pdiddy/stackfind/internal/metrics"
	"github.com/pdiddy/stackfind/internal/render"
	"github.com/pdiddy/stackfind/internal/search"
	"github.com/pdiddy/stackfind/pkg/types"
)

// State is a step of a single invocation.
type State int

const (
	StateIdle State = iota
	StateQueryExtracted
	StateKeyResolved
	StateLoading
	StateRendered
	StateErrorRendered
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateQueryExtracted:
		return "query_extracted"
	case StateKeyResolved:
		return "key_resolved"
	case StateLoading:
		return "loading"
	case StateRendered:
		return "rendered"
	case StateErrorRendered:
		return "error_rendered"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Result is the terminal record of one invocation.
type Result struct {
	ID    string
	State State
	Query string
	Page  types.ResultPage
	Err   error
}

// Orchestrator runs invocations. Keys is the only state shared between runs.
type Orchestrator struct {
	Keys     *keys.Pool
	Searcher search.Searcher
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
}

// newID returns the invocation id; tests replace it for stable ids.
var newID = func() string { return ulid.Make().String() }

// Run pulls the selection from host, resolves a key, shows the loading
// document, searches once, and replaces the loading document with the
// results or the error. The returned error is Result.Err.
func (o *Orchestrator) Run(ctx context.Context, host Host) (Result, error) {
	res := Result{ID: newID(), State: StateIdle}
	log := o.logger().With(zap.String("lookup_id", res.ID))

	selection, err := host.Selection(ctx)
	if err != nil {
		return o.abort(ctx, host, log, res, fmt.Errorf("reading selection: %w", err))
	}
	query, err := search.ResolveQuery(selection)
	if err != nil {
		return o.abort(ctx, host, log, res, err)
	}
	res.Query = query
	res.State = StateQueryExtracted

	if o.Keys == nil {
		return o.abort(ctx, host, log, res, search.ErrMissingCredential)
	}
	idx, key, err := o.Keys.NextIndexed()
	if err != nil {
		return o.abort(ctx, host, log, res, err)
	}
	res.State = StateKeyResolved
	o.Metrics.RecordKeyRotation(strconv.Itoa(idx))
	log.Debug("key resolved", zap.Int("key_index", idx), zap.Int("pool_size", o.Keys.Len()))

	panel, err := host.Open(ctx, res.ID, query)
	if err != nil {
		return o.abort(ctx, host, log, res, fmt.Errorf("opening panel: %w", err))
	}
	res.State = StateLoading
	if err := panel.Show(render.Loading(query)); err != nil {
		log.Warn("showing loading document", zap.Error(err))
	}

	start := time.Now()
	page, err := o.Searcher.Search(ctx, query, key)
	elapsed := time.Since(start)

	if err != nil {
		kind := search.KindOf(err)
		o.Metrics.RecordSearch(kind.String(), elapsed)
		o.Metrics.RecordLookup(kind.String())
		res.State = StateErrorRendered
		res.Err = err
		log.Info("lookup failed",
			zap.String("kind", kind.String()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		if showErr := panel.Show(render.Error(err)); showErr != nil {
			log.Error("showing error document", zap.Error(showErr))
		}
		return res, err
	}

	o.Metrics.RecordSearch("ok", elapsed)
	o.Metrics.RecordLookup(StateRendered.String())
	res.Page = page
	res.State = StateRendered
	log.Info("lookup rendered",
		zap.Int("results", len(page.Items)),
		zap.Duration("elapsed", elapsed))

	if err := panel.Show(render.Page(page)); err != nil {
		res.Err = fmt.Errorf("showing results: %w", err)
		return res, res.Err
	}
	return res, nil
}

func (o *Orchestrator) abort(ctx context.Context, host Host, log *zap.Logger, res Result, err error) (Result, error) {
	res.State = StateAborted
	res.Err = err
	o.Metrics.RecordLookup(StateAborted.String())
	log.Info("lookup aborted", zap.String("kind", search.KindOf(err).String()), zap.Error(err))
	host.Notify(ctx, err)
	return res, err
}

func (o *Orchestrator) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
