// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/stackfind/internal/lookup"
	"github.com/pdiddy/stackfind/internal/search"
)

const htmlContentType = "text/html; charset=utf-8"

type searchRequest struct {
	Selection string `json:"selection"`
}

type searchAccepted struct {
	PanelID  string `json:"panel_id"`
	Location string `json:"location"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// handleSearchAsync opens a panel showing the loading document and answers
// 202 as soon as the lookup reaches Loading. The search finishes in the
// background and replaces the panel content.
func (s *Server) handleSearchAsync(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error(), Kind: "bad_request"})
		return
	}

	host := newAsyncHost(req.Selection, s.panels)
	go s.orch.Run(s.baseCtx, host)

	select {
	case id := <-host.opened:
		loc := "/v1/panels/" + id
		c.Header("Location", loc)
		c.JSON(http.StatusAccepted, searchAccepted{PanelID: id, Location: loc})
	case err := <-host.aborted:
		abortJSON(c, err)
	case <-c.Request.Context().Done():
	}
}

// handleSearchSync runs the whole lookup within the request and returns the
// final document.
func (s *Server) handleSearchSync(c *gin.Context) {
	display := &lookup.MemoryDisplay{}
	host := lookup.HostParts{
		SelectionSource: lookup.StaticSelection(c.Query("selection")),
		Display:         display,
		Notifier:        nopNotifier{},
	}

	res, _ := s.orch.Run(c.Request.Context(), host)
	if res.State == lookup.StateAborted {
		abortJSON(c, res.Err)
		return
	}

	c.Header("X-Stackfind-Lookup", res.ID)
	c.Header("X-Stackfind-Outcome", res.State.String())
	c.Data(http.StatusOK, htmlContentType, []byte(display.Last().Content()))
}

func (s *Server) handleGetPanel(c *gin.Context) {
	snap, ok := s.panels.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "panel not found", Kind: "not_found"})
		return
	}
	c.Header("X-Stackfind-Panel-Version", strconv.Itoa(snap.Version))
	c.Data(http.StatusOK, htmlContentType, []byte(snap.Doc))
}

func (s *Server) handleClosePanel(c *gin.Context) {
	if !s.panels.Close(c.Param("id")) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "panel not found", Kind: "not_found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleHealth(c *gin.Context) {
	keys := 0
	if s.orch.Keys != nil {
		keys = s.orch.Keys.Len()
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"keys":   keys,
		"panels": s.panels.Len(),
	})
}

// abortJSON answers a run that ended before a panel was opened.
func abortJSON(c *gin.Context, err error) {
	kind := search.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case search.KindEmptySelection:
		status = http.StatusUnprocessableEntity
	case search.KindMissingCredential:
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, errorResponse{Error: err.Error(), Kind: kind.String()})
}

// asyncHost reports the first of "panel opened" or "run aborted" back to
// the waiting handler.
type asyncHost struct {
	lookup.StaticSelection
	display lookup.Display
	opened  chan string
	aborted chan error
}

func newAsyncHost(selection string, display lookup.Display) *asyncHost {
	return &asyncHost{
		StaticSelection: lookup.StaticSelection(selection),
		display:         display,
		opened:          make(chan string, 1),
		aborted:         make(chan error, 1),
	}
}

// Open signals the handler once the loading document is in place, so a
// client fetching the panel right after 202 never sees it empty.
func (h *asyncHost) Open(ctx context.Context, id, title string) (lookup.Panel, error) {
	p, err := h.display.Open(ctx, id, title)
	if err != nil {
		return nil, err
	}
	return &signalPanel{Panel: p, signal: func() { h.opened <- id }}, nil
}

func (h *asyncHost) Notify(_ context.Context, err error) {
	h.aborted <- err
}

type signalPanel struct {
	lookup.Panel
	once   sync.Once
	signal func()
}

func (p *signalPanel) Show(doc string) error {
	err := p.Panel.Show(doc)
	p.once.Do(p.signal)
	return err
}

// nopNotifier drops notices; synchronous callers read them from the result.
type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, error) {}
