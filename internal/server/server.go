// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server is the HTTP bridge between an editor extension and the
// lookup orchestrator. The bridge process is long-lived, so the key pool's
// rotation cursor carries over from one invocation to the next.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/stackfind/internal/lookup"
	"github.com/pdiddy/stackfind/internal/metrics"
	"github.com/pdiddy/stackfind/internal/panel"
)

const shutdownGrace = 5 * time.Second

// Server wires HTTP routes to an orchestrator and a panel registry.
type Server struct {
	orch     *lookup.Orchestrator
	panels   *panel.Registry
	gatherer prometheus.Gatherer
	logger   *zap.Logger

	// baseCtx bounds background lookups started by POST /v1/search; it is
	// cancelled when the server shuts down.
	baseCtx context.Context
}

// New returns a Server. Background lookups run under ctx.
func New(ctx context.Context, orch *lookup.Orchestrator, panels *panel.Registry, gatherer prometheus.Gatherer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		orch:     orch,
		panels:   panels,
		gatherer: gatherer,
		logger:   logger,
		baseCtx:  ctx,
	}
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.handleHealth)
	if s.gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(s.gatherer)))
	}

	v1 := r.Group("/v1")
	v1.POST("/search", s.handleSearchAsync)
	v1.GET("/search", s.handleSearchSync)
	v1.GET("/panels/:id", s.handleGetPanel)
	v1.DELETE("/panels/:id", s.handleClosePanel)
	return r
}

// Run serves h on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, addr string, h http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("serve bridge listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		logger.Info("serve bridge shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}
