// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/stackfind/internal/lookup"
	"github.com/pdiddy/stackfind/internal/metrics"
	"github.com/pdiddy/stackfind/internal/panel"
	"github.com/pdiddy/stackfind/internal/search"
	"github.com/pdiddy/stackfind/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP bridge for editor extensions",
	Long: `Serve keeps one key pool for the life of the process so rotation carries
over between lookups. An extension POSTs the selection to /v1/search, gets a
panel id back and polls /v1/panels/{id} for the loading, results or error
document. GET /v1/search?selection=... runs a lookup synchronously.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m := metrics.New(reg)

		panels := panel.New(ctx, cfg.Serve.PanelTTL, cfg.Serve.MaxPanels, m)
		defer panels.Stop()

		orch := &lookup.Orchestrator{
			Keys:     pool,
			Searcher: search.NewStackExchange(cfg.StackExchange),
			Logger:   logger,
			Metrics:  m,
		}
		if pool.Len() == 0 {
			logger.Warn("no Stack Exchange keys configured; every lookup will be refused")
		}
		logger.Info("starting serve bridge",
			zap.Int("keys", pool.Len()),
			zap.Duration("panel_ttl", cfg.Serve.PanelTTL),
			zap.Int("max_panels", cfg.Serve.MaxPanels))

		srv := server.New(ctx, orch, panels, reg, logger)
		return server.Run(ctx, cfg.Serve.Addr, srv.Router(), logger)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default 127.0.0.1:7777)")
	_ = viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
