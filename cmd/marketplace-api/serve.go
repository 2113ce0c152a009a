package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/estensen/marketplace-api/internal/aggregator"
	"github.com/estensen/marketplace-api/internal/api"
	"github.com/estensen/marketplace-api/internal/metrics"
	"github.com/estensen/marketplace-api/internal/subgraph"
)

const shutdownTimeout = 10 * time.Second

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gin.SetMode(gin.ReleaseMode)

	client := subgraph.NewClient(cfg.SubgraphEndpoint, cfg.UpstreamTimeout, &http.Client{}, logger)
	agg := aggregator.NewAggregator(client, logger)
	apiServer := api.NewServer(agg, logger)

	servers := []*http.Server{{
		Addr:              cfg.ListenAddr,
		Handler:           api.NewRouter(apiServer),
		ReadHeaderTimeout: 5 * time.Second,
	}}
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		servers = append(servers, &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		})
	}

	g, gCtx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			logger.WithField("addr", srv.Addr).Info("Server is running")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server on %s failed: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
