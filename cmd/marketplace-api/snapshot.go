package main

import (
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/estensen/marketplace-api/internal/aggregator"
	"github.com/estensen/marketplace-api/internal/database"
	"github.com/estensen/marketplace-api/internal/snapshot"
	"github.com/estensen/marketplace-api/internal/storage"
	"github.com/estensen/marketplace-api/internal/subgraph"
	"github.com/estensen/marketplace-api/internal/utils"
)

var (
	loadClickHouse bool
	archiveMinIO   bool
)

func runSnapshot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client := subgraph.NewClient(cfg.SubgraphEndpoint, cfg.UpstreamTimeout, &http.Client{}, logger)
	agg := aggregator.NewAggregator(client, logger)

	var loader snapshot.Loader
	if loadClickHouse {
		conn, err := database.NewClickHouseConnection(ctx, cfg.ClickHouse)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := database.EnsureSchema(ctx, conn); err != nil {
			return err
		}
		logger.Info("Successfully connected to ClickHouse")
		loader = database.NewClickHouseLoader(conn)
	}

	var store storage.Storage
	if archiveMinIO {
		minioStorage, err := storage.NewMinIOStorage(ctx, cfg.MinIO, logger)
		if err != nil {
			return err
		}
		store = minioStorage
	}

	job := snapshot.NewJob(agg, loader, store, logger)
	stats, err := job.Run(ctx, time.Now().UTC().Truncate(time.Second))
	if err != nil {
		return err
	}

	utils.DisplayCollectionStats(os.Stdout, stats)
	return nil
}
