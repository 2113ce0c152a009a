package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/estensen/marketplace-api/internal/config"
	"github.com/estensen/marketplace-api/internal/logging"
)

var (
	cfg    *config.Config
	logger *logrus.Logger

	rootCmd = &cobra.Command{
		Use:           "marketplace-api",
		Short:         "REST read API over NFT marketplace listings and purchases",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = logging.New(cfg.LogLevel, cfg.LogFormat)
			return err
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the marketplace API",
		RunE:  runServe,
	}

	snapshotCmd = &cobra.Command{
		Use:   "snapshot",
		Short: "Compute stats for every collection and export them",
		RunE:  runSnapshot,
	}
)

func init() {
	cfg = config.Load()

	rootCmd.PersistentFlags().StringVar(&cfg.SubgraphEndpoint, "subgraph", cfg.SubgraphEndpoint, "GraphQL endpoint of the marketplace subgraph")
	rootCmd.PersistentFlags().DurationVar(&cfg.UpstreamTimeout, "upstream-timeout", cfg.UpstreamTimeout, "timeout for each subgraph query")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	serveCmd.Flags().StringVar(&cfg.ListenAddr, "addr", cfg.ListenAddr, "address to listen on")
	serveCmd.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Prometheus listener address (empty disables)")

	snapshotCmd.Flags().BoolVar(&loadClickHouse, "clickhouse", false, "load the snapshot into ClickHouse")
	snapshotCmd.Flags().BoolVar(&archiveMinIO, "archive", false, "upload the snapshot as CSV to MinIO")

	rootCmd.AddCommand(serveCmd, snapshotCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Errorf("Command failed: %v", err)
		} else {
			logrus.Errorf("Command failed: %v", err)
		}
		os.Exit(1)
	}
}
