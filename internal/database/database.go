package database

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/estensen/marketplace-api/internal/config"
)

const createCollectionStatsTable = `
CREATE TABLE IF NOT EXISTS collection_stats (
    snapshot_at   DateTime,
    contract      String,
    floor_price   Int64,
    traded_volume Int64
) ENGINE = MergeTree
ORDER BY (contract, snapshot_at)`

// NewClickHouseConnection opens and pings a ClickHouse connection.
func NewClickHouseConnection(ctx context.Context, cfg config.ClickHouseConfig) (clickhouse.Conn, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to ClickHouse: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ClickHouse ping failed: %w", err)
	}

	return conn, nil
}

// EnsureSchema creates the collection_stats table if needed.
func EnsureSchema(ctx context.Context, conn clickhouse.Conn) error {
	if err := conn.Exec(ctx, createCollectionStatsTable); err != nil {
		return fmt.Errorf("error creating collection_stats table: %w", err)
	}
	return nil
}
