package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/estensen/marketplace-api/internal/models"
)

// ClickHouseLoader loads collection stats snapshots into ClickHouse.
type ClickHouseLoader struct {
	Conn clickhouse.Conn
}

// NewClickHouseLoader creates a new ClickHouseLoader.
func NewClickHouseLoader(conn clickhouse.Conn) *ClickHouseLoader {
	return &ClickHouseLoader{
		Conn: conn,
	}
}

// Load inserts one snapshot row per collection.
func (l *ClickHouseLoader) Load(ctx context.Context, snapshotAt time.Time, stats []models.CollectionStats) error {
	batch, err := l.Conn.PrepareBatch(ctx, "INSERT INTO collection_stats (snapshot_at, contract, floor_price, traded_volume)")
	if err != nil {
		return fmt.Errorf("error preparing ClickHouse batch: %w", err)
	}

	for _, s := range stats {
		if err := batch.Append(snapshotAt, s.ID, s.FloorPrice, s.TradedVolume); err != nil {
			return fmt.Errorf("error appending to ClickHouse batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("error sending batch to ClickHouse: %w", err)
	}
	return nil
}
