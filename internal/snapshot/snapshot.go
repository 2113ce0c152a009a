package snapshot

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/estensen/marketplace-api/internal/models"
	"github.com/estensen/marketplace-api/internal/storage"
)

// StatsSource computes stats for every known collection.
type StatsSource interface {
	AllCollectionStats(ctx context.Context) ([]models.CollectionStats, error)
}

// Loader persists a snapshot.
type Loader interface {
	Load(ctx context.Context, snapshotAt time.Time, stats []models.CollectionStats) error
}

// Job computes a collection stats snapshot and hands it to the configured
// sinks. Loader and Storage are optional.
type Job struct {
	Stats   StatsSource
	Loader  Loader
	Storage storage.Storage
	Logger  logrus.FieldLogger
}

// NewJob creates a new snapshot Job.
func NewJob(stats StatsSource, loader Loader, store storage.Storage, logger logrus.FieldLogger) *Job {
	return &Job{
		Stats:   stats,
		Loader:  loader,
		Storage: store,
		Logger:  logger,
	}
}

// Run takes one snapshot stamped with snapshotAt and returns it.
func (j *Job) Run(ctx context.Context, snapshotAt time.Time) ([]models.CollectionStats, error) {
	stats, err := j.Stats.AllCollectionStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("error computing collection stats: %w", err)
	}
	j.Logger.WithField("collections", len(stats)).Info("Computed collection stats snapshot")

	if j.Loader != nil {
		if err := j.Loader.Load(ctx, snapshotAt, stats); err != nil {
			return nil, fmt.Errorf("error loading snapshot: %w", err)
		}
	}

	if j.Storage != nil {
		if err := j.archive(ctx, snapshotAt, stats); err != nil {
			return nil, err
		}
	}

	return stats, nil
}

func (j *Job) archive(ctx context.Context, snapshotAt time.Time, stats []models.CollectionStats) error {
	data, err := EncodeCSV(stats)
	if err != nil {
		return err
	}

	if err := j.Storage.UploadFile(ctx, ObjectName(snapshotAt), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("error archiving snapshot: %w", err)
	}
	return nil
}

// ObjectName is the archive object key of a snapshot.
func ObjectName(snapshotAt time.Time) string {
	return fmt.Sprintf("collection-stats-%s.csv", snapshotAt.UTC().Format(time.RFC3339))
}

// EncodeCSV renders stats as CSV with a header row.
func EncodeCSV(stats []models.CollectionStats) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"contract", "floor_price", "traded_volume"}); err != nil {
		return nil, fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, s := range stats {
		record := []string{
			s.ID,
			strconv.FormatInt(s.FloorPrice, 10),
			strconv.FormatInt(s.TradedVolume, 10),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("error flushing CSV writer: %w", err)
	}

	return buf.Bytes(), nil
}
