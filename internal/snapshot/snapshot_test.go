package snapshot

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estensen/marketplace-api/internal/models"
)

type fakeStats struct {
	stats []models.CollectionStats
	err   error
}

func (f *fakeStats) AllCollectionStats(ctx context.Context) ([]models.CollectionStats, error) {
	return f.stats, f.err
}

type fakeLoader struct {
	at    time.Time
	stats []models.CollectionStats
	err   error
}

func (f *fakeLoader) Load(ctx context.Context, snapshotAt time.Time, stats []models.CollectionStats) error {
	f.at = snapshotAt
	f.stats = stats
	return f.err
}

type fakeStorage struct {
	objects map[string]string
}

func (f *fakeStorage) UploadFile(ctx context.Context, objectName string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if f.objects == nil {
		f.objects = make(map[string]string)
	}
	f.objects[objectName] = string(data)
	return nil
}

var sampleStats = []models.CollectionStats{
	{ID: "0xc1", FloorPrice: 50, TradedVolume: 0},
	{ID: "0xc2", FloorPrice: 70, TradedVolume: 60},
}

func TestRun(t *testing.T) {
	logger, _ := test.NewNullLogger()
	at := time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC)
	loader := &fakeLoader{}
	store := &fakeStorage{}

	job := NewJob(&fakeStats{stats: sampleStats}, loader, store, logger)

	stats, err := job.Run(context.Background(), at)
	require.NoError(t, err)
	assert.Equal(t, sampleStats, stats)

	assert.Equal(t, at, loader.at)
	assert.Equal(t, sampleStats, loader.stats)

	require.Contains(t, store.objects, "collection-stats-2024-04-02T12:00:00Z.csv")
	assert.Equal(t,
		"contract,floor_price,traded_volume\n0xc1,50,0\n0xc2,70,60\n",
		store.objects["collection-stats-2024-04-02T12:00:00Z.csv"])
}

func TestRunWithoutSinks(t *testing.T) {
	logger, _ := test.NewNullLogger()
	job := NewJob(&fakeStats{stats: sampleStats}, nil, nil, logger)

	stats, err := job.Run(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Len(t, stats, 2)
}

func TestRunErrors(t *testing.T) {
	logger, _ := test.NewNullLogger()
	boom := errors.New("boom")

	tests := []struct {
		name   string
		stats  *fakeStats
		loader *fakeLoader
	}{
		{
			name:   "Stats failure",
			stats:  &fakeStats{err: boom},
			loader: &fakeLoader{},
		},
		{
			name:   "Loader failure",
			stats:  &fakeStats{stats: sampleStats},
			loader: &fakeLoader{err: boom},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStorage{}
			job := NewJob(tc.stats, tc.loader, store, logger)

			_, err := job.Run(context.Background(), time.Now())
			require.Error(t, err)
			assert.True(t, errors.Is(err, boom))
			assert.Empty(t, store.objects)
		})
	}
}

func TestEncodeCSVEmpty(t *testing.T) {
	data, err := EncodeCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "contract,floor_price,traded_volume\n", string(data))
}
