package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, DefaultSubgraphEndpoint, cfg.SubgraphEndpoint)
	assert.Equal(t, "127.0.0.1:8085", cfg.ListenAddr)
	assert.Equal(t, "", cfg.MetricsAddr)
	assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "collection-snapshots", cfg.MinIO.Bucket)
	assert.False(t, cfg.MinIO.UseSSL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SUBGRAPH_ENDPOINT", "http://localhost:8000/subgraphs/name/market")
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "2")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("CLICKHOUSE_DB", "analytics")

	cfg := Load()

	assert.Equal(t, "http://localhost:8000/subgraphs/name/market", cfg.SubgraphEndpoint)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 2*time.Second, cfg.UpstreamTimeout)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "analytics", cfg.ClickHouse.Database)
}

func TestGetEnvIntFallback(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{name: "valid", value: "7", expected: 7},
		{name: "not a number", value: "seven", expected: 3},
		{name: "zero", value: "0", expected: 3},
		{name: "negative", value: "-1", expected: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TEST_INT_VALUE", tc.value)
			assert.Equal(t, tc.expected, getEnvInt("TEST_INT_VALUE", 3))
		})
	}
}
