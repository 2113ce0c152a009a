// Package config loads application configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// DefaultSubgraphEndpoint is the public marketplace subgraph.
const DefaultSubgraphEndpoint = "https://api.studio.thegraph.com/query/48381/nftmarketplace/version/latest"

// Config holds all application configuration.
type Config struct {
	// SubgraphEndpoint is the GraphQL endpoint of the indexer.
	SubgraphEndpoint string

	// ListenAddr is the address the API server binds to.
	ListenAddr string

	// MetricsAddr is the Prometheus listener address. Empty disables it.
	MetricsAddr string

	// UpstreamTimeout bounds every subgraph query.
	UpstreamTimeout time.Duration

	LogLevel  string
	LogFormat string

	ClickHouse ClickHouseConfig
	MinIO      MinIOConfig
}

// ClickHouseConfig holds connection settings for the snapshot sink.
type ClickHouseConfig struct {
	Addr     string
	Database string
	Username string
	Password string
}

// MinIOConfig holds settings for the snapshot archive bucket.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Load reads an optional .env file and returns the configuration
// built from the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	return &Config{
		SubgraphEndpoint: getEnv("SUBGRAPH_ENDPOINT", DefaultSubgraphEndpoint),
		ListenAddr:       getEnv("LISTEN_ADDR", "127.0.0.1:8085"),
		MetricsAddr:      getEnv("METRICS_ADDR", ""),
		UpstreamTimeout:  time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 5)) * time.Second,
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		ClickHouse: ClickHouseConfig{
			Addr:     getEnv("CLICKHOUSE_ADDR", "127.0.0.1:9000"),
			Database: getEnv("CLICKHOUSE_DB", "default"),
			Username: getEnv("CLICKHOUSE_USER", "default"),
			Password: getEnv("CLICKHOUSE_PASSWORD", ""),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9001"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "collection-snapshots"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt falls back to the default on missing, malformed or
// non-positive values.
func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(getEnv(key, "")))
	if err != nil {
		return defaultValue
	}
	return value
}
