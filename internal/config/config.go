// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Storage backend names accepted in STORAGE_BACKEND.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StorageBackend selects where itinerary snapshots are persisted:
	// "file" (default), "redis", or "postgres".
	StorageBackend string

	// SnapshotPath is the JSON file location for the file backend.
	// Defaults to "data/itineraries.json".
	SnapshotPath string

	// SnapshotNamespace is the key the snapshot is stored under for the
	// redis and postgres backends. Defaults to "travel-itineraries".
	SnapshotNamespace string

	// RedisURL is the redis connection string. Required when
	// StorageBackend is "redis".
	RedisURL string

	// DatabaseURL is the Postgres connection string. Required when
	// StorageBackend is "postgres".
	DatabaseURL string

	// DayBucketSize is the number of itinerary entries grouped into one
	// travel day. Defaults to 4.
	DayBucketSize int
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error naming any required variable that is missing for the
// selected storage backend, or any value that does not parse.
func Load() (Config, error) {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSOrigins:       splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		StorageBackend:    getEnv("STORAGE_BACKEND", BackendFile),
		SnapshotPath:      getEnv("SNAPSHOT_PATH", "data/itineraries.json"),
		SnapshotNamespace: getEnv("SNAPSHOT_NAMESPACE", "travel-itineraries"),
		RedisURL:          os.Getenv("REDIS_URL"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
	}

	bucketSize := getEnv("DAY_BUCKET_SIZE", "4")
	n, err := strconv.Atoi(bucketSize)
	if err != nil || n < 1 {
		return Config{}, fmt.Errorf("DAY_BUCKET_SIZE must be a positive integer, got %q", bucketSize)
	}
	cfg.DayBucketSize = n

	var missing []string
	switch cfg.StorageBackend {
	case BackendFile:
		// SnapshotPath always has a default; nothing required.
	case BackendRedis:
		if cfg.RedisURL == "" {
			missing = append(missing, "REDIS_URL")
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("STORAGE_BACKEND must be %q, %q, or %q, got %q",
			BackendFile, BackendRedis, BackendPostgres, cfg.StorageBackend)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
