// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration for the server, search engine, caches, evaluation and logging

package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Engine backends
const (
	EngineOpenSearch = "opensearch"
	EngineEmbedded   = "embedded"
)

// Cache backends
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheSQLite = "sqlite"
	CacheNone   = "none"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Engine selects and addresses the search engine
	Engine EngineConfig

	// Search tunes the retrieval client
	Search SearchConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Evaluation configures batch query evaluation
	Evaluation EvaluationConfig

	// Setup configures index provisioning
	Setup SetupConfig

	// Log configures the structured logger
	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the number of requests allowed per client per window
	RateLimit int

	// RateWindowSec is the rate limit window in seconds
	RateWindowSec int
}

// EngineConfig holds search engine configuration
type EngineConfig struct {
	// Type is opensearch or embedded
	Type string

	// URL is the OpenSearch base URL
	URL string

	// IndexName is the catalog index
	IndexName string

	// EmbeddedPath is the directory for embedded indexes; empty keeps them in memory
	EmbeddedPath string

	// HTTPTimeoutMS bounds any single HTTP exchange with the engine
	HTTPTimeoutMS int
}

// SearchConfig holds retrieval client configuration
type SearchConfig struct {
	// TimeoutMS bounds a single search round trip
	TimeoutMS int

	// CacheTTLSec is how long successful results are cached
	CacheTTLSec int

	// CorrectionsFile is an optional TOML correction table; empty uses the built-in table
	CorrectionsFile string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite/none)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig

	// SQLite contains SQLite cache configuration
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int
}

// SQLiteConfig holds SQLite cache configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string
}

// EvaluationConfig holds batch evaluation configuration
type EvaluationConfig struct {
	// Workers is the number of queries evaluated concurrently
	Workers int

	// RatePerSec caps queries started per second; 0 disables throttling
	RatePerSec float64
}

// SetupConfig holds index provisioning configuration
type SetupConfig struct {
	// WaitAttempts is how many times to probe the engine before giving up
	WaitAttempts int

	// WaitIntervalMS is the pause between probes
	WaitIntervalMS int

	// BulkBatchSize is the number of records per bulk request
	BulkBatchSize int
}

// LogConfig holds logger configuration
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string

	// Format is text or json
	Format string

	// File is an optional rotating log file; empty logs to stderr only
	File string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:          getEnvOrDefault("PORT", "8000"),
			RateLimit:     getEnvAsIntOrDefault("RATE_LIMIT", 100),
			RateWindowSec: getEnvAsIntOrDefault("RATE_WINDOW_SEC", 60),
		},
		Engine: EngineConfig{
			Type:          getEnvOrDefault("ENGINE_TYPE", EngineOpenSearch),
			URL:           getEnvOrDefault("ENGINE_URL", "http://localhost:9200"),
			IndexName:     getEnvOrDefault("INDEX_NAME", "catalog_products"),
			EmbeddedPath:  getEnvOrDefault("EMBEDDED_INDEX_PATH", ""),
			HTTPTimeoutMS: getEnvAsIntOrDefault("HTTP_TIMEOUT_MS", 10000),
		},
		Search: SearchConfig{
			TimeoutMS:       getEnvAsIntOrDefault("SEARCH_TIMEOUT_MS", 2000),
			CacheTTLSec:     getEnvAsIntOrDefault("SEARCH_CACHE_TTL", 300),
			CorrectionsFile: getEnvOrDefault("CORRECTIONS_FILE", ""),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", CacheMemory),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			Memory: MemoryConfig{
				DefaultExpiration: getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", 3600),
			},
			SQLite: SQLiteConfig{
				Path: getEnvOrDefault("SQLITE_CACHE_PATH", "search_cache.db"),
			},
		},
		Evaluation: EvaluationConfig{
			Workers:    getEnvAsIntOrDefault("EVAL_WORKERS", 4),
			RatePerSec: getEnvAsFloatOrDefault("EVAL_RATE_PER_SEC", 0),
		},
		Setup: SetupConfig{
			WaitAttempts:   getEnvAsIntOrDefault("SETUP_WAIT_ATTEMPTS", 120),
			WaitIntervalMS: getEnvAsIntOrDefault("SETUP_WAIT_INTERVAL_MS", 5000),
			BulkBatchSize:  getEnvAsIntOrDefault("BULK_BATCH_SIZE", 500),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
			File:   getEnvOrDefault("LOG_FILE", ""),
		},
	}

	return cfg, nil
}

// SearchTimeout returns the per-search deadline
func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.Search.TimeoutMS) * time.Millisecond
}

// HTTPTimeout returns the engine HTTP client timeout
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.Engine.HTTPTimeoutMS) * time.Millisecond
}

// CacheTTL returns how long search results stay cached
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Search.CacheTTLSec) * time.Second
}

// WaitInterval returns the pause between engine readiness probes
func (c *Config) WaitInterval() time.Duration {
	return time.Duration(c.Setup.WaitIntervalMS) * time.Millisecond
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	switch c.Engine.Type {
	case EngineOpenSearch:
		if c.Engine.URL == "" {
			return errors.New("engine url cannot be empty when using opensearch")
		}
	case EngineEmbedded:
	default:
		return errors.New("engine type must be 'opensearch' or 'embedded'")
	}

	if c.Engine.IndexName == "" {
		return errors.New("index name cannot be empty")
	}

	if c.Search.TimeoutMS < 1 {
		return errors.New("search timeout must be at least 1 millisecond")
	}

	switch c.Cache.Type {
	case CacheMemory, CacheNone:
	case CacheRedis:
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	case CacheSQLite:
		if c.Cache.SQLite.Path == "" {
			return errors.New("sqlite path cannot be empty when using sqlite cache")
		}
	default:
		return errors.New("cache type must be 'memory', 'redis', 'sqlite' or 'none'")
	}

	if c.Evaluation.Workers < 1 {
		return errors.New("evaluation workers must be at least 1")
	}

	if c.Evaluation.RatePerSec < 0 {
		return errors.New("evaluation rate cannot be negative")
	}

	if c.Setup.BulkBatchSize < 1 {
		return errors.New("bulk batch size must be at least 1")
	}

	return nil
}
