// ABOUTME: Functional options for the suggest library client
// ABOUTME: Every dependency has an in-process default so a bare NewClient works offline

package suggest

import (
	"time"

	"catalog-suggest/core/domain"
	"catalog-suggest/core/interfaces"
	"catalog-suggest/core/rewrite"
)

// Engine is a search engine that can also provision its index.
type Engine interface {
	interfaces.SearchEngine
	interfaces.IndexAdmin
}

// Config holds the client configuration
type Config struct {
	// Engine answers queries; defaults to an in-memory embedded index
	Engine Engine

	// Cache stores successful results; nil disables caching
	Cache interfaces.Cache

	// Logger receives structured logs; defaults to a logger that drops everything
	Logger interfaces.Logger

	// Index is the index name used for loading and searching
	Index string

	// Corrections is the rewrite table; defaults to the built-in table
	Corrections *rewrite.Table

	// Timeout bounds each search
	Timeout time.Duration

	// CacheTTL is how long cached results live
	CacheTTL time.Duration

	// Workers and RatePerSecond tune Evaluate
	Workers       int
	RatePerSecond float64
}

// Option configures the client
type Option func(*Config) error

// WithEngine sets the search engine
func WithEngine(engine Engine) Option {
	return func(c *Config) error {
		if engine == nil {
			return newError(ErrorTypeConfiguration, "engine cannot be nil", nil)
		}
		c.Engine = engine
		return nil
	}
}

// WithCache enables result caching
func WithCache(cache interfaces.Cache, ttl time.Duration) Option {
	return func(c *Config) error {
		c.Cache = cache
		c.CacheTTL = ttl
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithIndex sets the index name
func WithIndex(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return newError(ErrorTypeConfiguration, "index name cannot be empty", nil)
		}
		c.Index = name
		return nil
	}
}

// WithCorrections replaces the built-in correction table
func WithCorrections(entries []domain.CorrectionEntry) Option {
	return func(c *Config) error {
		table, err := rewrite.NewTable(entries)
		if err != nil {
			return newError(ErrorTypeConfiguration, "invalid correction table", err)
		}
		c.Corrections = table
		return nil
	}
}

// WithCorrectionsFile loads the correction table from a TOML file
func WithCorrectionsFile(path string) Option {
	return func(c *Config) error {
		table, err := rewrite.LoadTable(path)
		if err != nil {
			return classify("load correction table", err)
		}
		c.Corrections = table
		return nil
	}
}

// WithTimeout bounds each search
func WithTimeout(d time.Duration) Option {
	return func(c *Config) error {
		if d < 0 {
			return newError(ErrorTypeConfiguration, "timeout cannot be negative", nil)
		}
		c.Timeout = d
		return nil
	}
}

// WithEvaluation sets the worker count and start rate used by Evaluate
func WithEvaluation(workers int, ratePerSecond float64) Option {
	return func(c *Config) error {
		if workers < 1 || ratePerSecond < 0 {
			return newError(ErrorTypeConfiguration, "workers must be positive and rate non-negative", nil)
		}
		c.Workers = workers
		c.RatePerSecond = ratePerSecond
		return nil
	}
}

type quietLogger struct{}

func (quietLogger) Debug(msg string, fields map[string]interface{}) {}
func (quietLogger) Info(msg string, fields map[string]interface{})  {}
func (quietLogger) Warn(msg string, fields map[string]interface{})  {}
func (quietLogger) Error(msg string, fields map[string]interface{}) {}

func defaultConfig() Config {
	return Config{
		Logger:        quietLogger{},
		Index:         "catalog",
		Timeout:       2 * time.Second,
		CacheTTL:      5 * time.Minute,
		Workers:       4,
		RatePerSecond: 0,
	}
}
