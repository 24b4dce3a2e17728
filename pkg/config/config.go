// Package config defines the engine and service settings and their loading
// order: built-in defaults, then an optional YAML file, then environment
// variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/codeGROOVE-dev/rematch/pkg/fuzzy"
	"github.com/codeGROOVE-dev/rematch/pkg/match"
)

// Config holds every tunable for the matching engine and its surfaces.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MinNameConfidence is the name score floor for candidates.
	MinNameConfidence float64 `koanf:"min_name_confidence"`

	// Weights blends the four name metrics.
	Weights fuzzy.Weights `koanf:"weights"`

	// Bonuses are the corroborating signal points.
	Bonuses match.Bonuses `koanf:"bonuses"`

	// Thresholds are the classification cutoffs.
	Thresholds match.Thresholds `koanf:"thresholds"`

	Server Server `koanf:"server"`
	Paths  Paths  `koanf:"paths"`
}

// Server configures the HTTP matching service.
type Server struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CacheTTL bounds how long batch results are served from cache.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// Paths points at the run inputs and outputs.
type Paths struct {
	// Sources is the source records file (.json or .csv).
	Sources string `koanf:"sources"`

	// Canonical is the canonical roster file (.json or .csv).
	Canonical string `koanf:"canonical"`

	// Database is the SQLite file for persisted decisions.
	Database string `koanf:"database"`

	// ReviewQueue is the JSONL file manual review items append to.
	ReviewQueue string `koanf:"review_queue"`

	// CacheDir overrides the default result cache location.
	CacheDir string `koanf:"cache_dir"`
}

// Default returns the shipped configuration.
func Default() *Config {
	return &Config{
		LogLevel:          "info",
		MinNameConfidence: match.DefaultMinNameConfidence,
		Weights:           fuzzy.DefaultWeights(),
		Bonuses:           match.DefaultBonuses(),
		Thresholds:        match.DefaultThresholds(),
		Server: Server{
			Addr:     ":8080",
			CacheTTL: 15 * time.Minute,
		},
	}
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if sum := c.Weights.Sum(); math.Abs(sum-1.0) > 0.001 {
		return fmt.Errorf("name metric weights sum to %.3f, want 1.0", sum)
	}
	if c.MinNameConfidence < 0 || c.MinNameConfidence > 100 {
		return fmt.Errorf("min_name_confidence %.2f outside 0-100", c.MinNameConfidence)
	}
	t := c.Thresholds
	if t.AutoHigh < t.AutoMedium || t.AutoMedium < t.Review {
		return fmt.Errorf("thresholds must descend: auto_high %.1f >= auto_medium %.1f >= review %.1f",
			t.AutoHigh, t.AutoMedium, t.Review)
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	return nil
}
