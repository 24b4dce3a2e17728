// Package match resolves source fighter records against a canonical roster.
//
// Each source record is scored against every canonical fighter: fuzzy name
// similarity produces a base confidence, corroborating signals (division,
// fight record, age, weight) add or subtract bonus points, and the final
// confidence plus the gap to the runner-up decides whether the match is
// accepted automatically, queued for review, or rejected.
package match

import (
	"log/slog"

	"github.com/codeGROOVE-dev/rematch/pkg/fighter"
	"github.com/codeGROOVE-dev/rematch/pkg/fuzzy"
)

const (
	// DefaultMinNameConfidence is the name score below which a canonical
	// fighter is not considered a candidate at all.
	DefaultMinNameConfidence = 50.0

	// Record similarity cutoffs for the agree bonus and disagree penalty.
	RecordAgreeMin    = 80.0
	RecordDisagreeMax = 30.0

	// Age difference cutoffs in years.
	AgeCloseYears = 1.0
	AgeFarYears   = 5.0

	// Weight difference cutoffs in pounds.
	WeightCloseLb = 10.0
	WeightFarLb   = 40.0

	// maxRetainedCandidates caps how many scored candidates a result keeps.
	maxRetainedCandidates = 5
)

// Bonuses are the points each corroborating signal contributes. Penalty
// fields are negative.
type Bonuses struct {
	Division       int `json:"division"        koanf:"division"`
	RecordAgree    int `json:"record_agree"    koanf:"record_agree"`
	RecordDisagree int `json:"record_disagree" koanf:"record_disagree"`
	AgeClose       int `json:"age_close"       koanf:"age_close"`
	AgeFar         int `json:"age_far"         koanf:"age_far"`
	WeightClose    int `json:"weight_close"    koanf:"weight_close"`
	WeightFar      int `json:"weight_far"      koanf:"weight_far"`
}

// DefaultBonuses returns the shipped signal points.
func DefaultBonuses() Bonuses {
	return Bonuses{
		Division:       15,
		RecordAgree:    10,
		RecordDisagree: -20,
		AgeClose:       5,
		AgeFar:         -15,
		WeightClose:    3,
		WeightFar:      -10,
	}
}

// Thresholds are the confidence cutoffs for each classification tier.
type Thresholds struct {
	AutoHigh   float64 `json:"auto_high"   koanf:"auto_high"`
	HighGap    float64 `json:"high_gap"    koanf:"high_gap"`
	AutoMedium float64 `json:"auto_medium" koanf:"auto_medium"`
	Review     float64 `json:"review"      koanf:"review"`
}

// DefaultThresholds returns the shipped classification cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{AutoHigh: 95, HighGap: 15, AutoMedium: 85, Review: 70}
}

// Classify buckets a final confidence and its gap over the runner-up. The
// top tier requires both a high score and a clear lead; the lower tiers
// look at the score alone.
func Classify(final, gap float64, t Thresholds) fighter.Classification {
	switch {
	case final >= t.AutoHigh && gap >= t.HighGap:
		return fighter.ClassAutoHigh
	case final >= t.AutoMedium:
		return fighter.ClassAutoMedium
	case final >= t.Review:
		return fighter.ClassManualReview
	default:
		return fighter.ClassNoMatch
	}
}

// Matcher scores and classifies source records against a canonical pool.
// The zero value is not usable; call New.
type Matcher struct {
	logger            *slog.Logger
	weights           fuzzy.Weights
	bonuses           Bonuses
	thresholds        Thresholds
	minNameConfidence float64
}

// Option configures a Matcher.
type Option func(*config)

type config struct {
	logger            *slog.Logger
	weights           fuzzy.Weights
	bonuses           Bonuses
	thresholds        Thresholds
	minNameConfidence float64
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithWeights sets the name metric blend.
func WithWeights(w fuzzy.Weights) Option {
	return func(c *config) { c.weights = w }
}

// WithBonuses sets the signal points.
func WithBonuses(b Bonuses) Option {
	return func(c *config) { c.bonuses = b }
}

// WithThresholds sets the classification cutoffs.
func WithThresholds(t Thresholds) Option {
	return func(c *config) { c.thresholds = t }
}

// WithMinNameConfidence sets the candidate floor.
func WithMinNameConfidence(v float64) Option {
	return func(c *config) { c.minNameConfidence = v }
}

// New creates a Matcher with the default scoring parameters.
func New(opts ...Option) *Matcher {
	cfg := &config{
		logger:            slog.Default(),
		weights:           fuzzy.DefaultWeights(),
		bonuses:           DefaultBonuses(),
		thresholds:        DefaultThresholds(),
		minNameConfidence: DefaultMinNameConfidence,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Matcher{
		logger:            cfg.logger,
		weights:           cfg.weights,
		bonuses:           cfg.bonuses,
		thresholds:        cfg.thresholds,
		minNameConfidence: cfg.minNameConfidence,
	}
}
