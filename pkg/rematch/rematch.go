// Package rematch provides a unified API for resolving fighter identities
// across data sources.
//
// Basic usage:
//
//	res, err := rematch.Match(src, pool)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Classification, res.Best.CanonicalID)
//
// Batches share one claim ledger, so two source records cannot both take
// the same canonical fighter:
//
//	results := rematch.MatchBatch(srcs, pool,
//	    rematch.WithMinNameConfidence(60))
//
// Or use the engine packages directly:
//
//	import "github.com/codeGROOVE-dev/rematch/pkg/match"
//	m := match.New(match.WithThresholds(custom))
//	res, _ := m.Rank(src, pool)
package rematch

import (
	"log/slog"

	"github.com/codeGROOVE-dev/rematch/pkg/fighter"
	"github.com/codeGROOVE-dev/rematch/pkg/fuzzy"
	"github.com/codeGROOVE-dev/rematch/pkg/match"
)

type (
	// SourceRecord re-exports fighter.SourceRecord for convenience.
	SourceRecord = fighter.SourceRecord
	// CanonicalRecord re-exports fighter.CanonicalRecord for convenience.
	CanonicalRecord = fighter.CanonicalRecord
	// Result re-exports fighter.Result for convenience.
	Result = fighter.Result
	// Candidate re-exports fighter.Candidate for convenience.
	Candidate = fighter.Candidate
	// Classification re-exports fighter.Classification for convenience.
	Classification = fighter.Classification
	// NameMatch re-exports fighter.NameMatch for convenience.
	NameMatch = fighter.NameMatch
	// Weights re-exports fuzzy.Weights for convenience.
	Weights = fuzzy.Weights
	// Thresholds re-exports match.Thresholds for convenience.
	Thresholds = match.Thresholds
	// Bonuses re-exports match.Bonuses for convenience.
	Bonuses = match.Bonuses
)

// Re-export the classification tiers.
const (
	ClassAutoHigh     = fighter.ClassAutoHigh
	ClassAutoMedium   = fighter.ClassAutoMedium
	ClassManualReview = fighter.ClassManualReview
	ClassNoMatch      = fighter.ClassNoMatch
)

// Re-export common errors.
var (
	ErrEmptyName    = fighter.ErrEmptyName
	ErrNotFound     = fighter.ErrNotFound
	ErrInvalidInput = fighter.ErrInvalidInput
)

// Option configures a Match or MatchBatch call.
type Option = match.Option

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return match.WithLogger(logger)
}

// WithWeights sets the name metric blend.
func WithWeights(w Weights) Option {
	return match.WithWeights(w)
}

// WithBonuses sets the corroborating signal points.
func WithBonuses(b Bonuses) Option {
	return match.WithBonuses(b)
}

// WithThresholds sets the classification cutoffs.
func WithThresholds(t Thresholds) Option {
	return match.WithThresholds(t)
}

// WithMinNameConfidence sets the name score floor for candidates.
func WithMinNameConfidence(v float64) Option {
	return match.WithMinNameConfidence(v)
}

// Match scores one source record against the canonical pool and classifies
// the best candidate.
func Match(src SourceRecord, pool []CanonicalRecord, opts ...Option) (Result, error) {
	return match.New(opts...).Rank(src, pool)
}

// MatchBatch scores source records in input order with first-claim conflict
// handling across the batch.
func MatchBatch(srcs []SourceRecord, pool []CanonicalRecord, opts ...Option) []Result {
	return match.New(opts...).MatchBatch(srcs, pool)
}

// ScoreNames returns the fuzzy name similarity between two names without
// any signal scoring.
func ScoreNames(a, b string) NameMatch {
	return fuzzy.Score(a, b)
}
