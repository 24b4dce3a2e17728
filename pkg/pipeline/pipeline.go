// Package pipeline runs a full matching pass: score every source record,
// persist the automatic decisions, and queue the uncertain ones for human
// review. Each pass gets a run ID so persisted decisions and review items
// can be traced back to it.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/codeGROOVE-dev/rematch/pkg/fighter"
	"github.com/codeGROOVE-dev/rematch/pkg/match"
	"github.com/google/uuid"
)

// Store persists accepted match decisions.
type Store interface {
	SaveResult(ctx context.Context, runID string, res fighter.Result) error
}

// Summary aggregates one pipeline run.
type Summary struct {
	RunID        string           `json:"run_id"`
	Results      []fighter.Result `json:"results"`
	Total        int              `json:"total"`
	AutoHigh     int              `json:"auto_high"`
	AutoMedium   int              `json:"auto_medium"`
	ManualReview int              `json:"manual_review"`
	NoMatch      int              `json:"no_match"`
	Rejected     int              `json:"rejected"`
	Conflicts    int              `json:"conflicts"`
}

// ReviewItem is one line in the review queue file.
type ReviewItem struct {
	Source         fighter.SourceRecord   `json:"source_record"`
	RunID          string                 `json:"run_id"`
	Candidate      *fighter.Candidate     `json:"candidate,omitempty"`
	Classification fighter.Classification `json:"classification"`
	ConflictsWith  string                 `json:"conflicts_with,omitempty"`
	Reasons        []string               `json:"reasons,omitempty"`
}

// Pipeline wires a matcher to persistence and the review queue.
type Pipeline struct {
	matcher    *match.Matcher
	store      Store
	logger     *slog.Logger
	reviewPath string
}

// Option configures a Pipeline.
type Option func(*config)

type config struct {
	matcher    *match.Matcher
	store      Store
	logger     *slog.Logger
	reviewPath string
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithMatcher sets a configured matcher instead of the defaults.
func WithMatcher(m *match.Matcher) Option {
	return func(c *config) { c.matcher = m }
}

// WithStore persists auto-accepted decisions to s.
func WithStore(s Store) Option {
	return func(c *config) { c.store = s }
}

// WithReviewQueue appends manual review items to the JSONL file at path.
func WithReviewQueue(path string) Option {
	return func(c *config) { c.reviewPath = path }
}

// New creates a Pipeline.
func New(opts ...Option) *Pipeline {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.matcher == nil {
		cfg.matcher = match.New(match.WithLogger(cfg.logger))
	}
	return &Pipeline{
		matcher:    cfg.matcher,
		store:      cfg.store,
		logger:     cfg.logger,
		reviewPath: cfg.reviewPath,
	}
}

// Run matches every source record against the canonical pool. Auto-accepted
// matches are persisted when a store is configured; manual review items are
// appended to the review queue when one is configured.
func (p *Pipeline) Run(ctx context.Context, srcs []fighter.SourceRecord, pool []fighter.CanonicalRecord) (*Summary, error) {
	runID := uuid.NewString()
	p.logger.InfoContext(ctx, "starting match run",
		"run_id", runID, "sources", len(srcs), "pool", len(pool))

	results := p.matcher.MatchBatch(srcs, pool)

	summary := &Summary{RunID: runID, Total: len(results), Results: results}
	var reviews []ReviewItem
	for i := range results {
		res := &results[i]
		if res.Error != "" {
			summary.Rejected++
		}
		if res.ConflictsWith != "" {
			summary.Conflicts++
		}

		switch res.Classification {
		case fighter.ClassAutoHigh:
			summary.AutoHigh++
		case fighter.ClassAutoMedium:
			summary.AutoMedium++
		case fighter.ClassManualReview:
			summary.ManualReview++
		case fighter.ClassNoMatch:
			summary.NoMatch++
		}

		switch res.Classification {
		case fighter.ClassAutoHigh, fighter.ClassAutoMedium:
			if p.store == nil {
				continue
			}
			if err := p.store.SaveResult(ctx, runID, *res); err != nil {
				return nil, fmt.Errorf("persist decision for %s: %w", res.Source.Key(), err)
			}
		case fighter.ClassManualReview:
			reviews = append(reviews, ReviewItem{
				RunID:          runID,
				Source:         res.Source,
				Candidate:      res.Best,
				Classification: res.Classification,
				Reasons:        res.Reasons,
				ConflictsWith:  res.ConflictsWith,
			})
		case fighter.ClassNoMatch:
		}
	}

	if p.reviewPath != "" && len(reviews) > 0 {
		if err := appendReviewQueue(p.reviewPath, reviews); err != nil {
			return nil, err
		}
	}

	p.logger.InfoContext(ctx, "match run complete",
		"run_id", runID,
		"total", summary.Total,
		"auto_high", summary.AutoHigh,
		"auto_medium", summary.AutoMedium,
		"manual_review", summary.ManualReview,
		"no_match", summary.NoMatch,
		"rejected", summary.Rejected,
		"conflicts", summary.Conflicts)

	return summary, nil
}

// appendReviewQueue writes items as JSON lines, one per review decision.
func appendReviewQueue(path string, items []ReviewItem) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open review queue: %w", err)
	}
	enc := json.NewEncoder(f)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			f.Close() //nolint:errcheck // intentional
			return fmt.Errorf("append review item: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close review queue: %w", err)
	}
	return nil
}
