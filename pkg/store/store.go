// Package store persists match decisions in a local SQLite database so runs
// can be audited and compared after the fact.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/rematch/pkg/fighter"
	"github.com/codeGROOVE-dev/retry"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS matches (
	source_key     TEXT PRIMARY KEY,
	source_name    TEXT NOT NULL,
	canonical_id   TEXT NOT NULL,
	confidence     REAL NOT NULL,
	classification TEXT NOT NULL,
	run_id         TEXT NOT NULL,
	decided_at     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_matches_canonical ON matches(canonical_id);
CREATE INDEX IF NOT EXISTS idx_matches_run ON matches(run_id);
`

// Match is one persisted decision row.
type Match struct {
	SourceKey      string
	SourceName     string
	CanonicalID    string
	Classification string
	RunID          string
	DecidedAt      string
	Confidence     float64
}

// Store records accepted matches keyed by source record. Writes are
// idempotent per source key: a later run overwrites the earlier decision.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// New opens or creates the database at path and ensures the schema exists.
func New(ctx context.Context, path string, opts ...Option) (*Store, error) {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close() //nolint:errcheck // intentional
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, logger: cfg.logger}, nil
}

// SaveResult upserts the decision for one matched source record. Results
// without a best candidate cannot be saved.
func (s *Store) SaveResult(ctx context.Context, runID string, res fighter.Result) error {
	if res.Best == nil {
		return fmt.Errorf("%w: result has no candidate", fighter.ErrInvalidInput)
	}

	const q = `INSERT INTO matches (source_key, source_name, canonical_id, confidence, classification, run_id, decided_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(source_key) DO UPDATE SET
	source_name = excluded.source_name,
	canonical_id = excluded.canonical_id,
	confidence = excluded.confidence,
	classification = excluded.classification,
	run_id = excluded.run_id,
	decided_at = excluded.decided_at`

	err := retry.Do(func() error {
		_, err := s.db.ExecContext(ctx, q,
			res.Source.Key(), res.Source.Name, res.Best.CanonicalID,
			res.Best.FinalConfidence, string(res.Classification), runID,
			time.Now().UTC().Format(time.RFC3339))
		return err
	},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(50*time.Millisecond),
		retry.MaxJitter(50*time.Millisecond),
		retry.RetryIf(isBusy),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Debug("retrying sqlite write", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("save match for %s: %w", res.Source.Key(), err)
	}
	return nil
}

// Matches returns the persisted decisions for one run, ordered by source key.
func (s *Store) Matches(ctx context.Context, runID string) ([]Match, error) {
	const q = `SELECT source_key, source_name, canonical_id, confidence, classification, run_id, decided_at
FROM matches WHERE run_id = ? ORDER BY source_key`

	rows, err := s.db.QueryContext(ctx, q, runID)
	if err != nil {
		return nil, fmt.Errorf("query run %s: %w", runID, err)
	}
	defer rows.Close() //nolint:errcheck // intentional

	var out []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.SourceKey, &m.SourceName, &m.CanonicalID, &m.Confidence, &m.Classification, &m.RunID, &m.DecidedAt); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return out, nil
}

// Lookup returns the persisted decision for a source key.
func (s *Store) Lookup(ctx context.Context, sourceKey string) (Match, error) {
	const q = `SELECT source_key, source_name, canonical_id, confidence, classification, run_id, decided_at
FROM matches WHERE source_key = ?`

	var m Match
	err := s.db.QueryRowContext(ctx, q, sourceKey).
		Scan(&m.SourceKey, &m.SourceName, &m.CanonicalID, &m.Confidence, &m.Classification, &m.RunID, &m.DecidedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Match{}, fmt.Errorf("%w: %s", fighter.ErrNotFound, sourceKey)
	}
	if err != nil {
		return Match{}, fmt.Errorf("lookup %s: %w", sourceKey, err)
	}
	return m, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// isBusy reports whether an error is a transient SQLite lock contention.
func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}
