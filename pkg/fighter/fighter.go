// Package fighter defines the common types for cross-source fighter identity resolution.
package fighter

import (
	"errors"
	"strings"
)

// Common errors returned by the matching packages.
var (
	ErrEmptyName    = errors.New("source record has no name")
	ErrNoCanonical  = errors.New("canonical pool is empty")
	ErrNotFound     = errors.New("no matching canonical fighter")
	ErrBadPool      = errors.New("canonical record has no id")
	ErrInvalidInput = errors.New("invalid input file")
)

// Classification is the actionable outcome bucket for a match decision.
type Classification string

// Classification tiers, from most to least confident.
const (
	ClassAutoHigh     Classification = "auto_high"
	ClassAutoMedium   Classification = "auto_medium"
	ClassManualReview Classification = "manual_review"
	ClassNoMatch      Classification = "no_match"
)

// ReasonDuplicateConflict marks a result demoted because its canonical id
// was already claimed by an earlier record in the same batch.
const ReasonDuplicateConflict = "duplicate_conflict"

// SourceRecord is a fighter as seen by one external data source.
// Only Name is required; every other field is best-effort scraped data.
type SourceRecord struct {
	Name        string `json:"name"`
	Division    string `json:"division,omitempty"`
	Record      string `json:"record,omitempty"`      // "W-L-D", optionally with a "(N NC)" suffix
	Age         int    `json:"age,omitempty"`         // whole years, 0 means unknown
	Weight      string `json:"weight,omitempty"`      // "155 lbs", "70 kg", or bare number
	DateOfBirth string `json:"date_of_birth,omitempty"` // ISO date, "2006-01-02"
	Source      string `json:"source,omitempty"`      // site this record was scraped from
}

// Key identifies this record within a batch for collision bookkeeping.
func (r SourceRecord) Key() string {
	name := strings.TrimSpace(r.Name)
	if r.Source != "" {
		return r.Source + "/" + name
	}
	return name
}

// Validate reports whether the record meets the engine's input contract.
func (r SourceRecord) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// CanonicalRecord is an authoritative roster entry with a stable identity.
// It shares the SourceRecord shape plus an opaque canonical id.
type CanonicalRecord struct {
	ID          string `json:"canonical_id"`
	Name        string `json:"name"`
	Division    string `json:"division,omitempty"`
	Record      string `json:"record,omitempty"`
	Age         int    `json:"age,omitempty"`
	Weight      string `json:"weight,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
}

// NameScores holds the individual similarity metrics behind a name confidence.
type NameScores struct {
	TokenSort float64 `json:"token_sort"`
	TokenSet  float64 `json:"token_set"`
	Partial   float64 `json:"partial"`
	Ratio     float64 `json:"ratio"`
}

// NameMatch is the outcome of comparing two fighter names.
type NameMatch struct {
	Scores      NameScores `json:"scores"`
	Confidence  float64    `json:"confidence"` // weighted blend, 0-100, two decimals
	NormalizedA string     `json:"normalized_a"`
	NormalizedB string     `json:"normalized_b"`
}

// Candidate is one canonical record evaluated against a source record.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Candidate struct {
	CanonicalID     string            `json:"canonical_id"`
	Name            string            `json:"name,omitempty"` // canonical display name, for reviewers
	NameConfidence  float64           `json:"name_confidence"`
	NameScores      NameScores        `json:"name_scores"`
	BonusPoints     int               `json:"bonus_points"`
	FinalConfidence float64           `json:"final_confidence"` // clamped to [0,100]
	Signals         map[string]string `json:"signals,omitempty"` // signal name -> observation, for audit
}

// Result is the engine's decision for one source record.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Result struct {
	Source            SourceRecord   `json:"source_record"`
	Best              *Candidate     `json:"best_candidate,omitempty"`
	Candidates        []Candidate    `json:"candidates,omitempty"` // retained top candidates, best first
	ConfidenceGap     float64        `json:"confidence_gap"`       // best minus runner-up, 100 when uncontested
	Classification    Classification `json:"classification"`
	NeedsManualReview bool           `json:"needs_manual_review"`
	Reasons           []string       `json:"reasons,omitempty"`        // e.g. "duplicate_conflict"
	ConflictsWith     string         `json:"conflicts_with,omitempty"` // key of the earlier claimant
	Error             string         `json:"error,omitempty"`          // set when the input was rejected
}
