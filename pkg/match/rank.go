package match

import (
	"fmt"
	"math"
	"sort"

	"github.com/codeGROOVE-dev/rematch/pkg/fighter"
	"github.com/codeGROOVE-dev/rematch/pkg/fuzzy"
)

// Rank scores a source record against every canonical fighter in the pool
// and classifies the best candidate. Canonical fighters whose name score
// falls below the candidate floor are dropped before signal scoring. Ties
// keep pool order, so ranking is deterministic for a given pool.
func (m *Matcher) Rank(src fighter.SourceRecord, pool []fighter.CanonicalRecord) (fighter.Result, error) {
	if err := src.Validate(); err != nil {
		return fighter.Result{}, fmt.Errorf("validate source record: %w", err)
	}

	res := fighter.Result{Source: src, Classification: fighter.ClassNoMatch}

	var candidates []fighter.Candidate
	for _, can := range pool {
		nm := fuzzy.ScoreWith(src.Name, can.Name, m.weights)
		if nm.Confidence < m.minNameConfidence {
			continue
		}
		assessment := m.Disambiguate(src, can, nm.Confidence)
		candidates = append(candidates, fighter.Candidate{
			CanonicalID:     can.ID,
			Name:            can.Name,
			NameConfidence:  nm.Confidence,
			NameScores:      nm.Scores,
			BonusPoints:     assessment.BonusPoints,
			FinalConfidence: assessment.FinalConfidence,
			Signals:         assessment.Signals,
		})
	}

	if len(candidates) == 0 {
		res.Reasons = append(res.Reasons, "no canonical fighter cleared the name confidence floor")
		m.logger.Debug("no candidates", "source", src.Key(), "pool", len(pool))
		return res, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].FinalConfidence > candidates[j].FinalConfidence
	})

	gap := 100.0
	if len(candidates) > 1 {
		gap = math.Round((candidates[0].FinalConfidence-candidates[1].FinalConfidence)*100) / 100
	}

	best := candidates[0]
	if len(candidates) > maxRetainedCandidates {
		candidates = candidates[:maxRetainedCandidates]
	}

	res.Best = &best
	res.Candidates = candidates
	res.ConfidenceGap = gap
	res.Classification = Classify(best.FinalConfidence, gap, m.thresholds)
	res.NeedsManualReview = res.Classification == fighter.ClassManualReview

	res.Reasons = append(res.Reasons, fmt.Sprintf("best candidate %q at %.2f", best.Name, best.FinalConfidence))
	if len(candidates) > 1 {
		res.Reasons = append(res.Reasons, fmt.Sprintf("runner-up %q within %.2f", candidates[1].Name, gap))
	}
	if best.FinalConfidence >= m.thresholds.AutoHigh && res.Classification == fighter.ClassAutoMedium {
		res.Reasons = append(res.Reasons, "lead over runner-up too narrow for automatic acceptance")
	}

	m.logger.Debug("ranked source record",
		"source", src.Key(),
		"best", best.CanonicalID,
		"confidence", best.FinalConfidence,
		"gap", gap,
		"classification", res.Classification)

	return res, nil
}
