package match

import "github.com/codeGROOVE-dev/rematch/pkg/fighter"

// MatchBatch resolves source records in input order. Each canonical fighter
// can be claimed once per batch: the first record to match it keeps the
// claim, and later records landing on the same canonical ID are demoted to
// manual review and marked with the key of the earlier claimant. Records
// that fail validation produce an in-band result carrying the error rather
// than aborting the batch.
func (m *Matcher) MatchBatch(srcs []fighter.SourceRecord, pool []fighter.CanonicalRecord) []fighter.Result {
	results := make([]fighter.Result, 0, len(srcs))
	claimed := make(map[string]string)

	for _, src := range srcs {
		res, err := m.Rank(src, pool)
		if err != nil {
			m.logger.Warn("skipping source record", "source", src.Key(), "error", err)
			results = append(results, fighter.Result{
				Source:         src,
				Classification: fighter.ClassNoMatch,
				Reasons:        []string{"rejected: " + err.Error()},
				Error:          err.Error(),
			})
			continue
		}

		if res.Best != nil && res.Classification != fighter.ClassNoMatch {
			id := res.Best.CanonicalID
			if holder, taken := claimed[id]; taken {
				if res.Classification != fighter.ClassManualReview {
					res.Classification = fighter.ClassManualReview
					res.NeedsManualReview = true
				}
				res.ConflictsWith = holder
				res.Reasons = append(res.Reasons, fighter.ReasonDuplicateConflict)
				m.logger.Warn("canonical fighter already claimed",
					"canonical", id,
					"claimed_by", holder,
					"source", src.Key())
			} else {
				claimed[id] = src.Key()
			}
		}

		results = append(results, res)
	}

	return results
}
