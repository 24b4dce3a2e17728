// Package fuzzy scores how similar two fighter names are.
//
// Four metrics are computed over normalized names and blended into a single
// 0-100 confidence. Token-based metrics handle reordered and extra name
// parts; partial handles nicknames and appended text; plain ratio catches
// the rest.
package fuzzy

import (
	"math"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/codeGROOVE-dev/rematch/pkg/fighter"
	"github.com/codeGROOVE-dev/rematch/pkg/normalize"
)

// Weights blends the four name metrics into one confidence. They should sum
// to 1.0 so the blend stays on the 0-100 scale.
type Weights struct {
	TokenSort float64 `json:"token_sort" koanf:"token_sort"`
	TokenSet  float64 `json:"token_set"  koanf:"token_set"`
	Partial   float64 `json:"partial"    koanf:"partial"`
	Ratio     float64 `json:"ratio"      koanf:"ratio"`
}

// DefaultWeights returns the shipped blend. Token-sort and token-set are the
// most reliable metrics for personal names; partial and ratio are
// down-weighted to avoid false positives on short common names.
func DefaultWeights() Weights {
	return Weights{TokenSort: 0.4, TokenSet: 0.3, Partial: 0.2, Ratio: 0.1}
}

// Sum returns the total of the four weights.
func (w Weights) Sum() float64 {
	return w.TokenSort + w.TokenSet + w.Partial + w.Ratio
}

// Score compares two names with the default weights.
func Score(a, b string) fighter.NameMatch {
	return ScoreWith(a, b, DefaultWeights())
}

// ScoreWith normalizes both names, computes the four metrics, and blends
// them with the given weights. Confidence is rounded to two decimals.
func ScoreWith(a, b string, w Weights) fighter.NameMatch {
	na := normalize.Name(a)
	nb := normalize.Name(b)

	scores := fighter.NameScores{
		TokenSort: tokenSortRatio(na, nb),
		TokenSet:  tokenSetRatio(na, nb),
		Partial:   partialRatio(na, nb),
		Ratio:     ratio(na, nb),
	}

	conf := w.TokenSort*scores.TokenSort +
		w.TokenSet*scores.TokenSet +
		w.Partial*scores.Partial +
		w.Ratio*scores.Ratio

	return fighter.NameMatch{
		Scores:      scores,
		Confidence:  math.Round(conf*100) / 100,
		NormalizedA: na,
		NormalizedB: nb,
	}
}

// ratio is plain edit-distance similarity over whole strings, 0-100.
func ratio(a, b string) float64 {
	if a == b {
		return 100
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 100
	}
	d := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(d)/float64(longest))
}

// tokenSortRatio compares the names with their tokens sorted alphabetically,
// so "Aldo Jose" and "Jose Aldo" score as equals.
func tokenSortRatio(a, b string) float64 {
	return ratio(sortTokens(a), sortTokens(b))
}

func sortTokens(s string) string {
	fields := strings.Fields(s)
	slices.Sort(fields)
	return strings.Join(fields, " ")
}

// tokenSetRatio dedupes tokens and scores the intersection against each
// side's leftovers. When one name's tokens are a subset of the other's
// (middle names, suffixes) this returns 100.
func tokenSetRatio(a, b string) float64 {
	if a == "" || b == "" {
		return ratio(a, b)
	}

	ta := uniqueTokens(a)
	tb := uniqueTokens(b)

	var common, onlyA, onlyB []string
	for _, tok := range ta {
		if slices.Contains(tb, tok) {
			common = append(common, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for _, tok := range tb {
		if !slices.Contains(ta, tok) {
			onlyB = append(onlyB, tok)
		}
	}

	slices.Sort(common)
	slices.Sort(onlyA)
	slices.Sort(onlyB)

	base := strings.Join(common, " ")
	withA := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	withB := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	return max(ratio(base, withA), ratio(base, withB), ratio(withA, withB))
}

func uniqueTokens(s string) []string {
	var out []string
	for _, tok := range strings.Fields(s) {
		if !slices.Contains(out, tok) {
			out = append(out, tok)
		}
	}
	return out
}

// partialRatio slides the shorter name across the longer one and keeps the
// best window score. Tolerant of appended nicknames and trailing text.
func partialRatio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		if len(rb) == 0 {
			return 100
		}
		return 0
	}
	if len(ra) == len(rb) {
		return ratio(string(ra), string(rb))
	}

	var best float64
	for i := 0; i+len(ra) <= len(rb); i++ {
		s := ratio(string(ra), string(rb[i:i+len(ra)]))
		if s > best {
			best = s
			if best == 100 {
				break
			}
		}
	}
	return best
}
