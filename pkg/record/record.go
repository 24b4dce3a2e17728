// Package record parses win-loss-draw fight records and scores how well two
// records agree.
package record

import (
	"strconv"
	"strings"
)

// Parse extracts wins, losses, and draws from a record string such as
// "28-7-0" or "28-7-0 (1 NC)". A parenthesized suffix is ignored. Anything
// that does not yield three leading numeric parts parses as 0-0-0.
func Parse(s string) (wins, losses, draws int) {
	if i := strings.Index(s, "("); i >= 0 {
		s = s[:i]
	}
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) < 3 {
		return 0, 0, 0
	}
	var nums [3]int
	for i := range nums {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return 0, 0, 0
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2]
}

// Similarity scores the agreement of two record strings on a 0-100 scale.
//
// A record with zero wins and zero losses carries no signal and scores 0.
// Totals that differ by more than 20% score a flat 20. Otherwise the score
// falls in bands by the summed per-column difference d: 100 for an exact
// match, 85-75 for d of 1-2, 65-45 for d of 3-5, and a floor of 30 beyond
// that.
func Similarity(a, b string) float64 {
	aw, al, ad := Parse(a)
	bw, bl, bd := Parse(b)

	if (aw == 0 && al == 0) || (bw == 0 && bl == 0) {
		return 0
	}

	ta := aw + al + ad
	tb := bw + bl + bd
	if float64(abs(ta-tb))/float64(max(ta, tb)) > 0.20 {
		return 20
	}

	d := abs(aw-bw) + abs(al-bl) + abs(ad-bd)
	switch {
	case d == 0:
		return 100
	case d <= 2:
		return float64(85 - 10*(d-1))
	case d <= 5:
		return float64(65 - 10*(d-3))
	default:
		return 30
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
