package match

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/rematch/pkg/fighter"
	"github.com/codeGROOVE-dev/rematch/pkg/normalize"
	"github.com/codeGROOVE-dev/rematch/pkg/record"
)

// kgToLb converts kilograms to pounds.
const kgToLb = 2.20462

// Assessment is the outcome of signal scoring for one source-canonical pair.
// Signals holds a human-readable audit entry per evaluated signal; signals
// missing on either side are skipped entirely and never penalized.
type Assessment struct {
	Signals         map[string]string
	BonusPoints     int
	FinalConfidence float64
}

// Disambiguate applies the corroborating signals to a name confidence and
// returns the adjusted final confidence, clamped to 0-100.
func (m *Matcher) Disambiguate(src fighter.SourceRecord, can fighter.CanonicalRecord, nameConfidence float64) Assessment {
	signals := make(map[string]string)
	points := 0

	if srcDiv, canDiv := normalize.Name(src.Division), normalize.Name(can.Division); srcDiv != "" && canDiv != "" {
		if srcDiv == canDiv {
			points += m.bonuses.Division
			signals["division"] = fmt.Sprintf("match (%+d)", m.bonuses.Division)
		} else {
			signals["division"] = "mismatch (+0)"
		}
	}

	if recordKnown(src.Record) && recordKnown(can.Record) {
		sim := record.Similarity(src.Record, can.Record)
		pts := 0
		switch {
		case sim >= RecordAgreeMin:
			pts = m.bonuses.RecordAgree
		case sim <= RecordDisagreeMax:
			pts = m.bonuses.RecordDisagree
		}
		points += pts
		signals["record"] = fmt.Sprintf("similarity %.0f (%+d)", sim, pts)
	}

	srcAge, srcOK := ageYears(src.DateOfBirth, src.Age)
	canAge, canOK := ageYears(can.DateOfBirth, can.Age)
	if srcOK && canOK {
		diff := srcAge - canAge
		if diff < 0 {
			diff = -diff
		}
		pts := 0
		switch {
		case diff <= AgeCloseYears:
			pts = m.bonuses.AgeClose
		case diff >= AgeFarYears:
			pts = m.bonuses.AgeFar
		}
		points += pts
		signals["age"] = fmt.Sprintf("diff %.1fy (%+d)", diff, pts)
	}

	srcLb, srcOK := parseWeightLb(src.Weight)
	canLb, canOK := parseWeightLb(can.Weight)
	if srcOK && canOK {
		diff := srcLb - canLb
		if diff < 0 {
			diff = -diff
		}
		pts := 0
		switch {
		case diff <= WeightCloseLb:
			pts = m.bonuses.WeightClose
		case diff >= WeightFarLb:
			pts = m.bonuses.WeightFar
		}
		points += pts
		signals["weight"] = fmt.Sprintf("diff %.1flb (%+d)", diff, pts)
	}

	return Assessment{
		Signals:         signals,
		BonusPoints:     points,
		FinalConfidence: min(100, max(0, nameConfidence+float64(points))),
	}
}

// recordKnown reports whether a record string parses to something with at
// least one win or loss. Zero-zero and unparseable records carry no signal.
func recordKnown(s string) bool {
	wins, losses, _ := record.Parse(s)
	return wins != 0 || losses != 0
}

// ageYears returns the fighter's age in years, preferring a parseable
// date of birth over a stated integer age.
func ageYears(dob string, age int) (float64, bool) {
	if t, ok := parseDOB(dob); ok {
		return time.Since(t).Hours() / (24 * 365.25), true
	}
	if age > 0 {
		return float64(age), true
	}
	return 0, false
}

// parseDOB parses an ISO date, tolerating a trailing time component.
func parseDOB(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseWeightLb parses a weight string into pounds. Bare numbers are read
// as pounds; kg suffixes convert.
func parseWeightLb(s string) (float64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	factor := 1.0
	for _, suffix := range []string{"kilograms", "kgs", "kg"} {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			factor = kgToLb
			break
		}
	}
	if factor == 1.0 {
		for _, suffix := range []string{"pounds", "lbs", "lb"} {
			if strings.HasSuffix(s, suffix) {
				s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
				break
			}
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v * factor, true
}
