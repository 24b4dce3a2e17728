package match

import (
	"testing"

	"github.com/codeGROOVE-dev/rematch/pkg/fighter"
)

func TestClassify(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		name  string
		final float64
		gap   float64
		want  fighter.Classification
	}{
		{"high score with clear lead", 95, 15, fighter.ClassAutoHigh},
		{"perfect score unopposed", 100, 100, fighter.ClassAutoHigh},
		{"high score with narrow lead", 95, 14.99, fighter.ClassAutoMedium},
		{"high score with no lead", 100, 0, fighter.ClassAutoMedium},
		{"medium boundary", 85, 100, fighter.ClassAutoMedium},
		{"just below medium", 84.99, 100, fighter.ClassManualReview},
		{"review boundary", 70, 100, fighter.ClassManualReview},
		{"just below review", 69.99, 100, fighter.ClassNoMatch},
		{"zero", 0, 0, fighter.ClassNoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.final, tt.gap, th); got != tt.want {
				t.Errorf("Classify(%.2f, %.2f) = %q, want %q", tt.final, tt.gap, got, tt.want)
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	m := New()
	if m.minNameConfidence != DefaultMinNameConfidence {
		t.Errorf("minNameConfidence = %v, want %v", m.minNameConfidence, DefaultMinNameConfidence)
	}
	if m.bonuses != DefaultBonuses() {
		t.Errorf("bonuses = %+v, want defaults", m.bonuses)
	}
	if m.thresholds != DefaultThresholds() {
		t.Errorf("thresholds = %+v, want defaults", m.thresholds)
	}
}

func TestOptions(t *testing.T) {
	m := New(
		WithMinNameConfidence(80),
		WithThresholds(Thresholds{AutoHigh: 99, HighGap: 1, AutoMedium: 90, Review: 80}),
	)
	if m.minNameConfidence != 80 {
		t.Errorf("minNameConfidence = %v, want 80", m.minNameConfidence)
	}
	if m.thresholds.AutoHigh != 99 {
		t.Errorf("thresholds.AutoHigh = %v, want 99", m.thresholds.AutoHigh)
	}
}
