package fuzzy

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		a       string
		b       string
		wantMin float64
		wantMax float64
	}{
		{
			name:    "identical names",
			a:       "Jose Aldo",
			b:       "Jose Aldo",
			wantMin: 100,
			wantMax: 100,
		},
		{
			name:    "identical after normalization",
			a:       "José Aldo",
			b:       "jose  aldo",
			wantMin: 100,
			wantMax: 100,
		},
		{
			name:    "reordered tokens",
			a:       "Aldo Jose",
			b:       "Jose Aldo",
			wantMin: 70,
			wantMax: 90,
		},
		{
			name:    "full name versus short form",
			a:       "Jose Aldo da Silva Oliveira Junior",
			b:       "Jose Aldo",
			wantMin: 55,
			wantMax: 90,
		},
		{
			name:    "similar but distinct fighter",
			a:       "Joselito Aldo",
			b:       "Jose Aldo",
			wantMin: 55,
			wantMax: 80,
		},
		{
			name:    "diacritics versus ascii",
			a:       "Joanna Jędrzejczyk",
			b:       "Joanna Jedrzejczyk",
			wantMin: 100,
			wantMax: 100,
		},
		{
			name:    "unrelated names",
			a:       "Bob Smith",
			b:       "Jose Aldo",
			wantMin: 0,
			wantMax: 40,
		},
		{
			name:    "single shared surname",
			a:       "Anderson Silva",
			b:       "Thiago Silva",
			wantMin: 25,
			wantMax: 70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Score(tt.a, tt.b)
			if m.Confidence < tt.wantMin || m.Confidence > tt.wantMax {
				t.Errorf("Score(%q, %q).Confidence = %.2f, want in [%.0f, %.0f]",
					tt.a, tt.b, m.Confidence, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestScoreMetricBounds(t *testing.T) {
	pairs := [][2]string{
		{"Jose Aldo", "Jose Aldo"},
		{"Aldo Jose", "Jose Aldo"},
		{"Jose Aldo da Silva Oliveira Junior", "Jose Aldo"},
		{"Bob Smith", "Jose Aldo"},
		{"", "Jose Aldo"},
		{"", ""},
	}

	for _, p := range pairs {
		m := Score(p[0], p[1])
		for metric, v := range map[string]float64{
			"token_sort": m.Scores.TokenSort,
			"token_set":  m.Scores.TokenSet,
			"partial":    m.Scores.Partial,
			"ratio":      m.Scores.Ratio,
			"confidence": m.Confidence,
		} {
			if v < 0 || v > 100 {
				t.Errorf("Score(%q, %q) %s = %.2f, want in [0, 100]", p[0], p[1], metric, v)
			}
		}
	}
}

func TestScoreSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"Jose Aldo", "Aldo Jose"},
		{"Anderson Silva", "Thiago Silva"},
		{"Jose Aldo da Silva Oliveira Junior", "Jose Aldo"},
		{"Joanna Jędrzejczyk", "Joanna Jedrzejczyk"},
	}

	for _, p := range pairs {
		ab := Score(p[0], p[1])
		ba := Score(p[1], p[0])
		if ab.Scores.TokenSort != ba.Scores.TokenSort {
			t.Errorf("token_sort(%q, %q) = %.2f, reversed = %.2f", p[0], p[1], ab.Scores.TokenSort, ba.Scores.TokenSort)
		}
		if ab.Scores.TokenSet != ba.Scores.TokenSet {
			t.Errorf("token_set(%q, %q) = %.2f, reversed = %.2f", p[0], p[1], ab.Scores.TokenSet, ba.Scores.TokenSet)
		}
		if ab.Scores.Ratio != ba.Scores.Ratio {
			t.Errorf("ratio(%q, %q) = %.2f, reversed = %.2f", p[0], p[1], ab.Scores.Ratio, ba.Scores.Ratio)
		}
	}
}

func TestTokenSetSubsumesShortForm(t *testing.T) {
	m := Score("Jose Aldo da Silva Oliveira Junior", "Jose Aldo")
	if m.Scores.TokenSet != 100 {
		t.Errorf("token_set for subset names = %.2f, want 100", m.Scores.TokenSet)
	}
	if m.Scores.Partial != 100 {
		t.Errorf("partial for contained names = %.2f, want 100", m.Scores.Partial)
	}
}

func TestScoreWith(t *testing.T) {
	w := Weights{TokenSort: 1}
	m := ScoreWith("Aldo Jose", "Jose Aldo", w)
	if m.Confidence != m.Scores.TokenSort {
		t.Errorf("confidence with token_sort-only weights = %.2f, want %.2f", m.Confidence, m.Scores.TokenSort)
	}
}

func TestDefaultWeightsSum(t *testing.T) {
	if got := DefaultWeights().Sum(); got != 1.0 {
		t.Errorf("DefaultWeights().Sum() = %v, want 1.0", got)
	}
}
