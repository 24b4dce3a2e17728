package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/codeGROOVE-dev/rematch/pkg/fighter"
)

func TestCSV(t *testing.T) {
	results := []fighter.Result{
		{
			Source: fighter.SourceRecord{Name: "José Aldo", Source: "sherdog"},
			Best: &fighter.Candidate{
				CanonicalID:     "ufc-jose-aldo",
				Name:            "Jose Aldo",
				FinalConfidence: 100,
			},
			ConfidenceGap:  38.5,
			Classification: fighter.ClassAutoHigh,
			Reasons:        []string{`best candidate "Jose Aldo" at 100.00`},
		},
		{
			Source:         fighter.SourceRecord{Name: "Bob Smith", Source: "tapology"},
			Classification: fighter.ClassNoMatch,
		},
	}

	var buf bytes.Buffer
	if err := CSV(&buf, results); err != nil {
		t.Fatalf("CSV() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want header plus 2 results", len(rows))
	}
	if rows[0][0] != "source" || rows[0][6] != "classification" {
		t.Errorf("header = %v, want source and classification columns", rows[0])
	}

	matched := rows[1]
	if matched[2] != "ufc-jose-aldo" {
		t.Errorf("canonical_id = %q, want %q", matched[2], "ufc-jose-aldo")
	}
	if matched[4] != "100.00" {
		t.Errorf("confidence = %q, want %q", matched[4], "100.00")
	}
	if matched[5] != "38.50" {
		t.Errorf("gap = %q, want %q", matched[5], "38.50")
	}

	unmatched := rows[2]
	if unmatched[2] != "" || unmatched[4] != "" {
		t.Errorf("unmatched candidate cells = (%q, %q), want empty", unmatched[2], unmatched[4])
	}
	if unmatched[6] != string(fighter.ClassNoMatch) {
		t.Errorf("classification = %q, want %q", unmatched[6], fighter.ClassNoMatch)
	}
}

func TestCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, nil); err != nil {
		t.Fatalf("CSV() error = %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("len(rows) = %d, want header only", len(rows))
	}
}
