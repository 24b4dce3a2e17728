package match

import (
	"slices"
	"testing"

	"github.com/codeGROOVE-dev/rematch/pkg/fighter"
)

func TestMatchBatchDuplicateClaim(t *testing.T) {
	m := New()
	pool := []fighter.CanonicalRecord{
		{ID: "ufc-jose-aldo", Name: "Jose Aldo"},
	}
	srcs := []fighter.SourceRecord{
		{Name: "Jose Aldo", Source: "sherdog"},
		{Name: "Jose Aldo", Source: "tapology"},
	}

	results := m.MatchBatch(srcs, pool)
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	first := results[0]
	if first.Classification != fighter.ClassAutoHigh {
		t.Errorf("first Classification = %q, want %q", first.Classification, fighter.ClassAutoHigh)
	}
	if first.ConflictsWith != "" {
		t.Errorf("first ConflictsWith = %q, want empty", first.ConflictsWith)
	}

	second := results[1]
	if second.Classification != fighter.ClassManualReview {
		t.Errorf("second Classification = %q, want %q", second.Classification, fighter.ClassManualReview)
	}
	if !second.NeedsManualReview {
		t.Error("second NeedsManualReview = false, want true")
	}
	if second.ConflictsWith != "sherdog/Jose Aldo" {
		t.Errorf("second ConflictsWith = %q, want %q", second.ConflictsWith, "sherdog/Jose Aldo")
	}
	if !slices.Contains(second.Reasons, fighter.ReasonDuplicateConflict) {
		t.Errorf("second Reasons = %v, want to contain %q", second.Reasons, fighter.ReasonDuplicateConflict)
	}
}

func TestMatchBatchOrderDecidesConflicts(t *testing.T) {
	m := New()
	pool := []fighter.CanonicalRecord{{ID: "ufc-jose-aldo", Name: "Jose Aldo"}}
	a := fighter.SourceRecord{Name: "Jose Aldo", Source: "sherdog"}
	b := fighter.SourceRecord{Name: "Jose Aldo", Source: "tapology"}

	for _, order := range [][]fighter.SourceRecord{{a, b}, {b, a}} {
		results := m.MatchBatch(order, pool)
		if results[0].ConflictsWith != "" {
			t.Errorf("first record in order lost its claim: ConflictsWith = %q", results[0].ConflictsWith)
		}
		if results[1].ConflictsWith != order[0].Key() {
			t.Errorf("second ConflictsWith = %q, want %q", results[1].ConflictsWith, order[0].Key())
		}
	}
}

func TestMatchBatchNoMatchDoesNotClaim(t *testing.T) {
	m := New()
	pool := []fighter.CanonicalRecord{{ID: "ufc-jose-aldo", Name: "Jose Aldo"}}
	srcs := []fighter.SourceRecord{
		{Name: "Bob Smith", Source: "sherdog"},
		{Name: "Jose Aldo", Source: "tapology"},
	}

	results := m.MatchBatch(srcs, pool)
	if results[0].Classification != fighter.ClassNoMatch {
		t.Fatalf("first Classification = %q, want %q", results[0].Classification, fighter.ClassNoMatch)
	}
	if results[1].Classification != fighter.ClassAutoHigh {
		t.Errorf("second Classification = %q, want %q", results[1].Classification, fighter.ClassAutoHigh)
	}
	if results[1].ConflictsWith != "" {
		t.Errorf("second ConflictsWith = %q, want empty", results[1].ConflictsWith)
	}
}

func TestMatchBatchInvalidRecordInBand(t *testing.T) {
	m := New()
	pool := []fighter.CanonicalRecord{{ID: "ufc-jose-aldo", Name: "Jose Aldo"}}
	srcs := []fighter.SourceRecord{
		{Name: "Jose Aldo", Source: "sherdog"},
		{Name: "", Source: "tapology"},
	}

	results := m.MatchBatch(srcs, pool)
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[1].Error == "" {
		t.Error("invalid record Error = empty, want validation message")
	}
	if results[1].Classification != fighter.ClassNoMatch {
		t.Errorf("invalid record Classification = %q, want %q", results[1].Classification, fighter.ClassNoMatch)
	}
}
