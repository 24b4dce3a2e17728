// Package export writes match results in formats meant for people, not
// pipelines. The CSV layout is one row per source record so a reviewer can
// sort and filter in a spreadsheet.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/codeGROOVE-dev/rematch/pkg/fighter"
)

// CSV writes one row per result: the source identity, the winning candidate
// if any, and the classification. Confidence values are formatted with two
// decimals to match the scoring scale.
func CSV(w io.Writer, results []fighter.Result) error {
	cw := csv.NewWriter(w)

	header := []string{
		"source", "source_name", "canonical_id", "canonical_name",
		"confidence", "gap", "classification", "conflicts_with", "reasons",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, res := range results {
		var id, name, confidence string
		if res.Best != nil {
			id = res.Best.CanonicalID
			name = res.Best.Name
			confidence = strconv.FormatFloat(res.Best.FinalConfidence, 'f', 2, 64)
		}
		row := []string{
			res.Source.Source,
			res.Source.Name,
			id,
			name,
			confidence,
			strconv.FormatFloat(res.ConfidenceGap, 'f', 2, 64),
			string(res.Classification),
			res.ConflictsWith,
			strings.Join(res.Reasons, "; "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", res.Source.Key(), err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
