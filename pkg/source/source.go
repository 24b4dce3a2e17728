// Package source loads fighter records from JSON and CSV files. The file
// extension picks the format; CSV columns are matched by header name so
// column order does not matter.
package source

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/codeGROOVE-dev/rematch/pkg/fighter"
)

// LoadSources reads source records from a .json or .csv file.
func LoadSources(path string) ([]fighter.SourceRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var recs []fighter.SourceRecord
		if err := readJSON(path, &recs); err != nil {
			return nil, err
		}
		return recs, nil
	case ".csv":
		header, rows, err := readCSV(path)
		if err != nil {
			return nil, err
		}
		recs := make([]fighter.SourceRecord, 0, len(rows))
		for _, row := range rows {
			recs = append(recs, fighter.SourceRecord{
				Name:        field(row, header, "name"),
				Division:    field(row, header, "division"),
				Record:      field(row, header, "record"),
				Age:         intField(row, header, "age"),
				Weight:      field(row, header, "weight"),
				DateOfBirth: field(row, header, "date_of_birth"),
				Source:      field(row, header, "source"),
			})
		}
		return recs, nil
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", fighter.ErrInvalidInput, filepath.Ext(path))
	}
}

// LoadCanonical reads the canonical roster from a .json or .csv file. CSV
// rosters take the ID from a canonical_id column, falling back to id.
func LoadCanonical(path string) ([]fighter.CanonicalRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var recs []fighter.CanonicalRecord
		if err := readJSON(path, &recs); err != nil {
			return nil, err
		}
		return recs, nil
	case ".csv":
		header, rows, err := readCSV(path)
		if err != nil {
			return nil, err
		}
		recs := make([]fighter.CanonicalRecord, 0, len(rows))
		for _, row := range rows {
			id := field(row, header, "canonical_id")
			if id == "" {
				id = field(row, header, "id")
			}
			recs = append(recs, fighter.CanonicalRecord{
				ID:          id,
				Name:        field(row, header, "name"),
				Division:    field(row, header, "division"),
				Record:      field(row, header, "record"),
				Age:         intField(row, header, "age"),
				Weight:      field(row, header, "weight"),
				DateOfBirth: field(row, header, "date_of_birth"),
			})
		}
		return recs, nil
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", fighter.ErrInvalidInput, filepath.Ext(path))
	}
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func readCSV(path string) (header map[string]int, rows [][]string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true
	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%w: %s has no header row", fighter.ErrInvalidInput, path)
	}
	header = make(map[string]int, len(all[0]))
	for i, name := range all[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return header, all[1:], nil
}

func field(row []string, header map[string]int, name string) string {
	i, ok := header[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func intField(row []string, header map[string]int, name string) int {
	n, err := strconv.Atoi(field(row, header, name))
	if err != nil {
		return 0
	}
	return n
}
