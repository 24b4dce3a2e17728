package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/codeGROOVE-dev/rematch/pkg/fighter"
	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadSourcesJSON(t *testing.T) {
	path := writeFile(t, "sources.json", `[
		{"name": "José Aldo", "division": "Featherweight", "record": "28-7-0", "age": 38, "source": "sherdog"},
		{"name": "Jan Błachowicz", "weight": "205 lbs", "date_of_birth": "1983-02-24"}
	]`)

	got, err := LoadSources(path)
	if err != nil {
		t.Fatalf("LoadSources() error = %v", err)
	}

	want := []fighter.SourceRecord{
		{Name: "José Aldo", Division: "Featherweight", Record: "28-7-0", Age: 38, Source: "sherdog"},
		{Name: "Jan Błachowicz", Weight: "205 lbs", DateOfBirth: "1983-02-24"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadSources() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSourcesCSV(t *testing.T) {
	path := writeFile(t, "sources.csv",
		"source,name,division,record,age,weight,date_of_birth\n"+
			"sherdog,Jose Aldo,Featherweight,28-7-0,38,145 lbs,1986-09-09\n"+
			"tapology,Jan Blachowicz,Light Heavyweight,29-10-1,,205,\n")

	got, err := LoadSources(path)
	if err != nil {
		t.Fatalf("LoadSources() error = %v", err)
	}

	want := []fighter.SourceRecord{
		{Name: "Jose Aldo", Division: "Featherweight", Record: "28-7-0", Age: 38, Weight: "145 lbs", DateOfBirth: "1986-09-09", Source: "sherdog"},
		{Name: "Jan Blachowicz", Division: "Light Heavyweight", Record: "29-10-1", Weight: "205", Source: "tapology"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadSources() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSourcesCSVColumnOrder(t *testing.T) {
	path := writeFile(t, "sources.csv",
		"record,name\n28-7-0,Jose Aldo\n")

	got, err := LoadSources(path)
	if err != nil {
		t.Fatalf("LoadSources() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "Jose Aldo" || got[0].Record != "28-7-0" {
		t.Errorf("LoadSources() = %+v, want name and record from reordered columns", got)
	}
}

func TestLoadCanonicalJSON(t *testing.T) {
	path := writeFile(t, "roster.json", `[
		{"canonical_id": "ufc-jose-aldo", "name": "Jose Aldo", "division": "Featherweight", "record": "28-7-0"}
	]`)

	got, err := LoadCanonical(path)
	if err != nil {
		t.Fatalf("LoadCanonical() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "ufc-jose-aldo" {
		t.Errorf("LoadCanonical() = %+v, want canonical_id mapped to ID", got)
	}
}

func TestLoadCanonicalCSVIDFallback(t *testing.T) {
	path := writeFile(t, "roster.csv", "id,name\nufc-jose-aldo,Jose Aldo\n")

	got, err := LoadCanonical(path)
	if err != nil {
		t.Fatalf("LoadCanonical() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "ufc-jose-aldo" {
		t.Errorf("LoadCanonical() = %+v, want id column used when canonical_id is absent", got)
	}
}

func TestLoadSourcesErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "unsupported extension", file: "sources.yaml", content: "- name: x"},
		{name: "malformed json", file: "sources.json", content: "{not json"},
		{name: "empty csv", file: "sources.csv", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			if _, err := LoadSources(path); err == nil {
				t.Error("LoadSources() error = nil, want failure")
			}
		})
	}
}

func TestLoadSourcesMissingFile(t *testing.T) {
	if _, err := LoadSources(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("LoadSources() error = nil, want failure for missing file")
	}
}
