package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"ats-engine/internal/models"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candidates.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseCandidatesCSV(t *testing.T) {
	sheets := NewSheetService()

	path := writeTempCSV(t, `Full Name,Resume URL,Photo URL
Alice,https://example.com/alice.pdf,https://example.com/alice.jpg
Bob,https://example.com/bob.pdf,
,https://example.com/anon.pdf,
Dave,,
`)

	candidates, err := sheets.ParseCandidates(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Dave has no link and is skipped entirely.
	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}

	if candidates[0].Name != "Alice" || candidates[0].URL != "https://example.com/alice.pdf" {
		t.Fatalf("unexpected first candidate: %+v", candidates[0])
	}
	if candidates[0].PhotoLink != "https://example.com/alice.jpg" {
		t.Fatalf("expected photo link, got %q", candidates[0].PhotoLink)
	}
	if candidates[0].Source != models.SourceURL {
		t.Fatalf("expected URL source, got %s", candidates[0].Source)
	}

	// Row 3 has no name; a placeholder is generated from the row number.
	if candidates[2].Name != "Candidate 3" {
		t.Fatalf("expected placeholder name, got %q", candidates[2].Name)
	}
}

func TestParseCandidatesColumnDetection(t *testing.T) {
	sheets := NewSheetService()

	// Column detection is case-insensitive and substring-based.
	path := writeTempCSV(t, `candidate_name,CV Link,profile picture
Alice,https://example.com/alice.pdf,pic.jpg
`)

	candidates, err := sheets.ParseCandidates(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Name != "Alice" || candidates[0].PhotoLink != "pic.jpg" {
		t.Fatalf("unexpected candidate: %+v", candidates[0])
	}
}

func TestParseCandidatesMissingLinkColumn(t *testing.T) {
	sheets := NewSheetService()

	path := writeTempCSV(t, `Name,Phone
Alice,555-0101
`)

	if _, err := sheets.ParseCandidates(path); err == nil {
		t.Fatal("expected error for missing link column")
	}
}

func TestParseCandidatesXLSX(t *testing.T) {
	sheets := NewSheetService()

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Name", "Resume Link"},
		{"Alice", "https://example.com/alice.pdf"},
		{"Bob", "https://example.com/bob.pdf"},
	}
	for i, row := range rows {
		for j, value := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			if err := f.SetCellValue("Sheet1", cell, value); err != nil {
				t.Fatal(err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "candidates.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	candidates, err := sheets.ParseCandidates(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[1].Name != "Bob" {
		t.Fatalf("unexpected second candidate: %+v", candidates[1])
	}
}
