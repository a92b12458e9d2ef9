package services

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"ats-engine/internal/models"
)

// SheetService reads the uploaded candidate sheet (CSV or XLSX) and builds
// the candidate list. Columns are auto-detected by header name.
type SheetService interface {
	ParseCandidates(filePath string) ([]models.Candidate, error)
}

type sheetService struct{}

func NewSheetService() SheetService {
	return &sheetService{}
}

func (s *sheetService) ParseCandidates(filePath string) ([]models.Candidate, error) {
	var rows [][]string
	var err error

	if strings.EqualFold(filepath.Ext(filePath), ".xlsx") {
		rows, err = readXLSX(filePath)
	} else {
		rows, err = readCSV(filePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read candidate file: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("candidate file is empty")
	}

	header := rows[0]
	urlCol := findColumn(header, "url", "resume", "link")
	nameCol := findColumn(header, "name")
	photoCol := findColumn(header, "photo", "image", "picture")

	if urlCol == -1 {
		return nil, fmt.Errorf("could not find a URL/Resume/Link column. Available columns: %v", header)
	}

	var candidates []models.Candidate
	for i, row := range rows[1:] {
		url := strings.TrimSpace(cellAt(row, urlCol))
		if url == "" {
			continue
		}

		name := strings.TrimSpace(cellAt(row, nameCol))
		if name == "" {
			name = fmt.Sprintf("Candidate %d", i+1)
		}

		candidates = append(candidates, models.Candidate{
			Name:      name,
			Source:    models.SourceURL,
			URL:       url,
			PhotoLink: strings.TrimSpace(cellAt(row, photoCol)),
		})
	}

	return candidates, nil
}

func readCSV(filePath string) ([][]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func readXLSX(filePath string) ([][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	return f.GetRows(sheets[0])
}

// findColumn returns the index of the first header containing any of the
// needles, case-insensitive. -1 if none match.
func findColumn(header []string, needles ...string) int {
	for i, col := range header {
		lower := strings.ToLower(col)
		for _, needle := range needles {
			if strings.Contains(lower, needle) {
				return i
			}
		}
	}
	return -1
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
