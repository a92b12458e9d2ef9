package services

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/xuri/excelize/v2"

	"ats-engine/internal/models"
)

const reportSheetName = "ATS Results"

// Fixed column order of the rendered report.
var reportColumns = []string{
	"Serial Number", "Candidate Name", "Phone Number", "Email", "Status",
	"ATS Score", "Resume Summary", "Missing Requirements",
	"Job Description Summary", "Target Job Role", "Best Fit Role",
	"Resume Link", "Photo Link", "Recommendation",
}

const scoreColumn = 6

type ExportService interface {
	// Render produces the styled spreadsheet report: rows sorted by ATS
	// score descending, numbered sequentially, score cells color-coded.
	Render(results models.BatchResult) ([]byte, error)
}

type exportService struct{}

func NewExportService() ExportService {
	return &exportService{}
}

func (e *exportService) Render(results models.BatchResult) ([]byte, error) {
	sorted := make(models.BatchResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ATSScore > sorted[j].ATSScore
	})

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheetName); err != nil {
		return nil, fmt.Errorf("failed to set sheet name: %w", err)
	}

	for col, header := range reportColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(reportSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	widths := make([]int, len(reportColumns))
	for col, header := range reportColumns {
		widths[col] = len(header)
	}

	for i, result := range sorted {
		values := []interface{}{
			i + 1,
			result.CandidateName,
			result.PhoneNumber,
			result.Email,
			result.Status,
			result.ATSScore,
			result.ResumeSummary,
			result.MissingReqs,
			result.JDSummary,
			result.TargetJobRole,
			result.BestFitRole,
			result.ResumeLink,
			result.PhotoLink,
			string(result.Recommendation),
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell name: %w", err)
			}
			if err := f.SetCellValue(reportSheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
			if l := len(fmt.Sprintf("%v", value)); l > widths[col] {
				widths[col] = l
			}
		}
	}

	if err := e.applyStyles(f, sorted); err != nil {
		return nil, err
	}

	for col, width := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve column name: %w", err)
		}
		w := float64(width + 4)
		if w > 50 {
			w = 50
		}
		if err := f.SetColWidth(reportSheetName, name, name, w); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report: %w", err)
	}

	return buf.Bytes(), nil
}

func (e *exportService) applyStyles(f *excelize.File, sorted models.BatchResult) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1F4E79"}, Pattern: 1},
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			WrapText:   true,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(reportColumns), 1)
	if err != nil {
		return fmt.Errorf("failed to build header range: %w", err)
	}
	if err := f.SetCellStyle(reportSheetName, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	scoreStyle := func(color string) (int, error) {
		return f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
	}

	green, err := scoreStyle("C6EFCE")
	if err != nil {
		return fmt.Errorf("failed to create score style: %w", err)
	}
	yellow, err := scoreStyle("FFEB9C")
	if err != nil {
		return fmt.Errorf("failed to create score style: %w", err)
	}
	red, err := scoreStyle("FFC7CE")
	if err != nil {
		return fmt.Errorf("failed to create score style: %w", err)
	}

	scoreCol, err := excelize.ColumnNumberToName(scoreColumn)
	if err != nil {
		return fmt.Errorf("failed to resolve score column: %w", err)
	}

	for i, result := range sorted {
		style := red
		switch {
		case result.ATSScore >= 70:
			style = green
		case result.ATSScore >= 50:
			style = yellow
		}

		cell := scoreCol + strconv.Itoa(i+2)
		if err := f.SetCellStyle(reportSheetName, cell, cell, style); err != nil {
			return fmt.Errorf("failed to style score cell: %w", err)
		}
	}

	return nil
}
