package services

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractorService turns a local resume file into plain text. Extraction
// failure yields an empty string, never an error; the caller treats empty
// text as a scoring-ineligible resume.
type ExtractorService interface {
	Extract(filePath string) string
}

type extractorService struct{}

func NewExtractorService() ExtractorService {
	return &extractorService{}
}

func (e *extractorService) Extract(filePath string) string {
	if filePath == "" {
		return ""
	}
	if _, err := os.Stat(filePath); err != nil {
		return ""
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		return extractPDF(filePath)
	case ".docx", ".doc":
		return extractDocx(filePath)
	case ".txt":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(data))
	default:
		// Unknown extensions are most likely PDFs behind a generic
		// download URL.
		return extractPDF(filePath)
	}
}

// extractPDF tries the plain-text pass first and falls back to row-based
// extraction for documents where the plain-text pass yields nothing.
func extractPDF(filePath string) string {
	text := extractPDFPlainText(filePath)
	if strings.TrimSpace(text) == "" {
		text = extractPDFByRows(filePath)
	}
	return strings.TrimSpace(text)
}

func extractPDFPlainText(filePath string) (text string) {
	// The parser panics on some malformed files; treat that as no text.
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return ""
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String()
}

func extractPDFByRows(filePath string) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return ""
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}

		for _, row := range rows {
			for _, word := range row.Content {
				textBuilder.WriteString(word.S)
				textBuilder.WriteString(" ")
			}
			textBuilder.WriteString("\n")
		}
	}

	return textBuilder.String()
}

// docx files are zip archives; the document body lives in word/document.xml.
// Paragraph boundaries (w:p) become newlines.
func extractDocx(filePath string) string {
	reader, err := zip.OpenReader(filePath)
	if err != nil {
		return ""
	}
	defer reader.Close()

	var docFile *zip.File
	for _, f := range reader.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return ""
	}

	rc, err := docFile.Open()
	if err != nil {
		return ""
	}
	defer rc.Close()

	var textBuilder strings.Builder
	decoder := xml.NewDecoder(rc)
	inText := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ""
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.CharData:
			if inText {
				textBuilder.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				textBuilder.WriteString("\n")
			}
		}
	}

	return strings.TrimSpace(textBuilder.String())
}
