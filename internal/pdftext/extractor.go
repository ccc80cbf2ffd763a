// Package pdftext extracts plain text from uploaded report files so the
// extraction engine can parse it line by line.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"careflow/internal/domain"
	"careflow/internal/port"
)

type extractor struct{}

// NewExtractor creates a TextExtractor that handles PDF and plain text input.
func NewExtractor() port.TextExtractor {
	return &extractor{}
}

func (e *extractor) ExtractText(_ context.Context, data []byte, contentType string) (string, error) {
	switch {
	case strings.Contains(contentType, "pdf"):
		return extractPDF(data)
	case strings.HasPrefix(contentType, "text/"), contentType == "":
		return string(data), nil
	default:
		return "", fmt.Errorf("pdftext: %w: %s", domain.ErrUnsupportedFileType, contentType)
	}
}

// extractPDF walks the document row by row so that text which shares a
// baseline on the page comes out as one line, matching the layout the
// discharge reports are printed with.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdftext: open: %w", err)
	}

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("pdftext: page %d: %w", pageNum, err)
		}
		for _, row := range rows {
			for _, word := range row.Content {
				sb.WriteString(word.S)
			}
			sb.WriteByte('\n')
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("pdftext: %w: no text content", domain.ErrTextExtraction)
	}
	return sb.String(), nil
}
