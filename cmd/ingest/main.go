// Command ingest runs the extraction engine against a local report file and
// prints the result as JSON. Useful for tuning anchors against new report
// layouts without a running server.
// Usage: go run ./cmd/ingest <file.pdf|file.txt>
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"careflow/internal/config"
	"careflow/internal/extract"
	"careflow/internal/pdftext"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ingest <file.pdf|file.txt>")
		os.Exit(1)
	}
	path := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	extractor := pdftext.NewExtractor()
	text, err := extractor.ExtractText(context.Background(), data, contentType)
	if err != nil {
		return fmt.Errorf("extracting text from %s: %w", path, err)
	}

	engine := extract.NewEngine(extract.Penalties{
		MissingRecordID:  cfg.Extract.PenaltyMissingRecordID,
		MissingDate:      cfg.Extract.PenaltyMissingDate,
		UnknownName:      cfg.Extract.PenaltyUnknownName,
		UnknownOutcome:   cfg.Extract.PenaltyUnknownOutcome,
		MissingPhone:     cfg.Extract.PenaltyMissingPhone,
		ReformattedPhone: cfg.Extract.PenaltyReformattedPhone,
		MissingPCP:       cfg.Extract.PenaltyMissingPCP,
		UnknownPayer:     cfg.Extract.PenaltyUnknownPayer,
	})
	result := engine.Parse(text)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	fmt.Println(string(out))

	log.Printf("parsed %d records from %s (facility %q, report date %q)",
		len(result.Records), path, result.FacilityName, result.ReportDate)
	return nil
}
