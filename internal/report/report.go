// Package report writes the per-record CSV export and the JSON summary.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"

	"review_corpus/internal/domain"
)

var csvHeader = []string{"review_id", "review_text"}

// WriteCSV writes one row per record in iteration order. Texts are written
// verbatim (UTF-8, quoted by encoding/csv where needed).
func WriteCSV(w io.Writer, seq iter.Seq[domain.Review]) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, err
	}
	n := 0
	for r := range seq {
		if err := cw.Write([]string{r.ID, r.Text}); err != nil {
			return n, fmt.Errorf("write %s: %w", r.ID, err)
		}
		n++
	}
	cw.Flush()
	return n, cw.Error()
}

// WriteSummary writes s as indented JSON, leaving non-ASCII characters as is.
func WriteSummary(w io.Writer, s domain.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// Generate writes both reports, creating parent directories as needed.
func Generate(seq iter.Seq[domain.Review], s domain.Summary, csvPath, summaryPath string) error {
	if err := writeFile(csvPath, func(w io.Writer) error {
		_, err := WriteCSV(w, seq)
		return err
	}); err != nil {
		return fmt.Errorf("csv report: %w", err)
	}
	if err := writeFile(summaryPath, func(w io.Writer) error {
		return WriteSummary(w, s)
	}); err != nil {
		return fmt.Errorf("summary report: %w", err)
	}
	return nil
}

func writeFile(path string, fill func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fill(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
