package pipeline

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ppiankov/pensionfacts/internal/model"
)

// Renderer writes reports as JSON
type Renderer struct {
	pretty bool
}

// NewRenderer creates a renderer; pretty indents single-value output
func NewRenderer(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

// RenderJSON writes any value as one JSON document followed by a newline
func (r *Renderer) RenderJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if r.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// JSONLWriter writes one compact report per line
type JSONLWriter struct {
	enc *json.Encoder
}

// NewJSONLWriter wraps w
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONLWriter{enc: enc}
}

// Write appends one report line
func (w *JSONLWriter) Write(report *model.DocumentReport) error {
	if err := w.enc.Encode(report); err != nil {
		return fmt.Errorf("encode report %s: %w", report.NAID, err)
	}
	return nil
}

// ReadReports decodes reports written by JSONLWriter, skipping blank lines
func ReadReports(r io.Reader) ([]*model.DocumentReport, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	var reports []*model.DocumentReport
	for line := 1; scanner.Scan(); line++ {
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var report model.DocumentReport
		if err := json.Unmarshal(raw, &report); err != nil {
			return reports, fmt.Errorf("line %d: decode report: %w", line, err)
		}
		reports = append(reports, &report)
	}
	if err := scanner.Err(); err != nil {
		return reports, fmt.Errorf("read reports: %w", err)
	}
	return reports, nil
}

// RenderSummary prints a short human summary of one report to stderr
func (r *Renderer) RenderSummary(report *model.DocumentReport) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Document %s\n", report.NAID)
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  File type:    %s (%.2f)\n", displayOrDash(string(report.Title.Category)), report.Title.Certainty)
	fmt.Fprintf(os.Stderr, "  Group:        %s\n", report.FileTypeGroup)
	fmt.Fprintf(os.Stderr, "  Categories:   %v\n", report.Categories)
	fmt.Fprintf(os.Stderr, "  Text source:  %s\n", displayOrDash(report.TextSource))
	fmt.Fprintf(os.Stderr, "  Application:  %v\n", report.Dates.ApplicationDates)
	fmt.Fprintf(os.Stderr, "  Service:      %v\n", report.Dates.ServiceDates)
	fmt.Fprintf(os.Stderr, "  Other:        %v\n", report.Dates.OtherDates)
	fmt.Fprintf(os.Stderr, "  Allowances:   %d\n", len(report.Allowances))
	fmt.Fprintf(os.Stderr, "\n")
}

func displayOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
