package analyze

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Scanner buffer cap for a single JSONL line.
const maxLineBytes = 4 * 1024 * 1024

// Report summarizes the shape of a JSONL dataset before indexing.
type Report struct {
	ContentField string

	TotalLines     int
	BlankLines     int
	MalformedLines int
	Records        int

	// FieldCoverage counts how many records carry each top-level field.
	FieldCoverage map[string]int

	// Content length statistics over records whose content field is a
	// non-empty string. Min and Max are 0 when no such record exists.
	ContentMin  int
	ContentMax  int
	ContentMean float64
}

// Analyze reads a JSONL dataset and reports line counts, per-field coverage,
// and content length statistics for the given content field. Malformed lines
// are counted, never fatal; only the reader itself can fail the call.
func Analyze(r io.Reader, contentField string) (*Report, error) {
	report := &Report{
		ContentField:  contentField,
		FieldCoverage: make(map[string]int),
	}

	var contentTotal, contentCount int
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		report.TotalLines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			report.BlankLines++
			continue
		}

		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			report.MalformedLines++
			continue
		}
		report.Records++

		for field := range record {
			report.FieldCoverage[field]++
		}

		content, ok := record[contentField].(string)
		if !ok || content == "" {
			continue
		}
		length := len(content)
		if contentCount == 0 || length < report.ContentMin {
			report.ContentMin = length
		}
		if length > report.ContentMax {
			report.ContentMax = length
		}
		contentTotal += length
		contentCount++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	if contentCount > 0 {
		report.ContentMean = float64(contentTotal) / float64(contentCount)
	}
	return report, nil
}

// Render writes the report as human-readable text.
func (r *Report) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "lines: %d total, %d blank, %d malformed\n",
		r.TotalLines, r.BlankLines, r.MalformedLines); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "records: %d\n", r.Records); err != nil {
		return err
	}

	fields := make([]string, 0, len(r.FieldCoverage))
	for field := range r.FieldCoverage {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if _, err := fmt.Fprintf(w, "field %q: %d records\n", field, r.FieldCoverage[field]); err != nil {
			return err
		}
	}

	if r.ContentMax > 0 {
		if _, err := fmt.Fprintf(w, "content %q length: min %d, max %d, mean %.1f\n",
			r.ContentField, r.ContentMin, r.ContentMax, r.ContentMean); err != nil {
			return err
		}
	}
	return nil
}
