package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Dataset defines one tabular section of a report.
type Dataset struct {
	Name    string
	Headers []string
	Rows    []map[string]string
}

// Report is an ordered set of sections rendered into one document.
type Report struct {
	Title    string
	Sections []Dataset
}

// CSVExporter renders reports into CSV bytes. Sections are separated by a blank record and
// introduced by a record holding the section name.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the report.
func (e *CSVExporter) Render(report Report) ([]byte, error) {
	if len(report.Sections) == 0 {
		return nil, fmt.Errorf("csv requires at least one section")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	for i, section := range report.Sections {
		if len(section.Headers) == 0 {
			return nil, fmt.Errorf("csv section %q requires at least one header", section.Name)
		}
		if i > 0 {
			if err := writer.Write([]string{""}); err != nil {
				return nil, fmt.Errorf("write csv separator: %w", err)
			}
		}
		if section.Name != "" {
			if err := writer.Write([]string{section.Name}); err != nil {
				return nil, fmt.Errorf("write csv section name: %w", err)
			}
		}
		if err := writer.Write(section.Headers); err != nil {
			return nil, fmt.Errorf("write csv headers: %w", err)
		}
		for _, row := range section.Rows {
			record := make([]string, len(section.Headers))
			for j, header := range section.Headers {
				record[j] = row[header]
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
