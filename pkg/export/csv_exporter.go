package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Table holds an ordered tabular dataset for export rendering. Rows are
// positional and must line up with Columns.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
	Summary []Stat
}

// Stat is a label/value pair rendered above the table in formats that
// support a heading block.
type Stat struct {
	Label string
	Value string
}

// CSVExporter renders tables into UTF-8 CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render writes the column header followed by each row. Title and summary
// stats are omitted, CSV consumers expect a uniform grid.
func (e *CSVExporter) Render(table Table) ([]byte, error) {
	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("csv requires at least one column")
	}
	buf := &bytes.Buffer{}
	// BOM so spreadsheet tools detect UTF-8 and render Vietnamese text.
	buf.WriteString("\uFEFF")
	writer := csv.NewWriter(buf)
	if err := writer.Write(table.Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range table.Rows {
		record := make([]string, len(table.Columns))
		copy(record, row)
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
