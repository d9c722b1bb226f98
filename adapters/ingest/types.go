// Package ingest turns raw CSV text or an uploaded xlsx workbook into a
// dataset.View, the one shape the sampling service and profiling engine
// ever see. Adapted from the teacher's adapters/excel reader: the raw
// string-row extraction survives, the coercer-backed type-inference layer
// does not — column typing is now the profiling engine's job (spec §3),
// not the ingestion adapter's.
package ingest

// RawRowData is one data row as header-name -> trimmed cell text.
type RawRowData map[string]string

// RawTable is the header/row shape both the CSV and xlsx readers produce
// before cell values are classified into dataset.Cell.
type RawTable struct {
	Headers []string
	Rows    []RawRowData
}
