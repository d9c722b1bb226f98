// Package dataset holds the record-view abstraction the profiling engine
// consumes: a finite ordered sequence of records, each a mapping from
// column name to a tagged-variant cell.
package dataset

import (
	"dataprofiler/domain/core"
)

// Record is one row: a mapping from column name to cell. Callers (CSV/xlsx
// ingestion adapters) build these with a column list taken from the header,
// so row-to-row column shape consistency is enforced at construction time
// rather than inferred from map iteration order.
type Record map[string]Cell

// View is a read-only, column-indexed random-access sequence of records.
// It is immutable once built, safe for concurrent reads, and is the only
// input the sampling service and profiling engine ever see.
type View struct {
	columns     []string
	columnIndex map[string]int
	columnData  map[string][]Cell // column name -> cells in original row order
	length      int
}

// NewView builds a View from an explicit column order and a slice of
// records. It fails if records is empty or any record's key set does not
// match columns exactly — both are surfaced to the orchestrator before the
// engine ever runs, per the record-view contract.
func NewView(columns []string, records []Record) (*View, error) {
	if len(records) == 0 {
		return nil, core.ErrEmptyRecordView
	}

	columnIndex := make(map[string]int, len(columns))
	for i, c := range columns {
		columnIndex[c] = i
	}

	columnData := make(map[string][]Cell, len(columns))
	for _, c := range columns {
		columnData[c] = make([]Cell, 0, len(records))
	}

	for _, rec := range records {
		if len(rec) != len(columns) {
			return nil, core.ErrInconsistentCols
		}
		for _, c := range columns {
			cell, ok := rec[c]
			if !ok {
				return nil, core.ErrInconsistentCols
			}
			columnData[c] = append(columnData[c], cell)
		}
	}

	return &View{
		columns:     columns,
		columnIndex: columnIndex,
		columnData:  columnData,
		length:      len(records),
	}, nil
}

// newViewUnchecked builds a View without re-validating shape, for internal
// use by the sampling service which already knows its output is consistent
// (it is built by selecting rows out of an already-valid View).
func newViewUnchecked(columns []string, columnData map[string][]Cell, length int) *View {
	columnIndex := make(map[string]int, len(columns))
	for i, c := range columns {
		columnIndex[c] = i
	}
	return &View{columns: columns, columnIndex: columnIndex, columnData: columnData, length: length}
}

// Len returns the record count N.
func (v *View) Len() int {
	return v.length
}

// Columns returns the column names in their original order.
func (v *View) Columns() []string {
	out := make([]string, len(v.columns))
	copy(out, v.columns)
	return out
}

// HasColumn reports whether the named column exists, in O(1).
func (v *View) HasColumn(name string) bool {
	_, ok := v.columnIndex[name]
	return ok
}

// Column returns the cells of the named column in original row order.
// The returned slice must not be mutated by callers.
func (v *View) Column(name string) []Cell {
	return v.columnData[name]
}

// Row reconstructs a single record by index, with every column's cell for
// that row.
func (v *View) Row(i int) Record {
	rec := make(Record, len(v.columns))
	for _, c := range v.columns {
		rec[c] = v.columnData[c][i]
	}
	return rec
}

// Subview builds a new View containing only the rows at the given indices,
// preserving column order and cell identity. Used by the sampling service.
func (v *View) Subview(indices []int) *View {
	columnData := make(map[string][]Cell, len(v.columns))
	for _, c := range v.columns {
		src := v.columnData[c]
		dst := make([]Cell, len(indices))
		for i, idx := range indices {
			dst[i] = src[idx]
		}
		columnData[c] = dst
	}
	return newViewUnchecked(v.columns, columnData, len(indices))
}
