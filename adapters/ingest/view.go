package ingest

import (
	"math"
	"strconv"

	"dataprofiler/domain/dataset"
	ierrors "dataprofiler/internal/errors"
)

// ToView converts a RawTable's string cells into a dataset.View, classifying
// each cell as null (empty string), numeric (strconv-parseable and finite),
// or string.
// Column typing proper (numeric vs categorical) happens later, in profiling
// per spec §3 — this step only resolves the tagged-variant cell kind.
func ToView(table *RawTable) (*dataset.View, error) {
	if table == nil || len(table.Rows) == 0 {
		return nil, ierrors.ValidationError("record view is empty")
	}

	records := make([]dataset.Record, len(table.Rows))
	for i, row := range table.Rows {
		rec := make(dataset.Record, len(table.Headers))
		for _, h := range table.Headers {
			rec[h] = classifyCell(row[h])
		}
		records[i] = rec
	}

	view, err := dataset.NewView(table.Headers, records)
	if err != nil {
		return nil, ierrors.ValidationError(err.Error())
	}
	return view, nil
}

func classifyCell(raw string) dataset.Cell {
	if raw == "" {
		return dataset.NullCell
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return dataset.NumberCell(n)
	}
	return dataset.StringCell(raw)
}

// FromRecords builds a dataset.View from already-parsed JSON records, the
// shape POST /api/compare's dataset1/dataset2 fields arrive in (spec §6):
// an array of objects rather than raw CSV text. The column order is taken
// from the union of keys in first-seen order, so two records with
// different key sets still produce a single consistent header.
func FromRecords(raw []map[string]interface{}) (*dataset.View, error) {
	if len(raw) == 0 {
		return nil, ierrors.ValidationError("record view is empty")
	}

	var columns []string
	seen := make(map[string]bool)
	for _, row := range raw {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}

	records := make([]dataset.Record, len(raw))
	for i, row := range raw {
		rec := make(dataset.Record, len(columns))
		for _, col := range columns {
			rec[col] = classifyJSONValue(row[col])
		}
		records[i] = rec
	}

	view, err := dataset.NewView(columns, records)
	if err != nil {
		return nil, ierrors.ValidationError(err.Error())
	}
	return view, nil
}

func classifyJSONValue(v interface{}) dataset.Cell {
	switch t := v.(type) {
	case nil:
		return dataset.NullCell
	case float64:
		return dataset.NumberCell(t)
	case bool:
		if t {
			return dataset.StringCell("true")
		}
		return dataset.StringCell("false")
	case string:
		return classifyCell(t)
	default:
		return dataset.NullCell
	}
}
