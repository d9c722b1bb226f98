package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	ierrors "dataprofiler/internal/errors"
)

// Options controls how raw CSV text is split into rows, mirroring the
// two canonical-fingerprint fields spec §4.F singles out as result-
// affecting: delimiter and skipEmptyLines. Everything else about a
// profile request (sampling, cache use) lives above this layer.
type Options struct {
	Delimiter      string
	SkipEmptyLines bool
}

// DefaultOptions mirrors the documented request-body defaults.
func DefaultOptions() Options {
	return Options{Delimiter: ",", SkipEmptyLines: true}
}

// ParseCSV reads raw CSV text into a RawTable. A malformed delimiter
// (the reader can't even tokenize the header row) is a ParseError that
// the caller escalates to a 400; a bad field count on an individual data
// row is tolerated and reported back via parseErrors so the caller can
// surface it in metadata.parseErrors without failing the whole request.
func ParseCSV(content string, opts Options) (*RawTable, int, error) {
	delim := ','
	if opts.Delimiter != "" {
		delim = []rune(opts.Delimiter)[0]
	}

	r := csv.NewReader(strings.NewReader(content))
	r.Comma = delim
	r.FieldsPerRecord = -1 // tolerate ragged rows; counted below instead of failing outright
	r.TrimLeadingSpace = true

	headerRow, err := r.Read()
	if err != nil {
		return nil, 0, ierrors.ParseError(fmt.Sprintf("could not read header row: %v", err))
	}

	headers := make([]string, len(headerRow))
	for i, h := range headerRow {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []RawRowData
	parseErrors := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			parseErrors++
			continue
		}
		if opts.SkipEmptyLines && isEmptyRecord(record) {
			continue
		}
		if len(record) != len(headers) {
			parseErrors++
			continue
		}

		row := make(RawRowData, len(headers))
		for i, h := range headers {
			row[h] = strings.TrimSpace(record[i])
		}
		rows = append(rows, row)
	}

	return &RawTable{Headers: headers, Rows: rows}, parseErrors, nil
}

func isEmptyRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// ReadXLSX reads the first sheet of an xlsx workbook into a RawTable,
// the supplemental ingestion path (§ SPEC_FULL domain-stack enrichment)
// wired on top of the teacher's excelize-based reader.
func ReadXLSX(data []byte) (*RawTable, error) {
	f, err := excelize.OpenReader(strings.NewReader(string(data)))
	if err != nil {
		return nil, ierrors.ParseError(fmt.Sprintf("could not open xlsx workbook: %v", err))
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ierrors.ParseError("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, ierrors.ParseError(fmt.Sprintf("could not read sheet %q: %v", sheet, err))
	}
	if len(rows) < 1 {
		return nil, ierrors.ParseError("workbook has no header row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var out []RawRowData
	for _, r := range rows[1:] {
		row := make(RawRowData, len(headers))
		for i, h := range headers {
			if i < len(r) {
				row[h] = strings.TrimSpace(r[i])
			} else {
				row[h] = ""
			}
		}
		out = append(out, row)
	}

	return &RawTable{Headers: headers, Rows: out}, nil
}
