// Package comparison implements the structured-diff engine of spec §4.G:
// given two profile reports, partition their columns, compute per-column
// and per-correlation deltas, and derive severity-sorted insights from
// the same rule-based style the profiling engine's own insights use.
package comparison

import (
	"math"
	"sort"

	"dataprofiler/domain/comparison"
	"dataprofiler/domain/profile"
)

const (
	significantPercentChange  = 20.0
	significantCorrelationGap = 0.2
)

// Engine is the default ports.Comparator.
type Engine struct{}

// New builds a comparison Engine.
func New() *Engine { return &Engine{} }

// Compare implements ports.Comparator, spec §4.G.
func (e *Engine) Compare(p1, p2 *profile.Report) *comparison.Report {
	common, onlyIn1, onlyIn2 := partitionColumns(p1, p2)
	rowDelta := rowCountDelta(p1.Summary.TotalRows, p2.Summary.TotalRows)

	changes := make([]comparison.ColumnChange, 0, len(common))
	for _, col := range common {
		changes = append(changes, columnChange(col, p1.ColumnStats[col], p2.ColumnStats[col]))
	}

	corrChanges := correlationChanges(p1.Correlations, p2.Correlations)

	insights := deriveInsights(rowDelta, onlyIn1, onlyIn2, changes, corrChanges)

	return &comparison.Report{
		CommonColumns:      common,
		OnlyInFirst:        onlyIn1,
		OnlyInSecond:       onlyIn2,
		RowCountDelta:      rowDelta,
		ColumnChanges:      changes,
		CorrelationChanges: corrChanges,
		Insights:           insights,
	}
}

func partitionColumns(p1, p2 *profile.Report) (common, onlyIn1, onlyIn2 []string) {
	cols1 := make(map[string]bool, len(p1.ColumnStats))
	for c := range p1.ColumnStats {
		cols1[c] = true
	}
	cols2 := make(map[string]bool, len(p2.ColumnStats))
	for c := range p2.ColumnStats {
		cols2[c] = true
	}

	var commonCols, only1, only2 []string
	for c := range cols1 {
		if cols2[c] {
			commonCols = append(commonCols, c)
		} else {
			only1 = append(only1, c)
		}
	}
	for c := range cols2 {
		if !cols1[c] {
			only2 = append(only2, c)
		}
	}
	sort.Strings(commonCols)
	sort.Strings(only1)
	sort.Strings(only2)
	return commonCols, only1, only2
}

func rowCountDelta(rows1, rows2 int) comparison.RowCountDelta {
	delta := rows2 - rows1
	pct := 0.0
	if rows1 != 0 {
		pct = float64(delta) / float64(rows1) * 100
	}
	return comparison.RowCountDelta{
		Rows1:         rows1,
		Rows2:         rows2,
		Delta:         delta,
		PercentChange: pct,
	}
}

func columnChange(col string, a, b profile.ColumnStats) comparison.ColumnChange {
	change := comparison.ColumnChange{
		Column:              col,
		TypeChanged:         a.Type != b.Type,
		MissingDelta:        b.MissingCount - a.MissingCount,
		MissingPercentDelta: b.MissingPercent - a.MissingPercent,
		UniqueDelta:         b.Unique - a.Unique,
	}
	if change.TypeChanged {
		change.TypeChangeLabel = string(a.Type) + "->" + string(b.Type)
	}

	if a.Type == profile.TypeNumeric && b.Type == profile.TypeNumeric {
		addNumericDeltas(&change, a, b)
	}
	if a.Type == profile.TypeCategorical && b.Type == profile.TypeCategorical {
		addCategoricalDeltas(&change, a, b)
	}
	return change
}

func addNumericDeltas(change *comparison.ColumnChange, a, b profile.ColumnStats) {
	if a.Mean != nil && b.Mean != nil {
		d := *b.Mean - *a.Mean
		change.MeanDelta = &d
		if *a.Mean != 0 {
			pct := d / math.Abs(*a.Mean) * 100
			change.MeanPercentDelta = &pct
		}
	}
	if a.StdDev != nil && b.StdDev != nil {
		d := *b.StdDev - *a.StdDev
		change.StdDevDelta = &d
	}
	if a.Min != nil && b.Min != nil {
		d := *b.Min - *a.Min
		change.MinDelta = &d
	}
	if a.Max != nil && b.Max != nil {
		d := *b.Max - *a.Max
		change.MaxDelta = &d
	}
	if a.Min != nil && a.Max != nil && b.Min != nil && b.Max != nil {
		rangeA := *a.Max - *a.Min
		rangeB := *b.Max - *b.Min
		d := rangeB - rangeA
		change.RangeDelta = &d
	}
	if a.Outliers != nil && b.Outliers != nil {
		d := *b.Outliers - *a.Outliers
		change.OutliersDelta = &d
	}
}

func addCategoricalDeltas(change *comparison.ColumnChange, a, b profile.ColumnStats) {
	if a.Entropy != nil && b.Entropy != nil {
		d := *b.Entropy - *a.Entropy
		change.EntropyDelta = &d
	}
	change.TopValuesDiff = topValuesDiff(a.TopValues, b.TopValues)
}

func topValuesDiff(a, b []profile.ValueCount) []comparison.TopValueDiff {
	counts1 := make(map[string]int, len(a))
	for _, v := range a {
		counts1[v.Value] = v.Count
	}
	counts2 := make(map[string]int, len(b))
	for _, v := range b {
		counts2[v.Value] = v.Count
	}

	seen := make(map[string]bool, len(counts1)+len(counts2))
	var values []string
	for _, v := range a {
		if !seen[v.Value] {
			seen[v.Value] = true
			values = append(values, v.Value)
		}
	}
	for _, v := range b {
		if !seen[v.Value] {
			seen[v.Value] = true
			values = append(values, v.Value)
		}
	}

	out := make([]comparison.TopValueDiff, 0, len(values))
	for _, v := range values {
		c1, c2 := counts1[v], counts2[v]
		diff := c2 - c1
		pct := 0.0
		if c1 != 0 {
			pct = float64(diff) / float64(c1) * 100
		}
		out = append(out, comparison.TopValueDiff{
			Value:         v,
			Count1:        c1,
			Count2:        c2,
			Diff:          diff,
			PercentChange: pct,
			Significant:   math.Abs(pct) > significantPercentChange,
		})
	}
	return out
}

func correlationChanges(c1, c2 profile.Correlations) []comparison.CorrelationChange {
	pairs1 := make(map[string]profile.CorrelationPair, len(c1.All))
	for _, p := range c1.All {
		pairs1[pairKey(p.ColumnA, p.ColumnB)] = p
	}
	pairs2 := make(map[string]profile.CorrelationPair, len(c2.All))
	for _, p := range c2.All {
		pairs2[pairKey(p.ColumnA, p.ColumnB)] = p
	}

	seen := make(map[string]bool, len(pairs1)+len(pairs2))
	var keys []string
	for k := range pairs1 {
		seen[k] = true
		keys = append(keys, k)
	}
	for k := range pairs2 {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var out []comparison.CorrelationChange
	for _, k := range keys {
		p1, in1 := pairs1[k]
		p2, in2 := pairs2[k]
		switch {
		case in1 && !in2:
			out = append(out, comparison.CorrelationChange{
				ColumnA: p1.ColumnA, ColumnB: p1.ColumnB,
				Status: comparison.CorrelationRemoved,
				R1:     floatPtr(p1.R),
			})
		case !in1 && in2:
			out = append(out, comparison.CorrelationChange{
				ColumnA: p2.ColumnA, ColumnB: p2.ColumnB,
				Status: comparison.CorrelationAdded,
				R2:     floatPtr(p2.R),
			})
		default:
			diff := p2.R - p1.R
			out = append(out, comparison.CorrelationChange{
				ColumnA:     p1.ColumnA,
				ColumnB:     p1.ColumnB,
				Status:      comparison.CorrelationChanged,
				R1:          floatPtr(p1.R),
				R2:          floatPtr(p2.R),
				Diff:        floatPtr(diff),
				Significant: math.Abs(diff) > significantCorrelationGap,
				SignChange:  (p1.R > 0) != (p2.R > 0) && p1.R != 0 && p2.R != 0,
			})
		}
	}
	return out
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "\x00" + b
}

func floatPtr(f float64) *float64 { return &f }
