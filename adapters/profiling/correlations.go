package profiling

import (
	"math"

	mfstats "github.com/montanaflynn/stats"

	"dataprofiler/domain/dataset"
	"dataprofiler/domain/profile"
)

const minPairedObservations = 3

// numericSeries extracts one column's null-filtered numeric sequence, in
// original row order — the "internal null-filtered sequence" spec §4.E.2
// pairs on.
func numericSeries(cells []dataset.Cell) []float64 {
	out := make([]float64, 0, len(cells))
	for _, c := range cells {
		if c.IsNumeric() {
			out = append(out, c.Number)
		}
	}
	return out
}

// CorrelateColumns computes the Pearson coefficient for one unordered pair
// of already-extracted numeric series, prefix-aligned to the shorter
// series' length per spec §4.E.2's documented (legacy) alignment rule —
// this is deliberately not row-aligned pairing. Returns ok=false when the
// pair should be discarded (fewer than 3 paired observations, or r is NaN).
func CorrelateColumns(colA, colB string, seriesA, seriesB []float64) (profile.CorrelationPair, bool) {
	n := len(seriesA)
	if len(seriesB) < n {
		n = len(seriesB)
	}
	if n < minPairedObservations {
		return profile.CorrelationPair{}, false
	}

	r, err := mfstats.Correlation(seriesA[:n], seriesB[:n])
	if err != nil || math.IsNaN(r) {
		return profile.CorrelationPair{}, false
	}

	return profile.CorrelationPair{
		ColumnA:    colA,
		ColumnB:    colB,
		R:          r,
		Strength:   math.Abs(r),
		SampleSize: n,
	}, true
}

// CorrelateAll runs CorrelateColumns over every unordered pair of numeric
// columns in the view, using the column stats already computed to decide
// which columns are numeric, then partitions the accepted set per spec §3.
func CorrelateAll(view *dataset.View, columnStats map[string]profile.ColumnStats) profile.Correlations {
	var numericCols []string
	for _, col := range view.Columns() {
		if cs, ok := columnStats[col]; ok && cs.Type == profile.TypeNumeric {
			numericCols = append(numericCols, col)
		}
	}

	series := make(map[string][]float64, len(numericCols))
	for _, col := range numericCols {
		series[col] = numericSeries(view.Column(col))
	}

	var pairs []profile.CorrelationPair
	for i := 0; i < len(numericCols); i++ {
		for j := i + 1; j < len(numericCols); j++ {
			colA, colB := numericCols[i], numericCols[j]
			if pair, ok := CorrelateColumns(colA, colB, series[colA], series[colB]); ok {
				pairs = append(pairs, pair)
			}
		}
	}

	return profile.PartitionCorrelations(pairs)
}
