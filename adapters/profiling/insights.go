package profiling

import (
	"fmt"
	"sort"

	"dataprofiler/domain/profile"
)

const (
	missingPercentHighThreshold    = 30.0
	missingPercentAvgHighThreshold = 15.0
	highCardinalityPercent         = 90.0
	highCardinalityMinUnique       = 100
)

// DeriveInsights implements spec §4.E.3's per-column and global rules,
// then sorts the result by severity.
func DeriveInsights(columnStats map[string]profile.ColumnStats, correlations profile.Correlations) []profile.Insight {
	var insights []profile.Insight

	for _, col := range sortedKeys(columnStats) {
		insights = append(insights, columnInsights(col, columnStats[col])...)
	}

	insights = append(insights, globalInsights(columnStats, correlations)...)

	return profile.SortBySeverity(insights)
}

func columnInsights(column string, cs profile.ColumnStats) []profile.Insight {
	var out []profile.Insight

	if cs.MissingPercent > missingPercentHighThreshold {
		out = append(out, profile.Insight{
			Type: profile.InsightWarning, Category: "Data Quality", Severity: profile.SeverityHigh,
			Message: column + " is missing more than 30% of its values",
		})
	}

	if cs.Type == profile.TypeNumeric && cs.Outliers != nil && *cs.Outliers > 0 {
		out = append(out, profile.Insight{
			Type: profile.InsightInfo, Category: "Outliers", Severity: profile.SeverityMedium,
			Message: column + " contains statistical outliers by the IQR rule",
		})
	}

	if cs.Type == profile.TypeCategorical && cs.Unique == 1 {
		out = append(out, profile.Insight{
			Type: profile.InsightWarning, Category: "Feature Engineering", Severity: profile.SeverityHigh,
			Message: column + " is a constant column",
		})
	}

	if cs.Type == profile.TypeCategorical && cs.Unique == cs.ValidCount && cs.ValidCount > 0 {
		out = append(out, profile.Insight{
			Type: profile.InsightInfo, Category: "Feature Engineering", Severity: profile.SeverityLow,
			Message: column + " looks like an identifier column",
		})
	}

	if cs.Type == profile.TypeNumeric && cs.StdDev != nil && *cs.StdDev == 0 {
		out = append(out, profile.Insight{
			Type: profile.InsightWarning, Category: "Data Quality", Severity: profile.SeverityHigh,
			Message: column + " has zero variance",
		})
	}

	if cs.Type == profile.TypeCategorical && cs.UniquePercent > highCardinalityPercent && cs.Unique > highCardinalityMinUnique {
		out = append(out, profile.Insight{
			Type: profile.InsightInfo, Category: "Feature Engineering", Severity: profile.SeverityMedium,
			Message: column + " has high cardinality",
		})
	}

	return out
}

func globalInsights(columnStats map[string]profile.ColumnStats, correlations profile.Correlations) []profile.Insight {
	var out []profile.Insight

	if len(correlations.Strong) >= 1 {
		out = append(out, profile.Insight{
			Type: profile.InsightGeneric, Category: "Multicollinearity", Severity: profile.SeverityMedium,
			Message: fmt.Sprintf("%d strong correlation(s) detected between numeric columns", len(correlations.Strong)),
		})
	}

	var sum float64
	var numericCount int
	for _, cs := range columnStats {
		if cs.Type == profile.TypeNumeric {
			sum += cs.MissingPercent
			numericCount++
		}
	}
	if numericCount > 0 && sum/float64(numericCount) > missingPercentAvgHighThreshold {
		out = append(out, profile.Insight{
			Type: profile.InsightWarning, Category: "Data Quality", Severity: profile.SeverityHigh,
			Message: "numeric columns average more than 15% missing values",
		})
	}

	return out
}

// sortedKeys gives a deterministic column iteration order so repeated runs
// over the same report emit insights in the same order.
func sortedKeys(m map[string]profile.ColumnStats) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
