// Package profiling implements the profiling engine of spec §4.E: dynamic
// per-column type inference, numeric and categorical descriptive
// statistics, the pairwise Pearson correlation matrix, and rule-derived
// insights, with optional worker-pool parallelism over columns.
package profiling

import "dataprofiler/domain/profile"

// classifyColumn implements the §3 column-type rule: count non-null cells
// n_v and numeric cells n_n; the column is numeric when n_n > 0 and
// n_n/n_v > 0.5, categorical otherwise. An all-null column (n_v = 0) is
// categorical by this rule, since n_n > 0 can never hold.
func classifyColumn(nonNullCount, numericCount int) profile.ColumnType {
	if nonNullCount == 0 {
		return profile.TypeCategorical
	}
	if numericCount > 0 && float64(numericCount)/float64(nonNullCount) > 0.5 {
		return profile.TypeNumeric
	}
	return profile.TypeCategorical
}
