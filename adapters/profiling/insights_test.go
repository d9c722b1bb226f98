package profiling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataprofiler/domain/profile"
)

func floatp(f float64) *float64 { return &f }
func intp(i int) *int           { return &i }

// Scenario 4's insight half — an outlier-bearing numeric column emits a
// medium-severity "Outliers" insight.
func TestDeriveInsightsEmitsOutlierInsight(t *testing.T) {
	stats := map[string]profile.ColumnStats{
		"y": {Type: profile.TypeNumeric, Outliers: intp(1), ValidCount: 9},
	}
	insights := DeriveInsights(stats, profile.Correlations{})

	var found bool
	for _, i := range insights {
		if i.Category == "Outliers" && i.Severity == profile.SeverityMedium {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDeriveInsightsFlagsConstantColumn(t *testing.T) {
	stats := map[string]profile.ColumnStats{
		"c": {Type: profile.TypeCategorical, Unique: 1, ValidCount: 10},
	}
	insights := DeriveInsights(stats, profile.Correlations{})
	require.NotEmpty(t, insights)
	assert.Equal(t, profile.SeverityHigh, insights[0].Severity)
}

func TestDeriveInsightsFlagsZeroVariance(t *testing.T) {
	stats := map[string]profile.ColumnStats{
		"x": {Type: profile.TypeNumeric, StdDev: floatp(0), ValidCount: 10},
	}
	insights := DeriveInsights(stats, profile.Correlations{})

	var found bool
	for _, i := range insights {
		if i.Message == "x has zero variance" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDeriveInsightsSortedBySeverity(t *testing.T) {
	stats := map[string]profile.ColumnStats{
		"missing": {Type: profile.TypeCategorical, MissingPercent: 40, Unique: 2, ValidCount: 6},
		"outlier": {Type: profile.TypeNumeric, Outliers: intp(2), ValidCount: 10},
	}
	insights := DeriveInsights(stats, profile.Correlations{})
	require.GreaterOrEqual(t, len(insights), 2)
	rank := map[profile.Severity]int{profile.SeverityHigh: 2, profile.SeverityMedium: 1, profile.SeverityLow: 0}
	for i := 1; i < len(insights); i++ {
		assert.True(t, rank[insights[i-1].Severity] >= rank[insights[i].Severity])
	}
}
