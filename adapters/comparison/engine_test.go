package comparison

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataprofiler/domain/comparison"
	"dataprofiler/domain/profile"
)

func floatp(f float64) *float64 { return &f }

// Scenario 6 — comparison sign flip.
func TestCompareSignFlipEmitsHighInsight(t *testing.T) {
	p1 := &profile.Report{
		Summary:     profile.Summary{TotalRows: 100},
		ColumnStats: map[string]profile.ColumnStats{"u": {Type: profile.TypeNumeric}, "v": {Type: profile.TypeNumeric}},
		Correlations: profile.Correlations{
			All: []profile.CorrelationPair{{ColumnA: "u", ColumnB: "v", R: 0.6, Strength: 0.6}},
		},
	}
	p2 := &profile.Report{
		Summary:     profile.Summary{TotalRows: 100},
		ColumnStats: map[string]profile.ColumnStats{"u": {Type: profile.TypeNumeric}, "v": {Type: profile.TypeNumeric}},
		Correlations: profile.Correlations{
			All: []profile.CorrelationPair{{ColumnA: "u", ColumnB: "v", R: -0.5, Strength: 0.5}},
		},
	}

	engine := New()
	report := engine.Compare(p1, p2)

	require.Len(t, report.CorrelationChanges, 1)
	change := report.CorrelationChanges[0]
	assert.Equal(t, comparison.CorrelationChanged, change.Status)
	assert.True(t, change.SignChange)

	var foundHighRelationships bool
	for _, insight := range report.Insights {
		if insight.Category == "Relationships" && insight.Severity == profile.SeverityHigh {
			foundHighRelationships = true
		}
	}
	assert.True(t, foundHighRelationships)
}

func TestComparePartitionsColumns(t *testing.T) {
	p1 := &profile.Report{
		Summary:     profile.Summary{TotalRows: 10},
		ColumnStats: map[string]profile.ColumnStats{"a": {}, "b": {}},
	}
	p2 := &profile.Report{
		Summary:     profile.Summary{TotalRows: 10},
		ColumnStats: map[string]profile.ColumnStats{"a": {}, "c": {}},
	}

	report := New().Compare(p1, p2)
	assert.Equal(t, []string{"a"}, report.CommonColumns)
	assert.Equal(t, []string{"b"}, report.OnlyInFirst)
	assert.Equal(t, []string{"c"}, report.OnlyInSecond)
}

func TestCompareNumericMeanDelta(t *testing.T) {
	p1 := &profile.Report{
		Summary: profile.Summary{TotalRows: 5},
		ColumnStats: map[string]profile.ColumnStats{
			"x": {Type: profile.TypeNumeric, Mean: floatp(10)},
		},
	}
	p2 := &profile.Report{
		Summary: profile.Summary{TotalRows: 5},
		ColumnStats: map[string]profile.ColumnStats{
			"x": {Type: profile.TypeNumeric, Mean: floatp(15)},
		},
	}

	report := New().Compare(p1, p2)
	require.Len(t, report.ColumnChanges, 1)
	change := report.ColumnChanges[0]
	require.NotNil(t, change.MeanDelta)
	assert.InDelta(t, 5, *change.MeanDelta, 1e-9)
	require.NotNil(t, change.MeanPercentDelta)
	assert.InDelta(t, 50, *change.MeanPercentDelta, 1e-9)
}

func TestCompareRowCountDelta(t *testing.T) {
	p1 := &profile.Report{Summary: profile.Summary{TotalRows: 100}, ColumnStats: map[string]profile.ColumnStats{}}
	p2 := &profile.Report{Summary: profile.Summary{TotalRows: 60}, ColumnStats: map[string]profile.ColumnStats{}}

	report := New().Compare(p1, p2)
	assert.Equal(t, -40, report.RowCountDelta.Delta)
	assert.InDelta(t, -40, report.RowCountDelta.PercentChange, 1e-9)

	var foundMediumRowCount bool
	for _, insight := range report.Insights {
		if insight.Category == "Row Count" && insight.Severity == profile.SeverityMedium {
			foundMediumRowCount = true
		}
	}
	assert.True(t, foundMediumRowCount)
}
