package profiling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataprofiler/domain/dataset"
)

func numericCells(values ...float64) []dataset.Cell {
	out := make([]dataset.Cell, len(values))
	for i, v := range values {
		out[i] = dataset.NumberCell(v)
	}
	return out
}

func stringCells(values ...string) []dataset.Cell {
	out := make([]dataset.Cell, len(values))
	for i, v := range values {
		out[i] = dataset.StringCell(v)
	}
	return out
}

// Scenario 1 — small numeric column.
func TestProfileColumnSmallNumeric(t *testing.T) {
	cs, err := ProfileColumn(numericCells(1, 2, 3, 4, 5))
	require.NoError(t, err)

	assert.Equal(t, "numeric", string(cs.Type))
	assert.Equal(t, 5, cs.TotalCount)
	assert.Equal(t, 5, cs.ValidCount)
	assert.Equal(t, 0, cs.MissingCount)
	assert.Equal(t, 5, cs.Unique)
	require.NotNil(t, cs.Mean)
	assert.InDelta(t, 3, *cs.Mean, 1e-9)
	require.NotNil(t, cs.Variance)
	assert.InDelta(t, 2, *cs.Variance, 1e-9)
	require.NotNil(t, cs.StdDev)
	assert.InDelta(t, 1.4142135623730951, *cs.StdDev, 1e-9)
	require.NotNil(t, cs.Median)
	assert.InDelta(t, 3, *cs.Median, 1e-9)
	require.NotNil(t, cs.Q1)
	assert.InDelta(t, 2, *cs.Q1, 1e-9)
	require.NotNil(t, cs.Q3)
	assert.InDelta(t, 4, *cs.Q3, 1e-9)
	require.NotNil(t, cs.IQR)
	assert.InDelta(t, 2, *cs.IQR, 1e-9)
	require.NotNil(t, cs.Min)
	assert.InDelta(t, 1, *cs.Min, 1e-9)
	require.NotNil(t, cs.Max)
	assert.InDelta(t, 5, *cs.Max, 1e-9)
	require.NotNil(t, cs.Outliers)
	assert.Equal(t, 0, *cs.Outliers)
	require.NotNil(t, cs.Skewness)
	assert.InDelta(t, 0, *cs.Skewness, 1e-9)
	require.NotNil(t, cs.Kurtosis)
	assert.InDelta(t, -1.3, *cs.Kurtosis, 1e-9)
}

// Scenario 2 — categorical with a clear mode.
func TestProfileColumnCategoricalMode(t *testing.T) {
	cs, err := ProfileColumn(stringCells("a", "a", "a", "b", "c"))
	require.NoError(t, err)

	assert.Equal(t, "categorical", string(cs.Type))
	assert.Equal(t, 3, cs.Unique)
	assert.InDelta(t, 60, cs.UniquePercent, 1e-9)
	require.NotNil(t, cs.ModeString)
	assert.Equal(t, "a", *cs.ModeString)
	require.NotNil(t, cs.ModeCount)
	assert.Equal(t, 3, *cs.ModeCount)
	require.NotNil(t, cs.ModePercent)
	assert.InDelta(t, 60, *cs.ModePercent, 1e-9)
	require.NotEmpty(t, cs.TopValues)
	assert.Equal(t, "a", cs.TopValues[0].Value)
	assert.Equal(t, 3, cs.TopValues[0].Count)

	require.NotNil(t, cs.Entropy)
	expected := -(0.6*math.Log2(0.6) + 0.2*math.Log2(0.2) + 0.2*math.Log2(0.2))
	assert.InDelta(t, expected, *cs.Entropy, 1e-3)
}

// Scenario 4 — outlier detection.
func TestProfileColumnOutlier(t *testing.T) {
	cs, err := ProfileColumn(numericCells(1, 1, 2, 2, 3, 3, 4, 4, 100))
	require.NoError(t, err)

	require.NotNil(t, cs.Q1)
	assert.InDelta(t, 1.5, *cs.Q1, 0.5)
	require.NotNil(t, cs.Q3)
	assert.InDelta(t, 3.5, *cs.Q3, 0.5)
	require.NotNil(t, cs.IQR)
	assert.InDelta(t, 2, *cs.IQR, 0.5)
	require.NotNil(t, cs.Outliers)
	assert.Equal(t, 1, *cs.Outliers)
}

func TestProfileColumnAllMissing(t *testing.T) {
	cs, err := ProfileColumn([]dataset.Cell{dataset.NullCell, dataset.NullCell})
	require.NoError(t, err)

	assert.Equal(t, "categorical", string(cs.Type))
	assert.Equal(t, 0, cs.ValidCount)
	assert.Equal(t, 2, cs.MissingCount)
	assert.InDelta(t, 100, cs.MissingPercent, 1e-9)
}
