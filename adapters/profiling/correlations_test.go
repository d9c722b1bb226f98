package profiling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataprofiler/domain/profile"
)

// Scenario 3 — perfect positive correlation.
func TestCorrelateColumnsPerfectPositive(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 4, 6, 8, 10}

	pair, ok := CorrelateColumns("a", "b", a, b)
	require.True(t, ok)
	assert.InDelta(t, 1.0, pair.R, 1e-12)
	assert.Equal(t, 5, pair.SampleSize)

	partitioned := profile.PartitionCorrelations([]profile.CorrelationPair{pair})
	require.Len(t, partitioned.Strong, 1)
	require.Len(t, partitioned.Positive, 1)
	assert.Equal(t, "a", partitioned.Positive[0].ColumnA)
}

func TestCorrelateColumnsTooFewObservations(t *testing.T) {
	_, ok := CorrelateColumns("a", "b", []float64{1, 2}, []float64{1, 2})
	assert.False(t, ok)
}

func TestCorrelateColumnsPrefixAlignment(t *testing.T) {
	// Deliberately mismatched lengths: the spec's prefix-alignment rule
	// truncates both series to the shorter length rather than row-aligning.
	a := []float64{1, 2, 3, 4, 5, 6}
	b := []float64{10, 8, 6, 4}

	pair, ok := CorrelateColumns("a", "b", a, b)
	require.True(t, ok)
	assert.Equal(t, 4, pair.SampleSize)
	assert.InDelta(t, -1.0, pair.R, 1e-9)
}
