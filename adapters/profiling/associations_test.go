package profiling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataprofiler/domain/dataset"
	"dataprofiler/domain/profile"
)

func TestDeriveAssociationsSkipsNumericNumericPairs(t *testing.T) {
	var records []dataset.Record
	for i := 0; i < 10; i++ {
		records = append(records, dataset.Record{
			"a": dataset.NumberCell(float64(i)),
			"b": dataset.NumberCell(float64(i * 2)),
		})
	}
	view, err := dataset.NewView([]string{"a", "b"}, records)
	require.NoError(t, err)

	stats := map[string]profile.ColumnStats{
		"a": {Type: profile.TypeNumeric}, "b": {Type: profile.TypeNumeric},
	}
	associations := DeriveAssociations(context.Background(), view, stats)
	assert.Empty(t, associations)
}

func TestDeriveAssociationsScoresCategoricalPair(t *testing.T) {
	var records []dataset.Record
	groups := []string{"a", "b", "a", "b", "a", "b", "a", "b", "a", "b"}
	colors := []string{"red", "blue", "red", "blue", "red", "blue", "red", "blue", "red", "blue"}
	for i := range groups {
		records = append(records, dataset.Record{
			"group": dataset.StringCell(groups[i]),
			"color": dataset.StringCell(colors[i]),
		})
	}
	view, err := dataset.NewView([]string{"group", "color"}, records)
	require.NoError(t, err)

	stats := map[string]profile.ColumnStats{
		"group": {Type: profile.TypeCategorical}, "color": {Type: profile.TypeCategorical},
	}
	associations := DeriveAssociations(context.Background(), view, stats)
	require.Len(t, associations, 1)
	assert.Equal(t, "group", associations[0].ColumnA)
	assert.Equal(t, "color", associations[0].ColumnB)
	assert.NotEmpty(t, associations[0].Sense)
}

func TestCodeColumnCodesDistinctStringsAndDropsNulls(t *testing.T) {
	cells := []dataset.Cell{
		dataset.StringCell("x"),
		dataset.NullCell,
		dataset.StringCell("y"),
		dataset.StringCell("x"),
	}
	coded, distinct := codeColumn(cells)
	assert.Len(t, coded, 3)
	assert.Equal(t, 2, distinct)
	assert.Equal(t, coded[0], coded[2])
}
