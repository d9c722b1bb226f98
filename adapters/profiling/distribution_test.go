package profiling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataprofiler/domain/dataset"
	"dataprofiler/domain/profile"
)

func TestDeriveDistributionNotesSkipsShortColumns(t *testing.T) {
	records := []dataset.Record{}
	for i := 0; i < 5; i++ {
		records = append(records, dataset.Record{"x": dataset.NumberCell(float64(i))})
	}
	view, err := dataset.NewView([]string{"x"}, records)
	require.NoError(t, err)

	stats := map[string]profile.ColumnStats{"x": {Type: profile.TypeNumeric, ValidCount: 5}}
	notes := DeriveDistributionNotes(view, stats)
	assert.Empty(t, notes)
}

func TestDeriveDistributionNotesFlagsNonNormalColumn(t *testing.T) {
	var records []dataset.Record
	// Heavily skewed: mostly zeros with one large spike.
	for i := 0; i < 30; i++ {
		v := 0.0
		if i == 29 {
			v = 1000.0
		}
		records = append(records, dataset.Record{"x": dataset.NumberCell(v)})
	}
	view, err := dataset.NewView([]string{"x"}, records)
	require.NoError(t, err)

	stats := map[string]profile.ColumnStats{"x": {Type: profile.TypeNumeric, ValidCount: 30}}
	notes := DeriveDistributionNotes(view, stats)
	require.Len(t, notes, 1)
	assert.Equal(t, "x", notes[0].Column)
	assert.False(t, notes[0].IsNormal)
}

func TestDeriveDistributionNotesSkipsZeroVariance(t *testing.T) {
	var records []dataset.Record
	for i := 0; i < 25; i++ {
		records = append(records, dataset.Record{"x": dataset.NumberCell(1.0)})
	}
	view, err := dataset.NewView([]string{"x"}, records)
	require.NoError(t, err)

	stats := map[string]profile.ColumnStats{"x": {Type: profile.TypeNumeric, ValidCount: 25}}
	notes := DeriveDistributionNotes(view, stats)
	assert.Empty(t, notes)
}
