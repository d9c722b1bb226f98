package sampling

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataprofiler/domain/dataset"
)

func buildView(t *testing.T, n int) *dataset.View {
	t.Helper()
	records := make([]dataset.Record, n)
	for i := 0; i < n; i++ {
		group := "a"
		if i%3 == 0 {
			group = "b"
		}
		records[i] = dataset.Record{
			"id":    dataset.NumberCell(float64(i)),
			"group": dataset.StringCell(group),
		}
	}
	view, err := dataset.NewView([]string{"id", "group"}, records)
	require.NoError(t, err)
	return view
}

func TestCreateSampleNoReductionUnderLimit(t *testing.T) {
	view := buildView(t, 10)
	sampler := NewSampler(Factory{})

	sample, meta := sampler.CreateSample(view, 100, true, 1)
	assert.False(t, meta.IsSampled)
	assert.Equal(t, 10, sample.Len())
}

func TestCreateSampleUnstratifiedReducesSize(t *testing.T) {
	view := buildView(t, 1000)
	sampler := NewSampler(Factory{})

	sample, meta := sampler.CreateSample(view, 100, false, 42)
	assert.True(t, meta.IsSampled)
	assert.False(t, meta.Stratified)
	assert.Equal(t, 1000, meta.OriginalSize)
	assert.Less(t, sample.Len(), 1000)
}

func TestCreateSampleStratifiedPicksGroupColumn(t *testing.T) {
	view := buildView(t, 1000)
	sampler := NewSampler(Factory{})

	sample, meta := sampler.CreateSample(view, 100, true, 42)
	assert.True(t, meta.IsSampled)
	assert.True(t, meta.Stratified)
	assert.Equal(t, "group", meta.StratificationColumn)

	seen := make(map[string]bool)
	for _, cell := range sample.Column("group") {
		seen[cell.String()] = true
	}
	assert.True(t, seen["a"])
	assert.True(t, seen["b"])
}

func TestCreateSampleDeterministicForSameSeed(t *testing.T) {
	view := buildView(t, 500)
	sampler := NewSampler(Factory{})

	sample1, _ := sampler.CreateSample(view, 50, false, 7)
	sample2, _ := sampler.CreateSample(view, 50, false, 7)

	require.Equal(t, sample1.Len(), sample2.Len())
	ids1 := make([]string, sample1.Len())
	for i, c := range sample1.Column("id") {
		ids1[i] = strconv.FormatFloat(c.Number, 'f', -1, 64)
	}
	ids2 := make([]string, sample2.Len())
	for i, c := range sample2.Column("id") {
		ids2[i] = strconv.FormatFloat(c.Number, 'f', -1, 64)
	}
	assert.Equal(t, ids1, ids2)
}
