package workerpool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataprofiler/ports"
)

func TestProcessInParallelConcatenatesChunks(t *testing.T) {
	p := New()
	fn := func(ctx context.Context, start, end int) (interface{}, error) {
		out := make([]interface{}, 0, end-start)
		for i := start; i < end; i++ {
			out = append(out, i)
		}
		return out, nil
	}

	result, err := p.ProcessInParallel(context.Background(), 10, fn, ports.PoolOptions{
		MaxWorkers: 3, ChunkSize: 3, TimeoutMs: 5000,
	})
	require.NoError(t, err)

	items, ok := result.([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 10)
}

func TestProcessInParallelFailsFast(t *testing.T) {
	p := New()
	boom := errors.New("boom")
	fn := func(ctx context.Context, start, end int) (interface{}, error) {
		if start == 0 {
			return nil, boom
		}
		return []interface{}{start}, nil
	}

	_, err := p.ProcessInParallel(context.Background(), 9, fn, ports.PoolOptions{
		MaxWorkers: 1, ChunkSize: 3, TimeoutMs: 5000,
	})
	require.Error(t, err)
}

func TestProcessInParallelZeroItems(t *testing.T) {
	p := New()
	fn := func(ctx context.Context, start, end int) (interface{}, error) {
		t.Fatal("fn should not be called for zero items")
		return nil, nil
	}

	result, err := p.ProcessInParallel(context.Background(), 0, fn, ports.PoolOptions{MaxWorkers: 2, ChunkSize: 2})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestSplitRanges(t *testing.T) {
	ranges := splitRanges(10, 3)
	require.Len(t, ranges, 4)
	assert.Equal(t, indexRange{0, 3}, ranges[0])
	assert.Equal(t, indexRange{9, 10}, ranges[3])
}
