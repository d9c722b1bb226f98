package profiling

import (
	"context"

	"dataprofiler/adapters/workerpool"
	"dataprofiler/domain/dataset"
	"dataprofiler/domain/profile"
	ierrors "dataprofiler/internal/errors"
	"dataprofiler/ports"
)

// Engine is the default ports.Profiler. Above parallelColumnThreshold
// columns it shards per-column profiling across disjoint column ranges
// through the worker pool (taskName "profileColumns"); above
// parallelCorrelationThreshold candidate numeric-pair tasks, it shards the
// correlation matrix the same way (taskName "calculateCorrelations").
// Below threshold, or with pool == nil, both run single-threaded with
// identical results, per spec §4.E.4.
type Engine struct {
	pool                         ports.WorkerPool
	parallelColumnThreshold      int
	parallelCorrelationThreshold int
	poolOptions                  ports.PoolOptions
}

// NewEngine builds a profiling engine. pool may be nil, in which case the
// engine always runs sequentially.
func NewEngine(pool ports.WorkerPool, columnThreshold, correlationThreshold int, poolOptions ports.PoolOptions) *Engine {
	return &Engine{
		pool:                         pool,
		parallelColumnThreshold:      columnThreshold,
		parallelCorrelationThreshold: correlationThreshold,
		poolOptions:                  poolOptions,
	}
}

// Profile implements ports.Profiler, spec §4.E.
func (e *Engine) Profile(ctx context.Context, view *dataset.View) (*profile.Report, error) {
	if view == nil || view.Len() == 0 {
		return nil, ierrors.ValidationError("record view is empty")
	}

	columnStats, err := e.profileColumns(ctx, view)
	if err != nil {
		return nil, err
	}

	correlations, err := e.correlateAll(ctx, view, columnStats)
	if err != nil {
		return nil, err
	}

	insights := DeriveInsights(columnStats, correlations)
	summary := buildSummary(view, columnStats)

	associations := DeriveAssociations(ctx, view, columnStats)
	distributionNotes := DeriveDistributionNotes(view, columnStats)

	return &profile.Report{
		Summary:      summary,
		ColumnStats:  columnStats,
		Correlations: correlations,
		Insights:     insights,
		Metadata: profile.Metadata{
			Associations:      associations,
			DistributionNotes: distributionNotes,
		},
	}, nil
}

func (e *Engine) profileColumns(ctx context.Context, view *dataset.View) (map[string]profile.ColumnStats, error) {
	columns := view.Columns()
	if e.pool == nil || len(columns) <= e.parallelColumnThreshold {
		return profileColumnsRange(view, columns, 0, len(columns)), nil
	}

	opts := e.poolOptions
	opts.TaskName = workerpool.TaskProfileColumns

	fn := func(ctx context.Context, start, end int) (interface{}, error) {
		return profileColumnsRange(view, columns, start, end), nil
	}

	raw, err := e.pool.ProcessInParallel(ctx, len(columns), fn, opts)
	if err != nil {
		return nil, err
	}
	merged, ok := raw.(map[string]profile.ColumnStats)
	if !ok {
		return profileColumnsRange(view, columns, 0, len(columns)), nil
	}
	return merged, nil
}

func profileColumnsRange(view *dataset.View, columns []string, start, end int) map[string]profile.ColumnStats {
	out := make(map[string]profile.ColumnStats, end-start)
	for _, col := range columns[start:end] {
		cs, _ := ProfileColumn(view.Column(col)) // ProfileColumn never returns an error; failures recover into a ColumnError-shaped result
		out[col] = cs
	}
	return out
}

type correlationTask struct{ columnA, columnB string }

func (e *Engine) correlateAll(ctx context.Context, view *dataset.View, columnStats map[string]profile.ColumnStats) (profile.Correlations, error) {
	var numericCols []string
	for _, col := range view.Columns() {
		if cs, ok := columnStats[col]; ok && cs.Type == profile.TypeNumeric {
			numericCols = append(numericCols, col)
		}
	}

	var tasks []correlationTask
	for i := 0; i < len(numericCols); i++ {
		for j := i + 1; j < len(numericCols); j++ {
			tasks = append(tasks, correlationTask{numericCols[i], numericCols[j]})
		}
	}

	if e.pool == nil || len(tasks) <= e.parallelCorrelationThreshold {
		return CorrelateAll(view, columnStats), nil
	}

	opts := e.poolOptions
	opts.TaskName = workerpool.TaskCalculateCorrelations

	fn := func(ctx context.Context, start, end int) (interface{}, error) {
		var pairs []profile.CorrelationPair
		for _, t := range tasks[start:end] {
			if pair, ok := CorrelateColumns(t.columnA, t.columnB, numericSeries(view.Column(t.columnA)), numericSeries(view.Column(t.columnB))); ok {
				pairs = append(pairs, pair)
			}
		}
		return pairs, nil
	}

	raw, err := e.pool.ProcessInParallel(ctx, len(tasks), fn, opts)
	if err != nil {
		return profile.Correlations{}, err
	}
	if partitioned, ok := raw.(profile.Correlations); ok {
		return partitioned, nil
	}
	return CorrelateAll(view, columnStats), nil
}

func buildSummary(view *dataset.View, columnStats map[string]profile.ColumnStats) profile.Summary {
	summary := profile.Summary{
		TotalRows:    view.Len(),
		TotalColumns: len(view.Columns()),
	}
	for _, cs := range columnStats {
		switch cs.Type {
		case profile.TypeNumeric:
			summary.NumericColumns++
		case profile.TypeCategorical:
			summary.CategoricalColumns++
		}
		summary.TotalMissingValues += cs.MissingCount
	}
	return summary
}
