// Package orchestrator wires components A-G together for one profiling or
// comparison request, spec §4.H: fingerprint/cache check, record-view
// construction, optional sampling, the profiling engine, timing/throughput
// annotation, cache store, and (for comparisons) two parallel sub-requests
// followed by the comparison engine.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"dataprofiler/adapters/ingest"
	"dataprofiler/domain/comparison"
	"dataprofiler/domain/dataset"
	"dataprofiler/domain/profile"
	ierrors "dataprofiler/internal/errors"
	"dataprofiler/ports"
)

const (
	minCSVLength = 10
	maxCSVLength = 50 * 1024 * 1024 // 50 MiB, spec §6

	defaultSampleSize = 5000
)

// ProfileOptions mirrors the POST /api/profile options body, spec §6.
type ProfileOptions struct {
	Delimiter      string
	SkipEmptyLines bool
	EnableSampling bool
	SampleSize     int
	FullAnalysis   bool
	UseCache       bool
}

// DefaultProfileOptions mirrors the documented request defaults.
func DefaultProfileOptions() ProfileOptions {
	return ProfileOptions{
		Delimiter:      ",",
		SkipEmptyLines: true,
		EnableSampling: true,
		SampleSize:     defaultSampleSize,
		FullAnalysis:   false,
		UseCache:       true,
	}
}

// Orchestrator wires ports A-G for one request.
type Orchestrator struct {
	rngFactory ports.RNGFactory
	sampler    ports.Sampler
	pool       ports.WorkerPool
	profiler   ports.Profiler
	cache      ports.Cache
	comparator ports.Comparator

	sampleSeed int32
}

// New builds an Orchestrator from its six component ports.
func New(rngFactory ports.RNGFactory, sampler ports.Sampler, pool ports.WorkerPool, profiler ports.Profiler, cache ports.Cache, comparator ports.Comparator) *Orchestrator {
	return &Orchestrator{
		rngFactory: rngFactory,
		sampler:    sampler,
		pool:       pool,
		profiler:   profiler,
		cache:      cache,
		comparator: comparator,
		sampleSeed: 42,
	}
}

// ProfileResult is the outcome of one profile request, including the
// fromCache marker §4.H.2 calls for.
type ProfileResult struct {
	Report     *profile.Report
	FromCache  bool
	Fingerprint string
}

// Profile implements spec §4.H's profile-request procedure for a raw CSV
// payload (POST /api/profile).
func (o *Orchestrator) Profile(ctx context.Context, csv string, opts ProfileOptions) (*ProfileResult, error) {
	if err := validateCSV(csv); err != nil {
		return nil, err
	}

	content := []byte(csv)
	fingerprint := o.cache.Fingerprint(content, opts.Delimiter, opts.SkipEmptyLines)

	if opts.UseCache {
		if cached, ok := o.cache.Lookup(fingerprint); ok {
			return &ProfileResult{Report: cached, FromCache: true, Fingerprint: fingerprint}, nil
		}
	}

	parseStart := time.Now()
	table, parseErrorCount, err := ingest.ParseCSV(csv, ingest.Options{Delimiter: opts.Delimiter, SkipEmptyLines: opts.SkipEmptyLines})
	if err != nil {
		return nil, err
	}
	view, err := ingest.ToView(table)
	if err != nil {
		return nil, err
	}
	parseMs := time.Since(parseStart).Milliseconds()

	return o.runPipeline(ctx, view, fingerprint, parseMs, parseErrorCount, opts)
}

// ProfileRecords implements the same §4.H procedure for an already-parsed
// record array (POST /api/compare's dataset1/dataset2 fields), skipping
// the CSV tokenization step entirely.
func (o *Orchestrator) ProfileRecords(ctx context.Context, records []map[string]interface{}, opts ProfileOptions) (*ProfileResult, error) {
	if len(records) == 0 {
		return nil, ierrors.ValidationError("dataset is empty")
	}

	content, err := json.Marshal(records)
	if err != nil {
		return nil, ierrors.ValidationError("dataset could not be serialized for fingerprinting")
	}
	fingerprint := o.cache.Fingerprint(content, opts.Delimiter, opts.SkipEmptyLines)

	if opts.UseCache {
		if cached, ok := o.cache.Lookup(fingerprint); ok {
			return &ProfileResult{Report: cached, FromCache: true, Fingerprint: fingerprint}, nil
		}
	}

	parseStart := time.Now()
	view, err := ingest.FromRecords(records)
	if err != nil {
		return nil, err
	}
	parseMs := time.Since(parseStart).Milliseconds()

	return o.runPipeline(ctx, view, fingerprint, parseMs, 0, opts)
}

// ProfileXLSX implements the §4.H procedure for the supplemental xlsx
// ingestion route: the raw workbook bytes stand in for "content" at the
// fingerprint step.
func (o *Orchestrator) ProfileXLSX(ctx context.Context, data []byte, opts ProfileOptions) (*ProfileResult, error) {
	if len(data) == 0 {
		return nil, ierrors.ValidationError("xlsx payload is empty")
	}

	fingerprint := o.cache.Fingerprint(data, opts.Delimiter, opts.SkipEmptyLines)
	if opts.UseCache {
		if cached, ok := o.cache.Lookup(fingerprint); ok {
			return &ProfileResult{Report: cached, FromCache: true, Fingerprint: fingerprint}, nil
		}
	}

	parseStart := time.Now()
	table, err := ingest.ReadXLSX(data)
	if err != nil {
		return nil, err
	}
	view, err := ingest.ToView(table)
	if err != nil {
		return nil, err
	}
	parseMs := time.Since(parseStart).Milliseconds()

	return o.runPipeline(ctx, view, fingerprint, parseMs, 0, opts)
}

func (o *Orchestrator) runPipeline(ctx context.Context, view *dataset.View, fingerprint string, parseMs int64, parseErrorCount int, opts ProfileOptions) (*ProfileResult, error) {
	originalRows := view.Len()
	var sampleMeta *profile.SamplingMeta
	if opts.EnableSampling && !opts.FullAnalysis && originalRows > opts.SampleSize {
		sampled, meta := o.sampler.CreateSample(view, opts.SampleSize, true, o.sampleSeed)
		view = sampled
		sampleMeta = &profile.SamplingMeta{
			IsSampled:            meta.IsSampled,
			OriginalSize:         meta.OriginalSize,
			SampleSize:           meta.SampleSize,
			SamplingRate:         meta.SamplingRate,
			Stratified:           meta.Stratified,
			StratificationColumn: meta.StratificationColumn,
		}
	}

	profileStart := time.Now()
	report, err := o.profiler.Profile(ctx, view)
	if err != nil {
		return nil, err
	}
	profileMs := time.Since(profileStart).Milliseconds()
	totalMs := parseMs + profileMs

	report.Summary.ProcessingTime = profile.ProcessingTime{TotalMs: totalMs, ParseMs: parseMs, ProfileMs: profileMs}
	report.Summary.Throughput = computeThroughput(view.Len(), len(view.Columns()), totalMs)
	report.Metadata.Sampling = sampleMeta
	report.Metadata.ParseErrors = parseErrorCount

	if opts.UseCache && sampleMeta == nil {
		o.cache.Store(fingerprint, report)
	}

	return &ProfileResult{Report: report, FromCache: false, Fingerprint: fingerprint}, nil
}

// Compare implements spec §4.H's comparison-request procedure: both
// already-parsed datasets run §4.H.1-5 in parallel, then the comparison
// engine runs on the two resulting reports.
func (o *Orchestrator) Compare(ctx context.Context, dataset1, dataset2 []map[string]interface{}, opts ProfileOptions) (*comparison.Report, *profile.Report, *profile.Report, error) {
	var (
		wg               sync.WaitGroup
		result1, result2 *ProfileResult
		err1, err2       error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		result1, err1 = o.ProfileRecords(ctx, dataset1, opts)
	}()
	go func() {
		defer wg.Done()
		result2, err2 = o.ProfileRecords(ctx, dataset2, opts)
	}()
	wg.Wait()

	if err1 != nil {
		return nil, nil, nil, err1
	}
	if err2 != nil {
		return nil, nil, nil, err2
	}

	report := o.comparator.Compare(result1.Report, result2.Report)
	return report, result1.Report, result2.Report, nil
}

func validateCSV(csv string) error {
	if csv == "" {
		return ierrors.ValidationError("csv is required")
	}
	if len(csv) < minCSVLength {
		return ierrors.ValidationError("csv is too short to contain a header and a data row")
	}
	if len(csv) > maxCSVLength {
		return ierrors.ValidationError(fmt.Sprintf("csv exceeds the %d byte limit", maxCSVLength))
	}
	return nil
}

func computeThroughput(rows, columns int, totalMs int64) profile.Throughput {
	seconds := float64(totalMs) / 1000.0
	if seconds <= 0 {
		seconds = 0.001
	}
	rowsPerSecond := float64(rows) / seconds
	columnsPerSecond := float64(columns) / seconds

	efficiency := "low"
	switch {
	case rowsPerSecond > 100000:
		efficiency = "high"
	case rowsPerSecond > 10000:
		efficiency = "medium"
	}

	return profile.Throughput{
		RowsPerSecond:    rowsPerSecond,
		ColumnsPerSecond: columnsPerSecond,
		Efficiency:       efficiency,
	}
}
