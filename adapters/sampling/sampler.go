package sampling

import (
	"math"
	"sort"

	"dataprofiler/domain/dataset"
	"dataprofiler/domain/sampling"
	"dataprofiler/ports"
)

// Sampler implements ports.Sampler, the sampling service of spec §4.C.
type Sampler struct {
	rngFactory ports.RNGFactory
}

// NewSampler builds a Sampler using the given RNG factory (normally
// sampling.Factory{}, swappable for tests).
func NewSampler(rngFactory ports.RNGFactory) *Sampler {
	return &Sampler{rngFactory: rngFactory}
}

const (
	stratifyLookback        = 100
	stratifyMinCardinality  = 2
	stratifyMaxCardinality  = 20
	stratifyMaxNullRatio    = 0.2
	stratifyIdealUniqueRate = 0.2
)

// CreateSample implements the spec §4.C contract.
func (s *Sampler) CreateSample(view *dataset.View, maxSampleSize int, stratify bool, seed int32) (*dataset.View, sampling.Metadata) {
	n := view.Len()
	if n <= maxSampleSize {
		return view, sampling.Unchanged(n)
	}

	rate := float64(maxSampleSize) / float64(n)
	rng := s.rngFactory.New(seed)

	if stratify {
		if col, ok := chooseStratificationColumn(view); ok {
			return s.stratifiedSample(view, col, rate, rng)
		}
	}

	return s.unstratifiedSample(view, rate, rng)
}

// chooseStratificationColumn implements the candidate-selection rule:
// among columns whose first-100-row unique count is in [2,20] and whose
// null ratio is < 0.2, prefer the one whose uniqueRatio is closest to 0.2.
func chooseStratificationColumn(view *dataset.View) (string, bool) {
	lookback := view.Len()
	if lookback > stratifyLookback {
		lookback = stratifyLookback
	}

	bestCol := ""
	bestDist := math.Inf(1)
	found := false

	for _, col := range view.Columns() {
		cells := view.Column(col)
		seen := make(map[string]struct{})
		nullCount := 0
		nonNull := 0
		for i := 0; i < lookback; i++ {
			cell := cells[i]
			if cell.IsNull() {
				nullCount++
				continue
			}
			nonNull++
			seen[cell.String()] = struct{}{}
		}
		if lookback == 0 {
			continue
		}
		nullRatio := float64(nullCount) / float64(lookback)
		unique := len(seen)
		if unique < stratifyMinCardinality || unique > stratifyMaxCardinality {
			continue
		}
		if nullRatio >= stratifyMaxNullRatio {
			continue
		}
		if nonNull == 0 {
			continue
		}
		uniqueRatio := float64(unique) / float64(nonNull)
		dist := math.Abs(uniqueRatio - stratifyIdealUniqueRate)
		if dist < bestDist {
			bestDist = dist
			bestCol = col
			found = true
		}
	}

	return bestCol, found
}

const nullSentinel = "null"

// stratifiedSample partitions rows by the stringified value of the chosen
// column (null mapped to the "null" sentinel), then independently samples
// each partition at rate, guaranteeing at least one row per non-empty
// partition.
func (s *Sampler) stratifiedSample(view *dataset.View, col string, rate float64, rng ports.RNG) (*dataset.View, sampling.Metadata) {
	cells := view.Column(col)
	partitions := make(map[string][]int)
	order := make([]string, 0)
	for i, cell := range cells {
		key := nullSentinel
		if !cell.IsNull() {
			key = cell.String()
		}
		if _, ok := partitions[key]; !ok {
			order = append(order, key)
		}
		partitions[key] = append(partitions[key], i)
	}

	var selected []int
	preserved := make(map[string]float64, len(order))
	for _, key := range order {
		rows := partitions[key]
		picked := make([]int, 0, int(float64(len(rows))*rate)+1)
		for _, idx := range rows {
			if rng.Next() < rate {
				picked = append(picked, idx)
			}
		}
		if len(picked) == 0 && len(rows) > 0 {
			picked = append(picked, rows[0])
		}
		selected = append(selected, picked...)
		preserved[key] = float64(len(picked)) / float64(view.Len())
	}

	sort.Ints(selected)

	sample := view.Subview(selected)
	meta := sampling.Metadata{
		IsSampled:            true,
		OriginalSize:         view.Len(),
		SampleSize:           sample.Len(),
		SamplingRate:         rate,
		Stratified:           true,
		StratificationColumn: col,
		PreservedDistribution: preserved,
	}
	return sample, meta
}

// unstratifiedSample performs Bernoulli inclusion of each row at rate,
// using the seeded RNG.
func (s *Sampler) unstratifiedSample(view *dataset.View, rate float64, rng ports.RNG) (*dataset.View, sampling.Metadata) {
	selected := make([]int, 0, int(float64(view.Len())*rate)+1)
	for i := 0; i < view.Len(); i++ {
		if rng.Next() < rate {
			selected = append(selected, i)
		}
	}

	sample := view.Subview(selected)
	meta := sampling.Metadata{
		IsSampled:    true,
		OriginalSize: view.Len(),
		SampleSize:   sample.Len(),
		SamplingRate: rate,
		Stratified:   false,
	}
	return sample, meta
}
