package profiling

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"dataprofiler/domain/dataset"
	"dataprofiler/domain/profile"
)

const topValuesLimit = 10

// ProfileColumn implements spec §4.E.1: classify the column, compute the
// common attributes, then the numeric or categorical specialization.
// Any panic raised while computing this column's statistics is recovered
// into the ColumnError form spec §4.E.1's failure mode and §7's ColumnError
// kind describe, so one bad column never aborts the whole report.
func ProfileColumn(cells []dataset.Cell) (result profile.ColumnStats, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = profile.ColumnStats{Type: profile.TypeUnknown, Error: panicMessage(r)}
			err = nil
		}
	}()

	totalCount := len(cells)
	nonNullKeys := make([]string, 0, totalCount)
	numericValues := make([]float64, 0, totalCount)

	for _, c := range cells {
		if c.IsNull() {
			continue
		}
		nonNullKeys = append(nonNullKeys, c.String())
		if c.IsNumeric() {
			numericValues = append(numericValues, c.Number)
		}
	}

	validCount := len(nonNullKeys)
	missingCount := totalCount - validCount

	columnType := classifyColumn(validCount, len(numericValues))

	out := profile.ColumnStats{
		Type:         columnType,
		TotalCount:   totalCount,
		ValidCount:   validCount,
		MissingCount: missingCount,
	}
	if totalCount > 0 {
		out.MissingPercent = float64(missingCount) / float64(totalCount) * 100
	}

	uniqueSet := make(map[string]struct{}, validCount)
	for _, k := range nonNullKeys {
		uniqueSet[k] = struct{}{}
	}
	out.Unique = len(uniqueSet)
	if validCount > 0 {
		out.UniquePercent = float64(out.Unique) / float64(validCount) * 100
	}

	if columnType == profile.TypeNumeric {
		populateNumericStats(&out, numericValues)
	} else {
		populateCategoricalStats(&out, nonNullKeys, validCount)
	}

	return out, nil
}

func populateNumericStats(out *profile.ColumnStats, values []float64) {
	n := float64(len(values))
	if n == 0 {
		return
	}

	mean, _ := stats.Mean(values)
	variance := 0.0
	for _, x := range values {
		d := x - mean
		variance += d * d
	}
	variance /= n
	stdDev := math.Sqrt(variance)

	min, _ := stats.Min(values)
	max, _ := stats.Max(values)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := linearPercentile(sorted, 25)
	median := linearPercentile(sorted, 50)
	q3 := linearPercentile(sorted, 75)
	iqr := q3 - q1

	lowerBound := q1 - 1.5*iqr
	upperBound := q3 + 1.5*iqr
	outliers := 0
	for _, x := range values {
		if x < lowerBound || x > upperBound {
			outliers++
		}
	}

	skewness, kurtosis := 0.0, 0.0
	if stdDev != 0 {
		var sum3, sum4 float64
		for _, x := range values {
			z := (x - mean) / stdDev
			z3 := z * z * z
			sum3 += z3
			sum4 += z3 * z
		}
		skewness = sum3 / n
		kurtosis = sum4/n - 3
	}

	modeValue, modeCount := numericMode(values)

	out.Min = &min
	out.Max = &max
	out.Mean = &mean
	out.Median = &median
	out.Mode = &modeValue
	out.Variance = &variance
	out.StdDev = &stdDev
	out.Q1 = &q1
	out.Q3 = &q3
	out.IQR = &iqr
	out.Outliers = &outliers
	out.Skewness = &skewness
	out.Kurtosis = &kurtosis
	_ = modeCount
}

// linearPercentile computes the p-th percentile of an already-sorted slice
// by linear interpolation between the two nearest ranks (R-7 / numpy's
// default method), per spec §4.E.1's quartile definition. montanaflynn's
// stats.Percentile averages rank neighbours instead of interpolating and
// disagrees with the spec on even index spacing, so it is not used here.
func linearPercentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(n-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// numericMode finds the most frequent numeric value, ties broken by
// first-seen order, per spec §4.E.1 step 3.
func numericMode(values []float64) (float64, int) {
	keys := make([]string, len(values))
	for i, v := range values {
		keys[i] = dataset.NumberCell(v).String()
	}
	entries := frequencyTable(keys)
	if len(entries) == 0 {
		return 0, 0
	}
	top := entries[0]
	return values[top.firstSeen], top.count
}

func populateCategoricalStats(out *profile.ColumnStats, keys []string, validCount int) {
	entries := frequencyTable(keys)

	limit := topValuesLimit
	if limit > len(entries) {
		limit = len(entries)
	}
	topValues := make([]profile.ValueCount, limit)
	for i := 0; i < limit; i++ {
		topValues[i] = profile.ValueCount{Value: entries[i].value, Count: entries[i].count}
	}
	out.TopValues = topValues

	if len(entries) > 0 {
		top := entries[0]
		modeString := top.value
		modeCount := top.count
		var modePercent float64
		if validCount > 0 {
			modePercent = float64(modeCount) / float64(validCount) * 100
		}
		out.ModeString = &modeString
		out.ModeCount = &modeCount
		out.ModePercent = &modePercent
	}

	entropy := shannonEntropy(entries, validCount)
	out.Entropy = &entropy
}

// shannonEntropy computes base-2 Shannon entropy over the observed
// non-zero frequencies, spec §3/§4.E.1 step 4.
func shannonEntropy(entries []freqEntry, validCount int) float64 {
	if validCount == 0 {
		return 0
	}
	var h float64
	for _, e := range entries {
		p := float64(e.count) / float64(validCount)
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

func panicMessage(r interface{}) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	if s, ok := r.(string); ok {
		return s
	}
	return "unknown column profiling failure"
}
