package workerpool

import (
	"sort"

	"dataprofiler/domain/profile"
)

// Task names the profiling engine uses when invoking ProcessInParallel,
// selecting which combiner strategy below applies.
const (
	TaskProfileColumns       = "profileColumns"
	TaskCalculateCorrelations = "calculateCorrelations"
)

// combine merges the partial results of every successfully completed chunk
// into the single result processInParallel returns, per spec §4.D's three
// named strategies.
func combine(taskName string, partials []interface{}) (interface{}, error) {
	switch taskName {
	case TaskProfileColumns:
		return combineColumnStats(partials), nil
	case TaskCalculateCorrelations:
		return combineCorrelationPairs(partials), nil
	default:
		return combineGeneric(partials), nil
	}
}

// combineColumnStats map-merges per-chunk map[string]profile.ColumnStats
// partials into one map keyed by column name. Chunks profile disjoint
// column subsets, so there are no key collisions to arbitrate; a later
// chunk's value for the same key (which should not happen) wins, matching
// the "last write wins" default elsewhere in this combiner set.
func combineColumnStats(partials []interface{}) map[string]profile.ColumnStats {
	merged := make(map[string]profile.ColumnStats)
	for _, p := range partials {
		m, ok := p.(map[string]profile.ColumnStats)
		if !ok {
			continue
		}
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged
}

// combineCorrelationPairs concatenates per-chunk []profile.CorrelationPair
// partials, then re-sorts and re-partitions the pooled set into a fresh
// profile.Correlations the way the single-threaded path would have produced
// it directly — chunking here splits pairs, not rows, so there is no
// cross-chunk recomputation to do, only reassembly.
func combineCorrelationPairs(partials []interface{}) profile.Correlations {
	var all []profile.CorrelationPair
	for _, p := range partials {
		pairs, ok := p.([]profile.CorrelationPair)
		if !ok {
			continue
		}
		all = append(all, pairs...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].R*all[i].R > all[j].R*all[j].R
	})

	return profile.PartitionCorrelations(all)
}

// combineGeneric handles every other task name with the default rule: if
// every partial is a slice, concatenate; if every partial is a map, merge
// (last chunk wins on key collision); otherwise the chunking was scalar and
// the last chunk's value stands.
func combineGeneric(partials []interface{}) interface{} {
	if len(partials) == 0 {
		return nil
	}

	if allSlices(partials) {
		var out []interface{}
		for _, p := range partials {
			out = append(out, p.([]interface{})...)
		}
		return out
	}

	if allMaps(partials) {
		out := make(map[string]interface{})
		for _, p := range partials {
			for k, v := range p.(map[string]interface{}) {
				out[k] = v
			}
		}
		return out
	}

	return partials[len(partials)-1]
}

func allSlices(partials []interface{}) bool {
	for _, p := range partials {
		if _, ok := p.([]interface{}); !ok {
			return false
		}
	}
	return true
}

func allMaps(partials []interface{}) bool {
	for _, p := range partials {
		if _, ok := p.(map[string]interface{}); !ok {
			return false
		}
	}
	return true
}
