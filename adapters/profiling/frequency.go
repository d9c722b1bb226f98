package profiling

import "sort"

// freqEntry is one distinct value's occurrence count, with the index at
// which it was first seen so that count ties can be broken by first-seen
// order as spec §3/§4.E.1 requires (both for categorical topValues and for
// numeric mode).
type freqEntry struct {
	value     string
	count     int
	firstSeen int
}

// frequencyTable counts occurrences of each key in insertion order,
// returning entries sorted descending by count. Entries start out in
// first-seen order, and sort.SliceStable preserves that order within equal
// counts, which is exactly the tie-break spec §3/§4.E.1 calls for.
func frequencyTable(keys []string) []freqEntry {
	index := make(map[string]int, len(keys))
	var entries []freqEntry
	for i, k := range keys {
		if pos, ok := index[k]; ok {
			entries[pos].count++
			continue
		}
		index[k] = len(entries)
		entries = append(entries, freqEntry{value: k, count: 1, firstSeen: i})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].count > entries[j].count
	})
	return entries
}
