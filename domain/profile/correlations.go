package profile

import "sort"

// strongThreshold and moderateThreshold are the |r| band boundaries spec
// §3 fixes: strong > 0.7, moderate in (0.3, 0.7], weak <= 0.3.
const (
	strongThreshold   = 0.7
	moderateThreshold = 0.3
	topBandSize       = 5
)

// PartitionCorrelations sorts pairs descending by strength and derives the
// six published groupings: all, strong, moderate, weak, positive (top 5 by
// strength among r > 0), negative (top 5 by strength among r < 0).
func PartitionCorrelations(pairs []CorrelationPair) Correlations {
	all := make([]CorrelationPair, len(pairs))
	copy(all, pairs)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Strength > all[j].Strength
	})

	result := Correlations{All: all}
	for _, p := range all {
		switch {
		case p.Strength > strongThreshold:
			result.Strong = append(result.Strong, p)
		case p.Strength > moderateThreshold:
			result.Moderate = append(result.Moderate, p)
		default:
			result.Weak = append(result.Weak, p)
		}
		switch {
		case p.R > 0 && len(result.Positive) < topBandSize:
			result.Positive = append(result.Positive, p)
		case p.R < 0 && len(result.Negative) < topBandSize:
			result.Negative = append(result.Negative, p)
		}
	}
	return result
}
