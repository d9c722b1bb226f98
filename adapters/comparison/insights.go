package comparison

import (
	"fmt"
	"math"

	"dataprofiler/domain/comparison"
	"dataprofiler/domain/profile"
)

// deriveInsights implements spec §4.G step 5's rule set, reusing the
// profiling engine's severity ordering for the final sort.
func deriveInsights(rowDelta comparison.RowCountDelta, onlyIn1, onlyIn2 []string, changes []comparison.ColumnChange, corrChanges []comparison.CorrelationChange) []profile.Insight {
	var out []profile.Insight

	if abs := math.Abs(rowDelta.PercentChange); abs > 50 {
		out = append(out, insight("Row Count", fmt.Sprintf("row count changed by %.1f%%", rowDelta.PercentChange), profile.SeverityHigh))
	} else if abs > 20 {
		out = append(out, insight("Row Count", fmt.Sprintf("row count changed by %.1f%%", rowDelta.PercentChange), profile.SeverityMedium))
	}

	if len(onlyIn1)+len(onlyIn2) > 0 {
		out = append(out, insight("Schema", fmt.Sprintf("%d column(s) removed, %d column(s) added", len(onlyIn1), len(onlyIn2)), profile.SeverityHigh))
	}

	typeChanges := 0
	missingIncreases := 0
	meanShifts := 0
	for _, c := range changes {
		if c.TypeChanged {
			typeChanges++
		}
		if c.MissingPercentDelta > 5 {
			missingIncreases++
		}
		if c.MeanPercentDelta != nil && math.Abs(*c.MeanPercentDelta) > 20 {
			meanShifts++
		}
	}
	if typeChanges > 0 {
		out = append(out, insight("Schema", fmt.Sprintf("%d column(s) changed type", typeChanges), profile.SeverityHigh))
	}
	if missingIncreases > 0 {
		out = append(out, insight("Data Quality", fmt.Sprintf("%d column(s) have a missing-rate increase over 5%%", missingIncreases), profile.SeverityMedium))
	}
	if meanShifts > 0 {
		out = append(out, insight("Distribution", fmt.Sprintf("%d numeric column(s) shifted mean by more than 20%%", meanShifts), profile.SeverityMedium))
	}

	significantCorr := 0
	signFlips := 0
	for _, c := range corrChanges {
		if c.Significant {
			significantCorr++
		}
		if c.SignChange {
			signFlips++
		}
	}
	if significantCorr > 0 {
		out = append(out, insight("Relationships", fmt.Sprintf("%d correlation(s) changed significantly", significantCorr), profile.SeverityMedium))
	}
	if signFlips > 0 {
		out = append(out, insight("Relationships", fmt.Sprintf("%d correlation(s) flipped sign", signFlips), profile.SeverityHigh))
	}

	return profile.SortBySeverity(out)
}

func insight(category, message string, severity profile.Severity) profile.Insight {
	return profile.Insight{
		Type:     profile.InsightInfo,
		Category: category,
		Message:  message,
		Severity: severity,
	}
}
