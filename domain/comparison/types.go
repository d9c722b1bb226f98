// Package comparison holds the structured-diff shapes the comparison
// engine (spec §4.G) produces from two profile reports.
package comparison

import "dataprofiler/domain/profile"

// TopValueDiff is one paired top-value entry in a categorical column diff.
type TopValueDiff struct {
	Value         string  `json:"value"`
	Count1        int     `json:"count1"`
	Count2        int     `json:"count2"`
	Diff          int     `json:"diff"`
	PercentChange float64 `json:"percentChange"`
	Significant   bool    `json:"significant"`
}

// ColumnChange is the per-common-column delta, spec §4.G step 3.
type ColumnChange struct {
	Column          string  `json:"column"`
	TypeChanged     bool    `json:"typeChanged"`
	TypeChangeLabel string  `json:"typeChangeLabel,omitempty"`
	MissingDelta        int     `json:"missingDelta"`
	MissingPercentDelta float64 `json:"missingPercentDelta"`
	UniqueDelta         int     `json:"uniqueDelta"`

	// Numeric-specific deltas (both sides numeric).
	MeanDelta        *float64 `json:"meanDelta,omitempty"`
	MeanPercentDelta *float64 `json:"meanPercentDelta,omitempty"`
	StdDevDelta      *float64 `json:"stdDevDelta,omitempty"`
	MinDelta         *float64 `json:"minDelta,omitempty"`
	MaxDelta         *float64 `json:"maxDelta,omitempty"`
	RangeDelta       *float64 `json:"rangeDelta,omitempty"`
	OutliersDelta    *int     `json:"outliersDelta,omitempty"`

	// Categorical-specific deltas (both sides categorical).
	EntropyDelta  *float64       `json:"entropyDelta,omitempty"`
	TopValuesDiff []TopValueDiff `json:"topValuesDiff,omitempty"`
}

// CorrelationChangeStatus tags how a pair's presence changed between reports.
type CorrelationChangeStatus string

const (
	CorrelationAdded   CorrelationChangeStatus = "added"
	CorrelationRemoved CorrelationChangeStatus = "removed"
	CorrelationChanged CorrelationChangeStatus = "changed"
)

// CorrelationChange describes how one column pair's correlation moved
// between the two reports, spec §4.G step 4.
type CorrelationChange struct {
	ColumnA     string                  `json:"columnA"`
	ColumnB     string                  `json:"columnB"`
	Status      CorrelationChangeStatus `json:"status"`
	R1          *float64                `json:"r1,omitempty"`
	R2          *float64                `json:"r2,omitempty"`
	Diff        *float64                `json:"diff,omitempty"`
	Significant bool                    `json:"significant,omitempty"`
	SignChange  bool                    `json:"signChange,omitempty"`
}

// RowCountDelta carries the row-count comparison, spec §4.G step 2.
type RowCountDelta struct {
	Rows1         int     `json:"rows1"`
	Rows2         int     `json:"rows2"`
	Delta         int     `json:"delta"`
	PercentChange float64 `json:"percentChange"`
}

// Report is the structured diff produced by the comparison engine.
type Report struct {
	CommonColumns      []string             `json:"commonColumns"`
	OnlyInFirst        []string             `json:"onlyInFirst"`
	OnlyInSecond       []string             `json:"onlyInSecond"`
	RowCountDelta      RowCountDelta        `json:"rowCountDelta"`
	ColumnChanges      []ColumnChange       `json:"columnChanges"`
	CorrelationChanges []CorrelationChange `json:"correlationChanges"`
	Insights           []profile.Insight    `json:"insights"`
}
