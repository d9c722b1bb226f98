// Package profile holds the report shapes the profiling engine (spec §4.E)
// produces: per-column statistics, the correlation matrix and its derived
// partitions, insights, and the top-level report itself.
package profile

import "sort"

// ColumnType is the inferred classification of a column (spec §3).
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
	TypeUnknown     ColumnType = "unknown"
)

// ValueCount is a single (value, count) entry in a top-values table.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ColumnStats is the per-column statistical summary, spec §3.
type ColumnStats struct {
	Type           ColumnType `json:"type"`
	TotalCount     int        `json:"totalCount"`
	ValidCount     int        `json:"validCount"`
	MissingCount   int        `json:"missingCount"`
	MissingPercent float64    `json:"missingPercent"`
	Unique         int        `json:"unique"`
	UniquePercent  float64    `json:"uniquePercent"`

	// Numeric specialization (spec §4.E.1 step 3).
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Mean     *float64 `json:"mean,omitempty"`
	Median   *float64 `json:"median,omitempty"`
	Mode     *float64 `json:"mode,omitempty"`
	Variance *float64 `json:"variance,omitempty"`
	StdDev   *float64 `json:"stdDev,omitempty"`
	Q1       *float64 `json:"q1,omitempty"`
	Q3       *float64 `json:"q3,omitempty"`
	IQR      *float64 `json:"iqr,omitempty"`
	Outliers *int     `json:"outliers,omitempty"`
	Skewness *float64 `json:"skewness,omitempty"`
	Kurtosis *float64 `json:"kurtosis,omitempty"`

	// Categorical specialization (spec §4.E.1 step 4).
	TopValues  []ValueCount `json:"topValues,omitempty"`
	ModeString *string      `json:"modeString,omitempty"`
	ModeCount  *int         `json:"modeCount,omitempty"`
	ModePercent *float64    `json:"modePercent,omitempty"`
	Entropy    *float64     `json:"entropy,omitempty"`

	// ColumnError path (spec §4.E.1 failure mode / §7 ColumnError).
	Error string `json:"error,omitempty"`
}

// CorrelationPair is one accepted pairwise Pearson correlation, spec §3/§4.E.2.
type CorrelationPair struct {
	ColumnA    string  `json:"columnA"`
	ColumnB    string  `json:"columnB"`
	R          float64 `json:"r"`
	Strength   float64 `json:"strength"`
	SampleSize int     `json:"sampleSize"`
}

// Correlations bundles the accepted pairs and their derived partitions,
// spec §3.
type Correlations struct {
	All      []CorrelationPair `json:"all"`
	Strong   []CorrelationPair `json:"strong"`
	Moderate []CorrelationPair `json:"moderate"`
	Weak     []CorrelationPair `json:"weak"`
	Positive []CorrelationPair `json:"positive"`
	Negative []CorrelationPair `json:"negative"`
}

// Severity orders insights high-to-low, spec §4.E.3.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

func (s Severity) rank() int {
	switch s {
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

// InsightKind tags the insight's nature, spec §3.
type InsightKind string

const (
	InsightWarning InsightKind = "warning"
	InsightInfo    InsightKind = "info"
	InsightGeneric InsightKind = "insight"
)

// Insight is a single rule-derived qualitative annotation, spec §3.
type Insight struct {
	Type     InsightKind `json:"type"`
	Category string      `json:"category"`
	Message  string      `json:"message"`
	Severity Severity    `json:"severity"`
}

// SortBySeverity orders insights high -> medium -> low, stable on ties.
func SortBySeverity(insights []Insight) []Insight {
	out := make([]Insight, len(insights))
	copy(out, insights)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity.rank() > out[j].Severity.rank()
	})
	return out
}

// ProcessingTime is the timing substructure under Summary, spec §4.H step 5.
type ProcessingTime struct {
	TotalMs   int64 `json:"totalMs"`
	ParseMs   int64 `json:"parseMs"`
	ProfileMs int64 `json:"profileMs"`
}

// Throughput carries the rate metrics spec §4.H step 5 calls for.
type Throughput struct {
	RowsPerSecond    float64 `json:"rowsPerSecond"`
	ColumnsPerSecond float64 `json:"columnsPerSecond"`
	Efficiency       string  `json:"efficiency"`
}

// Summary is the report's top-level aggregate counters, spec §3.
type Summary struct {
	TotalRows          int            `json:"totalRows"`
	TotalColumns       int            `json:"totalColumns"`
	NumericColumns     int            `json:"numericColumns"`
	CategoricalColumns int            `json:"categoricalColumns"`
	TotalMissingValues int            `json:"totalMissingValues"`
	ProcessingTime     ProcessingTime `json:"processingTime"`
	Throughput         Throughput     `json:"throughput"`
}

// Metadata carries annotations outside the core report fields: sampling
// info, parse-error counts, and the SPEC_FULL associations/
// distribution-notes supplements. It is stored in the cache along with
// the rest of the report.
type Metadata struct {
	Sampling          *SamplingMeta       `json:"sampling,omitempty"`
	ParseErrors       int                 `json:"parseErrors,omitempty"`
	Associations      []Association       `json:"associations,omitempty"`
	DistributionNotes []DistributionNote  `json:"distributionNotes,omitempty"`
}

// SamplingMeta mirrors sampling.Metadata for embedding in report metadata
// without creating an import cycle between profile and sampling.
type SamplingMeta struct {
	IsSampled            bool    `json:"isSampled"`
	OriginalSize         int     `json:"originalSize"`
	SampleSize           int     `json:"sampleSize"`
	SamplingRate         float64 `json:"samplingRate"`
	Stratified           bool    `json:"stratified"`
	StratificationColumn string  `json:"stratificationColumn,omitempty"`
}

// Association is one SPEC_FULL supplemental signal for a column pair the
// mandatory Pearson matrix doesn't cover (categorical-categorical,
// categorical-numeric).
type Association struct {
	ColumnA     string  `json:"columnA"`
	ColumnB     string  `json:"columnB"`
	Sense       string  `json:"sense"`
	EffectSize  float64 `json:"effectSize"`
	PValue      float64 `json:"pValue"`
	Signal      string  `json:"signal"`
	Description string  `json:"description"`
}

// DistributionNote is the SPEC_FULL normality-diagnostic insight supplement.
type DistributionNote struct {
	Column      string  `json:"column"`
	IsNormal    bool    `json:"isNormal"`
	Statistic   float64 `json:"statistic"`
	PValue      float64 `json:"pValue"`
	Description string  `json:"description"`
}

// Report is the top-level aggregate, spec §3.
type Report struct {
	Summary      Summary                `json:"summary"`
	ColumnStats  map[string]ColumnStats `json:"columns"`
	Correlations Correlations           `json:"correlations"`
	Insights     []Insight              `json:"insights"`
	Metadata     Metadata               `json:"metadata"`
}
