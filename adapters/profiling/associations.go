package profiling

import (
	"context"

	"dataprofiler/adapters/stats/senses"
	"dataprofiler/domain/dataset"
	"dataprofiler/domain/profile"
)

const associationMinPairedObservations = 8

// senseForPairKind maps a (numeric?, numeric?) column-type pair to the one
// statistical sense best suited to it, mirroring the test-selection rule
// the teacher's pairwise engine used before this engine was rebuilt around
// the kept senses package: Spearman for numeric-numeric, chi-square for
// categorical-categorical, Welch's t-test for a numeric paired with a
// binary-valued categorical column, and cross-correlation as the
// general-purpose fallback.
func senseForPairKind(aNumeric, bNumeric bool, categoricalCardinality int) senses.StatisticalSense {
	switch {
	case aNumeric && bNumeric:
		return senses.NewSpearmanSense()
	case !aNumeric && !bNumeric:
		return senses.NewChiSquareSense()
	case categoricalCardinality == 2:
		return senses.NewWelchTTestSense()
	default:
		return senses.NewCrossCorrelationSense()
	}
}

// DeriveAssociations computes the SPEC_FULL associations supplement: one
// signal per numeric/categorical column pair the mandatory Pearson matrix
// doesn't cover, using whichever of the four kept statistical senses fits
// the pair's types. Categorical cells are coded as the rank of their
// first-seen order, since every sense here operates on []float64.
func DeriveAssociations(ctx context.Context, view *dataset.View, columnStats map[string]profile.ColumnStats) []profile.Association {
	columns := view.Columns()
	coded := make(map[string][]float64, len(columns))
	cardinality := make(map[string]int, len(columns))
	for _, col := range columns {
		values, distinct := codeColumn(view.Column(col))
		coded[col] = values
		cardinality[col] = distinct
	}

	var out []profile.Association
	for i := 0; i < len(columns); i++ {
		for j := i + 1; j < len(columns); j++ {
			colA, colB := columns[i], columns[j]
			csA, csB := columnStats[colA], columnStats[colB]

			// The mandatory correlation matrix already covers numeric-numeric
			// pairs via Pearson; skip those here to avoid a redundant signal.
			if csA.Type == profile.TypeNumeric && csB.Type == profile.TypeNumeric {
				continue
			}

			x, y := coded[colA], coded[colB]
			n := len(x)
			if len(y) < n {
				n = len(y)
			}
			if n < associationMinPairedObservations {
				continue
			}

			categoricalCardinality := cardinality[colB]
			if csB.Type == profile.TypeNumeric {
				categoricalCardinality = cardinality[colA]
			}
			sense := senseForPairKind(csA.Type == profile.TypeNumeric, csB.Type == profile.TypeNumeric, categoricalCardinality)
			result := sense.Analyze(ctx, x[:n], y[:n], colA, colB)

			out = append(out, profile.Association{
				ColumnA:     colA,
				ColumnB:     colB,
				Sense:       result.SenseName,
				EffectSize:  result.EffectSize,
				PValue:      result.PValue,
				Signal:      result.Signal,
				Description: result.Description,
			})
		}
	}
	return out
}

// codeColumn turns a column's cells into a []float64 suitable for the
// senses package: numeric cells pass through unchanged; string cells are
// coded as the first-seen index of their distinct value (a simple ordinal
// encoding, adequate for the association senses' rank/categorical tests).
// Nulls are dropped, same as everywhere else in profiling.
func codeColumn(cells []dataset.Cell) ([]float64, int) {
	out := make([]float64, 0, len(cells))
	codes := make(map[string]float64)
	for _, c := range cells {
		if c.IsNull() {
			continue
		}
		if c.IsNumeric() {
			out = append(out, c.Number)
			continue
		}
		key := c.String()
		if code, ok := codes[key]; ok {
			out = append(out, code)
			continue
		}
		code := float64(len(codes))
		codes[key] = code
		out = append(out, code)
	}
	distinct := len(codes)
	if distinct == 0 {
		distinct = 1
	}
	return out, distinct
}
