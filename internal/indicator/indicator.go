package indicator

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// Indicator interface defines methods that any technical indicator must implement.
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Config reconfigures the indicator parameters
	Config(params ...any) error
	// Columns returns the names of the columns Compute produces, in output order
	Columns() []types.IndicatorName
	// LookBack returns the number of periods needed before the first value is defined
	LookBack() int
	// Compute derives the indicator columns from the series. Columns are aligned with
	// series.Bars and undefined entries are NaN.
	Compute(series types.Series) IndicatorSet
}

// IndicatorSet maps each indicator column to its values, aligned with the series it was
// computed from.
type IndicatorSet map[types.IndicatorName][]float64

// Len returns the number of periods the set covers.
func (s IndicatorSet) Len() int {
	for _, column := range s {
		return len(column)
	}

	return 0
}

// Column returns a single column of the set.
func (s IndicatorSet) Column(name types.IndicatorName) ([]float64, bool) {
	column, ok := s[name]

	return column, ok
}

// Latest returns the last value of a column, or None when the column is missing,
// empty or undefined at its last period.
func (s IndicatorSet) Latest(name types.IndicatorName) optional.Option[float64] {
	column, ok := s[name]
	if !ok || len(column) == 0 {
		return optional.None[float64]()
	}

	return definedValue(column[len(column)-1])
}

// At returns the value of a column at the given period, or None when undefined.
func (s IndicatorSet) At(name types.IndicatorName, index int) optional.Option[float64] {
	column, ok := s[name]
	if !ok || index < 0 || index >= len(column) {
		return optional.None[float64]()
	}

	return definedValue(column[index])
}

func definedValue(v float64) optional.Option[float64] {
	if math.IsNaN(v) {
		return optional.None[float64]()
	}

	return optional.Some(v)
}

// undefinedColumn returns a column of n NaN values.
func undefinedColumn(n int) []float64 {
	column := make([]float64, n)
	for i := range column {
		column[i] = math.NaN()
	}

	return column
}

// isUndefined reports whether every entry of the column is NaN. An empty column is undefined.
func isUndefined(column []float64) bool {
	for _, v := range column {
		if !math.IsNaN(v) {
			return false
		}
	}

	return true
}

// rollingMean returns the trailing unweighted mean over window values.
// The first window-1 entries are NaN.
func rollingMean(values []float64, window int) []float64 {
	out := undefinedColumn(len(values))
	if window <= 0 {
		return out
	}

	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		for _, v := range values[i-window+1 : i+1] {
			sum += v
		}

		out[i] = sum / float64(window)
	}

	return out
}

// rollingStd returns the trailing sample standard deviation (n-1 denominator) over window
// values. A window smaller than 2 has no sample deviation and yields NaN everywhere.
func rollingStd(values []float64, window int) []float64 {
	out := undefinedColumn(len(values))
	if window < 2 {
		return out
	}

	for i := window - 1; i < len(values); i++ {
		slice := values[i-window+1 : i+1]

		mean := 0.0
		for _, v := range slice {
			mean += v
		}

		mean /= float64(window)

		squares := 0.0
		for _, v := range slice {
			squares += (v - mean) * (v - mean)
		}

		out[i] = math.Sqrt(squares / float64(window-1))
	}

	return out
}

// exponentialSmoothing applies the non-adjusted exponential recurrence with
// alpha = 2/(span+1), seeded with the first value.
func exponentialSmoothing(values []float64, span int) []float64 {
	out := undefinedColumn(len(values))
	if span <= 0 || len(values) == 0 {
		return out
	}

	alpha := 2.0 / float64(span+1)

	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}

	return out
}
