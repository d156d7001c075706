package indicator

import (
	"slices"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// FibonacciRatios are the retracement ratios, in column order.
var FibonacciRatios = []float64{0.236, 0.382, 0.618}

// FibonacciRetracement derives static retracement levels from the extreme range of the series.
type FibonacciRetracement struct{}

// NewFibonacciRetracement creates a new Fibonacci retracement indicator.
func NewFibonacciRetracement() Indicator {
	return &FibonacciRetracement{}
}

// Name returns the name of the indicator.
func (f *FibonacciRetracement) Name() types.IndicatorType {
	return types.IndicatorTypeFibonacciRetracement
}

// Config accepts no parameters.
func (f *FibonacciRetracement) Config(params ...any) error {
	if len(params) != 0 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "Config expects no parameters, got %d", len(params))
	}

	return nil
}

// Columns returns the 23.6%, 38.2% and 61.8% level columns.
func (f *FibonacciRetracement) Columns() []types.IndicatorName {
	return []types.IndicatorName{types.IndicatorFib236, types.IndicatorFib382, types.IndicatorFib618}
}

// LookBack returns 1.
func (f *FibonacciRetracement) LookBack() int {
	return 1
}

// Compute implements Indicator.
func (f *FibonacciRetracement) Compute(series types.Series) IndicatorSet {
	levels := ComputeFibonacciRetracement(series)
	set := make(IndicatorSet, len(levels))

	for i, name := range f.Columns() {
		set[name] = levels[i]
	}

	return set
}

// ComputeFibonacciRetracement returns one column per ratio in FibonacciRatios holding
// high - ratio*(high-low), where high and low are the extremes of the whole series.
// The levels are the same at every period.
func ComputeFibonacciRetracement(series types.Series) [][]float64 {
	levels := make([][]float64, len(FibonacciRatios))
	if series.IsEmpty() {
		for i := range levels {
			levels[i] = []float64{}
		}

		return levels
	}

	high := slices.Max(series.Highs())
	low := slices.Min(series.Lows())
	diff := high - low

	for i, ratio := range FibonacciRatios {
		column := make([]float64, series.Len())
		level := high - ratio*diff

		for j := range column {
			column[j] = level
		}

		levels[i] = column
	}

	return levels
}
