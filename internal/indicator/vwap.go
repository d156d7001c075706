package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// VWAP implements the cumulative Volume Weighted Average Price anchored at the
// first period of the series.
type VWAP struct{}

// NewVWAP creates a new VWAP indicator.
func NewVWAP() Indicator {
	return &VWAP{}
}

// Name returns the name of the indicator.
func (v *VWAP) Name() types.IndicatorType {
	return types.IndicatorTypeVWAP
}

// Config accepts no parameters.
func (v *VWAP) Config(params ...any) error {
	if len(params) != 0 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "Config expects no parameters, got %d", len(params))
	}

	return nil
}

// Columns returns the VWAP column.
func (v *VWAP) Columns() []types.IndicatorName {
	return []types.IndicatorName{types.IndicatorVWAP}
}

// LookBack returns 1.
func (v *VWAP) LookBack() int {
	return 1
}

// Compute implements Indicator.
func (v *VWAP) Compute(series types.Series) IndicatorSet {
	return IndicatorSet{
		types.IndicatorVWAP: ComputeVWAP(series),
	}
}

// ComputeVWAP returns sum(volume*(high+low)/2) / sum(volume) accumulated from the first
// period. There is no session reset: callers scope the series to the anchor they want.
// A period whose cumulative volume is still zero is undefined.
func ComputeVWAP(series types.Series) []float64 {
	out := make([]float64, series.Len())

	var cumulativePriceVolume, cumulativeVolume float64

	for i, bar := range series.Bars {
		cumulativePriceVolume += bar.Volume * (bar.High + bar.Low) / 2
		cumulativeVolume += bar.Volume

		if cumulativeVolume == 0 {
			out[i] = math.NaN()

			continue
		}

		out[i] = cumulativePriceVolume / cumulativeVolume
	}

	return out
}
