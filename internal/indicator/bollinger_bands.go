package indicator

import (
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// BollingerBands implements the Indicator interface for Bollinger Bands.
type BollingerBands struct {
	period int     // Number of periods for moving average
	stdDev float64 // Number of standard deviations
}

// NewBollingerBands creates a new Bollinger Bands indicator with default configuration.
func NewBollingerBands() Indicator {
	return &BollingerBands{
		period: 20,
		stdDev: 2.0,
	}
}

// Name returns the name of the indicator.
func (bb *BollingerBands) Name() types.IndicatorType {
	return types.IndicatorTypeBollingerBands
}

// Config configures the Bollinger Bands indicator. Expected parameters: period (int), stdDev (float64).
func (bb *BollingerBands) Config(params ...any) error {
	if len(params) != 2 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 2 parameters: period (int), stdDev (float64)")
	}

	period, ok := params[0].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for period parameter, expected int")
	}

	if period <= 1 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be greater than 1, got %d", period)
	}

	stdDev, ok := params[1].(float64)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for stdDev parameter, expected float64")
	}

	if stdDev <= 0 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "stdDev must be a positive number, got %f", stdDev)
	}

	bb.period = period
	bb.stdDev = stdDev

	return nil
}

// Columns returns the upper and lower band columns.
func (bb *BollingerBands) Columns() []types.IndicatorName {
	return []types.IndicatorName{types.IndicatorBollingerUpper, types.IndicatorBollingerLower}
}

// LookBack returns the moving average period.
func (bb *BollingerBands) LookBack() int {
	return bb.period
}

// Compute implements Indicator.
func (bb *BollingerBands) Compute(series types.Series) IndicatorSet {
	upper, lower := ComputeBollingerBands(series, bb.period, bb.stdDev)

	return IndicatorSet{
		types.IndicatorBollingerUpper: upper,
		types.IndicatorBollingerLower: lower,
	}
}

// ComputeBollingerBands returns the upper and lower bands around SMA(period) of close,
// offset by k sample standard deviations of the same window.
func ComputeBollingerBands(series types.Series, period int, k float64) (upper, lower []float64) {
	closes := series.Closes()
	middle := rollingMean(closes, period)
	deviation := rollingStd(closes, period)

	upper = make([]float64, len(closes))
	lower = make([]float64, len(closes))

	for i := range closes {
		upper[i] = middle[i] + k*deviation[i]
		lower[i] = middle[i] - k*deviation[i]
	}

	return upper, lower
}
