package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// RSI indicator implements the Relative Strength Index over simple averages of gains and losses.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() Indicator {
	return &RSI{
		period: 14,
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Config configures the RSI indicator. Expected parameters: period (int).
func (r *RSI) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, ok := params[0].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for period parameter, expected int")
	}

	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	r.period = period

	return nil
}

// Columns returns the RSI column.
func (r *RSI) Columns() []types.IndicatorName {
	return []types.IndicatorName{types.IndicatorRSI}
}

// LookBack returns the averaging period.
func (r *RSI) LookBack() int {
	return r.period
}

// Compute implements Indicator.
func (r *RSI) Compute(series types.Series) IndicatorSet {
	return IndicatorSet{
		types.IndicatorRSI: ComputeRSI(series, r.period),
	}
}

// ComputeRSI returns the Relative Strength Index of close.
//
// The first period has no previous close and contributes zero gain and zero loss, so the
// first defined value is at index period-1. When the average loss is zero the index
// saturates to 100, including the flat case where the average gain is zero too.
func ComputeRSI(series types.Series, period int) []float64 {
	closes := series.Closes()

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))

	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else if delta < 0 {
			losses[i] = -delta
		}
	}

	avgGain := rollingMean(gains, period)
	avgLoss := rollingMean(losses, period)

	out := undefinedColumn(len(closes))
	for i := range out {
		if math.IsNaN(avgGain[i]) || math.IsNaN(avgLoss[i]) {
			continue
		}

		if avgLoss[i] == 0 {
			out[i] = 100

			continue
		}

		rs := avgGain[i] / avgLoss[i]
		out[i] = 100 - 100/(1+rs)
	}

	return out
}
