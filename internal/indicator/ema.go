package indicator

import (
	"fmt"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// DefaultEMASpan is the span of the EMA_20 column.
const DefaultEMASpan = 20

// EMA indicator implements Exponential Moving Average calculation.
type EMA struct {
	span int
}

// NewEMA creates a new EMA indicator with default configuration.
func NewEMA() Indicator {
	return &EMA{
		span: DefaultEMASpan,
	}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Config configures the EMA indicator. Expected parameters: span (int).
func (e *EMA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: span (int)")
	}

	span, ok := params[0].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for span parameter, expected int")
	}

	if span <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "span must be a positive integer, got %d", span)
	}

	e.span = span

	return nil
}

// Columns returns EMA_<span>.
func (e *EMA) Columns() []types.IndicatorName {
	return []types.IndicatorName{emaColumn(e.span)}
}

// LookBack returns 1: the recurrence is seeded with the first close.
func (e *EMA) LookBack() int {
	return 1
}

// Compute implements Indicator.
func (e *EMA) Compute(series types.Series) IndicatorSet {
	return IndicatorSet{
		emaColumn(e.span): ComputeEMA(series, e.span),
	}
}

// ComputeEMA returns the exponential moving average of close.
//
//	EMA[0] = close[0]
//	EMA[t] = alpha*close[t] + (1-alpha)*EMA[t-1], alpha = 2/(span+1)
//
// This is the non-adjusted convention: the seed is the first close, not an SMA of the
// first span closes, so every period is defined.
func ComputeEMA(series types.Series, span int) []float64 {
	return exponentialSmoothing(series.Closes(), span)
}

func emaColumn(span int) types.IndicatorName {
	if span == DefaultEMASpan {
		return types.IndicatorEMA20
	}

	return types.IndicatorName(fmt.Sprintf("EMA_%d", span))
}
