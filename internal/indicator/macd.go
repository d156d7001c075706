package indicator

import (
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// MACD indicator implements Moving Average Convergence Divergence.
type MACD struct {
	shortSpan  int
	longSpan   int
	signalSpan int
}

// NewMACD creates a new MACD indicator with default configuration.
func NewMACD() Indicator {
	return &MACD{
		shortSpan:  12,
		longSpan:   26,
		signalSpan: 9,
	}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Config configures the MACD indicator. Expected parameters: shortSpan (int), longSpan (int), signalSpan (int).
func (m *MACD) Config(params ...any) error {
	if len(params) != 3 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 3 parameters: shortSpan (int), longSpan (int), signalSpan (int)")
	}

	spans := make([]int, len(params))

	for i, param := range params {
		span, ok := param.(int)
		if !ok {
			return errors.Newf(errors.ErrCodeInvalidType, "invalid type for parameter %d, expected int", i)
		}

		if span <= 0 {
			return errors.Newf(errors.ErrCodeInvalidPeriod, "span must be a positive integer, got %d", span)
		}

		spans[i] = span
	}

	if spans[0] >= spans[1] {
		return errors.Newf(errors.ErrCodeInvalidParameter, "shortSpan (%d) must be less than longSpan (%d)", spans[0], spans[1])
	}

	m.shortSpan = spans[0]
	m.longSpan = spans[1]
	m.signalSpan = spans[2]

	return nil
}

// Columns returns the MACD line and signal line columns.
func (m *MACD) Columns() []types.IndicatorName {
	return []types.IndicatorName{types.IndicatorMACDLine, types.IndicatorSignalLine}
}

// LookBack returns 1: both lines are recurrences seeded with the first close.
func (m *MACD) LookBack() int {
	return 1
}

// Compute implements Indicator.
func (m *MACD) Compute(series types.Series) IndicatorSet {
	line, signal := ComputeMACD(series, m.shortSpan, m.longSpan, m.signalSpan)

	return IndicatorSet{
		types.IndicatorMACDLine:   line,
		types.IndicatorSignalLine: signal,
	}
}

// ComputeMACD returns EMA(close, shortSpan) - EMA(close, longSpan) and its signal line,
// the EMA of the MACD line over signalSpan using the same recurrence.
func ComputeMACD(series types.Series, shortSpan, longSpan, signalSpan int) (line, signal []float64) {
	short := ComputeEMA(series, shortSpan)
	long := ComputeEMA(series, longSpan)

	line = make([]float64, len(short))
	for i := range short {
		line[i] = short[i] - long[i]
	}

	return line, exponentialSmoothing(line, signalSpan)
}
