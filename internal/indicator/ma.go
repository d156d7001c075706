package indicator

import (
	"fmt"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// DefaultSMAWindow is the window of the SMA_50 column.
const DefaultSMAWindow = 50

// SMA indicator implements the Simple Moving Average of the close price.
type SMA struct {
	window int
}

// NewSMA creates a new SMA indicator with default configuration.
func NewSMA() Indicator {
	return &SMA{
		window: DefaultSMAWindow,
	}
}

// Name returns the name of the indicator.
func (m *SMA) Name() types.IndicatorType {
	return types.IndicatorTypeSMA
}

// Config configures the SMA indicator. Expected parameters: window (int).
func (m *SMA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: window (int)")
	}

	window, ok := params[0].(int)
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for window parameter, expected int")
	}

	if window <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "window must be a positive integer, got %d", window)
	}

	m.window = window

	return nil
}

// Columns returns SMA_<window>.
func (m *SMA) Columns() []types.IndicatorName {
	return []types.IndicatorName{smaColumn(m.window)}
}

// LookBack returns the window size.
func (m *SMA) LookBack() int {
	return m.window
}

// Compute implements Indicator.
func (m *SMA) Compute(series types.Series) IndicatorSet {
	return IndicatorSet{
		smaColumn(m.window): ComputeSMA(series, m.window),
	}
}

// ComputeSMA returns the trailing unweighted mean of close over window periods.
// The first window-1 periods are undefined.
func ComputeSMA(series types.Series, window int) []float64 {
	return rollingMean(series.Closes(), window)
}

func smaColumn(window int) types.IndicatorName {
	if window == DefaultSMAWindow {
		return types.IndicatorSMA50
	}

	return types.IndicatorName(fmt.Sprintf("SMA_%d", window))
}
