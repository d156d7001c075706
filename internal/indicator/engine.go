package indicator

import (
	"sync"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// Engine computes every registered indicator over a canonical series and exposes the
// latest values and the series it was last given.
//
// Each call to ComputeAll starts from scratch: the returned set is freshly allocated and
// nothing accumulates between calls.
type Engine struct {
	registry IndicatorRegistry
	series   *types.Series
	mu       sync.RWMutex
}

// NewEngine creates an engine over the given registry.
func NewEngine(registry IndicatorRegistry) *Engine {
	return &Engine{
		registry: registry,
		series:   nil,
		mu:       sync.RWMutex{},
	}
}

// NewDefaultEngine creates an engine over the default indicator suite.
func NewDefaultEngine() *Engine {
	return NewEngine(NewDefaultRegistry())
}

// Indicators returns the registered indicators in computation order.
func (e *Engine) Indicators() ([]Indicator, error) {
	names := e.registry.ListIndicators()
	indicators := make([]Indicator, 0, len(names))

	for _, name := range names {
		indicator, err := e.registry.GetIndicator(name)
		if err != nil {
			return nil, err
		}

		indicators = append(indicators, indicator)
	}

	return indicators, nil
}

// Columns returns the names of every column ComputeAll produces, in computation order.
func (e *Engine) Columns() ([]types.IndicatorName, error) {
	indicators, err := e.Indicators()
	if err != nil {
		return nil, err
	}

	columns := []types.IndicatorName{}
	for _, indicator := range indicators {
		columns = append(columns, indicator.Columns()...)
	}

	return columns, nil
}

// LookBack returns the longest look-back window of the registered indicators.
func (e *Engine) LookBack() (int, error) {
	indicators, err := e.Indicators()
	if err != nil {
		return 0, err
	}

	lookBack := 0
	for _, indicator := range indicators {
		lookBack = max(lookBack, indicator.LookBack())
	}

	return lookBack, nil
}

// ComputeAll runs every registered indicator over the series in registration order and
// returns the resulting set. Short or empty series produce undefined columns, not errors.
func (e *Engine) ComputeAll(series types.Series) (IndicatorSet, error) {
	indicators, err := e.Indicators()
	if err != nil {
		return nil, err
	}

	set := IndicatorSet{}

	for _, indicator := range indicators {
		for name, column := range indicator.Compute(series) {
			if _, exists := set[name]; exists {
				return nil, errors.Newf(errors.ErrCodeIndicatorAlreadyExists, "column %s produced by more than one indicator", name)
			}

			if len(column) != series.Len() {
				return nil, errors.Newf(errors.ErrCodeInvalidSeries, "column %s has %d values for %d periods", name, len(column), series.Len())
			}

			set[name] = column
		}
	}

	snapshot := series.Clone()

	e.mu.Lock()
	e.series = &snapshot
	e.mu.Unlock()

	return set, nil
}

// LatestValues returns the last value of every indicator column.
//
// It fails with an InsufficientDataError when the set covers fewer periods than the
// longest look-back window and at least one column is undefined at every period.
// Otherwise columns whose last value is undefined are reported as None.
func (e *Engine) LatestValues(set IndicatorSet) (Snapshot, error) {
	columns, err := e.Columns()
	if err != nil {
		return nil, err
	}

	lookBack, err := e.LookBack()
	if err != nil {
		return nil, err
	}

	if set.Len() < lookBack {
		for _, name := range columns {
			if isUndefined(set[name]) {
				return nil, errors.NewInsufficientDataError(lookBack, set.Len(), e.symbol(), string(name))
			}
		}
	}

	snapshot := make(Snapshot, len(columns))
	for _, name := range columns {
		snapshot[name] = set.Latest(name)
	}

	return snapshot, nil
}

// RawSeries returns a copy of the series last passed to ComputeAll, without indicator columns.
func (e *Engine) RawSeries() (types.Series, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.series == nil {
		return types.Series{}, errors.New(errors.ErrCodeDataNotFound, "no series has been computed yet")
	}

	return e.series.Clone(), nil
}

// Frame attaches the indicator columns of set to the series last passed to ComputeAll.
func (e *Engine) Frame(set IndicatorSet) (Frame, error) {
	series, err := e.RawSeries()
	if err != nil {
		return Frame{}, err
	}

	if set.Len() != series.Len() && len(set) > 0 {
		return Frame{}, errors.Newf(errors.ErrCodeInvalidSeries, "indicator set covers %d periods, series has %d", set.Len(), series.Len())
	}

	columns, err := e.Columns()
	if err != nil {
		return Frame{}, err
	}

	return Frame{
		Series:     series,
		Columns:    columns,
		Indicators: set,
	}, nil
}

func (e *Engine) symbol() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.series == nil {
		return ""
	}

	return e.series.Symbol
}
