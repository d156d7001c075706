package indicator

import (
	"maps"
	"slices"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// Snapshot holds the most recent value of each indicator column. A None value means the
// indicator is undefined at the last period.
type Snapshot map[types.IndicatorName]optional.Option[float64]

// Value returns the value of a column and whether it is defined.
func (s Snapshot) Value(name types.IndicatorName) (float64, bool) {
	value, ok := s[name]
	if !ok || value.IsNone() {
		return 0, false
	}

	return value.Unwrap(), true
}

// Names returns the snapshot's column names, standard indicators first in
// computation order and any others sorted by name.
func (s Snapshot) Names() []types.IndicatorName {
	names := make([]types.IndicatorName, 0, len(s))

	for _, name := range types.IndicatorNames() {
		if _, ok := s[name]; ok {
			names = append(names, name)
		}
	}

	extra := slices.Sorted(maps.Keys(s))
	for _, name := range extra {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	return names
}

// Frame is a series with its indicator columns attached.
type Frame struct {
	Series     types.Series
	Columns    []types.IndicatorName
	Indicators IndicatorSet
}

// Row is one period of a Frame.
type Row struct {
	types.MarketData
	Values map[types.IndicatorName]optional.Option[float64]
}

// Len returns the number of periods in the frame.
func (f Frame) Len() int {
	return f.Series.Len()
}

// Rows returns the frame one period at a time.
func (f Frame) Rows() []Row {
	rows := make([]Row, f.Series.Len())

	for i, bar := range f.Series.Bars {
		values := make(map[types.IndicatorName]optional.Option[float64], len(f.Columns))
		for _, name := range f.Columns {
			values[name] = f.Indicators.At(name, i)
		}

		rows[i] = Row{
			MarketData: bar,
			Values:     values,
		}
	}

	return rows
}
