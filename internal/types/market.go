package types

import (
	"math"
	"slices"
	"time"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// MarketData is a single OHLCV period of a traded asset.
type MarketData struct {
	Symbol string    `json:"symbol" yaml:"symbol"`
	Time   time.Time `json:"time" yaml:"time"`
	Open   float64   `json:"open" yaml:"open"`
	High   float64   `json:"high" yaml:"high"`
	Low    float64   `json:"low" yaml:"low"`
	Close  float64   `json:"close" yaml:"close"`
	Volume float64   `json:"volume" yaml:"volume"`
}

// IsFinite reports whether every numeric field of the period is a finite number.
func (m MarketData) IsFinite() bool {
	for _, v := range [...]float64{m.Open, m.High, m.Low, m.Close, m.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// Series is the canonical OHLCV series handed from a data source to the indicator engine.
// Bars are ordered by time, oldest first.
type Series struct {
	Symbol string       `json:"symbol" yaml:"symbol"`
	Bars   []MarketData `json:"bars" yaml:"bars"`
}

// NewSeries creates a series for the given symbol.
func NewSeries(symbol string, bars []MarketData) Series {
	return Series{
		Symbol: symbol,
		Bars:   bars,
	}
}

// Len returns the number of periods in the series.
func (s Series) Len() int {
	return len(s.Bars)
}

// IsEmpty reports whether the series holds no periods.
func (s Series) IsEmpty() bool {
	return len(s.Bars) == 0
}

// Last returns the most recent period.
func (s Series) Last() (MarketData, bool) {
	if len(s.Bars) == 0 {
		return MarketData{}, false
	}

	return s.Bars[len(s.Bars)-1], true
}

// Closes returns the close column.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, bar := range s.Bars {
		closes[i] = bar.Close
	}

	return closes
}

// Highs returns the high column.
func (s Series) Highs() []float64 {
	highs := make([]float64, len(s.Bars))
	for i, bar := range s.Bars {
		highs[i] = bar.High
	}

	return highs
}

// Lows returns the low column.
func (s Series) Lows() []float64 {
	lows := make([]float64, len(s.Bars))
	for i, bar := range s.Bars {
		lows[i] = bar.Low
	}

	return lows
}

// Volumes returns the volume column.
func (s Series) Volumes() []float64 {
	volumes := make([]float64, len(s.Bars))
	for i, bar := range s.Bars {
		volumes[i] = bar.Volume
	}

	return volumes
}

// Clone returns a deep copy of the series so callers cannot mutate shared bars.
func (s Series) Clone() Series {
	return Series{
		Symbol: s.Symbol,
		Bars:   slices.Clone(s.Bars),
	}
}

// Validate checks the canonical series invariants: strictly increasing timestamps
// (which also rules out duplicate periods) and finite numeric fields.
func (s Series) Validate() error {
	for i, bar := range s.Bars {
		if !bar.IsFinite() {
			return errors.Newf(errors.ErrCodeInvalidSeries, "period %d (%s) of %s has a non-finite field", i, bar.Time.Format(time.RFC3339), s.Symbol)
		}

		if i == 0 {
			continue
		}

		prev := s.Bars[i-1].Time
		if !bar.Time.After(prev) {
			return errors.Newf(errors.ErrCodeInvalidSeries, "period %d of %s is not after the previous period: %s <= %s", i, s.Symbol, bar.Time.Format(time.RFC3339), prev.Format(time.RFC3339))
		}
	}

	return nil
}

// Canonicalize orders bars by time, keeps the first bar of any duplicated period and
// drops periods with non-finite fields. It returns the cleaned series and the number of
// dropped periods.
func (s Series) Canonicalize() (Series, int) {
	bars := make([]MarketData, 0, len(s.Bars))
	for _, bar := range s.Bars {
		if bar.IsFinite() {
			bars = append(bars, bar)
		}
	}

	slices.SortStableFunc(bars, func(a, b MarketData) int {
		return a.Time.Compare(b.Time)
	})

	bars = slices.CompactFunc(bars, func(a, b MarketData) bool {
		return a.Time.Equal(b.Time)
	})

	return Series{Symbol: s.Symbol, Bars: bars}, len(s.Bars) - len(bars)
}
