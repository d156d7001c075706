package types

import (
	"slices"
	"time"
)

// Timespan is the granularity of one period in a series.
type Timespan string

const (
	TimespanOneSecond      Timespan = "1s"
	TimespanOneMinute      Timespan = "1m"
	TimespanThreeMinutes   Timespan = "3m"
	TimespanFiveMinutes    Timespan = "5m"
	TimespanFifteenMinutes Timespan = "15m"
	TimespanThirtyMinutes  Timespan = "30m"
	TimespanOneHour        Timespan = "1h"
	TimespanTwoHours       Timespan = "2h"
	TimespanFourHours      Timespan = "4h"
	TimespanSixHours       Timespan = "6h"
	TimespanEightHours     Timespan = "8h"
	TimespanTwelveHours    Timespan = "12h"
	TimespanOneDay         Timespan = "1d"
	TimespanThreeDays      Timespan = "3d"
	TimespanOneWeek        Timespan = "1w"
	TimespanOneMonth       Timespan = "1M"
)

// DefaultTimespan is used when a caller does not ask for a granularity.
const DefaultTimespan = TimespanOneDay

// Timespans lists every supported granularity, finest first.
func Timespans() []Timespan {
	return []Timespan{
		TimespanOneSecond,
		TimespanOneMinute,
		TimespanThreeMinutes,
		TimespanFiveMinutes,
		TimespanFifteenMinutes,
		TimespanThirtyMinutes,
		TimespanOneHour,
		TimespanTwoHours,
		TimespanFourHours,
		TimespanSixHours,
		TimespanEightHours,
		TimespanTwelveHours,
		TimespanOneDay,
		TimespanThreeDays,
		TimespanOneWeek,
		TimespanOneMonth,
	}
}

// IsValid reports whether t is a supported granularity.
func (t Timespan) IsValid() bool {
	return slices.Contains(Timespans(), t)
}

// Multiplier returns how many base units one period spans.
func (t Timespan) Multiplier() int {
	switch t {
	case TimespanThreeMinutes:
		return 3
	case TimespanFiveMinutes:
		return 5
	case TimespanFifteenMinutes:
		return 15
	case TimespanThirtyMinutes:
		return 30
	case TimespanTwoHours:
		return 2
	case TimespanFourHours:
		return 4
	case TimespanSixHours:
		return 6
	case TimespanEightHours:
		return 8
	case TimespanTwelveHours:
		return 12
	case TimespanThreeDays:
		return 3
	default:
		return 1
	}
}

// Duration returns the length of one period. A month is approximated as 30 days.
func (t Timespan) Duration() time.Duration {
	const day = 24 * time.Hour

	switch t {
	case TimespanOneSecond:
		return time.Second
	case TimespanOneMinute, TimespanThreeMinutes, TimespanFiveMinutes, TimespanFifteenMinutes, TimespanThirtyMinutes:
		return time.Duration(t.Multiplier()) * time.Minute
	case TimespanOneHour, TimespanTwoHours, TimespanFourHours, TimespanSixHours, TimespanEightHours, TimespanTwelveHours:
		return time.Duration(t.Multiplier()) * time.Hour
	case TimespanOneDay, TimespanThreeDays:
		return time.Duration(t.Multiplier()) * day
	case TimespanOneWeek:
		return 7 * day
	case TimespanOneMonth:
		return 30 * day
	default:
		return day
	}
}
