package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type TimespanTestSuite struct {
	suite.Suite
}

func TestTimespanSuite(t *testing.T) {
	suite.Run(t, new(TimespanTestSuite))
}

func (suite *TimespanTestSuite) TestMultiplier() {
	tests := []struct {
		timespan Timespan
		expected int
	}{
		{TimespanOneSecond, 1},
		{TimespanOneMinute, 1},
		{TimespanThreeMinutes, 3},
		{TimespanFiveMinutes, 5},
		{TimespanFifteenMinutes, 15},
		{TimespanThirtyMinutes, 30},
		{TimespanOneHour, 1},
		{TimespanTwoHours, 2},
		{TimespanFourHours, 4},
		{TimespanSixHours, 6},
		{TimespanEightHours, 8},
		{TimespanTwelveHours, 12},
		{TimespanOneDay, 1},
		{TimespanThreeDays, 3},
		{TimespanOneWeek, 1},
		{TimespanOneMonth, 1},
	}

	for _, tc := range tests {
		suite.Run(string(tc.timespan), func() {
			suite.Equal(tc.expected, tc.timespan.Multiplier())
		})
	}
}

func (suite *TimespanTestSuite) TestMultiplierDefault() {
	suite.Equal(1, Timespan("unknown").Multiplier())
}

func (suite *TimespanTestSuite) TestDuration() {
	tests := []struct {
		timespan Timespan
		expected time.Duration
	}{
		{TimespanOneSecond, time.Second},
		{TimespanFifteenMinutes, 15 * time.Minute},
		{TimespanFourHours, 4 * time.Hour},
		{TimespanOneDay, 24 * time.Hour},
		{TimespanThreeDays, 72 * time.Hour},
		{TimespanOneWeek, 7 * 24 * time.Hour},
		{TimespanOneMonth, 30 * 24 * time.Hour},
	}

	for _, tc := range tests {
		suite.Run(string(tc.timespan), func() {
			suite.Equal(tc.expected, tc.timespan.Duration())
		})
	}
}

func (suite *TimespanTestSuite) TestIsValid() {
	for _, timespan := range Timespans() {
		suite.True(timespan.IsValid())
	}

	suite.False(Timespan("2d").IsValid())
	suite.False(Timespan("").IsValid())
	suite.Equal(TimespanOneDay, DefaultTimespan)
}
