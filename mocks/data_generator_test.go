package mocks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/argo-indicators/internal/types"
)

type DataGeneratorTestSuite struct {
	suite.Suite
}

func TestDataGeneratorSuite(t *testing.T) {
	suite.Run(t, new(DataGeneratorTestSuite))
}

func (suite *DataGeneratorTestSuite) TestGenerateCleanBars() {
	config := DefaultConfig()
	config.Count = 100

	bars := NewDataGenerator(42).Generate(config)
	suite.Require().Len(bars, 100)

	for i, bar := range bars {
		suite.Equal(config.Symbol, bar.Symbol)
		suite.True(bar.IsFinite(), "bar %d", i)
		suite.Positive(bar.Low, "bar %d", i)
		suite.GreaterOrEqual(bar.High, bar.Low, "bar %d", i)
		suite.Equal(config.StartTime.AddDate(0, 0, i), bar.Time)
	}

	suite.NoError(types.NewSeries(config.Symbol, bars).Validate())
}

func (suite *DataGeneratorTestSuite) TestSeedsAreReproducible() {
	config := DefaultConfig()
	config.Count = 20

	suite.Equal(NewDataGenerator(42).Generate(config), NewDataGenerator(42).Generate(config))
	suite.NotEqual(NewDataGenerator(42).Generate(config), NewDataGenerator(123).Generate(config))
}

func (suite *DataGeneratorTestSuite) TestProviderNoise() {
	config := DefaultConfig()
	config.Count = 200
	config.DuplicateRate = 0.1
	config.IncompleteRate = 0.1

	bars := NewDataGenerator(9).Generate(config)
	suite.Greater(len(bars), config.Count)

	raw := types.NewSeries(config.Symbol, bars)
	suite.Error(raw.Validate())

	series := NewDataGenerator(9).GenerateSeries(config)
	suite.NoError(series.Validate())
	suite.Less(series.Len(), config.Count)
}

func (suite *DataGeneratorTestSuite) TestNextPeriod() {
	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		interval types.Timespan
		expected time.Time
	}{
		{types.TimespanOneMinute, start.Add(time.Minute)},
		{types.TimespanFourHours, start.Add(4 * time.Hour)},
		{types.TimespanOneDay, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{types.TimespanThreeDays, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)},
		{types.TimespanOneWeek, time.Date(2024, 2, 7, 0, 0, 0, 0, time.UTC)},
		{types.TimespanOneMonth, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range testCases {
		suite.Run(string(tc.interval), func() {
			suite.Equal(tc.expected, NextPeriod(start, tc.interval))
		})
	}
}

func (suite *DataGeneratorTestSuite) TestHourlyBars() {
	config := DefaultConfig()
	config.Interval = types.TimespanOneHour
	config.Count = 3

	bars := NewDataGenerator(1).Generate(config)
	suite.Equal(config.StartTime.Add(2*time.Hour), bars[2].Time)
}

func (suite *DataGeneratorTestSuite) TestLinearSeries() {
	series := LinearSeries("TEST", 60, 100, 1, 1000)
	suite.Equal(60, series.Len())

	last, ok := series.Last()
	suite.Require().True(ok)
	suite.Equal(159.0, last.Close)
	suite.Equal(160.0, last.High)
	suite.Equal(158.0, last.Low)
	suite.Equal(1000.0, last.Volume)
	suite.NoError(series.Validate())
}

func (suite *DataGeneratorTestSuite) TestConstantAndCloseSeries() {
	constant := ConstantSeries("TEST", 5, 42, 10)
	for _, bar := range constant.Bars {
		suite.Equal(42.0, bar.Close)
	}

	series := SeriesFromCloses("TEST", 1, 2, 3)
	suite.Equal([]float64{1, 2, 3}, series.Closes())
	suite.Equal(series.Closes(), series.Highs())
	suite.Equal(series.Closes(), series.Lows())
}
