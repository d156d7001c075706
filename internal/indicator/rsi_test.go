package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/mocks"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type RSITestSuite struct {
	suite.Suite
}

func TestRSISuite(t *testing.T) {
	suite.Run(t, new(RSITestSuite))
}

func (suite *RSITestSuite) TestNewRSI() {
	rsi := NewRSI()
	suite.NotNil(rsi)

	rsiImpl := rsi.(*RSI)
	suite.Equal(14, rsiImpl.period)
	suite.Equal(types.IndicatorTypeRSI, rsi.Name())
	suite.Equal(14, rsi.LookBack())
}

func (suite *RSITestSuite) TestConfig() {
	rsi := NewRSI()

	suite.NoError(rsi.Config(7))
	suite.Equal(7, rsi.LookBack())

	err := rsi.Config(0)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))

	err = rsi.Config(7.5)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidType))
}

func (suite *RSITestSuite) TestFirstDefinedIndex() {
	series := mocks.LinearSeries("TEST", 30, 100, 1, 1000)
	out := ComputeRSI(series, 14)

	for i := 0; i < 13; i++ {
		suite.True(math.IsNaN(out[i]), "index %d should be undefined", i)
	}

	suite.False(math.IsNaN(out[13]))
}

func (suite *RSITestSuite) TestUptrendSaturates() {
	series := mocks.LinearSeries("TEST", 60, 100, 1, 1000)
	out := ComputeRSI(series, 14)

	for i := 13; i < len(out); i++ {
		suite.Equal(100.0, out[i])
	}
}

func (suite *RSITestSuite) TestFlatSeriesSaturates() {
	out := ComputeRSI(mocks.ConstantSeries("TEST", 20, 10, 1), 14)
	suite.Equal(100.0, out[19])
}

func (suite *RSITestSuite) TestDowntrendIsZero() {
	out := ComputeRSI(mocks.LinearSeries("TEST", 30, 200, -1, 1), 14)

	for i := 14; i < len(out); i++ {
		suite.Equal(0.0, out[i])
	}
}

func (suite *RSITestSuite) TestKnownValue() {
	// deltas over the last 3 periods: +2, -1, +2 => avgGain 4/3, avgLoss 1/3, RS 4
	series := mocks.SeriesFromCloses("TEST", 10, 12, 11, 13)
	out := ComputeRSI(series, 3)

	suite.InDelta(80.0, out[3], 1e-9)
}

func (suite *RSITestSuite) TestBounded() {
	for seed := int64(1); seed <= 20; seed++ {
		config := mocks.DefaultConfig()
		config.Count = 150
		config.Volatility = 0.05
		series := mocks.NewDataGenerator(seed).GenerateSeries(config)

		for i, v := range ComputeRSI(series, 14) {
			if math.IsNaN(v) {
				continue
			}

			suite.GreaterOrEqual(v, 0.0, "seed %d index %d", seed, i)
			suite.LessOrEqual(v, 100.0, "seed %d index %d", seed, i)
		}
	}
}

func (suite *RSITestSuite) TestShortSeries() {
	suite.True(isUndefined(ComputeRSI(mocks.LinearSeries("TEST", 5, 1, 1, 1), 14)))
	suite.Empty(ComputeRSI(types.Series{}, 14))
}
