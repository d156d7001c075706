package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/mocks"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type SMATestSuite struct {
	suite.Suite
}

func TestSMASuite(t *testing.T) {
	suite.Run(t, new(SMATestSuite))
}

func (suite *SMATestSuite) TestNewSMA() {
	sma := NewSMA()
	suite.NotNil(sma)

	smaImpl := sma.(*SMA)
	suite.Equal(DefaultSMAWindow, smaImpl.window)
	suite.Equal(types.IndicatorTypeSMA, sma.Name())
	suite.Equal([]types.IndicatorName{types.IndicatorSMA50}, sma.Columns())
	suite.Equal(50, sma.LookBack())
}

func (suite *SMATestSuite) TestConfig() {
	sma := NewSMA()

	suite.NoError(sma.Config(10))
	suite.Equal(10, sma.LookBack())
	suite.Equal([]types.IndicatorName{"SMA_10"}, sma.Columns())

	err := sma.Config()
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))

	err = sma.Config("10")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidType))

	err = sma.Config(0)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}

func (suite *SMATestSuite) TestLeadingValuesUndefined() {
	series := mocks.LinearSeries("TEST", 60, 100, 1, 1000)
	out := ComputeSMA(series, 50)

	suite.Len(out, 60)

	for i := 0; i < 49; i++ {
		suite.True(math.IsNaN(out[i]), "index %d should be undefined", i)
	}

	suite.InDelta(124.5, out[49], 1e-9)
	suite.InDelta(134.5, out[59], 1e-9)
}

func (suite *SMATestSuite) TestConstantClose() {
	series := mocks.ConstantSeries("TEST", 80, 42.5, 1000)
	out := ComputeSMA(series, 50)

	for i := 49; i < len(out); i++ {
		suite.InDelta(42.5, out[i], 1e-9)
	}
}

func (suite *SMATestSuite) TestShortAndEmptySeries() {
	suite.True(isUndefined(ComputeSMA(mocks.LinearSeries("TEST", 10, 1, 1, 1), 50)))
	suite.Empty(ComputeSMA(types.Series{}, 50))
}

func (suite *SMATestSuite) TestCompute() {
	series := mocks.LinearSeries("TEST", 60, 100, 1, 1000)
	set := NewSMA().Compute(series)

	suite.Len(set, 1)
	suite.Equal(60, set.Len())
	suite.InDelta(134.5, set.Latest(types.IndicatorSMA50).Unwrap(), 1e-9)
}
