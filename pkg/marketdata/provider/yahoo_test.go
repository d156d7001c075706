package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

const yahooChartFixture = `{
	"chart": {
		"result": [{
			"meta": {"symbol": "AAPL", "currency": "USD"},
			"timestamp": [1704067200, 1704153600, 1704240000],
			"indicators": {"quote": [{
				"open":   [185.0, 186.0, null],
				"high":   [187.0, 188.0, 189.0],
				"low":    [184.0, 185.0, 186.0],
				"close":  [186.5, 187.5, 188.5],
				"volume": [1000, 2000, 3000]
			}]}
		}],
		"error": null
	}
}`

type YahooAdapterTestSuite struct {
	suite.Suite
	server  *httptest.Server
	handler http.HandlerFunc
	request Request
}

func TestYahooAdapterSuite(t *testing.T) {
	suite.Run(t, new(YahooAdapterTestSuite))
}

func (suite *YahooAdapterTestSuite) SetupTest() {
	suite.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.handler(w, r)
	}))
	suite.request = Request{
		Symbol:    "AAPL",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Interval:  types.TimespanOneDay,
	}
}

func (suite *YahooAdapterTestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *YahooAdapterTestSuite) respond(status int, body string) {
	suite.handler = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (suite *YahooAdapterTestSuite) TestFetchSendsQuery() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		suite.Equal("/v8/finance/chart/AAPL", r.URL.Path)
		suite.Equal("1d", r.URL.Query().Get("interval"))
		suite.Equal("1704067200", r.URL.Query().Get("period1"))
		suite.Equal("1704412800", r.URL.Query().Get("period2"))
		suite.Equal("Mozilla/5.0", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(yahooChartFixture))
	}

	_, err := NewYahooAdapter(suite.server.URL, time.Second).FetchRaw(context.Background(), suite.request)
	suite.NoError(err)
}

func (suite *YahooAdapterTestSuite) TestFetchThroughSourceDropsNullPeriods() {
	suite.respond(http.StatusOK, yahooChartFixture)

	source := NewSource[YahooChartResponse](NewYahooAdapter(suite.server.URL, time.Second), nil)

	series, err := source.Fetch(context.Background(), suite.request)
	suite.Require().NoError(err)
	suite.Equal(2, series.Len())
	suite.Equal([]float64{186.5, 187.5}, series.Closes())
	suite.Equal("AAPL", series.Bars[0].Symbol)
	suite.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), series.Bars[1].Time)
}

func (suite *YahooAdapterTestSuite) TestChartError() {
	suite.respond(http.StatusNotFound, `{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}}}`)

	source := NewSource[YahooChartResponse](NewYahooAdapter(suite.server.URL, time.Second), nil)

	_, err := source.Fetch(context.Background(), suite.request)
	suite.Error(err)
	suite.True(errors.IsSourceUnavailable(err))
	suite.Contains(err.Error(), "delisted")
}

func (suite *YahooAdapterTestSuite) TestEmptyChart() {
	suite.respond(http.StatusOK, `{"chart": {"result": [{"timestamp": [], "indicators": {"quote": [{}]}}], "error": null}}`)

	source := NewSource[YahooChartResponse](NewYahooAdapter(suite.server.URL, time.Second), nil)

	_, err := source.Fetch(context.Background(), suite.request)
	suite.True(errors.IsEmptySeries(err))
}

func (suite *YahooAdapterTestSuite) TestMissingQuoteColumns() {
	raw := YahooChartResponse{}
	raw.Chart.Result = []YahooChartResult{{Timestamp: []int64{1704067200}}}

	_, err := NewYahooAdapter("", 0).Normalize(suite.request, raw)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataParseFailed))
}

func (suite *YahooAdapterTestSuite) TestUnsupportedInterval() {
	req := suite.request
	req.Interval = types.TimespanFourHours

	_, err := NewYahooAdapter(suite.server.URL, time.Second).FetchRaw(context.Background(), req)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidTimespan))
}
