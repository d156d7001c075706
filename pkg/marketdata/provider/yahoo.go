package provider

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// DefaultYahooBaseURL is the public Yahoo Finance chart endpoint host.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

var yahooIntervals = map[types.Timespan]string{
	types.TimespanOneMinute:      "1m",
	types.TimespanFiveMinutes:    "5m",
	types.TimespanFifteenMinutes: "15m",
	types.TimespanThirtyMinutes:  "30m",
	types.TimespanOneHour:        "60m",
	types.TimespanOneDay:         "1d",
	types.TimespanOneWeek:        "1wk",
	types.TimespanOneMonth:       "1mo",
}

// YahooQuote holds the OHLCV columns of a chart result. Entries are nil for periods
// without trades.
type YahooQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

// YahooChartResult is one chart series.
type YahooChartResult struct {
	Meta struct {
		Symbol   string `json:"symbol"`
		Currency string `json:"currency"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []YahooQuote `json:"quote"`
	} `json:"indicators"`
}

// YahooChartResponse is the response of the v8 chart API.
type YahooChartResponse struct {
	Chart struct {
		Result []YahooChartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// YahooAdapter fetches historical bars from the Yahoo Finance chart API.
type YahooAdapter struct {
	client *resty.Client
}

// NewYahooAdapter creates a Yahoo adapter. An empty baseURL uses DefaultYahooBaseURL and
// a zero timeout uses DefaultTimeout.
func NewYahooAdapter(baseURL string, timeout time.Duration) *YahooAdapter {
	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", "Mozilla/5.0")

	return &YahooAdapter{
		client: client,
	}
}

// Name implements Adapter.
func (a *YahooAdapter) Name() ProviderType {
	return ProviderYahoo
}

// FetchRaw requests the chart of the symbol between the request dates.
func (a *YahooAdapter) FetchRaw(ctx context.Context, req Request) (YahooChartResponse, error) {
	interval, ok := yahooIntervals[req.Interval]
	if !ok {
		return YahooChartResponse{}, errors.Newf(errors.ErrCodeInvalidTimespan, "unsupported interval for yahoo: %s", req.Interval)
	}

	var chart YahooChartResponse

	resp, err := a.client.R().
		SetContext(ctx).
		SetPathParam("symbol", req.Symbol).
		SetQueryParams(map[string]string{
			"period1":        strconv.FormatInt(req.StartDate.Unix(), 10),
			"period2":        strconv.FormatInt(req.EndDate.Unix(), 10),
			"interval":       interval,
			"includePrePost": "false",
		}).
		SetResult(&chart).
		SetError(&chart).
		Get("/v8/finance/chart/{symbol}")
	if err != nil {
		return YahooChartResponse{}, errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "yahoo request failed", err)
	}

	if chart.Chart.Error != nil {
		return YahooChartResponse{}, errors.Newf(errors.ErrCodeMarketDataFetchFailed, "yahoo api error: %s (%s)", chart.Chart.Error.Description, chart.Chart.Error.Code)
	}

	if resp.IsError() {
		return YahooChartResponse{}, errors.Newf(errors.ErrCodeMarketDataFetchFailed, "yahoo returned status %d", resp.StatusCode())
	}

	return chart, nil
}

// Normalize converts the chart into market data. Periods with a null column are kept
// with NaN values so the source drops them.
func (a *YahooAdapter) Normalize(req Request, raw YahooChartResponse) (types.Series, error) {
	if len(raw.Chart.Result) == 0 {
		return types.NewSeries(req.Symbol, nil), nil
	}

	result := raw.Chart.Result[0]
	if len(result.Timestamp) == 0 {
		return types.NewSeries(req.Symbol, nil), nil
	}

	if len(result.Indicators.Quote) == 0 {
		return types.Series{}, errors.New(errors.ErrCodeMarketDataParseFailed, "yahoo chart has timestamps but no quote columns")
	}

	quote := result.Indicators.Quote[0]
	bars := make([]types.MarketData, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		bars = append(bars, types.MarketData{
			Symbol: req.Symbol,
			Time:   time.Unix(ts, 0).UTC(),
			Open:   yahooValue(quote.Open, i),
			High:   yahooValue(quote.High, i),
			Low:    yahooValue(quote.Low, i),
			Close:  yahooValue(quote.Close, i),
			Volume: yahooValue(quote.Volume, i),
		})
	}

	return types.NewSeries(req.Symbol, bars), nil
}

func yahooValue(column []*float64, index int) float64 {
	if index >= len(column) || column[index] == nil {
		return math.NaN()
	}

	return *column[index]
}
