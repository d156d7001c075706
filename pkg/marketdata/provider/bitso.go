package provider

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// DefaultBitsoBaseURL is the public Bitso REST endpoint.
const DefaultBitsoBaseURL = "https://api.bitso.com"

// bitso accepts these bucket sizes, in seconds.
var bitsoGranularities = map[types.Timespan]int{
	types.TimespanOneMinute:      60,
	types.TimespanFifteenMinutes: 900,
	types.TimespanThirtyMinutes:  1800,
	types.TimespanOneHour:        3600,
	types.TimespanFourHours:      14400,
	types.TimespanOneDay:         86400,
	types.TimespanOneWeek:        604800,
}

// BitsoCandle is one OHLCV bucket as returned by the Bitso ohlcv endpoint.
// Numeric fields arrive as strings or numbers; null marks an incomplete bucket.
type BitsoCandle struct {
	Time   decimal.Decimal     `json:"time"`
	Open   decimal.NullDecimal `json:"open"`
	High   decimal.NullDecimal `json:"high"`
	Low    decimal.NullDecimal `json:"low"`
	Close  decimal.NullDecimal `json:"close"`
	Volume decimal.NullDecimal `json:"volume"`
}

// BitsoError is the error envelope Bitso returns with success=false.
type BitsoError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BitsoResponse is the envelope of the Bitso ohlcv endpoint.
type BitsoResponse struct {
	Success bool          `json:"success"`
	Payload []BitsoCandle `json:"payload"`
	Error   *BitsoError   `json:"error,omitempty"`
}

// BitsoAdapter fetches OHLCV buckets for a Bitso order book such as btc_mxn.
type BitsoAdapter struct {
	client *resty.Client
}

// NewBitsoAdapter creates a Bitso adapter. An empty baseURL uses DefaultBitsoBaseURL and a
// zero timeout uses DefaultTimeout.
func NewBitsoAdapter(baseURL string, timeout time.Duration) *BitsoAdapter {
	if baseURL == "" {
		baseURL = DefaultBitsoBaseURL
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &BitsoAdapter{
		client: client,
	}
}

// Name implements Adapter.
func (a *BitsoAdapter) Name() ProviderType {
	return ProviderBitso
}

// FetchRaw requests the buckets of the book between the request dates.
func (a *BitsoAdapter) FetchRaw(ctx context.Context, req Request) (BitsoResponse, error) {
	granularity, err := bitsoGranularity(req.Interval)
	if err != nil {
		return BitsoResponse{}, err
	}

	var result BitsoResponse

	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"book":        req.Symbol,
			"start":       strconv.FormatInt(req.StartDate.UnixMilli(), 10),
			"end":         strconv.FormatInt(req.EndDate.UnixMilli(), 10),
			"granularity": strconv.Itoa(granularity),
		}).
		SetResult(&result).
		SetError(&result).
		Get("/v3/ohlcv/")
	if err != nil {
		return BitsoResponse{}, errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "bitso request failed", err)
	}

	if resp.IsError() {
		if result.Error != nil {
			return BitsoResponse{}, errors.Newf(errors.ErrCodeMarketDataFetchFailed, "bitso returned status %d: %s (%s)", resp.StatusCode(), result.Error.Message, result.Error.Code)
		}

		return BitsoResponse{}, errors.Newf(errors.ErrCodeMarketDataFetchFailed, "bitso returned status %d", resp.StatusCode())
	}

	if !result.Success {
		message := "unknown error"
		if result.Error != nil {
			message = result.Error.Message
		}

		return BitsoResponse{}, errors.Newf(errors.ErrCodeMarketDataFetchFailed, "bitso request was not successful: %s", message)
	}

	return result, nil
}

// Normalize converts the buckets into market data. Buckets with a missing field are kept
// with NaN values so the source drops them.
func (a *BitsoAdapter) Normalize(req Request, raw BitsoResponse) (types.Series, error) {
	bars := make([]types.MarketData, 0, len(raw.Payload))

	for _, candle := range raw.Payload {
		bars = append(bars, types.MarketData{
			Symbol: req.Symbol,
			Time:   bitsoTime(candle.Time),
			Open:   nullDecimalFloat(candle.Open),
			High:   nullDecimalFloat(candle.High),
			Low:    nullDecimalFloat(candle.Low),
			Close:  nullDecimalFloat(candle.Close),
			Volume: nullDecimalFloat(candle.Volume),
		})
	}

	return types.NewSeries(req.Symbol, bars), nil
}

func bitsoGranularity(interval types.Timespan) (int, error) {
	granularity, ok := bitsoGranularities[interval]
	if !ok {
		return 0, errors.Newf(errors.ErrCodeInvalidTimespan, "unsupported interval for bitso: %s", interval)
	}

	return granularity, nil
}

// bitsoTime accepts bucket times in seconds or milliseconds since the epoch.
func bitsoTime(value decimal.Decimal) time.Time {
	const millisThreshold = 100_000_000_000

	if value.Abs().GreaterThanOrEqual(decimal.NewFromInt(millisThreshold)) {
		return time.UnixMilli(value.IntPart()).UTC()
	}

	return time.Unix(value.IntPart(), 0).UTC()
}

func nullDecimalFloat(value decimal.NullDecimal) float64 {
	if !value.Valid {
		return math.NaN()
	}

	return value.Decimal.InexactFloat64()
}
