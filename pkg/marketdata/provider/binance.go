package provider

import (
	"context"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// binanceKlinesPageSize is the number of klines Binance returns per request by default.
const binanceKlinesPageSize = 500

// BinanceKlinesService is the subset of the klines request builder the adapter needs.
type BinanceKlinesService interface {
	Symbol(symbol string) BinanceKlinesService
	Interval(interval string) BinanceKlinesService
	StartTime(startTime int64) BinanceKlinesService
	EndTime(endTime int64) BinanceKlinesService
	Do(ctx context.Context) ([]*binance.Kline, error)
}

// BinanceAPIClient creates klines requests.
type BinanceAPIClient interface {
	NewKlinesService() BinanceKlinesService
}

type binanceAPIWrapper struct {
	client *binance.Client
}

func (w *binanceAPIWrapper) NewKlinesService() BinanceKlinesService {
	return &binanceKlinesServiceWrapper{service: w.client.NewKlinesService()}
}

type binanceKlinesServiceWrapper struct {
	service *binance.KlinesService
}

func (w *binanceKlinesServiceWrapper) Symbol(symbol string) BinanceKlinesService {
	w.service.Symbol(symbol)

	return w
}

func (w *binanceKlinesServiceWrapper) Interval(interval string) BinanceKlinesService {
	w.service.Interval(interval)

	return w
}

func (w *binanceKlinesServiceWrapper) StartTime(startTime int64) BinanceKlinesService {
	w.service.StartTime(startTime)

	return w
}

func (w *binanceKlinesServiceWrapper) EndTime(endTime int64) BinanceKlinesService {
	w.service.EndTime(endTime)

	return w
}

func (w *binanceKlinesServiceWrapper) Do(ctx context.Context) ([]*binance.Kline, error) {
	return w.service.Do(ctx)
}

// BinanceAdapter fetches spot klines from Binance. Public market data needs no credentials.
type BinanceAdapter struct {
	apiClient BinanceAPIClient
}

// NewBinanceAdapter creates a Binance adapter over the public API.
func NewBinanceAdapter() *BinanceAdapter {
	return &BinanceAdapter{
		apiClient: &binanceAPIWrapper{client: binance.NewClient("", "")},
	}
}

// NewBinanceAdapterWithAPI creates a Binance adapter over a custom API client.
func NewBinanceAdapterWithAPI(apiClient BinanceAPIClient) *BinanceAdapter {
	return &BinanceAdapter{
		apiClient: apiClient,
	}
}

// Name implements Adapter.
func (a *BinanceAdapter) Name() ProviderType {
	return ProviderBinance
}

// FetchRaw pages through the klines of the symbol between the request dates.
func (a *BinanceAdapter) FetchRaw(ctx context.Context, req Request) ([]*binance.Kline, error) {
	endTime := req.EndDate.UnixMilli()
	currentStart := req.StartDate.UnixMilli()
	klines := []*binance.Kline{}

	for {
		page, err := a.apiClient.NewKlinesService().
			Symbol(req.Symbol).
			Interval(string(req.Interval)).
			StartTime(currentStart).
			EndTime(endTime).
			Do(ctx)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to fetch klines from binance", err)
		}

		klines = append(klines, page...)

		if len(page) < binanceKlinesPageSize {
			break
		}

		// the next page starts right after the close of the last kline
		currentStart = page[len(page)-1].CloseTime + 1
		if currentStart >= endTime {
			break
		}
	}

	return klines, nil
}

// Normalize parses the kline strings into market data. Klines are stamped with their
// open time.
func (a *BinanceAdapter) Normalize(req Request, raw []*binance.Kline) (types.Series, error) {
	bars := make([]types.MarketData, 0, len(raw))

	for _, k := range raw {
		values, err := parseDecimals(k.Open, k.High, k.Low, k.Close, k.Volume)
		if err != nil {
			return types.Series{}, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "invalid kline at %d", k.OpenTime)
		}

		bars = append(bars, types.MarketData{
			Symbol: req.Symbol,
			Time:   time.UnixMilli(k.OpenTime).UTC(),
			Open:   values[0],
			High:   values[1],
			Low:    values[2],
			Close:  values[3],
			Volume: values[4],
		})
	}

	return types.NewSeries(req.Symbol, bars), nil
}

func parseDecimals(fields ...string) ([]float64, error) {
	values := make([]float64, len(fields))

	for i, field := range fields {
		value, err := decimal.NewFromString(field)
		if err != nil {
			return nil, err
		}

		values[i] = value.InexactFloat64()
	}

	return values, nil
}
