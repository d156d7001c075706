package provider

import (
	"context"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// PolygonAggsIterator iterates aggregate bars returned by the Polygon API.
type PolygonAggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// PolygonAPIClient is the subset of the Polygon REST client the adapter needs.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator
}

type polygonAPIWrapper struct {
	client *polygon.Client
}

func (w *polygonAPIWrapper) ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator {
	return w.client.ListAggs(ctx, params, options...)
}

// PolygonAdapter fetches aggregate bars from Polygon.io.
type PolygonAdapter struct {
	apiClient PolygonAPIClient
}

// NewPolygonAdapter creates a Polygon adapter authenticated with apiKey.
func NewPolygonAdapter(apiKey string) (*PolygonAdapter, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "apiKey is required")
	}

	return &PolygonAdapter{
		apiClient: &polygonAPIWrapper{client: polygon.New(apiKey)},
	}, nil
}

// NewPolygonAdapterWithAPI creates a Polygon adapter over a custom API client.
func NewPolygonAdapterWithAPI(apiClient PolygonAPIClient) *PolygonAdapter {
	return &PolygonAdapter{
		apiClient: apiClient,
	}
}

// Name implements Adapter.
func (a *PolygonAdapter) Name() ProviderType {
	return ProviderPolygon
}

// FetchRaw lists every aggregate of the ticker between the request dates.
func (a *PolygonAdapter) FetchRaw(ctx context.Context, req Request) ([]models.Agg, error) {
	timespan, multiplier := PolygonTimespan(req.Interval)

	params := models.ListAggsParams{
		Ticker:     req.Symbol,
		Multiplier: multiplier,
		Timespan:   timespan,
		From:       models.Millis(req.StartDate),
		To:         models.Millis(req.EndDate),
	}.WithLimit(50000)

	iter := a.apiClient.ListAggs(ctx, params)

	aggs := []models.Agg{}
	for iter.Next() {
		aggs = append(aggs, iter.Item())
	}

	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "error iterating polygon aggregates", err)
	}

	return aggs, nil
}

// Normalize converts aggregates into market data.
func (a *PolygonAdapter) Normalize(req Request, raw []models.Agg) (types.Series, error) {
	bars := make([]types.MarketData, 0, len(raw))

	for _, agg := range raw {
		bars = append(bars, types.MarketData{
			Symbol: req.Symbol,
			Time:   time.Time(agg.Timestamp).UTC(),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
	}

	return types.NewSeries(req.Symbol, bars), nil
}

// PolygonTimespan maps a granularity onto the Polygon timespan and multiplier.
func PolygonTimespan(t types.Timespan) (models.Timespan, int) {
	switch t {
	case types.TimespanOneSecond:
		return models.Second, 1
	case types.TimespanOneMinute, types.TimespanThreeMinutes, types.TimespanFiveMinutes, types.TimespanFifteenMinutes, types.TimespanThirtyMinutes:
		return models.Minute, t.Multiplier()
	case types.TimespanOneHour, types.TimespanTwoHours, types.TimespanFourHours, types.TimespanSixHours, types.TimespanEightHours, types.TimespanTwelveHours:
		return models.Hour, t.Multiplier()
	case types.TimespanOneDay, types.TimespanThreeDays:
		return models.Day, t.Multiplier()
	case types.TimespanOneWeek:
		return models.Week, 1
	case types.TimespanOneMonth:
		return models.Month, 1
	default:
		return models.Day, 1
	}
}
