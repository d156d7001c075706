package provider

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderPolygon ProviderType = "polygon"
	ProviderBinance ProviderType = "binance"
	ProviderBitso   ProviderType = "bitso"
	ProviderYahoo   ProviderType = "yahoo"
	ProviderParquet ProviderType = "parquet"
)

// DefaultTimeout bounds a single fetch when a config does not set one.
const DefaultTimeout = 30 * time.Second

// Request describes the series a source should produce.
type Request struct {
	Symbol    string
	StartDate time.Time
	EndDate   time.Time
	Interval  types.Timespan
}

// Validate checks that the request is complete and the range is ordered.
func (r Request) Validate() error {
	if r.Symbol == "" {
		return errors.New(errors.ErrCodeMissingParameter, "symbol is required")
	}

	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return errors.New(errors.ErrCodeMissingParameter, "start and end dates are required")
	}

	if r.EndDate.Before(r.StartDate) {
		return errors.Newf(errors.ErrCodeInvalidParameter, "end date %s is before start date %s",
			r.EndDate.Format(time.DateOnly), r.StartDate.Format(time.DateOnly))
	}

	if !r.Interval.IsValid() {
		return errors.Newf(errors.ErrCodeInvalidTimespan, "unsupported interval: %q", r.Interval)
	}

	return nil
}

// Adapter is implemented once per provider. FetchRaw performs the transport and decodes
// the provider payload; Normalize turns that payload into a series (unit conversion,
// timestamp parsing, numeric coercion).
type Adapter[R any] interface {
	Name() ProviderType
	FetchRaw(ctx context.Context, req Request) (R, error)
	Normalize(req Request, raw R) (types.Series, error)
}

// Source produces canonical series. Every series it returns is ordered by time, has no
// duplicate periods and only finite fields.
type Source interface {
	Name() ProviderType
	Fetch(ctx context.Context, req Request) (types.Series, error)
}

type adapterSource[R any] struct {
	adapter Adapter[R]
	logger  *logger.Logger
}

// NewSource composes an adapter into a Source that enforces the canonical series contract.
func NewSource[R any](adapter Adapter[R], log *logger.Logger) Source {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &adapterSource[R]{
		adapter: adapter,
		logger:  log.Named("source", zap.String("provider", string(adapter.Name()))),
	}
}

func (s *adapterSource[R]) Name() ProviderType {
	return s.adapter.Name()
}

// Fetch retrieves and normalizes the series. Transport, decode and normalization failures
// are reported as ErrCodeDataSourceUnavailable; a result without periods is reported as
// ErrCodeEmptySeries.
func (s *adapterSource[R]) Fetch(ctx context.Context, req Request) (types.Series, error) {
	if err := req.Validate(); err != nil {
		return types.Series{}, err
	}

	log := s.logger.With(
		zap.String("symbol", req.Symbol),
		zap.String("interval", string(req.Interval)),
	)

	log.Debug("Fetching series",
		zap.Time("start", req.StartDate),
		zap.Time("end", req.EndDate),
	)

	raw, err := s.adapter.FetchRaw(ctx, req)
	if err != nil {
		return types.Series{}, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to fetch %s from %s", req.Symbol, s.adapter.Name())
	}

	series, err := s.adapter.Normalize(req, raw)
	if err != nil {
		return types.Series{}, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to parse %s response for %s", s.adapter.Name(), req.Symbol)
	}

	if series.IsEmpty() {
		return types.Series{}, errors.Newf(errors.ErrCodeEmptySeries, "%s returned no periods for %s", s.adapter.Name(), req.Symbol)
	}

	if series.Symbol == "" {
		series.Symbol = req.Symbol
	}

	canonical, dropped := series.Canonicalize()
	if dropped > 0 {
		log.Warn("Dropped periods that were duplicated or incomplete", zap.Int("dropped", dropped))
	}

	if canonical.IsEmpty() {
		return types.Series{}, errors.Newf(errors.ErrCodeEmptySeries, "%s returned no complete periods for %s", s.adapter.Name(), req.Symbol)
	}

	if err := canonical.Validate(); err != nil {
		return types.Series{}, err
	}

	log.Info("Fetched series", zap.Int("periods", canonical.Len()))

	return canonical, nil
}
