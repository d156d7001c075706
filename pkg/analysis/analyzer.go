// Package analysis composes a data source with the indicator engine. Every call fetches the
// series again and recomputes the indicators from scratch; nothing is cached between calls.
package analysis

import (
	"context"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/rxtech-lab/argo-indicators/internal/indicator"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/rxtech-lab/argo-indicators/pkg/marketdata/provider"
)

// Config describes the series an Analyzer works on.
type Config struct {
	Symbol    string    `validate:"required"`
	StartDate time.Time `validate:"required"`
	EndDate   time.Time `validate:"required,gtefield=StartDate"`
	// Granularity defaults to types.DefaultTimespan.
	Granularity optional.Option[types.Timespan]
	// Timeout bounds each fetch. Zero leaves the caller's context unchanged.
	Timeout time.Duration `validate:"min=0"`
}

// Request converts the configuration into a provider request.
func (c Config) Request() provider.Request {
	return provider.Request{
		Symbol:    c.Symbol,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		Interval:  c.Granularity.TakeOr(types.DefaultTimespan),
	}
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(a *Analyzer) {
		if log != nil {
			a.logger = log.Named("analysis")
		}
	}
}

// WithMetrics records fetch and compute metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(a *Analyzer) {
		a.metrics = metrics
	}
}

// WithRegistry replaces the default indicator suite. The factory is called once per
// computation so every call works on its own registry.
func WithRegistry(factory func() indicator.IndicatorRegistry) Option {
	return func(a *Analyzer) {
		if factory != nil {
			a.newRegistry = factory
		}
	}
}

// Analyzer runs fetch, compute and read for one asset.
type Analyzer struct {
	source      provider.Source
	config      Config
	logger      *logger.Logger
	metrics     *Metrics
	newRegistry func() indicator.IndicatorRegistry
}

var validate = validator.New()

// NewAnalyzer creates an analyzer over the given source.
func NewAnalyzer(source provider.Source, config Config, opts ...Option) (*Analyzer, error) {
	if source == nil {
		return nil, errors.New(errors.ErrCodeMissingParameter, "source is required")
	}

	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid analysis configuration", err)
	}

	if err := config.Request().Validate(); err != nil {
		return nil, err
	}

	a := &Analyzer{
		source:      source,
		config:      config,
		logger:      logger.NewNopLogger(),
		metrics:     nil,
		newRegistry: indicator.NewDefaultRegistry,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Config returns the analyzer configuration.
func (a *Analyzer) Config() Config {
	return a.config
}

// GetIndicators fetches the series, computes every indicator and returns the latest
// value of each. It fails with an InsufficientDataError when the series is too short
// for some indicator to be defined at all.
func (a *Analyzer) GetIndicators(ctx context.Context) (indicator.Snapshot, error) {
	engine, set, err := a.compute(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := engine.LatestValues(set)
	if err != nil {
		a.recordError("snapshot", err)

		return nil, err
	}

	return snapshot, nil
}

// GetLatestPriceValues returns the latest SMA_50, EMA_20 and close price. Undefined
// moving averages are reported as None instead of failing.
func (a *Analyzer) GetLatestPriceValues(ctx context.Context) (indicator.Snapshot, error) {
	engine, set, err := a.compute(ctx)
	if err != nil {
		return nil, err
	}

	series, err := engine.RawSeries()
	if err != nil {
		return nil, err
	}

	last, _ := series.Last()

	return indicator.Snapshot{
		types.IndicatorSMA50: set.Latest(types.IndicatorSMA50),
		types.IndicatorEMA20: set.Latest(types.IndicatorEMA20),
		types.ColumnClose:    optional.Some(last.Close),
	}, nil
}

// GetRawData fetches the series and returns it without indicator columns.
func (a *Analyzer) GetRawData(ctx context.Context) (types.Series, error) {
	engine, _, err := a.compute(ctx)
	if err != nil {
		return types.Series{}, err
	}

	return engine.RawSeries()
}

// GetIndicatorFrame fetches the series and returns it with every indicator column attached.
func (a *Analyzer) GetIndicatorFrame(ctx context.Context) (indicator.Frame, error) {
	engine, set, err := a.compute(ctx)
	if err != nil {
		return indicator.Frame{}, err
	}

	return engine.Frame(set)
}

func (a *Analyzer) compute(ctx context.Context) (*indicator.Engine, indicator.IndicatorSet, error) {
	series, err := a.fetch(ctx)
	if err != nil {
		return nil, nil, err
	}

	engine := indicator.NewEngine(a.newRegistry())

	start := time.Now()
	set, err := engine.ComputeAll(series)

	if a.metrics != nil {
		a.metrics.ComputeDuration.Observe(time.Since(start).Seconds())
	}

	if err != nil {
		a.recordError("compute", err)

		return nil, nil, err
	}

	a.logger.Debug("Computed indicators",
		zap.String("symbol", series.Symbol),
		zap.Int("periods", series.Len()),
		zap.Int("columns", len(set)),
	)

	return engine, set, nil
}

func (a *Analyzer) fetch(ctx context.Context) (types.Series, error) {
	if a.config.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, a.config.Timeout)
		defer cancel()
	}

	providerName := string(a.source.Name())

	var timer *prometheus.Timer
	if a.metrics != nil {
		timer = prometheus.NewTimer(a.metrics.FetchDuration.WithLabelValues(providerName))
	}

	series, err := a.source.Fetch(ctx, a.config.Request())

	if timer != nil {
		timer.ObserveDuration()
	}

	if err != nil {
		a.recordError("fetch", err)
		a.logger.Error("Failed to fetch series",
			zap.String("provider", providerName),
			zap.String("symbol", a.config.Symbol),
			zap.Error(err),
		)

		return types.Series{}, err
	}

	if a.metrics != nil {
		a.metrics.PeriodsFetched.WithLabelValues(providerName).Add(float64(series.Len()))
	}

	return series, nil
}

func (a *Analyzer) recordError(stage string, err error) {
	if a.metrics == nil {
		return
	}

	a.metrics.ErrorsTotal.WithLabelValues(stage, strconv.Itoa(int(errors.GetCode(err)))).Inc()
}
