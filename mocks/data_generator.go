package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// DataGenerator produces reproducible OHLCV bars for tests.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a generator. The same seed always yields the same bars.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig describes the generated bars.
type GeneratorConfig struct {
	Symbol    string
	StartTime time.Time
	Interval  types.Timespan
	Count     int

	InitialPrice float64
	// Volatility is the standard deviation of the per-period return (0.02 = 2%).
	Volatility float64
	// Trend is the total drift spread over Count periods.
	Trend float64

	VolumeBase float64
	// VolumeVariance is the relative spread of the volume around VolumeBase (0 to 1).
	VolumeVariance float64

	// DuplicateRate is the probability of repeating a period, as some providers do
	// around page boundaries.
	DuplicateRate float64
	// IncompleteRate is the probability of a period with a NaN high.
	IncompleteRate float64
}

// DefaultConfig returns a year of clean daily bars.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:         "TEST",
		StartTime:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval:       types.TimespanOneDay,
		Count:          250,
		InitialPrice:   100.0,
		Volatility:     0.02,
		VolumeBase:     10000,
		VolumeVariance: 0.3,
	}
}

// NextPeriod returns the start of the period following t.
func NextPeriod(t time.Time, interval types.Timespan) time.Time {
	switch interval {
	case types.TimespanOneMonth:
		return t.AddDate(0, 1, 0)
	case types.TimespanOneWeek:
		return t.AddDate(0, 0, 7)
	case types.TimespanOneDay, types.TimespanThreeDays:
		return t.AddDate(0, 0, interval.Multiplier())
	default:
		return t.Add(interval.Duration())
	}
}

// Generate returns Count periods as a provider would deliver them: in time order but
// possibly with repeated or incomplete periods when the config asks for them.
func (g *DataGenerator) Generate(config GeneratorConfig) []types.MarketData {
	bars := make([]types.MarketData, 0, config.Count)
	price := config.InitialPrice
	periodStart := config.StartTime

	for range config.Count {
		bar := g.nextBar(config, price, periodStart)

		if config.IncompleteRate > 0 && g.rng.Float64() < config.IncompleteRate {
			bar.High = math.NaN()
		}

		bars = append(bars, bar)

		if config.DuplicateRate > 0 && g.rng.Float64() < config.DuplicateRate {
			bars = append(bars, bar)
		}

		price = bar.Close
		periodStart = NextPeriod(periodStart, config.Interval)
	}

	return bars
}

// GenerateSeries returns the canonical series of the generated bars.
func (g *DataGenerator) GenerateSeries(config GeneratorConfig) types.Series {
	series, _ := types.NewSeries(config.Symbol, g.Generate(config)).Canonicalize()

	return series
}

// nextBar draws one geometric Brownian motion step from open.
func (g *DataGenerator) nextBar(config GeneratorConfig, open float64, periodStart time.Time) types.MarketData {
	// Box-Muller
	u1 := g.rng.Float64()
	u2 := g.rng.Float64()
	z := math.Sqrt(-2*math.Log(1-u1)) * math.Cos(2*math.Pi*u2)

	drift := 0.0
	if config.Count > 0 {
		drift = config.Trend / float64(config.Count)
	}

	close := open * (1 + config.Volatility*z + drift)
	if close <= 0 {
		close = open * 0.99
	}

	spread := config.Volatility * open * 0.5
	high := math.Max(open, close) + g.rng.Float64()*spread
	low := math.Min(open, close) - g.rng.Float64()*spread

	if low <= 0 {
		low = math.Min(open, close) * 0.99
	}

	volume := config.VolumeBase * (1 + (g.rng.Float64()*2-1)*config.VolumeVariance)
	if volume < 0 {
		volume = config.VolumeBase * 0.1
	}

	return types.MarketData{
		Symbol: config.Symbol,
		Time:   periodStart,
		Open:   roundToDecimals(open, 4),
		High:   roundToDecimals(high, 4),
		Low:    roundToDecimals(low, 4),
		Close:  roundToDecimals(close, 4),
		Volume: roundToDecimals(volume, 2),
	}
}

// LinearSeries returns count daily bars whose close rises by step from start, with
// high = close+1, low = close-1 and a constant volume.
func LinearSeries(symbol string, count int, start, step, volume float64) types.Series {
	bars := make([]types.MarketData, count)
	startTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := range bars {
		close := start + float64(i)*step
		bars[i] = types.MarketData{
			Symbol: symbol,
			Time:   startTime.AddDate(0, 0, i),
			Open:   close,
			High:   close + 1,
			Low:    close - 1,
			Close:  close,
			Volume: volume,
		}
	}

	return types.NewSeries(symbol, bars)
}

// ConstantSeries returns count daily bars that all share the same price and volume.
func ConstantSeries(symbol string, count int, price, volume float64) types.Series {
	return LinearSeries(symbol, count, price, 0, volume)
}

// SeriesFromCloses returns daily bars with the given closes. High and low equal the close.
func SeriesFromCloses(symbol string, closes ...float64) types.Series {
	bars := make([]types.MarketData, len(closes))
	startTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, close := range closes {
		bars[i] = types.MarketData{
			Symbol: symbol,
			Time:   startTime.AddDate(0, 0, i),
			Open:   close,
			High:   close,
			Low:    close,
			Close:  close,
			Volume: 1,
		}
	}

	return types.NewSeries(symbol, bars)
}

func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
