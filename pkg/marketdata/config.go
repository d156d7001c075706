package marketdata

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/rxtech-lab/argo-indicators/pkg/marketdata/provider"
)

// ProviderConfig is a provider-specific configuration that can be turned into a request
// and a client configuration.
type ProviderConfig interface {
	Validate() error
	ToRequest() (provider.Request, error)
	ToClientConfig() ClientConfig
}

// BaseConfig contains the fields every provider configuration shares.
type BaseConfig struct {
	Symbol    string `json:"symbol" jsonschema:"title=Symbol,description=The asset to analyze (e.g. SPY or BTCUSDT or btc_mxn),required" validate:"required"`
	StartDate string `json:"startDate" jsonschema:"title=Start Date,description=First day of the range (YYYY-MM-DD or RFC3339),required" validate:"required"`
	EndDate   string `json:"endDate" jsonschema:"title=End Date,description=Last day of the range (YYYY-MM-DD or RFC3339),required" validate:"required"`
	Interval  string `json:"interval,omitempty" jsonschema:"title=Interval,description=Granularity of one period (defaults to 1d),enum=1s,enum=1m,enum=3m,enum=5m,enum=15m,enum=30m,enum=1h,enum=2h,enum=4h,enum=6h,enum=8h,enum=12h,enum=1d,enum=3d,enum=1w,enum=1M" validate:"omitempty,oneof=1s 1m 3m 5m 15m 30m 1h 2h 4h 6h 8h 12h 1d 3d 1w 1M"`
	Timeout   string `json:"timeout,omitempty" jsonschema:"title=Timeout,description=Upper bound of one fetch as a Go duration (e.g. 30s)"`
}

// PolygonConfig configures the Polygon.io provider.
type PolygonConfig struct {
	BaseConfig

	APIKey string `json:"apiKey" jsonschema:"title=API Key,description=Polygon.io API key for authentication,required" validate:"required"`
}

// BinanceConfig configures the Binance provider. The public market data API does not
// require authentication.
type BinanceConfig struct {
	BaseConfig
}

// BitsoConfig configures the Bitso provider.
type BitsoConfig struct {
	BaseConfig

	BaseURL string `json:"baseUrl,omitempty" jsonschema:"title=Base URL,description=Override of the Bitso API host" validate:"omitempty,url"`
}

// YahooConfig configures the Yahoo Finance provider.
type YahooConfig struct {
	BaseConfig

	BaseURL string `json:"baseUrl,omitempty" jsonschema:"title=Base URL,description=Override of the Yahoo Finance chart API host" validate:"omitempty,url"`
}

// ParquetConfig configures the offline Parquet provider.
type ParquetConfig struct {
	BaseConfig

	Path string `json:"path" jsonschema:"title=Path,description=Parquet file with time/symbol/open/high/low/close/volume columns,required" validate:"required"`
}

var validate = validator.New()

// Validate validates the shared fields.
func (c *BaseConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if _, err := c.ToRequest(); err != nil {
		return err
	}

	if _, err := c.timeout(); err != nil {
		return err
	}

	return nil
}

// ToRequest converts the shared fields into a provider request. An empty interval
// defaults to types.DefaultTimespan.
func (c *BaseConfig) ToRequest() (provider.Request, error) {
	startDate, err := ParseDate(c.StartDate)
	if err != nil {
		return provider.Request{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid startDate", err)
	}

	endDate, err := ParseDate(c.EndDate)
	if err != nil {
		return provider.Request{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid endDate", err)
	}

	interval := types.DefaultTimespan
	if c.Interval != "" {
		interval = types.Timespan(c.Interval)
	}

	req := provider.Request{
		Symbol:    c.Symbol,
		StartDate: startDate,
		EndDate:   endDate,
		Interval:  interval,
	}

	if err := req.Validate(); err != nil {
		return provider.Request{}, err
	}

	return req, nil
}

func (c *BaseConfig) timeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}

	timeout, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid timeout", err)
	}

	if timeout < 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidConfiguration, "timeout must not be negative: %s", c.Timeout)
	}

	return timeout, nil
}

func (c *BaseConfig) clientConfig(providerType provider.ProviderType) ClientConfig {
	// Validate has already rejected malformed timeouts
	timeout, _ := c.timeout()

	return ClientConfig{
		ProviderType: providerType,
		Timeout:      timeout,
	}
}

// Validate validates the Polygon configuration.
func (c *PolygonConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	return c.BaseConfig.Validate()
}

// ToClientConfig converts the Polygon configuration into a client configuration.
func (c *PolygonConfig) ToClientConfig() ClientConfig {
	config := c.clientConfig(provider.ProviderPolygon)
	config.PolygonAPIKey = c.APIKey

	return config
}

// ToClientConfig converts the Binance configuration into a client configuration.
func (c *BinanceConfig) ToClientConfig() ClientConfig {
	return c.clientConfig(provider.ProviderBinance)
}

// Validate validates the Bitso configuration.
func (c *BitsoConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	return c.BaseConfig.Validate()
}

// ToClientConfig converts the Bitso configuration into a client configuration.
func (c *BitsoConfig) ToClientConfig() ClientConfig {
	config := c.clientConfig(provider.ProviderBitso)
	config.BaseURL = c.BaseURL

	return config
}

// Validate validates the Yahoo configuration.
func (c *YahooConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	return c.BaseConfig.Validate()
}

// ToClientConfig converts the Yahoo configuration into a client configuration.
func (c *YahooConfig) ToClientConfig() ClientConfig {
	config := c.clientConfig(provider.ProviderYahoo)
	config.BaseURL = c.BaseURL

	return config
}

// Validate validates the Parquet configuration.
func (c *ParquetConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	return c.BaseConfig.Validate()
}

// ToClientConfig converts the Parquet configuration into a client configuration.
func (c *ParquetConfig) ToClientConfig() ClientConfig {
	config := c.clientConfig(provider.ProviderParquet)
	config.ParquetPath = c.Path

	return config
}

// ParseDate accepts a calendar date (YYYY-MM-DD) or an RFC3339 timestamp. Dates are
// interpreted as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}

	return time.Parse(time.RFC3339, value)
}

func parseConfig[T any, PT interface {
	*T
	ProviderConfig
}](jsonConfig string) (ProviderConfig, error) {
	config := PT(new(T))
	if err := json.Unmarshal([]byte(jsonConfig), config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse JSON config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
