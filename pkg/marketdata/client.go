package marketdata

import (
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/rxtech-lab/argo-indicators/pkg/marketdata/provider"
)

// ClientConfig selects and configures the data source.
type ClientConfig struct {
	ProviderType  provider.ProviderType `validate:"required,oneof=polygon binance bitso yahoo parquet"`
	PolygonAPIKey string                `validate:"required_if=ProviderType polygon"`
	ParquetPath   string                `validate:"required_if=ProviderType parquet"`
	BaseURL       string                `validate:"omitempty,url"`
	Timeout       time.Duration         `validate:"min=0"`
}

// NewClient creates the source for the configured provider. A nil logger disables logging.
func NewClient(config ClientConfig, log *logger.Logger) (provider.Source, error) {
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	switch config.ProviderType {
	case provider.ProviderPolygon:
		adapter, err := provider.NewPolygonAdapter(config.PolygonAPIKey)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to create Polygon client", err)
		}

		return provider.NewSource(adapter, log), nil
	case provider.ProviderBinance:
		return provider.NewSource(provider.NewBinanceAdapter(), log), nil
	case provider.ProviderBitso:
		return provider.NewSource(provider.NewBitsoAdapter(config.BaseURL, config.Timeout), log), nil
	case provider.ProviderYahoo:
		return provider.NewSource(provider.NewYahooAdapter(config.BaseURL, config.Timeout), log), nil
	case provider.ProviderParquet:
		adapter, err := provider.NewParquetAdapter(config.ParquetPath)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to create Parquet reader", err)
		}

		return provider.NewSource(adapter, log), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider type: %s", config.ProviderType)
	}
}
