package marketdata

import (
	"encoding/json"
	"slices"

	"github.com/invopop/jsonschema"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/rxtech-lab/argo-indicators/pkg/marketdata/provider"
)

// ProviderInfo contains metadata about a market data provider.
type ProviderInfo struct {
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Description  string `json:"description"`
	RequiresAuth bool   `json:"requiresAuth"`
}

// providerRegistry holds metadata about all supported providers.
var providerRegistry = map[provider.ProviderType]ProviderInfo{
	provider.ProviderPolygon: {
		Name:         string(provider.ProviderPolygon),
		DisplayName:  "Polygon.io",
		Description:  "US stock market data provider with historical OHLCV aggregates",
		RequiresAuth: true,
	},
	provider.ProviderBinance: {
		Name:         string(provider.ProviderBinance),
		DisplayName:  "Binance",
		Description:  "Cryptocurrency exchange with klines for spot trading pairs",
		RequiresAuth: false,
	},
	provider.ProviderBitso: {
		Name:         string(provider.ProviderBitso),
		DisplayName:  "Bitso",
		Description:  "Latin American cryptocurrency exchange with OHLCV buckets per order book",
		RequiresAuth: false,
	},
	provider.ProviderYahoo: {
		Name:         string(provider.ProviderYahoo),
		DisplayName:  "Yahoo Finance",
		Description:  "Equity, fund and index price history from the Yahoo Finance chart API",
		RequiresAuth: false,
	},
	provider.ProviderParquet: {
		Name:         string(provider.ProviderParquet),
		DisplayName:  "Parquet file",
		Description:  "Offline replay of bars stored in a local Parquet file",
		RequiresAuth: false,
	},
}

// GetSupportedProviders returns the names of all supported providers, sorted.
func GetSupportedProviders() []string {
	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, string(providerType))
	}

	slices.Sort(providers)

	return providers
}

// GetProviderInfo returns metadata for a specific provider.
func GetProviderInfo(providerName string) (ProviderInfo, error) {
	info, exists := providerRegistry[provider.ProviderType(providerName)]
	if !exists {
		return ProviderInfo{}, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider: %s", providerName)
	}

	return info, nil
}

// GetConfigSchema returns the JSON schema of a provider's configuration.
func GetConfigSchema(providerName string) (string, error) {
	switch provider.ProviderType(providerName) {
	case provider.ProviderPolygon:
		return toJSONSchema(PolygonConfig{})
	case provider.ProviderBinance:
		return toJSONSchema(BinanceConfig{})
	case provider.ProviderBitso:
		return toJSONSchema(BitsoConfig{})
	case provider.ProviderYahoo:
		return toJSONSchema(YahooConfig{})
	case provider.ProviderParquet:
		return toJSONSchema(ParquetConfig{})
	default:
		return "", errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider: %s", providerName)
	}
}

// ParseConfig parses and validates a JSON configuration for the given provider. The
// result can be type-asserted to the provider's config type.
func ParseConfig(providerName string, jsonConfig string) (ProviderConfig, error) {
	switch provider.ProviderType(providerName) {
	case provider.ProviderPolygon:
		return parseConfig[PolygonConfig](jsonConfig)
	case provider.ProviderBinance:
		return parseConfig[BinanceConfig](jsonConfig)
	case provider.ProviderBitso:
		return parseConfig[BitsoConfig](jsonConfig)
	case provider.ProviderYahoo:
		return parseConfig[YahooConfig](jsonConfig)
	case provider.ProviderParquet:
		return parseConfig[ParquetConfig](jsonConfig)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider: %s", providerName)
	}
}

func toJSONSchema[T any](t T) (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(t)

	jsonSchemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}
