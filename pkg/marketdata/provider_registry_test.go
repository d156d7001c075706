package marketdata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

type ProviderRegistryTestSuite struct {
	suite.Suite
}

func TestProviderRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(ProviderRegistryTestSuite))
}

func (suite *ProviderRegistryTestSuite) TestGetSupportedProviders() {
	providers := GetSupportedProviders()

	suite.Equal([]string{"binance", "bitso", "parquet", "polygon", "yahoo"}, providers)
}

func (suite *ProviderRegistryTestSuite) TestGetProviderInfo() {
	tests := []struct {
		name         string
		displayName  string
		requiresAuth bool
	}{
		{"polygon", "Polygon.io", true},
		{"binance", "Binance", false},
		{"bitso", "Bitso", false},
		{"yahoo", "Yahoo Finance", false},
		{"parquet", "Parquet file", false},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			info, err := GetProviderInfo(tt.name)
			suite.NoError(err)
			suite.Equal(tt.name, info.Name)
			suite.Equal(tt.displayName, info.DisplayName)
			suite.Equal(tt.requiresAuth, info.RequiresAuth)
			suite.NotEmpty(info.Description)
		})
	}
}

func (suite *ProviderRegistryTestSuite) TestGetProviderInfo_InvalidProvider() {
	_, err := GetProviderInfo("invalid")

	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidProvider))
	suite.Contains(err.Error(), "unsupported provider")
}

func (suite *ProviderRegistryTestSuite) TestGetConfigSchema() {
	for _, name := range GetSupportedProviders() {
		suite.Run(name, func() {
			schema, err := GetConfigSchema(name)
			suite.Require().NoError(err)

			var schemaMap map[string]any
			suite.Require().NoError(json.Unmarshal([]byte(schema), &schemaMap))
			suite.Equal("object", schemaMap["type"])

			properties, ok := schemaMap["properties"].(map[string]any)
			suite.Require().True(ok)
			suite.Contains(properties, "symbol")
			suite.Contains(properties, "startDate")
			suite.Contains(properties, "endDate")
			suite.Contains(properties, "interval")
		})
	}
}

func (suite *ProviderRegistryTestSuite) TestGetConfigSchema_ProviderFields() {
	schema, err := GetConfigSchema("polygon")
	suite.Require().NoError(err)
	suite.Contains(schema, "apiKey")

	schema, err = GetConfigSchema("parquet")
	suite.Require().NoError(err)
	suite.Contains(schema, `"path"`)
}

func (suite *ProviderRegistryTestSuite) TestGetConfigSchema_InvalidProvider() {
	schema, err := GetConfigSchema("invalid")

	suite.Error(err)
	suite.Empty(schema)
	suite.Contains(err.Error(), "unsupported provider")
}

func (suite *ProviderRegistryTestSuite) TestParseConfig_Polygon() {
	jsonConfig := `{
		"symbol": "SPY",
		"startDate": "2024-01-01",
		"endDate": "2024-12-31",
		"interval": "1d",
		"apiKey": "test-api-key"
	}`

	config, err := ParseConfig("polygon", jsonConfig)
	suite.Require().NoError(err)

	polygonConfig, ok := config.(*PolygonConfig)
	suite.Require().True(ok)
	suite.Equal("SPY", polygonConfig.Symbol)
	suite.Equal("test-api-key", polygonConfig.APIKey)
	suite.Equal("test-api-key", config.ToClientConfig().PolygonAPIKey)
}

func (suite *ProviderRegistryTestSuite) TestParseConfig_Bitso() {
	jsonConfig := `{
		"symbol": "btc_mxn",
		"startDate": "2023-01-01",
		"endDate": "2023-02-20",
		"timeout": "10s"
	}`

	config, err := ParseConfig("bitso", jsonConfig)
	suite.Require().NoError(err)

	bitsoConfig, ok := config.(*BitsoConfig)
	suite.Require().True(ok)
	suite.Equal("btc_mxn", bitsoConfig.Symbol)

	clientConfig := config.ToClientConfig()
	suite.Equal("bitso", string(clientConfig.ProviderType))
	suite.Equal("10s", clientConfig.Timeout.String())
}

func (suite *ProviderRegistryTestSuite) TestParseConfig_Binance() {
	jsonConfig := `{
		"symbol": "BTCUSDT",
		"startDate": "2024-01-01T00:00:00Z",
		"endDate": "2024-12-31T23:59:59Z",
		"interval": "1h"
	}`

	config, err := ParseConfig("binance", jsonConfig)
	suite.Require().NoError(err)

	_, ok := config.(*BinanceConfig)
	suite.True(ok)
}

func (suite *ProviderRegistryTestSuite) TestParseConfig_Parquet() {
	_, err := ParseConfig("parquet", `{"symbol": "AAPL", "startDate": "2024-01-01", "endDate": "2024-02-01"}`)
	suite.Error(err)
	suite.Contains(err.Error(), "Path")

	config, err := ParseConfig("parquet", `{"symbol": "AAPL", "startDate": "2024-01-01", "endDate": "2024-02-01", "path": "/tmp/bars.parquet"}`)
	suite.Require().NoError(err)
	suite.Equal("/tmp/bars.parquet", config.ToClientConfig().ParquetPath)
}

func (suite *ProviderRegistryTestSuite) TestParseConfig_InvalidProvider() {
	_, err := ParseConfig("invalid", `{"symbol": "SPY"}`)

	suite.Error(err)
	suite.Contains(err.Error(), "unsupported provider")
}

func (suite *ProviderRegistryTestSuite) TestParseConfig_InvalidJSON() {
	_, err := ParseConfig("yahoo", `{invalid json}`)

	suite.Error(err)
	suite.Contains(err.Error(), "failed to parse JSON")
}

func (suite *ProviderRegistryTestSuite) TestParseConfig_MissingRequiredFields() {
	_, err := ParseConfig("polygon", `{"symbol": "SPY"}`)

	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}
