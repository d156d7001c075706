package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/urfave/cli/v3"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/rxtech-lab/argo-indicators/pkg/marketdata"
	"github.com/rxtech-lab/argo-indicators/pkg/marketdata/provider"
)

type ConfigTestSuite struct {
	suite.Suite
	dir string
	now time.Time
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
	suite.now = time.Date(2024, 7, 15, 13, 30, 0, 0, time.UTC)
	suite.T().Setenv(polygonAPIKeyEnv, "")
}

// parse runs a command with the source flags and returns it once flags are parsed.
func (suite *ConfigTestSuite) parse(args ...string) *cli.Command {
	var parsed *cli.Command

	cmd := &cli.Command{
		Name:  "test",
		Flags: sourceFlags(),
		Action: func(_ context.Context, c *cli.Command) error {
			parsed = c

			return nil
		},
	}

	suite.Require().NoError(cmd.Run(context.Background(), append([]string{"test"}, args...)))
	suite.Require().NotNil(parsed)

	return parsed
}

func (suite *ConfigTestSuite) writeFile(name, content string) string {
	path := filepath.Join(suite.dir, name)
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o600))

	return path
}

func (suite *ConfigTestSuite) TestLoadRunConfig() {
	path := suite.writeFile("run.yaml", `
provider: polygon
symbol: SPY
start: 2024-01-01
end: 2024-06-30
interval: 1h
timeout: 30s
polygon:
  api_key: secret
`)

	config, err := loadRunConfig(path)
	suite.Require().NoError(err)
	suite.Equal("polygon", config.Provider)
	suite.Equal("SPY", config.Symbol)
	suite.Equal("2024-01-01", config.Start)
	suite.Equal("2024-06-30", config.End)
	suite.Equal("1h", config.Interval)
	suite.Equal("30s", config.Timeout)
	suite.Equal("secret", config.Polygon.APIKey)
}

func (suite *ConfigTestSuite) TestLoadRunConfigErrors() {
	_, err := loadRunConfig(filepath.Join(suite.dir, "missing.yaml"))
	suite.Error(err)

	path := suite.writeFile("broken.yaml", "symbol: [unterminated")
	_, err = loadRunConfig(path)
	suite.Error(err)
	suite.Contains(err.Error(), "failed to parse config file")
}

func (suite *ConfigTestSuite) TestApplyFlagsDefaults() {
	var config runConfig
	config.applyFlags(suite.parse("--symbol", "btc_mxn"), suite.now)

	suite.Equal("bitso", config.Provider)
	suite.Equal("btc_mxn", config.Symbol)
	suite.Equal("2024-01-15", config.Start)
	suite.Equal("2024-07-15", config.End)
	suite.Empty(config.Interval)
}

func (suite *ConfigTestSuite) TestApplyFlagsOverrideRunFile() {
	config := runConfig{
		Provider: "yahoo",
		Symbol:   "AAPL",
		Start:    "2024-01-01",
		End:      "2024-03-01",
		Interval: "1d",
	}

	config.applyFlags(suite.parse("--symbol", "MSFT", "--interval", "1w"), suite.now)

	// provider keeps the run file value because the flag default is not an override
	suite.Equal("yahoo", config.Provider)
	suite.Equal("MSFT", config.Symbol)
	suite.Equal("1w", config.Interval)
	suite.Equal("2024-01-01", config.Start)
	suite.Equal("2024-03-01", config.End)
}

func (suite *ConfigTestSuite) TestApplyFlagsEnvironmentAPIKey() {
	suite.T().Setenv(polygonAPIKeyEnv, "from-env")

	config := runConfig{Provider: "polygon", Symbol: "SPY"}
	config.Polygon.APIKey = "from-file"

	config.applyFlags(suite.parse(), suite.now)
	suite.Equal("from-env", config.Polygon.APIKey)
}

func (suite *ConfigTestSuite) TestProviderConfig() {
	base := runConfig{
		Symbol:  "btc_mxn",
		Start:   "2024-01-01",
		End:     "2024-02-01",
		Timeout: "10s",
		BaseURL: "https://sandbox.bitso.com",
	}

	testCases := []struct {
		name     string
		provider string
		mutate   func(c *runConfig)
		expected provider.ProviderType
		hasError bool
	}{
		{name: "bitso", provider: "bitso", expected: provider.ProviderBitso},
		{name: "yahoo", provider: "yahoo", expected: provider.ProviderYahoo},
		{name: "binance", provider: "binance", expected: provider.ProviderBinance},
		{
			name:     "polygon with key",
			provider: "polygon",
			mutate:   func(c *runConfig) { c.Polygon.APIKey = "key" },
			expected: provider.ProviderPolygon,
		},
		{name: "polygon without key", provider: "polygon", hasError: true},
		{
			name:     "parquet with path",
			provider: "parquet",
			mutate:   func(c *runConfig) { c.Parquet.Path = "/data/bars.parquet" },
			expected: provider.ProviderParquet,
		},
		{name: "parquet without path", provider: "parquet", hasError: true},
		{name: "unknown provider", provider: "kraken", hasError: true},
		{
			name:     "bad interval",
			provider: "bitso",
			mutate:   func(c *runConfig) { c.Interval = "2w" },
			hasError: true,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			config := base
			config.Provider = tc.provider

			if tc.mutate != nil {
				tc.mutate(&config)
			}

			providerConfig, err := config.providerConfig()
			if tc.hasError {
				suite.Error(err)

				return
			}

			suite.Require().NoError(err)

			clientConfig := providerConfig.ToClientConfig()
			suite.Equal(tc.expected, clientConfig.ProviderType)
			suite.Equal(10*time.Second, clientConfig.Timeout)
		})
	}
}

func (suite *ConfigTestSuite) TestResolveProviderConfigFromYAML() {
	path := suite.writeFile("run.yml", `
provider: yahoo
symbol: AAPL
start: 2024-01-01
end: 2024-06-30
`)

	config, err := resolveProviderConfig(suite.parse("--config", path, "--interval", "1h"))
	suite.Require().NoError(err)

	yahoo, ok := config.(*marketdata.YahooConfig)
	suite.Require().True(ok)
	suite.Equal("AAPL", yahoo.Symbol)
	suite.Equal("1h", yahoo.Interval)
}

func (suite *ConfigTestSuite) TestResolveProviderConfigFromJSON() {
	path := suite.writeFile("polygon.json", `{
		"symbol": "SPY",
		"startDate": "2024-01-01",
		"endDate": "2024-01-31",
		"apiKey": "secret"
	}`)

	config, err := resolveProviderConfig(suite.parse("--config", path, "--provider", "polygon"))
	suite.Require().NoError(err)

	polygon, ok := config.(*marketdata.PolygonConfig)
	suite.Require().True(ok)
	suite.Equal("secret", polygon.APIKey)

	_, err = resolveProviderConfig(suite.parse("--config", path, "--provider", "kraken"))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidProvider))
}

func (suite *ConfigTestSuite) TestAnalysisConfig() {
	config := &marketdata.BinanceConfig{BaseConfig: marketdata.BaseConfig{
		Symbol:    "BTCUSDT",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
		Timeout:   "45s",
	}}

	analysis, err := analysisConfig(config)
	suite.Require().NoError(err)
	suite.Equal("BTCUSDT", analysis.Symbol)
	suite.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), analysis.StartDate)
	suite.Equal(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), analysis.EndDate)
	suite.Equal(types.TimespanOneDay, analysis.Granularity.Unwrap())
	suite.Equal(45*time.Second, analysis.Timeout)
}

func (suite *ConfigTestSuite) TestDefaultRange() {
	start, end := defaultRange(suite.now)
	suite.Equal("2024-01-15", start)
	suite.Equal("2024-07-15", end)
}
