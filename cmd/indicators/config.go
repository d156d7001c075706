package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/argo-indicators/pkg/analysis"
	"github.com/rxtech-lab/argo-indicators/pkg/marketdata"
	"github.com/rxtech-lab/argo-indicators/pkg/marketdata/provider"
)

// polygonAPIKeyEnv overrides the Polygon API key of a run file.
const polygonAPIKeyEnv = "POLYGON_API_KEY"

// runConfig is the YAML run file accepted by --config.
type runConfig struct {
	Provider string `yaml:"provider"`
	Symbol   string `yaml:"symbol"`
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
	Interval string `yaml:"interval"`
	Timeout  string `yaml:"timeout"`
	BaseURL  string `yaml:"base_url"`
	Polygon  struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"polygon"`
	Parquet struct {
		Path string `yaml:"path"`
	} `yaml:"parquet"`
}

// loadRunConfig reads a YAML run file.
func loadRunConfig(path string) (runConfig, error) {
	var config runConfig

	content, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(content, &config); err != nil {
		return config, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

// applyFlags overrides the run file with the flags set on the command line and the
// Polygon API key with the environment. An open date range defaults to the last six months.
func (c *runConfig) applyFlags(cmd *cli.Command, now time.Time) {
	overrides := []struct {
		flag   string
		target *string
	}{
		{"provider", &c.Provider},
		{"symbol", &c.Symbol},
		{"start", &c.Start},
		{"end", &c.End},
		{"interval", &c.Interval},
		{"timeout", &c.Timeout},
		{"base-url", &c.BaseURL},
		{"path", &c.Parquet.Path},
	}

	for _, o := range overrides {
		if cmd.IsSet(o.flag) || *o.target == "" {
			if value := cmd.String(o.flag); value != "" {
				*o.target = value
			}
		}
	}

	if key := os.Getenv(polygonAPIKeyEnv); key != "" {
		c.Polygon.APIKey = key
	}

	start, end := defaultRange(now)
	if c.Start == "" {
		c.Start = start
	}

	if c.End == "" {
		c.End = end
	}
}

// providerConfig converts the run configuration into a validated provider configuration.
func (c runConfig) providerConfig() (marketdata.ProviderConfig, error) {
	base := marketdata.BaseConfig{
		Symbol:    c.Symbol,
		StartDate: c.Start,
		EndDate:   c.End,
		Interval:  c.Interval,
		Timeout:   c.Timeout,
	}

	var config marketdata.ProviderConfig

	switch provider.ProviderType(c.Provider) {
	case provider.ProviderPolygon:
		config = &marketdata.PolygonConfig{BaseConfig: base, APIKey: c.Polygon.APIKey}
	case provider.ProviderBinance:
		config = &marketdata.BinanceConfig{BaseConfig: base}
	case provider.ProviderBitso:
		config = &marketdata.BitsoConfig{BaseConfig: base, BaseURL: c.BaseURL}
	case provider.ProviderYahoo:
		config = &marketdata.YahooConfig{BaseConfig: base, BaseURL: c.BaseURL}
	case provider.ProviderParquet:
		config = &marketdata.ParquetConfig{BaseConfig: base, Path: c.Parquet.Path}
	default:
		return nil, fmt.Errorf("unsupported provider %q, expected one of %s", c.Provider, strings.Join(marketdata.GetSupportedProviders(), ", "))
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// resolveProviderConfig builds the provider configuration from --config and the flags.
// A .json config is parsed with the provider's JSON schema; anything else is read as a
// YAML run file.
func resolveProviderConfig(cmd *cli.Command) (marketdata.ProviderConfig, error) {
	path := cmd.String("config")

	if strings.EqualFold(filepath.Ext(path), ".json") {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		return marketdata.ParseConfig(cmd.String("provider"), string(content))
	}

	var config runConfig

	if path != "" {
		var err error

		config, err = loadRunConfig(path)
		if err != nil {
			return nil, err
		}
	}

	config.applyFlags(cmd, time.Now())

	return config.providerConfig()
}

// analysisConfig derives the analyzer configuration from a provider configuration.
func analysisConfig(config marketdata.ProviderConfig) (analysis.Config, error) {
	req, err := config.ToRequest()
	if err != nil {
		return analysis.Config{}, err
	}

	return analysis.Config{
		Symbol:      req.Symbol,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Granularity: optional.Some(req.Interval),
		Timeout:     config.ToClientConfig().Timeout,
	}, nil
}

// defaultRange covers the six months up to today when the run leaves the range open.
func defaultRange(now time.Time) (string, string) {
	end := now.UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, -6, 0)

	return start.Format(time.DateOnly), end.Format(time.DateOnly)
}
