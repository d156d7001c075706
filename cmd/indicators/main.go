package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rxtech-lab/argo-indicators/internal/indicator"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/internal/version"
	"github.com/rxtech-lab/argo-indicators/pkg/analysis"
	"github.com/rxtech-lab/argo-indicators/pkg/marketdata"
	"github.com/rxtech-lab/argo-indicators/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-indicators/pkg/marketdata/writer"
)

func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Run file in YAML, or a provider config in JSON (see the schema command)",
		},
		&cli.StringFlag{
			Name:    "provider",
			Aliases: []string{"p"},
			Usage:   fmt.Sprintf("Data provider (%s, %s, %s, %s or %s)", provider.ProviderBitso, provider.ProviderYahoo, provider.ProviderPolygon, provider.ProviderBinance, provider.ProviderParquet),
			Value:   string(provider.ProviderBitso),
		},
		&cli.StringFlag{
			Name:    "symbol",
			Aliases: []string{"s"},
			Usage:   "Symbol or order book (e.g. btc_mxn, AAPL, BTCUSDT)",
		},
		&cli.StringFlag{
			Name:  "start",
			Usage: "Start date in `YYYY-MM-DD` format (or RFC3339). Defaults to six months ago.",
		},
		&cli.StringFlag{
			Name:  "end",
			Usage: "End date in `YYYY-MM-DD` format (or RFC3339). Defaults to today.",
		},
		&cli.StringFlag{
			Name:    "interval",
			Aliases: []string{"i"},
			Usage:   "Granularity of one period (e.g. 1h, 1d, 1w)",
		},
		&cli.StringFlag{
			Name:  "timeout",
			Usage: "Upper bound of the fetch (e.g. 30s)",
		},
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "Override of the provider API host (bitso and yahoo)",
		},
		&cli.StringFlag{
			Name:  "path",
			Usage: "Parquet file to read with the parquet provider",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log debug output to stderr",
		},
	}
}

func newLogger(cmd *cli.Command) (*logger.Logger, error) {
	level := zapcore.WarnLevel
	if cmd.Bool("verbose") {
		level = zapcore.DebugLevel
	}

	return logger.NewLoggerWithOutput(level, "stderr")
}

// newAnalyzer resolves the configuration and builds an analyzer over the selected source.
func newAnalyzer(cmd *cli.Command, log *logger.Logger) (*analysis.Analyzer, error) {
	providerConfig, err := resolveProviderConfig(cmd)
	if err != nil {
		return nil, err
	}

	config, err := analysisConfig(providerConfig)
	if err != nil {
		return nil, err
	}

	source, err := marketdata.NewClient(providerConfig.ToClientConfig(), log)
	if err != nil {
		return nil, err
	}

	log.Debug("Resolved configuration",
		zap.String("provider", string(source.Name())),
		zap.String("symbol", config.Symbol),
		zap.Time("start", config.StartDate),
		zap.Time("end", config.EndDate),
	)

	return analysis.NewAnalyzer(source, config, analysis.WithLogger(log))
}

// withSpinner shows a spinner on stderr while fn runs.
func withSpinner[T any](description string, fn func() (T, error)) (T, error) {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	result, err := fn()

	close(done)
	_ = bar.Finish()

	return result, err
}

// analyzerAction wraps an action that needs an analyzer.
func analyzerAction(run func(ctx context.Context, cmd *cli.Command, analyzer *analysis.Analyzer, log *logger.Logger) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		log, err := newLogger(cmd)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		analyzer, err := newAnalyzer(cmd, log)
		if err != nil {
			return err
		}

		return run(ctx, cmd, analyzer, log)
	}
}

func snapshotAction(ctx context.Context, cmd *cli.Command, analyzer *analysis.Analyzer, _ *logger.Logger) error {
	symbol := analyzer.Config().Symbol

	if cmd.Bool("prices") {
		values, err := withSpinner("Fetching "+symbol, func() (indicator.Snapshot, error) {
			return analyzer.GetLatestPriceValues(ctx)
		})
		if err != nil {
			return err
		}

		return writeOut(cmd.Root().Writer, renderSnapshot(symbol, values))
	}

	snapshot, err := withSpinner("Fetching "+symbol, func() (indicator.Snapshot, error) {
		return analyzer.GetIndicators(ctx)
	})
	if err != nil {
		return err
	}

	return writeOut(cmd.Root().Writer, renderSnapshot(symbol, snapshot))
}

func rawAction(ctx context.Context, cmd *cli.Command, analyzer *analysis.Analyzer, _ *logger.Logger) error {
	series, err := withSpinner("Fetching "+analyzer.Config().Symbol, func() (types.Series, error) {
		return analyzer.GetRawData(ctx)
	})
	if err != nil {
		return err
	}

	return writeOut(cmd.Root().Writer, renderSeries(series))
}

func frameAction(ctx context.Context, cmd *cli.Command, analyzer *analysis.Analyzer, _ *logger.Logger) error {
	frame, err := withSpinner("Fetching "+analyzer.Config().Symbol, func() (indicator.Frame, error) {
		return analyzer.GetIndicatorFrame(ctx)
	})
	if err != nil {
		return err
	}

	return writeOut(cmd.Root().Writer, renderFrame(frame))
}

func exportAction(ctx context.Context, cmd *cli.Command, analyzer *analysis.Analyzer, log *logger.Logger) error {
	config := analyzer.Config()

	frame, err := withSpinner("Fetching "+config.Symbol, func() (indicator.Frame, error) {
		return analyzer.GetIndicatorFrame(ctx)
	})
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "" {
		output = fmt.Sprintf("%s_%s_%s_indicators.parquet",
			config.Symbol,
			config.StartDate.Format(time.DateOnly),
			config.EndDate.Format(time.DateOnly))
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	path, err := writer.WriteFrame(writer.NewDuckDBWriter(output, log), frame)
	if err != nil {
		return err
	}

	return writeOut(cmd.Root().Writer, fmt.Sprintf("Exported %d periods to %s", frame.Len(), path))
}

func providersAction(_ context.Context, cmd *cli.Command) error {
	names := marketdata.GetSupportedProviders()
	providers := make([]marketdata.ProviderInfo, 0, len(names))

	for _, name := range names {
		info, err := marketdata.GetProviderInfo(name)
		if err != nil {
			return err
		}

		providers = append(providers, info)
	}

	return writeOut(cmd.Root().Writer, renderProviders(providers))
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	schema, err := marketdata.GetConfigSchema(cmd.String("provider"))
	if err != nil {
		return err
	}

	return writeOut(cmd.Root().Writer, schema)
}

func writeOut(w io.Writer, content string) error {
	if w == nil {
		w = os.Stdout
	}

	_, err := fmt.Fprintln(w, content)

	return err
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "indicators",
		Usage:   "Compute technical indicators for a single asset",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "snapshot",
				Usage: "Show the latest value of every indicator",
				Flags: append(sourceFlags(), &cli.BoolFlag{
					Name:  "prices",
					Usage: "Only show SMA_50, EMA_20 and the close price",
				}),
				Action: analyzerAction(snapshotAction),
			},
			{
				Name:   "raw",
				Usage:  "Show the fetched OHLCV series",
				Flags:  sourceFlags(),
				Action: analyzerAction(rawAction),
			},
			{
				Name:   "frame",
				Usage:  "Show the series with every indicator column",
				Flags:  sourceFlags(),
				Action: analyzerAction(frameAction),
			},
			{
				Name:  "export",
				Usage: "Export the series with every indicator column to Parquet",
				Flags: append(sourceFlags(), &cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "Output Parquet file",
				}),
				Action: analyzerAction(exportAction),
			},
			{
				Name:   "providers",
				Usage:  "List the supported data providers",
				Action: providersAction,
			},
			{
				Name:  "schema",
				Usage: "Print the JSON schema of a provider configuration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "provider",
						Aliases:  []string{"p"},
						Usage:    "Data provider",
						Required: true,
					},
				},
				Action: schemaAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
