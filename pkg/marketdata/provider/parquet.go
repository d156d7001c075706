package provider

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// ParquetAdapter reads bars from a local Parquet file with the columns
// time, symbol, open, high, low, close and volume. Bars are aggregated into buckets of the
// requested interval, so a file of minute bars can serve hourly or daily requests.
type ParquetAdapter struct {
	path string
	sq   squirrel.StatementBuilderType
}

// NewParquetAdapter creates an adapter reading from the given file.
func NewParquetAdapter(path string) (*ParquetAdapter, error) {
	if path == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "path is required")
	}

	return &ParquetAdapter{
		path: path,
		sq:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Name implements Adapter.
func (a *ParquetAdapter) Name() ProviderType {
	return ProviderParquet
}

// FetchRaw queries the file through an in-memory DuckDB instance.
func (a *ParquetAdapter) FetchRaw(ctx context.Context, req Request) ([]types.MarketData, error) {
	if _, err := os.Stat(a.path); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataNotFound, err, "parquet file %s is not readable", a.path)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to open duckdb", err)
	}
	defer db.Close()

	// read_parquet does not take bind parameters
	view := fmt.Sprintf(`CREATE VIEW market_data AS SELECT * FROM read_parquet('%s')`, escapeSQLString(a.path))
	if _, err := db.ExecContext(ctx, view); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to read parquet file %s", a.path)
	}

	query, args, err := a.sq.
		Select(
			fmt.Sprintf("time_bucket(INTERVAL '%s', time) AS bucket", duckDBInterval(req.Interval)),
			"arg_min(open, time) AS open",
			"max(high) AS high",
			"min(low) AS low",
			"arg_max(close, time) AS close",
			"sum(volume) AS volume",
		).
		From("market_data").
		Where(squirrel.Eq{"symbol": req.Symbol}).
		Where(squirrel.GtOrEq{"time": req.StartDate}).
		Where(squirrel.LtOrEq{"time": req.EndDate}).
		GroupBy("bucket").
		OrderBy("bucket ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query parquet file", err)
	}
	defer rows.Close()

	bars := []types.MarketData{}

	for rows.Next() {
		bar := types.MarketData{Symbol: req.Symbol}
		if err := rows.Scan(&bar.Time, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan row", err)
		}

		bar.Time = bar.Time.UTC()
		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to iterate rows", err)
	}

	return bars, nil
}

// Normalize wraps the aggregated rows into a series.
func (a *ParquetAdapter) Normalize(req Request, raw []types.MarketData) (types.Series, error) {
	return types.NewSeries(req.Symbol, raw), nil
}

func duckDBInterval(t types.Timespan) string {
	switch t {
	case types.TimespanOneSecond:
		return "1 second"
	case types.TimespanOneMinute, types.TimespanThreeMinutes, types.TimespanFiveMinutes, types.TimespanFifteenMinutes, types.TimespanThirtyMinutes:
		return fmt.Sprintf("%d minutes", t.Multiplier())
	case types.TimespanOneHour, types.TimespanTwoHours, types.TimespanFourHours, types.TimespanSixHours, types.TimespanEightHours, types.TimespanTwelveHours:
		return fmt.Sprintf("%d hours", t.Multiplier())
	case types.TimespanOneWeek:
		return "7 days"
	case types.TimespanOneMonth:
		return "1 month"
	default:
		return fmt.Sprintf("%d days", t.Multiplier())
	}
}

func escapeSQLString(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}
