package writer

import (
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/rxtech-lab/argo-indicators/internal/indicator"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// baseColumns are written before the indicator columns, in this order.
var baseColumns = []string{"id", "time", "symbol", "open", "high", "low", "close", "volume"}

// DuckDBWriter stages a frame in an in-memory DuckDB table and exports it to Parquet.
// Undefined indicator values are written as NULL.
type DuckDBWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	columns    []types.IndicatorName
	outputPath string
	logger     *logger.Logger
}

// NewDuckDBWriter creates a writer exporting to the Parquet file at outputPath.
func NewDuckDBWriter(outputPath string, log *logger.Logger) FrameWriter {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &DuckDBWriter{
		outputPath: outputPath,
		logger:     log,
	}
}

// Initialize opens the database, creates the table with one DOUBLE column per indicator,
// begins a transaction and prepares the insert statement.
func (w *DuckDBWriter) Initialize(columns []types.IndicatorName) (err error) {
	w.db, err = sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to open DuckDB connection", err)
	}

	w.columns = columns

	definitions := []string{
		"id TEXT",
		"time TIMESTAMP",
		"symbol TEXT",
		"open DOUBLE",
		"high DOUBLE",
		"low DOUBLE",
		"close DOUBLE",
		"volume DOUBLE",
	}
	for _, name := range columns {
		definitions = append(definitions, quoteIdentifier(string(name))+" DOUBLE")
	}

	_, err = w.db.Exec(fmt.Sprintf("CREATE TABLE market_data (%s)", strings.Join(definitions, ", ")))
	if err != nil {
		w.db.Close()
		w.db = nil

		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to create table", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()
		w.db = nil

		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to begin transaction", err)
	}

	names := make([]string, 0, len(baseColumns)+len(columns))
	names = append(names, baseColumns...)

	for _, name := range columns {
		names = append(names, quoteIdentifier(string(name)))
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")

	w.stmt, err = w.tx.Prepare(fmt.Sprintf("INSERT INTO market_data (%s) VALUES (%s)", strings.Join(names, ", "), placeholders))
	if err != nil {
		w.tx.Rollback()
		w.db.Close()
		w.tx = nil
		w.db = nil

		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to prepare statement", err)
	}

	return nil
}

// Write inserts one period using the prepared statement within the transaction.
func (w *DuckDBWriter) Write(row indicator.Row) error {
	if w.stmt == nil {
		return errors.New(errors.ErrCodeMarketDataWriteFailed, "writer not initialized or statement is nil")
	}

	args := make([]any, 0, len(baseColumns)+len(w.columns))
	args = append(args,
		uuid.New().String(),
		row.Time,
		row.Symbol,
		row.Open,
		row.High,
		row.Low,
		row.Close,
		row.Volume,
	)

	for _, name := range w.columns {
		value := sql.NullFloat64{}
		if v, ok := row.Values[name]; ok && v.IsSome() && !math.IsNaN(v.Unwrap()) {
			value = sql.NullFloat64{Float64: v.Unwrap(), Valid: true}
		}

		args = append(args, value)
	}

	if _, err := w.stmt.Exec(args...); err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to insert row", err)
	}

	return nil
}

// Finalize commits the transaction and exports the table to the Parquet file.
func (w *DuckDBWriter) Finalize() (outputPath string, err error) {
	if w.tx == nil {
		return "", errors.New(errors.ErrCodeMarketDataWriteFailed, "writer not initialized or transaction is nil")
	}

	if err = w.tx.Commit(); err != nil {
		w.tx.Rollback()

		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to commit transaction", err)
	}

	w.tx = nil

	query := fmt.Sprintf(`COPY (SELECT * FROM market_data ORDER BY time) TO '%s' (FORMAT PARQUET)`,
		strings.ReplaceAll(w.outputPath, "'", "''"))
	if _, err = w.db.Exec(query); err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to export to Parquet", err)
	}

	w.logger.Info("Exported indicator frame", zap.String("path", w.outputPath), zap.Int("columns", len(w.columns)))

	return w.outputPath, nil
}

// Close releases the statement, rolls back an unfinished transaction and closes the
// database connection.
func (w *DuckDBWriter) Close() error {
	var closeErrors []string

	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Sprintf("failed to close statement: %v", err))
		}

		w.stmt = nil
	}

	if w.tx != nil {
		if err := w.tx.Rollback(); err != nil {
			w.logger.Warn("Failed to rollback transaction during close", zap.Error(err))
		}

		w.tx = nil
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Sprintf("failed to close db connection: %v", err))
		}

		w.db = nil
	}

	if len(closeErrors) > 0 {
		return errors.Newf(errors.ErrCodeMarketDataWriteFailed, "errors occurred during close: %s", strings.Join(closeErrors, "; "))
	}

	return nil
}

// GetOutputPath returns the Parquet file path.
func (w *DuckDBWriter) GetOutputPath() string {
	return w.outputPath
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
