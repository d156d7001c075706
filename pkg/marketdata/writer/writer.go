package writer

import (
	"github.com/rxtech-lab/argo-indicators/internal/indicator"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// FrameWriter exports an indicator frame one period at a time.
type FrameWriter interface {
	// Initialize prepares storage for the OHLCV fields and the given indicator columns.
	Initialize(columns []types.IndicatorName) error
	// Write stores one period. Undefined indicator values are stored as nulls.
	Write(row indicator.Row) error
	// Finalize flushes the stored periods and returns the path of the exported file.
	Finalize() (outputPath string, err error)
	Close() error
	GetOutputPath() string
}

// WriteFrame runs the full writer lifecycle for a frame and returns the output path.
// The writer is closed on return.
func WriteFrame(w FrameWriter, frame indicator.Frame) (outputPath string, err error) {
	if err := w.Initialize(frame.Columns); err != nil {
		return "", err
	}

	defer func() {
		if closeErr := w.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to close writer", closeErr)
		}
	}()

	for _, row := range frame.Rows() {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return w.Finalize()
}
