package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the zap logger shared by sources, the analyzer and the CLI.
type Logger struct {
	*zap.Logger
}

// NewLogger creates a production logger at info level on stdout.
func NewLogger() (*Logger, error) {
	return NewLoggerWithOutput(zapcore.InfoLevel, "stdout")
}

// NewLoggerWithOutput creates a production logger at level writing to output, which is
// a path or one of "stdout" and "stderr".
func NewLoggerWithOutput(level zapcore.Level, output string) (*Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{output}
	config.ErrorOutputPaths = []string{"stderr"}

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return New(zapLogger), nil
}

// New wraps an existing zap logger.
func New(zapLogger *zap.Logger) *Logger {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}

	return &Logger{Logger: zapLogger}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *Logger {
	return New(zap.NewNop())
}

// Named returns a child logger for component carrying fields on every entry.
func (l *Logger) Named(component string, fields ...zap.Field) *Logger {
	if l == nil || l.Logger == nil {
		return NewNopLogger()
	}

	return New(l.Logger.Named(component).With(fields...))
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	if l == nil || l.Logger == nil {
		return nil
	}

	return l.Logger.Sync()
}
