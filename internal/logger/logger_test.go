package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type LoggerTestSuite struct {
	suite.Suite
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (suite *LoggerTestSuite) TestLevels() {
	testCases := []struct {
		name     string
		level    zapcore.Level
		enabled  zapcore.Level
		disabled zapcore.Level
	}{
		{"info", zapcore.InfoLevel, zapcore.InfoLevel, zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel, zapcore.ErrorLevel, zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel, zapcore.DebugLevel, zapcore.DebugLevel - 1},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			log, err := NewLoggerWithOutput(tc.level, "stderr")
			suite.Require().NoError(err)
			suite.True(log.Core().Enabled(tc.enabled))
			suite.False(log.Core().Enabled(tc.disabled))
		})
	}
}

func (suite *LoggerTestSuite) TestNewLoggerDefaultsToInfo() {
	log, err := NewLogger()
	suite.Require().NoError(err)
	suite.True(log.Core().Enabled(zapcore.InfoLevel))
	suite.False(log.Core().Enabled(zapcore.DebugLevel))
}

func (suite *LoggerTestSuite) TestFileOutput() {
	path := filepath.Join(suite.T().TempDir(), "indicators.log")

	log, err := NewLoggerWithOutput(zapcore.InfoLevel, path)
	suite.Require().NoError(err)
	log.Info("fetched series")
	suite.NoError(log.Sync())
	suite.FileExists(path)

	_, err = NewLoggerWithOutput(zapcore.InfoLevel, filepath.Join(suite.T().TempDir(), "missing", "dir", "out.log"))
	suite.Error(err)
}

func (suite *LoggerTestSuite) TestNamed() {
	core, logs := observer.New(zapcore.DebugLevel)

	log := New(zap.New(core)).Named("source", zap.String("provider", "bitso"))
	log.Debug("Fetching series", zap.String("symbol", "btc_mxn"))

	entries := logs.All()
	suite.Require().Len(entries, 1)
	suite.Equal("source", entries[0].LoggerName)
	suite.Equal("bitso", entries[0].ContextMap()["provider"])
	suite.Equal("btc_mxn", entries[0].ContextMap()["symbol"])
}

func (suite *LoggerTestSuite) TestNilSafety() {
	var log *Logger
	suite.NoError(log.Sync())
	suite.NotNil(log.Named("analysis"))

	suite.NotNil(New(nil).Logger)
	suite.NoError((&Logger{}).Sync())

	// discards without panicking
	NewNopLogger().Info("discarded", zap.String("symbol", "btc_mxn"))
}
