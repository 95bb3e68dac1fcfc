package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestZerolog() (zerolog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return zerolog.New(&buf).With().Timestamp().Logger(), &buf
}

func TestNewZerologLogger(t *testing.T) {
	zerologLogger, buf := setupTestZerolog()

	zerologAdapter := NewZerologLogger(zerologLogger, Config{LogLevel: Info})

	require.NotNil(t, zerologAdapter)
	assert.Equal(t, Info, zerologAdapter.(*ZerologLogger).LogLevel)
	require.NotNil(t, buf)
}

func TestZerologLogger_LogMode(t *testing.T) {
	zerologLogger, _ := setupTestZerolog()

	logger := NewZerologLogger(zerologLogger, Config{
		LogLevel: Error,
	})

	// Test changing log mode
	infoLogger := logger.LogMode(Info)
	assert.Equal(t, Info, infoLogger.(*ZerologLogger).LogLevel)

	// Test that original is not affected
	assert.Equal(t, Error, logger.(*ZerologLogger).LogLevel)
}

func TestZerologLogger_LogLevels(t *testing.T) {
	ctx := context.Background()
	zerologLogger, buf := setupTestZerolog()
	logger := NewZerologLogger(zerologLogger, Config{
		LogLevel: Info,
	})

	tests := []struct {
		name   string
		level  LogLevel
		logMsg string
		want   string
	}{
		{"Info level", Info, "Test info message", `"level":"info"`},
		{"Warn level", Warn, "Test warn message", `"level":"warn"`},
		{"Error level", Error, "Test error message", `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			logger := logger.LogMode(tt.level)

			switch tt.level {
			case Info:
				logger.Info(ctx, tt.logMsg, "key", "value")
			case Warn:
				logger.Warn(ctx, tt.logMsg, "key", "value")
			case Error:
				logger.Error(ctx, tt.logMsg, "key", "value")
			}

			output := buf.String()
			assert.Contains(t, output, tt.logMsg)
			assert.Contains(t, output, tt.want)
			assert.Contains(t, output, "zerolog_test.go")
		})
	}
}

func TestZerologLogger_Trace(t *testing.T) {
	ctx := context.Background()
	zerologLogger, buf := setupTestZerolog()
	logger := NewZerologLogger(zerologLogger, Config{
		LogLevel: Info,
	})

	t.Run("Resolved", func(t *testing.T) {
		buf.Reset()
		logger.Trace(ctx, time.Now(), relationTrace, nil)

		output := buf.String()
		assert.Contains(t, output, `"message":"relation resolved"`)
		assert.Contains(t, output, `"relation":"belongs_to author -> users"`)
		assert.Contains(t, output, `"backend":"couchbase"`)
	})

	t.Run("Failed", func(t *testing.T) {
		buf.Reset()
		logger.Trace(ctx, time.Now(), relationTrace, errors.New("unknown morph type"))

		output := buf.String()
		assert.Contains(t, output, `"message":"relation resolution failed"`)
		assert.Contains(t, output, `"error":"unknown morph type"`)
	})

	t.Run("Warn level skips resolved", func(t *testing.T) {
		buf.Reset()
		logger.LogMode(Warn).Trace(ctx, time.Now(), relationTrace, nil)

		assert.Empty(t, buf.String())
	})
}

func TestZerologLevel(t *testing.T) {
	assert.Equal(t, zerolog.Disabled, ZerologLevel(Silent))
	assert.Equal(t, zerolog.ErrorLevel, ZerologLevel(Error))
	assert.Equal(t, zerolog.WarnLevel, ZerologLevel(Warn))
	assert.Equal(t, zerolog.InfoLevel, ZerologLevel(Info))
}
