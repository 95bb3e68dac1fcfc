package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func setupTestZap(level zapcore.Level) (*zap.Logger, *bytes.Buffer) {
	var buf bytes.Buffer

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(&buf),
		level,
	)

	return zap.New(core), &buf
}

func TestNewZapLogger(t *testing.T) {
	zapLogger, _ := setupTestZap(zapcore.InfoLevel)

	zapAdapter := NewZapLogger(zapLogger, Config{LogLevel: Info})

	require.NotNil(t, zapAdapter)
	assert.Equal(t, Info, zapAdapter.(*ZapLogger).LogLevel)
}

func TestZapLogger_LogMode(t *testing.T) {
	zapLogger := zap.NewNop()

	logger := NewZapLogger(zapLogger, Config{
		LogLevel: Error,
	})

	// Test changing log mode
	infoLogger := logger.LogMode(Info)
	assert.Equal(t, Info, infoLogger.(*ZapLogger).LogLevel)

	// Test that original is not affected
	assert.Equal(t, Error, logger.(*ZapLogger).LogLevel)
}

func TestZapLogger_LogLevels(t *testing.T) {
	ctx := context.Background()
	zapLogger, buf := setupTestZap(zapcore.InfoLevel)
	logger := NewZapLogger(zapLogger, Config{
		LogLevel: Info,
	})

	tests := []struct {
		name   string
		level  LogLevel
		logMsg string
	}{
		{"Info level", Info, "Test info message"},
		{"Warn level", Warn, "Test warn message"},
		{"Error level", Error, "Test error message"},
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
			assert.Contains(t, output, "zap_test.go")
		})
	}

	t.Run("Below level", func(t *testing.T) {
		buf.Reset()
		logger.LogMode(Error).Warn(ctx, "ignored")
		assert.Empty(t, buf.String())
	})
}

func TestZapLogger_Trace(t *testing.T) {
	ctx := context.Background()
	zapLogger, buf := setupTestZap(zapcore.InfoLevel)
	logger := NewZapLogger(zapLogger, Config{
		LogLevel: Info,
	})

	t.Run("Resolved", func(t *testing.T) {
		buf.Reset()
		logger.Trace(ctx, time.Now(), relationTrace, nil)

		output := buf.String()
		assert.Contains(t, output, `"msg":"relation resolved"`)
		assert.Contains(t, output, `"relation":"belongs_to author -> users"`)
		assert.Contains(t, output, `"backend":"couchbase"`)
		assert.Contains(t, output, `"duration"`)
	})

	t.Run("Failed", func(t *testing.T) {
		buf.Reset()
		logger.Trace(ctx, time.Now(), relationTrace, errors.New("unknown morph type"))

		output := buf.String()
		assert.Contains(t, output, `"msg":"relation resolution failed"`)
		assert.Contains(t, output, `"error":"unknown morph type"`)
		assert.Contains(t, output, `"level":"error"`)
	})

	t.Run("Silent", func(t *testing.T) {
		buf.Reset()
		logger.LogMode(Silent).Trace(ctx, time.Now(), relationTrace, errors.New("failed"))

		assert.Empty(t, buf.String())
	})
}

func TestZapLogger_WithFields(t *testing.T) {
	zapLogger, buf := setupTestZap(zapcore.InfoLevel)
	logger := NewZapLogger(zapLogger, Config{LogLevel: Info}).(*ZapLogger)

	logger.WithFields(zap.String("bucket", "travel-sample")).Info(context.Background(), "registered")

	assert.Contains(t, buf.String(), `"bucket":"travel-sample"`)
	require.NotNil(t, logger.Sugar())
}

func TestZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DPanicLevel, ZapLevel(Silent))
	assert.Equal(t, zapcore.ErrorLevel, ZapLevel(Error))
	assert.Equal(t, zapcore.WarnLevel, ZapLevel(Warn))
	assert.Equal(t, zapcore.InfoLevel, ZapLevel(Info))
	assert.Equal(t, zapcore.InfoLevel, ZapLevel(LogLevel(42)))
}
