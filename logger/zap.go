package logger

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/couchbase/utils"
)

// ZapLogger implements Interface using zap
type ZapLogger struct {
	Logger   *zap.Logger
	LogLevel LogLevel
}

// NewZapLogger creates a new logger using zap
func NewZapLogger(logger *zap.Logger, config Config) Interface {
	return &ZapLogger{
		Logger:   logger,
		LogLevel: config.LogLevel,
	}
}

// NewZapLoggerWithConfig creates a new zap logger with custom configuration
func NewZapLoggerWithConfig(config Config, zapConfig ...zap.Config) Interface {
	var zapCfg zap.Config
	if len(zapConfig) > 0 {
		zapCfg = zapConfig[0]
	} else {
		zapCfg = zap.NewProductionConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(ZapLevel(config.LogLevel))
	}

	logger, err := zapCfg.Build()
	if err != nil {
		// Fallback to development config
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(ZapLevel(config.LogLevel))
		logger, _ = zapCfg.Build()
	}

	return NewZapLogger(logger, config)
}

// LogMode sets the log level
func (l *ZapLogger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

// Info logs info messages
func (l *ZapLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.Logger.Info(msg, zap.String("file", utils.FileWithLineNum()), zap.Any("data", data))
	}
}

// Warn logs warning messages
func (l *ZapLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.Logger.Warn(msg, zap.String("file", utils.FileWithLineNum()), zap.Any("data", data))
	}
}

// Error logs error messages
func (l *ZapLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.Logger.Error(msg, zap.String("file", utils.FileWithLineNum()), zap.Any("data", data))
	}
}

// Trace logs relation resolution details
func (l *ZapLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, string), err error) {
	if l.LogLevel <= Silent {
		return
	}

	elapsed := time.Since(begin)
	fields := func() []zap.Field {
		relation, backend := fc()
		return []zap.Field{
			zap.String("file", utils.FileWithLineNum()),
			zap.String("duration", fmt.Sprintf("%.3fms", float64(elapsed.Nanoseconds())/1e6)),
			zap.String("relation", relation),
			zap.String("backend", backend),
		}
	}

	switch {
	case err != nil && l.LogLevel >= Error:
		l.Logger.Error("relation resolution failed", append(fields(), zap.Error(err))...)
	case l.LogLevel >= Info:
		l.Logger.Info("relation resolved", fields()...)
	}
}

// WithFields adds multiple fields to the logger
func (l *ZapLogger) WithFields(fields ...zap.Field) *ZapLogger {
	newLogger := *l
	newLogger.Logger = l.Logger.With(fields...)
	return &newLogger
}

// Sugar returns a sugared logger
func (l *ZapLogger) Sugar() *zap.SugaredLogger {
	return l.Logger.Sugar()
}

// ZapLevel converts LogLevel to zapcore.Level
func ZapLevel(level LogLevel) zapcore.Level {
	switch level {
	case Silent:
		return zapcore.DPanicLevel // Use DPanic for silent to avoid actual logging
	case Error:
		return zapcore.ErrorLevel
	case Warn:
		return zapcore.WarnLevel
	case Info:
		return zapcore.InfoLevel
	default:
		return zapcore.InfoLevel
	}
}
