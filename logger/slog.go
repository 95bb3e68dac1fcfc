package logger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/couchbase/utils"
)

type slogLogger struct {
	Logger   *slog.Logger
	LogLevel LogLevel
}

// NewSlogLogger creates a new logger using log/slog
func NewSlogLogger(logger *slog.Logger, config Config) Interface {
	return &slogLogger{
		Logger:   logger,
		LogLevel: config.LogLevel,
	}
}

func (l *slogLogger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *slogLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.log(ctx, slog.LevelInfo, msg, slog.Any("data", data))
	}
}

func (l *slogLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.log(ctx, slog.LevelWarn, msg, slog.Any("data", data))
	}
}

func (l *slogLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.log(ctx, slog.LevelError, msg, slog.Any("data", data))
	}
}

func (l *slogLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, string), err error) {
	if l.LogLevel <= Silent {
		return
	}

	elapsed := time.Since(begin)
	fields := func() []slog.Attr {
		relation, backend := fc()
		return []slog.Attr{
			slog.String("duration", fmt.Sprintf("%.3fms", float64(elapsed.Nanoseconds())/1e6)),
			slog.String("relation", relation),
			slog.String("backend", backend),
		}
	}

	switch {
	case err != nil && l.LogLevel >= Error:
		l.log(ctx, slog.LevelError, "relation resolution failed", slog.Attr{
			Key:   "trace",
			Value: slog.GroupValue(append(fields(), slog.String("error", err.Error()))...),
		})

	case l.LogLevel >= Info:
		l.log(ctx, slog.LevelInfo, "relation resolved", slog.Attr{
			Key:   "trace",
			Value: slog.GroupValue(fields()...),
		})
	}
}

func (l *slogLogger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}

	if !l.Logger.Enabled(ctx, level) {
		return
	}

	r := slog.NewRecord(time.Now(), level, msg, utils.CallerFrame().PC)
	r.Add(args...)
	_ = l.Logger.Handler().Handle(ctx, r)
}
