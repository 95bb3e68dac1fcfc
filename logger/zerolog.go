package logger

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/couchbase/utils"
)

// ZerologLogger implements Interface using zerolog
type ZerologLogger struct {
	Logger   zerolog.Logger
	LogLevel LogLevel
}

// NewZerologLogger creates a new logger using zerolog
func NewZerologLogger(logger zerolog.Logger, config Config) Interface {
	return &ZerologLogger{
		Logger:   logger,
		LogLevel: config.LogLevel,
	}
}

// NewZerologLoggerWithConfig creates a new zerolog logger with custom configuration
func NewZerologLoggerWithConfig(config Config, output ...zerolog.Context) Interface {
	var logger zerolog.Logger

	if len(output) > 0 {
		logger = output[0].Logger()
	} else {
		consoleWriter := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = os.Stdout
			w.TimeFormat = time.RFC3339
		})
		logger = zerolog.New(consoleWriter).
			Level(ZerologLevel(config.LogLevel)).
			With().
			Timestamp().
			Logger()
	}

	return NewZerologLogger(logger, config)
}

// LogMode sets the log level
func (l *ZerologLogger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *ZerologLogger) write(ctx context.Context, event *zerolog.Event, msg string, data []interface{}) {
	event = event.Str("file", utils.FileWithLineNum()).Interface("data", data)
	if ctx != nil {
		event = event.Ctx(ctx)
	}
	event.Msg(msg)
}

// Info logs info messages
func (l *ZerologLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.write(ctx, l.Logger.Info(), msg, data)
	}
}

// Warn logs warning messages
func (l *ZerologLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.write(ctx, l.Logger.Warn(), msg, data)
	}
}

// Error logs error messages
func (l *ZerologLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.write(ctx, l.Logger.Error(), msg, data)
	}
}

// Trace logs relation resolution details
func (l *ZerologLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, string), err error) {
	if l.LogLevel <= Silent {
		return
	}

	elapsed := time.Since(begin)

	var (
		event *zerolog.Event
		msg   string
	)

	switch {
	case err != nil && l.LogLevel >= Error:
		event, msg = l.Logger.Error().Err(err), "relation resolution failed"
	case l.LogLevel >= Info:
		event, msg = l.Logger.Info(), "relation resolved"
	default:
		return
	}

	relation, backend := fc()
	event = event.
		Str("file", utils.FileWithLineNum()).
		Str("duration", fmt.Sprintf("%.3fms", float64(elapsed.Nanoseconds())/1e6)).
		Str("relation", relation).
		Str("backend", backend)

	if ctx != nil {
		event = event.Ctx(ctx)
	}

	event.Msg(msg)
}

// With adds fields to the logger
func (l *ZerologLogger) With() zerolog.Context {
	return l.Logger.With()
}

// ZerologLevel converts LogLevel to zerolog.Level
func ZerologLevel(level LogLevel) zerolog.Level {
	switch level {
	case Silent:
		return zerolog.Disabled
	case Error:
		return zerolog.ErrorLevel
	case Warn:
		return zerolog.WarnLevel
	case Info:
		return zerolog.InfoLevel
	default:
		return zerolog.InfoLevel
	}
}
