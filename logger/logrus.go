package logger

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/couchbase/utils"
)

// LogrusLogger implements Interface using logrus
type LogrusLogger struct {
	Logger   *logrus.Logger
	LogLevel LogLevel
	fields   logrus.Fields
}

// NewLogrusLogger creates a new logger using logrus
func NewLogrusLogger(logger *logrus.Logger, config Config) Interface {
	return &LogrusLogger{
		Logger:   logger,
		LogLevel: config.LogLevel,
	}
}

// LogMode sets the log level
func (l *LogrusLogger) LogMode(level LogLevel) Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *LogrusLogger) entry(ctx context.Context, fields logrus.Fields) *logrus.Entry {
	entry := l.Logger.WithFields(l.fields).WithFields(fields)
	if ctx != nil {
		entry = entry.WithContext(ctx)
	}
	return entry
}

// Info logs info messages
func (l *LogrusLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.entry(ctx, logrus.Fields{
			"file": utils.FileWithLineNum(),
			"data": data,
		}).Info(msg)
	}
}

// Warn logs warning messages
func (l *LogrusLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.entry(ctx, logrus.Fields{
			"file": utils.FileWithLineNum(),
			"data": data,
		}).Warn(msg)
	}
}

// Error logs error messages
func (l *LogrusLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.entry(ctx, logrus.Fields{
			"file": utils.FileWithLineNum(),
			"data": data,
		}).Error(msg)
	}
}

// Trace logs relation resolution details
func (l *LogrusLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, string), err error) {
	if l.LogLevel <= Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.LogLevel >= Error:
		relation, backend := fc()
		l.entry(ctx, logrus.Fields{
			"file":     utils.FileWithLineNum(),
			"duration": fmt.Sprintf("%.3fms", float64(elapsed.Nanoseconds())/1e6),
			"relation": relation,
			"backend":  backend,
			"error":    err.Error(),
		}).Error("relation resolution failed")

	case l.LogLevel >= Info:
		relation, backend := fc()
		l.entry(ctx, logrus.Fields{
			"file":     utils.FileWithLineNum(),
			"duration": fmt.Sprintf("%.3fms", float64(elapsed.Nanoseconds())/1e6),
			"relation": relation,
			"backend":  backend,
		}).Info("relation resolved")
	}
}

// WithField adds a field to every entry of the returned logger
func (l *LogrusLogger) WithField(key string, value interface{}) *LogrusLogger {
	return l.WithFields(logrus.Fields{key: value})
}

// WithFields adds multiple fields to every entry of the returned logger
func (l *LogrusLogger) WithFields(fields logrus.Fields) *LogrusLogger {
	newLogger := *l
	newLogger.fields = make(logrus.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newLogger.fields[k] = v
	}
	for k, v := range fields {
		newLogger.fields[k] = v
	}
	return &newLogger
}
