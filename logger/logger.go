package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/couchbase/utils"
)

// LogLevel log level
type LogLevel int

const (
	// Silent silent log level
	Silent LogLevel = iota + 1
	// Error error log level
	Error
	// Warn warn log level
	Warn
	// Info info log level
	Info
)

// ErrInvalidLogLevel unknown log level name
var ErrInvalidLogLevel = errors.New("invalid log level")

// ParseLevel parse a level name, `silent`, `error`, `warn` or `info`
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return Silent, nil
	case "error":
		return Error, nil
	case "warn", "warning":
		return Warn, nil
	case "info", "debug":
		return Info, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
}

func (level LogLevel) String() string {
	switch level {
	case Silent:
		return "silent"
	case Error:
		return "error"
	case Warn:
		return "warn"
	case Info:
		return "info"
	}
	return fmt.Sprintf("LogLevel(%d)", int(level))
}

// Writer log writer interface
type Writer interface {
	Printf(string, ...interface{})
}

// Config logger config
type Config struct {
	LogLevel LogLevel
}

// Interface logger interface
type Interface interface {
	LogMode(LogLevel) Interface
	Info(context.Context, string, ...interface{})
	Warn(context.Context, string, ...interface{})
	Error(context.Context, string, ...interface{})
	Trace(ctx context.Context, begin time.Time, fc func() (relation string, backend string), err error)
}

var (
	// Discard logger will print any log to io.Discard
	Discard = New(log.New(io.Discard, "", log.LstdFlags), Config{})
	// Default default logger
	Default = New(log.New(os.Stdout, "\r\n", log.LstdFlags), Config{
		LogLevel: Warn,
	})
)

// New initialize logger
func New(writer Writer, config Config) Interface {
	return &logger{
		Writer:      writer,
		Config:      config,
		infoStr:     "%s\n[info] ",
		warnStr:     "%s\n[warn] ",
		errStr:      "%s\n[error] ",
		traceStr:    "%s\n[%.3fms] [%s] %s",
		traceErrStr: "%s %s\n[%.3fms] [%s] %s",
	}
}

type logger struct {
	Writer
	Config
	infoStr, warnStr, errStr string
	traceStr, traceErrStr    string
}

// LogMode log mode
func (l *logger) LogMode(level LogLevel) Interface {
	newlogger := *l
	newlogger.LogLevel = level
	return &newlogger
}

// Info print info
func (l *logger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Info {
		l.Printf(l.infoStr+msg, append([]interface{}{utils.FileWithLineNum()}, data...)...)
	}
}

// Warn print warn messages
func (l *logger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Warn {
		l.Printf(l.warnStr+msg, append([]interface{}{utils.FileWithLineNum()}, data...)...)
	}
}

// Error print error messages
func (l *logger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= Error {
		l.Printf(l.errStr+msg, append([]interface{}{utils.FileWithLineNum()}, data...)...)
	}
}

// Trace print relation resolution
func (l *logger) Trace(ctx context.Context, begin time.Time, fc func() (string, string), err error) {
	if l.LogLevel <= Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.LogLevel >= Error:
		relation, backend := fc()
		l.Printf(l.traceErrStr, utils.FileWithLineNum(), err, float64(elapsed.Nanoseconds())/1e6, backend, relation)
	case l.LogLevel >= Info:
		relation, backend := fc()
		l.Printf(l.traceStr, utils.FileWithLineNum(), float64(elapsed.Nanoseconds())/1e6, backend, relation)
	}
}
