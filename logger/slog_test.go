package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlogLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{AddSource: true})
	logger := NewSlogLogger(slog.New(handler), Config{LogLevel: Info})

	logger.Trace(context.Background(), time.Now(), relationTrace, nil)

	output := buf.String()
	assert.NotContains(t, output, "logger/slog.go", "caller frame should skip the adapter")
	assert.Contains(t, output, "logger/slog_test.go")
	assert.Contains(t, output, "trace.relation=")
	assert.Contains(t, output, "trace.backend=couchbase")
}

func TestSlogLogger_TraceError(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewSlogLogger(slog.New(slog.NewTextHandler(buf, nil)), Config{LogLevel: Error})

	logger.Trace(context.Background(), time.Now(), relationTrace, nil)
	assert.Empty(t, buf.String())

	logger.Trace(context.Background(), time.Now(), relationTrace, errors.New("unknown morph type"))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), `trace.error="unknown morph type"`)
}

func TestSlogLogger_HandlerLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelError})
	logger := NewSlogLogger(slog.New(handler), Config{LogLevel: Info})

	logger.Info(context.Background(), "registered")
	assert.Empty(t, buf.String())

	logger.Error(context.Background(), "failed")
	assert.Contains(t, buf.String(), "msg=failed")
}
