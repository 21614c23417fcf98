package logging

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/ply-scene/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"loud", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.ok {
			require.NoError(t, err, tt.in)
		} else {
			assert.Error(t, err, tt.in)
		}
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSetupLoggerConsoleOnly(t *testing.T) {
	logger, closeFn := SetupLogger(config.LogConfig{Level: "warn"})
	defer closeFn()

	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	multi := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	}}
	logger := slog.New(multi).With("component", "test")

	logger.Info("hello")
	assert.Contains(t, a.String(), "hello")
	assert.Contains(t, a.String(), "component=test")
	assert.Empty(t, b.String())

	logger.Error("boom")
	assert.Contains(t, b.String(), "boom")
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("sink down")
}

func TestMultiHandlerKeepsGoingAfterFailure(t *testing.T) {
	var out bytes.Buffer
	multi := &multiHandler{handlers: []slog.Handler{
		failingHandler{slog.NewTextHandler(io.Discard, nil)},
		slog.NewTextHandler(&out, nil),
	}}

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "still here", 0)
	err := multi.Handle(context.Background(), r)
	assert.ErrorContains(t, err, "sink down")
	assert.Contains(t, out.String(), "still here")
}

func TestTracerProviderLogsSpans(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tp := NewTracerProvider(logger)
	defer tp.Shutdown(context.Background())

	_, span := tp.Tracer("test").Start(context.Background(), "ply.header")
	span.End()

	out := buf.String()
	assert.True(t, strings.Contains(out, "span=ply.header"), out)
	assert.Contains(t, out, "trace_id=")
}
