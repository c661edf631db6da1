package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleHandlers_SplitAtError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := slog.New(consoleHandlers(&stdout, &stderr, "text", slog.LevelInfo))

	logger.Debug("hidden")
	logger.Info("configured", "module", "CubbyFlowSharp")
	logger.Error("toolchain failed")

	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "module=CubbyFlowSharp")
	assert.NotContains(t, stdout.String(), "toolchain failed")
	assert.Contains(t, stderr.String(), "toolchain failed")
	assert.NotContains(t, stderr.String(), "configured")
}

func TestConsoleHandlers_TraceAndFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := slog.New(consoleHandlers(&stdout, &stderr, "json", LevelTrace)).With("run", 1)

	logger.Log(context.Background(), LevelTrace, "arg", "value", "-I")
	assert.Contains(t, stdout.String(), `"level":"TRACE"`)
	assert.Contains(t, stdout.String(), `"run":1`)
	assert.Zero(t, stderr.Len())
}

func TestBand(t *testing.T) {
	var buf bytes.Buffer
	b := Band{Min: slog.LevelWarn, Max: slog.LevelError, H: slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: LevelTrace})}
	ctx := context.Background()

	assert.False(t, b.Enabled(ctx, slog.LevelInfo))
	assert.True(t, b.Enabled(ctx, slog.LevelWarn))
	assert.False(t, b.Enabled(ctx, slog.LevelError))
	assert.True(t, Band{Min: slog.LevelError, Max: Unbounded, H: b.H}.Enabled(ctx, slog.LevelError+4))
}

func TestFanout_Enabled(t *testing.T) {
	ctx := context.Background()
	quiet := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError})
	loud := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug})

	assert.False(t, Fanout{quiet}.Enabled(ctx, slog.LevelInfo))
	assert.True(t, Fanout{quiet, loud}.Enabled(ctx, slog.LevelInfo))
	assert.False(t, Fanout{}.Enabled(ctx, slog.LevelError))
}

func TestParseLevel_Names(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, ParseLevel(" WARN "))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}
