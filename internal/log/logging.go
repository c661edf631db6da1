// Package log configures the tool's slog.Logger and records raw output of
// external tools.
//
// Without a log file, records below error go to stdout and errors go to
// stderr. With a log file, the console only gets stderr and the file gets
// every enabled record.
package log

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

// LevelTrace is below slog.LevelDebug and carries per-argument toolchain detail.
const LevelTrace slog.Level = slog.LevelDebug - 4

var levels = map[string]slog.Level{
	"trace": LevelTrace,
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel maps a level name to its slog level. Unknown names are info.
func ParseLevel(s string) slog.Level {
	if l, ok := levels[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l
	}
	return slog.LevelInfo
}

// Fanout hands each record to every handler that accepts its level.
type Fanout []slog.Handler

func (f Fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f Fanout) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f Fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f Fanout) WithGroup(name string) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f Fanout) each(fn func(slog.Handler) slog.Handler) Fanout {
	out := make(Fanout, len(f))
	for i, h := range f {
		out[i] = fn(h)
	}
	return out
}

// Unbounded is a Band ceiling no level reaches.
const Unbounded = slog.Level(math.MaxInt)

// Band passes records with Min <= level < Max to H.
type Band struct {
	Min, Max slog.Level
	H        slog.Handler
}

func (b Band) admits(l slog.Level) bool {
	return l >= b.Min && l < b.Max
}

func (b Band) Enabled(ctx context.Context, level slog.Level) bool {
	return b.admits(level) && b.H.Enabled(ctx, level)
}

func (b Band) Handle(ctx context.Context, r slog.Record) error {
	if !b.admits(r.Level) {
		return nil
	}
	return b.H.Handle(ctx, r)
}

func (b Band) WithAttrs(attrs []slog.Attr) slog.Handler {
	return Band{Min: b.Min, Max: b.Max, H: b.H.WithAttrs(attrs)}
}

func (b Band) WithGroup(name string) slog.Handler {
	return Band{Min: b.Min, Max: b.Max, H: b.H.WithGroup(name)}
}

// renameTrace prints LevelTrace as TRACE instead of DEBUG-4.
func renameTrace(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if l, ok := a.Value.Any().(slog.Level); ok && l == LevelTrace {
			a.Value = slog.StringValue("TRACE")
		}
	}
	return a
}

func handlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{Level: level, ReplaceAttr: renameTrace}
}

// newHandler picks the console encoding. "auto" uses text on a terminal and
// JSON when output is redirected (CI logs).
func newHandler(w io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	json := format == "json"
	if format == "auto" || format == "" {
		f, ok := w.(*os.File)
		json = ok && !term.IsTerminal(int(f.Fd()))
	}
	if json {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// consoleHandlers splits output between stdout and stderr at slog.LevelError.
func consoleHandlers(stdout, stderr io.Writer, format string, level slog.Level) Fanout {
	opts := handlerOptions(level)
	return Fanout{
		Band{Min: level, Max: slog.LevelError, H: newHandler(stdout, format, opts)},
		Band{Min: max(level, slog.LevelError), Max: Unbounded, H: newHandler(stderr, format, opts)},
	}
}

// SetupLogger builds the process logger. The returned closers own the log
// file, if any.
func SetupLogger(logLevel, logFile, format string) (*slog.Logger, []io.Closer, error) {
	level := ParseLevel(logLevel)
	if logFile == "" {
		return slog.New(consoleHandlers(os.Stdout, os.Stderr, format, level)), nil, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	h := Fanout{
		newHandler(os.Stderr, format, handlerOptions(level)),
		slog.NewTextHandler(f, handlerOptions(level)),
	}
	return slog.New(h), []io.Closer{f}, nil
}
