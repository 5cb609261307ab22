package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
	White  = "\033[37m"
)

// Options controls console output.
type Options struct {
	Output     io.Writer
	TimeFormat string
	Level      slog.Level
	JSON       bool
	Colors     bool
}

// DefaultOptions returns console-format options at info level with
// colors enabled when stdout is a terminal.
func DefaultOptions() *Options {
	return &Options{
		Output:     os.Stdout,
		TimeFormat: "15:04:05",
		Level:      slog.LevelInfo,
		Colors:     stdoutIsTerminal(),
	}
}

// FromConfig maps the logging section of the config file onto Options.
func FromConfig(format, level, colors string) *Options {
	opts := DefaultOptions()

	opts.JSON = format == "json"

	switch level {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	switch colors {
	case "always":
		opts.Colors = true
	case "never":
		opts.Colors = false
	default:
		opts.Colors = stdoutIsTerminal()
	}
	if opts.JSON {
		opts.Colors = false
	}

	return opts
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type handler struct {
	opts  *Options
	mu    sync.Mutex
	attrs []slog.Attr
}

func newHandler(opts *Options) *handler {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &handler{opts: opts}
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := &handler{opts: h.opts}
	h2.attrs = append(append(h2.attrs, h.attrs...), attrs...)
	return h2
}

func (h *handler) WithGroup(string) slog.Handler {
	return h
}

func (h *handler) Handle(_ context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.opts.JSON {
		return h.writeJSON(record)
	}
	return h.writeText(record)
}

func (h *handler) writeJSON(record slog.Record) error {
	entry := map[string]any{
		"time":  record.Time.Format(h.opts.TimeFormat),
		"level": record.Level.String(),
		"msg":   record.Message,
	}
	for _, a := range h.attrs {
		entry[a.Key] = a.Value.Any()
	}
	record.Attrs(func(a slog.Attr) bool {
		entry[a.Key] = a.Value.Any()
		return true
	})

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(h.opts.Output, string(data))
	return err
}

func (h *handler) writeText(record slog.Record) error {
	var b strings.Builder

	if h.opts.Colors {
		b.WriteString(Blue)
	}
	b.WriteString(record.Time.Format(h.opts.TimeFormat))
	if h.opts.Colors {
		b.WriteString(Reset)
	}
	b.WriteString(" ")

	if h.opts.Colors {
		b.WriteString(levelColor(record.Level))
		b.WriteString(Bold)
	}
	fmt.Fprintf(&b, "%-5s", strings.ToUpper(record.Level.String()))
	if h.opts.Colors {
		b.WriteString(Reset)
	}
	b.WriteString(" ")

	b.WriteString(record.Message)

	for _, a := range h.attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value.Any())
	}
	record.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value.Any())
		return true
	})

	_, err := fmt.Fprintln(h.opts.Output, b.String())
	return err
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return Red
	case level >= slog.LevelWarn:
		return Yellow
	case level >= slog.LevelInfo:
		return Green
	default:
		return Cyan
	}
}

// NewLogger builds an slog.Logger backed by the console handler.
func NewLogger(opts *Options) *slog.Logger {
	return slog.New(newHandler(opts))
}
