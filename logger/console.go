package logger

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Console wraps an slog.Logger with glyph-prefixed convenience methods
// and progress widgets for interactive batch runs.
type Console struct {
	Logger    *slog.Logger
	Colorized bool
	out       *Options
}

func NewConsole(opts *Options) *Console {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Console{
		Logger:    NewLogger(opts),
		Colorized: opts.Colors,
		out:       opts,
	}
}

func (c *Console) Success(format string, args ...any) {
	msg := "✓ " + fmt.Sprintf(format, args...)
	if c.Colorized {
		msg = Green + Bold + msg + Reset
	}
	c.Logger.Info(msg)
}

func (c *Console) Info(format string, args ...any) {
	msg := "ℹ " + fmt.Sprintf(format, args...)
	if c.Colorized {
		msg = Blue + Bold + msg + Reset
	}
	c.Logger.Info(msg)
}

func (c *Console) Log(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if c.Colorized {
		msg = White + msg + Reset
	}
	c.Logger.Info(msg)
}

func (c *Console) Warn(format string, args ...any) {
	msg := "⚠ " + fmt.Sprintf(format, args...)
	if c.Colorized {
		msg = Yellow + Bold + msg + Reset
	}
	c.Logger.Warn(msg)
}

func (c *Console) Error(format string, args ...any) {
	msg := "✖ " + fmt.Sprintf(format, args...)
	if c.Colorized {
		msg = Red + Bold + msg + Reset
	}
	c.Logger.Error(msg)
}

func (c *Console) StartTimer(name string) *Timer {
	return &Timer{
		Name:      name,
		StartTime: time.Now(),
		Console:   c,
	}
}

// StartSpinner shows an animated spinner until Stop is called. In
// non-interactive output it degrades to a single log line.
func (c *Console) StartSpinner(message string) *Spinner {
	s := &Spinner{
		Message:  message,
		Frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		Console:  c,
		Done:     make(chan struct{}),
		animated: c.interactive(),
	}
	s.Start()
	return s
}

func (c *Console) NewProgressBar(total int64, label string) *ProgressBar {
	return NewProgressBar(total, label, c.interactive())
}

func (c *Console) NewTable(headers ...string) *Table {
	return NewTable(headers)
}

// Box renders a titled box around content, one line per input line.
func (c *Console) Box(title, content string) {
	lines := strings.Split(content, "\n")
	width := len(title)
	for _, line := range lines {
		if len(line) > width {
			width = len(line)
		}
	}
	width += 4

	fmt.Println("┌─" + title + "─" + strings.Repeat("─", width-len(title)-2) + "┐")
	for _, line := range lines {
		fmt.Println("│ " + line + strings.Repeat(" ", width-len(line)) + " │")
	}
	fmt.Println("└" + strings.Repeat("─", width+2) + "┘")
}

// interactive reports whether carriage-return animations make sense:
// colorized console output on a terminal, never JSON.
func (c *Console) interactive() bool {
	return c.Colorized && !c.out.JSON
}
