package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// PrettyHandler is a slog.Handler producing human-readable output with
// lipgloss-styled level badges. Color is dropped when w is not a terminal.
type PrettyHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Leveler
	attrs []slog.Attr
	group string

	info  lipgloss.Style
	warn  lipgloss.Style
	error lipgloss.Style
	faint lipgloss.Style
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	r := lipgloss.NewRenderer(w)

	return &PrettyHandler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
		info:  r.NewStyle().Foreground(lipgloss.Color("#64748B")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("#EAB308")),
		error: r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
		faint: r.NewStyle().Faint(true),
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var line string
	switch {
	case r.Level >= slog.LevelError:
		line = renderLines(h.error, "✗ "+r.Message)
	case r.Level >= slog.LevelWarn:
		line = renderLines(h.warn, "! "+r.Message)
	default:
		line = renderLines(h.info, r.Message)
	}

	attrParts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, attr := range h.attrs {
		attrParts = append(attrParts, formatAttr(h.group, attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, formatAttr(h.group, attr))
		return true
	})
	if len(attrParts) > 0 {
		line += " " + h.faint.Render(strings.Join(attrParts, " "))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line+"\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append(make([]slog.Attr, 0, len(h.attrs)+len(attrs)), h.attrs...), attrs...)
	return &clone
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.group = name
	return &clone
}

// renderLines styles each line separately so lipgloss does not pad them to a common width.
func renderLines(style lipgloss.Style, s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}

func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	return key + "=" + attr.Value.String()
}
