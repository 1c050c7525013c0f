package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/modpack/internal/ui/output"
	"go.trai.ch/modpack/internal/ui/style"
)

// PrettyHandler is a slog.Handler for terminal output.
//
// A record becomes a block of lines: the level icon, the message and its
// key=value attributes. Lines after the first are indented past the icon so
// multi-line messages such as error chains stay aligned under their text.
// Handlers derived through WithAttrs and WithGroup share one writer and never
// interleave their blocks.
type PrettyHandler struct {
	w        io.Writer
	mu       *sync.Mutex
	renderer *lipgloss.Renderer
	level    slog.Leveler
	prefix   string
	attrs    []string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
// A *slog.LevelVar passed in opts stays live, so the level can change after construction.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		w:        w,
		mu:       &sync.Mutex{},
		renderer: output.NewRenderer(w),
		level:    level,
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
	icon, st := h.levelStyle(r.Level)

	attrs := slices.Clone(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		attrs = appendAttr(attrs, h.prefix, a)
		return true
	})

	text := r.Message
	if len(attrs) > 0 {
		text += " " + strings.Join(attrs, " ")
	}

	var indent string
	if icon != "" {
		text = icon + " " + text
		indent = strings.Repeat(" ", lipgloss.Width(icon)+1)
	}

	var b strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 && line != "" {
			line = indent + line
		}
		b.WriteString(st.Render(line))
		b.WriteByte('\n')
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// levelStyle returns the icon and style of a level. Info carries no icon.
func (h *PrettyHandler) levelStyle(level slog.Level) (string, lipgloss.Style) {
	base := h.renderer.NewStyle()
	switch {
	case level >= slog.LevelError:
		return style.Cross, base.Foreground(style.Red)
	case level >= slog.LevelWarn:
		return style.Warning, base.Foreground(style.Yellow)
	case level >= slog.LevelInfo:
		return "", base
	default:
		return style.Dot, base.Foreground(style.Slate)
	}
}

// WithAttrs returns a new handler with the given attributes rendered up front.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = slices.Clip(h.attrs)
	for _, a := range attrs {
		h2.attrs = appendAttr(h2.attrs, h.prefix, a)
	}
	return &h2
}

// WithGroup returns a new handler whose attribute keys are qualified by name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

// appendAttr renders a as key=value onto dst. Group values are flattened into
// dotted keys and empty attributes are dropped.
func appendAttr(dst []string, prefix string, a slog.Attr) []string {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			dst = appendAttr(dst, prefix, ga)
		}
		return dst
	}

	return append(dst, prefix+a.Key+"="+quoteValue(a.Value.String()))
}

// quoteValue quotes values that would not read back as a single token, such
// as paths containing spaces.
func quoteValue(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
