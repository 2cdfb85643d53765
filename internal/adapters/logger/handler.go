package logger

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/softmesh/internal/ui/output"
	"go.trai.ch/softmesh/internal/ui/style"
)

// levelLook is the icon and color of records at or above a level.
type levelLook struct {
	min   slog.Level
	icon  string
	color lipgloss.Color
}

// looks is ordered from the most to the least severe level.
var looks = []levelLook{
	{min: slog.LevelError, icon: style.Cross, color: style.Red},
	{min: slog.LevelWarn, icon: style.Warning, color: style.Yellow},
}

func lookOf(level slog.Level) levelLook {
	for _, l := range looks {
		if level >= l.min {
			return l
		}
	}
	return levelLook{color: style.Muted}
}

// PrettyHandler is a slog.Handler writing one colored line per record:
// an optional level icon, the message, then key=value attributes.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler

	// attrs holds the attributes bound by WithAttrs, already rendered.
	attrs string
	// prefix is prepended to the keys of attributes added after WithGroup.
	prefix string
}

// NewPrettyHandler creates a new PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	h := &PrettyHandler{out: output.New(w), level: slog.LevelInfo}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	look := lookOf(r.Level)

	var b strings.Builder
	if look.icon != "" {
		b.WriteString(look.icon)
		b.WriteByte(' ')
	}
	b.WriteString(r.Message)
	b.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, h.prefix, a)
		return true
	})

	line := h.out.String(b.String()).Foreground(termenv.RGBColor(string(look.color)))
	_, err := io.WriteString(h.out, line.String()+"\n")
	return err
}

// WithAttrs returns a handler that renders attrs on every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		appendAttr(&b, h.prefix, a)
	}
	c := *h
	c.attrs = b.String()
	return &c
}

// WithGroup returns a handler qualifying later attribute keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.prefix = h.prefix + name + "."
	return &c
}

// appendAttr renders a as " key=value". Group values are flattened with dotted keys
// and empty attributes are dropped.
func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			appendAttr(b, prefix, ga)
		}
		return
	}

	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(quoteValue(a.Value.String()))
}

// quoteValue quotes values that would not read back as a single token.
func quoteValue(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
