package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// LevelFromFlags returns the level selected by the verbosity flags. They are evaluated in
// the order vv (debug), v (info), q (error); with none set the level is warn.
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Handler is a line-oriented slog handler with a colored level prefix.
// Colors are dropped automatically when the output is not a terminal.
type Handler struct {
	mu     *sync.Mutex
	w      io.Writer
	out    *termenv.Output
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string // dotted group path for subsequent attrs
	clock  func() time.Time
}

// Option configures a Handler
type Option func(*Handler)

// WithProfile forces a termenv color profile, e.g. termenv.Ascii for plain output
func WithProfile(p termenv.Profile) Option {
	return func(h *Handler) {
		h.out = termenv.NewOutput(h.w, termenv.WithProfile(p))
	}
}

// WithClock replaces the time source used for the timestamp column
func WithClock(clock func() time.Time) Option {
	return func(h *Handler) { h.clock = clock }
}

// NewHandler creates a handler writing to w at the given minimum level
func NewHandler(w io.Writer, level slog.Leveler, opts ...Option) *Handler {
	h := &Handler{
		mu:    &sync.Mutex{},
		w:     w,
		out:   termenv.NewOutput(w),
		level: level,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Setup installs a stderr handler at the level chosen by the verbosity flags as the default logger
func Setup(vv, v, q bool) *slog.Logger {
	logger := slog.New(NewHandler(os.Stderr, LevelFromFlags(vv, v, q)))
	slog.SetDefault(logger)
	return logger
}

// Enabled reports whether records at level are written
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) levelColor(level slog.Level) termenv.Color {
	switch {
	case level >= slog.LevelError:
		return h.out.Color("9")
	case level >= slog.LevelWarn:
		return h.out.Color("11")
	case level >= slog.LevelInfo:
		return h.out.Color("12")
	default:
		return h.out.Color("8")
	}
}

// Handle formats one record as "time LEVEL message key=value ..."
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	ts := r.Time
	if ts.IsZero() {
		ts = h.clock()
	}
	sb.WriteString(ts.Format("15:04:05.000"))
	sb.WriteByte(' ')
	sb.WriteString(h.out.String(fmt.Sprintf("%-5s", r.Level.String())).Foreground(h.levelColor(r.Level)).Bold().String())
	sb.WriteByte(' ')
	sb.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&sb, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, h.prefix, a)
		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

func writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		group := a.Key
		if prefix != "" && group != "" {
			group = prefix + "." + group
		} else if group == "" {
			group = prefix
		}
		for _, ga := range a.Value.Group() {
			writeAttr(sb, group, ga)
		}
		return
	}

	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	sb.WriteByte(' ')
	sb.WriteString(key)
	sb.WriteByte('=')
	sb.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindDuration:
		s = v.Duration().Round(time.Millisecond).String()
	case slog.KindFloat64:
		s = strconv.FormatFloat(v.Float64(), 'g', 6, 64)
	default:
		s = v.String()
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

// WithAttrs returns a handler that appends attrs to every record
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, a := range attrs {
		if h.prefix != "" {
			a.Key = h.prefix + "." + a.Key
		}
		next.attrs = append(next.attrs, a)
	}
	return &next
}

// WithGroup returns a handler that qualifies subsequent attr keys with name
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	if next.prefix == "" {
		next.prefix = name
	} else {
		next.prefix += "." + name
	}
	return &next
}
