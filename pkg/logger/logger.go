package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type contextKey string

const runIDKey contextKey = "run_id"

// Handler writes one colored line per record. Output is meant for stderr so
// stdout stays free for the command result.
type Handler struct {
	attrs  []slog.Attr
	groups []string

	opts Options

	mu  *sync.Mutex
	out io.Writer
}

type Options struct {
	// Level reports the minimum level to log. If nil, slog.LevelInfo is used.
	Level slog.Leveler

	TimeFormat string

	// AddSource prints file:line of the log call.
	AddSource bool

	NoColor bool
}

var DefaultOptions = &Options{
	Level:      slog.LevelInfo,
	TimeFormat: time.DateTime,
	AddSource:  true,
}

// NewHandler creates a new Handler. If opts is nil, uses [DefaultOptions].
func NewHandler(out io.Writer, opts *Options) *Handler {
	h := &Handler{out: out, mu: &sync.Mutex{}}
	if opts == nil {
		h.opts = *DefaultOptions
	} else {
		h.opts = *opts
	}
	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}
	return h
}

func (h *Handler) clone() *Handler {
	return &Handler{
		attrs:  h.attrs,
		groups: h.groups,
		opts:   h.opts,
		mu:     h.mu,
		out:    h.out,
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	bf := bufPool.Get().(*bytes.Buffer)
	bf.Reset()
	defer bufPool.Put(bf)

	if !r.Time.IsZero() && h.opts.TimeFormat != "" {
		h.write(bf, color.New(color.Faint), r.Time.Format(h.opts.TimeFormat))
		bf.WriteByte(' ')
	}

	if runID, ok := RunIDFromContext(ctx); ok {
		h.write(bf, color.New(color.FgMagenta), runID)
		bf.WriteByte(' ')
	}

	h.write(bf, levelColor(r.Level), fmt.Sprintf("%-5s", r.Level.String()))
	bf.WriteByte(' ')

	if h.opts.AddSource && r.PC != 0 {
		f, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		fmt.Fprintf(bf, "%s:%d ", filepath.Base(f.File), f.Line)
	}

	h.write(bf, color.New(color.FgHiWhite), "| ")
	bf.WriteString(r.Message)

	writeAttr := func(a slog.Attr) {
		bf.WriteByte(' ')
		c := color.New(color.FgCyan)
		if strings.Contains(a.Key, "err") {
			c = color.New(color.FgRed)
		}
		h.write(bf, c, a.Key+"=")
		bf.WriteString(a.Value.String())
	}

	// h.attrs already carry the group prefix they were added under.
	for _, a := range h.attrs {
		writeAttr(a)
	}
	prefix := h.groupPrefix()
	r.Attrs(func(a slog.Attr) bool {
		a.Key = prefix + a.Key
		writeAttr(a)
		return true
	})

	bf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(bf.Bytes())
	return err
}

func (h *Handler) write(bf *bytes.Buffer, c *color.Color, s string) {
	if h.opts.NoColor {
		bf.WriteString(s)
		return
	}
	bf.WriteString(c.Sprint(s))
}

func levelColor(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return color.New(color.BgRed, color.FgHiWhite)
	case level >= slog.LevelWarn:
		return color.New(color.BgYellow, color.FgHiWhite)
	case level >= slog.LevelInfo:
		return color.New(color.BgGreen, color.FgHiWhite)
	default:
		return color.New(color.BgCyan, color.FgHiWhite)
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.groups = append(h2.groups[:len(h2.groups):len(h2.groups)], name)
	return h2
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := h.clone()
	h2.attrs = h2.attrs[:len(h2.attrs):len(h2.attrs)]
	prefix := h.groupPrefix()
	for _, a := range attrs {
		a.Key = prefix + a.Key
		h2.attrs = append(h2.attrs, a)
	}
	return h2
}

func (h *Handler) groupPrefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}

var bufPool = sync.Pool{
	New: func() any {
		return &bytes.Buffer{}
	},
}

func Err(err error) slog.Attr {
	return slog.Any("error", err)
}

func ContextWithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

func RunIDFromContext(ctx context.Context) (string, bool) {
	runID, ok := ctx.Value(runIDKey).(string)
	return runID, ok
}
