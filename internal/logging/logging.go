// Package logging sets up structured logging and turns simulation events
// into log records.
//
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/db47h/gatesim"
	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// New returns a logger writing to w. format is either "text" (for humans,
// colored if w is a terminal) or "json".
//
func New(w io.Writer, level slog.Level, format string) (*slog.Logger, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
			NoColor:    !isTerminal(w),
		})), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), nil
	}
	return nil, errors.Errorf("unknown log format %q", format)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Observer returns a gatesim.Observer that logs events to l at the event's
// level.
//
func Observer(l *slog.Logger) gatesim.Observer {
	return gatesim.ObserverFunc(func(e *gatesim.Event) {
		ctx := context.Background()
		if !l.Enabled(ctx, e.Level) {
			return
		}
		attrs := []slog.Attr{slog.String("kind", e.Kind.String())}
		if e.Path != "" {
			attrs = append(attrs, slog.String("path", e.Path))
		}
		if e.Circuit >= 0 {
			attrs = append(attrs, slog.Int("circuit", int(e.Circuit)))
		}
		if e.Terminal != gatesim.NoTerminal {
			attrs = append(attrs, slog.Int("terminal", int(e.Terminal)))
		}
		if e.Peer != gatesim.NoTerminal {
			attrs = append(attrs, slog.Int("peer", int(e.Peer)))
		}
		if e.Kind == gatesim.ValueChanged {
			attrs = append(attrs, slog.String("old", e.Old.String()), slog.String("new", e.New.String()))
		}
		l.LogAttrs(ctx, e.Level, e.Msg, attrs...)
	})
}
