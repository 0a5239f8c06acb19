// Package log provides logging utilities.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"braces.dev/errtrace"
	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/urlobject"
)

var redact = &urlobject.RenderOptions{HidePassword: true}

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(u urlobject.URL) slog.Value {
		return slog.StringValue(u.Render(redact))
	}),
	slogformatter.FormatByType(func(u *urlobject.URL) slog.Value {
		if u == nil {
			return slog.StringValue("<nil>")
		}
		return slog.StringValue(u.Render(redact))
	}),
	slogformatter.FormatByType(func(n urlobject.Netloc) slog.Value {
		return slog.StringValue(n.Render(redact))
	}),
	slogformatter.FormatByType(func(ui urlobject.UserInfo) slog.Value {
		if _, ok := ui.Password(); ok {
			return slog.StringValue(ui.Username() + ":xxxxx")
		}
		return slog.StringValue(ui.Username())
	}),
)

// New creates a logger writing to w.
// Dev selects the colored multi-line developer format, otherwise a compact console format is used.
// URLs, authorities and user-info logged as attribute values are rendered with the password masked.
func New(w io.Writer, level slog.Leveler, dev bool) *slog.Logger {
	if dev {
		return slog.New(newHandler(
			devslog.NewHandler(w, &devslog.Options{
				HandlerOptions: &slog.HandlerOptions{
					AddSource: true,
					Level:     level,
				},
				SortKeys:   true,
				TimeFormat: time.RFC3339Nano,
			}),
		))
	}
	return slog.New(newHandler(
		console.NewHandler(w, &console.HandlerOptions{
			AddSource:  true,
			Level:      level,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}

// Def is a default logger.
var Def = New(os.Stderr, slog.LevelInfo, false)

// Dev is a developer logger.
var Dev = New(os.Stderr, slog.LevelDebug, true)

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

// ParseLevel parses a level name like "debug" or "WARN".
// Empty name means [slog.LevelInfo].
func ParseLevel(name string) (slog.Level, error) {
	var lvl slog.Level
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return 0, errtrace.Wrap(fmt.Errorf("parse log level %q: %w", name, err))
	}
	return lvl, nil
}

type fmtValue struct {
	v        any
	goSyntax bool
}

func (v fmtValue) LogValue() slog.Value {
	if v.goSyntax {
		return slog.StringValue(fmt.Sprintf("%#v", v.v))
	}
	return slog.StringValue(fmt.Sprintf("%+v", v.v))
}

// FmtValue returns a value logger that formats values using '%+v' or '%#v' syntax.
func FmtValue(v any, goSyntax bool) slog.LogValuer { return fmtValue{v, goSyntax} }
