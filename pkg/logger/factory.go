package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Format selects the handler encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

type settings struct {
	level      slog.Level
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

// Option configures logger construction.
type Option func(*settings)

// WithLevel sets the minimum level records must meet to be emitted.
func WithLevel(l slog.Level) Option {
	return func(s *settings) { s.level = l }
}

// WithFormat sets the handler encoding. An unknown format panics so a
// misconfigured deployment fails at startup.
func WithFormat(f Format) Option {
	return func(s *settings) {
		if f != FormatJSON && f != FormatText {
			panic(fmt.Errorf("unknown log format %q", f))
		}
		s.format = f
	}
}

// WithOutput redirects log output. Nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		if w != nil {
			s.output = w
		}
	}
}

// WithAttr attaches static attributes to every record, e.g. the service
// name.
func WithAttr(attrs ...slog.Attr) Option {
	return func(s *settings) {
		s.attrs = append(s.attrs, attrs...)
	}
}

// WithContextExtractors registers extractors that pull per-record
// attributes out of the logging context. Nil extractors are ignored.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(s *settings) {
		for _, ex := range extractors {
			if ex != nil {
				s.extractors = append(s.extractors, ex)
			}
		}
	}
}

// WithContextValue registers an extractor for a single context value, e.g.
// a request id placed in the context by transport middleware.
func WithContextValue(name string, key any) Option {
	return func(s *settings) {
		if name == "" || key == nil {
			return
		}
		s.extractors = append(s.extractors, func(ctx context.Context) (slog.Attr, bool) {
			if v := ctx.Value(key); v != nil {
				return slog.Any(name, v), true
			}
			return slog.Attr{}, false
		})
	}
}

// ForEnv applies conventional defaults for a named service in an
// environment: text at debug level for "development", JSON at info level
// otherwise. Explicit options given after ForEnv still override it.
func ForEnv(service, env string) Option {
	return func(s *settings) {
		if env == "development" {
			s.level = slog.LevelDebug
			s.format = FormatText
		} else {
			s.level = slog.LevelInfo
			s.format = FormatJSON
		}
		if service != "" {
			s.attrs = append(s.attrs, slog.String("service", service))
		}
		s.attrs = append(s.attrs, slog.String("env", env))
	}
}

// New builds a slog.Logger. Defaults are JSON at info level on stdout.
func New(opts ...Option) *slog.Logger {
	s := &settings{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}

	var handler slog.Handler
	switch s.format {
	case FormatText:
		handler = slog.NewTextHandler(s.output, &slog.HandlerOptions{Level: s.level})
	default:
		handler = slog.NewJSONHandler(s.output, &slog.HandlerOptions{Level: s.level})
	}

	if len(s.attrs) > 0 {
		handler = handler.WithAttrs(s.attrs)
	}
	if len(s.extractors) > 0 {
		handler = &contextHandler{next: handler, extractors: s.extractors}
	}

	return slog.New(handler)
}

// SetAsDefault installs the logger as the process-wide slog default.
func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}
