// Package logging sets up the minimap's slog logger: text records to the
// session log file (or stdout), bridged to OTel when a provider is configured,
// and tagged with the active body.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// instrumentation scope of records bridged to OTel, also the log file prefix
const scopeName = "csp-minimap"

// replaced in tests
var (
	osStdout io.Writer = os.Stdout
	osPipe             = os.Pipe
)

// SlogManager owns the minimap's logger and the OTel provider it feeds.
type SlogManager struct {
	logger      *slog.Logger
	logProvider *sdklog.LoggerProvider
}

func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

// parseLevel accepts the slog level names in any case. Anything else is info.
func parseLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// utcTime renders record times as RFC3339 in UTC.
func utcTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339))
	}
	return a
}

// Setup (re)builds the logger. Records go to w, or to stdout when w is nil,
// and additionally to OTel when provider is non-nil.
func (m *SlogManager) Setup(w io.Writer, level string, provider *sdklog.LoggerProvider) {
	if w == nil {
		w = osStdout
	}
	m.logProvider = provider

	var bridge slog.Handler
	if provider != nil {
		bridge = otelslog.NewHandler(scopeName, otelslog.WithLoggerProvider(provider))
	}

	text := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level), ReplaceAttr: utcTime})
	m.logger = slog.New(tee(text, bridge))
	m.logger.Info("minimap logging ready", "level", parseLevel(level).String(), "otel", provider != nil)
}

// Logger returns the configured logger, or slog.Default before Setup.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		return slog.Default()
	}
	return m.logger
}

// WithBody returns a logger that tags every record with the body reported by
// active at the time of logging. A nil active returns Logger unchanged.
func (m *SlogManager) WithBody(active BodyFunc) *slog.Logger {
	if active == nil {
		return m.Logger()
	}
	return slog.New(&bodyHandler{Handler: m.Logger().Handler(), body: active})
}

// Flush pushes pending OTel records to the exporter.
func (m *SlogManager) Flush(ctx context.Context) error {
	if m.logProvider == nil {
		return nil
	}
	return m.logProvider.ForceFlush(ctx)
}
