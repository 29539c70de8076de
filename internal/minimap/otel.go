package minimap

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/cosmoscout/csp-minimap/internal/minimap"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type metrics struct {
	added   metric.Int64Counter
	skipped metric.Int64Counter
	loads   metric.Int64Counter
}

func newMetrics() (*metrics, error) {
	m := meter()
	var (
		out metrics
		err error
	)

	out.added, err = m.Int64Counter(
		"minimap.bookmarks.added",
		metric.WithDescription("Bookmarks drawn on the minimap"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating added counter: %w", err)
	}

	out.skipped, err = m.Int64Counter(
		"minimap.bookmarks.skipped",
		metric.WithDescription("Bookmarks not drawn, by reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating skipped counter: %w", err)
	}

	out.loads, err = m.Int64Counter(
		"minimap.settings.loads",
		metric.WithDescription("Settings loads, by result"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating loads counter: %w", err)
	}

	return &out, nil
}
