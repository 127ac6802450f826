package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the risk engine.
type Metrics struct {
	GenerationRuns     prometheus.Counter
	GenerationFailures prometheus.Counter
	PredictionsCreated prometheus.Counter
	AlertsCreated      prometheus.Counter
	GenerationDuration prometheus.Histogram
	WeatherRowsIngested prometheus.Counter
	WeatherRowErrors    prometheus.Counter
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.GenerationRuns,
		m.GenerationFailures,
		m.PredictionsCreated,
		m.AlertsCreated,
		m.GenerationDuration,
		m.WeatherRowsIngested,
		m.WeatherRowErrors,
	)
	return m
}

// NewMetricsForTesting returns unregistered metrics so tests avoid
// "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		GenerationRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agrorisk",
			Name:      "generation_runs_total",
			Help:      "Total prediction generation runs.",
		}),
		GenerationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agrorisk",
			Name:      "generation_failures_total",
			Help:      "Generation runs that returned an error.",
		}),
		PredictionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agrorisk",
			Name:      "predictions_created_total",
			Help:      "Newly inserted risk prediction rows.",
		}),
		AlertsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agrorisk",
			Name:      "alerts_created_total",
			Help:      "Alerts created from high-risk predictions.",
		}),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "agrorisk",
			Name:      "generation_duration_seconds",
			Help:      "Duration of a full crop x pest generation run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		WeatherRowsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agrorisk",
			Name:      "weather_rows_ingested_total",
			Help:      "Weather CSV rows imported successfully.",
		}),
		WeatherRowErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agrorisk",
			Name:      "weather_row_errors_total",
			Help:      "Weather CSV rows rejected during import.",
		}),
	}
}
