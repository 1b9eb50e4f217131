// Package observe exports reactive runtime and render pass activity as
// Prometheus metrics and OpenTelemetry traces.
package observe

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/vcore/pkg/reactive"
	"github.com/vango-dev/vcore/pkg/vdom"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vcore").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for effect and render durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures Metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vcore",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics records runtime and render activity. It implements both
// reactive.Observer and view.Observer, so one value can be handed to
// reactive.WithObserver and view.WithObserver.
type Metrics struct {
	config MetricsConfig

	effectRuns     prometheus.Counter
	effectDuration prometheus.Histogram
	batchFlushes   prometheus.Counter
	batchSize      prometheus.Histogram
	reentrancy     prometheus.Counter
	renderPasses   *prometheus.CounterVec
	renderDuration prometheus.Histogram
	patches        *prometheus.CounterVec
	renderErrors   prometheus.Counter
}

// NewMetrics creates and registers the collectors.
// Registering twice on the same registry panics, as with promauto.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Buckets == nil {
		config.Buckets = prometheus.DefBuckets
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		config: config,

		effectRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Total number of effect evaluations",
			ConstLabels: config.ConstLabels,
		}),

		effectDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_duration_seconds",
			Help:        "Effect evaluation duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		batchFlushes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "batch_flushes_total",
			Help:        "Total number of outermost batch flushes",
			ConstLabels: config.ConstLabels,
		}),

		batchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "batch_flush_effects",
			Help:        "Number of effects run per batch flush",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		}),

		reentrancy: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "reentrancy_total",
			Help:        "Total number of effects scheduled while already running",
			ConstLabels: config.ConstLabels,
		}),

		renderPasses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_passes_total",
			Help:        "Total number of successful render passes",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Render pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		patches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_total",
			Help:        "Total number of patches produced, by operation",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		renderErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_errors_total",
			Help:        "Total number of render passes rejected by the renderer",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Config returns the configuration the collectors were built with.
func (m *Metrics) Config() MetricsConfig {
	return m.config
}

// EffectRan implements reactive.Observer.
func (m *Metrics) EffectRan(_ reactive.ID, d time.Duration) {
	m.effectRuns.Inc()
	m.effectDuration.Observe(d.Seconds())
}

// BatchFlushed implements reactive.Observer.
func (m *Metrics) BatchFlushed(effects int) {
	m.batchFlushes.Inc()
	m.batchSize.Observe(float64(effects))
}

// Reentrancy implements reactive.Observer.
func (m *Metrics) Reentrancy(reactive.ID) {
	m.reentrancy.Inc()
}

// RenderPass implements view.Observer.
func (m *Metrics) RenderPass(mount bool, patches []vdom.Patch, d time.Duration) {
	kind := "patch"
	if mount {
		kind = "mount"
	}
	m.renderPasses.WithLabelValues(kind).Inc()
	m.renderDuration.Observe(d.Seconds())
	for _, p := range patches {
		m.patches.WithLabelValues(p.Op.String()).Inc()
	}
}

// RenderError implements view.Observer.
func (m *Metrics) RenderError(error) {
	m.renderErrors.Inc()
}

// RegisterRuntime exposes live signal and effect counts of rt as gauges.
// The gauges read rt when collected, so the registry must be gathered on the
// runtime's goroutine.
func RegisterRuntime(rt *reactive.Runtime, opts ...MetricsOption) error {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	gauges := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "signals",
			Help:        "Number of live signals",
			ConstLabels: config.ConstLabels,
		}, func() float64 { return float64(rt.Stats().Signals) }),

		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effects",
			Help:        "Number of live effects",
			ConstLabels: config.ConstLabels,
		}, func() float64 { return float64(rt.Stats().Effects) }),
	}

	var errs []error
	for _, g := range gauges {
		if err := config.Registry.Register(g); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
