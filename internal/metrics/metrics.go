// Package metrics exports tooltip and HTTP activity to Prometheus.
//
// A Collector implements both observability hook interfaces. Register it once
// at startup and serve its registry on /metrics:
//
//	reg := prometheus.NewRegistry()
//	c := metrics.New(metrics.WithRegistry(reg))
//	c.Install()
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/tooltipper/pkg/observability"
)

// Config configures a Collector.
type Config struct {
	// Namespace is the metrics namespace (default: "tooltipper").
	Namespace string

	// ConstLabels are added to every metric.
	ConstLabels prometheus.Labels

	// Buckets are the request duration histogram buckets.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry receives the metrics.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures a Collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Collector records hook events as Prometheus metrics.
type Collector struct {
	binds      *prometheus.CounterVec
	triggers   *prometheus.GaugeVec
	opens      *prometheus.CounterVec
	closes     *prometheus.CounterVec
	placements *prometheus.CounterVec

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge
}

var (
	_ observability.TooltipHooks = (*Collector)(nil)
	_ observability.HTTPHooks    = (*Collector)(nil)
)

// New creates a Collector and registers its metrics.
//
// Metrics:
//   - tooltipper_tooltip_binds_total{tooltip}
//   - tooltipper_tooltip_triggers{tooltip}: triggers bound at the last bind
//   - tooltipper_tooltip_opens_total{tooltip}
//   - tooltipper_tooltip_closes_total{tooltip}
//   - tooltipper_tooltip_placements_total{tooltip,clamp}
//   - tooltipper_http_requests_total{method,route,status}
//   - tooltipper_http_request_duration_seconds{method,route}
//   - tooltipper_http_requests_in_flight
func New(opts ...Option) *Collector {
	cfg := Config{
		Namespace: "tooltipper",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.Registry)

	return &Collector{
		binds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "tooltip",
			Name:        "binds_total",
			Help:        "Tooltip controllers bound.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"tooltip"}),

		triggers: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "tooltip",
			Name:        "triggers",
			Help:        "Triggers bound to a tooltip at its most recent bind.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"tooltip"}),

		opens: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "tooltip",
			Name:        "opens_total",
			Help:        "Tooltip opens, including re-opens of an open tooltip.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"tooltip"}),

		closes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "tooltip",
			Name:        "closes_total",
			Help:        "Tooltip closes.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"tooltip"}),

		placements: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "tooltip",
			Name:        "placements_total",
			Help:        "Placements applied, by which viewport clamps fired.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"tooltip", "clamp"}),

		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "HTTP requests served.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"method", "route", "status"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request duration in seconds.",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}, []string{"method", "route"}),

		inflight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   "http",
			Name:        "requests_in_flight",
			Help:        "HTTP requests currently being served.",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

// Install registers c as the global tooltip and HTTP hooks.
func (c *Collector) Install() {
	observability.SetTooltipHooks(c)
	observability.SetHTTPHooks(c)
}

func (c *Collector) OnBind(name string, triggers int) {
	c.binds.WithLabelValues(name).Inc()
	c.triggers.WithLabelValues(name).Set(float64(triggers))
}

func (c *Collector) OnOpen(name, _ string) {
	c.opens.WithLabelValues(name).Inc()
}

func (c *Collector) OnClose(name string) {
	c.closes.WithLabelValues(name).Inc()
}

func (c *Collector) OnPlace(name, clamp string) {
	c.placements.WithLabelValues(name, clamp).Inc()
}

func (c *Collector) OnRequest(context.Context, string, string) {
	c.inflight.Inc()
}

func (c *Collector) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	c.inflight.Dec()
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(method, route).Observe(d.Seconds())
}
