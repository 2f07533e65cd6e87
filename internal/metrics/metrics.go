// Package metrics exposes the simulation's Prometheus instrumentation.
// A nil *Collector is valid and records nothing, so callers never guard.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry *prometheus.Registry

	stepDuration prometheus.Histogram
	steps        prometheus.Counter

	ships       prometheus.Gauge
	projectiles prometheus.Gauge
	flotsam     prometheus.Gauge
	visuals     prometheus.Gauge

	spawns *prometheus.CounterVec
	events *prometheus.CounterVec
}

// New builds a collector on the given registerer. Pass nil to register on
// a private registry, which Handler then serves.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{}
	if reg == nil {
		c.registry = prometheus.NewRegistry()
		reg = c.registry
	}

	c.stepDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "farwind",
		Name:      "step_duration_seconds",
		Help:      "Wall time of one simulation step on the calculation goroutine.",
		Buckets:   prometheus.ExponentialBuckets(50e-6, 2, 12),
	})
	c.steps = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "farwind",
		Name:      "steps_total",
		Help:      "Simulation steps completed.",
	})
	c.ships = newGauge(reg, "entities_ships", "Live ships in the store.")
	c.projectiles = newGauge(reg, "entities_projectiles", "Live projectiles in the store.")
	c.flotsam = newGauge(reg, "entities_flotsam", "Live flotsam in the store.")
	c.visuals = newGauge(reg, "entities_visuals", "Live visual effects in the store.")
	c.spawns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "farwind",
		Name:      "spawns_total",
		Help:      "Arrivals created by the spawn scheduler.",
	}, []string{"kind"})
	c.events = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "farwind",
		Name:      "events_total",
		Help:      "Gameplay events emitted to the foreground.",
	}, []string{"kind"})

	reg.MustRegister(c.stepDuration, c.steps, c.spawns, c.events)
	return c
}

func newGauge(reg prometheus.Registerer, name, help string) prometheus.Gauge {
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "farwind",
		Name:      name,
		Help:      help,
	})
	reg.MustRegister(g)
	return g
}

// Handler serves the collector's private registry. Only valid when the
// collector was built with New(nil).
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) ObserveStep(d time.Duration) {
	if c == nil {
		return
	}
	c.stepDuration.Observe(d.Seconds())
	c.steps.Inc()
}

func (c *Collector) SetEntityCounts(ships, projectiles, flotsam, visuals int) {
	if c == nil {
		return
	}
	c.ships.Set(float64(ships))
	c.projectiles.Set(float64(projectiles))
	c.flotsam.Set(float64(flotsam))
	c.visuals.Set(float64(visuals))
}

// CountSpawn tallies one scheduler arrival: "fleet", "person", or "raid".
func (c *Collector) CountSpawn(kind string) {
	if c == nil {
		return
	}
	c.spawns.WithLabelValues(kind).Inc()
}

func (c *Collector) CountEvent(kind string) {
	if c == nil {
		return
	}
	c.events.WithLabelValues(kind).Inc()
}
