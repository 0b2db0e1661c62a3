package metrics

import (
	"context"
	"sync"

	"github.com/bool64/stats"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ stats.Tracker = (*Registry)(nil)

// Registry is a stats.Tracker backed by a Prometheus registry. Add feeds
// counters and Set feeds gauges; vectors are created on first use with the
// label names of that call; later calls with other label names are dropped.
type Registry struct {
	reg *prometheus.Registry

	mu       sync.Mutex
	counters map[string]*prometheus.CounterVec
	gauges   map[string]*prometheus.GaugeVec
}

// NewRegistry creates a registry with the Go runtime and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return &Registry{
		reg:      reg,
		counters: make(map[string]*prometheus.CounterVec),
		gauges:   make(map[string]*prometheus.GaugeVec),
	}
}

// Add increments the counter identified by name and labels.
// Negative deltas are dropped, counters only go up.
func (r *Registry) Add(_ context.Context, name string, delta float64, labelsAndValues ...string) {
	if delta < 0 {
		return
	}
	keys, labels := splitLabels(labelsAndValues)

	r.mu.Lock()
	vec, ok := r.counters[name]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: name}, keys)
		if err := r.reg.Register(vec); err != nil {
			r.mu.Unlock()
			return
		}
		r.counters[name] = vec
	}
	r.mu.Unlock()

	if c, err := vec.GetMetricWith(labels); err == nil {
		c.Add(delta)
	}
}

// Set overwrites the gauge identified by name and labels.
func (r *Registry) Set(_ context.Context, name string, absolute float64, labelsAndValues ...string) {
	keys, labels := splitLabels(labelsAndValues)

	r.mu.Lock()
	vec, ok := r.gauges[name]
	if !ok {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: name}, keys)
		if err := r.reg.Register(vec); err != nil {
			r.mu.Unlock()
			return
		}
		r.gauges[name] = vec
	}
	r.mu.Unlock()

	if g, err := vec.GetMetricWith(labels); err == nil {
		g.Set(absolute)
	}
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}))
}

// splitLabels separates alternating label names and values. A trailing name without value is dropped.
func splitLabels(labelsAndValues []string) ([]string, prometheus.Labels) {
	keys := make([]string, 0, len(labelsAndValues)/2)
	labels := make(prometheus.Labels, len(labelsAndValues)/2)
	for i := 0; i+1 < len(labelsAndValues); i += 2 {
		keys = append(keys, labelsAndValues[i])
		labels[labelsAndValues[i]] = labelsAndValues[i+1]
	}
	return keys, labels
}
