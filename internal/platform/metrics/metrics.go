package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	PluginChanges   *prometheus.CounterVec
	ProviderCalls   *prometheus.HistogramVec
	PANCacheLookups *prometheus.CounterVec
	ProviderCircuit *prometheus.GaugeVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the metrics on reg. Tests pass a fresh registry so
// repeated construction does not panic on duplicate registration.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PluginChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pangate_plugin_changes_total",
			Help: "Plugin records created, updated or deleted",
		}, []string{"action"}),
		ProviderCalls: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pangate_provider_call_duration_seconds",
			Help:    "Latency of PAN provider calls by provider and outcome",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider", "outcome"}),
		PANCacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pangate_pan_cache_lookups_total",
			Help: "PAN result cache lookups by result (hit, miss, error)",
		}, []string{"result"}),
		ProviderCircuit: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pangate_provider_circuit_state",
			Help: "Provider circuit breaker state (0 closed, 1 half-open, 2 open)",
		}, []string{"provider"}),
	}
}

// IncrementPluginChange counts a plugin lifecycle change.
func (m *Metrics) IncrementPluginChange(action string) {
	m.PluginChanges.WithLabelValues(action).Inc()
}

// ObserveProviderCall records the latency of one provider call.
func (m *Metrics) ObserveProviderCall(provider, outcome string, d time.Duration) {
	m.ProviderCalls.WithLabelValues(provider, outcome).Observe(d.Seconds())
}

// IncrementCacheLookup counts a PAN result cache lookup.
func (m *Metrics) IncrementCacheLookup(result string) {
	m.PANCacheLookups.WithLabelValues(result).Inc()
}

// SetCircuitState publishes a provider breaker's current state.
func (m *Metrics) SetCircuitState(provider string, state int) {
	m.ProviderCircuit.WithLabelValues(provider).Set(float64(state))
}
