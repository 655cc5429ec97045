// Package metrics exposes bridge activity as Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Bridge implements eventhub.Stats and counts outbound calls.
type Bridge struct {
	eventsDispatched *prometheus.CounterVec
	eventsDropped    *prometheus.CounterVec
	listeners        *prometheus.GaugeVec
	callsTotal       *prometheus.CounterVec
}

// New registers the bridge collectors on reg.
func New(reg prometheus.Registerer) *Bridge {
	b := &Bridge{
		eventsDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chatbridge_events_dispatched_total",
			Help: "Inbound events routed to a stream, by event class.",
		}, []string{"class"}),
		eventsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chatbridge_events_dropped_total",
			Help: "Inbound events discarded, by event class and reason.",
		}, []string{"class", "reason"}),
		listeners: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "chatbridge_stream_listeners",
			Help: "Current listeners per event class.",
		}, []string{"class"}),
		callsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chatbridge_calls_total",
			Help: "Outbound host calls, by method and outcome.",
		}, []string{"method", "outcome"}),
	}
	reg.MustRegister(b.eventsDispatched, b.eventsDropped, b.listeners, b.callsTotal)
	return b
}

// EventDispatched implements eventhub.Stats.
func (b *Bridge) EventDispatched(class string) {
	b.eventsDispatched.WithLabelValues(class).Inc()
}

// EventDropped implements eventhub.Stats.
func (b *Bridge) EventDropped(class, reason string) {
	b.eventsDropped.WithLabelValues(class, reason).Inc()
}

// ListenerCount implements eventhub.Stats.
func (b *Bridge) ListenerCount(class string, n int) {
	b.listeners.WithLabelValues(class).Set(float64(n))
}

// CallFinished records one outbound call result.
func (b *Bridge) CallFinished(method string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	b.callsTotal.WithLabelValues(method, outcome).Inc()
}
