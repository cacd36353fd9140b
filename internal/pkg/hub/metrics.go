package hub

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of a Hub.
type Metrics struct {
	published     prometheus.Counter
	deliveries    *prometheus.CounterVec
	subscriptions prometheus.Gauge
	evictions     prometheus.Counter
}

// NewMetrics creates the hub collectors and registers them with reg when reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		published: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shoporders",
			Subsystem: "hub",
			Name:      "messages_published_total",
			Help:      "Total number of messages published to the hub.",
		}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shoporders",
			Subsystem: "hub",
			Name:      "deliveries_total",
			Help:      "Total number of per-subscriber deliveries by result.",
		}, []string{"result"}),
		subscriptions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "shoporders",
			Subsystem: "hub",
			Name:      "subscriptions",
			Help:      "Current number of (topic, subscriber) pairs.",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shoporders",
			Subsystem: "hub",
			Name:      "evictions_total",
			Help:      "Total number of subscribers evicted for being too slow.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.published, m.deliveries, m.subscriptions, m.evictions)
	}
	return m
}

const (
	resultDelivered = "delivered"
	resultDropped   = "dropped"
)

// Published returns the counter of published messages.
func (m *Metrics) Published() prometheus.Counter { return m.published }

// Deliveries returns the delivery counter for result "delivered" or "dropped".
func (m *Metrics) Deliveries(result string) prometheus.Counter {
	return m.deliveries.WithLabelValues(result)
}

// Subscriptions returns the gauge of active subscriptions.
func (m *Metrics) Subscriptions() prometheus.Gauge { return m.subscriptions }

// Evictions returns the counter of evicted subscribers.
func (m *Metrics) Evictions() prometheus.Counter { return m.evictions }
