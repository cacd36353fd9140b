package ws

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the streaming endpoint collectors.
type Metrics struct {
	connections prometheus.Gauge
	frames      *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg when reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "shoporders",
			Subsystem: "ws",
			Name:      "connections",
			Help:      "Current number of streaming connections.",
		}),
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shoporders",
			Subsystem: "ws",
			Name:      "frames_received_total",
			Help:      "Total number of client frames by type.",
		}, []string{"type"}),
	}
	if reg != nil {
		reg.MustRegister(m.connections, m.frames)
	}
	return m
}

// Connections returns the gauge of open connections.
func (m *Metrics) Connections() prometheus.Gauge { return m.connections }

// Frames returns the counter of received frames of one type.
func (m *Metrics) Frames(frameType string) prometheus.Counter {
	return m.frames.WithLabelValues(frameType)
}
