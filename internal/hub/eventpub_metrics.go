package hub

import (
	"github.com/prometheus/client_golang/prometheus"

	"channelhub/internal/broker"
)

// MetricsPublisher counts broker and hub events for Prometheus.
type MetricsPublisher struct {
	events    *prometheus.CounterVec
	instances prometheus.Gauge
}

// NewMetricsPublisher creates the collectors and registers them on reg
// (prometheus.DefaultRegisterer when nil).
func NewMetricsPublisher(reg prometheus.Registerer) (*MetricsPublisher, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	p := &MetricsPublisher{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "channelhub",
				Subsystem: "broker",
				Name:      "events_total",
				Help:      "Total broker lifecycle events by name",
			},
			[]string{"event"},
		),
		instances: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "channelhub",
			Subsystem: "hub",
			Name:      "instances",
			Help:      "Live module instances",
		}),
	}
	for _, c := range []prometheus.Collector{p.events, p.instances} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *MetricsPublisher) Publish(e broker.Event) {
	p.events.WithLabelValues(e.Name).Inc()
	switch e.Name {
	case EventInstanceCreated:
		p.instances.Inc()
	case EventInstanceRemoved:
		p.instances.Dec()
	}
}
