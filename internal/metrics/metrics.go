// Package metrics instruments the client with Prometheus collectors. A nil
// *Collector is valid everywhere and records nothing, so instrumentation
// stays optional.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "eventsourcingdb_client"

// Collector holds the Prometheus instruments of one client instance.
type Collector struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	streamItems *prometheus.CounterVec
	openStreams prometheus.Gauge
}

// NewCollector registers the client collectors on reg and returns them.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "API requests issued, by verb and HTTP status.",
		}, []string{"verb", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Time until response headers arrived, by verb.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"verb"}),
		streamItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_items_total",
			Help:      "NDJSON stream lines classified, by verb and item tag.",
		}, []string{"verb", "item"}),
		openStreams: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_streams",
			Help:      "Streams currently holding a connection.",
		}),
	}

	for _, collector := range []prometheus.Collector{c.requests, c.duration, c.streamItems, c.openStreams} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveRequest records one completed request round trip.
func (c *Collector) ObserveRequest(verb string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(verb, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(verb).Observe(elapsed.Seconds())
}

// ObserveItem records one classified stream line.
func (c *Collector) ObserveItem(verb, item string) {
	if c == nil {
		return
	}
	c.streamItems.WithLabelValues(verb, item).Inc()
}

// StreamOpened records a stream acquiring its connection.
func (c *Collector) StreamOpened() {
	if c == nil {
		return
	}
	c.openStreams.Inc()
}

// StreamClosed records a stream releasing its connection.
func (c *Collector) StreamClosed() {
	if c == nil {
		return
	}
	c.openStreams.Dec()
}
