package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry *prometheus.Registry
	requests prometheus.Counter
	errors   prometheus.Counter
	inFlight prometheus.Gauge
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	c := &Collector{
		registry: registry,
		requests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "placenet_requests_total",
			Help: "Total number of HTTP requests.",
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "placenet_errors_total",
			Help: "Total number of 5xx HTTP responses.",
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "placenet_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		}),
	}
	registry.MustRegister(c.requests, c.errors, c.inFlight)
	return c
}

func (c *Collector) IncRequests() {
	c.requests.Inc()
}

func (c *Collector) IncErrors() {
	c.errors.Inc()
}

func (c *Collector) RequestStarted() {
	c.inFlight.Inc()
}

func (c *Collector) RequestFinished() {
	c.inFlight.Dec()
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
