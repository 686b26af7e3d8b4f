// Package metrics instruments outgoing Web API traffic with Prometheus
// collectors. Requests are labelled by endpoint family (the first path
// segment below the API version, e.g. "tracks" or "playlists") so ids never
// end up in label values.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors for one registry.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	handler  http.Handler
}

// New creates the collectors and registers them with reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "catalog",
			Subsystem: "webapi",
			Name:      "requests_total",
			Help:      "Web API requests by endpoint, method and status code.",
		}, []string{"endpoint", "method", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "catalog",
			Subsystem: "webapi",
			Name:      "request_duration_seconds",
			Help:      "Web API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
	reg.MustRegister(m.requests, m.latency)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler { return m.handler }

// Transport wraps base, recording every round trip. A nil base means
// http.DefaultTransport.
func (m *Metrics) Transport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return roundTripper{m: m, base: base}
}

type roundTripper struct {
	m    *Metrics
	base http.RoundTripper
}

// RoundTrip counts the request and observes its latency.
func (rt roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ep := Endpoint(req.URL.Path)
	start := time.Now()
	resp, err := rt.base.RoundTrip(req)
	rt.m.latency.WithLabelValues(ep).Observe(time.Since(start).Seconds())
	code := "error"
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}
	rt.m.requests.WithLabelValues(ep, req.Method, code).Inc()
	return resp, err
}

// Endpoint reduces a request path to its endpoint family. Paths under /me/
// keep their second segment ("me/tracks"); the token endpoint is "token".
func Endpoint(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) > 0 && parts[0] == "v1" {
		parts = parts[1:]
	}
	switch {
	case len(parts) == 0 || parts[0] == "":
		return "root"
	case parts[0] == "api" && len(parts) > 1:
		return parts[1]
	case parts[0] == "me" && len(parts) > 1:
		return "me/" + parts[1]
	}
	return parts[0]
}
