// Package metrics exposes the service's prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label for successful auth operations. Failures use the error code.
const OutcomeSuccess = "success"

// AuthRecorder is what the auth service reports to.
type AuthRecorder interface {
	RecordLogin(outcome string)
	RecordRefresh(outcome string)
}

// HTTPRecorder is what the HTTP middleware reports to.
type HTTPRecorder interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
}

type Collector struct {
	loginTotal      *prometheus.CounterVec
	refreshTotal    *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDurationSec *prometheus.HistogramVec
}

// NewCollector registers every collector on reg. Use a fresh registry per test.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		loginTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_login_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		refreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_refresh_total",
			Help: "Access token refresh attempts by outcome",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpDurationSec: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.loginTotal,
		c.refreshTotal,
		c.httpRequests,
		c.httpDurationSec,
	)

	return c
}

func (c *Collector) RecordLogin(outcome string) {
	c.loginTotal.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordRefresh(outcome string) {
	c.refreshTotal.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest counts one served request. route is the matched gin
// pattern, not the raw path, to keep label cardinality bounded.
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDurationSec.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type nopRecorder struct{}

func (nopRecorder) RecordLogin(string) {}
func (nopRecorder) RecordRefresh(string) {}
func (nopRecorder) RecordHTTPRequest(string, string, int, time.Duration) {}

// Nop discards everything. Used when metrics are not wired, e.g. in tests.
var Nop = nopRecorder{}
