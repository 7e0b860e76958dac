// Package metrics holds Prometheus instruments used across the content
// backend.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yanizio/adept-content/internal/domain"
)

var (
	StorageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cms_storage_duration_seconds",
			Help:    "Latency of repository operations by entity, operation, and outcome.",
			Buckets: prometheus.DefBuckets,
		}, []string{"entity", "op", "outcome"})

	ContactEmailTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cms_contact_email_total",
			Help: "Contact-form e-mails by result (sent, failed).",
		}, []string{"result"})

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cms_http_requests_total",
			Help: "HTTP requests by route pattern and status code.",
		}, []string{"route", "code"})
)

func init() {
	prometheus.MustRegister(
		StorageDuration,
		ContactEmailTotal,
		HTTPRequestsTotal,
	)
}

// ObserveStorage records one repository call.  Use it with defer:
//
//	defer func(t time.Time) { metrics.ObserveStorage("content", "create", t, err) }(time.Now())
func ObserveStorage(entity, op string, start time.Time, err error) {
	StorageDuration.WithLabelValues(entity, op, domain.Kind(err)).
		Observe(time.Since(start).Seconds())
}
