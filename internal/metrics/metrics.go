package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "meditrack_http_requests_total", Help: "HTTP requests by route, method and status"},
		[]string{"route", "method", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "meditrack_http_request_duration_seconds", Help: "HTTP request latency", Buckets: prometheus.DefBuckets},
		[]string{"route", "method"},
	)
	RegistrationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "meditrack_registrations_created_total", Help: "Total camp registrations created"},
	)
	PaymentsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "meditrack_payments_completed_total", Help: "Total registrations marked paid"},
	)
	PaymentIntents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "meditrack_payment_intents_total", Help: "Payment intent attempts by outcome"},
		[]string{"outcome"},
	)
)

func Register() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, RegistrationsCreated, PaymentsCompleted, PaymentIntents)
}
