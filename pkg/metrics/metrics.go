package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsHandled = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "deenhub", Name: "requests_handled_total", Help: "Number of handled API requests by resource, operation and status."},
		[]string{"resource", "operation", "status"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "deenhub", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "deenhub", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RequestsHandled)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
