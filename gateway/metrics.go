package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "school_portal", Subsystem: "gateway", Name: "requests_total", Help: "API calls by method and status code (\"error\" for transport failures)."},
		[]string{"method", "code"},
	)
	AuthExpiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "school_portal", Subsystem: "gateway", Name: "auth_expired_total", Help: "Sessions torn down after the API rejected the access token."},
	)
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "school_portal", Subsystem: "gateway", Name: "logins_total", Help: "Login attempts by result."},
		[]string{"result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RequestsTotal)
	reg.MustRegister(AuthExpiredTotal)
	reg.MustRegister(LoginsTotal)
}
