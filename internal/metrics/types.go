package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service is the Prometheus-backed Metrics implementation.
type Service struct {
	Logins             prometheus.Counter
	LoginFailures      prometheus.Counter
	AttendanceSaves    prometheus.Counter
	SaveDuration       prometheus.Histogram
	AnalyticsQueries   prometheus.Counter
	InviteEmailsSent   prometheus.Counter
	InviteEmailsFailed prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
