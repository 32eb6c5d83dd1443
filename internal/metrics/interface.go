package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncLogins()
	IncLoginFailures()
	IncAttendanceSaves()
	ObserveSaveDuration(duration float64)
	IncAnalyticsQueries()
	IncInviteEmailsSent()
	IncInviteEmailsFailed()
	SetStartupTime(duration float64)
}
