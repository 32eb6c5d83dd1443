package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "academy_logins_total",
			Help: "The total number of successful logins.",
		}),
		LoginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "academy_login_failures_total",
			Help: "The total number of rejected login attempts.",
		}),
		AttendanceSaves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "academy_attendance_saves_total",
			Help: "The total number of attendance day saves committed.",
		}),
		SaveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "academy_attendance_save_duration_seconds",
			Help:    "The duration of individual attendance day saves.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		AnalyticsQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "academy_analytics_queries_total",
			Help: "The total number of analytics report computations.",
		}),
		InviteEmailsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "academy_invite_emails_sent_total",
			Help: "The total number of invite emails successfully sent.",
		}),
		InviteEmailsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "academy_invite_emails_failed_total",
			Help: "The total number of invite emails that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "academy_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.Logins,
		s.LoginFailures,
		s.AttendanceSaves,
		s.SaveDuration,
		s.AnalyticsQueries,
		s.InviteEmailsSent,
		s.InviteEmailsFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncLogins() {
	s.Logins.Inc()
}

func (s *Service) IncLoginFailures() {
	s.LoginFailures.Inc()
}

func (s *Service) IncAttendanceSaves() {
	s.AttendanceSaves.Inc()
}

func (s *Service) ObserveSaveDuration(duration float64) {
	s.SaveDuration.Observe(duration)
}

func (s *Service) IncAnalyticsQueries() {
	s.AnalyticsQueries.Inc()
}

func (s *Service) IncInviteEmailsSent() {
	s.InviteEmailsSent.Inc()
}

func (s *Service) IncInviteEmailsFailed() {
	s.InviteEmailsFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
