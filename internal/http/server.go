package http

import (
	"database/sql"
	"net/http"

	"github.com/fieldpoint/academy/internal/attendance"
	"github.com/fieldpoint/academy/internal/auth"
	"github.com/fieldpoint/academy/internal/config"
	"github.com/fieldpoint/academy/internal/mailer"
	"github.com/fieldpoint/academy/internal/metrics"
	"github.com/fieldpoint/academy/internal/roster"
	"github.com/go-playground/validator/v10"
)

func NewServer(
	rosterStore roster.RosterStore,
	attendanceStore attendance.AttendanceStore,
	authSvc *auth.Service,
	mail mailer.Mailer,
	metricsSvc metrics.Metrics,
	metricsHandler http.Handler,
	cfg config.Config,
	db *sql.DB,
) *Server {
	server := &Server{
		Roster:         rosterStore,
		Attendance:     attendanceStore,
		Auth:           authSvc,
		Mailer:         mail,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		DB:             db,
		validate:       validator.New(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// authed = any signed-in role; editor = admin or coach; admin = admin only.
	authed := func(h http.Handler) http.Handler {
		return Chain(h, paramsMiddleware, s.authMiddleware)
	}
	editor := func(h http.Handler) http.Handler {
		return Chain(h, paramsMiddleware, s.authMiddleware, requireEditor)
	}
	admin := func(h http.Handler) http.Handler {
		return Chain(h, paramsMiddleware, s.authMiddleware, requireAdmin)
	}

	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("POST /login", Chain(s.LoginHandler(), paramsMiddleware))

	s.Router.Handle("GET /users", admin(s.ListUsersHandler()))
	s.Router.Handle("POST /users", admin(s.CreateUserHandler()))
	s.Router.Handle("PUT /users/{id}", admin(s.UpdateUserHandler()))
	s.Router.Handle("DELETE /users/{id}", admin(s.DeleteUserHandler()))

	s.Router.Handle("GET /players", authed(s.ListPlayersHandler()))
	s.Router.Handle("POST /players", editor(s.CreatePlayerHandler()))
	s.Router.Handle("GET /players/{id}", authed(s.GetPlayerHandler()))
	s.Router.Handle("PUT /players/{id}", editor(s.UpdatePlayerHandler()))
	s.Router.Handle("DELETE /players/{id}", editor(s.DeletePlayerHandler()))
	s.Router.Handle("GET /players/{id}/summary", authed(s.PlayerSummaryHandler()))

	s.Router.Handle("GET /teams", authed(s.ListTeamsHandler()))
	s.Router.Handle("POST /teams", editor(s.CreateTeamHandler()))
	s.Router.Handle("GET /teams/{id}", authed(s.GetTeamHandler()))
	s.Router.Handle("PUT /teams/{id}", editor(s.UpdateTeamHandler()))
	s.Router.Handle("DELETE /teams/{id}", editor(s.DeleteTeamHandler()))

	s.Router.Handle("GET /positions", authed(s.ListPositionsHandler()))
	s.Router.Handle("POST /positions", editor(s.CreatePositionHandler()))
	s.Router.Handle("PUT /positions/{id}", editor(s.UpdatePositionHandler()))
	s.Router.Handle("DELETE /positions/{id}", editor(s.DeletePositionHandler()))

	s.Router.Handle("GET /attendance", authed(s.AttendanceForDateHandler()))
	s.Router.Handle("PUT /attendance", editor(s.SaveAttendanceHandler()))
	s.Router.Handle("GET /attendance/summary", authed(s.SubmissionSummaryHandler()))
	s.Router.Handle("GET /attendance/analytics", authed(s.AnalyticsHandler()))

	s.Router.Handle("GET /admin/export", admin(s.ExportHandler()))
	s.Router.Handle("POST /admin/import", admin(s.ImportHandler()))
	s.Router.Handle("POST /admin/clear", admin(s.ClearStoreHandler()))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
