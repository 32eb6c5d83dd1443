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

type Server struct {
	Roster         roster.RosterStore
	Attendance     attendance.AttendanceStore
	Auth           *auth.Service
	Mailer         mailer.Mailer
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
	// DB is used directly by the snapshot export/import endpoints.
	DB       *sql.DB
	validate *validator.Validate
}
