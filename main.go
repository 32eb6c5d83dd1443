package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fieldpoint/academy/internal/attendance"
	"github.com/fieldpoint/academy/internal/auth"
	"github.com/fieldpoint/academy/internal/config"
	"github.com/fieldpoint/academy/internal/database"
	server "github.com/fieldpoint/academy/internal/http"
	"github.com/fieldpoint/academy/internal/mailer"
	"github.com/fieldpoint/academy/internal/metrics"
	"github.com/fieldpoint/academy/internal/roster"
)

func main() {
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	rosterStore := roster.New(db)
	attendanceStore := attendance.New(db)
	authSvc := auth.New(cfg.Auth.SigningSecret, cfg.Auth.TokenTTLHours)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	mail := mailer.NewResend(cfg.Mail.ResendAPIKey, cfg.Mail.FromAddress, metricsSvc)

	s := server.NewServer(
		rosterStore,
		attendanceStore,
		authSvc,
		mail,
		metricsSvc,
		metricsHandler,
		cfg,
		db,
	)

	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
