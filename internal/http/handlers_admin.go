package http

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fieldpoint/academy/internal/snapshot"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK!")
	}
}

// ExportHandler streams a full snapshot of the store as a msgpack payload.
func (s *Server) ExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := snapshot.Export(s.DB)
		if err != nil {
			log.Error("Failed to export snapshot", "error", err)
			respondError(w, http.StatusInternalServerError, "failed to export snapshot")
			return
		}

		filename := fmt.Sprintf("academy-%s.snapshot", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/x-msgpack")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

// ImportHandler replaces the entire store contents with a previously exported
// snapshot. Destructive, admin only.
func (s *Server) ImportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 64<<20))
		if err != nil {
			respondError(w, http.StatusBadRequest, "failed to read snapshot payload")
			return
		}

		if err := snapshot.Import(s.DB, data); err != nil {
			log.Error("Failed to import snapshot", "error", err)
			respondError(w, http.StatusBadRequest, "invalid snapshot payload")
			return
		}

		claims := claimsFromContext(r)
		log.Info("Snapshot imported", "actor", claims.UserID())
		respondJSON(w, http.StatusOK, map[string]string{"status": "imported"})
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Roster.Clear()

		claims := claimsFromContext(r)
		log.Info("Store cleared", "actor", claims.UserID())
		respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
	}
}
