package http

import (
	"net/http"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fieldpoint/academy/internal/attendance"
)

type saveAttendanceRequest struct {
	// Entries maps player id to that player's record for the date. Players not
	// present are removed for the date.
	Entries map[string]struct {
		Points Points `json:"points"`
	} `json:"entries"`
}

func (s *Server) AttendanceForDateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if date == "" {
			respondError(w, http.StatusBadRequest, "missing date parameter")
			return
		}

		records, err := s.Attendance.RecordsForDate(date)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		if records == nil {
			records = []attendance.Record{}
		}
		respondJSON(w, http.StatusOK, records)
	}
}

// SaveAttendanceHandler replaces the full set of records for a date and
// responds with the freshly read result, so the client renders what was
// actually stored.
func (s *Server) SaveAttendanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if date == "" {
			respondError(w, http.StatusBadRequest, "missing date parameter")
			return
		}

		var req saveAttendanceRequest
		if !s.decodeAndValidate(w, r, &req) {
			return
		}

		// Insertion order is player-id order so repeated saves of the same
		// payload produce identical row order.
		entries := make([]attendance.Entry, 0, len(req.Entries))
		for playerID, e := range req.Entries {
			entries = append(entries, attendance.Entry{PlayerID: playerID, Points: int(e.Points)})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].PlayerID < entries[j].PlayerID })

		claims := claimsFromContext(r)
		start := time.Now()
		if err := s.Attendance.SaveDay(date, entries, claims.UserID()); err != nil {
			respondStoreError(w, err)
			return
		}
		s.Metrics.IncAttendanceSaves()
		s.Metrics.ObserveSaveDuration(time.Since(start).Seconds())

		records, err := s.Attendance.RecordsForDate(date)
		if err != nil {
			// The save committed; reads degrade rather than masking it.
			log.Error("Failed to re-read records after save", "error", err, "date", date)
			respondJSON(w, http.StatusOK, []attendance.Record{})
			return
		}
		if records == nil {
			records = []attendance.Record{}
		}
		respondJSON(w, http.StatusOK, records)
	}
}

func (s *Server) SubmissionSummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := r.URL.Query().Get("start")
		end := r.URL.Query().Get("end")
		if start == "" || end == "" {
			respondError(w, http.StatusBadRequest, "missing start or end parameter")
			return
		}

		summary, err := s.Attendance.SubmissionSummary(start, end)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, summary)
	}
}

func (s *Server) AnalyticsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := attendance.Filter{
			DateFrom: r.URL.Query().Get("from"),
			DateTo:   r.URL.Query().Get("to"),
			TeamID:   r.URL.Query().Get("teamId"),
		}

		report, err := s.Attendance.Analytics(filter)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		s.Metrics.IncAnalyticsQueries()
		respondJSON(w, http.StatusOK, report)
	}
}
