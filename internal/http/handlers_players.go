package http

import (
	"net/http"
	"time"

	"github.com/fieldpoint/academy/internal/roster"
)

type playerRequest struct {
	FirstName                    string   `json:"first_name" validate:"required"`
	LastName                     string   `json:"last_name" validate:"required"`
	PreferredName                *string  `json:"preferred_name"`
	DOB                          string   `json:"dob" validate:"required,datetime=2006-01-02"`
	Positions                    []string `json:"positions"`
	TeamID                       *string  `json:"team_id"`
	JerseyNumber                 *int     `json:"jersey_number"`
	ContactNumber                *string  `json:"contact_number"`
	GuardianName                 *string  `json:"guardian_name"`
	GuardianRelationship         *string  `json:"guardian_relationship"`
	GuardianPhone                *string  `json:"guardian_phone"`
	GuardianEmail                *string  `json:"guardian_email"`
	EmergencyContactName         *string  `json:"emergency_contact_name"`
	EmergencyContactRelationship *string  `json:"emergency_contact_relationship"`
	EmergencyContactPhone        *string  `json:"emergency_contact_phone"`
	DominantFoot                 *string  `json:"dominant_foot"`
	MedicalNotes                 *string  `json:"medical_notes"`
	InjuryStatus                 string   `json:"injury_status" validate:"omitempty,oneof=none rehab restricted unavailable"`
	MedicationNotes              *string  `json:"medication_notes"`
	Strengths                    *string  `json:"strengths"`
	DevelopmentFocus             *string  `json:"development_focus"`
	CoachSummary                 *string  `json:"coach_summary"`
	Notes                        *string  `json:"notes"`
	ProfileImageURL              *string  `json:"profile_image_url"`
}

func (req *playerRequest) toPlayer(id string) roster.Player {
	status := roster.InjuryStatus(req.InjuryStatus)
	if status == "" {
		status = roster.InjuryNone
	}
	return roster.Player{
		ID:                           id,
		FirstName:                    req.FirstName,
		LastName:                     req.LastName,
		PreferredName:                req.PreferredName,
		DOB:                          req.DOB,
		Positions:                    req.Positions,
		TeamID:                       req.TeamID,
		JerseyNumber:                 req.JerseyNumber,
		ContactNumber:                req.ContactNumber,
		GuardianName:                 req.GuardianName,
		GuardianRelationship:         req.GuardianRelationship,
		GuardianPhone:                req.GuardianPhone,
		GuardianEmail:                req.GuardianEmail,
		EmergencyContactName:         req.EmergencyContactName,
		EmergencyContactRelationship: req.EmergencyContactRelationship,
		EmergencyContactPhone:        req.EmergencyContactPhone,
		DominantFoot:                 req.DominantFoot,
		MedicalNotes:                 req.MedicalNotes,
		InjuryStatus:                 status,
		MedicationNotes:              req.MedicationNotes,
		Strengths:                    req.Strengths,
		DevelopmentFocus:             req.DevelopmentFocus,
		CoachSummary:                 req.CoachSummary,
		Notes:                        req.Notes,
		ProfileImageURL:              req.ProfileImageURL,
	}
}

// redactForViewer strips sensitive fields from a player when the requesting
// role is view-only.
func redactForViewer(r *http.Request, p *roster.Player) {
	if claims := claimsFromContext(r); claims != nil && !claims.Role.CanEdit() {
		p.Redact()
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := roster.PlayerFilter{Search: r.URL.Query().Get("search")}
		if teamID := r.URL.Query().Get("teamId"); teamID != "" {
			filter.TeamID = &teamID
		}

		players, err := s.Roster.ListPlayers(filter)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		if players == nil {
			players = []roster.Player{}
		}
		for i := range players {
			redactForViewer(r, &players[i])
		}
		respondJSON(w, http.StatusOK, players)
	}
}

func (s *Server) CreatePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req playerRequest
		if !s.decodeAndValidate(w, r, &req) {
			return
		}

		player, err := s.Roster.CreatePlayer(req.toPlayer(""))
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, player)
	}
}

func (s *Server) GetPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, err := s.Roster.GetPlayer(r.PathValue("id"))
		if err != nil {
			respondStoreError(w, err)
			return
		}
		redactForViewer(r, player)
		respondJSON(w, http.StatusOK, player)
	}
}

func (s *Server) UpdatePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req playerRequest
		if !s.decodeAndValidate(w, r, &req) {
			return
		}

		player := req.toPlayer(r.PathValue("id"))
		if err := s.Roster.UpdatePlayer(player); err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, player)
	}
}

func (s *Server) DeletePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Roster.DeletePlayer(r.PathValue("id")); err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
	}
}

// PlayerSummaryHandler returns the trailing 30-day attendance snapshot shown
// on a player's profile.
func (s *Server) PlayerSummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID := r.PathValue("id")
		if _, err := s.Roster.GetPlayer(playerID); err != nil {
			respondStoreError(w, err)
			return
		}

		summary, err := s.Attendance.PlayerSummary(playerID, time.Now())
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, summary)
	}
}
