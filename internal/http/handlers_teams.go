package http

import (
	"net/http"

	"github.com/fieldpoint/academy/internal/roster"
)

type teamRequest struct {
	Name         string   `json:"name" validate:"required"`
	MainCoachID  *string  `json:"main_coach_id"`
	CoachIDs     []string `json:"coach_ids"`
	VolunteerIDs []string `json:"volunteer_ids"`
	Notes        *string  `json:"notes"`
}

func (s *Server) ListTeamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := s.Roster.ListTeams()
		if err != nil {
			respondStoreError(w, err)
			return
		}
		if teams == nil {
			teams = []roster.Team{}
		}
		respondJSON(w, http.StatusOK, teams)
	}
}

func (s *Server) CreateTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req teamRequest
		if !s.decodeAndValidate(w, r, &req) {
			return
		}

		team, err := s.Roster.CreateTeam(roster.Team{
			Name:         req.Name,
			MainCoachID:  req.MainCoachID,
			CoachIDs:     req.CoachIDs,
			VolunteerIDs: req.VolunteerIDs,
			Notes:        req.Notes,
		})
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, team)
	}
}

func (s *Server) GetTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, err := s.Roster.GetTeam(r.PathValue("id"))
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, team)
	}
}

func (s *Server) UpdateTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req teamRequest
		if !s.decodeAndValidate(w, r, &req) {
			return
		}

		team := roster.Team{
			ID:           r.PathValue("id"),
			Name:         req.Name,
			MainCoachID:  req.MainCoachID,
			CoachIDs:     req.CoachIDs,
			VolunteerIDs: req.VolunteerIDs,
			Notes:        req.Notes,
		}
		if err := s.Roster.UpdateTeam(team); err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, team)
	}
}

// DeleteTeamHandler removes a team. Its players become teamless; attendance
// rows keep the team id they were written with.
func (s *Server) DeleteTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Roster.DeleteTeam(r.PathValue("id")); err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
	}
}
