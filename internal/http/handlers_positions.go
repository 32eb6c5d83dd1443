package http

import (
	"net/http"

	"github.com/fieldpoint/academy/internal/roster"
)

type positionRequest struct {
	Name      string `json:"name" validate:"required"`
	SortOrder int    `json:"sort_order"`
}

func (s *Server) ListPositionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		positions, err := s.Roster.ListPositions()
		if err != nil {
			respondStoreError(w, err)
			return
		}
		if positions == nil {
			positions = []roster.Position{}
		}
		respondJSON(w, http.StatusOK, positions)
	}
}

func (s *Server) CreatePositionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req positionRequest
		if !s.decodeAndValidate(w, r, &req) {
			return
		}

		position, err := s.Roster.CreatePosition(roster.Position{Name: req.Name, SortOrder: req.SortOrder})
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, position)
	}
}

func (s *Server) UpdatePositionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req positionRequest
		if !s.decodeAndValidate(w, r, &req) {
			return
		}

		position := roster.Position{ID: r.PathValue("id"), Name: req.Name, SortOrder: req.SortOrder}
		if err := s.Roster.UpdatePosition(position); err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, position)
	}
}

func (s *Server) DeletePositionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Roster.DeletePosition(r.PathValue("id")); err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
	}
}
