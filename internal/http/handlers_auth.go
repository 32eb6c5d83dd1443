package http

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/fieldpoint/academy/internal/auth"
	"github.com/fieldpoint/academy/internal/roster"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  roster.UserInfo `json:"user"`
}

// LoginHandler checks credentials and issues a session token. Any failure maps
// to the same generic message so the response does not leak which part was
// wrong.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !s.decodeAndValidate(w, r, &req) {
			return
		}

		user, hash, err := s.Roster.GetUserByEmail(req.Email)
		if err != nil {
			if !errors.Is(err, roster.ErrNotFound) {
				log.Error("Failed to look up user for login", "error", err)
			}
			s.Metrics.IncLoginFailures()
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		if !auth.CheckPassword(hash, req.Password) {
			log.Info("Rejected login", "email", req.Email)
			s.Metrics.IncLoginFailures()
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		token, err := s.Auth.IssueToken(*user)
		if err != nil {
			log.Error("Failed to issue token", "error", err, "userID", user.ID)
			respondError(w, http.StatusInternalServerError, "failed to issue token")
			return
		}

		s.Metrics.IncLogins()
		log.Info("User logged in", "userID", user.ID, "role", user.Role)
		respondJSON(w, http.StatusOK, loginResponse{Token: token, User: *user})
	}
}
