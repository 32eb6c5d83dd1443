package http

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/fieldpoint/academy/internal/auth"
	"github.com/fieldpoint/academy/internal/roster"
)

type createUserRequest struct {
	Name          string  `json:"name" validate:"required"`
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=8"`
	ContactNumber *string `json:"contact_number"`
	Role          string  `json:"role" validate:"required,oneof=admin coach volunteer"`
}

type updateUserRequest struct {
	Name            string  `json:"name" validate:"required"`
	ContactNumber   *string `json:"contact_number"`
	Role            string  `json:"role" validate:"required,oneof=admin coach volunteer"`
	ProfileImageURL *string `json:"profile_image_url"`
}

func (s *Server) ListUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := s.Roster.ListUsers()
		if err != nil {
			respondStoreError(w, err)
			return
		}
		if users == nil {
			users = []roster.UserInfo{}
		}
		respondJSON(w, http.StatusOK, users)
	}
}

// CreateUserHandler creates a staff account and sends an invite email. The
// invite is best effort: a delivery failure is logged and counted but does not
// roll back the account.
func (s *Server) CreateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if !s.decodeAndValidate(w, r, &req) {
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to hash password")
			return
		}

		user, err := s.Roster.CreateUser(roster.UserInfo{
			Name:          req.Name,
			Email:         req.Email,
			ContactNumber: req.ContactNumber,
			Role:          roster.Role(req.Role),
		}, hash)
		if err != nil {
			respondStoreError(w, err)
			return
		}

		if err := s.Mailer.SendInvite(user.Email, user.Name, s.Cfg.Mail.AppBaseURL+"/login"); err != nil {
			log.Warn("Invite email not delivered", "error", err, "userID", user.ID)
		}

		respondJSON(w, http.StatusCreated, user)
	}
}

func (s *Server) UpdateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateUserRequest
		if !s.decodeAndValidate(w, r, &req) {
			return
		}

		user := roster.UserInfo{
			ID:              r.PathValue("id"),
			Name:            req.Name,
			ContactNumber:   req.ContactNumber,
			Role:            roster.Role(req.Role),
			ProfileImageURL: req.ProfileImageURL,
		}
		if err := s.Roster.UpdateUser(user); err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, user)
	}
}

func (s *Server) DeleteUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.PathValue("id")
		if claims := claimsFromContext(r); claims != nil && claims.UserID() == userID {
			respondError(w, http.StatusBadRequest, "cannot delete your own account")
			return
		}
		if err := s.Roster.DeleteUser(userID); err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
	}
}
