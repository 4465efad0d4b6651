package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/service"
)

type userRequest struct {
	Password *string  `json:"password"`
	Roles    []string `json:"roles"`
	Locked   *bool    `json:"locked"`
	OrgID    *string  `json:"orgId"`

	DisplayName *string `json:"displayName"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	ImageURL    *string `json:"imageUrl"`
}

func (r *userRequest) toInput(id string) *service.UserInput {
	return &service.UserInput{
		ID:          id,
		Password:    r.Password,
		Roles:       r.Roles,
		Locked:      r.Locked,
		OrgID:       r.OrgID,
		DisplayName: r.DisplayName,
		Email:       r.Email,
		Phone:       r.Phone,
		ImageURL:    r.ImageURL,
	}
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.Users.List(r.Context(), callerFrom(r), pageParam(r), service.ParseBookmarkMode(r.URL.Query().Get("bookmarks")))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	views := make([]*models.UserView, 0, len(users))
	for _, user := range users {
		views = append(views, user.View())
	}
	s.respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.svc.Users.Get(r.Context(), callerFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, user.View())
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
		userRequest
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request_body")
		return
	}

	user, err := s.svc.Users.Create(r.Context(), callerFrom(r), req.toInput(req.ID))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, user.View())
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request_body")
		return
	}

	user, err := s.svc.Users.Update(r.Context(), callerFrom(r), req.toInput(chi.URLParam(r, "id")))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, user.View())
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.svc.Users.Delete(r.Context(), callerFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, user.View())
}
