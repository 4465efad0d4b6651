package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/service"
)

type organizationRequest struct {
	Name     *string        `json:"name"`
	Status   *models.Status `json:"status"`
	Locale   *string        `json:"locale"`
	Currency *string        `json:"currency"`
	Timezone *string        `json:"timezone"`
	ParentID *string        `json:"parentId"`
}

func (r *organizationRequest) toInput(id string) *service.OrganizationInput {
	return &service.OrganizationInput{
		ID:       id,
		Name:     r.Name,
		Status:   r.Status,
		Locale:   r.Locale,
		Currency: r.Currency,
		Timezone: r.Timezone,
		ParentID: r.ParentID,
	}
}

func (s *Server) handleListOrganizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := s.svc.Organizations.List(r.Context(), callerFrom(r), pageParam(r), service.ParseBookmarkMode(r.URL.Query().Get("bookmarks")))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	views := make([]*models.OrganizationView, 0, len(orgs))
	for _, org := range orgs {
		views = append(views, org.View())
	}
	s.respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetOrganization(w http.ResponseWriter, r *http.Request) {
	org, err := s.svc.Organizations.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, org.View())
}

func (s *Server) handleOrganizationTree(w http.ResponseWriter, r *http.Request) {
	tree, err := s.svc.Organizations.Tree(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, tree.View())
}

func (s *Server) handleOrganizationTreeIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := s.svc.Organizations.TreeIDs(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, ids)
}

func (s *Server) handleCreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
		organizationRequest
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request_body")
		return
	}

	org, err := s.svc.Organizations.Create(r.Context(), callerFrom(r), req.toInput(req.ID))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, org.View())
}

func (s *Server) handleUpdateOrganization(w http.ResponseWriter, r *http.Request) {
	var req organizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request_body")
		return
	}

	org, err := s.svc.Organizations.Update(r.Context(), callerFrom(r), req.toInput(chi.URLParam(r, "id")))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, org.View())
}

func (s *Server) handleDeleteOrganization(w http.ResponseWriter, r *http.Request) {
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))

	org, err := s.svc.Organizations.Delete(r.Context(), callerFrom(r), chi.URLParam(r, "id"), force)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, org.View())
}

// pageParam returns the 1-based page number, defaulting to the first page.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
