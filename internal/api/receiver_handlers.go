package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/service"
)

type receiverRequest struct {
	Name       *string        `json:"name"`
	NameAdd    *string        `json:"nameAdd"`
	Country    *string        `json:"country"`
	PostalCode *string        `json:"postalCode"`
	City       *string        `json:"city"`
	Street     *string        `json:"street"`
	Email      *string        `json:"email"`
	Phone      *string        `json:"phone"`
	Fax        *string        `json:"fax"`
	WebSite    *string        `json:"webSite"`
	Status     *models.Status `json:"status"`
	OrgID      string         `json:"orgId"`
}

func (r *receiverRequest) toInput(id string) *service.ReceiverInput {
	return &service.ReceiverInput{
		ID:         id,
		Name:       r.Name,
		NameAdd:    r.NameAdd,
		Country:    r.Country,
		PostalCode: r.PostalCode,
		City:       r.City,
		Street:     r.Street,
		Email:      r.Email,
		Phone:      r.Phone,
		Fax:        r.Fax,
		WebSite:    r.WebSite,
		Status:     r.Status,
		OrgID:      r.OrgID,
	}
}

func (s *Server) handleListReceivers(w http.ResponseWriter, r *http.Request) {
	receivers, err := s.svc.Receivers.List(r.Context(), callerFrom(r), r.URL.Query().Get("orgId"), pageParam(r), service.ParseBookmarkMode(r.URL.Query().Get("bookmarks")))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	views := make([]*models.ReceiverView, 0, len(receivers))
	for _, rcv := range receivers {
		views = append(views, rcv.View())
	}
	s.respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetReceiver(w http.ResponseWriter, r *http.Request) {
	rcv, err := s.svc.Receivers.Get(r.Context(), callerFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rcv.View())
}

func (s *Server) handleCreateReceiver(w http.ResponseWriter, r *http.Request) {
	var req receiverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request_body")
		return
	}

	rcv, err := s.svc.Receivers.Create(r.Context(), callerFrom(r), req.toInput(""))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, rcv.View())
}

func (s *Server) handleUpdateReceiver(w http.ResponseWriter, r *http.Request) {
	var req receiverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request_body")
		return
	}

	rcv, err := s.svc.Receivers.Update(r.Context(), callerFrom(r), req.toInput(chi.URLParam(r, "id")))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rcv.View())
}

func (s *Server) handleDeleteReceiver(w http.ResponseWriter, r *http.Request) {
	rcv, err := s.svc.Receivers.Delete(r.Context(), callerFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rcv.View())
}
