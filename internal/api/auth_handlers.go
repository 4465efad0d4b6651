package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       string `json:"id"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request_body")
		return
	}

	session, err := s.svc.Auth.Login(r.Context(), req.ID, req.Password)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	out, err := s.svc.Auth.WhoAmI(r.Context(), callerFrom(r))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, out)
}
