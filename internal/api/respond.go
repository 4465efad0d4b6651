package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/tenantkit/tenantkit/internal/service"
)

type errorBody struct {
	Message string `json:"message"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorBody{Message: message})
}

// respondServiceError translates a service error kind into an HTTP status.
// Unclassified errors are treated as internal.
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	code := service.CodeOf(err)

	switch service.KindOf(err) {
	case service.KindNotAuthenticated:
		s.respondError(w, http.StatusUnauthorized, code)
	case service.KindNotAuthorized:
		s.respondError(w, http.StatusForbidden, code)
	case service.KindNotFound:
		s.respondError(w, http.StatusNotFound, code)
	case service.KindInvalid:
		s.respondError(w, http.StatusBadRequest, code)
	case service.KindAlreadyExists, service.KindConflict:
		s.respondError(w, http.StatusConflict, code)
	default:
		log.Error().Err(err).Msg("internal error")
		s.respondError(w, http.StatusInternalServerError, "internal_error")
	}
}
