package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/service"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.svc.Profiles.Get(r.Context(), callerFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, profile.View())
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DisplayName *string `json:"displayName"`
		Email       *string `json:"email"`
		Phone       *string `json:"phone"`
		ImageURL    *string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request_body")
		return
	}

	profile, err := s.svc.Profiles.Update(r.Context(), callerFrom(r), &service.UserProfileInput{
		UserID:      chi.URLParam(r, "id"),
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Phone:       req.Phone,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, profile.View())
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.svc.Profiles.Delete(r.Context(), callerFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, profile.View())
}

func (s *Server) handleListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.svc.Settings.List(r.Context(), callerFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	views := make([]*models.UserSettingView, 0, len(settings))
	for _, setting := range settings {
		views = append(views, setting.View())
	}
	s.respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	var (
		ctx    = r.Context()
		caller = callerFrom(r)
		userID = chi.URLParam(r, "id")
		typ    = chi.URLParam(r, "type")
	)

	var (
		setting *models.UserSetting
		err     error
	)
	if r.URL.Query().Get("fallback") == "true" {
		setting, err = s.svc.Settings.GetOrDefault(ctx, caller, userID, typ)
	} else {
		setting, err = s.svc.Settings.Get(ctx, caller, userID, typ)
	}
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, setting.View())
}

func (s *Server) handleCreateSetting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type               string `json:"type"`
		ListLimit          *int   `json:"listLimit"`
		BookmarkExpiration *int   `json:"bookmarkExpiration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request_body")
		return
	}

	setting, err := s.svc.Settings.Create(r.Context(), callerFrom(r), &service.UserSettingInput{
		UserID:             chi.URLParam(r, "id"),
		Type:               req.Type,
		ListLimit:          req.ListLimit,
		BookmarkExpiration: req.BookmarkExpiration,
	})
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, setting.View())
}

func (s *Server) handleUpdateSetting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ListLimit          *int `json:"listLimit"`
		BookmarkExpiration *int `json:"bookmarkExpiration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request_body")
		return
	}

	setting, err := s.svc.Settings.Update(r.Context(), callerFrom(r), &service.UserSettingInput{
		UserID:             chi.URLParam(r, "id"),
		Type:               chi.URLParam(r, "type"),
		ListLimit:          req.ListLimit,
		BookmarkExpiration: req.BookmarkExpiration,
	})
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, setting.View())
}

func (s *Server) handleDeleteSetting(w http.ResponseWriter, r *http.Request) {
	setting, err := s.svc.Settings.Delete(r.Context(), callerFrom(r), chi.URLParam(r, "id"), chi.URLParam(r, "type"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, setting.View())
}

func (s *Server) handleDeleteSettings(w http.ResponseWriter, r *http.Request) {
	removed, err := s.svc.Settings.DeleteAll(r.Context(), callerFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	views := make([]*models.UserSettingView, 0, len(removed))
	for _, setting := range removed {
		views = append(views, setting.View())
	}
	s.respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := s.svc.Bookmarks.List(r.Context(), callerFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, bookmarkViews(bookmarks))
}

func (s *Server) handleListBookmarksByType(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := s.svc.Bookmarks.ListByType(r.Context(), callerFrom(r), chi.URLParam(r, "id"), chi.URLParam(r, "type"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, bookmarkViews(bookmarks))
}

func (s *Server) handleGetBookmark(w http.ResponseWriter, r *http.Request) {
	bookmark, err := s.svc.Bookmarks.Get(r.Context(), callerFrom(r), chi.URLParam(r, "id"), chi.URLParam(r, "type"), chi.URLParam(r, "objectId"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, bookmark.View())
}

func (s *Server) handleCreateBookmark(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type     string `json:"type"`
		ObjectID string `json:"objectId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request_body")
		return
	}

	bookmark, err := s.svc.Bookmarks.Create(r.Context(), callerFrom(r), &service.UserBookmarkInput{
		UserID:   chi.URLParam(r, "id"),
		Type:     req.Type,
		ObjectID: req.ObjectID,
	})
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, bookmark.View())
}

func (s *Server) handleDeleteBookmark(w http.ResponseWriter, r *http.Request) {
	bookmark, err := s.svc.Bookmarks.Delete(r.Context(), callerFrom(r), chi.URLParam(r, "id"), chi.URLParam(r, "type"), chi.URLParam(r, "objectId"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, bookmark.View())
}

func (s *Server) handleDeleteBookmarks(w http.ResponseWriter, r *http.Request) {
	removed, err := s.svc.Bookmarks.DeleteAll(r.Context(), callerFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, bookmarkViews(removed))
}

func (s *Server) handleDeleteBookmarksByType(w http.ResponseWriter, r *http.Request) {
	removed, err := s.svc.Bookmarks.DeleteByType(r.Context(), callerFrom(r), chi.URLParam(r, "id"), chi.URLParam(r, "type"))
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, bookmarkViews(removed))
}

func bookmarkViews(bookmarks []*models.UserBookmark) []*models.UserBookmarkView {
	views := make([]*models.UserBookmarkView, 0, len(bookmarks))
	for _, bookmark := range bookmarks {
		views = append(views, bookmark.View())
	}
	return views
}
