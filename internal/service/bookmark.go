package service

import (
	"context"
	"errors"
	"time"

	"github.com/tenantkit/tenantkit/internal/auth"
	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store"
)

// UserBookmarkInput identifies a bookmark to create.
type UserBookmarkInput struct {
	UserID   string
	Type     string
	ObjectID string
}

// UserBookmarkService manages the bookmark sub-resource. Ownership-scoped:
// a caller manages their own bookmarks, super may manage anyone's.
type UserBookmarkService struct {
	bookmarks store.UserBookmarkStore
}

// NewUserBookmarkService wires a bookmark service.
func NewUserBookmarkService(bookmarks store.UserBookmarkStore) *UserBookmarkService {
	return &UserBookmarkService{bookmarks: bookmarks}
}

// List returns every bookmark owned by userID.
func (s *UserBookmarkService) List(ctx context.Context, caller *auth.Context, userID string) ([]*models.UserBookmark, error) {
	if !auth.IsOwner(userID, caller.ID) && !auth.IsSuper(caller) {
		return nil, notAuthorized("userbookmark_get_not_allowed")
	}

	bookmarks, err := s.bookmarks.ListByUser(ctx, userID)
	if err != nil {
		return nil, persistence("userbookmark_read_failed", err)
	}
	return bookmarks, nil
}

// ListByType returns the bookmarks owned by userID for one resource type.
func (s *UserBookmarkService) ListByType(ctx context.Context, caller *auth.Context, userID, typ string) ([]*models.UserBookmark, error) {
	if !auth.IsOwner(userID, caller.ID) && !auth.IsSuper(caller) {
		return nil, notAuthorized("userbookmark_get_not_allowed")
	}

	bookmarks, err := s.bookmarks.ListByUserAndType(ctx, userID, typ)
	if err != nil {
		return nil, persistence("userbookmark_read_failed", err)
	}
	return bookmarks, nil
}

// Get returns the bookmark keyed by userID, type and objectID.
func (s *UserBookmarkService) Get(ctx context.Context, caller *auth.Context, userID, typ, objectID string) (*models.UserBookmark, error) {
	if !auth.IsOwner(userID, caller.ID) && !auth.IsSuper(caller) {
		return nil, notAuthorized("userbookmark_get_not_allowed")
	}

	bookmark, err := s.bookmarks.Get(ctx, userID, typ, objectID)
	if errors.Is(err, store.ErrBookmarkNotFound) {
		return nil, notFound("userbookmark_not_found")
	}
	if err != nil {
		return nil, persistence("userbookmark_read_failed", err)
	}
	return bookmark, nil
}

// Create records a bookmark for one object.
func (s *UserBookmarkService) Create(ctx context.Context, caller *auth.Context, input *UserBookmarkInput) (*models.UserBookmark, error) {
	if !auth.IsOwner(input.UserID, caller.ID) && !auth.IsSuper(caller) {
		return nil, notAuthorized("userbookmark_create_not_allowed")
	}
	if input.UserID == "" {
		return nil, invalid("userbookmark_id_invalid")
	}
	if input.Type == "" {
		return nil, invalid("userbookmark_type_invalid")
	}
	if input.ObjectID == "" {
		return nil, invalid("userbookmark_objectid_invalid")
	}

	bookmark := &models.UserBookmark{
		UserID:    input.UserID,
		Type:      input.Type,
		ObjectID:  input.ObjectID,
		CreatedAt: time.Now(),
	}

	if err := s.bookmarks.Create(ctx, bookmark); err != nil {
		if errors.Is(err, store.ErrBookmarkAlreadyExists) {
			return nil, alreadyExists("userbookmark_already_exists")
		}
		return nil, persistence("userbookmark_create_failed", err)
	}

	return bookmark, nil
}

// Delete removes the bookmark keyed by userID, type and objectID.
func (s *UserBookmarkService) Delete(ctx context.Context, caller *auth.Context, userID, typ, objectID string) (*models.UserBookmark, error) {
	if !auth.IsOwner(userID, caller.ID) && !auth.IsSuper(caller) {
		return nil, notAuthorized("userbookmark_delete_not_allowed")
	}

	found, err := s.Get(ctx, caller, userID, typ, objectID)
	if err != nil {
		return nil, err
	}

	if err := s.bookmarks.Delete(ctx, userID, typ, objectID); err != nil {
		if errors.Is(err, store.ErrBookmarkNotFound) {
			return nil, notFound("userbookmark_not_found")
		}
		return nil, persistence("userbookmark_delete_failed", err)
	}

	return found, nil
}

// DeleteAll removes every bookmark owned by userID and returns the removed
// rows.
func (s *UserBookmarkService) DeleteAll(ctx context.Context, caller *auth.Context, userID string) ([]*models.UserBookmark, error) {
	if !auth.IsOwner(userID, caller.ID) && !auth.IsSuper(caller) {
		return nil, notAuthorized("userbookmark_delete_not_allowed")
	}

	removed, err := s.bookmarks.DeleteByUser(ctx, userID)
	if errors.Is(err, store.ErrBookmarkNotFound) {
		return nil, notFound("userbookmark_not_found")
	}
	if err != nil {
		return nil, persistence("userbookmark_delete_failed", err)
	}
	return removed, nil
}

// DeleteByType removes every bookmark owned by userID for one resource
// type and returns the removed rows.
func (s *UserBookmarkService) DeleteByType(ctx context.Context, caller *auth.Context, userID, typ string) ([]*models.UserBookmark, error) {
	if !auth.IsOwner(userID, caller.ID) && !auth.IsSuper(caller) {
		return nil, notAuthorized("userbookmark_delete_not_allowed")
	}

	removed, err := s.bookmarks.DeleteByUserAndType(ctx, userID, typ)
	if errors.Is(err, store.ErrBookmarkNotFound) {
		return nil, notFound("userbookmark_not_found")
	}
	if err != nil {
		return nil, persistence("userbookmark_delete_failed", err)
	}
	return removed, nil
}
