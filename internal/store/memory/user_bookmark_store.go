package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store"
)

type bookmarkKey struct {
	userID   string
	typ      string
	objectID string
}

// UserBookmarkStore implements store.UserBookmarkStore using in-memory storage.
type UserBookmarkStore struct {
	mu sync.RWMutex

	bookmarks map[bookmarkKey]*models.UserBookmark
}

// NewUserBookmarkStore creates a new in-memory user bookmark store.
func NewUserBookmarkStore() *UserBookmarkStore {
	return &UserBookmarkStore{
		bookmarks: make(map[bookmarkKey]*models.UserBookmark),
	}
}

// Create creates a bookmark.
func (s *UserBookmarkStore) Create(ctx context.Context, bookmark *models.UserBookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := bookmarkKey{bookmark.UserID, bookmark.Type, bookmark.ObjectID}
	if _, exists := s.bookmarks[key]; exists {
		return store.ErrBookmarkAlreadyExists
	}

	clone := *bookmark
	s.bookmarks[key] = &clone

	return nil
}

// Get retrieves a single bookmark by its full key.
func (s *UserBookmarkStore) Get(ctx context.Context, userID, bookmarkType, objectID string) (*models.UserBookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookmark, exists := s.bookmarks[bookmarkKey{userID, bookmarkType, objectID}]
	if !exists {
		return nil, store.ErrBookmarkNotFound
	}

	clone := *bookmark
	return &clone, nil
}

// ListByUser returns all bookmarks of the given user.
func (s *UserBookmarkStore) ListByUser(ctx context.Context, userID string) ([]*models.UserBookmark, error) {
	return s.list(userID, "")
}

// ListByUserAndType returns the user's bookmarks for one resource type.
func (s *UserBookmarkStore) ListByUserAndType(ctx context.Context, userID, bookmarkType string) ([]*models.UserBookmark, error) {
	return s.list(userID, bookmarkType)
}

func (s *UserBookmarkStore) list(userID, bookmarkType string) ([]*models.UserBookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*models.UserBookmark
	for key, bookmark := range s.bookmarks {
		if key.userID != userID {
			continue
		}
		if bookmarkType != "" && key.typ != bookmarkType {
			continue
		}
		clone := *bookmark
		matched = append(matched, &clone)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Type != matched[j].Type {
			return matched[i].Type < matched[j].Type
		}
		return matched[i].ObjectID < matched[j].ObjectID
	})

	return matched, nil
}

// Delete deletes a single bookmark by its full key.
func (s *UserBookmarkStore) Delete(ctx context.Context, userID, bookmarkType, objectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := bookmarkKey{userID, bookmarkType, objectID}
	if _, exists := s.bookmarks[key]; !exists {
		return store.ErrBookmarkNotFound
	}

	delete(s.bookmarks, key)

	return nil
}

// DeleteByUser deletes every bookmark of the given user.
func (s *UserBookmarkStore) DeleteByUser(ctx context.Context, userID string) ([]*models.UserBookmark, error) {
	return s.deleteMatching(userID, "")
}

// DeleteByUserAndType deletes the user's bookmarks for one resource type.
func (s *UserBookmarkStore) DeleteByUserAndType(ctx context.Context, userID, bookmarkType string) ([]*models.UserBookmark, error) {
	return s.deleteMatching(userID, bookmarkType)
}

func (s *UserBookmarkStore) deleteMatching(userID, bookmarkType string) ([]*models.UserBookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []*models.UserBookmark
	for key, bookmark := range s.bookmarks {
		if key.userID != userID {
			continue
		}
		if bookmarkType != "" && key.typ != bookmarkType {
			continue
		}
		clone := *bookmark
		removed = append(removed, &clone)
		delete(s.bookmarks, key)
	}

	if len(removed) == 0 {
		return nil, store.ErrBookmarkNotFound
	}

	sort.Slice(removed, func(i, j int) bool {
		if removed[i].Type != removed[j].Type {
			return removed[i].Type < removed[j].Type
		}
		return removed[i].ObjectID < removed[j].ObjectID
	})

	return removed, nil
}
