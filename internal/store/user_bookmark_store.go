package store

import (
	"context"
	"errors"

	"github.com/tenantkit/tenantkit/internal/models"
)

// Sentinel errors for user bookmark store operations
var (
	ErrBookmarkNotFound      = errors.New("user bookmark not found")
	ErrBookmarkAlreadyExists = errors.New("user bookmark already exists")
)

// UserBookmarkStore defines the interface for per-user bookmarks. Rows are
// keyed by (userID, type, objectID).
type UserBookmarkStore interface {
	// Create creates a bookmark.
	// Returns ErrBookmarkAlreadyExists if the key is taken.
	Create(ctx context.Context, bookmark *models.UserBookmark) error

	// Get retrieves a single bookmark by its full key.
	// Returns ErrBookmarkNotFound if no such bookmark exists.
	Get(ctx context.Context, userID, bookmarkType, objectID string) (*models.UserBookmark, error)

	// ListByUser returns all bookmarks of the given user.
	ListByUser(ctx context.Context, userID string) ([]*models.UserBookmark, error)

	// ListByUserAndType returns the user's bookmarks for one resource type.
	ListByUserAndType(ctx context.Context, userID, bookmarkType string) ([]*models.UserBookmark, error)

	// Delete deletes a single bookmark by its full key.
	// Returns ErrBookmarkNotFound if no such bookmark exists.
	Delete(ctx context.Context, userID, bookmarkType, objectID string) error

	// DeleteByUser deletes every bookmark of the given user and returns the
	// removed rows. Returns ErrBookmarkNotFound if the user has none.
	DeleteByUser(ctx context.Context, userID string) ([]*models.UserBookmark, error)

	// DeleteByUserAndType deletes the user's bookmarks for one resource
	// type and returns the removed rows.
	// Returns ErrBookmarkNotFound if there are none.
	DeleteByUserAndType(ctx context.Context, userID, bookmarkType string) ([]*models.UserBookmark, error)
}
