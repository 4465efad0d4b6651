package store

import (
	"context"
	"errors"

	"github.com/tenantkit/tenantkit/internal/models"
)

// Sentinel errors for user store operations
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserStore defines the interface for user storage. Profiles, settings and
// bookmarks are separate stores keyed by the user's ID.
type UserStore interface {
	// Create creates a new user.
	// Returns ErrUserAlreadyExists if the ID is taken.
	Create(ctx context.Context, user *models.User) error

	// Get retrieves a user by ID.
	// Returns ErrUserNotFound if the user doesn't exist.
	Get(ctx context.Context, id string) (*models.User, error)

	// Update replaces an existing user record.
	// Returns ErrUserNotFound if the user doesn't exist.
	Update(ctx context.Context, user *models.User) error

	// Delete deletes a user by ID.
	// Returns ErrUserNotFound if the user doesn't exist.
	Delete(ctx context.Context, id string) error

	// List returns users matching the filter, ordered by ID.
	List(ctx context.Context, filter ListFilter) ([]*models.User, error)

	// CountByOrg returns the number of users homed in the given tenant.
	CountByOrg(ctx context.Context, orgID string) (int, error)
}
