package store

import (
	"context"
	"errors"

	"github.com/tenantkit/tenantkit/internal/models"
)

// Sentinel errors for receiver store operations
var (
	ErrReceiverNotFound      = errors.New("receiver not found")
	ErrReceiverAlreadyExists = errors.New("receiver already exists")
)

// ReceiverStore defines the interface for receiver (customer) storage.
type ReceiverStore interface {
	// Create creates a new receiver.
	// Returns ErrReceiverAlreadyExists if the ID is taken.
	Create(ctx context.Context, rcv *models.Receiver) error

	// Get retrieves a receiver by ID regardless of tenant.
	// Returns ErrReceiverNotFound if the receiver doesn't exist.
	Get(ctx context.Context, id string) (*models.Receiver, error)

	// Update replaces an existing receiver record.
	// Returns ErrReceiverNotFound if the receiver doesn't exist.
	Update(ctx context.Context, rcv *models.Receiver) error

	// Delete deletes a receiver by ID.
	// Returns ErrReceiverNotFound if the receiver doesn't exist.
	Delete(ctx context.Context, id string) error

	// List returns receivers matching the filter, ordered by ID.
	List(ctx context.Context, filter ListFilter) ([]*models.Receiver, error)

	// CountByOrg returns the number of receivers owned by the given tenant.
	CountByOrg(ctx context.Context, orgID string) (int, error)

	// MaxID returns the numerically largest receiver ID, or "" when the
	// store is empty. Used for sequential ID allocation.
	MaxID(ctx context.Context) (string, error)
}
