package store

import (
	"context"
	"errors"

	"github.com/tenantkit/tenantkit/internal/models"
)

// Sentinel errors for organization store operations
var (
	ErrOrganizationNotFound      = errors.New("organization not found")
	ErrOrganizationAlreadyExists = errors.New("organization already exists")
)

// OrganizationStore defines the interface for organization (tenant node)
// storage. Structural tree invariants (self-reference, cycles, dependents)
// are enforced by the service layer before writes reach the store; the store
// enforces ID uniqueness.
type OrganizationStore interface {
	// Create creates a new organization.
	// Returns ErrOrganizationAlreadyExists if the ID is taken.
	Create(ctx context.Context, org *models.Organization) error

	// Get retrieves an organization by ID.
	// Returns ErrOrganizationNotFound if the organization doesn't exist.
	Get(ctx context.Context, id string) (*models.Organization, error)

	// Update replaces an existing organization record.
	// Returns ErrOrganizationNotFound if the organization doesn't exist.
	Update(ctx context.Context, org *models.Organization) error

	// Delete deletes an organization by ID. Dependent checks (children,
	// member users, member receivers) happen in the service layer.
	// Returns ErrOrganizationNotFound if the organization doesn't exist.
	Delete(ctx context.Context, id string) error

	// List returns organizations matching the filter, ordered by ID.
	List(ctx context.Context, filter ListFilter) ([]*models.Organization, error)

	// ListAll returns every organization, ordered by ID. The tenant
	// resolver uses this to rebuild the tree on each scope resolution.
	ListAll(ctx context.Context) ([]*models.Organization, error)

	// CountChildren returns the number of organizations whose parent is id.
	CountChildren(ctx context.Context, id string) (int, error)
}
