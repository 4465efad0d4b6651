// Package memory provides in-memory store implementations. They are used by
// the unit tests and by the server when no database is configured; data is
// lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store"
)

// OrganizationStore implements store.OrganizationStore using in-memory storage.
type OrganizationStore struct {
	mu sync.RWMutex

	organizations map[string]*models.Organization // id -> Organization
}

// NewOrganizationStore creates a new in-memory organization store.
func NewOrganizationStore() *OrganizationStore {
	return &OrganizationStore{
		organizations: make(map[string]*models.Organization),
	}
}

// Create creates a new organization in memory.
func (s *OrganizationStore) Create(ctx context.Context, org *models.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.organizations[org.ID]; exists {
		return store.ErrOrganizationAlreadyExists
	}

	// Clone to avoid external modifications
	clone := *org
	s.organizations[org.ID] = &clone

	return nil
}

// Get retrieves an organization by ID.
func (s *OrganizationStore) Get(ctx context.Context, id string) (*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	org, exists := s.organizations[id]
	if !exists {
		return nil, store.ErrOrganizationNotFound
	}

	clone := *org
	return &clone, nil
}

// Update updates an existing organization.
func (s *OrganizationStore) Update(ctx context.Context, org *models.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.organizations[org.ID]; !exists {
		return store.ErrOrganizationNotFound
	}

	org.UpdatedAt = time.Now()

	clone := *org
	s.organizations[org.ID] = &clone

	return nil
}

// Delete deletes an organization by ID.
func (s *OrganizationStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.organizations[id]; !exists {
		return store.ErrOrganizationNotFound
	}

	delete(s.organizations, id)

	return nil
}

// List returns organizations matching the filter, ordered by ID.
func (s *OrganizationStore) List(ctx context.Context, filter store.ListFilter) ([]*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*models.Organization
	for _, org := range s.organizations {
		// A root node has no owning tenant other than itself.
		if filter.Matches(org.ID, org.ID) {
			clone := *org
			matched = append(matched, &clone)
		}
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	return window(matched, filter.Skip, filter.Take), nil
}

// ListAll returns every organization, ordered by ID.
func (s *OrganizationStore) ListAll(ctx context.Context) ([]*models.Organization, error) {
	return s.List(ctx, store.ListFilter{})
}

// CountChildren returns the number of organizations whose parent is id.
func (s *OrganizationStore) CountChildren(ctx context.Context, id string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, org := range s.organizations {
		if org.ParentID != nil && *org.ParentID == id {
			count++
		}
	}

	return count, nil
}

// window applies skip/take to a sorted result set. take == 0 means no limit.
func window[T any](items []T, skip, take int) []T {
	if skip >= len(items) {
		return nil
	}
	items = items[skip:]
	if take > 0 && take < len(items) {
		items = items[:take]
	}
	return items
}
