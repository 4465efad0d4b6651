package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store"
)

// UserStore implements store.UserStore using in-memory storage.
type UserStore struct {
	mu sync.RWMutex

	users map[string]*models.User // id -> User
}

// NewUserStore creates a new in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[string]*models.User),
	}
}

// Create creates a new user in memory.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.ID]; exists {
		return store.ErrUserAlreadyExists
	}

	s.users[user.ID] = cloneUser(user)

	return nil
}

// Get retrieves a user by ID.
func (s *UserStore) Get(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, store.ErrUserNotFound
	}

	return cloneUser(user), nil
}

// Update updates an existing user.
func (s *UserStore) Update(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.ID]; !exists {
		return store.ErrUserNotFound
	}

	user.UpdatedAt = time.Now()

	s.users[user.ID] = cloneUser(user)

	return nil
}

// Delete deletes a user by ID.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[id]; !exists {
		return store.ErrUserNotFound
	}

	delete(s.users, id)

	return nil
}

// List returns users matching the filter, ordered by ID.
func (s *UserStore) List(ctx context.Context, filter store.ListFilter) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*models.User
	for _, user := range s.users {
		if filter.Matches(user.ID, user.OrgID) {
			matched = append(matched, cloneUser(user))
		}
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	return window(matched, filter.Skip, filter.Take), nil
}

// CountByOrg returns the number of users homed in the given tenant.
func (s *UserStore) CountByOrg(ctx context.Context, orgID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, user := range s.users {
		if user.OrgID == orgID {
			count++
		}
	}

	return count, nil
}

// cloneUser copies the user including its roles slice, so callers cannot
// mutate stored state through the returned pointer.
func cloneUser(user *models.User) *models.User {
	clone := *user
	clone.Roles = append([]string(nil), user.Roles...)
	return &clone
}
