package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store"
)

// ReceiverStore implements store.ReceiverStore using in-memory storage.
type ReceiverStore struct {
	mu sync.RWMutex

	receivers map[string]*models.Receiver // id -> Receiver
}

// NewReceiverStore creates a new in-memory receiver store.
func NewReceiverStore() *ReceiverStore {
	return &ReceiverStore{
		receivers: make(map[string]*models.Receiver),
	}
}

// Create creates a new receiver in memory.
func (s *ReceiverStore) Create(ctx context.Context, rcv *models.Receiver) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.receivers[rcv.ID]; exists {
		return store.ErrReceiverAlreadyExists
	}

	clone := *rcv
	s.receivers[rcv.ID] = &clone

	return nil
}

// Get retrieves a receiver by ID.
func (s *ReceiverStore) Get(ctx context.Context, id string) (*models.Receiver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rcv, exists := s.receivers[id]
	if !exists {
		return nil, store.ErrReceiverNotFound
	}

	clone := *rcv
	return &clone, nil
}

// Update updates an existing receiver.
func (s *ReceiverStore) Update(ctx context.Context, rcv *models.Receiver) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.receivers[rcv.ID]; !exists {
		return store.ErrReceiverNotFound
	}

	rcv.UpdatedAt = time.Now()

	clone := *rcv
	s.receivers[rcv.ID] = &clone

	return nil
}

// Delete deletes a receiver by ID.
func (s *ReceiverStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.receivers[id]; !exists {
		return store.ErrReceiverNotFound
	}

	delete(s.receivers, id)

	return nil
}

// List returns receivers matching the filter, ordered by ID.
func (s *ReceiverStore) List(ctx context.Context, filter store.ListFilter) ([]*models.Receiver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*models.Receiver
	for _, rcv := range s.receivers {
		if filter.Matches(rcv.ID, rcv.OrgID) {
			clone := *rcv
			matched = append(matched, &clone)
		}
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	return window(matched, filter.Skip, filter.Take), nil
}

// CountByOrg returns the number of receivers owned by the given tenant.
func (s *ReceiverStore) CountByOrg(ctx context.Context, orgID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, rcv := range s.receivers {
		if rcv.OrgID == orgID {
			count++
		}
	}

	return count, nil
}

// MaxID returns the numerically largest receiver ID, or "" when empty.
func (s *ReceiverStore) MaxID(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	max := int64(-1)
	for id := range s.receivers {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}

	if max < 0 {
		return "", nil
	}
	return strconv.FormatInt(max, 10), nil
}
