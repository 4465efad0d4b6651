package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store"
)

func newOrg(id, parentID string) *models.Organization {
	org := &models.Organization{
		ID:        id,
		Name:      "org " + id,
		Status:    models.StatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if parentID != "" {
		org.ParentID = &parentID
	}
	return org
}

func TestOrganizationStore_Create(t *testing.T) {
	t.Run("create new organization", func(t *testing.T) {
		s := NewOrganizationStore()

		err := s.Create(context.Background(), newOrg("THQ", ""))
		require.NoError(t, err)
	})

	t.Run("create duplicate returns error", func(t *testing.T) {
		s := NewOrganizationStore()

		require.NoError(t, s.Create(context.Background(), newOrg("THQ", "")))

		err := s.Create(context.Background(), newOrg("THQ", ""))
		require.ErrorIs(t, err, store.ErrOrganizationAlreadyExists)
	})

	t.Run("stored value is a clone", func(t *testing.T) {
		s := NewOrganizationStore()

		org := newOrg("THQ", "")
		require.NoError(t, s.Create(context.Background(), org))
		org.Name = "mutated"

		got, err := s.Get(context.Background(), "THQ")
		require.NoError(t, err)
		require.Equal(t, "org THQ", got.Name)
	})
}

func TestOrganizationStore_Get(t *testing.T) {
	t.Run("get existing organization", func(t *testing.T) {
		s := NewOrganizationStore()
		require.NoError(t, s.Create(context.Background(), newOrg("THQ", "")))

		got, err := s.Get(context.Background(), "THQ")
		require.NoError(t, err)
		require.Equal(t, "THQ", got.ID)
	})

	t.Run("get missing organization returns error", func(t *testing.T) {
		s := NewOrganizationStore()

		_, err := s.Get(context.Background(), "nope")
		require.ErrorIs(t, err, store.ErrOrganizationNotFound)
	})
}

func TestOrganizationStore_List(t *testing.T) {
	seed := func(t *testing.T) *OrganizationStore {
		t.Helper()

		s := NewOrganizationStore()
		require.NoError(t, s.Create(context.Background(), newOrg("THQ", "")))
		require.NoError(t, s.Create(context.Background(), newOrg("TEU", "THQ")))
		require.NoError(t, s.Create(context.Background(), newOrg("TUS", "THQ")))
		return s
	}

	t.Run("zero filter returns everything sorted by id", func(t *testing.T) {
		s := seed(t)

		orgs, err := s.List(context.Background(), store.ListFilter{})
		require.NoError(t, err)
		require.Len(t, orgs, 3)
		require.Equal(t, "TEU", orgs[0].ID)
		require.Equal(t, "THQ", orgs[1].ID)
		require.Equal(t, "TUS", orgs[2].ID)
	})

	t.Run("org filter applies to the node's own id", func(t *testing.T) {
		s := seed(t)

		orgs, err := s.List(context.Background(), store.ListFilter{OrgIDs: []string{"TEU", "TUS"}})
		require.NoError(t, err)
		require.Len(t, orgs, 2)
	})

	t.Run("non-nil empty include matches nothing", func(t *testing.T) {
		s := seed(t)

		orgs, err := s.List(context.Background(), store.ListFilter{IncludeIDs: []string{}})
		require.NoError(t, err)
		require.Empty(t, orgs)
	})

	t.Run("exclude removes ids", func(t *testing.T) {
		s := seed(t)

		orgs, err := s.List(context.Background(), store.ListFilter{ExcludeIDs: []string{"THQ"}})
		require.NoError(t, err)
		require.Len(t, orgs, 2)
	})

	t.Run("skip and take window the result", func(t *testing.T) {
		s := seed(t)

		orgs, err := s.List(context.Background(), store.ListFilter{Skip: 1, Take: 1})
		require.NoError(t, err)
		require.Len(t, orgs, 1)
		require.Equal(t, "THQ", orgs[0].ID)
	})

	t.Run("skip past the end is empty", func(t *testing.T) {
		s := seed(t)

		orgs, err := s.List(context.Background(), store.ListFilter{Skip: 10, Take: 5})
		require.NoError(t, err)
		require.Empty(t, orgs)
	})
}

func TestOrganizationStore_CountChildren(t *testing.T) {
	s := NewOrganizationStore()
	require.NoError(t, s.Create(context.Background(), newOrg("THQ", "")))
	require.NoError(t, s.Create(context.Background(), newOrg("TEU", "THQ")))
	require.NoError(t, s.Create(context.Background(), newOrg("TUS", "THQ")))
	require.NoError(t, s.Create(context.Background(), newOrg("TDE", "TEU")))

	count, err := s.CountChildren(context.Background(), "THQ")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	count, err = s.CountChildren(context.Background(), "TDE")
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestOrganizationStore_Delete(t *testing.T) {
	t.Run("delete existing organization", func(t *testing.T) {
		s := NewOrganizationStore()
		require.NoError(t, s.Create(context.Background(), newOrg("THQ", "")))

		require.NoError(t, s.Delete(context.Background(), "THQ"))

		_, err := s.Get(context.Background(), "THQ")
		require.ErrorIs(t, err, store.ErrOrganizationNotFound)
	})

	t.Run("delete missing organization returns error", func(t *testing.T) {
		s := NewOrganizationStore()

		err := s.Delete(context.Background(), "nope")
		require.ErrorIs(t, err, store.ErrOrganizationNotFound)
	})
}
