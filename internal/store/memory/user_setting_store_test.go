package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tenantkit/tenantkit/internal/models"
	"github.com/tenantkit/tenantkit/internal/store"
)

func newSetting(userID, typ string) *models.UserSetting {
	return &models.UserSetting{
		UserID:             userID,
		Type:               typ,
		ListLimit:          models.DefaultListLimit,
		BookmarkExpiration: models.DefaultBookmarkExpiration,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
}

func TestUserSettingStore_Create(t *testing.T) {
	t.Run("create new setting", func(t *testing.T) {
		s := NewUserSettingStore()

		err := s.Create(context.Background(), newSetting("bob-tester", models.DefaultSettingType))
		require.NoError(t, err)
	})

	t.Run("duplicate user and type returns error", func(t *testing.T) {
		s := NewUserSettingStore()
		require.NoError(t, s.Create(context.Background(), newSetting("bob-tester", models.TypeReceivers)))

		err := s.Create(context.Background(), newSetting("bob-tester", models.TypeReceivers))
		require.ErrorIs(t, err, store.ErrSettingAlreadyExists)
	})

	t.Run("same type for another user is fine", func(t *testing.T) {
		s := NewUserSettingStore()
		require.NoError(t, s.Create(context.Background(), newSetting("bob-tester", models.TypeReceivers)))
		require.NoError(t, s.Create(context.Background(), newSetting("carol-audit", models.TypeReceivers)))
	})
}

func TestUserSettingStore_Get(t *testing.T) {
	s := NewUserSettingStore()
	require.NoError(t, s.Create(context.Background(), newSetting("bob-tester", models.TypeReceivers)))

	t.Run("get existing setting", func(t *testing.T) {
		got, err := s.Get(context.Background(), "bob-tester", models.TypeReceivers)
		require.NoError(t, err)
		require.Equal(t, models.TypeReceivers, got.Type)
	})

	t.Run("get missing setting returns error", func(t *testing.T) {
		_, err := s.Get(context.Background(), "bob-tester", models.TypeOrganizations)
		require.ErrorIs(t, err, store.ErrSettingNotFound)
	})
}

func TestUserSettingStore_DeleteByUser(t *testing.T) {
	seed := func(t *testing.T) *UserSettingStore {
		t.Helper()

		s := NewUserSettingStore()
		require.NoError(t, s.Create(context.Background(), newSetting("bob-tester", models.DefaultSettingType)))
		require.NoError(t, s.Create(context.Background(), newSetting("bob-tester", models.TypeReceivers)))
		require.NoError(t, s.Create(context.Background(), newSetting("bob-tester", models.TypeOrganizations)))
		return s
	}

	t.Run("without includeDefault the default row survives", func(t *testing.T) {
		s := seed(t)

		removed, err := s.DeleteByUser(context.Background(), "bob-tester", false)
		require.NoError(t, err)
		require.Len(t, removed, 2)

		remaining, err := s.ListByUser(context.Background(), "bob-tester")
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		require.Equal(t, models.DefaultSettingType, remaining[0].Type)
	})

	t.Run("with includeDefault everything goes", func(t *testing.T) {
		s := seed(t)

		removed, err := s.DeleteByUser(context.Background(), "bob-tester", true)
		require.NoError(t, err)
		require.Len(t, removed, 3)

		remaining, err := s.ListByUser(context.Background(), "bob-tester")
		require.NoError(t, err)
		require.Empty(t, remaining)
	})

	t.Run("nothing to delete returns error", func(t *testing.T) {
		s := NewUserSettingStore()

		_, err := s.DeleteByUser(context.Background(), "bob-tester", false)
		require.ErrorIs(t, err, store.ErrSettingNotFound)
	})
}
