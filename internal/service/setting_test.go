package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tenantkit/tenantkit/internal/auth"
	"github.com/tenantkit/tenantkit/internal/models"
)

func TestUserSettingService_GetOrDefault(t *testing.T) {
	owner := callerWith("bob-tester", "THQ", auth.RoleTester)

	t.Run("type-specific row wins", func(t *testing.T) {
		f := newFixture(t)
		f.seedSetting(t, "bob-tester", models.DefaultSettingType, 10)
		f.seedSetting(t, "bob-tester", models.TypeReceivers, 5)

		setting, err := f.settings.GetOrDefault(context.Background(), owner, "bob-tester", models.TypeReceivers)
		require.NoError(t, err)
		require.Equal(t, models.TypeReceivers, setting.Type)
		require.Equal(t, 5, setting.ListLimit)
	})

	t.Run("falls back to the default row", func(t *testing.T) {
		f := newFixture(t)
		f.seedSetting(t, "bob-tester", models.DefaultSettingType, 10)

		setting, err := f.settings.GetOrDefault(context.Background(), owner, "bob-tester", models.TypeReceivers)
		require.NoError(t, err)
		require.Equal(t, models.DefaultSettingType, setting.Type)
	})

	t.Run("no rows at all", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.settings.GetOrDefault(context.Background(), owner, "bob-tester", models.TypeReceivers)
		require.Equal(t, KindNotFound, KindOf(err))
		require.Equal(t, "usersetting_not_found", CodeOf(err))
	})

	t.Run("non-owner is refused", func(t *testing.T) {
		f := newFixture(t)
		f.seedSetting(t, "bob-tester", models.DefaultSettingType, 10)

		_, err := f.settings.GetOrDefault(context.Background(), callerWith("carol-audit", "THQ", auth.RoleAuditor), "bob-tester", models.TypeReceivers)
		require.Equal(t, KindNotAuthorized, KindOf(err))
		require.Equal(t, "usersetting_get_not_allowed", CodeOf(err))
	})
}

func TestUserSettingService_Create(t *testing.T) {
	owner := callerWith("bob-tester", "THQ", auth.RoleTester)

	t.Run("owner creates an override with defaults filled in", func(t *testing.T) {
		f := newFixture(t)

		setting, err := f.settings.Create(context.Background(), owner, &UserSettingInput{
			UserID:    "bob-tester",
			Type:      models.TypeReceivers,
			ListLimit: intPtr(25),
		})
		require.NoError(t, err)
		require.Equal(t, 25, setting.ListLimit)
		require.Equal(t, models.DefaultBookmarkExpiration, setting.BookmarkExpiration)
	})

	t.Run("duplicate type is refused", func(t *testing.T) {
		f := newFixture(t)
		f.seedSetting(t, "bob-tester", models.TypeReceivers, 5)

		_, err := f.settings.Create(context.Background(), owner, &UserSettingInput{
			UserID: "bob-tester",
			Type:   models.TypeReceivers,
		})
		require.Equal(t, KindAlreadyExists, KindOf(err))
		require.Equal(t, "usersetting_already_exists", CodeOf(err))
	})

	t.Run("negative values are refused", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.settings.Create(context.Background(), owner, &UserSettingInput{
			UserID:    "bob-tester",
			Type:      models.TypeReceivers,
			ListLimit: intPtr(-1),
		})
		require.Equal(t, "usersetting_listlimit_invalid", CodeOf(err))

		_, err = f.settings.Create(context.Background(), owner, &UserSettingInput{
			UserID:             "bob-tester",
			Type:               models.TypeReceivers,
			BookmarkExpiration: intPtr(-1),
		})
		require.Equal(t, "usersetting_bookmarkexpiration_invalid", CodeOf(err))
	})

	t.Run("missing type is refused", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.settings.Create(context.Background(), owner, &UserSettingInput{
			UserID: "bob-tester",
		})
		require.Equal(t, "usersetting_type_invalid", CodeOf(err))
	})

	t.Run("non-owner is refused", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.settings.Create(context.Background(), callerWith("carol-audit", "THQ", auth.RoleAuditor), &UserSettingInput{
			UserID: "bob-tester",
			Type:   models.TypeReceivers,
		})
		require.Equal(t, "usersetting_create_not_allowed", CodeOf(err))
	})
}

func TestUserSettingService_Update(t *testing.T) {
	owner := callerWith("bob-tester", "THQ", auth.RoleTester)

	t.Run("merges partial fields", func(t *testing.T) {
		f := newFixture(t)
		f.seedSetting(t, "bob-tester", models.TypeReceivers, 5)

		setting, err := f.settings.Update(context.Background(), owner, &UserSettingInput{
			UserID:    "bob-tester",
			Type:      models.TypeReceivers,
			ListLimit: intPtr(20),
		})
		require.NoError(t, err)
		require.Equal(t, 20, setting.ListLimit)
		require.Equal(t, models.DefaultBookmarkExpiration, setting.BookmarkExpiration)
	})

	t.Run("missing row", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.settings.Update(context.Background(), owner, &UserSettingInput{
			UserID: "bob-tester",
			Type:   models.TypeReceivers,
		})
		require.Equal(t, "usersetting_not_found", CodeOf(err))
	})
}

func TestUserSettingService_Delete(t *testing.T) {
	owner := callerWith("bob-tester", "THQ", auth.RoleTester)

	t.Run("owner deletes an override", func(t *testing.T) {
		f := newFixture(t)
		f.seedSetting(t, "bob-tester", models.TypeReceivers, 5)

		setting, err := f.settings.Delete(context.Background(), owner, "bob-tester", models.TypeReceivers)
		require.NoError(t, err)
		require.Equal(t, models.TypeReceivers, setting.Type)
	})

	t.Run("owner cannot delete the default row", func(t *testing.T) {
		f := newFixture(t)
		f.seedSetting(t, "bob-tester", models.DefaultSettingType, 10)

		_, err := f.settings.Delete(context.Background(), owner, "bob-tester", models.DefaultSettingType)
		require.Equal(t, KindNotAuthorized, KindOf(err))
		require.Equal(t, "usersetting_delete_not_allowed", CodeOf(err))
	})

	t.Run("super deletes the default row", func(t *testing.T) {
		f := newFixture(t)
		f.seedSetting(t, "bob-tester", models.DefaultSettingType, 10)

		_, err := f.settings.Delete(context.Background(), superCaller(), "bob-tester", models.DefaultSettingType)
		require.NoError(t, err)
	})
}

func TestUserSettingService_DeleteAll(t *testing.T) {
	owner := callerWith("bob-tester", "THQ", auth.RoleTester)

	t.Run("removes overrides but keeps the default row", func(t *testing.T) {
		f := newFixture(t)
		f.seedSetting(t, "bob-tester", models.DefaultSettingType, 10)
		f.seedSetting(t, "bob-tester", models.TypeReceivers, 5)
		f.seedSetting(t, "bob-tester", models.TypeOrganizations, 15)

		removed, err := f.settings.DeleteAll(context.Background(), owner, "bob-tester")
		require.NoError(t, err)
		require.Len(t, removed, 2)

		remaining, err := f.settingStore.ListByUser(context.Background(), "bob-tester")
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		require.Equal(t, models.DefaultSettingType, remaining[0].Type)
	})

	t.Run("no rows to remove", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.settings.DeleteAll(context.Background(), owner, "bob-tester")
		require.Equal(t, KindNotFound, KindOf(err))
		require.Equal(t, "usersetting_not_found", CodeOf(err))
	})
}
