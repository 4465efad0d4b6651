package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tenantkit/tenantkit/internal/auth"
	"github.com/tenantkit/tenantkit/internal/models"
)

func TestUserBookmarkService_Create(t *testing.T) {
	owner := callerWith("bob-tester", "THQ", auth.RoleTester)

	t.Run("owner bookmarks an object", func(t *testing.T) {
		f := newFixture(t)

		bookmark, err := f.bookmarks.Create(context.Background(), owner, &UserBookmarkInput{
			UserID:   "bob-tester",
			Type:     models.TypeReceivers,
			ObjectID: "1901",
		})
		require.NoError(t, err)
		require.Equal(t, "1901", bookmark.ObjectID)
	})

	t.Run("duplicate bookmark is refused", func(t *testing.T) {
		f := newFixture(t)
		f.seedBookmark(t, "bob-tester", models.TypeReceivers, "1901")

		_, err := f.bookmarks.Create(context.Background(), owner, &UserBookmarkInput{
			UserID:   "bob-tester",
			Type:     models.TypeReceivers,
			ObjectID: "1901",
		})
		require.Equal(t, KindAlreadyExists, KindOf(err))
		require.Equal(t, "userbookmark_already_exists", CodeOf(err))
	})

	t.Run("incomplete key is refused", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.bookmarks.Create(context.Background(), owner, &UserBookmarkInput{
			UserID: "bob-tester",
			Type:   models.TypeReceivers,
		})
		require.Equal(t, "userbookmark_objectid_invalid", CodeOf(err))
	})

	t.Run("non-owner is refused", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.bookmarks.Create(context.Background(), callerWith("carol-audit", "THQ", auth.RoleAuditor), &UserBookmarkInput{
			UserID:   "bob-tester",
			Type:     models.TypeReceivers,
			ObjectID: "1901",
		})
		require.Equal(t, "userbookmark_create_not_allowed", CodeOf(err))
	})

	t.Run("super manages anyone's bookmarks", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.bookmarks.Create(context.Background(), superCaller(), &UserBookmarkInput{
			UserID:   "bob-tester",
			Type:     models.TypeReceivers,
			ObjectID: "1901",
		})
		require.NoError(t, err)
	})
}

func TestUserBookmarkService_List(t *testing.T) {
	owner := callerWith("bob-tester", "THQ", auth.RoleTester)

	f := newFixture(t)
	f.seedBookmark(t, "bob-tester", models.TypeReceivers, "1901")
	f.seedBookmark(t, "bob-tester", models.TypeReceivers, "1902")
	f.seedBookmark(t, "bob-tester", models.TypeOrganizations, "TEU")

	t.Run("all bookmarks", func(t *testing.T) {
		bookmarks, err := f.bookmarks.List(context.Background(), owner, "bob-tester")
		require.NoError(t, err)
		require.Len(t, bookmarks, 3)
	})

	t.Run("filtered by type", func(t *testing.T) {
		bookmarks, err := f.bookmarks.ListByType(context.Background(), owner, "bob-tester", models.TypeReceivers)
		require.NoError(t, err)
		require.Len(t, bookmarks, 2)
	})

	t.Run("non-owner is refused", func(t *testing.T) {
		_, err := f.bookmarks.List(context.Background(), callerWith("carol-audit", "THQ", auth.RoleAuditor), "bob-tester")
		require.Equal(t, "userbookmark_get_not_allowed", CodeOf(err))
	})
}

func TestUserBookmarkService_Delete(t *testing.T) {
	owner := callerWith("bob-tester", "THQ", auth.RoleTester)

	t.Run("removes one bookmark", func(t *testing.T) {
		f := newFixture(t)
		f.seedBookmark(t, "bob-tester", models.TypeReceivers, "1901")

		bookmark, err := f.bookmarks.Delete(context.Background(), owner, "bob-tester", models.TypeReceivers, "1901")
		require.NoError(t, err)
		require.Equal(t, "1901", bookmark.ObjectID)

		_, err = f.bookmarks.Get(context.Background(), owner, "bob-tester", models.TypeReceivers, "1901")
		require.Equal(t, KindNotFound, KindOf(err))
	})

	t.Run("missing bookmark", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.bookmarks.Delete(context.Background(), owner, "bob-tester", models.TypeReceivers, "1901")
		require.Equal(t, "userbookmark_not_found", CodeOf(err))
	})
}

func TestUserBookmarkService_DeleteAll(t *testing.T) {
	owner := callerWith("bob-tester", "THQ", auth.RoleTester)

	t.Run("returns the removed rows", func(t *testing.T) {
		f := newFixture(t)
		f.seedBookmark(t, "bob-tester", models.TypeReceivers, "1901")
		f.seedBookmark(t, "bob-tester", models.TypeOrganizations, "TEU")

		removed, err := f.bookmarks.DeleteAll(context.Background(), owner, "bob-tester")
		require.NoError(t, err)
		require.Len(t, removed, 2)
	})

	t.Run("nothing to remove", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.bookmarks.DeleteAll(context.Background(), owner, "bob-tester")
		require.Equal(t, KindNotFound, KindOf(err))
		require.Equal(t, "userbookmark_not_found", CodeOf(err))
	})
}

func TestUserBookmarkService_DeleteByType(t *testing.T) {
	owner := callerWith("bob-tester", "THQ", auth.RoleTester)

	t.Run("only the named type is removed", func(t *testing.T) {
		f := newFixture(t)
		f.seedBookmark(t, "bob-tester", models.TypeReceivers, "1901")
		f.seedBookmark(t, "bob-tester", models.TypeOrganizations, "TEU")

		removed, err := f.bookmarks.DeleteByType(context.Background(), owner, "bob-tester", models.TypeReceivers)
		require.NoError(t, err)
		require.Len(t, removed, 1)

		remaining, err := f.bookmarks.List(context.Background(), owner, "bob-tester")
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		require.Equal(t, models.TypeOrganizations, remaining[0].Type)
	})

	t.Run("nothing of that type", func(t *testing.T) {
		f := newFixture(t)
		f.seedBookmark(t, "bob-tester", models.TypeOrganizations, "TEU")

		_, err := f.bookmarks.DeleteByType(context.Background(), owner, "bob-tester", models.TypeReceivers)
		require.Equal(t, "userbookmark_not_found", CodeOf(err))
	})
}
