package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tenantkit/tenantkit/internal/auth"
	"github.com/tenantkit/tenantkit/internal/models"
)

func TestReceiverService_Create(t *testing.T) {
	t.Run("first receiver gets the seed id", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrg(t, "THQ", "")

		rcv, err := f.receivers.Create(context.Background(), superCaller(), &ReceiverInput{
			Name:  strPtr("Acme GmbH"),
			OrgID: "THQ",
		})
		require.NoError(t, err)
		require.Equal(t, "1901", rcv.ID)
		require.Equal(t, models.StatusActive, rcv.Status)
		require.True(t, rcv.IsDeletable)
	})

	t.Run("subsequent ids continue the sequence", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrg(t, "THQ", "")
		f.seedReceiver(t, "2100", "THQ")

		rcv, err := f.receivers.Create(context.Background(), superCaller(), &ReceiverInput{
			Name:  strPtr("Acme GmbH"),
			OrgID: "THQ",
		})
		require.NoError(t, err)
		require.Equal(t, "2101", rcv.ID)
	})

	t.Run("empty org defaults to the caller's home tenant", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrg(t, "THQ", "")
		f.seedOrg(t, "TEU", "THQ")

		rcv, err := f.receivers.Create(context.Background(), callerWith("sam-sales", "TEU", auth.RoleSalesUser), &ReceiverInput{
			Name: strPtr("Acme GmbH"),
		})
		require.NoError(t, err)
		require.Equal(t, "TEU", rcv.OrgID)
	})

	t.Run("out-of-scope target tenant is refused", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrg(t, "THQ", "")
		f.seedOrg(t, "TEU", "THQ")
		f.seedOrg(t, "TUS", "THQ")

		_, err := f.receivers.Create(context.Background(), callerWith("sam-sales", "TEU", auth.RoleSalesUser), &ReceiverInput{
			Name:  strPtr("Acme GmbH"),
			OrgID: "TUS",
		})
		require.Equal(t, KindNotAuthorized, KindOf(err))
		require.Equal(t, "org_not_allowed", CodeOf(err))
	})

	t.Run("field shapes are validated", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrg(t, "THQ", "")

		_, err := f.receivers.Create(context.Background(), superCaller(), &ReceiverInput{
			Name:    strPtr("Acme GmbH"),
			Country: strPtr("germany"),
			OrgID:   "THQ",
		})
		require.Equal(t, KindInvalid, KindOf(err))
		require.Equal(t, "receiver_country_invalid", CodeOf(err))

		_, err = f.receivers.Create(context.Background(), superCaller(), &ReceiverInput{
			Name:  strPtr("Acme GmbH"),
			Email: strPtr("not-an-email"),
			OrgID: "THQ",
		})
		require.Equal(t, "receiver_email_invalid", CodeOf(err))

		_, err = f.receivers.Create(context.Background(), superCaller(), &ReceiverInput{
			OrgID: "THQ",
		})
		require.Equal(t, "receiver_name_invalid", CodeOf(err))
	})
}

func TestReceiverService_Get(t *testing.T) {
	t.Run("in-scope receiver", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrg(t, "THQ", "")
		f.seedOrg(t, "TEU", "THQ")
		f.seedReceiver(t, "1901", "TEU")

		rcv, err := f.receivers.Get(context.Background(), callerWith("sam-sales", "THQ", auth.RoleSalesUser), "1901")
		require.NoError(t, err)
		require.Equal(t, "1901", rcv.ID)
	})

	t.Run("out-of-scope receiver looks absent", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrg(t, "THQ", "")
		f.seedOrg(t, "TEU", "THQ")
		f.seedOrg(t, "TUS", "THQ")
		f.seedReceiver(t, "1901", "TUS")

		_, err := f.receivers.Get(context.Background(), callerWith("sam-sales", "TEU", auth.RoleSalesUser), "1901")
		require.Equal(t, KindNotFound, KindOf(err))
		require.Equal(t, "receiver_not_found", CodeOf(err))
	})

	t.Run("missing receiver yields the same error", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrg(t, "THQ", "")

		_, err := f.receivers.Get(context.Background(), callerWith("sam-sales", "THQ", auth.RoleSalesUser), "9999")
		require.Equal(t, KindNotFound, KindOf(err))
		require.Equal(t, "receiver_not_found", CodeOf(err))
	})
}

func TestReceiverService_Update(t *testing.T) {
	t.Run("merges partial fields", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrg(t, "THQ", "")
		f.seedReceiver(t, "1901", "THQ")

		rcv, err := f.receivers.Update(context.Background(), superCaller(), &ReceiverInput{
			ID:   "1901",
			Name: strPtr("Renamed"),
			City: strPtr("Berlin"),
		})
		require.NoError(t, err)
		require.Equal(t, "Renamed", rcv.Name)
		require.Equal(t, "Berlin", rcv.City)
	})

	t.Run("out-of-scope receiver looks absent", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrg(t, "THQ", "")
		f.seedOrg(t, "TEU", "THQ")
		f.seedOrg(t, "TUS", "THQ")
		f.seedReceiver(t, "1901", "TUS")

		_, err := f.receivers.Update(context.Background(), callerWith("sam-sales", "TEU", auth.RoleSalesUser), &ReceiverInput{
			ID:   "1901",
			Name: strPtr("Renamed"),
		})
		require.Equal(t, KindNotFound, KindOf(err))
		require.Equal(t, "receiver_not_found", CodeOf(err))
	})
}

func TestReceiverService_Delete(t *testing.T) {
	t.Run("deletes an in-scope receiver", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrg(t, "THQ", "")
		f.seedReceiver(t, "1901", "THQ")

		rcv, err := f.receivers.Delete(context.Background(), superCaller(), "1901")
		require.NoError(t, err)
		require.Equal(t, "1901", rcv.ID)
	})

	t.Run("non-deletable receiver is refused", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrg(t, "THQ", "")

		rcv := &models.Receiver{
			ID:     "1901",
			Name:   "Protected",
			Status: models.StatusActive,
			OrgID:  "THQ",
		}
		require.NoError(t, f.receiverStore.Create(context.Background(), rcv))

		_, err := f.receivers.Delete(context.Background(), superCaller(), "1901")
		require.Equal(t, KindConflict, KindOf(err))
		require.Equal(t, "receiver_cannot_delete", CodeOf(err))
	})

	t.Run("out-of-scope receiver looks absent", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrg(t, "THQ", "")
		f.seedOrg(t, "TEU", "THQ")
		f.seedOrg(t, "TUS", "THQ")
		f.seedReceiver(t, "1901", "TUS")

		_, err := f.receivers.Delete(context.Background(), callerWith("sam-sales", "TEU", auth.RoleSalesUser), "1901")
		require.Equal(t, KindNotFound, KindOf(err))
		require.Equal(t, "receiver_not_found", CodeOf(err))

		// Still present for callers who can see it.
		_, err = f.receivers.Get(context.Background(), superCaller(), "1901")
		require.NoError(t, err)
	})
}

func TestReceiverService_List(t *testing.T) {
	t.Run("scoped to the caller's subtree", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrg(t, "THQ", "")
		f.seedOrg(t, "TEU", "THQ")
		f.seedOrg(t, "TUS", "THQ")
		f.seedReceiver(t, "1901", "TEU")
		f.seedReceiver(t, "1902", "TUS")

		rcvs, err := f.receivers.List(context.Background(), callerWith("sam-sales", "TEU", auth.RoleSalesUser), "", 0, BookmarkOptions{})
		require.NoError(t, err)
		require.Len(t, rcvs, 1)
		require.Equal(t, "1901", rcvs[0].ID)
	})

	t.Run("explicit org narrows to one tenant", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrg(t, "THQ", "")
		f.seedOrg(t, "TEU", "THQ")
		f.seedReceiver(t, "1901", "THQ")
		f.seedReceiver(t, "1902", "TEU")

		rcvs, err := f.receivers.List(context.Background(), callerWith("sam-sales", "THQ", auth.RoleSalesUser), "TEU", 0, BookmarkOptions{})
		require.NoError(t, err)
		require.Len(t, rcvs, 1)
		require.Equal(t, "1902", rcvs[0].ID)
	})

	t.Run("explicit org outside the subtree is refused", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrg(t, "THQ", "")
		f.seedOrg(t, "TEU", "THQ")
		f.seedOrg(t, "TUS", "THQ")

		_, err := f.receivers.List(context.Background(), callerWith("sam-sales", "TEU", auth.RoleSalesUser), "TUS", 0, BookmarkOptions{})
		require.Equal(t, KindNotAuthorized, KindOf(err))
		require.Equal(t, "org_not_allowed", CodeOf(err))
	})

	t.Run("super without org sees everything", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrg(t, "THQ", "")
		f.seedOrg(t, "TUS", "THQ")
		f.seedReceiver(t, "1901", "THQ")
		f.seedReceiver(t, "1902", "TUS")

		rcvs, err := f.receivers.List(context.Background(), superCaller(), "", 0, BookmarkOptions{})
		require.NoError(t, err)
		require.Len(t, rcvs, 2)
	})

	t.Run("bookmarked receivers come first", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrg(t, "THQ", "")
		f.seedReceiver(t, "1901", "THQ")
		f.seedReceiver(t, "1902", "THQ")
		f.seedReceiver(t, "1903", "THQ")
		f.seedBookmark(t, "sigrid-super", models.TypeReceivers, "1903")

		rcvs, err := f.receivers.List(context.Background(), superCaller(), "", 1, ParseBookmarkMode("first"))
		require.NoError(t, err)
		require.Len(t, rcvs, 3)
		require.Equal(t, "1903", rcvs[0].ID)
	})
}
